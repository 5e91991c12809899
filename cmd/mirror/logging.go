package main

import (
	"io"
	"time"

	"github.com/rs/zerolog"

	"github.com/opal-lang/mirror/runtime/parser"
)

// NewLogger returns a console logger writing to w at the given level
func NewLogger(w io.Writer, level string, useColor bool) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil || lvl == zerolog.NoLevel {
		lvl = zerolog.WarnLevel
	}
	out := zerolog.ConsoleWriter{Out: w, NoColor: !useColor, TimeFormat: time.Kitchen}
	return zerolog.New(out).Level(lvl).With().Timestamp().Logger()
}

// logTelemetry records parser metrics as one debug record
func logTelemetry(logger zerolog.Logger, source string, t *parser.ParseTelemetry) {
	if t == nil {
		return
	}
	logger.Debug().
		Str("source", source).
		Int("tokens", t.TokenCount).
		Int("statements", t.StatementCount).
		Int("max_depth", t.MaxDepth).
		Int("errors", t.ErrorCount).
		Dur("lex", t.LexTime).
		Dur("parse", t.ParseTime).
		Dur("total", t.TotalTime).
		Msg("parse telemetry")
}

// logDebugEvents records the parser's rule trace
func logDebugEvents(logger zerolog.Logger, events []parser.DebugEvent) {
	for _, ev := range events {
		logger.Debug().
			Str("event", ev.Event).
			Int("pos", ev.TokenPos).
			Str("context", ev.Context).
			Time("at", ev.Timestamp).
			Msg("parser")
	}
}
