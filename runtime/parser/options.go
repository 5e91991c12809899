package parser

import "time"

// DefaultMaxDepth bounds how deeply types, literals and calls may nest along
// one path before parsing fails. Recursion depth is proportional to it.
const DefaultMaxDepth = 1000

// ParserOpt represents a parser configuration option
type ParserOpt func(*ParserConfig)

// TelemetryMode controls telemetry collection (production-safe)
type TelemetryMode int

const (
	TelemetryOff    TelemetryMode = iota // Zero overhead (default)
	TelemetryBasic                       // Counts only
	TelemetryTiming                      // Counts + timing per phase
)

// DebugLevel controls debug tracing (development only)
type DebugLevel int

const (
	DebugOff      DebugLevel = iota // No debug info (default)
	DebugPaths                      // Grammar rule enter/exit tracing
	DebugDetailed                   // Rule tracing plus every consumed token
)

// ParserConfig holds parser configuration
type ParserConfig struct {
	telemetry TelemetryMode
	debug     DebugLevel
	maxDepth  int
}

func newConfig(opts []ParserOpt) *ParserConfig {
	config := &ParserConfig{maxDepth: DefaultMaxDepth}
	for _, opt := range opts {
		opt(config)
	}
	return config
}

// WithTelemetryBasic enables basic telemetry (counts only)
func WithTelemetryBasic() ParserOpt {
	return func(c *ParserConfig) {
		c.telemetry = TelemetryBasic
	}
}

// WithTelemetryTiming enables timing telemetry (counts + timing per phase)
func WithTelemetryTiming() ParserOpt {
	return func(c *ParserConfig) {
		c.telemetry = TelemetryTiming
	}
}

// WithDebugPaths enables grammar rule tracing (development only)
func WithDebugPaths() ParserOpt {
	return func(c *ParserConfig) {
		c.debug = DebugPaths
	}
}

// WithDebugDetailed enables rule and token tracing (development only)
func WithDebugDetailed() ParserOpt {
	return func(c *ParserConfig) {
		c.debug = DebugDetailed
	}
}

// WithMaxDepth overrides DefaultMaxDepth. A depth <= 0 removes the limit,
// leaving only the goroutine stack as a bound.
func WithMaxDepth(depth int) ParserOpt {
	return func(c *ParserConfig) {
		c.maxDepth = depth
	}
}

// ParseTelemetry holds parser metrics (production-safe)
type ParseTelemetry struct {
	LexTime        time.Duration // Time spent tokenizing
	ParseTime      time.Duration // Time spent in the grammar
	TotalTime      time.Duration // Total parse time
	TokenCount     int           // Number of tokens
	StatementCount int           // Number of statements produced
	MaxDepth       int           // Deepest nesting reached
	ErrorCount     int           // 0 or 1; parsing stops at the first error
}

// DebugEvent holds debug tracing information (development only)
type DebugEvent struct {
	Timestamp time.Time
	Event     string // "enter_signature", "exit_signature", "token", etc.
	TokenPos  int    // Current token position
	Context   string // Additional context
}
