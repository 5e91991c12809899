// Command mirror parses, formats and inspects mirror signature files.
package main

import (
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/opal-lang/mirror/core/ast"
	"github.com/opal-lang/mirror/runtime/cache"
	"github.com/opal-lang/mirror/runtime/parser"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

// run executes the CLI with the given arguments and returns the exit code
func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	a := &app{stdin: stdin, stdout: stdout, stderr: stderr}

	root := a.rootCommand()
	root.SetArgs(args)
	root.SetIn(stdin)
	root.SetOut(stdout)
	root.SetErr(stderr)

	err := root.Execute()
	if err != nil {
		FormatError(stderr, err, a.errColor)
	}
	return ExitCode(err)
}

// globalFlags are the persistent flags shared by every command
type globalFlags struct {
	config   string
	maxDepth int
	output   string
	cacheLen int
	logLevel string
	debug    bool
	color    string
	noColor  bool
}

// app carries the state resolved before any command runs
type app struct {
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer

	flags    globalFlags
	cfg      *Config
	logger   zerolog.Logger
	cache    *cache.Cache
	color    bool // color on stdout
	errColor bool // color on stderr
}

func (a *app) rootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           "mirror",
		Short:         "Parse and inspect mirror signature files",
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
	}

	// This set of flags propagates
	fl := root.PersistentFlags()

	cfgFlags := pflag.NewFlagSet("Configuration", pflag.ContinueOnError)
	cfgFlags.StringVar(&a.flags.config, "config", "", "Path to configuration file (mirror.yaml, mirror.yml or mirror.toml)")
	cfgFlags.IntVar(&a.flags.maxDepth, "max-depth", parser.DefaultMaxDepth, "Maximum nesting depth, 0 for unlimited")
	cfgFlags.IntVar(&a.flags.cacheLen, "cache-size", cache.DefaultSize, "Number of parsed programs to keep")
	fl.AddFlagSet(cfgFlags)

	outFlags := pflag.NewFlagSet("Output", pflag.ContinueOnError)
	outFlags.StringVarP(&a.flags.output, "output", "o", OutputText, "Output format: json or text")
	outFlags.StringVar(&a.flags.color, "color", ColorAuto, "Color mode: auto, always or never")
	outFlags.BoolVar(&a.flags.noColor, "no-color", false, "Disable colored output")
	outFlags.StringVar(&a.flags.logLevel, "log-level", "", "Log level: trace, debug, info, warn or error")
	outFlags.BoolVar(&a.flags.debug, "debug", false, "Log parser telemetry and rule traces")
	fl.AddFlagSet(outFlags)

	root.AddCommand(
		a.parseCommand(),
		a.fmtCommand(),
		a.expressionsCommand(),
		a.signaturesCommand(),
		a.fingerprintCommand(),
		a.validateCommand(),
		a.diffCommand(),
		a.watchCommand(),
	)
	return root
}

// setup loads the configuration, applies flag overrides and builds the
// logger and parse cache
func (a *app) setup(cmd *cobra.Command) error {
	cfg, err := LoadConfig(a.flags.config)
	if err != nil {
		return &CLIError{Type: "config", Message: "failed to load configuration", Err: err, Code: ExitInvalidArguments}
	}

	flags := cmd.Flags()
	if flags.Changed("max-depth") {
		cfg.MaxDepth = a.flags.maxDepth
	}
	if flags.Changed("cache-size") {
		cfg.CacheSize = a.flags.cacheLen
	}
	if flags.Changed("output") {
		cfg.Output = a.flags.output
	}
	if flags.Changed("color") {
		cfg.Color = a.flags.color
	}
	if a.flags.noColor {
		cfg.Color = ColorNever
	}
	if flags.Changed("log-level") {
		cfg.LogLevel = a.flags.logLevel
	}
	if a.flags.debug {
		cfg.LogLevel = zerolog.LevelDebugValue
	}

	if err := cfg.Validate(); err != nil {
		return &CLIError{Type: "config", Message: "invalid settings", Err: err, Code: ExitInvalidArguments}
	}

	a.cfg = cfg
	a.color = ShouldUseColor(cfg.Color, a.stdout)
	a.errColor = ShouldUseColor(cfg.Color, a.stderr)
	a.logger = NewLogger(a.stderr, cfg.LogLevel, a.errColor)

	a.cache, err = cache.New(cfg.CacheSize, a.parserOpts()...)
	if err != nil {
		return &CLIError{Type: "config", Message: "failed to create parse cache", Err: err, Code: ExitInvalidArguments}
	}
	return nil
}

func (a *app) parserOpts() []parser.ParserOpt {
	return []parser.ParserOpt{parser.WithMaxDepth(a.cfg.MaxDepth)}
}

// parseSource parses one input. When debug logging is on the parse bypasses
// the cache so telemetry can be recorded; --debug adds the rule trace.
func (a *app) parseSource(name, source string) (ast.Program, error) {
	if a.logger.GetLevel() > zerolog.DebugLevel {
		return a.cache.Parse(source)
	}

	opts := append(a.parserOpts(), parser.WithTelemetryTiming())
	if a.flags.debug {
		opts = append(opts, parser.WithDebugPaths())
	}
	p := parser.New(source, opts...)
	program, err := p.Parse()
	logDebugEvents(a.logger, p.DebugEvents())
	logTelemetry(a.logger, name, p.Telemetry())
	return program, err
}

// load reads and parses the named input
func (a *app) load(path string) (ast.Program, string, error) {
	name, source, err := a.readInput(path)
	if err != nil {
		return nil, "", err
	}
	program, err := a.parseSource(name, source)
	if err != nil {
		return nil, "", err
	}
	return program, source, nil
}

// readInput handles the 2 modes of input:
// 1. Stdin, with "-" or no argument
// 2. File input
func (a *app) readInput(path string) (string, string, error) {
	if path == "" || path == "-" {
		data, err := io.ReadAll(a.stdin)
		if err != nil {
			return "", "", &CLIError{Type: "io", Message: "failed to read stdin", Err: err, Code: ExitIOError}
		}
		return "<stdin>", string(data), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", "", &CLIError{Type: "io", Message: "failed to read " + path, Err: err, Code: ExitIOError}
	}
	return path, string(data), nil
}

func inputArg(args []string) string {
	if len(args) == 0 {
		return "-"
	}
	return args[0]
}
