package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/opal-lang/mirror/core/ast"
	"github.com/opal-lang/mirror/core/programfmt"
	"github.com/opal-lang/mirror/core/programfmt/formatter"
	"github.com/opal-lang/mirror/runtime/analysis"
	"github.com/opal-lang/mirror/runtime/watch"
)

func (a *app) parseCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "parse [file]",
		Short: "Parse a file and print its syntax tree",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			program, _, err := a.load(inputArg(args))
			if err != nil {
				return err
			}
			if a.cfg.Output == OutputJSON {
				return a.writeDocument(program)
			}
			formatter.FormatTree(a.stdout, program, a.color)
			return nil
		},
	}
}

func (a *app) fmtCommand() *cobra.Command {
	var check, write bool

	cmd := &cobra.Command{
		Use:   "fmt [file]",
		Short: "Rewrite a file in canonical layout",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := inputArg(args)
			program, source, err := a.load(path)
			if err != nil {
				return err
			}
			text := formatter.Format(program)

			switch {
			case check:
				if source != text {
					return &CLIError{
						Type:    "format",
						Message: fmt.Sprintf("%s is not formatted", path),
						Hint:    "run 'mirror fmt -w' to rewrite it",
						Code:    ExitValidationError,
					}
				}
				return nil
			case write && path != "-":
				if err := os.WriteFile(path, []byte(text), 0o644); err != nil {
					return &CLIError{Type: "io", Message: "failed to write " + path, Err: err, Code: ExitIOError}
				}
				a.logger.Info().Str("file", path).Msg("formatted")
				return nil
			case a.color:
				_, err = fmt.Fprint(a.stdout, formatter.Highlight(program))
			default:
				_, err = fmt.Fprint(a.stdout, text)
			}
			return err
		},
	}
	cmd.Flags().BoolVar(&check, "check", false, "Fail if the file is not already formatted")
	cmd.Flags().BoolVarP(&write, "write", "w", false, "Write the result back to the file")
	return cmd
}

func (a *app) expressionsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "expressions [file]",
		Short: "List the top-level expression statements",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			program, _, err := a.load(inputArg(args))
			if err != nil {
				return err
			}
			exprs := analysis.ExtractExpressions(program)

			if a.cfg.Output == OutputJSON {
				stmts := make(ast.Program, len(exprs))
				for i, expr := range exprs {
					stmts[i] = expr
				}
				return a.writeDocument(stmts)
			}
			for _, expr := range exprs {
				if _, err := fmt.Fprintln(a.stdout, formatter.FormatStatement(expr)); err != nil {
					return err
				}
			}
			return nil
		},
	}
}

// signatureGroup is the JSON form of a signature and its examples
type signatureGroup struct {
	Signature programfmt.StatementNode   `json:"signature"`
	Examples  []programfmt.StatementNode `json:"examples"`
}

func (a *app) signaturesCommand() *cobra.Command {
	var strict bool

	cmd := &cobra.Command{
		Use:   "signatures [file]",
		Short: "List signatures together with their examples",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := inputArg(args)
			program, _, err := a.load(path)
			if err != nil {
				return err
			}
			groups := analysis.GroupSignaturesWithExamples(program)

			if a.cfg.Output == OutputJSON {
				out := make([]signatureGroup, 0, len(groups))
				for _, g := range groups {
					stmts := ast.Program{g.Signature}
					for _, ex := range g.Examples {
						stmts = append(stmts, ex)
					}
					doc := programfmt.NewDocument(stmts)
					out = append(out, signatureGroup{Signature: doc.Statements[0], Examples: doc.Statements[1:]})
				}
				if err := a.writeJSON(out); err != nil {
					return err
				}
			} else {
				for _, g := range groups {
					fmt.Fprintln(a.stdout, formatter.FormatStatement(g.Signature))
					for _, ex := range g.Examples {
						fmt.Fprintln(a.stdout, "  "+formatter.FormatStatement(ex))
					}
				}
			}

			return a.checkIndex(path, analysis.NewIndex(program), strict)
		},
	}
	cmd.Flags().BoolVar(&strict, "strict", false, "Fail on examples or calls without a signature")
	return cmd
}

// checkIndex reports examples and calls that have no signature
func (a *app) checkIndex(path string, idx *analysis.Index, strict bool) error {
	orphans := idx.OrphanExamples()
	for _, ex := range orphans {
		a.logger.Warn().Str("example", ex.Name).Msg("example has no signature")
	}
	undeclared := idx.UndeclaredCalls()
	for _, name := range undeclared {
		a.logger.Warn().Str("call", name).Int("count", idx.CallCount(name)).Msg("call has no signature")
	}

	if strict && len(orphans)+len(undeclared) > 0 {
		return &CLIError{
			Type:    "validation",
			Message: fmt.Sprintf("%s: %d examples and %d calls have no signature", path, len(orphans), len(undeclared)),
			Hint:    "declare them with 'signature name(...) -> type'",
			Code:    ExitValidationError,
		}
	}
	return nil
}

func (a *app) fingerprintCommand() *cobra.Command {
	var raw bool

	cmd := &cobra.Command{
		Use:   "fingerprint [file]",
		Short: "Print the layout-independent digest of a program",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := inputArg(args)
			program, _, err := a.load(path)
			if err != nil {
				return err
			}

			if raw {
				data, err := programfmt.MarshalCanonical(program)
				if err != nil {
					return err
				}
				_, err = a.stdout.Write(data)
				return err
			}

			sum, err := programfmt.Fingerprint(program)
			if err != nil {
				return err
			}
			if a.cfg.Output == OutputJSON {
				return a.writeJSON(map[string]interface{}{"fingerprint": sum, "statements": len(program)})
			}
			_, err = fmt.Fprintf(a.stdout, "%s  %s\n", sum, path)
			return err
		},
	}
	cmd.Flags().BoolVar(&raw, "cbor", false, "Write the canonical CBOR encoding instead of its digest")
	return cmd
}

func (a *app) validateCommand() *cobra.Command {
	var binary bool

	cmd := &cobra.Command{
		Use:   "validate [document]",
		Short: "Check a JSON (or CBOR) program document",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := inputArg(args)
			_, data, err := a.readInput(path)
			if err != nil {
				return err
			}

			var program ast.Program
			if binary {
				program, err = programfmt.UnmarshalCanonical([]byte(data))
			} else {
				program, err = programfmt.Decode([]byte(data))
			}
			if err != nil {
				var schemaErr *programfmt.SchemaError
				if errors.As(err, &schemaErr) {
					return err
				}
				return &CLIError{Type: "validation", Message: path + " is not a valid document", Err: err, Code: ExitValidationError}
			}

			if a.cfg.Output == OutputJSON {
				return a.writeJSON(map[string]interface{}{"valid": true, "statements": len(program)})
			}
			_, err = fmt.Fprintf(a.stdout, "%s: valid, %d statements\n", path, len(program))
			return err
		},
	}
	cmd.Flags().BoolVar(&binary, "cbor", false, "Read canonical CBOR instead of JSON")
	return cmd
}

func (a *app) diffCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "diff <expected> <actual>",
		Short: "Compare two files statement by statement",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			expected, _, err := a.load(args[0])
			if err != nil {
				return errors.Wrap(err, args[0])
			}
			actual, _, err := a.load(args[1])
			if err != nil {
				return errors.Wrap(err, args[1])
			}

			result := formatter.Diff(expected, actual)
			if a.cfg.Output == OutputJSON {
				if err := a.writeJSON(result); err != nil {
					return err
				}
			} else {
				fmt.Fprint(a.stdout, formatter.FormatDiff(result, a.color))
			}

			if !result.Empty() {
				return &CLIError{Type: "diff", Message: "programs differ", Code: ExitValidationError}
			}
			return nil
		},
	}
}

func (a *app) watchCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "watch <file>",
		Short: "Re-parse a file every time it changes",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return a.watch(ctx, args[0])
		},
	}
}

// watch prints the tree of every successful parse and the error of every
// failed one until ctx is cancelled
func (a *app) watch(ctx context.Context, path string) error {
	w := watch.New(path, a.cache, a.logger)
	err := w.Run(ctx, func(program ast.Program, err error) {
		stamp := Colorize(time.Now().Format(time.Kitchen), ColorGray, a.color)
		if err != nil {
			fmt.Fprintf(a.stdout, "%s %s\n", stamp, Colorize("error", ColorRed, a.color))
			FormatError(a.stdout, err, a.color)
			return
		}
		fmt.Fprintf(a.stdout, "%s %d statements\n", stamp, len(program))
		formatter.FormatTree(a.stdout, program, a.color)
	})
	if err != nil {
		return &CLIError{Type: "io", Message: "watch failed", Err: err, Code: ExitIOError}
	}
	return nil
}

// writeDocument prints program as a JSON document
func (a *app) writeDocument(program ast.Program) error {
	data, err := programfmt.Encode(program)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(a.stdout, "%s\n", data)
	return err
}

func (a *app) writeJSON(v interface{}) error {
	enc := json.NewEncoder(a.stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
