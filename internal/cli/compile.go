package cli

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/roach88/spquery/internal/predicate"
)

// CompileOptions holds flags for the compile command.
type CompileOptions struct {
	*RootOptions
	Schema string // schema directory
	Today  string // pinned date for the today operator
	Output string // output file path
}

// CompileResult is the JSON payload of a successful compile.
type CompileResult struct {
	List   string `json:"list"`
	Filter string `json:"filter"`
}

// NewCompileCommand creates the compile command.
func NewCompileCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &CompileOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "compile <predicate.yaml>",
		Short: "Compile a predicate document to an OData filter",
		Long: `Compile a YAML predicate document to OData filter text.

Every condition is checked against the list schema: unknown fields,
operators that do not apply to a field's kind and lookups deeper than
one hop are rejected before any filter text is produced.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCompile(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVarP(&opts.Schema, "schema", "s", "", "schema directory (required)")
	cmd.Flags().StringVar(&opts.Today, "today", "", "date used by the today operator (RFC 3339 or YYYY-MM-DD)")
	cmd.Flags().StringVarP(&opts.Output, "output", "o", "", "write the filter to a file")
	_ = cmd.MarkFlagRequired("schema")

	return cmd
}

func runCompile(opts *CompileOptions, path string, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd.OutOrStdout(), cmd.ErrOrStderr())

	today, pinned, err := parseToday(opts.Today)
	if err != nil {
		return formatter.Fail(ExitCommandError, ErrCodeBadFlag, err.Error(), nil)
	}
	clock := predicate.SystemClock
	if pinned {
		clock = predicate.ClockFunc(func() time.Time { return today })
	}

	reg, err := loadRegistry(formatter, opts.Schema)
	if err != nil {
		return err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return formatter.Fail(ExitCommandError, ErrCodeReadFailed, fmt.Sprintf("reading predicate: %v", err), nil)
	}

	doc, err := predicate.Parse(data)
	if err != nil {
		return reportPredicateError(formatter, ErrCodeParseFailed, err)
	}
	formatter.VerboseLog("predicate parsed", "file", path, "list", doc.List)

	filter, err := predicate.NewCompiler(reg, clock).Compile(doc)
	if err != nil {
		return reportPredicateError(formatter, ErrCodeInvalid, err)
	}

	if opts.Output != "" {
		if err := os.WriteFile(opts.Output, []byte(filter+"\n"), 0644); err != nil {
			return formatter.Fail(ExitCommandError, ErrCodeWriteFailed, fmt.Sprintf("writing output file: %v", err), nil)
		}
		formatter.VerboseLog("filter written", "file", opts.Output)
	}

	if formatter.Format == "json" {
		return formatter.Success(CompileResult{List: doc.List, Filter: filter})
	}
	return formatter.Success(filter)
}

// reportPredicateError reports YAML errors under parseCode and schema
// mismatches under ErrCodeInvalid, both as failures.
func reportPredicateError(formatter *OutputFormatter, parseCode string, err error) error {
	var pe *predicate.PredicateError
	if errors.As(err, &pe) {
		return formatter.Fail(ExitFailure, ErrCodeInvalid, pe.Error(), map[string]string{"path": pe.Path})
	}
	return formatter.Fail(ExitFailure, parseCode, err.Error(), nil)
}
