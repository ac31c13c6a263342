package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/roach88/spquery/internal/codegen"
)

// GenOptions holds flags for the gen command.
type GenOptions struct {
	*RootOptions
	Package string
	Output  string
}

// GenResult is the JSON payload of a successful gen.
type GenResult struct {
	Output  string `json:"output,omitempty"`
	Records int    `json:"records"`
	Source  string `json:"source,omitempty"`
}

// NewGenCommand creates the gen command.
func NewGenCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &GenOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "gen <schema-dir>",
		Short: "Generate typed filter keys for list schemas",
		Long: `Generate a Go file declaring one schema type per list and one typed
odata key per filterable field, so filters over those lists are checked
by the Go compiler.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGen(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Package, "package", "lists", "package name of the generated file")
	cmd.Flags().StringVarP(&opts.Output, "output", "o", "", "output file path (default stdout)")

	return cmd
}

func runGen(opts *GenOptions, dir string, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd.OutOrStdout(), cmd.ErrOrStderr())

	reg, err := loadRegistry(formatter, dir)
	if err != nil {
		return err
	}

	src, err := codegen.Generate(reg, codegen.Options{Package: opts.Package, Source: dir})
	if err != nil {
		return formatter.Fail(ExitFailure, ErrCodeGeneric, err.Error(), nil)
	}

	if opts.Output == "" {
		if formatter.Format == "json" {
			return formatter.Success(map[string]interface{}{"records": reg.Len(), "source": string(src)})
		}
		_, err := formatter.Writer.Write(src)
		return err
	}

	if err := os.WriteFile(opts.Output, src, 0644); err != nil {
		return formatter.Fail(ExitCommandError, ErrCodeWriteFailed, fmt.Sprintf("writing output file: %v", err), nil)
	}
	formatter.VerboseLog("generated", "file", opts.Output, "bytes", len(src))

	if formatter.Format == "json" {
		return formatter.Success(GenResult{Output: opts.Output, Records: reg.Len()})
	}
	fmt.Fprintf(formatter.Writer, "Wrote %d record(s) to %s\n", reg.Len(), opts.Output)
	return nil
}
