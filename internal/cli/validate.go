package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/spquery/internal/schema"
)

// ValidationResult summarizes a valid schema directory.
type ValidationResult struct {
	Valid   bool           `json:"valid"`
	Records []RecordResult `json:"records"`
}

// RecordResult describes one record of a valid schema.
type RecordResult struct {
	Name       string `json:"name"`
	Fields     int    `json:"fields"`
	Filterable int    `json:"filterable"`
	Lookups    int    `json:"lookups"`
}

// NewValidateCommand creates the validate command.
func NewValidateCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate <schema-dir>",
		Short: "Validate list schemas",
		Long: `Load CUE list schemas and check them.

Checks field kinds, lookup targets and duplicate names. Exits 1 when the
schema is invalid and 2 when the directory cannot be loaded.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(rootOpts, args[0], cmd)
		},
	}

	return cmd
}

func runValidate(opts *RootOptions, dir string, cmd *cobra.Command) error {
	formatter := newFormatter(opts, cmd.OutOrStdout(), cmd.ErrOrStderr())

	reg, err := loadRegistry(formatter, dir)
	if err != nil {
		return err
	}

	result := summarize(reg)
	if formatter.Format == "json" {
		return formatter.Success(result)
	}

	fields := 0
	for _, r := range result.Records {
		fields += r.Fields
	}
	fmt.Fprintf(formatter.Writer, "✓ Schema valid: %d record(s), %d field(s)\n", len(result.Records), fields)
	for _, r := range result.Records {
		fmt.Fprintf(formatter.Writer, "  %s: %d field(s), %d filterable, %d lookup(s)\n",
			r.Name, r.Fields, r.Filterable, r.Lookups)
	}
	return nil
}

func summarize(reg *schema.Registry) ValidationResult {
	result := ValidationResult{Valid: true, Records: []RecordResult{}}
	for _, name := range reg.Names() {
		rec := reg.Record(name)
		rr := RecordResult{Name: name, Fields: len(rec.Fields)}
		for _, f := range rec.Fields {
			if f.Kind.Filterable() {
				rr.Filterable++
			}
			if f.Kind.IsLookup() {
				rr.Lookups++
			}
		}
		result.Records = append(result.Records, rr)
	}
	return result
}
