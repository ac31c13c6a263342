package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/roach88/spquery/internal/samples"
)

// SamplesOptions holds flags for the samples command.
type SamplesOptions struct {
	*RootOptions
	Today string
}

// NewSamplesCommand creates the samples command.
func NewSamplesCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &SamplesOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:           "samples",
		Short:         "Print the reference filter queries",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSamples(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Today, "today", "", "date used by date samples (RFC 3339 or YYYY-MM-DD)")

	return cmd
}

func runSamples(opts *SamplesOptions, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd.OutOrStdout(), cmd.ErrOrStderr())

	today, pinned, err := parseToday(opts.Today)
	if err != nil {
		return formatter.Fail(ExitCommandError, ErrCodeBadFlag, err.Error(), nil)
	}
	if !pinned {
		today = time.Now()
	}

	all := samples.All(today)
	if formatter.Format == "json" {
		return formatter.Success(all)
	}

	for _, s := range all {
		fmt.Fprintf(formatter.Writer, "%s\n  # %s\n  %s\n", s.Name, s.Description, s.Filter)
	}
	return nil
}
