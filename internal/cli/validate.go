package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/dannycalleri/usergraph/internal/harness"
)

// validateReport is the JSON output of the validate command.
type validateReport struct {
	Path  string `json:"path"`
	Valid bool   `json:"valid"`
	Error string `json:"error,omitempty"`
}

// NewValidateCommand creates the validate command: schema-check scenario
// files without running them.
func NewValidateCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate <scenario.yaml>...",
		Short: "Validate scenario files against the schema",
		Long: `Validate one or more scenario files against the embedded CUE schema
without executing them.

Example:
  usergraph validate scenarios/*.yaml`,
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return validateScenarios(rootOpts, args, cmd)
		},
	}
	return cmd
}

func validateScenarios(opts *RootOptions, paths []string, cmd *cobra.Command) error {
	out := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout()}

	reports := make([]validateReport, 0, len(paths))
	failed := false
	for _, path := range paths {
		report := validateReport{Path: path, Valid: true}

		data, err := os.ReadFile(path)
		if err == nil {
			_, err = harness.ParseScenario(data)
		}
		if err != nil {
			report.Valid = false
			report.Error = err.Error()
			failed = true
		}
		reports = append(reports, report)
	}

	if opts.Format == "json" {
		if err := out.JSON(reports); err != nil {
			return WrapExitError(ExitCommandError, "failed to encode report", err)
		}
	} else {
		for _, r := range reports {
			if r.Valid {
				out.Textf("ok   %s", r.Path)
			} else {
				out.Textf("FAIL %s: %s", r.Path, r.Error)
			}
		}
	}

	if failed {
		return NewExitError(ExitCommandError, "validation failed")
	}
	return nil
}
