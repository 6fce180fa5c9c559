package cli

import (
	"github.com/spf13/cobra"

	"github.com/dannycalleri/usergraph/internal/harness"
	"github.com/dannycalleri/usergraph/internal/model"
)

// NewRunCommand creates the run command: execute a scenario file and report
// the trace and final state.
func NewRunCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run <scenario.yaml>",
		Short: "Run a scripted scenario against the user graph core",
		Long: `Run a scenario file: seed users, execute create/edit steps with
scripted transport faults, and evaluate the scenario's assertions.

Example:
  usergraph run scenarios/create-two-friends.yaml
  usergraph run --format json scenarios/retry-then-unavailable.yaml`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScenario(rootOpts, args[0], cmd)
		},
	}
	return cmd
}

func runScenario(opts *RootOptions, path string, cmd *cobra.Command) error {
	scenario, err := harness.LoadScenario(path)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to load scenario", err)
	}

	result, err := harness.Run(scenario)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to run scenario", err)
	}

	out := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout()}
	if opts.Format == "json" {
		snap := harness.Snapshot{ScenarioName: scenario.Name, Result: *result}
		if err := out.JSON(snap); err != nil {
			return WrapExitError(ExitCommandError, "failed to encode result", err)
		}
	} else {
		printResult(out, scenario, result)
	}

	if !result.Pass {
		return NewExitError(ExitFailure, "scenario failed")
	}
	return nil
}

func printResult(out *OutputFormatter, scenario *harness.Scenario, result *harness.Result) {
	status := "PASS"
	if !result.Pass {
		status = "FAIL"
	}
	out.Textf("%s %s", status, scenario.Name)

	for _, e := range result.Trace {
		switch e.Type {
		case "operation":
			out.Textf("  %s %q -> %s (%d attempts)", e.Op, e.Name, e.Outcome, e.Attempts)
		case "dispatch":
			out.Textf("  dispatched %s id=%d (%d users)", e.ActionKind, e.ActionID, e.Users)
		}
	}

	out.Textf("final state:")
	printUsers(out, result.Final)

	for _, msg := range result.Errors {
		out.Textf("error: %s", msg)
	}
}

// printUsers renders a state listing shared by run and simulate.
func printUsers(out *OutputFormatter, users []model.User) {
	for _, u := range users {
		out.Textf("  #%d %s friends=%v", u.ID, u.Name, u.Friends)
	}
}
