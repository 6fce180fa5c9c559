package cli

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/spf13/cobra"

	"github.com/dannycalleri/usergraph/internal/model"
	"github.com/dannycalleri/usergraph/internal/service"
	"github.com/dannycalleri/usergraph/internal/store"
	"github.com/dannycalleri/usergraph/internal/transport"
)

var simulationNames = []string{"Ada", "Grace", "Edsger", "Barbara", "Donald", "Frances"}

// SimulateOptions holds flags for the simulate command.
type SimulateOptions struct {
	*RootOptions
	Count     int
	FaultRate float64
}

// simulateReport is the JSON output of the simulate command.
type simulateReport struct {
	Created   int          `json:"created"`
	Failed    int          `json:"failed"`
	Symmetric bool         `json:"symmetric"`
	Final     []model.User `json:"final"`
}

// NewSimulateCommand creates the simulate command: a demo run against the
// real randomized transport with real jittered delays.
func NewSimulateCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &SimulateOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Run a randomized demo against the simulated backend",
		Long: `Create a handful of users against the randomized transport, then issue
concurrent edits that rewire their friendships. Creates run one at a time;
edits run concurrently and land in dispatch-completion order, so the final
state depends on which retry loop resolves last. The symmetry invariant
holds regardless.

Example:
  usergraph simulate --count 4 --fault-rate 0.3 -v`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return simulate(opts, cmd)
		},
	}

	cmd.Flags().IntVar(&opts.Count, "count", 4, "number of users to create")
	cmd.Flags().Float64Var(&opts.FaultRate, "fault-rate", transport.DefaultFaultRate, "transient failure probability per send")

	return cmd
}

func simulate(opts *SimulateOptions, cmd *cobra.Command) error {
	if opts.Count < 1 || opts.Count > len(simulationNames) {
		return NewExitError(ExitCommandError,
			fmt.Sprintf("count must be between 1 and %d", len(simulationNames)))
	}
	if opts.FaultRate < 0 || opts.FaultRate >= 1 {
		return NewExitError(ExitCommandError, "fault-rate must be in [0, 1)")
	}

	client := transport.NewClient(transport.WithFaults(transport.RandomFaults{Rate: opts.FaultRate}))
	svc := service.New(client)
	dispatcher := store.NewDispatcher(nil, slog.Default())
	ctx := context.Background()

	// Creates run sequentially: id assignment reads the snapshot, so each
	// create must see the previous one settled.
	created, failed := 0, 0
	for i := 0; i < opts.Count; i++ {
		action, err := svc.Create(ctx, dispatcher.Snapshot(), simulationNames[i], nil)
		if err != nil {
			slog.Warn("create failed", "name", simulationNames[i], "err", err)
			failed++
			continue
		}
		dispatcher.Dispatch(action)
		created++
	}

	// Edits run concurrently: each one takes its snapshot at launch, runs its
	// own retry loop, and dispatches whenever it resolves. Whichever edit
	// completes last wins its user's friend list.
	users := dispatcher.Snapshot()
	var wg sync.WaitGroup
	for i, u := range users {
		next := users[(i+1)%len(users)]
		if next.ID == u.ID {
			continue
		}
		wg.Add(1)
		go func(u model.User, friend int) {
			defer wg.Done()
			action, err := svc.Edit(ctx, users, u.ID, u.Name, []int{friend})
			if err != nil {
				slog.Warn("edit failed", "id", u.ID, "err", err)
				return
			}
			dispatcher.Dispatch(action)
		}(u, next.ID)
	}
	wg.Wait()

	final := dispatcher.Snapshot()
	report := simulateReport{
		Created:   created,
		Failed:    failed,
		Symmetric: store.CheckSymmetry(final) == nil,
		Final:     final,
	}

	out := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout()}
	if opts.Format == "json" {
		if err := out.JSON(report); err != nil {
			return WrapExitError(ExitCommandError, "failed to encode report", err)
		}
	} else {
		out.Textf("created %d users (%d failed), symmetric=%v", report.Created, report.Failed, report.Symmetric)
		printUsers(out, report.Final)
	}

	if !report.Symmetric {
		return NewExitError(ExitFailure, "final state is not symmetric")
	}
	return nil
}
