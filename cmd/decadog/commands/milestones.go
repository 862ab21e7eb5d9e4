package commands

import (
	"fmt"

	"github.com/fivetwenty-io/decadog/internal/constants"
	"github.com/fivetwenty-io/decadog/pkg/api"
	"github.com/spf13/cobra"
)

func newMilestonesCommand(s *session) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "milestones",
		Aliases: []string{"milestone"},
		Short:   "Inspect milestones",
	}

	cmd.AddCommand(newMilestonesListCommand(s))

	return cmd
}

func newMilestonesListCommand(s *session) *cobra.Command {
	var state string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List milestones",
		Long:  "List the milestones of the repository in state --state",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			milestoneState := api.State(state)
			switch milestoneState {
			case api.StateOpen, api.StateClosed, api.StateAll:
			default:
				return fmt.Errorf("%w: %q", ErrInvalidState, state)
			}

			client, cfg, err := s.client(cmd)
			if err != nil {
				return err
			}

			p, err := newPrinter(cmd, cfg)
			if err != nil {
				return err
			}

			milestones, err := client.GetMilestones(cmd.Context(), &api.MilestoneListOptions{
				State:   milestoneState,
				PerPage: constants.MilestonesPageSize,
			})
			if err != nil {
				return err
			}

			if milestones == nil {
				milestones = []api.Milestone{}
			}

			return p.print(milestones, milestonesTable(milestones))
		},
	}

	cmd.Flags().StringVar(&state, "state", string(api.StateOpen), "milestone state (open, closed, all)")

	return cmd
}
