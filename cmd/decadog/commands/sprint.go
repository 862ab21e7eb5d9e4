package commands

import (
	"errors"
	"fmt"
	"time"

	"github.com/fivetwenty-io/decadog/internal/constants"
	"github.com/fivetwenty-io/decadog/pkg/decadog"
	"github.com/spf13/cobra"
)

func newSprintCommand(s *session) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "sprint",
		Aliases: []string{"sprints"},
		Short:   "Manage sprints",
		Long:    "Create, inspect, rename and close sprints. A sprint is the milestone \"Sprint N\" with a ZenHub start date.",
	}

	cmd.AddCommand(newSprintCreateCommand(s))
	cmd.AddCommand(newSprintShowCommand(s))
	cmd.AddCommand(newSprintCloseCommand(s))
	cmd.AddCommand(newSprintRenameCommand(s))

	return cmd
}

func newSprintCreateCommand(s *session) *cobra.Command {
	var start, due string

	cmd := &cobra.Command{
		Use:   "create NUMBER",
		Short: "Create a sprint",
		Long: `Create the milestone "Sprint NUMBER" due on --due and set its ZenHub start date to --start.
The start date defaults to today and the due date to two weeks after the start.`,
		Args: cobra.ExactArgs(constants.ExactlyOneArgument),
		RunE: func(cmd *cobra.Command, args []string) error {
			number, err := parseSprintNumber(args[0])
			if err != nil {
				return err
			}

			startDate := today(time.Now())
			if start != "" {
				if startDate, err = parseDate(start); err != nil {
					return err
				}
			}

			dueOn := startDate.Add(sprintLength)
			if due != "" {
				if dueOn, err = parseDate(due); err != nil {
					return err
				}
			}

			client, cfg, err := s.client(cmd)
			if err != nil {
				return err
			}

			p, err := newPrinter(cmd, cfg)
			if err != nil {
				return err
			}

			repository, err := client.GetRepository(cmd.Context())
			if err != nil {
				return err
			}

			sprint, err := client.CreateSprint(cmd.Context(), repository, number, startDate, dueOn)
			if err != nil {
				var partial *decadog.PartialSprintError
				if errors.As(err, &partial) {
					fmt.Fprintf(cmd.ErrOrStderr(), "Warning: milestone %q (#%d) was created; set its start date in ZenHub or delete it\n",
						partial.Milestone.Title, partial.Milestone.Number)
				}

				return err
			}

			return p.print(sprint, sprintTable(sprint))
		},
	}

	cmd.Flags().StringVar(&start, "start", "", "start date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&due, "due", "", "due date (YYYY-MM-DD)")

	return cmd
}

func newSprintShowCommand(s *session) *cobra.Command {
	return &cobra.Command{
		Use:   "show NUMBER",
		Short: "Show a sprint",
		Long:  "Show the milestone and ZenHub start date of a sprint",
		Args:  cobra.ExactArgs(constants.ExactlyOneArgument),
		RunE: func(cmd *cobra.Command, args []string) error {
			number, err := parseSprintNumber(args[0])
			if err != nil {
				return err
			}

			client, cfg, err := s.client(cmd)
			if err != nil {
				return err
			}

			p, err := newPrinter(cmd, cfg)
			if err != nil {
				return err
			}

			milestone, err := client.FindSprint(cmd.Context(), number)
			if err != nil {
				return err
			}

			repository, err := client.GetRepository(cmd.Context())
			if err != nil {
				return err
			}

			sprint, err := client.GetSprint(cmd.Context(), repository, *milestone)
			if err != nil {
				return err
			}

			return p.print(sprint, sprintTable(sprint))
		},
	}
}

func newSprintCloseCommand(s *session) *cobra.Command {
	return &cobra.Command{
		Use:   "close NUMBER",
		Short: "Close a sprint",
		Long:  "Close the milestone of a sprint",
		Args:  cobra.ExactArgs(constants.ExactlyOneArgument),
		RunE: func(cmd *cobra.Command, args []string) error {
			number, err := parseSprintNumber(args[0])
			if err != nil {
				return err
			}

			client, cfg, err := s.client(cmd)
			if err != nil {
				return err
			}

			p, err := newPrinter(cmd, cfg)
			if err != nil {
				return err
			}

			milestone, err := client.FindSprint(cmd.Context(), number)
			if err != nil {
				return err
			}

			closed, err := client.CloseMilestone(cmd.Context(), milestone)
			if err != nil {
				return err
			}

			return p.message(closed, fmt.Sprintf("Closed %s", closed.Title))
		},
	}
}

func newSprintRenameCommand(s *session) *cobra.Command {
	return &cobra.Command{
		Use:   "rename NUMBER TITLE",
		Short: "Rename a sprint",
		Long:  "Change the title of a sprint milestone",
		Args:  cobra.ExactArgs(constants.TwoArguments),
		RunE: func(cmd *cobra.Command, args []string) error {
			number, err := parseSprintNumber(args[0])
			if err != nil {
				return err
			}

			client, cfg, err := s.client(cmd)
			if err != nil {
				return err
			}

			p, err := newPrinter(cmd, cfg)
			if err != nil {
				return err
			}

			milestone, err := client.FindSprint(cmd.Context(), number)
			if err != nil {
				return err
			}

			renamed, err := client.UpdateMilestoneTitle(cmd.Context(), milestone, args[1])
			if err != nil {
				return err
			}

			return p.message(renamed, fmt.Sprintf("Renamed %s to %s", milestone.Title, renamed.Title))
		},
	}
}
