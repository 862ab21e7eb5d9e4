package commands

import (
	"fmt"
	"strconv"

	"github.com/fivetwenty-io/decadog/internal/constants"
	"github.com/fivetwenty-io/decadog/pkg/api"
	"github.com/fivetwenty-io/decadog/pkg/decadog"
	"github.com/spf13/cobra"
)

// IssueDetails is an issue together with its ZenHub metadata.
type IssueDetails struct {
	Issue  *api.Issue       `json:"issue"  yaml:"issue"`
	ZenHub *api.ZenHubIssue `json:"zenhub" yaml:"zenhub"`
}

func newIssuesCommand(s *session) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "issues",
		Aliases: []string{"issue"},
		Short:   "Manage issues",
		Long:    "Search issues and change their sprint, assignee, estimate and pipeline",
	}

	cmd.AddCommand(newIssuesShowCommand(s))
	cmd.AddCommand(newIssuesClosedCommand(s))
	cmd.AddCommand(newIssuesOpenCommand(s))
	cmd.AddCommand(newIssuesMoveCommand(s))
	cmd.AddCommand(newIssuesEstimateCommand(s))
	cmd.AddCommand(newIssuesAssignCommand(s))
	cmd.AddCommand(newIssuesMilestoneCommand(s))

	return cmd
}

func newIssuesShowCommand(s *session) *cobra.Command {
	return &cobra.Command{
		Use:   "show NUMBER",
		Short: "Show an issue",
		Long:  "Show an issue with its ZenHub pipeline and estimate",
		Args:  cobra.ExactArgs(constants.ExactlyOneArgument),
		RunE: func(cmd *cobra.Command, args []string) error {
			number, err := parseIssueNumber(args[0])
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

			issue, err := client.GetIssue(cmd.Context(), number)
			if err != nil {
				return err
			}

			repository, err := client.GetRepository(cmd.Context())
			if err != nil {
				return err
			}

			zenhubIssue, err := client.GetZenHubIssue(cmd.Context(), repository, issue)
			if err != nil {
				return err
			}

			details := IssueDetails{Issue: issue, ZenHub: zenhubIssue}

			return p.print(details, issueDetailsTable(details))
		},
	}
}

func issueDetailsTable(details IssueDetails) table {
	pipeline := constants.None
	if details.ZenHub.Pipeline != nil {
		pipeline = details.ZenHub.Pipeline.Name
	}

	estimate := constants.None
	if details.ZenHub.Estimate != nil {
		estimate = strconv.Itoa(details.ZenHub.Estimate.Value)
	}

	return table{
		headers: []string{"property", "value"},
		rows: [][]string{
			{"Number", strconv.Itoa(details.Issue.Number)},
			{"Title", details.Issue.Title},
			{"State", string(details.Issue.State)},
			{"Milestone", milestoneTitle(details.Issue.Milestone)},
			{"Assignees", assigneeLogins(details.Issue.Assignees)},
			{"Pipeline", pipeline},
			{"Estimate", estimate},
		},
	}
}

// searchIssues runs a search over the configured repository and prints every
// result, warning when GitHub reports incomplete pages.
func searchIssues(s *session, cmd *cobra.Command, builder *api.SearchQueryBuilder) error {
	client, cfg, err := s.client(cmd)
	if err != nil {
		return err
	}

	p, err := newPrinter(cmd, cfg)
	if err != nil {
		return err
	}

	sequence := client.SearchIssues(cmd.Context(), builder)

	issues, err := sequence.All()
	if err != nil {
		return fmt.Errorf("searching issues: %w", err)
	}

	warnIncomplete(cmd, sequence)

	if issues == nil {
		issues = []api.Issue{}
	}

	return p.print(issues, issuesTable(issues))
}

func newIssuesClosedCommand(s *session) *cobra.Command {
	var since string

	cmd := &cobra.Command{
		Use:   "closed",
		Short: "List issues closed since a date",
		Long:  "List issues closed on or after --since, least recently updated first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			date, err := parseDate(since)
			if err != nil {
				return err
			}

			builder := api.NewSearchQueryBuilder().ClosedOnOrAfter(date)

			return searchIssues(s, cmd, builder)
		},
	}

	cmd.Flags().StringVar(&since, "since", "", "closed on or after this date (YYYY-MM-DD)")
	_ = cmd.MarkFlagRequired("since")

	return cmd
}

func newIssuesOpenCommand(s *session) *cobra.Command {
	var milestone string

	cmd := &cobra.Command{
		Use:   "open",
		Short: "List open issues",
		Long:  "List open issues, optionally only those in the milestone titled --milestone",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			builder := api.NewSearchQueryBuilder().State(api.StateOpen)
			if milestone != "" {
				builder.Milestone(milestone)
			}

			return searchIssues(s, cmd, builder)
		},
	}

	cmd.Flags().StringVar(&milestone, "milestone", "", "milestone title")

	return cmd
}

func newIssuesMoveCommand(s *session) *cobra.Command {
	return &cobra.Command{
		Use:   "move NUMBER PIPELINE",
		Short: "Move an issue to a pipeline",
		Long:  "Move an issue to the top of a ZenHub pipeline in the first workspace of the repository",
		Args:  cobra.ExactArgs(constants.TwoArguments),
		RunE: func(cmd *cobra.Command, args []string) error {
			number, err := parseIssueNumber(args[0])
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

			ctx := cmd.Context()

			repository, err := client.GetRepository(ctx)
			if err != nil {
				return err
			}

			issue, err := client.GetIssue(ctx, number)
			if err != nil {
				return err
			}

			workspace, err := client.GetFirstWorkspace(ctx, repository)
			if err != nil {
				return err
			}

			board, err := client.GetBoard(ctx, repository, workspace)
			if err != nil {
				return err
			}

			pipeline, err := decadog.FindPipeline(board, args[1])
			if err != nil {
				return err
			}

			if err := client.MoveIssueToPipeline(ctx, repository, workspace, issue, pipeline); err != nil {
				return err
			}

			return p.message(pipeline, fmt.Sprintf("Moved #%d to %s", issue.Number, pipeline.Name))
		},
	}
}

func newIssuesEstimateCommand(s *session) *cobra.Command {
	return &cobra.Command{
		Use:   "estimate NUMBER POINTS",
		Short: "Estimate an issue",
		Long:  "Set the ZenHub story point estimate of an issue",
		Args:  cobra.ExactArgs(constants.TwoArguments),
		RunE: func(cmd *cobra.Command, args []string) error {
			number, err := parseIssueNumber(args[0])
			if err != nil {
				return err
			}

			estimate, err := parseEstimate(args[1])
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

			repository, err := client.GetRepository(cmd.Context())
			if err != nil {
				return err
			}

			issue := &api.Issue{Number: number}
			if err := client.SetEstimate(cmd.Context(), repository, issue, estimate); err != nil {
				return err
			}

			return p.message(api.Estimate{Value: estimate}, fmt.Sprintf("Estimated #%d at %d", number, estimate))
		},
	}
}

func newIssuesAssignCommand(s *session) *cobra.Command {
	return &cobra.Command{
		Use:   "assign NUMBER LOGIN",
		Short: "Assign an issue",
		Long:  "Replace the assignees of an issue with one member of the owning organization",
		Args:  cobra.ExactArgs(constants.TwoArguments),
		RunE: func(cmd *cobra.Command, args []string) error {
			number, err := parseIssueNumber(args[0])
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

			members, err := client.GetMembers(cmd.Context())
			if err != nil {
				return err
			}

			member, err := decadog.FindMember(members, args[1])
			if err != nil {
				return err
			}

			updated, err := client.AssignMemberToIssue(cmd.Context(), member, &api.Issue{Number: number})
			if err != nil {
				return err
			}

			return p.print(updated, issuesTable([]api.Issue{*updated}))
		},
	}
}

func newIssuesMilestoneCommand(s *session) *cobra.Command {
	var none bool

	cmd := &cobra.Command{
		Use:   "milestone NUMBER [SPRINT]",
		Short: "Put an issue in a sprint",
		Long:  "Set the milestone of an issue to sprint SPRINT, or remove it with --none",
		Args:  cobra.RangeArgs(constants.ExactlyOneArgument, constants.TwoArguments),
		RunE: func(cmd *cobra.Command, args []string) error {
			if none == (len(args) == constants.TwoArguments) {
				return constants.ErrMilestoneArgument
			}

			number, err := parseIssueNumber(args[0])
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

			var milestone *api.Milestone

			if !none {
				sprint, err := parseSprintNumber(args[1])
				if err != nil {
					return err
				}

				if milestone, err = client.FindSprint(cmd.Context(), sprint); err != nil {
					return err
				}
			}

			updated, err := client.AssignIssueToMilestone(cmd.Context(), &api.Issue{Number: number}, milestone)
			if err != nil {
				return err
			}

			return p.print(updated, issuesTable([]api.Issue{*updated}))
		},
	}

	cmd.Flags().BoolVar(&none, "none", false, "remove the issue from its milestone")

	return cmd
}
