package decadog

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/fivetwenty-io/decadog/internal/constants"
	"github.com/fivetwenty-io/decadog/pkg/api"
	"go.uber.org/zap"
)

// Static errors for err113 compliance.
var (
	ErrGitHubClientRequired = errors.New("github client is required")
	ErrZenHubClientRequired = errors.New("zenhub client is required")
)

// Sprint is a GitHub milestone paired with its ZenHub start date.
type Sprint struct {
	Milestone api.Milestone `json:"milestone"  yaml:"milestone"`
	StartDate api.StartDate `json:"start_date" yaml:"start_date"`
}

// PartialSprintError is returned by CreateSprint when the milestone was
// created but its start date could not be set. The milestone is left in
// place.
type PartialSprintError struct {
	Milestone api.Milestone
	Err       error
}

// Error implements the error interface.
func (e *PartialSprintError) Error() string {
	return fmt.Sprintf("sprint milestone %q created but start date not set: %v", e.Milestone.Title, e.Err)
}

// Unwrap returns the start date failure.
func (e *PartialSprintError) Unwrap() error {
	return e.Err
}

// Client composes the GitHub and ZenHub clients for one repository.
type Client struct {
	owner    string
	repo     string
	github   api.GitHubClient
	zenhub   api.ZenHubClient
	id       api.ClientID
	logger   *zap.Logger
	pageSize int
}

// Option configures a Client.
type Option func(*Client)

// WithLogger sets the logger used for search warnings.
func WithLogger(logger *zap.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithPageSize sets the search page size.
func WithPageSize(pageSize int) Option {
	return func(c *Client) {
		if pageSize > 0 {
			c.pageSize = pageSize
		}
	}
}

// NewClient creates a client for owner/repo over the given backends.
func NewClient(owner, repo string, github api.GitHubClient, zenhub api.ZenHubClient, options ...Option) (*Client, error) {
	if owner == "" {
		return nil, api.ErrOwnerRequired
	}

	if repo == "" {
		return nil, api.ErrRepoRequired
	}

	if github == nil {
		return nil, ErrGitHubClientRequired
	}

	if zenhub == nil {
		return nil, ErrZenHubClientRequired
	}

	client := &Client{
		owner:    owner,
		repo:     repo,
		github:   github,
		zenhub:   zenhub,
		pageSize: constants.SearchPageSize,
		id: api.NewClientID(
			[]byte(owner),
			[]byte(repo),
			github.ID().Bytes(),
			zenhub.ID().Bytes(),
		),
	}

	for _, option := range options {
		option(client)
	}

	return client, nil
}

// ID returns the identity fingerprint of the client.
func (c *Client) ID() api.ClientID {
	return c.id
}

// Owner returns the repository owner.
func (c *Client) Owner() string {
	return c.owner
}

// Repo returns the repository name.
func (c *Client) Repo() string {
	return c.repo
}

// String implements fmt.Stringer.
func (c *Client) String() string {
	return "decadog client " + c.id.String()
}

// GetRepository fetches the configured repository.
func (c *Client) GetRepository(ctx context.Context) (*api.Repository, error) {
	return c.github.GetRepository(ctx, c.owner, c.repo)
}

// GetIssue fetches an issue of the configured repository.
func (c *Client) GetIssue(ctx context.Context, number int) (*api.Issue, error) {
	return c.github.GetIssue(ctx, c.owner, c.repo, number)
}

// GetMilestones lists milestones. Nil options list open milestones.
func (c *Client) GetMilestones(ctx context.Context, options *api.MilestoneListOptions) ([]api.Milestone, error) {
	if options == nil {
		options = &api.MilestoneListOptions{PerPage: constants.MilestonesPageSize}
	}

	return c.github.GetMilestones(ctx, c.owner, c.repo, options)
}

// GetMembers lists the members of the owning organization.
func (c *Client) GetMembers(ctx context.Context) ([]api.OrganizationMember, error) {
	return c.github.GetMembers(ctx, c.owner, &api.MemberListOptions{PerPage: constants.MembersPageSize})
}

// GetStartDate fetches the ZenHub start date of a milestone.
func (c *Client) GetStartDate(ctx context.Context, repository *api.Repository, milestone *api.Milestone) (*api.StartDate, error) {
	return c.zenhub.GetStartDate(ctx, repository.ID, milestone.Number)
}

// GetFirstWorkspace fetches the first ZenHub workspace of a repository.
func (c *Client) GetFirstWorkspace(ctx context.Context, repository *api.Repository) (*api.Workspace, error) {
	return c.zenhub.GetFirstWorkspace(ctx, repository.ID)
}

// GetBoard fetches the ZenHub board of a repository in a workspace.
func (c *Client) GetBoard(ctx context.Context, repository *api.Repository, workspace *api.Workspace) (*api.Board, error) {
	return c.zenhub.GetBoard(ctx, repository.ID, workspace.ID)
}

// GetZenHubIssue fetches the ZenHub metadata of an issue.
func (c *Client) GetZenHubIssue(ctx context.Context, repository *api.Repository, issue *api.Issue) (*api.ZenHubIssue, error) {
	return c.zenhub.GetIssue(ctx, repository.ID, issue.Number)
}

// SetEstimate sets the ZenHub estimate of an issue.
func (c *Client) SetEstimate(ctx context.Context, repository *api.Repository, issue *api.Issue, estimate int) error {
	return c.zenhub.SetEstimate(ctx, repository.ID, issue.Number, estimate)
}

// GetSprint pairs a milestone with its start date.
func (c *Client) GetSprint(ctx context.Context, repository *api.Repository, milestone api.Milestone) (*Sprint, error) {
	startDate, err := c.GetStartDate(ctx, repository, &milestone)
	if err != nil {
		return nil, fmt.Errorf("getting sprint %q: %w", milestone.Title, err)
	}

	return &Sprint{Milestone: milestone, StartDate: *startDate}, nil
}

// CreateSprint creates the milestone "Sprint <number>" due on dueOn, then
// sets its ZenHub start date. If the second call fails the milestone is not
// removed and a *PartialSprintError is returned.
func (c *Client) CreateSprint(ctx context.Context, repository *api.Repository, number string, startDate, dueOn time.Time) (*Sprint, error) {
	milestone, err := c.github.CreateMilestone(ctx, c.owner, c.repo, &api.MilestoneUpdate{
		Title: api.Set(SprintTitle(number)),
		DueOn: api.Set(dueOn),
	})
	if err != nil {
		return nil, fmt.Errorf("creating sprint %s: %w", number, err)
	}

	start, err := c.zenhub.SetStartDate(ctx, repository.ID, milestone.Number, startDate)
	if err != nil {
		return nil, &PartialSprintError{Milestone: *milestone, Err: err}
	}

	return &Sprint{Milestone: *milestone, StartDate: *start}, nil
}

// MoveIssueToPipeline moves an issue to the top of a pipeline.
func (c *Client) MoveIssueToPipeline(ctx context.Context, repository *api.Repository, workspace *api.Workspace, issue *api.Issue, pipeline *api.Pipeline) error {
	position := api.PipelinePosition{PipelineID: pipeline.ID, Position: api.PositionTop}

	return c.zenhub.MoveIssue(ctx, repository.ID, workspace.ID, issue.Number, position)
}

// AssignIssueToMilestone replaces the milestone of an issue. A nil milestone
// removes it.
func (c *Client) AssignIssueToMilestone(ctx context.Context, issue *api.Issue, milestone *api.Milestone) (*api.Issue, error) {
	update := &api.IssueUpdate{Milestone: api.Clear[int]()}
	if milestone != nil {
		update.Milestone = api.Set(milestone.Number)
	}

	return c.github.PatchIssue(ctx, c.owner, c.repo, issue.Number, update)
}

// AssignMemberToIssue replaces the assignees of an issue with member.
func (c *Client) AssignMemberToIssue(ctx context.Context, member *api.OrganizationMember, issue *api.Issue) (*api.Issue, error) {
	update := &api.IssueUpdate{Assignees: api.Set([]string{member.Login})}

	return c.github.PatchIssue(ctx, c.owner, c.repo, issue.Number, update)
}

// SearchIssues searches issues of the configured repository, least recently
// updated first. The builder is not modified.
func (c *Client) SearchIssues(ctx context.Context, builder *api.SearchQueryBuilder, options ...api.SequenceOption) *api.SearchSequence[api.Issue] {
	if builder == nil {
		builder = api.NewSearchQueryBuilder()
	}

	query := api.SearchQuery{
		Q:       builder.Clone().OwnerRepo(c.owner, c.repo).Issue().Build(),
		Sort:    constants.SearchSortUpdated,
		Order:   api.Ascending,
		PerPage: c.pageSize,
	}

	if c.logger != nil {
		logger := c.logger.With(zap.Stringer("client", c.id))
		options = append([]api.SequenceOption{api.WithSequenceLogger(logger)}, options...)
	}

	return c.github.SearchIssues(ctx, query, options...)
}

// UpdateMilestoneTitle renames a milestone.
func (c *Client) UpdateMilestoneTitle(ctx context.Context, milestone *api.Milestone, title string) (*api.Milestone, error) {
	return c.github.PatchMilestone(ctx, c.owner, c.repo, milestone.Number, &api.MilestoneUpdate{Title: api.Set(title)})
}

// CloseMilestone closes a milestone.
func (c *Client) CloseMilestone(ctx context.Context, milestone *api.Milestone) (*api.Milestone, error) {
	return c.github.PatchMilestone(ctx, c.owner, c.repo, milestone.Number, &api.MilestoneUpdate{State: api.Set(api.StateClosed)})
}

// FindSprint returns the milestone titled "Sprint <number>" in any state.
func (c *Client) FindSprint(ctx context.Context, number string) (*api.Milestone, error) {
	milestones, err := c.GetMilestones(ctx, &api.MilestoneListOptions{
		State:   api.StateAll,
		PerPage: constants.MilestonesPageSize,
	})
	if err != nil {
		return nil, err
	}

	title := SprintTitle(number)
	for i := range milestones {
		if milestones[i].Title == title {
			return &milestones[i], nil
		}
	}

	return nil, fmt.Errorf("%s: %w", title, api.ErrSprintNotFound)
}

// SprintTitle returns the milestone title of a sprint.
func SprintTitle(number string) string {
	return constants.SprintTitlePrefix + number
}

// FindPipeline returns the pipeline named name, ignoring case.
func FindPipeline(board *api.Board, name string) (*api.Pipeline, error) {
	for i := range board.Pipelines {
		if strings.EqualFold(board.Pipelines[i].Name, name) {
			return &board.Pipelines[i], nil
		}
	}

	return nil, fmt.Errorf("%s: %w", name, api.ErrPipelineNotFound)
}

// FindMember returns the member whose login is login, ignoring case.
func FindMember(members []api.OrganizationMember, login string) (*api.OrganizationMember, error) {
	for i := range members {
		if strings.EqualFold(members[i].Login, login) {
			return &members[i], nil
		}
	}

	return nil, fmt.Errorf("%s: %w", login, api.ErrMemberNotFound)
}
