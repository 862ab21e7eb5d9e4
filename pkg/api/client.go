package api

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// IssuesClient provides access to GitHub issue endpoints.
type IssuesClient interface {
	GetIssue(ctx context.Context, owner, repo string, number int) (*Issue, error)
	PatchIssue(ctx context.Context, owner, repo string, number int, update *IssueUpdate) (*Issue, error)
	SearchIssuesPage(ctx context.Context, query SearchQuery, page int) (*SearchResults[Issue], error)
	SearchIssues(ctx context.Context, query SearchQuery, options ...SequenceOption) *SearchSequence[Issue]
}

// MilestonesClient provides access to GitHub milestone endpoints.
type MilestonesClient interface {
	GetMilestones(ctx context.Context, owner, repo string, options *MilestoneListOptions) ([]Milestone, error)
	CreateMilestone(ctx context.Context, owner, repo string, create *MilestoneUpdate) (*Milestone, error)
	PatchMilestone(ctx context.Context, owner, repo string, number int, update *MilestoneUpdate) (*Milestone, error)
}

// GitHubClient is the issue tracker backend.
type GitHubClient interface {
	IssuesClient
	MilestonesClient

	GetRepository(ctx context.Context, owner, repo string) (*Repository, error)
	GetMembers(ctx context.Context, org string, options *MemberListOptions) ([]OrganizationMember, error)
	ID() ClientID
}

// ZenHubClient is the board and estimation backend. Repositories are
// addressed by their numeric GitHub id.
type ZenHubClient interface {
	GetStartDate(ctx context.Context, repoID int64, milestone int) (*StartDate, error)
	SetStartDate(ctx context.Context, repoID int64, milestone int, date time.Time) (*StartDate, error)
	GetWorkspaces(ctx context.Context, repoID int64) ([]Workspace, error)
	GetFirstWorkspace(ctx context.Context, repoID int64) (*Workspace, error)
	GetBoard(ctx context.Context, repoID int64, workspaceID string) (*Board, error)
	GetIssue(ctx context.Context, repoID int64, number int) (*ZenHubIssue, error)
	SetEstimate(ctx context.Context, repoID int64, number int, estimate int) error
	MoveIssue(ctx context.Context, repoID int64, workspaceID string, number int, position PipelinePosition) error
	ID() ClientID
}

// Config represents the configuration used by decadog.New.
//
// Both tokens are sent as "Authorization: token <value>". Empty base URLs
// select the public GitHub and ZenHub endpoints.
type Config struct {
	// GitHubURL: base URL of the GitHub REST API.
	GitHubURL string
	// GitHubToken: personal access token for GitHub.
	GitHubToken string
	// ZenHubURL: base URL of the ZenHub REST API.
	ZenHubURL string
	// ZenHubToken: API token for ZenHub.
	ZenHubToken string

	// Owner and Repo select the repository every orchestration call targets.
	Owner string
	Repo  string

	// HTTPTimeout: transport timeout for each request. Zero uses the default.
	HTTPTimeout time.Duration
	// UserAgent: overrides the default User-Agent header.
	UserAgent string
	// PageSize: search page size. Zero uses DefaultSearchPageSize.
	PageSize int
	// Logger: optional structured logger. Nil disables logging.
	Logger *zap.Logger
}
