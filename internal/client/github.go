package client

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	internalhttp "github.com/fivetwenty-io/decadog/internal/http"
	"github.com/fivetwenty-io/decadog/pkg/api"
)

// GitHubMediaType is the Accept header sent to GitHub.
const GitHubMediaType = "application/vnd.github.v3+json"

// GitHubClient implements api.GitHubClient.
type GitHubClient struct {
	httpClient *internalhttp.Client
}

// NewGitHubClient creates a new GitHub client.
func NewGitHubClient(httpClient *internalhttp.Client) *GitHubClient {
	return &GitHubClient{
		httpClient: httpClient,
	}
}

// ID implements api.GitHubClient.ID.
func (c *GitHubClient) ID() api.ClientID {
	return c.httpClient.ID()
}

// GetIssue implements api.IssuesClient.GetIssue.
func (c *GitHubClient) GetIssue(ctx context.Context, owner, repo string, number int) (*api.Issue, error) {
	issue, err := internalhttp.Send[api.Issue](ctx, c.httpClient, &internalhttp.Request{
		Method:   http.MethodGet,
		Segments: repoSegments(owner, repo, "issues", strconv.Itoa(number)),
	})
	if err != nil {
		return nil, fmt.Errorf("getting issue %d: %w", number, err)
	}

	return &issue, nil
}

// PatchIssue implements api.IssuesClient.PatchIssue.
func (c *GitHubClient) PatchIssue(ctx context.Context, owner, repo string, number int, update *api.IssueUpdate) (*api.Issue, error) {
	issue, err := internalhttp.Send[api.Issue](ctx, c.httpClient, &internalhttp.Request{
		Method:   http.MethodPatch,
		Segments: repoSegments(owner, repo, "issues", strconv.Itoa(number)),
		Body:     update,
	})
	if err != nil {
		return nil, fmt.Errorf("updating issue %d: %w", number, err)
	}

	return &issue, nil
}

// SearchIssuesPage implements api.IssuesClient.SearchIssuesPage.
func (c *GitHubClient) SearchIssuesPage(ctx context.Context, query api.SearchQuery, page int) (*api.SearchResults[api.Issue], error) {
	results, err := internalhttp.Send[api.SearchResults[api.Issue]](ctx, c.httpClient, &internalhttp.Request{
		Method:   http.MethodGet,
		Segments: []string{"search", "issues"},
		Query:    query.ToValues(page),
	})
	if err != nil {
		return nil, fmt.Errorf("searching issues (page %d): %w", page, err)
	}

	return &results, nil
}

// SearchIssues implements api.IssuesClient.SearchIssues. Pages hold
// query.PerPage items, or api.DefaultSearchPageSize when unset.
func (c *GitHubClient) SearchIssues(ctx context.Context, query api.SearchQuery, options ...api.SequenceOption) *api.SearchSequence[api.Issue] {
	options = append([]api.SequenceOption{api.WithSequenceLogger(c.httpClient.Logger())}, options...)

	return api.NewSearchSequence[api.Issue](ctx, c, query, query.PerPage, options...)
}

// GetRepository implements api.GitHubClient.GetRepository.
func (c *GitHubClient) GetRepository(ctx context.Context, owner, repo string) (*api.Repository, error) {
	repository, err := internalhttp.Send[api.Repository](ctx, c.httpClient, &internalhttp.Request{
		Method:   http.MethodGet,
		Segments: repoSegments(owner, repo),
	})
	if err != nil {
		return nil, fmt.Errorf("getting repository: %w", err)
	}

	return &repository, nil
}

// GetMembers implements api.GitHubClient.GetMembers.
func (c *GitHubClient) GetMembers(ctx context.Context, org string, options *api.MemberListOptions) ([]api.OrganizationMember, error) {
	members, err := internalhttp.Send[[]api.OrganizationMember](ctx, c.httpClient, &internalhttp.Request{
		Method:   http.MethodGet,
		Segments: []string{"orgs", url.PathEscape(org), "members"},
		Query:    options.ToValues(),
	})
	if err != nil {
		return nil, fmt.Errorf("listing members: %w", err)
	}

	return members, nil
}

// GetMilestones implements api.MilestonesClient.GetMilestones.
func (c *GitHubClient) GetMilestones(ctx context.Context, owner, repo string, options *api.MilestoneListOptions) ([]api.Milestone, error) {
	milestones, err := internalhttp.Send[[]api.Milestone](ctx, c.httpClient, &internalhttp.Request{
		Method:   http.MethodGet,
		Segments: repoSegments(owner, repo, "milestones"),
		Query:    options.ToValues(),
	})
	if err != nil {
		return nil, fmt.Errorf("listing milestones: %w", err)
	}

	return milestones, nil
}

// CreateMilestone implements api.MilestonesClient.CreateMilestone.
func (c *GitHubClient) CreateMilestone(ctx context.Context, owner, repo string, create *api.MilestoneUpdate) (*api.Milestone, error) {
	milestone, err := internalhttp.Send[api.Milestone](ctx, c.httpClient, &internalhttp.Request{
		Method:   http.MethodPost,
		Segments: repoSegments(owner, repo, "milestones"),
		Body:     create,
	})
	if err != nil {
		return nil, fmt.Errorf("creating milestone: %w", err)
	}

	return &milestone, nil
}

// PatchMilestone implements api.MilestonesClient.PatchMilestone.
func (c *GitHubClient) PatchMilestone(ctx context.Context, owner, repo string, number int, update *api.MilestoneUpdate) (*api.Milestone, error) {
	milestone, err := internalhttp.Send[api.Milestone](ctx, c.httpClient, &internalhttp.Request{
		Method:   http.MethodPatch,
		Segments: repoSegments(owner, repo, "milestones", strconv.Itoa(number)),
		Body:     update,
	})
	if err != nil {
		return nil, fmt.Errorf("updating milestone %d: %w", number, err)
	}

	return &milestone, nil
}

func repoSegments(owner, repo string, rest ...string) []string {
	return append([]string{"repos", url.PathEscape(owner), url.PathEscape(repo)}, rest...)
}
