package client

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	internalhttp "github.com/fivetwenty-io/decadog/internal/http"
	"github.com/fivetwenty-io/decadog/pkg/api"
)

// ZenHubClient implements api.ZenHubClient.
type ZenHubClient struct {
	httpClient *internalhttp.Client
}

// NewZenHubClient creates a new ZenHub client.
func NewZenHubClient(httpClient *internalhttp.Client) *ZenHubClient {
	return &ZenHubClient{
		httpClient: httpClient,
	}
}

// ID implements api.ZenHubClient.ID.
func (c *ZenHubClient) ID() api.ClientID {
	return c.httpClient.ID()
}

// GetStartDate implements api.ZenHubClient.GetStartDate.
func (c *ZenHubClient) GetStartDate(ctx context.Context, repoID int64, milestone int) (*api.StartDate, error) {
	startDate, err := internalhttp.Send[api.StartDate](ctx, c.httpClient, &internalhttp.Request{
		Method:   http.MethodGet,
		Segments: startDateSegments(repoID, milestone),
	})
	if err != nil {
		return nil, fmt.Errorf("getting start date of milestone %d: %w", milestone, err)
	}

	return &startDate, nil
}

// SetStartDate implements api.ZenHubClient.SetStartDate.
func (c *ZenHubClient) SetStartDate(ctx context.Context, repoID int64, milestone int, date time.Time) (*api.StartDate, error) {
	startDate, err := internalhttp.Send[api.StartDate](ctx, c.httpClient, &internalhttp.Request{
		Method:   http.MethodPost,
		Segments: startDateSegments(repoID, milestone),
		Body:     api.StartDate{StartDate: date},
	})
	if err != nil {
		return nil, fmt.Errorf("setting start date of milestone %d: %w", milestone, err)
	}

	return &startDate, nil
}

// GetWorkspaces implements api.ZenHubClient.GetWorkspaces.
func (c *ZenHubClient) GetWorkspaces(ctx context.Context, repoID int64) ([]api.Workspace, error) {
	workspaces, err := internalhttp.Send[[]api.Workspace](ctx, c.httpClient, &internalhttp.Request{
		Method:   http.MethodGet,
		Segments: []string{"p2", "repositories", formatID(repoID), "workspaces"},
	})
	if err != nil {
		return nil, fmt.Errorf("listing workspaces: %w", err)
	}

	return workspaces, nil
}

// GetFirstWorkspace implements api.ZenHubClient.GetFirstWorkspace.
func (c *ZenHubClient) GetFirstWorkspace(ctx context.Context, repoID int64) (*api.Workspace, error) {
	workspaces, err := c.GetWorkspaces(ctx, repoID)
	if err != nil {
		return nil, err
	}

	if len(workspaces) == 0 {
		return nil, fmt.Errorf("repository %d: %w", repoID, api.ErrNoWorkspace)
	}

	return &workspaces[0], nil
}

// GetBoard implements api.ZenHubClient.GetBoard.
func (c *ZenHubClient) GetBoard(ctx context.Context, repoID int64, workspaceID string) (*api.Board, error) {
	board, err := internalhttp.Send[api.Board](ctx, c.httpClient, &internalhttp.Request{
		Method:   http.MethodGet,
		Segments: workspaceSegments(workspaceID, repoID, "board"),
	})
	if err != nil {
		return nil, fmt.Errorf("getting board: %w", err)
	}

	return &board, nil
}

// GetIssue implements api.ZenHubClient.GetIssue.
func (c *ZenHubClient) GetIssue(ctx context.Context, repoID int64, number int) (*api.ZenHubIssue, error) {
	issue, err := internalhttp.Send[api.ZenHubIssue](ctx, c.httpClient, &internalhttp.Request{
		Method:   http.MethodGet,
		Segments: issueSegments(repoID, number),
	})
	if err != nil {
		return nil, fmt.Errorf("getting zenhub issue %d: %w", number, err)
	}

	return &issue, nil
}

// SetEstimate implements api.ZenHubClient.SetEstimate.
func (c *ZenHubClient) SetEstimate(ctx context.Context, repoID int64, number int, estimate int) error {
	_, err := internalhttp.Send[api.NoContent](ctx, c.httpClient, &internalhttp.Request{
		Method:   http.MethodPut,
		Segments: append(issueSegments(repoID, number), "estimate"),
		Body:     api.EstimateUpdate{Estimate: estimate},
	})
	if err != nil {
		return fmt.Errorf("setting estimate of issue %d: %w", number, err)
	}

	return nil
}

// MoveIssue implements api.ZenHubClient.MoveIssue.
func (c *ZenHubClient) MoveIssue(ctx context.Context, repoID int64, workspaceID string, number int, position api.PipelinePosition) error {
	_, err := internalhttp.Send[api.NoContent](ctx, c.httpClient, &internalhttp.Request{
		Method:   http.MethodPost,
		Segments: workspaceSegments(workspaceID, repoID, "issues", strconv.Itoa(number), "moves"),
		Body:     position,
	})
	if err != nil {
		return fmt.Errorf("moving issue %d: %w", number, err)
	}

	return nil
}

func formatID(id int64) string {
	return strconv.FormatInt(id, 10)
}

func startDateSegments(repoID int64, milestone int) []string {
	return []string{"p1", "repositories", formatID(repoID), "milestones", strconv.Itoa(milestone), "start_date"}
}

func issueSegments(repoID int64, number int) []string {
	return []string{"p1", "repositories", formatID(repoID), "issues", strconv.Itoa(number)}
}

func workspaceSegments(workspaceID string, repoID int64, rest ...string) []string {
	segments := []string{"p2", "workspaces", url.PathEscape(workspaceID), "repositories", formatID(repoID)}

	return append(segments, rest...)
}
