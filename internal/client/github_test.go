package client

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/fivetwenty-io/decadog/pkg/api"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGitHubClient_GetIssue(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/repos/tommilligan/decadog/issues/42", r.URL.Path)
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "token test-token", r.Header.Get("Authorization"))

		writeJSON(w, http.StatusOK, map[string]any{
			"id":     1001,
			"number": 42,
			"state":  "open",
			"title":  "Answer everything",
			"milestone": map[string]any{
				"id": 7, "number": 3, "title": "Sprint 3", "state": "open",
			},
			"assignees":  []map[string]any{{"login": "octocat", "id": 1}},
			"created_at": "2019-04-22T10:00:00Z",
			"updated_at": "2019-04-23T10:00:00Z",
		})
	}))
	defer server.Close()

	github := NewGitHubClient(newTestHTTPClient(t, server.URL))

	issue, err := github.GetIssue(context.Background(), "tommilligan", "decadog", 42)
	require.NoError(t, err)
	assert.Equal(t, 42, issue.Number)
	assert.Equal(t, api.StateOpen, issue.State)
	require.NotNil(t, issue.Milestone)
	assert.Equal(t, "Sprint 3", issue.Milestone.Title)
	assert.Equal(t, []api.OrganizationMember{{Login: "octocat", ID: 1}}, issue.Assignees)
	assert.Equal(t, "42: Answer everything", issue.String())
}

func TestGitHubClient_GetIssue_NotFound(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusNotFound, map[string]any{
			"message":           "Not Found",
			"documentation_url": "https://developer.github.com/v3/issues/#get-a-single-issue",
		})
	}))
	defer server.Close()

	github := NewGitHubClient(newTestHTTPClient(t, server.URL))

	issue, err := github.GetIssue(context.Background(), "o", "r", 1)
	require.Error(t, err)
	assert.Nil(t, issue)
	assert.True(t, api.IsNotFound(err))
	assert.Contains(t, err.Error(), "getting issue 1")

	clientErr := &api.ClientError{}
	require.ErrorAs(t, err, &clientErr)
	assert.Equal(t, "Not Found", clientErr.Body.Message)
}

func TestGitHubClient_PatchIssue(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		update   *api.IssueUpdate
		expected map[string]any
	}{
		{
			name:     "clear milestone",
			update:   &api.IssueUpdate{Milestone: api.Clear[int]()},
			expected: map[string]any{"milestone": nil},
		},
		{
			name:     "set milestone",
			update:   &api.IssueUpdate{Milestone: api.Set(3)},
			expected: map[string]any{"milestone": float64(3)},
		},
		{
			name:     "assign",
			update:   &api.IssueUpdate{Assignees: api.Set([]string{"octocat"})},
			expected: map[string]any{"assignees": []any{"octocat"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, "/repos/o/r/issues/5", r.URL.Path)
				assert.Equal(t, http.MethodPatch, r.Method)

				var body map[string]any
				assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))

				if diff := cmp.Diff(tt.expected, body); diff != "" {
					t.Errorf("payload mismatch (-want +got):\n%s", diff)
				}

				writeJSON(w, http.StatusOK, map[string]any{"number": 5, "title": "Five", "state": "open"})
			}))
			defer server.Close()

			github := NewGitHubClient(newTestHTTPClient(t, server.URL))

			issue, err := github.PatchIssue(context.Background(), "o", "r", 5, tt.update)
			require.NoError(t, err)
			assert.Equal(t, 5, issue.Number)
		})
	}
}

func TestGitHubClient_GetRepository(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/repos/tommilligan/decadog", r.URL.Path)

		writeJSON(w, http.StatusOK, api.Repository{ID: 171244582, Name: "decadog", FullName: "tommilligan/decadog"})
	}))
	defer server.Close()

	github := NewGitHubClient(newTestHTTPClient(t, server.URL))

	repository, err := github.GetRepository(context.Background(), "tommilligan", "decadog")
	require.NoError(t, err)
	assert.Equal(t, int64(171244582), repository.ID)
}

func TestGitHubClient_GetMembers(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/orgs/acme/members", r.URL.Path)
		assert.Equal(t, "100", r.URL.Query().Get("per_page"))

		writeJSON(w, http.StatusOK, []api.OrganizationMember{{Login: "a", ID: 1}, {Login: "b", ID: 2}})
	}))
	defer server.Close()

	github := NewGitHubClient(newTestHTTPClient(t, server.URL))

	members, err := github.GetMembers(context.Background(), "acme", &api.MemberListOptions{PerPage: 100})
	require.NoError(t, err)
	assert.Len(t, members, 2)
}

func TestGitHubClient_GetMilestones(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/repos/o/r/milestones", r.URL.Path)
		assert.Equal(t, "all", r.URL.Query().Get("state"))
		assert.False(t, r.URL.Query().Has("sort"))

		writeJSON(w, http.StatusOK, []api.Milestone{{Number: 1, Title: "Sprint 1", State: api.StateClosed}})
	}))
	defer server.Close()

	github := NewGitHubClient(newTestHTTPClient(t, server.URL))

	milestones, err := github.GetMilestones(context.Background(), "o", "r", &api.MilestoneListOptions{State: api.StateAll})
	require.NoError(t, err)
	require.Len(t, milestones, 1)
	assert.Equal(t, "Sprint 1 (closed)", milestones[0].String())
}

func TestGitHubClient_CreateMilestone(t *testing.T) {
	t.Parallel()

	due := time.Date(2019, 5, 6, 0, 0, 0, 0, time.UTC)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/repos/o/r/milestones", r.URL.Path)
		assert.Equal(t, http.MethodPost, r.Method)

		data, _ := io.ReadAll(r.Body)
		assert.JSONEq(t, `{"title":"Sprint 4","due_on":"2019-05-06T00:00:00Z"}`, string(data))

		writeJSON(w, http.StatusCreated, api.Milestone{Number: 4, Title: "Sprint 4", State: api.StateOpen, DueOn: &due})
	}))
	defer server.Close()

	github := NewGitHubClient(newTestHTTPClient(t, server.URL))

	milestone, err := github.CreateMilestone(context.Background(), "o", "r", &api.MilestoneUpdate{
		Title: api.Set("Sprint 4"),
		DueOn: api.Set(due),
	})
	require.NoError(t, err)
	assert.Equal(t, 4, milestone.Number)
}

func TestGitHubClient_CreateMilestone_ValidationFailed(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusUnprocessableEntity, api.ClientErrorBody{
			Message: "Validation Failed",
			Errors:  []api.ClientErrorDetail{{Resource: "Milestone", Field: "title", Code: "already_exists"}},
		})
	}))
	defer server.Close()

	github := NewGitHubClient(newTestHTTPClient(t, server.URL))

	_, err := github.CreateMilestone(context.Background(), "o", "r", &api.MilestoneUpdate{Title: api.Set("Sprint 4")})
	require.Error(t, err)
	assert.True(t, api.IsValidationFailed(err))
	assert.Contains(t, err.Error(), "already_exists")
}

func TestGitHubClient_PatchMilestone(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/repos/o/r/milestones/4", r.URL.Path)
		assert.Equal(t, http.MethodPatch, r.Method)

		data, _ := io.ReadAll(r.Body)
		assert.JSONEq(t, `{"state":"closed"}`, string(data))

		writeJSON(w, http.StatusOK, api.Milestone{Number: 4, Title: "Sprint 4", State: api.StateClosed})
	}))
	defer server.Close()

	github := NewGitHubClient(newTestHTTPClient(t, server.URL))

	milestone, err := github.PatchMilestone(context.Background(), "o", "r", 4, &api.MilestoneUpdate{State: api.Set(api.StateClosed)})
	require.NoError(t, err)
	assert.Equal(t, api.StateClosed, milestone.State)
}

func TestGitHubClient_SearchIssuesPage(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/search/issues", r.URL.Path)
		assert.Equal(t,
			"order=asc&page=2&per_page=100&q=state%3Aclosed+closed%3A%3E%3D2011-04-22+repo%3Atommilligan%2Fdecadog+type%3Aissue&sort=updated",
			r.URL.RawQuery,
		)

		writeJSON(w, http.StatusOK, map[string]any{
			"total_count":        1,
			"incomplete_results": true,
			"items":              []map[string]any{{"number": 9, "title": "Nine", "state": "closed"}},
		})
	}))
	defer server.Close()

	github := NewGitHubClient(newTestHTTPClient(t, server.URL))

	query := api.SearchQuery{
		Q:       "state:closed closed:>=2011-04-22 repo:tommilligan/decadog type:issue",
		Sort:    "updated",
		Order:   api.Ascending,
		PerPage: 100,
	}

	results, err := github.SearchIssuesPage(context.Background(), query, 2)
	require.NoError(t, err)
	assert.True(t, results.IncompleteResults)
	assert.Equal(t, 1, results.TotalCount)
	require.Len(t, results.Items, 1)
	assert.Equal(t, 9, results.Items[0].Number)
}

func TestGitHubClient_SearchIssues(t *testing.T) {
	t.Parallel()

	var (
		mu    sync.Mutex
		pages []string
	)

	requested := func() []string {
		mu.Lock()
		defer mu.Unlock()

		return append([]string(nil), pages...)
	}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		page := r.URL.Query().Get("page")

		mu.Lock()
		pages = append(pages, page)
		mu.Unlock()

		assert.Equal(t, "2", r.URL.Query().Get("per_page"))

		switch page {
		case "1":
			writeJSON(w, http.StatusOK, map[string]any{"items": []api.Issue{{Number: 1}, {Number: 2}}})
		case "2":
			writeJSON(w, http.StatusOK, map[string]any{"items": []api.Issue{{Number: 3}}})
		default:
			t.Errorf("unexpected page %q", page)
		}
	}))
	defer server.Close()

	github := NewGitHubClient(newTestHTTPClient(t, server.URL))

	seq := github.SearchIssues(context.Background(), api.SearchQuery{Q: "type:issue", PerPage: 2})
	assert.Empty(t, requested())

	issues, err := seq.All()
	require.NoError(t, err)
	require.Len(t, issues, 3)
	assert.Equal(t, 3, issues[2].Number)
	assert.Equal(t, []string{"1", "2"}, requested())
}

func TestGitHubClient_SearchIssues_ServerError(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("page") == "1" {
			writeJSON(w, http.StatusOK, map[string]any{"items": []api.Issue{{Number: 1}}})

			return
		}

		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	github := NewGitHubClient(newTestHTTPClient(t, server.URL))

	issues, err := github.SearchIssues(context.Background(), api.SearchQuery{Q: "x", PerPage: 1}).All()
	require.Error(t, err)
	assert.Len(t, issues, 1)

	statusErr := &api.UnexpectedStatusError{}
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, http.StatusBadGateway, statusErr.StatusCode)
}
