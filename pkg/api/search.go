package api

import (
	"net/url"
	"strconv"
	"strings"
	"time"
)

// SearchResults is one page returned by a search endpoint. IncompleteResults
// means the backend truncated the result set server side.
type SearchResults[T any] struct {
	TotalCount        int  `json:"total_count"`
	IncompleteResults bool `json:"incomplete_results"`
	Items             []T  `json:"items"`
}

// SearchQuery holds the parameters of an issue search. Only Q is required.
type SearchQuery struct {
	Q       string
	Sort    string
	Order   Direction
	PerPage int
}

// ToValues converts the query to URL values for the given 1-based page.
// Unset optional parameters and a zero page are omitted.
func (q SearchQuery) ToValues(page int) url.Values {
	values := url.Values{}
	values.Set("q", q.Q)

	if q.Sort != "" {
		values.Set("sort", q.Sort)
	}

	if q.Order != "" {
		values.Set("order", string(q.Order))
	}

	if q.PerPage > 0 {
		values.Set("per_page", strconv.Itoa(q.PerPage))
	}

	if page > 0 {
		values.Set("page", strconv.Itoa(page))
	}

	return values
}

// SearchQueryBuilder composes the space separated qualifiers of a search
// string, in the order they are added.
type SearchQueryBuilder struct {
	qualifiers []string
}

// NewSearchQueryBuilder returns an empty builder.
func NewSearchQueryBuilder() *SearchQueryBuilder {
	return &SearchQueryBuilder{}
}

// OwnerRepo restricts the search to one repository.
func (b *SearchQueryBuilder) OwnerRepo(owner, repo string) *SearchQueryBuilder {
	return b.add("repo:" + owner + "/" + repo)
}

// Issue restricts the search to issues, excluding pull requests.
func (b *SearchQueryBuilder) Issue() *SearchQueryBuilder {
	return b.add("type:issue")
}

// State restricts the search to a state.
func (b *SearchQueryBuilder) State(state State) *SearchQueryBuilder {
	return b.add("state:" + string(state))
}

// Milestone restricts the search to a milestone title.
func (b *SearchQueryBuilder) Milestone(title string) *SearchQueryBuilder {
	return b.add(`milestone:"` + title + `"`)
}

// Assignee restricts the search to issues assigned to login.
func (b *SearchQueryBuilder) Assignee(login string) *SearchQueryBuilder {
	return b.add("assignee:" + login)
}

// ClosedOnOrAfter restricts the search to issues closed on or after the
// calendar date of t, in t's location.
func (b *SearchQueryBuilder) ClosedOnOrAfter(t time.Time) *SearchQueryBuilder {
	return b.State(StateClosed).add("closed:>=" + t.Format(time.DateOnly))
}

// Clone returns an independent copy of the builder.
func (b *SearchQueryBuilder) Clone() *SearchQueryBuilder {
	return &SearchQueryBuilder{qualifiers: append([]string(nil), b.qualifiers...)}
}

// Build returns the query string.
func (b *SearchQueryBuilder) Build() string {
	return strings.Join(b.qualifiers, " ")
}

func (b *SearchQueryBuilder) add(qualifier string) *SearchQueryBuilder {
	b.qualifiers = append(b.qualifiers, qualifier)

	return b
}
