package api_test

import (
	"context"
	"errors"
	"testing"

	"github.com/fivetwenty-io/decadog/pkg/api"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

// fakePager serves scripted pages and records every request.
type fakePager struct {
	pages    []*api.SearchResults[int]
	failPage int
	failErr  error
	calls    []int
	queries  []api.SearchQuery
}

func (p *fakePager) SearchPage(_ context.Context, query api.SearchQuery, page int) (*api.SearchResults[int], error) {
	p.calls = append(p.calls, page)
	p.queries = append(p.queries, query)

	if page == p.failPage {
		return nil, p.failErr
	}

	if page > len(p.pages) {
		return &api.SearchResults[int]{}, nil
	}

	return p.pages[page-1], nil
}

func numbered(start, count int) []int {
	items := make([]int, count)
	for i := range items {
		items[i] = start + i
	}

	return items
}

func TestSearchSequence_Lazy(t *testing.T) {
	t.Parallel()

	pager := &fakePager{
		pages: []*api.SearchResults[int]{
			{Items: numbered(1, 3)},
			{Items: numbered(4, 3)},
			{Items: numbered(7, 2)},
		},
	}

	seq := api.NewSearchSequence[int](context.Background(), pager, api.SearchQuery{Q: "type:issue"}, 3)
	assert.Empty(t, pager.calls, "no request before the first pull")

	first, err := seq.Next()
	require.NoError(t, err)
	assert.Equal(t, 1, first)
	assert.Equal(t, []int{1}, pager.calls)

	_, _ = seq.Next()
	_, _ = seq.Next()
	assert.Equal(t, []int{1}, pager.calls, "page boundary not yet crossed")

	fourth, err := seq.Next()
	require.NoError(t, err)
	assert.Equal(t, 4, fourth)
	assert.Equal(t, []int{1, 2}, pager.calls)
}

func TestSearchSequence_All(t *testing.T) {
	t.Parallel()

	pager := &fakePager{
		pages: []*api.SearchResults[int]{
			{Items: numbered(1, 3)},
			{Items: numbered(4, 3)},
			{Items: numbered(7, 2)},
		},
	}

	seq := api.NewSearchSequence[int](context.Background(), pager, api.SearchQuery{Q: "x"}, 3)

	items, err := seq.All()
	require.NoError(t, err)
	assert.Equal(t, numbered(1, 8), items)
	assert.Equal(t, []int{1, 2, 3}, pager.calls)
	assert.Equal(t, 3, seq.PagesFetched())

	_, err = seq.Next()
	require.ErrorIs(t, err, api.ErrNoMoreItems)
	assert.Len(t, pager.calls, 3, "exhausted sequence issues no requests")

	for _, query := range pager.queries {
		assert.Equal(t, 3, query.PerPage)
	}
}

func TestSearchSequence_EmptyFinalPage(t *testing.T) {
	t.Parallel()

	pager := &fakePager{
		pages: []*api.SearchResults[int]{
			{Items: numbered(1, 2)},
			{Items: numbered(3, 2)},
		},
	}

	seq := api.NewSearchSequence[int](context.Background(), pager, api.SearchQuery{}, 2)

	items, err := seq.All()
	require.NoError(t, err)
	assert.Equal(t, numbered(1, 4), items)
	assert.Equal(t, []int{1, 2, 3}, pager.calls)
}

func TestSearchSequence_NoResults(t *testing.T) {
	t.Parallel()

	pager := &fakePager{}
	seq := api.NewSearchSequence[int](context.Background(), pager, api.SearchQuery{}, 0)

	_, err := seq.Next()
	require.ErrorIs(t, err, api.ErrNoMoreItems)
	assert.Equal(t, []int{1}, pager.calls)
	assert.Equal(t, api.DefaultSearchPageSize, pager.queries[0].PerPage)
}

func TestSearchSequence_IncompleteResults(t *testing.T) {
	t.Parallel()

	core, logs := observer.New(zapcore.WarnLevel)

	var hooked []api.IncompleteResults

	pager := &fakePager{
		pages: []*api.SearchResults[int]{
			{Items: numbered(1, 2), IncompleteResults: true},
		},
	}

	seq := api.NewSearchSequence[int](context.Background(), pager, api.SearchQuery{Q: "state:open"}, 5,
		api.WithSequenceLogger(zap.New(core)),
		api.WithIncompleteResultsHook(func(w api.IncompleteResults) { hooked = append(hooked, w) }),
	)

	assert.False(t, seq.Incomplete())

	items, err := seq.All()
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2}, items, "truncated pages still yield their items")

	assert.True(t, seq.Incomplete())
	assert.Equal(t, []api.IncompleteResults{{Page: 1, Items: 2}}, seq.Warnings())
	assert.Equal(t, seq.Warnings(), hooked)

	entries := logs.FilterMessage("incomplete results received from search API").All()
	require.Len(t, entries, 1)
	assert.Equal(t, "state:open", entries[0].ContextMap()["q"])
	assert.Equal(t, int64(1), entries[0].ContextMap()["page"])
}

func TestSearchSequence_ErrorEndsSequence(t *testing.T) {
	t.Parallel()

	failure := &api.TransportError{Method: "GET", URL: "http://example/search/issues", Err: errors.New("reset")}
	pager := &fakePager{
		pages: []*api.SearchResults[int]{
			{Items: numbered(1, 2)},
			{Items: numbered(3, 2)},
		},
		failPage: 2,
		failErr:  failure,
	}

	seq := api.NewSearchSequence[int](context.Background(), pager, api.SearchQuery{}, 2)

	for want := 1; want <= 2; want++ {
		got, err := seq.Next()
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}

	_, err := seq.Next()
	require.Error(t, err)
	assert.True(t, api.IsTransport(err))

	_, err = seq.Next()
	require.ErrorIs(t, err, api.ErrNoMoreItems)

	_, err = seq.Next()
	require.ErrorIs(t, err, api.ErrNoMoreItems)

	assert.Equal(t, []int{1, 2}, pager.calls)
}

func TestSearchSequence_AllReturnsPartialItemsOnError(t *testing.T) {
	t.Parallel()

	failure := errors.New("boom")
	pager := &fakePager{
		pages:    []*api.SearchResults[int]{{Items: numbered(1, 2)}},
		failPage: 2,
		failErr:  failure,
	}

	items, err := api.NewSearchSequence[int](context.Background(), pager, api.SearchQuery{}, 2).All()
	require.ErrorIs(t, err, failure)
	assert.Equal(t, []int{1, 2}, items)
}

func TestSearchSequence_Items(t *testing.T) {
	t.Parallel()

	failure := errors.New("boom")
	pager := &fakePager{
		pages:    []*api.SearchResults[int]{{Items: numbered(1, 2)}},
		failPage: 2,
		failErr:  failure,
	}

	seq := api.NewSearchSequence[int](context.Background(), pager, api.SearchQuery{}, 2)

	var (
		got  []int
		errs []error
	)

	for item, err := range seq.Items() {
		if err != nil {
			errs = append(errs, err)

			continue
		}

		got = append(got, item)
	}

	assert.Equal(t, []int{1, 2}, got)
	require.Len(t, errs, 1)
	require.ErrorIs(t, errs[0], failure)
}

func TestSearchSequence_ItemsStopsEarly(t *testing.T) {
	t.Parallel()

	pager := &fakePager{
		pages: []*api.SearchResults[int]{
			{Items: numbered(1, 2)},
			{Items: numbered(3, 2)},
		},
	}

	seq := api.NewSearchSequence[int](context.Background(), pager, api.SearchQuery{}, 2)

	for item := range seq.Items() {
		if item == 2 {
			break
		}
	}

	assert.Equal(t, []int{1}, pager.calls)
}

func TestSearchSequence_ForEach(t *testing.T) {
	t.Parallel()

	pager := &fakePager{
		pages: []*api.SearchResults[int]{{Items: numbered(1, 3)}},
	}

	var sum int

	err := api.NewSearchSequence[int](context.Background(), pager, api.SearchQuery{}, 5).ForEach(func(i int) error {
		sum += i

		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 6, sum)

	stop := errors.New("stop")
	err = api.NewSearchSequence[int](context.Background(), &fakePager{
		pages: []*api.SearchResults[int]{{Items: numbered(1, 3)}},
	}, api.SearchQuery{}, 5).ForEach(func(int) error { return stop })
	require.ErrorIs(t, err, stop)
}

func TestSearchPagerFunc(t *testing.T) {
	t.Parallel()

	var pager api.SearchPager[string] = api.SearchPagerFunc[string](
		func(_ context.Context, _ api.SearchQuery, page int) (*api.SearchResults[string], error) {
			if page == 1 {
				return &api.SearchResults[string]{Items: []string{"a"}}, nil
			}

			return nil, nil
		})

	items, err := api.NewSearchSequence(context.Background(), pager, api.SearchQuery{}, 1).All()
	require.NoError(t, err)
	assert.Equal(t, []string{"a"}, items)
}
