package api

import (
	"context"
	"errors"
	"iter"

	"go.uber.org/zap"
)

// DefaultSearchPageSize is the page size used when none is given. It is the
// largest page the GitHub search API serves.
const DefaultSearchPageSize = 100

// SearchPager fetches a single page of search results. Pages are 1-based.
type SearchPager[T any] interface {
	SearchPage(ctx context.Context, query SearchQuery, page int) (*SearchResults[T], error)
}

// SearchPagerFunc adapts a function to SearchPager.
type SearchPagerFunc[T any] func(ctx context.Context, query SearchQuery, page int) (*SearchResults[T], error)

// SearchPage implements SearchPager.
func (f SearchPagerFunc[T]) SearchPage(ctx context.Context, query SearchQuery, page int) (*SearchResults[T], error) {
	return f(ctx, query, page)
}

// IncompleteResults records a page the backend reported as truncated.
type IncompleteResults struct {
	Page  int
	Items int
}

type sequenceOptions struct {
	logger *zap.Logger
	hook   func(IncompleteResults)
}

// SequenceOption configures a SearchSequence.
type SequenceOption func(*sequenceOptions)

// WithSequenceLogger sets the logger that receives incomplete results warnings.
func WithSequenceLogger(logger *zap.Logger) SequenceOption {
	return func(o *sequenceOptions) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithIncompleteResultsHook registers a callback invoked once per truncated
// page, before that page's first item is returned.
func WithIncompleteResultsHook(hook func(IncompleteResults)) SequenceOption {
	return func(o *sequenceOptions) {
		o.hook = hook
	}
}

// SearchSequence is a lazy, forward-only sequence of search results spanning
// any number of pages. A page is requested only when the consumer asks for
// an item past the end of the previous one.
//
// The sequence ends after a page shorter than the page size. A failed page
// fetch is returned once from Next and ends the sequence. Once ended, Next
// returns ErrNoMoreItems without issuing requests.
//
// A SearchSequence is not safe for concurrent use and must not outlive the
// pager it borrows.
type SearchSequence[T any] struct {
	ctx      context.Context
	pager    SearchPager[T]
	query    SearchQuery
	pageSize int

	nextPage  int
	buffer    []T
	position  int
	lastPage  bool
	fetched   int
	warnings  []IncompleteResults
	logger    *zap.Logger
	onPartial func(IncompleteResults)
}

// NewSearchSequence creates a sequence over pager. A non-positive pageSize
// selects DefaultSearchPageSize. No request is made until Next is called.
func NewSearchSequence[T any](ctx context.Context, pager SearchPager[T], query SearchQuery, pageSize int, options ...SequenceOption) *SearchSequence[T] {
	if pageSize <= 0 {
		pageSize = DefaultSearchPageSize
	}

	opts := sequenceOptions{logger: zap.NewNop()}
	for _, option := range options {
		option(&opts)
	}

	query.PerPage = pageSize

	return &SearchSequence[T]{
		ctx:       ctx,
		pager:     pager,
		query:     query,
		pageSize:  pageSize,
		nextPage:  1,
		logger:    opts.logger,
		onPartial: opts.hook,
	}
}

// Next returns the next item. It returns ErrNoMoreItems once the sequence is
// exhausted, and the page error if fetching a page failed.
func (s *SearchSequence[T]) Next() (T, error) {
	var zero T

	if s.position < len(s.buffer) {
		item := s.buffer[s.position]
		s.position++

		return item, nil
	}

	if s.lastPage {
		return zero, ErrNoMoreItems
	}

	page := s.nextPage

	results, err := s.pager.SearchPage(s.ctx, s.query, page)
	s.fetched++

	if err != nil {
		s.lastPage = true
		s.buffer = nil

		return zero, err
	}

	if results == nil {
		results = &SearchResults[T]{}
	}

	s.nextPage++
	s.buffer = results.Items
	s.position = 0

	if len(results.Items) < s.pageSize {
		s.lastPage = true
	}

	if results.IncompleteResults {
		s.recordIncomplete(IncompleteResults{Page: page, Items: len(results.Items)})
	}

	if len(s.buffer) == 0 {
		return zero, ErrNoMoreItems
	}

	s.position = 1

	return s.buffer[0], nil
}

// All collects the remaining items. On error it returns the items collected
// so far together with the error.
func (s *SearchSequence[T]) All() ([]T, error) {
	var items []T

	for {
		item, err := s.Next()
		if errors.Is(err, ErrNoMoreItems) {
			return items, nil
		}

		if err != nil {
			return items, err
		}

		items = append(items, item)
	}
}

// ForEach calls fn for each remaining item, stopping at the first error.
func (s *SearchSequence[T]) ForEach(fn func(T) error) error {
	for {
		item, err := s.Next()
		if errors.Is(err, ErrNoMoreItems) {
			return nil
		}

		if err != nil {
			return err
		}

		err = fn(item)
		if err != nil {
			return err
		}
	}
}

// Items returns the remaining items as a range-over-func sequence. A page
// error is yielded once, paired with the zero value, and ends iteration.
func (s *SearchSequence[T]) Items() iter.Seq2[T, error] {
	return func(yield func(T, error) bool) {
		for {
			item, err := s.Next()
			if errors.Is(err, ErrNoMoreItems) {
				return
			}

			if !yield(item, err) || err != nil {
				return
			}
		}
	}
}

// Incomplete reports whether any fetched page was truncated by the backend.
func (s *SearchSequence[T]) Incomplete() bool {
	return len(s.warnings) > 0
}

// Warnings returns the truncated pages seen so far.
func (s *SearchSequence[T]) Warnings() []IncompleteResults {
	warnings := make([]IncompleteResults, len(s.warnings))
	copy(warnings, s.warnings)

	return warnings
}

// PagesFetched returns the number of page requests issued.
func (s *SearchSequence[T]) PagesFetched() int {
	return s.fetched
}

func (s *SearchSequence[T]) recordIncomplete(warning IncompleteResults) {
	s.warnings = append(s.warnings, warning)

	s.logger.Warn("incomplete results received from search API",
		zap.String("q", s.query.Q),
		zap.Int("page", warning.Page),
		zap.Int("items", warning.Items),
	)

	if s.onPartial != nil {
		s.onPartial(warning)
	}
}
