// Copyright 2024 Google, LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     https://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// This file, `search.go`, defines the SearchController, which owns the query
// string and fetches results whenever it changes.
//
// Logic Flow:
//  1. SetQuery always supersedes the request in flight, if any: its context is
//     cancelled and the generation counter moves on.
//  2. A trimmed query shorter than the minimum length empties the result list
//     and the error, and makes no request.
//  3. Otherwise the selection is cleared, and the search runs in the
//     background. Its result is posted back to the state goroutine.
//  4. A result whose generation is no longer current is dropped untouched, so a
//     slow answer for an old query never overwrites a newer one.
package services

import (
	"context"
	"log/slog"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/jaycherian/go-popcorn/internal/catalog"
	"github.com/jaycherian/go-popcorn/internal/core/model"
)

// SearchController owns the query and its result list.
type SearchController struct {
	catalog   Catalog
	loop      Loop
	minLength int
	onSearch  func()

	query   string
	results []model.MovieSummary
	total   int
	loading bool
	errMsg  string

	generation uint64
	cancel     context.CancelFunc
	requestID  string

	requests   metric.Int64Counter
	superseded metric.Int64Counter
	failures   metric.Int64Counter
}

// SearchOption customises a SearchController.
type SearchOption func(*SearchController)

// WithMinQueryLength sets the shortest trimmed query that reaches the catalog.
func WithMinQueryLength(n int) SearchOption {
	return func(s *SearchController) {
		if n >= 0 {
			s.minLength = n
		}
	}
}

// WithOnSearch registers fn to run each time a qualifying query is issued.
// The session uses it to close the detail view.
func WithOnSearch(fn func()) SearchOption {
	return func(s *SearchController) { s.onSearch = fn }
}

// NewSearchController returns an idle controller with an empty query.
func NewSearchController(catalog Catalog, loop Loop, opts ...SearchOption) *SearchController {
	s := &SearchController{
		catalog:   catalog,
		loop:      loop,
		minLength: DefaultMinQueryLength,
	}
	for _, opt := range opts {
		opt(s)
	}

	meter := otel.Meter(instrumentationName)
	var err error
	if s.requests, err = meter.Int64Counter("search.requests"); err != nil {
		slog.Warn("error creating counter", "name", "search.requests", "error", err)
	}
	if s.superseded, err = meter.Int64Counter("search.superseded"); err != nil {
		slog.Warn("error creating counter", "name", "search.superseded", "error", err)
	}
	if s.failures, err = meter.Int64Counter("search.failures"); err != nil {
		slog.Warn("error creating counter", "name", "search.failures", "error", err)
	}
	return s
}

func (s *SearchController) Query() string { return s.query }

// Results returns a copy of the current result list.
func (s *SearchController) Results() []model.MovieSummary {
	return append([]model.MovieSummary(nil), s.results...)
}

// TotalResults is the catalog's count for the current list, which may exceed
// len(Results()) since only the first page is fetched.
func (s *SearchController) TotalResults() int { return s.total }

// Loading is true exactly while the request for the current query is outstanding.
func (s *SearchController) Loading() bool { return s.loading }

// Error is the user-visible error for the current query, or "".
func (s *SearchController) Error() string { return s.errMsg }

// SetQuery records q and starts a search for it when it is long enough.
func (s *SearchController) SetQuery(ctx context.Context, q string) {
	s.query = q
	s.supersede(ctx)

	trimmed := strings.TrimSpace(q)
	if utf8.RuneCountInString(trimmed) < s.minLength {
		s.results = nil
		s.total = 0
		s.errMsg = ""
		return
	}

	if s.onSearch != nil {
		s.onSearch()
	}

	gen := s.generation
	reqCtx, cancel := context.WithCancel(ctx)
	s.cancel = cancel
	s.loading = true
	s.errMsg = ""
	s.requestID = uuid.NewString()
	requestID := s.requestID

	s.add(ctx, s.requests)
	slog.DebugContext(ctx, "search issued", "query", trimmed, "request_id", requestID)

	s.loop.Go(func() {
		result, err := s.catalog.Search(reqCtx, trimmed)
		s.loop.Post(func() { s.settle(reqCtx, gen, requestID, result, err) })
	})
}

// Stop cancels the request in flight without touching the results. It is
// used on shutdown.
func (s *SearchController) Stop() {
	s.supersede(context.Background())
}

// supersede cancels the outstanding request and invalidates its generation.
func (s *SearchController) supersede(ctx context.Context) {
	s.generation++
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
	if s.loading {
		s.add(ctx, s.superseded)
		slog.DebugContext(ctx, "search superseded", "request_id", s.requestID)
	}
	s.loading = false
}

func (s *SearchController) settle(ctx context.Context, gen uint64, requestID string, result *model.SearchResult, err error) {
	if gen != s.generation {
		return
	}
	s.loading = false
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}

	switch {
	case catalog.IsCancelled(err):
		return
	case catalog.IsNotFound(err) || (err == nil && (result == nil || !result.Found)):
		s.errMsg = MsgMovieNotFound
	case err != nil:
		s.errMsg = MsgSearchFailed
		s.add(ctx, s.failures)
		slog.WarnContext(ctx, "search failed", "query", strings.TrimSpace(s.query), "request_id", requestID, "error", err)
	default:
		s.results = append([]model.MovieSummary(nil), result.Results...)
		s.total = result.TotalResults
		s.errMsg = ""
	}
}

func (s *SearchController) add(ctx context.Context, counter metric.Int64Counter) {
	if counter != nil {
		counter.Add(context.WithoutCancel(ctx), 1, metric.WithAttributes(attribute.Int("search.min_length", s.minLength)))
	}
}
