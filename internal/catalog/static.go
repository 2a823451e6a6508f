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

package catalog

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/jaycherian/go-popcorn/internal/core/model"
)

// notFoundReason mirrors the message the real catalog sends.
const notFoundReason = "Movie not found!"

// StaticCatalog serves a fixed set of titles from memory. It answers with the
// same error types as Client, and its optional latency honours cancellation,
// which makes it useful for demos and for exercising supersede behaviour.
type StaticCatalog struct {
	entries map[string]*model.MovieDetail
	latency time.Duration
}

// NewStaticCatalog copies entries into a new StaticCatalog.
func NewStaticCatalog(entries map[string]*model.MovieDetail, latency time.Duration) *StaticCatalog {
	copied := make(map[string]*model.MovieDetail, len(entries))
	for id, d := range entries {
		dd := *d
		dd.PosterURL = cleanPoster(dd.PosterURL)
		copied[id] = &dd
	}
	return &StaticCatalog{entries: copied, latency: latency}
}

// Search matches query case-insensitively against titles.
func (s *StaticCatalog) Search(ctx context.Context, query string) (*model.SearchResult, error) {
	if err := s.wait(ctx, "search"); err != nil {
		return nil, err
	}

	needle := strings.ToLower(strings.TrimSpace(query))
	out := &model.SearchResult{Found: true}
	for _, d := range s.entries {
		if strings.Contains(strings.ToLower(d.Title), needle) {
			out.Results = append(out.Results, d.Summary())
		}
	}
	if len(out.Results) == 0 {
		result := &model.SearchResult{Found: false, Reason: notFoundReason}
		return result, &NotFoundError{Op: "search", Key: query, Reason: notFoundReason}
	}
	sort.Slice(out.Results, func(i, j int) bool { return out.Results[i].Title < out.Results[j].Title })
	out.TotalResults = len(out.Results)
	return out, nil
}

// Detail returns a copy of the stored record for id.
func (s *StaticCatalog) Detail(ctx context.Context, id string) (*model.MovieDetail, error) {
	if err := s.wait(ctx, "detail"); err != nil {
		return nil, err
	}
	d, ok := s.entries[id]
	if !ok {
		return nil, &NotFoundError{Op: "detail", Key: id, Reason: "Incorrect IMDb ID."}
	}
	dd := *d
	return &dd, nil
}

func (s *StaticCatalog) wait(ctx context.Context, op string) error {
	if s.latency <= 0 {
		if ctx.Err() != nil {
			return classify(ctx, op, 0, ctx.Err())
		}
		return nil
	}
	timer := time.NewTimer(s.latency)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return classify(ctx, op, 0, ctx.Err())
	case <-timer.C:
		return nil
	}
}
