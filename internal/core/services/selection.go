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

// This file, `selection.go`, defines the SelectionController, which owns the
// single open title and fetches its detail record. While a detail record is
// loaded the title sink shows it; closing or switching restores the default.
package services

import (
	"context"
	"fmt"
	"log/slog"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"

	"github.com/jaycherian/go-popcorn/internal/catalog"
	"github.com/jaycherian/go-popcorn/internal/core/model"
)

const (
	DefaultTitle       = "usePopcorn"
	DefaultTitleFormat = "Movie | %s"
)

// SelectionController holds at most one selected id.
type SelectionController struct {
	catalog      Catalog
	loop         Loop
	sink         TitleSink
	defaultTitle string
	titleFormat  string

	selectedID string
	detail     *model.MovieDetail
	loading    bool
	errMsg     string

	generation   uint64
	cancel       context.CancelFunc
	releaseTitle func()
	listeners    []func()

	stale metric.Int64Counter
}

// SelectionOption customises a SelectionController.
type SelectionOption func(*SelectionController)

// WithTitleSink routes title changes to sink. defaultTitle is shown whenever
// no detail is loaded; format is applied to a loaded movie's title.
func WithTitleSink(sink TitleSink, defaultTitle, format string) SelectionOption {
	return func(s *SelectionController) {
		if sink != nil {
			s.sink = sink
		}
		if defaultTitle != "" {
			s.defaultTitle = defaultTitle
		}
		if format != "" {
			s.titleFormat = format
		}
	}
}

// NewSelectionController returns a controller with nothing selected.
func NewSelectionController(catalog Catalog, loop Loop, opts ...SelectionOption) *SelectionController {
	s := &SelectionController{
		catalog:      catalog,
		loop:         loop,
		sink:         NopTitleSink,
		defaultTitle: DefaultTitle,
		titleFormat:  DefaultTitleFormat,
	}
	for _, opt := range opts {
		opt(s)
	}
	var err error
	if s.stale, err = otel.Meter(instrumentationName).Int64Counter("selection.stale_details"); err != nil {
		slog.Warn("error creating counter", "name", "selection.stale_details", "error", err)
	}
	return s
}

// OnChange registers fn to run whenever the selected id changes.
func (s *SelectionController) OnChange(fn func()) {
	s.listeners = append(s.listeners, fn)
}

// Selected returns the selected id and whether there is one.
func (s *SelectionController) Selected() (string, bool) {
	return s.selectedID, s.selectedID != ""
}

// Detail is the loaded record for the selection, or nil.
func (s *SelectionController) Detail() *model.MovieDetail { return s.detail }

func (s *SelectionController) Loading() bool { return s.loading }

func (s *SelectionController) Error() string { return s.errMsg }

// Select toggles id: the open id closes, any other id opens.
func (s *SelectionController) Select(ctx context.Context, id string) {
	if id == "" || id == s.selectedID {
		s.Clear()
		return
	}
	s.close()
	s.selectedID = id
	s.open(ctx, id)
	s.notify()
}

// Clear closes the detail view.
func (s *SelectionController) Clear() {
	wasOpen := s.selectedID != ""
	s.close()
	s.selectedID = ""
	if wasOpen {
		s.notify()
	}
}

func (s *SelectionController) open(ctx context.Context, id string) {
	gen := s.generation
	reqCtx, cancel := context.WithCancel(ctx)
	s.cancel = cancel
	s.loading = true

	s.loop.Go(func() {
		detail, err := s.catalog.Detail(reqCtx, id)
		s.loop.Post(func() { s.settle(reqCtx, gen, id, detail, err) })
	})
}

// close drops everything tied to the current selection except the id itself.
func (s *SelectionController) close() {
	s.generation++
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
	if s.releaseTitle != nil {
		s.releaseTitle()
		s.releaseTitle = nil
	}
	s.detail = nil
	s.loading = false
	s.errMsg = ""
}

func (s *SelectionController) settle(ctx context.Context, gen uint64, id string, detail *model.MovieDetail, err error) {
	if gen != s.generation || id != s.selectedID {
		if s.stale != nil {
			s.stale.Add(context.WithoutCancel(ctx), 1)
		}
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
	case catalog.IsNotFound(err):
		s.errMsg = MsgMovieNotFound
	case err != nil:
		s.errMsg = MsgDetailFailed
		slog.WarnContext(ctx, "detail fetch failed", "id", id, "error", err)
	case detail == nil:
		s.errMsg = MsgMovieNotFound
	default:
		s.detail = detail
		s.releaseTitle = AcquireTitle(s.sink, fmt.Sprintf(s.titleFormat, detail.Title), s.defaultTitle)
	}
}

func (s *SelectionController) notify() {
	for _, fn := range s.listeners {
		fn()
	}
}
