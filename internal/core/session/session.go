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

// Package session runs the browsing session: one state goroutine owns every
// controller, background fetches post their results back to it, and a fresh
// snapshot is rendered after each change.
package session

import (
	"context"
	"errors"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/google/wire"
	"github.com/sourcegraph/conc"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/jaycherian/go-popcorn/internal/cloud"
	"github.com/jaycherian/go-popcorn/internal/core/model"
	"github.com/jaycherian/go-popcorn/internal/core/services"
	"github.com/jaycherian/go-popcorn/internal/core/workflow"
)

const tracerName = "github.com/jaycherian/go-popcorn/session"

// postedQueueSize bounds the closures waiting for the state goroutine.
const postedQueueSize = 64

// ErrAlreadyRunning is returned by a second call to Run.
var ErrAlreadyRunning = errors.New("session is already running")

// ProviderSet is the wire provider set for a Session.
var ProviderSet = wire.NewSet(NewSettings, New)

// Renderer draws snapshots. It is always called from the state goroutine.
type Renderer interface {
	Render(snapshot model.Snapshot)
}

// RendererFunc adapts a function to Renderer.
type RendererFunc func(model.Snapshot)

func (f RendererFunc) Render(snapshot model.Snapshot) { f(snapshot) }

// Settings are the tunables a Session reads from the configuration.
type Settings struct {
	MinQueryLength int
	MaxRating      int
	DefaultTitle   string
	TitleFormat    string
	Now            func() time.Time
}

// NewSettings extracts the session settings from config.
func NewSettings(config *cloud.Config) Settings {
	return Settings{
		MinQueryLength: config.Search.MinQueryLength,
		MaxRating:      config.Rating.MaxRating,
		DefaultTitle:   config.Application.DefaultTitle,
		TitleFormat:    config.Application.TitleFormat,
		Now:            time.Now,
	}
}

// Session owns the controllers and the state goroutine.
type Session struct {
	id       string
	renderer Renderer
	tracer   trace.Tracer

	search    *services.SearchController
	selection *services.SelectionController
	watched   *services.WatchedCollection
	flow      *services.DetailFlow

	posted  chan func()
	done    chan struct{}
	wg      conc.WaitGroup
	running atomic.Bool
	ctx     context.Context
	last    atomic.Pointer[model.Snapshot]
}

// New wires the controllers to catalog and sink. The session does nothing
// until Run is called.
func New(settings Settings, catalog services.Catalog, renderer Renderer, sink services.TitleSink) *Session {
	if renderer == nil {
		renderer = RendererFunc(func(model.Snapshot) {})
	}
	s := &Session{
		id:       uuid.NewString(),
		renderer: renderer,
		tracer:   otel.Tracer(tracerName),
		watched:  services.NewWatchedCollection(),
		posted:   make(chan func(), postedQueueSize),
		done:     make(chan struct{}),
		ctx:      context.Background(),
	}

	s.selection = services.NewSelectionController(catalog, s,
		services.WithTitleSink(sink, settings.DefaultTitle, settings.TitleFormat))
	s.search = services.NewSearchController(catalog, s,
		services.WithMinQueryLength(settings.MinQueryLength),
		services.WithOnSearch(s.selection.Clear))

	var opts []workflow.WorkflowOption
	if settings.Now != nil {
		opts = append(opts, workflow.WithClock(settings.Now))
	}
	commit := workflow.NewWatchedCommitWorkflow(s.watched, s.selection, opts...)
	s.flow = services.NewDetailFlow(s.selection, s.watched, settings.MaxRating, commit)

	initial := s.build()
	s.last.Store(&initial)
	return s
}

// ID identifies the session in logs.
func (s *Session) ID() string { return s.id }

// Post queues fn for the state goroutine. Closures posted after Run returned
// are dropped.
func (s *Session) Post(fn func()) {
	select {
	case <-s.done:
	case s.posted <- fn:
	}
}

// Go runs fn in the background; Run waits for it before returning.
func (s *Session) Go(fn func()) {
	s.wg.Go(fn)
}

// Dispatch queues intent for the state goroutine.
func (s *Session) Dispatch(intent Intent) {
	s.Post(func() { s.apply(intent) })
}

// Snapshot returns the last rendered snapshot. It is safe to call from any
// goroutine.
func (s *Session) Snapshot() model.Snapshot {
	return *s.last.Load()
}

// Run is the state goroutine. It renders once, then applies posted closures
// until ctx is done, rendering after each. On the way out it cancels any
// fetch in flight, closes the detail view and waits for the background work.
func (s *Session) Run(ctx context.Context) error {
	if !s.running.CompareAndSwap(false, true) {
		return ErrAlreadyRunning
	}
	s.ctx = ctx
	slog.InfoContext(ctx, "session started", "session_id", s.id)
	defer s.shutdown()

	s.render()
	for {
		select {
		case <-ctx.Done():
			return nil
		case fn := <-s.posted:
			fn()
			s.render()
		}
	}
}

func (s *Session) shutdown() {
	close(s.done)
	s.search.Stop()
	s.selection.Clear()
	s.wg.Wait()
	slog.Info("session stopped", "session_id", s.id, "watched", s.watched.Len())
}

func (s *Session) apply(intent Intent) {
	ctx, span := s.tracer.Start(s.ctx, "session."+intent.Name())
	defer span.End()
	span.SetAttributes(attribute.String("session_id", s.id))

	if err := intent.apply(ctx, s); err != nil {
		span.RecordError(err)
		if errors.Is(err, services.ErrNotCommittable) {
			slog.DebugContext(ctx, "intent ignored", "intent", intent.Name(), "error", err)
			return
		}
		slog.ErrorContext(ctx, "intent failed", "intent", intent.Name(), "error", err)
	}
}

func (s *Session) render() {
	snap := s.build()
	s.last.Store(&snap)
	s.renderer.Render(snap)
}

func (s *Session) build() model.Snapshot {
	results := s.search.Results()
	return model.Snapshot{
		Query:       s.search.Query(),
		Results:     results,
		ResultCount: len(results),
		Loading:     s.search.Loading(),
		Error:       s.search.Error(),
		Selection:   s.flow.View(),
		Watched:     s.watched.Entries(),
		Summary:     s.watched.Summary(),
	}
}
