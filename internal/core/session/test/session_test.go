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

package session_test

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jaycherian/go-popcorn/internal/core/model"
	"github.com/jaycherian/go-popcorn/internal/core/services"
	"github.com/jaycherian/go-popcorn/internal/core/session"
	test "github.com/jaycherian/go-popcorn/internal/testutil"
)

const (
	waitFor = 2 * time.Second
	tick    = 5 * time.Millisecond
)

var addedAt = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

type fixture struct {
	session *session.Session
	fake    *test.FakeCatalog
	titles  *test.RecordingTitleSink
	renders atomic.Int32
}

func newFixture() *fixture {
	f := &fixture{fake: test.NewFakeCatalog(), titles: &test.RecordingTitleSink{}}
	settings := session.Settings{
		MinQueryLength: 3,
		MaxRating:      10,
		DefaultTitle:   "usePopcorn",
		TitleFormat:    "Movie | %s",
		Now:            func() time.Time { return addedAt },
	}
	renderer := session.RendererFunc(func(model.Snapshot) { f.renders.Add(1) })
	f.session = session.New(settings, f.fake, renderer, f.titles)
	return f
}

// start runs the session until the returned stop function is called.
func (f *fixture) start(t *testing.T) (stop func()) {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- f.session.Run(ctx) }()
	return func() {
		cancel()
		select {
		case err := <-done:
			require.NoError(t, err)
		case <-time.After(waitFor):
			t.Fatal("session did not stop")
		}
	}
}

func (f *fixture) eventually(t *testing.T, cond func(model.Snapshot) bool, msg string) {
	t.Helper()
	assert.Eventually(t, func() bool { return cond(f.session.Snapshot()) }, waitFor, tick, msg)
}

func phaseIs(p model.Phase) func(model.Snapshot) bool {
	return func(s model.Snapshot) bool { return s.Selection != nil && s.Selection.Phase == p }
}

func TestSearchSelectRateAndCommit(t *testing.T) {
	f := newFixture()
	stop := f.start(t)
	defer stop()

	f.session.Dispatch(session.QueryChange{Query: "glad"})
	f.eventually(t, func(s model.Snapshot) bool { return s.ResultCount == 1 && !s.Loading }, "search result")
	assert.Equal(t, "tt0172495", f.session.Snapshot().Results[0].ID)

	f.session.Dispatch(session.Select{ID: "tt0172495"})
	f.eventually(t, phaseIs(model.PhaseRatingPending), "detail loaded")
	assert.Equal(t, "Movie | Gladiator", f.titles.Current())

	f.session.Dispatch(session.HoverRating{Value: 7})
	f.eventually(t, func(s model.Snapshot) bool { return s.Selection.Rating.Display == 7 }, "hover preview")
	f.session.Dispatch(session.LeaveRating{})
	f.session.Dispatch(session.Rate{Value: 8})
	f.eventually(t, func(s model.Snapshot) bool { return s.Selection.CanCommit }, "rating set")

	f.session.Dispatch(session.AddToWatched{})
	f.eventually(t, func(s model.Snapshot) bool { return len(s.Watched) == 1 && s.Selection == nil }, "committed")

	snap := f.session.Snapshot()
	entry := snap.Watched[0]
	assert.Equal(t, 8, entry.UserRating)
	assert.Equal(t, 155, entry.RuntimeMinutes)
	assert.Equal(t, addedAt, entry.AddedAt)
	assert.Equal(t, 1, snap.Summary.Count)
	assert.InDelta(t, 8.5, snap.Summary.AvgCatalogRating, 1e-9)
	assert.InDelta(t, 8.0, snap.Summary.AvgUserRating, 1e-9)
	assert.InDelta(t, 155.0, snap.Summary.AvgRuntime, 1e-9)
	assert.Equal(t, "usePopcorn", f.titles.Current())

	f.session.Dispatch(session.Select{ID: "tt0172495"})
	f.eventually(t, phaseIs(model.PhaseAlreadyRated), "already rated")
	assert.Equal(t, 8, f.session.Snapshot().Selection.StoredRating)
	assert.False(t, f.session.Snapshot().Selection.CanCommit)

	f.session.Dispatch(session.Delete{ID: "tt0172495"})
	f.eventually(t, phaseIs(model.PhaseRatingPending), "deleted")
	assert.Empty(t, f.session.Snapshot().Watched)
	assert.Positive(t, f.renders.Load())
}

func TestShortQueryClearsResultsWithoutRequest(t *testing.T) {
	f := newFixture()
	stop := f.start(t)
	defer stop()

	f.session.Dispatch(session.QueryChange{Query: "matrix"})
	f.eventually(t, func(s model.Snapshot) bool { return s.ResultCount == 1 }, "search result")

	f.session.Dispatch(session.QueryChange{Query: " ma "})
	f.eventually(t, func(s model.Snapshot) bool { return s.Query == " ma " }, "query applied")

	snap := f.session.Snapshot()
	assert.Empty(t, snap.Results)
	assert.Empty(t, snap.Error)
	assert.False(t, snap.Loading)
	assert.Equal(t, []string{"matrix"}, f.fake.Searches())
}

func TestNewSearchClosesDetailView(t *testing.T) {
	f := newFixture()
	stop := f.start(t)
	defer stop()

	f.session.Dispatch(session.Select{ID: "tt0133093"})
	f.eventually(t, phaseIs(model.PhaseRatingPending), "detail loaded")

	f.session.Dispatch(session.QueryChange{Query: "ryan"})
	f.eventually(t, func(s model.Snapshot) bool { return s.Selection == nil && s.ResultCount == 1 }, "selection cleared")
	assert.Equal(t, "usePopcorn", f.titles.Current())
}

func TestSearchErrorsAreSurfaced(t *testing.T) {
	f := newFixture()
	stop := f.start(t)
	defer stop()

	f.session.Dispatch(session.QueryChange{Query: "nothing like this"})
	f.eventually(t, func(s model.Snapshot) bool { return s.Error == services.MsgMovieNotFound }, "not found")

	f.fake.SetSearchErr(errors.New("connection reset"))
	f.session.Dispatch(session.QueryChange{Query: "gladiator"})
	f.eventually(t, func(s model.Snapshot) bool { return s.Error == services.MsgSearchFailed }, "fetch failure")
	assert.False(t, f.session.Snapshot().Loading)
}

func TestCancelAndCommitOutsideRatingPending(t *testing.T) {
	f := newFixture()
	stop := f.start(t)
	defer stop()

	f.session.Dispatch(session.AddToWatched{})
	f.session.Dispatch(session.Select{ID: "tt0172495"})
	f.eventually(t, phaseIs(model.PhaseRatingPending), "detail loaded")
	f.session.Dispatch(session.AddToWatched{})
	f.session.Dispatch(session.Cancel{})
	f.eventually(t, func(s model.Snapshot) bool { return s.Selection == nil }, "closed")

	assert.Empty(t, f.session.Snapshot().Watched)
	assert.Equal(t, "usePopcorn", f.titles.Current())
}

func TestRunExitRestoresTitle(t *testing.T) {
	f := newFixture()
	stop := f.start(t)

	f.session.Dispatch(session.Select{ID: "tt0172495"})
	f.eventually(t, phaseIs(model.PhaseRatingPending), "detail loaded")
	require.Equal(t, "Movie | Gladiator", f.titles.Current())

	stop()
	assert.Equal(t, "usePopcorn", f.titles.Current())

	// Posting after exit must not block.
	f.session.Dispatch(session.Cancel{})
}

func TestRunTwice(t *testing.T) {
	f := newFixture()
	stop := f.start(t)
	defer stop()

	assert.Eventually(t, func() bool { return f.renders.Load() > 0 }, waitFor, tick)
	assert.ErrorIs(t, f.session.Run(context.Background()), session.ErrAlreadyRunning)
}
