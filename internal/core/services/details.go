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

// This file, `details.go`, defines DetailFlow, the state machine of the detail
// view:
//
//	Closed -> Loading -> Loaded -> RatingPending | AlreadyRated
//
// The phase is derived from the selection and the watched collection rather
// than stored, so it cannot drift from either. Rating input is only accepted
// in RatingPending, and Commit hands the draft to the commit workflow.
package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jaycherian/go-popcorn/internal/core/cor"
	"github.com/jaycherian/go-popcorn/internal/core/model"
)

// ErrNotCommittable is returned by Commit outside RatingPending or without a rating.
var ErrNotCommittable = errors.New("detail view has nothing to commit")

// DetailFlow drives the open detail view.
type DetailFlow struct {
	selection *SelectionController
	watched   *WatchedCollection
	widget    *RatingWidget
	commit    cor.Executable
}

// NewDetailFlow wires the flow to its collaborators. commit runs with the
// *model.WatchedDraft under cor.CtxIn.
func NewDetailFlow(selection *SelectionController, watched *WatchedCollection, maxRating int, commit cor.Executable) *DetailFlow {
	if maxRating <= 0 {
		maxRating = DefaultDetailMaxRating
	}
	f := &DetailFlow{
		selection: selection,
		watched:   watched,
		widget:    NewRatingWidget(maxRating, nil),
		commit:    commit,
	}
	selection.OnChange(f.widget.Reset)
	return f
}

// Phase derives the current state.
func (f *DetailFlow) Phase() model.Phase {
	if _, open := f.selection.Selected(); !open {
		return model.PhaseClosed
	}
	if f.selection.Loading() {
		return model.PhaseLoading
	}
	detail := f.selection.Detail()
	if detail == nil {
		return model.PhaseLoaded
	}
	if f.watched.Contains(detail.ID) {
		return model.PhaseAlreadyRated
	}
	return model.PhaseRatingPending
}

func (f *DetailFlow) accepting() bool {
	return f.Phase() == model.PhaseRatingPending
}

func (f *DetailFlow) Hover(n int) {
	if f.accepting() {
		f.widget.Hover(n)
	}
}

func (f *DetailFlow) Leave() {
	if f.accepting() {
		f.widget.Leave()
	}
}

// Rate clicks n on the widget.
func (f *DetailFlow) Rate(n int) {
	if f.accepting() {
		f.widget.Click(n)
	}
}

// Rating is the pending rating, 0 when none.
func (f *DetailFlow) Rating() int { return f.widget.Value() }

// StoredRating is the user rating already recorded for the open title.
func (f *DetailFlow) StoredRating() int {
	detail := f.selection.Detail()
	if detail == nil {
		return 0
	}
	if entry, ok := f.watched.Find(detail.ID); ok {
		return entry.UserRating
	}
	return 0
}

// CanCommit reports whether the add-to-list action is available.
func (f *DetailFlow) CanCommit() bool {
	return f.accepting() && f.widget.Value() > 0
}

// Commit records the open title with the pending rating and closes the view.
func (f *DetailFlow) Commit(ctx context.Context) error {
	if !f.CanCommit() {
		return ErrNotCommittable
	}
	draft := &model.WatchedDraft{Detail: f.selection.Detail(), Rating: f.widget.Value()}

	chCtx := cor.NewBaseContext(ctx)
	defer chCtx.Close()
	chCtx.Add(cor.CtxIn, draft)

	f.commit.Execute(chCtx)
	if chCtx.HasErrors() {
		err := chCtx.Err()
		slog.ErrorContext(ctx, "failed to add watched entry", "id", draft.Detail.ID, "error", err)
		return fmt.Errorf("commit %s: %w", draft.Detail.ID, err)
	}
	slog.InfoContext(ctx, "watched entry added", "id", draft.Detail.ID, "rating", draft.Rating)
	return nil
}

// Cancel closes the view from any phase, dropping the pending rating.
func (f *DetailFlow) Cancel() {
	f.selection.Clear()
	f.widget.Reset()
}

// View snapshots the detail view, or nil when closed.
func (f *DetailFlow) View() *model.SelectionView {
	id, open := f.selection.Selected()
	if !open {
		return nil
	}
	phase := f.Phase()
	view := &model.SelectionView{
		ID:        id,
		Phase:     phase,
		Loading:   f.selection.Loading(),
		Error:     f.selection.Error(),
		Rating:    f.widget.View(),
		CanCommit: f.CanCommit(),
	}
	if d := f.selection.Detail(); d != nil {
		dd := *d
		view.Detail = &dd
	}
	if phase == model.PhaseAlreadyRated {
		view.StoredRating = f.StoredRating()
	}
	return view
}
