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

package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jaycherian/go-popcorn/internal/core/model"
	"github.com/jaycherian/go-popcorn/internal/core/session"
)

func exampleSnapshot() model.Snapshot {
	detail := model.GetExampleDetail()
	return model.Snapshot{
		Query:       "glad",
		Results:     []model.MovieSummary{detail.Summary()},
		ResultCount: 1,
		Watched: []model.WatchedEntry{
			{ID: "tt0133093", Title: "The Matrix", RuntimeMinutes: 136, CatalogRating: model.NewCatalogRating(8.7), UserRating: 9},
		},
		Summary: model.WatchedSummary{Count: 1, AvgCatalogRating: 8.7, AvgUserRating: 9, AvgRuntime: 136},
	}
}

func TestParseCommand(t *testing.T) {
	snap := exampleSnapshot()
	tests := []struct {
		line string
		want session.Intent
	}{
		{"s the matrix", session.QueryChange{Query: "the matrix"}},
		{"s", session.QueryChange{Query: ""}},
		{"o 1", session.Select{ID: "tt0172495"}},
		{"open tt0120815", session.Select{ID: "tt0120815"}},
		{"h 4", session.HoverRating{Value: 4}},
		{"l", session.LeaveRating{}},
		{"r 7", session.Rate{Value: 7}},
		{"a", session.AddToWatched{}},
		{"d 1", session.Delete{ID: "tt0133093"}},
		{"x", session.Cancel{}},
		{"", nil},
	}
	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			got, err := ParseCommand(tt.line, snap)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseCommandErrors(t *testing.T) {
	snap := exampleSnapshot()

	_, err := ParseCommand("q", snap)
	assert.ErrorIs(t, err, ErrQuit)
	_, err = ParseCommand("?", snap)
	assert.ErrorIs(t, err, ErrHelp)

	for _, line := range []string{"o 2", "o", "d 0", "r five", "zap"} {
		_, err := ParseCommand(line, snap)
		assert.Error(t, err, line)
	}
}

func TestFormatSnapshot(t *testing.T) {
	snap := exampleSnapshot()
	detail := model.GetExampleDetail()
	snap.Selection = &model.SelectionView{
		ID:        detail.ID,
		Phase:     model.PhaseRatingPending,
		Detail:    detail,
		Rating:    model.RatingView{Max: 10, Committed: 3, Display: 3},
		CanCommit: true,
	}

	out := string(FormatSnapshot(snap))
	assert.Contains(t, out, "Found 1 results")
	assert.Contains(t, out, "> 1. Gladiator  🗓 2000")
	assert.Contains(t, out, "★★★☆☆☆☆☆☆☆ 3")
	assert.Contains(t, out, "+ Add List")
	assert.Contains(t, out, "⭐ 8.5 IMDb Rating")
	assert.Contains(t, out, "#️⃣ 1 movies  ⭐️ 8.7  🌟 9.0  ⏳ 136.0 min")
	assert.Contains(t, out, "The Matrix  ⭐️ 8.7  🌟 9  ⏳ 136 min")
}

func TestFormatSnapshotStates(t *testing.T) {
	snap := exampleSnapshot()
	snap.Loading = true
	assert.Contains(t, string(FormatSnapshot(snap)), "Loading...")

	snap.Loading = false
	snap.Error = "Movie not Found"
	out := string(FormatSnapshot(snap))
	assert.Contains(t, out, "⛔ Movie not Found")
	assert.NotContains(t, out, "Gladiator")

	snap.Error = ""
	snap.Selection = &model.SelectionView{
		ID:           "tt0172495",
		Phase:        model.PhaseAlreadyRated,
		Detail:       model.GetExampleDetail(),
		StoredRating: 8,
	}
	out = string(FormatSnapshot(snap))
	assert.Contains(t, out, "you ranked it 8⭐")
	assert.NotContains(t, out, "Add List")
}

func TestTerminalTitle(t *testing.T) {
	var buf bytes.Buffer
	term := NewTerminal(&buf)
	term.SetTitle("Movie | Gladiator\a")
	assert.Equal(t, "\x1b]0;Movie | Gladiator\a", buf.String())
}
