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
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jaycherian/go-popcorn/internal/core/model"
	"github.com/jaycherian/go-popcorn/internal/core/session"
)

type recorder struct {
	intents []session.Intent
}

func (r *recorder) dispatch(i session.Intent) { r.intents = append(r.intents, i) }

func press(t *testing.T, b browser, msgs ...tea.Msg) browser {
	t.Helper()
	for _, msg := range msgs {
		next, _ := b.Update(msg)
		b = next.(browser)
	}
	return b
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestBrowserTypingDispatchesQueries(t *testing.T) {
	rec := &recorder{}
	b := newBrowser(rec.dispatch, model.Snapshot{})

	b = press(t, b, runes("g"), runes("l"), runes("a"))
	assert.Equal(t, []session.Intent{
		session.QueryChange{Query: "g"},
		session.QueryChange{Query: "gl"},
		session.QueryChange{Query: "gla"},
	}, rec.intents)
	assert.Equal(t, "gla", b.input.Value())
}

func TestBrowserOpenRateAndAdd(t *testing.T) {
	rec := &recorder{}
	snap := exampleSnapshot()
	b := newBrowser(rec.dispatch, model.Snapshot{})
	b = press(t, b, snapshotMsg{seq: 1, snapshot: snap})

	b = press(t, b, tea.KeyMsg{Type: tea.KeyDown}, tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, paneDetail, b.pane)
	require.Equal(t, []session.Intent{session.Select{ID: "tt0172495"}}, rec.intents)

	detail := model.GetExampleDetail()
	snap.Selection = &model.SelectionView{
		ID:     detail.ID,
		Phase:  model.PhaseRatingPending,
		Detail: detail,
		Rating: model.RatingView{Max: 10},
	}
	b = press(t, b, snapshotMsg{seq: 2, snapshot: snap})
	rec.intents = nil

	b = press(t, b, tea.KeyMsg{Type: tea.KeyRight}, runes("7"), runes("0"), runes("+"))
	assert.Equal(t, []session.Intent{
		session.HoverRating{Value: 1},
		session.Rate{Value: 7},
		session.Rate{Value: 10},
		session.AddToWatched{},
	}, rec.intents)

	rec.intents = nil
	press(t, b, tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, []session.Intent{session.Cancel{}}, rec.intents)
}

func TestBrowserDropsStaleSnapshots(t *testing.T) {
	b := newBrowser(func(session.Intent) {}, model.Snapshot{})
	fresh := exampleSnapshot()
	b = press(t, b, snapshotMsg{seq: 5, snapshot: fresh}, snapshotMsg{seq: 3, snapshot: model.Snapshot{Query: "old"}})
	assert.Equal(t, "glad", b.snap.Query)
}

func TestBrowserDeletesWatched(t *testing.T) {
	rec := &recorder{}
	b := newBrowser(rec.dispatch, model.Snapshot{})
	b = press(t, b, snapshotMsg{seq: 1, snapshot: exampleSnapshot()})

	// search -> results -> watched, since nothing is open.
	b = press(t, b, tea.KeyMsg{Type: tea.KeyTab}, tea.KeyMsg{Type: tea.KeyTab})
	require.Equal(t, paneWatched, b.pane)
	press(t, b, runes("d"))
	assert.Equal(t, []session.Intent{session.Delete{ID: "tt0133093"}}, rec.intents)
}

func TestBrowserView(t *testing.T) {
	b := newBrowser(func(session.Intent) {}, exampleSnapshot())
	out := b.View()
	assert.Contains(t, out, "Found 1 results")
	assert.Contains(t, out, "Gladiator")
	assert.Contains(t, out, "MOVIES YOU WATCHED")
	assert.Contains(t, out, "The Matrix")
}
