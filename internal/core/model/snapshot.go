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

// This file, `snapshot.go`, defines the immutable view-state handed to the
// rendering layer after every state change. Slices in a Snapshot are copies;
// a renderer may keep a snapshot without observing later mutations.
package model

// Phase is the state of the detail view.
type Phase int

const (
	PhaseClosed        Phase = iota // No title selected.
	PhaseLoading                    // Detail record requested, not yet received.
	PhaseLoaded                     // Request settled without a detail record; Error says why.
	PhaseRatingPending              // Title not yet watched; the rating widget is active.
	PhaseAlreadyRated               // Title already watched; the stored rating is shown read-only.
)

// String returns a human-readable name for the phase.
func (p Phase) String() string {
	switch p {
	case PhaseClosed:
		return "closed"
	case PhaseLoading:
		return "loading"
	case PhaseLoaded:
		return "loaded"
	case PhaseRatingPending:
		return "rating-pending"
	case PhaseAlreadyRated:
		return "already-rated"
	default:
		return "unknown"
	}
}

// RatingView is the rating widget as the renderer should draw it.
type RatingView struct {
	Max       int
	Committed int // 0 means no rating.
	Hovered   int // 0 means no hover preview.
	Display   int // Hovered if non-zero, else Committed.
}

// SelectionView describes the open detail view.
type SelectionView struct {
	ID           string
	Phase        Phase
	Detail       *MovieDetail
	Loading      bool
	Error        string
	Rating       RatingView
	StoredRating int  // Only set in PhaseAlreadyRated.
	CanCommit    bool // True when the "add to list" action is offered.
}

// Snapshot is everything the renderer needs for one frame.
type Snapshot struct {
	Query       string
	Results     []MovieSummary
	ResultCount int
	Loading     bool
	Error       string
	Selection   *SelectionView // nil when no title is selected.
	Watched     []WatchedEntry
	Summary     WatchedSummary
}
