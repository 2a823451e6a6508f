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

package services

import (
	"strconv"

	"github.com/jaycherian/go-popcorn/internal/core/model"
)

// DefaultMaxRating is used when a widget is built without a positive maximum.
const DefaultMaxRating = 5

// RatingWidget turns hover and click input into a rating in 1..Max. A hover
// is only a preview; the committed value changes on Click.
type RatingWidget struct {
	max       int
	committed int
	hovered   int
	onChange  func(int)
}

// NewRatingWidget returns a blank widget. onChange, if not nil, receives the
// committed value after every click (0 when a click cleared it).
func NewRatingWidget(maxRating int, onChange func(int)) *RatingWidget {
	if maxRating <= 0 {
		maxRating = DefaultMaxRating
	}
	return &RatingWidget{max: maxRating, onChange: onChange}
}

func (r *RatingWidget) valid(n int) bool { return n >= 1 && n <= r.max }

// Hover previews n.
func (r *RatingWidget) Hover(n int) {
	if r.valid(n) {
		r.hovered = n
	}
}

// Leave ends the preview.
func (r *RatingWidget) Leave() { r.hovered = 0 }

// Click commits n, or clears the rating when n is already committed.
func (r *RatingWidget) Click(n int) {
	if !r.valid(n) {
		return
	}
	if n == r.committed {
		r.committed = 0
	} else {
		r.committed = n
	}
	if r.onChange != nil {
		r.onChange(r.committed)
	}
}

// Reset clears both values without notifying.
func (r *RatingWidget) Reset() {
	r.committed = 0
	r.hovered = 0
}

// Display is the value to draw: the preview if any, else the committed value.
func (r *RatingWidget) Display() int {
	if r.hovered > 0 {
		return r.hovered
	}
	return r.committed
}

// Label renders Display, blank for 0.
func (r *RatingWidget) Label() string {
	if d := r.Display(); d > 0 {
		return strconv.Itoa(d)
	}
	return ""
}

func (r *RatingWidget) Value() int   { return r.committed }
func (r *RatingWidget) Hovered() int { return r.hovered }
func (r *RatingWidget) Max() int     { return r.max }

// View snapshots the widget.
func (r *RatingWidget) View() model.RatingView {
	return model.RatingView{
		Max:       r.max,
		Committed: r.committed,
		Hovered:   r.hovered,
		Display:   r.Display(),
	}
}
