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

package services_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jaycherian/go-popcorn/internal/core/services"
)

func TestRatingWidgetDefaultsToFive(t *testing.T) {
	w := services.NewRatingWidget(0, nil)
	assert.Equal(t, services.DefaultMaxRating, w.Max())
	w.Hover(7)
	assert.Zero(t, w.Display())
}

func TestRatingWidgetHoverClickToggle(t *testing.T) {
	var changes []int
	w := services.NewRatingWidget(10, func(v int) { changes = append(changes, v) })

	w.Hover(7)
	assert.Equal(t, 7, w.Display())
	assert.Equal(t, "7", w.Label())
	assert.Zero(t, w.Value())

	w.Click(7)
	assert.Equal(t, 7, w.Value())

	w.Hover(3)
	assert.Equal(t, 3, w.Display())
	w.Leave()
	assert.Equal(t, 7, w.Display())

	w.Click(7)
	assert.Zero(t, w.Value())
	assert.Zero(t, w.Display())
	assert.Empty(t, w.Label())

	assert.Equal(t, []int{7, 0}, changes)
}

func TestRatingWidgetIgnoresOutOfRange(t *testing.T) {
	calls := 0
	w := services.NewRatingWidget(10, func(int) { calls++ })
	w.Click(0)
	w.Click(11)
	w.Click(-3)
	w.Hover(42)
	assert.Zero(t, calls)
	assert.Zero(t, w.Value())
	assert.Zero(t, w.Hovered())
}

func TestRatingWidgetResetAndView(t *testing.T) {
	w := services.NewRatingWidget(10, nil)
	w.Click(4)
	w.Hover(9)
	v := w.View()
	assert.Equal(t, 10, v.Max)
	assert.Equal(t, 4, v.Committed)
	assert.Equal(t, 9, v.Hovered)
	assert.Equal(t, 9, v.Display)

	w.Reset()
	assert.Zero(t, w.Value())
	assert.Zero(t, w.Hovered())
}
