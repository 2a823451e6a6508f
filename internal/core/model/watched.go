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

package model

import (
	"errors"
	"time"
)

// ErrMissingRating is returned when a draft has no user rating.
var ErrMissingRating = errors.New("watched entry requires a user rating")

// ErrMissingDetail is returned when a draft has no loaded detail record.
var ErrMissingDetail = errors.New("watched entry requires a loaded detail")

// WatchedEntry is a rated title the user has watched. It lives for the
// session only.
type WatchedEntry struct {
	ID             string        `json:"id"` // Same as MovieSummary.ID.
	PosterURL      string        `json:"poster"`
	Title          string        `json:"title"`
	RuntimeMinutes int           `json:"runtime"`
	CatalogRating  CatalogRating `json:"imdbRating"`
	UserRating     int           `json:"userRating"`
	AddedAt        time.Time     `json:"addedAt"`
}

// WatchedDraft carries what the detail view collected before the user confirms.
type WatchedDraft struct {
	Detail *MovieDetail
	Rating int
}

// NewWatchedEntry builds the entry for a confirmed draft. The runtime keeps
// only the leading integer of the catalog string; an unusable runtime is
// stored as 0.
func NewWatchedEntry(draft *WatchedDraft, now time.Time) (WatchedEntry, error) {
	if draft == nil || draft.Detail == nil {
		return WatchedEntry{}, ErrMissingDetail
	}
	if draft.Rating <= 0 {
		return WatchedEntry{}, ErrMissingRating
	}
	d := draft.Detail
	return WatchedEntry{
		ID:             d.ID,
		PosterURL:      d.PosterURL,
		Title:          d.Title,
		RuntimeMinutes: d.RuntimeMinutes(),
		CatalogRating:  d.CatalogRating,
		UserRating:     draft.Rating,
		AddedAt:        now,
	}, nil
}

// WatchedSummary holds the aggregate figures shown above the watched list.
type WatchedSummary struct {
	Count            int
	AvgCatalogRating float64
	AvgUserRating    float64
	AvgRuntime       float64
}
