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

import "github.com/jaycherian/go-popcorn/internal/core/model"

// WatchedCollection is the ordered list of watched titles. It does not
// deduplicate; DetailFlow refuses to commit a title that is already present.
type WatchedCollection struct {
	entries []model.WatchedEntry
}

func NewWatchedCollection() *WatchedCollection {
	return &WatchedCollection{}
}

// Add appends entry.
func (w *WatchedCollection) Add(entry model.WatchedEntry) {
	w.entries = append(w.entries, entry)
}

// Remove deletes every entry with id, keeping the order of the rest.
func (w *WatchedCollection) Remove(id string) {
	kept := w.entries[:0]
	for _, e := range w.entries {
		if e.ID != id {
			kept = append(kept, e)
		}
	}
	clear(w.entries[len(kept):])
	w.entries = kept
}

// Find returns the first entry with id.
func (w *WatchedCollection) Find(id string) (model.WatchedEntry, bool) {
	for _, e := range w.entries {
		if e.ID == id {
			return e, true
		}
	}
	return model.WatchedEntry{}, false
}

func (w *WatchedCollection) Contains(id string) bool {
	_, ok := w.Find(id)
	return ok
}

// Entries returns a copy in insertion order.
func (w *WatchedCollection) Entries() []model.WatchedEntry {
	return append([]model.WatchedEntry(nil), w.entries...)
}

func (w *WatchedCollection) Len() int { return len(w.entries) }

// AverageCatalogRating averages the entries that have a catalog rating.
func (w *WatchedCollection) AverageCatalogRating() float64 {
	var sum float64
	var n int
	for _, e := range w.entries {
		if e.CatalogRating.Valid {
			sum += e.CatalogRating.Value
			n++
		}
	}
	return mean(sum, n)
}

func (w *WatchedCollection) AverageUserRating() float64 {
	var sum float64
	for _, e := range w.entries {
		sum += float64(e.UserRating)
	}
	return mean(sum, len(w.entries))
}

func (w *WatchedCollection) AverageRuntime() float64 {
	var sum float64
	for _, e := range w.entries {
		sum += float64(e.RuntimeMinutes)
	}
	return mean(sum, len(w.entries))
}

// Summary gathers the count and the three averages.
func (w *WatchedCollection) Summary() model.WatchedSummary {
	return model.WatchedSummary{
		Count:            len(w.entries),
		AvgCatalogRating: w.AverageCatalogRating(),
		AvgUserRating:    w.AverageUserRating(),
		AvgRuntime:       w.AverageRuntime(),
	}
}

// mean is 0 for an empty set.
func mean(sum float64, n int) float64 {
	if n == 0 {
		return 0
	}
	return sum / float64(n)
}
