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

// Package model defines the core data structures for the application.
// This file, `transient.go`, contains the records received from the movie
// catalog. They are "transient" because they only live as long as the result
// set or the open detail view that produced them; nothing here is persisted.
package model

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// NotAvailable is the placeholder the catalog uses for missing values.
const NotAvailable = "N/A"

// MovieSummary is a lightweight search result record for a title.
type MovieSummary struct {
	ID        string `json:"imdbID"` // Opaque external identifier, unique per title.
	Title     string `json:"Title"`
	Year      string `json:"Year"`
	PosterURL string `json:"Poster"`
	Type      string `json:"Type,omitempty"` // "movie", "series", "episode".
}

// SearchResult is the parsed body of a catalog search. Found is false when
// the catalog answered with its body-level "not found" flag.
type SearchResult struct {
	Found        bool
	Reason       string // The catalog's own explanation when Found is false.
	Results      []MovieSummary
	TotalResults int
}

// MovieDetail is the full record for a single title, fetched on demand when a
// MovieSummary is selected.
type MovieDetail struct {
	ID            string        `json:"imdbID"`
	Title         string        `json:"Title"`
	Year          string        `json:"Year"`
	Rated         string        `json:"Rated"`
	Released      string        `json:"Released"`
	Runtime       string        `json:"Runtime"` // e.g. "142 min"; see ParseRuntime.
	Genre         string        `json:"Genre"`
	Plot          string        `json:"Plot"`
	Actors        string        `json:"Actors"`
	Director      string        `json:"Director"`
	PosterURL     string        `json:"Poster"`
	CatalogRating CatalogRating `json:"imdbRating"`
}

// RuntimeMinutes returns the leading integer of the runtime string, or 0 when
// the catalog did not provide a usable value.
func (d *MovieDetail) RuntimeMinutes() int {
	r, err := ParseRuntime(d.Runtime)
	if err != nil {
		return 0
	}
	return int(r)
}

// CatalogRating is the catalog's own score for a title. The catalog sends it
// as a string which may be "N/A", so Valid distinguishes "absent" from 0.
type CatalogRating struct {
	Value float64
	Valid bool
}

// NewCatalogRating returns a present rating.
func NewCatalogRating(v float64) CatalogRating {
	return CatalogRating{Value: v, Valid: true}
}

// ParseCatalogRating converts the catalog representation into a CatalogRating.
// Empty strings and "N/A" yield an absent rating.
func ParseCatalogRating(in string) (CatalogRating, error) {
	in = strings.TrimSpace(in)
	if in == "" || strings.EqualFold(in, NotAvailable) {
		return CatalogRating{}, nil
	}
	v, err := strconv.ParseFloat(in, 64)
	if err != nil {
		return CatalogRating{}, fmt.Errorf("invalid catalog rating %q: %w", in, err)
	}
	return NewCatalogRating(v), nil
}

// UnmarshalJSON accepts a quoted string ("7.9", "N/A"), a bare number or null.
// Values that cannot be parsed decode as absent rather than failing the
// whole record.
func (r *CatalogRating) UnmarshalJSON(data []byte) error {
	raw := strings.TrimSpace(string(data))
	if raw == "null" {
		*r = CatalogRating{}
		return nil
	}
	if unquoted, err := strconv.Unquote(raw); err == nil {
		raw = unquoted
	}
	parsed, err := ParseCatalogRating(raw)
	if err != nil {
		*r = CatalogRating{}
		return nil
	}
	*r = parsed
	return nil
}

// MarshalJSON writes the rating the way the catalog does.
func (r CatalogRating) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.String())
}

// String formats the rating with one decimal, or "N/A" when absent.
func (r CatalogRating) String() string {
	if !r.Valid {
		return NotAvailable
	}
	return strconv.FormatFloat(r.Value, 'f', 1, 64)
}
