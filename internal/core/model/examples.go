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

// This file, `examples.go`, provides factory functions for hardcoded example
// records. They back the offline catalog used by `popcorn -demo` and give
// the test suites one canonical title to work with.
package model

// GetExampleSummary returns the search record for "Gladiator".
func GetExampleSummary() MovieSummary {
	return MovieSummary{
		ID:        "tt0172495",
		Title:     "Gladiator",
		Year:      "2000",
		PosterURL: "https://m.media-amazon.com/images/M/MV5BMDliMmNhNDEtODUyOS00MjNlLTgxODEtN2U3NzIxMGVkZTA1L2ltYWdlXkEyXkFqcGdeQXVyNjU0OTQ0OTY@._V1_SX300.jpg",
		Type:      "movie",
	}
}

// GetExampleDetail returns the detail record matching GetExampleSummary.
func GetExampleDetail() *MovieDetail {
	s := GetExampleSummary()
	return &MovieDetail{
		ID:            s.ID,
		Title:         s.Title,
		Year:          s.Year,
		Rated:         "R",
		Released:      "05 May 2000",
		Runtime:       "155 min",
		Genre:         "Action, Adventure, Drama",
		Plot:          "A former Roman General sets out to exact vengeance against the corrupt emperor who murdered his family and sent him into slavery.",
		Actors:        "Russell Crowe, Joaquin Phoenix, Connie Nielsen",
		Director:      "Ridley Scott",
		PosterURL:     s.PosterURL,
		CatalogRating: NewCatalogRating(8.5),
	}
}

// GetExampleCatalog returns a small fixed catalog, keyed by id.
func GetExampleCatalog() map[string]*MovieDetail {
	out := map[string]*MovieDetail{}
	g := GetExampleDetail()
	out[g.ID] = g
	out["tt0133093"] = &MovieDetail{
		ID:            "tt0133093",
		Title:         "The Matrix",
		Year:          "1999",
		Rated:         "R",
		Released:      "31 Mar 1999",
		Runtime:       "136 min",
		Genre:         "Action, Sci-Fi",
		Plot:          "When a beautiful stranger leads computer hacker Neo to a forbidding underworld, he discovers the shocking truth.",
		Actors:        "Keanu Reeves, Laurence Fishburne, Carrie-Anne Moss",
		Director:      "Lana Wachowski, Lilly Wachowski",
		PosterURL:     NotAvailable,
		CatalogRating: NewCatalogRating(8.7),
	}
	out["tt0120815"] = &MovieDetail{
		ID:            "tt0120815",
		Title:         "Saving Private Ryan",
		Year:          "1998",
		Rated:         "R",
		Released:      "24 Jul 1998",
		Runtime:       "169 min",
		Genre:         "Drama, War",
		Plot:          "Following the Normandy Landings, a group of U.S. soldiers go behind enemy lines to retrieve a paratrooper.",
		Actors:        "Tom Hanks, Matt Damon, Tom Sizemore",
		Director:      "Steven Spielberg",
		PosterURL:     NotAvailable,
		CatalogRating: NewCatalogRating(8.6),
	}
	return out
}

// Summary returns the search record for a detail.
func (d *MovieDetail) Summary() MovieSummary {
	return MovieSummary{ID: d.ID, Title: d.Title, Year: d.Year, PosterURL: d.PosterURL, Type: "movie"}
}
