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

package catalog

import (
	"strconv"
	"strings"

	"github.com/jaycherian/go-popcorn/internal/core/model"
)

// responseFalse is the body-level flag the catalog uses for "nothing found".
const responseFalse = "False"

// searchResponse is the wire shape of `?s=<query>`.
type searchResponse struct {
	Search       []model.MovieSummary `json:"Search"`
	TotalResults string               `json:"totalResults"`
	Response     string               `json:"Response"`
	Error        string               `json:"Error"`
}

// detailResponse is the wire shape of `?i=<id>`.
type detailResponse struct {
	model.MovieDetail
	Response string `json:"Response"`
	Error    string `json:"Error"`
}

func (r *searchResponse) toResult() *model.SearchResult {
	if strings.EqualFold(r.Response, responseFalse) {
		return &model.SearchResult{Found: false, Reason: r.Error}
	}
	out := &model.SearchResult{Found: true, Results: make([]model.MovieSummary, 0, len(r.Search))}
	for _, s := range r.Search {
		if strings.TrimSpace(s.ID) == "" {
			continue
		}
		s.PosterURL = cleanPoster(s.PosterURL)
		out.Results = append(out.Results, s)
	}
	if n, err := strconv.Atoi(r.TotalResults); err == nil {
		out.TotalResults = n
	} else {
		out.TotalResults = len(out.Results)
	}
	return out
}

func (r *detailResponse) toDetail() *model.MovieDetail {
	d := r.MovieDetail
	d.PosterURL = cleanPoster(d.PosterURL)
	return &d
}

// cleanPoster maps the catalog's "N/A" poster to no poster.
func cleanPoster(in string) string {
	if strings.EqualFold(strings.TrimSpace(in), model.NotAvailable) {
		return ""
	}
	return in
}
