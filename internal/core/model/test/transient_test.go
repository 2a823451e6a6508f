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

package model_test

import (
	"encoding/json"
	"testing"

	"github.com/jaycherian/go-popcorn/internal/core/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRuntime(t *testing.T) {
	tests := []struct {
		in      string
		want    model.Runtime
		wantErr bool
	}{
		{"142 min", 142, false},
		{"155 min", 155, false},
		{"90", 90, false},
		{"  61 min  ", 61, false},
		{"N/A", 0, true},
		{"", 0, true},
		{"min 90", 0, true},
		{"-5 min", 0, true},
	}

	for _, tt := range tests {
		got, err := model.ParseRuntime(tt.in)
		if tt.wantErr {
			assert.ErrorIs(t, err, model.ErrInvalidRuntimeFormat, "input %q", tt.in)
			continue
		}
		require.NoError(t, err, "input %q", tt.in)
		assert.Equal(t, tt.want, got, "input %q", tt.in)
	}
}

func TestCatalogRatingUnmarshal(t *testing.T) {
	var doc struct {
		Rating model.CatalogRating `json:"imdbRating"`
	}

	require.NoError(t, json.Unmarshal([]byte(`{"imdbRating":"7.9"}`), &doc))
	assert.Equal(t, model.NewCatalogRating(7.9), doc.Rating)

	require.NoError(t, json.Unmarshal([]byte(`{"imdbRating":"N/A"}`), &doc))
	assert.False(t, doc.Rating.Valid)

	require.NoError(t, json.Unmarshal([]byte(`{"imdbRating":6.5}`), &doc))
	assert.Equal(t, model.NewCatalogRating(6.5), doc.Rating)

	require.NoError(t, json.Unmarshal([]byte(`{"imdbRating":null}`), &doc))
	assert.False(t, doc.Rating.Valid)

	require.NoError(t, json.Unmarshal([]byte(`{"imdbRating":"great"}`), &doc))
	assert.False(t, doc.Rating.Valid)
}

func TestCatalogRatingString(t *testing.T) {
	assert.Equal(t, "8.5", model.NewCatalogRating(8.5).String())
	assert.Equal(t, "N/A", model.CatalogRating{}.String())
}

func TestMovieDetailDecode(t *testing.T) {
	body := `{"Title":"Gladiator","Year":"2000","Runtime":"155 min","imdbRating":"8.5","imdbID":"tt0172495","Poster":"N/A","Response":"True"}`
	var d model.MovieDetail
	require.NoError(t, json.Unmarshal([]byte(body), &d))

	assert.Equal(t, "tt0172495", d.ID)
	assert.Equal(t, 155, d.RuntimeMinutes())
	assert.Equal(t, model.NewCatalogRating(8.5), d.CatalogRating)
}
