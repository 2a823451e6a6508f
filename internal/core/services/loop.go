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

// Package services contains the stateful controllers behind a browsing
// session: search, selection, the watched collection, the detail view and the
// rating widget.
//
// None of the controllers lock. Every method must be called from the single
// state goroutine; network work is started with Loop.Go and its result is
// handed back through Loop.Post, where it is checked against a generation
// counter before being applied.
package services

import (
	"context"

	"github.com/jaycherian/go-popcorn/internal/core/model"
)

// Loop schedules work around the state goroutine.
type Loop interface {
	// Post queues fn to run on the state goroutine.
	Post(fn func())
	// Go runs fn in the background. fn must not touch controller state
	// directly; it reports back with Post.
	Go(fn func())
}

// Catalog is the movie catalog as the controllers see it. Implementations
// return *catalog.NotFoundError, *catalog.FetchError or *catalog.CancelledError.
type Catalog interface {
	Search(ctx context.Context, query string) (*model.SearchResult, error)
	Detail(ctx context.Context, id string) (*model.MovieDetail, error)
}

// User-visible error strings.
const (
	MsgMovieNotFound = "Movie not Found"
	MsgSearchFailed  = "Something went wrong with fetching movies"
	MsgDetailFailed  = "Something went wrong with fetching movie details"
)

const (
	DefaultMinQueryLength  = 3
	DefaultDetailMaxRating = 10

	instrumentationName = "github.com/jaycherian/go-popcorn/internal/core/services"
)
