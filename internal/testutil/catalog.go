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

package test

import (
	"context"
	"sync"

	"github.com/jaycherian/go-popcorn/internal/catalog"
	"github.com/jaycherian/go-popcorn/internal/core/model"
)

// FakeCatalog serves the example catalog and records every call. Errors can
// be injected per operation, and IgnoreCancel makes it answer even after its
// context was cancelled, like a transport that cannot abort.
type FakeCatalog struct {
	mu           sync.Mutex
	inner        *catalog.StaticCatalog
	searches     []string
	details      []string
	SearchErr    error
	DetailErr    error
	IgnoreCancel bool
}

func NewFakeCatalog() *FakeCatalog {
	return &FakeCatalog{inner: catalog.NewStaticCatalog(model.GetExampleCatalog(), 0)}
}

func (f *FakeCatalog) Search(ctx context.Context, query string) (*model.SearchResult, error) {
	f.mu.Lock()
	f.searches = append(f.searches, query)
	err := f.SearchErr
	f.mu.Unlock()
	if f.IgnoreCancel {
		ctx = context.WithoutCancel(ctx)
	}
	if ctx.Err() != nil {
		return nil, &catalog.CancelledError{Op: "search", Err: ctx.Err()}
	}
	if err != nil {
		return nil, err
	}
	return f.inner.Search(ctx, query)
}

func (f *FakeCatalog) Detail(ctx context.Context, id string) (*model.MovieDetail, error) {
	f.mu.Lock()
	f.details = append(f.details, id)
	err := f.DetailErr
	f.mu.Unlock()
	if f.IgnoreCancel {
		ctx = context.WithoutCancel(ctx)
	}
	if ctx.Err() != nil {
		return nil, &catalog.CancelledError{Op: "detail", Err: ctx.Err()}
	}
	if err != nil {
		return nil, err
	}
	return f.inner.Detail(ctx, id)
}

// SetSearchErr changes SearchErr while the catalog is in use.
func (f *FakeCatalog) SetSearchErr(err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.SearchErr = err
}

// SetDetailErr changes DetailErr while the catalog is in use.
func (f *FakeCatalog) SetDetailErr(err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.DetailErr = err
}

// Searches returns the queries received so far.
func (f *FakeCatalog) Searches() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.searches...)
}

// Details returns the ids requested so far.
func (f *FakeCatalog) Details() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.details...)
}

// RecordingTitleSink keeps every title it was given.
type RecordingTitleSink struct {
	mu     sync.Mutex
	titles []string
}

func (r *RecordingTitleSink) SetTitle(title string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.titles = append(r.titles, title)
}

// Titles returns every title set, oldest first.
func (r *RecordingTitleSink) Titles() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.titles...)
}

// Current is the last title set, or "".
func (r *RecordingTitleSink) Current() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.titles) == 0 {
		return ""
	}
	return r.titles[len(r.titles)-1]
}
