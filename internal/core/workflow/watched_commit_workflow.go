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

// Package workflow combines commands into the pipelines the session runs.
// This file implements the workflow that records a rated title as watched.
package workflow

import (
	"time"

	"github.com/jaycherian/go-popcorn/internal/core/commands"
	"github.com/jaycherian/go-popcorn/internal/core/cor"
)

// WatchedCommitWorkflow builds a WatchedEntry from the *model.WatchedDraft in
// cor.CtxIn, appends it to the collection and closes the detail view. If
// building fails nothing is added and the view stays open.
type WatchedCommitWorkflow struct {
	cor.BaseCommand
	adder   commands.EntryAdder
	clearer commands.SelectionClearer
	now     func() time.Time
	chain   cor.Chain
}

// WorkflowOption customises a WatchedCommitWorkflow.
type WorkflowOption func(*WatchedCommitWorkflow)

// WithClock stamps entries with now instead of time.Now.
func WithClock(now func() time.Time) WorkflowOption {
	return func(w *WatchedCommitWorkflow) { w.now = now }
}

// Execute runs the underlying chain.
func (w *WatchedCommitWorkflow) Execute(context cor.Context) {
	w.chain.Execute(context)
}

func (w *WatchedCommitWorkflow) initializeChain() {
	out := cor.NewBaseChain(w.GetName())

	// Step 1: draft -> entry.
	out.AddCommand(commands.NewWatchedEntryBuilder("watched-entry-builder", w.now))
	// Step 2: entry -> collection.
	out.AddCommand(commands.NewWatchedEntryAppender("watched-entry-appender", w.adder))
	// Step 3: close the detail view.
	out.AddCommand(commands.NewSelectionCloser("selection-closer", w.clearer))

	w.chain = out
}

// NewWatchedCommitWorkflow assembles the commit chain.
func NewWatchedCommitWorkflow(adder commands.EntryAdder, clearer commands.SelectionClearer, opts ...WorkflowOption) *WatchedCommitWorkflow {
	out := &WatchedCommitWorkflow{
		BaseCommand: *cor.NewBaseCommand("watched-commit-workflow"),
		adder:       adder,
		clearer:     clearer,
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(out)
	}
	out.initializeChain()
	return out
}
