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

// Package commands provides the concrete implementations of the Chain of
// Responsibility (COR) pattern's Command interface. This file defines the
// command that turns a confirmed detail-view draft into a WatchedEntry.
//
// Logic Flow:
//  1. It receives a *model.WatchedDraft (the loaded detail plus the chosen
//     rating) from the context.
//  2. It builds the entry, keeping only the leading integer of the runtime
//     string ("155 min" becomes 155).
//  3. It stores the entry under the watched-entry key and in CtxOut, ready for
//     the appender.
package commands

import (
	"fmt"
	"time"

	"github.com/jaycherian/go-popcorn/internal/core/cor"
	"github.com/jaycherian/go-popcorn/internal/core/model"
)

// GetWatchedEntryParameterName is the context key under which the built entry
// is kept for the rest of the chain.
func GetWatchedEntryParameterName() string {
	return "__WATCHED_ENTRY__"
}

// WatchedEntryBuilder converts a draft into a *model.WatchedEntry.
type WatchedEntryBuilder struct {
	cor.BaseCommand
	now func() time.Time
}

// NewWatchedEntryBuilder returns the builder. now stamps AddedAt; nil means time.Now.
func NewWatchedEntryBuilder(name string, now func() time.Time) *WatchedEntryBuilder {
	if now == nil {
		now = time.Now
	}
	out := &WatchedEntryBuilder{BaseCommand: *cor.NewBaseCommand(name), now: now}
	out.OutputParamName = GetWatchedEntryParameterName()
	return out
}

func (b *WatchedEntryBuilder) IsExecutable(context cor.Context) bool {
	if !b.BaseCommand.IsExecutable(context) {
		return false
	}
	_, ok := cor.Value[*model.WatchedDraft](context, b.GetInputParam())
	return ok
}

func (b *WatchedEntryBuilder) Execute(context cor.Context) {
	draft, _ := cor.Value[*model.WatchedDraft](context, b.GetInputParam())

	entry, err := model.NewWatchedEntry(draft, b.now())
	if err != nil {
		b.Fail(context, fmt.Errorf("failed to build watched entry: %w", err))
		return
	}
	b.Succeed(context)

	context.Add(b.GetOutputParam(), &entry)
	context.Add(cor.CtxOut, &entry)
}
