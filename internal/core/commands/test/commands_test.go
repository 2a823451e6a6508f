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

package commands_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jaycherian/go-popcorn/internal/core/commands"
	"github.com/jaycherian/go-popcorn/internal/core/cor"
	"github.com/jaycherian/go-popcorn/internal/core/model"
	"github.com/jaycherian/go-popcorn/internal/core/services"
)

func TestWatchedEntryBuilder(t *testing.T) {
	now := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	cmd := commands.NewWatchedEntryBuilder("builder", func() time.Time { return now })

	chCtx := cor.NewBaseContext(context.Background())
	assert.False(t, cmd.IsExecutable(chCtx))

	detail := model.GetExampleDetail()
	detail.Runtime = "142 min"
	chCtx.Add(cor.CtxIn, &model.WatchedDraft{Detail: detail, Rating: 6})
	require.True(t, cmd.IsExecutable(chCtx))
	cmd.Execute(chCtx)

	require.False(t, chCtx.HasErrors())
	entry, ok := cor.Value[*model.WatchedEntry](chCtx, cor.CtxOut)
	require.True(t, ok)
	assert.Equal(t, 142, entry.RuntimeMinutes)
	assert.Equal(t, 6, entry.UserRating)
	assert.Equal(t, now, entry.AddedAt)
	assert.Same(t, entry, chCtx.Get(commands.GetWatchedEntryParameterName()))
}

func TestWatchedEntryBuilderMissingDetail(t *testing.T) {
	cmd := commands.NewWatchedEntryBuilder("builder", nil)
	chCtx := cor.NewBaseContext(context.Background())
	chCtx.Add(cor.CtxIn, &model.WatchedDraft{Rating: 3})
	cmd.Execute(chCtx)
	assert.ErrorIs(t, chCtx.Err(), model.ErrMissingDetail)
}

func TestWatchedEntryAppenderAndSelectionCloser(t *testing.T) {
	watched := services.NewWatchedCollection()
	appender := commands.NewWatchedEntryAppender("appender", watched)

	chCtx := cor.NewBaseContext(context.Background())
	chCtx.Add(cor.CtxIn, "wrong type")
	assert.False(t, appender.IsExecutable(chCtx))

	entry := &model.WatchedEntry{ID: "tt0133093", UserRating: 8}
	chCtx.Add(cor.CtxIn, entry)
	require.True(t, appender.IsExecutable(chCtx))
	appender.Execute(chCtx)
	assert.Equal(t, 1, watched.Len())
	assert.Same(t, entry, chCtx.Get(cor.CtxOut))

	cleared := 0
	closer := commands.NewSelectionCloser("closer", clearFunc(func() { cleared++ }))
	closer.Execute(chCtx)
	assert.Equal(t, 1, cleared)
	assert.Same(t, entry, chCtx.Get(cor.CtxOut))
}

type clearFunc func()

func (f clearFunc) Clear() { f() }
