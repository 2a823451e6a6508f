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

package commands

import (
	"github.com/jaycherian/go-popcorn/internal/core/cor"
	"github.com/jaycherian/go-popcorn/internal/core/model"
)

// EntryAdder is the part of the watched collection the appender needs.
type EntryAdder interface {
	Add(entry model.WatchedEntry)
}

// WatchedEntryAppender adds the *model.WatchedEntry in its input to the
// collection and passes it on unchanged.
type WatchedEntryAppender struct {
	cor.BaseCommand
	adder EntryAdder
}

func NewWatchedEntryAppender(name string, adder EntryAdder) *WatchedEntryAppender {
	return &WatchedEntryAppender{BaseCommand: *cor.NewBaseCommand(name), adder: adder}
}

func (a *WatchedEntryAppender) IsExecutable(context cor.Context) bool {
	if !a.BaseCommand.IsExecutable(context) {
		return false
	}
	_, ok := cor.Value[*model.WatchedEntry](context, a.GetInputParam())
	return ok
}

func (a *WatchedEntryAppender) Execute(context cor.Context) {
	entry, _ := cor.Value[*model.WatchedEntry](context, a.GetInputParam())
	a.adder.Add(*entry)
	a.Succeed(context)
	context.Add(a.GetOutputParam(), entry)
}
