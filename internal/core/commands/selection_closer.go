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
)

// SelectionClearer closes the detail view.
type SelectionClearer interface {
	Clear()
}

// SelectionCloser is the last step of a commit: it closes the detail view.
// Its input is passed through so callers can read what was committed.
type SelectionCloser struct {
	cor.BaseCommand
	clearer SelectionClearer
}

func NewSelectionCloser(name string, clearer SelectionClearer) *SelectionCloser {
	return &SelectionCloser{BaseCommand: *cor.NewBaseCommand(name), clearer: clearer}
}

func (c *SelectionCloser) Execute(context cor.Context) {
	c.clearer.Clear()
	c.Succeed(context)
	context.Add(c.GetOutputParam(), context.Get(c.GetInputParam()))
}
