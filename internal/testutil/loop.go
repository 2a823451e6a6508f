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

import "sync"

// ManualLoop is a services.Loop that runs nothing on its own. Tests decide
// when, and in what order, background work runs and when posted results are
// applied, which makes supersede races reproducible.
type ManualLoop struct {
	mu         sync.Mutex
	background []func()
	posted     []func()
}

func NewManualLoop() *ManualLoop { return &ManualLoop{} }

func (l *ManualLoop) Post(fn func()) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.posted = append(l.posted, fn)
}

func (l *ManualLoop) Go(fn func()) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.background = append(l.background, fn)
}

// PendingBackground is the number of background tasks not yet run.
func (l *ManualLoop) PendingBackground() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.background)
}

// PendingPosted is the number of posted functions not yet run.
func (l *ManualLoop) PendingPosted() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.posted)
}

// RunBackground removes and runs the i-th pending background task.
func (l *ManualLoop) RunBackground(i int) {
	l.mu.Lock()
	fn := l.background[i]
	l.background = append(l.background[:i:i], l.background[i+1:]...)
	l.mu.Unlock()
	fn()
}

// RunAllBackground runs pending background tasks in start order.
func (l *ManualLoop) RunAllBackground() {
	for l.PendingBackground() > 0 {
		l.RunBackground(0)
	}
}

// RunPosted applies posted functions in order until none remain.
func (l *ManualLoop) RunPosted() {
	for {
		l.mu.Lock()
		if len(l.posted) == 0 {
			l.mu.Unlock()
			return
		}
		fn := l.posted[0]
		l.posted = l.posted[1:]
		l.mu.Unlock()
		fn()
	}
}

// Drain runs everything, background first, until the loop is idle.
func (l *ManualLoop) Drain() {
	for l.PendingBackground() > 0 || l.PendingPosted() > 0 {
		l.RunAllBackground()
		l.RunPosted()
	}
}
