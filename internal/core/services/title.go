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

package services

// TitleSink receives the process-wide "current title", e.g. a window title.
type TitleSink interface {
	SetTitle(title string)
}

// TitleSinkFunc adapts a function to TitleSink.
type TitleSinkFunc func(title string)

func (f TitleSinkFunc) SetTitle(title string) { f(title) }

// NopTitleSink discards titles.
var NopTitleSink TitleSink = TitleSinkFunc(func(string) {})

// AcquireTitle sets title on sink and returns a release function that restores
// the given default. Release is idempotent.
func AcquireTitle(sink TitleSink, title, restore string) (release func()) {
	sink.SetTitle(title)
	released := false
	return func() {
		if released {
			return
		}
		released = true
		sink.SetTitle(restore)
	}
}
