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

package model

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrInvalidRuntimeFormat is returned when a runtime string has no leading integer.
var ErrInvalidRuntimeFormat = errors.New("invalid runtime format")

// Runtime is a title's running time in minutes.
type Runtime int32

// ParseRuntime extracts the leading integer of a catalog runtime string such
// as "142 min". Anything after the first space is ignored.
func ParseRuntime(in string) (Runtime, error) {
	fields := strings.Fields(in)
	if len(fields) == 0 {
		return 0, ErrInvalidRuntimeFormat
	}
	i, err := strconv.ParseInt(fields[0], 10, 32)
	if err != nil || i < 0 {
		return 0, ErrInvalidRuntimeFormat
	}
	return Runtime(i), nil
}

// String renders the runtime the way the watched list shows it.
func (r Runtime) String() string {
	return fmt.Sprintf("%d min", r)
}
