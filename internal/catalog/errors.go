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

package catalog

import (
	"context"
	"errors"
	"fmt"
)

// NotFoundError is returned when the catalog answers successfully but its body
// says there is nothing to show. It is not a transport error.
type NotFoundError struct {
	Op     string // "search" or "detail".
	Key    string // The query or id that was looked up.
	Reason string // The catalog's own message, e.g. "Movie not found!".
}

func (e *NotFoundError) Error() string {
	if e.Reason == "" {
		return fmt.Sprintf("catalog %s %q: not found", e.Op, e.Key)
	}
	return fmt.Sprintf("catalog %s %q: %s", e.Op, e.Key, e.Reason)
}

// FetchError is a network, HTTP status or decoding failure.
type FetchError struct {
	Op         string
	StatusCode int // 0 when no response was received.
	Err        error
}

func (e *FetchError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("catalog %s: unexpected status %d", e.Op, e.StatusCode)
	}
	return fmt.Sprintf("catalog %s: %v", e.Op, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// CancelledError is returned when the caller's context was cancelled before the
// request settled, typically because a newer request superseded it.
type CancelledError struct {
	Op  string
	Err error
}

func (e *CancelledError) Error() string {
	return fmt.Sprintf("catalog %s: cancelled: %v", e.Op, e.Err)
}

func (e *CancelledError) Unwrap() error { return e.Err }

// IsCancelled reports whether err is a cancellation, whether it was wrapped by
// this package or came straight from a context.
func IsCancelled(err error) bool {
	var ce *CancelledError
	return errors.As(err, &ce) || errors.Is(err, context.Canceled)
}

// IsNotFound reports whether err carries the catalog's "not found" answer.
func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}

// classify turns a failed round trip into the right error type. A context
// deadline is a fetch failure; only explicit cancellation is silent.
func classify(ctx context.Context, op string, status int, err error) error {
	if errors.Is(ctx.Err(), context.Canceled) || errors.Is(err, context.Canceled) {
		return &CancelledError{Op: op, Err: context.Canceled}
	}
	return &FetchError{Op: op, StatusCode: status, Err: err}
}
