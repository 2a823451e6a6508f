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

// Package cor (Chain of Responsibility) provides the building blocks for
// running a state change as a sequence of small commands. Commands share a
// Context, read their input from CtxIn and write their output to CtxOut; a
// Chain pipes one command's output into the next command's input and stops at
// the first failure.
package cor

import (
	"context"

	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

// CtxIn and CtxOut are the keys a BaseChain uses to pipe data between commands.
const (
	// CtxIn holds the primary input of a command. The chain fills it with the
	// output of the previous command.
	CtxIn = "__IN__"
	// CtxOut is where a command places its primary output.
	CtxOut = "__OUT__"
)

// Context is the shared state passed through a chain of commands for a single
// execution. It carries data, errors, a Go context and cleanup hooks.
type Context interface {
	// SetContext sets the Go context used for cancellation and trace propagation.
	SetContext(context context.Context)

	// GetContext retrieves the Go context.
	GetContext() context.Context

	// Add stores a key-value pair and returns the Context for chaining.
	Add(key string, value any) Context

	// AddError records an error, keyed by the name of the command that produced it.
	AddError(key string, err error)

	// GetErrors returns every error collected during the execution.
	GetErrors() map[string]error

	// Err joins the collected errors in command-name order, or returns nil.
	Err() error

	// Get retrieves a value by key, or nil.
	Get(key string) any

	// Remove deletes a key.
	Remove(key string)

	// HasErrors reports whether any error was recorded.
	HasErrors() bool

	// OnClose registers a function to run when the Context is closed.
	OnClose(fn func())

	// Close runs the registered cleanup functions in reverse order.
	Close()
}

// Executable is anything with execution logic driven by a Context.
type Executable interface {
	Execute(context Context)
}

// Command is an atomic, testable unit of work.
type Command interface {
	Executable

	// GetName returns the command name, used for logging and telemetry.
	GetName() string

	// GetInputParam returns the key of the command's primary input.
	GetInputParam() string

	// GetOutputParam returns the key of the command's primary output.
	GetOutputParam() string

	// IsExecutable is the precondition checked before Execute.
	IsExecutable(context Context) bool

	GetTracer() trace.Tracer
	GetMeter() metric.Meter
	GetSuccessCounter() metric.Int64Counter
	GetErrorCounter() metric.Int64Counter
}

// Chain is a sequence of commands. It is itself a Command, so chains nest.
type Chain interface {
	Command

	// ContinueOnFailure controls whether later commands run after one fails.
	ContinueOnFailure(bool) Chain

	// AddCommand appends a command to the sequence.
	AddCommand(command Command) Chain
}
