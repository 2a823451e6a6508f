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

package cor_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jaycherian/go-popcorn/internal/core/cor"
)

// upper uppercases the string input.
type upper struct {
	cor.BaseCommand
	ran *[]string
}

func newUpper(name string, ran *[]string) *upper {
	return &upper{BaseCommand: *cor.NewBaseCommand(name), ran: ran}
}

func (u *upper) Execute(context cor.Context) {
	*u.ran = append(*u.ran, u.GetName())
	in, _ := cor.Value[string](context, u.GetInputParam())
	context.Add(u.GetOutputParam(), strings.ToUpper(in)+"!")
	u.Succeed(context)
}

// failing always records an error.
type failing struct {
	cor.BaseCommand
	ran *[]string
}

func (f *failing) Execute(context cor.Context) {
	*f.ran = append(*f.ran, f.GetName())
	f.Fail(context, errors.New("boom"))
}

func TestChainPipesOutputToInput(t *testing.T) {
	var ran []string
	chain := cor.NewBaseChain("pipe")
	chain.AddCommand(newUpper("one", &ran)).AddCommand(newUpper("two", &ran))

	chCtx := cor.NewBaseContext(context.Background())
	chCtx.Add(cor.CtxIn, "pop")
	require.True(t, chain.IsExecutable(chCtx))
	chain.Execute(chCtx)

	assert.False(t, chCtx.HasErrors())
	assert.NoError(t, chCtx.Err())
	assert.Equal(t, []string{"one", "two"}, ran)
	assert.Equal(t, "POP!!", chCtx.Get(cor.CtxIn))
	assert.Nil(t, chCtx.Get(cor.CtxOut))
	assert.Len(t, chain.Commands(), 2)
}

func TestChainStopsAtFirstFailure(t *testing.T) {
	var ran []string
	chain := cor.NewBaseChain("stop")
	chain.AddCommand(&failing{BaseCommand: *cor.NewBaseCommand("bad"), ran: &ran})
	chain.AddCommand(newUpper("after", &ran))

	chCtx := cor.NewBaseContext(context.Background())
	chCtx.Add(cor.CtxIn, "x")
	chain.Execute(chCtx)

	assert.Equal(t, []string{"bad"}, ran)
	assert.EqualError(t, chCtx.Err(), "bad: boom")
}

func TestChainContinueOnFailure(t *testing.T) {
	var ran []string
	chain := cor.NewBaseChain("continue")
	chain.ContinueOnFailure(true)
	chain.AddCommand(&failing{BaseCommand: *cor.NewBaseCommand("bad"), ran: &ran})
	chain.AddCommand(newUpper("after", &ran))

	chCtx := cor.NewBaseContext(context.Background())
	chCtx.Add(cor.CtxIn, "x")
	chain.Execute(chCtx)

	// "bad" produced no output, so "after" has no input and is recorded as not executable.
	assert.Equal(t, []string{"bad"}, ran)
	assert.Len(t, chCtx.GetErrors(), 2)
}

func TestChainHonoursCancelledContext(t *testing.T) {
	var ran []string
	chain := cor.NewBaseChain("cancelled")
	chain.AddCommand(newUpper("one", &ran))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	chCtx := cor.NewBaseContext(ctx)
	chCtx.Add(cor.CtxIn, "x")
	chain.Execute(chCtx)

	assert.Empty(t, ran)
	assert.ErrorIs(t, chCtx.Err(), context.Canceled)
	assert.Equal(t, ctx, chCtx.GetContext())
}

func TestContextCloseRunsCleanupsInReverse(t *testing.T) {
	var order []int
	chCtx := cor.NewBaseContext(context.Background())
	chCtx.OnClose(func() { order = append(order, 1) })
	chCtx.OnClose(func() { order = append(order, 2) })
	chCtx.Close()
	chCtx.Close()
	assert.Equal(t, []int{2, 1}, order)
}

func TestValue(t *testing.T) {
	chCtx := cor.NewBaseContext(context.Background())
	chCtx.Add("n", 3)

	n, ok := cor.Value[int](chCtx, "n")
	assert.True(t, ok)
	assert.Equal(t, 3, n)

	_, ok = cor.Value[string](chCtx, "n")
	assert.False(t, ok)
	_, ok = cor.Value[int](chCtx, "missing")
	assert.False(t, ok)

	chCtx.Remove("n")
	assert.Nil(t, chCtx.Get("n"))
}
