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

//go:build wireinject
// +build wireinject

package main

import (
	"github.com/google/wire"

	"github.com/jaycherian/go-popcorn/internal/cloud"
	"github.com/jaycherian/go-popcorn/internal/core/session"
)

var frontendSet = wire.NewSet(ProvideRenderer, ProvideTitleSink)

// InitializeApp wires the session to its catalog and front end.
func InitializeApp(config *cloud.Config, mode cloud.CatalogMode, frontend Frontend) (*App, error) {
	panic(wire.Build(cloud.ProviderSet, session.ProviderSet, frontendSet, NewApp))
}
