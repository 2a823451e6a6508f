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

package main

import (
	"fmt"
	"os"

	"github.com/spf13/afero"

	"github.com/jaycherian/go-popcorn/internal/cloud"
	"github.com/jaycherian/go-popcorn/internal/core/services"
	"github.com/jaycherian/go-popcorn/internal/core/session"
)

// Frontend draws snapshots and owns the window title. Terminal and UI both
// implement it.
type Frontend interface {
	session.Renderer
	services.TitleSink
}

func ProvideRenderer(f Frontend) session.Renderer { return f }

func ProvideTitleSink(f Frontend) services.TitleSink { return f }

// App is what the injector builds: the session plus the clients it holds.
type App struct {
	Session *session.Session
	clients *cloud.ServiceClients
}

func NewApp(s *session.Session, clients *cloud.ServiceClients) *App {
	return &App{Session: s, clients: clients}
}

// Close releases the service clients.
func (a *App) Close() {
	a.clients.Close()
}

// SetupOS fills in the configuration location when the environment does not
// name one.
func SetupOS() (err error) {
	if os.Getenv(cloud.EnvConfigFilePrefix) == "" {
		if err = os.Setenv(cloud.EnvConfigFilePrefix, "configs"); err != nil {
			return err
		}
	}
	if os.Getenv(cloud.EnvConfigRuntime) == "" {
		err = os.Setenv(cloud.EnvConfigRuntime, cloud.DefaultRuntime)
	}
	return err
}

// GetConfig loads and validates the configuration from fs.
func GetConfig(fs afero.Fs) (*cloud.Config, error) {
	if err := SetupOS(); err != nil {
		return nil, fmt.Errorf("failed to setup environment: %w", err)
	}
	config := cloud.NewConfig()
	if err := cloud.LoadConfig(fs, config); err != nil {
		return nil, err
	}
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return config, nil
}
