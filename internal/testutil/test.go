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

// Package test provides helpers for the application's test suite: test
// configuration, a manually driven event loop, a recording catalog and title
// sink, and a gomock catalog.
package test

//go:generate mockgen -destination=mock_catalog.go -package=test github.com/jaycherian/go-popcorn/internal/core/services Catalog

import (
	"log"
	"os"
	"testing"

	"github.com/spf13/afero"

	"github.com/jaycherian/go-popcorn/internal/cloud"
)

// StateManager caches the test configuration for the whole run.
type StateManager struct {
	config *cloud.Config
}

var state = &StateManager{}

// HandleErr fails the test if err is not nil.
func HandleErr(err error, t *testing.T) {
	t.Helper()
	if err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

// SetupOS points the configuration loader at the test runtime.
func SetupOS() (err error) {
	err = os.Setenv(cloud.EnvConfigFilePrefix, "configs")
	if err != nil {
		return err
	}
	return os.Setenv(cloud.EnvConfigRuntime, "test")
}

// GetConfig loads the test configuration once and caches it. Files that are
// not reachable from the package under test are skipped, leaving defaults.
func GetConfig() *cloud.Config {
	if state.config == nil {
		if err := SetupOS(); err != nil {
			log.Fatalf("failed to setup environment for test: %v\n", err)
		}
		config := cloud.NewConfig()
		if err := cloud.LoadConfig(afero.NewOsFs(), config); err != nil {
			log.Fatalf("failed to load test configuration: %v\n", err)
		}
		// Tests never write log files or export telemetry.
		config.Log.File = ""
		config.Telemetry.Exporter = cloud.ExporterNone
		state.config = config
	}
	return state.config
}
