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

// Package cloud provides configuration loading and client construction.
// This file contains the hierarchical configuration loader.
//
// Functions:
//   - fileExists: A simple helper to check if a file exists on the given filesystem.
//   - LoadConfig: Reads a base configuration file and then overwrites values with a
//     second, runtime-specific file (e.g., .env.local.toml, .env.test.toml). The
//     runtime is determined by an environment variable.
package cloud

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/spf13/afero"
)

// Constants used for configuration loading.
const (
	ConfigFileBaseName  = ".env"                  // The base name for configuration files (e.g., ".env.toml").
	ConfigFileExtension = ".toml"                 // The file extension for configuration files.
	ConfigSeparator     = "."                     // The separator used in config file names (e.g., ".env.local.toml").
	EnvConfigFilePrefix = "POPCORN_CONFIG_PREFIX" // The environment variable for specifying the config directory.
	EnvConfigRuntime    = "POPCORN_RUNTIME"       // The environment variable for the runtime (e.g., "local", "test").
	EnvCatalogAPIKey    = "OMDB_API_KEY"          // Overrides catalog.api_key when set.
	DefaultRuntime      = "local"
)

// fileExists checks if a file exists at the given path on fs.
func fileExists(fs afero.Fs, in string) bool {
	_, err := fs.Stat(in)
	return !errors.Is(err, os.ErrNotExist)
}

// ConfigFiles returns the base and runtime-specific configuration file names
// derived from the environment.
func ConfigFiles() (base string, runtime string) {
	prefix := os.Getenv(EnvConfigFilePrefix)
	if len(prefix) > 0 && !strings.HasSuffix(prefix, string(os.PathSeparator)) {
		prefix = prefix + string(os.PathSeparator)
	}

	runtimeEnvironment := os.Getenv(EnvConfigRuntime)
	if runtimeEnvironment == "" {
		runtimeEnvironment = DefaultRuntime
	}

	base = prefix + ConfigFileBaseName + ConfigFileExtension
	runtime = prefix + ConfigFileBaseName + ConfigSeparator + runtimeEnvironment + ConfigFileExtension
	return base, runtime
}

// LoadConfig decodes the base configuration file and then the runtime-specific
// file into config, so values in the latter win. Missing files are skipped.
// Finally OMDB_API_KEY, when set, replaces the catalog API key.
func LoadConfig(fs afero.Fs, config *Config) error {
	baseConfigFileName, envConfigFileName := ConfigFiles()

	for _, name := range []string{baseConfigFileName, envConfigFileName} {
		if !fileExists(fs, name) {
			slog.Debug("configuration file not present", "file", name)
			continue
		}
		data, err := afero.ReadFile(fs, name)
		if err != nil {
			return fmt.Errorf("failed to read configuration file %s: %w", name, err)
		}
		if _, err := toml.Decode(string(data), config); err != nil {
			return fmt.Errorf("failed to decode configuration file %s: %w", name, err)
		}
		slog.Debug("configuration file loaded", "file", name)
	}

	if key := os.Getenv(EnvCatalogAPIKey); key != "" {
		config.Catalog.APIKey = key
	}
	return nil
}
