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

// Package cloud defines the application configuration, loaded from TOML files,
// and the container of external clients built from it.
//
// Structs:
//   - Application: Naming and window title settings.
//   - Catalog: Where the movie catalog lives and how to authenticate with it.
//   - Search: Search behaviour, such as the minimum query length.
//   - Rating: Maximum values for the rating widget.
//   - Log: Log level and rotating log file settings.
//   - Telemetry: Which OpenTelemetry exporter to use.
//   - Config: The top-level struct that aggregates all other configuration structs.
package cloud

import (
	"fmt"
	"time"
)

// Application holds general application settings.
type Application struct {
	Name         string `toml:"name"`          // The service name reported in telemetry.
	DefaultTitle string `toml:"default_title"` // The window title when nothing is selected.
	TitleFormat  string `toml:"title_format"`  // fmt format applied to a loaded movie's title.
}

// Catalog represents the configuration for the external movie catalog.
type Catalog struct {
	BaseURL        string `toml:"base_url"`        // The catalog endpoint, e.g. "https://www.omdbapi.com/".
	APIKey         string `toml:"api_key"`         // Sent as the `apikey` query parameter. Overridden by OMDB_API_KEY.
	TimeoutSeconds int    `toml:"timeout_seconds"` // HTTP client timeout for a single request.
	DemoLatencyMs  int    `toml:"demo_latency_ms"` // Artificial latency of the in-memory demo catalog.
}

// Timeout returns the configured HTTP timeout.
func (c Catalog) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// DemoLatency returns the artificial latency of the demo catalog.
func (c Catalog) DemoLatency() time.Duration {
	return time.Duration(c.DemoLatencyMs) * time.Millisecond
}

// Search represents search behaviour.
type Search struct {
	MinQueryLength int `toml:"min_query_length"` // Shorter (trimmed) queries never reach the catalog.
}

// Rating represents the star rating bounds.
type Rating struct {
	MaxRating int `toml:"max_rating"` // The maximum rating in the details view.
}

// Log represents the logging configuration.
type Log struct {
	Level      string `toml:"level"`       // One of debug, info, warn, error.
	File       string `toml:"file"`        // Rotating log file. Empty disables file output.
	MaxSizeMB  int    `toml:"max_size_mb"` // Rotate after this many megabytes.
	MaxBackups int    `toml:"max_backups"` // Rotated files to keep.
	MaxAgeDays int    `toml:"max_age_days"`
	Stderr     bool   `toml:"stderr"` // Mirror log output to stderr.
}

// Telemetry represents the OpenTelemetry configuration.
type Telemetry struct {
	Exporter  string `toml:"exporter"`   // "gcp" or "none".
	ProjectID string `toml:"project_id"` // The Google Cloud project for the gcp exporter.
}

// Config represents the overall configuration for the application, loaded from
// TOML files. It acts as the root container for all other configuration structs.
type Config struct {
	Application Application `toml:"application"`
	Catalog     Catalog     `toml:"catalog"`
	Search      Search      `toml:"search"`
	Rating      Rating      `toml:"rating"`
	Log         Log         `toml:"log"`
	Telemetry   Telemetry   `toml:"telemetry"`
}

const (
	ExporterGCP  = "gcp"
	ExporterNone = "none"
)

// NewConfig creates a Config populated with the built-in defaults. Values read
// from TOML files are decoded over the top of it.
func NewConfig() *Config {
	return &Config{
		Application: Application{
			Name:         "popcorn",
			DefaultTitle: "usePopcorn",
			TitleFormat:  "Movie | %s",
		},
		Catalog: Catalog{
			BaseURL:        "https://www.omdbapi.com/",
			TimeoutSeconds: 10,
		},
		Search: Search{MinQueryLength: 3},
		Rating: Rating{MaxRating: 10},
		Log: Log{
			Level:      "info",
			MaxSizeMB:  10,
			MaxBackups: 3,
			MaxAgeDays: 28,
		},
		Telemetry: Telemetry{Exporter: ExporterNone},
	}
}

// Validate reports the first setting that cannot work.
func (c *Config) Validate() error {
	if c.Search.MinQueryLength < 0 {
		return fmt.Errorf("search.min_query_length must not be negative, got %d", c.Search.MinQueryLength)
	}
	if c.Rating.MaxRating <= 0 {
		return fmt.Errorf("rating.max_rating must be positive, got %d", c.Rating.MaxRating)
	}
	switch c.Telemetry.Exporter {
	case ExporterGCP:
		if c.Telemetry.ProjectID == "" {
			return fmt.Errorf("telemetry.project_id is required for the %q exporter", ExporterGCP)
		}
	case ExporterNone, "":
	default:
		return fmt.Errorf("unknown telemetry.exporter %q", c.Telemetry.Exporter)
	}
	return nil
}
