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
// This file holds ServiceClients, the container for every client the session
// needs to reach the outside world. It is built once at startup from Config and
// then handed to the components that need it.
package cloud

import (
	"errors"
	"log/slog"

	"github.com/google/wire"

	"github.com/jaycherian/go-popcorn/internal/catalog"
	"github.com/jaycherian/go-popcorn/internal/core/model"
	"github.com/jaycherian/go-popcorn/internal/core/services"
)

// Compile-time checks that both catalog implementations satisfy the interface
// the controllers consume.
var (
	_ services.Catalog = (*catalog.Client)(nil)
	_ services.Catalog = (*catalog.StaticCatalog)(nil)
)

// ErrMissingAPIKey is returned when the live catalog is requested without a key.
var ErrMissingAPIKey = errors.New("catalog api key is not configured; set catalog.api_key or OMDB_API_KEY")

// CatalogMode selects which catalog implementation NewServiceClients builds.
type CatalogMode bool

const (
	LiveCatalog CatalogMode = false
	DemoCatalog CatalogMode = true
)

// ServiceClients is a container for the clients that talk to external services.
type ServiceClients struct {
	Catalog services.Catalog // The movie catalog, live or in-memory.
}

// Close releases client resources. The catalog clients hold none today.
func (c *ServiceClients) Close() {}

// NewServiceClients builds the clients described by config.
func NewServiceClients(config *Config, mode CatalogMode) (*ServiceClients, error) {
	if mode == DemoCatalog {
		slog.Info("using the in-memory demo catalog")
		return &ServiceClients{
			Catalog: catalog.NewStaticCatalog(model.GetExampleCatalog(), config.Catalog.DemoLatency()),
		}, nil
	}

	if config.Catalog.APIKey == "" {
		return nil, ErrMissingAPIKey
	}
	client := catalog.NewClient(
		config.Catalog.APIKey,
		config.Catalog.BaseURL,
		catalog.WithTimeout(config.Catalog.Timeout()),
	)
	return &ServiceClients{Catalog: client}, nil
}

// ProvideCatalog exposes the catalog held by clients to the injector.
func ProvideCatalog(clients *ServiceClients) services.Catalog {
	return clients.Catalog
}

// ProviderSet wires the client container and the catalog it holds.
var ProviderSet = wire.NewSet(NewServiceClients, ProvideCatalog)
