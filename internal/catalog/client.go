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

// Package catalog talks to the external movie catalog (the OMDb API). It owns
// the wire schemas, maps every failure onto NotFoundError, FetchError or
// CancelledError, and traces each request.
//
// Every request honours the caller's context, so a superseded search can be
// aborted mid-flight by cancelling the context it was issued with.
package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/jaycherian/go-popcorn/internal/core/model"
)

const (
	// DefaultBaseURL is the public OMDb endpoint.
	DefaultBaseURL = "https://www.omdbapi.com/"
	// DefaultTimeout bounds a single round trip when no client is supplied.
	DefaultTimeout = 10 * time.Second

	tracerName = "github.com/jaycherian/go-popcorn/internal/catalog"
)

// Client is an HTTP client for the catalog. The API key travels as the
// `apikey` query parameter on every request.
type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
	tracer     trace.Tracer
}

// Option customises a Client.
type Option func(*Client)

// WithHTTPClient replaces the default *http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithTimeout sets the timeout of the default *http.Client.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.httpClient.Timeout = d
		}
	}
}

// NewClient returns a catalog client for baseURL (DefaultBaseURL when empty).
func NewClient(apiKey, baseURL string, opts ...Option) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	c := &Client{
		apiKey:     apiKey,
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: DefaultTimeout},
		tracer:     otel.Tracer(tracerName),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Search looks titles up by free text. A body-level "not found" answer is
// returned as a *NotFoundError alongside the parsed result.
func (c *Client) Search(ctx context.Context, query string) (*model.SearchResult, error) {
	params := url.Values{}
	params.Set("s", query)

	var resp searchResponse
	if err := c.makeRequest(ctx, "search", params, &resp); err != nil {
		return nil, err
	}

	result := resp.toResult()
	if !result.Found {
		return result, &NotFoundError{Op: "search", Key: query, Reason: result.Reason}
	}
	return result, nil
}

// Detail fetches the full record for one id.
func (c *Client) Detail(ctx context.Context, id string) (*model.MovieDetail, error) {
	params := url.Values{}
	params.Set("i", id)
	params.Set("plot", "short")

	var resp detailResponse
	if err := c.makeRequest(ctx, "detail", params, &resp); err != nil {
		return nil, err
	}
	if strings.EqualFold(resp.Response, responseFalse) {
		return nil, &NotFoundError{Op: "detail", Key: id, Reason: resp.Error}
	}
	return resp.toDetail(), nil
}

// makeRequest performs one GET against the catalog and decodes the JSON body
// into out.
func (c *Client) makeRequest(ctx context.Context, op string, params url.Values, out any) (err error) {
	requestID := uuid.NewString()
	ctx, span := c.tracer.Start(ctx, "catalog."+op, trace.WithAttributes(
		attribute.String("catalog.request_id", requestID),
		attribute.String("catalog.op", op),
	))
	defer func() {
		if err != nil && !IsCancelled(err) {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()

	u, err := url.Parse(c.baseURL)
	if err != nil {
		return &FetchError{Op: op, Err: fmt.Errorf("invalid base URL: %w", err)}
	}
	query := u.Query()
	query.Set("apikey", c.apiKey)
	for key := range params {
		query.Set(key, params.Get(key))
	}
	u.RawQuery = query.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return &FetchError{Op: op, Err: fmt.Errorf("create request: %w", err)}
	}
	req.Header.Set("Accept", "application/json")

	started := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return classify(ctx, op, 0, err)
	}
	defer resp.Body.Close()

	span.SetAttributes(attribute.Int("http.status_code", resp.StatusCode))
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		slog.WarnContext(ctx, "catalog request failed", "op", op, "status", resp.StatusCode, "request_id", requestID)
		return &FetchError{Op: op, StatusCode: resp.StatusCode}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return classify(ctx, op, 0, fmt.Errorf("decode response: %w", err))
	}

	slog.DebugContext(ctx, "catalog request completed", "op", op, "request_id", requestID, "elapsed", time.Since(started))
	return nil
}
