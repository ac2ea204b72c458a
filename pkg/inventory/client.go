/*
 * Copyright 2025 Carver Automation Corporation.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

// Package inventory is the HTTP client for the machine inventory backend.
package inventory

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/carverauto/admindash/pkg/logger"
	"github.com/carverauto/admindash/pkg/models"
)

const (
	machinesPath = "/machines"
	filterPath   = "/machines/filter"
	exportPath   = "/machines/export"

	opFetchAll      = "fetch machines"
	opFetchFiltered = "filter machines"
	opExportCSV     = "export machines"

	maxErrorBody = 8192

	// DefaultBaseURL is where the inventory backend listens in a local install.
	DefaultBaseURL = "http://127.0.0.1:8001"
	// DefaultTimeout bounds a single request.
	DefaultTimeout = 15 * time.Second
)

// Config holds the client settings resolved at startup.
type Config struct {
	BaseURL   string
	Timeout   time.Duration
	UserAgent string
}

// Client issues the list, filter and export requests. It keeps no state
// between calls and never retries.
type Client struct {
	baseURL    string
	timeout    time.Duration
	userAgent  string
	httpClient HTTPClient
	logger     zerolog.Logger
}

// WithHTTPClient replaces the transport used for requests.
func WithHTTPClient(c HTTPClient) func(*Client) {
	return func(client *Client) {
		client.httpClient = c
	}
}

// WithLogger attaches a component logger.
func WithLogger(l logger.Logger) func(*Client) {
	return func(client *Client) {
		client.logger = l.WithComponent("inventory-client")
	}
}

// NewClient validates cfg and builds a Client.
func NewClient(cfg Config, options ...func(*Client)) (*Client, error) {
	base, err := normaliseBaseURL(cfg.BaseURL)
	if err != nil {
		return nil, err
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	c := &Client{
		baseURL:    base,
		timeout:    timeout,
		userAgent:  cfg.UserAgent,
		httpClient: &http.Client{},
		logger:     logger.NewTestLogger().WithComponent("inventory-client"),
	}

	for _, o := range options {
		o(c)
	}

	return c, nil
}

// BaseURL returns the normalised backend base URL.
func (c *Client) BaseURL() string {
	return c.baseURL
}

func normaliseBaseURL(raw string) (string, error) {
	base := strings.TrimSpace(raw)
	if base == "" {
		return "", errBaseURLRequired
	}

	u, err := url.Parse(base)
	if err != nil {
		return "", fmt.Errorf("%w: %w", errInvalidBaseURL, err)
	}

	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return "", fmt.Errorf("%w: %q", errInvalidBaseURL, raw)
	}

	return strings.TrimRight(base, "/"), nil
}

// FetchAll returns the unfiltered machine list.
func (c *Client) FetchAll(ctx context.Context) ([]models.MachineRecord, error) {
	body, err := c.get(ctx, opFetchAll, machinesPath, nil, "application/json")
	if err != nil {
		return nil, err
	}

	return decodeMachines(body)
}

// FetchFiltered returns the machine list narrowed by criteria. Only the
// criteria that are set become query parameters.
func (c *Client) FetchFiltered(ctx context.Context, criteria models.FilterCriteria) ([]models.MachineRecord, error) {
	body, err := c.get(ctx, opFetchFiltered, filterPath, FilterQuery(criteria), "application/json")
	if err != nil {
		return nil, err
	}

	return decodeMachines(body)
}

// ExportCSV returns the raw CSV export. Saving it is up to the caller.
// A JSON object in place of the CSV is the backend reporting a failed export.
func (c *Client) ExportCSV(ctx context.Context) ([]byte, error) {
	body, err := c.get(ctx, opExportCSV, exportPath, nil, "text/csv")
	if err != nil {
		return nil, err
	}

	if trimmed := bytes.TrimSpace(body); len(trimmed) > 0 && trimmed[0] == '{' {
		if message, ok := backendErrorMessage(trimmed); ok {
			return nil, fmt.Errorf("%w: %s", ErrBackend, message)
		}

		return nil, fmt.Errorf("%w: expected CSV, got a JSON object", ErrBackend)
	}

	return body, nil
}

// FilterQuery encodes criteria as query parameters, omitting absent fields.
func FilterQuery(criteria models.FilterCriteria) url.Values {
	params := url.Values{}

	if criteria.OS != "" {
		params.Set("os", criteria.OS)
	}

	if criteria.Outdated != nil {
		params.Set("outdated", strconv.FormatBool(*criteria.Outdated))
	}

	if criteria.Unencrypted != nil {
		params.Set("unencrypted", strconv.FormatBool(*criteria.Unencrypted))
	}

	return params
}

func (c *Client) get(ctx context.Context, op, path string, params url.Values, accept string) ([]byte, error) {
	endpoint := c.baseURL + path
	if encoded := params.Encode(); encoded != "" {
		endpoint = endpoint + "?" + encoded
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("create %s request: %w", op, err)
	}

	requestID := uuid.NewString()

	req.Header.Set("Accept", accept)
	req.Header.Set("X-Request-ID", requestID)

	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	start := time.Now()

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Debug().
			Str("request_id", requestID).
			Str("url", endpoint).
			Err(err).
			Msg("Request failed")

		return nil, &NetworkError{Op: op, URL: endpoint, Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	c.logger.Debug().
		Str("request_id", requestID).
		Str("url", endpoint).
		Int("status", resp.StatusCode).
		Dur("duration", time.Since(start)).
		Msg("Request completed")

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, &NetworkError{
			Op:         op,
			URL:        endpoint,
			StatusCode: resp.StatusCode,
			Body:       readErrorBody(resp.Body),
			Err:        fmt.Errorf("unexpected status %s", resp.Status),
		}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &NetworkError{Op: op, URL: endpoint, Err: fmt.Errorf("read body: %w", err)}
	}

	return body, nil
}

func readErrorBody(r io.Reader) string {
	message, _ := io.ReadAll(io.LimitReader(r, maxErrorBody))

	return strings.TrimSpace(string(message))
}

type backendError struct {
	Error string `json:"error"`
}

// backendErrorMessage extracts the message of an {"error": ...} object.
func backendErrorMessage(body []byte) (string, bool) {
	var be backendError
	if err := json.Unmarshal(body, &be); err != nil || be.Error == "" {
		return "", false
	}

	return be.Error, true
}

// decodeMachines accepts a JSON array; null decodes to an empty list. The
// backend reports query failures as a 200 with an {"error": ...} object.
func decodeMachines(body []byte) ([]models.MachineRecord, error) {
	trimmed := bytes.TrimSpace(body)

	if len(trimmed) > 0 && trimmed[0] == '{' {
		if message, ok := backendErrorMessage(trimmed); ok {
			return nil, fmt.Errorf("%w: %s", ErrBackend, message)
		}

		return nil, fmt.Errorf("%w: expected a JSON array", ErrDecode)
	}

	var records []models.MachineRecord
	if err := json.Unmarshal(trimmed, &records); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecode, err)
	}

	if records == nil {
		records = []models.MachineRecord{}
	}

	return records, nil
}
