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

// Package config resolves the dashboard settings from defaults, an optional
// JSON file and ADMINDASH_ environment variables, in that order.
package config

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	srHttp "github.com/carverauto/admindash/pkg/http"
	"github.com/carverauto/admindash/pkg/logger"
	"github.com/carverauto/admindash/pkg/models"
)

var (
	errAPIBaseURLRequired = errors.New("api_base_url is required")
	errInvalidAPIBaseURL  = errors.New("api_base_url must be an http or https URL with a host")
	errInvalidTimeout     = errors.New("request_timeout must be positive")
	errInvalidConfigPtr   = errors.New("config must be a non-nil pointer")
)

const (
	// EnvPrefix is prepended to every environment override.
	EnvPrefix = "ADMINDASH_"

	defaultAPIBaseURL     = "http://127.0.0.1:8001"
	defaultRequestTimeout = 15 * time.Second
	defaultListenAddr     = "127.0.0.1:8080"
)

// ConfigLoader fills dst from a source. path is ignored by sources that
// have no notion of one.
type ConfigLoader interface {
	Load(ctx context.Context, path string, dst interface{}) error
}

// Validator is implemented by configs that can check themselves after loading.
type Validator interface {
	Validate() error
}

// DashboardConfig is everything the shells need at startup.
type DashboardConfig struct {
	APIBaseURL     string            `json:"api_base_url"`
	RequestTimeout models.Duration   `json:"request_timeout"`
	ExportDir      string            `json:"export_dir"`
	ListenAddr     string            `json:"listen_addr"`
	CORS           srHttp.CORSConfig `json:"cors"`
	Logging        *logger.Config    `json:"logging"`
}

// Default returns the built-in settings.
func Default() *DashboardConfig {
	return &DashboardConfig{
		APIBaseURL:     defaultAPIBaseURL,
		RequestTimeout: models.Duration(defaultRequestTimeout),
		ExportDir:      ".",
		ListenAddr:     defaultListenAddr,
		Logging:        logger.DefaultConfig(),
	}
}

// Validate checks the fields the client and servers cannot run without.
func (c *DashboardConfig) Validate() error {
	base := strings.TrimSpace(c.APIBaseURL)
	if base == "" {
		return errAPIBaseURLRequired
	}

	u, err := url.Parse(base)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("%w: %q", errInvalidAPIBaseURL, c.APIBaseURL)
	}

	if c.RequestTimeout.Std() <= 0 {
		return fmt.Errorf("%w: %s", errInvalidTimeout, c.RequestTimeout.Std())
	}

	return nil
}

// Config holds the loaders used to resolve a DashboardConfig.
type Config struct {
	fileLoader ConfigLoader
	envLoader  ConfigLoader
	logger     logger.Logger
}

// NewConfig builds a Config with the JSON file loader and the ADMINDASH_
// environment loader. A nil logger discards loader output.
func NewConfig(log logger.Logger) *Config {
	if log == nil {
		log = logger.NewTestLogger()
	}

	return &Config{
		fileLoader: &FileConfigLoader{},
		envLoader:  NewEnvConfigLoader(log, EnvPrefix),
		logger:     log,
	}
}

// ValidateConfig validates a configuration if it implements Validator.
func ValidateConfig(cfg interface{}) error {
	v, ok := cfg.(Validator)
	if !ok {
		return nil
	}

	return v.Validate()
}

// LoadAndValidate overlays the file at path (skipped when empty) and then the
// environment onto cfg, and validates the result.
func (c *Config) LoadAndValidate(ctx context.Context, path string, cfg interface{}) error {
	if cfg == nil {
		return errInvalidConfigPtr
	}

	if path != "" {
		if err := c.fileLoader.Load(ctx, path, cfg); err != nil {
			return err
		}

		c.logger.Debug().Str("path", path).Msg("Loaded configuration file")
	}

	if err := c.envLoader.Load(ctx, "", cfg); err != nil {
		return err
	}

	return ValidateConfig(cfg)
}

// Load resolves a DashboardConfig from defaults, path and the environment.
func Load(ctx context.Context, path string, log logger.Logger) (*DashboardConfig, error) {
	cfg := Default()

	if err := NewConfig(log).LoadAndValidate(ctx, path, cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}
