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

// Package web serves the dashboard page over HTTP.
package web

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"

	"github.com/carverauto/admindash/pkg/dashboard"
	srHttp "github.com/carverauto/admindash/pkg/http"
	"github.com/carverauto/admindash/pkg/logger"
)

const (
	defaultReadTimeout     = 10 * time.Second
	defaultWriteTimeout    = 60 * time.Second
	defaultIdleTimeout     = 120 * time.Second
	defaultShutdownTimeout = 5 * time.Second

	csvContentType = "text/csv"
)

// Server renders the machine table and proxies the CSV export.
type Server struct {
	router     *mux.Router
	source     dashboard.MachineSource
	corsConfig srHttp.CORSConfig
	loc        *time.Location
	log        logger.Logger
	logger     zerolog.Logger
}

// WithCORS sets the origins allowed to call the server.
func WithCORS(cfg srHttp.CORSConfig) func(*Server) {
	return func(s *Server) {
		s.corsConfig = cfg
	}
}

// WithLocation sets the zone check-in times are rendered in.
func WithLocation(loc *time.Location) func(*Server) {
	return func(s *Server) {
		s.loc = loc
	}
}

// WithLogger attaches a logger.
func WithLogger(l logger.Logger) func(*Server) {
	return func(s *Server) {
		s.log = l
		s.logger = l.WithComponent("web")
	}
}

// NewServer builds a Server reading from source.
func NewServer(source dashboard.MachineSource, options ...func(*Server)) *Server {
	s := &Server{
		router: mux.NewRouter(),
		source: source,
		loc:    time.Local,
		log:    logger.NewTestLogger(),
	}
	s.logger = s.log.WithComponent("web")

	for _, o := range options {
		o(s)
	}

	s.setupRoutes()

	return s
}

func (s *Server) setupRoutes() {
	s.router.Use(func(next http.Handler) http.Handler {
		return srHttp.CommonMiddleware(next, s.corsConfig, s.log)
	})

	s.router.HandleFunc("/", s.handleIndex).Methods(http.MethodGet)
	s.router.HandleFunc("/export", s.handleExport).Methods(http.MethodGet)
	s.router.HandleFunc("/healthz", s.handleHealth).Methods(http.MethodGet)
}

// Handler returns the routed handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start serves on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) Start(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadTimeout:       defaultReadTimeout,
		ReadHeaderTimeout: defaultReadTimeout,
		WriteTimeout:      defaultWriteTimeout,
		IdleTimeout:       defaultIdleTimeout,
	}

	errCh := make(chan error, 1)

	go func() {
		s.logger.Info().Str("addr", addr).Msg("Dashboard listening")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}

		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), defaultShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}

	return nil
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	table := dashboard.NewTable(s.source, dashboard.WithLocation(s.loc), dashboard.WithLogger(s.log))

	osFilter := r.URL.Query().Get("os")
	table.SetOSFilter(osFilter)

	var err error
	if osFilter == "" {
		err = table.Load(r.Context())
	} else {
		err = table.ApplyFilter(r.Context())
	}

	status := http.StatusOK
	if err != nil {
		status = http.StatusBadGateway
	}

	s.render(w, status, newPageData(table.Snapshot()))
}

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	data, err := s.source.ExportCSV(r.Context())
	if err != nil {
		s.logger.Warn().Err(err).Msg("Export failed")
		http.Error(w, "export failed: "+err.Error(), http.StatusBadGateway)

		return
	}

	w.Header().Set("Content-Type", csvContentType)
	w.Header().Set("Content-Disposition", "attachment; filename="+dashboard.ExportFileName)

	if _, err := w.Write(data); err != nil {
		s.logger.Warn().Err(err).Msg("Failed to write export")
	}
}

func (*Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("ok"))
}
