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

// Package dashboard is the machine table view-model shared by the terminal
// and web shells. It owns the record set, the OS filter, the loading flag and
// the last error, and derives the display rows.
package dashboard

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/carverauto/admindash/pkg/logger"
	"github.com/carverauto/admindash/pkg/models"
)

// ExportFileName is the name the CSV export is saved under.
const ExportFileName = "machines.csv"

var (
	// ErrSuperseded is returned by Load and ApplyFilter when a newer
	// Load or ApplyFilter started before this one finished.
	ErrSuperseded = errors.New("request superseded by a newer one")

	errNoSaver = errors.New("no export saver configured")
)

// State is a point-in-time copy of the table state.
type State struct {
	Records    []models.MachineRecord
	Rows       []Row
	OSFilter   string
	IsLoading  bool
	Err        error
	LastExport string
}

// Table is safe for concurrent use. Load and ApplyFilter share one request
// slot: starting either cancels the one in flight and its result is dropped.
type Table struct {
	source MachineSource
	saver  Saver
	logger zerolog.Logger
	loc    *time.Location

	mu         sync.Mutex
	records    []models.MachineRecord
	osFilter   string
	isLoading  bool
	lastErr    error
	lastExport string
	seq        uint64
	cancel     context.CancelFunc
}

// WithSaver sets where exports are written.
func WithSaver(s Saver) func(*Table) {
	return func(t *Table) {
		t.saver = s
	}
}

// WithLocation sets the zone check-in times are rendered in.
func WithLocation(loc *time.Location) func(*Table) {
	return func(t *Table) {
		t.loc = loc
	}
}

// WithLogger attaches a component logger.
func WithLogger(l logger.Logger) func(*Table) {
	return func(t *Table) {
		t.logger = l.WithComponent("machine-table")
	}
}

// NewTable builds an empty table over source.
func NewTable(source MachineSource, options ...func(*Table)) *Table {
	t := &Table{
		source:  source,
		loc:     time.Local,
		records: []models.MachineRecord{},
		logger:  logger.NewTestLogger().WithComponent("machine-table"),
	}

	for _, o := range options {
		o(t)
	}

	return t
}

// Load replaces the record set with the unfiltered list.
func (t *Table) Load(ctx context.Context) error {
	return t.fetch(ctx, "load", t.source.FetchAll)
}

// SetOSFilter changes the selected OS. It does not issue a request.
func (t *Table) SetOSFilter(os string) {
	t.mu.Lock()
	t.osFilter = os
	t.mu.Unlock()
}

// OSFilter returns the selected OS; empty means all.
func (t *Table) OSFilter() string {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.osFilter
}

// ApplyFilter replaces the record set with the list for the selected OS.
func (t *Table) ApplyFilter(ctx context.Context) error {
	criteria := models.FilterCriteria{OS: t.OSFilter()}

	return t.fetch(ctx, "filter", func(ctx context.Context) ([]models.MachineRecord, error) {
		return t.source.FetchFiltered(ctx, criteria)
	})
}

func (t *Table) fetch(
	ctx context.Context, op string, call func(context.Context) ([]models.MachineRecord, error)) error {
	reqCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	t.mu.Lock()
	if t.cancel != nil {
		t.cancel()
	}

	t.seq++
	seq := t.seq
	t.cancel = cancel
	t.isLoading = true
	t.mu.Unlock()

	records, err := call(reqCtx)

	t.mu.Lock()
	defer t.mu.Unlock()

	if seq != t.seq {
		t.logger.Debug().Str("op", op).Uint64("seq", seq).Msg("Dropping superseded response")

		return ErrSuperseded
	}

	t.isLoading = false
	t.cancel = nil

	if err != nil {
		t.lastErr = fmt.Errorf("%s machines: %w", op, err)
		t.logger.Warn().Err(err).Str("op", op).Msg("Machine request failed")

		return t.lastErr
	}

	t.records = records
	t.lastErr = nil
	t.logger.Info().Str("op", op).Int("count", len(records)).Msg("Machine list updated")

	return nil
}

// Export fetches the CSV and hands it to the Saver as machines.csv.
// The record set and the loading flag are untouched.
func (t *Table) Export(ctx context.Context) (string, error) {
	if t.saver == nil {
		return "", errNoSaver
	}

	data, err := t.source.ExportCSV(ctx)
	if err != nil {
		return "", t.recordExportErr(fmt.Errorf("export machines: %w", err))
	}

	path, err := t.saver.Save(ExportFileName, data)
	if err != nil {
		return "", t.recordExportErr(fmt.Errorf("save export: %w", err))
	}

	t.mu.Lock()
	t.lastExport = path
	t.mu.Unlock()

	t.logger.Info().Str("path", path).Int("bytes", len(data)).Msg("Exported machines")

	return path, nil
}

func (t *Table) recordExportErr(err error) error {
	t.mu.Lock()
	t.lastErr = err
	t.mu.Unlock()

	t.logger.Warn().Err(err).Msg("Export failed")

	return err
}

// Snapshot copies the current state and derives its rows.
func (t *Table) Snapshot() State {
	t.mu.Lock()
	records := make([]models.MachineRecord, len(t.records))
	copy(records, t.records)

	s := State{
		Records:    records,
		OSFilter:   t.osFilter,
		IsLoading:  t.isLoading,
		Err:        t.lastErr,
		LastExport: t.lastExport,
	}
	t.mu.Unlock()

	s.Rows = BuildRows(records, t.loc)

	return s
}
