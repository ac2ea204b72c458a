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

package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/carverauto/admindash/pkg/config"
	"github.com/carverauto/admindash/pkg/dashboard"
	"github.com/carverauto/admindash/pkg/inventory"
	"github.com/carverauto/admindash/pkg/logger"
	"github.com/carverauto/admindash/pkg/models"
	"github.com/carverauto/admindash/pkg/tui"
	"github.com/carverauto/admindash/pkg/version"
	"github.com/carverauto/admindash/pkg/web"
)

const (
	outputFormatText = "text"
	outputFormatJSON = "json"

	logOutputDiscard = "discard"
)

// Run executes the parsed subcommand. Output meant for the user goes to out.
func Run(ctx context.Context, cfg *CmdConfig, out io.Writer) error {
	if cfg.SubCmd == subCmdVersion {
		fmt.Fprintf(out, "admindash %s\n", version.GetFullVersion())

		return nil
	}

	dc, err := resolveConfig(ctx, cfg)
	if err != nil {
		return err
	}

	if err := initLogging(dc, cfg); err != nil {
		return err
	}

	log := logger.Global()

	client, err := inventory.NewClient(inventory.Config{
		BaseURL:   dc.APIBaseURL,
		Timeout:   dc.RequestTimeout.Std(),
		UserAgent: version.UserAgent(),
	}, inventory.WithLogger(log))
	if err != nil {
		return err
	}

	switch cfg.SubCmd {
	case subCmdServe:
		return runServe(ctx, dc, client, log)
	case subCmdList:
		return runList(ctx, cfg, client, out)
	case subCmdExport:
		return runExport(ctx, dc, client, log, out)
	default:
		return runTUI(ctx, dc, client, log)
	}
}

// resolveConfig loads file and environment settings and applies flag overrides.
func resolveConfig(ctx context.Context, cfg *CmdConfig) (*config.DashboardConfig, error) {
	dc, err := config.Load(ctx, cfg.ConfigFile, nil)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	if cfg.BaseURL != "" {
		dc.APIBaseURL = cfg.BaseURL
	}

	if cfg.Timeout != 0 {
		dc.RequestTimeout = models.Duration(cfg.Timeout)
	}

	if cfg.ExportDir != "" {
		dc.ExportDir = cfg.ExportDir
	}

	if cfg.ListenAddr != "" {
		dc.ListenAddr = cfg.ListenAddr
	}

	if cfg.CORSOrigins != "" {
		dc.CORS.AllowedOrigins = splitList(cfg.CORSOrigins)
	}

	if dc.Logging == nil {
		dc.Logging = logger.DefaultConfig()
	}

	if cfg.LogLevel != "" {
		dc.Logging.Level = cfg.LogLevel
	}

	if cfg.LogFile != "" {
		dc.Logging.Output = cfg.LogFile
	}

	if err := dc.Validate(); err != nil {
		return nil, fmt.Errorf("invalid flags: %w", err)
	}

	return dc, nil
}

// initLogging starts the process logger. The terminal UI owns the screen, so
// unless logs go to a file they are dropped while it runs.
func initLogging(dc *config.DashboardConfig, cfg *CmdConfig) error {
	lc := *dc.Logging

	if cfg.SubCmd == subCmdTUI {
		switch lc.Output {
		case "", "stdout", "stderr":
			lc.Output = logOutputDiscard
		}
	}

	if err := logger.Init(&lc); err != nil {
		return fmt.Errorf("init logger: %w", err)
	}

	return nil
}

func runTUI(ctx context.Context, dc *config.DashboardConfig, client *inventory.Client, log logger.Logger) error {
	table := dashboard.NewTable(client,
		dashboard.WithSaver(dashboard.FileSaver{Dir: dc.ExportDir}),
		dashboard.WithLogger(log),
	)

	return tui.Run(ctx, table)
}

func runServe(ctx context.Context, dc *config.DashboardConfig, client *inventory.Client, log logger.Logger) error {
	srv := web.NewServer(client, web.WithCORS(dc.CORS), web.WithLogger(log))

	return srv.Start(ctx, dc.ListenAddr)
}

func runList(ctx context.Context, cfg *CmdConfig, client *inventory.Client, out io.Writer) error {
	format, err := normalizeOutputFormat(cfg.OutputFormat)
	if err != nil {
		return err
	}

	criteria, err := buildCriteria(cfg)
	if err != nil {
		return err
	}

	var records []models.MachineRecord
	if criteria.IsEmpty() {
		records, err = client.FetchAll(ctx)
	} else {
		records, err = client.FetchFiltered(ctx, criteria)
	}

	if err != nil {
		return err
	}

	if format == outputFormatJSON {
		data, err := json.MarshalIndent(records, "", "  ")
		if err != nil {
			return fmt.Errorf("encode output: %w", err)
		}

		fmt.Fprintln(out, string(data))

		return nil
	}

	printMachineTable(out, dashboard.BuildRows(records, time.Local))

	return nil
}

func runExport(
	ctx context.Context, dc *config.DashboardConfig, client *inventory.Client, log logger.Logger, out io.Writer) error {
	table := dashboard.NewTable(client,
		dashboard.WithSaver(dashboard.FileSaver{Dir: dc.ExportDir}),
		dashboard.WithLogger(log),
	)

	path, err := table.Export(ctx)
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "Saved %s\n", path)

	return nil
}

func buildCriteria(cfg *CmdConfig) (models.FilterCriteria, error) {
	outdated, err := models.ParseTriState(cfg.Outdated)
	if err != nil {
		return models.FilterCriteria{}, fmt.Errorf("-outdated %w", errInvalidTriState)
	}

	unencrypted, err := models.ParseTriState(cfg.Unencrypted)
	if err != nil {
		return models.FilterCriteria{}, fmt.Errorf("-unencrypted %w", errInvalidTriState)
	}

	return models.FilterCriteria{
		OS:          strings.TrimSpace(cfg.OS),
		Outdated:    outdated,
		Unencrypted: unencrypted,
	}, nil
}

func printMachineTable(out io.Writer, rows []dashboard.Row) {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)

	headers := make([]string, len(dashboard.Columns))
	for i, c := range dashboard.Columns {
		headers[i] = strings.ToUpper(c)
	}

	fmt.Fprintln(w, strings.Join(headers, "\t"))

	for _, r := range rows {
		fmt.Fprintln(w, strings.Join(r.Cells(), "\t"))
	}

	_ = w.Flush()
}

func normalizeOutputFormat(raw string) (string, error) {
	format := strings.ToLower(strings.TrimSpace(raw))
	if format == "" || format == outputFormatText {
		return outputFormatText, nil
	}

	if format == outputFormatJSON {
		return outputFormatJSON, nil
	}

	return "", errInvalidOutputFormat
}

func splitList(raw string) []string {
	var out []string

	for _, part := range strings.Split(raw, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}

	return out
}
