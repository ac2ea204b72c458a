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
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carverauto/admindash/pkg/inventory"
	"github.com/carverauto/admindash/pkg/models"
)

func TestParseFlags(t *testing.T) {
	tests := []struct {
		name  string
		args  []string
		check func(t *testing.T, cfg *CmdConfig)
	}{
		{
			name: "no arguments runs the terminal ui",
			args: nil,
			check: func(t *testing.T, cfg *CmdConfig) {
				assert.Equal(t, subCmdTUI, cfg.SubCmd)
			},
		},
		{
			name: "leading flag runs the terminal ui",
			args: []string{"-base-url", "http://inv:8001", "-export-dir", "/tmp/x"},
			check: func(t *testing.T, cfg *CmdConfig) {
				assert.Equal(t, subCmdTUI, cfg.SubCmd)
				assert.Equal(t, "http://inv:8001", cfg.BaseURL)
				assert.Equal(t, "/tmp/x", cfg.ExportDir)
			},
		},
		{
			name: "list with filters",
			args: []string{"list", "-os", "Linux", "-outdated", "false", "-output", "json", "-timeout", "3s"},
			check: func(t *testing.T, cfg *CmdConfig) {
				assert.Equal(t, subCmdList, cfg.SubCmd)
				assert.Equal(t, "Linux", cfg.OS)
				assert.Equal(t, "false", cfg.Outdated)
				assert.Empty(t, cfg.Unencrypted)
				assert.Equal(t, outputFormatJSON, cfg.OutputFormat)
				assert.Equal(t, 3*time.Second, cfg.Timeout)
			},
		},
		{
			name: "serve",
			args: []string{"serve", "-listen", ":9000", "-cors-origin", "http://a, http://b"},
			check: func(t *testing.T, cfg *CmdConfig) {
				assert.Equal(t, ":9000", cfg.ListenAddr)
				assert.Equal(t, "http://a, http://b", cfg.CORSOrigins)
			},
		},
		{
			name: "help",
			args: []string{"help"},
			check: func(t *testing.T, cfg *CmdConfig) {
				assert.True(t, cfg.Help)
			},
		},
		{
			name: "subcommand help flag",
			args: []string{"list", "-help"},
			check: func(t *testing.T, cfg *CmdConfig) {
				assert.True(t, cfg.Help)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := ParseFlags(tt.args)
			require.NoError(t, err)
			tt.check(t, cfg)
		})
	}
}

func TestParseFlags_Errors(t *testing.T) {
	_, err := ParseFlags([]string{"bogus"})
	require.ErrorIs(t, err, errUnknownSubcommand)

	_, err = ParseFlags([]string{"version", "extra"})
	require.ErrorIs(t, err, errUnexpectedArgs)

	_, err = ParseFlags([]string{"list", "-nope"})
	require.Error(t, err)
}

type backend struct {
	mu      sync.Mutex
	paths   []string
	queries []string
	status  int
}

func (b *backend) handler(t *testing.T) http.Handler {
	t.Helper()

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b.mu.Lock()
		b.paths = append(b.paths, r.URL.Path)
		b.queries = append(b.queries, r.URL.RawQuery)
		status := b.status
		b.mu.Unlock()

		if status != 0 {
			w.WriteHeader(status)
			return
		}

		switch r.URL.Path {
		case "/machines", "/machines/filter":
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`[{"machine_id":"m1","system":"Linux","release":"22.04","arch":"x86_64",` +
				`"reported_at":"2024-01-01T00:00:00Z","disk_encryption":{"status":true}}]`))
		case "/machines/export":
			w.Header().Set("Content-Type", "text/csv")
			_, _ = w.Write([]byte("machine_id\nm1\n"))
		default:
			http.NotFound(w, r)
		}
	})
}

func startBackend(t *testing.T) (*backend, string) {
	t.Helper()

	t.Setenv("LOG_OUTPUT", "discard")

	b := &backend{}
	srv := httptest.NewServer(b.handler(t))
	t.Cleanup(srv.Close)

	return b, srv.URL
}

func TestRun_ListText(t *testing.T) {
	b, base := startBackend(t)

	var out bytes.Buffer

	err := Run(context.Background(), &CmdConfig{SubCmd: subCmdList, BaseURL: base}, &out)
	require.NoError(t, err)

	assert.Equal(t, []string{"/machines"}, b.paths)
	assert.Contains(t, out.String(), "MACHINE ID")
	assert.Contains(t, out.String(), "m1")
	assert.Contains(t, out.String(), "Not Encrypted")
	assert.Contains(t, out.String(), "Outdated")
}

func TestRun_ListFiltered(t *testing.T) {
	b, base := startBackend(t)

	var out bytes.Buffer

	cfg := &CmdConfig{
		SubCmd:       subCmdList,
		BaseURL:      base,
		OS:           "Linux",
		Unencrypted:  "true",
		OutputFormat: outputFormatJSON,
	}

	require.NoError(t, Run(context.Background(), cfg, &out))

	assert.Equal(t, []string{"/machines/filter"}, b.paths)
	assert.Equal(t, []string{"os=Linux&unencrypted=true"}, b.queries)

	var records []models.MachineRecord

	require.NoError(t, json.Unmarshal(out.Bytes(), &records))
	require.Len(t, records, 1)
	assert.Equal(t, "m1", records[0].MachineID)
	assert.False(t, records[0].IsEncrypted())
}

func TestRun_ListBadInput(t *testing.T) {
	_, base := startBackend(t)

	err := Run(context.Background(), &CmdConfig{SubCmd: subCmdList, BaseURL: base, Outdated: "maybe"}, &bytes.Buffer{})
	require.ErrorIs(t, err, errInvalidTriState)

	err = Run(context.Background(), &CmdConfig{SubCmd: subCmdList, BaseURL: base, OutputFormat: "yaml"}, &bytes.Buffer{})
	require.ErrorIs(t, err, errInvalidOutputFormat)

	err = Run(context.Background(), &CmdConfig{SubCmd: subCmdList, BaseURL: "127.0.0.1:8001"}, &bytes.Buffer{})
	require.Error(t, err)
}

func TestRun_ListBackendFailure(t *testing.T) {
	b, base := startBackend(t)
	b.status = http.StatusInternalServerError

	err := Run(context.Background(), &CmdConfig{SubCmd: subCmdList, BaseURL: base}, &bytes.Buffer{})
	require.ErrorIs(t, err, inventory.ErrNetwork)

	var netErr *inventory.NetworkError

	require.ErrorAs(t, err, &netErr)
	assert.Equal(t, http.StatusInternalServerError, netErr.StatusCode)
}

func TestRun_Export(t *testing.T) {
	b, base := startBackend(t)

	dir := t.TempDir()

	var out bytes.Buffer

	require.NoError(t, Run(context.Background(), &CmdConfig{SubCmd: subCmdExport, BaseURL: base, ExportDir: dir}, &out))

	assert.Equal(t, []string{"/machines/export"}, b.paths)

	data, err := os.ReadFile(filepath.Join(dir, "machines.csv"))
	require.NoError(t, err)
	assert.Equal(t, "machine_id\nm1\n", string(data))
	assert.Contains(t, out.String(), "Saved "+filepath.Join(dir, "machines.csv"))
}

func TestRun_Version(t *testing.T) {
	var out bytes.Buffer

	require.NoError(t, Run(context.Background(), &CmdConfig{SubCmd: subCmdVersion}, &out))
	assert.Equal(t, "admindash dev (build: dev)\n", out.String())
}

func TestResolveConfig_FlagsWin(t *testing.T) {
	t.Setenv("ADMINDASH_API_BASE_URL", "http://from-env:1")
	t.Setenv("ADMINDASH_EXPORT_DIR", "/env/dir")

	dc, err := resolveConfig(context.Background(), &CmdConfig{
		BaseURL:     "http://from-flag:2",
		Timeout:     time.Second,
		CORSOrigins: "http://a, ,http://b",
	})
	require.NoError(t, err)

	assert.Equal(t, "http://from-flag:2", dc.APIBaseURL)
	assert.Equal(t, time.Second, dc.RequestTimeout.Std())
	assert.Equal(t, "/env/dir", dc.ExportDir)
	assert.Equal(t, []string{"http://a", "http://b"}, dc.CORS.AllowedOrigins)
}

func TestShowHelp(t *testing.T) {
	var out bytes.Buffer

	ShowHelp(&out)
	assert.Contains(t, out.String(), "admindash list -os Linux")
}
