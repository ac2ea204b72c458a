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

// Package cli parses the admindash command line and runs its subcommands.
package cli

import (
	"flag"
	"fmt"
	"io"
	"strings"
)

const (
	subCmdTUI     = "tui"
	subCmdServe   = "serve"
	subCmdList    = "list"
	subCmdExport  = "export"
	subCmdVersion = "version"
)

// SubcommandHandler defines the interface for parsing subcommand flags.
type SubcommandHandler interface {
	Parse(args []string, cfg *CmdConfig) error
}

func newFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	return fs
}

func addCommonFlags(fs *flag.FlagSet, cfg *CmdConfig) {
	fs.StringVar(&cfg.ConfigFile, "config", "", "path to a JSON config file")
	fs.StringVar(&cfg.BaseURL, "base-url", "", "inventory API base URL")
	fs.DurationVar(&cfg.Timeout, "timeout", 0, "per-request timeout")
	fs.StringVar(&cfg.LogLevel, "log-level", "", "log level")
	fs.StringVar(&cfg.LogFile, "log-file", "", "write logs to this file")
	fs.BoolVar(&cfg.Help, "help", false, "show help message")
}

func parseSet(fs *flag.FlagSet, args []string, cfg *CmdConfig) error {
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("parsing %s flags: %w", fs.Name(), err)
	}

	cfg.Args = fs.Args()
	if len(cfg.Args) > 0 && !cfg.Help {
		return fmt.Errorf("%w for %s: %s", errUnexpectedArgs, fs.Name(), strings.Join(cfg.Args, " "))
	}

	return nil
}

// TUIHandler handles flags for the tui subcommand.
type TUIHandler struct{}

// Parse processes the command-line arguments for the tui subcommand.
func (TUIHandler) Parse(args []string, cfg *CmdConfig) error {
	fs := newFlagSet(subCmdTUI)
	addCommonFlags(fs, cfg)
	fs.StringVar(&cfg.ExportDir, "export-dir", "", "directory machines.csv is saved in")

	return parseSet(fs, args, cfg)
}

// ServeHandler handles flags for the serve subcommand.
type ServeHandler struct{}

// Parse processes the command-line arguments for the serve subcommand.
func (ServeHandler) Parse(args []string, cfg *CmdConfig) error {
	fs := newFlagSet(subCmdServe)
	addCommonFlags(fs, cfg)
	fs.StringVar(&cfg.ListenAddr, "listen", "", "address to listen on")
	fs.StringVar(&cfg.CORSOrigins, "cors-origin", "", "comma-separated origins allowed by CORS")

	return parseSet(fs, args, cfg)
}

// ListHandler handles flags for the list subcommand.
type ListHandler struct{}

// Parse processes the command-line arguments for the list subcommand.
func (ListHandler) Parse(args []string, cfg *CmdConfig) error {
	fs := newFlagSet(subCmdList)
	addCommonFlags(fs, cfg)
	fs.StringVar(&cfg.OS, "os", "", "only machines with this system")
	fs.StringVar(&cfg.Outdated, "outdated", "", "true or false")
	fs.StringVar(&cfg.Unencrypted, "unencrypted", "", "true or false")
	fs.StringVar(&cfg.OutputFormat, "output", outputFormatText, "text or json")

	return parseSet(fs, args, cfg)
}

// ExportHandler handles flags for the export subcommand.
type ExportHandler struct{}

// Parse processes the command-line arguments for the export subcommand.
func (ExportHandler) Parse(args []string, cfg *CmdConfig) error {
	fs := newFlagSet(subCmdExport)
	addCommonFlags(fs, cfg)
	fs.StringVar(&cfg.ExportDir, "export-dir", "", "directory machines.csv is saved in")

	return parseSet(fs, args, cfg)
}

// VersionHandler handles the version subcommand, which takes no flags.
type VersionHandler struct{}

// Parse rejects any argument.
func (VersionHandler) Parse(args []string, cfg *CmdConfig) error {
	return parseSet(newFlagSet(subCmdVersion), args, cfg)
}

func isHelpArg(arg string) bool {
	switch arg {
	case "help", "-h", "-help", "--help":
		return true
	}

	return false
}

// ParseFlags parses the arguments after the program name. With no
// subcommand, or when the first argument is a flag, the tui subcommand runs.
func ParseFlags(args []string) (*CmdConfig, error) {
	cfg := &CmdConfig{SubCmd: subCmdTUI}

	if len(args) > 0 && isHelpArg(args[0]) {
		cfg.Help = true

		return cfg, nil
	}

	if len(args) > 0 && !strings.HasPrefix(args[0], "-") {
		cfg.SubCmd = args[0]
		args = args[1:]
	}

	subcommands := map[string]SubcommandHandler{
		subCmdTUI:     TUIHandler{},
		subCmdServe:   ServeHandler{},
		subCmdList:    ListHandler{},
		subCmdExport:  ExportHandler{},
		subCmdVersion: VersionHandler{},
	}

	handler, exists := subcommands[cfg.SubCmd]
	if !exists {
		return cfg, fmt.Errorf("%w: %s", errUnknownSubcommand, cfg.SubCmd)
	}

	if err := handler.Parse(args, cfg); err != nil {
		return cfg, err
	}

	return cfg, nil
}
