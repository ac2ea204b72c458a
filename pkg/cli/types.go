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

import "time"

// CmdConfig holds the parsed subcommand and flag values. Zero values mean
// the flag was not given and the resolved configuration stands.
type CmdConfig struct {
	SubCmd string
	Help   bool
	Args   []string

	ConfigFile string
	BaseURL    string
	Timeout    time.Duration
	LogLevel   string
	LogFile    string

	ExportDir   string
	ListenAddr  string
	CORSOrigins string

	OutputFormat string
	OS           string
	Outdated     string
	Unencrypted  string
}
