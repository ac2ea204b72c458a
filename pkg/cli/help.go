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
	"fmt"
	"io"
)

// ShowHelp writes the usage message.
func ShowHelp(w io.Writer) {
	fmt.Fprint(w, `admindash: machine inventory dashboard
Usage:
  admindash [tui] [options]
  admindash serve [options]
  admindash list [options]
  admindash export [options]
  admindash version

Commands:
  tui (default)   Interactive dashboard in the terminal
  serve           Serve the dashboard page over HTTP
  list            Print the machine list
  export          Download the CSV export as machines.csv

Common options:
  -config string      path to a JSON config file
  -base-url string    inventory API base URL (default http://127.0.0.1:8001)
  -timeout duration   per-request timeout (default 15s)
  -log-level string   debug, info, warn or error
  -log-file string    write logs to this file

Options for tui and export:
  -export-dir string  directory machines.csv is saved in

Options for serve:
  -listen string        address to listen on (default 127.0.0.1:8080)
  -cors-origin string   comma-separated origins allowed by CORS

Options for list:
  -os string            only machines with this system (Windows, Darwin, Linux)
  -outdated string      true or false; omitted when empty
  -unencrypted string   true or false; omitted when empty
  -output string        text or json (default "text")

Environment:
  ADMINDASH_API_BASE_URL, ADMINDASH_REQUEST_TIMEOUT, ADMINDASH_EXPORT_DIR,
  ADMINDASH_LISTEN_ADDR, ADMINDASH_LOGGING_LEVEL and friends override the
  config file; flags override both.

Examples:
  admindash
  admindash list -os Linux -unencrypted true
  admindash list -output json > machines.json
  admindash export -export-dir ~/Downloads
  admindash serve -listen :8080
`)
}
