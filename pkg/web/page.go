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

package web

import (
	"bytes"
	"html/template"
	"net/http"

	"github.com/carverauto/admindash/pkg/dashboard"
)

const pageTitle = "Admin Dashboard"

type optionView struct {
	Label    string
	Value    string
	Selected bool
}

type pageData struct {
	Title   string
	Options []optionView
	Columns []string
	Rows    []dashboard.Row
	Error   string
	Export  string
}

func newPageData(state dashboard.State) pageData {
	options := make([]optionView, 0, len(dashboard.OSOptions))
	for _, o := range dashboard.OSOptions {
		options = append(options, optionView{Label: o.Label, Value: o.Value, Selected: o.Value == state.OSFilter})
	}

	data := pageData{
		Title:   pageTitle,
		Options: options,
		Columns: dashboard.Columns,
		Rows:    state.Rows,
		Export:  "/export",
	}

	if state.Err != nil {
		data.Error = state.Err.Error()
	}

	return data
}

var pageTemplate = template.Must(template.New("page").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<style>
body { background: #282A36; color: #F8F8F2; font-family: sans-serif; margin: 2rem; }
table { border-collapse: collapse; width: 100%; }
th, td { border-bottom: 1px solid #44475A; padding: .5rem; text-align: left; }
.badge { border-radius: .25rem; padding: .1rem .5rem; }
.ok { background: #50FA7B; color: #282A36; }
.bad { background: #FF5555; color: #F8F8F2; }
.error { background: #FF5555; padding: .75rem; margin-bottom: 1rem; }
</style>
</head>
<body>
<h1>{{.Title}}</h1>
{{if .Error}}<div class="error" role="alert">{{.Error}}</div>{{end}}
<form method="get" action="/">
<select name="os">
{{range .Options}}<option value="{{.Value}}"{{if .Selected}} selected{{end}}>{{.Label}}</option>
{{end}}</select>
<button type="submit">Apply Filter</button>
<a href="{{.Export}}">Export CSV</a>
</form>
<table>
<thead><tr>{{range .Columns}}<th>{{.}}</th>{{end}}</tr></thead>
<tbody>
{{range .Rows}}<tr data-key="{{.Key}}"><td>{{.MachineID}}</td><td>{{.OS}}</td><td>{{.Release}}</td><td>{{.Arch}}</td><td>{{.LastCheckIn}}</td><td><span class="badge {{if .Encrypted}}ok{{else}}bad{{end}}">{{.Encryption}}</span></td><td><span class="badge {{if .UpToDate}}ok{{else}}bad{{end}}">{{.Update}}</span></td></tr>
{{end}}</tbody>
</table>
</body>
</html>
`))

func (s *Server) render(w http.ResponseWriter, status int, data pageData) {
	var buf bytes.Buffer

	if err := pageTemplate.Execute(&buf, data); err != nil {
		s.logger.Error().Err(err).Msg("Failed to render page")
		http.Error(w, "Internal server error", http.StatusInternalServerError)

		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)

	_, _ = buf.WriteTo(w)
}
