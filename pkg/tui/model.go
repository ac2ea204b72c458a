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

// Package tui is the terminal shell of the dashboard: one page holding the
// machine table, an OS selector and the filter, export and reload actions.
package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/carverauto/admindash/pkg/dashboard"
)

const (
	pageTitle = "Admin Dashboard"

	// rows taken by the padding and the title, filter, error, status and
	// help lines; the table gets the rest, header included
	chromeHeight  = 12
	defaultHeight = 15
)

var columnWidths = []int{24, 10, 12, 8, 25, 14, 11}

// ViewModel is the dashboard state the page renders and drives.
type ViewModel interface {
	Load(ctx context.Context) error
	ApplyFilter(ctx context.Context) error
	SetOSFilter(os string)
	OSFilter() string
	Export(ctx context.Context) (string, error)
	Snapshot() dashboard.State
}

type fetchDoneMsg struct {
	op  string
	err error
}

type exportDoneMsg struct {
	path string
	err  error
}

// Model is the bubbletea model for the dashboard page.
type Model struct {
	ctx     context.Context
	vm      ViewModel
	table   table.Model
	spinner spinner.Model
	styles  styles
	state   dashboard.State

	canCopy bool
	copy    func(string) error
	status  string
}

// WithClipboard replaces the clipboard writer used by the copy action.
func WithClipboard(write func(string) error) func(*Model) {
	return func(m *Model) {
		m.copy = write
		m.canCopy = write != nil
	}
}

// New builds the page over vm. ctx bounds every request the page issues.
func New(ctx context.Context, vm ViewModel, options ...func(*Model)) *Model {
	columns := make([]table.Column, len(dashboard.Columns))
	for i, title := range dashboard.Columns {
		columns[i] = table.Column{Title: title, Width: columnWidths[i]}
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(defaultHeight),
		table.WithStyles(tableStyles()),
	)

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	m := &Model{
		ctx:     ctx,
		vm:      vm,
		table:   t,
		spinner: sp,
		styles:  newStyles(),
		state:   vm.Snapshot(),
		canCopy: !clipboard.Unsupported,
		copy:    clipboard.WriteAll,
	}
	m.spinner.Style = m.styles.spinner

	for _, o := range options {
		o(m)
	}

	return m
}

// Init starts the spinner and the initial load.
func (m *Model) Init() tea.Cmd {
	return m.startFetch(m.loadCmd())
}

func (m *Model) loadCmd() tea.Cmd {
	return func() tea.Msg {
		return fetchDoneMsg{op: "load", err: m.vm.Load(m.ctx)}
	}
}

func (m *Model) applyCmd() tea.Cmd {
	return func() tea.Msg {
		return fetchDoneMsg{op: "filter", err: m.vm.ApplyFilter(m.ctx)}
	}
}

func (m *Model) exportCmd() tea.Cmd {
	return func() tea.Msg {
		path, err := m.vm.Export(m.ctx)

		return exportDoneMsg{path: path, err: err}
	}
}

// Update handles key presses and request completions.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyMsg(msg)
	case tea.WindowSizeMsg:
		if h := msg.Height - chromeHeight; h > 0 {
			m.table.SetHeight(h)
		}

		return m, nil
	case spinner.TickMsg:
		if !m.state.IsLoading {
			return m, nil
		}

		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)

		return m, cmd
	case fetchDoneMsg:
		if errors.Is(msg.err, dashboard.ErrSuperseded) {
			return m, nil
		}

		m.refresh()

		if msg.err == nil {
			m.status = fmt.Sprintf("%d machines", len(m.state.Records))
		}

		return m, nil
	case exportDoneMsg:
		m.refresh()

		if msg.err == nil {
			m.status = "Saved " + msg.path
		}

		return m, nil
	}

	return m, nil
}

func (m *Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "esc", "q":
		return m, tea.Quit
	case "f":
		m.cycleOSFilter()

		return m, nil
	case "enter":
		return m, m.startFetch(m.applyCmd())
	case "r":
		return m, m.startFetch(m.loadCmd())
	case "e":
		m.status = "Exporting..."

		return m, m.exportCmd()
	case "c":
		m.copySelected()

		return m, nil
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)

	return m, cmd
}

// startFetch shows the loading view straight away; the view-model sets its
// own flag only once the command goroutine runs.
func (m *Model) startFetch(cmd tea.Cmd) tea.Cmd {
	m.state.IsLoading = true
	m.status = ""

	return tea.Batch(m.spinner.Tick, cmd)
}

func (m *Model) cycleOSFilter() {
	current := m.vm.OSFilter()
	next := dashboard.OSOptions[0].Value

	for i, o := range dashboard.OSOptions {
		if o.Value == current {
			next = dashboard.OSOptions[(i+1)%len(dashboard.OSOptions)].Value

			break
		}
	}

	m.vm.SetOSFilter(next)
	m.state.OSFilter = next
}

func (m *Model) copySelected() {
	if !m.canCopy {
		m.status = "Clipboard unavailable"

		return
	}

	row := m.table.SelectedRow()
	if len(row) == 0 {
		return
	}

	if err := m.copy(row[0]); err != nil {
		m.status = "Failed to copy to clipboard"

		return
	}

	m.status = "Copied " + row[0]
}

func (m *Model) refresh() {
	m.state = m.vm.Snapshot()

	rows := make([]table.Row, len(m.state.Rows))
	for i, r := range m.state.Rows {
		rows[i] = r.Cells()
	}

	m.table.SetRows(rows)
}

// View renders the page.
func (m *Model) View() string {
	var content strings.Builder

	s := m.styles

	content.WriteString(s.title.Render(pageTitle) + "\n\n")
	content.WriteString(s.label.Render("OS: ") + s.filter.Render(dashboard.OSLabel(m.vm.OSFilter())) + "\n\n")

	if m.state.IsLoading {
		content.WriteString(m.spinner.View() + " Loading...")
	} else {
		content.WriteString(m.table.View())
	}

	if m.state.Err != nil {
		content.WriteString("\n\n")
		content.WriteString(s.error.Render(fmt.Sprintf("Error: %v", m.state.Err)))
	}

	if m.status != "" {
		content.WriteString("\n\n" + s.status.Render(m.status))
	}

	content.WriteString("\n\n")
	content.WriteString(s.help.Render(m.helpLine()))

	return s.app.Align(lipgloss.Left).Render(content.String())
}

func (m *Model) helpLine() string {
	keys := []string{"f → OS", "enter → apply filter", "e → export CSV", "r → reload"}
	if m.canCopy {
		keys = append(keys, "c → copy id")
	}

	keys = append(keys, "q/esc → quit")

	return strings.Join(keys, " | ")
}

// Run starts the page on the alternate screen and blocks until it exits.
func Run(ctx context.Context, vm ViewModel, options ...func(*Model)) error {
	p := tea.NewProgram(New(ctx, vm, options...), tea.WithAltScreen(), tea.WithContext(ctx))

	if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return fmt.Errorf("dashboard ui: %w", err)
	}

	return nil
}
