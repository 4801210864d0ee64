/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package tui renders the live status view for the watch command.
package tui

import (
	"fmt"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39"))
	dimStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("243"))
	errStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	okStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
)

// StatusMsg reports the outcome of one compile cycle.
type StatusMsg struct {
	Files      int
	Rules      int
	Tokens     int
	Elapsed    time.Duration
	Overruns   int
	Diagnostic string
}

// WatchModel is the bubbletea model backing `style watch --tui`.
type WatchModel struct {
	root         string
	capabilities string
	last         StatusMsg
	cycles       int
	quit         bool
	history      []string
}

// NewWatchModel builds the initial watch view for the given scan root.
// capabilities reports the scan strategy active for this run (e.g. from
// extractor.DetectCapabilities().String()) and is shown alongside the root.
func NewWatchModel(root, capabilities string) WatchModel {
	return WatchModel{root: root, capabilities: capabilities}
}

// Init implements tea.Model.
func (m WatchModel) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m WatchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			m.quit = true
			return m, tea.Quit
		}
	case StatusMsg:
		m.last = msg
		m.cycles++
		line := fmt.Sprintf("#%d  %d rule(s)  %d file(s)  %s", m.cycles, msg.Rules, msg.Files, msg.Elapsed)
		if msg.Diagnostic != "" {
			line += "  " + errStyle.Render(msg.Diagnostic)
		}
		m.history = append(m.history, line)
		if len(m.history) > 8 {
			m.history = m.history[len(m.history)-8:]
		}
	}
	return m, nil
}

// View implements tea.Model.
func (m WatchModel) View() tea.View {
	if m.quit {
		return tea.NewView("")
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("style watch"))
	b.WriteString(dimStyle.Render(" — " + m.root))
	if m.capabilities != "" {
		b.WriteString(dimStyle.Render(" (" + m.capabilities + ")"))
	}
	b.WriteString("\n\n")

	if m.cycles == 0 {
		b.WriteString(dimStyle.Render("waiting for first build…"))
	} else {
		for _, line := range m.history {
			b.WriteString(line)
			b.WriteString("\n")
		}
		if m.last.Overruns > 0 {
			b.WriteString("\n")
			b.WriteString(errStyle.Render(fmt.Sprintf("%d frame budget overrun(s)", m.last.Overruns)))
		} else {
			b.WriteString("\n")
			b.WriteString(okStyle.Render("within budget"))
		}
	}

	b.WriteString("\n\n")
	b.WriteString(dimStyle.Render("press q to quit"))

	return tea.NewView(b.String())
}
