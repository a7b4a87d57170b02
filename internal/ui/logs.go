package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// resizeLogViewport gives the log pane the lower half of the terminal.
func (m *Model) resizeLogViewport() {
	height := m.height/2 - 3
	if height < 3 {
		height = 3
	}
	width := m.width - 2
	if width < 10 {
		width = 10
	}
	m.logViewport.Width = width
	m.logViewport.Height = height
	m.logViewport.Style = lipgloss.NewStyle().Background(lipgloss.Color(m.theme.SurfaceAlt))
}

// setLogLines replaces the pane content, staying at the bottom when the
// reader was already there.
func (m *Model) setLogLines(msg logLinesMsg) {
	m.logErr = msg.Err
	if msg.Err != nil {
		return
	}
	follow := m.logViewport.TotalLineCount() == 0 || m.logViewport.AtBottom()
	m.logViewport.SetContent(strings.Join(msg.Lines, "\n"))
	if follow {
		m.logViewport.GotoBottom()
	}
}

// handleLogsKey scrolls the log pane.
func (m Model) handleLogsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Top):
		m.logViewport.GotoTop()
		return m, nil
	case key.Matches(msg, m.keys.Bottom):
		m.logViewport.GotoBottom()
		return m, nil
	}

	var cmd tea.Cmd
	m.logViewport, cmd = m.logViewport.Update(msg)
	return m, cmd
}

// renderLogs renders the log pane below the face.
func (m Model) renderLogs() string {
	styles := m.theme.Styles()
	bg := NewBgStyle(m.theme.SurfaceAlt)

	title := bg.Render(" Log ", styles.AccentText.Bold(true))
	if m.logPath != "" {
		title += bg.Render(m.logPath+" ", styles.FaintText)
	}

	var body string
	if m.logErr != nil {
		body = bg.FillLine(bg.Render(fmt.Sprintf(" %v", m.logErr), styles.WarningText), m.logViewport.Width)
	} else {
		body = m.logViewport.View()
	}

	return lipgloss.NewStyle().
		Border(lipgloss.NormalBorder(), true, false, false, false).
		BorderForeground(lipgloss.Color(m.theme.BorderMuted)).
		Render(bg.FillLine(title, m.logViewport.Width) + "\n" + body)
}
