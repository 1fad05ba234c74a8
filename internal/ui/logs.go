package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/five82/axedeck/internal/logtail"
)

// updateLogViewport re-renders the log tail, staying pinned to the bottom
// when the user has not scrolled up.
func (m *Model) updateLogViewport() {
	atBottom := m.logViewport.AtBottom() || m.logViewport.TotalLineCount() == 0
	m.logViewport.Style = lipgloss.NewStyle().Background(lipgloss.Color(m.theme.FocusBg))
	m.logViewport.SetContent(m.renderLogContent())
	if atBottom {
		m.logViewport.GotoBottom()
	}
}

func (m Model) renderLogContent() string {
	styles := m.theme.Styles().WithBackground(m.theme.FocusBg)
	if m.logErr != nil {
		return styles.DangerText.Render(m.logErr.Error())
	}
	if len(m.logLines) == 0 {
		if m.logPath == "" {
			return styles.MutedText.Render("Logging to file is disabled.")
		}
		return styles.MutedText.Render("No log lines yet in " + m.logPath)
	}

	width := max(m.logViewport.Width, 10)
	lines := make([]string, len(m.logLines))
	for i, line := range m.logLines {
		lines[i] = m.levelStyle(logtail.LevelOf(line), styles).Render(truncate(line, width))
	}
	return strings.Join(lines, "\n")
}

func (m Model) levelStyle(level string, styles Styles) lipgloss.Style {
	switch level {
	case logtail.LevelError:
		return styles.DangerText
	case logtail.LevelWarn:
		return styles.WarningText
	case logtail.LevelDebug:
		return styles.FaintText
	default:
		return styles.Text
	}
}

// renderLogs renders the application log view.
func (m Model) renderLogs() string {
	contentHeight := max(m.height-chromeRows, 3)
	title := "Application Log"
	if m.logPath != "" {
		title += " · " + m.logPath
	}
	return m.renderTitledBox(title, m.logViewport.View(), m.width, contentHeight, true)
}

// handleLogsKey processes keyboard input for the log view.
func (m Model) handleLogsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Down):
		m.logViewport.ScrollDown(1)
	case key.Matches(msg, m.keys.Up):
		m.logViewport.ScrollUp(1)
	case key.Matches(msg, m.keys.Top):
		m.logViewport.GotoTop()
	case key.Matches(msg, m.keys.Bottom):
		m.logViewport.GotoBottom()
	case key.Matches(msg, m.keys.HalfPageDown):
		m.logViewport.HalfPageDown()
	case key.Matches(msg, m.keys.HalfPageUp):
		m.logViewport.HalfPageUp()
	}
	return m, nil
}
