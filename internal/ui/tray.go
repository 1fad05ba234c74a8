package ui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/five82/axedeck/internal/prefs"
	"github.com/five82/axedeck/internal/shell"
)

// requestClose routes a close request through the close guard.
func (m Model) requestClose() (tea.Model, tea.Cmd) {
	switch m.guard.Decide() {
	case shell.CloseHide:
		m.enterTray()
		return m, nil
	case shell.CloseQuit:
		return m, tea.Quit
	default:
		m.modal = newCloseDialog()
		return m, nil
	}
}

func (m Model) handleCloseChoice(msg closeChoiceMsg) (tea.Model, tea.Cmd) {
	if msg.remember {
		m.guard.SetHideOnClose(msg.hide)
		action := m.guard.Action()
		m.savePrefs(func(p *prefs.Prefs) { p.CloseAction = action })
		m.logger.Info("close choice saved", zap.String("action", string(action)))
	}
	if msg.hide {
		m.enterTray()
		return m, nil
	}
	return m, tea.Quit
}

func (m *Model) enterTray() {
	m.currentView = ViewTray
	m.showHelp = false
	m.modal = nil
}

// handleTrayKey processes keyboard input while minimized. Only the tray
// menu is live; polling carries on underneath.
func (m Model) handleTrayKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.TrayQuit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.TrayShow):
		m.currentView = ViewMiners
		m.updateDetailViewport()
		return m, nil
	}
	return m, nil
}

// renderTray renders the minimized view: one status line and the tray menu.
func (m Model) renderTray() string {
	styles := m.theme.Styles().WithBackground(m.theme.Surface)
	bg := NewBgStyle(m.theme.Surface)

	parts := []string{bg.Render("⛏ axedeck", styles.Logo)}
	if miner, ok := m.selectedMiner(); ok {
		st, known := m.states[miner.Address]
		ms := minerState(st, known)
		parts = append(parts,
			bg.Render(truncate(m.minerTitle(miner), 24), styles.Text),
			bg.Render("● "+ms, styles.StateText(ms).Background(lipgloss.Color(m.theme.Surface))))
		if st.HasSnapshot {
			s := st.Snapshot
			if s.HashRate != nil {
				parts = append(parts, bg.Render(formatHashRate(*s.HashRate), styles.InfoText))
			}
			if s.Temperature != nil {
				parts = append(parts, bg.Render(formatTemp(*s.Temperature), styles.Text))
			}
		}
	} else {
		parts = append(parts, bg.Render("no miners", styles.MutedText))
	}
	if m.status.kind == statusWarning {
		parts = append(parts, bg.Render("! "+truncate(m.status.text, 48), styles.WarningText))
	}
	line := styles.Header.Width(m.width).Render(bg.Join(parts, " · "))

	menu := bg.Render("s", styles.AccentText) + bg.Sep(":") + bg.Render("Show", styles.MutedText) + bg.Spaces(2) +
		bg.Render("x", styles.AccentText) + bg.Sep(":") + bg.Render("Quit", styles.MutedText)
	return line + "\n" + styles.Header.Width(m.width).Render(menu)
}
