package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/five82/axedeck/internal/registry"
)

type confirmAction int

const (
	confirmRestart confirmAction = iota
	confirmDelete
)

type confirmedMsg struct {
	action confirmAction
	miner  registry.Miner
}

// confirmModal asks a yes/no question before a destructive action.
type confirmModal struct {
	action  confirmAction
	miner   registry.Miner
	title   string
	message string
}

func newRestartConfirm(miner registry.Miner) *confirmModal {
	return &confirmModal{
		action:  confirmRestart,
		miner:   miner,
		title:   "Restart Miner",
		message: "Restart " + miner.DisplayName() + " (" + miner.Address + ")? Hashing stops until it boots.",
	}
}

func newDeleteConfirm(miner registry.Miner) *confirmModal {
	return &confirmModal{
		action:  confirmDelete,
		miner:   miner,
		title:   "Delete Miner",
		message: "Remove " + miner.DisplayName() + " (" + miner.Address + ") from the saved list?",
	}
}

func (m *confirmModal) Update(msg tea.Msg, keys keyMap) (Modal, tea.Cmd, bool) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil, false
	}
	switch {
	case key.Matches(keyMsg, keys.Yes), key.Matches(keyMsg, keys.Confirm):
		return m, emit(confirmedMsg{action: m.action, miner: m.miner}), true
	case key.Matches(keyMsg, keys.No), key.Matches(keyMsg, keys.Cancel):
		return m, nil, true
	}
	return m, nil, false
}

func (m *confirmModal) View(theme Theme, width, height int) string {
	styles := theme.Styles()
	var b strings.Builder
	b.WriteString(modalTitle(styles, m.title, 40))
	b.WriteString(styles.Text.Render(m.message))
	b.WriteString("\n\n")
	b.WriteString(styles.FaintText.Render("y/Enter: Confirm  •  n/Esc: Cancel"))
	return placeModal(theme, width, height, 50, b.String())
}

// --- Close dialog ---

type closeChoiceMsg struct {
	hide     bool
	remember bool
}

// closeDialog asks whether closing should minimize to the tray or exit.
type closeDialog struct {
	hide     bool
	remember bool
}

func newCloseDialog() *closeDialog {
	return &closeDialog{hide: true}
}

func (d *closeDialog) Update(msg tea.Msg, keys keyMap) (Modal, tea.Cmd, bool) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return d, nil, false
	}
	switch {
	case key.Matches(keyMsg, keys.Cancel):
		return d, nil, true
	case key.Matches(keyMsg, keys.Confirm):
		return d, emit(closeChoiceMsg{hide: d.hide, remember: d.remember}), true
	case key.Matches(keyMsg, keys.Toggle):
		d.remember = !d.remember
		return d, nil, false
	}
	switch keyMsg.String() {
	case "left", "right", "tab", "shift+tab", "h", "l":
		d.hide = !d.hide
	case "m":
		d.hide = true
	case "x":
		d.hide = false
	}
	return d, nil, false
}

func (d *closeDialog) View(theme Theme, width, height int) string {
	styles := theme.Styles()
	var b strings.Builder
	b.WriteString(modalTitle(styles, "Close axedeck", 40))
	b.WriteString(styles.Text.Render("Minimize to the tray and keep monitoring, or exit?"))
	b.WriteString("\n\n")

	button := func(label string, active bool) string {
		style := lipgloss.NewStyle().Padding(0, 2)
		if active {
			style = style.
				Background(lipgloss.Color(theme.SelectionBg)).
				Foreground(lipgloss.Color(theme.SelectionText)).
				Bold(true)
		} else {
			style = style.Foreground(lipgloss.Color(theme.Muted))
		}
		return style.Render(label)
	}
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top,
		button("Minimize", d.hide), "  ", button("Exit", !d.hide)))
	b.WriteString("\n\n")

	check := "[ ]"
	if d.remember {
		check = "[x]"
	}
	b.WriteString(styles.AccentText.Render(check))
	b.WriteString(styles.Text.Render(" Remember my choice"))
	b.WriteString("\n\n")
	b.WriteString(styles.FaintText.Render("←/→: Choose  •  Space: Remember  •  Enter: OK  •  Esc: Cancel"))
	return placeModal(theme, width, height, 56, b.String())
}
