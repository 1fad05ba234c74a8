package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"
)

type helpSection struct {
	title    string
	bindings []key.Binding
}

func (m Model) helpSections() []helpSection {
	k := m.keys
	return []helpSection{
		{"Navigation", []key.Binding{k.Up, k.Down, k.Top, k.Bottom, k.HalfPageDown, k.HalfPageUp}},
		{"Miner", []key.Binding{k.AddMiner, k.RenameMiner, k.DeleteMiner, k.Refresh, k.Restart, k.Settings, k.ToggleRaw}},
		{"Views", []key.Binding{k.ViewLogs, k.Escape}},
		{"General", []key.Binding{k.CycleTheme, k.ResetClose, k.Help, k.Close, k.Quit}},
	}
}

// renderHelp renders the help overlay.
func (m Model) renderHelp() string {
	styles := m.theme.Styles()

	var b strings.Builder
	b.WriteString(modalTitle(styles, "Keyboard Shortcuts", 36))

	keyStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(m.theme.Warning)).
		Width(12)

	sections := m.helpSections()
	for i, section := range sections {
		b.WriteString(styles.AccentText.Bold(true).Render(section.title))
		b.WriteString("\n")
		for _, binding := range section.bindings {
			h := binding.Help()
			b.WriteString(keyStyle.Render(h.Key))
			b.WriteString(styles.Text.Render(h.Desc))
			b.WriteString("\n")
		}
		if i < len(sections)-1 {
			b.WriteString("\n")
		}
	}

	if action := m.guard.Action(); action != "" {
		b.WriteString("\n")
		b.WriteString(styles.MutedText.Render("Close choice saved: " + string(action)))
	}

	return placeModal(m.theme, m.width, m.height, 44, b.String())
}
