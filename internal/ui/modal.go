package ui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Modal is the interface for modal dialogs.
// The Update method returns the updated modal, a command, and a bool indicating if the modal should close.
type Modal interface {
	Update(msg tea.Msg, keys keyMap) (Modal, tea.Cmd, bool)
	View(theme Theme, width, height int) string
}

// emit wraps msg in a command so a modal can hand its result to the model.
func emit(msg tea.Msg) tea.Cmd {
	return func() tea.Msg { return msg }
}

// placeModal centers content in a rounded accent box.
func placeModal(theme Theme, width, height, boxWidth int, content string) string {
	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(theme.Accent)).
		Padding(1, 2).
		Width(boxWidth)

	return lipgloss.Place(
		width,
		height,
		lipgloss.Center,
		lipgloss.Center,
		box.Render(content),
		lipgloss.WithWhitespaceChars(" "),
		lipgloss.WithWhitespaceForeground(lipgloss.Color(theme.Background)),
	)
}

// modalTitle renders a bold title and a rule.
func modalTitle(styles Styles, title string, ruleWidth int) string {
	return styles.Text.Bold(true).Render(title) + "\n" +
		styles.FaintText.Render(strings.Repeat("─", ruleWidth)) + "\n\n"
}
