package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/five82/axedeck/internal/shell"
)

type statusKind int

const (
	statusInfo statusKind = iota
	statusSuccess
	statusWarning
	statusError
)

// statusLine is the last action result shown under the main content.
type statusLine struct {
	kind statusKind
	text string
	at   time.Time
}

func (m *Model) setStatus(kind statusKind, text string) {
	m.status = statusLine{kind: kind, text: text, at: m.now()}
}

// collectAlerts moves alerts raised since the last call onto the status
// line. Only the newest is shown; the rest are in the log.
func (m *Model) collectAlerts() {
	pending := m.store.Alerts().Since(m.lastAlert)
	if len(pending) == 0 {
		return
	}
	newest := pending[len(pending)-1]
	m.lastAlert = newest.Seq
	text := newest.Message
	if extra := len(pending) - 1; extra > 0 {
		text += fmt.Sprintf(" (+%d more in log)", extra)
	}
	m.setStatus(statusWarning, text)
}

// renderHeader renders the top bar: logo, fleet counts, selected miner.
func (m Model) renderHeader() string {
	styles := m.theme.Styles().WithBackground(m.theme.Surface)
	bg := NewBgStyle(m.theme.Surface)
	compact := m.width < LayoutCompactWidth

	parts := []string{bg.Render("axedeck", styles.Logo)}

	online, offline := 0, 0
	for _, miner := range m.miners {
		st, known := m.states[miner.Address]
		switch minerState(st, known) {
		case stateOnline:
			online++
		case stateOffline:
			offline++
		}
	}
	parts = append(parts,
		bg.Render("Miners:", styles.MutedText)+bg.Space()+
			bg.Render(fmt.Sprintf("%d", len(m.miners)), styles.Text))
	if !compact {
		parts = append(parts,
			bg.Render(fmt.Sprintf("%d online", online), styles.SuccessText))
		if offline > 0 {
			parts = append(parts,
				bg.Render(fmt.Sprintf("%d offline", offline), styles.DangerText))
		}
	}

	if miner, ok := m.selectedMiner(); ok {
		st, known := m.states[miner.Address]
		ms := minerState(st, known)
		parts = append(parts,
			bg.Render("● "+strings.ToUpper(ms), styles.StateText(ms).Background(lipgloss.Color(m.theme.Surface)))+bg.Space()+
				bg.Render(truncate(m.minerTitle(miner), 24), styles.Text))
		if ms == stateOnline && st.Snapshot.HashRate != nil {
			parts = append(parts, bg.Render(formatHashRate(*st.Snapshot.HashRate), styles.InfoText))
		}
		if label, busy := m.pending[miner.Address]; busy {
			parts = append(parts, bg.Render(label+"...", styles.WarningText.Bold(true)))
		}
	}

	if !compact {
		parts = append(parts,
			bg.Render("Updated", styles.FaintText)+bg.Space()+
				bg.Render(formatAge(m.lastUpdated, m.now()), styles.MutedText))
	}

	return styles.Header.Width(m.width).Render(bg.Join(parts, "  "))
}

// renderCommandBar renders the command hints bar.
func (m Model) renderCommandBar() string {
	styles := m.theme.Styles().WithBackground(m.theme.Surface)
	bg := NewBgStyle(m.theme.Surface)

	type cmd struct{ key, desc string }
	var commands []cmd

	switch m.currentView {
	case ViewLogs:
		commands = []cmd{
			{"j/k", "Scroll"},
			{"g/G", "Top/Bottom"},
			{"esc", "Miners"},
			{"e", m.closeLabel()},
			{"?", "More"},
		}
	default:
		raw := "Raw"
		if m.showRaw {
			raw = "Fields"
		}
		commands = []cmd{
			{"j/k", "Navigate"},
			{"r", "Refresh"},
			{"s", "Settings"},
			{"R", "Restart"},
			{"a", "Add"},
			{"n", "Rename"},
			{"D", "Delete"},
			{"v", raw},
			{"l", "Log"},
			{"e", m.closeLabel()},
			{"?", "More"},
		}
	}

	colon := bg.Sep(":")
	segments := make([]string, 0, len(commands)+1)
	for _, c := range commands {
		segments = append(segments,
			bg.Render(c.key, styles.AccentText)+colon+bg.Render(c.desc, styles.MutedText))
	}
	segments = append(segments,
		bg.Render("T", styles.AccentText)+colon+bg.Render(m.theme.Name, styles.FaintText))

	return styles.Header.Width(m.width).Render(strings.Join(segments, bg.Spaces(2)))
}

// closeLabel names what e will do given the saved close choice.
func (m Model) closeLabel() string {
	switch {
	case m.guard.HideOnClose():
		return "Minimize"
	case m.guard.Decide() == shell.CloseQuit:
		return "Quit"
	default:
		return "Close"
	}
}

// renderStatusLine renders the last action result, errors verbatim.
func (m Model) renderStatusLine() string {
	styles := m.theme.Styles().WithBackground(m.theme.Surface)
	bg := NewBgStyle(m.theme.Surface)

	if m.status.text == "" {
		return styles.Header.Width(m.width).Render(bg.Render("Ready", styles.FaintText))
	}

	style := styles.MutedText
	prefix := "·"
	switch m.status.kind {
	case statusSuccess:
		style, prefix = styles.SuccessText, "✓"
	case statusWarning:
		style, prefix = styles.WarningText, "!"
	case statusError:
		style, prefix = styles.DangerText, "✗"
	}
	text := truncate(singleLine(m.status.text), max(m.width-6, 10))
	return styles.Header.Width(m.width).Render(
		bg.Render(prefix, style) + bg.Space() + bg.Render(text, style))
}
