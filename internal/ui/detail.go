package ui

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/five82/axedeck/internal/axeos"
	"github.com/five82/axedeck/internal/registry"
	"github.com/five82/axedeck/internal/state"
)

const notReported = "n/a"

// updateDetailViewport re-renders the selected miner into the detail pane.
func (m *Model) updateDetailViewport() {
	miner, ok := m.selectedMiner()
	if !ok {
		m.detailViewport.SetContent("")
		return
	}
	st, known := m.states[miner.Address]
	m.detailViewport.SetContent(m.renderDetailContent(miner, st, known, m.detailViewport.Width))
}

// detailRow is one label/value line; empty label starts a section.
type detailRow struct {
	label string
	value string
}

func (m Model) renderDetailContent(miner registry.Miner, st state.MinerState, known bool, width int) string {
	styles := m.theme.Styles().WithBackground(m.theme.SurfaceAlt)
	bg := NewBgStyle(m.theme.SurfaceAlt)

	var b strings.Builder
	ms := minerState(st, known)
	b.WriteString(styles.StateBadge(ms).Render(strings.ToUpper(ms)))
	b.WriteString(bg.Space())
	b.WriteString(bg.Render(miner.Address, styles.MutedText))
	if label, busy := m.pending[miner.Address]; busy {
		b.WriteString(bg.Spaces(2))
		b.WriteString(bg.Render(label+"...", styles.WarningText))
	}
	b.WriteString("\n")

	if st.LastError != nil {
		b.WriteString(lipgloss.NewStyle().Width(max(width, 10)).Render(
			styles.DangerText.Render(st.LastError.Error())))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	if !known || (len(st.Telemetry.Document) == 0 && !st.HasSnapshot) {
		b.WriteString(styles.MutedText.Render("Waiting for telemetry..."))
		return b.String()
	}

	if m.showRaw {
		b.WriteString(styles.FaintText.Render(st.Telemetry.Endpoint))
		b.WriteString("\n")
		b.WriteString(styles.Text.Render(prettyJSON(st.Telemetry.Document)))
		return b.String()
	}

	labelStyle := styles.MutedText.Width(18)
	for _, row := range snapshotRows(st) {
		if row.label == "" {
			b.WriteString("\n")
			b.WriteString(styles.AccentText.Bold(true).Render(row.value))
			b.WriteString("\n")
			continue
		}
		b.WriteString(labelStyle.Render(row.label))
		b.WriteString(styles.Text.Render(row.value))
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

// snapshotRows lays out the normalized snapshot. Fields the firmware did not
// report read as n/a.
func snapshotRows(st state.MinerState) []detailRow {
	s := st.Snapshot
	return []detailRow{
		{"", "Identity"},
		{"Hostname", optString(s.Hostname)},
		{"ASIC model", optString(s.ASICModel)},
		{"Firmware", optString(s.Version)},

		{"", "Performance"},
		{"Hash rate", optFloat(s.HashRate, formatHashRate)},
		{"Temperature", optFloat(s.Temperature, formatTemp)},
		{"Power", optFloat(s.Power, func(v float64) string { return fmt.Sprintf("%.1f W", v) })},
		{"Efficiency", efficiency(s)},
		{"Fan", optFloat(s.FanSpeed, func(v float64) string { return fmt.Sprintf("%.0f %%", v) })},
		{"Frequency", optFloat(s.Frequency, func(v float64) string { return fmt.Sprintf("%.0f MHz", v) })},

		{"", "Power tuning"},
		{"Core (set)", optFloat(s.CoreVoltage, formatMillivolts)},
		{"Core (actual)", optFloat(s.CoreVoltageActual, formatMillivolts)},
		{"Input", optFloat(s.InputVoltage, formatMillivolts)},

		{"", "Runtime"},
		{"Uptime", optUint(s.UptimeSeconds, formatUptime)},
		{"Shares accepted", optUint(s.SharesAccepted, func(v uint64) string { return fmt.Sprintf("%d", v) })},
		{"Shares rejected", optUint(s.SharesRejected, func(v uint64) string { return fmt.Sprintf("%d", v) })},
		{"Reject rate", rejectRate(s)},
		{"Best diff", optFloat(s.BestDiff, axeos.FormatDifficulty)},
		{"Session best", optFloat(s.BestSessionDiff, axeos.FormatDifficulty)},

		{"", "Pool"},
		{"Stratum", stratumTarget(s)},
		{"Worker", optString(s.StratumUser)},

		{"", "Source"},
		{"Endpoint", orNA(st.Telemetry.Endpoint)},
		{"Updated", st.LastUpdated.Format("15:04:05")},
	}
}

func optString(v *string) string {
	if v == nil || strings.TrimSpace(*v) == "" {
		return notReported
	}
	return *v
}

func optFloat(v *float64, format func(float64) string) string {
	if v == nil {
		return notReported
	}
	return format(*v)
}

func optUint(v *uint64, format func(uint64) string) string {
	if v == nil {
		return notReported
	}
	return format(*v)
}

func orNA(s string) string {
	if strings.TrimSpace(s) == "" {
		return notReported
	}
	return s
}

// efficiency returns J/TH when both power and hash rate are known.
func efficiency(s axeos.Snapshot) string {
	if s.Power == nil || s.HashRate == nil || *s.HashRate <= 0 {
		return notReported
	}
	return fmt.Sprintf("%.1f J/TH", *s.Power/(*s.HashRate/1000))
}

func rejectRate(s axeos.Snapshot) string {
	if s.SharesAccepted == nil || s.SharesRejected == nil {
		return notReported
	}
	total := *s.SharesAccepted + *s.SharesRejected
	if total == 0 {
		return "0.00 %"
	}
	return fmt.Sprintf("%.2f %%", float64(*s.SharesRejected)*100/float64(total))
}

func stratumTarget(s axeos.Snapshot) string {
	if s.StratumURL == nil || strings.TrimSpace(*s.StratumURL) == "" {
		return notReported
	}
	if s.StratumPort == nil {
		return *s.StratumURL
	}
	return fmt.Sprintf("%s:%d", *s.StratumURL, *s.StratumPort)
}

// prettyJSON indents a document for display, falling back to the raw text.
func prettyJSON(doc []byte) string {
	var out bytes.Buffer
	if err := json.Indent(&out, doc, "", "  "); err != nil {
		return string(doc)
	}
	return out.String()
}
