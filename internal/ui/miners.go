package ui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/five82/axedeck/internal/prefs"
	"github.com/five82/axedeck/internal/registry"
	"github.com/five82/axedeck/internal/state"
)

// reloadMiners re-reads the saved list, keeping the selection on the same
// miner when it still exists.
func (m *Model) reloadMiners() {
	var selectedID string
	if miner, ok := m.selectedMiner(); ok {
		selectedID = miner.ID
	}
	if m.registry == nil {
		m.miners = nil
	} else {
		m.miners = m.registry.List()
	}
	if len(m.miners) == 0 {
		m.selectedRow = 0
		return
	}
	if selectedID != "" {
		for i, miner := range m.miners {
			if miner.ID == selectedID {
				m.selectedRow = i
				return
			}
		}
	}
	if m.selectedRow >= len(m.miners) {
		m.selectedRow = len(m.miners) - 1
	}
}

// selectActive points the selection at the store's active miner, or makes
// the selected row active when the store has none.
func (m *Model) selectActive() {
	if len(m.miners) == 0 {
		return
	}
	if active := m.store.Active(); active != "" {
		for i, miner := range m.miners {
			if miner.Address == active {
				m.selectedRow = i
				return
			}
		}
	}
	m.store.SetActive(m.miners[m.selectedRow].Address)
}

func (m Model) selectedMiner() (registry.Miner, bool) {
	if m.selectedRow < 0 || m.selectedRow >= len(m.miners) {
		return registry.Miner{}, false
	}
	return m.miners[m.selectedRow], true
}

// minerTitle is the saved name, else what the miner calls itself, else the
// address.
func (m Model) minerTitle(miner registry.Miner) string {
	if strings.TrimSpace(miner.Name) != "" {
		return miner.DisplayName()
	}
	if st, ok := m.states[miner.Address]; ok && st.HasSnapshot {
		if label := st.Snapshot.Label(); label != "" {
			return label
		}
	}
	return miner.Address
}

// minerState classifies what is known about a miner for badges.
func minerState(st state.MinerState, known bool) string {
	switch {
	case !known:
		return stateWaiting
	case st.IsOffline():
		return stateOffline
	case st.LastError != nil:
		return stateError
	case st.HasSnapshot:
		return stateOnline
	default:
		return stateWaiting
	}
}

// handleMinersKey processes keyboard input for the miners view.
func (m Model) handleMinersKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.AddMiner) {
		m.modal = newAddMinerModal()
		return m, nil
	}

	count := len(m.miners)
	prev := m.selectedRow
	switch {
	case key.Matches(msg, m.keys.Down):
		if m.selectedRow < count-1 {
			m.selectedRow++
		}
	case key.Matches(msg, m.keys.Up):
		if m.selectedRow > 0 {
			m.selectedRow--
		}
	case key.Matches(msg, m.keys.Top):
		m.selectedRow = 0
	case key.Matches(msg, m.keys.Bottom):
		m.selectedRow = max(count-1, 0)
	case key.Matches(msg, m.keys.HalfPageDown):
		m.detailViewport.HalfPageDown()
		return m, nil
	case key.Matches(msg, m.keys.HalfPageUp):
		m.detailViewport.HalfPageUp()
		return m, nil
	}
	if m.selectedRow != prev {
		return m, m.selectionChanged()
	}

	miner, ok := m.selectedMiner()
	needsMiner := key.Matches(msg, m.keys.Refresh) || key.Matches(msg, m.keys.Restart) ||
		key.Matches(msg, m.keys.Settings) || key.Matches(msg, m.keys.DeleteMiner) ||
		key.Matches(msg, m.keys.ToggleRaw) || key.Matches(msg, m.keys.RenameMiner)
	if needsMiner && !ok {
		m.setStatus(statusInfo, "No miner selected; press a to add one")
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Refresh):
		m.pending[miner.Address] = "Refreshing"
		return m, m.fetchTelemetryCmd(miner.Address)

	case key.Matches(msg, m.keys.Restart):
		m.modal = newRestartConfirm(miner)
		return m, nil

	case key.Matches(msg, m.keys.DeleteMiner):
		m.modal = newDeleteConfirm(miner)
		return m, nil

	case key.Matches(msg, m.keys.RenameMiner):
		m.modal = newRenameModal(miner, m.minerTitle(miner))
		return m, nil

	case key.Matches(msg, m.keys.Settings):
		st := m.states[miner.Address]
		m.modal = newSettingsModal(miner.Address, miner.DisplayName(), st.Snapshot)
		return m, nil

	case key.Matches(msg, m.keys.ToggleRaw):
		m.showRaw = !m.showRaw
		m.updateDetailViewport()
		return m, nil
	}

	return m, nil
}

// selectionChanged makes the newly selected miner the polled one and fetches
// it right away when nothing is known about it yet.
func (m *Model) selectionChanged() tea.Cmd {
	miner, ok := m.selectedMiner()
	if !ok {
		return nil
	}
	m.store.SetActive(miner.Address)
	m.detailViewport.GotoTop()
	m.updateDetailViewport()
	address := miner.Address
	m.savePrefs(func(p *prefs.Prefs) { p.LastMiner = address })
	if _, known := m.states[address]; known {
		return nil
	}
	m.pending[address] = "Connecting"
	return m.fetchTelemetryCmd(address)
}

func (m Model) handleTelemetry(msg telemetryMsg) (tea.Model, tea.Cmd) {
	delete(m.pending, msg.address)
	if msg.err != nil && errors.Is(msg.err, context.Canceled) {
		return m, nil
	}
	if msg.err != nil {
		m.store.Update(msg.address, nil, msg.err)
	} else {
		m.store.Update(msg.address, &msg.telemetry, nil)
	}
	m.states = m.store.Snapshot()
	m.lastUpdated = m.now()
	m.updateDetailViewport()

	st := m.states[msg.address]
	switch {
	case msg.err != nil:
		m.setStatus(statusError, msg.err.Error())
	case st.LastError != nil:
		m.setStatus(statusError, fmt.Sprintf("%s answered on %s: %v", msg.address, msg.telemetry.Endpoint, st.LastError))
	default:
		m.setStatus(statusSuccess, fmt.Sprintf("Telemetry from %s%s", msg.address, msg.telemetry.Endpoint))
	}
	m.collectAlerts()
	return m, nil
}

func (m Model) handleRestart(msg restartMsg) (tea.Model, tea.Cmd) {
	delete(m.pending, msg.address)
	if msg.err != nil {
		m.logger.Warn("restart failed", zap.String("address", msg.address), zap.Error(msg.err))
		m.setStatus(statusError, msg.err.Error())
		return m, nil
	}
	m.logger.Info("restart sent", zap.String("address", msg.address), zap.Int("status", msg.result.StatusCode))
	m.setStatus(statusSuccess, fmt.Sprintf("%s to %s (HTTP %d)", msg.result.Message, msg.address, msg.result.StatusCode))
	return m, nil
}

func (m Model) handleSettings(msg settingsMsg) (tea.Model, tea.Cmd) {
	delete(m.pending, msg.address)
	if msg.err != nil {
		m.logger.Warn("settings update failed",
			zap.String("address", msg.address),
			zap.Strings("keys", msg.patch.Keys()),
			zap.Error(msg.err))
		m.setStatus(statusError, msg.err.Error())
		return m, nil
	}
	m.logger.Info("settings updated", zap.String("address", msg.address), zap.Strings("keys", msg.patch.Keys()))
	m.setStatus(statusSuccess, msg.message)
	m.pending[msg.address] = "Refreshing"
	return m, m.fetchTelemetryCmd(msg.address)
}

func (m Model) handleAddMiner(msg addMinerMsg) (tea.Model, tea.Cmd) {
	if m.registry == nil {
		m.setStatus(statusError, "no saved-miner list is open")
		return m, nil
	}
	miner, err := m.registry.Add(msg.name, msg.address)
	if err != nil {
		m.setStatus(statusError, err.Error())
		return m, nil
	}
	m.logger.Info("miner added", zap.String("id", miner.ID), zap.String("address", miner.Address))
	m.reloadMiners()
	for i, saved := range m.miners {
		if saved.ID == miner.ID {
			m.selectedRow = i
		}
	}
	m.setStatus(statusSuccess, "Added "+miner.DisplayName())
	return m, m.selectionChanged()
}

func (m Model) handleRenameMiner(msg renameMinerMsg) (tea.Model, tea.Cmd) {
	if m.registry == nil {
		m.setStatus(statusError, "no saved-miner list is open")
		return m, nil
	}
	if err := m.registry.Rename(msg.id, msg.name); err != nil {
		m.setStatus(statusError, err.Error())
		return m, nil
	}
	miner, ok := m.registry.Find(msg.id)
	if !ok {
		m.setStatus(statusError, registry.ErrNotFound.Error())
		return m, nil
	}
	m.logger.Info("miner renamed", zap.String("id", miner.ID), zap.String("name", miner.Name))
	m.reloadMiners()
	m.setStatus(statusSuccess, "Renamed to "+miner.DisplayName())
	return m, nil
}

func (m Model) handleConfirmed(msg confirmedMsg) (tea.Model, tea.Cmd) {
	switch msg.action {
	case confirmRestart:
		m.pending[msg.miner.Address] = "Restarting"
		return m, m.restartCmd(msg.miner.Address)

	case confirmDelete:
		if m.registry == nil {
			return m, nil
		}
		if err := m.registry.Remove(msg.miner.ID); err != nil {
			m.setStatus(statusError, err.Error())
			return m, nil
		}
		m.logger.Info("miner removed", zap.String("id", msg.miner.ID), zap.String("address", msg.miner.Address))
		m.store.Forget(msg.miner.Address)
		delete(m.states, msg.miner.Address)
		m.reloadMiners()
		m.setStatus(statusSuccess, "Removed "+msg.miner.DisplayName())
		return m, m.selectionChanged()
	}
	return m, nil
}

// renderMiners renders the miner list and detail pane side by side.
func (m Model) renderMiners() string {
	styles := m.theme.Styles()
	contentHeight := max(m.height-chromeRows, 3)

	if len(m.miners) == 0 {
		empty := styles.MutedText.Render("No miners saved. Press a to add one by IP address or hostname.")
		return lipgloss.Place(m.width, contentHeight, lipgloss.Center, lipgloss.Center, empty)
	}

	listWidth, detailWidth := m.paneWidths()
	listTitle := fmt.Sprintf("Miners (%d)", len(m.miners))
	listPane := m.renderTitledBox(listTitle, m.renderMinerList(listWidth-2), listWidth, contentHeight, true)

	detailTitle := "Details"
	if miner, ok := m.selectedMiner(); ok {
		detailTitle = m.minerTitle(miner)
		if m.showRaw {
			detailTitle += " · raw"
		}
	}
	detailPane := m.renderTitledBox(detailTitle, m.detailViewport.View(), detailWidth, contentHeight, false)

	return lipgloss.JoinHorizontal(lipgloss.Top, listPane, detailPane)
}

// renderMinerList renders one row per saved miner: state dot, name, hash rate.
func (m Model) renderMinerList(width int) string {
	styles := m.theme.Styles()
	lines := make([]string, 0, len(m.miners))
	for i, miner := range m.miners {
		st, known := m.states[miner.Address]
		ms := minerState(st, known)

		bgColor := m.theme.FocusBg
		textStyle := styles.Text
		if i == m.selectedRow {
			bgColor = m.theme.SelectionBg
			textStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(m.theme.SelectionText))
		}
		bg := NewBgStyle(bgColor)

		rate := ""
		if ms == stateOnline && st.Snapshot.HashRate != nil {
			rate = formatHashRate(*st.Snapshot.HashRate)
		}
		nameWidth := max(width-3-len(rate)-1, 4)
		name := padRight(truncate(m.minerTitle(miner), nameWidth), nameWidth)

		row := bg.Render("●", styles.StateText(ms)) + bg.Space() +
			bg.Render(name, textStyle) + bg.Space() +
			bg.Render(rate, styles.MutedText)
		lines = append(lines, bg.FillLine(row, width))
	}
	return strings.Join(lines, "\n")
}
