package ui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/axedeck/internal/axeos"
	"github.com/five82/axedeck/internal/logtail"
	"github.com/five82/axedeck/internal/state"
)

// Messages

type tickMsg time.Time

type snapshotMsg map[string]state.MinerState

type telemetryMsg struct {
	address   string
	telemetry axeos.Telemetry
	err       error
}

type restartMsg struct {
	address string
	result  axeos.RestartResult
	err     error
}

type settingsMsg struct {
	address string
	patch   axeos.SettingsPatch
	message string
	err     error
}

type logsMsg struct {
	lines []string
	err   error
}

// Commands. Client calls run on command goroutines, never inside Update.

func tickCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func fetchSnapshotCmd(store *state.Store) tea.Cmd {
	return func() tea.Msg {
		return snapshotMsg(store.Snapshot())
	}
}

func (m Model) fetchTelemetryCmd(address string) tea.Cmd {
	client, ctx := m.client, m.ctx
	if client == nil {
		return nil
	}
	return func() tea.Msg {
		t, err := client.FetchTelemetry(ctx, address)
		return telemetryMsg{address: address, telemetry: t, err: err}
	}
}

func (m Model) restartCmd(address string) tea.Cmd {
	client, ctx := m.client, m.ctx
	if client == nil {
		return nil
	}
	return func() tea.Msg {
		res, err := client.Restart(ctx, address)
		return restartMsg{address: address, result: res, err: err}
	}
}

func (m Model) applySettingsCmd(address string, patch axeos.SettingsPatch) tea.Cmd {
	client, ctx := m.client, m.ctx
	if client == nil {
		return nil
	}
	return func() tea.Msg {
		message, err := client.ApplySettings(ctx, address, patch)
		return settingsMsg{address: address, patch: patch, message: message, err: err}
	}
}

func (m Model) readLogsCmd() tea.Cmd {
	path := m.logPath
	return func() tea.Msg {
		lines, err := logtail.Read(path, LogTailLines)
		return logsMsg{lines: lines, err: err}
	}
}
