package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines all keyboard bindings for the application.
type keyMap struct {
	// Global
	Quit       key.Binding
	Close      key.Binding
	Help       key.Binding
	CycleTheme key.Binding
	Escape     key.Binding
	ResetClose key.Binding

	// View switching
	ViewLogs key.Binding

	// Miner actions
	AddMiner    key.Binding
	DeleteMiner key.Binding
	RenameMiner key.Binding
	Refresh     key.Binding
	Restart     key.Binding
	Settings    key.Binding
	ToggleRaw   key.Binding

	// Navigation
	Up           key.Binding
	Down         key.Binding
	Top          key.Binding
	Bottom       key.Binding
	HalfPageUp   key.Binding
	HalfPageDown key.Binding

	// Tray
	TrayShow key.Binding
	TrayQuit key.Binding

	// Forms and dialogs
	Confirm   key.Binding
	Cancel    key.Binding
	NextField key.Binding
	PrevField key.Binding
	Toggle    key.Binding
	Yes       key.Binding
	No        key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() keyMap {
	return keyMap{
		// Global
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "Quit immediately"),
		),
		Close: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "Close (minimize or exit)"),
		),
		Help: key.NewBinding(
			key.WithKeys("h", "?"),
			key.WithHelp("h/?", "Toggle help"),
		),
		CycleTheme: key.NewBinding(
			key.WithKeys("T"),
			key.WithHelp("T", "Cycle theme"),
		),
		Escape: key.NewBinding(
			key.WithKeys("esc", "q"),
			key.WithHelp("esc", "Return to miners"),
		),
		ResetClose: key.NewBinding(
			key.WithKeys("C"),
			key.WithHelp("C", "Forget close choice"),
		),

		ViewLogs: key.NewBinding(
			key.WithKeys("l"),
			key.WithHelp("l", "Application log"),
		),

		// Miner actions
		AddMiner: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "Add miner"),
		),
		DeleteMiner: key.NewBinding(
			key.WithKeys("D"),
			key.WithHelp("D", "Delete miner"),
		),
		RenameMiner: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", "Rename miner"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("enter", "r"),
			key.WithHelp("enter/r", "Refresh now"),
		),
		Restart: key.NewBinding(
			key.WithKeys("R"),
			key.WithHelp("R", "Restart miner"),
		),
		Settings: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "Edit settings"),
		),
		ToggleRaw: key.NewBinding(
			key.WithKeys("v"),
			key.WithHelp("v", "Toggle raw JSON"),
		),

		// Navigation
		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("k/up", "Move up"),
		),
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("j/down", "Move down"),
		),
		Top: key.NewBinding(
			key.WithKeys("g", "home"),
			key.WithHelp("g", "Go to top"),
		),
		Bottom: key.NewBinding(
			key.WithKeys("G", "end"),
			key.WithHelp("G", "Go to bottom"),
		),
		HalfPageUp: key.NewBinding(
			key.WithKeys("ctrl+u", "pgup"),
			key.WithHelp("ctrl+u", "Scroll detail up"),
		),
		HalfPageDown: key.NewBinding(
			key.WithKeys("ctrl+d", "pgdown"),
			key.WithHelp("ctrl+d", "Scroll detail down"),
		),

		// Tray
		TrayShow: key.NewBinding(
			key.WithKeys("s", "enter"),
			key.WithHelp("s", "Show window"),
		),
		TrayQuit: key.NewBinding(
			key.WithKeys("x", "ctrl+c"),
			key.WithHelp("x", "Quit"),
		),

		// Forms and dialogs
		Confirm: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "Confirm"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "Cancel"),
		),
		NextField: key.NewBinding(
			key.WithKeys("tab", "down"),
			key.WithHelp("tab", "Next field"),
		),
		PrevField: key.NewBinding(
			key.WithKeys("shift+tab", "up"),
			key.WithHelp("shift+tab", "Previous field"),
		),
		Toggle: key.NewBinding(
			key.WithKeys(" "),
			key.WithHelp("space", "Toggle"),
		),
		Yes: key.NewBinding(
			key.WithKeys("y", "Y"),
			key.WithHelp("y", "Yes"),
		),
		No: key.NewBinding(
			key.WithKeys("n", "N"),
			key.WithHelp("n", "No"),
		),
	}
}

// ShortHelp returns key bindings for the short help view.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Help, k.Close}
}

// FullHelp returns key bindings for the full help view.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Top, k.Bottom, k.HalfPageDown, k.HalfPageUp},
		{k.AddMiner, k.RenameMiner, k.DeleteMiner, k.Refresh, k.Restart, k.Settings, k.ToggleRaw},
		{k.ViewLogs, k.Escape},
		{k.CycleTheme, k.ResetClose, k.Help, k.Close, k.Quit},
	}
}
