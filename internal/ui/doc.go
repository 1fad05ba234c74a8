// Package ui provides the Bubble Tea terminal interface for axedeck.
//
// # Views
//
//   - Miners: saved miner list on the left, the selected miner's latest
//     telemetry on the right, and a status line with the last action result.
//     Errors from the miner client are shown verbatim.
//   - Logs: tail of the application log file, colored by level.
//   - Tray: a one-line summary with a tiny menu, shown after "minimize" on
//     close. Polling keeps running underneath.
//
// # Actions
//
// Refresh, restart and settings updates run as tea.Cmd functions that call
// axeos.MinerClient and return a message; Update never blocks on the
// network. Restart and delete ask for confirmation first. A miner saved
// without a name is titled by the hostname it reports.
//
// Alerts raised by the store's alerts.Watcher are collected after every
// telemetry update and shown as a warning on the status line.
//
// # Close handling
//
// The close key consults shell.CloseGuard: ask opens the close dialog,
// hide switches to the tray view, quit exits. Choosing "Remember my choice"
// in the dialog updates the guard and persists the choice through
// internal/prefs. C forgets the saved choice.
//
// # Files
//
//   - app.go: Model, Options, Update/View loop and Run
//   - commands.go: messages and commands that call the miner client
//   - miners.go, detail.go, panes.go: miners view
//   - forms.go, dialogs.go, modal.go: add-miner, rename and settings forms, confirm
//     and close dialogs
//   - header.go, help.go, logs.go, tray.go: chrome and secondary views
//   - keys.go, theme.go, style_helpers.go, strings.go, layout.go: shared pieces
package ui
