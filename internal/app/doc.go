// Package app is the composition root for axedeck.
//
// Run loads the config file, opens the log file, reads preferences and the
// saved-miner list, then builds the shared pieces and hands them to the UI:
//
//	config.Load()          poll interval, log file, miners file, temp warning
//	logging.NewFile()      zap logger writing to the log file
//	prefs.Load()           theme, close choice, last selected miner
//	registry.Open()        saved miners
//	state.Store{}          latest telemetry per miner, shared with the UI
//	alerts.New()           hot-ASIC and best-difficulty alerts on each update
//	axeos.NewClient()      HTTP client for the miner's REST API
//	shell.NewCloseGuard()  hide-on-close preference
//	StartPoller()          background telemetry for the active miner
//	ui.Run()               TUI, blocks until exit
//
// # Polling
//
// The poller follows whichever miner the store marks active. Each tick it
// fetches telemetry and records the result, success or failure. After a
// failure the next poll is delayed with exponential backoff capped at one
// minute so an unplugged miner does not fill the log. Nothing is polled
// while no miner is saved.
//
// Startup never waits on a miner. An unreachable miner shows up as an error
// in the UI rather than a failed launch.
//
// # Usage
//
//	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
//	defer stop()
//
//	if err := app.Run(ctx, app.Options{PollEvery: 5}); err != nil {
//		log.Fatalf("axedeck: %v", err)
//	}
package app
