package app

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/five82/axedeck/internal/alerts"
	"github.com/five82/axedeck/internal/axeos"
	"github.com/five82/axedeck/internal/config"
	"github.com/five82/axedeck/internal/logging"
	"github.com/five82/axedeck/internal/prefs"
	"github.com/five82/axedeck/internal/registry"
	"github.com/five82/axedeck/internal/shell"
	"github.com/five82/axedeck/internal/state"
	"github.com/five82/axedeck/internal/ui"
)

// Options configure the axedeck application.
type Options struct {
	ConfigPath string
	PrefsPath  string // empty uses default ~/.config/axedeck/prefs.toml
	PollEvery  int    // seconds; zero uses the config file value
}

// Run boots the axedeck TUI until the context is cancelled or the user exits.
func Run(ctx context.Context, opts Options) error {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	interval := cfg.PollInterval
	if opts.PollEvery > 0 {
		interval = time.Duration(opts.PollEvery) * time.Second
	}
	if interval <= 0 {
		interval = defaultPollInterval
	}

	logger, closeLog, err := logging.NewFile(cfg.LogFile, cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	defer closeLog()

	userPrefs := prefs.Load(opts.PrefsPath)

	miners, err := registry.Open(cfg.MinersFile)
	if err != nil {
		return fmt.Errorf("load saved miners: %w", err)
	}

	store := &state.Store{}
	store.SetAlerts(alerts.New(cfg.TempWarning, alerts.WithLogger(logger.Named("alerts"))))
	if userPrefs.LastMiner != "" {
		if _, ok := miners.FindByAddress(userPrefs.LastMiner); ok {
			store.SetActive(userPrefs.LastMiner)
		}
	}

	client := axeos.NewClient(
		axeos.WithLogger(logger.Named("axeos")),
		axeos.WithUserAgent(cfg.UserAgent),
	)
	guard := shell.NewCloseGuard(userPrefs.CloseAction)

	logger.Info("axedeck starting",
		zap.String("miners_file", miners.Path()),
		zap.Int("saved_miners", len(miners.List())),
		zap.Duration("poll_interval", interval),
		zap.Float64("temp_warning", cfg.TempWarning),
		zap.String("close_action", string(guard.Action())))

	StartPoller(ctx, store, client, interval, logger.Named("poller"))

	err = ui.Run(ui.Options{
		Context:   ctx,
		Client:    client,
		Registry:  miners,
		Store:     store,
		Guard:     guard,
		Logger:    logger.Named("ui"),
		ThemeName: userPrefs.Theme,
		PrefsPath: opts.PrefsPath,
		LogPath:   cfg.LogFile,
	})
	if err != nil {
		logger.Error("ui exited with error", zap.Error(err))
		return err
	}
	logger.Info("axedeck stopped")
	return nil
}
