package app

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/five82/axedeck/internal/axeos"
	"github.com/five82/axedeck/internal/state"
)

const (
	defaultPollInterval = 5 * time.Second
	maxBackoff          = 60 * time.Second
)

type telemetryFetcher interface {
	FetchTelemetry(ctx context.Context, address string) (axeos.Telemetry, error)
}

// StartPoller launches a background goroutine that refreshes the active miner
// at a fixed cadence, slowing down while it stays unreachable. It returns
// immediately.
func StartPoller(ctx context.Context, store *state.Store, client telemetryFetcher, interval time.Duration, logger *zap.Logger) {
	if interval <= 0 {
		interval = defaultPollInterval
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	go func() {
		timer := time.NewTimer(interval)
		defer timer.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-timer.C:
			}
			failures := refresh(ctx, store, client, logger)
			timer.Reset(calculateBackoff(failures, interval))
		}
	}()
}

// refresh polls the active miner once and returns its consecutive failure
// count. It does nothing when no miner is selected.
func refresh(ctx context.Context, store *state.Store, client telemetryFetcher, logger *zap.Logger) int {
	address := store.Active()
	if address == "" {
		return 0
	}
	telemetry, err := client.FetchTelemetry(ctx, address)
	if err != nil {
		if ctx.Err() != nil {
			return 0
		}
		store.Update(address, nil, err)
		logger.Warn("telemetry poll failed", zap.String("address", address), zap.Error(err))
	} else {
		store.Update(address, &telemetry, nil)
	}
	current, _ := store.Get(address)
	return current.ConsecutiveFailures
}

// calculateBackoff doubles the interval per consecutive failure, capped at
// maxBackoff.
func calculateBackoff(failures int, interval time.Duration) time.Duration {
	if failures <= 0 {
		return interval
	}
	backoff := interval
	for i := 0; i < failures; i++ {
		backoff *= 2
		if backoff >= maxBackoff {
			return maxBackoff
		}
	}
	return backoff
}
