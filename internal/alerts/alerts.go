package alerts

import (
	"fmt"
	"strconv"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/five82/axedeck/internal/axeos"
)

const (
	// DefaultTempThreshold is the ASIC temperature in °C at which a warning
	// is raised.
	DefaultTempThreshold = 70.0

	defaultCooldown = 5 * time.Minute
	// minBestDiffRise is how far the best difficulty has to jump before it
	// is reported. Ordinary share luck moves it by far less.
	minBestDiffRise = 1e9
	// keepRecent bounds the backlog Since can return.
	keepRecent = 32
)

// Kind identifies what raised an alert.
type Kind string

const (
	KindTemperature    Kind = "temperature"
	KindBestDifficulty Kind = "best_difficulty"
)

// Alert is one raised notification.
type Alert struct {
	Seq     uint64
	Kind    Kind
	Address string
	Message string
	At      time.Time
}

// Option configures a Watcher.
type Option func(*Watcher)

// WithLogger sets the logger alerts are written to.
func WithLogger(logger *zap.Logger) Option {
	return func(w *Watcher) {
		if logger != nil {
			w.logger = logger
		}
	}
}

// WithCooldown overrides how long a hot miner stays quiet after a warning.
func WithCooldown(d time.Duration) Option {
	return func(w *Watcher) {
		if d >= 0 {
			w.cooldown = d
		}
	}
}

// WithClock replaces time.Now, for tests.
func WithClock(now func() time.Time) Option {
	return func(w *Watcher) {
		if now != nil {
			w.now = now
		}
	}
}

// Watcher checks each stored snapshot for a hot ASIC or a new best
// difficulty and keeps the most recent alerts for the UI to collect.
type Watcher struct {
	mu         sync.Mutex
	threshold  float64
	cooldown   time.Duration
	logger     *zap.Logger
	now        func() time.Time
	lastWarned map[string]time.Time
	best       map[string]float64
	recent     []Alert
	seq        uint64
}

// New returns a Watcher warning at threshold °C. A threshold of zero or
// less turns temperature warnings off; best-difficulty alerts stay on.
func New(threshold float64, opts ...Option) *Watcher {
	w := &Watcher{
		threshold:  threshold,
		cooldown:   defaultCooldown,
		logger:     zap.NewNop(),
		now:        time.Now,
		lastWarned: make(map[string]time.Time),
		best:       make(map[string]float64),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Observe checks one snapshot from address and returns the alerts it raised.
func (w *Watcher) Observe(address string, snap axeos.Snapshot) []Alert {
	w.mu.Lock()
	defer w.mu.Unlock()

	name := snap.Label()
	if name == "" {
		name = address
	}
	now := w.now()

	var raised []Alert
	if snap.Temperature != nil && w.threshold > 0 && *snap.Temperature >= w.threshold {
		last, warned := w.lastWarned[address]
		if !warned || now.Sub(last) > w.cooldown {
			w.lastWarned[address] = now
			raised = append(raised, w.raise(KindTemperature, address, now,
				fmt.Sprintf("%s is running hot at %s °C (threshold %s °C)",
					name, formatDegrees(*snap.Temperature), formatDegrees(w.threshold))))
		}
	}

	if current, ok := snap.BestDifficulty(); ok {
		prev := w.best[address]
		if prev > 0 && current-prev > minBestDiffRise {
			raised = append(raised, w.raise(KindBestDifficulty, address, now,
				fmt.Sprintf("%s found a new best difficulty: %s", name, axeos.FormatDifficulty(current))))
		}
		w.best[address] = current
	}
	return raised
}

func (w *Watcher) raise(kind Kind, address string, at time.Time, message string) Alert {
	w.seq++
	alert := Alert{Seq: w.seq, Kind: kind, Address: address, Message: message, At: at}
	w.recent = append(w.recent, alert)
	if len(w.recent) > keepRecent {
		w.recent = append([]Alert(nil), w.recent[len(w.recent)-keepRecent:]...)
	}
	w.logger.Warn("miner alert",
		zap.String("kind", string(kind)),
		zap.String("address", address),
		zap.String("message", message))
	return alert
}

// Since returns the alerts raised after seq, oldest first. Pass the Seq of
// the last alert already handled, or zero for everything still kept.
func (w *Watcher) Since(seq uint64) []Alert {
	if w == nil {
		return nil
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	var out []Alert
	for _, alert := range w.recent {
		if alert.Seq > seq {
			out = append(out, alert)
		}
	}
	return out
}

// Forget drops what is remembered about address so a re-added miner starts
// fresh.
func (w *Watcher) Forget(address string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	delete(w.lastWarned, address)
	delete(w.best, address)
}

func formatDegrees(c float64) string {
	return strconv.FormatFloat(c, 'f', -1, 64)
}
