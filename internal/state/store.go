package state

import (
	"fmt"
	"sync"
	"time"

	"github.com/five82/axedeck/internal/alerts"
	"github.com/five82/axedeck/internal/axeos"
)

// MinerState is the latest data known about one miner.
type MinerState struct {
	Address             string
	Telemetry           axeos.Telemetry
	Snapshot            axeos.Snapshot
	HasSnapshot         bool
	LastUpdated         time.Time
	LastError           error
	ConsecutiveFailures int // Number of consecutive poll failures
}

// IsOffline returns true when the miner has been unreachable for multiple polls.
func (s MinerState) IsOffline() bool {
	return s.ConsecutiveFailures >= 2
}

// Store coordinates concurrent updates from the poller and one-off refreshes.
type Store struct {
	mu     sync.RWMutex
	active string
	miners map[string]MinerState
	alerts *alerts.Watcher
}

// SetAlerts makes every parsed snapshot pass through w. A nil watcher turns
// alerting off.
func (s *Store) SetAlerts(w *alerts.Watcher) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.alerts = w
}

// Alerts returns the watcher set with SetAlerts, or nil.
func (s *Store) Alerts() *alerts.Watcher {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.alerts
}

// SetActive selects the miner the poller should follow.
func (s *Store) SetActive(address string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.active = address
}

// Active returns the miner the poller follows, or "" when none is selected.
func (s *Store) Active() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.active
}

// Update records a fetch result for address. When err is non-nil the previous
// data is kept but the error is recorded for visibility. A freshly parsed
// snapshot is then handed to the alerts watcher, outside the store lock.
func (s *Store) Update(address string, telemetry *axeos.Telemetry, err error) {
	snap, parsed, watcher := s.record(address, telemetry, err)
	if parsed && watcher != nil {
		watcher.Observe(address, snap)
	}
}

func (s *Store) record(address string, telemetry *axeos.Telemetry, err error) (axeos.Snapshot, bool, *alerts.Watcher) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.miners == nil {
		s.miners = make(map[string]MinerState)
	}
	entry := s.miners[address]
	entry.Address = address
	entry.LastUpdated = time.Now()

	if err != nil {
		entry.LastError = err
		entry.ConsecutiveFailures++
		s.miners[address] = entry
		return axeos.Snapshot{}, false, nil
	}

	entry.ConsecutiveFailures = 0
	entry.LastError = nil
	parsed := false
	if telemetry != nil {
		entry.Telemetry = cloneTelemetry(*telemetry)
		snap, parseErr := telemetry.Snapshot()
		if parseErr != nil {
			// The document was valid JSON but not an object; keep it raw.
			entry.Snapshot = axeos.Snapshot{}
			entry.HasSnapshot = false
			entry.LastError = parseErr
		} else {
			entry.Snapshot = snap
			entry.HasSnapshot = true
			parsed = true
		}
	}
	s.miners[address] = entry
	return entry.Snapshot, parsed, s.alerts
}

// Get returns a copy of the state for address.
func (s *Store) Get(address string) (MinerState, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	entry, ok := s.miners[address]
	if !ok {
		return MinerState{Address: address}, false
	}
	return cloneState(entry), true
}

// Forget drops any data held for address.
func (s *Store) Forget(address string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.miners, address)
	if s.active == address {
		s.active = ""
	}
	if s.alerts != nil {
		s.alerts.Forget(address)
	}
}

// Snapshot returns a copy of every miner's state keyed by address.
func (s *Store) Snapshot() map[string]MinerState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[string]MinerState, len(s.miners))
	for addr, entry := range s.miners {
		out[addr] = cloneState(entry)
	}
	return out
}

func cloneState(entry MinerState) MinerState {
	dup := entry
	dup.Telemetry = cloneTelemetry(entry.Telemetry)
	if entry.LastError != nil {
		dup.LastError = fmt.Errorf("%w", entry.LastError)
	}
	return dup
}

func cloneTelemetry(t axeos.Telemetry) axeos.Telemetry {
	if len(t.Document) > 0 {
		doc := make([]byte, len(t.Document))
		copy(doc, t.Document)
		t.Document = doc
	}
	return t
}
