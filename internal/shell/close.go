// Package shell holds host-shell state that lives outside the miner client:
// what a close request should do.
package shell

import (
	"sync/atomic"

	"github.com/five82/axedeck/internal/prefs"
)

// CloseDecision is the outcome of a close request.
type CloseDecision int

const (
	// CloseAskUser means no choice is saved and the user must pick.
	CloseAskUser CloseDecision = iota
	// CloseHide means hide to the tray and keep running.
	CloseHide
	// CloseQuit means terminate the process.
	CloseQuit
)

func (d CloseDecision) String() string {
	switch d {
	case CloseHide:
		return "hide"
	case CloseQuit:
		return "quit"
	default:
		return "ask"
	}
}

// CloseGuard owns the hide-on-close preference. It is built once at startup
// and handed to whatever handles close requests. Safe for concurrent use.
type CloseGuard struct {
	decision atomic.Int32
}

// NewCloseGuard builds a guard from the persisted close action.
func NewCloseGuard(action prefs.CloseAction) *CloseGuard {
	g := &CloseGuard{}
	switch action {
	case prefs.CloseMinimize:
		g.decision.Store(int32(CloseHide))
	case prefs.CloseExit:
		g.decision.Store(int32(CloseQuit))
	default:
		g.decision.Store(int32(CloseAskUser))
	}
	return g
}

// Decide reports what a close request should do right now.
func (g *CloseGuard) Decide() CloseDecision {
	if g == nil {
		return CloseQuit
	}
	return CloseDecision(g.decision.Load())
}

// HideOnClose reports whether close requests hide instead of quitting.
func (g *CloseGuard) HideOnClose() bool {
	return g.Decide() == CloseHide
}

// SetHideOnClose records an explicit user choice.
func (g *CloseGuard) SetHideOnClose(enabled bool) {
	if enabled {
		g.decision.Store(int32(CloseHide))
		return
	}
	g.decision.Store(int32(CloseQuit))
}

// Reset forgets the saved choice so the next close asks again.
func (g *CloseGuard) Reset() {
	g.decision.Store(int32(CloseAskUser))
}

// Action converts the current decision back to its persisted form.
func (g *CloseGuard) Action() prefs.CloseAction {
	switch g.Decide() {
	case CloseHide:
		return prefs.CloseMinimize
	case CloseQuit:
		return prefs.CloseExit
	default:
		return prefs.CloseAsk
	}
}
