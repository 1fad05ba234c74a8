package shell

import (
	"sync"
	"testing"

	"github.com/five82/axedeck/internal/prefs"
)

func TestNewCloseGuard_FromPersistedAction(t *testing.T) {
	cases := []struct {
		action prefs.CloseAction
		want   CloseDecision
	}{
		{prefs.CloseAsk, CloseAskUser},
		{prefs.CloseMinimize, CloseHide},
		{prefs.CloseExit, CloseQuit},
		{prefs.CloseAction("garbage"), CloseAskUser},
	}
	for _, tc := range cases {
		g := NewCloseGuard(tc.action)
		if got := g.Decide(); got != tc.want {
			t.Fatalf("NewCloseGuard(%q).Decide() = %v, want %v", tc.action, got, tc.want)
		}
	}
}

func TestCloseGuard_Transitions(t *testing.T) {
	g := NewCloseGuard(prefs.CloseAsk)
	if g.HideOnClose() {
		t.Fatal("HideOnClose() = true before any choice")
	}

	g.SetHideOnClose(true)
	if !g.HideOnClose() || g.Action() != prefs.CloseMinimize {
		t.Fatalf("after SetHideOnClose(true): decide=%v action=%q", g.Decide(), g.Action())
	}

	g.SetHideOnClose(false)
	if g.Decide() != CloseQuit || g.Action() != prefs.CloseExit {
		t.Fatalf("after SetHideOnClose(false): decide=%v action=%q", g.Decide(), g.Action())
	}

	g.Reset()
	if g.Decide() != CloseAskUser || g.Action() != prefs.CloseAsk {
		t.Fatalf("after Reset: decide=%v action=%q", g.Decide(), g.Action())
	}
}

func TestCloseGuard_NilQuits(t *testing.T) {
	var g *CloseGuard
	if g.Decide() != CloseQuit {
		t.Fatalf("nil guard Decide() = %v, want quit", g.Decide())
	}
}

func TestCloseGuard_ConcurrentAccess(t *testing.T) {
	g := NewCloseGuard(prefs.CloseAsk)
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(2)
		go func(i int) {
			defer wg.Done()
			g.SetHideOnClose(i%2 == 0)
		}(i)
		go func() {
			defer wg.Done()
			_ = g.Decide()
		}()
	}
	wg.Wait()
	if d := g.Decide(); d != CloseHide && d != CloseQuit {
		t.Fatalf("Decide() = %v after writers, want hide or quit", d)
	}
}
