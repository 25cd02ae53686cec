package main

import (
	"context"
	"io"
	"log"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/dicetray/config"
	"github.com/lixenwraith/dicetray/input"
)

func newTestApp(t *testing.T, statePath string) *app {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatalf("Failed to init simulation screen: %v", err)
	}
	screen.SetSize(80, 25)
	fini := sync.OnceFunc(screen.Fini)
	t.Cleanup(fini)

	cfg := config.Default()
	cfg.Sound = false
	cfg.Seed = 11
	cfg.Dice = 4

	a, err := newApp(screen, fini, cfg, statePath, log.New(io.Discard, "", 0))
	if err != nil {
		t.Fatalf("newApp failed: %v", err)
	}
	return a
}

func TestSurfaceSize(t *testing.T) {
	w, h := surfaceSize(80, 25)
	if w != 80 || h != 48 {
		t.Errorf("Expected 80x48 surface, got %dx%d", w, h)
	}
}

func TestAppIntents(t *testing.T) {
	a := newTestApp(t, "")
	if a.board.Len() != 4 {
		t.Fatalf("Expected 4 dice on a fresh tray, got %d", a.board.Len())
	}

	a.apply(&input.Intent{Type: input.IntentAddDie})
	if a.board.Len() != 5 {
		t.Errorf("Expected 5 dice after add, got %d", a.board.Len())
	}

	a.apply(&input.Intent{Type: input.IntentRemoveDie})
	if a.board.Len() != 4 {
		t.Errorf("Expected 4 dice after remove, got %d", a.board.Len())
	}

	rot := a.board.Config().Rotation
	a.apply(&input.Intent{Type: input.IntentToggleRotation})
	if a.board.Config().Rotation == rot {
		t.Error("Expected rotation toggled")
	}

	if quit := a.apply(&input.Intent{Type: input.IntentThrow}); quit {
		t.Error("Throw should not quit")
	}
	if quit := a.apply(&input.Intent{Type: input.IntentQuit}); !quit {
		t.Error("Expected quit intent to stop the loop")
	}
}

func TestAppResize(t *testing.T) {
	a := newTestApp(t, "")

	a.apply(&input.Intent{Type: input.IntentResize, Width: 40, Height: 13})
	if cfg := a.board.Config(); cfg.Width != 40 || cfg.Height != 24 {
		t.Errorf("Expected 40x24 surface, got %dx%d", cfg.Width, cfg.Height)
	}
	for _, d := range a.board.Dice() {
		if !d.HasCoordinates() {
			t.Errorf("Die %s unplaced after resize", d.ID())
		}
	}

	// Too small to hold a surface, ignored
	a.apply(&input.Intent{Type: input.IntentResize, Width: 40, Height: 1})
	if a.board.Config().Height != 24 {
		t.Errorf("Expected degenerate resize ignored, got height %d", a.board.Config().Height)
	}
}

func TestAppPersistsTray(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.yaml")

	first := newTestApp(t, path)
	first.board.Dice()[0].Hold(first.board.Player())
	want := make(map[string]int)
	for _, d := range first.board.Dice() {
		want[d.ID()] = d.Pips()
	}
	first.shutdown()

	second := newTestApp(t, path)
	if second.board.Len() != len(want) {
		t.Fatalf("Expected %d restored dice, got %d", len(want), second.board.Len())
	}
	for _, d := range second.board.Dice() {
		if pips, ok := want[d.ID()]; !ok || pips != d.Pips() {
			t.Errorf("Die %s not restored faithfully", d.ID())
		}
	}
	if !second.board.Dice()[0].IsHeld() {
		t.Error("Expected held state restored")
	}
	if got := second.stats.Value("Held"); got != 0 {
		t.Errorf("Expected a restored hold not to count, got %d", got)
	}
}

func TestAppCountsActivity(t *testing.T) {
	a := newTestApp(t, "")
	a.apply(&input.Intent{Type: input.IntentThrow})

	if got := a.stats.Value("LaidOut"); got != 2 {
		t.Errorf("Expected 2 layouts (fill and throw), got %d", got)
	}
	if got := a.stats.Value("Thrown"); got != 8 {
		t.Errorf("Expected 8 throws, got %d", got)
	}
}

func TestRunHandlesInterruptsUntilQuit(t *testing.T) {
	a := newTestApp(t, "")
	sim := a.screen.(tcell.SimulationScreen)

	done := make(chan error, 1)
	go func() { done <- a.run() }()

	toggled := make(chan struct{})
	a.post(func() {
		a.board.Dice()[0].Toggle(a.board.Player())
		close(toggled)
	})
	select {
	case <-toggled:
	case <-time.After(2 * time.Second):
		t.Fatal("Posted callback never ran on the loop")
	}

	sim.InjectKey(tcell.KeyRune, 'q', tcell.ModNone)
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Expected clean quit, got %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("run did not return after quit")
	}

	if !a.board.Dice()[0].IsHeld() {
		t.Error("Expected the posted toggle to hold the die")
	}
}

func TestPumpStopsOnCancel(t *testing.T) {
	a := newTestApp(t, "")
	sim := a.screen.(tcell.SimulationScreen)
	sim.InjectKey(tcell.KeyRune, 'x', tcell.ModNone)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	// Nobody reads, so only the cancel can free the pump
	done := make(chan error, 1)
	go func() { done <- a.pump(ctx, make(chan tcell.Event)) }()

	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Expected nil from a cancelled pump, got %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("pump stayed blocked after cancel")
	}
}
