package main

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/gdamore/tcell/v2"
	"golang.org/x/sync/errgroup"

	"github.com/lixenwraith/dicetray/audio"
	"github.com/lixenwraith/dicetray/board"
	"github.com/lixenwraith/dicetray/clock"
	"github.com/lixenwraith/dicetray/config"
	"github.com/lixenwraith/dicetray/constant"
	"github.com/lixenwraith/dicetray/core"
	"github.com/lixenwraith/dicetray/die"
	"github.com/lixenwraith/dicetray/input"
	"github.com/lixenwraith/dicetray/interaction"
	"github.com/lixenwraith/dicetray/render"
	"github.com/lixenwraith/dicetray/status"
	"github.com/lixenwraith/dicetray/vmath"
)

// app wires the terminal to one board
// Everything except the event pump runs on the loop goroutine
type app struct {
	screen    tcell.Screen
	fini      func() // Restores the terminal, safe to call more than once
	cfg       config.Config
	statePath string
	logger    *log.Logger

	board *board.Board
	ctrl  *interaction.Controller
	input *input.Machine
	sound *audio.SoundManager
	stats *status.Counters
}

// newApp builds the tray for screen; fini must tolerate repeated calls
func newApp(screen tcell.Screen, fini func(), cfg config.Config, statePath string, logger *log.Logger) (*app, error) {
	a := &app{
		screen:    screen,
		fini:      fini,
		cfg:       cfg,
		statePath: statePath,
		logger:    logger,
		input:     input.NewMachine(),
		stats:     status.NewCounters(),
	}

	w, h := surfaceSize(screen.Size())
	b, err := board.New(cfg.BoardSettings(w, h),
		board.WithRand(newRand(cfg.Seed)),
		board.WithOutput(render.NewScreen(screen)),
		board.WithLogger(logger),
		board.WithPlayer(die.NewPlayer(cfg.PlayerName, cfg.Color())),
	)
	if err != nil {
		return nil, fmt.Errorf("board: %w", err)
	}
	a.board = b

	// Hold timers fire on a timer goroutine and are handed back through the event queue
	a.ctrl = interaction.NewController(b, clock.NewReal(a.post),
		interaction.WithBus(b.Bus()),
		interaction.WithLogger(logger),
	)

	if cfg.Sound {
		a.sound = audio.NewSoundManager(logger)
		if err := a.sound.Initialize(); err != nil {
			logger.Printf("audio: initialization failed, continuing without sound: %v", err)
		}
		a.sound.Attach(b.Bus())
	}

	a.stats.Attach(b.Bus())
	a.fill()
	return a, nil
}

// post hands fn to the loop goroutine through the terminal event queue
func (a *app) post(fn func()) {
	if err := a.screen.PostEvent(tcell.NewEventInterrupt(fn)); err != nil {
		a.logger.Printf("clock: dropped timer callback: %v", err)
	}
}

// fill restores the saved tray, or throws a fresh one
func (a *app) fill() {
	if a.statePath != "" {
		st, err := config.LoadState(a.statePath)
		switch {
		case err != nil:
			a.logger.Printf("state: %v", err)
		case len(st.Dice) > 0:
			err := config.RestoreState(a.board, st)
			if err == nil {
				a.logger.Printf("state: restored %d dice from %s", len(st.Dice), a.statePath)
				return
			}
			a.logger.Printf("state: restore failed, throwing a fresh tray: %v", err)
		}
	}

	n := min(a.cfg.Dice, a.board.Grid().Capacity())
	if err := a.board.Add(n); err != nil {
		a.logger.Printf("board: %v", err)
	}
	if a.board.Len() == 0 {
		a.board.Render()
	}
}

// run pumps terminal events into the loop until quit
func (a *app) run() error {
	g, ctx := errgroup.WithContext(context.Background())
	// A clean quit returns nil, which errgroup does not treat as a cancel
	ctx, cancel := context.WithCancel(ctx)
	events := make(chan tcell.Event, constant.EventBufferSize)

	g.Go(core.Guard(func() error {
		return a.pump(ctx, events)
	}, a.fini))

	g.Go(core.Guard(func() error {
		// Releases a pump blocked on a full channel
		defer cancel()
		err := a.loop(ctx, events)
		a.shutdown()
		// Unblocks PollEvent in the pump
		a.fini()
		return err
	}, a.fini))

	return g.Wait()
}

func (a *app) pump(ctx context.Context, events chan<- tcell.Event) error {
	for {
		ev := a.screen.PollEvent()
		if ev == nil {
			return nil
		}
		select {
		case events <- ev:
		case <-ctx.Done():
			return nil
		}
	}
}

func (a *app) loop(ctx context.Context, events <-chan tcell.Event) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev := <-events:
			if interrupt, ok := ev.(*tcell.EventInterrupt); ok {
				if fn, ok := interrupt.Data().(func()); ok {
					fn()
				}
				continue
			}

			intent := a.input.Process(ev)
			if intent == nil {
				continue
			}
			if quit := a.apply(intent); quit {
				return nil
			}
		}
	}
}

// apply executes one intent, reporting whether to quit
func (a *app) apply(intent *input.Intent) bool {
	if intent.Type == input.IntentPointer {
		a.ctrl.Handle(intent.Pointer)
		return false
	}

	// Tray commands wait for the current gesture to finish
	if a.ctrl.State() != interaction.StateIdle && intent.Type != input.IntentQuit && intent.Type != input.IntentResize {
		return false
	}

	var err error
	status := ""
	switch intent.Type {
	case input.IntentQuit:
		return true

	case input.IntentResize:
		a.screen.Sync()
		err = a.resize(intent.Width, intent.Height)

	case input.IntentThrow:
		err = a.board.Throw()

	case input.IntentAddDie:
		err = a.board.Add(1)

	case input.IntentRemoveDie:
		var n int
		n, err = a.board.Remove(1)
		if err == nil && n == 0 {
			status = " every die is held"
		}

	case input.IntentToggleRotation:
		on := !a.board.Config().Rotation
		a.board.SetRotation(on)
		status = fmt.Sprintf(" rotation %s, applies on next throw", onOff(on))

	case input.IntentToggleSound:
		if a.sound == nil {
			status = " sound disabled in config"
		} else {
			status = fmt.Sprintf(" sound %s", onOff(!a.sound.ToggleMute()))
		}
	}

	if err != nil {
		a.logger.Printf("tray: %s: %v", intent.Type, err)
		status = " " + err.Error()
	}
	a.board.SetStatus(status)
	a.board.Render()
	return false
}

// resize follows the terminal unless the config pins the surface size
func (a *app) resize(cols, rows int) error {
	if a.ctrl.State() != interaction.StateIdle {
		a.ctrl.Close()
	}
	w, h := surfaceSize(cols, rows)
	if a.cfg.Width > 0 {
		w = a.cfg.Width
	}
	if a.cfg.Height > 0 {
		h = a.cfg.Height
	}
	if w <= 0 || h <= 0 {
		return nil
	}
	return a.board.SetSize(w, h)
}

func (a *app) shutdown() {
	a.ctrl.Close()
	a.logger.Printf("tray: session %s", a.stats.Summary())
	a.stats.Detach()
	if a.sound != nil {
		a.sound.Cleanup()
	}
	if a.statePath == "" {
		return
	}
	if err := config.SaveState(a.statePath, config.CaptureState(a.board)); err != nil {
		a.logger.Printf("state: %v", err)
	}
}

// surfaceSize converts a terminal size to surface units, keeping a row for status
func surfaceSize(cols, rows int) (int, int) {
	return cols * constant.UnitsPerColumn, (rows - 1) * constant.UnitsPerRow
}

func newRand(seed int64) vmath.Rand {
	if seed == 0 {
		return vmath.NewTimeSeededRand()
	}
	return vmath.NewFastRand(uint64(seed))
}

func onOff(on bool) string {
	if on {
		return "on"
	}
	return "off"
}

// envName maps a config key to its environment variable suffix
func envName(field string) string {
	return strings.ToUpper(field)
}
