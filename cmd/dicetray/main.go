package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"sync"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/dicetray/config"
	"github.com/lixenwraith/dicetray/core"
)

var (
	configPath = flag.String("config", "", "Config file (yaml, toml or json)")
	statePath  = flag.String("state", "dicetray-state.yaml", "Tray state file, empty disables persistence")
	debugFlag  = flag.Bool("debug", false, "Write diagnostics to logs/dicetray.log")
	seedFlag   = flag.Int64("seed", 0, "Random seed, 0 uses the config or the clock")
	diceFlag   = flag.Int("dice", -1, "Dice on a fresh tray, -1 uses the config")
)

func main() {
	flag.Parse()

	logFile := setupLogging(*debugFlag)

	cfg, err := config.Load(*configPath, log.Default())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		var ce *core.ConfigError
		if errors.As(err, &ce) {
			fmt.Fprintf(os.Stderr, "Check %q or DICETRAY_%s\n", ce.Field, envName(ce.Field))
		}
		os.Exit(1)
	}
	if cfg.Debug && logFile == nil {
		logFile = setupLogging(true)
	}
	if logFile != nil {
		defer logFile.Close()
	}
	if *seedFlag != 0 {
		cfg.Seed = *seedFlag
	}
	if *diceFlag >= 0 {
		cfg.Dice = *diceFlag
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create screen: %v\n", err)
		os.Exit(1)
	}
	if err := screen.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize terminal: %v\n", err)
		os.Exit(1)
	}

	reset := sync.OnceFunc(screen.Fini)

	// Panic Recovery: Ensure terminal is reset even if the tray crashes
	defer func() {
		if r := recover(); r != nil {
			core.HandleCrash(r, reset)
		}
	}()
	defer reset()

	screen.EnableMouse(tcell.MouseMotionEvents)
	screen.EnableFocus()
	screen.HideCursor()

	a, err := newApp(screen, reset, cfg, *statePath, log.Default())
	if err != nil {
		reset()
		fmt.Fprintf(os.Stderr, "Failed to set up tray: %v\n", err)
		os.Exit(1)
	}

	if err := a.run(); err != nil {
		reset()
		fmt.Fprintf(os.Stderr, "Tray stopped: %v\n", err)
		os.Exit(1)
	}
}
