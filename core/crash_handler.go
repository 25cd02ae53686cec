package core

import (
	"fmt"
	"os"
	"runtime/debug"
)

// HandleCrash restores the terminal through reset, prints the panic and stack trace, and exits
func HandleCrash(r any, reset func()) {
	if r == nil {
		return
	}

	if reset != nil {
		reset()
	}

	os.Stdout.Sync()

	// \r\n in case the terminal is still in raw mode
	fmt.Fprintf(os.Stderr, "\r\n\x1b[31mDICETRAY CRASHED: %v\x1b[0m\r\n", r)
	fmt.Fprintf(os.Stderr, "Stack Trace:\r\n%s\r\n", debug.Stack())

	os.Stderr.Sync()
	os.Exit(1)
}

// Guard wraps fn with panic recovery that routes to HandleCrash
// Use for goroutines started outside the UI loop
func Guard(fn func() error, reset func()) func() error {
	return func() error {
		defer func() {
			if r := recover(); r != nil {
				HandleCrash(r, reset)
			}
		}()
		return fn()
	}
}
