package main

import (
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/lixenwraith/dicetray/die"
	"github.com/lixenwraith/dicetray/grid"
	"github.com/lixenwraith/dicetray/placement"
)

// logInTempDir runs setupLogging from a scratch working directory and puts
// the standard logger back afterwards
func logInTempDir(t *testing.T, debug bool) *os.File {
	t.Helper()
	t.Chdir(t.TempDir())

	flags := log.Flags()
	f := setupLogging(debug)
	t.Cleanup(func() {
		log.SetOutput(os.Stderr)
		log.SetFlags(flags)
		if f != nil {
			f.Close()
		}
	})
	return f
}

func TestSetupLoggingDiscardsWithoutDebug(t *testing.T) {
	if f := logInTempDir(t, false); f != nil {
		t.Error("Expected no log file without debug")
	}
	if w := log.Writer(); w != io.Discard {
		t.Errorf("Expected output discarded, got %T", w)
	}
	if _, err := os.Stat(logDir); !os.IsNotExist(err) {
		t.Errorf("Expected no %s directory, stat returned %v", logDir, err)
	}
}

func TestSetupLoggingCapturesTrayWarnings(t *testing.T) {
	f := logInTempDir(t, true)
	if f == nil {
		t.Fatal("Expected a log file with debug")
	}
	if w := log.Writer(); w == os.Stdout || w == os.Stderr {
		t.Fatal("Log output must stay off the terminal")
	}

	// One row, ten columns: the ring bound seats three of five dice
	g, err := grid.New(1000, 100, 100)
	if err != nil {
		t.Fatalf("grid.New failed: %v", err)
	}
	e, err := placement.NewEngine(g, placement.WithLogger(log.Default()))
	if err != nil {
		t.Fatalf("NewEngine failed: %v", err)
	}
	tokens := make([]placement.Token, 5)
	for i := range tokens {
		tokens[i] = die.New(nil)
	}
	result, err := e.Layout(tokens)
	if err != nil {
		t.Fatalf("Layout failed: %v", err)
	}
	if result.PlacedCount() == len(tokens) {
		t.Fatal("Expected a partial placement")
	}

	data, err := os.ReadFile(filepath.Join(logDir, logFileName))
	if err != nil {
		t.Fatalf("Failed to read log: %v", err)
	}
	if !strings.Contains(string(data), "placement:") {
		t.Errorf("Expected the placement warning in the log, got %q", data)
	}
}

func TestSetupLoggingRotatesOversizedFile(t *testing.T) {
	t.Chdir(t.TempDir())

	if err := os.MkdirAll(logDir, 0755); err != nil {
		t.Fatalf("MkdirAll failed: %v", err)
	}
	logPath := filepath.Join(logDir, logFileName)
	if err := os.WriteFile(logPath, make([]byte, maxLogSize+1), 0644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	flags := log.Flags()
	f := setupLogging(true)
	t.Cleanup(func() {
		log.SetOutput(os.Stderr)
		log.SetFlags(flags)
	})
	if f == nil {
		t.Fatal("Expected a log file")
	}
	defer f.Close()

	rotated, err := filepath.Glob(filepath.Join(logDir, "dicetray-*.log"))
	if err != nil {
		t.Fatalf("Glob failed: %v", err)
	}
	if len(rotated) != 1 {
		t.Fatalf("Expected one rotated log, found %v", rotated)
	}
	if info, err := os.Stat(rotated[0]); err != nil || info.Size() != maxLogSize+1 {
		t.Errorf("Expected the rotated log to keep the old content, stat returned %v", err)
	}

	info, err := os.Stat(logPath)
	if err != nil {
		t.Fatalf("Stat failed: %v", err)
	}
	if info.Size() != 0 {
		t.Errorf("Expected a fresh log file, got %d bytes", info.Size())
	}
}
