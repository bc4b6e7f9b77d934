package logger

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestInitWritesLogFile(t *testing.T) {
	dir := t.TempDir()
	t.Cleanup(func() { Logger = nil })

	if err := Init(Config{ConfigDir: dir}); err != nil {
		t.Fatalf("Init: %v", err)
	}
	Info("catalog loaded", "foods", 10)
	Debug("hidden at info level")

	data, err := os.ReadFile(filepath.Join(dir, "logs", "regimen.log"))
	if err != nil {
		t.Fatalf("reading log: %v", err)
	}
	out := string(data)
	if !strings.Contains(out, "catalog loaded") || !strings.Contains(out, "foods=10") {
		t.Errorf("log file missing info line:\n%s", out)
	}
	if strings.Contains(out, "hidden at info level") {
		t.Error("debug line written at info level")
	}
}

func TestInitDebugMirrorsToStderr(t *testing.T) {
	var buf bytes.Buffer
	t.Cleanup(func() { Logger = nil })

	if err := Init(Config{Debug: true, ConfigDir: t.TempDir(), Stderr: &buf}); err != nil {
		t.Fatalf("Init: %v", err)
	}
	With("screen", "food").Debug("applied")

	if !strings.Contains(buf.String(), "screen=food") {
		t.Errorf("stderr = %q, want screen=food", buf.String())
	}
}

func TestHelpersWithoutInit(t *testing.T) {
	Logger = nil
	Debug("x")
	Info("x")
	Warn("x")
	Error("x")
	if With("k", "v") != nil {
		t.Error("With before Init should be nil")
	}
}
