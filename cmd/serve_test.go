package cmd

import (
	"os"
	"path/filepath"
	"slices"
	"testing"
	"time"
)

func TestFilterDetachArg(t *testing.T) {
	got := filterDetachArg([]string{"serve", "--detach", "--addr", ":9000", "--detach=true"})
	want := []string{"serve", "--addr", ":9000"}
	if !slices.Equal(got, want) {
		t.Errorf("filterDetachArg = %v, want %v", got, want)
	}
}

func TestPIDFileRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "regimen.pid")
	if err := writePID(path, 4242); err != nil {
		t.Fatal(err)
	}
	pid, err := readPID(path)
	if err != nil || pid != 4242 {
		t.Fatalf("readPID = %d, %v", pid, err)
	}

	if err := os.WriteFile(path, []byte("nope\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := readPID(path); err == nil {
		t.Error("garbage pid file should fail")
	}
}

func TestEnsureServerNotRunningClearsStaleFiles(t *testing.T) {
	dir := t.TempDir()
	pidFile := filepath.Join(dir, "regimen.pid")

	if err := ensureServerNotRunning(pidFile); err != nil {
		t.Fatalf("missing pid file: %v", err)
	}

	// Our own pid is alive.
	if err := writePID(pidFile, os.Getpid()); err != nil {
		t.Fatal(err)
	}
	if err := ensureServerNotRunning(pidFile); err == nil {
		t.Error("live pid should be reported as running")
	}

	st := serverRuntimeState{PID: 1, Addr: "127.0.0.1:1", StartedAt: time.Now().UTC().Truncate(time.Second)}
	if err := writeState(statePath(pidFile), st); err != nil {
		t.Fatal(err)
	}
	got, err := readState(statePath(pidFile))
	if err != nil || got.PID != st.PID || got.Addr != st.Addr || !got.StartedAt.Equal(st.StartedAt) {
		t.Errorf("readState = %+v, %v; want %+v", got, err, st)
	}
}
