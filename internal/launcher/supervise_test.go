package launcher

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"syscall"
	"testing"
	"time"
)

func skipOnWindows(t *testing.T) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("POSIX shell child processes")
	}
}

// writeBackend writes a shell script as the backend entry point so the
// supervisor can be exercised with /bin/sh standing in for python.
func writeBackend(t *testing.T, script string) string {
	t.Helper()
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, BackendEntry), []byte(script), 0o755); err != nil {
		t.Fatalf("writefile: %v", err)
	}
	return dir
}

// writeFakeEnv builds an environment directory whose interpreter is a
// shell wrapper, so the full launch path can run without Python.
func writeFakeEnv(t *testing.T) string {
	t.Helper()
	env := t.TempDir()
	python := filepath.Join(env, "bin", "python")
	if err := os.MkdirAll(filepath.Dir(python), 0o755); err != nil {
		t.Fatalf("mkdirall: %v", err)
	}
	if err := os.WriteFile(python, []byte("#!/bin/sh\nexec /bin/sh \"$@\"\n"), 0o755); err != nil {
		t.Fatalf("writefile: %v", err)
	}
	return env
}

func TestSupervisor_ExitCodePropagation(t *testing.T) {
	skipOnWindows(t)
	backend := writeBackend(t, "exit 7\n")
	var buf bytes.Buffer

	sup := &Supervisor{Logger: testLogger(&buf)}
	if err := sup.Start("/bin/sh", backend, nil); err != nil {
		t.Fatalf("start: %v", err)
	}
	if got := sup.State(); got != StateRunning {
		t.Fatalf("expected running, got %v", got)
	}
	if code := sup.Wait(); code != 7 {
		t.Fatalf("expected exit code 7, got %d", code)
	}
	if got := sup.State(); got != StateExited {
		t.Fatalf("expected exited, got %v", got)
	}
}

func TestSupervisor_SignalForwarding(t *testing.T) {
	skipOnWindows(t)
	backend := writeBackend(t, "trap 'exit 42' TERM\n: > ready\nwhile :; do sleep 0.1; done\n")
	var buf bytes.Buffer

	sup := &Supervisor{Logger: testLogger(&buf)}
	if err := sup.Start("/bin/sh", backend, nil); err != nil {
		t.Fatalf("start: %v", err)
	}

	ready := filepath.Join(backend, "ready")
	deadline := time.Now().Add(5 * time.Second)
	for {
		if _, err := os.Stat(ready); err == nil {
			break
		}
		if time.Now().After(deadline) {
			t.Fatalf("child never became ready")
		}
		time.Sleep(10 * time.Millisecond)
	}

	sup.Forward(syscall.SIGTERM)
	if code := sup.Wait(); code != 42 {
		t.Fatalf("expected trap exit code 42, got %d", code)
	}
}

func TestSupervisor_SpawnFailure(t *testing.T) {
	skipOnWindows(t)
	backend := writeBackend(t, "exit 0\n")
	var buf bytes.Buffer

	sup := &Supervisor{Logger: testLogger(&buf)}
	err := sup.Start(filepath.Join(t.TempDir(), "no-such-python"), backend, nil)
	if !errors.Is(err, ErrSpawn) {
		t.Fatalf("expected ErrSpawn, got %v", err)
	}
	if got := sup.State(); got != StateFailed {
		t.Fatalf("expected failed, got %v", got)
	}
}

func TestSupervisor_ForwardOutsideRunningIsNoop(t *testing.T) {
	var buf bytes.Buffer
	sup := &Supervisor{Logger: testLogger(&buf)}
	// Idle: nothing to signal, must not panic.
	sup.Forward(syscall.SIGTERM)
}

func TestRun_PassesChildEnv(t *testing.T) {
	skipOnWindows(t)
	backend := writeBackend(t, `printf '%s|%s' "${WEBSSH_PORT-unset}" "${WEBSSH_CONFIG-unset}" > out.txt`+"\n")
	env := writeFakeEnv(t)
	var buf bytes.Buffer

	code, err := Run(testLogger(&buf), env, backend, LaunchConfig{Port: "9000", ConfigPath: "/tmp/cfg.json"})
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if code != 0 {
		t.Fatalf("expected exit 0, got %d", code)
	}
	out, err := os.ReadFile(filepath.Join(backend, "out.txt"))
	if err != nil {
		t.Fatalf("readfile: %v", err)
	}
	if got := strings.TrimSpace(string(out)); got != "9000|/tmp/cfg.json" {
		t.Fatalf("unexpected child env: %q", got)
	}
}

func TestRun_DefaultPortVariableAbsent(t *testing.T) {
	skipOnWindows(t)
	backend := writeBackend(t, `printf '%s' "${WEBSSH_PORT-unset}" > out.txt`+"\n")
	env := writeFakeEnv(t)
	var buf bytes.Buffer

	code, err := Run(testLogger(&buf), env, backend, LaunchConfig{Port: DefaultPort})
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if code != 0 {
		t.Fatalf("expected exit 0, got %d", code)
	}
	out, _ := os.ReadFile(filepath.Join(backend, "out.txt"))
	if got := strings.TrimSpace(string(out)); got != "unset" {
		t.Fatalf("expected WEBSSH_PORT to be absent, got %q", got)
	}
}

func TestRun_MissingEnvironmentIsFatal(t *testing.T) {
	backend := t.TempDir()
	var buf bytes.Buffer

	code, err := Run(testLogger(&buf), filepath.Join(t.TempDir(), "venv"), backend, LaunchConfig{Port: "9000"})
	if !errors.Is(err, ErrEnvironmentMissing) {
		t.Fatalf("expected ErrEnvironmentMissing, got %v", err)
	}
	if code != 1 {
		t.Fatalf("expected code 1, got %d", code)
	}
}
