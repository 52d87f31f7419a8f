package launcher

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"os/signal"
	"sync"
	"syscall"

	"github.com/charmbracelet/log"
)

// ProcState tracks the supervised child's lifecycle. Exited and
// Failed are terminal; there is no transition out of either.
type ProcState int

const (
	StateIdle ProcState = iota
	StateSpawning
	StateRunning
	StateExited
	StateFailed
)

func (s ProcState) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateSpawning:
		return "spawning"
	case StateRunning:
		return "running"
	case StateExited:
		return "exited"
	case StateFailed:
		return "failed"
	}
	return "unknown"
}

// Supervisor owns the backend child process for one invocation: it
// spawns it, relays termination signals while it runs, and reports
// its exit code. It is not reusable across launches.
type Supervisor struct {
	Logger *log.Logger

	mu    sync.Mutex
	cmd   *exec.Cmd
	state ProcState
}

// Start spawns interpreter running the backend entry point in
// backendDir with extraEnv appended to the launcher's environment.
// stdio is inherited so the backend owns the terminal directly, with
// no buffering or interception.
func (s *Supervisor) Start(interpreter, backendDir string, extraEnv []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateIdle {
		return fmt.Errorf("supervisor already used (state %s)", s.state)
	}
	s.state = StateSpawning

	cmd := exec.Command(interpreter, BackendEntry)
	cmd.Dir = backendDir
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	cmd.Env = append(os.Environ(), extraEnv...)
	if err := cmd.Start(); err != nil {
		s.state = StateFailed
		return fmt.Errorf("%w: %v", ErrSpawn, err)
	}
	s.cmd = cmd
	s.state = StateRunning
	s.Logger.Debug("backend started", "pid", cmd.Process.Pid, "dir", backendDir)
	return nil
}

// Forward relays a signal to the child. Signals are delivered
// immediately and unconditionally, one per call, with no coalescing.
// Outside Running this is a no-op: the child is either gone or was
// never there.
func (s *Supervisor) Forward(sig os.Signal) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateRunning || s.cmd == nil || s.cmd.Process == nil {
		return
	}
	if err := s.cmd.Process.Signal(sig); err != nil {
		s.Logger.Debug("signal forward failed", "signal", sig, "err", err)
	}
}

// Wait blocks until the child exits and returns its exit code.
func (s *Supervisor) Wait() int {
	s.mu.Lock()
	cmd := s.cmd
	s.mu.Unlock()

	err := cmd.Wait()
	s.mu.Lock()
	defer s.mu.Unlock()
	if err == nil {
		s.state = StateExited
		return 0
	}
	var exit *exec.ExitError
	if errors.As(err, &exit) {
		s.state = StateExited
		return exit.ExitCode()
	}
	s.state = StateFailed
	s.Logger.Error("backend wait failed", "err", err)
	return 1
}

// State reports the child's current lifecycle state.
func (s *Supervisor) State() ProcState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Run performs a full supervised launch: verify the provisioned
// interpreter exists, spawn the backend, forward interruption and
// termination signals while it runs, and return its exit code.
func Run(logger *log.Logger, envDir, backendDir string, cfg LaunchConfig) (int, error) {
	interpreter, err := ResolveInterpreter(envDir)
	if err != nil {
		return 1, err
	}

	sup := &Supervisor{Logger: logger}
	if err := sup.Start(interpreter, backendDir, cfg.ChildEnv()); err != nil {
		return 1, err
	}

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigs)
	done := make(chan struct{})
	go func() {
		for {
			select {
			case sig := <-sigs:
				sup.Forward(sig)
			case <-done:
				return
			}
		}
	}()

	code := sup.Wait()
	close(done)
	return code, nil
}
