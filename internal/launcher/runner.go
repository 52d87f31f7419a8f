package launcher

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"time"
)

// Runner executes external commands. The real implementation spawns
// host processes; tests substitute a fake so probing and provisioning
// logic can be exercised without a Python toolchain on the machine.
type Runner interface {
	// Run executes a command with stdio inherited from the launcher so
	// the user sees runtime and installer output as it happens.
	Run(dir string, name string, args ...string) error
	// Capture executes a command and returns its combined output.
	// Used for probes; a non-nil error means the probe failed.
	Capture(name string, args ...string) (string, error)
}

type execRunner struct {
	Timeout time.Duration // bounds Capture; Run is unbounded (installs can be slow)
}

func (r execRunner) Run(dir string, name string, args ...string) error {
	c := exec.Command(name, args...)
	if dir != "" {
		c.Dir = dir
	}
	c.Stdin = os.Stdin
	c.Stdout = os.Stdout
	c.Stderr = os.Stderr
	return c.Run()
}

func (r execRunner) Capture(name string, args ...string) (string, error) {
	ctx, cancel := context.WithTimeout(context.Background(), orDefault(r.Timeout, 20*time.Second))
	defer cancel()
	c := exec.CommandContext(ctx, name, args...)
	var out bytes.Buffer
	c.Stdout = &out
	c.Stderr = &out
	err := c.Run()
	if err == nil {
		return out.String(), nil
	}
	msg := strings.TrimSpace(out.String())
	if msg == "" {
		return "", err
	}
	return out.String(), fmt.Errorf("%w: %s", err, msg)
}

func orDefault[T comparable](v T, def T) T {
	var zero T
	if v == zero {
		return def
	}
	return v
}
