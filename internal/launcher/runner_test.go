package launcher

import (
	"bytes"
	"fmt"

	"github.com/charmbracelet/log"
)

// fakeRunner records Run invocations and answers Capture probes from
// a canned table keyed by command name.
type fakeRunner struct {
	captures map[string]fakeProbe
	probed   []string
	runs     [][]string
	runErr   error
}

type fakeProbe struct {
	out string
	err error
}

func (f *fakeRunner) Run(dir string, name string, args ...string) error {
	f.runs = append(f.runs, append([]string{name}, args...))
	return f.runErr
}

func (f *fakeRunner) Capture(name string, args ...string) (string, error) {
	f.probed = append(f.probed, name)
	p, ok := f.captures[name]
	if !ok {
		return "", fmt.Errorf("exec: %q: executable file not found in $PATH", name)
	}
	return p.out, p.err
}

// testLogger returns a debug-level logger writing into buf so tests
// can assert on emitted diagnostics.
func testLogger(buf *bytes.Buffer) *log.Logger {
	logger := log.New(buf)
	logger.SetLevel(log.DebugLevel)
	return logger
}
