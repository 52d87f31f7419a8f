package launcher

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/log"
)

// RuntimeCandidate is one interpreter invocation name tried during
// runtime detection.
type RuntimeCandidate struct {
	Name string
}

// Probe invokes the candidate with a version query and reports
// whether it exists and speaks the required major version. Probing
// has no side effects beyond the child process itself.
func (c RuntimeCandidate) Probe(r Runner) bool {
	out, err := r.Capture(c.Name, "--version")
	if err != nil {
		return false
	}
	return strings.HasPrefix(strings.TrimSpace(out), "Python 3.")
}

// DefaultRuntimeCandidates is the ordered fallback chain: python3 is
// the canonical name on most distributions, bare python covers hosts
// where 3 is the only installed interpreter.
func DefaultRuntimeCandidates() []RuntimeCandidate {
	return []RuntimeCandidate{{Name: "python3"}, {Name: "python"}}
}

// DetectRuntime returns the name of the first candidate that probes
// successfully. There are no retries; the candidate list is the only
// fallback.
func DetectRuntime(r Runner, logger *log.Logger, candidates []RuntimeCandidate) (string, error) {
	for _, c := range candidates {
		if c.Probe(r) {
			logger.Debug("runtime detected", "python", c.Name)
			return c.Name, nil
		}
		logger.Debug("runtime candidate rejected", "python", c.Name)
	}
	return "", fmt.Errorf("%w: tried %s; install Python 3 and re-run", ErrRuntimeNotFound, candidateNames(candidates))
}

func candidateNames(candidates []RuntimeCandidate) string {
	names := make([]string, 0, len(candidates))
	for _, c := range candidates {
		names = append(names, c.Name)
	}
	return strings.Join(names, ", ")
}
