package launcher

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
)

// PlatformProfile captures the executable layout conventions of a
// virtual environment on one platform family.
type PlatformProfile struct {
	BinDir    string // subdirectory holding executables
	ExeSuffix string // appended to executable names
}

var (
	posixProfile   = PlatformProfile{BinDir: "bin"}
	windowsProfile = PlatformProfile{BinDir: "Scripts", ExeSuffix: ".exe"}
)

// profiles lists layouts in probe order. POSIX is checked first on
// every platform; a venv created by an MSYS or WSL interpreter can
// carry a bin/ layout even on a Windows host.
var profiles = []PlatformProfile{posixProfile, windowsProfile}

func (p PlatformProfile) Interpreter(envDir string) string {
	return filepath.Join(envDir, p.BinDir, "python"+p.ExeSuffix)
}

func (p PlatformProfile) Pip(envDir string) string {
	return filepath.Join(envDir, p.BinDir, "pip"+p.ExeSuffix)
}

// ResolveInterpreter returns the provisioned interpreter inside
// envDir. A launch must never proceed when it is missing, so absence
// is reported as ErrEnvironmentMissing rather than falling back to a
// host interpreter.
func ResolveInterpreter(envDir string) (string, error) {
	for _, p := range profiles {
		bin := p.Interpreter(envDir)
		if _, err := os.Stat(bin); err == nil {
			return bin, nil
		}
	}
	return "", fmt.Errorf("%w: no interpreter under %s (run: webssh setup)", ErrEnvironmentMissing, envDir)
}

// Provisioned reports whether envDir already holds a usable interpreter.
func Provisioned(envDir string) bool {
	_, err := ResolveInterpreter(envDir)
	return err == nil
}

func resolvePip(envDir string) (string, error) {
	for _, p := range profiles {
		bin := p.Pip(envDir)
		if _, err := os.Stat(bin); err == nil {
			return bin, nil
		}
	}
	return "", fmt.Errorf("no pip under %s", envDir)
}

// hostProfile returns the profile for the running platform, used when
// constructing (not resolving) environment paths.
func hostProfile() PlatformProfile {
	if runtime.GOOS == "windows" {
		return windowsProfile
	}
	return posixProfile
}
