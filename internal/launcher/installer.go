package launcher

import "github.com/charmbracelet/log"

// InstallerKind enumerates the dependency installers the provisioner
// knows how to drive.
type InstallerKind int

const (
	// InstallerStandard is pip, assumed available with any compatible runtime.
	InstallerStandard InstallerKind = iota
	// InstallerAccelerated is uv, preferred when present on the host.
	InstallerAccelerated
)

func (k InstallerKind) String() string {
	if k == InstallerAccelerated {
		return "uv"
	}
	return "pip"
}

// SelectInstaller probes for uv and falls back to pip unconditionally.
// pip ships alongside any compatible CPython, so there is no error
// path and no further probing here.
func SelectInstaller(r Runner, logger *log.Logger) InstallerKind {
	if _, err := r.Capture("uv", "--version"); err == nil {
		logger.Debug("installer selected", "installer", "uv")
		return InstallerAccelerated
	}
	logger.Debug("installer selected", "installer", "pip")
	return InstallerStandard
}
