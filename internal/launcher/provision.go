package launcher

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/log"
)

// Deps is the fixed dependency set installed into every provisioned
// environment. It must match what the backend imports at startup.
var Deps = []string{"fastapi", "uvicorn", "qrcode"}

// Provisioner builds the isolated environment the supervisor launches
// from: a virtual environment plus the backend's dependency set.
type Provisioner struct {
	Runner    Runner
	Logger    *log.Logger
	Runtime   string // detected interpreter invocation name
	Installer InstallerKind
}

// Provision creates envDir as a virtual environment and installs the
// dependency set with the selected installer. Both steps stream their
// output to the user. Failure of either step is fatal and leaves
// envDir as-is; webssh setup --recreate is the recovery path.
func (p Provisioner) Provision(envDir string) error {
	p.Logger.Info("creating virtual environment", "dir", envDir, "python", p.Runtime)
	if err := p.Runner.Run("", p.Runtime, "-m", "venv", envDir); err != nil {
		return fmt.Errorf("%w: create venv: %v", ErrProvisioningFailed, err)
	}
	return p.InstallDeps(envDir)
}

// InstallDeps installs the dependency set into an existing envDir.
func (p Provisioner) InstallDeps(envDir string) error {
	p.Logger.Info("installing dependencies",
		"installer", p.Installer.String(),
		"packages", strings.Join(Deps, ", "))

	var err error
	switch p.Installer {
	case InstallerAccelerated:
		// uv targets the venv through --python and needs no
		// per-platform path resolution of its own.
		python := hostProfile().Interpreter(envDir)
		args := append([]string{"pip", "install", "--python", python}, Deps...)
		err = p.Runner.Run("", "uv", args...)
	default:
		pip, perr := resolvePip(envDir)
		if perr != nil {
			return fmt.Errorf("%w: %v", ErrProvisioningFailed, perr)
		}
		err = p.Runner.Run("", pip, append([]string{"install"}, Deps...)...)
	}
	if err != nil {
		return fmt.Errorf("%w: install dependencies: %v", ErrProvisioningFailed, err)
	}
	return nil
}
