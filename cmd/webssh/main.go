package main

import (
	"os"

	"github.com/nagiterm/webssh/internal/launcher"
)

// webssh is the launcher entrypoint: `webssh setup` provisions the
// backend's Python environment, a bare `webssh` runs the backend
// under supervision and exits with the backend's own exit code.
//
// Note: the CLI supports --backend / WEBSSH_HOME so an installed
// binary can locate the backend assets (typically installed under
// /usr/local/share/webssh) without embedding them.
func main() {
	os.Exit(launcher.Main())
}
