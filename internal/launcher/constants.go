package launcher

const (
	// DefaultPort is the backend's built-in listen port. The launcher
	// exports WEBSSH_PORT only when the requested port differs.
	DefaultPort = "8765"

	EnvPort   = "WEBSSH_PORT"
	EnvConfig = "WEBSSH_CONFIG"

	// BackendEntry is the backend entry point inside the backend directory.
	BackendEntry = "main.py"
)
