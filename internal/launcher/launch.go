package launcher

// LaunchConfig is the per-invocation backend launch configuration
// parsed from the command line. Immutable after parsing.
//
// Port is kept as a string and passed through without validation;
// the backend performs its own parsing. Tests guard this gap.
type LaunchConfig struct {
	Port       string
	ConfigPath string // optional backend config file
}

// ChildEnv projects the config onto environment variables for the
// backend. A variable is set only when the value departs from the
// backend's own default: the backend treats absence as "use default",
// so exporting WEBSSH_PORT=8765 would change its meaning.
func (c LaunchConfig) ChildEnv() []string {
	var env []string
	if c.Port != DefaultPort {
		env = append(env, EnvPort+"="+c.Port)
	}
	if c.ConfigPath != "" {
		env = append(env, EnvConfig+"="+c.ConfigPath)
	}
	return env
}
