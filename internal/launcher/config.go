package launcher

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

// AppConfig is the persisted launcher configuration. Every field is
// an optional override; zero values defer to flags, environment
// variables, and built-in defaults.
type AppConfig struct {
	EnvDir     string `toml:"env_dir"`
	BackendDir string `toml:"backend_dir"`
}

func configDir() string {
	if xdg := strings.TrimSpace(os.Getenv("XDG_CONFIG_HOME")); xdg != "" {
		return filepath.Join(expandUser(xdg), "webssh")
	}
	return expandUser("~/.config/webssh")
}

func configPath() string {
	return filepath.Join(configDir(), "config.toml")
}

// readConfig loads the launcher config. A missing file is not an
// error: the launcher works with defaults alone.
func readConfig() (AppConfig, error) {
	var cfg AppConfig
	data, err := os.ReadFile(configPath())
	if err != nil {
		if os.IsNotExist(err) {
			return AppConfig{}, nil
		}
		return AppConfig{}, fmt.Errorf("failed to read config file %s: %w", configPath(), err)
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return AppConfig{}, fmt.Errorf("failed to parse config file %s: %w", configPath(), err)
	}
	return cfg, nil
}

func writeConfig(cfg AppConfig) error {
	if err := os.MkdirAll(configDir(), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	b, err := toml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to encode config TOML: %w", err)
	}
	if len(b) == 0 || b[len(b)-1] != '\n' {
		b = append(b, '\n')
	}
	if err := os.WriteFile(configPath(), b, 0o600); err != nil {
		return fmt.Errorf("failed to write config file %s: %w", configPath(), err)
	}
	return nil
}
