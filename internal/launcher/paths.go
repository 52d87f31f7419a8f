package launcher

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// resolveBackendDir locates the directory holding the backend entry
// point. Priority: --backend flag, WEBSSH_HOME, config backend_dir,
// cwd if main.py present, executable dir if main.py present, then the
// installed share directories.
func resolveBackendDir(opts *Options) (string, error) {
	if strings.TrimSpace(opts.Backend) != "" {
		return absBackend(opts.Backend)
	}
	if env := strings.TrimSpace(os.Getenv("WEBSSH_HOME")); env != "" {
		return absBackend(env)
	}
	cfg, err := readConfig()
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(cfg.BackendDir) != "" {
		return absBackend(cfg.BackendDir)
	}

	hasEntry := func(dir string) bool {
		_, err := os.Stat(filepath.Join(dir, BackendEntry))
		return err == nil
	}

	if wd, err := os.Getwd(); err == nil {
		if abs, err := filepath.Abs(wd); err == nil && hasEntry(abs) {
			return abs, nil
		}
	}
	if exe, err := os.Executable(); err == nil {
		if dir, err := filepath.Abs(filepath.Dir(exe)); err == nil && hasEntry(dir) {
			return dir, nil
		}
	}

	// Default locations for installed backend assets.
	if xdg := strings.TrimSpace(os.Getenv("XDG_DATA_HOME")); xdg != "" {
		if dir := filepath.Join(expandUser(xdg), "webssh"); hasEntry(dir) {
			return dir, nil
		}
	}
	if home := strings.TrimSpace(os.Getenv("HOME")); home != "" {
		if dir := filepath.Join(expandUser(home), ".local", "share", "webssh"); hasEntry(dir) {
			return dir, nil
		}
	}
	for _, dir := range []string{
		"/usr/local/share/webssh",
		"/usr/share/webssh",
	} {
		if hasEntry(dir) {
			return dir, nil
		}
	}

	return "", errors.New("cannot locate backend (" + BackendEntry + "); set --backend / WEBSSH_HOME or install assets to /usr/local/share/webssh (or ~/.local/share/webssh)")
}

func absBackend(p string) (string, error) {
	abs, err := filepath.Abs(expandUser(p))
	if err != nil {
		return "", err
	}
	if _, err := os.Stat(filepath.Join(abs, BackendEntry)); err != nil {
		return "", fmt.Errorf("backend entry %s not found under %s", BackendEntry, abs)
	}
	return abs, nil
}

// resolveEnvDir picks the virtual environment directory. Priority:
// --env-dir flag, WEBSSH_ENV, config env_dir, then the XDG data dir
// default. The directory need not exist yet; setup creates it and
// launch verifies it.
func resolveEnvDir(opts *Options) (string, error) {
	if strings.TrimSpace(opts.EnvDir) != "" {
		return filepath.Abs(expandUser(opts.EnvDir))
	}
	if env := strings.TrimSpace(os.Getenv("WEBSSH_ENV")); env != "" {
		return filepath.Abs(expandUser(env))
	}
	cfg, err := readConfig()
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(cfg.EnvDir) != "" {
		return filepath.Abs(expandUser(cfg.EnvDir))
	}
	if xdg := strings.TrimSpace(os.Getenv("XDG_DATA_HOME")); xdg != "" {
		return filepath.Abs(filepath.Join(expandUser(xdg), "webssh", "venv"))
	}
	return filepath.Abs(expandUser("~/.local/share/webssh/venv"))
}
