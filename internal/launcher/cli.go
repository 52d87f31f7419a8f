package launcher

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

// Options carries the persistent flags shared by every subcommand.
type Options struct {
	Backend string
	EnvDir  string
	Verbose bool
}

// exitCodeError carries the backend's exit code through cobra's error
// path so Main can propagate it verbatim as the launcher's own.
type exitCodeError struct{ code int }

func (e *exitCodeError) Error() string {
	return fmt.Sprintf("backend exited with code %d", e.code)
}

func Main() int {
	logger := log.New(os.Stderr)
	root := newRootCmd(logger)
	if err := root.Execute(); err != nil {
		var ec *exitCodeError
		if errors.As(err, &ec) {
			// The backend already reported whatever went wrong.
			return ec.code
		}
		fmt.Fprintln(os.Stderr, err.Error())
		return 1
	}
	return 0
}

func newRootCmd(logger *log.Logger) *cobra.Command {
	opts := &Options{}
	var port, configPath string

	root := &cobra.Command{
		Use:   "webssh",
		Short: "Launch the webssh terminal backend",
		Long: strings.TrimSpace(`
Launch the webssh terminal backend under supervision.

The backend runs from an isolated Python virtual environment. Provision
it once per machine:
  webssh setup

Then launch (this command). The launcher forwards SIGINT/SIGTERM to the
backend and exits with the backend's own exit code.

Defaults can be overridden via env vars:
  WEBSSH_HOME  backend directory containing main.py
  WEBSSH_ENV   virtual environment directory
`),
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if opts.Verbose {
				logger.SetLevel(log.DebugLevel)
			}
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			backendDir, err := resolveBackendDir(opts)
			if err != nil {
				return err
			}
			envDir, err := resolveEnvDir(opts)
			if err != nil {
				return err
			}
			cfg := LaunchConfig{Port: port, ConfigPath: configPath}
			code, err := Run(logger, envDir, backendDir, cfg)
			if err != nil {
				return err
			}
			if code != 0 {
				return &exitCodeError{code: code}
			}
			return nil
		},
	}

	root.PersistentFlags().StringVar(&opts.Backend, "backend", "", "Backend directory containing "+BackendEntry+" (overrides WEBSSH_HOME)")
	root.PersistentFlags().StringVar(&opts.EnvDir, "env-dir", "", "Virtual environment directory (overrides WEBSSH_ENV)")
	root.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "Enable debug logging")

	root.Flags().StringVarP(&port, "port", "p", DefaultPort, "Backend listen port")
	root.Flags().StringVarP(&configPath, "config", "c", "", "Backend config file path")

	root.AddCommand(newSetupCmd(logger, opts))
	root.AddCommand(newStatusCmd(logger, opts))
	root.AddCommand(newConfigCmd())

	return root
}

func newSetupCmd(logger *log.Logger, opts *Options) *cobra.Command {
	var recreate bool
	var yes bool

	cmd := &cobra.Command{
		Use:   "setup",
		Short: "Provision the backend's virtual environment",
		Long: strings.TrimSpace(`
Provision the isolated environment the backend runs from.

Detects a Python 3 runtime (python3, then python), selects uv when
available (pip otherwise), creates the virtual environment, and
installs the backend dependencies: ` + strings.Join(Deps, ", ") + `.

An existing environment is reused; only the dependency install is
re-run. Pass --recreate to delete and rebuild it from scratch.

A failed run leaves the directory in place (no rollback). Recover with:
  webssh setup --recreate
`),
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			envDir, err := resolveEnvDir(opts)
			if err != nil {
				return err
			}
			r := execRunner{}

			exists := Provisioned(envDir)
			if exists && recreate {
				if !yes {
					if !isTTY() {
						return errors.New("refusing to --recreate without a TTY; re-run with --yes")
					}
					fmt.Fprintf(os.Stderr, "This deletes %s and rebuilds it.\n", envDir)
					fmt.Fprint(os.Stderr, "Type yes to continue: ")
					line, _ := bufio.NewReader(os.Stdin).ReadString('\n')
					if strings.TrimSpace(line) != "yes" {
						fmt.Fprintln(os.Stderr, "Aborted.")
						return nil
					}
				}
				if err := os.RemoveAll(envDir); err != nil {
					return fmt.Errorf("failed to remove %s: %w", envDir, err)
				}
				exists = false
			}

			name, err := DetectRuntime(r, logger, DefaultRuntimeCandidates())
			if err != nil {
				return err
			}
			p := Provisioner{
				Runner:    r,
				Logger:    logger,
				Runtime:   name,
				Installer: SelectInstaller(r, logger),
			}

			if exists {
				logger.Info("environment already provisioned; refreshing dependencies", "dir", envDir)
				err = p.InstallDeps(envDir)
			} else {
				err = p.Provision(envDir)
			}
			if err != nil {
				return err
			}

			python, err := ResolveInterpreter(envDir)
			if err != nil {
				return err
			}
			fmt.Printf("OK: environment ready\n")
			fmt.Printf("env:    %s\n", envDir)
			fmt.Printf("python: %s\n", python)
			return nil
		},
	}

	cmd.Flags().BoolVar(&recreate, "recreate", false, "Delete and rebuild the environment if it already exists")
	cmd.Flags().BoolVar(&yes, "yes", false, "Skip the --recreate confirmation prompt (for scripts)")
	return cmd
}

func newStatusCmd(logger *log.Logger, opts *Options) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show backend, environment, and toolchain status",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			envDir, err := resolveEnvDir(opts)
			if err != nil {
				return err
			}
			r := execRunner{}

			if backendDir, err := resolveBackendDir(opts); err == nil {
				fmt.Printf("backend:     %s\n", backendDir)
			} else {
				fmt.Printf("backend:     (missing) %v\n", err)
			}

			fmt.Printf("env:         %s\n", envDir)
			if python, err := ResolveInterpreter(envDir); err == nil {
				fmt.Printf("interpreter: %s\n", python)
				fmt.Printf("provisioned: yes\n")
			} else {
				fmt.Printf("provisioned: no (run: webssh setup)\n")
			}

			if name, err := DetectRuntime(r, logger, DefaultRuntimeCandidates()); err == nil {
				fmt.Printf("runtime:     %s\n", name)
			} else {
				fmt.Printf("runtime:     (none found)\n")
			}
			fmt.Printf("installer:   %s\n", SelectInstaller(r, logger))
			return nil
		},
	}
}

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage launcher configuration",
	}

	showCmd := &cobra.Command{
		Use:   "show",
		Short: "Show current launcher configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := readConfig()
			if err != nil {
				return err
			}
			fmt.Printf("config:      %s\n", configPath())
			fmt.Printf("env_dir:     %s\n", strings.TrimSpace(cfg.EnvDir))
			fmt.Printf("backend_dir: %s\n", strings.TrimSpace(cfg.BackendDir))
			return nil
		},
	}

	setEnvDirCmd := &cobra.Command{
		Use:   "set-env-dir <path>",
		Short: "Persist a virtual environment directory override",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p := strings.TrimSpace(args[0])
			if p == "" {
				return errors.New("env dir must not be empty")
			}
			cfg, err := readConfig()
			if err != nil {
				return err
			}
			cfg.EnvDir = p
			if err := writeConfig(cfg); err != nil {
				return err
			}
			fmt.Printf("OK: env_dir=%s\n", p)
			return nil
		},
	}

	setBackendCmd := &cobra.Command{
		Use:   "set-backend <path>",
		Short: "Persist a backend directory override",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			abs, err := absBackend(args[0])
			if err != nil {
				return err
			}
			cfg, err := readConfig()
			if err != nil {
				return err
			}
			cfg.BackendDir = abs
			if err := writeConfig(cfg); err != nil {
				return err
			}
			fmt.Printf("OK: backend_dir=%s\n", abs)
			return nil
		},
	}

	cmd.AddCommand(showCmd, setEnvDirCmd, setBackendCmd)
	return cmd
}
