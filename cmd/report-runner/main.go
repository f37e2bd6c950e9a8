// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the report-runner CLI. Run without
// arguments, it executes report.ipynb in place from the directory holding the
// executable and waits for a keypress before exiting.
package main

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/report-runner/internal/history"
	"github.com/pdiddy/report-runner/internal/launcher"
	"github.com/pdiddy/report-runner/internal/notebook"
	"github.com/pdiddy/report-runner/internal/pause"
	"github.com/pdiddy/report-runner/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// logger writes diagnostics to stderr; user-facing messages go to stdout.
var logger = log.NewWithOptions(os.Stderr, log.Options{Prefix: "report-runner"})

// rootCmd runs the report notebook. It accepts no arguments.
var rootCmd = &cobra.Command{
	Use:   "report-runner",
	Short: "Execute the report notebook in place",
	Long: `report-runner executes report.ipynb, located next to the executable,
through jupyter nbconvert. The notebook is overwritten with its results. A
success or failure message is printed and the program waits for a keypress.

Settings can be placed in report-runner.yaml next to the executable, in the
current directory, or in ~/.config/report-runner/, or given through
REPORT_RUNNER_* environment variables.`,
	Args:         cobra.NoArgs,
	SilenceUsage: true,
	RunE:         runLaunch,
}

func init() {
	cobra.OnInitialize(initConfig)
}

func initConfig() {
	d := types.DefaultRunnerConfig()
	viper.SetDefault("tool", d.Tool)
	viper.SetDefault("history.enabled", d.History.Enabled)
	viper.SetDefault("history.dir", d.History.Dir)
	viper.SetDefault("history.limit", d.History.Limit)
	viper.SetDefault("settings.file", d.Settings.File)
	viper.SetDefault("log.level", d.Log.Level)

	viper.SetEnvPrefix("REPORT_RUNNER")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if cfgFile := viper.GetString("config"); cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("report-runner")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(launcherDir())
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "report-runner"))
		}
	}

	if err := viper.ReadInConfig(); err == nil {
		logger.Debug("using config file", "path", viper.ConfigFileUsed())
	}

	if lvl, err := log.ParseLevel(viper.GetString("log.level")); err == nil {
		logger.SetLevel(lvl)
	} else {
		logger.Warn("unknown log level, keeping default", "level", viper.GetString("log.level"))
	}
}

// runnerConfig decodes the merged viper settings.
func runnerConfig() types.RunnerConfig {
	cfg := types.DefaultRunnerConfig()
	if err := viper.Unmarshal(&cfg); err != nil {
		logger.Warn("invalid configuration, using defaults", "err", err)
		return types.DefaultRunnerConfig()
	}
	return cfg
}

// launcherDir returns the executable's directory, falling back to the current
// directory when it cannot be determined.
func launcherDir() string {
	dir, err := launcher.ExecutableDir()
	if err == nil {
		return dir
	}
	logger.Warn("could not locate executable, using current directory", "err", err)
	if wd, err := os.Getwd(); err == nil {
		return wd
	}
	return "."
}

// resolvePath makes p absolute relative to base.
func resolvePath(base, p string) string {
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(base, p)
}

func runLaunch(cmd *cobra.Command, args []string) error {
	cfg := runnerConfig()
	dir := launcherDir()

	opts := launcher.Options{
		Dir:      dir,
		Executor: notebook.NewRunner(cfg.Tool, os.Stdout, os.Stderr),
		Waiter:   pause.ForStdin(os.Stdin, os.Stdout),
		Stdout:   os.Stdout,
		Logger:   logger,
	}

	if cfg.History.Enabled {
		store, err := history.Open(resolvePath(dir, cfg.History.Dir))
		if err != nil {
			logger.Warn("run history unavailable", "err", err)
		} else {
			defer store.Close()
			opts.Recorder = store
		}
	}

	// The outcome is reported only through the printed message; the process
	// exit status does not reflect it.
	if _, err := launcher.New(opts).Run(cmd.Context()); err != nil {
		logger.Error("launcher", "err", err)
	}
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
