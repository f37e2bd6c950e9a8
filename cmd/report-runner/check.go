// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/pdiddy/report-runner/internal/safra"
	"github.com/pdiddy/report-runner/internal/settings"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Validate the report settings file",
	Long: `Check reads the report settings file (config.yaml next to the executable
by default), expands !join paths, and verifies that every input spreadsheet and
the output directory exist. It also prints the current crop-year month.`,
	Args: cobra.NoArgs,
	RunE: runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)
}

func runCheck(cmd *cobra.Command, args []string) error {
	cfg := runnerConfig()
	path := resolvePath(launcherDir(), cfg.Settings.File)
	return checkSettings(cmd.OutOrStdout(), path, time.Now())
}

// checkSettings validates the settings file at path and reports to w.
func checkSettings(w io.Writer, path string, now time.Time) error {
	s, err := settings.Load(path)
	if err != nil {
		var verr *settings.ValidationError
		switch {
		case errors.Is(err, settings.ErrNotFound):
			fmt.Fprintf(w, "ERROR: settings file not found at %s\n", path)
		case errors.As(err, &verr):
			fmt.Fprintln(w, "Settings failed validation:")
			for _, f := range verr.Fields {
				fmt.Fprintf(w, "  - %s: %s\n", f.Field, f.Message)
			}
		default:
			fmt.Fprintf(w, "ERROR: %v\n", err)
		}
		return errors.New("settings check failed")
	}

	fmt.Fprintf(w, "Settings: %s\n", s.Source)
	for _, key := range settings.FileKeys() {
		fmt.Fprintf(w, "  %-18s %s\n", key, s.Files[key])
	}
	fmt.Fprintf(w, "  %-18s %s\n", "output_path", s.OutputDir)
	fmt.Fprintf(w, "Crop-year month: %s\n", safra.Current(now))
	fmt.Fprintln(w, "All settings and files validated.")
	return nil
}
