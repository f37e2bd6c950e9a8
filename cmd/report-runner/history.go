// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/pdiddy/report-runner/internal/history"
	"github.com/pdiddy/report-runner/pkg/types"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recent report runs",
	Long: `History lists the most recent launcher runs recorded in the run history
database, newest first. The number of runs shown is set by history.limit.`,
	Args: cobra.NoArgs,
	RunE: runHistory,
}

func init() {
	rootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, args []string) error {
	cfg := runnerConfig()

	store, err := history.Open(resolvePath(launcherDir(), cfg.History.Dir))
	if err != nil {
		return err
	}
	defer store.Close()

	runs, err := store.Recent(cmd.Context(), cfg.History.Limit)
	if err != nil {
		return err
	}
	writeHistory(cmd.OutOrStdout(), runs)
	return nil
}

func writeHistory(w io.Writer, runs []types.RunRecord) {
	if len(runs) == 0 {
		fmt.Fprintln(w, "No runs recorded.")
		return
	}

	table := tablewriter.NewWriter(w)
	table.Header("ID", "Started", "Duration", "Exit", "Result", "Crop year")
	for _, r := range runs {
		result := "failed"
		if r.Succeeded {
			result = "ok"
		}
		table.Append(
			strconv.FormatInt(r.ID, 10),
			r.StartedAt.Local().Format("2006-01-02 15:04:05"),
			r.Duration().Round(time.Second).String(),
			strconv.Itoa(r.ExitCode),
			result,
			r.CropYear,
		)
	}
	table.Render()
}
