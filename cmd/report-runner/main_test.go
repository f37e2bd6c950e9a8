// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/report-runner/pkg/types"
)

func TestResolvePath(t *testing.T) {
	base := filepath.Join(string(filepath.Separator), "opt", "report")
	abs := filepath.Join(string(filepath.Separator), "var", "lib", "runs")

	assert.Equal(t, filepath.Join(base, ".report-runner"), resolvePath(base, ".report-runner"))
	assert.Equal(t, abs, resolvePath(base, abs))
}

func TestVersionCommand(t *testing.T) {
	var out bytes.Buffer
	versionCmd.SetOut(&out)
	versionCmd.Run(versionCmd, nil)
	assert.Equal(t, "report-runner dev\n", out.String())
}

func TestRootRejectsArguments(t *testing.T) {
	require.Error(t, rootCmd.Args(rootCmd, []string{"other.ipynb"}))
	require.NoError(t, rootCmd.Args(rootCmd, nil))
}

func TestCheckSettings(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "out"), 0o755))
	for _, name := range []string{"base", "cadastro", "gka_por_segmento", "lista_gka", "portfolio", "oem", "sellin"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name+".xlsx"), []byte("x"), 0o644))
	}
	cfg := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(cfg, []byte(`paths:
  base: base.xlsx
  cadastro: cadastro.xlsx
  gka_por_segmento: gka_por_segmento.xlsx
  lista_gka: lista_gka.xlsx
  portfolio: portfolio.xlsx
  oem: oem.xlsx
  sellin: sellin.xlsx
  output_path: out
`), 0o644))

	var out bytes.Buffer
	err := checkSettings(&out, cfg, time.Date(2026, time.January, 5, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Contains(t, out.String(), "Crop-year month: 10")
	assert.Contains(t, out.String(), filepath.Join(dir, "sellin.xlsx"))
	assert.Contains(t, out.String(), "All settings and files validated.")
}

func TestCheckSettingsFailures(t *testing.T) {
	dir := t.TempDir()

	var out bytes.Buffer
	err := checkSettings(&out, filepath.Join(dir, "ghost.yaml"), time.Now())
	require.Error(t, err)
	assert.Contains(t, out.String(), "settings file not found")

	cfg := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(cfg, []byte("paths:\n  base: missing.xlsx\n"), 0o644))
	out.Reset()
	err = checkSettings(&out, cfg, time.Now())
	require.Error(t, err)
	assert.Contains(t, out.String(), "Settings failed validation:")
	assert.Contains(t, out.String(), "  - base: file not found in the specified directory")
	assert.Contains(t, out.String(), "  - output_path: field required")
}

func TestWriteHistory(t *testing.T) {
	var out bytes.Buffer
	writeHistory(&out, nil)
	assert.Equal(t, "No runs recorded.\n", out.String())

	start := time.Date(2026, time.October, 19, 9, 0, 0, 0, time.UTC)
	out.Reset()
	writeHistory(&out, []types.RunRecord{
		{ID: 2, StartedAt: start.Add(time.Hour), FinishedAt: start.Add(time.Hour + 3*time.Second), ExitCode: 1, CropYear: "7"},
		{ID: 1, StartedAt: start, FinishedAt: start.Add(2 * time.Minute), ExitCode: 0, Succeeded: true, CropYear: "7"},
	})
	s := out.String()
	assert.Contains(t, s, "failed")
	assert.Contains(t, s, "ok")
	assert.Contains(t, s, "2m0s")
	assert.Contains(t, s, "3s")
}
