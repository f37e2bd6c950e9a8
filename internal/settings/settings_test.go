// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package settings

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeInputs creates every input spreadsheet and the output directory under dir.
func writeInputs(t *testing.T, dir string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "data"), 0o755))
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "out"), 0o755))
	for _, key := range fileKeys {
		writeFile(t, filepath.Join(dir, "data"), key+".xlsx", "x")
	}
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
	return p
}

const validConfig = `root: &root "data/"
paths:
  base: !join [*root, "base.xlsx"]
  cadastro: !join [*root, "cadastro.xlsx"]
  gka_por_segmento: !join [*root, "gka_por_segmento.xlsx"]
  lista_gka: !join [*root, "lista_gka.xlsx"]
  portfolio: data/portfolio.xlsx
  oem: data/oem.xlsx
  sellin: data/sellin.xlsx
  output_path: out
ui:
  colors: ["#003366", "#FF9900"]
outputs:
  file_name: ["report.xlsx"]
`

func TestLoadValid(t *testing.T) {
	dir := t.TempDir()
	writeInputs(t, dir)
	cfg := writeFile(t, dir, "config.yaml", validConfig)

	s, err := Load(cfg)
	require.NoError(t, err)

	assert.Equal(t, cfg, s.Source)
	assert.Len(t, s.Files, len(fileKeys))
	assert.Equal(t, filepath.Join(dir, "data", "base.xlsx"), s.Files["base"])
	assert.Equal(t, filepath.Join(dir, "data", "sellin.xlsx"), s.Files["sellin"])
	assert.Equal(t, filepath.Join(dir, "out"), s.OutputDir)
	assert.Equal(t, []string{"#003366", "#FF9900"}, s.Colors)
	assert.Equal(t, []string{"report.xlsx"}, s.OutputNames)
	for _, p := range s.Files {
		assert.True(t, filepath.IsAbs(p), "%s should be absolute", p)
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name       string
		config     string
		wantFields []string
		wantErr    string
	}{
		{
			name:       "incomplete paths",
			config:     "paths:\n  base: data/base.xlsx\n  output_path: out\n",
			wantFields: []string{"cadastro", "gka_por_segmento", "lista_gka", "portfolio", "oem", "sellin"},
		},
		{
			name: "missing file and output is a file",
			config: `paths:
  base: data/base.xlsx
  cadastro: data/missing.xlsx
  gka_por_segmento: data/gka_por_segmento.xlsx
  lista_gka: data/lista_gka.xlsx
  portfolio: data/portfolio.xlsx
  oem: data/oem.xlsx
  sellin: data/sellin.xlsx
  output_path: data/base.xlsx
`,
			wantFields: []string{"cadastro", "output_path"},
		},
		{
			name:    "malformed yaml",
			config:  "paths: [unclosed\n",
			wantErr: "parsing settings",
		},
		{
			name:    "join on a mapping",
			config:  "paths:\n  base: !join {a: b}\n",
			wantErr: "expects a sequence",
		},
		{
			name:    "join with nested sequence",
			config:  "paths:\n  base: !join [[a], b]\n",
			wantErr: "items must be scalars",
		},
		{
			name:       "empty file",
			config:     "",
			wantFields: append(FileKeys(), outputKey),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			writeInputs(t, dir)
			cfg := writeFile(t, dir, "config.yaml", tt.config)

			_, err := Load(cfg)
			require.Error(t, err)

			if tt.wantErr != "" {
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			var verr *ValidationError
			require.True(t, errors.As(err, &verr), "want ValidationError, got %T: %v", err, err)
			got := make([]string, len(verr.Fields))
			for i, f := range verr.Fields {
				got[i] = f.Field
			}
			assert.Equal(t, tt.wantFields, got)
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "ghost.yaml"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestLoadAbsolutePaths(t *testing.T) {
	dir := t.TempDir()
	writeInputs(t, dir)
	other := t.TempDir()
	cfg := writeFile(t, other, "config.yaml", `paths:
  base: `+filepath.Join(dir, "data", "base.xlsx")+`
  cadastro: `+filepath.Join(dir, "data", "cadastro.xlsx")+`
  gka_por_segmento: `+filepath.Join(dir, "data", "gka_por_segmento.xlsx")+`
  lista_gka: `+filepath.Join(dir, "data", "lista_gka.xlsx")+`
  portfolio: `+filepath.Join(dir, "data", "portfolio.xlsx")+`
  oem: `+filepath.Join(dir, "data", "oem.xlsx")+`
  sellin: `+filepath.Join(dir, "data", "sellin.xlsx")+`
  output_path: `+filepath.Join(dir, "out")+`
`)
	s, err := Load(cfg)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "data", "oem.xlsx"), s.Files["oem"])
}

func TestValidationErrorMessage(t *testing.T) {
	err := &ValidationError{Fields: []FieldError{
		{Field: "base", Message: "field required"},
		{Field: "oem", Message: "not a regular file"},
	}}
	assert.Equal(t, "invalid settings: base: field required; oem: not a regular file", err.Error())
}
