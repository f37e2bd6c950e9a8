// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package settings loads and validates the report settings file shared with
// the notebook. The file lists the spreadsheets the report reads and the
// directory it writes to; every listed path must exist before a report can run.
package settings

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.yaml.in/yaml/v3"
)

// joinTag concatenates the scalar items of a sequence, e.g.
// `base: !join [*root, "/base.xlsx"]`.
const joinTag = "!join"

// ErrNotFound is returned when the settings file does not exist.
var ErrNotFound = errors.New("settings file not found")

// Input file keys under "paths", in report order.
var fileKeys = []string{
	"base",
	"cadastro",
	"gka_por_segmento",
	"lista_gka",
	"portfolio",
	"oem",
	"sellin",
}

const outputKey = "output_path"

// fileDoc is the on-disk layout of the settings file.
type fileDoc struct {
	Paths   map[string]string `yaml:"paths"`
	UI      uiDoc             `yaml:"ui"`
	Outputs outputsDoc        `yaml:"outputs"`
}

type uiDoc struct {
	Colors []string `yaml:"colors"`
}

type outputsDoc struct {
	FileName []string `yaml:"file_name"`
}

// Settings is a validated settings file with absolute paths.
type Settings struct {
	// Source is the absolute path of the settings file.
	Source string

	// Files maps each input key (base, cadastro, ...) to an existing file.
	Files map[string]string

	// OutputDir is an existing directory the report writes to.
	OutputDir string

	Colors      []string
	OutputNames []string
}

// FileKeys returns the input keys in report order.
func FileKeys() []string {
	return append([]string(nil), fileKeys...)
}

// FieldError describes one invalid entry under "paths".
type FieldError struct {
	Field   string
	Message string
}

// ValidationError collects every invalid path entry.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	parts := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		parts[i] = f.Field + ": " + f.Message
	}
	return "invalid settings: " + strings.Join(parts, "; ")
}

// Load reads the settings file at path, expands !join tags, and checks that
// every input file and the output directory exist. Relative paths resolve
// against the settings file's directory.
func Load(path string) (*Settings, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolving %s: %w", path, err)
	}

	data, err := os.ReadFile(abs)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, abs)
		}
		return nil, fmt.Errorf("reading settings %s: %w", abs, err)
	}

	doc, err := parse(data)
	if err != nil {
		return nil, fmt.Errorf("parsing settings %s: %w", abs, err)
	}

	base := filepath.Dir(abs)
	s := &Settings{
		Source:      abs,
		Files:       make(map[string]string, len(fileKeys)),
		Colors:      doc.UI.Colors,
		OutputNames: doc.Outputs.FileName,
	}

	var verr ValidationError
	for _, key := range fileKeys {
		p, msg := checkPath(base, doc.Paths[key], false)
		if msg != "" {
			verr.Fields = append(verr.Fields, FieldError{Field: key, Message: msg})
			continue
		}
		s.Files[key] = p
	}
	if p, msg := checkPath(base, doc.Paths[outputKey], true); msg != "" {
		verr.Fields = append(verr.Fields, FieldError{Field: outputKey, Message: msg})
	} else {
		s.OutputDir = p
	}

	if len(verr.Fields) > 0 {
		return nil, &verr
	}
	return s, nil
}

// checkPath resolves raw against base and returns the absolute path, or a
// message explaining why the entry is invalid.
func checkPath(base, raw string, wantDir bool) (string, string) {
	if strings.TrimSpace(raw) == "" {
		return "", "field required"
	}
	p := raw
	if !filepath.IsAbs(p) {
		p = filepath.Join(base, p)
	}
	info, err := os.Stat(p)
	if err != nil {
		if wantDir {
			return "", "directory not found"
		}
		return "", "file not found in the specified directory"
	}
	switch {
	case wantDir && !info.IsDir():
		return "", "not a directory"
	case !wantDir && !info.Mode().IsRegular():
		return "", "not a regular file"
	}
	return filepath.Clean(p), ""
}

func parse(data []byte) (*fileDoc, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, err
	}
	if err := expandJoins(&root); err != nil {
		return nil, err
	}
	var doc fileDoc
	if root.Kind == 0 {
		return &doc, nil
	}
	if err := root.Decode(&doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

// expandJoins rewrites every !join sequence into a plain string scalar.
// Aliases inside the sequence resolve to their anchored scalar.
func expandJoins(n *yaml.Node) error {
	if n.Tag == joinTag {
		if n.Kind != yaml.SequenceNode {
			return fmt.Errorf("line %d: %s expects a sequence", n.Line, joinTag)
		}
		var b strings.Builder
		for _, item := range n.Content {
			if item.Kind == yaml.AliasNode {
				item = item.Alias
			}
			if item.Kind != yaml.ScalarNode {
				return fmt.Errorf("line %d: %s items must be scalars", item.Line, joinTag)
			}
			b.WriteString(item.Value)
		}
		n.Kind = yaml.ScalarNode
		n.Tag = "!!str"
		n.Value = b.String()
		n.Content = nil
		return nil
	}
	for _, c := range n.Content {
		if err := expandJoins(c); err != nil {
			return err
		}
	}
	return nil
}
