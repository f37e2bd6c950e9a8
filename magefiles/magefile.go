//go:build mage

// Package main contains Mage build targets for report-runner developer tooling.
package main

import (
	"bufio"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

const (
	binDir  = "bin"
	binName = "report-runner"
	cmdPkg  = "./cmd/report-runner"
)

// binPath returns bin/report-runner with the platform executable suffix.
func binPath() string {
	name := binName
	if runtime.GOOS == "windows" {
		name += ".exe"
	}
	return filepath.Join(binDir, name)
}

// Build compiles the CLI binary into bin/. VERSION overrides the embedded version.
func Build() error {
	if err := os.MkdirAll(binDir, 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", binDir, err)
	}
	version := os.Getenv("VERSION")
	if version == "" {
		version = "dev"
	}
	out := binPath()
	if err := sh.RunV("go", "build", "-ldflags", "-X main.version="+version, "-o", out, cmdPkg); err != nil {
		return fmt.Errorf("go build: %w", err)
	}
	fmt.Printf("Built %s\n", out)
	return nil
}

// Test runs the unit tests.
func Test() error {
	return sh.RunV("go", "test", "./...")
}

// Run installs the binary next to the notebook and launches that copy, so the
// run happens in NOTEBOOK_DIR as it would for a user.
func Run() error {
	mg.Deps(Install)
	dst, err := installPath()
	if err != nil {
		return err
	}
	return sh.RunV(dst)
}

// Install copies the binary next to the report notebook. NOTEBOOK_DIR names
// the directory holding report.ipynb.
func Install() error {
	mg.Deps(Build)

	dst, err := installPath()
	if err != nil {
		return err
	}
	if _, err := os.Stat(filepath.Join(filepath.Dir(dst), "report.ipynb")); err != nil {
		fmt.Printf("warning: report.ipynb not found in %s\n", filepath.Dir(dst))
	}
	if err := sh.Copy(dst, binPath()); err != nil {
		return fmt.Errorf("copying to %s: %w", dst, err)
	}
	if err := os.Chmod(dst, 0o755); err != nil {
		return fmt.Errorf("marking %s executable: %w", dst, err)
	}
	fmt.Printf("Installed %s\n", dst)
	return nil
}

// installPath returns where Install places the binary.
func installPath() (string, error) {
	dir := os.Getenv("NOTEBOOK_DIR")
	if dir == "" {
		return "", fmt.Errorf("NOTEBOOK_DIR must name the directory holding report.ipynb")
	}
	return filepath.Join(dir, filepath.Base(binPath())), nil
}

// Stats prints project metrics: Go production and test LOC.
func Stats() error {
	prodLines, err := countGoLines(".", false)
	if err != nil {
		return err
	}
	testLines, err := countGoLines(".", true)
	if err != nil {
		return err
	}

	fmt.Printf("Lines of code (Go, production): %d\n", prodLines)
	fmt.Printf("Lines of code (Go, tests):      %d\n", testLines)
	return nil
}

// countGoLines walks the tree and counts non-blank lines in Go files: only
// _test.go files when testOnly is set, only non-test files otherwise.
func countGoLines(root string, testOnly bool) (int, error) {
	total := 0
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if d.Name() == "_examples" || d.Name() == ".git" {
				return filepath.SkipDir
			}
			return nil
		}
		if filepath.Ext(path) != ".go" || strings.HasSuffix(path, "_test.go") != testOnly {
			return nil
		}
		n, err := countNonBlank(path)
		total += n
		return err
	})
	return total, err
}

func countNonBlank(path string) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("reading %s: %w", path, err)
	}
	defer f.Close()

	n := 0
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		if strings.TrimSpace(sc.Text()) != "" {
			n++
		}
	}
	if err := sc.Err(); err != nil {
		return n, fmt.Errorf("reading %s: %w", path, err)
	}
	return n, nil
}
