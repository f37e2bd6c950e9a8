// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package notebook runs a Jupyter notebook in place through an external
// notebook-execution tool (jupyter nbconvert by default).
package notebook

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"time"

	"github.com/pdiddy/report-runner/pkg/types"
)

// executor abstracts command execution for testing.
type executor interface {
	LookPath(file string) (string, error)
	RunAttached(ctx context.Context, name string, args []string, stdout, stderr io.Writer) error
}

// defaultWaitDelay bounds how long Run waits for output pipes after the
// context is cancelled and the tool is killed.
const defaultWaitDelay = 5 * time.Second

// osExecutor is the production executor backed by os/exec.
type osExecutor struct {
	waitDelay time.Duration
}

func (o *osExecutor) LookPath(file string) (string, error) {
	return exec.LookPath(file)
}

func (o *osExecutor) RunAttached(ctx context.Context, name string, args []string, stdout, stderr io.Writer) error {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.WaitDelay = o.waitDelay
	cmd.Stdout = stdout
	cmd.Stderr = stderr
	return cmd.Run()
}

// exitCoder is satisfied by *exec.ExitError.
type exitCoder interface {
	ExitCode() int
}

// Runner executes notebooks with a given tool binary. The tool's output is
// passed through to stdout and stderr unchanged.
type Runner struct {
	tool   string
	exec   executor
	stdout io.Writer
	stderr io.Writer
}

var defaultExec = &osExecutor{waitDelay: defaultWaitDelay}

// NewRunner returns a Runner that invokes tool from PATH.
func NewRunner(tool string, stdout, stderr io.Writer) *Runner {
	return newRunner(tool, defaultExec, stdout, stderr)
}

func newRunner(tool string, exec executor, stdout, stderr io.Writer) *Runner {
	if tool == "" {
		tool = types.DefaultTool
	}
	return &Runner{tool: tool, exec: exec, stdout: stdout, stderr: stderr}
}

// Tool returns the binary name the runner invokes.
func (r *Runner) Tool() string { return r.tool }

// Args returns the tool arguments that convert notebook to notebook format,
// execute every cell, and overwrite the file in place.
func Args(notebook string) []string {
	return []string{"nbconvert", "--to", "notebook", "--execute", "--inplace", notebook}
}

// Execute runs notebook and waits for the tool to finish. The returned
// Outcome is always meaningful. The error, when non-nil, describes why the
// run failed and is for diagnostics only.
func (r *Runner) Execute(ctx context.Context, notebook string) (types.Outcome, error) {
	if _, err := r.exec.LookPath(r.tool); err != nil {
		return types.Outcome{ExitCode: types.ExitNotStarted},
			fmt.Errorf("%s not found on PATH: %w", r.tool, err)
	}

	err := r.exec.RunAttached(ctx, r.tool, Args(notebook), r.stdout, r.stderr)
	if err == nil {
		return types.Outcome{ExitCode: 0}, nil
	}

	var ec exitCoder
	if errors.As(err, &ec) && ec.ExitCode() > 0 {
		return types.Outcome{ExitCode: ec.ExitCode()},
			fmt.Errorf("%s exited with status %d: %w", r.tool, ec.ExitCode(), err)
	}
	return types.Outcome{ExitCode: types.ExitNotStarted},
		fmt.Errorf("running %s on %s: %w", r.tool, notebook, err)
}
