// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package launcher runs the report notebook from the launcher's own directory,
// reports success or failure in plain text, and waits for the user to
// acknowledge before returning.
package launcher

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"

	"github.com/pdiddy/report-runner/internal/pause"
	"github.com/pdiddy/report-runner/internal/safra"
	"github.com/pdiddy/report-runner/pkg/types"
)

// User-facing messages.
const (
	StartMessage   = "Starting report execution..."
	SuccessMessage = "Report executed successfully. " + types.NotebookFile + " was updated in place."
	FailureMessage = "ERROR: report execution failed. Check that the input paths in the settings file are correct and that the files are available."
)

// Executor runs a notebook in place.
type Executor interface {
	Tool() string
	Execute(ctx context.Context, notebook string) (types.Outcome, error)
}

// Recorder persists a finished run.
type Recorder interface {
	Record(ctx context.Context, r types.RunRecord) (int64, error)
}

// Options configures a Launcher. Dir, Executor and Waiter are required.
type Options struct {
	// Dir becomes the working directory before the notebook runs.
	Dir string

	Executor Executor
	Waiter   pause.Waiter

	// Recorder is optional; a nil Recorder disables run history.
	Recorder Recorder

	// Stdout receives the user-facing messages (default os.Stdout).
	Stdout io.Writer

	// Logger receives diagnostics (default: discarded).
	Logger *log.Logger

	// Chdir and Now default to os.Chdir and time.Now.
	Chdir func(string) error
	Now   func() time.Time

	// Notify derives the context the notebook runs under. The default cancels
	// it on os.Interrupt. The returned stop func is called before the pause,
	// so an interrupt at the prompt gets the default signal behaviour again.
	Notify func(context.Context) (context.Context, context.CancelFunc)
}

// Launcher executes the report notebook once per Run.
type Launcher struct {
	dir      string
	exec     Executor
	waiter   pause.Waiter
	recorder Recorder
	out      io.Writer
	logger   *log.Logger
	chdir    func(string) error
	now      func() time.Time
	notify   func(context.Context) (context.Context, context.CancelFunc)
}

// New builds a Launcher from opts, filling in defaults.
func New(opts Options) *Launcher {
	l := &Launcher{
		dir:      opts.Dir,
		exec:     opts.Executor,
		waiter:   opts.Waiter,
		recorder: opts.Recorder,
		out:      opts.Stdout,
		logger:   opts.Logger,
		chdir:    opts.Chdir,
		now:      opts.Now,
		notify:   opts.Notify,
	}
	if l.out == nil {
		l.out = os.Stdout
	}
	if l.logger == nil {
		l.logger = log.New(io.Discard)
	}
	if l.chdir == nil {
		l.chdir = os.Chdir
	}
	if l.now == nil {
		l.now = time.Now
	}
	if l.notify == nil {
		l.notify = func(ctx context.Context) (context.Context, context.CancelFunc) {
			return signal.NotifyContext(ctx, os.Interrupt)
		}
	}
	return l
}

// Run changes into the launcher directory, executes the notebook, prints the
// success or failure message, and waits for acknowledgment. The wait happens
// exactly once on every path. The returned error covers only the launcher's
// own steps (changing directory, waiting); a failing notebook is reported
// through the Outcome. Interrupts cancel the notebook only; once it has
// finished they are no longer caught.
func (l *Launcher) Run(ctx context.Context) (types.Outcome, error) {
	runCtx, stop := l.notify(ctx)
	outcome, runErr := l.execute(runCtx)
	stop()

	fmt.Fprintln(l.out)
	if err := l.waiter.Wait(); err != nil && runErr == nil {
		runErr = err
	}
	return outcome, runErr
}

func (l *Launcher) execute(ctx context.Context) (types.Outcome, error) {
	fmt.Fprintln(l.out, StartMessage)

	if err := l.chdir(l.dir); err != nil {
		fmt.Fprintln(l.out, FailureMessage)
		return types.Outcome{ExitCode: types.ExitNotStarted},
			fmt.Errorf("changing to launcher directory %s: %w", l.dir, err)
	}
	l.logger.Debug("working directory", "dir", l.dir)

	fmt.Fprintf(l.out, "Running %s with %s. This may take a few minutes...\n", types.NotebookFile, l.exec.Tool())

	started := l.now()
	outcome, err := l.exec.Execute(ctx, types.NotebookFile)
	finished := l.now()
	if err != nil {
		l.logger.Debug("notebook run failed", "err", err)
	}

	if outcome.Succeeded() {
		fmt.Fprintln(l.out, SuccessMessage)
	} else {
		fmt.Fprintln(l.out, FailureMessage)
	}

	l.record(ctx, types.RunRecord{
		StartedAt:  started,
		FinishedAt: finished,
		Notebook:   types.NotebookFile,
		Tool:       l.exec.Tool(),
		ExitCode:   outcome.ExitCode,
		Succeeded:  outcome.Succeeded(),
		CropYear:   safra.Current(started),
	})
	return outcome, nil
}

// record stores r if history is enabled. Failures are logged only.
func (l *Launcher) record(ctx context.Context, r types.RunRecord) {
	if l.recorder == nil {
		return
	}
	// The run itself may have been cancelled; history is still written.
	id, err := l.recorder.Record(context.WithoutCancel(ctx), r)
	if err != nil {
		l.logger.Warn("could not record run", "err", err)
		return
	}
	l.logger.Debug("run recorded", "id", id, "exit_code", r.ExitCode)
}

// ExecutableDir returns the directory containing the running executable,
// with symlinks resolved.
func ExecutableDir() (string, error) {
	exe, err := os.Executable()
	if err != nil {
		return "", fmt.Errorf("locating executable: %w", err)
	}
	if resolved, err := filepath.EvalSymlinks(exe); err == nil {
		exe = resolved
	}
	return filepath.Dir(exe), nil
}
