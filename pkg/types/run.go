// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for report-runner.
package types

import "time"

// ExitNotStarted is the exit code recorded when the notebook tool produced no
// exit status: it was not on PATH, could not start, or was killed by a signal.
const ExitNotStarted = -1

// Outcome is the result of one notebook execution.
type Outcome struct {
	// ExitCode is the tool's exit status, or ExitNotStarted.
	ExitCode int `json:"exit_code" yaml:"exit_code"`
}

// Succeeded reports whether the tool exited with status zero. Every other
// status, including ExitNotStarted, is a failure.
func (o Outcome) Succeeded() bool {
	return o.ExitCode == 0
}

// RunRecord is one launcher invocation as persisted in the run history.
type RunRecord struct {
	ID         int64     `json:"id" yaml:"id"`
	StartedAt  time.Time `json:"started_at" yaml:"started_at"`
	FinishedAt time.Time `json:"finished_at" yaml:"finished_at"`
	Notebook   string    `json:"notebook" yaml:"notebook"`
	Tool       string    `json:"tool" yaml:"tool"`
	ExitCode   int       `json:"exit_code" yaml:"exit_code"`
	Succeeded  bool      `json:"succeeded" yaml:"succeeded"`

	// CropYear is the crop-year month at launch time ("1".."12").
	CropYear string `json:"crop_year,omitempty" yaml:"crop_year,omitempty"`
}

// Duration returns the wall time the run took.
func (r RunRecord) Duration() time.Duration {
	return r.FinishedAt.Sub(r.StartedAt)
}
