package domain

import (
	"context"
	"io"
	"time"
)

// OutputFormat represents the supported output formats
type OutputFormat string

const (
	OutputFormatText OutputFormat = "text"
	OutputFormatJSON OutputFormat = "json"
	OutputFormatCSV  OutputFormat = "csv"
)

// ExitStatus is the aggregate pass/fail verdict of a run
type ExitStatus string

const (
	ExitStatusPass ExitStatus = "pass"
	ExitStatusFail ExitStatus = "fail"
)

// RunRequest represents a request for an aggregated lint run
type RunRequest struct {
	// Root is the directory tree to analyze
	Root string

	// Output configuration
	OutputFormat OutputFormat
	OutputWriter io.Writer
	ShowDetails  bool

	// Checkers restricts the run to a subset of the config-enabled
	// checkers. Empty means all enabled checkers.
	Checkers []CheckerName

	// Timeout bounds the whole run. Zero means the default run timeout.
	Timeout time.Duration

	// MaxWorkers caps concurrent adapter invocations. Zero means
	// min(enabled checkers, NumCPU).
	MaxWorkers int

	// ConfigPath is an explicit config file path; empty triggers discovery
	ConfigPath string

	// NoProgress disables interactive progress output
	NoProgress bool
}

// RunSummary provides aggregate statistics for a run
type RunSummary struct {
	FilesDiscovered int `json:"files_discovered" yaml:"files_discovered"`
	CheckersRun     int `json:"checkers_run" yaml:"checkers_run"`
	TotalFindings   int `json:"total_findings" yaml:"total_findings"`
	ErrorFindings   int `json:"error_findings" yaml:"error_findings"`
	WarningFindings int `json:"warning_findings" yaml:"warning_findings"`
	InfoFindings    int `json:"info_findings" yaml:"info_findings"`
	Suppressed      int `json:"suppressed" yaml:"suppressed"`
}

// RunReport is the complete, immutable result of a run.
// Findings are sorted by (file, line, checker) ascending.
type RunReport struct {
	Findings      []Finding                    `json:"findings" yaml:"findings"`
	CheckerErrors map[CheckerName]CheckerError `json:"checker_errors,omitempty" yaml:"checker_errors,omitempty"`
	ExitStatus    ExitStatus                   `json:"exit_status" yaml:"exit_status"`
	Summary       RunSummary                   `json:"summary" yaml:"summary"`

	// Metadata
	GeneratedAt string `json:"generated_at" yaml:"generated_at"`
	Version     string `json:"version" yaml:"version"`
	DurationMs  int64  `json:"duration_ms" yaml:"duration_ms"`
}

// RunService defines the core business logic for aggregated lint runs
type RunService interface {
	// Run discovers files, dispatches the enabled checkers and returns
	// the aggregated report. Per-checker failures do not produce an
	// error here; they are recorded in the report.
	Run(ctx context.Context, req RunRequest) (*RunReport, error)
}

// OutputFormatter defines the interface for rendering run reports
type OutputFormatter interface {
	// Write writes the report to the writer in the specified format
	Write(report *RunReport, format OutputFormat, writer io.Writer) error
}

// ExecutableTask is a unit of work scheduled by the parallel executor
type ExecutableTask interface {
	// Name identifies the task in error reports
	Name() string

	// IsEnabled reports whether the task should run at all
	IsEnabled() bool

	// Execute runs the task. The returned value is task-specific.
	Execute(ctx context.Context) (interface{}, error)
}

// ProgressManager creates progress tasks for long-running operations
type ProgressManager interface {
	StartTask(description string, total int) TaskProgress
	IsInteractive() bool
	Close()
}

// TaskProgress tracks progress of a single task
type TaskProgress interface {
	Increment(n int)
	Describe(description string)
	Complete()
}
