package service

import (
	"io"
	"os"
	"time"

	"github.com/polylint/polylint/domain"
	"github.com/schollz/progressbar/v3"
)

// ProgressManagerImpl renders checker progress on an interactive terminal.
// Each run gets one bar counting finished checkers; the bar is cleared once
// the run completes so report output stays clean.
type ProgressManagerImpl struct {
	writer io.Writer
	tasks  []*progressbar.ProgressBar
}

// NewProgressManager returns an interactive manager when progress is enabled
// and stderr is a terminal, otherwise a no-op manager.
func NewProgressManager(enabled bool) domain.ProgressManager {
	if enabled && IsInteractiveEnvironment() {
		return &ProgressManagerImpl{writer: os.Stderr}
	}
	return &NoOpProgressManager{}
}

// IsInteractiveEnvironment reports whether stderr is attached to a terminal
func IsInteractiveEnvironment() bool {
	info, err := os.Stderr.Stat()
	if err != nil {
		return false
	}
	return info.Mode()&os.ModeCharDevice != 0
}

// StartTask opens a progress bar for a run of total checkers
func (pm *ProgressManagerImpl) StartTask(description string, total int) domain.TaskProgress {
	bar := progressbar.NewOptions(total,
		progressbar.OptionSetWriter(pm.writer),
		progressbar.OptionSetDescription(description),
		progressbar.OptionSetWidth(24),
		progressbar.OptionShowCount(),
		progressbar.OptionSetItsString("checker"),
		progressbar.OptionThrottle(100*time.Millisecond),
		progressbar.OptionClearOnFinish(),
	)
	pm.tasks = append(pm.tasks, bar)
	return &TaskProgressImpl{bar: bar, label: description}
}

// IsInteractive returns true if progress bars should be shown
func (pm *ProgressManagerImpl) IsInteractive() bool {
	return true
}

// Close finishes any bars still open
func (pm *ProgressManagerImpl) Close() {
	for _, bar := range pm.tasks {
		_ = bar.Finish()
	}
	pm.tasks = nil
}

// TaskProgressImpl tracks one run's checker completions
type TaskProgressImpl struct {
	bar   *progressbar.ProgressBar
	label string
}

// Increment records n finished checkers
func (tp *TaskProgressImpl) Increment(n int) {
	_ = tp.bar.Add(n)
}

// Describe shows the checker currently finishing next to the run label
func (tp *TaskProgressImpl) Describe(description string) {
	if tp.label != "" && description != tp.label {
		description = tp.label + ": " + description
	}
	tp.bar.Describe(description)
}

// Complete marks the task as finished
func (tp *TaskProgressImpl) Complete() {
	_ = tp.bar.Finish()
}

// NoOpProgressManager is used for non-interactive runs
type NoOpProgressManager struct{}

func (pm *NoOpProgressManager) StartTask(_ string, _ int) domain.TaskProgress {
	return &NoOpTaskProgress{}
}

func (pm *NoOpProgressManager) IsInteractive() bool {
	return false
}

func (pm *NoOpProgressManager) Close() {}

// NoOpTaskProgress discards all progress updates
type NoOpTaskProgress struct{}

func (tp *NoOpTaskProgress) Increment(_ int) {}

func (tp *NoOpTaskProgress) Describe(_ string) {}

func (tp *NoOpTaskProgress) Complete() {}
