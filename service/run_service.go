package service

import (
	"context"
	"errors"
	"runtime"
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/polylint/polylint/domain"
	"github.com/polylint/polylint/internal/checker"
	"github.com/polylint/polylint/internal/config"
	"github.com/polylint/polylint/internal/discover"
	"github.com/polylint/polylint/internal/normalize"
	"github.com/polylint/polylint/internal/version"
)

// RunServiceImpl implements the RunService interface
type RunServiceImpl struct {
	loader   *ConfigurationLoaderImpl
	adapters map[domain.CheckerName]checker.Adapter
	progress domain.ProgressManager
}

// NewRunService creates a run service backed by the built-in adapter registry
func NewRunService() *RunServiceImpl {
	return &RunServiceImpl{
		loader:   NewConfigurationLoader(),
		adapters: checker.All(),
	}
}

// NewRunServiceWithAdapters creates a run service with a custom adapter table
func NewRunServiceWithAdapters(adapters map[domain.CheckerName]checker.Adapter) *RunServiceImpl {
	return &RunServiceImpl{
		loader:   NewConfigurationLoader(),
		adapters: adapters,
	}
}

// SetProgressManager attaches a progress manager for interactive runs
func (s *RunServiceImpl) SetProgressManager(pm domain.ProgressManager) {
	s.progress = pm
}

// checkerRun executes a single adapter and keeps its normalized output.
// Each task is written by exactly one goroutine; results are gathered
// after the executor finishes.
type checkerRun struct {
	adapter    checker.Adapter
	section    config.CheckerConfig
	opts       config.Options
	target     domain.Target
	findings   []domain.Finding
	suppressed int
}

func (t *checkerRun) Name() string { return string(t.adapter.Name()) }

func (t *checkerRun) IsEnabled() bool { return true }

func (t *checkerRun) Execute(ctx context.Context) (interface{}, error) {
	raw, err := t.adapter.Run(ctx, t.target, t.opts)
	if err != nil {
		return nil, err
	}
	result := normalize.Normalize(raw, t.adapter.Name(), t.section)
	t.findings = result.Findings
	t.suppressed = result.Suppressed
	return result, nil
}

// Run discovers files, dispatches the enabled checkers and aggregates
// their findings into a single report. Per-checker failures are recorded
// in the report; only setup failures (config, discovery) return an error.
func (s *RunServiceImpl) Run(ctx context.Context, req domain.RunRequest) (*domain.RunReport, error) {
	start := time.Now()

	if err := s.loader.ValidateRequest(req); err != nil {
		return nil, err
	}

	cfg, err := s.loader.LoadConfig(req)
	if err != nil {
		return nil, err
	}

	files, err := discover.Discover(req.Root, discover.FromConfig(cfg))
	if err != nil {
		return nil, err
	}

	enabled := s.selectCheckers(cfg, req.Checkers)
	zap.S().Debugw("run plan",
		"files", len(files),
		"checkers", len(enabled))

	target := domain.Target{Root: req.Root, Files: files}

	tasks := make([]*checkerRun, 0, len(enabled))
	for _, name := range enabled {
		adapter, ok := s.adapters[name]
		if !ok {
			continue
		}
		section := cfg.CheckerConfigFor(name)
		tasks = append(tasks, &checkerRun{
			adapter: adapter,
			section: section,
			opts:    normalize.ApplyShorthand(cfg, name, section.Options),
			target:  target,
		})
	}

	execErr := s.execute(ctx, req, tasks)

	report := s.aggregate(files, tasks, execErr)
	report.GeneratedAt = start.Format(time.RFC3339)
	report.Version = version.Version
	report.DurationMs = time.Since(start).Milliseconds()

	return report, nil
}

// selectCheckers intersects the profile's enabled set with an optional
// CLI selection, preserving the stable supported-set order
func (s *RunServiceImpl) selectCheckers(cfg *config.Config, requested []domain.CheckerName) []domain.CheckerName {
	enabled := cfg.EnabledCheckers()
	if len(requested) == 0 {
		return enabled
	}

	want := make(map[domain.CheckerName]bool, len(requested))
	for _, name := range requested {
		want[name] = true
	}

	selected := make([]domain.CheckerName, 0, len(enabled))
	for _, name := range enabled {
		if want[name] {
			selected = append(selected, name)
		}
	}
	return selected
}

func (s *RunServiceImpl) execute(ctx context.Context, req domain.RunRequest, tasks []*checkerRun) error {
	if len(tasks) == 0 {
		return nil
	}

	var executor *ParallelExecutorImpl
	if s.progress != nil && !req.NoProgress {
		executor = NewParallelExecutorWithProgress(s.progress)
	} else {
		executor = NewParallelExecutor()
	}

	workers := req.MaxWorkers
	if workers <= 0 {
		workers = len(tasks)
		if n := runtime.NumCPU(); n < workers {
			workers = n
		}
	}
	executor.SetMaxConcurrency(workers)

	if req.Timeout > 0 {
		executor.SetTimeout(req.Timeout)
	}

	executable := make([]domain.ExecutableTask, len(tasks))
	for i, t := range tasks {
		executable[i] = t
	}
	return executor.Execute(ctx, executable)
}

// aggregate merges per-checker results into the final sorted report
func (s *RunServiceImpl) aggregate(files []string, tasks []*checkerRun, execErr error) *domain.RunReport {
	report := &domain.RunReport{
		Findings:      []domain.Finding{},
		CheckerErrors: map[domain.CheckerName]domain.CheckerError{},
	}

	for _, t := range tasks {
		report.Findings = append(report.Findings, t.findings...)
		report.Summary.Suppressed += t.suppressed
	}

	var aggErr *AggregatedError
	if errors.As(execErr, &aggErr) {
		for _, taskErr := range aggErr.Errors {
			name := domain.CheckerName(taskErr.TaskName)
			kind := domain.CheckerErrorAdapter
			message := taskErr.Err.Error()
			if errors.Is(taskErr.Err, context.DeadlineExceeded) {
				kind = domain.CheckerErrorTimeout
				message = "run deadline exceeded"
			}
			report.CheckerErrors[name] = domain.CheckerError{
				Checker: name,
				Kind:    kind,
				Message: message,
			}
		}
	}

	sort.SliceStable(report.Findings, func(i, j int) bool {
		a, b := report.Findings[i], report.Findings[j]
		if a.File != b.File {
			return a.File < b.File
		}
		if a.Line != b.Line {
			return a.Line < b.Line
		}
		return a.Checker < b.Checker
	})

	report.Summary.FilesDiscovered = len(files)
	report.Summary.CheckersRun = len(tasks) - len(report.CheckerErrors)
	report.Summary.TotalFindings = len(report.Findings)
	for _, f := range report.Findings {
		switch f.Severity {
		case domain.SeverityError:
			report.Summary.ErrorFindings++
		case domain.SeverityWarning:
			report.Summary.WarningFindings++
		case domain.SeverityInfo:
			report.Summary.InfoFindings++
		}
	}

	if len(report.Findings) > 0 || len(report.CheckerErrors) > 0 {
		report.ExitStatus = domain.ExitStatusFail
	} else {
		report.ExitStatus = domain.ExitStatusPass
	}

	return report
}
