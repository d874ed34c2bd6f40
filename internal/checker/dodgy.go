package checker

import (
	"context"
	"encoding/json"
	"path/filepath"

	"github.com/polylint/polylint/domain"
	"github.com/polylint/polylint/internal/config"
)

// DodgyAdapter wraps the dodgy secrets/diff-artifact checker. Dodgy scans
// the whole tree itself, so it runs against the root rather than the
// discovered file list.
type DodgyAdapter struct{}

// Name implements Adapter
func (a *DodgyAdapter) Name() domain.CheckerName { return domain.CheckerDodgy }

// Run implements Adapter
func (a *DodgyAdapter) Run(ctx context.Context, target domain.Target, _ config.Options) ([]domain.RawFinding, error) {
	result, err := runTool(ctx, a.Name(), target.Root, "dodgy")
	if err != nil {
		return nil, err
	}
	return parseDodgyOutput(result.Stdout)
}

type dodgyReport struct {
	Warnings []dodgyWarning `json:"warnings"`
}

type dodgyWarning struct {
	Path    string `json:"path"`
	Line    int    `json:"line"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

// parseDodgyOutput parses dodgy's JSON report
func parseDodgyOutput(out []byte) ([]domain.RawFinding, error) {
	var report dodgyReport
	if err := json.Unmarshal(out, &report); err != nil {
		return nil, domain.NewAdapterError(domain.CheckerDodgy, "unparseable JSON output", err)
	}

	findings := make([]domain.RawFinding, 0, len(report.Warnings))
	for _, w := range report.Warnings {
		// Dodgy prefixes paths with ./
		path := filepath.ToSlash(w.Path)
		if len(path) > 2 && path[:2] == "./" {
			path = path[2:]
		}
		findings = append(findings, domain.RawFinding{
			File:    path,
			Line:    w.Line,
			Code:    w.Code,
			Message: w.Message,
		})
	}
	return findings, nil
}
