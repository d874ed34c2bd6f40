package checker

import (
	"context"
	"strconv"
	"strings"

	"github.com/polylint/polylint/domain"
	"github.com/polylint/polylint/internal/config"
)

// PyromaAdapter wraps the pyroma packaging checker. Pyroma rates the
// package metadata at the root, not individual source files.
type PyromaAdapter struct{}

// Name implements Adapter
func (a *PyromaAdapter) Name() domain.CheckerName { return domain.CheckerPyroma }

// Run implements Adapter
func (a *PyromaAdapter) Run(ctx context.Context, target domain.Target, opts config.Options) ([]domain.RawFinding, error) {
	minRating := 10
	if n, ok := opts.Int("min-rating"); ok {
		minRating = n
	}

	result, err := runTool(ctx, a.Name(), target.Root, "pyroma", "-n", strconv.Itoa(minRating), ".")
	if err != nil {
		return nil, err
	}

	return parsePyromaOutput(result.Stdout), nil
}

// parsePyromaOutput parses pyroma's free-form report. Every complaint
// line between the separator rules becomes one finding against the
// package metadata. Everything from the rating line onward is the
// summary, not a complaint.
func parsePyromaOutput(out []byte) []domain.RawFinding {
	var findings []domain.RawFinding
	for _, line := range strings.Split(string(out), "\n") {
		line = strings.TrimSpace(strings.TrimRight(line, "\r"))
		if strings.HasPrefix(line, "Final rating:") {
			break
		}
		if line == "" || strings.HasPrefix(line, "----") {
			continue
		}
		if strings.HasPrefix(line, "Checking ") || strings.HasPrefix(line, "Found ") {
			continue
		}
		findings = append(findings, domain.RawFinding{
			File:    "setup.py",
			Line:    1,
			Code:    "PYR001",
			Message: line,
		})
	}
	return findings
}
