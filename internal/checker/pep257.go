package checker

import (
	"context"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"github.com/polylint/polylint/domain"
	"github.com/polylint/polylint/internal/config"
)

// Pep257Adapter wraps pydocstyle (historically named pep257)
type Pep257Adapter struct{}

// Name implements Adapter
func (a *Pep257Adapter) Name() domain.CheckerName { return domain.CheckerPep257 }

// Run implements Adapter
func (a *Pep257Adapter) Run(ctx context.Context, target domain.Target, opts config.Options) ([]domain.RawFinding, error) {
	if len(target.Files) == 0 {
		return nil, nil
	}

	var args []string
	if convention, ok := opts.String("convention"); ok {
		args = append(args, "--convention="+convention)
	}
	args = append(args, target.Files...)

	result, err := runTool(ctx, a.Name(), target.Root, "pydocstyle", args...)
	if err != nil {
		return nil, err
	}

	return parsePep257Output(result.Stdout), nil
}

// pydocstyle emits two-line records:
//
//	path.py:12 in public function `foo`:
//	        D103: Missing docstring in public function
var (
	pep257Location = regexp.MustCompile(`^(.+?):(\d+)\s+(?:in|at)\s+.*:$`)
	pep257Message  = regexp.MustCompile(`^\s+(D\d{3}):\s*(.*)$`)
)

// parsePep257Output parses pydocstyle's two-line record format
func parsePep257Output(out []byte) []domain.RawFinding {
	var findings []domain.RawFinding
	var pendingFile string
	var pendingLine int

	for _, line := range strings.Split(string(out), "\n") {
		line = strings.TrimRight(line, "\r")

		if m := pep257Location.FindStringSubmatch(line); m != nil {
			pendingFile = filepath.ToSlash(m[1])
			pendingLine, _ = strconv.Atoi(m[2])
			continue
		}

		if m := pep257Message.FindStringSubmatch(line); m != nil && pendingFile != "" {
			findings = append(findings, domain.RawFinding{
				File:    pendingFile,
				Line:    pendingLine,
				Code:    m[1],
				Message: m[2],
			})
			pendingFile = ""
		}
	}
	return findings
}
