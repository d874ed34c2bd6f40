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

// MypyAdapter wraps the mypy type checker
type MypyAdapter struct{}

// Name implements Adapter
func (a *MypyAdapter) Name() domain.CheckerName { return domain.CheckerMypy }

// Run implements Adapter
func (a *MypyAdapter) Run(ctx context.Context, target domain.Target, opts config.Options) ([]domain.RawFinding, error) {
	if len(target.Files) == 0 {
		return nil, nil
	}

	args := []string{
		"--no-error-summary",
		"--no-color-output",
		"--show-column-numbers",
		"--show-error-codes",
	}
	if cfgFile, ok := opts.String("config"); ok {
		args = append(args, "--config-file", cfgFile)
	}
	if strict, ok := opts.Bool("strict"); ok && strict {
		args = append(args, "--strict")
	}
	if ignoreMissing, ok := opts.Bool("ignore-missing-imports"); ok && ignoreMissing {
		args = append(args, "--ignore-missing-imports")
	}
	args = append(args, target.Files...)

	result, err := runTool(ctx, a.Name(), target.Root, "mypy", args...)
	if err != nil {
		return nil, err
	}

	return parseMypyOutput(result.Stdout), nil
}

// mypyLine matches `path:line:col: severity: message  [code]` with the
// column and trailing code both optional
var mypyLine = regexp.MustCompile(`^(.+?):(\d+):(?:(\d+):)?\s*(error|warning|note):\s*(.*?)(?:\s+\[([a-z-]+)\])?$`)

// parseMypyOutput parses mypy's line format
func parseMypyOutput(out []byte) []domain.RawFinding {
	var findings []domain.RawFinding
	for _, line := range strings.Split(string(out), "\n") {
		m := mypyLine.FindStringSubmatch(strings.TrimRight(line, "\r"))
		if m == nil {
			continue
		}
		lineNo, _ := strconv.Atoi(m[2])
		col := 0
		if m[3] != "" {
			col, _ = strconv.Atoi(m[3])
		}
		code := m[6]
		if code == "" {
			code = m[4]
		}
		findings = append(findings, domain.RawFinding{
			File:     filepath.ToSlash(m[1]),
			Line:     lineNo,
			Column:   col,
			Code:     code,
			Message:  m[5],
			Severity: m[4],
		})
	}
	return findings
}
