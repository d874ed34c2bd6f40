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

// FlakesAdapter wraps pyflakes. Pyflakes reports messages without codes,
// so codes are derived from a fixed message table matching the flake8
// numbering the rest of the ecosystem uses.
type FlakesAdapter struct{}

// Name implements Adapter
func (a *FlakesAdapter) Name() domain.CheckerName { return domain.CheckerFlakes }

// Run implements Adapter
func (a *FlakesAdapter) Run(ctx context.Context, target domain.Target, _ config.Options) ([]domain.RawFinding, error) {
	if len(target.Files) == 0 {
		return nil, nil
	}

	args := append([]string{"-m", "pyflakes"}, target.Files...)
	result, err := runTool(ctx, a.Name(), target.Root, "python", args...)
	if err != nil {
		return nil, err
	}

	return parseFlakesOutput(result.Stdout), nil
}

// flakesLine matches `path:line:col: message` and `path:line: message`
var flakesLine = regexp.MustCompile(`^(.+?):(\d+):(?:(\d+):)?\s*(.*)$`)

// flakesCodeTable derives a flake8-style code from the message text
var flakesCodeTable = []struct {
	pattern *regexp.Regexp
	code    string
}{
	{regexp.MustCompile(`imported but unused`), "F401"},
	{regexp.MustCompile(`unable to detect undefined names`), "F403"},
	{regexp.MustCompile(`may be undefined, or defined from star imports`), "F405"},
	{regexp.MustCompile(`redefinition of unused`), "F811"},
	{regexp.MustCompile(`undefined name '`), "F821"},
	{regexp.MustCompile(`local variable .* is assigned to but never used`), "F841"},
	{regexp.MustCompile(`duplicate argument`), "F831"},
	{regexp.MustCompile(`raise NotImplemented`), "F901"},
	{regexp.MustCompile(`syntax error|invalid syntax|unexpected indent`), "E999"},
}

func flakesCode(message string) string {
	for _, entry := range flakesCodeTable {
		if entry.pattern.MatchString(message) {
			return entry.code
		}
	}
	// Unclassified pyflakes message
	return "F999"
}

// parseFlakesOutput parses pyflakes' line format
func parseFlakesOutput(out []byte) []domain.RawFinding {
	var findings []domain.RawFinding
	for _, line := range strings.Split(string(out), "\n") {
		line = strings.TrimRight(line, "\r")
		if line == "" {
			continue
		}
		m := flakesLine.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		lineNo, err := strconv.Atoi(m[2])
		if err != nil {
			continue
		}
		col := 0
		if m[3] != "" {
			col, _ = strconv.Atoi(m[3])
		}
		message := m[4]
		findings = append(findings, domain.RawFinding{
			File:    filepath.ToSlash(m[1]),
			Line:    lineNo,
			Column:  col,
			Code:    flakesCode(message),
			Message: message,
		})
	}
	return findings
}
