package checker

import (
	"context"
	"fmt"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"github.com/polylint/polylint/domain"
	"github.com/polylint/polylint/internal/config"
)

// Pep8Adapter wraps pycodestyle (historically named pep8)
type Pep8Adapter struct{}

// Name implements Adapter
func (a *Pep8Adapter) Name() domain.CheckerName { return domain.CheckerPep8 }

// Run implements Adapter
func (a *Pep8Adapter) Run(ctx context.Context, target domain.Target, opts config.Options) ([]domain.RawFinding, error) {
	if len(target.Files) == 0 {
		return nil, nil
	}

	var args []string
	if n, ok := opts.Int("max-line-length"); ok {
		args = append(args, fmt.Sprintf("--max-line-length=%d", n))
	}
	if ignore, ok := opts.StringList("ignore"); ok && len(ignore) > 0 {
		args = append(args, "--ignore="+strings.Join(ignore, ","))
	}
	if sel, ok := opts.StringList("select"); ok && len(sel) > 0 {
		args = append(args, "--select="+strings.Join(sel, ","))
	}
	args = append(args, target.Files...)

	result, err := runTool(ctx, a.Name(), target.Root, "pycodestyle", args...)
	if err != nil {
		return nil, err
	}

	return parsePep8Output(result.Stdout), nil
}

// pep8Line matches `path:line:col: E501 message`
var pep8Line = regexp.MustCompile(`^(.+?):(\d+):(\d+):\s+([EW]\d{3})\s+(.*)$`)

// parsePep8Output parses pycodestyle's default line format
func parsePep8Output(out []byte) []domain.RawFinding {
	var findings []domain.RawFinding
	for _, line := range strings.Split(string(out), "\n") {
		m := pep8Line.FindStringSubmatch(strings.TrimRight(line, "\r"))
		if m == nil {
			continue
		}
		lineNo, _ := strconv.Atoi(m[2])
		col, _ := strconv.Atoi(m[3])
		findings = append(findings, domain.RawFinding{
			File:    filepath.ToSlash(m[1]),
			Line:    lineNo,
			Column:  col,
			Code:    m[4],
			Message: m[5],
		})
	}
	return findings
}
