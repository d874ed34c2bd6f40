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

// VultureAdapter wraps the vulture dead code checker
type VultureAdapter struct{}

// Name implements Adapter
func (a *VultureAdapter) Name() domain.CheckerName { return domain.CheckerVulture }

// Run implements Adapter
func (a *VultureAdapter) Run(ctx context.Context, target domain.Target, opts config.Options) ([]domain.RawFinding, error) {
	if len(target.Files) == 0 {
		return nil, nil
	}

	var args []string
	if minConfidence, ok := opts.Int("min-confidence"); ok {
		args = append(args, fmt.Sprintf("--min-confidence=%d", minConfidence))
	}
	args = append(args, target.Files...)

	result, err := runTool(ctx, a.Name(), target.Root, "vulture", args...)
	if err != nil {
		return nil, err
	}

	return parseVultureOutput(result.Stdout), nil
}

// vultureLine matches `path:line: unused <kind> 'name' (NN% confidence)`
var vultureLine = regexp.MustCompile(`^(.+?):(\d+):\s+(unused\s+(\w+)\s+.*?)(?:\s+\((\d+)%\s+confidence\))?$`)

// parseVultureOutput parses vulture's line format. Vulture has no code
// vocabulary of its own, so codes are derived from the unused-item kind
// ("unused-function", "unused-import", ...). The confidence percentage is
// carried through as native severity for the normalizer.
func parseVultureOutput(out []byte) []domain.RawFinding {
	var findings []domain.RawFinding
	for _, line := range strings.Split(string(out), "\n") {
		m := vultureLine.FindStringSubmatch(strings.TrimRight(line, "\r"))
		if m == nil {
			continue
		}
		lineNo, _ := strconv.Atoi(m[2])
		findings = append(findings, domain.RawFinding{
			File:     filepath.ToSlash(m[1]),
			Line:     lineNo,
			Code:     "unused-" + strings.ToLower(m[4]),
			Message:  m[3],
			Severity: m[5],
		})
	}
	return findings
}
