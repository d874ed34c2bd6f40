package checker

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/polylint/polylint/domain"
	"github.com/polylint/polylint/internal/config"
)

// MccabeAdapter wraps the mccabe complexity checker. The mccabe script
// handles one file per invocation, so the adapter loops over the target
// set itself.
type MccabeAdapter struct{}

// Name implements Adapter
func (a *MccabeAdapter) Name() domain.CheckerName { return domain.CheckerMccabe }

// Run implements Adapter
func (a *MccabeAdapter) Run(ctx context.Context, target domain.Target, opts config.Options) ([]domain.RawFinding, error) {
	threshold := config.DefaultMaxComplexity
	if n, ok := opts.Int("max-complexity"); ok {
		threshold = n
	}

	var findings []domain.RawFinding
	for _, file := range target.Files {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}

		result, err := runTool(ctx, a.Name(), target.Root, "python",
			"-m", "mccabe", "--min", strconv.Itoa(threshold), file)
		if err != nil {
			return nil, err
		}
		findings = append(findings, parseMccabeOutput(result.Stdout, file, threshold)...)
	}
	return findings, nil
}

// mccabeLine matches `line:col: 'name' complexity`
var mccabeLine = regexp.MustCompile(`^(\d+):(\d+):\s+'(.+)'\s+(\d+)$`)

// parseMccabeOutput parses mccabe's per-file output. Paths are not part
// of mccabe's output, so the caller supplies the analyzed file.
func parseMccabeOutput(out []byte, file string, threshold int) []domain.RawFinding {
	var findings []domain.RawFinding
	for _, line := range strings.Split(string(out), "\n") {
		m := mccabeLine.FindStringSubmatch(strings.TrimRight(line, "\r"))
		if m == nil {
			continue
		}
		lineNo, _ := strconv.Atoi(m[1])
		col, _ := strconv.Atoi(m[2])
		complexity, _ := strconv.Atoi(m[4])
		findings = append(findings, domain.RawFinding{
			File:    file,
			Line:    lineNo,
			Column:  col,
			Code:    "C901",
			Message: fmt.Sprintf("'%s' is too complex (%d > %d)", m[3], complexity, threshold),
		})
	}
	return findings
}
