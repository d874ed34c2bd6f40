package checker

import (
	"context"
	"encoding/json"
	"path/filepath"
	"strings"

	"github.com/polylint/polylint/domain"
	"github.com/polylint/polylint/internal/config"
)

// BanditAdapter wraps the bandit security checker
type BanditAdapter struct{}

// Name implements Adapter
func (a *BanditAdapter) Name() domain.CheckerName { return domain.CheckerBandit }

// Run implements Adapter
func (a *BanditAdapter) Run(ctx context.Context, target domain.Target, opts config.Options) ([]domain.RawFinding, error) {
	if len(target.Files) == 0 {
		return nil, nil
	}

	args := []string{"-f", "json", "-q"}
	if path, ok := opts.String("config"); ok {
		args = append(args, "-c", path)
	}
	if skips, ok := opts.StringList("skips"); ok && len(skips) > 0 {
		args = append(args, "-s", strings.Join(skips, ","))
	}
	args = append(args, target.Files...)

	result, err := runTool(ctx, a.Name(), target.Root, "bandit", args...)
	if err != nil {
		return nil, err
	}

	return parseBanditOutput(result.Stdout)
}

type banditReport struct {
	Results []banditIssue `json:"results"`
}

type banditIssue struct {
	Filename      string `json:"filename"`
	LineNumber    int    `json:"line_number"`
	ColOffset     int    `json:"col_offset"`
	TestID        string `json:"test_id"`
	IssueText     string `json:"issue_text"`
	IssueSeverity string `json:"issue_severity"`
}

// parseBanditOutput parses bandit's JSON report
func parseBanditOutput(out []byte) ([]domain.RawFinding, error) {
	var report banditReport
	if err := json.Unmarshal(out, &report); err != nil {
		return nil, domain.NewAdapterError(domain.CheckerBandit, "unparseable JSON output", err)
	}

	findings := make([]domain.RawFinding, 0, len(report.Results))
	for _, issue := range report.Results {
		findings = append(findings, domain.RawFinding{
			File:     filepath.ToSlash(issue.Filename),
			Line:     issue.LineNumber,
			Column:   issue.ColOffset,
			Code:     issue.TestID,
			Message:  issue.IssueText,
			Severity: issue.IssueSeverity,
		})
	}
	return findings, nil
}
