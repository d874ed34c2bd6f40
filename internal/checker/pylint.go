package checker

import (
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"

	"github.com/polylint/polylint/domain"
	"github.com/polylint/polylint/internal/config"
)

// PylintAdapter wraps pylint
type PylintAdapter struct{}

// Name implements Adapter
func (a *PylintAdapter) Name() domain.CheckerName { return domain.CheckerPylint }

// Run implements Adapter
func (a *PylintAdapter) Run(ctx context.Context, target domain.Target, opts config.Options) ([]domain.RawFinding, error) {
	if len(target.Files) == 0 {
		return nil, nil
	}

	args := []string{"--output-format=json", "--score=n"}
	if rcfile, ok := opts.String("rcfile"); ok {
		args = append(args, "--rcfile="+rcfile)
	}
	if n, ok := opts.Int("max-line-length"); ok {
		args = append(args, fmt.Sprintf("--max-line-length=%d", n))
	}
	if loadPlugins, ok := opts.StringList("load-plugins"); ok && len(loadPlugins) > 0 {
		for _, plugin := range loadPlugins {
			args = append(args, "--load-plugins="+plugin)
		}
	}
	args = append(args, target.Files...)

	result, err := runTool(ctx, a.Name(), target.Root, "pylint", args...)
	if err != nil {
		return nil, err
	}

	// Exit codes 1/32 signal usage or fatal errors rather than findings
	if result.ExitCode&1 != 0 || result.ExitCode >= 32 {
		return nil, domain.NewAdapterError(a.Name(), fmt.Sprintf("pylint failed (exit %d): %s", result.ExitCode, firstLine(result.Stderr)), nil)
	}

	return parsePylintOutput(result.Stdout)
}

type pylintMessage struct {
	Type      string `json:"type"`
	Path      string `json:"path"`
	Line      int    `json:"line"`
	Column    int    `json:"column"`
	MessageID string `json:"message-id"`
	Symbol    string `json:"symbol"`
	Message   string `json:"message"`
}

// parsePylintOutput parses pylint's JSON message list
func parsePylintOutput(out []byte) ([]domain.RawFinding, error) {
	var messages []pylintMessage
	if err := json.Unmarshal(out, &messages); err != nil {
		return nil, domain.NewAdapterError(domain.CheckerPylint, "unparseable JSON output", err)
	}

	findings := make([]domain.RawFinding, 0, len(messages))
	for _, m := range messages {
		findings = append(findings, domain.RawFinding{
			File:     filepath.ToSlash(m.Path),
			Line:     m.Line,
			Column:   m.Column,
			Code:     m.MessageID,
			Message:  m.Message,
			Severity: m.Type,
		})
	}
	return findings, nil
}
