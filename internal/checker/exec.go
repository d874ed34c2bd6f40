package checker

import (
	"bytes"
	"context"
	"errors"
	"os/exec"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/polylint/polylint/domain"
)

// waitDelay bounds how long a killed tool may linger before its pipes are
// forcibly closed
const waitDelay = 5 * time.Second

// toolResult captures one external tool invocation. Checkers exit
// non-zero when they report findings, so the exit code is data here, not
// an error.
type toolResult struct {
	Stdout   []byte
	Stderr   []byte
	ExitCode int
}

// runTool executes bin with args in dir, capturing both streams. The
// returned error is only non-nil when the tool could not run at all
// (missing binary, start failure) or the context was cancelled; a
// non-zero exit becomes toolResult.ExitCode.
func runTool(ctx context.Context, checker domain.CheckerName, dir, bin string, args ...string) (toolResult, error) {
	cmd := exec.CommandContext(ctx, bin, args...)
	cmd.Dir = dir
	cmd.WaitDelay = waitDelay

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	zap.S().Debugw("invoking checker", "checker", checker, "bin", bin, "args", len(args))

	err := cmd.Run()
	result := toolResult{
		Stdout: stdout.Bytes(),
		Stderr: stderr.Bytes(),
	}

	if err != nil {
		// The run deadline takes precedence over whatever exit state
		// the killed process produced
		if ctx.Err() != nil {
			return result, ctx.Err()
		}
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			result.ExitCode = exitErr.ExitCode()
			return result, nil
		}
		return result, domain.NewAdapterError(checker, "tool invocation failed", err)
	}

	return result, nil
}

// firstLine trims tool stderr down to something report-sized
func firstLine(out []byte) string {
	s := strings.TrimSpace(string(out))
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = s[:i]
	}
	return s
}
