// Package normalize maps checker-native findings onto the common result
// model: fixed severity tables per checker plus suppression filtering.
// Everything here is pure; no I/O.
package normalize

import (
	"strconv"
	"strings"

	"github.com/polylint/polylint/domain"
	"github.com/polylint/polylint/internal/config"
)

// severityTables maps each checker's native severity vocabulary onto the
// common enum. Immutable lookup data; adapters own their vocabulary,
// the mapping lives in one place.
var severityTables = map[domain.CheckerName]map[string]domain.Severity{
	domain.CheckerBandit: {
		"HIGH":   domain.SeverityError,
		"MEDIUM": domain.SeverityWarning,
		"LOW":    domain.SeverityInfo,
	},
	domain.CheckerPylint: {
		"fatal":      domain.SeverityError,
		"error":      domain.SeverityError,
		"warning":    domain.SeverityWarning,
		"convention": domain.SeverityInfo,
		"refactor":   domain.SeverityInfo,
		"info":       domain.SeverityInfo,
	},
	domain.CheckerMypy: {
		"error":   domain.SeverityError,
		"warning": domain.SeverityWarning,
		"note":    domain.SeverityInfo,
	},
}

// defaultSeverities applies when a checker has no native vocabulary
var defaultSeverities = map[domain.CheckerName]domain.Severity{
	domain.CheckerBandit:  domain.SeverityWarning,
	domain.CheckerDodgy:   domain.SeverityWarning,
	domain.CheckerFlakes:  domain.SeverityError,
	domain.CheckerMccabe:  domain.SeverityWarning,
	domain.CheckerMypy:    domain.SeverityError,
	domain.CheckerPep8:    domain.SeverityWarning,
	domain.CheckerPep257:  domain.SeverityInfo,
	domain.CheckerPylint:  domain.SeverityWarning,
	domain.CheckerPyroma:  domain.SeverityWarning,
	domain.CheckerVulture: domain.SeverityWarning,
}

// Result carries the normalized findings plus how many raw findings the
// disable set suppressed
type Result struct {
	Findings   []domain.Finding
	Suppressed int
}

// Normalize maps one checker's raw findings into the common model and
// drops those whose code is in the checker's disable set (exact,
// case-sensitive match).
func Normalize(raw []domain.RawFinding, checker domain.CheckerName, cc config.CheckerConfig) Result {
	disabled := make(map[string]bool, len(cc.Disable))
	for _, code := range cc.Disable {
		disabled[code] = true
	}

	result := Result{Findings: make([]domain.Finding, 0, len(raw))}
	for _, rf := range raw {
		if disabled[rf.Code] {
			result.Suppressed++
			continue
		}
		result.Findings = append(result.Findings, domain.Finding{
			File:     rf.File,
			Line:     rf.Line,
			Column:   rf.Column,
			Code:     rf.Code,
			Message:  rf.Message,
			Checker:  checker,
			Severity: mapSeverity(checker, rf.Severity),
		})
	}
	return result
}

// mapSeverity resolves a native severity through the checker's table,
// falling back to the checker default
func mapSeverity(checker domain.CheckerName, native string) domain.Severity {
	if native != "" {
		if table, ok := severityTables[checker]; ok {
			if sev, ok := table[native]; ok {
				return sev
			}
		}
		// Vulture reports a confidence percentage instead of a severity
		if checker == domain.CheckerVulture {
			if confidence, err := strconv.Atoi(native); err == nil {
				if confidence >= 90 {
					return domain.SeverityWarning
				}
				return domain.SeverityInfo
			}
		}
		// Unknown vocabulary entries that look like the common enum
		// pass through unchanged
		switch domain.Severity(strings.ToLower(native)) {
		case domain.SeverityError:
			return domain.SeverityError
		case domain.SeverityWarning:
			return domain.SeverityWarning
		case domain.SeverityInfo:
			return domain.SeverityInfo
		}
	}

	if sev, ok := defaultSeverities[checker]; ok {
		return sev
	}
	return domain.SeverityWarning
}

// ApplyShorthand propagates the profile's global thresholds into the
// checkers that understand them, without overriding options the checker
// section already sets.
func ApplyShorthand(cfg *config.Config, checker domain.CheckerName, opts config.Options) config.Options {
	if !cfg.AllowShorthand {
		return opts
	}

	switch checker {
	case domain.CheckerPep8, domain.CheckerPylint:
		if !opts.Has("max-line-length") {
			opts = opts.Clone()
			opts["max-line-length"] = config.IntValue(cfg.MaxLineLength)
		}
	}
	return opts
}
