// Package discover walks a target tree and produces the candidate file set
// for a run, applying the profile's ignore rules.
package discover

import (
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	gitignore "github.com/sabhiram/go-gitignore"
	"go.uber.org/zap"

	"github.com/polylint/polylint/domain"
	"github.com/polylint/polylint/internal/config"
)

// Ruleset is the compiled exclusion rules for one discovery pass
type Ruleset struct {
	// IgnorePaths entries prune by exact directory name, or by
	// doublestar glob against the root-relative path
	IgnorePaths []string

	// IgnorePatterns prune directories and drop files whose
	// root-relative path matches
	IgnorePatterns []*regexp.Regexp

	// RespectGitignore honors a .gitignore at the root
	RespectGitignore bool

	// IncludeHidden keeps dot-directories and dot-files in the walk
	// instead of skipping them
	IncludeHidden bool
}

// FromConfig builds the ruleset for a validated config
func FromConfig(cfg *config.Config) Ruleset {
	return Ruleset{
		IgnorePaths:      cfg.IgnorePaths,
		IgnorePatterns:   cfg.CompiledPatterns(),
		RespectGitignore: cfg.RespectGitignore,
		IncludeHidden:    cfg.IncludeHidden,
	}
}

// Discover walks root recursively and returns the Python files to analyze,
// as root-relative slash paths in lexical order. Directories matching the
// ruleset are pruned entirely so excluded subtrees are never visited.
// Any path component starting with "." is skipped unless the ruleset sets
// IncludeHidden.
func Discover(root string, rules Ruleset) ([]string, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, domain.NewDiscoveryError(root, err)
	}
	if !info.IsDir() {
		return nil, domain.NewDiscoveryError(root, os.ErrInvalid)
	}

	var ignorer *gitignore.GitIgnore
	if rules.RespectGitignore {
		// Missing .gitignore is fine; only a present one filters
		if gi, err := gitignore.CompileIgnoreFile(filepath.Join(root, ".gitignore")); err == nil {
			ignorer = gi
		}
	}

	var files []string
	walkErr := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == root {
				return domain.NewDiscoveryError(root, err)
			}
			// Unreadable subtrees are skipped, not fatal
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		if path == root {
			return nil
		}

		rel, err := filepath.Rel(root, path)
		if err != nil {
			return nil
		}
		rel = filepath.ToSlash(rel)

		if d.IsDir() {
			if excludeDir(d.Name(), rel, rules) {
				return filepath.SkipDir
			}
			return nil
		}

		if !isPythonFile(path) {
			return nil
		}
		if !rules.IncludeHidden && strings.HasPrefix(d.Name(), ".") {
			return nil
		}
		if matchesAny(rel, rules.IgnorePatterns) {
			return nil
		}
		if ignorer != nil && ignorer.MatchesPath(rel) {
			return nil
		}

		files = append(files, rel)
		return nil
	})
	if walkErr != nil {
		return nil, walkErr
	}

	zap.S().Debugw("file discovery complete", "root", root, "files", len(files))
	return files, nil
}

// excludeDir decides whether a directory is pruned from the walk
func excludeDir(name, rel string, rules Ruleset) bool {
	if !rules.IncludeHidden && strings.HasPrefix(name, ".") {
		return true
	}
	for _, entry := range rules.IgnorePaths {
		if entry == name {
			return true
		}
		if matched, _ := doublestar.Match(entry, rel); matched {
			return true
		}
	}
	return matchesAny(rel, rules.IgnorePatterns)
}

func matchesAny(rel string, patterns []*regexp.Regexp) bool {
	for _, re := range patterns {
		if re.MatchString(rel) {
			return true
		}
	}
	return false
}

func isPythonFile(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".py" || ext == ".pyi"
}
