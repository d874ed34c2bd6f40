package config

import "strconv"

// Strictness represents the profile strictness level
type Strictness string

const (
	StrictnessRelaxed  Strictness = "relaxed"
	StrictnessStandard Strictness = "standard"
	StrictnessStrict   Strictness = "strict"
)

// StrictnessPreset holds the per-level threshold and checker selection
type StrictnessPreset struct {
	MaxLineLength int
	MaxComplexity int

	// Checkers switched on beyond the always-on style set
	EnableBandit  bool
	EnableMypy    bool
	EnableVulture bool
}

// GetStrictnessPresets returns presets for different strictness levels
func GetStrictnessPresets() map[Strictness]StrictnessPreset {
	return map[Strictness]StrictnessPreset{
		StrictnessRelaxed: {
			MaxLineLength: 120,
			MaxComplexity: 15,
		},
		StrictnessStandard: {
			MaxLineLength: 99,
			MaxComplexity: 10,
			EnableBandit:  true,
		},
		StrictnessStrict: {
			MaxLineLength: 88,
			MaxComplexity: 8,
			EnableBandit:  true,
			EnableMypy:    true,
			EnableVulture: true,
		},
	}
}

// GetFullConfigTemplate returns the documented profile template for the
// given strictness level
func GetFullConfigTemplate(strictness Strictness) string {
	preset := GetStrictnessPresets()[strictness]

	return `# polylint profile
# Documentation: https://github.com/polylint/polylint

# Propagate max-line-length / max-complexity into the checkers that
# understand them, unless their own options already set a value.
allow-shorthand: true

# Global line length ceiling.
max-line-length: ` + strconv.Itoa(preset.MaxLineLength) + `

# Directory or module names excluded entirely. Entries may also be
# doublestar globs matched against the path relative to the root.
ignore-paths:
  - docs
  - build

# Regular expressions matched against the path relative to the root.
# Matching directories are pruned, matching files skipped.
ignore-patterns:
  - (^|/)migrations(/|$)

# Honor .gitignore files during discovery.
respect-gitignore: true

# Dot-directories and dot-files are skipped during discovery.
# Set include-hidden: true to lint them as well.
include-hidden: false

# --- Checkers ---------------------------------------------------------
# A checker only runs with an explicit "run: true".

pep8:
  run: true

pep257:
  run: true
  disable:
    - D203

flakes:
  run: true

mccabe:
  run: true
  options:
    max-complexity: ` + strconv.Itoa(preset.MaxComplexity) + `

pylint:
  run: true

dodgy:
  run: true

bandit:
  run: ` + strconv.FormatBool(preset.EnableBandit) + `

mypy:
  run: ` + strconv.FormatBool(preset.EnableMypy) + `

vulture:
  run: ` + strconv.FormatBool(preset.EnableVulture) + `

pyroma:
  run: false
`
}

// GetMinimalConfigTemplate returns a minimal profile template
func GetMinimalConfigTemplate() string {
	return `# polylint profile (minimal)
# See full options: https://github.com/polylint/polylint

max-line-length: 99

pep8:
  run: true

flakes:
  run: true

pylint:
  run: true
`
}
