package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/polylint/polylint/domain"
)

// Default configuration values
const (
	// DefaultMaxLineLength is the line length ceiling applied when the
	// profile does not set one
	DefaultMaxLineLength = 99

	// DefaultMaxComplexity is the mccabe threshold used when shorthand
	// propagation is on and the checker options do not set one
	DefaultMaxComplexity = 10
)

// Reserved top-level profile keys. Every other top-level key must name a
// supported checker.
var reservedKeys = map[string]bool{
	"allow-shorthand":   true,
	"ignore-paths":      true,
	"ignore-patterns":   true,
	"include-hidden":    true,
	"max-line-length":   true,
	"respect-gitignore": true,
}

// CheckerConfig holds one checker's section of the profile
type CheckerConfig struct {
	// Run controls whether the checker's adapter is invoked at all.
	// Only an explicit `run: true` enables a checker; a section without
	// a run key stays disabled.
	Run bool

	// Options is the checker-specific option bag, passed through to the
	// adapter untouched apart from shorthand propagation
	Options Options

	// Disable lists diagnostic codes to suppress for this checker.
	// Codes are checker-specific; unknown codes are accepted since the
	// underlying tool may know them.
	Disable []string
}

// Equal reports deep equality of two checker sections
func (cc CheckerConfig) Equal(other CheckerConfig) bool {
	if cc.Run != other.Run || len(cc.Disable) != len(other.Disable) {
		return false
	}
	for i := range cc.Disable {
		if cc.Disable[i] != other.Disable[i] {
			return false
		}
	}
	return cc.Options.Equal(other.Options)
}

// Config represents a parsed and validated lint profile
type Config struct {
	// AllowShorthand propagates global thresholds (max-line-length,
	// max-complexity) into the checkers that understand them
	AllowShorthand bool

	// IgnorePaths are directory/module names excluded entirely; entries
	// may be exact names or doublestar globs matched against the
	// root-relative path
	IgnorePaths []string

	// IgnorePatterns are regular expressions matched against the
	// root-relative path; matching directories are pruned, matching
	// files dropped individually
	IgnorePatterns []string

	// MaxLineLength is the global line length ceiling
	MaxLineLength int

	// RespectGitignore makes file discovery honor .gitignore files
	RespectGitignore bool

	// IncludeHidden lets discovery descend into dot-directories and pick
	// up dot-files; ignore rules still apply to them
	IncludeHidden bool

	// Checkers maps checker names to their sections. Keys are drawn from
	// the closed supported set.
	Checkers map[domain.CheckerName]CheckerConfig

	compiledPatterns []*regexp.Regexp
}

// DefaultConfig returns the configuration used when no profile exists.
// It matches the "standard" init template: style and correctness checkers
// on, the slower security/typing/packaging checkers opt-in.
func DefaultConfig() *Config {
	cfg := &Config{
		AllowShorthand: true,
		IgnorePaths:    []string{},
		IgnorePatterns: []string{},
		MaxLineLength:  DefaultMaxLineLength,
		Checkers:       map[domain.CheckerName]CheckerConfig{},
	}
	for _, name := range domain.SupportedCheckers() {
		cfg.Checkers[name] = CheckerConfig{
			Run:     defaultEnabled[name],
			Options: Options{},
		}
	}
	return cfg
}

var defaultEnabled = map[domain.CheckerName]bool{
	domain.CheckerDodgy:  true,
	domain.CheckerFlakes: true,
	domain.CheckerMccabe: true,
	domain.CheckerPep8:   true,
	domain.CheckerPep257: true,
	domain.CheckerPylint: true,
}

// FromMap builds a Config from a decoded profile document. This is the
// single entry point for both file loading (viper hands over its settings
// map) and canonical re-parsing.
func FromMap(settings map[string]interface{}) (*Config, error) {
	cfg := &Config{
		MaxLineLength: DefaultMaxLineLength,
		Checkers:      map[domain.CheckerName]CheckerConfig{},
	}

	for key, raw := range settings {
		switch key {
		case "allow-shorthand":
			b, ok := raw.(bool)
			if !ok {
				return nil, domain.NewConfigError(fmt.Sprintf("allow-shorthand must be a bool, got %T", raw), nil)
			}
			cfg.AllowShorthand = b
		case "respect-gitignore":
			b, ok := raw.(bool)
			if !ok {
				return nil, domain.NewConfigError(fmt.Sprintf("respect-gitignore must be a bool, got %T", raw), nil)
			}
			cfg.RespectGitignore = b
		case "include-hidden":
			b, ok := raw.(bool)
			if !ok {
				return nil, domain.NewConfigError(fmt.Sprintf("include-hidden must be a bool, got %T", raw), nil)
			}
			cfg.IncludeHidden = b
		case "ignore-paths":
			paths, err := stringSlice(key, raw)
			if err != nil {
				return nil, err
			}
			cfg.IgnorePaths = paths
		case "ignore-patterns":
			patterns, err := stringSlice(key, raw)
			if err != nil {
				return nil, err
			}
			cfg.IgnorePatterns = patterns
		case "max-line-length":
			n, err := intValue(key, raw)
			if err != nil {
				return nil, err
			}
			cfg.MaxLineLength = n
		default:
			name := domain.CheckerName(key)
			if !domain.IsSupportedChecker(name) {
				return nil, domain.NewConfigError(fmt.Sprintf("unknown checker: %s", key), nil)
			}
			section, err := checkerSection(key, raw)
			if err != nil {
				return nil, err
			}
			cfg.Checkers[name] = section
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func stringSlice(key string, raw interface{}) ([]string, error) {
	items, ok := raw.([]interface{})
	if !ok {
		// Already-typed slices come back from a yaml round trip of our
		// own canonical form
		if typed, ok := raw.([]string); ok {
			return append([]string{}, typed...), nil
		}
		return nil, domain.NewConfigError(fmt.Sprintf("%s must be a list of strings, got %T", key, raw), nil)
	}
	out := make([]string, 0, len(items))
	for _, item := range items {
		s, ok := item.(string)
		if !ok {
			return nil, domain.NewConfigError(fmt.Sprintf("%s entries must be strings, got %T", key, item), nil)
		}
		out = append(out, s)
	}
	return out, nil
}

func intValue(key string, raw interface{}) (int, error) {
	switch n := raw.(type) {
	case int:
		return n, nil
	case int64:
		return int(n), nil
	case float64:
		if n == float64(int(n)) {
			return int(n), nil
		}
	}
	return 0, domain.NewConfigError(fmt.Sprintf("%s must be an integer, got %v", key, raw), nil)
}

func checkerSection(name string, raw interface{}) (CheckerConfig, error) {
	section := CheckerConfig{Options: Options{}}
	if raw == nil {
		// Bare `checker:` key with no body
		return section, nil
	}

	m, ok := raw.(map[string]interface{})
	if !ok {
		return section, domain.NewConfigError(fmt.Sprintf("%s section must be a mapping, got %T", name, raw), nil)
	}

	for key, val := range m {
		switch key {
		case "run":
			b, ok := val.(bool)
			if !ok {
				return section, domain.NewConfigError(fmt.Sprintf("%s.run must be a bool, got %T", name, val), nil)
			}
			section.Run = b
		case "options":
			opts, err := OptionsFromInterface(val)
			if err != nil {
				return section, domain.NewConfigError(fmt.Sprintf("%s.options invalid", name), err)
			}
			section.Options = opts
		case "disable":
			codes, err := stringSlice(name+".disable", val)
			if err != nil {
				return section, err
			}
			for _, code := range codes {
				if code == "" {
					return section, domain.NewConfigError(fmt.Sprintf("%s.disable entries must be non-empty", name), nil)
				}
			}
			section.Disable = codes
		default:
			return section, domain.NewConfigError(fmt.Sprintf("%s.%s is not a valid checker setting", name, key), nil)
		}
	}
	return section, nil
}

// Validate validates the configuration values and compiles the ignore
// patterns. It is called by FromMap; callers constructing a Config by hand
// must call it before use.
func (c *Config) Validate() error {
	if c.MaxLineLength <= 0 {
		return domain.NewConfigError(fmt.Sprintf("max-line-length must be > 0, got %d", c.MaxLineLength), nil)
	}

	for _, path := range c.IgnorePaths {
		if path == "" {
			return domain.NewConfigError("ignore-paths entries must be non-empty", nil)
		}
		if !doublestar.ValidatePattern(path) {
			return domain.NewConfigError(fmt.Sprintf("invalid ignore-paths pattern: %s", path), nil)
		}
	}

	c.compiledPatterns = make([]*regexp.Regexp, 0, len(c.IgnorePatterns))
	for _, pattern := range c.IgnorePatterns {
		re, err := regexp.Compile(pattern)
		if err != nil {
			return domain.NewConfigError(fmt.Sprintf("invalid ignore-patterns regex: %s", pattern), err)
		}
		c.compiledPatterns = append(c.compiledPatterns, re)
	}

	return nil
}

// CompiledPatterns returns the compiled ignore-patterns regexes.
// Validate must have run first.
func (c *Config) CompiledPatterns() []*regexp.Regexp {
	return c.compiledPatterns
}

// EnabledCheckers returns the enabled checker names in the stable
// supported-set order
func (c *Config) EnabledCheckers() []domain.CheckerName {
	enabled := make([]domain.CheckerName, 0, len(c.Checkers))
	for _, name := range domain.SupportedCheckers() {
		if cc, ok := c.Checkers[name]; ok && cc.Run {
			enabled = append(enabled, name)
		}
	}
	return enabled
}

// CheckerConfigFor returns the section for name, or an empty disabled
// section when the profile does not mention the checker
func (c *Config) CheckerConfigFor(name domain.CheckerName) CheckerConfig {
	if cc, ok := c.Checkers[name]; ok {
		return cc
	}
	return CheckerConfig{Options: Options{}}
}

// Equal reports deep equality of two configs (ignoring compiled state)
func (c *Config) Equal(other *Config) bool {
	if c.AllowShorthand != other.AllowShorthand ||
		c.RespectGitignore != other.RespectGitignore ||
		c.IncludeHidden != other.IncludeHidden ||
		c.MaxLineLength != other.MaxLineLength {
		return false
	}
	if !equalStrings(c.IgnorePaths, other.IgnorePaths) ||
		!equalStrings(c.IgnorePatterns, other.IgnorePatterns) {
		return false
	}
	if len(c.Checkers) != len(other.Checkers) {
		return false
	}
	for name, cc := range c.Checkers {
		oc, ok := other.Checkers[name]
		if !ok || !cc.Equal(oc) {
			return false
		}
	}
	return true
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// CanonicalYAML renders the config in its canonical serialized form.
// yaml.v3 emits map keys in sorted order, so the output is deterministic
// and FromMap(decode(CanonicalYAML(c))) yields a Config equal to c.
func (c *Config) CanonicalYAML() ([]byte, error) {
	doc := map[string]interface{}{
		"allow-shorthand": c.AllowShorthand,
		"max-line-length": c.MaxLineLength,
	}
	if c.RespectGitignore {
		doc["respect-gitignore"] = true
	}
	if c.IncludeHidden {
		doc["include-hidden"] = true
	}
	if len(c.IgnorePaths) > 0 {
		doc["ignore-paths"] = append([]string{}, c.IgnorePaths...)
	}
	if len(c.IgnorePatterns) > 0 {
		doc["ignore-patterns"] = append([]string{}, c.IgnorePatterns...)
	}

	names := make([]string, 0, len(c.Checkers))
	for name := range c.Checkers {
		names = append(names, string(name))
	}
	sort.Strings(names)
	for _, name := range names {
		cc := c.Checkers[domain.CheckerName(name)]
		section := map[string]interface{}{
			"run": cc.Run,
		}
		if len(cc.Options) > 0 {
			section["options"] = cc.Options.ToInterface()
		}
		if len(cc.Disable) > 0 {
			section["disable"] = append([]string{}, cc.Disable...)
		}
		doc[name] = section
	}

	return yaml.Marshal(doc)
}

// ParseYAML parses a profile document from raw YAML bytes
func ParseYAML(data []byte) (*Config, error) {
	var settings map[string]interface{}
	if err := yaml.Unmarshal(data, &settings); err != nil {
		return nil, domain.NewConfigError("failed to parse profile document", err)
	}
	if settings == nil {
		settings = map[string]interface{}{}
	}
	return FromMap(settings)
}

// LoadConfig loads configuration from file or returns the default config
func LoadConfig(configPath string) (*Config, error) {
	return LoadConfigWithTarget(configPath, "")
}

// LoadConfigWithTarget loads configuration with target path context.
// If no config path is given, a profile is discovered by walking upward
// from the target; when nothing is found the defaults apply.
func LoadConfigWithTarget(configPath string, targetPath string) (*Config, error) {
	if configPath == "" {
		configPath = findDefaultConfig(targetPath)
	}
	return loadConfigFromFile(configPath)
}

// loadConfigFromFile reads and parses a profile file via viper so that
// yaml, json and toml profiles all work
func loadConfigFromFile(configPath string) (*Config, error) {
	if configPath == "" {
		return DefaultConfig(), nil
	}

	// A fresh viper instance per load avoids cross-run state
	v := viper.New()
	v.SetConfigFile(configPath)

	if err := v.ReadInConfig(); err != nil {
		return nil, domain.NewConfigError(fmt.Sprintf("failed to read config file %s", configPath), err)
	}

	cfg, err := FromMap(v.AllSettings())
	if err != nil {
		return nil, err
	}
	return cfg, nil
}

// searchConfigInDirectory searches for profile files in a specific directory
func searchConfigInDirectory(dir string, candidates []string) string {
	for _, candidate := range candidates {
		path := filepath.Join(dir, candidate)
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// findDefaultConfig looks for default profile files in common locations,
// walking from the target directory up to the filesystem root
func findDefaultConfig(targetPath string) string {
	candidates := []string{
		"polylint.yaml",
		"polylint.yml",
		".polylint.yaml",
		".polylint.yml",
		"polylint.json",
		".polylint.toml",
	}

	if targetPath != "" {
		absPath, err := filepath.Abs(targetPath)
		if err == nil {
			info, err := os.Stat(absPath)
			if err == nil && !info.IsDir() {
				absPath = filepath.Dir(absPath)
			}

			volume := filepath.VolumeName(absPath)
			for dir := absPath; ; dir = filepath.Dir(dir) {
				if config := searchConfigInDirectory(dir, candidates); config != "" {
					return config
				}

				parent := filepath.Dir(dir)
				if parent == dir ||
					dir == volume ||
					(volume != "" && dir == volume+string(filepath.Separator)) {
					break
				}
			}
		}
	}

	if config := searchConfigInDirectory(".", candidates); config != "" {
		return config
	}

	if xdgConfig := os.Getenv("XDG_CONFIG_HOME"); xdgConfig != "" {
		if config := searchConfigInDirectory(filepath.Join(xdgConfig, "polylint"), candidates); config != "" {
			return config
		}
	}

	if home, err := os.UserHomeDir(); err == nil {
		configDir := filepath.Join(home, ".config", "polylint")
		if config := searchConfigInDirectory(configDir, candidates); config != "" {
			return config
		}
	}

	if envConfig := os.Getenv("POLYLINT_CONFIG"); envConfig != "" {
		if _, err := os.Stat(envConfig); err == nil {
			return envConfig
		}
	}

	return ""
}
