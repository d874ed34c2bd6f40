package service

import (
	"github.com/polylint/polylint/domain"
	"github.com/polylint/polylint/internal/config"
)

// ConfigurationLoaderImpl resolves the effective lint profile for a run
type ConfigurationLoaderImpl struct{}

// NewConfigurationLoader creates a new configuration loader service
func NewConfigurationLoader() *ConfigurationLoaderImpl {
	return &ConfigurationLoaderImpl{}
}

// LoadConfig loads the profile for the given request. An explicit
// ConfigPath must exist; otherwise discovery walks up from the target
// root and falls back to the built-in defaults.
func (c *ConfigurationLoaderImpl) LoadConfig(req domain.RunRequest) (*config.Config, error) {
	cfg, err := config.LoadConfigWithTarget(req.ConfigPath, req.Root)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// MergeRequest merges CLI flag values over a base request. Flags only
// override when they carry a non-zero value.
func (c *ConfigurationLoaderImpl) MergeRequest(base domain.RunRequest, override domain.RunRequest) domain.RunRequest {
	merged := base

	if override.Root != "" {
		merged.Root = override.Root
	}
	if override.OutputFormat != "" {
		merged.OutputFormat = override.OutputFormat
	}
	if override.OutputWriter != nil {
		merged.OutputWriter = override.OutputWriter
	}
	if override.ShowDetails {
		merged.ShowDetails = override.ShowDetails
	}
	if len(override.Checkers) > 0 {
		merged.Checkers = override.Checkers
	}
	if override.Timeout > 0 {
		merged.Timeout = override.Timeout
	}
	if override.MaxWorkers > 0 {
		merged.MaxWorkers = override.MaxWorkers
	}
	if override.ConfigPath != "" {
		merged.ConfigPath = override.ConfigPath
	}
	if override.NoProgress {
		merged.NoProgress = override.NoProgress
	}

	return merged
}

// ValidateRequest validates a run request before execution
func (c *ConfigurationLoaderImpl) ValidateRequest(req domain.RunRequest) error {
	if req.Root == "" {
		return domain.NewInvalidInputError("target root is required", nil)
	}

	switch req.OutputFormat {
	case domain.OutputFormatText, domain.OutputFormatJSON, domain.OutputFormatCSV:
	default:
		return domain.NewUnsupportedFormatError(string(req.OutputFormat))
	}

	for _, name := range req.Checkers {
		if !domain.IsSupportedChecker(name) {
			return domain.NewInvalidInputError("unknown checker: "+string(name), nil)
		}
	}

	return nil
}
