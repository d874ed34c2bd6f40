package app

import (
	"context"
	"fmt"
	"os"

	"github.com/polylint/polylint/domain"
)

// RunUseCase orchestrates a complete lint run: execute the checkers,
// render the report and hand the verdict back to the caller
type RunUseCase struct {
	service   domain.RunService
	formatter domain.OutputFormatter
}

// NewRunUseCase creates a new run use case
func NewRunUseCase(service domain.RunService, formatter domain.OutputFormatter) *RunUseCase {
	return &RunUseCase{
		service:   service,
		formatter: formatter,
	}
}

// Execute performs the run and writes the report to the request's writer
func (uc *RunUseCase) Execute(ctx context.Context, req domain.RunRequest) (*domain.RunReport, error) {
	if err := uc.validateRequest(req); err != nil {
		return nil, err
	}

	report, err := uc.service.Run(ctx, req)
	if err != nil {
		return nil, err
	}

	writer := req.OutputWriter
	if writer == nil {
		writer = os.Stdout
	}
	if err := uc.formatter.Write(report, req.OutputFormat, writer); err != nil {
		return nil, err
	}

	return report, nil
}

// validateRequest validates the run request before dispatch
func (uc *RunUseCase) validateRequest(req domain.RunRequest) error {
	if req.Root == "" {
		return domain.NewInvalidInputError("no target directory specified", nil)
	}

	info, err := os.Stat(req.Root)
	if err != nil {
		return domain.NewInvalidInputError(fmt.Sprintf("cannot access target: %s", req.Root), err)
	}
	if !info.IsDir() {
		return domain.NewInvalidInputError(fmt.Sprintf("target is not a directory: %s", req.Root), nil)
	}

	return nil
}

// RunUseCaseBuilder provides a builder pattern for creating RunUseCase
type RunUseCaseBuilder struct {
	service   domain.RunService
	formatter domain.OutputFormatter
}

// NewRunUseCaseBuilder creates a new builder
func NewRunUseCaseBuilder() *RunUseCaseBuilder {
	return &RunUseCaseBuilder{}
}

// WithService sets the run service
func (b *RunUseCaseBuilder) WithService(service domain.RunService) *RunUseCaseBuilder {
	b.service = service
	return b
}

// WithFormatter sets the output formatter
func (b *RunUseCaseBuilder) WithFormatter(formatter domain.OutputFormatter) *RunUseCaseBuilder {
	b.formatter = formatter
	return b
}

// Build creates the RunUseCase with the configured dependencies
func (b *RunUseCaseBuilder) Build() (*RunUseCase, error) {
	if b.service == nil {
		return nil, fmt.Errorf("run service is required")
	}
	if b.formatter == nil {
		return nil, fmt.Errorf("output formatter is required")
	}

	return NewRunUseCase(b.service, b.formatter), nil
}
