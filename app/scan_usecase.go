package app

import (
	"context"
	"fmt"
	"time"

	"github.com/lempiji/similarity-d/domain"
)

// ScanUseCase orchestrates a similarity scan: validate the request,
// collect the target files, run the service, format the result.
type ScanUseCase struct {
	service    domain.SimilarityService
	fileReader domain.FileReader
	formatter  domain.OutputFormatter
	progress   domain.ProgressManager
}

// NewScanUseCase creates a new scan use case with the given dependencies.
func NewScanUseCase(
	service domain.SimilarityService,
	fileReader domain.FileReader,
	formatter domain.OutputFormatter,
	progress domain.ProgressManager,
) *ScanUseCase {
	return &ScanUseCase{
		service:    service,
		fileReader: fileReader,
		formatter:  formatter,
		progress:   progress,
	}
}

// Execute runs the scan use case end to end and writes the formatted
// report to the request's output writer.
func (uc *ScanUseCase) Execute(ctx context.Context, req *domain.ScanRequest) error {
	startTime := time.Now()

	if err := req.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}
	if req.OutputWriter == nil {
		return domain.NewInvalidInputError("output writer is required", nil)
	}

	files, err := uc.fileReader.CollectGoFiles(req.Paths, req.Recursive, req.IncludePatterns, req.ExcludePatterns)
	if err != nil {
		return fmt.Errorf("failed to collect files: %w", err)
	}
	if len(files) == 0 {
		return domain.NewInvalidInputError("no Go files found in the specified paths", nil)
	}

	response, err := uc.service.ScanFiles(ctx, files, req)
	if err != nil {
		return domain.NewAnalysisError("similarity scan failed", err)
	}
	response.Duration = time.Since(startTime).Milliseconds()

	if err := uc.formatter.FormatScanResponse(response, req.OutputFormat, req.OutputWriter); err != nil {
		return domain.NewOutputError("failed to format scan results", err)
	}

	return nil
}

// ExecuteAndReturn runs the scan and returns the response instead of
// formatting it, for callers embedding the result elsewhere (MCP).
func (uc *ScanUseCase) ExecuteAndReturn(ctx context.Context, req *domain.ScanRequest) (*domain.ScanResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	files, err := uc.fileReader.CollectGoFiles(req.Paths, req.Recursive, req.IncludePatterns, req.ExcludePatterns)
	if err != nil {
		return nil, fmt.Errorf("failed to collect files: %w", err)
	}
	if len(files) == 0 {
		return nil, domain.NewInvalidInputError("no Go files found in the specified paths", nil)
	}

	return uc.service.ScanFiles(ctx, files, req)
}
