package mcp

import (
	"github.com/lempiji/similarity-d/app"
	"github.com/lempiji/similarity-d/domain"
	"github.com/lempiji/similarity-d/service"
)

// Dependencies aggregates the shared services required by MCP handlers.
type Dependencies struct {
	fileReader domain.FileReader
	scanner    domain.SimilarityService
}

// NewDependencies constructs the dependency set. Progress reporting is
// disabled: MCP uses stdout for JSON-RPC and a progress bar on stderr
// would only interleave noise into client logs.
func NewDependencies() *Dependencies {
	return &Dependencies{
		fileReader: service.NewFileReader(),
		scanner:    service.NewSimilarityService(nil),
	}
}

// Scanner exposes the similarity service.
func (d *Dependencies) Scanner() domain.SimilarityService {
	return d.scanner
}

// BuildScanUseCase assembles a fresh ScanUseCase with injected dependencies.
func (d *Dependencies) BuildScanUseCase() *app.ScanUseCase {
	return app.NewScanUseCase(
		d.scanner,
		d.fileReader,
		service.NewOutputFormatter(),
		nil,
	)
}
