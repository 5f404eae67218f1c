package domain

import (
	"context"
	"fmt"
	"io"
	"time"
)

// MatchLocation is one side of a reported match.
type MatchLocation struct {
	FilePath  string `json:"file_path" yaml:"file_path" csv:"file_path"`
	Function  string `json:"function" yaml:"function" csv:"function"`
	StartLine int    `json:"start_line" yaml:"start_line" csv:"start_line"`
	EndLine   int    `json:"end_line" yaml:"end_line" csv:"end_line"`
	LineCount int    `json:"line_count" yaml:"line_count" csv:"line_count"`
	Snippet   string `json:"snippet,omitempty" yaml:"snippet,omitempty" csv:"-"`
}

// String returns string representation of MatchLocation
func (ml *MatchLocation) String() string {
	return fmt.Sprintf("%s:%d-%d", ml.FilePath, ml.StartLine, ml.EndLine)
}

// MatchRecord is one reported pair of structurally similar functions.
// Records are created only for pairs that pass every filter and the
// similarity threshold, and are immutable once created.
type MatchRecord struct {
	Left       MatchLocation `json:"left" yaml:"left"`
	Right      MatchLocation `json:"right" yaml:"right"`
	Similarity float64       `json:"similarity" yaml:"similarity" csv:"similarity"`
	Priority   float64       `json:"priority" yaml:"priority" csv:"priority"`
}

// String returns string representation of MatchRecord
func (mr *MatchRecord) String() string {
	return fmt.Sprintf("%s <-> %s (similarity: %.3f)", mr.Left.String(), mr.Right.String(), mr.Similarity)
}

// ScanStatistics summarizes one scan.
type ScanStatistics struct {
	FilesAnalyzed     int     `json:"files_analyzed" yaml:"files_analyzed"`
	FilesSkipped      int     `json:"files_skipped" yaml:"files_skipped"`
	LinesAnalyzed     int     `json:"lines_analyzed" yaml:"lines_analyzed"`
	FunctionsAnalyzed int     `json:"functions_analyzed" yaml:"functions_analyzed"`
	TotalMatches      int     `json:"total_matches" yaml:"total_matches"`
	AverageSimilarity float64 `json:"average_similarity" yaml:"average_similarity"`
}

// ScanRequest represents a request for a similarity scan.
type ScanRequest struct {
	// Input parameters
	Paths           []string `json:"paths"`
	Recursive       bool     `json:"recursive"`
	IncludePatterns []string `json:"include_patterns"`
	ExcludePatterns []string `json:"exclude_patterns"`

	// Analysis configuration
	Threshold     float64 `json:"threshold"`
	MinLines      int     `json:"min_lines"`
	MinTokens     int     `json:"min_tokens"`
	SizePenalty   bool    `json:"size_penalty"`
	CrossFile     bool    `json:"cross_file"`
	CollectNested bool    `json:"collect_nested"`
	IncludeTests  bool    `json:"include_tests"`

	// Output configuration
	OutputFormat OutputFormat `json:"output_format"`
	OutputWriter io.Writer    `json:"-"`
	ShowSnippets bool         `json:"show_snippets"`
	SortBy       SortCriteria `json:"sort_by"`

	// Performance
	Workers int           `json:"workers"`
	Timeout time.Duration `json:"timeout"`

	// Configuration file
	ConfigPath string `json:"config_path"`
}

// Validate validates a scan request
func (req *ScanRequest) Validate() error {
	if len(req.Paths) == 0 {
		return NewValidationError("paths cannot be empty")
	}

	if req.Threshold < 0.0 || req.Threshold > 1.0 {
		return NewValidationError("threshold must be between 0.0 and 1.0")
	}

	if req.MinLines < 1 {
		return NewValidationError("min_lines must be >= 1")
	}

	if req.MinTokens < 1 {
		return NewValidationError("min_tokens must be >= 1")
	}

	if req.OutputFormat != "" && !req.OutputFormat.IsValid() {
		return NewValidationError(fmt.Sprintf("unsupported output format: %s", req.OutputFormat))
	}

	if req.SortBy != "" && !req.SortBy.IsValid() {
		return NewValidationError(fmt.Sprintf("unsupported sort criteria: %s", req.SortBy))
	}

	return nil
}

// DefaultScanRequest returns a default scan request
func DefaultScanRequest() *ScanRequest {
	return &ScanRequest{
		Paths:           []string{"."},
		Recursive:       true,
		IncludePatterns: []string{"**/*.go"},
		ExcludePatterns: []string{"**/vendor/**", "**/testdata/**"},
		Threshold:       0.8,
		MinLines:        5,
		MinTokens:       20,
		SizePenalty:     true,
		CrossFile:       true,
		CollectNested:   true,
		IncludeTests:    true,
		OutputFormat:    OutputFormatText,
		ShowSnippets:    false,
		SortBy:          SortByPriority,
		Timeout:         5 * time.Minute,
	}
}

// ScanResponse represents the response from a similarity scan.
type ScanResponse struct {
	Matches    []*MatchRecord  `json:"matches" yaml:"matches"`
	Statistics *ScanStatistics `json:"statistics" yaml:"statistics"`

	// Metadata
	Request  *ScanRequest `json:"request,omitempty" yaml:"request,omitempty"`
	Duration int64        `json:"duration_ms" yaml:"duration_ms"`
	Success  bool         `json:"success" yaml:"success"`
	Error    string       `json:"error,omitempty" yaml:"error,omitempty"`
}

// SimilarityService defines the interface for similarity scan services
type SimilarityService interface {
	// Scan performs a similarity scan on the given request
	Scan(ctx context.Context, req *ScanRequest) (*ScanResponse, error)

	// ScanFiles performs a similarity scan on specific files
	ScanFiles(ctx context.Context, filePaths []string, req *ScanRequest) (*ScanResponse, error)

	// ComputeSimilarity computes similarity between two function snippets
	ComputeSimilarity(ctx context.Context, fragment1, fragment2 string, sizePenalty bool) (float64, error)
}

// OutputFormatter defines the interface for formatting scan results
type OutputFormatter interface {
	// FormatScanResponse formats a scan response according to the specified format
	FormatScanResponse(response *ScanResponse, format OutputFormat, writer io.Writer) error
}

// FileReader defines the interface for collecting and reading source files
type FileReader interface {
	// CollectGoFiles recursively finds Go source files in the given paths
	CollectGoFiles(paths []string, recursive bool, includePatterns, excludePatterns []string) ([]string, error)

	// ReadFile reads the content of a file
	ReadFile(path string) ([]byte, error)

	// FileExists checks if a file exists
	FileExists(path string) (bool, error)
}

// ConfigurationLoader defines the interface for loading scan configuration
type ConfigurationLoader interface {
	// LoadConfig loads scan configuration from an explicit path, or by
	// discovery when path is empty
	LoadConfig(path string) (*ScanRequest, error)

	// GetDefaultConfig returns the default scan configuration
	GetDefaultConfig() *ScanRequest
}
