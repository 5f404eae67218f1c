package domain

import "io"

// OutputFormat identifies a report serialization format.
type OutputFormat string

const (
	OutputFormatText OutputFormat = "text"
	OutputFormatJSON OutputFormat = "json"
	OutputFormatYAML OutputFormat = "yaml"
	OutputFormatCSV  OutputFormat = "csv"
)

// IsValid reports whether the format is one of the supported values.
func (f OutputFormat) IsValid() bool {
	switch f {
	case OutputFormatText, OutputFormatJSON, OutputFormatYAML, OutputFormatCSV:
		return true
	}
	return false
}

// SortCriteria defines how reported matches are ordered in output.
// Matches are always collected in priority order; a different criteria
// only reorders the final report.
type SortCriteria string

const (
	SortByPriority   SortCriteria = "priority"
	SortBySimilarity SortCriteria = "similarity"
	SortByLocation   SortCriteria = "location"
)

// IsValid reports whether the criteria is one of the supported values.
func (s SortCriteria) IsValid() bool {
	switch s {
	case SortByPriority, SortBySimilarity, SortByLocation:
		return true
	}
	return false
}

// ProgressManager manages progress tracking for a scan.
//
// Implementations live in the service layer.
type ProgressManager interface {
	// Initialize sets up progress tracking with the maximum value
	Initialize(maxValue int)

	// Start starts the progress bar
	Start()

	// Complete marks the progress as completed
	Complete(success bool)

	// Update updates the progress
	Update(processed, total int)

	// SetWriter sets the output writer for progress bars
	SetWriter(writer io.Writer)

	// IsInteractive returns true if progress bars should be shown
	IsInteractive() bool

	// Close cleans up any resources
	Close()
}
