package service

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/lempiji/similarity-d/domain"
)

// OutputFormatterImpl implements the domain.OutputFormatter interface.
type OutputFormatterImpl struct{}

// NewOutputFormatter creates a new output formatter.
func NewOutputFormatter() *OutputFormatterImpl {
	return &OutputFormatterImpl{}
}

// FormatScanResponse formats a scan response according to the specified format.
func (f *OutputFormatterImpl) FormatScanResponse(response *domain.ScanResponse, format domain.OutputFormat, writer io.Writer) error {
	switch format {
	case domain.OutputFormatText:
		return f.formatAsText(response, writer)
	case domain.OutputFormatJSON:
		return f.formatAsJSON(response, writer)
	case domain.OutputFormatYAML:
		return f.formatAsYAML(response, writer)
	case domain.OutputFormatCSV:
		return f.formatAsCSV(response, writer)
	default:
		return domain.NewUnsupportedFormatError(string(format))
	}
}

// formatAsText formats the response as human-readable text.
func (f *OutputFormatterImpl) formatAsText(response *domain.ScanResponse, writer io.Writer) error {
	if !response.Success {
		fmt.Fprintf(writer, "Similarity scan failed: %s\n", response.Error)
		return nil
	}

	fmt.Fprintf(writer, "Similar Functions\n")
	fmt.Fprintf(writer, "=================\n\n")

	if response.Statistics != nil {
		fmt.Fprintf(writer, "Summary:\n")
		fmt.Fprintf(writer, "  Files analyzed: %d\n", response.Statistics.FilesAnalyzed)
		if response.Statistics.FilesSkipped > 0 {
			fmt.Fprintf(writer, "  Files skipped: %d\n", response.Statistics.FilesSkipped)
		}
		fmt.Fprintf(writer, "  Lines analyzed: %d\n", response.Statistics.LinesAnalyzed)
		fmt.Fprintf(writer, "  Functions analyzed: %d\n", response.Statistics.FunctionsAnalyzed)
		fmt.Fprintf(writer, "  Matches found: %d\n", response.Statistics.TotalMatches)

		if response.Statistics.AverageSimilarity > 0 {
			fmt.Fprintf(writer, "  Average similarity: %.3f\n", response.Statistics.AverageSimilarity)
		}

		fmt.Fprintf(writer, "  Scan duration: %dms\n\n", response.Duration)
	}

	if len(response.Matches) == 0 {
		fmt.Fprintf(writer, "No similar functions detected.\n")
		return nil
	}

	fmt.Fprintf(writer, "Matches:\n")
	fmt.Fprintf(writer, "========\n\n")

	showSnippets := response.Request != nil && response.Request.ShowSnippets

	for i, match := range response.Matches {
		if match == nil {
			continue
		}
		fmt.Fprintf(writer, "%d. similarity: %.3f, priority: %.1f\n", i+1, match.Similarity, match.Priority)
		fmt.Fprintf(writer, "   %s %s (%d lines)\n", match.Left.String(), match.Left.Function, match.Left.LineCount)
		fmt.Fprintf(writer, "   %s %s (%d lines)\n", match.Right.String(), match.Right.Function, match.Right.LineCount)

		if showSnippets && match.Left.Snippet != "" {
			fmt.Fprintf(writer, "   Snippet:\n")
			for _, line := range strings.Split(match.Left.Snippet, "\n") {
				fmt.Fprintf(writer, "     %s\n", line)
			}
		}
		fmt.Fprintf(writer, "\n")
	}

	return nil
}

// formatAsJSON formats the response as indented JSON.
func (f *OutputFormatterImpl) formatAsJSON(response *domain.ScanResponse, writer io.Writer) error {
	encoder := json.NewEncoder(writer)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(response); err != nil {
		return domain.NewOutputError("failed to encode JSON output", err)
	}
	return nil
}

// formatAsYAML formats the response as YAML.
func (f *OutputFormatterImpl) formatAsYAML(response *domain.ScanResponse, writer io.Writer) error {
	encoder := yaml.NewEncoder(writer)
	defer encoder.Close()
	encoder.SetIndent(2)
	if err := encoder.Encode(response); err != nil {
		return domain.NewOutputError("failed to encode YAML output", err)
	}
	return nil
}

// formatAsCSV formats the matches as CSV, one row per match.
func (f *OutputFormatterImpl) formatAsCSV(response *domain.ScanResponse, writer io.Writer) error {
	w := csv.NewWriter(writer)

	header := []string{
		"left_file", "left_function", "left_start_line", "left_end_line",
		"right_file", "right_function", "right_start_line", "right_end_line",
		"similarity", "priority",
	}
	if err := w.Write(header); err != nil {
		return domain.NewOutputError("failed to write CSV header", err)
	}

	for _, match := range response.Matches {
		if match == nil {
			continue
		}
		row := []string{
			match.Left.FilePath,
			match.Left.Function,
			strconv.Itoa(match.Left.StartLine),
			strconv.Itoa(match.Left.EndLine),
			match.Right.FilePath,
			match.Right.Function,
			strconv.Itoa(match.Right.StartLine),
			strconv.Itoa(match.Right.EndLine),
			strconv.FormatFloat(match.Similarity, 'f', 4, 64),
			strconv.FormatFloat(match.Priority, 'f', 2, 64),
		}
		if err := w.Write(row); err != nil {
			return domain.NewOutputError("failed to write CSV row", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return domain.NewOutputError("failed to flush CSV output", err)
	}
	return nil
}
