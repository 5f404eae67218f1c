package service

import (
	"context"
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/lempiji/similarity-d/domain"
	"github.com/lempiji/similarity-d/internal/analyzer"
	"github.com/lempiji/similarity-d/internal/parser"
)

// SimilarityService implements the domain.SimilarityService interface.
type SimilarityService struct {
	progress domain.ProgressManager
}

// NewSimilarityService creates a new similarity service.
// progress can be nil - the service can work without progress reporting.
func NewSimilarityService(progress domain.ProgressManager) *SimilarityService {
	return &SimilarityService{
		progress: progress,
	}
}

// Scan performs a similarity scan on the given request. req.Paths must
// already contain the actual Go files to analyze.
func (s *SimilarityService) Scan(ctx context.Context, req *domain.ScanRequest) (*domain.ScanResponse, error) {
	if ctx == nil {
		return nil, fmt.Errorf("context cannot be nil")
	}
	if req == nil {
		return nil, fmt.Errorf("scan request cannot be nil")
	}
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("invalid scan request: %w", err)
	}

	return s.ScanFiles(ctx, req.Paths, req)
}

// ScanFiles performs a similarity scan on specific files.
func (s *SimilarityService) ScanFiles(ctx context.Context, filePaths []string, req *domain.ScanRequest) (*domain.ScanResponse, error) {
	if ctx == nil {
		return nil, fmt.Errorf("context cannot be nil")
	}
	if req == nil {
		return nil, fmt.Errorf("scan request cannot be nil")
	}
	if len(filePaths) == 0 {
		return nil, fmt.Errorf("file paths cannot be empty")
	}

	startTime := time.Now()

	if req.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, req.Timeout)
		defer cancel()
	}

	goParser := parser.New()
	extractor := analyzer.NewExtractor(analyzer.ExtractOptions{
		CollectNested: req.CollectNested,
		IncludeTests:  req.IncludeTests,
	})

	stats := &domain.ScanStatistics{}
	var records []*analyzer.FunctionRecord

	if s.progress != nil {
		s.progress.Initialize(len(filePaths))
		s.progress.Start()
	}

	for i, filePath := range filePaths {
		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("similarity scan cancelled: %w", ctx.Err())
		default:
		}

		content, err := os.ReadFile(filePath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: Failed to read file %s: %v\n", filePath, err)
			stats.FilesSkipped++
			continue
		}

		parseResult, err := goParser.Parse(ctx, content)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: Failed to parse file %s: %v\n", filePath, err)
			stats.FilesSkipped++
			continue
		}

		stats.FilesAnalyzed++
		stats.LinesAnalyzed += len(strings.Split(string(content), "\n"))

		records = append(records, extractor.ExtractFunctions(parseResult, filePath)...)

		if s.progress != nil {
			s.progress.Update(i+1, len(filePaths))
		}
	}

	stats.FunctionsAnalyzed = len(records)

	collector := analyzer.NewMatchCollector(analyzer.CollectorConfig{
		Threshold:   req.Threshold,
		MinLines:    req.MinLines,
		MinTokens:   req.MinTokens,
		SizePenalty: req.SizePenalty,
		CrossFile:   req.CrossFile,
		Workers:     req.Workers,
	})
	matches := collector.Collect(records)

	if s.progress != nil {
		s.progress.Complete(true)
	}

	response := s.buildResponse(matches, stats, req)
	response.Duration = time.Since(startTime).Milliseconds()
	return response, nil
}

// ComputeSimilarity computes similarity between two function snippets.
// Each fragment must contain at least one function declaration; a package
// clause is supplied so bare declarations parse.
func (s *SimilarityService) ComputeSimilarity(ctx context.Context, fragment1, fragment2 string, sizePenalty bool) (float64, error) {
	if ctx == nil {
		return 0, fmt.Errorf("context cannot be nil")
	}

	rec1, err := s.parseFragment(ctx, fragment1)
	if err != nil {
		return 0, fmt.Errorf("fragment 1: %w", err)
	}
	rec2, err := s.parseFragment(ctx, fragment2)
	if err != nil {
		return 0, fmt.Errorf("fragment 2: %w", err)
	}

	return analyzer.Similarity(rec1, rec2, sizePenalty), nil
}

// parseFragment parses a snippet and returns its first function record.
func (s *SimilarityService) parseFragment(ctx context.Context, fragment string) (*analyzer.FunctionRecord, error) {
	source := fragment
	if !strings.Contains(fragment, "package ") {
		source = "package fragment\n\n" + fragment
	}

	goParser := parser.New()
	parseResult, err := goParser.Parse(ctx, []byte(source))
	if err != nil {
		return nil, domain.NewParseError("fragment", err)
	}

	extractor := analyzer.NewExtractor(analyzer.DefaultExtractOptions())
	records := extractor.ExtractFunctions(parseResult, "fragment.go")
	if len(records) == 0 {
		return nil, domain.NewInvalidInputError("fragment contains no function declaration", nil)
	}
	return records[0], nil
}

// buildResponse converts collector matches into the domain response,
// applying the requested report ordering.
func (s *SimilarityService) buildResponse(matches []*analyzer.Match, stats *domain.ScanStatistics, req *domain.ScanRequest) *domain.ScanResponse {
	out := make([]*domain.MatchRecord, 0, len(matches))
	totalSimilarity := 0.0

	for _, m := range matches {
		out = append(out, &domain.MatchRecord{
			Left:       s.toLocation(m.A, req.ShowSnippets),
			Right:      s.toLocation(m.B, req.ShowSnippets),
			Similarity: m.Similarity,
			Priority:   m.Priority,
		})
		totalSimilarity += m.Similarity
	}

	stats.TotalMatches = len(out)
	if len(out) > 0 {
		stats.AverageSimilarity = totalSimilarity / float64(len(out))
	}

	sortMatchRecords(out, req.SortBy)

	return &domain.ScanResponse{
		Matches:    out,
		Statistics: stats,
		Request:    req,
		Success:    true,
	}
}

func (s *SimilarityService) toLocation(rec *analyzer.FunctionRecord, withSnippet bool) domain.MatchLocation {
	loc := domain.MatchLocation{
		FilePath:  rec.FilePath,
		Function:  rec.Name,
		StartLine: rec.StartLine,
		EndLine:   rec.EndLine,
		LineCount: rec.LineCount(),
	}
	if withSnippet {
		loc.Snippet = rec.Snippet
	}
	return loc
}

// sortMatchRecords reorders the report. Matches arrive in priority order
// from the collector; other criteria only change presentation.
func sortMatchRecords(matches []*domain.MatchRecord, sortBy domain.SortCriteria) {
	switch sortBy {
	case domain.SortBySimilarity:
		sort.SliceStable(matches, func(i, j int) bool {
			return matches[i].Similarity > matches[j].Similarity
		})
	case domain.SortByLocation:
		sort.SliceStable(matches, func(i, j int) bool {
			if matches[i].Left.FilePath != matches[j].Left.FilePath {
				return matches[i].Left.FilePath < matches[j].Left.FilePath
			}
			return matches[i].Left.StartLine < matches[j].Left.StartLine
		})
	default:
		// Priority order is the collector's output order.
	}
}
