package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/lempiji/similarity-d/app"
	"github.com/lempiji/similarity-d/domain"
	"github.com/lempiji/similarity-d/service"
)

// ScanCommand handles the similarity scan CLI command.
type ScanCommand struct {
	// Input parameters
	recursive       bool
	configFile      string
	includePatterns []string
	excludePatterns []string

	// Analysis configuration
	threshold     float64
	minLines      int
	minTokens     int
	sizePenalty   bool
	crossFile     bool
	collectNested bool
	includeTests  bool

	// Output format flags (only one should be true)
	json bool
	yaml bool
	csv  bool

	// Output options
	showSnippets bool
	sortBy       string

	// Performance options
	workers int
	timeout time.Duration
}

// NewScanCommand creates a new scan command with defaults.
func NewScanCommand() *ScanCommand {
	defaults := domain.DefaultScanRequest()
	return &ScanCommand{
		recursive:     defaults.Recursive,
		threshold:     defaults.Threshold,
		minLines:      defaults.MinLines,
		minTokens:     defaults.MinTokens,
		sizePenalty:   defaults.SizePenalty,
		crossFile:     defaults.CrossFile,
		collectNested: defaults.CollectNested,
		includeTests:  defaults.IncludeTests,
		showSnippets:  defaults.ShowSnippets,
		sortBy:        string(defaults.SortBy),
		timeout:       defaults.Timeout,
	}
}

// CreateCobraCommand creates the cobra command for the similarity scan.
func (c *ScanCommand) CreateCobraCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scan [paths...]",
		Short: "Detect structurally similar functions",
		Long: `Detect structurally similar functions using tree edit distance.

Function bodies are normalized into identity-erased canonical trees, so
identifier names and literal values never affect the score, while control
flow and operators do. Every function pair passing the line and token
filters is scored and the matches are ranked by priority (the larger
function's line count times the similarity).

Examples:
  # Scan the current directory
  similarity-d scan .

  # Scan with a custom similarity threshold
  similarity-d scan --threshold 0.9 ./internal

  # Top-level functions only, same-file matches only
  similarity-d scan --nested=false --cross-file=false ./pkg

  # Show matching source snippets as JSON
  similarity-d scan --snippets --json .`,
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runScan(cmd, args)
		},
	}

	flags := cmd.Flags()
	flags.BoolVar(&c.recursive, "recursive", c.recursive, "Recursively scan directories")
	flags.StringVarP(&c.configFile, "config", "c", "", "Config file path (default: discover .similarity.toml)")
	flags.StringSliceVar(&c.includePatterns, "include", nil, "Glob patterns for files to include")
	flags.StringSliceVar(&c.excludePatterns, "exclude", nil, "Glob patterns for files to exclude")

	flags.Float64VarP(&c.threshold, "threshold", "t", c.threshold, "Minimum similarity for a reported match (0.0-1.0)")
	flags.IntVar(&c.minLines, "min-lines", c.minLines, "Minimum line count for a function to be considered")
	flags.IntVar(&c.minTokens, "min-tokens", c.minTokens, "Minimum canonical tree node count for a function to be considered")
	flags.BoolVar(&c.sizePenalty, "size-penalty", c.sizePenalty, "Penalize matches between functions of very different sizes")
	flags.BoolVar(&c.crossFile, "cross-file", c.crossFile, "Allow matches spanning two different files")
	flags.BoolVar(&c.collectNested, "nested", c.collectNested, "Collect nested function literals inside function bodies")
	flags.BoolVar(&c.includeTests, "include-tests", c.includeTests, "Include Go test functions")

	flags.BoolVar(&c.json, "json", false, "Output as JSON")
	flags.BoolVar(&c.yaml, "yaml", false, "Output as YAML")
	flags.BoolVar(&c.csv, "csv", false, "Output as CSV")
	cmd.MarkFlagsMutuallyExclusive("json", "yaml", "csv")

	flags.BoolVar(&c.showSnippets, "snippets", c.showSnippets, "Include source snippets in output")
	flags.StringVar(&c.sortBy, "sort", c.sortBy, "Sort matches by: priority, similarity, location")

	flags.IntVar(&c.workers, "workers", 0, "Number of worker goroutines (0 = one per CPU)")
	flags.DurationVar(&c.timeout, "timeout", c.timeout, "Maximum scan duration")

	return cmd
}

// runScan builds the request (config file values first, changed flags on
// top) and executes the use case.
func (c *ScanCommand) runScan(cmd *cobra.Command, args []string) error {
	configLoader := service.NewConfigurationLoader()
	req, err := configLoader.LoadConfig(c.configFile)
	if err != nil {
		return err
	}

	if len(args) > 0 {
		req.Paths = args
	}
	c.applyChangedFlags(cmd.Flags(), req)
	req.OutputWriter = cmd.OutOrStdout()

	progress := service.NewProgressManager()
	defer progress.Close()

	useCase := app.NewScanUseCase(
		service.NewSimilarityService(progress),
		service.NewFileReader(),
		service.NewOutputFormatter(),
		progress,
	)

	if err := useCase.Execute(context.Background(), req); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return err
	}
	return nil
}

// applyChangedFlags overlays only the flags the user actually set, so the
// config file keeps authority over everything left untouched.
func (c *ScanCommand) applyChangedFlags(flags *pflag.FlagSet, req *domain.ScanRequest) {
	if flags.Changed("recursive") {
		req.Recursive = c.recursive
	}
	if flags.Changed("include") {
		req.IncludePatterns = c.includePatterns
	}
	if flags.Changed("exclude") {
		req.ExcludePatterns = c.excludePatterns
	}
	if flags.Changed("threshold") {
		req.Threshold = c.threshold
	}
	if flags.Changed("min-lines") {
		req.MinLines = c.minLines
	}
	if flags.Changed("min-tokens") {
		req.MinTokens = c.minTokens
	}
	if flags.Changed("size-penalty") {
		req.SizePenalty = c.sizePenalty
	}
	if flags.Changed("cross-file") {
		req.CrossFile = c.crossFile
	}
	if flags.Changed("nested") {
		req.CollectNested = c.collectNested
	}
	if flags.Changed("include-tests") {
		req.IncludeTests = c.includeTests
	}
	if flags.Changed("json") || flags.Changed("yaml") || flags.Changed("csv") {
		req.OutputFormat = c.outputFormat()
	}
	if flags.Changed("snippets") {
		req.ShowSnippets = c.showSnippets
	}
	if flags.Changed("sort") {
		req.SortBy = domain.SortCriteria(c.sortBy)
	}
	if flags.Changed("workers") {
		req.Workers = c.workers
	}
	if flags.Changed("timeout") {
		req.Timeout = c.timeout
	}
}

func (c *ScanCommand) outputFormat() domain.OutputFormat {
	switch {
	case c.json:
		return domain.OutputFormatJSON
	case c.yaml:
		return domain.OutputFormatYAML
	case c.csv:
		return domain.OutputFormatCSV
	default:
		return domain.OutputFormatText
	}
}
