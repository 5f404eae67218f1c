package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/viper"

	"github.com/lempiji/similarity-d/domain"
)

// DefaultConfigFileName is the config file discovered in the target tree.
const DefaultConfigFileName = ".similarity.toml"

// TomlConfig represents the structure of .similarity.toml. Boolean fields
// are pointers so an unset value can be told apart from an explicit false.
type TomlConfig struct {
	Similarity SimilaritySection `toml:"similarity"`
	Input      InputSection      `toml:"input"`
	Output     OutputSection     `toml:"output"`
}

// SimilaritySection holds the analysis settings.
type SimilaritySection struct {
	Threshold     float64 `toml:"threshold"`
	MinLines      int     `toml:"min_lines"`
	MinTokens     int     `toml:"min_tokens"`
	SizePenalty   *bool   `toml:"size_penalty"`
	CrossFile     *bool   `toml:"cross_file"`
	CollectNested *bool   `toml:"collect_nested"`
	IncludeTests  *bool   `toml:"include_tests"`
	Workers       int     `toml:"workers"`
}

// InputSection holds the file collection settings.
type InputSection struct {
	Paths           []string `toml:"paths"`
	Recursive       *bool    `toml:"recursive"`
	IncludePatterns []string `toml:"include_patterns"`
	ExcludePatterns []string `toml:"exclude_patterns"`
}

// OutputSection holds the report settings.
type OutputSection struct {
	Format       string `toml:"format"`
	ShowSnippets *bool  `toml:"show_snippets"`
	SortBy       string `toml:"sort_by"`
}

// LoadConfigFile reads and parses a .similarity.toml file.
func LoadConfigFile(path string) (*TomlConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, domain.NewConfigError(fmt.Sprintf("failed to read config file: %s", path), err)
	}

	var cfg TomlConfig
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, domain.NewConfigError(fmt.Sprintf("failed to parse config file: %s", path), err)
	}

	return &cfg, nil
}

// FindConfigFile walks up from startDir looking for a config file.
// Returns an empty string when none is found.
func FindConfigFile(startDir string) string {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return ""
	}

	for {
		candidate := filepath.Join(dir, DefaultConfigFileName)
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return ""
		}
		dir = parent
	}
}

// ApplyToRequest overlays the file values onto a request. Only values the
// file actually sets are applied, so CLI flags merged afterwards keep
// precedence over unset file entries.
func (c *TomlConfig) ApplyToRequest(req *domain.ScanRequest) {
	if c.Similarity.Threshold > 0 {
		req.Threshold = c.Similarity.Threshold
	}
	if c.Similarity.MinLines > 0 {
		req.MinLines = c.Similarity.MinLines
	}
	if c.Similarity.MinTokens > 0 {
		req.MinTokens = c.Similarity.MinTokens
	}
	if c.Similarity.SizePenalty != nil {
		req.SizePenalty = *c.Similarity.SizePenalty
	}
	if c.Similarity.CrossFile != nil {
		req.CrossFile = *c.Similarity.CrossFile
	}
	if c.Similarity.CollectNested != nil {
		req.CollectNested = *c.Similarity.CollectNested
	}
	if c.Similarity.IncludeTests != nil {
		req.IncludeTests = *c.Similarity.IncludeTests
	}
	if c.Similarity.Workers > 0 {
		req.Workers = c.Similarity.Workers
	}

	if len(c.Input.Paths) > 0 {
		req.Paths = c.Input.Paths
	}
	if c.Input.Recursive != nil {
		req.Recursive = *c.Input.Recursive
	}
	if len(c.Input.IncludePatterns) > 0 {
		req.IncludePatterns = c.Input.IncludePatterns
	}
	if len(c.Input.ExcludePatterns) > 0 {
		req.ExcludePatterns = c.Input.ExcludePatterns
	}

	if c.Output.Format != "" {
		req.OutputFormat = domain.OutputFormat(c.Output.Format)
	}
	if c.Output.ShowSnippets != nil {
		req.ShowSnippets = *c.Output.ShowSnippets
	}
	if c.Output.SortBy != "" {
		req.SortBy = domain.SortCriteria(c.Output.SortBy)
	}
}

// SaveDefaultConfig writes a default config file at the given path.
func SaveDefaultConfig(path string) error {
	if _, err := os.Stat(path); err == nil {
		return domain.NewConfigError(fmt.Sprintf("config file already exists: %s", path), nil)
	}

	defaults := domain.DefaultScanRequest()

	v := viper.New()
	v.Set("similarity.threshold", defaults.Threshold)
	v.Set("similarity.min_lines", defaults.MinLines)
	v.Set("similarity.min_tokens", defaults.MinTokens)
	v.Set("similarity.size_penalty", defaults.SizePenalty)
	v.Set("similarity.cross_file", defaults.CrossFile)
	v.Set("similarity.collect_nested", defaults.CollectNested)
	v.Set("similarity.include_tests", defaults.IncludeTests)
	v.Set("input.paths", defaults.Paths)
	v.Set("input.recursive", defaults.Recursive)
	v.Set("input.include_patterns", defaults.IncludePatterns)
	v.Set("input.exclude_patterns", defaults.ExcludePatterns)
	v.Set("output.format", string(defaults.OutputFormat))
	v.Set("output.show_snippets", defaults.ShowSnippets)
	v.Set("output.sort_by", string(defaults.SortBy))

	if err := v.WriteConfigAs(path); err != nil {
		return domain.NewConfigError(fmt.Sprintf("failed to write config file: %s", path), err)
	}
	return nil
}
