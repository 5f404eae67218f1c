package service

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/lempiji/similarity-d/domain"
)

// Directories never descended into, regardless of patterns.
var skippedDirs = map[string]bool{
	"vendor":       true,
	"testdata":     true,
	"node_modules": true,
}

// FileReaderImpl implements the domain.FileReader interface.
type FileReaderImpl struct{}

// NewFileReader creates a new file reader service.
func NewFileReader() *FileReaderImpl {
	return &FileReaderImpl{}
}

// CollectGoFiles finds Go source files in the given paths. The result is
// deduplicated and sorted so file collection is deterministic.
func (f *FileReaderImpl) CollectGoFiles(paths []string, recursive bool, includePatterns, excludePatterns []string) ([]string, error) {
	seen := make(map[string]bool)
	var files []string

	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			return nil, domain.NewFileNotFoundError(path, err)
		}

		if info.IsDir() {
			dirFiles, err := f.collectFromDirectory(path, recursive, includePatterns, excludePatterns)
			if err != nil {
				return nil, err
			}
			for _, file := range dirFiles {
				if !seen[file] {
					seen[file] = true
					files = append(files, file)
				}
			}
		} else if f.IsValidGoFile(path) && f.shouldIncludeFile(path, includePatterns, excludePatterns) {
			if !seen[path] {
				seen[path] = true
				files = append(files, path)
			}
		}
	}

	sort.Strings(files)
	return files, nil
}

// ReadFile reads the content of a file.
func (f *FileReaderImpl) ReadFile(path string) ([]byte, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, domain.NewFileNotFoundError(path, err)
	}
	return content, nil
}

// IsValidGoFile checks if a file is a Go source file.
func (f *FileReaderImpl) IsValidGoFile(path string) bool {
	return strings.ToLower(filepath.Ext(path)) == ".go"
}

// FileExists checks if a file exists.
func (f *FileReaderImpl) FileExists(path string) (bool, error) {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return !info.IsDir(), nil
}

// collectFromDirectory collects Go files from a directory.
func (f *FileReaderImpl) collectFromDirectory(dirPath string, recursive bool, includePatterns, excludePatterns []string) ([]string, error) {
	var files []string

	err := filepath.WalkDir(dirPath, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if d.IsDir() {
			if path == dirPath {
				return nil
			}
			name := d.Name()
			if skippedDirs[name] || strings.HasPrefix(name, ".") {
				return filepath.SkipDir
			}
			if !recursive {
				return filepath.SkipDir
			}
			return nil
		}

		if f.IsValidGoFile(path) && f.shouldIncludeFile(path, includePatterns, excludePatterns) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, domain.NewFileNotFoundError(dirPath, err)
	}

	return files, nil
}

// shouldIncludeFile applies the include and exclude glob patterns to a
// path. Patterns match against the slash-separated path and against the
// base name, so both "**/*_gen.go" and "*_gen.go" behave as expected.
func (f *FileReaderImpl) shouldIncludeFile(path string, includePatterns, excludePatterns []string) bool {
	slashPath := filepath.ToSlash(path)
	base := filepath.Base(path)

	for _, pattern := range excludePatterns {
		if matchesPattern(pattern, slashPath, base) {
			return false
		}
	}

	if len(includePatterns) == 0 {
		return true
	}
	for _, pattern := range includePatterns {
		if matchesPattern(pattern, slashPath, base) {
			return true
		}
	}
	return false
}

func matchesPattern(pattern, slashPath, base string) bool {
	if matched, _ := doublestar.Match(pattern, slashPath); matched {
		return true
	}
	if matched, _ := doublestar.Match(pattern, base); matched {
		return true
	}
	return false
}
