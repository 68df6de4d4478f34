package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/alnah/go-wikipreview"
	"github.com/alnah/go-wikipreview/internal/fileutil"
)

// Sentinel errors for input discovery.
var (
	ErrInvalidExtension   = errors.New("file must have a wikitext or .json extension")
	ErrInvalidPattern     = errors.New("invalid glob pattern")
	ErrInvalidWorkerCount = errors.New("invalid worker count")
)

// stdinArg is the positional argument that selects stdin as input.
const stdinArg = "-"

// outputExtension is the extension of rendered files.
const outputExtension = ".html"

// inputExtensions lists the file extensions picked up from directories and globs.
var inputExtensions = []string{".wiki", ".mediawiki", ".wikitext", ".txt", ".json"}

// FileToRender represents a single file to process.
type FileToRender struct {
	InputPath  string
	OutputPath string
}

// isConversionPayload reports whether path holds a JSON conversion result
// rather than raw wikitext.
func (f FileToRender) isConversionPayload() bool {
	return strings.EqualFold(filepath.Ext(f.InputPath), ".json")
}

// discoverFiles expands every input (file, directory, or doublestar glob)
// into files to render. Duplicates are rendered once, in first-seen order.
func discoverFiles(inputs []string, output string) ([]FileToRender, error) {
	var files []FileToRender
	seen := make(map[string]bool)

	add := func(f FileToRender) {
		key := filepath.Clean(f.InputPath)
		if seen[key] {
			return
		}
		seen[key] = true
		files = append(files, f)
	}

	for _, input := range inputs {
		if isGlob(input) {
			found, err := expandGlob(input, output)
			if err != nil {
				return nil, err
			}
			for _, f := range found {
				add(f)
			}
			continue
		}

		info, err := os.Stat(input)
		if err != nil {
			return nil, err
		}

		if !info.IsDir() {
			if err := validateInputExtension(input); err != nil {
				return nil, err
			}
			add(FileToRender{InputPath: input, OutputPath: resolveOutputPath(input, output, "")})
			continue
		}

		found, err := walkDir(input, output)
		if err != nil {
			return nil, err
		}
		for _, f := range found {
			add(f)
		}
	}

	return files, nil
}

// walkDir collects wikitext files under dir, mirroring its layout in outputDir.
func walkDir(dir, outputDir string) ([]FileToRender, error) {
	var files []FileToRender
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return fmt.Errorf("scanning %s: %w", path, err)
		}
		if d.IsDir() || !hasInputExtension(path) {
			return nil
		}
		files = append(files, FileToRender{InputPath: path, OutputPath: resolveOutputPath(path, outputDir, dir)})
		return nil
	})
	return files, err
}

// expandGlob matches a doublestar pattern such as docs/**/*.wiki. Output
// paths mirror the matched files relative to the pattern's static prefix.
func expandGlob(pattern, outputDir string) ([]FileToRender, error) {
	slashed := filepath.ToSlash(pattern)
	if !doublestar.ValidatePattern(slashed) {
		return nil, fmt.Errorf("%w: %s", ErrInvalidPattern, pattern)
	}

	matches, err := doublestar.FilepathGlob(pattern, doublestar.WithFilesOnly())
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrInvalidPattern, pattern, err)
	}

	base, _ := doublestar.SplitPattern(slashed)
	base = filepath.FromSlash(base)

	files := make([]FileToRender, 0, len(matches))
	for _, m := range matches {
		if !hasInputExtension(m) {
			continue
		}
		files = append(files, FileToRender{InputPath: m, OutputPath: resolveOutputPath(m, outputDir, base)})
	}
	return files, nil
}

// resolveOutputPath determines the HTML output path for an input file.
func resolveOutputPath(inputPath, outputDir, baseInputDir string) string {
	// outputExtension is a valid constant, so the error is always nil.
	name, _ := fileutil.ReplaceExtension(filepath.Base(inputPath), strings.TrimPrefix(outputExtension, "."))

	if outputDir == "" {
		return filepath.Join(filepath.Dir(inputPath), name)
	}

	if hasOutputExtension(outputDir) {
		return outputDir
	}

	if baseInputDir != "" {
		relPath, err := filepath.Rel(baseInputDir, inputPath)
		if err == nil && !strings.HasPrefix(relPath, "..") {
			relDir := filepath.Dir(relPath)
			return filepath.Join(outputDir, relDir, name)
		}
	}

	return filepath.Join(outputDir, name)
}

// isGlob reports whether input contains doublestar meta characters.
func isGlob(input string) bool {
	return strings.ContainsAny(input, "*?[{")
}

// hasInputExtension reports whether path has a recognized input extension.
func hasInputExtension(path string) bool {
	return slices.Contains(inputExtensions, strings.ToLower(filepath.Ext(path)))
}

// hasOutputExtension reports whether path names an .html file.
func hasOutputExtension(path string) bool {
	return strings.EqualFold(filepath.Ext(path), outputExtension)
}

// validateInputExtension checks that the file has a recognized extension.
func validateInputExtension(path string) error {
	if !hasInputExtension(path) {
		return fmt.Errorf("%w: got %q", ErrInvalidExtension, filepath.Ext(path))
	}
	return nil
}

// validateWorkers checks that the worker count is within valid bounds.
func validateWorkers(n int) error {
	if n < 0 {
		return fmt.Errorf("%w: %d (must be >= 0, 0 means auto)", ErrInvalidWorkerCount, n)
	}
	if n > wikipreview.MaxWorkers {
		return fmt.Errorf("%w: %d (maximum is %d)", ErrInvalidWorkerCount, n, wikipreview.MaxWorkers)
	}
	return nil
}
