package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/alnah/go-wikipreview/internal/fileutil"
	"github.com/alnah/go-wikipreview/internal/yamlutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
	ErrFieldTooLong    = errors.New("field exceeds maximum length")
	ErrInvalidValue    = errors.New("invalid config value")
)

// Field length limits for multi-tenant safety.
const (
	MaxPathLength           = 4096 // Directory and file paths
	MaxURLLength            = 2048 // Browser limit, bounds imagePrefix
	MaxStyleLength          = 4096 // Style name or CSS file path
	MaxHighlightStyleLength = 50   // "github", "monokai-light"
	MaxTitleLength          = 200  // Document <title>
	MaxLangLength           = 35   // BCP 47 tag, e.g. "en", "pt-BR"
)

// Nesting bounds for render.maxNesting. Zero selects the renderer default.
const (
	MinNesting = 1
	MaxNesting = 256
)

// ConfigDirName is the directory under the user config dir searched for named configs.
const ConfigDirName = "go-wikipreview"

// langPattern accepts the common shapes of a BCP 47 language tag.
var langPattern = regexp.MustCompile(`^[A-Za-z]{2,8}(-[A-Za-z0-9]{1,8})*$`)

// Config holds all configuration for preview rendering.
type Config struct {
	Input    InputConfig    `yaml:"input"`
	Output   OutputConfig   `yaml:"output"`
	Render   RenderConfig   `yaml:"render"`
	Style    string         `yaml:"style"` // Embedded style name or CSS file path (empty = default style)
	Assets   AssetsConfig   `yaml:"assets"`
	Document DocumentConfig `yaml:"document"`
}

// InputConfig defines input source options.
type InputConfig struct {
	DefaultDir string `yaml:"defaultDir"` // Default input directory (empty = must specify)
}

// OutputConfig defines output destination options.
type OutputConfig struct {
	DefaultDir string `yaml:"defaultDir"` // Default output directory (empty = same as source)
	Standalone bool   `yaml:"standalone"` // Wrap fragments in a full HTML document
	Sanitize   bool   `yaml:"sanitize"`   // Run the allow-list sanitizer on rendered HTML
	ImageDir   string `yaml:"imageDir"`   // Rewrite image URLs to file:// under this directory
}

// RenderConfig defines wikitext rendering options.
type RenderConfig struct {
	ImagePrefix    string `yaml:"imagePrefix"`    // Prepended to image names (default: /images/)
	MaxNesting     int    `yaml:"maxNesting"`     // List depth and inline recursion bound (0 = default)
	HighlightStyle string `yaml:"highlightStyle"` // Chroma style for <syntaxhighlight> (default: github)
}

// AssetsConfig defines asset loading options.
type AssetsConfig struct {
	BasePath string `yaml:"basePath"` // Empty = use embedded styles
}

// DocumentConfig defines standalone document options.
type DocumentConfig struct {
	Title string `yaml:"title"` // Empty = first header, then "Preview"
	Lang  string `yaml:"lang"`  // <html lang>, default "en"
}

// Validate checks field lengths and value ranges.
// Called automatically by LoadConfig, but available for consumers
// who construct Config manually (e.g., API adapters, library users).
func (c *Config) Validate() error {
	fields := []struct {
		name  string
		value string
		max   int
	}{
		{"input.defaultDir", c.Input.DefaultDir, MaxPathLength},
		{"output.defaultDir", c.Output.DefaultDir, MaxPathLength},
		{"output.imageDir", c.Output.ImageDir, MaxPathLength},
		{"render.imagePrefix", c.Render.ImagePrefix, MaxURLLength},
		{"render.highlightStyle", c.Render.HighlightStyle, MaxHighlightStyleLength},
		{"style", c.Style, MaxStyleLength},
		{"assets.basePath", c.Assets.BasePath, MaxPathLength},
		{"document.title", c.Document.Title, MaxTitleLength},
		{"document.lang", c.Document.Lang, MaxLangLength},
	}
	for _, f := range fields {
		if err := validateFieldLength(f.name, f.value, f.max); err != nil {
			return err
		}
	}

	if c.Render.MaxNesting != 0 && (c.Render.MaxNesting < MinNesting || c.Render.MaxNesting > MaxNesting) {
		return fmt.Errorf("%w: render.maxNesting must be between %d and %d, got %d",
			ErrInvalidValue, MinNesting, MaxNesting, c.Render.MaxNesting)
	}

	if c.Document.Lang != "" && !langPattern.MatchString(c.Document.Lang) {
		return fmt.Errorf("%w: document.lang %q is not a language tag", ErrInvalidValue, c.Document.Lang)
	}

	if strings.ContainsAny(c.Render.ImagePrefix, "\"<>\x00") {
		return fmt.Errorf("%w: render.imagePrefix contains reserved characters", ErrInvalidValue)
	}

	return nil
}

// validateFieldLength checks if a field exceeds its maximum allowed length.
func validateFieldLength(fieldName, value string, maxLength int) error {
	if len(value) > maxLength {
		return fmt.Errorf("%w: %s (%d chars, max %d)", ErrFieldTooLong, fieldName, len(value), maxLength)
	}
	return nil
}

// DefaultConfig returns the configuration used when no file is given:
// standalone, sanitized documents with the renderer's own defaults.
func DefaultConfig() *Config {
	return &Config{
		Input:  InputConfig{DefaultDir: ""},
		Output: OutputConfig{DefaultDir: "", Standalone: true, Sanitize: true},
		Render: RenderConfig{},
		Assets: AssetsConfig{BasePath: ""},
	}
}

// LoadConfig loads configuration from a file path or config name.
// If nameOrPath contains a path separator, it's treated as a file path.
// Otherwise, it's treated as a config name and searched in standard locations.
// Keys absent from the file keep their DefaultConfig values.
// Returns error if the file is not found (no silent fallback).
func LoadConfig(nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	var configPath string
	var err error

	if fileutil.IsFilePath(nameOrPath) {
		configPath = nameOrPath
	} else {
		configPath, err = resolveConfigPath(nameOrPath)
		if err != nil {
			return nil, err
		}
	}

	data, err := os.ReadFile(configPath) // #nosec G304 -- config path is user-provided
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := yamlutil.Decode(data, cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// resolveConfigPath searches for a config file by name in standard locations.
// Tries extensions in order: .yaml, .yml
// Tries locations in order: current directory, ~/.config/go-wikipreview/
func resolveConfigPath(name string) (string, error) {
	extensions := []string{".yaml", ".yml"}
	triedPaths := make([]string, 0, len(extensions)*2) // 2 locations

	// Try current directory first (both extensions)
	for _, ext := range extensions {
		localPath := name + ext
		if fileutil.FileExists(localPath) {
			return localPath, nil
		}
		triedPaths = append(triedPaths, localPath)
	}

	// Try user config directory (both extensions)
	userConfigDir, err := os.UserConfigDir()
	if err == nil {
		for _, ext := range extensions {
			userPath := filepath.Join(userConfigDir, ConfigDirName, name+ext)
			if fileutil.FileExists(userPath) {
				return userPath, nil
			}
			triedPaths = append(triedPaths, userPath)
		}
	}

	return "", fmt.Errorf("%w: tried %s", ErrConfigNotFound, strings.Join(triedPaths, ", "))
}
