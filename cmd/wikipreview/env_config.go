package main

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/alnah/go-wikipreview/internal/config"
)

// envPrefix is the prefix shared by all recognized environment variables.
const envPrefix = "WIKIPREVIEW_"

// envConfig holds configuration from environment variables.
// Provides CI/CD-friendly overrides without requiring YAML files.
type envConfig struct {
	// Tier 1 - Essential
	ConfigPath string // WIKIPREVIEW_CONFIG: config file name or path
	Style      string // WIKIPREVIEW_STYLE: CSS style name or path

	// Tier 2 - I/O
	InputDir  string // WIKIPREVIEW_INPUT_DIR: default input directory
	OutputDir string // WIKIPREVIEW_OUTPUT_DIR: default output directory
	ImageDir  string // WIKIPREVIEW_IMAGE_DIR: local image directory

	// Tier 3 - Rendering
	ImagePrefix    string // WIKIPREVIEW_IMAGE_PREFIX: image URL prefix
	HighlightStyle string // WIKIPREVIEW_HIGHLIGHT_STYLE: chroma style
	Lang           string // WIKIPREVIEW_LANG: document language
	MaxNesting     int    // WIKIPREVIEW_MAX_NESTING: nesting limit
	Workers        int    // WIKIPREVIEW_WORKERS: parallel workers
}

// knownEnvVars lists valid WIKIPREVIEW_* environment variables.
// Used to detect typos and warn users about unknown variables.
var knownEnvVars = map[string]bool{
	// Tier 1 - Essential
	"WIKIPREVIEW_CONFIG": true,
	"WIKIPREVIEW_STYLE":  true,
	// Tier 2 - I/O
	"WIKIPREVIEW_INPUT_DIR":  true,
	"WIKIPREVIEW_OUTPUT_DIR": true,
	"WIKIPREVIEW_IMAGE_DIR":  true,
	// Tier 3 - Rendering
	"WIKIPREVIEW_IMAGE_PREFIX":    true,
	"WIKIPREVIEW_HIGHLIGHT_STYLE": true,
	"WIKIPREVIEW_LANG":            true,
	"WIKIPREVIEW_MAX_NESTING":     true,
	"WIKIPREVIEW_WORKERS":         true,
}

// loadEnvConfig reads configuration from environment variables.
// Returns a struct with all recognized WIKIPREVIEW_* values.
func loadEnvConfig() *envConfig {
	cfg := &envConfig{
		// Tier 1
		ConfigPath: os.Getenv("WIKIPREVIEW_CONFIG"),
		Style:      os.Getenv("WIKIPREVIEW_STYLE"),
		// Tier 2
		InputDir:  os.Getenv("WIKIPREVIEW_INPUT_DIR"),
		OutputDir: os.Getenv("WIKIPREVIEW_OUTPUT_DIR"),
		ImageDir:  os.Getenv("WIKIPREVIEW_IMAGE_DIR"),
		// Tier 3
		ImagePrefix:    os.Getenv("WIKIPREVIEW_IMAGE_PREFIX"),
		HighlightStyle: os.Getenv("WIKIPREVIEW_HIGHLIGHT_STYLE"),
		Lang:           os.Getenv("WIKIPREVIEW_LANG"),
		MaxNesting:     positiveEnvInt("WIKIPREVIEW_MAX_NESTING"),
		Workers:        positiveEnvInt("WIKIPREVIEW_WORKERS"),
	}

	return cfg
}

// positiveEnvInt parses a positive integer variable. Invalid values read as 0.
func positiveEnvInt(name string) int {
	v := os.Getenv(name)
	if v == "" {
		return 0
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return 0
	}
	return n
}

// warnUnknownEnvVars logs warnings for unrecognized WIKIPREVIEW_* variables.
// Helps catch typos like WIKIPREVIEW_STLYE.
func warnUnknownEnvVars(w io.Writer) {
	for _, env := range os.Environ() {
		if strings.HasPrefix(env, envPrefix) {
			name := strings.SplitN(env, "=", 2)[0]
			if !knownEnvVars[name] {
				fmt.Fprintf(w, "warning: unknown environment variable %s (typo?)\n", name)
			}
		}
	}
}

// applyEnvConfig applies environment variable values to config.
// Only sets values if the env var is set AND the config value is empty/zero.
// This ensures: CLI flags > env vars > config file > defaults
// (CLI flags are applied later via mergeFlags)
func applyEnvConfig(env *envConfig, cfg *config.Config) {
	// Tier 1 - Style
	if env.Style != "" && cfg.Style == "" {
		cfg.Style = env.Style
	}

	// Tier 2 - I/O
	if env.InputDir != "" && cfg.Input.DefaultDir == "" {
		cfg.Input.DefaultDir = env.InputDir
	}
	if env.OutputDir != "" && cfg.Output.DefaultDir == "" {
		cfg.Output.DefaultDir = env.OutputDir
	}
	if env.ImageDir != "" && cfg.Output.ImageDir == "" {
		cfg.Output.ImageDir = env.ImageDir
	}

	// Tier 3 - Rendering
	if env.ImagePrefix != "" && cfg.Render.ImagePrefix == "" {
		cfg.Render.ImagePrefix = env.ImagePrefix
	}
	if env.HighlightStyle != "" && cfg.Render.HighlightStyle == "" {
		cfg.Render.HighlightStyle = env.HighlightStyle
	}
	if env.Lang != "" && cfg.Document.Lang == "" {
		cfg.Document.Lang = env.Lang
	}
	if env.MaxNesting > 0 && cfg.Render.MaxNesting == 0 {
		cfg.Render.MaxNesting = env.MaxNesting
	}
}
