package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	flag "github.com/spf13/pflag"

	"github.com/alnah/go-wikipreview"
	"github.com/alnah/go-wikipreview/internal/config"
	"github.com/alnah/go-wikipreview/internal/fileutil"
	"github.com/alnah/go-wikipreview/internal/hints"
)

// stdinName labels stdin in warnings.
const stdinName = "<stdin>"

// runRender orchestrates the render command.
func runRender(ctx context.Context, args []string, env *Environment) error {
	flags, positional, err := parseRenderFlags(args, env.Stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return fmt.Errorf("%w: %v", ErrUsage, err)
	}

	envCfg := loadEnvConfig()
	if !flags.common.quiet {
		warnUnknownEnvVars(env.Stderr)
	}

	// Validate worker count early (flag > env > auto)
	workers := flags.workers
	if workers == 0 {
		workers = envCfg.Workers
	}
	if err := validateWorkers(workers); err != nil {
		return err
	}

	cfg, err := loadConfig(flags.common.config, envCfg)
	if err != nil {
		return err
	}

	// Merge CLI flags into config (CLI wins)
	mergeFlags(flags, cfg)
	if err := cfg.Validate(); err != nil {
		return err
	}

	renderer, err := newRenderer(cfg, flags.assets.noStyle)
	if err != nil {
		return err
	}

	params := &renderParams{
		renderer:   renderer,
		standalone: cfg.Output.Standalone,
		title:      cfg.Document.Title,
		now:        env.Now,
	}

	stdin, err := useStdin(positional, cfg, env)
	if err != nil {
		return err
	}
	if stdin {
		return renderStdin(env, flags.output, params, flags.common.quiet)
	}

	inputs, err := resolveInputs(positional, cfg)
	if err != nil {
		return err
	}
	outputDir := resolveOutputDir(flags.output, cfg)

	files, err := discoverFiles(inputs, outputDir)
	if err != nil {
		return fmt.Errorf("discovering files: %w", err)
	}
	if len(files) == 0 {
		return fmt.Errorf("%w: no wikitext files found in %s", ErrNoInput, strings.Join(inputs, ", "))
	}
	if hasOutputExtension(outputDir) && len(files) > 1 {
		return fmt.Errorf("%w: output %s names one file but %d inputs matched", ErrUsage, outputDir, len(files))
	}

	n := wikipreview.ResolveWorkers(workers)
	if flags.common.verbose {
		fmt.Fprintf(env.Stderr, "Workers: %d\n", n)
	}

	results := renderBatch(ctx, files, params, n)

	failedCount := printResults(results, flags.common.quiet, flags.common.verbose, env)
	if cause := context.Cause(ctx); errors.Is(cause, ErrInterrupted) {
		return fmt.Errorf("%w: %d of %d file(s) not rendered", cause, failedCount, len(files))
	}
	if failedCount > 0 {
		return fmt.Errorf("%d render(s) failed", failedCount)
	}

	return nil
}

// loadConfig loads the config named by the flag, else by WIKIPREVIEW_CONFIG,
// else the defaults, then applies the remaining environment overrides.
func loadConfig(flagName string, envCfg *envConfig) (*config.Config, error) {
	name := flagName
	if name == "" {
		name = envCfg.ConfigPath
	}

	cfg := config.DefaultConfig()
	if name != "" {
		var err error
		cfg, err = config.LoadConfig(name)
		if err != nil {
			if errors.Is(err, config.ErrConfigNotFound) {
				return nil, fmt.Errorf("loading config: %w%s", err, hints.ForConfigNotFound(userConfigCandidates(name)))
			}
			return nil, fmt.Errorf("loading config: %w", err)
		}
	}

	applyEnvConfig(envCfg, cfg)
	return cfg, nil
}

// userConfigCandidates lists where a named config would be looked up in the
// user config directory.
func userConfigCandidates(name string) []string {
	if fileutil.IsFilePath(name) {
		return nil
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return nil
	}
	return []string{filepath.Join(dir, config.ConfigDirName, name+".yaml")}
}

// mergeFlags merges CLI flags into config. CLI values override config values.
func mergeFlags(flags *renderFlags, cfg *config.Config) {
	// Render flags
	if flags.render.imagePrefix != "" {
		cfg.Render.ImagePrefix = flags.render.imagePrefix
	}
	if flags.render.maxNesting != 0 {
		cfg.Render.MaxNesting = flags.render.maxNesting
	}
	if flags.render.highlightStyle != "" {
		cfg.Render.HighlightStyle = flags.render.highlightStyle
	}
	if flags.render.imageDir != "" {
		cfg.Output.ImageDir = flags.render.imageDir
	}

	// Asset flags
	if flags.assets.style != "" {
		cfg.Style = flags.assets.style
	}
	if flags.assets.assetPath != "" {
		cfg.Assets.BasePath = flags.assets.assetPath
	}

	// Document flags
	if flags.document.title != "" {
		cfg.Document.Title = flags.document.title
	}
	if flags.document.lang != "" {
		cfg.Document.Lang = flags.document.lang
	}

	// Disable flags
	if flags.outputMode.fragment {
		cfg.Output.Standalone = false
	}
	if flags.outputMode.noSanitize {
		cfg.Output.Sanitize = false
	}
}

// rendererOptions translates a validated config into renderer options.
func rendererOptions(cfg *config.Config, noStyle bool) []wikipreview.Option {
	opts := []wikipreview.Option{
		wikipreview.WithImagePrefix(cfg.Render.ImagePrefix),
		wikipreview.WithHighlightStyle(cfg.Render.HighlightStyle),
		wikipreview.WithAssetPath(cfg.Assets.BasePath),
		wikipreview.WithLang(cfg.Document.Lang),
		wikipreview.WithImageDir(cfg.Output.ImageDir),
	}

	if cfg.Render.MaxNesting > 0 {
		opts = append(opts, wikipreview.WithMaxNesting(cfg.Render.MaxNesting))
	}
	if !cfg.Output.Sanitize {
		opts = append(opts, wikipreview.WithSanitizer(nil))
	}

	switch {
	case noStyle:
		opts = append(opts, wikipreview.WithoutStyle())
	case cfg.Style != "":
		opts = append(opts, wikipreview.WithStyle(cfg.Style))
	}

	return opts
}

// newRenderer builds the renderer, adding hints to configuration errors.
func newRenderer(cfg *config.Config, noStyle bool) (*wikipreview.Renderer, error) {
	r, err := wikipreview.New(rendererOptions(cfg, noStyle)...)
	if err == nil {
		return r, nil
	}

	switch {
	case errors.Is(err, wikipreview.ErrUnknownHighlightStyle):
		return nil, fmt.Errorf("%w%s", err, hints.ForHighlightStyle(wikipreview.HighlightStyles()))
	case errors.Is(err, wikipreview.ErrStyleNotFound):
		return nil, fmt.Errorf("%w%s", err, hints.ForStyleNotFound(wikipreview.AvailableStyles(cfg.Assets.BasePath)))
	default:
		return nil, err
	}
}

// useStdin reports whether input comes from stdin: an explicit "-", or no
// positional input, no default directory and piped stdin.
func useStdin(args []string, cfg *config.Config, env *Environment) (bool, error) {
	for _, a := range args {
		if a == stdinArg && len(args) > 1 {
			return false, fmt.Errorf("%w: %q cannot be combined with other inputs", ErrUsage, stdinArg)
		}
	}
	if len(args) == 1 && args[0] == stdinArg {
		return true, nil
	}
	if len(args) == 0 && cfg.Input.DefaultDir == "" && env.StdinPiped != nil {
		return env.StdinPiped(), nil
	}
	return false, nil
}

// renderStdin renders stdin to the output file, or to stdout when output is empty.
func renderStdin(env *Environment, output string, params *renderParams, quiet bool) error {
	content, err := io.ReadAll(env.Stdin)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrReadInput, err)
	}

	out, res, err := renderOutput(params, string(content))
	if err != nil {
		return err
	}
	if res.Degraded && !quiet {
		printDegraded(env, stdinName, res.Reason)
	}

	if output == "" {
		if !strings.HasSuffix(out, "\n") {
			out += "\n"
		}
		if _, err := io.WriteString(env.Stdout, out); err != nil {
			return fmt.Errorf("%w: %v", ErrWriteOutput, err)
		}
		return nil
	}

	if err := os.MkdirAll(filepath.Dir(output), dirPermissions); err != nil {
		return fmt.Errorf("creating output directory: %w%s", err, hints.ForOutputDirectory())
	}
	if err := fileutil.WriteFileAtomic(output, []byte(out), filePermissions); err != nil {
		return fmt.Errorf("%w: %v", ErrWriteOutput, err)
	}
	if !quiet {
		fmt.Fprintf(env.Stdout, "Created %s\n", output)
	}
	return nil
}

// resolveInputs determines the inputs from args or config.
func resolveInputs(args []string, cfg *config.Config) ([]string, error) {
	if len(args) > 0 {
		return args, nil
	}
	if cfg.Input.DefaultDir != "" {
		return []string{cfg.Input.DefaultDir}, nil
	}
	return nil, fmt.Errorf("%w%s", ErrNoInput, hints.ForNoInput())
}

// resolveOutputDir determines the output directory from flag or config.
func resolveOutputDir(flagOutput string, cfg *config.Config) string {
	if flagOutput != "" {
		return flagOutput
	}
	return cfg.Output.DefaultDir
}
