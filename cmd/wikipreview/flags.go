package main

import (
	"io"

	flag "github.com/spf13/pflag"
)

// commonFlags holds flags shared across commands.
type commonFlags struct {
	config  string
	quiet   bool
	verbose bool
}

// renderOptionFlags holds flags forwarded to the renderer.
type renderOptionFlags struct {
	imagePrefix    string
	imageDir       string
	maxNesting     int
	highlightStyle string
}

// assetFlags holds styling flags for standalone documents.
type assetFlags struct {
	style     string // Name, path, or CSS content
	assetPath string // Override asset directory
	noStyle   bool   // Emit no <style> block
}

// documentFlags holds standalone document metadata flags.
type documentFlags struct {
	title string
	lang  string
}

// outputFlags holds output mode flags.
type outputFlags struct {
	fragment   bool // Write the bare fragment, no document wrapper
	noSanitize bool // Skip the allow-list sanitizer
}

// renderFlags holds all flags for the render command.
type renderFlags struct {
	common     commonFlags
	output     string
	workers    int
	render     renderOptionFlags
	assets     assetFlags
	document   documentFlags
	outputMode outputFlags
}

// configFlags holds flags for the config command.
type configFlags struct {
	common commonFlags
}

// addCommonFlags adds common flags to a FlagSet.
func addCommonFlags(fs *flag.FlagSet, f *commonFlags) {
	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "show detailed timing")
}

// addRenderOptionFlags adds renderer flags to a FlagSet.
func addRenderOptionFlags(fs *flag.FlagSet, f *renderOptionFlags) {
	fs.StringVar(&f.imagePrefix, "image-prefix", "", "URL prefix for image files (default /images/)")
	fs.StringVar(&f.imageDir, "image-dir", "", "local image directory for offline documents")
	fs.IntVar(&f.maxNesting, "max-nesting", 0, "list and link nesting limit (0 = default)")
	fs.StringVar(&f.highlightStyle, "highlight-style", "", "chroma style for code blocks")
}

// addAssetFlags adds styling flags to a FlagSet.
func addAssetFlags(fs *flag.FlagSet, f *assetFlags) {
	fs.StringVar(&f.style, "style", "", "CSS style name or file path")
	fs.StringVar(&f.assetPath, "asset-path", "", "custom asset directory")
	fs.BoolVar(&f.noStyle, "no-style", false, "disable CSS styling")
}

// addDocumentFlags adds document metadata flags to a FlagSet.
func addDocumentFlags(fs *flag.FlagSet, f *documentFlags) {
	fs.StringVar(&f.title, "title", "", "document title (\"\" = first header)")
	fs.StringVar(&f.lang, "lang", "", "document language (default en)")
}

// addOutputFlags adds output mode flags to a FlagSet.
func addOutputFlags(fs *flag.FlagSet, f *outputFlags) {
	fs.BoolVar(&f.fragment, "fragment", false, "write HTML fragments instead of documents")
	fs.BoolVar(&f.noSanitize, "no-sanitize", false, "skip HTML sanitization")
}

// newRenderFlagSet builds the render command FlagSet bound to f.
func newRenderFlagSet(f *renderFlags) *flag.FlagSet {
	fs := flag.NewFlagSet("render", flag.ContinueOnError)

	// I/O flags
	fs.StringVarP(&f.output, "output", "o", "", "output file or directory")
	fs.IntVarP(&f.workers, "workers", "w", 0, "parallel workers (0 = auto)")

	// Flag groups
	addCommonFlags(fs, &f.common)
	addRenderOptionFlags(fs, &f.render)
	addAssetFlags(fs, &f.assets)
	addDocumentFlags(fs, &f.document)
	addOutputFlags(fs, &f.outputMode)

	return fs
}

// parseRenderFlags parses render command flags and returns positional args.
// A lone "-" is kept as a positional argument meaning stdin.
// Parse errors and usage go to stderr.
func parseRenderFlags(args []string, stderr io.Writer) (*renderFlags, []string, error) {
	f := &renderFlags{}
	fs := newRenderFlagSet(f)
	fs.SetOutput(stderr)
	fs.Usage = func() { printRenderUsage(stderr) }

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}

	return f, fs.Args(), nil
}

// parseConfigFlags parses config command flags.
func parseConfigFlags(args []string, stderr io.Writer) (*configFlags, error) {
	fs := flag.NewFlagSet("config", flag.ContinueOnError)
	f := &configFlags{}
	addCommonFlags(fs, &f.common)
	fs.SetOutput(stderr)
	fs.Usage = func() { printConfigUsage(stderr) }

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	return f, nil
}
