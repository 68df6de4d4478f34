package main

import (
	"fmt"
	"io"
)

// printUsage prints the main usage message.
func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: wikipreview <command> [flags] [args]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  render     Render wikitext files to HTML")
	fmt.Fprintln(w, "  config     Print the effective configuration")
	fmt.Fprintln(w, "  completion Generate shell completion script")
	fmt.Fprintln(w, "  version    Show version information")
	fmt.Fprintln(w, "  help       Show help for a command")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Run 'wikipreview help <command>' for details on a specific command.")
}

// printRenderUsage prints usage for the render command.
func printRenderUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: wikipreview render [input...] [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Render MediaWiki markup to HTML previews.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Arguments:")
	fmt.Fprintln(w, "  input    Files, directories or globs (docs/**/*.wiki); \"-\" reads stdin.")
	fmt.Fprintln(w, "           Directories are scanned for .wiki, .mediawiki, .wikitext, .txt")
	fmt.Fprintln(w, "           and .json (conversion API results). Optional if config has")
	fmt.Fprintln(w, "           input.defaultDir or stdin is piped.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Input/Output:")
	fmt.Fprintln(w, "  -o, --output <path>          Output .html file or directory")
	fmt.Fprintln(w, "  -c, --config <name>          Config file name or path")
	fmt.Fprintln(w, "  -w, --workers <n>            Parallel workers (0 = auto)")
	fmt.Fprintln(w, "      --fragment               Write HTML fragments, not full documents")
	fmt.Fprintln(w, "      --no-sanitize            Skip HTML sanitization")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Rendering:")
	fmt.Fprintln(w, "      --image-prefix <url>     URL prefix for images (default /images/)")
	fmt.Fprintln(w, "      --image-dir <path>       Point images at local files instead")
	fmt.Fprintln(w, "      --max-nesting <n>        List and link nesting limit (default 32)")
	fmt.Fprintln(w, "      --highlight-style <s>    Chroma style for code blocks (default github)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Document:")
	fmt.Fprintln(w, "      --title <s>              Document title (\"\" = first header)")
	fmt.Fprintln(w, "      --lang <s>               Document language (default en)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Styling:")
	fmt.Fprintln(w, "      --style <name|path>      CSS style name or file path")
	fmt.Fprintln(w, "      --asset-path <dir>       Custom asset directory (styles/*.css)")
	fmt.Fprintln(w, "      --no-style               Disable CSS styling")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Output Control:")
	fmt.Fprintln(w, "  -q, --quiet                  Only show errors")
	fmt.Fprintln(w, "  -v, --verbose                Show detailed timing")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Environment:")
	fmt.Fprintln(w, "  WIKIPREVIEW_CONFIG, WIKIPREVIEW_STYLE, WIKIPREVIEW_INPUT_DIR,")
	fmt.Fprintln(w, "  WIKIPREVIEW_OUTPUT_DIR, WIKIPREVIEW_IMAGE_DIR, WIKIPREVIEW_IMAGE_PREFIX,")
	fmt.Fprintln(w, "  WIKIPREVIEW_HIGHLIGHT_STYLE, WIKIPREVIEW_LANG, WIKIPREVIEW_MAX_NESTING,")
	fmt.Fprintln(w, "  WIKIPREVIEW_WORKERS")
}

// printConfigUsage prints usage for the config command.
func printConfigUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: wikipreview config [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Print the effective configuration as YAML.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Flags:")
	fmt.Fprintln(w, "  -c, --config <name>          Config file name or path")
	fmt.Fprintln(w, "  -q, --quiet                  Only show errors")
}

// runHelp prints help for a specific command.
func runHelp(args []string, env *Environment) {
	if len(args) == 0 {
		printUsage(env.Stdout)
		return
	}

	switch args[0] {
	case "render":
		printRenderUsage(env.Stdout)
	case "config":
		printConfigUsage(env.Stdout)
	case "completion":
		printCompletionUsage(env.Stdout)
	case "version":
		fmt.Fprintln(env.Stdout, "Usage: wikipreview version")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show version information.")
	case "help":
		fmt.Fprintln(env.Stdout, "Usage: wikipreview help [command]")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show help for a command.")
	default:
		fmt.Fprintf(env.Stderr, "Unknown command: %s\n", args[0])
		printUsage(env.Stderr)
	}
}
