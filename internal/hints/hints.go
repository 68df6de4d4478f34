// Package hints provides actionable error hints for common failure scenarios.
// Hints are formatted consistently as "\n  hint: <text>" for appending to error messages.
package hints

import (
	"strings"
)

// maxListed caps how many names a hint enumerates.
const maxListed = 8

// ForConfigNotFound returns hints for config file not found errors.
// Suggests --config flag and creating a config in ~/.config/go-wikipreview/.
func ForConfigNotFound(searchedPaths []string) string {
	hint := "use --config /path/to/file.yaml"

	// Find a user config path (contains .config/go-wikipreview) to suggest
	for _, p := range searchedPaths {
		if strings.Contains(p, ".config/go-wikipreview") {
			hint += " or create " + p
			break
		}
	}

	return format(hint)
}

// ForOutputDirectory returns hints for output directory creation errors.
func ForOutputDirectory() string {
	return format("check parent directory exists and is writable")
}

// ForStyleNotFound returns hints for style not found errors.
func ForStyleNotFound(available []string) string {
	if len(available) == 0 {
		return ""
	}
	return format("available: " + strings.Join(available, ", "))
}

// ForHighlightStyle returns hints for unknown syntax highlighting styles.
// Long style lists are truncated.
func ForHighlightStyle(available []string) string {
	if len(available) == 0 {
		return ""
	}
	if len(available) > maxListed {
		return format("try one of: " + strings.Join(available[:maxListed], ", ") + ", ...")
	}
	return format("try one of: " + strings.Join(available, ", "))
}

// ForNestingTooDeep returns a hint for lists nested past the configured limit.
func ForNestingTooDeep() string {
	return format("raise the limit with --max-nesting")
}

// ForInvalidUTF8 returns a hint for input that is not valid UTF-8.
func ForInvalidUTF8() string {
	return format("re-encode the file as UTF-8, e.g. iconv -f latin1 -t utf-8")
}

// ForNoInput returns a hint for a render command run without any input.
func ForNoInput() string {
	return format("pass files, directories or globs, or pipe wikitext to stdin")
}

// format creates a single hint string with consistent formatting.
func format(hint string) string {
	if hint == "" {
		return ""
	}
	return "\n  hint: " + hint
}
