package pipeline

import (
	"regexp"
	"strings"
)

// Precompiled regex patterns for performance.
var (
	// Line ending normalization
	crlfOrCR = regexp.MustCompile(`\r\n?`)
)

// byteOrderMark is stripped from the start of input pasted from Windows editors.
const byteOrderMark = "\uFEFF"

// Preprocess prepares raw wikitext for parsing.
// Line endings are normalized first so every later step can split on "\n".
func Preprocess(content string) string {
	content = strings.TrimPrefix(content, byteOrderMark)
	content = normalizeLineEndings(content)
	return content
}

// normalizeLineEndings converts \r\n and \r to \n.
func normalizeLineEndings(content string) string {
	return crlfOrCR.ReplaceAllString(content, "\n")
}
