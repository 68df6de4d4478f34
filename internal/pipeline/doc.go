// Package pipeline implements the wikitext-to-HTML rendering pipeline.
//
// Rendering runs in two phases. Parse tokenizes the input once into a
// Document of block nodes (Header, List, Table, Paragraph, Rule,
// Preformatted) holding inline nodes (Text, Literal, Link, Image, Emphasis).
// RenderHTML then walks the tree once and writes the HTML fragment.
//
// Pipeline.Run wraps both phases with the failure policy: empty input yields
// a placeholder, and any parse error or panic yields the escaped input in a
// <pre class="parse-error"> block instead of an error.
//
// The fragment is not sanitized. Author HTML in text passes through
// unchanged, so callers must sanitize before display.
//
// WrapDocument and LocalizeImages turn a fragment into a standalone HTML
// file for offline viewing; the preview stylesheet goes into its head.
package pipeline
