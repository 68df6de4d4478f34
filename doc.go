// Package wikipreview renders MediaWiki wikitext as preview HTML.
//
// # Quick Start
//
// Create a renderer and render wikitext:
//
//	r, err := wikipreview.New()
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	html := r.Render("== Hello ==\nSome '''bold''' text.")
//
// Render never fails. Empty or whitespace-only input yields a placeholder
// paragraph, and input that cannot be parsed yields the whole input
// HTML-escaped inside <pre class="parse-error">. Use RenderResult to learn
// why an output degraded.
//
// # Supported Markup
//
// The renderer understands a subset of MediaWiki syntax:
//
//	= H1 = ... ====== H6 ======          headers
//	* bullet, # numbered, ** nested       lists
//	{| |+ caption |- ! header | cell |}   tables
//	[[Page]] [[Page|text]] [https://x t]  links
//	[[File:a.png|thumb|caption]]          images
//	''italic'' '''bold''' '''''both'''''  emphasis
//	<nowiki> <pre> <syntaxhighlight> ---- literal text, code, rules
//
// Everything else passes through as text. Inline HTML written by the author
// is not escaped, so output shown to users must be sanitized: Preview and
// Document run the configured Sanitizer, Render does not.
//
// # Configuration
//
// Use functional options to customize the renderer:
//
//	r, err := wikipreview.New(
//	    wikipreview.WithImagePrefix("https://upload.example.org/"),
//	    wikipreview.WithMaxNesting(8),
//	    wikipreview.WithHighlightStyle("monokai"),
//	    wikipreview.WithStyle("plain"),
//	)
//
// # Standalone Documents
//
// Document wraps the sanitized preview in a complete HTML5 page with the
// configured CSS style and the syntax highlighting stylesheet inlined:
//
//	page, err := r.Document(wikitext, "")
//
// # Concurrency
//
// A Renderer is immutable after construction and safe for concurrent use.
// ResolveWorkers sizes a worker pool for batch rendering.
package wikipreview
