package pipeline

import (
	"fmt"
	"strings"

	"golang.org/x/net/html"
)

// EmptyPlaceholder is returned for empty or whitespace-only input.
const EmptyPlaceholder = `<p class="empty">No content to display</p>`

// Options configures a Pipeline.
type Options struct {
	MaxNesting  int
	ImagePrefix string
	Highlighter Highlighter
	// Placeholder replaces EmptyPlaceholder when set.
	Placeholder string
}

// Outcome is the result of one Run: either rendered HTML, or the escaped
// fallback together with the reason rendering was abandoned.
type Outcome struct {
	HTML     string
	Title    string
	Degraded bool
	Reason   error
}

// Pipeline parses and renders wikitext. It holds no per-call state and is
// safe for concurrent use.
type Pipeline struct {
	opts Options
}

// New creates a Pipeline.
func New(opts Options) *Pipeline {
	if opts.Placeholder == "" {
		opts.Placeholder = EmptyPlaceholder
	}
	return &Pipeline{opts: opts}
}

// Run renders wikitext to an HTML fragment. It never fails: empty input
// yields the placeholder, and any parse error or panic yields the escaped
// input inside <pre class="parse-error">.
func (p *Pipeline) Run(wikitext string) (out Outcome) {
	if strings.TrimSpace(Preprocess(wikitext)) == "" {
		return Outcome{HTML: p.opts.Placeholder}
	}

	defer func() {
		if r := recover(); r != nil {
			out = Degrade(wikitext, fmt.Errorf("%w: %v", ErrInternal, r))
		}
	}()

	doc, err := Parse(wikitext, ParseOptions{MaxNesting: p.opts.MaxNesting})
	if err != nil {
		return Degrade(wikitext, err)
	}
	return Outcome{
		HTML: RenderHTML(doc, RenderOptions{
			ImagePrefix: p.opts.ImagePrefix,
			Highlighter: p.opts.Highlighter,
		}),
		Title: doc.Title(),
	}
}

// Degrade builds the fallback outcome for wikitext that could not be rendered.
func Degrade(wikitext string, reason error) Outcome {
	return Outcome{HTML: Fallback(wikitext), Degraded: true, Reason: reason}
}

// Fallback returns the whole input HTML-escaped inside a preformatted
// error block. Invalid UTF-8 sequences are replaced first.
func Fallback(wikitext string) string {
	text := strings.ToValidUTF8(wikitext, "\uFFFD")
	return `<pre class="parse-error">` + html.EscapeString(text) + `</pre>`
}
