package pipeline

import (
	"errors"
	"fmt"
	"io"

	"github.com/alecthomas/chroma/v2"
	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
)

// DefaultHighlightStyle is the chroma style used when none is configured.
const DefaultHighlightStyle = "github"

// ErrUnknownHighlightStyle indicates the chroma style name is not registered.
var ErrUnknownHighlightStyle = errors.New("unknown highlight style")

// Highlighter renders a source code block as HTML.
type Highlighter interface {
	Highlight(w io.Writer, lang, code string) error
}

// ChromaHighlighter highlights code with chroma, emitting CSS classes
// rather than inline styles. Safe for concurrent use.
type ChromaHighlighter struct {
	style     *chroma.Style
	formatter *chromahtml.Formatter
}

// NewChromaHighlighter creates a highlighter for the named chroma style.
// An empty name selects DefaultHighlightStyle.
func NewChromaHighlighter(styleName string) (*ChromaHighlighter, error) {
	if styleName == "" {
		styleName = DefaultHighlightStyle
	}
	style, ok := styles.Registry[styleName]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownHighlightStyle, styleName)
	}
	return &ChromaHighlighter{
		style:     style,
		formatter: chromahtml.New(chromahtml.WithClasses(true)),
	}, nil
}

// Highlight writes code as a highlighted <pre> block.
// Unknown or empty languages are rendered as plain text.
func (h *ChromaHighlighter) Highlight(w io.Writer, lang, code string) error {
	var lexer chroma.Lexer
	if lang != "" {
		lexer = lexers.Get(lang)
	}
	if lexer == nil {
		lexer = lexers.Fallback
	}
	lexer = chroma.Coalesce(lexer)

	iterator, err := lexer.Tokenise(nil, code)
	if err != nil {
		return fmt.Errorf("tokenizing %s code: %w", lang, err)
	}
	if err := h.formatter.Format(w, h.style, iterator); err != nil {
		return fmt.Errorf("formatting %s code: %w", lang, err)
	}
	return nil
}

// WriteCSS writes the stylesheet matching the classes Highlight emits.
func (h *ChromaHighlighter) WriteCSS(w io.Writer) error {
	return h.formatter.WriteCSS(w, h.style)
}

// HighlightStyles lists the registered chroma style names in sorted order.
func HighlightStyles() []string {
	return styles.Names()
}
