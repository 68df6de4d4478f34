package wikipreview

import (
	"fmt"
	"strings"

	"github.com/alnah/go-wikipreview/internal/assets"
	"github.com/alnah/go-wikipreview/internal/fileutil"
	"github.com/alnah/go-wikipreview/internal/pipeline"
	"github.com/alnah/go-wikipreview/internal/sanitize"
)

// Placeholders shown instead of rendered content.
const (
	// EmptyPlaceholder is what Render returns for empty or whitespace-only input.
	EmptyPlaceholder = pipeline.EmptyPlaceholder

	// NotDisplayablePlaceholder is what Preview returns when sanitization
	// leaves nothing to show.
	NotDisplayablePlaceholder = `<p class="empty">Content cannot be displayed</p>`
)

// Compile-time interface implementation checks.
var (
	_ Sanitizer            = (*sanitize.Policy)(nil)
	_ pipeline.Highlighter = (*pipeline.ChromaHighlighter)(nil)
	_ StyleLoader          = (*styleLoaderAdapter)(nil)
)

// Sanitizer strips unsafe markup from rendered HTML before display.
type Sanitizer interface {
	Sanitize(html string) string
}

// Result is the outcome of one render: the HTML to display, the plain text of
// the first header (empty if none) and, when Degraded is set, the reason the
// output fell back to the escaped input.
type Result struct {
	HTML     string
	Title    string
	Degraded bool
	Reason   error
}

// Renderer turns wikitext into preview HTML.
// Create with New(). A Renderer is immutable and safe for concurrent use.
type Renderer struct {
	cfg         rendererConfig
	styleLoader StyleLoader
	sanitizer   Sanitizer
	highlighter *pipeline.ChromaHighlighter
	pipeline    *pipeline.Pipeline
	css         string
}

// New creates a Renderer with default configuration.
// Use options to customize behavior (e.g., WithImagePrefix, WithStyle).
// Returns error if the highlight style is unknown or the style cannot be loaded.
func New(opts ...Option) (*Renderer, error) {
	r := &Renderer{
		cfg: rendererConfig{
			imagePrefix: pipeline.DefaultImagePrefix,
			maxNesting:  pipeline.DefaultMaxNesting,
			placeholder: EmptyPlaceholder,
		},
	}

	for _, opt := range opts {
		opt(r)
	}

	if !r.cfg.sanitizerSet {
		r.sanitizer = sanitize.NewPolicy()
	}

	highlighter, err := pipeline.NewChromaHighlighter(r.cfg.highlightStyle)
	if err != nil {
		return nil, err
	}
	r.highlighter = highlighter

	// Handle WithAssetPath unless a loader was injected
	if r.styleLoader == nil {
		r.styleLoader, err = NewStyleLoader(r.cfg.assetPath)
		if err != nil {
			return nil, err
		}
	}

	if err := r.resolveStyle(); err != nil {
		return nil, err
	}

	r.pipeline = pipeline.New(pipeline.Options{
		MaxNesting:  r.cfg.maxNesting,
		ImagePrefix: r.cfg.imagePrefix,
		Highlighter: r.highlighter,
		Placeholder: r.cfg.placeholder,
	})

	return r, nil
}

// Render converts wikitext to an HTML fragment. It never fails: empty input
// yields EmptyPlaceholder and unparseable input yields the escaped input
// inside <pre class="parse-error">. The output is NOT sanitized.
func (r *Renderer) Render(wikitext string) string {
	return r.RenderResult(wikitext).HTML
}

// RenderResult is Render with the degradation reason and the document title.
func (r *Renderer) RenderResult(wikitext string) Result {
	out := r.pipeline.Run(wikitext)
	return Result{
		HTML:     out.HTML,
		Title:    out.Title,
		Degraded: out.Degraded,
		Reason:   out.Reason,
	}
}

// Preview renders and sanitizes wikitext for display. Empty input yields ""
// so callers can hide the preview, and output the sanitizer empties entirely
// yields NotDisplayablePlaceholder.
func (r *Renderer) Preview(wikitext string) string {
	if isBlank(wikitext) {
		return ""
	}
	return r.sanitized(r.pipeline.Run(wikitext).HTML)
}

// Document renders wikitext as a standalone HTML5 page with the configured
// CSS inlined. An empty title falls back to the first header, then to
// "Preview". With WithImageDir, image sources point at local files.
func (r *Renderer) Document(wikitext, title string) (string, error) {
	out := r.pipeline.Run(wikitext)
	fragment := r.sanitized(out.HTML)

	// Localize after sanitizing: file:// URLs are not on the allow-list.
	fragment, err := pipeline.LocalizeImages(fragment, r.cfg.imagePrefix, r.cfg.imageDir)
	if err != nil {
		return "", fmt.Errorf("localizing images: %w", err)
	}

	if title == "" {
		title = out.Title
	}

	return pipeline.WrapDocument(fragment, pipeline.DocumentOptions{
		Title: title,
		Lang:  r.cfg.lang,
		CSS:   r.css,
	}), nil
}

// CSS returns the stylesheet Document inlines: the configured style followed
// by the syntax highlighting rules. Empty when WithoutStyle is set.
func (r *Renderer) CSS() string {
	return r.css
}

// sanitized runs the sanitizer, substituting the placeholder for empty output.
func (r *Renderer) sanitized(htmlContent string) string {
	if r.sanitizer == nil {
		return htmlContent
	}
	clean := r.sanitizer.Sanitize(htmlContent)
	if strings.TrimSpace(clean) == "" {
		return NotDisplayablePlaceholder
	}
	return clean
}

// resolveStyle resolves the style input (name, path, or CSS content) to CSS
// content and appends the highlighting stylesheet.
// Called during New() after options are applied and the loader is configured.
func (r *Renderer) resolveStyle() error {
	if r.cfg.noStyle {
		return nil
	}

	input := r.cfg.styleInput
	if input == "" {
		input = DefaultStyle
	}

	var css string
	switch {
	case fileutil.IsURL(input):
		return fmt.Errorf("%w: remote styles are not supported: %q", ErrStyleNotFound, input)
	case fileutil.IsFilePath(input):
		content, err := assets.ReadStyleFile(input)
		if err != nil {
			return fmt.Errorf("loading style file: %w", convertAssetError(err))
		}
		css = content
	case fileutil.IsCSS(input):
		css = input
	default:
		content, err := r.styleLoader.LoadStyle(input)
		if err != nil {
			return fmt.Errorf("loading style %q: %w", input, err)
		}
		css = content
	}

	var highlightCSS strings.Builder
	if err := r.highlighter.WriteCSS(&highlightCSS); err != nil {
		return fmt.Errorf("writing highlight stylesheet: %w", err)
	}

	r.css = css + "\n" + highlightCSS.String()
	return nil
}

// isBlank reports whether wikitext renders as the empty placeholder.
func isBlank(wikitext string) bool {
	return strings.TrimSpace(pipeline.Preprocess(wikitext)) == ""
}
