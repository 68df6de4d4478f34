package wikipreview

// Option configures a Renderer.
type Option func(*Renderer)

// rendererConfig holds internal configuration for Renderer.
type rendererConfig struct {
	imagePrefix    string
	maxNesting     int
	highlightStyle string
	placeholder    string
	styleInput     string
	noStyle        bool
	assetPath      string
	lang           string
	imageDir       string
	sanitizerSet   bool
}

// WithImagePrefix sets the URL prefix prepended to image file names.
// An empty prefix keeps the default "/images/".
func WithImagePrefix(prefix string) Option {
	return func(r *Renderer) {
		if prefix != "" {
			r.cfg.imagePrefix = prefix
		}
	}
}

// WithMaxNesting bounds list depth and inline link nesting. Input nested
// deeper renders as the escaped fallback with ErrNestingTooDeep.
// Panics if n < 1 (programmer error, similar to time.NewTicker).
func WithMaxNesting(n int) Option {
	if n < 1 {
		panic("wikipreview: WithMaxNesting limit must be positive")
	}
	return func(r *Renderer) {
		r.cfg.maxNesting = n
	}
}

// WithHighlightStyle selects the chroma style for <syntaxhighlight> blocks.
// New returns ErrUnknownHighlightStyle for unregistered names.
func WithHighlightStyle(name string) Option {
	return func(r *Renderer) {
		r.cfg.highlightStyle = name
	}
}

// WithSanitizer replaces the built-in allow-list sanitizer used by Preview
// and Document. A nil sanitizer disables sanitization.
func WithSanitizer(s Sanitizer) Option {
	return func(r *Renderer) {
		r.sanitizer = s
		r.cfg.sanitizerSet = true
	}
}

// WithEmptyPlaceholder replaces the HTML rendered for empty input.
func WithEmptyPlaceholder(html string) Option {
	return func(r *Renderer) {
		r.cfg.placeholder = html
	}
}

// WithStyle sets the CSS style for Document. The input is a style name
// resolved by the style loader, a path to a CSS file, or CSS content.
func WithStyle(input string) Option {
	return func(r *Renderer) {
		r.cfg.styleInput = input
		r.cfg.noStyle = false
	}
}

// WithoutStyle makes Document emit no stylesheet at all.
func WithoutStyle() Option {
	return func(r *Renderer) {
		r.cfg.noStyle = true
	}
}

// WithAssetPath loads named styles from {path}/styles/ before the
// embedded ones. New returns ErrInvalidAssetPath for unreadable directories.
func WithAssetPath(path string) Option {
	return func(r *Renderer) {
		r.cfg.assetPath = path
	}
}

// WithStyleLoader resolves style names through a custom loader.
// Takes precedence over WithAssetPath.
func WithStyleLoader(l StyleLoader) Option {
	return func(r *Renderer) {
		r.styleLoader = l
	}
}

// WithLang sets the lang attribute of Document output (default "en").
func WithLang(lang string) Option {
	return func(r *Renderer) {
		r.cfg.lang = lang
	}
}

// WithImageDir makes Document point image sources at files in dir
// instead of the image prefix URL, for viewing documents offline.
func WithImageDir(dir string) Option {
	return func(r *Renderer) {
		r.cfg.imageDir = dir
	}
}
