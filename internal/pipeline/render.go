package pipeline

import (
	"strconv"
	"strings"

	"golang.org/x/net/html"
)

// DefaultImagePrefix is prepended to image file names in src attributes.
const DefaultImagePrefix = "/images/"

// RenderOptions configures RenderHTML.
type RenderOptions struct {
	// ImagePrefix is prepended to image names. Empty means DefaultImagePrefix.
	ImagePrefix string
	// Highlighter renders <syntaxhighlight> and <source> blocks.
	// Nil renders them as plain <pre> blocks.
	Highlighter Highlighter
}

// htmlWriter renders nodes into a single buffer.
type htmlWriter struct {
	buf  strings.Builder
	opts RenderOptions
}

// RenderHTML renders a parsed document as an HTML fragment in one pass.
// Blocks are separated by newlines.
//
// Text nodes are emitted as written, so author HTML passes through; only
// attribute values, <nowiki> content and preformatted text are escaped.
// The output must be sanitized before it is displayed.
func RenderHTML(doc *Document, opts RenderOptions) string {
	if opts.ImagePrefix == "" {
		opts.ImagePrefix = DefaultImagePrefix
	}
	w := &htmlWriter{opts: opts}
	for i, b := range doc.Blocks {
		if i > 0 {
			w.buf.WriteByte('\n')
		}
		w.block(b)
	}
	return w.buf.String()
}

func (w *htmlWriter) block(b Block) {
	switch v := b.(type) {
	case *Header:
		tag := "h" + strconv.Itoa(v.Level)
		w.open(tag)
		w.inlines(v.Content)
		w.close(tag)
	case *Paragraph:
		if v.Bare {
			w.inlines(v.Content)
			return
		}
		w.open("p")
		w.inlines(v.Content)
		w.close("p")
	case *List:
		w.list(v, "wiki-list")
	case *Table:
		w.table(v)
	case *Rule:
		w.buf.WriteString("<hr />")
	case *Preformatted:
		w.preformatted(v)
	}
}

func (w *htmlWriter) list(l *List, class string) {
	tag := l.Kind.Tag()
	w.buf.WriteString("<" + tag + ` class="` + class + `">` + "\n")
	for _, item := range l.Items {
		w.open("li")
		w.inlines(item.Content)
		if item.Sublist != nil {
			w.buf.WriteByte('\n')
			w.list(item.Sublist, "wiki-list-nested")
			w.buf.WriteByte('\n')
		}
		w.close("li")
		w.buf.WriteByte('\n')
	}
	w.close(tag)
}

func (w *htmlWriter) table(t *Table) {
	w.buf.WriteString(`<table class="wikitable">` + "\n")
	if t.Caption != nil {
		w.open("caption")
		w.inlines(t.Caption)
		w.close("caption")
		w.buf.WriteByte('\n')
	}
	for _, row := range t.Rows {
		w.open("tr")
		for _, cell := range row.Cells {
			tag := "td"
			if cell.Header {
				tag = "th"
			}
			w.open(tag)
			w.inlines(cell.Content)
			w.close(tag)
		}
		w.close("tr")
		w.buf.WriteByte('\n')
	}
	w.close("table")
}

func (w *htmlWriter) preformatted(p *Preformatted) {
	if p.Highlight && w.opts.Highlighter != nil {
		var code strings.Builder
		if err := w.opts.Highlighter.Highlight(&code, p.Lang, p.Text); err == nil {
			w.buf.WriteString(strings.TrimSuffix(code.String(), "\n"))
			return
		}
	}
	w.open("pre")
	w.buf.WriteString(html.EscapeString(p.Text))
	w.close("pre")
}

func (w *htmlWriter) inlines(nodes []Inline) {
	for _, n := range nodes {
		w.inline(n)
	}
}

func (w *htmlWriter) inline(n Inline) {
	switch v := n.(type) {
	case *Text:
		w.buf.WriteString(v.Value)
	case *Literal:
		w.buf.WriteString(html.EscapeString(v.Value))
	case *Link:
		w.link(v)
	case *Image:
		w.image(v)
	case *Emphasis:
		if v.Strong {
			w.open("strong")
		}
		if v.Em {
			w.open("em")
		}
		w.inlines(v.Content)
		if v.Em {
			w.close("em")
		}
		if v.Strong {
			w.close("strong")
		}
	}
}

func (w *htmlWriter) link(l *Link) {
	if l.External {
		w.buf.WriteString(`<a href="` + attr(l.Target) + `" target="_blank" rel="noopener">`)
	} else {
		w.buf.WriteString(`<a href="#" class="wiki-link" title="` + attr(l.Target) + `">`)
	}
	w.inlines(l.Content)
	w.close("a")
}

func (w *htmlWriter) image(img *Image) {
	src := attr(w.opts.ImagePrefix + img.Name)
	if img.Alias {
		w.buf.WriteString(`<img src="` + src + `" alt="` + attr(img.Alt) + `" class="wiki-image" loading="lazy" />`)
		return
	}

	class := "wiki-image"
	if img.Thumb {
		class += " wiki-thumb"
	}
	w.buf.WriteString(`<figure class="` + class + `">`)
	w.buf.WriteString(`<img src="` + src + `" alt="` + attr(img.Alt) + `" loading="lazy" />`)
	if img.HasCaption {
		w.open("figcaption")
		w.inlines(img.Caption)
		w.close("figcaption")
	}
	w.close("figure")
}

func (w *htmlWriter) open(tag string) {
	w.buf.WriteString("<" + tag + ">")
}

func (w *htmlWriter) close(tag string) {
	w.buf.WriteString("</" + tag + ">")
}

// attr escapes a value for use inside a double-quoted attribute.
func attr(s string) string {
	return html.EscapeString(s)
}
