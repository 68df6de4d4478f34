package pipeline

import (
	"fmt"
	"strings"

	"golang.org/x/net/html"
)

// DefaultDocumentTitle is used when neither the caller nor the content
// provides a title.
const DefaultDocumentTitle = "Preview"

// documentTemplate wraps a rendered fragment in a complete HTML5 document.
// Verbs: lang, title, style element (may be empty), fragment.
const documentTemplate = `<!DOCTYPE html>
<html lang="%s">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>%s</title>
%s</head>
<body>
<article class="wiki-preview">
%s
</article>
</body>
</html>`

// DocumentOptions configures WrapDocument.
type DocumentOptions struct {
	Title string
	Lang  string
	// CSS is the preview stylesheet, written into a <style> element in the
	// document head.
	CSS string
}

// WrapDocument embeds an HTML fragment in a standalone document.
// An empty title becomes DefaultDocumentTitle and an empty lang becomes "en".
func WrapDocument(fragment string, opts DocumentOptions) string {
	title := opts.Title
	if title == "" {
		title = DefaultDocumentTitle
	}
	lang := opts.Lang
	if lang == "" {
		lang = "en"
	}

	return fmt.Sprintf(documentTemplate,
		html.EscapeString(lang), html.EscapeString(title), styleElement(opts.CSS), fragment)
}

// styleTextEscaper keeps stylesheet text inside its <style> element: any
// end tag, in any case, would otherwise close it early.
var styleTextEscaper = strings.NewReplacer("</", `<\/`)

// styleElement returns css as a <style> line for the document head, or ""
// for an empty stylesheet.
func styleElement(css string) string {
	if strings.TrimSpace(css) == "" {
		return ""
	}
	return "<style>" + styleTextEscaper.Replace(css) + "</style>\n"
}
