package pipeline

import (
	"net/url"
	"path/filepath"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// LocalizeImages points image sources at files in a local directory so a
// standalone document displays them without the file-serving backend.
// Every img[src] that starts with prefix is rewritten to a file:// URL of
// the remaining name joined to imageDir. If imageDir is empty, returns the
// HTML unchanged.
//
// Does NOT rewrite:
//   - sources outside prefix (external URLs, author HTML)
//   - names that would resolve outside imageDir
//   - a[href] links (internal links are placeholders)
func LocalizeImages(htmlContent, prefix, imageDir string) (string, error) {
	if imageDir == "" || prefix == "" {
		return htmlContent, nil
	}

	absDir, err := filepath.Abs(imageDir)
	if err != nil {
		return "", err
	}

	doc, isFragment, err := parseHTML(htmlContent)
	if err != nil {
		return "", err
	}

	localizeNode(doc, prefix, absDir)

	return renderNodes(doc, isFragment)
}

// parseHTML parses HTML content, handling both full documents and fragments.
// Returns the parsed node, whether it was a fragment, and any error.
func parseHTML(content string) (*html.Node, bool, error) {
	trimmed := strings.ToLower(strings.TrimSpace(content))

	// Full document: starts with <!DOCTYPE or <html
	if strings.HasPrefix(trimmed, "<!doctype") || strings.HasPrefix(trimmed, "<html") {
		doc, err := html.Parse(strings.NewReader(content))
		return doc, false, err
	}

	// Fragment: parse with body context to avoid wrapping
	context := &html.Node{
		Type:     html.ElementNode,
		DataAtom: atom.Body,
		Data:     "body",
	}
	nodes, err := html.ParseFragment(strings.NewReader(content), context)
	if err != nil {
		return nil, true, err
	}

	container := &html.Node{Type: html.DocumentNode}
	for _, n := range nodes {
		container.AppendChild(n)
	}
	return container, true, nil
}

// renderNodes renders the tree back to a string.
// For fragments, only the children are rendered (no <html><body> wrapper).
func renderNodes(doc *html.Node, isFragment bool) (string, error) {
	var buf strings.Builder

	if isFragment {
		for c := doc.FirstChild; c != nil; c = c.NextSibling {
			if err := html.Render(&buf, c); err != nil {
				return "", err
			}
		}
		return buf.String(), nil
	}

	if err := html.Render(&buf, doc); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func localizeNode(n *html.Node, prefix, dir string) {
	if n.Type == html.ElementNode && n.DataAtom == atom.Img {
		for i, a := range n.Attr {
			if a.Key != "src" || !strings.HasPrefix(a.Val, prefix) {
				continue
			}
			name := strings.TrimPrefix(a.Val, prefix)
			if name == "" {
				continue
			}
			absPath := filepath.Join(dir, filepath.FromSlash(name))
			if !isPathUnderDir(absPath, dir) {
				continue
			}
			n.Attr[i].Val = pathToFileURL(absPath)
		}
	}

	for c := n.FirstChild; c != nil; c = c.NextSibling {
		localizeNode(c, prefix, dir)
	}
}

// isPathUnderDir checks if absPath is under dir (prevents path traversal).
func isPathUnderDir(absPath, dir string) bool {
	cleanPath := filepath.Clean(absPath)
	cleanDir := filepath.Clean(dir)

	if !strings.HasSuffix(cleanDir, string(filepath.Separator)) {
		cleanDir += string(filepath.Separator)
	}
	return strings.HasPrefix(cleanPath+string(filepath.Separator), cleanDir)
}

// pathToFileURL converts an absolute path to a file:// URL.
func pathToFileURL(absPath string) string {
	u := url.URL{
		Scheme: "file",
		Path:   filepath.ToSlash(absPath),
	}
	return u.String()
}
