// Package sanitize strips rendered preview HTML down to the elements and
// attributes the renderer produces.
package sanitize

import (
	"regexp"

	"github.com/microcosm-cc/bluemonday"
)

var (
	lazyLoading = regexp.MustCompile(`^(lazy|eager)$`)
	blankTarget = regexp.MustCompile(`^_blank$`)
	relTokens   = regexp.MustCompile(`^(noopener|noreferrer|nofollow)( (noopener|noreferrer|nofollow))*$`)

	// A value with a colon before its first '/', '?' or '#' carries a scheme;
	// only the listed schemes get through. Bare "#" stays intact.
	linkHref = regexp.MustCompile(`^(?i:(?:https?://|mailto:)\S+|[^\s:/?#]*(?:[/?#]\S*)?)$`)
	imageSrc = regexp.MustCompile(`^(?i:https?://\S+|[^\s:/?#]*(?:[/?#]\S*)?)$`)
)

// Elements allowed through the policy.
var (
	blockElements = []string{
		"h1", "h2", "h3", "h4", "h5", "h6",
		"p", "ul", "ol", "li", "blockquote", "hr",
		"figure", "figcaption",
		"table", "caption", "thead", "tbody", "tr", "th", "td",
		"pre",
	}
	inlineElements = []string{"strong", "em", "a", "img", "code", "span", "br"}
	classElements  = []string{
		"p", "ul", "ol", "a", "img", "figure", "table", "pre", "code", "span",
	}
)

// Policy is an allow-list sanitizer for preview HTML. Safe for concurrent use.
type Policy struct {
	policy *bluemonday.Policy
}

// NewPolicy builds the preview allow-list.
//
// Links keep href (http, https, mailto, relative, #fragment and a bare "#"),
// title, class, target="_blank" and rel; fully qualified links always open in
// a new tab with rel="noopener". Images keep src (http, https or relative),
// alt, class and loading.
// Everything else, including scripts, event handlers and style
// attributes, is removed.
func NewPolicy() *Policy {
	p := bluemonday.NewPolicy()

	p.AllowElements(blockElements...)
	p.AllowElements(inlineElements...)

	p.AllowAttrs("class").Matching(bluemonday.SpaceSeparatedTokens).OnElements(classElements...)

	p.RequireParseableURLs(false)
	p.AllowAttrs("href").Matching(linkHref).OnElements("a")
	p.AllowAttrs("title").OnElements("a")
	p.AllowAttrs("target").Matching(blankTarget).OnElements("a")
	p.AllowAttrs("rel").Matching(relTokens).OnElements("a")
	p.AddTargetBlankToFullyQualifiedLinks(true)

	p.AllowAttrs("src").Matching(imageSrc).OnElements("img")
	p.AllowAttrs("alt").OnElements("img")
	p.AllowAttrs("loading").Matching(lazyLoading).OnElements("img")

	return &Policy{policy: p}
}

// Sanitize returns html with disallowed markup removed.
func (p *Policy) Sanitize(html string) string {
	return p.policy.Sanitize(html)
}
