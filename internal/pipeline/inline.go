package pipeline

import (
	"fmt"
	"regexp"
	"strings"
)

// Inline patterns. Order is priority: when two patterns match at the same
// offset the earlier one wins, so images beat internal links and links with
// display text beat their bare forms.
var (
	nowikiPattern         = regexp.MustCompile(`(?is)<nowiki>(.*?)</nowiki>`)
	filePattern           = regexp.MustCompile(`(?i)\[\[(File|Image):([^|\]]+)((?:\|(?:[^|\[\]]|\[\[[^\[\]]*\]\]|\[[^\[\]]*\])*)*)\]\]`)
	internalTextPattern   = regexp.MustCompile(`\[\[([^|\]]+)\|([^\]]+)\]\]`)
	internalPattern       = regexp.MustCompile(`\[\[([^\]]+)\]\]`)
	externalTextPattern   = regexp.MustCompile(`\[([A-Za-z][A-Za-z0-9+.\-]*://[^\s\]]+)\s+([^\]]+)\]`)
	externalPattern       = regexp.MustCompile(`\[([A-Za-z][A-Za-z0-9+.\-]*://[^\s\]]+)\]`)
	quoteRunPattern       = regexp.MustCompile(`'{2,}`)
	imageSizeOption       = regexp.MustCompile(`^\d*(x\d+)?px$`)
	imageKeyValueOption   = regexp.MustCompile(`^(alt|link|page|class|lang|upright)\s*=`)
	captionlessImageFlags = map[string]bool{
		"frameless": true, "border": true, "left": true, "right": true,
		"center": true, "centre": true, "none": true, "upright": true,
		"baseline": true, "middle": true, "sub": true, "super": true,
		"top": true, "text-top": true, "bottom": true, "text-bottom": true,
	}
	thumbImageFlags = map[string]bool{"thumb": true, "thumbnail": true, "frame": true, "framed": true}
)

// inlineRule builds a node from the submatches of one pattern.
type inlineRule struct {
	pattern *regexp.Regexp
	build   func(p *inlineParser, m []string, depth int) (Inline, error)
}

// inlineRules lists patterns in priority order. The builders recurse into
// the parser, so the table is filled in init.
var inlineRules []inlineRule

func init() {
	inlineRules = []inlineRule{
		{nowikiPattern, buildNowiki},
		{filePattern, buildImage},
		{internalTextPattern, buildInternalTextLink},
		{internalPattern, buildInternalLink},
		{externalTextPattern, buildExternalTextLink},
		{externalPattern, buildExternalLink},
	}
}

// inlineParser turns a span of wikitext into inline nodes.
type inlineParser struct {
	maxDepth int
}

// item is either a finished node or a run of apostrophes awaiting pairing.
// Newline items separate lines; emphasis never pairs across them.
type item struct {
	node    Inline
	run     int
	newline bool
}

// parse converts text to inline nodes. depth counts recursion through link
// text and captions and is bounded by maxDepth.
func (p *inlineParser) parse(text string, depth int) ([]Inline, error) {
	if depth > p.maxDepth {
		return nil, fmt.Errorf("%w: inline depth %d", ErrNestingTooDeep, depth)
	}

	items, err := p.scan(text, depth)
	if err != nil {
		return nil, err
	}

	var out []Inline
	start := 0
	for i := 0; i <= len(items); i++ {
		if i < len(items) && !items[i].newline {
			continue
		}
		nodes, err := pairEmphasis(items[start:i], depth, p.maxDepth)
		if err != nil {
			return nil, err
		}
		out = append(out, nodes...)
		if i < len(items) {
			out = append(out, &Text{Value: "\n"})
		}
		start = i + 1
	}
	return mergeText(out), nil
}

// scan splits text into link, image and nowiki nodes plus plain text items.
// Each pattern's next match is cached so the text is scanned once per pattern
// rather than once per match.
func (p *inlineParser) scan(text string, depth int) ([]item, error) {
	var items []item
	next := make([][]int, len(inlineRules))
	searchedFrom := make([]int, len(inlineRules))
	for i := range searchedFrom {
		searchedFrom[i] = -1
	}

	pos := 0
	for pos < len(text) {
		best := -1
		for i, rule := range inlineRules {
			if searchedFrom[i] < 0 || (next[i] != nil && next[i][0] < pos) {
				next[i] = find(rule.pattern, text, pos)
				searchedFrom[i] = pos
			}
			if next[i] == nil {
				continue
			}
			if best < 0 || next[i][0] < next[best][0] {
				best = i
			}
		}
		if best < 0 {
			break
		}

		loc := next[best]
		items = appendText(items, text[pos:loc[0]])
		node, err := inlineRules[best].build(p, submatches(text, loc), depth)
		if err != nil {
			return nil, err
		}
		items = append(items, item{node: node})
		pos = loc[1]
	}
	items = appendText(items, text[pos:])
	return items, nil
}

// find returns absolute submatch indexes of the first match at or after pos.
func find(re *regexp.Regexp, text string, pos int) []int {
	loc := re.FindStringSubmatchIndex(text[pos:])
	if loc == nil {
		return nil
	}
	for i := range loc {
		if loc[i] >= 0 {
			loc[i] += pos
		}
	}
	return loc
}

func submatches(text string, loc []int) []string {
	m := make([]string, len(loc)/2)
	for i := range m {
		if loc[2*i] >= 0 {
			m[i] = text[loc[2*i]:loc[2*i+1]]
		}
	}
	return m
}

// appendText splits plain text into text, apostrophe-run and newline items.
func appendText(items []item, text string) []item {
	for i, line := range strings.Split(text, "\n") {
		if i > 0 {
			items = append(items, item{newline: true})
		}
		last := 0
		for _, loc := range quoteRunPattern.FindAllStringIndex(line, -1) {
			if loc[0] > last {
				items = append(items, item{node: &Text{Value: line[last:loc[0]]}})
			}
			items = appendRun(items, loc[1]-loc[0])
			last = loc[1]
		}
		if last < len(line) {
			items = append(items, item{node: &Text{Value: line[last:]}})
		}
	}
	return items
}

// appendRun normalizes an apostrophe run to a width of 2, 3 or 5.
// Four apostrophes are a literal one followed by bold; more than five keep
// the surplus as literal text before a bold-italic run.
func appendRun(items []item, n int) []item {
	switch {
	case n == 4:
		items = append(items, item{node: &Text{Value: "'"}})
		n = 3
	case n > 5:
		items = append(items, item{node: &Text{Value: strings.Repeat("'", n-5)}})
		n = 5
	}
	return append(items, item{run: n})
}

// mergeText joins adjacent Text nodes.
func mergeText(nodes []Inline) []Inline {
	out := nodes[:0]
	for _, n := range nodes {
		t, ok := n.(*Text)
		if !ok {
			out = append(out, n)
			continue
		}
		if len(out) > 0 {
			if prev, ok := out[len(out)-1].(*Text); ok {
				out[len(out)-1] = &Text{Value: prev.Value + t.Value}
				continue
			}
		}
		out = append(out, t)
	}
	return out
}

func buildNowiki(_ *inlineParser, m []string, _ int) (Inline, error) {
	return &Literal{Value: m[1]}, nil
}

func buildInternalTextLink(p *inlineParser, m []string, depth int) (Inline, error) {
	content, err := p.parse(m[2], depth+1)
	if err != nil {
		return nil, err
	}
	return &Link{Target: strings.TrimSpace(m[1]), Content: content}, nil
}

func buildInternalLink(_ *inlineParser, m []string, _ int) (Inline, error) {
	page := strings.TrimSpace(m[1])
	return &Link{Target: page, Content: []Inline{&Text{Value: page}}}, nil
}

func buildExternalTextLink(p *inlineParser, m []string, depth int) (Inline, error) {
	content, err := p.parse(m[2], depth+1)
	if err != nil {
		return nil, err
	}
	return &Link{Target: m[1], External: true, Content: content}, nil
}

func buildExternalLink(_ *inlineParser, m []string, _ int) (Inline, error) {
	return &Link{Target: m[1], External: true, Content: []Inline{&Text{Value: m[1]}}}, nil
}

// splitImageOptions splits the "|a|b" tail of an image link on pipes outside
// nested brackets, so a caption link like [[Page|text]] stays whole.
func splitImageOptions(s string) []string {
	var segs []string
	depth, start := 0, 1
	for i := 1; i < len(s); i++ {
		switch s[i] {
		case '[':
			depth++
		case ']':
			if depth > 0 {
				depth--
			}
		case '|':
			if depth == 0 {
				segs = append(segs, s[start:i])
				start = i + 1
			}
		}
	}
	if s != "" {
		segs = append(segs, s[start:])
	}
	return segs
}

// buildImage handles [[File:name|options|caption]] and [[Image:name]].
// Option segments are recognized and dropped; the last remaining segment is
// the caption. Without a caption the file name doubles as alt text.
func buildImage(p *inlineParser, m []string, depth int) (Inline, error) {
	img := &Image{Name: strings.TrimSpace(m[2])}
	if strings.EqualFold(m[1], "image") && m[3] == "" {
		img.Alias = true
		img.Alt = img.Name
		return img, nil
	}

	var caption, alt string
	hasCaption, hasAlt := false, false
	for _, seg := range splitImageOptions(m[3]) {
		opt := strings.TrimSpace(seg)
		lower := strings.ToLower(opt)
		switch {
		case thumbImageFlags[lower]:
			img.Thumb = true
		case captionlessImageFlags[lower], imageSizeOption.MatchString(lower):
		case imageKeyValueOption.MatchString(lower):
			if strings.HasPrefix(lower, "alt") {
				alt = strings.TrimSpace(opt[strings.Index(opt, "=")+1:])
				hasAlt = true
			}
		case opt == "":
		default:
			caption = opt
			hasCaption = true
		}
	}

	img.Alt = img.Name
	if hasCaption {
		nodes, err := p.parse(caption, depth+1)
		if err != nil {
			return nil, err
		}
		img.Caption = nodes
		img.HasCaption = true
		img.Alt = PlainText(nodes)
	}
	if hasAlt {
		img.Alt = alt
	}
	return img, nil
}
