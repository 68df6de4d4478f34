package pipeline

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// DefaultMaxNesting bounds list depth and inline recursion when
// ParseOptions.MaxNesting is not set.
const DefaultMaxNesting = 32

var (
	rulePattern     = regexp.MustCompile(`^-{4,}\s*$`)
	rawBlockPattern = regexp.MustCompile(`(?i)^\s*<(h[1-6]|ul|ol|table|figure|pre|blockquote)\b`)
	preOpenPattern  = regexp.MustCompile(`(?i)^\s*<(pre|syntaxhighlight|source)(\s[^>]*)?>`)
	langAttrPattern = regexp.MustCompile(`(?i)\blang\s*=\s*["']?([\w+#.\-]+)`)

	preClosePatterns = map[string]*regexp.Regexp{
		"pre":             regexp.MustCompile(`(?i)</pre>`),
		"syntaxhighlight": regexp.MustCompile(`(?i)</syntaxhighlight>`),
		"source":          regexp.MustCompile(`(?i)</source>`),
	}
)

// ParseOptions configures Parse.
type ParseOptions struct {
	// MaxNesting bounds list depth and inline recursion. Zero means DefaultMaxNesting.
	MaxNesting int
}

// blockParser holds the state of one Parse call.
type blockParser struct {
	maxDepth int
	inline   *inlineParser
	blocks   []Block
	para     []string
}

// Parse tokenizes wikitext into a Document.
//
// Lines are classified in this order: blank, header, rule, preformatted,
// table, list item, paragraph text. Consecutive paragraph lines form one
// Paragraph; a blank line or any other block ends it.
func Parse(text string, opts ParseOptions) (*Document, error) {
	if !utf8.ValidString(text) {
		return nil, ErrInvalidUTF8
	}

	maxDepth := opts.MaxNesting
	if maxDepth <= 0 {
		maxDepth = DefaultMaxNesting
	}
	p := &blockParser{
		maxDepth: maxDepth,
		inline:   &inlineParser{maxDepth: maxDepth},
	}

	lines := strings.Split(Preprocess(text), "\n")
	for i := 0; i < len(lines); {
		next, err := p.parseLine(lines, i)
		if err != nil {
			return nil, err
		}
		i = next
	}
	if err := p.flushParagraph(); err != nil {
		return nil, err
	}
	return &Document{Blocks: p.blocks}, nil
}

// parseLine consumes the construct starting at lines[i] and returns the
// index of the next unconsumed line.
func (p *blockParser) parseLine(lines []string, i int) (int, error) {
	line := lines[i]
	trimmed := strings.TrimSpace(line)

	if trimmed == "" {
		return i + 1, p.flushParagraph()
	}

	if level, inner, ok := matchHeader(line); ok {
		if err := p.flushParagraph(); err != nil {
			return i, err
		}
		content, err := p.inline.parse(inner, 0)
		if err != nil {
			return i, err
		}
		p.blocks = append(p.blocks, &Header{Level: level, Content: content})
		return i + 1, nil
	}

	if rulePattern.MatchString(line) {
		if err := p.flushParagraph(); err != nil {
			return i, err
		}
		p.blocks = append(p.blocks, &Rule{})
		return i + 1, nil
	}

	if pre, rest, next, ok := matchPreformatted(lines, i); ok {
		if err := p.flushParagraph(); err != nil {
			return i, err
		}
		p.blocks = append(p.blocks, pre)
		if strings.TrimSpace(rest) != "" {
			p.para = append(p.para, rest)
		}
		return next, nil
	}

	if strings.HasPrefix(trimmed, "{|") {
		if err := p.flushParagraph(); err != nil {
			return i, err
		}
		table, next, err := p.parseTable(lines, i)
		if err != nil {
			return i, err
		}
		p.blocks = append(p.blocks, table)
		return next, nil
	}

	if _, _, _, ok := matchListItem(line); ok {
		if err := p.flushParagraph(); err != nil {
			return i, err
		}
		list, next, err := p.parseList(lines, i)
		if err != nil {
			return i, err
		}
		p.blocks = append(p.blocks, list)
		return next, nil
	}

	p.para = append(p.para, line)
	return i + 1, nil
}

// flushParagraph turns pending paragraph lines into a Paragraph block.
func (p *blockParser) flushParagraph() error {
	if len(p.para) == 0 {
		return nil
	}
	lines := p.para
	p.para = nil

	text := strings.TrimSpace(strings.Join(lines, "\n"))
	if text == "" {
		return nil
	}
	content, err := p.inline.parse(text, 0)
	if err != nil {
		return err
	}
	p.blocks = append(p.blocks, &Paragraph{
		Content: content,
		Bare:    startsWithBlock(text, content),
	})
	return nil
}

// startsWithBlock reports whether a paragraph already opens with block-level
// markup: raw block HTML written by the author, or a figure image.
func startsWithBlock(text string, content []Inline) bool {
	if rawBlockPattern.MatchString(text) {
		return true
	}
	if len(content) == 0 {
		return false
	}
	img, ok := content[0].(*Image)
	return ok && !img.Alias
}

// matchHeader recognizes a line wrapped in the same number (1-6) of leading
// and trailing '=' characters. Mismatched counts are not a header.
func matchHeader(line string) (level int, inner string, ok bool) {
	s := strings.TrimRight(line, " \t")
	lead := len(s) - len(strings.TrimLeft(s, "="))
	trail := len(s) - len(strings.TrimRight(s, "="))
	if lead == 0 || lead > 6 || lead != trail || len(s) <= 2*lead {
		return 0, "", false
	}
	inner = strings.TrimSpace(s[lead : len(s)-trail])
	if inner == "" {
		return 0, "", false
	}
	return lead, inner, true
}

// matchPreformatted recognizes a <pre>, <syntaxhighlight> or <source> block
// opening on lines[i]. The block must be closed by the matching tag; an
// unclosed tag is left to paragraph handling. Text after the closing tag on
// its line is returned as rest.
func matchPreformatted(lines []string, i int) (pre *Preformatted, rest string, next int, ok bool) {
	loc := preOpenPattern.FindStringSubmatchIndex(lines[i])
	if loc == nil {
		return nil, "", i, false
	}
	tag := strings.ToLower(lines[i][loc[2]:loc[3]])
	var attrs string
	if loc[4] >= 0 {
		attrs = lines[i][loc[4]:loc[5]]
	}
	closing := preClosePatterns[tag]

	body := lines[i][loc[1]:]
	for k := i; k < len(lines); k++ {
		segment := body
		if k > i {
			segment = lines[k]
		}
		m := closing.FindStringIndex(segment)
		if m == nil {
			continue
		}
		end := m[0]

		parts := make([]string, 0, k-i+1)
		if k == i {
			parts = append(parts, segment[:end])
		} else {
			parts = append(parts, body)
			parts = append(parts, lines[i+1:k]...)
			parts = append(parts, segment[:end])
		}
		text := strings.Join(parts, "\n")
		text = strings.TrimPrefix(text, "\n")
		text = strings.TrimSuffix(text, "\n")

		pre = &Preformatted{Text: text}
		if tag != "pre" {
			pre.Highlight = true
			if m := langAttrPattern.FindStringSubmatch(attrs); m != nil {
				pre.Lang = strings.ToLower(m[1])
			}
		}
		return pre, segment[m[1]:], k + 1, true
	}
	return nil, "", i, false
}
