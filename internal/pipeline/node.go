package pipeline

// Document is the parsed form of one wikitext input.
// It is built once by Parse and rendered once by RenderHTML.
type Document struct {
	Blocks []Block
}

// Title returns the plain text of the first header, or "" if there is none.
func (d *Document) Title() string {
	for _, b := range d.Blocks {
		if h, ok := b.(*Header); ok {
			return PlainText(h.Content)
		}
	}
	return ""
}

// Block is a block-level node: Header, List, Table, Paragraph, Rule or Preformatted.
type Block interface {
	block()
}

// Inline is an inline node: Text, Literal, Link, Image or Emphasis.
type Inline interface {
	inline()
}

// ListKind distinguishes bullet lists from numbered lists.
type ListKind int

const (
	Bullet ListKind = iota
	Numbered
)

// Tag returns the HTML element name for the list kind.
func (k ListKind) Tag() string {
	if k == Numbered {
		return "ol"
	}
	return "ul"
}

// Header is a section heading of level 1-6.
type Header struct {
	Level   int
	Content []Inline
}

// List is a bullet or numbered list. Nested lists hang off their parent item.
type List struct {
	Kind  ListKind
	Items []*ListItem
}

// ListItem is one list entry with an optional nested list.
type ListItem struct {
	Content []Inline
	Sublist *List
}

// Table is a {| ... |} block.
type Table struct {
	Caption []Inline
	Rows    []*TableRow
}

// TableRow holds cells in source order; header and data cells may be mixed.
type TableRow struct {
	Cells []*TableCell
}

// TableCell is a <th> when Header is set, a <td> otherwise.
type TableCell struct {
	Header  bool
	Content []Inline
}

// Paragraph is a run of non-blank lines. Bare paragraphs are emitted without
// the <p> wrapper because they already start with block-level markup.
type Paragraph struct {
	Content []Inline
	Bare    bool
}

// Rule is a horizontal rule (----).
type Rule struct{}

// Preformatted is a <pre>, <syntaxhighlight> or <source> block.
// Lang is empty for plain <pre> blocks.
type Preformatted struct {
	Lang      string
	Text      string
	Highlight bool
}

func (*Header) block()       {}
func (*List) block()         {}
func (*Table) block()        {}
func (*Paragraph) block()    {}
func (*Rule) block()         {}
func (*Preformatted) block() {}

// Text is literal wikitext passed through as-is.
type Text struct {
	Value string
}

// Literal is <nowiki> content; it is escaped on output.
type Literal struct {
	Value string
}

// Link is an internal wiki link or an external URL link.
type Link struct {
	Target   string
	External bool
	Content  []Inline
}

// Image is a [[File:...]] figure or a bare [[Image:...]] alias.
type Image struct {
	Name       string
	Thumb      bool
	Alias      bool
	Alt        string
	Caption    []Inline
	HasCaption bool
}

// Emphasis is bold, italic, or both.
type Emphasis struct {
	Strong  bool
	Em      bool
	Content []Inline
}

func (*Text) inline()     {}
func (*Literal) inline()  {}
func (*Link) inline()     {}
func (*Image) inline()    {}
func (*Emphasis) inline() {}

// PlainText flattens inline nodes to their visible text, dropping markup.
func PlainText(nodes []Inline) string {
	var out []byte
	for _, n := range nodes {
		switch v := n.(type) {
		case *Text:
			out = append(out, v.Value...)
		case *Literal:
			out = append(out, v.Value...)
		case *Link:
			out = append(out, PlainText(v.Content)...)
		case *Image:
			out = append(out, v.Alt...)
		case *Emphasis:
			out = append(out, PlainText(v.Content)...)
		}
	}
	return string(out)
}
