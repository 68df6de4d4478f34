package pipeline

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ---------------------------------------------------------------------------
// TestParse - block classification
// ---------------------------------------------------------------------------

func TestParse_BlockKinds(t *testing.T) {
	t.Parallel()

	input := strings.Join([]string{
		"== Head ==",
		"para",
		"----",
		"* item",
		"{|",
		"| cell",
		"|}",
		"<pre>code</pre>",
		"[[File:a.png]]",
	}, "\n")

	doc, err := Parse(input, ParseOptions{})
	require.NoError(t, err)
	require.Len(t, doc.Blocks, 7)

	assert.IsType(t, &Header{}, doc.Blocks[0])
	assert.IsType(t, &Paragraph{}, doc.Blocks[1])
	assert.IsType(t, &Rule{}, doc.Blocks[2])
	assert.IsType(t, &List{}, doc.Blocks[3])
	assert.IsType(t, &Table{}, doc.Blocks[4])
	assert.IsType(t, &Preformatted{}, doc.Blocks[5])

	fig, ok := doc.Blocks[6].(*Paragraph)
	require.True(t, ok)
	assert.True(t, fig.Bare, "paragraph starting with a figure is bare")
}

func TestParse_ListTree(t *testing.T) {
	t.Parallel()

	doc, err := Parse("# a\n## b\n## c\n# d", ParseOptions{})
	require.NoError(t, err)
	require.Len(t, doc.Blocks, 1)

	list := doc.Blocks[0].(*List)
	assert.Equal(t, Numbered, list.Kind)
	require.Len(t, list.Items, 2)
	assert.Equal(t, "a", PlainText(list.Items[0].Content))
	assert.Equal(t, "d", PlainText(list.Items[1].Content))

	sub := list.Items[0].Sublist
	require.NotNil(t, sub)
	require.Len(t, sub.Items, 2)
	assert.Equal(t, "b", PlainText(sub.Items[0].Content))
	assert.Equal(t, "c", PlainText(sub.Items[1].Content))
	assert.Nil(t, list.Items[1].Sublist)
}

func TestParse_CodeBlockLanguage(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		input     string
		lang      string
		highlight bool
		text      string
	}{
		{"pre", "<pre>x</pre>", "", false, "x"},
		{"pre with attributes", "<pre class=\"x\">\ny\n</pre>", "", false, "y"},
		{"syntaxhighlight", "<syntaxhighlight lang=\"Go\">\nf()\n</syntaxhighlight>", "go", true, "f()"},
		{"source unquoted", "<source lang=python>\np()\n</source>", "python", true, "p()"},
		{"no lang", "<syntaxhighlight>\nz\n</syntaxhighlight>", "", true, "z"},
		{"uppercase closing tag", "<PRE>\nq\n</PRE>", "", false, "q"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			doc, err := Parse(tt.input, ParseOptions{})
			require.NoError(t, err)
			require.Len(t, doc.Blocks, 1)

			pre, ok := doc.Blocks[0].(*Preformatted)
			require.True(t, ok, "got %T", doc.Blocks[0])
			assert.Equal(t, tt.lang, pre.Lang)
			assert.Equal(t, tt.highlight, pre.Highlight)
			assert.Equal(t, tt.text, pre.Text)
		})
	}
}

func TestParse_InvalidUTF8(t *testing.T) {
	t.Parallel()

	_, err := Parse("\xfe\xff", ParseOptions{})
	if !errors.Is(err, ErrInvalidUTF8) {
		t.Errorf("Parse() error = %v, want ErrInvalidUTF8", err)
	}
}

// ---------------------------------------------------------------------------
// TestMatchHeader
// ---------------------------------------------------------------------------

func TestMatchHeader(t *testing.T) {
	t.Parallel()

	tests := []struct {
		line  string
		level int
		inner string
		ok    bool
	}{
		{"= a =", 1, "a", true},
		{"==a==", 2, "a", true},
		{"=== a ===   ", 3, "a", true},
		{"====== a ======", 6, "a", true},
		{"======= a =======", 0, "", false},
		{"== a =", 0, "", false},
		{"= a ==", 0, "", false},
		{"==", 0, "", false},
		{"====", 0, "", false},
		{" == a ==", 0, "", false},
		{"plain", 0, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			t.Parallel()

			level, inner, ok := matchHeader(tt.line)
			if level != tt.level || inner != tt.inner || ok != tt.ok {
				t.Errorf("matchHeader(%q) = (%d, %q, %v), want (%d, %q, %v)",
					tt.line, level, inner, ok, tt.level, tt.inner, tt.ok)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestMatchListItem
// ---------------------------------------------------------------------------

func TestMatchListItem(t *testing.T) {
	t.Parallel()

	tests := []struct {
		line    string
		kind    ListKind
		depth   int
		content string
		ok      bool
	}{
		{"* a", Bullet, 1, "a", true},
		{"*** deep  ", Bullet, 3, "deep", true},
		{"# n", Numbered, 1, "n", true},
		{"## n", Numbered, 2, "n", true},
		{"*\tTab", Bullet, 1, "Tab", true},
		{"*a", Bullet, 0, "", false},
		{"* ", Bullet, 0, "", false},
		{" * a", Bullet, 0, "", false},
		{"#a", Bullet, 0, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			t.Parallel()

			kind, depth, content, ok := matchListItem(tt.line)
			if ok != tt.ok || depth != tt.depth || content != tt.content || (ok && kind != tt.kind) {
				t.Errorf("matchListItem(%q) = (%v, %d, %q, %v), want (%v, %d, %q, %v)",
					tt.line, kind, depth, content, ok, tt.kind, tt.depth, tt.content, tt.ok)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestPreprocess
// ---------------------------------------------------------------------------

func TestPreprocess(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"unix unchanged", "a\nb", "a\nb"},
		{"crlf", "a\r\nb\r\n", "a\nb\n"},
		{"lone cr", "a\rb", "a\nb"},
		{"bom stripped", "\uFEFFa", "a"},
		{"bom only at start", "a\uFEFFb", "a\uFEFFb"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := Preprocess(tt.input); got != tt.want {
				t.Errorf("Preprocess(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestChromaHighlighter
// ---------------------------------------------------------------------------

func TestNewChromaHighlighter(t *testing.T) {
	t.Parallel()

	_, err := NewChromaHighlighter("")
	require.NoError(t, err, "empty name selects the default style")

	_, err = NewChromaHighlighter("no-such-style")
	require.ErrorIs(t, err, ErrUnknownHighlightStyle)
}

func TestChromaHighlighter_Highlight(t *testing.T) {
	t.Parallel()

	h, err := NewChromaHighlighter(DefaultHighlightStyle)
	require.NoError(t, err)

	tests := []struct {
		name string
		lang string
		code string
	}{
		{"known language", "go", "package main"},
		{"unknown language", "not-a-language", "some <text>"},
		{"empty language", "", "plain"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer
			require.NoError(t, h.Highlight(&buf, tt.lang, tt.code))
			out := buf.String()
			assert.Contains(t, out, `class="chroma"`)
			assert.NotContains(t, out, "<text>", "code must be escaped")
		})
	}
}

func TestChromaHighlighter_WriteCSS(t *testing.T) {
	t.Parallel()

	h, err := NewChromaHighlighter("monokai")
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, h.WriteCSS(&buf))
	assert.Contains(t, buf.String(), ".chroma")
}

// ---------------------------------------------------------------------------
// TestPlainText
// ---------------------------------------------------------------------------

func TestPlainText(t *testing.T) {
	t.Parallel()

	nodes := []Inline{
		&Text{Value: "a "},
		&Emphasis{Strong: true, Content: []Inline{&Text{Value: "b"}}},
		&Link{Target: "P", Content: []Inline{&Text{Value: " c"}}},
		&Literal{Value: " <d>"},
		&Image{Name: "x.png", Alt: " e"},
	}
	assert.Equal(t, "a b c <d> e", PlainText(nodes))
}
