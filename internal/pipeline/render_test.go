package pipeline

// Notes:
// - Golden tests go through Pipeline.Run so they cover parse and render together
// - Expected strings are exact: block separators, list newlines and attribute
//   order are part of the output contract
// - Paragraph-wrapped constructs (emphasis, links, alias images) include the <p>

import (
	"strings"
	"testing"
)

func runGolden(t *testing.T, p *Pipeline, input, want string) {
	t.Helper()

	out := p.Run(input)
	if out.Degraded {
		t.Fatalf("Run(%q) degraded: %v", input, out.Reason)
	}
	if out.HTML != want {
		t.Errorf("Run(%q) =\n%s\nwant:\n%s", input, out.HTML, want)
	}
}

// ---------------------------------------------------------------------------
// TestRun_Headers
// ---------------------------------------------------------------------------

func TestRun_Headers(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"h1", "= Top =", "<h1>Top</h1>"},
		{"h2 trimmed", "== Title ==", "<h2>Title</h2>"},
		{"h3 no spaces", "===Sub===", "<h3>Sub</h3>"},
		{"h6", "====== Deep ======", "<h6>Deep</h6>"},
		{"trailing whitespace", "==  Spaced  ==  \t", "<h2>Spaced</h2>"},
		{"inline content", "== ''Intro'' ==", "<h2><em>Intro</em></h2>"},
		{"mismatched counts", "== Mismatch =", "<p>== Mismatch =</p>"},
		{"seven marks", "======= Seven =======", "<p>======= Seven =======</p>"},
		{"empty inner", "== ==", "<p>== ==</p>"},
		{"inner equals kept", "== a = b ==", "<h2>a = b</h2>"},
		{"text after header", "== A ==\nbody", "<h2>A</h2>\n<p>body</p>"},
	}

	p := New(Options{})
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			runGolden(t, p, tt.input, tt.want)
		})
	}
}

// ---------------------------------------------------------------------------
// TestRun_Emphasis
// ---------------------------------------------------------------------------

func TestRun_Emphasis(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"italic", "''a''", "<p><em>a</em></p>"},
		{"bold", "'''b'''", "<p><strong>b</strong></p>"},
		{"bold italic", "'''''x'''''", "<p><strong><em>x</em></strong></p>"},
		{"mixed in text", "a ''b'' c '''d''' e", "<p>a <em>b</em> c <strong>d</strong> e</p>"},
		{"unclosed italic literal", "''unclosed", "<p>''unclosed</p>"},
		{"unclosed bold literal", "'''unclosed", "<p>'''unclosed</p>"},
		{"single apostrophe", "don't", "<p>don't</p>"},
		{"four apostrophes", "''''a''''", "<p>'<strong>a'</strong></p>"},
		{"six apostrophes", "''''''a'''''", "<p>'<strong><em>a</em></strong></p>"},
		{"five opens bold then italic", "'''''a''' b''", "<p><em><strong>a</strong> b</em></p>"},
		{"five opens italic then bold", "'''''a'' b'''", "<p><strong><em>a</em> b</strong></p>"},
		{"five closes bold around italic", "'''a ''b'''''", "<p><strong>a <em>b</em></strong></p>"},
		{"five closes italic leaves bold", "''a'''''", "<p><em>a</em>'''</p>"},
		{"nested italic in bold", "'''a ''b'' c'''", "<p><strong>a <em>b</em> c</strong></p>"},
		{"per line only", "''a\nb''", "<p>''a\nb''</p>"},
		{"around link", "''[[Page]]''", `<p><em><a href="#" class="wiki-link" title="Page">Page</a></em></p>`},
		{"overlap stays well formed", "''a '''b'' c'''", "<p><em>a '''b</em> c'''</p>"},
	}

	p := New(Options{})
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			runGolden(t, p, tt.input, tt.want)
		})
	}
}

// ---------------------------------------------------------------------------
// TestRun_Lists
// ---------------------------------------------------------------------------

func TestRun_Lists(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "flat bullets",
			input: "* a\n* b",
			want:  "<ul class=\"wiki-list\">\n<li>a</li>\n<li>b</li>\n</ul>",
		},
		{
			name:  "numbered",
			input: "# one\n# two",
			want:  "<ol class=\"wiki-list\">\n<li>one</li>\n<li>two</li>\n</ol>",
		},
		{
			name:  "nested and back",
			input: "* a\n** b\n* c",
			want: "<ul class=\"wiki-list\">\n<li>a\n" +
				"<ul class=\"wiki-list-nested\">\n<li>b</li>\n</ul>\n</li>\n" +
				"<li>c</li>\n</ul>",
		},
		{
			name:  "depth jump opens each level",
			input: "* a\n*** b",
			want: "<ul class=\"wiki-list\">\n<li>a\n" +
				"<ul class=\"wiki-list-nested\">\n<li>\n" +
				"<ul class=\"wiki-list-nested\">\n<li>b</li>\n</ul>\n</li>\n" +
				"</ul>\n</li>\n</ul>",
		},
		{
			name:  "starts deep",
			input: "** a",
			want: "<ul class=\"wiki-list\">\n<li>\n" +
				"<ul class=\"wiki-list-nested\">\n<li>a</li>\n</ul>\n</li>\n</ul>",
		},
		{
			name:  "same depth keeps kind",
			input: "* a\n# b",
			want:  "<ul class=\"wiki-list\">\n<li>a</li>\n<li>b</li>\n</ul>",
		},
		{
			name:  "nested numbered in bullets",
			input: "* a\n## b",
			want: "<ul class=\"wiki-list\">\n<li>a\n" +
				"<ol class=\"wiki-list-nested\">\n<li>b</li>\n</ol>\n</li>\n</ul>",
		},
		{
			name:  "inline content in items",
			input: "* '''bold''' [[Page|link]]",
			want:  "<ul class=\"wiki-list\">\n<li><strong>bold</strong> <a href=\"#\" class=\"wiki-link\" title=\"Page\">link</a></li>\n</ul>",
		},
		{
			name:  "text closes list",
			input: "* a\nafter",
			want:  "<ul class=\"wiki-list\">\n<li>a</li>\n</ul>\n<p>after</p>",
		},
		{
			name:  "marker without space is text",
			input: "*a",
			want:  "<p>*a</p>",
		},
		{
			name:  "two lists split by blank line",
			input: "* a\n\n* b",
			want:  "<ul class=\"wiki-list\">\n<li>a</li>\n</ul>\n<ul class=\"wiki-list\">\n<li>b</li>\n</ul>",
		},
	}

	p := New(Options{})
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			runGolden(t, p, tt.input, tt.want)
		})
	}
}

// ---------------------------------------------------------------------------
// TestRun_Links
// ---------------------------------------------------------------------------

func TestRun_Links(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "internal",
			input: "[[Main Page]]",
			want:  `<p><a href="#" class="wiki-link" title="Main Page">Main Page</a></p>`,
		},
		{
			name:  "internal with text",
			input: "[[Main Page|home]]",
			want:  `<p><a href="#" class="wiki-link" title="Main Page">home</a></p>`,
		},
		{
			name:  "external with text",
			input: "[https://example.com Example site]",
			want:  `<p><a href="https://example.com" target="_blank" rel="noopener">Example site</a></p>`,
		},
		{
			name:  "external bare",
			input: "[https://example.com]",
			want:  `<p><a href="https://example.com" target="_blank" rel="noopener">https://example.com</a></p>`,
		},
		{
			name:  "title attribute escaped",
			input: `[[A "quoted" page]]`,
			want:  `<p><a href="#" class="wiki-link" title="A &#34;quoted&#34; page">A "quoted" page</a></p>`,
		},
		{
			name:  "href escaped",
			input: "[https://example.com/?a=1&b=2 q]",
			want:  `<p><a href="https://example.com/?a=1&amp;b=2" target="_blank" rel="noopener">q</a></p>`,
		},
		{
			name:  "link text formatted",
			input: "[[Page|'''bold''' text]]",
			want:  `<p><a href="#" class="wiki-link" title="Page"><strong>bold</strong> text</a></p>`,
		},
		{
			name:  "several links in a line",
			input: "see [[A]] and [http://b.org B]",
			want:  `<p>see <a href="#" class="wiki-link" title="A">A</a> and <a href="http://b.org" target="_blank" rel="noopener">B</a></p>`,
		},
		{
			name:  "single bracket without scheme is text",
			input: "[not a link]",
			want:  "<p>[not a link]</p>",
		},
	}

	p := New(Options{})
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			runGolden(t, p, tt.input, tt.want)
		})
	}
}

// ---------------------------------------------------------------------------
// TestRun_Images
// ---------------------------------------------------------------------------

func TestRun_Images(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "thumb with caption",
			input: "[[File:cat.png|thumb|A cat]]",
			want:  `<figure class="wiki-image wiki-thumb"><img src="/images/cat.png" alt="A cat" loading="lazy" /><figcaption>A cat</figcaption></figure>`,
		},
		{
			name:  "no caption uses file name as alt",
			input: "[[File:cat.png]]",
			want:  `<figure class="wiki-image"><img src="/images/cat.png" alt="cat.png" loading="lazy" /></figure>`,
		},
		{
			name:  "caption without thumb",
			input: "[[File:cat.png|A cat]]",
			want:  `<figure class="wiki-image"><img src="/images/cat.png" alt="A cat" loading="lazy" /><figcaption>A cat</figcaption></figure>`,
		},
		{
			name:  "options dropped and caption formatted",
			input: "[[File:a.png|thumbnail|200px|left|alt=Alt text|A ''cute'' cat]]",
			want:  `<figure class="wiki-image wiki-thumb"><img src="/images/a.png" alt="Alt text" loading="lazy" /><figcaption>A <em>cute</em> cat</figcaption></figure>`,
		},
		{
			name:  "caption alt is plain text",
			input: "[[File:a.png|'''Bold''' caption]]",
			want:  `<figure class="wiki-image"><img src="/images/a.png" alt="Bold caption" loading="lazy" /><figcaption><strong>Bold</strong> caption</figcaption></figure>`,
		},
		{
			name:  "alt attribute escaped",
			input: `[[File:a.png|Say "hi"]]`,
			want:  `<figure class="wiki-image"><img src="/images/a.png" alt="Say &#34;hi&#34;" loading="lazy" /><figcaption>Say "hi"</figcaption></figure>`,
		},
		{
			name:  "lowercase file prefix",
			input: "[[file:x.png]]",
			want:  `<figure class="wiki-image"><img src="/images/x.png" alt="x.png" loading="lazy" /></figure>`,
		},
		{
			name:  "image alias is bare img in paragraph",
			input: "[[Image:dog.jpg]]",
			want:  `<p><img src="/images/dog.jpg" alt="dog.jpg" class="wiki-image" loading="lazy" /></p>`,
		},
		{
			name:  "image alias with options is a figure",
			input: "[[Image:dog.jpg|thumb|A dog]]",
			want:  `<figure class="wiki-image wiki-thumb"><img src="/images/dog.jpg" alt="A dog" loading="lazy" /><figcaption>A dog</figcaption></figure>`,
		},
		{
			name:  "image alias with caption only is a figure",
			input: "[[Image:a.png|cap]]",
			want:  `<figure class="wiki-image"><img src="/images/a.png" alt="cap" loading="lazy" /><figcaption>cap</figcaption></figure>`,
		},
		{
			name:  "caption with internal link",
			input: "[[File:a.png|thumb|A [[Main Page|home]] cap]]",
			want:  `<figure class="wiki-image wiki-thumb"><img src="/images/a.png" alt="A home cap" loading="lazy" /><figcaption>A <a href="#" class="wiki-link" title="Main Page">home</a> cap</figcaption></figure>`,
		},
		{
			name:  "caption with external link",
			input: "[[File:a.png|See [https://example.org site]]]",
			want:  `<figure class="wiki-image"><img src="/images/a.png" alt="See site" loading="lazy" /><figcaption>See <a href="https://example.org" target="_blank" rel="noopener">site</a></figcaption></figure>`,
		},
		{
			name:  "text after figure stays unwrapped",
			input: "[[File:a.png]] trailing",
			want:  `<figure class="wiki-image"><img src="/images/a.png" alt="a.png" loading="lazy" /></figure> trailing`,
		},
		{
			name:  "figure after text is wrapped",
			input: "see [[File:a.png]]",
			want:  `<p>see <figure class="wiki-image"><img src="/images/a.png" alt="a.png" loading="lazy" /></figure></p>`,
		},
	}

	p := New(Options{})
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			runGolden(t, p, tt.input, tt.want)
		})
	}
}

func TestRun_ImagePrefix(t *testing.T) {
	t.Parallel()

	p := New(Options{ImagePrefix: "/media/"})
	runGolden(t, p, "[[Image:x.png]]",
		`<p><img src="/media/x.png" alt="x.png" class="wiki-image" loading="lazy" /></p>`)
}

// ---------------------------------------------------------------------------
// TestRun_Tables
// ---------------------------------------------------------------------------

func TestRun_Tables(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "caption header and data rows",
			input: "{| class=\"wikitable\"\n|+ Scores\n! Name !! Score\n|-\n| Alice || 10\n|-\n| Bob\n| 7\n|}",
			want: "<table class=\"wikitable\">\n<caption>Scores</caption>\n" +
				"<tr><th>Name</th><th>Score</th></tr>\n" +
				"<tr><td>Alice</td><td>10</td></tr>\n" +
				"<tr><td>Bob</td><td>7</td></tr>\n" +
				"</table>",
		},
		{
			name:  "header and data cells in one row",
			input: "{|\n! Key\n| value\n|}",
			want:  "<table class=\"wikitable\">\n<tr><th>Key</th><td>value</td></tr>\n</table>",
		},
		{
			name:  "leading separator and empty rows dropped",
			input: "{|\n|-\n|-\n| a\n|}",
			want:  "<table class=\"wikitable\">\n<tr><td>a</td></tr>\n</table>",
		},
		{
			name:  "data line starting with dash skipped",
			input: "{|\n| a\n| - stray\n|}",
			want:  "<table class=\"wikitable\">\n<tr><td>a</td></tr>\n</table>",
		},
		{
			name:  "cell attributes dropped",
			input: "{|\n| style=\"color:red\" | red\n|}",
			want:  "<table class=\"wikitable\">\n<tr><td>red</td></tr>\n</table>",
		},
		{
			name:  "empty cell kept",
			input: "{|\n| a ||  || c\n|}",
			want:  "<table class=\"wikitable\">\n<tr><td>a</td><td></td><td>c</td></tr>\n</table>",
		},
		{
			name:  "continuation line joins cell",
			input: "{|\n| first\nsecond\n|}",
			want:  "<table class=\"wikitable\">\n<tr><td>first\nsecond</td></tr>\n</table>",
		},
		{
			name:  "inline markup in cells",
			input: "{|\n| '''b''' || [[P]]\n|}",
			want:  "<table class=\"wikitable\">\n<tr><td><strong>b</strong></td><td><a href=\"#\" class=\"wiki-link\" title=\"P\">P</a></td></tr>\n</table>",
		},
		{
			name:  "unterminated table closed at end",
			input: "{|\n| a",
			want:  "<table class=\"wikitable\">\n<tr><td>a</td></tr>\n</table>",
		},
		{
			name:  "empty table",
			input: "{|\n|}",
			want:  "<table class=\"wikitable\">\n</table>",
		},
		{
			name:  "text around table",
			input: "before\n{|\n| x\n|}\nafter",
			want:  "<p>before</p>\n<table class=\"wikitable\">\n<tr><td>x</td></tr>\n</table>\n<p>after</p>",
		},
	}

	p := New(Options{})
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			runGolden(t, p, tt.input, tt.want)
		})
	}
}

// ---------------------------------------------------------------------------
// TestRun_Paragraphs
// ---------------------------------------------------------------------------

func TestRun_Paragraphs(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"single line", "hello world", "<p>hello world</p>"},
		{"lines joined", "line one\nline two", "<p>line one\nline two</p>"},
		{"blank line splits", "a\n\nb", "<p>a</p>\n<p>b</p>"},
		{"blank run splits once", "a\n\n\n\nb", "<p>a</p>\n<p>b</p>"},
		{"surrounding whitespace trimmed", "  text  \n", "<p>text</p>"},
		{"raw block html unwrapped", "<blockquote>quote</blockquote>", "<blockquote>quote</blockquote>"},
		{"raw table html unwrapped", "<TABLE><tr><td>x</td></tr></TABLE>", "<TABLE><tr><td>x</td></tr></TABLE>"},
		{"inline html wrapped", "<span>x</span>", "<p><span>x</span></p>"},
		{"crlf normalized", "a\r\n\r\nb", "<p>a</p>\n<p>b</p>"},
		{"byte order mark stripped", "\uFEFFtext", "<p>text</p>"},
	}

	p := New(Options{})
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			runGolden(t, p, tt.input, tt.want)
		})
	}
}

// ---------------------------------------------------------------------------
// TestRun_Supplements - rules, nowiki, pre and code blocks
// ---------------------------------------------------------------------------

func TestRun_Supplements(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"rule", "a\n----\nb", "<p>a</p>\n<hr />\n<p>b</p>"},
		{"long rule", "-----", "<hr />"},
		{"three dashes are text", "---", "<p>---</p>"},
		{"nowiki escaped and not parsed", "<nowiki>''x'' <b></nowiki>", "<p>&#39;&#39;x&#39;&#39; &lt;b&gt;</p>"},
		{"nowiki keeps link syntax", "a <nowiki>[[P]]</nowiki> b", "<p>a [[P]] b</p>"},
		{"pre escaped", "<pre>\n<b>x</b>\n</pre>", "<pre>&lt;b&gt;x&lt;/b&gt;</pre>"},
		{"pre keeps wiki syntax", "<pre>\n== not a header ==\n* not a list\n</pre>", "<pre>== not a header ==\n* not a list</pre>"},
		{"pre on one line", "<pre>x</pre>", "<pre>x</pre>"},
		{"text after pre close", "<pre>x</pre> tail", "<pre>x</pre>\n<p>tail</p>"},
		{"unclosed pre left raw", "<pre>\nx", "<pre>\nx"},
		{"code block without highlighter", "<syntaxhighlight lang=\"go\">\nif a < b {}\n</syntaxhighlight>", "<pre>if a &lt; b {}</pre>"},
		{"source tag", "<source lang=\"python\">\nprint(1)\n</source>", "<pre>print(1)</pre>"},
	}

	p := New(Options{})
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			runGolden(t, p, tt.input, tt.want)
		})
	}
}

func TestRun_HighlightedCode(t *testing.T) {
	t.Parallel()

	h, err := NewChromaHighlighter("github")
	if err != nil {
		t.Fatalf("NewChromaHighlighter() error = %v", err)
	}
	p := New(Options{Highlighter: h})

	out := p.Run("<syntaxhighlight lang=\"go\">\nfunc main() {}\n</syntaxhighlight>")
	if out.Degraded {
		t.Fatalf("Run() degraded: %v", out.Reason)
	}
	for _, want := range []string{`class="chroma"`, "func", "main"} {
		if !strings.Contains(out.HTML, want) {
			t.Errorf("highlighted output missing %q:\n%s", want, out.HTML)
		}
	}
	if strings.Contains(out.HTML, "<syntaxhighlight") {
		t.Errorf("source tag leaked into output:\n%s", out.HTML)
	}
}

func TestRun_MixedDocument(t *testing.T) {
	t.Parallel()

	input := strings.Join([]string{
		"= Guide =",
		"Intro with '''bold''' text.",
		"",
		"* one",
		"* two",
		"",
		"[[File:map.png|thumb|The map]]",
		"",
		"{|",
		"! A",
		"|}",
	}, "\n")
	want := strings.Join([]string{
		"<h1>Guide</h1>",
		"<p>Intro with <strong>bold</strong> text.</p>",
		"<ul class=\"wiki-list\">\n<li>one</li>\n<li>two</li>\n</ul>",
		`<figure class="wiki-image wiki-thumb"><img src="/images/map.png" alt="The map" loading="lazy" /><figcaption>The map</figcaption></figure>`,
		"<table class=\"wikitable\">\n<tr><th>A</th></tr>\n</table>",
	}, "\n")

	runGolden(t, New(Options{}), input, want)
}
