package pipeline

import (
	"regexp"
	"strings"
)

// cellAttrPattern matches a leading attribute list ending in a single '|',
// as in `style="color:red" | text`.
var cellAttrPattern = regexp.MustCompile(`^\s*(?:[\w-]+\s*=\s*(?:"[^"]*"|'[^']*'|[^\s|"']+)\s*)+\|`)

// tableBuilder accumulates rows and the cell that continuation lines extend.
type tableBuilder struct {
	table *Table
	raw   []rawCell
	// last indexes the raw cell that continuation lines extend, or -1.
	last int
}

type rawCell struct {
	header bool
	text   string
}

// parseTable consumes a {| ... |} block starting at lines[start] and returns
// the table and the index of the first line after it. A table that is never
// closed runs to the end of input.
//
// Lines inside the block:
//   - "|+" caption
//   - "|-" row separator
//   - "!" header cells, split on "!!" or "||"
//   - "|" data cells, split on "||"; lines whose content starts with '-' are skipped
//   - anything else continues the previous cell
//
// The opening line's attributes are ignored. Nested tables are not supported.
func (p *blockParser) parseTable(lines []string, start int) (*Table, int, error) {
	b := &tableBuilder{table: &Table{}, last: -1}

	i := start + 1
	for ; i < len(lines); i++ {
		trimmed := strings.TrimSpace(lines[i])
		switch {
		case strings.HasPrefix(trimmed, "|}"):
			if err := b.endRow(p); err != nil {
				return nil, i, err
			}
			return b.table, i + 1, nil
		case strings.HasPrefix(trimmed, "|+"):
			caption, err := p.inline.parse(strings.TrimSpace(stripCellAttrs(trimmed[2:])), 0)
			if err != nil {
				return nil, i, err
			}
			b.table.Caption = caption
			b.last = -1
		case strings.HasPrefix(trimmed, "|-"):
			if err := b.endRow(p); err != nil {
				return nil, i, err
			}
		case strings.HasPrefix(trimmed, "!"):
			for _, cell := range splitCells(trimmed[1:], "!!", "||") {
				b.addCell(true, cell)
			}
		case strings.HasPrefix(trimmed, "|"):
			rest := strings.TrimSpace(trimmed[1:])
			if strings.HasPrefix(rest, "-") {
				b.last = -1
				continue
			}
			for _, cell := range splitCells(rest, "||") {
				b.addCell(false, cell)
			}
		case b.last >= 0:
			b.raw[b.last].text += "\n" + lines[i]
		}
	}

	if err := b.endRow(p); err != nil {
		return nil, i, err
	}
	return b.table, i, nil
}

func (b *tableBuilder) addCell(header bool, text string) {
	b.raw = append(b.raw, rawCell{header: header, text: stripCellAttrs(text)})
	b.last = len(b.raw) - 1
}

// endRow converts the pending cells into a row. Rows without cells are dropped.
func (b *tableBuilder) endRow(p *blockParser) error {
	b.last = -1
	if len(b.raw) == 0 {
		return nil
	}
	row := &TableRow{}
	for _, c := range b.raw {
		content, err := p.inline.parse(strings.TrimSpace(c.text), 0)
		if err != nil {
			return err
		}
		row.Cells = append(row.Cells, &TableCell{Header: c.header, Content: content})
	}
	b.raw = nil
	b.table.Rows = append(b.table.Rows, row)
	return nil
}

// splitCells splits a cell line on any of the given separators.
func splitCells(line string, seps ...string) []string {
	cells := []string{line}
	for _, sep := range seps {
		var next []string
		for _, c := range cells {
			next = append(next, strings.Split(c, sep)...)
		}
		cells = next
	}
	return cells
}

// stripCellAttrs drops a leading `attr="value" |` prefix from cell text.
func stripCellAttrs(text string) string {
	if loc := cellAttrPattern.FindStringIndex(text); loc != nil {
		if !strings.HasPrefix(text[loc[1]:], "|") {
			return text[loc[1]:]
		}
	}
	return text
}
