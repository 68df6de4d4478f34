package pipeline

import (
	"fmt"
	"regexp"
	"strings"
)

var (
	bulletItemPattern   = regexp.MustCompile(`^(\*+)\s+(\S.*)$`)
	numberedItemPattern = regexp.MustCompile(`^(#+)\s+(\S.*)$`)
)

// listMode is the state of the list state machine.
type listMode int

const (
	outsideList listMode = iota
	inList
)

// listState is the per-call cursor of the list stage. It lives only for the
// duration of one parseList call.
type listState struct {
	mode  listMode
	kind  ListKind
	depth int
	// open[d-1] is the list currently open at depth d.
	open []*List
}

// matchListItem reports whether line is a list item. Bullets are checked
// before numbered items.
func matchListItem(line string) (kind ListKind, depth int, content string, ok bool) {
	if m := bulletItemPattern.FindStringSubmatch(line); m != nil {
		return Bullet, len(m[1]), strings.TrimSpace(m[2]), true
	}
	if m := numberedItemPattern.FindStringSubmatch(line); m != nil {
		return Numbered, len(m[1]), strings.TrimSpace(m[2]), true
	}
	return Bullet, 0, "", false
}

// parseList consumes consecutive list lines starting at lines[start] and
// returns the root list and the index of the first line after it.
//
// Transitions per line:
//   - outside: open a list at the item's depth.
//   - deeper: open one nested list per level of increase inside the last item.
//   - shallower: close one list per level of decrease, then add the item.
//   - same depth: add the item.
//
// A non-list line or end of input closes every open level. Because lists are
// built as a tree, every opened tag is closed on output.
func (p *blockParser) parseList(lines []string, start int) (*List, int, error) {
	st := listState{mode: outsideList}
	var root *List

	i := start
	for ; i < len(lines); i++ {
		kind, depth, text, ok := matchListItem(lines[i])
		if !ok {
			break
		}
		if depth > p.maxDepth {
			return nil, i, fmt.Errorf("%w: list depth %d on line %d", ErrNestingTooDeep, depth, i+1)
		}

		content, err := p.inline.parse(text, 0)
		if err != nil {
			return nil, i, err
		}

		switch {
		case st.mode == outsideList:
			root = &List{Kind: kind}
			st = listState{mode: inList, kind: kind, depth: 1, open: []*List{root}}
			st.descend(kind, depth)
		case depth > st.depth:
			st.descend(kind, depth)
		case depth < st.depth:
			st.open = st.open[:depth]
			st.depth = depth
			st.kind = st.open[depth-1].Kind
		}

		current := st.open[st.depth-1]
		current.Items = append(current.Items, &ListItem{Content: content})
	}

	st.closeAll()
	return root, i, nil
}

// descend opens nested lists until the state reaches depth.
// Levels without an item of their own get an empty carrier item.
func (st *listState) descend(kind ListKind, depth int) {
	for st.depth < depth {
		parent := st.open[st.depth-1]
		if n := len(parent.Items); n == 0 || parent.Items[n-1].Sublist != nil {
			parent.Items = append(parent.Items, &ListItem{})
		}
		sub := &List{Kind: kind}
		parent.Items[len(parent.Items)-1].Sublist = sub
		st.open = append(st.open, sub)
		st.depth++
	}
	st.kind = kind
}

// closeAll returns the machine to the outside state.
func (st *listState) closeAll() {
	st.open = nil
	st.depth = 0
	st.mode = outsideList
}
