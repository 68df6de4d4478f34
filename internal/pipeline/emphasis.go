package pipeline

import (
	"fmt"
	"slices"
	"strings"
)

// Apostrophe run widths.
const (
	italicRun     = 2
	boldRun       = 3
	boldItalicRun = 5
)

// pairEmphasis resolves apostrophe runs within one line into Emphasis nodes.
//
// A run is paired with the next run of the same width; the span between them
// is paired recursively, so the result is always properly nested. A run of
// five may close a run of two or three: it is split, and the remainder either
// closes an opener inside the span first or is left after the closer. An
// unmatched run of five is split into bold and italic openers, ordered by
// whichever closes first. Any other unmatched run stays literal text.
func pairEmphasis(items []item, depth, maxDepth int) ([]Inline, error) {
	if depth > maxDepth {
		return nil, fmt.Errorf("%w: emphasis depth %d", ErrNestingTooDeep, depth)
	}

	items = slices.Clone(items)
	var out []Inline
	for i := 0; i < len(items); i++ {
		it := items[i]
		if it.run == 0 {
			out = append(out, it.node)
			continue
		}

		width := it.run
		j := findCloser(items, i+1, width)
		if j < 0 {
			if width == boldItalicRun {
				outer, inner := splitOpener(items, i+1)
				items[i] = item{run: outer}
				items = slices.Insert(items, i+1, item{run: inner})
				i--
				continue
			}
			out = append(out, &Text{Value: strings.Repeat("'", width)})
			continue
		}

		if items[j].run != width {
			// A bold-italic run closing a narrower one. If the span holds an
			// opener for the remainder, that opener closes first.
			rest := boldItalicRun - width
			if hasRun(items[i+1:j], rest) {
				items[j] = item{run: rest}
				items = slices.Insert(items, j+1, item{run: width})
				j++
			} else {
				items[j] = item{run: width}
				items = slices.Insert(items, j+1, item{run: rest})
			}
		}

		children, err := pairEmphasis(items[i+1:j], depth+1, maxDepth)
		if err != nil {
			return nil, err
		}
		out = append(out, emphasisFor(width, children))
		i = j
	}
	return mergeText(out), nil
}

// findCloser returns the index of the run that closes a run of width, or -1.
func findCloser(items []item, from, width int) int {
	for k := from; k < len(items); k++ {
		switch {
		case items[k].run == width:
			return k
		case items[k].run == boldItalicRun && width != boldItalicRun:
			return k
		}
	}
	return -1
}

func hasRun(items []item, width int) bool {
	for _, it := range items {
		if it.run == width {
			return true
		}
	}
	return false
}

// splitOpener decides the nesting of an unmatched bold-italic opener.
// The width that closes first is the inner one.
func splitOpener(items []item, from int) (outer, inner int) {
	for k := from; k < len(items); k++ {
		switch items[k].run {
		case boldRun:
			return italicRun, boldRun
		case italicRun:
			return boldRun, italicRun
		}
	}
	return boldRun, italicRun
}

func emphasisFor(width int, children []Inline) *Emphasis {
	switch width {
	case boldItalicRun:
		return &Emphasis{Strong: true, Em: true, Content: children}
	case boldRun:
		return &Emphasis{Strong: true, Content: children}
	default:
		return &Emphasis{Em: true, Content: children}
	}
}
