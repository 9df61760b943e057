package mdrules

import (
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"github.com/mdtree/mdtree/pkg/mdtree"
)

const bulletPattern = `(?:[*+-]|\d+\.)`

var (
	listStart      = regexp.MustCompile(`^( *)(` + bulletPattern + `) [^\n]`)
	bulletSpace    = regexp.MustCompile(`^` + bulletPattern + ` `)
	itemPrefix     = regexp.MustCompile(`^( *)(` + bulletPattern + `) +`)
	listBlockEnd   = regexp.MustCompile(`\n[ \n]*$`)
	itemEnd        = regexp.MustCompile(` *\n+$`)
	trailingSpaces = regexp.MustCompile(`\n *$`)
)

// Matches a list. Capture groups are the indentation and the first bullet.
//
// A list may only start at the beginning of a line, and only in block scope or
// inside another list item. It extends to the first run of two or more
// newlines that is not followed by an indented line or a sibling item, or to
// the point after which only whitespace remains.
func matchList(source string, state mdtree.State) mdtree.Capture {
	if state.Flag(mdtree.InlineKey) && !state.Flag(listKey) {
		return nil
	}
	if prev := state.PrevCapture(); prev != "" && !trailingSpaces.MatchString(prev) {
		return nil
	}
	start := listStart.FindStringSubmatch(source)
	if start == nil {
		return nil
	}
	indent := start[1]
	// Only whitespace follows contentEnd.
	contentEnd := len(strings.TrimRightFunc(source, unicode.IsSpace))
	// The content of the first line starts at len(start[0])-1 and is at least
	// one byte long.
	for i := len(start[0]); i <= len(source); i++ {
		if i >= contentEnd {
			return mdtree.Capture{source, indent, start[2]}
		}
		if source[i] != '\n' || i+1 >= len(source) || source[i+1] != '\n' {
			continue
		}
		n := 2
		for i+n < len(source) && source[i+n] == '\n' {
			n++
		}
		rest := source[i+n:]
		if n >= 3 || !(strings.HasPrefix(rest, " ") || isSiblingItem(rest, indent)) {
			return mdtree.Capture{source[:i+n], indent, start[2]}
		}
	}
	return nil
}

// Reports whether line starts a list item at the given indentation.
func isSiblingItem(line, indent string) bool {
	return strings.HasPrefix(line, indent) && bulletSpace.MatchString(line[len(indent):])
}

func buildList(c mdtree.Capture, parse mdtree.ParseFunc, state mdtree.State) (mdtree.Attrs, error) {
	bullet := c[2]
	ordered := len(bullet) > 1
	block := listBlockEnd.ReplaceAllString(c[0], "\n")
	rawItems := splitItems(block)

	loose := false
	if n := len(rawItems); n >= 2 {
		loose = endsWithBlankLine(itemContent(rawItems[n-2]))
	} else if n == 1 {
		loose = endsWithBlankLine(itemContent(rawItems[0]))
	}

	defer state.Set(listKey, true)()
	items := make([][]*mdtree.Node, len(rawItems))
	for i, raw := range rawItems {
		content := itemContent(raw)
		var (
			nodes []*mdtree.Node
			err   error
		)
		if loose || strings.Contains(content, "\n\n") {
			nodes, err = parseBlock(parse, itemEnd.ReplaceAllString(content, "\n\n"), state)
		} else {
			nodes, err = parseInline(parse, itemEnd.ReplaceAllString(content, ""), state)
		}
		if err != nil {
			return nil, err
		}
		items[i] = nodes
	}

	attrs := mdtree.Attrs{"ordered": ordered, "items": items}
	if ordered {
		start, _ := strconv.Atoi(strings.TrimSuffix(bullet, "."))
		attrs["start"] = start
	}
	return attrs, nil
}

// Splits a list block into items. An item starts with a bullet line and
// extends over all following lines that are not a bullet line at the same
// indentation as its own.
func splitItems(block string) []string {
	var items []string
	var current strings.Builder
	indent := ""
	for _, line := range strings.SplitAfter(block, "\n") {
		if line == "" {
			continue
		}
		if current.Len() == 0 {
			indent = itemPrefix.FindStringSubmatch(line)[1]
		} else if isSiblingItem(line, indent) {
			items = append(items, current.String())
			current.Reset()
		}
		current.WriteString(line)
	}
	if current.Len() > 0 {
		items = append(items, current.String())
	}
	return items
}

// Returns the content of an item: every line loses up to as many leading
// spaces as the width of the bullet prefix, and the bullet prefix itself is
// removed.
func itemContent(item string) string {
	prefix := itemPrefix.FindString(item)
	lines := strings.SplitAfter(item, "\n")
	for i, line := range lines {
		n := 0
		for n < len(prefix) && n < len(line) && line[n] == ' ' {
			n++
		}
		lines[i] = line[n:]
	}
	return itemPrefix.ReplaceAllLiteralString(strings.Join(lines, ""), "")
}

func endsWithBlankLine(s string) bool { return strings.HasSuffix(s, "\n\n") }
