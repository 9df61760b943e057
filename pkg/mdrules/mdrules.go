// Package mdrules contains the built-in Markdown rules for the mdtree engine,
// and renderers for the trees they produce.
//
// The dialect is a small one: ATX and setext headings, thematic breaks,
// indented and fenced code blocks, block quotes, lists, reference
// definitions, paragraphs and YAML front matter on the block level; escapes,
// links (inline, reference and bare), images, strong and underline (both
// doubled delimiters), emphasis, strikethrough, code spans and hard line
// breaks on the inline level. It makes no attempt at CommonMark compliance.
package mdrules

import (
	"strings"

	"github.com/mdtree/mdtree/pkg/mdtree"
	"github.com/mdtree/mdtree/pkg/must"
)

// State keys used by the rules, besides mdtree.InlineKey.
const (
	// Set inside list items, so that nested lists can match in inline scope.
	listKey = "list"
	// A map[string]Definition keyed by normalized label.
	refsKey = "refs"
	// Set while parsing the content of a link.
	linkKey = "inLink"
	// The front matter, as a map[string]any.
	metaKey = "meta"
	// The whole source of the current top-level block parse.
	documentKey = "document"
)

// Grammar is a rule table together with its priority order.
type Grammar struct {
	Rules    mdtree.Rules
	Priority mdtree.Priority
}

// Default returns the built-in grammar. Each call returns a new value, which
// the caller may modify.
func Default() Grammar {
	g := Grammar{Rules: mdtree.Rules{}}
	add := func(rules []namedRule) {
		for _, r := range rules {
			g.Rules[r.name] = &mdtree.Rule{Match: r.match, Build: r.build}
			g.Priority = append(g.Priority, r.name)
		}
	}
	add(blockRules)
	add(inlineRules)
	add(anyScopeRules)
	return g
}

// Without returns a copy of g with the named rules removed. Unknown names are
// ignored.
func (g Grammar) Without(names ...string) Grammar {
	drop := make(map[string]bool, len(names))
	for _, name := range names {
		drop[name] = true
	}
	h := Grammar{Rules: make(mdtree.Rules, len(g.Rules))}
	for name, rule := range g.Rules {
		if !drop[name] {
			h.Rules[name] = rule
		}
	}
	for _, name := range g.Priority {
		if !drop[name] {
			h.Priority = append(h.Priority, name)
		}
	}
	return h
}

type namedRule struct {
	name  string
	match mdtree.Matcher
	build mdtree.Builder
}

// Parser parses Markdown with a grammar.
type Parser struct {
	parse mdtree.ParseFunc
}

// NewParser builds a Parser from a grammar. It fails with the same errors as
// mdtree.NewParser.
func NewParser(g Grammar) (*Parser, error) {
	parse, err := mdtree.NewParser(g.Rules, g.Priority)
	if err != nil {
		return nil, err
	}
	return &Parser{parse}, nil
}

var defaultParser = must.OK1(NewParser(Default()))

// Parse parses a document with the default grammar and a fresh state.
func Parse(src string) ([]*mdtree.Node, error) {
	return defaultParser.ParseBlock(src, nil)
}

var normalizeSpace = strings.NewReplacer("\r\n", "\n", "\r", "\n", "\f", "", "\t", "    ").Replace

// Normalize returns src with line endings and tabs normalized the way
// ParseBlock and ParseInline do it. Offsets of parse failures refer to the
// normalized text.
func Normalize(src string) string { return normalizeSpace(src) }

// ParseBlock parses src as a sequence of blocks. It normalizes line endings
// and tabs, and appends a blank line so that the last block is terminated.
//
// References are resolved once the whole source has been parsed, so a
// definition may follow its uses.
func (p *Parser) ParseBlock(src string, state mdtree.State) ([]*mdtree.Node, error) {
	if state == nil {
		state = mdtree.State{}
	}
	src = normalizeSpace(src) + "\n\n"
	defer state.Set(documentKey, src)()
	nodes, err := parseBlock(p.parse, src, state)
	if err != nil {
		return nil, err
	}
	resolveRefs(nodes, state)
	return nodes, nil
}

// ParseInline parses src as inline content, such as the text of a single
// paragraph.
func (p *Parser) ParseInline(src string, state mdtree.State) ([]*mdtree.Node, error) {
	if state == nil {
		state = mdtree.State{}
	}
	nodes, err := parseInline(p.parse, normalizeSpace(src), state)
	if err != nil {
		return nil, err
	}
	resolveRefs(nodes, state)
	return nodes, nil
}

func parseInline(parse mdtree.ParseFunc, src string, state mdtree.State) ([]*mdtree.Node, error) {
	defer state.Set(mdtree.InlineKey, true)()
	return parse(src, state)
}

func parseBlock(parse mdtree.ParseFunc, src string, state mdtree.State) ([]*mdtree.Node, error) {
	defer state.Set(mdtree.InlineKey, false)()
	return parse(src, state)
}

// Returns a builder that parses sub-capture i as inline content.
func inlineContent(i int) mdtree.Builder {
	return func(c mdtree.Capture, parse mdtree.ParseFunc, state mdtree.State) (mdtree.Attrs, error) {
		content, err := parseInline(parse, c[i], state)
		if err != nil {
			return nil, err
		}
		return mdtree.Attrs{mdtree.ContentAttr: content}, nil
	}
}

func noAttrs(mdtree.Capture, mdtree.ParseFunc, mdtree.State) (mdtree.Attrs, error) {
	return nil, nil
}

// PlainText returns the concatenated text of the text-like nodes in ns,
// dropping all markup.
func PlainText(ns []*mdtree.Node) string {
	var sb strings.Builder
	mdtree.Walk(ns, func(n *mdtree.Node) bool {
		switch n.Type {
		case "text", "inlineCode":
			sb.WriteString(n.Text("text"))
		case "image":
			sb.WriteString(n.Text("alt"))
		case "br":
			sb.WriteByte('\n')
		}
		return true
	})
	return sb.String()
}
