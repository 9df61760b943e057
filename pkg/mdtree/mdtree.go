// Package mdtree implements a generic rule-driven parser that turns text into a
// tree of nodes, and a generic output engine that walks such a tree.
//
// A parser is built from a table of rules and a priority order. At each
// position of the input, the rules are tried in priority order, and the first
// one whose matcher accepts a prefix of the remaining input wins; there is no
// longest-match scoring and no backtracking across rules. The winning rule's
// builder turns the match into the attributes of a node, and may parse parts of
// the match recursively with the same state.
//
// The output side is independent of any particular target representation:
// each node type has a renderer, and the output engine only does the dispatch.
//
// The concrete Markdown rules live in [github.com/mdtree/mdtree/pkg/mdrules].
package mdtree

import "sort"

// Attrs holds the type-specific attributes of a Node.
type Attrs map[string]any

// Well-known attribute keys.
const (
	// TypeAttr may be set by a builder to override the type of the node it
	// builds. The engine removes it from the attributes.
	TypeAttr = "type"
	// ContentAttr holds nested nodes, as a []*Node.
	ContentAttr = "content"
)

// Node is a unit of the parsed tree. Its Type is the name of the rule that
// built it, unless the builder overrode it.
type Node struct {
	Type  string
	Attrs Attrs
}

// Content returns the nested nodes of n, or nil if it has none.
func (n *Node) Content() []*Node {
	c, _ := n.Attrs[ContentAttr].([]*Node)
	return c
}

// Text returns the string attribute with the given key, or "".
func (n *Node) Text(key string) string {
	s, _ := n.Attrs[key].(string)
	return s
}

// Int returns the int attribute with the given key, or 0.
func (n *Node) Int(key string) int {
	i, _ := n.Attrs[key].(int)
	return i
}

// Bool returns the bool attribute with the given key, or false.
func (n *Node) Bool(key string) bool {
	b, _ := n.Attrs[key].(bool)
	return b
}

// Keys returns the attribute keys of n in sorted order.
func (n *Node) Keys() []string {
	keys := make([]string, 0, len(n.Attrs))
	for k := range n.Attrs {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Walk calls f on each node in ns and its content, depth first. Nodes inside
// attributes of type [][]*Node (such as list items) are visited too. Walking
// stops early if f returns false.
func Walk(ns []*Node, f func(*Node) bool) bool {
	for _, n := range ns {
		if !f(n) {
			return false
		}
		for _, k := range n.Keys() {
			switch v := n.Attrs[k].(type) {
			case []*Node:
				if !Walk(v, f) {
					return false
				}
			case [][]*Node:
				for _, item := range v {
					if !Walk(item, f) {
						return false
					}
				}
			}
		}
	}
	return true
}

// State is threaded through one top-level parse and all the nested parses it
// triggers. Rules use it to communicate across positions and nesting levels.
//
// A State must not be shared by concurrent parses.
type State map[string]any

// Well-known state keys.
const (
	// InlineKey is true when the parser is in inline scope. See [Block] and
	// [Inline].
	InlineKey = "inline"
	// PrevCaptureKey holds the full text of the latest successful match. It is
	// written by the engine: reset to "" when a parse (nested or not) starts,
	// and set after each match is built.
	PrevCaptureKey = "prevCapture"
)

// Set sets key to v and returns a function that restores the previous value.
//
// It is intended to be used by builders that change the state for a nested
// parse:
//
//	defer state.Set(InlineKey, true)()
func (s State) Set(key string, v any) func() {
	old, had := s[key]
	s[key] = v
	return func() {
		if had {
			s[key] = old
		} else {
			delete(s, key)
		}
	}
}

// Flag returns the bool value of key, or false if it is not set.
func (s State) Flag(key string) bool {
	b, _ := s[key].(bool)
	return b
}

// PrevCapture returns the full text of the latest successful match within the
// current parse, or "" at the start of a parse.
func (s State) PrevCapture() string {
	c, _ := s[PrevCaptureKey].(string)
	return c
}
