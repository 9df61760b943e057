package mdrules

import (
	"fmt"
	"sort"
	"strings"

	"github.com/mdtree/mdtree/pkg/mdtree"
)

// TraceOutput returns an output engine that renders any node as an indented
// outline, one node per line followed by its scalar attributes. Nested nodes
// are indented by two spaces; list items get a line of their own.
func TraceOutput() *mdtree.Output[string] {
	return mdtree.NewOutput(func(*mdtree.Node) (mdtree.Renderer[string], bool) {
		return renderTrace, true
	})
}

// RenderTrace renders nodes with TraceOutput.
func RenderTrace(ns []*mdtree.Node) (string, error) {
	return joinNodes(TraceOutput(), ns)
}

func renderTrace(n *mdtree.Node, out *mdtree.Output[string]) (string, error) {
	var sb strings.Builder
	sb.WriteString(n.Type)
	var nested []string
	for _, k := range n.Keys() {
		switch v := n.Attrs[k].(type) {
		case []*mdtree.Node:
			s, err := joinNodes(out, v)
			if err != nil {
				return "", err
			}
			nested = append(nested, s)
		case [][]*mdtree.Node:
			for i, item := range v {
				s, err := joinNodes(out, item)
				if err != nil {
					return "", err
				}
				nested = append(nested, fmt.Sprintf("item %d\n%s", i, indent(s)))
			}
		case string:
			fmt.Fprintf(&sb, " %s=%q", k, v)
		case map[string]any:
			fmt.Fprintf(&sb, " %s=%s", k, traceMap(v))
		default:
			fmt.Fprintf(&sb, " %s=%v", k, v)
		}
	}
	sb.WriteByte('\n')
	for _, s := range nested {
		sb.WriteString(indent(s))
	}
	return sb.String(), nil
}

// Formats a map with sorted keys.
func traceMap(m map[string]any) string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	var sb strings.Builder
	sb.WriteByte('{')
	for i, k := range keys {
		if i > 0 {
			sb.WriteByte(' ')
		}
		fmt.Fprintf(&sb, "%s:%v", k, m[k])
	}
	sb.WriteByte('}')
	return sb.String()
}

// Indents every non-empty line of s by two spaces.
func indent(s string) string {
	lines := strings.SplitAfter(s, "\n")
	for i, line := range lines {
		if line != "" && line != "\n" {
			lines[i] = "  " + line
		}
	}
	return strings.Join(lines, "")
}
