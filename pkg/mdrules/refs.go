package mdrules

import (
	"strings"

	"golang.org/x/text/cases"

	"github.com/mdtree/mdtree/pkg/mdtree"
)

// Definition is the destination of a reference definition.
type Definition struct {
	Target string
	Title  string
}

// NormalizeLabel normalizes a reference label, so that labels differing only
// in case or whitespace refer to the same definition.
func NormalizeLabel(label string) string {
	// A Caser keeps state, so make a new one each time.
	return cases.Fold().String(strings.Join(strings.Fields(label), " "))
}

// Refs returns the reference definitions recorded in state, keyed by
// normalized label. It returns nil if there are none.
func Refs(state mdtree.State) map[string]Definition {
	refs, _ := state[refsKey].(map[string]Definition)
	return refs
}

func buildDef(c mdtree.Capture, _ mdtree.ParseFunc, state mdtree.State) (mdtree.Attrs, error) {
	label := NormalizeLabel(c[1])
	def := Definition{Target: unescapeURL(c[2]), Title: c[3]}
	refs := Refs(state)
	if refs == nil {
		refs = map[string]Definition{}
		state[refsKey] = refs
	}
	// The first definition of a label wins.
	if _, ok := refs[label]; !ok {
		refs[label] = def
	}
	return mdtree.Attrs{"label": label, "target": def.Target, "title": def.Title}, nil
}

// Builds a reference link or image. The target is filled in by resolveRefs,
// since the definition may come later in the document.
func buildRef(isImage bool) mdtree.Builder {
	return func(c mdtree.Capture, parse mdtree.ParseFunc, state mdtree.State) (mdtree.Attrs, error) {
		label := c[2]
		if label == "" {
			label = c[1]
		}
		attrs := mdtree.Attrs{"label": NormalizeLabel(label), "source": c[0]}
		if isImage {
			attrs["alt"] = c[1]
			return attrs, nil
		}
		defer state.Set(linkKey, true)()
		content, err := parseInline(parse, c[1], state)
		if err != nil {
			return nil, err
		}
		attrs[mdtree.ContentAttr] = content
		return attrs, nil
	}
}

// Sets the "target", "title" and "defined" attributes of all the reference
// nodes in ns.
func resolveRefs(ns []*mdtree.Node, state mdtree.State) {
	refs := Refs(state)
	mdtree.Walk(ns, func(n *mdtree.Node) bool {
		if n.Type != "reflink" && n.Type != "refimage" {
			return true
		}
		def, ok := refs[n.Text("label")]
		n.Attrs["defined"] = ok
		if ok {
			n.Attrs["target"] = def.Target
			n.Attrs["title"] = def.Title
		}
		return true
	})
}

// UndefinedRefs returns the labels of the reference nodes in ns that have no
// definition, in order of first use and without duplicates.
func UndefinedRefs(ns []*mdtree.Node) []string {
	var labels []string
	seen := map[string]bool{}
	mdtree.Walk(ns, func(n *mdtree.Node) bool {
		if (n.Type == "reflink" || n.Type == "refimage") && !n.Bool("defined") {
			label := n.Text("label")
			if !seen[label] {
				seen[label] = true
				labels = append(labels, label)
			}
		}
		return true
	})
	return labels
}
