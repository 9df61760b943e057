package mdrules

import (
	"regexp"

	"gopkg.in/yaml.v3"

	"github.com/mdtree/mdtree/pkg/mdtree"
)

var frontMatterPattern = regexp.MustCompile(`^---[ \t]*\n((?:[^\n]*\n)*?)---[ \t]*\n(?:[ \t]*\n)*`)

// Matches YAML front matter delimited by "---" lines. It must be at the very
// start of the document and parse as a YAML mapping; otherwise the "---" lines
// are left to the other rules.
func matchFrontMatter(source string, state mdtree.State) mdtree.Capture {
	doc, _ := state[documentKey].(string)
	if len(source) != len(doc) {
		return nil
	}
	c := frontMatterPattern.FindStringSubmatch(source)
	if c == nil {
		return nil
	}
	var meta map[string]any
	if err := yaml.Unmarshal([]byte(c[1]), &meta); err != nil {
		return nil
	}
	return c
}

func buildFrontMatter(c mdtree.Capture, _ mdtree.ParseFunc, state mdtree.State) (mdtree.Attrs, error) {
	var meta map[string]any
	if err := yaml.Unmarshal([]byte(c[1]), &meta); err != nil {
		return nil, err
	}
	if meta == nil {
		meta = map[string]any{}
	}
	state[metaKey] = meta
	return mdtree.Attrs{"meta": meta}, nil
}

// Meta returns the front matter recorded in state, or nil if the document had
// none.
func Meta(state mdtree.State) map[string]any {
	meta, _ := state[metaKey].(map[string]any)
	return meta
}
