package mdtree_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	. "github.com/mdtree/mdtree/pkg/mdtree"
	"github.com/mdtree/mdtree/pkg/must"
)

// Renders the nodes produced by testParse as a parenthesized string, undoing
// the parse.
var stringOutput = NewOutput(MapLookup(map[string]Renderer[string]{
	"word":  renderText,
	"space": renderText,
	"char":  renderText,
	"group": func(n *Node, out *Output[string]) (string, error) {
		inner, err := out.Nodes(n.Content())
		if err != nil {
			return "", err
		}
		return "(" + strings.Join(inner, "") + ")", nil
	},
}))

func renderText(n *Node, _ *Output[string]) (string, error) { return n.Text("text"), nil }

func TestOutput_RoundTrip(t *testing.T) {
	for _, src := range []string{"", "ab cd", "a (b (c d) e)?", "((("} {
		nodes := must.OK1(testParse(src, nil))
		parts := must.OK1(stringOutput.Nodes(nodes))
		if got := strings.Join(parts, ""); got != src {
			t.Errorf("round trip of %q -> %q", src, got)
		}
	}
}

func TestOutput_ShapeFollowsInput(t *testing.T) {
	nodes := []*Node{text("word", "a"), text("space", " "), text("word", "b")}
	got := must.OK1(stringOutput.Nodes(nodes))
	if diff := cmp.Diff([]string{"a", " ", "b"}, got); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}

	got = must.OK1(stringOutput.Nodes(nil))
	if len(got) != 0 {
		t.Errorf("got %v for no nodes, want empty", got)
	}
}

func TestOutput_UnknownRuleType(t *testing.T) {
	nodes := []*Node{
		text("word", "a"),
		{"group", Attrs{ContentAttr: []*Node{{"mystery", Attrs{}}}}},
	}
	got, err := stringOutput.Nodes(nodes)
	if got != nil {
		t.Errorf("got %v, want nil", got)
	}
	var unknown *UnknownRuleTypeError
	if !errors.As(err, &unknown) || unknown.Type != "mystery" {
		t.Errorf("got error %v, want *UnknownRuleTypeError for mystery", err)
	}
}

func TestOutput_CustomLookup(t *testing.T) {
	// A lookup that renders every node the same way, like a tree dumper.
	out := NewOutput(func(*Node) (Renderer[int], bool) {
		return func(n *Node, out *Output[int]) (int, error) {
			sizes, err := out.Nodes(n.Content())
			total := 1
			for _, size := range sizes {
				total += size
			}
			return total, err
		}, true
	})
	nodes := must.OK1(testParse("a(b(c))", nil))
	if diff := cmp.Diff([]int{1, 4}, must.OK1(out.Nodes(nodes))); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
}

func TestMapLookup_NilRenderer(t *testing.T) {
	lookup := MapLookup(map[string]Renderer[string]{"word": nil})
	if _, ok := lookup(&Node{Type: "word"}); ok {
		t.Errorf("nil renderer was found")
	}
}

func TestWalk(t *testing.T) {
	nodes := []*Node{
		{"list", Attrs{"items": [][]*Node{{text("word", "a")}, {text("word", "b")}}}},
		{"group", Attrs{ContentAttr: []*Node{text("word", "c")}}},
	}
	var types []string
	Walk(nodes, func(n *Node) bool {
		types = append(types, n.Type+":"+n.Text("text"))
		return true
	})
	want := []string{"list:", "word:a", "word:b", "group:", "word:c"}
	if diff := cmp.Diff(want, types); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}

	count := 0
	completed := Walk(nodes, func(n *Node) bool {
		count++
		return n.Type != "word"
	})
	if completed || count != 2 {
		t.Errorf("got (%v, %d) stopping at first word, want (false, 2)", completed, count)
	}
}

func TestStateSet(t *testing.T) {
	s := State{"a": 1}
	restoreA := s.Set("a", 2)
	restoreB := s.Set("b", true)
	if s["a"] != 2 || !s.Flag("b") {
		t.Errorf("got %v after Set", s)
	}
	restoreB()
	restoreA()
	if diff := cmp.Diff(State{"a": 1}, s); diff != "" {
		t.Errorf("after restore (-want +got):\n%s", diff)
	}
}
