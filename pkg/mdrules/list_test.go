package mdrules_test

import (
	"strings"
	"testing"

	. "github.com/mdtree/mdtree/pkg/mdrules"
	"github.com/mdtree/mdtree/pkg/mdtree"
	"github.com/mdtree/mdtree/pkg/must"
	"github.com/mdtree/mdtree/pkg/tt"
)

var listTests = tt.Table{
	tt.Args("* a\n* b").Rets(dedent(`
		list ordered=false
		  item 0
		    text text="a"
		  item 1
		    text text="b"
		`), nil),
	// A blank line between items makes every item a block.
	tt.Args("* a\n\n* b").Rets(dedent(`
		list ordered=false
		  item 0
		    paragraph
		      text text="a"
		  item 1
		    paragraph
		      text text="b"
		`), nil),
	// The blank lines ending the list do not make it loose.
	tt.Args("* a\n\n* b\n\n").Rets(dedent(`
		list ordered=false
		  item 0
		    paragraph
		      text text="a"
		  item 1
		    paragraph
		      text text="b"
		`), nil),
	// Only the second-to-last item decides.
	tt.Args("* a\n* b\n\n* c\n").Rets(dedent(`
		list ordered=false
		  item 0
		    paragraph
		      text text="a"
		  item 1
		    paragraph
		      text text="b"
		  item 2
		    paragraph
		      text text="c"
		`), nil),
	tt.Args("1. x\n2. y").Rets(dedent(`
		list ordered=true start=1
		  item 0
		    text text="x"
		  item 1
		    text text="y"
		`), nil),
	tt.Args("3. x").Rets(dedent(`
		list ordered=true start=3
		  item 0
		    text text="x"
		`), nil),
	// Continuation lines lose the indentation of the bullet.
	tt.Args("  * nested\n    child line\n").Rets(dedent(`
		list ordered=false
		  item 0
		    text text="nested\nchild line"
		`), nil),
	tt.Args("* a\n      deep").Rets(dedent(`
		list ordered=false
		  item 0
		    text text="a\n    deep"
		`), nil),
	tt.Args("* a\n  * nested\n    child line").Rets(dedent(`
		list ordered=false
		  item 0
		    text text="a\n"
		    list ordered=false
		      item 0
		        text text="nested\nchild line"
		`), nil),
	// An item with an internal blank line is parsed as blocks, even if the
	// list is tight.
	tt.Args("* a\n\n  b\n* c").Rets(dedent(`
		list ordered=false
		  item 0
		    paragraph
		      text text="a"
		    paragraph
		      text text="b"
		  item 1
		    text text="c"
		`), nil),
	// A list ends before a blank line followed by an unindented line.
	tt.Args("* a\n\nb").Rets(dedent(`
		list ordered=false
		  item 0
		    text text="a"
		paragraph
		  text text="b"
		`), nil),
}

func TestList(t *testing.T) {
	tt.Test(t, tt.Fn("trace", trace), listTests)
}

func TestList_NotInsideParagraph(t *testing.T) {
	nodes := must.OK1(Parse("a\n* b"))
	if len(nodes) != 1 || nodes[0].Type != "paragraph" {
		t.Fatalf("got %d nodes starting with %s, want one paragraph", len(nodes), nodes[0].Type)
	}
	for _, n := range nodes[0].Content() {
		if n.Type == "list" {
			t.Errorf("got list inside paragraph")
		}
	}
}

func TestList_LongWhitespaceRun(t *testing.T) {
	src := "* a" + strings.Repeat(" ", 100000) + "b"
	nodes := must.OK1(Parse(src))
	if len(nodes) != 1 || nodes[0].Type != "list" {
		t.Fatalf("got %d nodes, want one list", len(nodes))
	}
	found := false
	mdtree.Walk(nodes, func(n *mdtree.Node) bool {
		found = found || strings.HasSuffix(n.Text("text"), "b")
		return true
	})
	if !found {
		t.Errorf("text after the whitespace run is missing")
	}
}

func BenchmarkList_WhitespaceRun(b *testing.B) {
	src := "* a" + strings.Repeat(" ", 10000) + "b"
	for i := 0; i < b.N; i++ {
		must.OK1(Parse(src))
	}
}
