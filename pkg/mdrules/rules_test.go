package mdrules_test

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	. "github.com/mdtree/mdtree/pkg/mdrules"
	"github.com/mdtree/mdtree/pkg/mdtree"
	"github.com/mdtree/mdtree/pkg/must"
	"github.com/mdtree/mdtree/pkg/testutil"
	"github.com/mdtree/mdtree/pkg/tt"
)

var dedent = testutil.Dedent

func trace(src string) (string, error) {
	nodes, err := Parse(src)
	if err != nil {
		return "", err
	}
	return RenderTrace(nodes)
}

var traceTests = tt.Table{
	// Headings
	tt.Args("# Hello *world*").Rets(dedent(`
		heading level=1
		  text text="Hello "
		  em
		    text text="world"
		`), nil),
	tt.Args("## Trailing ##").Rets(dedent(`
		heading level=2
		  text text="Trailing"
		`), nil),
	tt.Args("Title\n=====").Rets(dedent(`
		heading level=1
		  text text="Title"
		`), nil),
	tt.Args("Title\n---").Rets(dedent(`
		heading level=2
		  text text="Title"
		`), nil),
	// Thematic breaks and paragraphs
	tt.Args("a\n\n---\n\nb").Rets(dedent(`
		paragraph
		  text text="a"
		hr
		paragraph
		  text text="b"
		`), nil),
	// Code
	tt.Args("    x := 1\n    y").Rets(
		"codeBlock lang=\"\" text=\"x := 1\\ny\"\n", nil),
	tt.Args("```go\nfmt.Println()\n```").Rets(
		"fence lang=\"go\" text=\"fmt.Println()\"\n", nil),
	tt.Args("~~~\n```\n~~~").Rets(
		"fence lang=\"\" text=\"```\"\n", nil),
	// Block quotes
	tt.Args("> a\n> b").Rets(dedent(`
		blockQuote
		  paragraph
		    text text="a\nb"
		`), nil),
	// Inline markup
	tt.Args("**b** __u__ _e_ ~~d~~ `c`").Rets(dedent(`
		paragraph
		  strong
		    text text="b"
		  text text=" "
		  u
		    text text="u"
		  text text=" "
		  em
		    text text="e"
		  text text=" "
		  del
		    text text="d"
		  text text=" "
		  inlineCode text="c"
		`), nil),
	tt.Args("*a**b**c*").Rets(dedent(`
		paragraph
		  em
		    text text="a"
		    strong
		      text text="b"
		    text text="c"
		`), nil),
	// A space before the closing * prevents emphasis.
	tt.Args("*a *").Rets(dedent(`
		paragraph
		  text text="*a "
		  text text="*"
		`), nil),
	tt.Args("`` a`b ``").Rets(dedent(`
		paragraph
		  inlineCode text="a`+"`"+`b"
		`), nil),
	tt.Args(`\*not em\*`).Rets(dedent(`
		paragraph
		  text text="*"
		  text text="not em"
		  text text="*"
		`), nil),
	tt.Args("a  \nb").Rets(dedent(`
		paragraph
		  text text="a"
		  br
		  text text="b"
		`), nil),
	// Links and images
	tt.Args(`[a *b*](/x "T")`).Rets(dedent(`
		paragraph
		  link target="/x" title="T"
		    text text="a "
		    em
		      text text="b"
		`), nil),
	tt.Args("<http://e.com>").Rets(dedent(`
		paragraph
		  link target="http://e.com" title=""
		    text text="http://e.com"
		`), nil),
	tt.Args("<me@x.org>").Rets(dedent(`
		paragraph
		  link target="mailto:me@x.org" title=""
		    text text="me@x.org"
		`), nil),
	tt.Args("see https://g.co/p.").Rets(dedent(`
		paragraph
		  text text="see "
		  link target="https://g.co/p" title=""
		    text text="https://g.co/p"
		  text text="."
		`), nil),
	tt.Args("![alt](/i.png)").Rets(dedent(`
		paragraph
		  image alt="alt" target="/i.png" title=""
		`), nil),
	// Front matter
	tt.Args("---\ntitle: Hi\n---\n# T").Rets(dedent(`
		frontMatter meta={title:Hi}
		heading level=1
		  text text="T"
		`), nil),
}

func TestParse_Trace(t *testing.T) {
	tt.Test(t, tt.Fn("trace", trace), traceTests)
}

func TestParse_FrontMatterOnlyAtStart(t *testing.T) {
	nodes := must.OK1(Parse("# A\n\n---\nk: v\n---\n"))
	mdtree.Walk(nodes, func(n *mdtree.Node) bool {
		if n.Type == "frontMatter" {
			t.Errorf("got front matter not at the start of the document")
		}
		return true
	})
}

func TestMeta(t *testing.T) {
	state := mdtree.State{}
	must.OK1(newParser(t, Default()).ParseBlock("---\ntitle: Hi\ntags: [a, b]\n---\n", state))
	want := map[string]any{"title": "Hi", "tags": []any{"a", "b"}}
	if diff := cmp.Diff(want, Meta(state)); diff != "" {
		t.Errorf("Meta (-want +got):\n%s", diff)
	}
	if Meta(mdtree.State{}) != nil {
		t.Errorf("Meta of fresh state is not nil")
	}
}

func TestParse_MalformedFrontMatterIsNotFrontMatter(t *testing.T) {
	nodes := must.OK1(Parse("---\n: [\n---\n"))
	if nodes[0].Type == "frontMatter" {
		t.Errorf("got front matter from invalid YAML")
	}
}

func TestParse_LinksDoNotNest(t *testing.T) {
	nodes := must.OK1(Parse("[<http://a.b> [c](/d)](/x)"))
	link := nodes[0].Content()[0]
	if link.Type != "link" || link.Text("target") != "/x" {
		t.Fatalf("got %v, want link to /x", link)
	}
	mdtree.Walk(link.Content(), func(n *mdtree.Node) bool {
		if n.Type != "text" {
			t.Errorf("got %s node inside link", n.Type)
		}
		return true
	})
}

func TestDefault(t *testing.T) {
	g := Default()
	if len(g.Rules) != len(g.Priority) {
		t.Errorf("%d rules, but %d priority entries", len(g.Rules), len(g.Priority))
	}
	for _, name := range g.Priority {
		if g.Rules[name] == nil {
			t.Errorf("rule %q in priority but not in table", name)
		}
	}
	// The catch-all must come last; otherwise it shadows every rule after it.
	if last := g.Priority[len(g.Priority)-1]; last != "text" {
		t.Errorf("last rule is %q, want text", last)
	}
	// Modifying the result must not affect later calls.
	delete(g.Rules, "text")
	if Default().Rules["text"] == nil {
		t.Errorf("Default returned shared table")
	}
}

func TestPriority_HrBeforeList(t *testing.T) {
	g := Default()
	if index(g.Priority, "hr") > index(g.Priority, "list") {
		t.Fatalf("hr does not precede list")
	}
	nodes := must.OK1(Parse("* * *"))
	if nodes[0].Type != "hr" {
		t.Errorf("got %s, want hr", nodes[0].Type)
	}

	// Swapping the two makes the list rule win.
	var swapped mdtree.Priority
	for _, name := range g.Priority {
		switch name {
		case "hr":
			swapped = append(swapped, "list")
		case "list":
			swapped = append(swapped, "hr")
		default:
			swapped = append(swapped, name)
		}
	}
	p := must.OK1(NewParser(Grammar{g.Rules, swapped}))
	nodes = must.OK1(p.ParseBlock("* * *", nil))
	if nodes[0].Type != "list" {
		t.Errorf("got %s with list first, want list", nodes[0].Type)
	}
}

func index(p mdtree.Priority, name string) int {
	for i, n := range p {
		if n == name {
			return i
		}
	}
	return -1
}

func TestWithout(t *testing.T) {
	g := Default().Without("em", "nonexistent")
	if g.Rules["em"] != nil || index(g.Priority, "em") != -1 {
		t.Fatalf("em still present")
	}
	if len(g.Rules) != len(Default().Rules)-1 {
		t.Errorf("got %d rules, want %d", len(g.Rules), len(Default().Rules)-1)
	}
	nodes := must.OK1(newParser(t, g).ParseInline("*a*", nil))
	for _, n := range nodes {
		if n.Type != "text" {
			t.Errorf("got %s node without em rule", n.Type)
		}
	}
}

func TestWithout_CatchAll(t *testing.T) {
	p := newParser(t, Default().Without("text"))
	_, err := p.ParseBlock("???", nil)
	var noMatch *mdtree.NoRuleMatchedError
	if !errors.As(err, &noMatch) {
		t.Fatalf("got error %v, want *NoRuleMatchedError", err)
	}
	if noMatch.Remainder != "???" {
		t.Errorf("got remainder %q, want %q", noMatch.Remainder, "???")
	}
}

func TestNewParser_PropagatesConstructionErrors(t *testing.T) {
	g := Default()
	g.Priority = append(g.Priority, "nonexistent")
	_, err := NewParser(g)
	var malformed *mdtree.MalformedPatternError
	if !errors.As(err, &malformed) || malformed.Rule != "nonexistent" {
		t.Errorf("got error %v, want *MalformedPatternError", err)
	}
}

func TestParse_FreshStateEachTime(t *testing.T) {
	state := mdtree.State{}
	p := newParser(t, Default())
	must.OK1(p.ParseBlock("[a]: /u", state))

	nodes := must.OK1(p.ParseInline("[x][a]", state))
	if !nodes[0].Bool("defined") || nodes[0].Text("target") != "/u" {
		t.Errorf("reference not resolved with shared state: %v", nodes[0].Attrs)
	}
	nodes = must.OK1(Parse("[x][a]"))
	if ref := nodes[0].Content()[0]; ref.Bool("defined") {
		t.Errorf("reference resolved with fresh state: %v", ref.Attrs)
	}
}

func TestParse_NormalizesWhitespace(t *testing.T) {
	crlf := must.OK1(trace("a\r\nb\r\n\r\n\tc"))
	lf := must.OK1(trace("a\nb\n\n    c"))
	if diff := cmp.Diff(lf, crlf); diff != "" {
		t.Errorf("(-lf +crlf):\n%s", diff)
	}
}

func TestPlainText(t *testing.T) {
	nodes := must.OK1(Parse("# A *b* `c` ![d](/e)"))
	if got := PlainText(nodes); got != "A b c d" {
		t.Errorf("PlainText -> %q, want %q", got, "A b c d")
	}
}

func newParser(t testing.TB, g Grammar) *Parser {
	t.Helper()
	p, err := NewParser(g)
	if err != nil {
		t.Fatal(err)
	}
	return p
}
