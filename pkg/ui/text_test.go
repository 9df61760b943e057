package ui

import (
	"testing"

	"github.com/mdtree/mdtree/pkg/tt"
)

var Args = tt.Args

func red(s string) *Segment   { return &Segment{Style{Foreground: Red}, s} }
func blue(s string) *Segment  { return &Segment{Style{Foreground: Blue}, s} }
func plain(s string) *Segment { return &Segment{Text: s} }

func TestT(t *testing.T) {
	tt.Test(t, tt.Fn("T", T), tt.Table{
		Args("quote").Rets(Text{plain("quote")}),
		Args("link", FgRed).Rets(Text{red("link")}),
		Args("heading", FgBlue, Bold).Rets(Text{&Segment{
			Style{Foreground: Blue, Bold: true}, "heading"}}),
	})
}

func TestConcat(t *testing.T) {
	tt.Test(t, tt.Fn("Text.Concat", Text.Concat), tt.Table{
		Args(Text(nil)).Rets(Text{}),
		Args(Text{red("a")}, Text{blue("b")}, Text{}, Text{red("c")}).
			Rets(Text{red("a"), blue("b"), red("c")}),
	})
}

func TestClone(t *testing.T) {
	orig := Text{red("a")}
	clone := orig.Clone()
	clone[0].Text = "b"
	if orig[0].Text != "a" {
		t.Errorf("modifying clone changed original to %q", orig[0].Text)
	}
}

func TestLines(t *testing.T) {
	tt.Test(t, tt.Fn("Text.Lines", Text.Lines), tt.Table{
		Args(Text{}).Rets([]Text(nil)),
		Args(Text{red("• item")}).Rets([]Text{{red("• item")}}),
		Args(Text{red("a"), blue("b")}).Rets([]Text{{red("a"), blue("b")}}),
		Args(Text{red("a\nb"), blue("c\nd")}).Rets([]Text{
			{red("a")},
			{red("b"), blue("c")},
			{blue("d")},
		}),
		Args(Text{red("a\n")}).Rets([]Text{{red("a")}, {red("")}}),
	})
}

func TestPrefixLines(t *testing.T) {
	bar := Text{blue("│ ")}
	nl := plain("\n")
	tt.Test(t, tt.Fn("Text.PrefixLines", Text.PrefixLines), tt.Table{
		Args(Text{}, bar).Rets(Text(nil)),
		Args(Text{red("a")}, bar).Rets(Text{blue("│ "), red("a")}),
		Args(Text{red("a\nb")}, bar).Rets(Text{
			blue("│ "), red("a"), nl, blue("│ "), red("b"),
		}),
		Args(Text{red("a\n")}, bar).Rets(Text{blue("│ "), red("a"), nl}),
	})
}

func TestPlain(t *testing.T) {
	if got := (Text{red("se"), blue("e")}).Plain(); got != "see" {
		t.Errorf("Plain() -> %q, want %q", got, "see")
	}
}

func TestVTString(t *testing.T) {
	for _, test := range []struct {
		text Text
		want string
	}{
		{Text{}, ""},
		{T("x"), "\033[mx"},
		{Text{red("a"), blue("b")}, "\033[;31ma\033[m\033[;34mb\033[m"},
		{T("s", Bold, Strikethrough), "\033[;1;9ms\033[m"},
	} {
		if got := test.text.VTString(); got != test.want {
			t.Errorf("%v.VTString() -> %q, want %q", test.text.Plain(), got, test.want)
		}
		if got := test.text.String(); got != test.want {
			t.Errorf("String() differs from VTString()")
		}
	}
}
