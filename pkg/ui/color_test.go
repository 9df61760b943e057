package ui

import (
	"testing"

	"github.com/mdtree/mdtree/pkg/tt"
)

func TestColor_SGR(t *testing.T) {
	tt.Test(t, tt.Fn("SGR", sgr), tt.Table{
		tt.Args(FgRed).Rets("31"),
		tt.Args(Bg(Red)).Rets("41"),
		tt.Args(FgBrightBlack).Rets("90"),
		tt.Args(Bg(BrightBlack)).Rets("100"),
		tt.Args(Fg(XTerm256Color(30))).Rets("38;5;30"),
		tt.Args(Bg(XTerm256Color(30))).Rets("48;5;30"),
		tt.Args(Fg(TrueColor(30, 40, 50))).Rets("38;2;30;40;50"),
		tt.Args(Bg(TrueColor(30, 40, 50))).Rets("48;2;30;40;50"),
	})
}

func TestColor_StringRoundTrip(t *testing.T) {
	for _, c := range []Color{Red, BrightCyan, XTerm256Color(30), TrueColor(0x33, 0x44, 0x55)} {
		if got := parseColor(c.String()); got != c {
			t.Errorf("parseColor(%q) -> %v, want %v", c.String(), got, c)
		}
	}
}

func TestParseColor_Invalid(t *testing.T) {
	tt.Test(t, tt.Fn("parseColor", parseColor), tt.Table{
		tt.Args("mauve").Rets(Color(nil)),
		tt.Args("color256").Rets(Color(nil)),
		tt.Args("#12345").Rets(Color(nil)),
		tt.Args("#gggggg").Rets(Color(nil)),
	})
}
