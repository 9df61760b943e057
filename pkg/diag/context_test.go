package diag

import (
	"strings"
	"testing"
)

// Returns a Context for src covering the first occurrence of culprit.
func contextOf(src, culprit string) *Context {
	i := strings.Index(src, culprit)
	return NewContext("[doc]", src, Ranging{i, i + len(culprit)})
}

func TestContext_Show(t *testing.T) {
	setCulpritMarkers(t, "<", ">")
	for _, test := range []struct {
		name    string
		ctx     *Context
		indent  string
		show    string
		compact string
	}{
		{
			name:    "culprit within a line",
			ctx:     contextOf("# Title **bad", "**"),
			indent:  "  ",
			show:    "[doc]:1:9:\n  # Title <**>bad",
			compact: "[doc]:1:9: # Title <**>bad",
		},
		{
			name:   "culprit spanning lines",
			ctx:    contextOf("> a [b\nc] d\ne", "[b\nc]"),
			indent: "  ",
			show: lines(
				"[doc]:1:5:",
				"  > a <[b>",
				"  <c]> d"),
			compact: lines(
				"[doc]:1:5: > a <[b>",
				"             <c]> d"),
		},
		{
			name:    "columns count runes",
			ctx:     contextOf("intro\n* é ?", "?"),
			show:    "[doc]:2:5:\n* é <?>",
			compact: "[doc]:2:5: * é <?>",
		},
		{
			name:    "trailing newline dropped from culprit",
			ctx:     contextOf("para\n\nnext", "para\n"),
			show:    "[doc]:1:1:\n<para>",
			compact: "[doc]:1:1: <para>",
		},
		{
			name:    "empty culprit",
			ctx:     NewContext("[doc]", "ab", PointRanging(1)),
			show:    "[doc]:1:2:\na<^>b",
			compact: "[doc]:1:2: a<^>b",
		},
		{
			name:    "unknown position",
			ctx:     NewContext("[doc]", "ab", Ranging{-1, -1}),
			show:    "[doc], unknown position",
			compact: "[doc], unknown position",
		},
		{
			name:    "invalid position",
			ctx:     NewContext("[doc]", "ab", Ranging{1, 5}),
			show:    "[doc], invalid position 1-5",
			compact: "[doc], invalid position 1-5",
		},
	} {
		t.Run(test.name, func(t *testing.T) {
			if got := test.ctx.Show(test.indent); got != test.show {
				t.Errorf("Show() -> %q, want %q", got, test.show)
			}
			if got := test.ctx.ShowCompact(test.indent); got != test.compact {
				t.Errorf("ShowCompact() -> %q, want %q", got, test.compact)
			}
		})
	}
}
