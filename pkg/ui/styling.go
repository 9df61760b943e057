package ui

import (
	"fmt"
	"strings"
)

// Styling specifies how to change a Style. It can also be applied to a Segment
// or Text.
type Styling interface{ transform(*Style) }

// StyleText returns a new Text with the given Styling's applied. It does not
// modify the given Text.
func StyleText(t Text, ts ...Styling) Text {
	newt := make(Text, len(t))
	for i, seg := range t {
		newt[i] = StyleSegment(seg, ts...)
	}
	return newt
}

// StyleSegment returns a new Segment with the given Styling's applied. It does
// not modify the given Segment.
func StyleSegment(seg *Segment, ts ...Styling) *Segment {
	return &Segment{Text: seg.Text, Style: ApplyStyling(seg.Style, ts...)}
}

// ApplyStyling returns a new Style with the given Styling's applied. Nil
// Styling's are skipped.
func ApplyStyling(s Style, ts ...Styling) Style {
	for _, t := range ts {
		if t != nil {
			t.transform(&s)
		}
	}
	return s
}

// Stylings joins several Styling's into one.
func Stylings(ts ...Styling) Styling { return jointStyling(ts) }

// Fg returns a Styling that sets the foreground color.
func Fg(c Color) Styling { return setForeground{c} }

// Bg returns a Styling that sets the background color.
func Bg(c Color) Styling { return setBackground{c} }

// Stylings used by the default terminal styles.
var (
	FgDefault Styling = setForeground{nil}
	BgDefault Styling = setBackground{nil}

	FgRed         Styling = setForeground{Red}
	FgGreen       Styling = setForeground{Green}
	FgBlue        Styling = setForeground{Blue}
	FgMagenta     Styling = setForeground{Magenta}
	FgCyan        Styling = setForeground{Cyan}
	FgBrightBlack Styling = setForeground{BrightBlack}

	Bold          = setAttr(0, true)
	Dim           = setAttr(1, true)
	Italic        = setAttr(2, true)
	Underlined    = setAttr(3, true)
	Inverse       = setAttr(4, true)
	Strikethrough = setAttr(5, true)
)

func setAttr(i int, v bool) Styling { return attrValue{attrs[i], v} }

type setForeground struct{ c Color }
type setBackground struct{ c Color }

type attrValue struct {
	a attr
	v bool
}

type attrToggle struct{ a attr }

type jointStyling []Styling

func (t setForeground) transform(s *Style) { s.Foreground = t.c }
func (t setBackground) transform(s *Style) { s.Background = t.c }
func (t attrValue) transform(s *Style)     { *t.a.field(s) = t.v }
func (t attrToggle) transform(s *Style)    { p := t.a.field(s); *p = !*p }

func (t jointStyling) transform(s *Style) {
	for _, t := range t {
		t.transform(s)
	}
}

// ParseStyling parses a space-separated list of words, each naming a Styling:
//
//   - An attribute: bold, dim, italic, underlined, inverse, strikethrough.
//     Prefixing it with "no-" turns it off, and with "toggle-" flips it.
//
//   - A color, optionally prefixed with "fg-" or "bg-": a name like "red" or
//     "bright-blue", "colorN" for the xterm 256-color palette, or "#rrggbb".
//     The color "default" resets to the terminal's color.
//
// For example, "bold fg-blue" makes text bold and blue.
func ParseStyling(s string) (Styling, error) {
	words := strings.Fields(s)
	if len(words) == 0 {
		return nil, fmt.Errorf("empty styling")
	}
	var joint jointStyling
	for _, word := range words {
		parsed := parseOneStyling(word)
		if parsed == nil {
			return nil, fmt.Errorf("unknown styling %q", word)
		}
		joint = append(joint, parsed)
	}
	if len(joint) == 1 {
		return joint[0], nil
	}
	return joint, nil
}

func parseOneStyling(name string) Styling {
	if a, ok := attrByName(name); ok {
		return attrValue{a, true}
	}
	if rest, ok := strings.CutPrefix(name, "no-"); ok {
		if a, ok := attrByName(rest); ok {
			return attrValue{a, false}
		}
		return nil
	}
	if rest, ok := strings.CutPrefix(name, "toggle-"); ok {
		if a, ok := attrByName(rest); ok {
			return attrToggle{a}
		}
		return nil
	}
	if rest, ok := strings.CutPrefix(name, "bg-"); ok {
		if c, ok := parseColorOrDefault(rest); ok {
			return setBackground{c}
		}
		return nil
	}
	name = strings.TrimPrefix(name, "fg-")
	if c, ok := parseColorOrDefault(name); ok {
		return setForeground{c}
	}
	return nil
}

func parseColorOrDefault(name string) (Color, bool) {
	if name == "default" {
		return nil, true
	}
	c := parseColor(name)
	return c, c != nil
}
