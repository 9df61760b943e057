package ui

import (
	"fmt"
	"strings"
)

// Segment is a run of text with a single Style.
type Segment struct {
	Style
	Text string
}

// VTString renders the segment with VT escape sequences, resetting any SGR
// state in effect before it.
func (s *Segment) VTString() string {
	if sgr := s.SGR(); sgr != "" {
		return fmt.Sprintf("\033[;%sm%s\033[m", sgr, s.Text)
	}
	return "\033[m" + s.Text
}

// Text is a sequence of Segments.
type Text []*Segment

// T returns a Text of a single segment with content s and the Stylings
// applied.
func T(s string, ts ...Styling) Text {
	return Text{&Segment{Style: ApplyStyling(Style{}, ts...), Text: s}}
}

// Concat returns a new Text consisting of t followed by ts.
func (t Text) Concat(ts ...Text) Text {
	n := len(t)
	for _, t2 := range ts {
		n += len(t2)
	}
	newt := make(Text, 0, n)
	newt = append(newt, t...)
	for _, t2 := range ts {
		newt = append(newt, t2...)
	}
	return newt
}

// Clone returns a copy of t whose segments can be modified without affecting
// t.
func (t Text) Clone() Text {
	newt := make(Text, len(t))
	for i, seg := range t {
		copied := *seg
		newt[i] = &copied
	}
	return newt
}

// Lines splits t at newlines, which are dropped. Segments spanning a newline
// are split, keeping their style on both sides. An empty Text has no lines.
func (t Text) Lines() []Text {
	if len(t) == 0 {
		return nil
	}
	lines := []Text{nil}
	for _, seg := range t {
		for i, part := range strings.Split(seg.Text, "\n") {
			if i > 0 {
				lines = append(lines, nil)
			}
			last := &lines[len(lines)-1]
			*last = append(*last, &Segment{seg.Style, part})
		}
	}
	return lines
}

// PrefixLines returns a new Text with prefix inserted at the start of every
// line of t. A trailing newline does not start a new line.
func (t Text) PrefixLines(prefix Text) Text {
	lines := t.Lines()
	trailing := false
	if n := len(lines); n > 1 && lines[n-1].Plain() == "" {
		lines, trailing = lines[:n-1], true
	}
	var newt Text
	for i, line := range lines {
		if i > 0 {
			newt = append(newt, &Segment{Text: "\n"})
		}
		newt = newt.Concat(prefix.Clone(), line)
	}
	if trailing {
		newt = append(newt, &Segment{Text: "\n"})
	}
	return newt
}

// Plain returns the content of t with styles dropped.
func (t Text) Plain() string {
	var sb strings.Builder
	for _, seg := range t {
		sb.WriteString(seg.Text)
	}
	return sb.String()
}

// String returns t.VTString().
func (t Text) String() string { return t.VTString() }

// VTString renders t with VT escape sequences.
func (t Text) VTString() string {
	var sb strings.Builder
	for _, seg := range t {
		sb.WriteString(seg.VTString())
	}
	return sb.String()
}
