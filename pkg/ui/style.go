package ui

import "strings"

// Style specifies how a piece of text is displayed in the terminal.
type Style struct {
	Foreground    Color
	Background    Color
	Bold          bool
	Dim           bool
	Italic        bool
	Underlined    bool
	Inverse       bool
	Strikethrough bool
}

// A boolean attribute of Style.
type attr struct {
	name  string
	sgr   string
	field func(*Style) *bool
}

// Boolean attributes in the order their SGR parameters are emitted.
var attrs = []attr{
	{"bold", "1", func(s *Style) *bool { return &s.Bold }},
	{"dim", "2", func(s *Style) *bool { return &s.Dim }},
	{"italic", "3", func(s *Style) *bool { return &s.Italic }},
	{"underlined", "4", func(s *Style) *bool { return &s.Underlined }},
	{"inverse", "7", func(s *Style) *bool { return &s.Inverse }},
	{"strikethrough", "9", func(s *Style) *bool { return &s.Strikethrough }},
}

func attrByName(name string) (attr, bool) {
	for _, a := range attrs {
		if a.name == name {
			return a, true
		}
	}
	return attr{}, false
}

// SGR returns the parameters of the SGR sequence for the style, separated by
// semicolons. It returns "" for the default style.
func (s Style) SGR() string {
	var params []string
	for _, a := range attrs {
		if *a.field(&s) {
			params = append(params, a.sgr)
		}
	}
	if s.Foreground != nil {
		params = append(params, s.Foreground.fgSGR())
	}
	if s.Background != nil {
		params = append(params, s.Background.bgSGR())
	}
	return strings.Join(params, ";")
}
