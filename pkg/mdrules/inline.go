package mdrules

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/mdtree/mdtree/pkg/mdtree"
)

const (
	// Text inside the brackets of a link: nested bracket pairs are allowed.
	linkInside = `((?:\[[^\]]*\]|[^\[\]])*)`
	// The parenthesized part of an inline link: a destination, optionally in
	// angle brackets, and an optional quoted title.
	linkHrefAndTitle = `\(\s*<?((?:\([^)]*\)|[^\s\\]|\\.)*?)>?(?:\s+['"]([\s\S]*?)['"])?\s*\)`
)

var inlineRules = []namedRule{
	{"escape", mdtree.Inline(mdtree.MustRegexp(`^\\([^0-9A-Za-z\s])`)), buildEscape},
	{"autolink", mdtree.Inline(outsideLink(mdtree.MustRegexp(`^<([^: >]+:/[^ >]+)>`))), buildAutolink},
	{"mailto", mdtree.Inline(outsideLink(mdtree.MustRegexp(`^<([^ >]+@[^ >]+)>`))), buildMailto},
	{"url", mdtree.Inline(outsideLink(mdtree.MustRegexp(`^(https?://[^\s<]+[^<.,:;"')\]\s])`))), buildAutolink},
	{"link", mdtree.Inline(outsideLink(mdtree.MustRegexp(`^\[` + linkInside + `\]` + linkHrefAndTitle))), buildLink},
	{"image", mdtree.Inline(mdtree.MustRegexp(`^!\[` + linkInside + `\]` + linkHrefAndTitle)), buildImage},
	{"reflink", mdtree.Inline(outsideLink(mdtree.MustRegexp(`^\[` + linkInside + `\]\s*\[([^\]]*)\]`))), buildRef(false)},
	{"refimage", mdtree.Inline(mdtree.MustRegexp(`^!\[` + linkInside + `\]\s*\[([^\]]*)\]`)), buildRef(true)},
	{"strong", mdtree.Inline(doubled('*')), inlineContent(1)},
	{"u", mdtree.Inline(doubled('_')), inlineContent(1)},
	{"em", mdtree.Inline(mdtree.MatcherFunc(matchEm)), inlineContent(1)},
	{"del", mdtree.Inline(mdtree.MatcherFunc(matchDel)), inlineContent(1)},
	{"inlineCode", mdtree.Inline(mdtree.MatcherFunc(matchInlineCode)), buildInlineCode},
	{"br", mdtree.Inline(mdtree.MustRegexp(`^ {2,}\n`)), noAttrs},
}

var anyScopeRules = []namedRule{
	{"text", mdtree.AnyScope(mdtree.MatcherFunc(matchText)), buildText},
}

// Wraps m so that it does not match inside the content of a link.
func outsideLink(m mdtree.Matcher) mdtree.Matcher {
	return mdtree.MatcherFunc(func(source string, state mdtree.State) mdtree.Capture {
		if state.Flag(linkKey) {
			return nil
		}
		return m.Match(source, state)
	})
}

func buildEscape(c mdtree.Capture, _ mdtree.ParseFunc, _ mdtree.State) (mdtree.Attrs, error) {
	return mdtree.Attrs{mdtree.TypeAttr: "text", "text": c[1]}, nil
}

func textNode(s string) *mdtree.Node {
	return &mdtree.Node{Type: "text", Attrs: mdtree.Attrs{"text": s}}
}

func buildAutolink(c mdtree.Capture, _ mdtree.ParseFunc, _ mdtree.State) (mdtree.Attrs, error) {
	return mdtree.Attrs{
		mdtree.TypeAttr:    "link",
		"target":           c[1],
		"title":            "",
		mdtree.ContentAttr: []*mdtree.Node{textNode(c[1])},
	}, nil
}

func buildMailto(c mdtree.Capture, _ mdtree.ParseFunc, _ mdtree.State) (mdtree.Attrs, error) {
	address, target := c[1], c[1]
	if strings.HasPrefix(strings.ToLower(address), "mailto:") {
		address = address[len("mailto:"):]
	} else {
		target = "mailto:" + address
	}
	return mdtree.Attrs{
		mdtree.TypeAttr:    "link",
		"target":           target,
		"title":            "",
		mdtree.ContentAttr: []*mdtree.Node{textNode(address)},
	}, nil
}

var urlEscape = regexp.MustCompile(`\\([^0-9A-Za-z\s])`)

func unescapeURL(s string) string { return urlEscape.ReplaceAllString(s, "$1") }

func buildLink(c mdtree.Capture, parse mdtree.ParseFunc, state mdtree.State) (mdtree.Attrs, error) {
	defer state.Set(linkKey, true)()
	content, err := parseInline(parse, c[1], state)
	if err != nil {
		return nil, err
	}
	return mdtree.Attrs{
		"target":           unescapeURL(c[2]),
		"title":            c[3],
		mdtree.ContentAttr: content,
	}, nil
}

func buildImage(c mdtree.Capture, _ mdtree.ParseFunc, _ mdtree.State) (mdtree.Attrs, error) {
	return mdtree.Attrs{"alt": c[1], "target": unescapeURL(c[2]), "title": c[3]}, nil
}

func buildInlineCode(c mdtree.Capture, _ mdtree.ParseFunc, _ mdtree.State) (mdtree.Attrs, error) {
	return mdtree.Attrs{"text": c[1]}, nil
}

func buildText(c mdtree.Capture, _ mdtree.ParseFunc, _ mdtree.State) (mdtree.Attrs, error) {
	return mdtree.Attrs{"text": c[0]}, nil
}

// Returns a matcher for content between doubled delimiters, like **strong**.
// The content is at least one character, may contain backslash escapes, and
// ends at the first doubled delimiter not followed by a third one.
func doubled(delim byte) mdtree.Matcher {
	open := string([]byte{delim, delim})
	return mdtree.MatcherFunc(func(source string, _ mdtree.State) mdtree.Capture {
		if !strings.HasPrefix(source, open) {
			return nil
		}
		i := 2
		for i < len(source) {
			if i > 2 && strings.HasPrefix(source[i:], open) &&
				(i+2 == len(source) || source[i+2] != delim) {
				return mdtree.Capture{source[:i+2], source[2:i]}
			}
			if source[i] == '\\' {
				if i+1 == len(source) {
					return nil
				}
				i += 2
			} else {
				i++
			}
		}
		return nil
	})
}

// Matches emphasis with either * or _.
func matchEm(source string, _ mdtree.State) mdtree.Capture {
	if len(source) < 3 {
		return nil
	}
	switch source[0] {
	case '*':
		return matchStarEm(source)
	case '_':
		return matchUnderscoreEm(source)
	}
	return nil
}

// *emphasis* must start with a non-space character. Inside, ** pairs and
// escapes do not close it, and neither does a * preceded by a space.
func matchStarEm(source string) mdtree.Capture {
	if isSpace(source[1]) {
		return nil
	}
	i := 1
	for i < len(source) {
		if i > 1 && source[i] == '*' && (i+1 == len(source) || source[i+1] != '*') {
			return mdtree.Capture{source[:i+1], source[1:i]}
		}
		switch {
		case strings.HasPrefix(source[i:], "**"):
			i += 2
		case source[i] == '\\':
			if i+1 == len(source) {
				return nil
			}
			i += 2
		case isSpace(source[i]):
			if i+1 < len(source) && source[i+1] == '*' {
				return nil
			}
			i++
		case source[i] == '*':
			return nil
		default:
			i++
		}
	}
	return nil
}

// _emphasis_ ends with a _ that is not followed by a word character.
func matchUnderscoreEm(source string) mdtree.Capture {
	i := 1
	for i < len(source) {
		if i > 1 && source[i] == '_' && (i+1 == len(source) || !isWordByte(source[i+1])) {
			return mdtree.Capture{source[:i+1], source[1:i]}
		}
		switch {
		case strings.HasPrefix(source[i:], "__"):
			i += 2
		case source[i] == '\\':
			if i+1 == len(source) {
				return nil
			}
			i += 2
		case source[i] == '_':
			return nil
		default:
			i++
		}
	}
	return nil
}

// ~~strikethrough~~ must start with a non-space character. Inside, a single ~
// is allowed, but a space directly before the closing ~~ is not.
func matchDel(source string, _ mdtree.State) mdtree.Capture {
	if !strings.HasPrefix(source, "~~") || len(source) < 3 || isSpace(source[2]) {
		return nil
	}
	i := 2
	for i < len(source) {
		if i > 2 && strings.HasPrefix(source[i:], "~~") {
			return mdtree.Capture{source[:i+2], source[2:i]}
		}
		switch {
		case source[i] == '\\':
			if i+1 == len(source) {
				return nil
			}
			i += 2
		case source[i] == '~':
			// A single ~, since ~~ would have closed.
			i++
		case isSpace(source[i]):
			if strings.HasPrefix(source[i+1:], "~~") {
				return nil
			}
			i++
		default:
			i++
		}
	}
	return nil
}

// Matches a code span: a run of backticks, then content, then a run of
// backticks of the same length. The capture group is the content, with one
// space of padding removed from each side.
func matchInlineCode(source string, _ mdtree.State) mdtree.Capture {
	n := backtickRun(source)
	if n == 0 {
		return nil
	}
	for i := n; i < len(source); {
		if source[i] != '`' {
			i++
			continue
		}
		m := backtickRun(source[i:])
		if m == n && i > n {
			code := source[n:i]
			if len(code) > 2 && code[0] == ' ' && code[len(code)-1] == ' ' &&
				strings.Trim(code, " ") != "" {
				code = code[1 : len(code)-1]
			}
			return mdtree.Capture{source[:i+m], code}
		}
		i += m
	}
	return nil
}

func backtickRun(s string) int {
	n := 0
	for n < len(s) && s[n] == '`' {
		n++
	}
	return n
}

var wordColon = regexp.MustCompile(`^\w+:\S`)

// Matches plain text: at least one character, and then up to the first
// character that might start another inline rule, a blank line, or a hard
// line break.
func matchText(source string, _ mdtree.State) mdtree.Capture {
	if source == "" {
		return nil
	}
	_, first := utf8.DecodeRuneInString(source)
	for i := first; i < len(source); {
		if source[i] == ' ' {
			// Skip the whole run of spaces, unless it is a hard break.
			j := i + 1
			for j < len(source) && source[j] == ' ' {
				j++
			}
			if j-i >= 2 && j < len(source) && source[j] == '\n' {
				return mdtree.Capture{source[:i]}
			}
			i = j
			continue
		}
		r, size := utf8.DecodeRuneInString(source[i:])
		if isSymbol(r) || strings.HasPrefix(source[i:], "\n\n") {
			return mdtree.Capture{source[:i]}
		}
		if (i == first || !isWordByte(source[i-1])) && wordColon.MatchString(source[i:]) {
			return mdtree.Capture{source[:i]}
		}
		i += size
	}
	return mdtree.Capture{source}
}

// Reports whether r may start markup: a character below U+00C0 that is not an
// ASCII letter or digit, or a space.
func isSymbol(r rune) bool {
	return r < 0xC0 && !(r < utf8.RuneSelf && isWordByte(byte(r)) && r != '_') && !unicode.IsSpace(r)
}

func isSpace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\n' || b == '\r' || b == '\f' || b == '\v'
}

func isWordByte(b byte) bool {
	return b == '_' || '0' <= b && b <= '9' || 'a' <= b && b <= 'z' || 'A' <= b && b <= 'Z'
}
