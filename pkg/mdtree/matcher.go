package mdtree

import (
	"regexp"
	"strings"
)

// Capture is the result of a successful match. Element 0 is the full matched
// prefix; the remaining elements are sub-captures, with "" for those that did
// not participate in the match.
type Capture []string

// Len returns the number of bytes consumed by the match.
func (c Capture) Len() int { return len(c[0]) }

// Group returns sub-capture i, or "" if there is no such sub-capture.
func (c Capture) Group(i int) string {
	if i < len(c) {
		return c[i]
	}
	return ""
}

// Matcher wraps the Match method.
type Matcher interface {
	// Match tries to match a prefix of source. It returns nil if there is no
	// match. An accepted match must consume at least one byte.
	Match(source string, state State) Capture
}

// MatcherFunc adapts a function to a Matcher.
type MatcherFunc func(source string, state State) Capture

// Match calls f.
func (f MatcherFunc) Match(source string, state State) Capture { return f(source, state) }

type regexpMatcher struct{ re *regexp.Regexp }

func (m regexpMatcher) Match(source string, _ State) Capture {
	return m.re.FindStringSubmatch(source)
}

// Regexp returns a Matcher backed by a regular expression. The pattern must be
// anchored with a leading "^", since matchers never scan ahead.
func Regexp(pattern string) (Matcher, error) {
	if !strings.HasPrefix(pattern, "^") {
		return nil, &MalformedPatternError{
			Pattern: pattern, Reason: `pattern must start with "^"`}
	}
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, &MalformedPatternError{
			Pattern: pattern, Reason: "cannot compile", Err: err}
	}
	return regexpMatcher{re}, nil
}

// MustRegexp is like Regexp, but panics on error. It is intended for package
// level variables holding constant patterns.
func MustRegexp(pattern string) Matcher {
	m, err := Regexp(pattern)
	if err != nil {
		panic(err)
	}
	return m
}

// Block wraps m so that it only matches in block scope, i.e. when the state
// does not have InlineKey set.
func Block(m Matcher) Matcher {
	return MatcherFunc(func(source string, state State) Capture {
		if state.Flag(InlineKey) {
			return nil
		}
		return m.Match(source, state)
	})
}

// Inline wraps m so that it only matches in inline scope.
func Inline(m Matcher) Matcher {
	return MatcherFunc(func(source string, state State) Capture {
		if !state.Flag(InlineKey) {
			return nil
		}
		return m.Match(source, state)
	})
}

// AnyScope returns m. It exists so that rule tables can state the scope of
// every rule explicitly.
func AnyScope(m Matcher) Matcher { return m }
