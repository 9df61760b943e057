package mdtree

import (
	"fmt"
	"strings"
)

// NoRuleMatchedError is returned by a parse when no rule matches the remaining
// input. With a catch-all rule in the table this cannot happen, so it signals a
// misconfigured rule table or priority order.
type NoRuleMatchedError struct {
	// The input that was left unparsed, in the (possibly nested) parse that
	// failed.
	Remainder string
}

func (e *NoRuleMatchedError) Error() string {
	return fmt.Sprintf("no rule matched at %s", compactQuote(e.Remainder))
}

// Offset returns the byte offset of the failure within src, the text given to
// the top-level parse. It returns -1 if the remainder cannot be located in src,
// which happens when the failing parse was a nested one on transformed text.
func (e *NoRuleMatchedError) Offset(src string) int {
	if strings.HasSuffix(src, e.Remainder) {
		return len(src) - len(e.Remainder)
	}
	return strings.Index(src, e.Remainder)
}

// UnknownRuleTypeError is returned by an output engine when a node's type has
// no renderer.
type UnknownRuleTypeError struct {
	Type string
}

func (e *UnknownRuleTypeError) Error() string {
	return fmt.Sprintf("no renderer for node type %q", e.Type)
}

// MalformedPatternError is returned when a rule cannot be used by the engine.
// It is normally returned when a parser or a matcher is constructed, but also
// from a parse when a matcher breaks its contract by accepting an empty
// prefix.
type MalformedPatternError struct {
	// Name of the offending rule; empty when the error comes from constructing
	// a matcher on its own.
	Rule string
	// The pattern, if the matcher is regexp-based.
	Pattern string
	Reason  string
	Err     error
}

func (e *MalformedPatternError) Error() string {
	var sb strings.Builder
	sb.WriteString("malformed pattern")
	if e.Rule != "" {
		fmt.Fprintf(&sb, " in rule %q", e.Rule)
	}
	if e.Pattern != "" {
		fmt.Fprintf(&sb, " %q", e.Pattern)
	}
	sb.WriteString(": ")
	sb.WriteString(e.Reason)
	if e.Err != nil {
		sb.WriteString(": ")
		sb.WriteString(e.Err.Error())
	}
	return sb.String()
}

func (e *MalformedPatternError) Unwrap() error { return e.Err }

const maxQuoted = 32

// compactQuote quotes s, eliding the middle of long strings.
func compactQuote(s string) string {
	if len(s) > maxQuoted {
		s = s[:maxQuoted-10] + "..." + s[len(s)-7:]
	}
	return fmt.Sprintf("%q", s)
}
