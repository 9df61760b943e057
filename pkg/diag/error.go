package diag

import (
	"errors"
	"fmt"
	"unicode"
	"unicode/utf8"

	"github.com/mdtree/mdtree/pkg/mdtree"
)

// Error represents an error with context that can be shown.
type Error struct {
	Type    string
	Message string
	Context Context
}

// Variables controlling the style of the message.
var (
	messageStart = "\033[31;1m"
	messageEnd   = "\033[m"
)

// Error returns a plain text representation of the error.
func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s: %s", e.Type, e.Context.describePosition(), e.Message)
}

// Range returns the range of the error.
func (e *Error) Range() Ranging {
	return e.Context.Range()
}

// Show shows the error.
func (e *Error) Show(indent string) string {
	header := fmt.Sprintf("%s: %s%s%s\n", capitalize(e.Type), messageStart, e.Message, messageEnd)
	return header + indent + "  " + e.Context.ShowCompact(indent+"  ")
}

// Upper-cases the first rune of s.
func capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if size == 0 {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}

func (c *Context) describePosition() string {
	if c.checkPosition() != nil {
		return c.Name
	}
	return c.describeStart()
}

// ParseError converts a *mdtree.NoRuleMatchedError from parsing src into an
// *Error whose culprit is the first character that no rule matched. The src
// must be the text after normalization. Other errors are returned unchanged.
func ParseError(name, src string, err error) error {
	var noMatch *mdtree.NoRuleMatchedError
	if !errors.As(err, &noMatch) {
		return err
	}
	r := Ranging{-1, -1}
	// The remainder of a block parse includes the terminating blank line.
	if from := noMatch.Offset(src + "\n\n"); from >= 0 {
		from = min(from, len(src))
		_, size := utf8.DecodeRuneInString(src[from:])
		r = Ranging{from, from + size}
	}
	return &Error{
		Type:    "parse error",
		Message: "no rule matched",
		Context: *NewContext(name, src, r),
	}
}
