package diag

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/mattn/go-runewidth"
)

// Context names a range of a source document, such as the text no rule could
// match.
type Context struct {
	Name   string
	Source string
	Ranging
}

// NewContext creates a new Context.
func NewContext(name, source string, r Ranger) *Context {
	return &Context{name, source, r.Range()}
}

// Markers around the culprit when showing a Context. An empty culprit is shown
// as culpritPlaceHolder.
var (
	culpritStart       = "\033[1;4m"
	culpritEnd         = "\033[m"
	culpritPlaceHolder = "^"
)

// The lines a Context covers, cut into the part before the culprit, the
// culprit and the part after it.
type excerpt struct {
	line, col int
	before    string
	culprit   []string
	after     string
}

func (c *Context) excerpt() excerpt {
	lineStart := strings.LastIndexByte(c.Source[:c.From], '\n') + 1
	culprit := strings.TrimSuffix(c.Source[c.From:c.To], "\n")
	var after string
	if len(culprit) == c.To-c.From {
		after, _, _ = strings.Cut(c.Source[c.To:], "\n")
	}
	if culprit == "" {
		culprit = culpritPlaceHolder
	}
	return excerpt{
		line:    strings.Count(c.Source[:lineStart], "\n") + 1,
		col:     utf8.RuneCountInString(c.Source[lineStart:c.From]) + 1,
		before:  c.Source[lineStart:c.From],
		culprit: strings.Split(culprit, "\n"),
		after:   after,
	}
}

// Show shows the position of the context on one line, and the source it
// covers on the following lines, each prefixed by indent.
func (c *Context) Show(indent string) string {
	if err := c.checkPosition(); err != nil {
		return err.Error()
	}
	e := c.excerpt()
	return c.position(e) + ":\n" + indent + e.format(indent)
}

// ShowCompact is like Show, but puts the source on the same line as the
// position. Continuation lines are aligned with the first line of source.
func (c *Context) ShowCompact(indent string) string {
	if err := c.checkPosition(); err != nil {
		return err.Error()
	}
	e := c.excerpt()
	pos := c.position(e) + ": "
	return pos + e.format(indent+strings.Repeat(" ", runewidth.StringWidth(pos)))
}

func (c *Context) checkPosition() error {
	switch {
	case c.From == -1:
		return fmt.Errorf("%s, unknown position", c.Name)
	case c.From < 0 || c.To > len(c.Source) || c.From > c.To:
		return fmt.Errorf("%s, invalid position %d-%d", c.Name, c.From, c.To)
	}
	return nil
}

func (c *Context) describeStart() string { return c.position(c.excerpt()) }

func (c *Context) position(e excerpt) string {
	return fmt.Sprintf("%s:%d:%d", c.Name, e.line, e.col)
}

func (e excerpt) format(indent string) string {
	var sb strings.Builder
	sb.WriteString(e.before)
	for i, line := range e.culprit {
		if i > 0 {
			sb.WriteString("\n" + indent)
		}
		sb.WriteString(culpritStart + line + culpritEnd)
	}
	sb.WriteString(e.after)
	return sb.String()
}
