package mdrules

import (
	"regexp"
	"strings"

	"github.com/mdtree/mdtree/pkg/mdtree"
)

var blockRules = []namedRule{
	{"frontMatter", mdtree.Block(mdtree.MatcherFunc(matchFrontMatter)), buildFrontMatter},
	{"heading", mdtree.Block(mdtree.MustRegexp(`^ *(#{1,6})([^\n]+?)#* *(?:\n *)*\n`)), buildHeading},
	{"lheading", mdtree.Block(mdtree.MustRegexp(`^([^\n]+)\n *(={3,}|-{3,}) *(?:\n *)+\n`)), buildLHeading},
	{"hr", mdtree.Block(mdtree.MustRegexp(`^( *[-*_]){3,} *(?:\n *)+\n`)), noAttrs},
	{"codeBlock", mdtree.Block(mdtree.MustRegexp(`^(?:    [^\n]+\n*)+(?:\n *)+\n`)), buildCodeBlock},
	{"fence", mdtree.Block(mdtree.MatcherFunc(matchFence)), buildFence},
	{"blockQuote", mdtree.Block(mdtree.MustRegexp(`^( *>[^\n]+(\n[^\n]+)*\n*)+\n{2,}`)), buildBlockQuote},
	{"list", mdtree.MatcherFunc(matchList), buildList},
	{"def", mdtree.Block(mdtree.MustRegexp(`^ *\[([^\]]+)\]: *<?([^\s>]*)>?(?: +["(]([^\n]+)[")])? *\n(?: *\n)*`)), buildDef},
	{"newline", mdtree.Block(mdtree.MustRegexp(`^(?:\n *)*\n`)), noAttrs},
	{"paragraph", mdtree.Block(mdtree.MatcherFunc(matchParagraph)), inlineContent(1)},
}

func buildHeading(c mdtree.Capture, parse mdtree.ParseFunc, state mdtree.State) (mdtree.Attrs, error) {
	content, err := parseInline(parse, strings.TrimSpace(c[2]), state)
	if err != nil {
		return nil, err
	}
	return mdtree.Attrs{"level": len(c[1]), mdtree.ContentAttr: content}, nil
}

func buildLHeading(c mdtree.Capture, parse mdtree.ParseFunc, state mdtree.State) (mdtree.Attrs, error) {
	content, err := parseInline(parse, strings.TrimSpace(c[1]), state)
	if err != nil {
		return nil, err
	}
	level := 2
	if c[2][0] == '=' {
		level = 1
	}
	return mdtree.Attrs{
		mdtree.TypeAttr: "heading", "level": level, mdtree.ContentAttr: content}, nil
}

var (
	codeIndent       = regexp.MustCompile(`(?m)^    `)
	trailingNewlines = regexp.MustCompile(`\n+$`)
)

func buildCodeBlock(c mdtree.Capture, _ mdtree.ParseFunc, _ mdtree.State) (mdtree.Attrs, error) {
	code := codeIndent.ReplaceAllString(c[0], "")
	return mdtree.Attrs{"lang": "", "text": trailingNewlines.ReplaceAllString(code, "")}, nil
}

var (
	fenceOpen     = regexp.MustCompile("^ *(`{3,}|~{3,}) *(?:(\\S+) *)?\n")
	blankLinesEnd = regexp.MustCompile(`^(?: *\n)*`)
)

// Matches a fenced code block. The closing fence must be on a line of its own
// and use the same fence string as the opening one. Capture groups are the
// fence, the language and the code.
func matchFence(source string, _ mdtree.State) mdtree.Capture {
	open := fenceOpen.FindStringSubmatch(source)
	if open == nil {
		return nil
	}
	fence := open[1]
	for i := len(open[0]); i < len(source); {
		lineEnd := strings.IndexByte(source[i:], '\n')
		if lineEnd == -1 {
			return nil
		}
		line := source[i : i+lineEnd]
		if strings.TrimRight(line, " ") == fence {
			code := source[len(open[0]):i]
			end := i + lineEnd + 1
			end += len(blankLinesEnd.FindString(source[end:]))
			return mdtree.Capture{source[:end], fence, open[2], strings.TrimSuffix(code, "\n")}
		}
		i += lineEnd + 1
	}
	return nil
}

func buildFence(c mdtree.Capture, _ mdtree.ParseFunc, _ mdtree.State) (mdtree.Attrs, error) {
	return mdtree.Attrs{"lang": c[2], "text": c[3]}, nil
}

var quotePrefix = regexp.MustCompile(`(?m)^ *> ?`)

func buildBlockQuote(c mdtree.Capture, parse mdtree.ParseFunc, state mdtree.State) (mdtree.Attrs, error) {
	content, err := parseBlock(parse, quotePrefix.ReplaceAllString(c[0], ""), state)
	if err != nil {
		return nil, err
	}
	return mdtree.Attrs{mdtree.ContentAttr: content}, nil
}

var paragraphEnd = regexp.MustCompile(`^(?:\n *)+\n`)

// Matches a paragraph: a run of text that ends at the first blank line. The
// only capture group is the text without the blank lines.
func matchParagraph(source string, _ mdtree.State) mdtree.Capture {
	for i := 0; i < len(source); i++ {
		if source[i] != '\n' {
			continue
		}
		j := i + 1
		for j < len(source) && source[j] == ' ' {
			j++
		}
		if j == len(source) || source[j] != '\n' {
			continue
		}
		if i == 0 {
			return nil
		}
		end := i + len(paragraphEnd.FindString(source[i:]))
		return mdtree.Capture{source[:end], source[:i]}
	}
	return nil
}
