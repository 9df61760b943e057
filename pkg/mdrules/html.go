package mdrules

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/shurcooL/sanitized_anchor_name"

	"github.com/mdtree/mdtree/pkg/mdtree"
)

var (
	escapeHTML = strings.NewReplacer(
		"&", "&amp;", `"`, "&quot;", "<", "&lt;", ">", "&gt;",
		// No need to escape single quotes, since attributes in the output
		// always use double quotes.
	).Replace
	escapeURL = strings.NewReplacer(
		`"`, "%22", `\`, "%5C", " ", "%20", "`", "%60",
		"<", "%3C", ">", "%3E").Replace
)

// HTMLOptions configures the HTML output.
type HTMLOptions struct {
	// Give headings an id attribute derived from their text.
	HeadingIDs bool
}

type htmlOutput = mdtree.Output[string]

// HTMLOutput returns an output engine that renders each node to an HTML
// fragment. Block-level nodes render with a trailing newline.
func HTMLOutput(opts HTMLOptions) *mdtree.Output[string] {
	renderers := map[string]mdtree.Renderer[string]{
		"heading": func(n *mdtree.Node, out *htmlOutput) (string, error) {
			var attrs attrBuilder
			if opts.HeadingIDs {
				attrs.set("id", sanitized_anchor_name.Create(PlainText(n.Content())))
			}
			return wrapContent(n, out, fmt.Sprintf("<h%d%s>", n.Int("level"), &attrs),
				fmt.Sprintf("</h%d>\n", n.Int("level")))
		},
		"hr":         constHTML("<hr />\n"),
		"codeBlock":  renderCodeHTML,
		"fence":      renderCodeHTML,
		"blockQuote": wrapper("<blockquote>\n", "</blockquote>\n"),
		"list":       renderListHTML,
		"def":        constHTML(""),
		"newline":    constHTML(""),
		"paragraph":  wrapper("<p>", "</p>\n"),

		"frontMatter": constHTML(""),

		"em":     wrapper("<em>", "</em>"),
		"strong": wrapper("<strong>", "</strong>"),
		"u":      wrapper("<u>", "</u>"),
		"del":    wrapper("<del>", "</del>"),
		"inlineCode": func(n *mdtree.Node, _ *htmlOutput) (string, error) {
			return "<code>" + escapeHTML(n.Text("text")) + "</code>", nil
		},
		"br":    constHTML("<br />"),
		"link":  renderLinkHTML,
		"image": renderImageHTML,
		"reflink": func(n *mdtree.Node, out *htmlOutput) (string, error) {
			if !n.Bool("defined") {
				return escapeHTML(n.Text("source")), nil
			}
			return renderLinkHTML(n, out)
		},
		"refimage": func(n *mdtree.Node, out *htmlOutput) (string, error) {
			if !n.Bool("defined") {
				return escapeHTML(n.Text("source")), nil
			}
			return renderImageHTML(n, out)
		},
		"text": func(n *mdtree.Node, _ *htmlOutput) (string, error) {
			return escapeHTML(n.Text("text")), nil
		},
	}
	return mdtree.NewOutput(mdtree.MapLookup(renderers))
}

// RenderHTML renders nodes to HTML.
func RenderHTML(ns []*mdtree.Node, opts HTMLOptions) (string, error) {
	return joinNodes(HTMLOutput(opts), ns)
}

func joinNodes(out *htmlOutput, ns []*mdtree.Node) (string, error) {
	parts, err := out.Nodes(ns)
	if err != nil {
		return "", err
	}
	return strings.Join(parts, ""), nil
}

func constHTML(s string) mdtree.Renderer[string] {
	return func(*mdtree.Node, *htmlOutput) (string, error) { return s, nil }
}

func wrapper(open, close string) mdtree.Renderer[string] {
	return func(n *mdtree.Node, out *htmlOutput) (string, error) {
		return wrapContent(n, out, open, close)
	}
}

func wrapContent(n *mdtree.Node, out *htmlOutput, open, close string) (string, error) {
	inner, err := joinNodes(out, n.Content())
	if err != nil {
		return "", err
	}
	return open + inner + close, nil
}

func renderCodeHTML(n *mdtree.Node, _ *htmlOutput) (string, error) {
	var attrs attrBuilder
	if lang := n.Text("lang"); lang != "" {
		attrs.set("class", "language-"+lang)
	}
	return fmt.Sprintf("<pre><code%s>%s</code></pre>\n", &attrs, escapeHTML(n.Text("text"))), nil
}

func renderListHTML(n *mdtree.Node, out *htmlOutput) (string, error) {
	var sb strings.Builder
	tag := "ul"
	if n.Bool("ordered") {
		tag = "ol"
		var attrs attrBuilder
		if start := n.Int("start"); start != 1 {
			attrs.set("start", strconv.Itoa(start))
		}
		fmt.Fprintf(&sb, "<ol%s>\n", &attrs)
	} else {
		sb.WriteString("<ul>\n")
	}
	items, _ := n.Attrs["items"].([][]*mdtree.Node)
	for _, item := range items {
		inner, err := joinNodes(out, item)
		if err != nil {
			return "", err
		}
		fmt.Fprintf(&sb, "<li>%s</li>\n", inner)
	}
	fmt.Fprintf(&sb, "</%s>\n", tag)
	return sb.String(), nil
}

func renderLinkHTML(n *mdtree.Node, out *htmlOutput) (string, error) {
	var attrs attrBuilder
	attrs.set("href", escapeURL(n.Text("target")))
	if title := n.Text("title"); title != "" {
		attrs.set("title", title)
	}
	return wrapContent(n, out, fmt.Sprintf("<a%s>", &attrs), "</a>")
}

func renderImageHTML(n *mdtree.Node, _ *htmlOutput) (string, error) {
	var attrs attrBuilder
	attrs.set("src", escapeURL(n.Text("target")))
	attrs.set("alt", n.Text("alt"))
	if title := n.Text("title"); title != "" {
		attrs.set("title", title)
	}
	return fmt.Sprintf("<img%s />", &attrs), nil
}

type attrBuilder struct{ strings.Builder }

func (a *attrBuilder) set(k, v string) { fmt.Fprintf(a, ` %s="%s"`, k, escapeHTML(v)) }
