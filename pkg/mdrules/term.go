package mdrules

import (
	"strconv"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/mdtree/mdtree/pkg/mdtree"
	"github.com/mdtree/mdtree/pkg/ui"
)

// TermOptions configures the terminal output.
type TermOptions struct {
	// Width of the terminal in cells. Thematic breaks span the whole width.
	Width int
	// Stylings by element, overriding DefaultTermStyles. The keys are node
	// types, plus "quote" for the bar in front of block quotes and "target" for
	// the destination shown after links.
	Styles map[string]ui.Styling
}

// DefaultTermStyles are the stylings used by TermOutput unless overridden.
var DefaultTermStyles = map[string]ui.Styling{
	"heading":    ui.Stylings(ui.Bold, ui.FgBlue),
	"em":         ui.Italic,
	"strong":     ui.Bold,
	"u":          ui.Underlined,
	"del":        ui.Strikethrough,
	"inlineCode": ui.FgMagenta,
	"codeBlock":  ui.Dim,
	"link":       ui.Stylings(ui.Underlined, ui.FgCyan),
	"target":     ui.Dim,
	"quote":      ui.FgBrightBlack,
	"hr":         ui.FgBrightBlack,
}

const defaultTermWidth = 80

type termOutput = mdtree.Output[ui.Text]

// TermOutput returns an output engine that renders nodes to styled text for
// display in a terminal. Blocks are separated by blank lines.
func TermOutput(opts TermOptions) *mdtree.Output[ui.Text] {
	width := opts.Width
	if width <= 0 {
		width = defaultTermWidth
	}
	style := func(name string) ui.Styling {
		if s, ok := opts.Styles[name]; ok {
			return s
		}
		return DefaultTermStyles[name]
	}
	styled := func(name string) mdtree.Renderer[ui.Text] {
		return func(n *mdtree.Node, out *termOutput) (ui.Text, error) {
			content, err := concatNodes(out, n.Content())
			if err != nil {
				return nil, err
			}
			return ui.StyleText(content, style(name)), nil
		}
	}
	block := func(r mdtree.Renderer[ui.Text]) mdtree.Renderer[ui.Text] {
		return func(n *mdtree.Node, out *termOutput) (ui.Text, error) {
			t, err := r(n, out)
			if err != nil {
				return nil, err
			}
			return trimNewlines(t).Concat(ui.T("\n\n")), nil
		}
	}
	code := func(n *mdtree.Node, _ *termOutput) (ui.Text, error) {
		return ui.T(n.Text("text")).PrefixLines(ui.T("    ")), nil
	}
	link := func(n *mdtree.Node, out *termOutput) (ui.Text, error) {
		content, err := concatNodes(out, n.Content())
		if err != nil {
			return nil, err
		}
		t := ui.StyleText(content, style("link"))
		if target := n.Text("target"); target != content.Plain() &&
			"mailto:"+content.Plain() != target {
			t = t.Concat(ui.T(" ("+target+")", style("target")))
		}
		return t, nil
	}
	image := func(n *mdtree.Node, _ *termOutput) (ui.Text, error) {
		return ui.T("[image: "+n.Text("alt")+"]", style("link")).
			Concat(ui.T(" ("+n.Text("target")+")", style("target"))), nil
	}
	empty := func(*mdtree.Node, *termOutput) (ui.Text, error) { return nil, nil }

	renderers := map[string]mdtree.Renderer[ui.Text]{
		"heading": block(styled("heading")),
		"hr": func(*mdtree.Node, *termOutput) (ui.Text, error) {
			return ui.T(strings.Repeat("─", width/runewidth.RuneWidth('─'))+"\n\n", style("hr")), nil
		},
		"codeBlock": block(func(n *mdtree.Node, out *termOutput) (ui.Text, error) {
			t, err := code(n, out)
			return ui.StyleText(t, style("codeBlock")), err
		}),
		"fence": block(func(n *mdtree.Node, out *termOutput) (ui.Text, error) {
			t, err := code(n, out)
			return ui.StyleText(t, style("codeBlock")), err
		}),
		"blockQuote": block(func(n *mdtree.Node, out *termOutput) (ui.Text, error) {
			content, err := concatNodes(out, n.Content())
			if err != nil {
				return nil, err
			}
			return trimNewlines(content).PrefixLines(ui.T("│ ", style("quote"))), nil
		}),
		"list":      block(renderListTerm),
		"def":       empty,
		"newline":   empty,
		"paragraph": block(styled("paragraph")),

		"frontMatter": empty,

		"em":     styled("em"),
		"strong": styled("strong"),
		"u":      styled("u"),
		"del":    styled("del"),
		"inlineCode": func(n *mdtree.Node, _ *termOutput) (ui.Text, error) {
			return ui.T(n.Text("text"), style("inlineCode")), nil
		},
		"br":    func(*mdtree.Node, *termOutput) (ui.Text, error) { return ui.T("\n"), nil },
		"link":  link,
		"image": image,
		"reflink": func(n *mdtree.Node, out *termOutput) (ui.Text, error) {
			if !n.Bool("defined") {
				return ui.T(n.Text("source")), nil
			}
			return link(n, out)
		},
		"refimage": func(n *mdtree.Node, out *termOutput) (ui.Text, error) {
			if !n.Bool("defined") {
				return ui.T(n.Text("source")), nil
			}
			return image(n, out)
		},
		"text": func(n *mdtree.Node, _ *termOutput) (ui.Text, error) {
			return ui.T(n.Text("text")), nil
		},
	}
	return mdtree.NewOutput(mdtree.MapLookup(renderers))
}

// RenderTerm renders nodes to styled text, with no trailing blank lines.
func RenderTerm(ns []*mdtree.Node, opts TermOptions) (ui.Text, error) {
	t, err := concatNodes(TermOutput(opts), ns)
	if err != nil {
		return nil, err
	}
	return trimNewlines(t), nil
}

func concatNodes(out *termOutput, ns []*mdtree.Node) (ui.Text, error) {
	parts, err := out.Nodes(ns)
	if err != nil {
		return nil, err
	}
	return ui.Text(nil).Concat(parts...), nil
}

func renderListTerm(n *mdtree.Node, out *termOutput) (ui.Text, error) {
	items, _ := n.Attrs["items"].([][]*mdtree.Node)
	var t ui.Text
	for i, item := range items {
		content, err := concatNodes(out, item)
		if err != nil {
			return nil, err
		}
		bullet := "• "
		if n.Bool("ordered") {
			bullet = strconv.Itoa(n.Int("start")+i) + ". "
		}
		lines := trimNewlines(content).Lines()
		pad := ui.T(strings.Repeat(" ", runewidth.StringWidth(bullet)))
		for j, line := range lines {
			if j == 0 {
				t = t.Concat(ui.T(bullet), line)
			} else if line.Plain() == "" {
				t = t.Concat(line)
			} else {
				t = t.Concat(pad, line)
			}
			t = t.Concat(ui.T("\n"))
		}
		if len(lines) == 0 {
			t = t.Concat(ui.T(bullet + "\n"))
		}
	}
	return t, nil
}

// Removes trailing newlines from t.
func trimNewlines(t ui.Text) ui.Text {
	t = t.Clone()
	for len(t) > 0 {
		last := t[len(t)-1]
		last.Text = strings.TrimRight(last.Text, "\n")
		if last.Text != "" {
			break
		}
		t = t[:len(t)-1]
	}
	return t
}
