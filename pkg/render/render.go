// Package render implements the subprogram that renders Markdown files.
package render

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/k0kubun/pp"

	"github.com/mdtree/mdtree/pkg/config"
	"github.com/mdtree/mdtree/pkg/diag"
	"github.com/mdtree/mdtree/pkg/env"
	"github.com/mdtree/mdtree/pkg/logutil"
	"github.com/mdtree/mdtree/pkg/mdrules"
	"github.com/mdtree/mdtree/pkg/mdtree"
	"github.com/mdtree/mdtree/pkg/prog"
	"github.com/mdtree/mdtree/pkg/store"
	"github.com/mdtree/mdtree/pkg/store/storedefs"
	"github.com/mdtree/mdtree/pkg/sys"
	"github.com/mdtree/mdtree/pkg/ui"
)

var logger = logutil.GetLogger("[render] ")

var formats = []string{"html", "trace", "term", "dump"}

// Program is the render subprogram. It handles every invocation that reaches
// it, so it should come last in a composite program.
type Program struct {
	format  string
	width   int
	color   string
	ids     bool
	disable string
	cache   string
	stats   bool
	config  *string

	cacheRefresh bool
	cacheClear   bool
	cacheStats   bool
}

func (p *Program) RegisterFlags(fs *prog.FlagSet) {
	fs.StringVar(&p.format, "format", "", "output format: html, trace, term or dump (default html)")
	fs.IntVar(&p.width, "width", 0, "width of term output; 0 means the terminal width")
	fs.StringVar(&p.color, "color", "", "color term and dump output: auto, always or never (default auto)")
	fs.BoolVar(&p.ids, "ids", false, "generate id attributes for HTML headings")
	fs.StringVar(&p.disable, "disable", "", "comma-separated names of rules to disable")
	fs.StringVar(&p.cache, "cache", "", "path to a database caching rendered output")
	fs.BoolVar(&p.stats, "stats", false, "write a line of statistics per input to stderr")
	fs.BoolVar(&p.cacheRefresh, "cache-refresh", false, "drop the cached output of the inputs before rendering them")
	fs.BoolVar(&p.cacheClear, "cache-clear", false, "empty the cache instead of rendering")
	fs.BoolVar(&p.cacheStats, "cache-stats", false, "show the size of the cache instead of rendering")
	p.config = fs.Config()
}

func (p *Program) Run(fds [3]*os.File, args []string) error {
	c, err := config.Load(*p.config)
	if err != nil {
		return err
	}
	r, err := p.newRenderer(c, fds[1])
	if err != nil {
		return err
	}
	cachePath := first(p.cache, c.Cache)
	if cachePath != "" {
		st, err := store.NewStore(cachePath)
		if err != nil {
			return fmt.Errorf("cannot open cache: %w", err)
		}
		defer st.Close()
		r.store = st
		r.refresh = p.cacheRefresh
	}
	if p.cacheClear || p.cacheStats {
		switch {
		case r.store == nil:
			return prog.BadUsage("-cache-clear and -cache-stats need a cache")
		case len(args) > 0:
			return prog.BadUsage("arguments are not allowed with -cache-clear or -cache-stats")
		}
		return maintainCache(fds[1], r.store, p.cacheClear, p.cacheStats)
	}

	var errs []error
	renderOne := func(name string, src []byte) {
		out, st, err := r.render(name, string(src))
		if err != nil {
			diag.ShowError(fds[2], err)
			errs = append(errs, err)
			return
		}
		fds[1].WriteString(out)
		if p.stats {
			fmt.Fprintln(fds[2], st)
		}
	}
	if len(args) == 0 {
		src, err := io.ReadAll(fds[0])
		if err != nil {
			return err
		}
		renderOne("[stdin]", src)
	}
	for _, name := range args {
		src, err := os.ReadFile(name)
		if err != nil {
			diag.ShowError(fds[2], err)
			errs = append(errs, err)
			continue
		}
		renderOne(name, src)
	}
	if err := errors.Join(errs...); err != nil {
		logger.Println("render failed:", err)
		return prog.Exit(2)
	}
	return nil
}

// Builds a renderer from the flags, falling back to the configuration file
// for flags that are not set.
func (p *Program) newRenderer(c *config.Config, out *os.File) (*renderer, error) {
	r := &renderer{
		format:     first(p.format, c.Format, "html"),
		headingIDs: p.ids || c.HeadingIDs,
	}
	if !contains(formats, r.format) {
		return nil, prog.BadUsage(fmt.Sprintf("unknown format %q", r.format))
	}

	switch color := first(p.color, c.Color, "auto"); color {
	case "always":
		r.color = true
	case "never":
	case "auto":
		r.color = sys.IsATTY(out.Fd()) && os.Getenv(env.NO_COLOR) == ""
	default:
		return nil, prog.BadUsage(fmt.Sprintf("unknown color mode %q", color))
	}

	r.width = p.width
	if r.width == 0 {
		r.width = c.Width
	}
	if r.width == 0 {
		if _, col := sys.WinSize(out); col > 0 {
			r.width = col
		}
	}

	var disable []string
	if p.disable != "" {
		disable = strings.Split(p.disable, ",")
	}
	g, err := c.Grammar(disable...)
	if err != nil {
		return nil, err
	}
	r.parser, err = mdrules.NewParser(g)
	if err != nil {
		return nil, err
	}
	r.styles, err = c.TermStyles()
	if err != nil {
		return nil, err
	}
	// The cache key must change whenever anything that affects the output
	// does.
	r.cacheKey = fmt.Sprintf("%s ids=%v width=%d color=%v disable=%s styles=%s",
		r.format, r.headingIDs, r.width, r.color,
		strings.Join(g.Priority, ","), describeStyles(c.Styles))
	return r, nil
}

// Clears the cache and then shows its size, as requested.
func maintainCache(w io.Writer, st storedefs.Store, clearFirst, showStats bool) error {
	if clearFirst {
		if err := st.Clear(); err != nil {
			return fmt.Errorf("cannot clear cache: %w", err)
		}
		logger.Println("cache cleared")
	}
	if showStats {
		s, err := st.Stats()
		if err != nil {
			return fmt.Errorf("cannot read cache: %w", err)
		}
		fmt.Fprintf(w, "cache: %s entries, %s\n",
			humanize.Comma(int64(s.Entries)), humanize.Bytes(uint64(s.Bytes)))
	}
	return nil
}

type renderer struct {
	format     string
	headingIDs bool
	width      int
	color      bool
	styles     map[string]ui.Styling

	parser   *mdrules.Parser
	store    storedefs.Store
	cacheKey string
	// Drop cached entries before looking them up.
	refresh bool
}

type stats struct {
	name    string
	in, out int
	nodes   int
	cached  bool
}

func (s stats) String() string {
	if s.cached {
		return fmt.Sprintf("%s: %s in, %s out (cached)",
			s.name, humanize.Bytes(uint64(s.in)), humanize.Bytes(uint64(s.out)))
	}
	return fmt.Sprintf("%s: %s in, %s out, %s nodes",
		s.name, humanize.Bytes(uint64(s.in)), humanize.Bytes(uint64(s.out)),
		humanize.Comma(int64(s.nodes)))
}

func (r *renderer) render(name, src string) (string, stats, error) {
	st := stats{name: name, in: len(src)}
	if r.store != nil && r.refresh {
		if err := r.store.Del(r.cacheKey, src); err != nil && !errors.Is(err, storedefs.ErrNoEntry) {
			logger.Println("cannot drop cached output:", err)
		}
	}
	if r.store != nil && !r.refresh {
		out, err := r.store.Get(r.cacheKey, src)
		if err == nil {
			logger.Println("cache hit for", name)
			st.out, st.cached = len(out), true
			return out, st, nil
		}
		if !errors.Is(err, storedefs.ErrNoEntry) {
			logger.Println("cache lookup failed:", err)
		}
	}

	nodes, err := r.parser.ParseBlock(src, nil)
	if err != nil {
		return "", st, diag.ParseError(name, mdrules.Normalize(src), err)
	}
	mdtree.Walk(nodes, func(*mdtree.Node) bool {
		st.nodes++
		return true
	})
	out, err := r.output(nodes)
	if err != nil {
		return "", st, err
	}
	st.out = len(out)

	if r.store != nil {
		if err := r.store.Put(r.cacheKey, src, out); err != nil {
			logger.Println("cannot cache output:", err)
		}
	}
	return out, st, nil
}

func (r *renderer) output(nodes []*mdtree.Node) (string, error) {
	switch r.format {
	case "trace":
		return mdrules.RenderTrace(nodes)
	case "term":
		t, err := mdrules.RenderTerm(nodes, mdrules.TermOptions{Width: r.width, Styles: r.styles})
		if err != nil {
			return "", err
		}
		if r.color {
			return t.VTString() + "\n", nil
		}
		return t.Plain() + "\n", nil
	case "dump":
		pp.ColoringEnabled = r.color
		return pp.Sprintln(nodes), nil
	default:
		return mdrules.RenderHTML(nodes, mdrules.HTMLOptions{HeadingIDs: r.headingIDs})
	}
}

func describeStyles(styles map[string]string) string {
	names := make([]string, 0, len(styles))
	for name := range styles {
		names = append(names, name)
	}
	sort.Strings(names)
	var sb strings.Builder
	for _, name := range names {
		fmt.Fprintf(&sb, "%s=%s;", name, styles[name])
	}
	return sb.String()
}

// Returns the first non-empty string.
func first(ss ...string) string {
	for _, s := range ss {
		if s != "" {
			return s
		}
	}
	return ""
}

func contains(ss []string, s string) bool {
	for _, s2 := range ss {
		if s == s2 {
			return true
		}
	}
	return false
}
