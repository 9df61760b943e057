// Package config reads the TOML configuration file shared by the renderer and
// the language server.
//
// An example configuration:
//
//	format = "term"
//	width = 72
//	heading-ids = true
//	disable = ["u", "del"]
//	cache = "/home/me/.cache/mdtree.db"
//
//	[styles]
//	heading = "bold fg-red"
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/mdtree/mdtree/pkg/mdrules"
	"github.com/mdtree/mdtree/pkg/ui"
)

// Config holds the settings from a configuration file. Zero values mean that
// the setting is absent.
type Config struct {
	Format     string            `toml:"format"`
	Width      int               `toml:"width"`
	Color      string            `toml:"color"`
	HeadingIDs bool              `toml:"heading-ids"`
	Disable    []string          `toml:"disable"`
	Cache      string            `toml:"cache"`
	Styles     map[string]string `toml:"styles"`
}

// Load reads the named file. An empty name results in an empty Config. Keys
// that Config does not know about are errors.
func Load(fname string) (*Config, error) {
	var c Config
	if fname == "" {
		return &c, nil
	}
	md, err := toml.DecodeFile(fname, &c)
	if err != nil {
		var pathErr *fs.PathError
		if errors.As(err, &pathErr) {
			return nil, err
		}
		return nil, fmt.Errorf("%s: %w", fname, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, fmt.Errorf("%s: unknown keys: %s", fname, strings.Join(keys, ", "))
	}
	return &c, nil
}

// Grammar returns the default grammar without the rules named in disable and
// c.Disable. It is an error to name a rule that does not exist.
func (c *Config) Grammar(disable ...string) (mdrules.Grammar, error) {
	g := mdrules.Default()
	names := append(append([]string(nil), c.Disable...), disable...)
	for _, name := range names {
		if g.Rules[name] == nil {
			return mdrules.Grammar{}, fmt.Errorf("cannot disable unknown rule %q", name)
		}
	}
	return g.Without(names...), nil
}

// TermStyles parses the [styles] table.
func (c *Config) TermStyles() (map[string]ui.Styling, error) {
	if len(c.Styles) == 0 {
		return nil, nil
	}
	names := make([]string, 0, len(c.Styles))
	for name := range c.Styles {
		names = append(names, name)
	}
	sort.Strings(names)
	styles := make(map[string]ui.Styling, len(c.Styles))
	for _, name := range names {
		s, err := ui.ParseStyling(c.Styles[name])
		if err != nil {
			return nil, fmt.Errorf("styles.%s: %w", name, err)
		}
		styles[name] = s
	}
	return styles, nil
}
