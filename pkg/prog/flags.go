package prog

import (
	"flag"
	"os"

	"github.com/mdtree/mdtree/pkg/env"
)

// FlagSet wraps a [flag.FlagSet], adding flags that may be shared by several
// subprograms. The shared flags are registered the first time they are
// requested.
type FlagSet struct {
	*flag.FlagSet
	config *string
}

// Config returns a pointer to the value of the -config flag. It defaults to
// the value of $MDTREE_CONFIG.
func (fs *FlagSet) Config() *string {
	if fs.config == nil {
		var config string
		fs.StringVar(&config, "config", os.Getenv(env.MDTREE_CONFIG),
			"path to a TOML configuration file")
		fs.config = &config
	}
	return fs.config
}
