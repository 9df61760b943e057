package store

import (
	"path/filepath"

	"github.com/mdtree/mdtree/pkg/must"
	"github.com/mdtree/mdtree/pkg/testutil"
)

// MustTempStore returns a Store backed by a temporary file. The Store is
// closed and the file removed when the test finishes.
func MustTempStore(c testutil.Cleanuper) DBStore {
	st := must.OK1(NewStore(filepath.Join(testutil.TempDir(c), "cache.db")))
	c.Cleanup(func() { st.Close() })
	return st
}
