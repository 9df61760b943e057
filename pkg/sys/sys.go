// Package sys provides terminal queries with the same API across OSes.
package sys

import (
	"os"

	"github.com/mattn/go-isatty"

	"github.com/mdtree/mdtree/pkg/logutil"
)

var logger = logutil.GetLogger("[sys] ")

// WinSize returns the number of rows and columns of the terminal referenced by
// file. It returns -1, -1 if file is not a terminal. Some terminals, such as
// serial consoles, report a size of 0, which callers should treat as unknown.
func WinSize(file *os.File) (row, col int) {
	row, col, err := winSize(file)
	if err != nil {
		logger.Printf("cannot get size of %s: %v", file.Name(), err)
		return -1, -1
	}
	return row, col
}

// IsATTY determines whether the given file is a terminal.
func IsATTY(fd uintptr) bool {
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
