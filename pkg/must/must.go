// Package must turns errors into panics. It is meant for tests, and for the
// few places where an error would mean a bug, like compiling a constant
// regular expression.
package must

import (
	"os"
	"path/filepath"
)

// OK panics with err if it is not nil.
func OK(err error) {
	if err != nil {
		panic(err)
	}
}

// OK1 returns v after checking err with OK.
func OK1[T any](v T, err error) T {
	OK(err)
	return v
}

// OK2 returns v1 and v2 after checking err with OK.
func OK2[T1, T2 any](v1 T1, v2 T2, err error) (T1, T2) {
	OK(err)
	return v1, v2
}

// Pipe is like os.Pipe.
func Pipe() (r, w *os.File) { return OK2(os.Pipe()) }

// ReadFileString returns the content of the named file.
func ReadFileString(name string) string { return string(OK1(os.ReadFile(name))) }

// WriteFile writes data to the named file, creating missing parent
// directories.
func WriteFile(name, data string) {
	OK(os.MkdirAll(filepath.Dir(name), 0o700))
	OK(os.WriteFile(name, []byte(data), 0o600))
}
