package testutil

import (
	"os"
	"path/filepath"

	"github.com/mdtree/mdtree/pkg/must"
)

// TempDir creates a temporary directory for testing that will be removed
// after the test finishes. It is different from testing.TB.TempDir in that it
// resolves symlinks in the path of the directory.
func TempDir(c Cleanuper) string {
	dir := must.OK1(os.MkdirTemp("", "mdtree-test"))
	dir = must.OK1(filepath.EvalSymlinks(dir))
	c.Cleanup(func() {
		err := os.RemoveAll(dir)
		if err != nil {
			// Cleanup failures are not worth failing the test over.
			println("failed to remove temp dir", dir)
		}
	})
	return dir
}

// TempFile returns the path of a file named name inside a fresh temporary
// directory, after writing content to it.
func TempFile(c Cleanuper, name, content string) string {
	path := filepath.Join(TempDir(c), name)
	must.WriteFile(path, content)
	return path
}

// InTempDir is like TempDir, but also changes into the directory, and changes
// back to the original working directory when the test finishes.
func InTempDir(c Cleanuper) string {
	pwd := must.OK1(os.Getwd())
	dir := TempDir(c)
	must.OK(os.Chdir(dir))
	c.Cleanup(func() { must.OK(os.Chdir(pwd)) })
	return dir
}
