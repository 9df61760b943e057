// Mdtree renders Markdown documents to HTML or the terminal, and can serve as
// a language server for Markdown editors.
package main

import (
	"os"

	"github.com/mdtree/mdtree/pkg/buildinfo"
	"github.com/mdtree/mdtree/pkg/lsp"
	"github.com/mdtree/mdtree/pkg/prog"
	"github.com/mdtree/mdtree/pkg/render"
)

func main() {
	os.Exit(prog.Run(
		[3]*os.File{os.Stdin, os.Stdout, os.Stderr}, os.Args,
		prog.Composite(
			&buildinfo.Program{}, &lsp.Program{}, &render.Program{})))
}
