// Command mdtrace prints the node tree of the Markdown read from stdin.
package main

import (
	"fmt"
	"io"
	"log"
	"os"

	"github.com/mdtree/mdtree/pkg/mdrules"
)

func main() {
	text, err := io.ReadAll(os.Stdin)
	if err != nil {
		log.Fatal(err)
	}
	nodes, err := mdrules.Parse(string(text))
	if err != nil {
		log.Fatal(err)
	}
	trace, err := mdrules.RenderTrace(nodes)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Print(trace)
}
