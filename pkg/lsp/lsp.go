// Package lsp implements a language server for Markdown documents. It reports
// parse errors and undefined references as diagnostics, shows the heading
// outline on hover and completes reference labels.
package lsp

import (
	"context"
	"errors"
	"io"
	"os"

	"github.com/sourcegraph/jsonrpc2"

	"github.com/mdtree/mdtree/pkg/config"
	"github.com/mdtree/mdtree/pkg/mdrules"
	"github.com/mdtree/mdtree/pkg/prog"
)

// Program is the LSP subprogram.
type Program struct {
	run    bool
	config *string
}

func (p *Program) RegisterFlags(fs *prog.FlagSet) {
	fs.BoolVar(&p.run, "lsp", false, "run language server instead of rendering")
	p.config = fs.Config()
}

func (p *Program) Run(fds [3]*os.File, args []string) error {
	switch {
	case !p.run:
		return prog.ErrNextProgram
	case len(args) > 0:
		return prog.BadUsage("arguments are not allowed with -lsp")
	}
	parser, err := loadParser(*p.config)
	if err != nil {
		return err
	}
	serve(context.Background(), stdio{fds[0], fds[1]}, newServer(parser))
	return nil
}

func loadParser(fname string) (*mdrules.Parser, error) {
	c, err := config.Load(fname)
	if err != nil {
		return nil, err
	}
	g, err := c.Grammar()
	if err != nil {
		return nil, err
	}
	return mdrules.NewParser(g)
}

// Serves requests on rwc until the client disconnects.
func serve(ctx context.Context, rwc io.ReadWriteCloser, s *server) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	stream := jsonrpc2.NewBufferedStream(rwc, jsonrpc2.VSCodeObjectCodec{})
	<-jsonrpc2.NewConn(ctx, stream, handler(s)).DisconnectNotify()
}

// Joins the standard input and output into one stream.
type stdio struct {
	io.ReadCloser
	out io.WriteCloser
}

func (s stdio) Write(p []byte) (int, error) { return s.out.Write(p) }

func (s stdio) Close() error {
	return errors.Join(s.ReadCloser.Close(), s.out.Close())
}
