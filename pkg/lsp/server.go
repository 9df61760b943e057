package lsp

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	lsp "github.com/sourcegraph/go-lsp"
	"github.com/sourcegraph/jsonrpc2"

	"github.com/mdtree/mdtree/pkg/diag"
	"github.com/mdtree/mdtree/pkg/logutil"
	"github.com/mdtree/mdtree/pkg/mdrules"
	"github.com/mdtree/mdtree/pkg/mdtree"
)

var logger = logutil.GetLogger("[lsp] ")

var (
	errMethodNotFound = &jsonrpc2.Error{
		Code: jsonrpc2.CodeMethodNotFound, Message: "method not found"}
	errInvalidParams = &jsonrpc2.Error{
		Code: jsonrpc2.CodeInvalidParams, Message: "invalid params"}
)

type server struct {
	parser  *mdrules.Parser
	content map[lsp.DocumentURI]string
}

func newServer(p *mdrules.Parser) *server {
	return &server{p, make(map[lsp.DocumentURI]string)}
}

func handler(s *server) jsonrpc2.Handler {
	return routingHandler(map[string]method{
		"initialize":              s.initialize,
		"textDocument/didOpen":    s.didOpen,
		"textDocument/didChange":  s.didChange,
		"textDocument/didClose":   s.didClose,
		"textDocument/hover":      s.hover,
		"textDocument/completion": s.completion,

		// Notifications clients send regardless of the capabilities.
		"initialized":                     noop,
		"workspace/didChangeWatchedFiles": noop,
	})
}

type method func(context.Context, jsonrpc2.JSONRPC2, json.RawMessage) (any, error)

func noop(_ context.Context, _ jsonrpc2.JSONRPC2, _ json.RawMessage) (any, error) {
	return nil, nil
}

func routingHandler(methods map[string]method) jsonrpc2.Handler {
	return jsonrpc2.HandlerWithError(func(ctx context.Context, conn *jsonrpc2.Conn, req *jsonrpc2.Request) (any, error) {
		logger.Println("request", req.Method)
		fn, ok := methods[req.Method]
		if !ok {
			return nil, errMethodNotFound
		}
		var params json.RawMessage
		if req.Params != nil {
			params = *req.Params
		}
		return fn(ctx, conn, params)
	})
}

// Handler implementations. These are all called synchronously.

func (s *server) initialize(_ context.Context, _ jsonrpc2.JSONRPC2, _ json.RawMessage) (any, error) {
	return &lsp.InitializeResult{
		Capabilities: lsp.ServerCapabilities{
			TextDocumentSync: &lsp.TextDocumentSyncOptionsOrKind{
				Options: &lsp.TextDocumentSyncOptions{
					OpenClose: true,
					Change:    lsp.TDSKFull,
				},
			},
			HoverProvider:      true,
			CompletionProvider: &lsp.CompletionOptions{TriggerCharacters: []string{"["}},
		},
	}, nil
}

func (s *server) didOpen(ctx context.Context, conn jsonrpc2.JSONRPC2, rawParams json.RawMessage) (any, error) {
	var params lsp.DidOpenTextDocumentParams
	if json.Unmarshal(rawParams, &params) != nil {
		return nil, errInvalidParams
	}

	uri, content := params.TextDocument.URI, params.TextDocument.Text
	s.content[uri] = content
	go s.publishDiagnostics(ctx, conn, uri, content)
	return nil, nil
}

func (s *server) didChange(ctx context.Context, conn jsonrpc2.JSONRPC2, rawParams json.RawMessage) (any, error) {
	var params lsp.DidChangeTextDocumentParams
	if json.Unmarshal(rawParams, &params) != nil || len(params.ContentChanges) == 0 {
		return nil, errInvalidParams
	}

	// ContentChanges includes full text since the server is only advertised to
	// support that; see the initialize method.
	uri, content := params.TextDocument.URI, params.ContentChanges[0].Text
	s.content[uri] = content
	go s.publishDiagnostics(ctx, conn, uri, content)
	return nil, nil
}

func (s *server) didClose(_ context.Context, _ jsonrpc2.JSONRPC2, rawParams json.RawMessage) (any, error) {
	var params lsp.DidCloseTextDocumentParams
	if json.Unmarshal(rawParams, &params) != nil {
		return nil, errInvalidParams
	}
	delete(s.content, params.TextDocument.URI)
	return nil, nil
}

// Shows an outline of the document's headings.
func (s *server) hover(_ context.Context, _ jsonrpc2.JSONRPC2, rawParams json.RawMessage) (any, error) {
	var params lsp.TextDocumentPositionParams
	if json.Unmarshal(rawParams, &params) != nil {
		return nil, errInvalidParams
	}
	nodes, err := s.parser.ParseBlock(s.content[params.TextDocument.URI], nil)
	if err != nil {
		return lsp.Hover{}, nil
	}
	if outline := headingOutline(nodes); outline != "" {
		return lsp.Hover{Contents: []lsp.MarkedString{lsp.RawMarkedString(outline)}}, nil
	}
	return lsp.Hover{}, nil
}

// Completes the labels of reference definitions.
func (s *server) completion(_ context.Context, _ jsonrpc2.JSONRPC2, rawParams json.RawMessage) (any, error) {
	var params lsp.CompletionParams
	if json.Unmarshal(rawParams, &params) != nil {
		return nil, errInvalidParams
	}
	state := mdtree.State{}
	if _, err := s.parser.ParseBlock(s.content[params.TextDocument.URI], state); err != nil {
		return []lsp.CompletionItem{}, nil
	}
	refs := mdrules.Refs(state)
	labels := make([]string, 0, len(refs))
	for label := range refs {
		labels = append(labels, label)
	}
	sort.Strings(labels)
	items := make([]lsp.CompletionItem, len(labels))
	for i, label := range labels {
		items[i] = lsp.CompletionItem{
			Label:  label,
			Kind:   lsp.CIKReference,
			Detail: refs[label].Target,
		}
	}
	return items, nil
}

func (s *server) publishDiagnostics(ctx context.Context, conn jsonrpc2.JSONRPC2, uri lsp.DocumentURI, content string) {
	conn.Notify(ctx, "textDocument/publishDiagnostics",
		lsp.PublishDiagnosticsParams{URI: uri, Diagnostics: s.diagnostics(uri, content)})
}

func (s *server) diagnostics(uri lsp.DocumentURI, content string) []lsp.Diagnostic {
	// Parse failures and nodes refer to offsets in the normalized text.
	norm := mdrules.Normalize(content)
	nodes, err := s.parser.ParseBlock(content, nil)
	if err != nil {
		d := lsp.Diagnostic{Severity: lsp.Error, Source: "parse", Message: err.Error()}
		if err, ok := diag.ParseError(string(uri), norm, err).(*diag.Error); ok {
			d.Range = lspRangeFromRange(content, norm, err)
			d.Message = err.Message
		}
		return []lsp.Diagnostic{d}
	}

	diags := []lsp.Diagnostic{}
	reported := map[string]bool{}
	mdtree.Walk(nodes, func(n *mdtree.Node) bool {
		if (n.Type != "reflink" && n.Type != "refimage") || n.Bool("defined") {
			return true
		}
		label := n.Text("label")
		if reported[label] {
			return true
		}
		reported[label] = true
		r := diag.PointRanging(0)
		if i := strings.Index(norm, n.Text("source")); i != -1 {
			r = diag.Ranging{From: i, To: i + len(n.Text("source"))}
		}
		diags = append(diags, lsp.Diagnostic{
			Range:    lspRangeFromRange(content, norm, r),
			Severity: lsp.Warning,
			Source:   "refs",
			Message:  fmt.Sprintf("undefined reference %q", label),
		})
		return true
	})
	return diags
}

// Returns a Markdown list of the headings in ns, nested by level.
func headingOutline(ns []*mdtree.Node) string {
	var sb strings.Builder
	mdtree.Walk(ns, func(n *mdtree.Node) bool {
		if n.Type == "heading" {
			fmt.Fprintf(&sb, "%s- %s\n",
				strings.Repeat("  ", n.Int("level")-1), mdrules.PlainText(n.Content()))
		}
		return true
	})
	return sb.String()
}

// Converts a range in the normalized text norm to an LSP range in the
// original text s.
func lspRangeFromRange(s, norm string, r diag.Ranger) lsp.Range {
	rg := r.Range()
	return lsp.Range{
		Start: lspPositionFromIdx(s, originalIndex(s, rg.From)),
		End:   lspPositionFromIdx(s, originalIndex(s, rg.To)),
	}
}

// Maps an index in the normalized form of s back to an index in s.
func originalIndex(s string, idx int) int {
	n := 0
	for i := 0; i < len(s); i++ {
		if n >= idx && s[i] != '\f' {
			return i
		}
		switch {
		case s[i] == '\r' && i+1 < len(s) && s[i+1] == '\n':
			// \r\n becomes a single \n.
			n++
			i++
		case s[i] == '\f':
			// Removed.
		case s[i] == '\t':
			n += 4
		default:
			n++
		}
	}
	return len(s)
}

func lspPositionFromIdx(s string, idx int) lsp.Position {
	var pos lsp.Position
	walkString(s, func(i int, p lsp.Position) bool {
		pos = p
		return i < idx
	})
	return pos
}

// Generates (index, lspPosition) pairs in s, stopping if f returns false.
func walkString(s string, f func(i int, p lsp.Position) bool) {
	var p lsp.Position
	lastCR := false

	for i, r := range s {
		if !f(i, p) {
			return
		}
		switch {
		case r == '\r':
			p.Line++
			p.Character = 0
		case r == '\n':
			if lastCR {
				// Ignore \n if it's part of a \r\n sequence
			} else {
				p.Line++
				p.Character = 0
			}
		case r <= 0xFFFF:
			// Encoded in UTF-16 with one unit
			p.Character++
		default:
			// Encoded in UTF-16 with two units
			p.Character += 2
		}
		lastCR = r == '\r'
	}
	f(len(s), p)
}
