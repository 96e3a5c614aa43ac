// Package langserver exposes the parser over the language server protocol.
// Every document update is re-parsed in full and the resulting diagnostics
// are pushed to the client.
package langserver

import (
	"errors"
	"net/url"
	"path/filepath"
	"strings"

	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
	"github.com/tliron/glsp/server"

	_ "github.com/tliron/commonlog/simple"

	"github.com/invpt/radi/lang/diag"
	"github.com/invpt/radi/lang/intern"
	"github.com/invpt/radi/lang/lexer"
	"github.com/invpt/radi/lang/parser"
	"github.com/invpt/radi/lang/source"
)

const lsName = "radi"

type Server struct {
	handler  protocol.Handler
	server   *server.Server
	version  string
	maxDepth int
}

func New(version string, maxDepth int) *Server {
	if maxDepth <= 0 {
		maxDepth = parser.DefaultMaxDepth
	}
	ls := &Server{
		version:  version,
		maxDepth: maxDepth,
	}

	ls.handler = protocol.Handler{
		Initialize:            ls.initialize,
		Initialized:           ls.initialized,
		Shutdown:              ls.shutdown,
		SetTrace:              ls.setTrace,
		TextDocumentDidOpen:   ls.textDocumentDidOpen,
		TextDocumentDidChange: ls.textDocumentDidChange,
		TextDocumentDidClose:  ls.textDocumentDidClose,
		TextDocumentDidSave:   ls.textDocumentDidSave,
	}

	ls.server = server.NewServer(&ls.handler, lsName, false)

	return ls
}

func (ls *Server) RunStdio() error {
	return ls.server.RunStdio()
}

func (ls *Server) initialize(ctx *glsp.Context, params *protocol.InitializeParams) (any, error) {
	capabilities := ls.handler.CreateServerCapabilities()

	capabilities.TextDocumentSync = &protocol.TextDocumentSyncOptions{
		OpenClose: boolPtr(true),
		Change:    syncKindPtr(protocol.TextDocumentSyncKindFull),
		Save: &protocol.SaveOptions{
			IncludeText: boolPtr(true),
		},
	}

	return protocol.InitializeResult{
		Capabilities: capabilities,
		ServerInfo: &protocol.InitializeResultServerInfo{
			Name:    lsName,
			Version: &ls.version,
		},
	}, nil
}

func (ls *Server) initialized(ctx *glsp.Context, params *protocol.InitializedParams) error {
	return nil
}

func (ls *Server) shutdown(ctx *glsp.Context) error {
	return nil
}

func (ls *Server) setTrace(ctx *glsp.Context, params *protocol.SetTraceParams) error {
	protocol.SetTraceValue(params.Value)
	return nil
}

func (ls *Server) textDocumentDidOpen(ctx *glsp.Context, params *protocol.DidOpenTextDocumentParams) error {
	ls.checkDocument(ctx, params.TextDocument.URI, params.TextDocument.Text)
	return nil
}

func (ls *Server) textDocumentDidChange(ctx *glsp.Context, params *protocol.DidChangeTextDocumentParams) error {
	if len(params.ContentChanges) == 0 {
		return nil
	}
	change := params.ContentChanges[len(params.ContentChanges)-1]
	if whole, ok := change.(protocol.TextDocumentContentChangeEventWhole); ok {
		ls.checkDocument(ctx, params.TextDocument.URI, whole.Text)
	}
	return nil
}

func (ls *Server) textDocumentDidClose(ctx *glsp.Context, params *protocol.DidCloseTextDocumentParams) error {
	return nil
}

func (ls *Server) textDocumentDidSave(ctx *glsp.Context, params *protocol.DidSaveTextDocumentParams) error {
	if params.Text != nil {
		ls.checkDocument(ctx, params.TextDocument.URI, *params.Text)
	}
	return nil
}

// checkDocument re-parses text and pushes the resulting diagnostics. A
// clean parse pushes an empty list so the client clears stale squiggles.
func (ls *Server) checkDocument(ctx *glsp.Context, uri string, text string) {
	file := uri
	if path, err := uriToPath(uri); err == nil {
		file = path
	}

	store := intern.NewStore()
	diags := diag.NewStream()
	tokens := lexer.New(source.New(strings.NewReader(text)), store)

	_, parseErr := parser.Parse(tokens, diags,
		parser.WithFile(file),
		parser.WithMaxDepth(ls.maxDepth),
	)

	index := newLineIndex(text)
	out := []protocol.Diagnostic{}

	for _, d := range diags.All() {
		out = append(out, protocol.Diagnostic{
			Range:    index.toRange(d.Span),
			Severity: severityPtr(toProtocolSeverity(d.Severity)),
			Source:   strPtr(lsName),
			Message:  d.Message,
		})
	}

	if parseErr != nil {
		var pe *parser.ParseError
		span := lexer.Span{Start: len(text), End: len(text)}
		if errors.As(parseErr, &pe) {
			if s := errSpan(pe); s != nil {
				span = *s
			}
		}
		out = append(out, protocol.Diagnostic{
			Range:    index.toRange(span),
			Severity: severityPtr(protocol.DiagnosticSeverityError),
			Source:   strPtr(lsName),
			Message:  parseErr.Error(),
		})
	}

	ctx.Notify(protocol.ServerTextDocumentPublishDiagnostics, protocol.PublishDiagnosticsParams{
		URI:         uri,
		Diagnostics: out,
	})
}

func errSpan(pe *parser.ParseError) *lexer.Span {
	if pe.Span != nil {
		return pe.Span
	}
	if pe.Token != nil {
		return &pe.Token.Span
	}
	var le *lexer.Error
	if errors.As(pe, &le) && le.Span != nil {
		return le.Span
	}
	return nil
}

// lineIndex maps byte offsets into a document to line/character positions.
// Characters are counted in UTF-16 code units, the protocol's default
// position encoding.
type lineIndex struct {
	text   string
	starts []int
}

func newLineIndex(text string) *lineIndex {
	starts := []int{0}
	for i := 0; i < len(text); i++ {
		if text[i] == '\n' {
			starts = append(starts, i+1)
		}
	}
	return &lineIndex{text: text, starts: starts}
}

func (ix *lineIndex) toPosition(offset int) protocol.Position {
	if offset < 0 {
		offset = 0
	}
	if offset > len(ix.text) {
		offset = len(ix.text)
	}
	line := 0
	for line+1 < len(ix.starts) && ix.starts[line+1] <= offset {
		line++
	}
	units := 0
	for _, r := range ix.text[ix.starts[line]:offset] {
		units++
		if r > 0xFFFF {
			units++
		}
	}
	return protocol.Position{
		Line:      protocol.UInteger(line),
		Character: protocol.UInteger(units),
	}
}

func (ix *lineIndex) toRange(span lexer.Span) protocol.Range {
	return protocol.Range{
		Start: ix.toPosition(span.Start),
		End:   ix.toPosition(span.End),
	}
}

func toProtocolSeverity(s diag.Severity) protocol.DiagnosticSeverity {
	switch s {
	case diag.SeverityError:
		return protocol.DiagnosticSeverityError
	case diag.SeverityWarning:
		return protocol.DiagnosticSeverityWarning
	case diag.SeverityInfo:
		return protocol.DiagnosticSeverityInformation
	default:
		return protocol.DiagnosticSeverityHint
	}
}

func uriToPath(uri string) (string, error) {
	if strings.HasPrefix(uri, "file://") {
		parsed, err := url.Parse(uri)
		if err != nil {
			return "", err
		}
		return filepath.Clean(parsed.Path), nil
	}
	return uri, nil
}

func boolPtr(b bool) *bool {
	return &b
}

func strPtr(s string) *string {
	return &s
}

func severityPtr(s protocol.DiagnosticSeverity) *protocol.DiagnosticSeverity {
	return &s
}

func syncKindPtr(k protocol.TextDocumentSyncKind) *protocol.TextDocumentSyncKind {
	return &k
}
