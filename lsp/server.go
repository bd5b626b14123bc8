// Package lsp serves parse diagnostics for documents written in an EBNF
// grammar over the Language Server Protocol.
package lsp

import (
	"errors"
	"strings"
	"sync"
	"unicode/utf16"
	"unicode/utf8"

	"github.com/dhamidi/pear/grammar"
	"github.com/dhamidi/pear/input"
	"github.com/dhamidi/pear/parse"
	"github.com/tliron/commonlog"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
	"github.com/tliron/glsp/server"
	"golang.org/x/exp/ebnf"

	_ "github.com/tliron/commonlog/simple"
)

const lsName = "pear"

var log = commonlog.GetLogger("pear.lsp")

type Option func(*Server)

// WithMatcherOptions configures the matcher every document is checked with.
func WithMatcherOptions(opts ...grammar.Option) Option {
	return func(s *Server) {
		s.matcherOpts = append(s.matcherOpts, opts...)
	}
}

// Server checks every open document against one start production and
// publishes the failure, if any, as a diagnostic.
type Server struct {
	grammar     ebnf.Grammar
	start       string
	matcherOpts []grammar.Option
	version     string

	handler protocol.Handler
	server  *server.Server

	mu        sync.Mutex
	documents map[protocol.DocumentUri]string
}

func NewServer(g ebnf.Grammar, start, version string, opts ...Option) *Server {
	s := &Server{
		grammar:   g,
		start:     start,
		version:   version,
		documents: make(map[protocol.DocumentUri]string),
	}
	for _, opt := range opts {
		opt(s)
	}

	s.handler = protocol.Handler{
		Initialize:            s.initialize,
		Initialized:           s.initialized,
		Shutdown:              s.shutdown,
		SetTrace:              s.setTrace,
		TextDocumentDidOpen:   s.textDocumentDidOpen,
		TextDocumentDidChange: s.textDocumentDidChange,
		TextDocumentDidClose:  s.textDocumentDidClose,
		TextDocumentDidSave:   s.textDocumentDidSave,
	}

	s.server = server.NewServer(&s.handler, lsName, false)

	return s
}

func (s *Server) RunStdio() error {
	return s.server.RunStdio()
}

// Diagnose parses text and returns the diagnostics to publish for it. A
// document that parses yields an empty, non-nil slice so clients clear
// earlier diagnostics.
func (s *Server) Diagnose(text string) []protocol.Diagnostic {
	src := input.NewText(text)
	_, err := grammar.NewMatcher(s.grammar, s.matcherOpts...).Match(src, s.start)
	if err == nil {
		return []protocol.Diagnostic{}
	}

	var at input.Marker
	var pe *parse.Error
	if errors.As(err, &pe) {
		at = pe.Marker
	}
	pos := src.Position(at)
	start := toProtocolPosition(text, pos)
	end := start
	if r, size := utf8.DecodeRuneInString(text[pos.Offset:]); size > 0 && r != '\n' {
		end.Character += protocol.UInteger(utf16.RuneLen(r))
	}

	severity := protocol.DiagnosticSeverityError
	source := lsName
	return []protocol.Diagnostic{{
		Range:    protocol.Range{Start: start, End: end},
		Severity: &severity,
		Source:   &source,
		Message:  err.Error(),
	}}
}

func (s *Server) initialize(ctx *glsp.Context, params *protocol.InitializeParams) (any, error) {
	capabilities := s.handler.CreateServerCapabilities()

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
			Version: &s.version,
		},
	}, nil
}

func (s *Server) initialized(ctx *glsp.Context, params *protocol.InitializedParams) error {
	log.Infof("checking documents against %s", s.start)
	return nil
}

func (s *Server) shutdown(ctx *glsp.Context) error {
	return nil
}

func (s *Server) setTrace(ctx *glsp.Context, params *protocol.SetTraceParams) error {
	protocol.SetTraceValue(params.Value)
	return nil
}

func (s *Server) textDocumentDidOpen(ctx *glsp.Context, params *protocol.DidOpenTextDocumentParams) error {
	s.update(ctx, params.TextDocument.URI, params.TextDocument.Text)
	return nil
}

func (s *Server) textDocumentDidChange(ctx *glsp.Context, params *protocol.DidChangeTextDocumentParams) error {
	if len(params.ContentChanges) > 0 {
		change := params.ContentChanges[len(params.ContentChanges)-1]
		if textChange, ok := change.(protocol.TextDocumentContentChangeEventWhole); ok {
			s.update(ctx, params.TextDocument.URI, textChange.Text)
		}
	}
	return nil
}

func (s *Server) textDocumentDidClose(ctx *glsp.Context, params *protocol.DidCloseTextDocumentParams) error {
	s.mu.Lock()
	delete(s.documents, params.TextDocument.URI)
	s.mu.Unlock()

	publish(ctx, params.TextDocument.URI, []protocol.Diagnostic{})
	return nil
}

func (s *Server) textDocumentDidSave(ctx *glsp.Context, params *protocol.DidSaveTextDocumentParams) error {
	if params.Text != nil {
		s.update(ctx, params.TextDocument.URI, *params.Text)
		return nil
	}

	s.mu.Lock()
	text, ok := s.documents[params.TextDocument.URI]
	s.mu.Unlock()
	if ok {
		publish(ctx, params.TextDocument.URI, s.Diagnose(text))
	}
	return nil
}

func (s *Server) update(ctx *glsp.Context, uri protocol.DocumentUri, text string) {
	s.mu.Lock()
	s.documents[uri] = text
	s.mu.Unlock()

	diagnostics := s.Diagnose(text)
	log.Debugf("%s: %d diagnostics", uri, len(diagnostics))
	publish(ctx, uri, diagnostics)
}

func publish(ctx *glsp.Context, uri protocol.DocumentUri, diagnostics []protocol.Diagnostic) {
	ctx.Notify(protocol.ServerTextDocumentPublishDiagnostics, protocol.PublishDiagnosticsParams{
		URI:         uri,
		Diagnostics: diagnostics,
	})
}

// toProtocolPosition converts to the zero-based, UTF-16 addressed positions
// LSP clients expect.
func toProtocolPosition(text string, pos input.Position) protocol.Position {
	lineStart := strings.LastIndexByte(text[:pos.Offset], '\n') + 1
	character := 0
	for _, r := range text[lineStart:pos.Offset] {
		character += utf16.RuneLen(r)
	}
	return protocol.Position{
		Line:      protocol.UInteger(pos.Line - 1),
		Character: protocol.UInteger(character),
	}
}

func boolPtr(b bool) *bool {
	return &b
}

func syncKindPtr(k protocol.TextDocumentSyncKind) *protocol.TextDocumentSyncKind {
	return &k
}
