package main

import (
	"errors"
	"fmt"
	"net/url"
	"sync"

	"github.com/pipe01/cddl/internal/lexer"
	"github.com/pipe01/cddl/internal/parser/ast"
	"github.com/pipe01/cddl/internal/workspace"
	"github.com/tliron/commonlog"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
	"github.com/tliron/glsp/server"

	_ "github.com/tliron/commonlog/simple"
)

const lsName = "cddl"

var version string = "0.1.0"
var handler protocol.Handler

var log = commonlog.GetLogger("cddl.lsp")

type document struct {
	text string

	// assignments holds the last version of the document that parsed.
	assignments []ast.Assignment
}

var (
	documentsMu sync.Mutex
	documents   = map[string]*document{}

	ws = workspace.New("/")
)

type SituatedErr interface {
	Unwrap() error
	At() lexer.Location
}

func main() {
	commonlog.Configure(1, nil)

	protocol.SetTraceValue(protocol.TraceValueMessage)

	handler = protocol.Handler{
		Initialize:  initialize,
		Initialized: initialized,
		Shutdown:    shutdown,
		SetTrace:    setTrace,
		TextDocumentDidOpen: func(context *glsp.Context, params *protocol.DidOpenTextDocumentParams) error {
			documentsMu.Lock()
			documents[params.TextDocument.URI] = &document{text: params.TextDocument.Text}
			documentsMu.Unlock()

			return handleDocument(context, params.TextDocument.URI)
		},
		TextDocumentDidChange: func(context *glsp.Context, params *protocol.DidChangeTextDocumentParams) error {
			documentsMu.Lock()
			doc, ok := documents[params.TextDocument.URI]
			if ok {
				for _, change := range params.ContentChanges {
					switch change := change.(type) {
					case protocol.TextDocumentContentChangeEventWhole:
						doc.text = change.Text

					case protocol.TextDocumentContentChangeEvent:
						startIndex, endIndex := change.Range.IndexesIn(doc.text)
						doc.text = doc.text[:startIndex] + change.Text + doc.text[endIndex:]
					}
				}
			}
			documentsMu.Unlock()

			if !ok {
				return nil
			}

			return handleDocument(context, params.TextDocument.URI)
		},
		TextDocumentDidClose: func(context *glsp.Context, params *protocol.DidCloseTextDocumentParams) error {
			documentsMu.Lock()
			delete(documents, params.TextDocument.URI)
			documentsMu.Unlock()

			if path, err := documentPath(params.TextDocument.URI); err == nil {
				ws.Forget(path)
			}

			context.Notify(protocol.ServerTextDocumentPublishDiagnostics, &protocol.PublishDiagnosticsParams{
				URI:         params.TextDocument.URI,
				Diagnostics: []protocol.Diagnostic{},
			})

			return nil
		},
		TextDocumentDocumentSymbol: func(context *glsp.Context, params *protocol.DocumentSymbolParams) (any, error) {
			documentsMu.Lock()
			defer documentsMu.Unlock()

			doc, ok := documents[params.TextDocument.URI]
			if !ok {
				return nil, fmt.Errorf("document %q not found", params.TextDocument.URI)
			}

			return documentSymbols(doc.assignments), nil
		},
	}

	server := server.NewServer(&handler, lsName, false)

	server.RunStdio()
}

func documentPath(docURI string) (string, error) {
	url, err := url.Parse(docURI)
	if err != nil {
		return "", fmt.Errorf("parse document uri: %w", err)
	}
	if url.Scheme != "file" {
		return "", fmt.Errorf("invalid document uri scheme %q", url.Scheme)
	}

	return url.Path, nil
}

func handleDocument(context *glsp.Context, docURI string) error {
	filePath, err := documentPath(docURI)
	if err != nil {
		return err
	}

	documentsMu.Lock()
	doc, ok := documents[docURI]
	var contents string
	if ok {
		contents = doc.text
	}
	documentsMu.Unlock()

	if !ok {
		return nil
	}

	as, err := ws.LoadWithContents(filePath, []byte(contents))
	if err == nil {
		documentsMu.Lock()
		doc.assignments = as
		documentsMu.Unlock()
	} else {
		log.Debugf("%s: %s", filePath, err)
	}

	context.Notify(protocol.ServerTextDocumentPublishDiagnostics, &protocol.PublishDiagnosticsParams{
		URI:         docURI,
		Diagnostics: diagnostics(err),
	})

	return nil
}

// diagnostics converts a load error into diagnostics. A nil error clears them.
func diagnostics(err error) []protocol.Diagnostic {
	diag := []protocol.Diagnostic{}

	if err == nil {
		return diag
	}

	var poserr SituatedErr

	if errors.As(err, &poserr) {
		diag = append(diag, protocol.Diagnostic{
			Range: protocol.Range{
				Start: pos(poserr.At()),
				End:   pos(poserr.At()),
			},
			Severity: ptr(protocol.DiagnosticSeverityError),
			Source:   ptr(lsName),
			Message:  poserr.Unwrap().Error(),
		})
	} else {
		diag = append(diag, protocol.Diagnostic{
			Severity: ptr(protocol.DiagnosticSeverityError),
			Source:   ptr(lsName),
			Message:  err.Error(),
		})
	}

	return diag
}

func initialize(context *glsp.Context, params *protocol.InitializeParams) (any, error) {
	capabilities := handler.CreateServerCapabilities()

	return protocol.InitializeResult{
		Capabilities: capabilities,
		ServerInfo: &protocol.InitializeResultServerInfo{
			Name:    lsName,
			Version: &version,
		},
	}, nil
}

func initialized(context *glsp.Context, params *protocol.InitializedParams) error {
	return nil
}

func shutdown(context *glsp.Context) error {
	protocol.SetTraceValue(protocol.TraceValueOff)
	return nil
}

func setTrace(context *glsp.Context, params *protocol.SetTraceParams) error {
	protocol.SetTraceValue(params.Value)
	return nil
}

func ptr[T any](v T) *T {
	return &v
}
