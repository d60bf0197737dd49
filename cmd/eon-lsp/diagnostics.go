package main

import (
	"context"
	"errors"

	"github.com/eon-format/go-eon/parse"

	"go.lsp.dev/protocol"
)

func (s *Server) publishDiagnostics(ctx context.Context, uri protocol.DocumentURI, doc *document) error {
	diags := []protocol.Diagnostic{}
	if doc.err != nil {
		diags = append(diags, diagnostic(doc.err))
	}
	return s.conn.Notify(ctx, protocol.MethodTextDocumentPublishDiagnostics,
		&protocol.PublishDiagnosticsParams{
			URI:         uri,
			Diagnostics: diags,
		})
}

func diagnostic(err error) protocol.Diagnostic {
	d := protocol.Diagnostic{
		Severity: protocol.DiagnosticSeverityError,
		Source:   "eon",
		Message:  err.Error(),
	}
	var pe *parse.Error
	if errors.As(err, &pe) {
		line, col := pe.LineCol()
		d.Message = pe.Msg
		d.Range = protocol.Range{
			Start: protocol.Position{Line: uint32(line), Character: uint32(col)},
			End:   protocol.Position{Line: uint32(line), Character: uint32(col + 1)},
		}
	}
	return d
}
