package main

import (
	"bytes"
	"context"
	"strings"

	"github.com/eon-format/go-eon"
	"github.com/eon-format/go-eon/encode"

	"go.lsp.dev/protocol"
)

// Formatting rewrites the whole document in canonical form.
func (s *Server) Formatting(ctx context.Context, params *protocol.DocumentFormattingParams) ([]protocol.TextEdit, error) {
	doc := s.docs.get(string(params.TextDocument.URI))
	if doc == nil || doc.err != nil || doc.node == nil {
		return nil, nil
	}
	var opts []encode.EncodeOption
	if params.Options.InsertSpaces {
		opts = append(opts, encode.EncodeIndent(strings.Repeat(" ", int(params.Options.TabSize))))
	}
	out, err := eon.Format(doc.node, opts...)
	if err != nil {
		return nil, nil
	}
	if bytes.Equal(out, doc.content) {
		return nil, nil
	}
	return []protocol.TextEdit{{
		Range:   fullRange(doc.content),
		NewText: string(out),
	}}, nil
}

func fullRange(src []byte) protocol.Range {
	lines := bytes.Count(src, []byte("\n"))
	last := src
	if i := bytes.LastIndexByte(src, '\n'); i >= 0 {
		last = src[i+1:]
	}
	return protocol.Range{
		Start: protocol.Position{Line: 0, Character: 0},
		End:   protocol.Position{Line: uint32(lines), Character: uint32(len(last))},
	}
}
