package main

import (
	"bytes"
	"context"
	"fmt"

	"github.com/eon-format/go-eon/encode"
	"github.com/eon-format/go-eon/ir"
	"github.com/eon-format/go-eon/token"

	"go.lsp.dev/protocol"
)

// Hover reports the kind and decoded value of the token under the
// cursor. Hex and binary numbers show their decimal value, strings
// their unescaped text.
func (s *Server) Hover(ctx context.Context, params *protocol.HoverParams) (*protocol.Hover, error) {
	doc := s.docs.get(string(params.TextDocument.URI))
	if doc == nil {
		return nil, nil
	}
	off := offsetAt(doc.content, int(params.Position.Line), int(params.Position.Character))
	toks, err := token.Tokenize(nil, doc.content)
	if err != nil {
		return nil, nil
	}
	for i := range toks {
		t := &toks[i]
		if off < t.Pos.I || off >= t.End {
			continue
		}
		text := hoverText(t)
		if text == "" {
			return nil, nil
		}
		return &protocol.Hover{
			Contents: protocol.MarkupContent{
				Kind:  protocol.Markdown,
				Value: text,
			},
		}, nil
	}
	return nil, nil
}

func offsetAt(src []byte, line, col int) int {
	off := 0
	for l := 0; l < line; l++ {
		i := bytes.IndexByte(src[off:], '\n')
		if i < 0 {
			return len(src)
		}
		off += i + 1
	}
	off += col
	if off > len(src) {
		off = len(src)
	}
	return off
}

func hoverText(t *token.Token) string {
	switch t.Type {
	case token.TNumber:
		n, err := ir.ParseNumber(string(t.Bytes))
		if err != nil {
			return ""
		}
		lit := string(t.Bytes)
		n.Number = ""
		dec := encode.MustString(n)
		if dec == lit {
			return fmt.Sprintf("**number** `%s`", lit)
		}
		return fmt.Sprintf("**number** `%s` = `%s`", lit, dec)
	case token.TString, token.TLiteral, token.TMString, token.TMLit:
		v := t.String()
		if len(v) > 80 {
			v = v[:80] + "..."
		}
		return fmt.Sprintf("**%s**\n\n```\n%s\n```", t.Type, v)
	case token.TIdent:
		switch string(t.Bytes) {
		case "true", "false":
			return "**boolean**"
		case "null":
			return "**null**"
		}
		return "**key**"
	default:
		return ""
	}
}
