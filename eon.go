// Package eon reads, writes, and reformats eon documents.
//
// Eon is a human-editable configuration format: maps with optional
// commas and unquoted keys, lists, strings in four flavors, numbers
// with hex and binary spellings, and named variants like "Rgb"(1, 2, 3).
// Comments are part of a document and survive reformatting.
//
// Parse keeps comments; ParseValue strips them. Format renders the
// canonical form, which is idempotent: formatting already formatted
// text changes nothing.
package eon

import (
	"bytes"

	"github.com/eon-format/go-eon/encode"
	"github.com/eon-format/go-eon/ir"
	"github.com/eon-format/go-eon/parse"
)

// Error kinds, re-exported for callers who don't import parse.
var (
	ErrParse          = parse.ErrParse
	ErrDuplicateKey   = parse.ErrDuplicateKey
	ErrNestingTooDeep = parse.ErrNestingTooDeep
)

// Parse parses a document, comments included.
func Parse(src []byte) (*ir.Node, error) {
	return parse.Parse(src)
}

// ParseValue parses a document down to its pure value, without
// comment attachments.
func ParseValue(src []byte) (*ir.Node, error) {
	return parse.Parse(src, parse.WithComments(false))
}

// Format renders a node in canonical form.
func Format(node *ir.Node, opts ...encode.EncodeOption) ([]byte, error) {
	var buf bytes.Buffer
	if err := encode.Encode(node, &buf, opts...); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// FormatValue renders a node without its comments.
func FormatValue(node *ir.Node, opts ...encode.EncodeOption) ([]byte, error) {
	return Format(node, append(opts, encode.EncodeComments(false))...)
}

// Reformat parses src and renders it back in canonical form,
// preserving comments.
func Reformat(src []byte, opts ...encode.EncodeOption) ([]byte, error) {
	node, err := parse.Parse(src)
	if err != nil {
		return nil, err
	}
	return Format(node, opts...)
}
