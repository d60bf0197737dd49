// Package encode renders IR nodes as canonical text.
//
// The canonical form is idempotent: parsing the output and encoding
// it again reproduces the same bytes. Indentation is one tab per
// level, a top-level map goes without braces, non-empty maps are
// always multiline, and short runs of simple list or variant values
// share one line.
//
//	node := ir.FromMap(map[string]*ir.Node{
//	    "name": ir.FromString("alice"),
//	    "age":  ir.FromInt(30),
//	})
//	err := encode.Encode(node, os.Stdout)
//
// Use options for variations:
//
//	encode.Encode(node, w, encode.EncodeComments(false))
//	encode.Encode(node, w, encode.EncodeColors(encode.NewColors()))
package encode
