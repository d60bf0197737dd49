// Package parse turns source text into ir.Node trees with a
// recursive descent parser.
//
// The top level of a document is usually the contents of a map
// without surrounding braces. When that reading fails, the source is
// reparsed as the contents of a list; a document holding exactly one
// value stands for that value. Whichever reading consumed more input
// decides which error is reported.
//
// Commas between entries are optional. Map keys may be values of any
// type, and a key structurally equal to an earlier key in the same
// map is an error. Comments attach to the nearest node: leading lines
// above it, a trailing remark on its line, and otherwise to the
// enclosing container's closing delimiter.
//
// All errors returned by the package match ErrParse and carry the
// byte offset, line, and column of the offending token.
package parse
