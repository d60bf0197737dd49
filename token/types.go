package token

import (
	"fmt"
)

type TokenType int

const (
	TLCurl TokenType = iota
	TRCurl
	TLSquare
	TRSquare
	TLParen
	TRParen
	TColon
	TComma
	TComment
	TIdent
	TNumber
	TString  // "basic"
	TLiteral // 'literal'
	TMString // """multiline basic"""
	TMLit    // '''multiline literal'''
)

func (t TokenType) String() string {
	return map[TokenType]string{
		TLCurl:   "open brace '{'",
		TRCurl:   "close brace '}'",
		TLSquare: "open bracket '['",
		TRSquare: "close bracket ']'",
		TLParen:  "open parenthesis '('",
		TRParen:  "close parenthesis ')'",
		TColon:   "colon ':'",
		TComma:   "comma ','",
		TComment: "comment",
		TIdent:   "identifier",
		TNumber:  "number",
		TString:  "basic string",
		TLiteral: "literal string",
		TMString: "multiline basic string",
		TMLit:    "multiline literal string",
	}[t]
}

// IsString reports whether t is one of the four string flavors.
func (t TokenType) IsString() bool {
	switch t {
	case TString, TLiteral, TMString, TMLit:
		return true
	default:
		return false
	}
}

// Token is a single lexeme with its source span. Bytes is the raw
// source slice, including quotes and comment slashes.
type Token struct {
	Type  TokenType
	Pos   *Pos
	End   int // byte offset just past the token
	Bytes []byte
}

func (t *Token) Info() string {
	return fmt.Sprintf("%s %s", t.Type, t.Pos.String())
}

// String returns the decoded text of the token. For string tokens the
// quotes are removed and, for the basic flavors, escapes are processed.
func (t *Token) String() string {
	switch t.Type {
	case TString:
		return QuotedToString(t.Bytes)
	case TLiteral:
		return string(t.Bytes[1 : len(t.Bytes)-1])
	case TMString:
		return mStringToString(t.Bytes)
	case TMLit:
		return mLitToString(t.Bytes)
	default:
		return string(t.Bytes)
	}
}

type TokenizeErr struct {
	Err error
	Pos Pos
}

func NewTokenizeErr(e error, p *Pos) *TokenizeErr {
	return &TokenizeErr{Err: e, Pos: *p}
}

func (e *TokenizeErr) Unwrap() error {
	return e.Err
}

func (e *TokenizeErr) Error() string {
	return fmt.Sprintf("%s at %s", e.Err.Error(), e.Pos.String())
}
