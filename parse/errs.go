package parse

import (
	"errors"
	"fmt"

	"github.com/eon-format/go-eon/token"
)

var (
	// ErrParse matches every error returned by this package.
	ErrParse = errors.New("parse error")

	ErrUnexpectedToken = errors.New("unexpected token")
	ErrUnexpectedEOF   = errors.New("unexpected end of input")
	ErrNestingTooDeep  = errors.New("nesting too deep")
	ErrDuplicateKey    = errors.New("duplicate key in map")
)

// Error is a parse error with its source position. Err is one of the
// sentinels above, or one of the token package's lexical sentinels
// when tokenization failed.
type Error struct {
	Err error
	Msg string
	Pos token.Pos
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s at %s", e.Msg, e.Pos.String())
}

func (e *Error) Unwrap() error {
	return e.Err
}

func (e *Error) Is(target error) bool {
	return target == ErrParse
}

// Offset returns the byte offset of the error in the source.
func (e *Error) Offset() int {
	return e.Pos.I
}

// LineCol returns the 0-based line and column of the error.
func (e *Error) LineCol() (int, int) {
	return e.Pos.LineCol()
}

func errAt(sentinel error, pos *token.Pos, msg string) *Error {
	return &Error{Err: sentinel, Msg: msg, Pos: *pos}
}
