package token

import (
	"errors"
)

var (
	ErrBadUTF8        = errors.New("invalid utf-8")
	ErrUnterminated   = errors.New("unterminated string")
	ErrBadEscape      = errors.New("invalid escape")
	ErrBadUnicode     = errors.New("invalid unicode escape")
	ErrUnexpectedChar = errors.New("unexpected character")
)
