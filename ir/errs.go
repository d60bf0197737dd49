package ir

import (
	"errors"
)

var (
	ErrNumber = errors.New("invalid number")
)
