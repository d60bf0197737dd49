// Package debug holds process-wide debug switches, set from the
// environment at startup.
package debug

import (
	"fmt"
	"os"
	"strconv"
)

type debug struct {
	Tokens bool
	Parse  bool
}

var d *debug

func init() {
	d = &debug{}
	d.Tokens = boolEnv("EON_DEBUG_TOKENS")
	d.Parse = boolEnv("EON_DEBUG_PARSE")
}

func boolEnv(v string) bool {
	x := os.Getenv(v)
	if x == "" {
		return false
	}
	b, _ := strconv.ParseBool(x)
	return b
}

// Tokens reports whether the token stream should be dumped before
// parsing (EON_DEBUG_TOKENS).
func Tokens() bool {
	return d.Tokens
}

// Parse reports whether top-level parse decisions should be logged
// (EON_DEBUG_PARSE).
func Parse() bool {
	return d.Parse
}

func Logf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
}
