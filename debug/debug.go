// Package debug holds env-gated trace switches for the diff engine.
package debug

import (
	"fmt"
	"os"
	"strconv"
)

type debug struct {
	Diff bool
	Keys bool
}

var d *debug

func init() {
	d = &debug{}
	d.Diff = boolEnv("XCMAPDIFF_DEBUG_DIFF")
	d.Keys = boolEnv("XCMAPDIFF_DEBUG_KEYS")
}

func boolEnv(v string) bool {
	x := os.Getenv(v)
	if x == "" {
		return false
	}
	b, _ := strconv.ParseBool(x)
	return b
}

func Diff() bool {
	return d.Diff
}
func Keys() bool {
	return d.Keys
}

func Logf(msg string, args ...any) {
	fmt.Fprintf(os.Stderr, msg, args...)
}
