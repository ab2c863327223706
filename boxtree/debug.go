package boxtree

import "fmt"

// debugEnabled mirrors willow's globalDebug switch: off by default
// (silent no-ops in production), settable for development builds where
// programmer misuse should panic instead of being swallowed.
var debugEnabled bool

// SetDebug toggles debug-mode assertions for the whole package. Disabled
// by default, matching willow's production-mode default.
func SetDebug(enabled bool) {
	debugEnabled = enabled
}

// debugAssert panics with a descriptive message when cond is false and
// debug mode is enabled. No-op otherwise.
func debugAssert(cond bool, format string, args ...any) {
	if debugEnabled && !cond {
		panic(fmt.Sprintf("boxtree: "+format, args...))
	}
}
