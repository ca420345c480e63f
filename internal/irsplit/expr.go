// Package irsplit implements IRSplitCombine, the core transform between PKG
// control JSON and the IR tree plus editor-state sidecar (spec §4.3).
package irsplit

import "strings"

// NormalizeExpr applies the LF normalization every expression stored in IR
// undergoes: CRLF and CR collapse to LF, then leading whitespace is
// trimmed (spec §4.3 step 5, design note "LF normalization").
func NormalizeExpr(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\r", "\n")
	return strings.TrimLeft(s, " \t\n")
}
