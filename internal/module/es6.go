package module

import "github.com/oss-emit/tsemit/internal/js_ast"

// FrameES6 is the identity envelope: spec.md §4.7 says a file targeting
// config.ModuleNone keeps its import/export statements exactly as parsed,
// so internal/js_printer prints them directly. Frame short-circuits before
// ever calling this, since there is nothing to collect or rewrite, but the
// function is kept as the explicit fourth envelope alongside
// FrameCommonJS/FrameAMD/FrameSystem for anything that wants to invoke the
// four envelopes uniformly.
func FrameES6(stmts []js_ast.Stmt) []js_ast.Stmt {
	return stmts
}
