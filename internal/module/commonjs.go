package module

import (
	"github.com/oss-emit/tsemit/internal/ast_ctx"
	"github.com/oss-emit/tsemit/internal/js_ast"
	"github.com/oss-emit/tsemit/internal/logger"
)

// FrameCommonJS implements spec.md §4.7's CommonJS envelope: every import
// becomes a require() call bound to that import's namespace symbol, every
// exported binding gets an "exports.name = name;" assignment appended after
// the body, and "export * from" goes through the __exportStar runtime
// helper so re-exported names are visible without enumerating them here.
func FrameCommonJS(ctx *ast_ctx.Context, info Info, loc logger.Loc) []js_ast.Stmt {
	var out []js_ast.Stmt

	for _, imp := range info.Imports {
		out = append(out, importBindingStmts(ctx, imp, requireCall(ctx, imp.Record.Path.Text, loc), loc)...)
	}

	out = append(out, info.Body...)

	for _, se := range info.StarExports {
		call := js_ast.Expr{Loc: loc, Data: &js_ast.ECall{
			Target: js_ast.Expr{Loc: loc, Data: &js_ast.EIdentifier{Ref: ctx.HelperRef("__exportStar")}},
			Args:   []js_ast.Expr{exportsRefExpr(ctx, loc), requireCall(ctx, se.Record.Path.Text, loc)},
		}}
		out = append(out, js_ast.Stmt{Loc: loc, Data: &js_ast.SExpr{Value: call}})
	}

	if info.HasExports {
		out = append(out, exportAssignments(ctx, info.Exports, loc)...)
	}

	return out
}
