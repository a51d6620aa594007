package module

import (
	"github.com/oss-emit/tsemit/internal/ast_ctx"
	"github.com/oss-emit/tsemit/internal/config"
	"github.com/oss-emit/tsemit/internal/helpers"
	"github.com/oss-emit/tsemit/internal/js_ast"
	"github.com/oss-emit/tsemit/internal/logger"
)

// Frame implements spec.md §4.7: it runs Collect over tree's statements and
// hands the result to whichever of the four envelope builders
// ctx.Options.Module selects, replacing tree's parts with the framed
// result. It is the second stage of the pipeline SPEC_FULL.md §4 describes
// (internal/lowering.Lower -> Frame -> internal/js_printer.Print).
func Frame(ctx *ast_ctx.Context, tree js_ast.AST, loc logger.Loc) js_ast.AST {
	var stmts []js_ast.Stmt
	for _, part := range tree.Parts {
		stmts = append(stmts, part.Stmts...)
	}

	if ctx.Options.Module == config.ModuleNone {
		return tree
	}

	info := Collect(ctx, stmts)

	var framed []js_ast.Stmt
	switch ctx.Options.Module {
	case config.ModuleCommonJS:
		framed = FrameCommonJS(ctx, info, loc)
	case config.ModuleAMD:
		framed = FrameAMD(ctx, info, loc)
	case config.ModuleSystem:
		framed = FrameSystem(ctx, info, loc)
	default:
		framed = stmts
	}

	tree.Parts = []js_ast.Part{{Stmts: framed}}
	return tree
}

func requireCall(ctx *ast_ctx.Context, path string, loc logger.Loc) js_ast.Expr {
	return js_ast.Expr{Loc: loc, Data: &js_ast.ECall{
		Target: js_ast.Expr{Loc: loc, Data: &js_ast.EIdentifier{Ref: ctx.GlobalRef("require")}},
		Args:   []js_ast.Expr{{Loc: loc, Data: &js_ast.EString{Value: helpers.StringToUTF16(path)}}},
	}}
}

func exportsRefExpr(ctx *ast_ctx.Context, loc logger.Loc) js_ast.Expr {
	return js_ast.Expr{Loc: loc, Data: &js_ast.EIdentifier{Ref: ctx.GlobalRef("exports")}}
}

// importBindingStmts turns one collected import into the plain-JS
// declarations that bind its namespace symbol to a require()/dependency
// value and, for named/default items, project the individual bindings off
// of it: "var m_1 = require('m'); var y = m_1.y;" (spec.md §4.7).
func importBindingStmts(ctx *ast_ctx.Context, imp ImportInfo, source js_ast.Expr, loc logger.Loc) []js_ast.Stmt {
	out := []js_ast.Stmt{{Loc: loc, Data: &js_ast.SLocal{
		Kind: js_ast.LocalVar,
		Decls: []js_ast.Decl{{
			Binding:    js_ast.Binding{Loc: loc, Data: &js_ast.BIdentifier{Ref: imp.NamespaceRef}},
			ValueOrNil: source,
		}},
	}}}

	nsExpr := js_ast.Expr{Loc: loc, Data: &js_ast.EIdentifier{Ref: imp.NamespaceRef}}

	if imp.DefaultName != nil {
		out = append(out, js_ast.Stmt{Loc: loc, Data: &js_ast.SLocal{
			Kind: js_ast.LocalVar,
			Decls: []js_ast.Decl{{
				Binding: js_ast.Binding{Loc: loc, Data: &js_ast.BIdentifier{Ref: imp.DefaultName.Ref}},
				ValueOrNil: js_ast.Expr{Loc: loc, Data: &js_ast.EDot{
					Target: nsExpr, Name: "default", NameLoc: loc,
				}},
			}},
		}})
	}

	for _, item := range imp.Items {
		out = append(out, js_ast.Stmt{Loc: loc, Data: &js_ast.SLocal{
			Kind: js_ast.LocalVar,
			Decls: []js_ast.Decl{{
				Binding: js_ast.Binding{Loc: loc, Data: &js_ast.BIdentifier{Ref: item.Name.Ref}},
				ValueOrNil: js_ast.Expr{Loc: loc, Data: &js_ast.EDot{
					Target: nsExpr, Name: item.Alias, NameLoc: loc,
				}},
			}},
		}})
	}

	return out
}

func exportAssignments(ctx *ast_ctx.Context, exports []ExportedBinding, loc logger.Loc) []js_ast.Stmt {
	var out []js_ast.Stmt
	for _, e := range exports {
		lhs := js_ast.Expr{Loc: loc, Data: &js_ast.EDot{Target: exportsRefExpr(ctx, loc), Name: e.Alias, NameLoc: loc}}
		rhs := js_ast.Expr{Loc: loc, Data: &js_ast.EIdentifier{Ref: e.Ref}}
		out = append(out, js_ast.AssignStmt(lhs, rhs))
	}
	return out
}
