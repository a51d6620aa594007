package module

import (
	"github.com/oss-emit/tsemit/internal/ast_ctx"
	"github.com/oss-emit/tsemit/internal/helpers"
	"github.com/oss-emit/tsemit/internal/js_ast"
	"github.com/oss-emit/tsemit/internal/logger"
)

// FrameAMD implements spec.md §4.7's AMD envelope:
//
//	define(["require", "exports", "m"], function (require, exports, m_1) {
//	  var y = m_1.y;
//	  ...body...
//	  exports.x = x;
//	});
//
// ctx.Options.AMDDependencies supplies the fixed leading dependency list
// (typically "require"/"exports"); every statically detected import is
// appended after those, one dependency and one factory parameter per
// imported module. ctx.Options.ModuleName, when set, is passed as an extra
// leading string argument to define() so the loader can register the
// module under a known id instead of deriving one from the request path.
func FrameAMD(ctx *ast_ctx.Context, info Info, loc logger.Loc) []js_ast.Stmt {
	var depStrings []js_ast.Expr
	var params []js_ast.Arg

	for _, dep := range ctx.Options.AMDDependencies {
		depStrings = append(depStrings, strExpr(dep, loc))
		params = append(params, js_ast.Arg{Binding: js_ast.Binding{Loc: loc, Data: &js_ast.BIdentifier{Ref: ctx.GlobalRef(dep)}}})
	}

	for _, imp := range info.Imports {
		depStrings = append(depStrings, strExpr(imp.Record.Path.Text, loc))
		params = append(params, js_ast.Arg{Binding: js_ast.Binding{Loc: loc, Data: &js_ast.BIdentifier{Ref: imp.NamespaceRef}}})
	}
	for _, se := range info.StarExports {
		depStrings = append(depStrings, strExpr(se.Record.Path.Text, loc))
		params = append(params, js_ast.Arg{Binding: js_ast.Binding{Loc: loc, Data: &js_ast.BIdentifier{Ref: se.NamespaceRef}}})
	}

	var body []js_ast.Stmt
	for _, imp := range info.Imports {
		nsExpr := js_ast.Expr{Loc: loc, Data: &js_ast.EIdentifier{Ref: imp.NamespaceRef}}
		body = append(body, importProjectionStmts(imp, nsExpr, loc)...)
	}
	body = append(body, info.Body...)

	// "export * from" has no factory-parameter equivalent of its own: the
	// re-exported names aren't known until the dependency's module object is
	// available, which is exactly what its factory parameter already is, so
	// it's projected through __exportStar the same way FrameCommonJS does.
	for _, se := range info.StarExports {
		nsExpr := js_ast.Expr{Loc: loc, Data: &js_ast.EIdentifier{Ref: se.NamespaceRef}}
		call := js_ast.Expr{Loc: loc, Data: &js_ast.ECall{
			Target: js_ast.Expr{Loc: loc, Data: &js_ast.EIdentifier{Ref: ctx.HelperRef("__exportStar")}},
			Args:   []js_ast.Expr{exportsRefExpr(ctx, loc), nsExpr},
		}}
		body = append(body, js_ast.Stmt{Loc: loc, Data: &js_ast.SExpr{Value: call}})
	}

	if info.HasExports {
		body = append(body, exportAssignments(ctx, info.Exports, loc)...)
	}

	factory := js_ast.Expr{Loc: loc, Data: &js_ast.EFunction{Fn: js_ast.Fn{
		Args: params,
		Body: js_ast.FnBody{Loc: loc, Stmts: body},
	}}}

	callArgs := []js_ast.Expr{{Loc: loc, Data: &js_ast.EArray{Items: depStrings}}, factory}
	if ctx.Options.ModuleName != "" {
		callArgs = append([]js_ast.Expr{strExpr(ctx.Options.ModuleName, loc)}, callArgs...)
	}

	call := js_ast.Expr{Loc: loc, Data: &js_ast.ECall{
		Target: js_ast.Expr{Loc: loc, Data: &js_ast.EIdentifier{Ref: ctx.GlobalRef("define")}},
		Args:   callArgs,
	}}
	return []js_ast.Stmt{{Loc: loc, Data: &js_ast.SExpr{Value: call}}}
}

func strExpr(s string, loc logger.Loc) js_ast.Expr {
	return js_ast.Expr{Loc: loc, Data: &js_ast.EString{Value: helpers.StringToUTF16(s)}}
}

// importProjectionStmts binds an import's default/named items off of an
// already-resolved module value (the AMD factory parameter itself, so
// unlike importBindingStmts there is no separate require() call to make).
func importProjectionStmts(imp ImportInfo, source js_ast.Expr, loc logger.Loc) []js_ast.Stmt {
	var out []js_ast.Stmt
	if imp.DefaultName != nil {
		out = append(out, js_ast.Stmt{Loc: loc, Data: &js_ast.SLocal{
			Kind: js_ast.LocalVar,
			Decls: []js_ast.Decl{{
				Binding:    js_ast.Binding{Loc: loc, Data: &js_ast.BIdentifier{Ref: imp.DefaultName.Ref}},
				ValueOrNil: js_ast.Expr{Loc: loc, Data: &js_ast.EDot{Target: source, Name: "default", NameLoc: loc}},
			}},
		}})
	}
	for _, item := range imp.Items {
		out = append(out, js_ast.Stmt{Loc: loc, Data: &js_ast.SLocal{
			Kind: js_ast.LocalVar,
			Decls: []js_ast.Decl{{
				Binding:    js_ast.Binding{Loc: loc, Data: &js_ast.BIdentifier{Ref: item.Name.Ref}},
				ValueOrNil: js_ast.Expr{Loc: loc, Data: &js_ast.EDot{Target: source, Name: item.Alias, NameLoc: loc}},
			}},
		}})
	}
	return out
}
