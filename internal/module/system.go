package module

import (
	"github.com/oss-emit/tsemit/internal/ast_ctx"
	"github.com/oss-emit/tsemit/internal/js_ast"
	"github.com/oss-emit/tsemit/internal/logger"
)

// FrameSystem implements spec.md §4.7's System.register envelope, the
// target of §8 scenario #6: "export let x = 1; import {y} from "m";"
// becomes
//
//	System.register(["m"], function (exports_1) {
//	  var y, x;
//	  return {
//	    setters: [function (v) { y = v.y; }],
//	    execute: function () {
//	      exports_1("x", x = 1);
//	    }
//	  };
//	});
//
// Every top-level binding (whether imported or locally declared) is hoisted
// into a bare "var" declaration in the factory body; imports are populated
// by the matching setter when the loader resolves that dependency, and
// every assignment to an exported binding is wrapped in a call to the
// factory's exports_1 parameter so live-binding reads on the other side of
// an import see the update.
func FrameSystem(ctx *ast_ctx.Context, info Info, loc logger.Loc) []js_ast.Stmt {
	if len(info.StarExports) > 0 {
		// Unlike the CommonJS/AMD envelopes, System.register can't project
		// "export * from" through a single runtime call: the re-exported
		// names have to be broadcast through exports_1 individually, which
		// means knowing the dependency's export list before its setter ever
		// runs. Nothing upstream of the Module Framer resolves another
		// module's exports at compile time, so this is dropped rather than
		// silently emitted half-working.
		ctx.AddWarningWithID(loc, logger.MsgID_Module_UnsupportedEnvelopeOption,
			"\"export * from\" is not supported when framing for System.register and was dropped")
	}

	exportsParamRef := ctx.NewSymbol(js_ast.SymbolHoisted, "exports_1")

	var hoisted []js_ast.Ref
	var deps []js_ast.Expr
	var setters []js_ast.Expr

	for _, imp := range info.Imports {
		deps = append(deps, strExpr(imp.Record.Path.Text, loc))
		vParam := ctx.NewSymbol(js_ast.SymbolHoisted, "v")
		vExpr := js_ast.Expr{Loc: loc, Data: &js_ast.EIdentifier{Ref: vParam}}

		var setterBody []js_ast.Stmt
		if imp.DefaultName != nil {
			hoisted = append(hoisted, imp.DefaultName.Ref)
			setterBody = append(setterBody, js_ast.AssignStmt(
				js_ast.Expr{Loc: loc, Data: &js_ast.EIdentifier{Ref: imp.DefaultName.Ref}},
				js_ast.Expr{Loc: loc, Data: &js_ast.EDot{Target: vExpr, Name: "default", NameLoc: loc}},
			))
		}
		for _, item := range imp.Items {
			hoisted = append(hoisted, item.Name.Ref)
			setterBody = append(setterBody, js_ast.AssignStmt(
				js_ast.Expr{Loc: loc, Data: &js_ast.EIdentifier{Ref: item.Name.Ref}},
				js_ast.Expr{Loc: loc, Data: &js_ast.EDot{Target: vExpr, Name: item.Alias, NameLoc: loc}},
			))
		}
		if imp.DefaultName == nil && len(imp.Items) == 0 {
			hoisted = append(hoisted, imp.NamespaceRef)
			setterBody = append(setterBody, js_ast.AssignStmt(
				js_ast.Expr{Loc: loc, Data: &js_ast.EIdentifier{Ref: imp.NamespaceRef}},
				vExpr,
			))
		}

		setters = append(setters, js_ast.Expr{Loc: loc, Data: &js_ast.EFunction{Fn: js_ast.Fn{
			Args: []js_ast.Arg{{Binding: js_ast.Binding{Loc: loc, Data: &js_ast.BIdentifier{Ref: vParam}}}},
			Body: js_ast.FnBody{Loc: loc, Stmts: setterBody},
		}}})
	}

	var execute []js_ast.Stmt
	for _, stmt := range info.Body {
		local, ok := stmt.Data.(*js_ast.SLocal)
		if !ok {
			execute = append(execute, stmt)
			continue
		}
		for _, decl := range local.Decls {
			ident, ok := decl.Binding.Data.(*js_ast.BIdentifier)
			if !ok {
				execute = append(execute, js_ast.Stmt{Loc: stmt.Loc, Data: &js_ast.SLocal{Kind: js_ast.LocalVar, Decls: []js_ast.Decl{decl}}})
				continue
			}
			hoisted = append(hoisted, ident.Ref)
			if decl.ValueOrNil.Data != nil {
				execute = append(execute, systemAssignStmt(exportsParamRef, info.Exports, ident.Ref, decl.ValueOrNil, stmt.Loc))
			}
		}
	}

	var factoryBody []js_ast.Stmt
	if len(hoisted) > 0 {
		decls := make([]js_ast.Decl, len(hoisted))
		for i, ref := range hoisted {
			decls[i] = js_ast.Decl{Binding: js_ast.Binding{Loc: loc, Data: &js_ast.BIdentifier{Ref: ref}}}
		}
		factoryBody = append(factoryBody, js_ast.Stmt{Loc: loc, Data: &js_ast.SLocal{Kind: js_ast.LocalVar, Decls: decls}})
	}

	settersAndExecute := js_ast.Expr{Loc: loc, Data: &js_ast.EObject{Properties: []js_ast.Property{
		{Key: strExpr("setters", loc), ValueOrNil: js_ast.Expr{Loc: loc, Data: &js_ast.EArray{Items: setters}}},
		{Key: strExpr("execute", loc), ValueOrNil: js_ast.Expr{Loc: loc, Data: &js_ast.EFunction{Fn: js_ast.Fn{
			Body: js_ast.FnBody{Loc: loc, Stmts: execute},
		}}}},
	}}}
	factoryBody = append(factoryBody, js_ast.Stmt{Loc: loc, Data: &js_ast.SReturn{ValueOrNil: settersAndExecute}})

	factory := js_ast.Expr{Loc: loc, Data: &js_ast.EFunction{Fn: js_ast.Fn{
		Args: []js_ast.Arg{{Binding: js_ast.Binding{Loc: loc, Data: &js_ast.BIdentifier{Ref: exportsParamRef}}}},
		Body: js_ast.FnBody{Loc: loc, Stmts: factoryBody},
	}}}

	registerCall := js_ast.Expr{Loc: loc, Data: &js_ast.ECall{
		Target: js_ast.Expr{Loc: loc, Data: &js_ast.EDot{
			Target: js_ast.Expr{Loc: loc, Data: &js_ast.EIdentifier{Ref: ctx.GlobalRef("System")}},
			Name:   "register", NameLoc: loc,
		}},
		Args: []js_ast.Expr{{Loc: loc, Data: &js_ast.EArray{Items: deps}}, factory},
	}}

	return []js_ast.Stmt{{Loc: loc, Data: &js_ast.SExpr{Value: registerCall}}}
}

// systemAssignStmt wraps an exported binding's assignment in a call to the
// factory's exports_1 parameter so every other module's setter observes the
// new value; a non-exported local assignment is left as a plain statement.
func systemAssignStmt(exportsParamRef js_ast.Ref, exports []ExportedBinding, ref js_ast.Ref, value js_ast.Expr, loc logger.Loc) js_ast.Stmt {
	assign := js_ast.Assign(js_ast.Expr{Loc: loc, Data: &js_ast.EIdentifier{Ref: ref}}, value)

	for _, e := range exports {
		if e.Ref == ref {
			call := js_ast.Expr{Loc: loc, Data: &js_ast.ECall{
				Target: js_ast.Expr{Loc: loc, Data: &js_ast.EIdentifier{Ref: exportsParamRef}},
				Args:   []js_ast.Expr{strExpr(e.Alias, loc), assign},
			}}
			return js_ast.Stmt{Loc: loc, Data: &js_ast.SExpr{Value: call}}
		}
	}
	return js_ast.Stmt{Loc: loc, Data: &js_ast.SExpr{Value: assign}}
}
