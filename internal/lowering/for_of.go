package lowering

import (
	"github.com/oss-emit/tsemit/internal/ast_ctx"
	"github.com/oss-emit/tsemit/internal/js_ast"
	"github.com/oss-emit/tsemit/internal/logger"
	"github.com/oss-emit/tsemit/internal/namegen"
)

// LowerForOf implements spec.md §4.6's for-of lowering, the target of §8
// scenario #2: "for (let v of [10,20]) log(v);" at ES5 becomes
//
//	for (var _i = 0, _a = [10, 20]; _i < _a.length; _i++) {
//	  var v = _a[_i];
//	  log(v);
//	}
//
// When the iterable is already a plain identifier, the "_a" temporary is
// elided and the identifier is indexed directly, matching what a hand
// written indexed loop over that variable would look like.
func LowerForOf(ctx *ast_ctx.Context, s *js_ast.SForOf, loc logger.Loc) js_ast.Stmt {
	indexRef := ctx.NewSymbol(js_ast.SymbolHoisted, ctx.NameGen.TempName(namegen.TempNameIndex))

	arrExpr, initDecls := forOfArrayExpr(ctx, s.Value, indexRef, loc)

	test := js_ast.Expr{Loc: loc, Data: &js_ast.EBinary{
		Op:   js_ast.BinOpLt,
		Left: js_ast.Expr{Loc: loc, Data: &js_ast.EIdentifier{Ref: indexRef}},
		Right: js_ast.Expr{Loc: loc, Data: &js_ast.EDot{
			Target: arrExpr, Name: "length", NameLoc: loc,
		}},
	}}
	update := js_ast.Expr{Loc: loc, Data: &js_ast.EUnary{
		Op:    js_ast.UnOpPostInc,
		Value: js_ast.Expr{Loc: loc, Data: &js_ast.EIdentifier{Ref: indexRef}},
	}}

	bodyStmts := []js_ast.Stmt{elementBindingStmt(ctx, s.Init, arrExpr, indexRef, loc)}
	if block, ok := s.Body.Data.(*js_ast.SBlock); ok {
		bodyStmts = append(bodyStmts, block.Stmts...)
	} else {
		bodyStmts = append(bodyStmts, s.Body)
	}

	return js_ast.Stmt{Loc: loc, Data: &js_ast.SFor{
		InitOrNil:   js_ast.Stmt{Loc: loc, Data: &js_ast.SLocal{Kind: js_ast.LocalVar, Decls: initDecls}},
		TestOrNil:   test,
		UpdateOrNil: update,
		Body:        js_ast.Stmt{Loc: loc, Data: &js_ast.SBlock{Stmts: bodyStmts}},
	}}
}

// forOfArrayExpr returns the expression the loop indexes into, plus the
// declarations that belong in the for-loop's init clause. If value is
// already a bare identifier it's reused directly and no "_a" temp is
// declared; otherwise a fresh temp is declared and initialized to value.
func forOfArrayExpr(ctx *ast_ctx.Context, value js_ast.Expr, indexRef js_ast.Ref, loc logger.Loc) (js_ast.Expr, []js_ast.Decl) {
	indexDecl := js_ast.Decl{
		Binding:    js_ast.Binding{Loc: loc, Data: &js_ast.BIdentifier{Ref: indexRef}},
		ValueOrNil: js_ast.Expr{Loc: loc, Data: &js_ast.ENumber{Value: 0}},
	}

	if ident, ok := value.Data.(*js_ast.EIdentifier); ok {
		return js_ast.Expr{Loc: loc, Data: &js_ast.EIdentifier{Ref: ident.Ref}}, []js_ast.Decl{indexDecl}
	}

	arrRef := ctx.NewSymbol(js_ast.SymbolHoisted, ctx.NameGen.TempName(namegen.TempNameAny))
	arrDecl := js_ast.Decl{
		Binding:    js_ast.Binding{Loc: loc, Data: &js_ast.BIdentifier{Ref: arrRef}},
		ValueOrNil: value,
	}
	return js_ast.Expr{Loc: loc, Data: &js_ast.EIdentifier{Ref: arrRef}}, []js_ast.Decl{indexDecl, arrDecl}
}

// elementBindingStmt builds "var v = arr[_i];" from the for-of statement's
// original loop-variable declaration (init is an SLocal of any kind whose
// first Decl's binding is the loop pattern, or a SExpr for "for (x of ...)"
// assigning into an existing binding).
func elementBindingStmt(ctx *ast_ctx.Context, init js_ast.Stmt, arrExpr js_ast.Expr, indexRef js_ast.Ref, loc logger.Loc) js_ast.Stmt {
	index := js_ast.Expr{Loc: loc, Data: &js_ast.EIndex{
		Target: arrExpr,
		Index:  js_ast.Expr{Loc: loc, Data: &js_ast.EIdentifier{Ref: indexRef}},
	}}

	if local, ok := init.Data.(*js_ast.SLocal); ok && len(local.Decls) > 0 {
		return js_ast.Stmt{Loc: loc, Data: &js_ast.SLocal{
			Kind: js_ast.LocalVar,
			Decls: []js_ast.Decl{
				{Binding: local.Decls[0].Binding, ValueOrNil: index},
			},
		}}
	}

	if exprStmt, ok := init.Data.(*js_ast.SExpr); ok {
		return js_ast.AssignStmt(exprStmt.Value, index)
	}

	ctx.AddWarningWithID(loc, logger.MsgID_Lowering_UnsupportedForOfTarget,
		"this for-of loop's target isn't a plain binding or assignable expression and was dropped")
	return js_ast.Stmt{Loc: loc, Data: &js_ast.SEmpty{}}
}
