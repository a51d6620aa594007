package lowering

import (
	"github.com/oss-emit/tsemit/internal/ast_ctx"
	"github.com/oss-emit/tsemit/internal/js_ast"
	"github.com/oss-emit/tsemit/internal/logger"
)

// LowerThisCapture implements spec.md §4.6's this-capture lowering: when an
// arrow function nested inside fnRef closes over the enclosing function's
// lexical "this" (Resolver.GetNodeCheckFlags reports
// NodeCheckCapturesThis), the enclosing function gains a "var _this = this;"
// prelude and every "this" reference an arrow inside it would otherwise
// resolve lexically is rewritten to read "_this" instead.
//
// Below ES6 arrow functions are themselves lowered to plain functions
// elsewhere in this package; this pass only concerns the "this" identity
// those functions need to keep once they stop being arrows.
func LowerThisCapture(ctx *ast_ctx.Context, fnRef js_ast.Ref, fn *js_ast.Fn, loc logger.Loc) js_ast.Ref {
	if fnRef == js_ast.InvalidRef || ctx.Resolver == nil || ctx.Resolver.GetNodeCheckFlags(fnRef)&ast_ctx.NodeCheckCapturesThis == 0 {
		return js_ast.InvalidRef
	}

	thisRef := ctx.NewSymbol(js_ast.SymbolHoisted, ctx.NameGen.UniqueName("_this"))
	capture := js_ast.Stmt{Loc: loc, Data: &js_ast.SLocal{
		Kind: js_ast.LocalVar,
		Decls: []js_ast.Decl{{
			Binding:    js_ast.Binding{Loc: loc, Data: &js_ast.BIdentifier{Ref: thisRef}},
			ValueOrNil: js_ast.Expr{Loc: loc, Data: &js_ast.EThis{}},
		}},
	}}
	fn.Body.Stmts = append([]js_ast.Stmt{capture}, fn.Body.Stmts...)
	return thisRef
}

// RewriteThisInArrowBody replaces every EThis reference inside body (an
// arrow function's body, already flattened to a plain function's) with a
// reference to thisRef. It does not descend into nested non-arrow function
// or class boundaries, since those introduce their own "this".
func RewriteThisInArrowBody(body []js_ast.Stmt, thisRef js_ast.Ref) []js_ast.Stmt {
	v := &thisRewriter{thisRef: thisRef}
	for i := range body {
		v.visitStmt(&body[i])
	}
	return body
}

type thisRewriter struct {
	thisRef js_ast.Ref
}

func (v *thisRewriter) visitStmt(stmt *js_ast.Stmt) {
	switch s := stmt.Data.(type) {
	case *js_ast.SExpr:
		v.visitExpr(&s.Value)
	case *js_ast.SReturn:
		if s.ValueOrNil.Data != nil {
			v.visitExpr(&s.ValueOrNil)
		}
	case *js_ast.SLocal:
		for i := range s.Decls {
			if s.Decls[i].ValueOrNil.Data != nil {
				v.visitExpr(&s.Decls[i].ValueOrNil)
			}
		}
	case *js_ast.SBlock:
		for i := range s.Stmts {
			v.visitStmt(&s.Stmts[i])
		}
	case *js_ast.SIf:
		v.visitExpr(&s.Test)
		v.visitStmt(&s.Yes)
		if s.NoOrNil.Data != nil {
			v.visitStmt(&s.NoOrNil)
		}
	}
}

func (v *thisRewriter) visitExpr(expr *js_ast.Expr) {
	switch e := expr.Data.(type) {
	case *js_ast.EThis:
		expr.Data = &js_ast.EIdentifier{Ref: v.thisRef}
	case *js_ast.EBinary:
		v.visitExpr(&e.Left)
		v.visitExpr(&e.Right)
	case *js_ast.EUnary:
		v.visitExpr(&e.Value)
	case *js_ast.ECall:
		v.visitExpr(&e.Target)
		for i := range e.Args {
			v.visitExpr(&e.Args[i])
		}
	case *js_ast.EDot:
		v.visitExpr(&e.Target)
	case *js_ast.EIndex:
		v.visitExpr(&e.Target)
		v.visitExpr(&e.Index)
	}
}
