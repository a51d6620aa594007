package lowering

import (
	"github.com/oss-emit/tsemit/internal/ast_ctx"
	"github.com/oss-emit/tsemit/internal/js_ast"
	"github.com/oss-emit/tsemit/internal/logger"
	"github.com/oss-emit/tsemit/internal/namegen"
)

// LowerParams implements spec.md §4.6's default/rest parameter lowering.
// A default parameter "function f(x = init)" drops the initializer from the
// parameter list and gains a prelude statement:
//
//	if (x === void 0) { x = init; }
//
// A rest parameter "function f(...rest)" drops "rest" from the parameter
// list and gains a prelude loop that copies the tail of "arguments" into it:
//
//	var rest = [];
//	for (var _i = <fixedParamCount>; _i < arguments.length; _i++) {
//	  rest[_i - <fixedParamCount>] = arguments[_i];
//	}
func LowerParams(ctx *ast_ctx.Context, fn *js_ast.Fn, loc logger.Loc) {
	var prelude []js_ast.Stmt
	var kept []js_ast.Arg

	fixedCount := len(fn.Args)
	if fn.HasRestArg {
		fixedCount--
	}

	for i, arg := range fn.Args {
		if fn.HasRestArg && i == len(fn.Args)-1 {
			prelude = append(prelude, lowerRestParam(ctx, fn, arg, fixedCount, loc)...)
			continue
		}
		if arg.DefaultOrNil.Data != nil {
			prelude = append(prelude, defaultParamPrelude(arg, loc))
		}
		kept = append(kept, js_ast.Arg{Binding: arg.Binding, Type: arg.Type})
	}

	fn.Args = kept
	fn.HasRestArg = false
	fn.Body.Stmts = append(prelude, fn.Body.Stmts...)
}

func defaultParamPrelude(arg js_ast.Arg, loc logger.Loc) js_ast.Stmt {
	ident, ok := arg.Binding.Data.(*js_ast.BIdentifier)
	if !ok {
		return js_ast.Stmt{Loc: loc, Data: &js_ast.SEmpty{}}
	}
	ref := js_ast.Expr{Loc: loc, Data: &js_ast.EIdentifier{Ref: ident.Ref}}
	test := js_ast.Expr{Loc: loc, Data: &js_ast.EBinary{
		Op:    js_ast.BinOpStrictEq,
		Left:  ref,
		Right: js_ast.Expr{Loc: loc, Data: js_ast.EUndefinedShared},
	}}
	assign := js_ast.AssignStmt(ref, arg.DefaultOrNil)
	return js_ast.Stmt{Loc: loc, Data: &js_ast.SIf{
		Test: test,
		Yes:  js_ast.Stmt{Loc: loc, Data: &js_ast.SBlock{Stmts: []js_ast.Stmt{assign}}},
	}}
}

func lowerRestParam(ctx *ast_ctx.Context, fn *js_ast.Fn, arg js_ast.Arg, fixedCount int, loc logger.Loc) []js_ast.Stmt {
	ident, ok := arg.Binding.Data.(*js_ast.BIdentifier)
	if !ok {
		return nil
	}

	if fn.ArgumentsRef == (js_ast.Ref{}) {
		fn.ArgumentsRef = ctx.NewSymbol(js_ast.SymbolHoisted, "arguments")
	}
	argsIdent := js_ast.Expr{Loc: loc, Data: &js_ast.EIdentifier{Ref: fn.ArgumentsRef}}
	restIdent := js_ast.Expr{Loc: loc, Data: &js_ast.EIdentifier{Ref: ident.Ref}}

	initRest := js_ast.Stmt{Loc: loc, Data: &js_ast.SLocal{
		Kind: js_ast.LocalVar,
		Decls: []js_ast.Decl{{
			Binding:    arg.Binding,
			ValueOrNil: js_ast.Expr{Loc: loc, Data: &js_ast.EArray{}},
		}},
	}}

	indexRef := ctx.NewSymbol(js_ast.SymbolHoisted, ctx.NameGen.TempName(namegen.TempNameIndex))
	indexIdent := js_ast.Expr{Loc: loc, Data: &js_ast.EIdentifier{Ref: indexRef}}

	loop := js_ast.Stmt{Loc: loc, Data: &js_ast.SFor{
		InitOrNil: js_ast.Stmt{Loc: loc, Data: &js_ast.SLocal{
			Kind: js_ast.LocalVar,
			Decls: []js_ast.Decl{{
				Binding:    js_ast.Binding{Loc: loc, Data: &js_ast.BIdentifier{Ref: indexRef}},
				ValueOrNil: js_ast.Expr{Loc: loc, Data: &js_ast.ENumber{Value: float64(fixedCount)}},
			}},
		}},
		TestOrNil: js_ast.Expr{Loc: loc, Data: &js_ast.EBinary{
			Op:    js_ast.BinOpLt,
			Left:  indexIdent,
			Right: js_ast.Expr{Loc: loc, Data: &js_ast.EDot{Target: argsIdent, Name: "length", NameLoc: loc}},
		}},
		UpdateOrNil: js_ast.Expr{Loc: loc, Data: &js_ast.EUnary{Op: js_ast.UnOpPostInc, Value: indexIdent}},
		Body: js_ast.Stmt{Loc: loc, Data: &js_ast.SBlock{Stmts: []js_ast.Stmt{
			js_ast.AssignStmt(
				js_ast.Expr{Loc: loc, Data: &js_ast.EIndex{
					Target: restIdent,
					Index: js_ast.Expr{Loc: loc, Data: &js_ast.EBinary{
						Op: js_ast.BinOpSub, Left: indexIdent,
						Right: js_ast.Expr{Loc: loc, Data: &js_ast.ENumber{Value: float64(fixedCount)}},
					}},
				}},
				js_ast.Expr{Loc: loc, Data: &js_ast.EIndex{Target: argsIdent, Index: indexIdent}},
			),
		}}},
	}}

	return []js_ast.Stmt{initRest, loop}
}
