package lowering

import (
	"github.com/oss-emit/tsemit/internal/ast_ctx"
	"github.com/oss-emit/tsemit/internal/helpers"
	"github.com/oss-emit/tsemit/internal/js_ast"
	"github.com/oss-emit/tsemit/internal/logger"
	"github.com/oss-emit/tsemit/internal/namegen"
)

// lowerTemplate implements spec.md §4.6's template-literal lowering. Below
// ES6 an untagged template becomes a left-associative "+" chain; a tagged
// template becomes a comma expression that builds the cooked/raw string
// array once and calls the tag function with it.
//
// The chain is built with js_ast.JoinWithLeftAssociativeOp instead of
// manually inserting parentheses around each interpolated expression —
// js_printer already parenthesizes any sub-expression of lower precedence
// than the surrounding "+" the same way it does for every other binary
// expression, so a genuine EBinary tree gets correct output for free.
func lowerTemplate(ctx *ast_ctx.Context, e *js_ast.ETemplate, loc logger.Loc) js_ast.Expr {
	if e.TagOrNil.Data == nil {
		return concatTemplateParts(loc, e)
	}
	return lowerTaggedTemplate(ctx, loc, e)
}

func concatTemplateParts(loc logger.Loc, e *js_ast.ETemplate) js_ast.Expr {
	result := js_ast.Expr{Loc: loc, Data: &js_ast.EString{Value: e.Head}}
	for _, part := range e.Parts {
		result = js_ast.JoinWithLeftAssociativeOp(js_ast.BinOpAdd, result, part.Value)
		result = js_ast.JoinWithLeftAssociativeOp(js_ast.BinOpAdd, result,
			js_ast.Expr{Loc: part.TailLoc, Data: &js_ast.EString{Value: part.Tail}})
	}
	return result
}

// lowerTaggedTemplate builds "(_a = [cooked...], _a.raw = [raw...], tag(_a, expr1, expr2, …))".
func lowerTaggedTemplate(ctx *ast_ctx.Context, loc logger.Loc, e *js_ast.ETemplate) js_ast.Expr {
	cooked := make([]js_ast.Expr, 0, len(e.Parts)+1)
	raw := make([]js_ast.Expr, 0, len(e.Parts)+1)
	cooked = append(cooked, js_ast.Expr{Loc: loc, Data: &js_ast.EString{Value: e.Head}})
	raw = append(raw, js_ast.Expr{Loc: loc, Data: &js_ast.EString{Value: helpers.StringToUTF16(e.HeadRaw)}})

	args := make([]js_ast.Expr, 0, len(e.Parts)+1)
	args = append(args, js_ast.Expr{}) // placeholder for the strings array, filled in below

	for _, part := range e.Parts {
		cooked = append(cooked, js_ast.Expr{Loc: part.TailLoc, Data: &js_ast.EString{Value: part.Tail}})
		raw = append(raw, js_ast.Expr{Loc: part.TailLoc, Data: &js_ast.EString{Value: helpers.StringToUTF16(part.TailRaw)}})
		args = append(args, part.Value)
	}

	tempRef := ctx.NewSymbol(js_ast.SymbolOther, ctx.NameGen.TempName(namegen.TempNameAny))
	tempIdent := js_ast.Expr{Loc: loc, Data: &js_ast.EIdentifier{Ref: tempRef}}

	assignStrings := js_ast.Assign(tempIdent, js_ast.Expr{Loc: loc, Data: &js_ast.EArray{Items: cooked}})
	assignRaw := js_ast.Assign(
		js_ast.Expr{Loc: loc, Data: &js_ast.EDot{Target: tempIdent, Name: "raw"}},
		js_ast.Expr{Loc: loc, Data: &js_ast.EArray{Items: raw}},
	)

	args[0] = tempIdent
	call := js_ast.Expr{Loc: loc, Data: &js_ast.ECall{Target: e.TagOrNil, Args: args}}

	return js_ast.JoinWithComma(js_ast.JoinWithComma(assignStrings, assignRaw), call)
}
