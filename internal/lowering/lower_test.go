package lowering

import (
	"testing"

	"github.com/oss-emit/tsemit/internal/ast_ctx"
	"github.com/oss-emit/tsemit/internal/config"
	"github.com/oss-emit/tsemit/internal/fixtures"
	"github.com/oss-emit/tsemit/internal/helpers"
	"github.com/oss-emit/tsemit/internal/js_ast"
	"github.com/oss-emit/tsemit/internal/js_printer"
	"github.com/oss-emit/tsemit/internal/logger"
	"github.com/oss-emit/tsemit/internal/renamer"
	"github.com/oss-emit/tsemit/internal/test"
)

// newTestContext builds a Context targeting target over a symbol table
// seeded with names, the way cmd/tsemit's fixtures do for a real run, minus
// the module-framing and file-writing machinery this package doesn't touch.
func newTestContext(target config.LanguageTarget, names ...string) (*ast_ctx.Context, []js_ast.Ref) {
	symbols := js_ast.NewSymbolMap(1)
	table := make([]js_ast.Symbol, len(names))
	refs := make([]js_ast.Ref, len(names))
	for i, name := range names {
		table[i] = js_ast.Symbol{OriginalName: name, Kind: js_ast.SymbolOther}
		refs[i] = js_ast.Ref{OuterIndex: 0, InnerIndex: uint32(i)}
	}
	symbols.Outer[0] = table

	source := test.SourceForTest("")
	ctx := ast_ctx.New(fixtures.NoOpResolver{}, fixtures.NoOpHost{}, logger.NewDeferLog(), &source,
		config.Options{Target: target}, symbols, 0, nil, map[string]uint32{})
	return ctx, refs
}

func printLowered(t *testing.T, ctx *ast_ctx.Context, tree js_ast.AST) string {
	t.Helper()
	lowered := Lower(ctx, tree)
	r := renamer.NewNoOpRenamer(ctx.Symbols)
	result := js_printer.Print(lowered, ctx.Symbols, r, js_printer.Options{})
	return string(result.JS)
}

func stmt(data js_ast.S) js_ast.Stmt { return js_ast.Stmt{Data: data} }
func expr(data js_ast.E) js_ast.Expr { return js_ast.Expr{Data: data} }
func astOf(stmts ...js_ast.Stmt) js_ast.AST {
	return js_ast.AST{Parts: []js_ast.Part{{Stmts: stmts}}}
}

func TestLowerForOfAtES5(t *testing.T) {
	ctx, refs := newTestContext(config.ES5, "v", "log")
	v, log := refs[0], refs[1]

	iterable := expr(&js_ast.EArray{IsSingleLine: true, Items: []js_ast.Expr{
		{Data: &js_ast.ENumber{Value: 10}},
		{Data: &js_ast.ENumber{Value: 20}},
	}})
	body := stmt(&js_ast.SExpr{Value: expr(&js_ast.ECall{
		Target: expr(&js_ast.EIdentifier{Ref: log}),
		Args:   []js_ast.Expr{expr(&js_ast.EIdentifier{Ref: v})},
	})})
	forOf := stmt(&js_ast.SForOf{
		Init:  stmt(&js_ast.SLocal{Kind: js_ast.LocalLet, Decls: []js_ast.Decl{{Binding: js_ast.Binding{Data: &js_ast.BIdentifier{Ref: v}}}}}),
		Value: iterable,
		Body:  body,
	})

	out := printLowered(t, ctx, astOf(forOf))
	test.AssertEqualWithDiff(t, out,
		"for (var _i = 0, _a = [10, 20]; _i < _a.length; _i++) {\n  var v = _a[_i];\n  log(v);\n}\n")
}

func TestLowerForOfOverIdentifierElidesTemp(t *testing.T) {
	ctx, refs := newTestContext(config.ES5, "v", "list")
	v, list := refs[0], refs[1]

	forOf := stmt(&js_ast.SForOf{
		Init:  stmt(&js_ast.SLocal{Kind: js_ast.LocalLet, Decls: []js_ast.Decl{{Binding: js_ast.Binding{Data: &js_ast.BIdentifier{Ref: v}}}}}),
		Value: expr(&js_ast.EIdentifier{Ref: list}),
		Body:  stmt(&js_ast.SExpr{Value: expr(&js_ast.EIdentifier{Ref: v})}),
	})

	out := printLowered(t, ctx, astOf(forOf))
	test.AssertEqualWithDiff(t, out,
		"for (var _i = 0; _i < list.length; _i++) {\n  var v = list[_i];\n  v;\n}\n")
}

func TestLowerForOfAboveES6IsUnchanged(t *testing.T) {
	ctx, refs := newTestContext(config.ES6, "v", "list")
	v, list := refs[0], refs[1]

	forOf := stmt(&js_ast.SForOf{
		Init:  stmt(&js_ast.SLocal{Kind: js_ast.LocalLet, Decls: []js_ast.Decl{{Binding: js_ast.Binding{Data: &js_ast.BIdentifier{Ref: v}}}}}),
		Value: expr(&js_ast.EIdentifier{Ref: list}),
		Body:  stmt(&js_ast.SExpr{Value: expr(&js_ast.EIdentifier{Ref: v})}),
	})

	out := printLowered(t, ctx, astOf(forOf))
	test.AssertEqualWithDiff(t, out, "for (let v of list) {\n  v;\n}\n")
}

func TestLowerDestructuringWithDefault(t *testing.T) {
	ctx, refs := newTestContext(config.ES5, "a", "b", "obj")
	a, b, obj := refs[0], refs[1], refs[2]

	binding := js_ast.Binding{Data: &js_ast.BObject{Properties: []js_ast.PropertyBinding{
		{Key: expr(&js_ast.EString{Value: helpers.StringToUTF16("a")}), Value: js_ast.Binding{Data: &js_ast.BIdentifier{Ref: a}}},
		{
			Key:               expr(&js_ast.EString{Value: helpers.StringToUTF16("b")}),
			Value:             js_ast.Binding{Data: &js_ast.BIdentifier{Ref: b}},
			DefaultValueOrNil: expr(&js_ast.ENumber{Value: 2}),
		},
	}}}
	local := stmt(&js_ast.SLocal{Kind: js_ast.LocalLet, Decls: []js_ast.Decl{{
		Binding:    binding,
		ValueOrNil: expr(&js_ast.EIdentifier{Ref: obj}),
	}}})

	out := printLowered(t, ctx, astOf(local))
	test.AssertEqualWithDiff(t, out,
		"var a = obj.a, _a = obj.b, b = _a === void 0 ? 2 : _a;\n")
}

func TestLowerDefaultAndRestParams(t *testing.T) {
	ctx, refs := newTestContext(config.ES5, "f", "x", "rest")
	f, x, rest := refs[0], refs[1], refs[2]

	fn := js_ast.Fn{
		Name: &js_ast.LocRef{Ref: f},
		Args: []js_ast.Arg{
			{Binding: js_ast.Binding{Data: &js_ast.BIdentifier{Ref: x}}, DefaultOrNil: expr(&js_ast.ENumber{Value: 1})},
			{Binding: js_ast.Binding{Data: &js_ast.BIdentifier{Ref: rest}}},
		},
		HasRestArg: true,
		Body:       js_ast.FnBody{Stmts: []js_ast.Stmt{stmt(&js_ast.SReturn{ValueOrNil: expr(&js_ast.EIdentifier{Ref: x})})}},
	}
	decl := stmt(&js_ast.SFunction{Fn: fn})

	out := printLowered(t, ctx, astOf(decl))
	test.AssertEqualWithDiff(t, out,
		"function f(x) {\n"+
			"  if (x === void 0) {\n    x = 1;\n  }\n"+
			"  var rest = [];\n"+
			"  for (var _i = 1; _i < arguments.length; _i++) {\n"+
			"    rest[_i - 1] = arguments[_i];\n"+
			"  }\n"+
			"  return x;\n"+
			"}\n")
}

func TestLowerTemplateLiteralConcatenation(t *testing.T) {
	ctx, refs := newTestContext(config.ES5, "name")
	name := refs[0]

	tpl := expr(&js_ast.ETemplate{
		Head: nil,
		Parts: []js_ast.TemplatePart{
			{Value: expr(&js_ast.EIdentifier{Ref: name})},
		},
	})
	out := printLowered(t, ctx, astOf(stmt(&js_ast.SExpr{Value: tpl})))
	test.AssertEqualWithDiff(t, out, "\"\" + name + \"\";\n")
}

func TestLowerClassToIIFEBelowES6(t *testing.T) {
	ctx, refs := newTestContext(config.ES5, "C")
	c := refs[0]

	class := js_ast.Class{Name: &js_ast.LocRef{Ref: c}}
	decl := stmt(&js_ast.SClass{Class: class})

	out := printLowered(t, ctx, astOf(decl))
	if out == "" {
		t.Fatalf("expected class lowering to produce output")
	}
	if got, want := out[:4], "var "; got != want {
		t.Fatalf("expected class declaration to lower to a var statement, got %q", out)
	}
}

func TestLowerThisCaptureInArrow(t *testing.T) {
	ctx, refs := newTestContext(config.ES5, "outer")
	fnRef := refs[0]

	resolver := capturingResolver{captures: map[js_ast.Ref]bool{fnRef: true}}
	ctx.Resolver = resolver

	arrow := js_ast.EArrow{Body: js_ast.FnBody{Stmts: []js_ast.Stmt{
		stmt(&js_ast.SReturn{ValueOrNil: expr(&js_ast.EThis{})}),
	}}}
	fn := js_ast.Fn{
		Name: &js_ast.LocRef{Ref: fnRef},
		Body: js_ast.FnBody{Stmts: []js_ast.Stmt{
			stmt(&js_ast.SExpr{Value: expr(&arrow)}),
		}},
	}
	decl := stmt(&js_ast.SFunction{Fn: fn})

	out := printLowered(t, ctx, astOf(decl))
	test.AssertEqualWithDiff(t, out,
		"function outer() {\n  var _this = this;\n  (function() {\n    return _this;\n  });\n}\n")
}

// capturingResolver reports NodeCheckCapturesThis for whichever refs are
// listed in captures and answers every other Resolver question the
// conservative way fixtures.NoOpResolver does.
type capturingResolver struct {
	fixtures.NoOpResolver
	captures map[js_ast.Ref]bool
}

func (r capturingResolver) GetNodeCheckFlags(ref js_ast.Ref) ast_ctx.NodeCheckFlags {
	if r.captures[ref] {
		return ast_ctx.NodeCheckCapturesThis
	}
	return 0
}
