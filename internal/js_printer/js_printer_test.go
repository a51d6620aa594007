package js_printer

import (
	"testing"

	"github.com/oss-emit/tsemit/internal/helpers"
	"github.com/oss-emit/tsemit/internal/js_ast"
	"github.com/oss-emit/tsemit/internal/logger"
	"github.com/oss-emit/tsemit/internal/renamer"
	"github.com/oss-emit/tsemit/internal/test"
)

// These tests build the AST by hand instead of parsing source text, since
// parsing is outside this repository's scope (spec.md places it behind the
// Resolver/Host boundary). Each test exercises one printer decision the same
// way the teacher's expectPrinted table tests did, just fed a tree directly
// instead of through a parser.

func newSymbolMap(names ...string) (js_ast.SymbolMap, []js_ast.Ref) {
	symbols := js_ast.NewSymbolMap(1)
	table := make([]js_ast.Symbol, len(names))
	refs := make([]js_ast.Ref, len(names))
	for i, name := range names {
		table[i] = js_ast.Symbol{OriginalName: name, Kind: js_ast.SymbolOther}
		refs[i] = js_ast.Ref{OuterIndex: 0, InnerIndex: uint32(i)}
	}
	symbols.Outer[0] = table
	return symbols, refs
}

func printTree(t *testing.T, tree js_ast.AST, symbols js_ast.SymbolMap) string {
	t.Helper()
	r := renamer.NewNoOpRenamer(symbols)
	result := Print(tree, symbols, r, Options{})
	return string(result.JS)
}

func stmt(data js_ast.S) js_ast.Stmt   { return js_ast.Stmt{Data: data} }
func expr(data js_ast.E) js_ast.Expr   { return js_ast.Expr{Data: data} }
func astOf(stmts ...js_ast.Stmt) js_ast.AST {
	return js_ast.AST{Parts: []js_ast.Part{{Stmts: stmts}}}
}

func TestPrintIdentifier(t *testing.T) {
	symbols, refs := newSymbolMap("x")
	tree := astOf(stmt(&js_ast.SExpr{Value: expr(&js_ast.EIdentifier{Ref: refs[0]})}))
	test.AssertEqualWithDiff(t, printTree(t, tree, symbols), "x;\n")
}

func TestPrintNumberAndString(t *testing.T) {
	symbols, _ := newSymbolMap()
	tree := astOf(
		stmt(&js_ast.SExpr{Value: expr(&js_ast.ENumber{Value: 123})}),
		stmt(&js_ast.SExpr{Value: expr(&js_ast.EString{Value: helpers.StringToUTF16("hi")})}),
	)
	test.AssertEqualWithDiff(t, printTree(t, tree, symbols), "123;\n\"hi\";\n")
}

func TestPrintBinaryPrecedence(t *testing.T) {
	symbols, refs := newSymbolMap("a", "b", "c")
	a := expr(&js_ast.EIdentifier{Ref: refs[0]})
	b := expr(&js_ast.EIdentifier{Ref: refs[1]})
	c := expr(&js_ast.EIdentifier{Ref: refs[2]})

	// a + b * c should not need parens; (a + b) * c should
	sum := expr(&js_ast.EBinary{Op: js_ast.BinOpAdd, Left: a, Right: b})
	product := expr(&js_ast.EBinary{Op: js_ast.BinOpMul, Left: sum, Right: c})
	tree := astOf(stmt(&js_ast.SExpr{Value: product}))
	test.AssertEqualWithDiff(t, printTree(t, tree, symbols), "(a + b) * c;\n")
}

func TestPrintVarDecl(t *testing.T) {
	symbols, refs := newSymbolMap("x")
	decl := js_ast.Decl{
		Binding:    js_ast.Binding{Data: &js_ast.BIdentifier{Ref: refs[0]}},
		ValueOrNil: expr(&js_ast.ENumber{Value: 1}),
	}
	tree := astOf(stmt(&js_ast.SLocal{Kind: js_ast.LocalConst, Decls: []js_ast.Decl{decl}}))
	test.AssertEqualWithDiff(t, printTree(t, tree, symbols), "const x = 1;\n")
}

func TestPrintReturnWithAndWithoutValue(t *testing.T) {
	symbols, _ := newSymbolMap()

	withValue := astOf(stmt(&js_ast.SReturn{ValueOrNil: expr(&js_ast.ENumber{Value: 1})}))
	test.AssertEqualWithDiff(t, printTree(t, withValue, symbols), "return 1;\n")

	bare := astOf(stmt(&js_ast.SReturn{}))
	test.AssertEqualWithDiff(t, printTree(t, bare, symbols), "return;\n")
}

func TestPrintIfElse(t *testing.T) {
	symbols, refs := newSymbolMap("cond")
	test1 := expr(&js_ast.EIdentifier{Ref: refs[0]})
	yes := stmt(&js_ast.SReturn{ValueOrNil: expr(&js_ast.ENumber{Value: 1})})
	no := stmt(&js_ast.SReturn{ValueOrNil: expr(&js_ast.ENumber{Value: 2})})
	tree := astOf(stmt(&js_ast.SIf{Test: test1, Yes: yes, NoOrNil: no}))
	test.AssertEqualWithDiff(t, printTree(t, tree, symbols),
		"if (cond)\n  return 1;\nelse\n  return 2;\n")
}

func TestRenamerAvoidsCollision(t *testing.T) {
	symbols, refs := newSymbolMap("x", "x")
	reserved := renamer.ComputeReservedNames(nil, symbols)
	r := renamer.NewNumberRenamer(symbols, reserved)
	r.AddTopLevelSymbol(refs[0])
	r.AddTopLevelSymbol(refs[1])
	if got := r.NameForSymbol(refs[0]); got != "x" {
		t.Fatalf("expected first symbol to keep its name, got %q", got)
	}
	if got := r.NameForSymbol(refs[1]); got != "x2" {
		t.Fatalf("expected second symbol to be renamed to avoid collision, got %q", got)
	}
}

func TestSourceMapTagsMappingsWithEnclosingScopeName(t *testing.T) {
	symbols, refs := newSymbolMap("greet", "x")
	fn := js_ast.Fn{
		Name: &js_ast.LocRef{Ref: refs[0]},
		Body: js_ast.FnBody{Stmts: []js_ast.Stmt{
			stmt(&js_ast.SReturn{ValueOrNil: expr(&js_ast.EIdentifier{Ref: refs[1]})}),
		}},
	}
	tree := astOf(stmt(&js_ast.SFunction{Fn: fn}))

	r := renamer.NewNoOpRenamer(symbols)
	result := Print(tree, symbols, r, Options{AddSourceMappings: true})

	found := false
	for _, quoted := range result.SourceMapChunk.QuotedNames {
		if string(quoted) == "\"greet\"" {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected a mapping tagged with the enclosing function's name %q, got names %v",
			"greet", result.SourceMapChunk.QuotedNames)
	}
}

func TestSourceMapChunkIsMonotonic(t *testing.T) {
	symbols, refs := newSymbolMap("x")
	tree := astOf(
		stmt(&js_ast.SExpr{Value: js_ast.Expr{Loc: logger.Loc{Start: 0}, Data: &js_ast.EIdentifier{Ref: refs[0]}}}),
		stmt(&js_ast.SExpr{Value: js_ast.Expr{Loc: logger.Loc{Start: 10}, Data: &js_ast.EIdentifier{Ref: refs[0]}}}),
	)
	r := renamer.NewNoOpRenamer(symbols)
	result := Print(tree, symbols, r, Options{AddSourceMappings: true})
	if len(result.SourceMapChunk.Buffer.Data) == 0 {
		t.Fatal("expected a non-empty source map chunk when AddSourceMappings is set")
	}
}
