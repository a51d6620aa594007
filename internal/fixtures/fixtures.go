// Package fixtures builds hand-constructed ASTs for the scenarios
// SPEC_FULL.md's worked examples describe. Parsing sits outside this
// repository's scope (spec.md places it behind the Resolver/Host boundary),
// so there is no source-text front end to drive cmd/tsemit's example mode
// from; this package plays the same role the teacher's cmd/snapshot tools
// play for their own curated example inputs, letting the CLI demonstrate a
// full Lower -> Frame -> Print run without needing a scanner.
package fixtures

import (
	"github.com/oss-emit/tsemit/internal/ast"
	"github.com/oss-emit/tsemit/internal/ast_ctx"
	"github.com/oss-emit/tsemit/internal/config"
	"github.com/oss-emit/tsemit/internal/helpers"
	"github.com/oss-emit/tsemit/internal/js_ast"
	"github.com/oss-emit/tsemit/internal/logger"
)

// Example is one named, self-contained input a caller can feed straight to
// internal/emitter.Emit or pkg/api.Emit.
type Example struct {
	Name          string
	Path          string
	Tree          js_ast.AST
	Symbols       []js_ast.Symbol
	ImportRecords []ast.ImportRecord
}

// Names lists every example this package can build.
var Names = []string{"module-register", "for-of", "destructuring"}

func Build(name string) (Example, bool) {
	switch name {
	case "module-register":
		return buildModuleRegister(), true
	case "for-of":
		return buildForOf(), true
	case "destructuring":
		return buildDestructuring(), true
	}
	return Example{}, false
}

// buildModuleRegister constructs "export let x = 1; import {y} from 'm';",
// the input SPEC_FULL.md's System.register worked example lowers.
func buildModuleRegister() Example {
	symbols := []js_ast.Symbol{
		{Kind: js_ast.SymbolHoisted, OriginalName: "x"},           // 0
		{Kind: js_ast.SymbolHoisted, OriginalName: "y"},           // 1
		{Kind: js_ast.SymbolOther, OriginalName: "m_ns"},          // 2: import namespace
	}
	loc := logger.Loc{}
	xRef := js_ast.Ref{OuterIndex: 0, InnerIndex: 0}
	yRef := js_ast.Ref{OuterIndex: 0, InnerIndex: 1}
	nsRef := js_ast.Ref{OuterIndex: 0, InnerIndex: 2}

	items := []js_ast.ClauseItem{{Alias: "y", Name: js_ast.LocRef{Ref: yRef}}}
	importStmt := js_ast.Stmt{Loc: loc, Data: &js_ast.SImport{
		NamespaceRef:      nsRef,
		Items:             &items,
		ImportRecordIndex: 0,
	}}

	exportStmt := js_ast.Stmt{Loc: loc, Data: &js_ast.SLocal{
		Kind:     js_ast.LocalLet,
		IsExport: true,
		Decls: []js_ast.Decl{{
			Binding:    js_ast.Binding{Loc: loc, Data: &js_ast.BIdentifier{Ref: xRef}},
			ValueOrNil: js_ast.Expr{Loc: loc, Data: &js_ast.ENumber{Value: 1}},
		}},
	}}

	moduleScope := &js_ast.Scope{
		Members: map[string]js_ast.ScopeMember{
			"x": {Ref: xRef},
			"y": {Ref: yRef},
		},
		Generated: []js_ast.Ref{nsRef},
	}

	tree := js_ast.AST{
		Parts:       []js_ast.Part{{Stmts: []js_ast.Stmt{exportStmt, importStmt}}},
		ModuleScope: moduleScope,
	}

	records := []ast.ImportRecord{{Path: logger.Path{Text: "m"}}}

	return Example{Name: "module-register", Path: "module-register.ts", Tree: tree, Symbols: symbols, ImportRecords: records}
}

// buildForOf constructs "for (let v of [10, 20]) log(v);", the input
// SPEC_FULL.md's for-of worked example lowers.
func buildForOf() Example {
	symbols := []js_ast.Symbol{
		{Kind: js_ast.SymbolOther, OriginalName: "v"}, // 0
		{Kind: js_ast.SymbolUnbound, OriginalName: "log"},
	}
	loc := logger.Loc{}
	vRef := js_ast.Ref{OuterIndex: 0, InnerIndex: 0}
	logRef := js_ast.Ref{OuterIndex: 0, InnerIndex: 1}

	iterable := js_ast.Expr{Loc: loc, Data: &js_ast.EArray{Items: []js_ast.Expr{
		{Loc: loc, Data: &js_ast.ENumber{Value: 10}},
		{Loc: loc, Data: &js_ast.ENumber{Value: 20}},
	}}}

	body := js_ast.Stmt{Loc: loc, Data: &js_ast.SExpr{Value: js_ast.Expr{Loc: loc, Data: &js_ast.ECall{
		Target: js_ast.Expr{Loc: loc, Data: &js_ast.EIdentifier{Ref: logRef}},
		Args:   []js_ast.Expr{{Loc: loc, Data: &js_ast.EIdentifier{Ref: vRef}}},
	}}}}

	forOf := js_ast.Stmt{Loc: loc, Data: &js_ast.SForOf{
		Init:  js_ast.Stmt{Loc: loc, Data: &js_ast.SLocal{Kind: js_ast.LocalLet, Decls: []js_ast.Decl{{Binding: js_ast.Binding{Loc: loc, Data: &js_ast.BIdentifier{Ref: vRef}}}}}},
		Value: iterable,
		Body:  body,
	}}

	moduleScope := &js_ast.Scope{Members: map[string]js_ast.ScopeMember{}}
	tree := js_ast.AST{Parts: []js_ast.Part{{Stmts: []js_ast.Stmt{forOf}}}, ModuleScope: moduleScope}

	return Example{Name: "for-of", Path: "for-of.ts", Tree: tree, Symbols: symbols}
}

// buildDestructuring constructs "let {a, b = 2} = obj;", the input
// SPEC_FULL.md's destructuring worked example lowers.
func buildDestructuring() Example {
	symbols := []js_ast.Symbol{
		{Kind: js_ast.SymbolOther, OriginalName: "a"},
		{Kind: js_ast.SymbolOther, OriginalName: "b"},
		{Kind: js_ast.SymbolUnbound, OriginalName: "obj"},
	}
	loc := logger.Loc{}
	aRef := js_ast.Ref{OuterIndex: 0, InnerIndex: 0}
	bRef := js_ast.Ref{OuterIndex: 0, InnerIndex: 1}
	objRef := js_ast.Ref{OuterIndex: 0, InnerIndex: 2}

	binding := js_ast.Binding{Loc: loc, Data: &js_ast.BObject{Properties: []js_ast.PropertyBinding{
		{Key: js_ast.Expr{Loc: loc, Data: &js_ast.EString{Value: helpers.StringToUTF16("a")}}, Value: js_ast.Binding{Loc: loc, Data: &js_ast.BIdentifier{Ref: aRef}}},
		{
			Key:               js_ast.Expr{Loc: loc, Data: &js_ast.EString{Value: helpers.StringToUTF16("b")}},
			Value:             js_ast.Binding{Loc: loc, Data: &js_ast.BIdentifier{Ref: bRef}},
			DefaultValueOrNil: js_ast.Expr{Loc: loc, Data: &js_ast.ENumber{Value: 2}},
		},
	}}}

	local := js_ast.Stmt{Loc: loc, Data: &js_ast.SLocal{
		Kind: js_ast.LocalLet,
		Decls: []js_ast.Decl{{
			Binding:    binding,
			ValueOrNil: js_ast.Expr{Loc: loc, Data: &js_ast.EIdentifier{Ref: objRef}},
		}},
	}}

	moduleScope := &js_ast.Scope{Members: map[string]js_ast.ScopeMember{}}
	tree := js_ast.AST{Parts: []js_ast.Part{{Stmts: []js_ast.Stmt{local}}}, ModuleScope: moduleScope}

	return Example{Name: "destructuring", Path: "destructuring.ts", Tree: tree, Symbols: symbols}
}

// NoOpResolver answers every semantic question conservatively (nothing is a
// global, nothing captures "this", nothing has a known constant value),
// enough to drive the examples above through lowering without a real
// checker behind it.
type NoOpResolver struct{}

func (NoOpResolver) HasGlobalName(name string) bool { return false }
func (NoOpResolver) GetConstantValue(ref js_ast.Ref) (js_ast.ConstValue, bool) {
	return js_ast.ConstValue{}, false
}
func (NoOpResolver) GetExpressionNameSubstitution(ref js_ast.Ref) (string, bool) { return "", false }
func (NoOpResolver) GetBlockScopedVariableID(ref js_ast.Ref) (uint32, bool)      { return 0, false }
func (NoOpResolver) ResolvesToSomeValue(ref js_ast.Ref) bool                     { return true }
func (NoOpResolver) GetNodeCheckFlags(ref js_ast.Ref) ast_ctx.NodeCheckFlags     { return 0 }
func (NoOpResolver) IsReferencedAliasDeclaration(ref js_ast.Ref) bool            { return true }
func (NoOpResolver) IsValueAliasDeclaration(ref js_ast.Ref) bool                 { return true }
func (NoOpResolver) SerializeTypeOfNode(ref js_ast.Ref) js_ast.Expr {
	return js_ast.Expr{Data: js_ast.EUndefinedShared}
}
func (NoOpResolver) SerializeParameterTypesOfNode(ref js_ast.Ref) []js_ast.Expr { return nil }
func (NoOpResolver) SerializeReturnTypeOfNode(ref js_ast.Ref) js_ast.Expr {
	return js_ast.Expr{Data: js_ast.EUndefinedShared}
}

// NoOpHost answers file-system questions with fixed, in-memory defaults so
// the examples can run without touching disk.
type NoOpHost struct{}

func (NoOpHost) SourceFiles() []logger.Source           { return nil }
func (NoOpHost) CompilerOptions() config.Options         { return config.Options{} }
func (NoOpHost) NewLine() string                         { return "\n" }
func (NoOpHost) CurrentDirectory() string                { return "." }
func (NoOpHost) CommonSourceDirectory() string           { return "." }
func (NoOpHost) CanonicalFileName(path string) string    { return path }
func (NoOpHost) WriteFile(path string, text string, writeBOM bool) error { return nil }
