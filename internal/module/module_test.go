package module

import (
	"testing"

	"github.com/oss-emit/tsemit/internal/ast"
	"github.com/oss-emit/tsemit/internal/ast_ctx"
	"github.com/oss-emit/tsemit/internal/config"
	"github.com/oss-emit/tsemit/internal/fixtures"
	"github.com/oss-emit/tsemit/internal/js_ast"
	"github.com/oss-emit/tsemit/internal/js_printer"
	"github.com/oss-emit/tsemit/internal/logger"
	"github.com/oss-emit/tsemit/internal/renamer"
	"github.com/oss-emit/tsemit/internal/test"
)

// newFramingContext builds a Context over the module-register worked
// example's symbol table and import records, the way cmd/tsemit's fixtures
// wire up a real run, so each test only has to describe the envelope it's
// exercising.
func newFramingContext(options config.Options) (*ast_ctx.Context, Info) {
	example, ok := fixtures.Build("module-register")
	if !ok {
		panic("module-register fixture missing")
	}

	symbols := js_ast.NewSymbolMap(1)
	symbols.Outer[0] = append([]js_ast.Symbol{}, example.Symbols...)

	source := test.SourceForTest("")
	ctx := ast_ctx.New(fixtures.NoOpResolver{}, fixtures.NoOpHost{}, logger.NewDeferLog(), &source,
		options, symbols, 0, example.ImportRecords, map[string]uint32{})

	var stmts []js_ast.Stmt
	for _, part := range example.Tree.Parts {
		stmts = append(stmts, part.Stmts...)
	}
	return ctx, Collect(ctx, stmts)
}

func printFramed(ctx *ast_ctx.Context, stmts []js_ast.Stmt) string {
	tree := js_ast.AST{Parts: []js_ast.Part{{Stmts: stmts}}}
	r := renamer.NewNoOpRenamer(ctx.Symbols)
	result := js_printer.Print(tree, ctx.Symbols, r, js_printer.Options{})
	return string(result.JS)
}

func TestFrameCommonJS(t *testing.T) {
	ctx, info := newFramingContext(config.Options{Target: config.ES5, Module: config.ModuleCommonJS})

	out := printFramed(ctx, FrameCommonJS(ctx, info, logger.Loc{}))
	test.AssertEqualWithDiff(t, out,
		"var m_ns = require(\"m\");\n"+
			"var y = m_ns.y;\n"+
			"let x = 1;\n"+
			"exports.x = x;\n")
}

func TestFrameAMD(t *testing.T) {
	ctx, info := newFramingContext(config.Options{
		Target:          config.ES5,
		Module:          config.ModuleAMD,
		ModuleName:      "mymod",
		AMDDependencies: []string{"require", "exports"},
	})

	out := printFramed(ctx, FrameAMD(ctx, info, logger.Loc{}))
	test.AssertEqualWithDiff(t, out,
		"define(\"mymod\", [\n"+
			"  \"require\",\n"+
			"  \"exports\",\n"+
			"  \"m\"\n"+
			"], function(require, exports, m_ns) {\n"+
			"  var y = m_ns.y;\n"+
			"  let x = 1;\n"+
			"  exports.x = x;\n"+
			"});\n")
}

func TestFrameSystem(t *testing.T) {
	ctx, info := newFramingContext(config.Options{Target: config.ES5, Module: config.ModuleSystem})

	out := printFramed(ctx, FrameSystem(ctx, info, logger.Loc{}))
	test.AssertEqualWithDiff(t, out,
		"System.register([\n"+
			"  \"m\"\n"+
			"], function(exports_1) {\n"+
			"  var y, x;\n"+
			"  return {\n"+
			"    setters: [\n"+
			"      function(v) {\n"+
			"        y = v.y;\n"+
			"      }\n"+
			"    ],\n"+
			"    execute: function() {\n"+
			"      exports_1(\"x\", x = 1);\n"+
			"    }\n"+
			"  };\n"+
			"});\n")
}

func TestFrameAMDProjectsStarExportsThroughExtraDependency(t *testing.T) {
	symbols := js_ast.NewSymbolMap(1)
	nsRef := js_ast.Ref{OuterIndex: 0, InnerIndex: 0}
	symbols.Outer[0] = []js_ast.Symbol{{OriginalName: "other_ns", Kind: js_ast.SymbolHoisted}}

	source := test.SourceForTest("")
	options := config.Options{
		Target: config.ES5, Module: config.ModuleAMD,
		AMDDependencies: []string{"require", "exports"},
	}
	ctx := ast_ctx.New(fixtures.NoOpResolver{}, fixtures.NoOpHost{}, logger.NewDeferLog(), &source,
		options, symbols, 0, nil, map[string]uint32{})

	info := Info{StarExports: []StarExport{{
		Record:       ast.ImportRecord{Path: logger.Path{Text: "other"}},
		NamespaceRef: nsRef,
	}}}

	out := printFramed(ctx, FrameAMD(ctx, info, logger.Loc{}))
	test.AssertEqualWithDiff(t, out,
		"define([\n"+
			"  \"require\",\n"+
			"  \"exports\",\n"+
			"  \"other\"\n"+
			"], function(require, exports, other_ns) {\n"+
			"  __exportStar(exports, other_ns);\n"+
			"});\n")
}

func TestFrameSystemWarnsAndDropsStarExports(t *testing.T) {
	symbols := js_ast.NewSymbolMap(1)
	log := logger.NewDeferLog()
	source := test.SourceForTest("")
	options := config.Options{Target: config.ES5, Module: config.ModuleSystem}
	ctx := ast_ctx.New(fixtures.NoOpResolver{}, fixtures.NoOpHost{}, log, &source,
		options, symbols, 0, nil, map[string]uint32{})

	info := Info{StarExports: []StarExport{{
		Record:       ast.ImportRecord{Path: logger.Path{Text: "other"}},
		NamespaceRef: js_ast.Ref{OuterIndex: 0, InnerIndex: 0},
	}}}
	FrameSystem(ctx, info, logger.Loc{})

	msgs := log.Done()
	if len(msgs) != 1 || msgs[0].ID != logger.MsgID_Module_UnsupportedEnvelopeOption {
		t.Fatalf("expected exactly one MsgID_Module_UnsupportedEnvelopeOption warning, got %+v", msgs)
	}
}

func TestCollectWarnsOnAmbiguousExportStar(t *testing.T) {
	symbols := js_ast.NewSymbolMap(1)
	log := logger.NewDeferLog()
	source := test.SourceForTest("")
	options := config.Options{Target: config.ES5, Module: config.ModuleCommonJS}
	records := []ast.ImportRecord{{Path: logger.Path{Text: "a"}}, {Path: logger.Path{Text: "b"}}}
	ctx := ast_ctx.New(fixtures.NoOpResolver{}, fixtures.NoOpHost{}, log, &source,
		options, symbols, 0, records, map[string]uint32{})

	stmts := []js_ast.Stmt{
		{Data: &js_ast.SExportStar{ImportRecordIndex: 0}},
		{Data: &js_ast.SExportStar{ImportRecordIndex: 1}},
	}
	Collect(ctx, stmts)

	msgs := log.Done()
	if len(msgs) != 1 || msgs[0].ID != logger.MsgID_Module_AmbiguousExportStar {
		t.Fatalf("expected exactly one MsgID_Module_AmbiguousExportStar warning, got %+v", msgs)
	}
}

func TestFrameNoneLeavesTreeUnchanged(t *testing.T) {
	options := config.Options{Target: config.ES5, Module: config.ModuleNone}
	example, ok := fixtures.Build("module-register")
	if !ok {
		t.Fatal("module-register fixture missing")
	}

	symbols := js_ast.NewSymbolMap(1)
	symbols.Outer[0] = append([]js_ast.Symbol{}, example.Symbols...)
	source := test.SourceForTest("")
	ctx := ast_ctx.New(fixtures.NoOpResolver{}, fixtures.NoOpHost{}, logger.NewDeferLog(), &source,
		options, symbols, 0, example.ImportRecords, map[string]uint32{})

	framed := Frame(ctx, example.Tree, logger.Loc{})
	if len(framed.Parts) != len(example.Tree.Parts) {
		t.Fatalf("expected ModuleNone to leave the tree's parts untouched, got %d parts", len(framed.Parts))
	}
}
