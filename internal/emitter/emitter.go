// Package emitter is the top-level orchestrator SPEC_FULL.md §4 calls the
// component C8: for each source file it wires internal/lowering,
// internal/module, and internal/js_printer together into the single
// Lower -> Frame -> Print pipeline, then assembles the printer's raw output
// into the helper-prefixed, source-mapped file pkg/api and pkg/cli hand
// back to a caller.
//
// The teacher's own top-level entry point (pkg/bundler) resolves a whole
// dependency graph, splits it into chunks, and links per-chunk runtime
// helpers pulled from a bundled copy of internal/runtime it parses at
// startup. This repository has no bundler and no linker: every file is
// emitted independently (SPEC_FULL.md §5's "no shared mutable state across
// files"), so Emit instead follows tsc's own downlevel-emit convention and
// splices literal helper source text (internal/runtime.Helpers) directly
// into a file's prelude instead of tree-shaking an AST-level runtime module.
package emitter

import (
	"strings"

	"github.com/oss-emit/tsemit/internal/ast"
	"github.com/oss-emit/tsemit/internal/ast_ctx"
	"github.com/oss-emit/tsemit/internal/config"
	"github.com/oss-emit/tsemit/internal/js_ast"
	"github.com/oss-emit/tsemit/internal/js_printer"
	"github.com/oss-emit/tsemit/internal/logger"
	"github.com/oss-emit/tsemit/internal/lowering"
	"github.com/oss-emit/tsemit/internal/module"
	"github.com/oss-emit/tsemit/internal/renamer"
	"github.com/oss-emit/tsemit/internal/runtime"
	"github.com/oss-emit/tsemit/internal/sourcemap"
)

// SourceInput is one file to emit. Tree, Symbols, and ImportRecords are
// expected to already carry the semantic annotations a checker/binder
// stage would have attached (spec.md places parsing and type checking
// behind the Resolver/Host boundary, out of this repository's scope) —
// Emit's own job starts at lowering, not parsing.
type SourceInput struct {
	Source        logger.Source
	Tree          js_ast.AST
	Symbols       []js_ast.Symbol
	ImportRecords []ast.ImportRecord
}

// EmitOptions bundles everything one Emit call needs: the files to lower,
// the Resolver/Host pair every Context consults, and the resolved
// compiler options shared by every file in the run.
type EmitOptions struct {
	Sources  []SourceInput
	Resolver ast_ctx.Resolver
	Host     ast_ctx.Host
	Options  config.Options
}

// OutputFile is one emitted JavaScript file plus its source map, if any
// was requested.
type OutputFile struct {
	Path      string
	Contents  []byte
	SourceMap []byte
}

// EmitResult is Emit's return value: the emitted files in input order, plus
// every diagnostic any file's Context accumulated along the way.
type EmitResult struct {
	Files       []OutputFile
	Diagnostics []logger.Msg
}

// Emit runs the Lower -> Frame -> Print pipeline over every input file and
// returns the assembled outputs. It never returns an error itself; a fatal
// per-file problem is reported through EmitResult.Diagnostics the same way
// spec.md §7 describes, so a caller can decide whether to write out the
// files that succeeded anyway.
func Emit(opts EmitOptions) EmitResult {
	symbols := js_ast.NewSymbolMap(len(opts.Sources))
	for i, src := range opts.Sources {
		symbols.Outer[i] = src.Symbols
	}

	log := logger.NewDeferLog()
	var files []OutputFile

	for i, src := range opts.Sources {
		sourceIndex := uint32(i)
		source := src.Source
		source.Index = sourceIndex

		tree := src.Tree
		tree.ImportRecords = src.ImportRecords

		reserved := renamer.ComputeReservedNames([]*js_ast.Scope{tree.ModuleScope}, symbols)
		ctx := ast_ctx.New(opts.Resolver, opts.Host, log, &source, opts.Options, symbols, sourceIndex, src.ImportRecords, reserved)

		lowered := lowering.Lower(ctx, tree)
		framed := module.Frame(ctx, lowered, logger.Loc{})

		if framed.ModuleScope != nil {
			framed.NestedScopeSlotCounts = renamer.AssignNestedScopeSlots(framed.ModuleScope, symbols.Outer[sourceIndex])
		}

		r := buildRenamer(symbols, reserved, sourceIndex, framed.ModuleScope)

		printerOptions := js_printer.Options{
			OutputFormat:      outputFormat(opts.Options),
			AddSourceMappings: opts.Options.SourceMap != config.SourceMapNone,
		}
		result := js_printer.Print(framed, symbols, r, printerOptions)

		prelude := helperPrelude(ctx)
		contents := make([]byte, 0, len(prelude)+len(result.JS))
		contents = append(contents, prelude...)
		contents = append(contents, result.JS...)

		file := OutputFile{Path: outputPath(source, opts.Options), Contents: contents}
		if opts.Options.SourceMap != config.SourceMapNone {
			file.SourceMap = buildSourceMap(source, prelude, result.SourceMapChunk)
		}
		files = append(files, file)
	}

	return EmitResult{Files: files, Diagnostics: log.Done()}
}

// buildRenamer assigns every top-level and nested-scope symbol its final
// spelling. A file whose lowering and framing passes introduced no new
// bindings still goes through NumberRenamer rather than NewNoOpRenamer,
// since even an untouched file can need collision suffixes against
// spec.md's naming law once module framing hoists imports into the same
// scope as the file's own declarations.
func buildRenamer(symbols js_ast.SymbolMap, reserved map[string]uint32, sourceIndex uint32, moduleScope *js_ast.Scope) renamer.Renamer {
	if moduleScope == nil {
		return renamer.NewNoOpRenamer(symbols)
	}

	r := renamer.NewNumberRenamer(symbols, reserved)
	for _, member := range moduleScope.Members {
		r.AddTopLevelSymbol(member.Ref)
	}
	for _, ref := range moduleScope.Generated {
		r.AddTopLevelSymbol(ref)
	}
	r.AssignNamesByScope(map[uint32][]*js_ast.Scope{sourceIndex: moduleScope.Children})
	return r
}

func outputFormat(o config.Options) config.Format {
	if o.Module == config.ModuleNone {
		return config.FormatESModule
	}
	return config.FormatPreserve
}

// helperPrelude concatenates the literal source text of every runtime
// helper a file's lowering/framing passes requested, in a fixed dependency
// order so repeated runs of the same input produce byte-identical output.
func helperPrelude(ctx *ast_ctx.Context) string {
	needed := map[string]bool{
		"__extends":    ctx.NeedsExtends,
		"__param":      ctx.NeedsParam,
		"__metadata":   ctx.NeedsMetadata,
		"__decorate":   ctx.NeedsDecorate,
		"__exportStar": ctx.NeedsExportStar,
	}

	var b strings.Builder
	for _, name := range runtime.HelperOrder {
		if needed[name] {
			b.WriteString(runtime.Helpers[name])
		}
	}
	return b.String()
}

// outputPath derives the file this source's emitted text should be written
// to. ctx.Options.AbsOutputFile pins a single explicit destination (only
// sensible for a one-file run); otherwise the source's own pretty path has
// its extension swapped for ".js", mirroring tsc's own default outFile-less
// behavior of emitting a ".js" sibling next to each input.
func outputPath(source logger.Source, options config.Options) string {
	if options.AbsOutputFile != "" {
		return options.AbsOutputFile
	}
	path := source.PrettyPath
	if dot := strings.LastIndexByte(path, '.'); dot > 0 {
		path = path[:dot]
	}
	return path + ".js"
}

// buildSourceMap assembles a standalone source map (version 3) for one
// file's chunk. Prepending prelude ahead of the printed body would
// otherwise invalidate every generated line number the chunk recorded;
// since the prelude is always whole lines, shifting the mapping down by its
// line count is just prepending one ';' per prelude line to the VLQ
// mappings string, exactly as an empty generated line is spelled in the
// source map format.
func buildSourceMap(source logger.Source, prelude string, chunk sourcemap.Chunk) []byte {
	var b strings.Builder
	b.WriteString(`{"version":3,"sources":[`)
	b.WriteString(quoteJSON(source.PrettyPath))
	b.WriteString(`],"sourcesContent":[`)
	b.WriteString(quoteJSON(source.Contents))
	b.WriteString(`],"names":[`)
	for i, name := range chunk.QuotedNames {
		if i > 0 {
			b.WriteByte(',')
		}
		b.Write(name)
	}
	b.WriteString(`],"mappings":"`)
	b.WriteString(strings.Repeat(";", strings.Count(prelude, "\n")))
	b.Write(chunk.Buffer.Data)
	b.WriteString(`"}`)
	return []byte(b.String())
}

func quoteJSON(s string) string {
	var b strings.Builder
	b.WriteByte('"')
	for _, r := range s {
		switch r {
		case '"':
			b.WriteString(`\"`)
		case '\\':
			b.WriteString(`\\`)
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		default:
			b.WriteRune(r)
		}
	}
	b.WriteByte('"')
	return b.String()
}
