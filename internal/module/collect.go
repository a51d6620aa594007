// Package module implements spec.md §4.7: wrapping a lowered file's
// statement list in one of the four module envelopes (ES6 passthrough,
// CommonJS, AMD, System.register), the component the specification calls
// the "Module Framer" (C7). It runs after internal/lowering and before
// internal/js_printer in the pipeline SPEC_FULL.md §4 describes.
package module

import (
	"github.com/oss-emit/tsemit/internal/ast"
	"github.com/oss-emit/tsemit/internal/ast_ctx"
	"github.com/oss-emit/tsemit/internal/js_ast"
	"github.com/oss-emit/tsemit/internal/logger"
)

// ImportInfo is one top-level import or re-export-from statement, resolved
// against the file's import record list so a framer can decide between a
// bare "require(...)"/AMD-dependency reference and (in a future multi-file
// invocation) a direct reference to another emitted file's exports.
type ImportInfo struct {
	Record       ast.ImportRecord
	NamespaceRef js_ast.Ref
	DefaultName  *js_ast.LocRef
	Items        []js_ast.ClauseItem
}

// ExportedBinding is one top-level name a Framer needs to make visible on
// the module's exports object/registration call, alongside the local Ref
// that holds its live value.
type ExportedBinding struct {
	Alias string
	Ref   js_ast.Ref
}

// StarExport is a top-level "export * from './x'" or aliased "export * as
// ns from './x'" statement.
type StarExport struct {
	Record       ast.ImportRecord
	NamespaceRef js_ast.Ref
	Alias        string // empty for a bare "export * from"
}

// Info is spec.md §4.7's collectExternalModuleInfo pre-pass output: every
// top-level statement classified into imports, exports, star-exports, or
// plain body code, in source order for Body.
type Info struct {
	Imports     []ImportInfo
	Exports     []ExportedBinding
	StarExports []StarExport
	Body        []js_ast.Stmt
	HasExports  bool
}

// Collect walks stmts (already lowered by internal/lowering) once, in
// order, classifying each top-level statement the way spec.md §4.7
// describes. Statements that are themselves import/export syntax are
// consumed into Info's Imports/Exports/StarExports lists rather than kept
// in Body; every other statement is kept in Body with its IsExport flag
// cleared, since none of the three wrapped envelopes use the "export"
// keyword inside the wrapper body.
func Collect(ctx *ast_ctx.Context, stmts []js_ast.Stmt) Info {
	var info Info

	for _, stmt := range stmts {
		switch s := stmt.Data.(type) {
		case *js_ast.SImport:
			record := importRecordFor(ctx, s.ImportRecordIndex)
			imp := ImportInfo{Record: record, NamespaceRef: s.NamespaceRef}
			imp.DefaultName = s.DefaultName
			if s.Items != nil {
				imp.Items = *s.Items
			}
			info.Imports = append(info.Imports, imp)

		case *js_ast.SExportFrom:
			record := importRecordFor(ctx, s.ImportRecordIndex)
			info.Imports = append(info.Imports, ImportInfo{Record: record, NamespaceRef: s.NamespaceRef, Items: s.Items})
			for _, item := range s.Items {
				info.Exports = append(info.Exports, ExportedBinding{Alias: item.Alias, Ref: item.Name.Ref})
			}
			info.HasExports = true

		case *js_ast.SExportStar:
			record := importRecordFor(ctx, s.ImportRecordIndex)
			alias := ""
			if s.Alias != nil {
				alias = s.Alias.Name
			}
			info.StarExports = append(info.StarExports, StarExport{Record: record, NamespaceRef: s.NamespaceRef, Alias: alias})
			info.HasExports = true

		case *js_ast.SExportClause:
			for _, item := range s.Items {
				info.Exports = append(info.Exports, ExportedBinding{Alias: item.Alias, Ref: item.Name.Ref})
			}
			info.HasExports = true

		case *js_ast.SExportDefault:
			ref, kept := defaultExportStmt(ctx, s)
			info.Exports = append(info.Exports, ExportedBinding{Alias: "default", Ref: ref})
			info.HasExports = true
			if kept.Data != nil {
				info.Body = append(info.Body, kept)
			}

		case *js_ast.SLocal:
			if s.IsExport {
				for _, decl := range s.Decls {
					collectBindingNames(ctx, decl.Binding, &info.Exports)
				}
				info.HasExports = true
				s.IsExport = false
			}
			info.Body = append(info.Body, stmt)

		case *js_ast.SFunction:
			if s.IsExport {
				info.Exports = append(info.Exports, ExportedBinding{Alias: nameOf(ctx, s.Fn.Name), Ref: s.Fn.Name.Ref})
				info.HasExports = true
				s.IsExport = false
			}
			info.Body = append(info.Body, stmt)

		case *js_ast.SClass:
			if s.IsExport {
				info.Exports = append(info.Exports, ExportedBinding{Alias: nameOf(ctx, s.Class.Name), Ref: s.Class.Name.Ref})
				info.HasExports = true
				s.IsExport = false
			}
			info.Body = append(info.Body, stmt)

		default:
			info.Body = append(info.Body, stmt)
		}
	}

	warnIfExportStarIsAmbiguous(ctx, info.StarExports)
	return info
}

// warnIfExportStarIsAmbiguous flags the case where more than one bare
// "export * from" statement re-exports into the same top-level namespace: if
// two of those modules happen to export the same name, which one wins is
// determined by import order in the loader rather than by anything visible
// in this file, so a reader can't tell from the source alone. This repository
// has no visibility into another module's export list at compile time, so it
// can only warn about the possibility, not resolve it.
func warnIfExportStarIsAmbiguous(ctx *ast_ctx.Context, starExports []StarExport) {
	bareCount := 0
	for _, se := range starExports {
		if se.Alias == "" {
			bareCount++
		}
	}
	if bareCount > 1 {
		ctx.AddWarningWithID(logger.Loc{}, logger.MsgID_Module_AmbiguousExportStar,
			"more than one \"export * from\" re-exports into this module; a name exported by more than one of them resolves ambiguously")
	}
}

func importRecordFor(ctx *ast_ctx.Context, index uint32) ast.ImportRecord {
	if int(index) < len(ctx.ImportRecords) {
		return ctx.ImportRecords[index]
	}
	return ast.ImportRecord{}
}

func nameOf(ctx *ast_ctx.Context, ref *js_ast.LocRef) string {
	if ref == nil {
		return ""
	}
	return ctx.Symbols.Outer[ref.Ref.OuterIndex][ref.Ref.InnerIndex].OriginalName
}

// defaultExportStmt returns the Ref the "default" export alias should point
// at, plus the statement (if any) that should remain in the module body: a
// named function/class declaration keeps its declaration in the body and is
// referenced by name, while a bare expression becomes
// "var <generated> = <expr>;" so it has a Ref to export at all.
func defaultExportStmt(ctx *ast_ctx.Context, s *js_ast.SExportDefault) (js_ast.Ref, js_ast.Stmt) {
	if s.Value.Stmt != nil {
		switch d := s.Value.Stmt.Data.(type) {
		case *js_ast.SFunction:
			d.IsExport = false
			return d.Fn.Name.Ref, *s.Value.Stmt
		case *js_ast.SClass:
			d.IsExport = false
			return d.Class.Name.Ref, *s.Value.Stmt
		}
	}

	loc := s.DefaultName.Loc
	ref := s.DefaultName.Ref
	return ref, js_ast.Stmt{Loc: loc, Data: &js_ast.SLocal{
		Kind: js_ast.LocalVar,
		Decls: []js_ast.Decl{{
			Binding:    js_ast.Binding{Loc: loc, Data: &js_ast.BIdentifier{Ref: ref}},
			ValueOrNil: *s.Value.Expr,
		}},
	}}
}

func collectBindingNames(ctx *ast_ctx.Context, binding js_ast.Binding, out *[]ExportedBinding) {
	switch b := binding.Data.(type) {
	case *js_ast.BIdentifier:
		*out = append(*out, ExportedBinding{Alias: ctx.Symbols.Outer[b.Ref.OuterIndex][b.Ref.InnerIndex].OriginalName, Ref: b.Ref})
	case *js_ast.BArray:
		for _, item := range b.Items {
			collectBindingNames(ctx, item.Binding, out)
		}
	case *js_ast.BObject:
		for _, prop := range b.Properties {
			collectBindingNames(ctx, prop.Value, out)
		}
	}
}
