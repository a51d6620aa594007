// Package ast_ctx defines the two external collaborators the emitter core
// consults for everything outside its own scope — Resolver for semantic
// questions, Host for file I/O — and the shared per-file Context that
// carries them, plus naming/renaming state, across the lowering, module
// framing, and printing passes (SPEC_FULL.md §4.0).
//
// The teacher's own printer keeps this state as private fields directly on
// `printer`. It is factored out here because this repository needs the same
// state visible to three separate passes instead of one.
package ast_ctx

import (
	"github.com/oss-emit/tsemit/internal/ast"
	"github.com/oss-emit/tsemit/internal/config"
	"github.com/oss-emit/tsemit/internal/js_ast"
	"github.com/oss-emit/tsemit/internal/logger"
	"github.com/oss-emit/tsemit/internal/namegen"
	"github.com/oss-emit/tsemit/internal/renamer"
)

// NodeCheckFlags mirrors the subset of TypeScript's per-node check-flag
// bitset this emitter actually consults (spec.md §3's "getNodeCheckFlags").
type NodeCheckFlags uint32

const (
	// NodeCheckCapturesThis marks a function whose body (or a function
	// nested inside it) references lexical "this" from an arrow function,
	// requiring the "var _this = this;" capture of spec.md §4.6.
	NodeCheckCapturesThis NodeCheckFlags = 1 << iota
)

// Resolver answers the semantic questions spec.md §3 and §6 name. Every
// method is pure and read-only from the emitter's perspective.
type Resolver interface {
	HasGlobalName(name string) bool
	GetConstantValue(ref js_ast.Ref) (js_ast.ConstValue, bool)
	GetExpressionNameSubstitution(ref js_ast.Ref) (string, bool)
	GetBlockScopedVariableID(ref js_ast.Ref) (uint32, bool)
	ResolvesToSomeValue(ref js_ast.Ref) bool
	GetNodeCheckFlags(ref js_ast.Ref) NodeCheckFlags
	IsReferencedAliasDeclaration(ref js_ast.Ref) bool
	IsValueAliasDeclaration(ref js_ast.Ref) bool
	SerializeTypeOfNode(ref js_ast.Ref) js_ast.Expr
	SerializeParameterTypesOfNode(ref js_ast.Ref) []js_ast.Expr
	SerializeReturnTypeOfNode(ref js_ast.Ref) js_ast.Expr
}

// Host provides file I/O and path canonicalization (spec.md §6).
type Host interface {
	SourceFiles() []logger.Source
	CompilerOptions() config.Options
	NewLine() string
	CurrentDirectory() string
	CommonSourceDirectory() string
	CanonicalFileName(path string) string
	WriteFile(path string, text string, writeBOM bool) error
}

// Context is the per-source-file state shared by internal/lowering,
// internal/module, and internal/js_printer. One Context is created per file
// per spec.md §5's "no shared mutable state across files"; internal/emitter
// creates a fresh Context for each file as it walks the files one at a time.
type Context struct {
	Resolver Resolver
	Host     Host
	Log      logger.Log
	Source   *logger.Source
	Options  config.Options

	Symbols       js_ast.SymbolMap
	SourceIndex   uint32
	ImportRecords []ast.ImportRecord

	Renamer renamer.Renamer
	NameGen *namegen.Generator

	// Helper-emission flags, mirroring the teacher's on-demand runtime
	// injection in internal/runtime: set the first time a lowering pass
	// needs the corresponding helper, consulted once by internal/emitter
	// when it assembles the helper prelude (spec.md §4.8).
	NeedsExtends         bool
	NeedsDecorate        bool
	NeedsParam           bool
	NeedsMetadata        bool
	NeedsExportStar      bool
	NeedsCommonJSHelpers bool

	helperRefs map[string]js_ast.Ref
}

// HelperRef returns the Ref lowering code should use to call a named runtime
// helper ("__extends", "__decorate", "__param", "__metadata", "__exportStar";
// "__export" sets the same NeedsExportStar flag as "__exportStar"), minting the backing symbol the first time it's asked for and flipping the
// matching Needs* flag so internal/emitter knows to splice that helper's
// source out of internal/runtime into the file's prelude.
func (c *Context) HelperRef(name string) js_ast.Ref {
	if c.helperRefs == nil {
		c.helperRefs = make(map[string]js_ast.Ref)
	}
	if ref, ok := c.helperRefs[name]; ok {
		return ref
	}

	switch name {
	case "__extends":
		c.NeedsExtends = true
	case "__decorate":
		c.NeedsDecorate = true
	case "__param":
		c.NeedsParam = true
	case "__metadata":
		c.NeedsMetadata = true
	case "__export", "__exportStar":
		c.NeedsExportStar = true
	}

	ref := c.NewSymbol(js_ast.SymbolHoisted, name)
	c.helperRefs[name] = ref
	return ref
}

// GlobalRef returns the Ref lowering code should use to reference a global
// such as "Object" or "Array", minting an unbound symbol the first time it's
// asked for so the renamer never touches it and never reports a collision
// against it.
func (c *Context) GlobalRef(name string) js_ast.Ref {
	if c.helperRefs == nil {
		c.helperRefs = make(map[string]js_ast.Ref)
	}
	key := "global:" + name
	if ref, ok := c.helperRefs[key]; ok {
		return ref
	}
	ref := c.NewSymbol(js_ast.SymbolUnbound, name)
	c.helperRefs[key] = ref
	return ref
}

// New builds a Context for one file. reservedNames should come from
// renamer.ComputeReservedNames over the file's module scope, so temporaries
// minted during lowering never collide with anything already declared or
// keyword-reserved.
func New(
	resolver Resolver,
	host Host,
	log logger.Log,
	source *logger.Source,
	options config.Options,
	symbols js_ast.SymbolMap,
	sourceIndex uint32,
	importRecords []ast.ImportRecord,
	reservedNames map[string]uint32,
) *Context {
	c := &Context{
		Resolver:      resolver,
		Host:          host,
		Log:           log,
		Source:        source,
		Options:       options,
		Symbols:       symbols,
		SourceIndex:   sourceIndex,
		ImportRecords: importRecords,
	}
	c.NameGen = namegen.NewGenerator(func(name string) bool {
		if resolver != nil && resolver.HasGlobalName(name) {
			return false
		}
		_, taken := reservedNames[name]
		return !taken
	})
	return c
}

// NewSymbol mints a brand-new symbol in this file's slot of the shared
// symbol map and returns a Ref to it — used by lowering passes that
// introduce synthetic bindings (loop counters, captured "_this", the
// per-file namespace ref a module envelope needs).
func (c *Context) NewSymbol(kind js_ast.SymbolKind, name string) js_ast.Ref {
	innerIndex := uint32(len(c.Symbols.Outer[c.SourceIndex]))
	c.Symbols.Outer[c.SourceIndex] = append(c.Symbols.Outer[c.SourceIndex], js_ast.Symbol{
		Kind:         kind,
		OriginalName: name,
	})
	return js_ast.Ref{OuterIndex: c.SourceIndex, InnerIndex: innerIndex}
}

// AddError and AddWarning append to this file's diagnostic list
// (spec.md §7); internal/emitter sorts and dedups the accumulated list
// across all files at the end of a run.
func (c *Context) AddError(loc logger.Loc, text string) {
	c.Log.AddError(c.Source, loc, text)
}

func (c *Context) AddWarning(loc logger.Loc, text string) {
	c.Log.AddWarning(c.Source, loc, text)
}

// AddErrorWithID and AddWarningWithID tag the diagnostic with a MsgID so
// "--log-override" can single out this category (see internal/logger's
// msg_ids.go).
func (c *Context) AddErrorWithID(loc logger.Loc, id logger.MsgID, text string) {
	c.Log.AddErrorWithID(c.Source, loc, id, text)
}

func (c *Context) AddWarningWithID(loc logger.Loc, id logger.MsgID, text string) {
	c.Log.AddWarningWithID(c.Source, loc, id, text)
}
