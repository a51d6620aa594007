// Package config holds the option types shared by the lowering engine, the
// module framer, and the printer. It plays the same role the teacher's
// internal/config package does for the bundler, trimmed to the knobs this
// repository's operations actually branch on (spec.md §6).
package config

// LanguageTarget selects which ECMAScript syntax forms the lowering engine
// (internal/lowering) is allowed to leave in the output. Arranged so that
// lower targets compare less than higher ones, mirroring the teacher's
// LanguageTarget ordering trick.
type LanguageTarget int8

const (
	ES3 LanguageTarget = iota
	ES5
	ES6
)

// ModuleFormat selects which of the four envelopes internal/module wraps
// the emitted statements in.
type ModuleFormat uint8

const (
	// ModuleNone passes ES6 import/export statements through unchanged.
	ModuleNone ModuleFormat = iota
	ModuleCommonJS
	ModuleAMD
	ModuleSystem
)

// Format is the printer's own notion of output shape, distinct from
// ModuleFormat: ModuleFormat picks which envelope internal/module wraps a
// file in, while Format tells the printer which import/export spelling to
// keep for a file that internal/module left untouched (ModuleNone).
type Format uint8

const (
	FormatPreserve Format = iota
	FormatESModule
)

// LegalComments controls what happens to comments the router (spec.md §4.2)
// tags as pinned (a "/*!"-prefixed or license-looking block comment).
type LegalComments uint8

const (
	LegalCommentsNone LegalComments = iota
	LegalCommentsInline
	LegalCommentsEndOfFile
	LegalCommentsLinkedWithComment
	LegalCommentsExternalWithoutComment
)

type SourceMapMode uint8

const (
	SourceMapNone SourceMapMode = iota
	SourceMapInline
	SourceMapLinkedWithComment
	SourceMapExternalWithoutComment
)

// StrictOptions mirrors the teacher's own strict/loose knob shape (originally
// used for nullish-coalescing and class-field lowering) but repurposed for
// the strictness choices this repository's lowering passes make.
type StrictOptions struct {
	// Loose:  "class Foo { foo = 1 }" synthesizes a constructor assignment.
	// Strict: class fields go through Object.defineProperty so getters and
	// setters on the prototype chain are triggered correctly.
	ClassFields bool
}

// Options is the fully-resolved configuration threaded through a single
// Emit call: one value per invocation, built once by pkg/api or pkg/cli and
// then treated as read-only by every pass.
type Options struct {
	Target LanguageTarget
	Module ModuleFormat

	SourceMap   SourceMapMode
	SourceRoot  string
	MapRoot     string
	InlineNames bool

	AbsOutputFile string

	EmitBOM              bool
	RemoveComments       bool
	PreserveConstEnums   bool
	SeparateCompilation  bool
	EmitDecoratorMetadata bool

	Strict StrictOptions

	// ModuleName is used by the AMD and System framers as the module's own
	// registered id; empty means anonymous (the common case for AMD loaders
	// that derive the id from the request path).
	ModuleName string

	// AMDDependencies lists extra bare module specifiers (e.g. "require",
	// "exports") to thread through an AMD define() call ahead of the
	// statically-detected imports.
	AMDDependencies []string
}
