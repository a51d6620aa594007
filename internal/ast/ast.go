// Package ast holds the small set of data structures shared across the
// emitter's packages that don't belong to any single one of them: import
// bookkeeping, comment ranges, and the compact "valid or not" index type
// used throughout the source-map recorder.
package ast

import "github.com/oss-emit/tsemit/internal/logger"

// ImportKind classifies why an import record exists. The teacher's version
// of this type also carries bundler-only kinds (require.resolve, CSS
// @import, url() tokens); those are dropped here because module resolution
// and bundling are outside this repository's scope (spec.md §1 Non-goals).
type ImportKind uint8

const (
	ImportStmt ImportKind = iota
	ImportDynamic
	ImportEquals
)

type ImportRecord struct {
	Path  logger.Path
	Range logger.Range
	Kind  ImportKind

	// Valid when this import's target is another file passed to the same
	// Emit call (spec.md §5's multi-file CLI invocation). Nothing in this
	// repository sets or reads it: the module framers always emit a plain
	// "require(...)" call or dependency reference for every import.
	SourceIndex Index32

	// True for "import * as ns from" and "export * from". None of the module
	// framers in internal/module reads this flag.
	ContainsImportStar bool

	// True for "import x from" / "import {default as x} from"
	ContainsDefaultAlias bool

	Assertions []AssertEntry
}

type AssertEntry struct {
	Key      string
	Value    string
	KeyLoc   logger.Loc
	ValueLoc logger.Loc
}

func FindAssertion(assertions []AssertEntry, name string) *AssertEntry {
	for i := range assertions {
		if assertions[i].Key == name {
			return &assertions[i]
		}
	}
	return nil
}

// CommentKind classifies a comment range. No package in this repository
// reads CommentKind or CommentRange; the printer's comments come from
// js_ast.SComment statements.
type CommentKind uint8

const (
	CommentLine CommentKind = iota
	CommentBlock
	// CommentPinned marks "/*!"-prefixed and triple-slash-directive comments.
	CommentPinned
)

type CommentRange struct {
	Kind CommentKind
	Loc  logger.Loc
	Text string

	// True if there is at least one blank line between this comment and the
	// node that follows it. Detached comments (e.g. a copyright header) are
	// recognized by this flag being set on the first comment attached to a
	// source file.
	HasBlankLineAfter bool
}

// Index32 stores a 32-bit index where the zero value is invalid. Storing the
// bits flipped means the zero value of the struct (all bits zero) reads as
// "invalid" without a separate boolean field, avoiding both a wasted byte of
// padding and an extra branch at every call site that only wants to know
// "do I have one of these or not". Used by the source-map recorder for
// original-name references, which are optional on most spans.
type Index32 struct {
	flippedBits uint32
}

func MakeIndex32(index uint32) Index32 {
	return Index32{flippedBits: ^index}
}

func (i Index32) IsValid() bool {
	return i.flippedBits != 0
}

func (i Index32) GetIndex() uint32 {
	return ^i.flippedBits
}
