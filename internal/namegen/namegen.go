// Package namegen mints brand-new identifiers: temporaries invented during
// lowering (spec.md §4.3's makeTempVariableName), permanently-unique aliases
// (makeUniqueName), and per-node default names for anonymous exports and
// module bindings (generateNameForNode). It generalizes
// internal/renamer.NumberRenamer's scope-stack collision algorithm from
// *renaming an existing symbol* to *minting one that never existed*.
package namegen

import (
	"strconv"
	"strings"
)

// IsNameFree reports whether name is available for use as a brand-new
// identifier: not a Resolver global, not already declared in the current
// file, and not already minted by this Generator for another purpose.
type IsNameFree func(name string) bool

// Generator mints names for one source file. It is not safe for concurrent
// use; callers running one Generator per file in parallel (as
// internal/renamer.NumberRenamer.AssignNamesByScope already does for
// renaming) don't need to synchronize it.
type Generator struct {
	isNameFree IsNameFree
	generated  map[string]bool
	tempIndex  int
	usedIndex  bool
	usedLength bool
}

func NewGenerator(isNameFree IsNameFree) *Generator {
	return &Generator{
		isNameFree: isNameFree,
		generated:  make(map[string]bool),
	}
}

// ScopeFrame is the save/restore marker for the stack discipline of
// spec.md §4.8: temporaries invented inside a function/class/module body
// must not leak into a sibling scope once that body's emission completes.
type ScopeFrame struct {
	tempIndex int
}

func (g *Generator) PushScope() *ScopeFrame {
	return &ScopeFrame{tempIndex: g.tempIndex}
}

// PopScope restores the temporary counter to what it was when frame was
// pushed. Names recorded via UniqueName are intentionally NOT rolled back —
// spec.md §4.3 records those "permanent within the file".
func (g *Generator) PopScope(frame *ScopeFrame) {
	g.tempIndex = frame.tempIndex
}

// TempNameKind lets a caller request one of the two positions the cycle
// otherwise skips, mirroring tempFlags' two reserved bits for "_i" and "_n".
type TempNameKind uint8

const (
	TempNameAny TempNameKind = iota
	TempNameIndex             // request "_i" specifically (for-of/rest-parameter loop counters)
	TempNameLength            // request "_n" specifically (cached .length)
)

// TempName hands out "_i" or "_n" directly, once, to whichever caller first
// asks for that specific kind — mirroring tsc's own makeTempVariableName,
// which reserves those two letters for the loop-counter and cached-length
// idioms instead of ever handing them to a plain temporary. Every other
// request cycles "_a".."_z", then "_0", "_1", …, permanently skipping "_i"
// and "_n" so a later Index/Length request can still claim them. The
// winning name is not recorded permanently: once the enclosing ScopeFrame is
// popped, the same text can be reused in a sibling scope, exactly as
// spec.md §4.3 describes.
func (g *Generator) TempName(kind TempNameKind) string {
	switch kind {
	case TempNameIndex:
		if !g.usedIndex && g.isNameFree("_i") {
			g.usedIndex = true
			return "_i"
		}
	case TempNameLength:
		if !g.usedLength && g.isNameFree("_n") {
			g.usedLength = true
			return "_n"
		}
	}

	for {
		name := tempCandidate(g.tempIndex)
		g.tempIndex++

		if name == "_i" || name == "_n" {
			continue
		}
		if g.generated[name] {
			continue
		}
		if g.isNameFree(name) {
			return name
		}
	}
}

func tempCandidate(n int) string {
	if n < 26 {
		return "_" + string(rune('a'+n))
	}
	return "_" + strconv.Itoa(n-26)
}

// UniqueName tries base, then base_1, base_2, … until it finds a name that
// is free and hasn't already been minted by this Generator, then records
// the winner permanently. A second call with the same base is guaranteed to
// return a different name (spec.md §8's makeUniqueName idempotence law).
func (g *Generator) UniqueName(base string) string {
	name := base
	if g.generated[name] || !g.isNameFree(name) {
		for i := 1; ; i++ {
			name = base + "_" + strconv.Itoa(i)
			if !g.generated[name] && g.isNameFree(name) {
				break
			}
		}
	}
	g.generated[name] = true
	return name
}

// NameForDefaultExport returns the alias used for an anonymous
// function/class expression exported as the module's default, or for a
// default-export-assignment of a non-identifier expression.
func (g *Generator) NameForDefaultExport() string {
	return g.UniqueName("default")
}

// NameForNode returns the default alias generated for an AST node that has
// no name of its own (an anonymous class/function expression assigned into
// a slot the renamer's nested-scope slot numbering tracks). slot is the
// value renamer.AssignNestedScopeSlots recorded for the node's symbol;
// sibling scopes that reuse the same slot number get distinct aliases
// because UniqueName never returns the same name twice.
func (g *Generator) NameForNode(baseName string, slot int32) string {
	if slot <= 0 {
		return g.UniqueName(baseName)
	}
	return g.UniqueName(baseName + "_" + strconv.Itoa(int(slot)))
}

// NameForModulePath derives an identifier from an import/export module
// specifier for the case where the binding has no explicit local name —
// e.g. "export * from './foo-bar.js'" needs a namespace variable and
// "./foo-bar.js" isn't itself a legal identifier.
func (g *Generator) NameForModulePath(path string) string {
	return g.UniqueName(identifierFromModulePath(path))
}

func identifierFromModulePath(path string) string {
	base := path
	if slash := strings.LastIndexByte(base, '/'); slash != -1 {
		base = base[slash+1:]
	}
	if dot := strings.LastIndexByte(base, '.'); dot > 0 {
		base = base[:dot]
	}

	var b strings.Builder
	for i, r := range base {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r == '_', r == '$':
			b.WriteRune(r)
		case r >= '0' && r <= '9':
			if i == 0 {
				b.WriteByte('_')
			}
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}

	if b.Len() == 0 {
		return "_module"
	}
	return b.String()
}
