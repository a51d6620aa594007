// Package compat maps a language target to the set of syntax forms the
// printer must avoid, grounded on the teacher's own compat package (the
// version-comparison helpers below are carried over verbatim) but with a
// JSFeature bitset authored fresh: the teacher's real feature table is keyed
// off browser versions pulled from caniuse data that wasn't part of the
// retrieved slice, so here it's keyed directly off the three language
// targets this repository actually lowers to (spec.md §4.6).
package compat

import "github.com/oss-emit/tsemit/internal/config"

type v struct {
	major uint16
	minor uint8
	patch uint8
}

// Semver is a parsed "major[.minor[.patch]][-prerelease]" version string.
type Semver struct {
	Parts      []int
	PreRelease string
}

func (s Semver) String() string {
	if len(s.Parts) == 0 {
		return "0.0.0" + s.PreRelease
	}
	out := ""
	for i, part := range s.Parts {
		if i > 0 {
			out += "."
		}
		out += itoa(part)
	}
	return out + s.PreRelease
}

func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	neg := n < 0
	if neg {
		n = -n
	}
	var buf [20]byte
	i := len(buf)
	for n > 0 {
		i--
		buf[i] = byte('0' + n%10)
		n /= 10
	}
	if neg {
		i--
		buf[i] = '-'
	}
	return string(buf[i:])
}

// Returns <0 if "a < b", 0 if "a == b", >0 if "a > b". A pre-release version
// always compares less than the same numeric version without one.
func compareVersions(a v, b Semver) int {
	diff := int(a.major)
	if len(b.Parts) > 0 {
		diff -= b.Parts[0]
	}
	if diff == 0 {
		diff = int(a.minor)
		if len(b.Parts) > 1 {
			diff -= b.Parts[1]
		}
	}
	if diff == 0 {
		diff = int(a.patch)
		if len(b.Parts) > 2 {
			diff -= b.Parts[2]
		}
	}
	if diff == 0 && b.PreRelease != "" {
		return 1
	}
	return diff
}

// JSFeature is a bitset of ES6+ syntax forms. A bit set for a feature means
// that syntax form is NOT supported by the requested target and must either
// be lowered (internal/lowering) or avoided when the printer has a choice
// of two equivalent spellings (e.g. template literals vs. string
// concatenation).
type JSFeature uint32

const (
	Arrow JSFeature = 1 << iota
	Class
	ClassField
	Const
	Destructuring
	DefaultArgument
	RestArgument
	DynamicImport
	ForOf
	Generator
	ImportAssertions
	ObjectExtensions
	OptionalCatchBinding
	TemplateLiteral
	UnicodeEscapes
	ExportStar
	OptionalChain
)

func (features JSFeature) Has(feature JSFeature) bool {
	return (features & feature) != 0
}

// UnsupportedFeatures returns the bits that must be avoided or lowered for
// the given target. Even ES6 lacks dynamic import(), import assertions,
// optional catch bindings and optional chaining, so those bits stay set for it.
func UnsupportedFeatures(target config.LanguageTarget) JSFeature {
	switch target {
	case config.ES3:
		return Arrow | Class | ClassField | Const | Destructuring | DefaultArgument |
			RestArgument | DynamicImport | ForOf | Generator | ImportAssertions |
			ObjectExtensions | OptionalCatchBinding | TemplateLiteral | UnicodeEscapes | ExportStar | OptionalChain
	case config.ES5:
		return Arrow | Class | ClassField | Const | Destructuring | DefaultArgument |
			RestArgument | DynamicImport | ForOf | Generator | ImportAssertions |
			ObjectExtensions | OptionalCatchBinding | TemplateLiteral | ExportStar | OptionalChain
	default: // config.ES6
		return DynamicImport | ImportAssertions | OptionalCatchBinding | OptionalChain
	}
}
