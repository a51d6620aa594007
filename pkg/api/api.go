// Package api is the public entry point external callers (pkg/cli, or a Go
// program importing this module directly) use to drive an emit run, the way
// the teacher's own pkg/api wraps its internal bundler. It defines its own
// plain enums instead of exposing internal/config's directly so the
// internal option types stay free to change shape without breaking a
// caller's compiled code.
package api

import (
	"github.com/oss-emit/tsemit/internal/ast"
	"github.com/oss-emit/tsemit/internal/ast_ctx"
	"github.com/oss-emit/tsemit/internal/config"
	"github.com/oss-emit/tsemit/internal/emitter"
	"github.com/oss-emit/tsemit/internal/js_ast"
	"github.com/oss-emit/tsemit/internal/logger"
)

type Target uint8

const (
	ES3 Target = iota
	ES5
	ES6
)

type ModuleFormat uint8

const (
	ModuleNone ModuleFormat = iota
	ModuleCommonJS
	ModuleAMD
	ModuleSystem
)

type SourceMap uint8

const (
	SourceMapNone SourceMap = iota
	SourceMapExternal
	SourceMapInline
)

// Location and Message mirror internal/logger's diagnostic shape without
// exposing the internal package to callers outside this module.
type Location struct {
	File   string
	Line   int
	Column int
	Length int
}

type Message struct {
	Text     string
	Location *Location
}

// InputFile is one file to emit, carrying the already-bound AST a
// checker/binder stage produced. Parsing and type checking sit behind
// ast_ctx.Resolver/ast_ctx.Host, outside this package's scope, so a caller
// hands Emit the parsed tree directly instead of source text.
type InputFile struct {
	Path          string
	Contents      string
	Tree          js_ast.AST
	Symbols       []js_ast.Symbol
	ImportRecords []ast.ImportRecord
}

type EmitOptions struct {
	Target Target
	Module ModuleFormat

	// ModuleName and AMDDependencies configure the AMD envelope; see
	// internal/module.FrameAMD. internal/module.FrameSystem reads neither.
	ModuleName      string
	AMDDependencies []string

	EmitDecoratorMetadata bool
	SourceMap             SourceMap

	// AbsOutputFile pins every input to a single output path; leave empty
	// to derive one ".js" sibling per input file.
	AbsOutputFile string

	Resolver ast_ctx.Resolver
	Host     ast_ctx.Host

	Inputs []InputFile
}

type OutputFile struct {
	Path      string
	Contents  []byte
	SourceMap []byte
}

type EmitResult struct {
	Errors   []Message
	Warnings []Message
	Outputs  []OutputFile
}

// Emit lowers, frames, and prints every input file, translating this
// package's public option enums into internal/config.Options before
// handing off to internal/emitter.Emit.
func Emit(options EmitOptions) EmitResult {
	sources := make([]emitter.SourceInput, len(options.Inputs))
	for i, in := range options.Inputs {
		sources[i] = emitter.SourceInput{
			Source: logger.Source{
				KeyPath:    logger.Path{Text: in.Path},
				PrettyPath: in.Path,
				Contents:   in.Contents,
			},
			Tree:          in.Tree,
			Symbols:       in.Symbols,
			ImportRecords: in.ImportRecords,
		}
	}

	result := emitter.Emit(emitter.EmitOptions{
		Sources:  sources,
		Resolver: options.Resolver,
		Host:     options.Host,
		Options: config.Options{
			Target:                convertTarget(options.Target),
			Module:                convertModule(options.Module),
			ModuleName:            options.ModuleName,
			AMDDependencies:       options.AMDDependencies,
			EmitDecoratorMetadata: options.EmitDecoratorMetadata,
			SourceMap:             convertSourceMap(options.SourceMap),
			AbsOutputFile:         options.AbsOutputFile,
		},
	})

	var errors, warnings []Message
	for _, msg := range result.Diagnostics {
		converted := convertMessage(msg)
		if msg.Kind == logger.Error {
			errors = append(errors, converted)
		} else {
			warnings = append(warnings, converted)
		}
	}

	outputs := make([]OutputFile, len(result.Files))
	for i, f := range result.Files {
		outputs[i] = OutputFile{Path: f.Path, Contents: f.Contents, SourceMap: f.SourceMap}
	}

	return EmitResult{Errors: errors, Warnings: warnings, Outputs: outputs}
}

func convertTarget(t Target) config.LanguageTarget {
	switch t {
	case ES3:
		return config.ES3
	case ES5:
		return config.ES5
	default:
		return config.ES6
	}
}

func convertModule(m ModuleFormat) config.ModuleFormat {
	switch m {
	case ModuleCommonJS:
		return config.ModuleCommonJS
	case ModuleAMD:
		return config.ModuleAMD
	case ModuleSystem:
		return config.ModuleSystem
	default:
		return config.ModuleNone
	}
}

func convertSourceMap(s SourceMap) config.SourceMapMode {
	switch s {
	case SourceMapExternal:
		return config.SourceMapExternalWithoutComment
	case SourceMapInline:
		return config.SourceMapInline
	default:
		return config.SourceMapNone
	}
}

func convertMessage(msg logger.Msg) Message {
	converted := Message{Text: msg.Text}
	if msg.Location != nil {
		converted.Location = &Location{
			File:   msg.Location.File,
			Line:   msg.Location.Line,
			Column: msg.Location.Column,
			Length: msg.Location.Length,
		}
	}
	return converted
}
