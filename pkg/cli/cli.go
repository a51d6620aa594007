// Package cli implements the flag parsing and file-writing behavior
// cmd/tsemit's main.go drives, kept separate from cmd/tsemit itself the
// same way the teacher splits cmd/esbuild's argument handling out into its
// own pkg/cli so a Go program can embed the same command-line behavior
// without shelling out to the built binary.
package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/oss-emit/tsemit/internal/ast_ctx"
	"github.com/oss-emit/tsemit/pkg/api"
)

// ParseEmitOptions reads --target/--module/--outfile/--sourcemap/--module-name/
// --amd-dep/--emit-decorator-metadata flags out of args, the way cmd/esbuild's own argument
// parser reads --target/--format. It never touches api.EmitOptions.Inputs;
// the caller supplies those separately since this repository has no source
// parser to turn positional file arguments into an AST.
func ParseEmitOptions(args []string) (api.EmitOptions, error) {
	var options api.EmitOptions

	for _, arg := range args {
		switch {
		case arg == "--sourcemap":
			options.SourceMap = api.SourceMapExternal
		case strings.HasPrefix(arg, "--sourcemap="):
			switch value(arg) {
			case "external":
				options.SourceMap = api.SourceMapExternal
			case "inline":
				options.SourceMap = api.SourceMapInline
			default:
				return options, fmt.Errorf("invalid value for --sourcemap: %q", value(arg))
			}
		case strings.HasPrefix(arg, "--target="):
			target, err := parseTarget(value(arg))
			if err != nil {
				return options, err
			}
			options.Target = target
		case strings.HasPrefix(arg, "--module="):
			module, err := parseModule(value(arg))
			if err != nil {
				return options, err
			}
			options.Module = module
		case strings.HasPrefix(arg, "--outfile="):
			options.AbsOutputFile = value(arg)
		case strings.HasPrefix(arg, "--module-name="):
			options.ModuleName = value(arg)
		case strings.HasPrefix(arg, "--amd-dep="):
			options.AMDDependencies = append(options.AMDDependencies, value(arg))
		case arg == "--emit-decorator-metadata":
			options.EmitDecoratorMetadata = true
		case strings.HasPrefix(arg, "--"):
			return options, fmt.Errorf("unknown flag: %s", arg)
		}
	}

	return options, nil
}

func value(arg string) string {
	return arg[strings.IndexByte(arg, '=')+1:]
}

func parseTarget(s string) (api.Target, error) {
	switch strings.ToLower(s) {
	case "es3":
		return api.ES3, nil
	case "es5":
		return api.ES5, nil
	case "es6", "es2015":
		return api.ES6, nil
	}
	return 0, fmt.Errorf("invalid value for --target: %q", s)
}

func parseModule(s string) (api.ModuleFormat, error) {
	switch strings.ToLower(s) {
	case "none":
		return api.ModuleNone, nil
	case "commonjs", "cjs":
		return api.ModuleCommonJS, nil
	case "amd":
		return api.ModuleAMD, nil
	case "system", "systemjs":
		return api.ModuleSystem, nil
	}
	return 0, fmt.Errorf("invalid value for --module: %q", s)
}

// Run applies the options parsed from osArgs to inputs, invokes api.Emit,
// prints diagnostics to stderr, and writes the resulting files to disk (or
// to stdout, for a single-file run with no --outfile). It returns the
// process exit code the way cmd/esbuild's own Run does.
func Run(osArgs []string, resolver ast_ctx.Resolver, host ast_ctx.Host, inputs []api.InputFile) int {
	options, err := ParseEmitOptions(osArgs)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	options.Resolver = resolver
	options.Host = host
	options.Inputs = inputs

	result := api.Emit(options)
	for _, msg := range result.Warnings {
		fmt.Fprintln(os.Stderr, "warning: "+formatMessage(msg))
	}
	for _, msg := range result.Errors {
		fmt.Fprintln(os.Stderr, "error: "+formatMessage(msg))
	}
	if len(result.Errors) > 0 {
		return 1
	}

	if options.AbsOutputFile == "" && len(result.Outputs) == 1 {
		os.Stdout.Write(result.Outputs[0].Contents)
		return 0
	}

	for _, output := range result.Outputs {
		if err := os.MkdirAll(filepath.Dir(output.Path), 0755); err != nil {
			fmt.Fprintf(os.Stderr, "error: failed to create output directory: %s\n", err)
			return 1
		}
		if err := os.WriteFile(output.Path, output.Contents, 0644); err != nil {
			fmt.Fprintf(os.Stderr, "error: failed to write %s: %s\n", output.Path, err)
			return 1
		}
		if output.SourceMap != nil {
			if err := os.WriteFile(output.Path+".map", output.SourceMap, 0644); err != nil {
				fmt.Fprintf(os.Stderr, "error: failed to write %s.map: %s\n", output.Path, err)
				return 1
			}
		}
	}
	return 0
}

func formatMessage(msg api.Message) string {
	if msg.Location == nil {
		return msg.Text
	}
	return msg.Location.File + ":" + strconv.Itoa(msg.Location.Line) + ": " + msg.Text
}
