// Command tsemit drives the lowering/module-framing/printing pipeline over
// a chosen worked example, mirroring the shape of the teacher's own
// cmd/esbuild while standing in for the parser front-end this repository
// doesn't have: it can't accept arbitrary TypeScript source on the command
// line, since spec.md places parsing behind the Resolver/Host boundary this
// repository never implements. What it demonstrates instead is a genuine
// end-to-end run of internal/lowering, internal/module, and
// internal/js_printer through pkg/api and pkg/cli, the same way the
// teacher's cmd/snapshot tools drive a curated example set through
// pkg/api.Build instead of through a full CLI argument surface.
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/oss-emit/tsemit/internal/fixtures"
	"github.com/oss-emit/tsemit/pkg/api"
	"github.com/oss-emit/tsemit/pkg/cli"
)

var helpText = `
Usage:
  tsemit --example=<name> [options]

Examples: ` + "`" + strings.Join(fixtures.Names, "`, `") + "`" + `

Options:
  --target=es3|es5|es6         Language target lowering stops at (default es3)
  --module=none|commonjs|amd|system
                                Module envelope internal/module wraps the file in
  --module-name=...            Registered id for the amd envelope
  --amd-dep=...                Extra leading AMD dependency (repeatable)
  --emit-decorator-metadata    Emit __metadata("design:paramtypes", ...) calls
  --sourcemap[=external|inline]
  --outfile=...                Write to this path instead of stdout
`

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	var exampleName string
	var rest []string
	for _, arg := range args {
		switch {
		case arg == "--help" || arg == "-h":
			fmt.Print(helpText)
			return 0
		case strings.HasPrefix(arg, "--example="):
			exampleName = arg[len("--example="):]
		default:
			rest = append(rest, arg)
		}
	}

	if exampleName == "" {
		fmt.Fprintln(os.Stderr, "error: --example=<name> is required")
		fmt.Print(helpText)
		return 1
	}

	example, ok := fixtures.Build(exampleName)
	if !ok {
		fmt.Fprintf(os.Stderr, "error: unknown example %q (available: %s)\n", exampleName, strings.Join(fixtures.Names, ", "))
		return 1
	}

	input := api.InputFile{
		Path:          example.Path,
		Tree:          example.Tree,
		Symbols:       example.Symbols,
		ImportRecords: example.ImportRecords,
	}

	return cli.Run(rest, fixtures.NoOpResolver{}, fixtures.NoOpHost{}, []api.InputFile{input})
}
