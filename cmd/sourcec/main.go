// This is the main-driver for the compiler: a thin client that reads
// a module from disk, runs the pipeline, and writes the requested
// output to stdout (spec §1's "command-line front-ends... are out of
// scope" names only the interface this binary is built against).
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/skx/source-compiler/compiler"
	"github.com/skx/source-compiler/dump"
	"github.com/skx/source-compiler/token"
)

func main() {
	emit := flag.String("emit", "c", "Output to produce: c, stack, tokens, ast, ast-dot, ir, cfg, cfg-dot, symbols.")
	lintLegacy := flag.Bool("lint", false, "Report legacy-keyword spellings alongside compilation.")
	flag.Parse()

	if len(flag.Args()) != 1 {
		fmt.Println("Usage: sourcec [flags] path/to/module.src")
		os.Exit(1)
	}
	path := flag.Args()[0]

	c := compiler.New(path)
	c.SetOptions(compiler.Options{LintLegacyKeywords: *lintLegacy})

	res, err := c.Compile()
	if err != nil {
		reportErr(path, err)
		os.Exit(1)
	}

	for _, w := range res.Sema.Warnings {
		fmt.Fprint(os.Stderr, dump.PrintDiagnostic(path, "", w))
	}
	for _, l := range res.Lint {
		fmt.Fprintf(os.Stderr, "%s:%s\n", path, l.String())
	}

	fmt.Print(render(*emit, res))
}

// render selects one of the pipeline's textual outputs (spec §6
// "Pipeline outputs").
func render(emit string, res *compiler.CompilationResult) string {
	switch emit {
	case "c":
		return res.CCode
	case "stack":
		return res.StackCode
	case "tokens":
		return dump.Tokens(res.Tokens)
	case "ast":
		return dump.Tree(res.Program)
	case "ast-dot":
		return dump.Dot(res.Program)
	case "ir":
		return dump.IR(res.RawIR)
	case "cfg":
		return dump.CFGs(res.Optimized)
	case "cfg-dot":
		return dump.CFGDot(res.Optimized)
	case "symbols":
		return dump.Symbols(res.Sema)
	default:
		return fmt.Sprintf("unknown -emit value %q\n", emit)
	}
}

func reportErr(path string, err error) {
	switch e := err.(type) {
	case *token.AggregateError:
		for _, d := range e.Diagnostics {
			fmt.Fprint(os.Stderr, dump.PrintDiagnostic(path, "", d))
		}
	case *token.Error:
		fmt.Fprint(os.Stderr, dump.PrintDiagnostic(path, "", e.Diagnostic))
	default:
		fmt.Fprintf(os.Stderr, "%s: %s\n", path, err.Error())
	}
}
