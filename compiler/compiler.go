// Package compiler orchestrates the whole pipeline described by spec
// §2's component table: lex, parse, resolve imports, analyze, lower
// to IR, build and optimize the CFG, then emit both backends.
//
// Grounded on the teacher's compiler.Compiler: a small object holding
// the input plus a debug flag, a New constructor, and a single
// Compile method returning (output, error) — generalized here to
// (*CompilationResult, error) because this pipeline has more than one
// output artifact (spec §3's CompilationResult).
package compiler

import (
	"os"

	"github.com/skx/source-compiler/ast"
	"github.com/skx/source-compiler/cfg"
	"github.com/skx/source-compiler/gencee"
	"github.com/skx/source-compiler/genstack"
	"github.com/skx/source-compiler/imports"
	"github.com/skx/source-compiler/ir"
	"github.com/skx/source-compiler/lexer"
	"github.com/skx/source-compiler/lint"
	"github.com/skx/source-compiler/optimize"
	"github.com/skx/source-compiler/sema"
	"github.com/skx/source-compiler/token"
)

// Options configures a compilation the way the teacher's Compiler's
// debug bool configures its output (set by value, no builder/fluent
// API needed for a flag set this small).
type Options struct {
	// LintLegacyKeywords runs lint.Check over the entry module's raw
	// token stream and attaches the result to CompilationResult.
	LintLegacyKeywords bool
}

// CompilationResult aggregates every artifact the pipeline produces
// for one compilation (spec §3): the entry module's own tokens, the
// import-merged program, the semantic result, the raw and optimized
// per-function CFGs, and both backends' output text.
type CompilationResult struct {
	Tokens    []token.Token
	Program   *ast.Program
	Sema      *sema.SemanticResult
	RawIR     *ir.Program
	CFGs      map[string]*cfg.Graph // pre-optimization, keyed by function name
	Optimized map[string]*cfg.Graph // post spec §4.7 pipeline
	CCode     string
	StackCode string
	Lint      []lint.Issue
}

// Compiler holds one compilation's input path and options.
type Compiler struct {
	entryPath string
	opts      Options
}

// New builds a Compiler for the module at entryPath.
func New(entryPath string) *Compiler {
	return &Compiler{entryPath: entryPath}
}

// SetOptions replaces the compiler's options, the same role the
// teacher's SetDebug plays for its single debug flag.
func (c *Compiler) SetOptions(opts Options) { c.opts = opts }

// Compile runs the full pipeline (spec §2's data flow): lex the entry
// module for its own token stream, resolve and merge imports (spec
// §4.3), run semantic analysis (spec §4.4, fatal on the first
// name/type error), then IR generation, CFG construction and
// optimization (wrapped per spec §7 so an internal failure there
// degrades to empty IR/CFGs rather than aborting), and finally both
// backends, which work from the AST and semantic result directly and
// so always run once semantic analysis has succeeded.
func (c *Compiler) Compile() (*CompilationResult, error) {
	text, err := os.ReadFile(c.entryPath)
	if err != nil {
		return nil, token.NewError(token.CodeMissingImport,
			"cannot read entry module "+c.entryPath+": "+err.Error(), 0, 0)
	}

	toks, err := lexer.Tokens(string(text))
	if err != nil {
		return nil, err
	}

	var lintIssues []lint.Issue
	if c.opts.LintLegacyKeywords {
		lintIssues = lint.Check(toks)
	}

	prog, err := imports.Resolve(c.entryPath)
	if err != nil {
		return nil, err
	}

	sem, err := sema.Analyze(prog)
	if err != nil {
		return nil, err
	}

	res := &CompilationResult{
		Tokens:  toks,
		Program: prog,
		Sema:    sem,
		Lint:    lintIssues,
	}

	res.RawIR, res.CFGs, res.Optimized = buildIRAndCFGs(prog, sem)

	res.CCode = gencee.Generate(prog, sem)
	res.StackCode = genstack.Generate(prog, sem)

	return res, nil
}

// buildIRAndCFGs runs IR generation, CFG construction and
// optimization, recovering from any internal panic so a failure here
// degrades to an empty IR program and empty CFG maps rather than
// aborting the whole compilation (spec §7's "IR generation and
// optimization are wrapped" guarantee — the backends below do not
// depend on any of this succeeding).
func buildIRAndCFGs(prog *ast.Program, sem *sema.SemanticResult) (raw *ir.Program, cfgs, optimized map[string]*cfg.Graph) {
	cfgs = map[string]*cfg.Graph{}
	optimized = map[string]*cfg.Graph{}

	defer func() {
		if recover() != nil {
			raw = &ir.Program{Functions: map[string]*ir.Function{}}
			cfgs = map[string]*cfg.Graph{}
			optimized = map[string]*cfg.Graph{}
		}
	}()

	raw = ir.Generate(prog, sem)
	for _, name := range raw.Order {
		fn := raw.Functions[name]
		cfgs[name] = cfg.Build(name, fn.Instrs)
		optimized[name] = optimize.Run(cfg.Build(name, fn.Instrs))
	}
	return raw, cfgs, optimized
}
