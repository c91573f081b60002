// Package imports implements the multi-module loading described in
// spec §4.3: given an entry module's path, it resolves every
// "import "path";" statement relative to the importing file's
// directory, parses each module exactly once, detects import cycles,
// and merges the result into a single ast.Program.
//
// Grounded on the teacher's own file handling in main.go (os.ReadFile
// plus a flat error return) and the lexer/parser's "read the whole
// thing, then process it" shape; nothing in the pack's other example
// repos offers a closer-fitting module loader, since none of them
// resolve a source-to-source import graph.
package imports

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/skx/source-compiler/ast"
	"github.com/skx/source-compiler/parser"
	"github.com/skx/source-compiler/token"
)

// unit is one parsed module: its resolved path and its own Program
// (before merging). unit records live for the duration of resolution
// so the visiting/completed bookkeeping below can reference them by
// path without re-parsing (spec §9 "do not rely on garbage collection").
type unit struct {
	path string
	prog *ast.Program
}

// Resolver walks the import graph rooted at an entry module, parsing
// each module exactly once and detecting cycles with a visiting stack
// plus a completed set (spec §9).
type Resolver struct {
	units     map[string]*unit
	completed map[string]bool
	visiting  []string
}

// Resolve parses entryPath and every module it (transitively) imports,
// and returns the merged Program: type declarations then functions
// from dependencies in reverse-topological order (leaves first),
// followed by the entry module's own declarations, with the entry's
// top-level statements and import list preserved (spec §4.3).
func Resolve(entryPath string) (*ast.Program, error) {
	r := &Resolver{
		units:     map[string]*unit{},
		completed: map[string]bool{},
	}

	entry, err := r.load(entryPath, true)
	if err != nil {
		return nil, err
	}

	merged := &ast.Program{
		Imports: entry.prog.Imports,
		Stmts:   entry.prog.Stmts,
	}

	var deps []*unit
	seen := map[string]bool{}
	r.collectDeps(entry, seen, &deps)

	for _, d := range deps {
		merged.Types = append(merged.Types, d.prog.Types...)
		merged.Functions = append(merged.Functions, d.prog.Functions...)
	}
	merged.Types = append(merged.Types, entry.prog.Types...)
	merged.Functions = append(merged.Functions, entry.prog.Functions...)

	return merged, nil
}

// collectDeps appends entry's dependencies, in reverse-topological
// (leaves-first) order, to *out — post-order DFS over the import
// graph, skipping modules already appended via seen.
func (r *Resolver) collectDeps(u *unit, seen map[string]bool, out *[]*unit) {
	for _, imp := range u.prog.Imports {
		path := resolvePath(u.path, imp)
		dep := r.units[path]
		if dep == nil {
			continue // already reported as missing during load
		}
		r.collectDeps(dep, seen, out)
		if !seen[path] {
			seen[path] = true
			*out = append(*out, dep)
		}
	}
}

// load parses path (if not already parsed), recursing into its
// imports, enforcing the non-entry "no top-level statements" rule and
// cycle detection along the way.
func (r *Resolver) load(path string, isEntry bool) (*unit, error) {
	path = normalize(path)

	if r.completed[path] {
		return r.units[path], nil
	}
	for _, v := range r.visiting {
		if v == path {
			chain := append(append([]string{}, r.visiting...), path)
			return nil, token.NewError(token.CodeCircularImport,
				"circular import: "+strings.Join(chain, " -> "), 0, 0)
		}
	}

	text, err := os.ReadFile(path)
	if err != nil {
		return nil, token.NewError(token.CodeMissingImport,
			"cannot read module "+path+": "+err.Error(), 0, 0)
	}

	r.visiting = append(r.visiting, path)

	prog, perr := parser.Parse(string(text))
	if perr != nil {
		return nil, rewriteForModule(path, perr)
	}
	if !isEntry && len(prog.Stmts) > 0 {
		return nil, token.NewError(token.CodeModuleHasMain,
			"module has main: "+path+" declares top-level statements "+
				"but is not the entry module", 0, 0)
	}

	u := &unit{path: path, prog: prog}
	r.units[path] = u

	for _, imp := range prog.Imports {
		depPath := resolvePath(path, imp)
		if _, err := r.load(depPath, false); err != nil {
			return nil, err
		}
	}

	r.visiting = r.visiting[:len(r.visiting)-1]
	r.completed[path] = true
	return u, nil
}

// sourceExt is the default extension appended to an import path that
// names none, per spec §4.3 and §6.
const sourceExt = ".src"

// resolvePath resolves an import path written in fromPath's module
// relative to fromPath's directory, defaulting its extension to
// sourceExt when the path names none.
func resolvePath(fromPath, importPath string) string {
	p := importPath
	if filepath.Ext(p) == "" {
		p += sourceExt
	}
	if !filepath.IsAbs(p) {
		p = filepath.Join(filepath.Dir(fromPath), p)
	}
	return normalize(p)
}

func normalize(path string) string {
	return filepath.Clean(path)
}

// rewriteForModule rewrites an error bubbled up from a sub-parse so it
// mentions the offending module path (spec §7).
func rewriteForModule(path string, err error) error {
	switch e := err.(type) {
	case *token.AggregateError:
		diags := make([]token.Diagnostic, len(e.Diagnostics))
		for i, d := range e.Diagnostics {
			d.Message = "in module " + path + ": " + d.Message
			diags[i] = d
		}
		return &token.AggregateError{Diagnostics: diags}
	case *token.Error:
		d := e.Diagnostic
		d.Message = "in module " + path + ": " + d.Message
		return &token.Error{Diagnostic: d}
	default:
		return err
	}
}
