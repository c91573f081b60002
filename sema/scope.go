package sema

import (
	"fmt"
	"sort"

	"github.com/skx/source-compiler/ast"
	"github.com/skx/source-compiler/token"
)

// VarSymbol is the semantic record for one declared variable.
type VarSymbol struct {
	Type string
	Pos  ast.Pos
	Used bool
}

// ScopeSnapshot preserves one popped scope's final symbol table for
// the symbol-table dump (spec §6), keyed by a label of the form
// "function.tag.N" built when the scope was pushed.
type ScopeSnapshot struct {
	Label string
	Vars  map[string]VarSymbol
}

// scopeStack is the vector-of-mappings described in spec §9: pushed on
// entering a block, popped (with an unused_variable warning per
// never-read symbol) on exit. It is owned by one Analyzer instance,
// per function, and torn down completely before the next function starts.
type scopeStack struct {
	funcName string
	frames   []map[string]*VarSymbol
	labels   []string
	counters map[string]int
}

func newScopeStack(funcName string) *scopeStack {
	return &scopeStack{funcName: funcName, counters: map[string]int{}}
}

// push adds a fresh scope tagged for the snapshot label, returning that label.
func (s *scopeStack) push(tag string) string {
	s.counters[tag]++
	label := fmt.Sprintf("%s.%s.%d", s.funcName, tag, s.counters[tag])
	s.frames = append(s.frames, map[string]*VarSymbol{})
	s.labels = append(s.labels, label)
	return label
}

// pop removes the innermost scope, emitting unused_variable warnings
// for every symbol that was never read, and returns a snapshot for dumps.
func (s *scopeStack) pop(a *Analyzer) ScopeSnapshot {
	n := len(s.frames)
	frame := s.frames[n-1]
	label := s.labels[n-1]
	s.frames = s.frames[:n-1]
	s.labels = s.labels[:n-1]

	snap := ScopeSnapshot{Label: label, Vars: map[string]VarSymbol{}}
	names := make([]string, 0, len(frame))
	for name := range frame {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		sym := frame[name]
		snap.Vars[name] = *sym
		if !sym.Used {
			a.warnf(token.WarnUnusedVariable, sym.Pos, "variable %q is never used", name)
		}
	}
	return snap
}

// declare adds name to the innermost scope, failing on a duplicate
// within that same scope (spec §4.4's "declare_var fails on duplicate
// names in the innermost scope").
func (s *scopeStack) declare(a *Analyzer, name, typ string, pos ast.Pos) {
	top := s.frames[len(s.frames)-1]
	if _, exists := top[name]; exists {
		a.fail(token.CodeRedeclaredVariable, pos, "variable %q already declared in this scope", name)
	}
	top[name] = &VarSymbol{Type: typ, Pos: pos}
}

// lookup searches innermost-out, marking the symbol used, and fails
// with undeclared_variable (optionally suggesting a close match) on a miss.
func (s *scopeStack) lookup(a *Analyzer, name string, pos ast.Pos) *VarSymbol {
	for i := len(s.frames) - 1; i >= 0; i-- {
		if sym, ok := s.frames[i][name]; ok {
			sym.Used = true
			return sym
		}
	}

	msg := fmt.Sprintf("undeclared variable %q", name)
	if suggestion := closestMatch(name, s.candidateNames()); suggestion != "" {
		msg += fmt.Sprintf(". Did you mean `%s`?", suggestion)
	}
	a.fail(token.CodeUndeclaredVariable, pos, "%s", msg)
	return nil // unreached: fail panics
}

// candidateNames collects every name visible from any active scope,
// for the did-you-mean heuristic.
func (s *scopeStack) candidateNames() []string {
	var names []string
	for _, frame := range s.frames {
		for name := range frame {
			names = append(names, name)
		}
	}
	return names
}
