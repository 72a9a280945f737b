package grammar

import (
	"fmt"
	"io"
)

// GrammarAnalysis holds the FIRST and FOLLOW sets of a grammar.
// It is created by Analysis and is read-only afterwards.
type GrammarAnalysis struct {
	g      *Grammar
	first  map[*Symbol]SymbolSet // FIRST sets of non-terminals
	follow map[*Symbol]SymbolSet // FOLLOW sets of non-terminals
}

// Analysis computes FIRST and FOLLOW sets for all non-terminals of g,
// including the augmented start symbol.
func Analysis(g *Grammar) *GrammarAnalysis {
	ga := &GrammarAnalysis{g: g}
	ga.first = newSetMap(g)
	for pass := 1; ; pass++ {
		changed := firstPass(g, ga.first)
		tracer().Debugf("FIRST pass %d, changed = %v", pass, changed)
		if !changed {
			break
		}
	}
	ga.follow = newSetMap(g)
	ga.follow[g.start].Add(EOF)
	ga.follow[g.augStart].Add(EOF)
	for pass := 1; ; pass++ {
		changed := followPass(g, ga.first, ga.follow)
		tracer().Debugf("FOLLOW pass %d, changed = %v", pass, changed)
		if !changed {
			break
		}
	}
	return ga
}

func newSetMap(g *Grammar) map[*Symbol]SymbolSet {
	m := make(map[*Symbol]SymbolSet, len(g.nonterminals)+1)
	m[g.augStart] = NewSymbolSet()
	for _, A := range g.nonterminals {
		m[A] = NewSymbolSet()
	}
	return m
}

// firstPass unions FIRST(α) into FIRST(A) for every production A -> α.
// It returns true if any set has changed.
func firstPass(g *Grammar, first map[*Symbol]SymbolSet) bool {
	changed := false
	for _, p := range g.productions {
		if first[p.LHS].Union(firstOf(first, p.rhs), nil) {
			changed = true
		}
	}
	return changed
}

// followPass propagates FOLLOW information for every non-terminal occurence
// on a right hand side. It returns true if any set has changed.
func followPass(g *Grammar, first, follow map[*Symbol]SymbolSet) bool {
	changed := false
	for _, p := range g.productions {
		for j, X := range p.rhs {
			if X.IsTerminal() {
				continue
			}
			fbeta := firstOf(first, p.rhs[j+1:])
			if follow[X].Union(fbeta, Epsilon) {
				changed = true
			}
			if fbeta.Contains(Epsilon) && follow[X].Union(follow[p.LHS], nil) {
				changed = true
			}
		}
	}
	return changed
}

func firstOfSymbol(first map[*Symbol]SymbolSet, X *Symbol) SymbolSet {
	if X.IsTerminal() {
		return NewSymbolSet(X)
	}
	if f, ok := first[X]; ok {
		return f
	}
	return NewSymbolSet()
}

// firstOf computes FIRST(X1 … Xn). FIRST of the empty sequence is { ε }.
func firstOf(first map[*Symbol]SymbolSet, alpha []*Symbol) SymbolSet {
	result := NewSymbolSet()
	for _, X := range alpha {
		fx := firstOfSymbol(first, X)
		result.Union(fx, Epsilon)
		if !fx.Contains(Epsilon) {
			return result
		}
	}
	result.Add(Epsilon)
	return result
}

// Grammar returns the grammar this analysis is for.
func (ga *GrammarAnalysis) Grammar() *Grammar {
	return ga.g
}

// First returns FIRST(X). For terminals, this is { X }.
func (ga *GrammarAnalysis) First(X *Symbol) SymbolSet {
	return firstOfSymbol(ga.first, X).Copy()
}

// FirstOf returns FIRST(α) for a sequence of symbols.
func (ga *GrammarAnalysis) FirstOf(alpha []*Symbol) SymbolSet {
	return firstOf(ga.first, alpha)
}

// Follow returns FOLLOW(A) for a non-terminal A. For terminals the result is empty.
func (ga *GrammarAnalysis) Follow(A *Symbol) SymbolSet {
	if f, ok := ga.follow[A]; ok {
		return f.Copy()
	}
	return NewSymbolSet()
}

// Nullable is true if A derives ε.
func (ga *GrammarAnalysis) Nullable(A *Symbol) bool {
	return firstOfSymbol(ga.first, A).Contains(Epsilon)
}

// Dump writes the FIRST sets of all grammar symbols, including ε, and the
// FOLLOW sets of all non-terminals to w, ordered by name.
func (ga *GrammarAnalysis) Dump(w io.Writer) {
	N := NewSymbolSet(ga.g.nonterminals...)
	all := NewSymbolSet(ga.g.terminals...)
	all.Add(Epsilon)
	all.Union(N, nil)
	fmt.Fprintln(w, "FIRST sets:")
	for _, X := range all.Symbols() {
		fmt.Fprintf(w, "%s: %s\n", X, firstOfSymbol(ga.first, X))
	}
	fmt.Fprintln(w, "FOLLOW sets:")
	for _, A := range N.Symbols() {
		fmt.Fprintf(w, "%s: %s\n", A, ga.follow[A])
	}
}
