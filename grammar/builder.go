package grammar

import (
	"fmt"
)

// GrammarBuilder is a builder type for grammars. Clients add rules with LHS(…),
// then call Grammar() to receive the completed grammar.
//
//    b := grammar.NewGrammarBuilder("G")
//    b.LHS("S").N("A").T("a").End()  // S  ->  A a
//    b.LHS("A").Epsilon()            // A  ->  ε
//    g, err := b.Grammar()
//
// Symbols are declared implicitly by their first usage. Clients may declare
// them explicitly beforehand, in which case the order of declaration defines
// the order returned by Grammar.Terminals and Grammar.NonTerminals.
type GrammarBuilder struct {
	g         *Grammar
	startName string
	err       error // first error encountered
	done      bool
}

// RuleBuilder is a helper type to construct the right hand side of a production.
type RuleBuilder struct {
	gb  *GrammarBuilder
	lhs *Symbol
	rhs []*Symbol
}

// NewGrammarBuilder creates a builder for a grammar with a given name.
func NewGrammarBuilder(name string) *GrammarBuilder {
	return &GrammarBuilder{g: newGrammar(name)}
}

// Start sets the start symbol. If it is not set explicitly, the left hand side
// of the first production is the start symbol.
func (gb *GrammarBuilder) Start(name string) *GrammarBuilder {
	gb.startName = name
	gb.symbol(name, false)
	return gb
}

// Terminals declares terminal symbols.
func (gb *GrammarBuilder) Terminals(names ...string) *GrammarBuilder {
	for _, name := range names {
		gb.symbol(name, true)
	}
	return gb
}

// NonTerminals declares non-terminal symbols.
func (gb *GrammarBuilder) NonTerminals(names ...string) *GrammarBuilder {
	for _, name := range names {
		gb.symbol(name, false)
	}
	return gb
}

// LHS starts a new production with left hand side `name`.
func (gb *GrammarBuilder) LHS(name string) *RuleBuilder {
	return &RuleBuilder{gb: gb, lhs: gb.symbol(name, false)}
}

func (gb *GrammarBuilder) fail(err error) {
	if gb.err == nil {
		tracer().Errorf(err.Error())
		gb.err = err
	}
}

// symbol finds or creates a symbol. A symbol may not be used both as a terminal
// and as a non-terminal.
func (gb *GrammarBuilder) symbol(name string, terminal bool) *Symbol {
	g := gb.g
	if name == "" {
		gb.fail(fmt.Errorf("empty symbol name"))
		return nil
	}
	if A, ok := g.symbols[name]; ok {
		if A == Epsilon || A == EOF {
			gb.fail(fmt.Errorf("symbol %q is reserved", name))
			return nil
		}
		if A.terminal != terminal {
			gb.fail(fmt.Errorf("symbol %q used as terminal and as non-terminal", name))
			return nil
		}
		return A
	}
	A := &Symbol{Name: name, ID: len(g.byID), terminal: terminal}
	g.symbols[name] = A
	g.byID = append(g.byID, A)
	if terminal {
		g.terminals = append(g.terminals, A)
	} else {
		g.nonterminals = append(g.nonterminals, A)
	}
	return A
}

// N appends a non-terminal to the right hand side.
func (rb *RuleBuilder) N(name string) *RuleBuilder {
	if A := rb.gb.symbol(name, false); A != nil {
		rb.rhs = append(rb.rhs, A)
	}
	return rb
}

// T appends a terminal to the right hand side.
func (rb *RuleBuilder) T(name string) *RuleBuilder {
	if A := rb.gb.symbol(name, true); A != nil {
		rb.rhs = append(rb.rhs, A)
	}
	return rb
}

// End completes the production and returns it. A production without right
// hand side symbols is an ε-production.
func (rb *RuleBuilder) End() *Production {
	gb := rb.gb
	if gb.done {
		gb.fail(fmt.Errorf("grammar %q already completed", gb.g.Name))
		return nil
	}
	if rb.lhs == nil {
		return nil
	}
	p := &Production{
		ID:  ProductionID(len(gb.g.productions)),
		LHS: rb.lhs,
		rhs: rb.rhs,
	}
	gb.g.productions = append(gb.g.productions, p)
	tracer().Debugf("production %d: %s", p.ID, p)
	return p
}

// Epsilon completes an ε-production.
func (rb *RuleBuilder) Epsilon() *Production {
	rb.rhs = nil
	return rb.End()
}

// Grammar completes the grammar. It adds the augmented start production
// with ID 0. Grammar returns the first error encountered during building.
func (gb *GrammarBuilder) Grammar() (*Grammar, error) {
	if gb.err != nil {
		return nil, gb.err
	}
	if gb.done {
		return gb.g, nil
	}
	g := gb.g
	if g.Size() == 0 {
		return nil, fmt.Errorf("grammar %q has no productions", g.Name)
	}
	if gb.startName == "" {
		g.start = g.productions[1].LHS
	} else {
		g.start = g.symbols[gb.startName]
	}
	name := g.start.Name + "'"
	for g.symbols[name] != nil {
		name += "'"
	}
	g.augStart = &Symbol{Name: name, ID: len(g.byID)}
	g.symbols[name] = g.augStart
	g.byID = append(g.byID, g.augStart)
	g.productions[0] = &Production{
		ID:  AugmentedProduction,
		LHS: g.augStart,
		rhs: []*Symbol{g.start},
	}
	for _, A := range g.nonterminals {
		if len(g.ProductionsFor(A)) == 0 {
			tracer().Infof("non-terminal %s has no productions", A)
		}
	}
	gb.done = true
	tracer().Infof("%s with start symbol %s", g, g.start)
	return g, nil
}
