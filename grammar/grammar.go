package grammar

import (
	"bytes"
	"fmt"
	"io"

	"github.com/npillmayer/parsetab"
	"github.com/npillmayer/parsetab/scanner"
)

// ProductionID identifies a production within a grammar. User productions are
// numbered from 1 in the order of declaration. ID 0 is reserved for the
// augmented start production S' -> S.
type ProductionID int

// AugmentedProduction is the ID of the augmented start production S' -> S.
const AugmentedProduction ProductionID = 0

// Production is a grammar rule A -> X1 … Xn. An empty right hand side denotes
// an ε-production.
type Production struct {
	ID  ProductionID // serial number of this production
	LHS *Symbol      // left hand side, a non-terminal
	rhs []*Symbol
}

// RHS returns the right hand side symbols of a production. For ε-productions
// the result is empty. Clients must not modify the returned slice.
func (p *Production) RHS() []*Symbol {
	return p.rhs
}

// Len returns the number of symbols on the right hand side.
func (p *Production) Len() int {
	return len(p.rhs)
}

// IsEpsilon is true for A -> ε.
func (p *Production) IsEpsilon() bool {
	return len(p.rhs) == 0
}

func (p *Production) String() string {
	var b bytes.Buffer
	b.WriteString(p.LHS.Name)
	b.WriteString(" ->")
	if p.IsEpsilon() {
		b.WriteString(" ")
		b.WriteString(EpsilonName)
	}
	for _, A := range p.rhs {
		b.WriteString(" ")
		b.WriteString(A.Name)
	}
	return b.String()
}

// Grammar is a type for a context-free grammar. Grammars are created by a
// GrammarBuilder or by Load. After creation, a grammar is immutable.
type Grammar struct {
	Name         string
	start        *Symbol            // start symbol
	augStart     *Symbol            // S'
	productions  []*Production      // index = production ID, [0] = S' -> S
	terminals    []*Symbol          // in order of declaration
	nonterminals []*Symbol          // in order of declaration, without S'
	symbols      map[string]*Symbol // all symbols by name
	byID         []*Symbol          // all symbols by ID
}

func newGrammar(name string) *Grammar {
	g := &Grammar{
		Name:        name,
		productions: make([]*Production, 1, 16),
		symbols:     make(map[string]*Symbol),
		byID:        []*Symbol{Epsilon, EOF},
	}
	g.symbols[EpsilonName] = Epsilon
	g.symbols[EOFName] = EOF
	return g
}

// Start returns the start symbol of the grammar.
func (g *Grammar) Start() *Symbol {
	return g.start
}

// AugmentedStart returns the start symbol S' of the augmented grammar.
func (g *Grammar) AugmentedStart() *Symbol {
	return g.augStart
}

// Size returns the number of user productions, i.e. without S' -> S.
func (g *Grammar) Size() int {
	return len(g.productions) - 1
}

// Productions returns the user productions in order of declaration.
func (g *Grammar) Productions() []*Production {
	return g.productions[1:]
}

// Production returns the production with a given ID, including the augmented
// start production for ID 0. It returns nil for IDs out of range.
func (g *Grammar) Production(id ProductionID) *Production {
	if id < 0 || int(id) >= len(g.productions) {
		return nil
	}
	return g.productions[id]
}

// IsUserProduction checks 1 ≤ id ≤ Size().
func (g *Grammar) IsUserProduction(id ProductionID) bool {
	return id > AugmentedProduction && int(id) < len(g.productions)
}

// ProductionsFor returns all productions with left hand side A, in order of declaration.
func (g *Grammar) ProductionsFor(A *Symbol) []*Production {
	var prods []*Production
	for _, p := range g.productions {
		if p != nil && p.LHS == A {
			prods = append(prods, p)
		}
	}
	return prods
}

// Terminals returns the terminals of the grammar in order of declaration.
// The reserved symbols ε and $ are not included.
func (g *Grammar) Terminals() []*Symbol {
	return g.terminals
}

// NonTerminals returns the non-terminals of the grammar in order of declaration.
// The augmented start symbol is not included.
func (g *Grammar) NonTerminals() []*Symbol {
	return g.nonterminals
}

// Symbol returns the symbol with a given name, or nil.
func (g *Grammar) Symbol(name string) *Symbol {
	return g.symbols[name]
}

// SymbolByID returns the symbol with a given ID, or nil.
func (g *Grammar) SymbolByID(id int) *Symbol {
	if id < 0 || id >= len(g.byID) {
		return nil
	}
	return g.byID[id]
}

// SymbolCount returns the number of symbols, including ε, $ and S'.
// Symbol IDs are in the range [0…SymbolCount).
func (g *Grammar) SymbolCount() int {
	return len(g.byID)
}

// EachSymbol calls f for every symbol of the grammar, terminals first, ordered
// by name within each group. ε is left out.
func (g *Grammar) EachSymbol(f func(A *Symbol)) {
	T := NewSymbolSet(EOF)
	N := NewSymbolSet(g.augStart)
	for _, A := range g.terminals {
		T.Add(A)
	}
	for _, A := range g.nonterminals {
		N.Add(A)
	}
	for _, A := range T.Symbols() {
		f(A)
	}
	for _, A := range N.Symbols() {
		f(A)
	}
}

// Dump writes the productions of g to w, one per line, prefixed by their IDs.
func (g *Grammar) Dump(w io.Writer) {
	for _, p := range g.productions {
		fmt.Fprintf(w, "%d: %s\n", p.ID, p)
	}
}

func (g *Grammar) String() string {
	return fmt.Sprintf("grammar %q (%d productions)", g.Name, g.Size())
}

// TerminalFor maps an input token to a terminal of g by the token's lexeme.
// EOF tokens map to $. Tokens which do not denote a terminal map to nil.
func (g *Grammar) TerminalFor(tok parsetab.Token) *Symbol {
	if tok.TokType() == scanner.EOF {
		return EOF
	}
	if A, ok := g.symbols[tok.Lexeme()]; ok && A.terminal && A != Epsilon && A != EOF {
		return A
	}
	return nil
}
