package ll1

import (
	"fmt"
	"io"

	"github.com/emirpasic/gods/maps/treemap"
	"github.com/emirpasic/gods/utils"
	"github.com/npillmayer/parsetab/grammar"
)

// Table is a predictive parse table M[A,a] → production.
// Create one with BuildTable.
type Table struct {
	g     *grammar.Grammar
	cells *treemap.Map // cell → grammar.ProductionID
}

// cell is a table position (non-terminal, terminal).
type cell struct {
	A, a *grammar.Symbol
}

// cells are sorted by non-terminal name, then by terminal name.
func cellComparator(c1, c2 interface{}) int {
	x, y := c1.(cell), c2.(cell)
	if c := utils.StringComparator(x.A.Name, y.A.Name); c != 0 {
		return c
	}
	return utils.StringComparator(x.a.Name, y.a.Name)
}

// ConflictError is returned by BuildTable if a grammar is not LL(1).
type ConflictError struct {
	NonTerminal *grammar.Symbol
	Terminal    *grammar.Symbol
	Existing    grammar.ProductionID // production already in the cell
	Conflicting grammar.ProductionID // production trying to enter the cell
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("parse table conflict at M[%s,%s] between productions %d and %d",
		e.NonTerminal, e.Terminal, e.Existing, e.Conflicting)
}

// BuildTable constructs the predictive parse table for an analysed grammar.
// For every production A -> α, in order of declaration, M[A,a] is set for every
// terminal a in FIRST(α). If α derives ε, M[A,b] is set for every b in FOLLOW(A).
//
// If a cell would receive two different productions, BuildTable stops and
// returns a *ConflictError.
func BuildTable(ga *grammar.GrammarAnalysis) (*Table, error) {
	g := ga.Grammar()
	t := &Table{
		g:     g,
		cells: treemap.NewWith(cellComparator),
	}
	for _, p := range g.Productions() {
		fa := ga.FirstOf(p.RHS())
		tracer().Debugf("FIRST(%v) = %v", p, fa)
		for _, a := range fa.Symbols() {
			if a == grammar.Epsilon {
				continue
			}
			if err := t.set(p.LHS, a, p.ID); err != nil {
				return nil, err
			}
		}
		if fa.Contains(grammar.Epsilon) {
			for _, b := range ga.Follow(p.LHS).Symbols() {
				if err := t.set(p.LHS, b, p.ID); err != nil {
					return nil, err
				}
			}
		}
	}
	tracer().Infof("LL(1) table for %s has %d entries", g, t.Size())
	return t, nil
}

func (t *Table) set(A, a *grammar.Symbol, id grammar.ProductionID) error {
	c := cell{A, a}
	if x, found := t.cells.Get(c); found {
		if existing := x.(grammar.ProductionID); existing != id {
			err := &ConflictError{A, a, existing, id}
			tracer().Errorf(err.Error())
			return err
		}
		return nil
	}
	tracer().Debugf("M[%s,%s] = %d", A, a, id)
	t.cells.Put(c, id)
	return nil
}

// Grammar returns the grammar this table is for.
func (t *Table) Grammar() *grammar.Grammar {
	return t.g
}

// Lookup returns M[A,a], if present.
func (t *Table) Lookup(A, a *grammar.Symbol) (grammar.ProductionID, bool) {
	if A == nil || a == nil {
		return 0, false
	}
	x, found := t.cells.Get(cell{A, a})
	if !found {
		return 0, false
	}
	return x.(grammar.ProductionID), true
}

// Size returns the number of entries.
func (t *Table) Size() int {
	return t.cells.Size()
}

// Each calls f for every entry of the table, ordered by non-terminal name,
// then by terminal name.
func (t *Table) Each(f func(A, a *grammar.Symbol, id grammar.ProductionID)) {
	it := t.cells.Iterator()
	for it.Next() {
		c := it.Key().(cell)
		f(c.A, c.a, it.Value().(grammar.ProductionID))
	}
}

// Columns returns the terminals of the grammar in order of declaration,
// followed by $.
func (t *Table) Columns() []*grammar.Symbol {
	cols := append([]*grammar.Symbol{}, t.g.Terminals()...)
	return append(cols, grammar.EOF)
}

// Dump writes the table entries to w, one per line.
func (t *Table) Dump(w io.Writer) {
	t.Each(func(A, a *grammar.Symbol, id grammar.ProductionID) {
		fmt.Fprintf(w, "M[%s,%s] = %d\n", A, a, id)
	})
}
