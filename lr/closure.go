package lr

import (
	"github.com/emirpasic/gods/lists/arraylist"
	"github.com/npillmayer/parsetab/grammar"
)

// === Closure and Goto-Set Operations =======================================

// Refer to "Compilers: Principles, Techniques, and Tools" by Aho, Lam, Sethi & Ullman,
// section 4.7.2, "Constructing LR(1) Sets of Items".

// closure computes the LR(1) closure of an item set. For every item
// [A → α·Bβ, a] and every production B → γ, items [B → ·γ, b] are added
// for each terminal b in FIRST(βa).
func closure(ga *grammar.GrammarAnalysis, S *ItemSet) *ItemSet {
	g := ga.Grammar()
	C := newItemSet()
	worklist := arraylist.New()
	for _, i := range S.Items() {
		if C.Add(i) {
			worklist.Add(i)
		}
	}
	for !worklist.Empty() {
		x, _ := worklist.Get(0)
		worklist.Remove(0)
		item := x.(Item)
		B := item.PeekSymbol()
		if B == nil || B.IsTerminal() {
			continue
		}
		beta := append(append([]*grammar.Symbol{}, item.rest()...), item.la)
		lookaheads := ga.FirstOf(beta)
		for _, p := range g.ProductionsFor(B) {
			for _, b := range lookaheads.Symbols() {
				if b.IsEpsilon() {
					continue
				}
				if i := (Item{prod: p, dot: 0, la: b}); C.Add(i) {
					worklist.Add(i)
				}
			}
		}
	}
	return C
}

// gotoSet computes goto(S, X): the closure of all items of S with X after
// the dot, with the dot advanced over X.
func gotoSet(ga *grammar.GrammarAnalysis, S *ItemSet, X *grammar.Symbol) *ItemSet {
	kernel := newItemSet()
	for _, i := range S.Items() {
		if i.PeekSymbol() == X {
			kernel.Add(i.Advance())
		}
	}
	if kernel.Empty() {
		return kernel
	}
	C := closure(ga, kernel)
	tracer().Debugf("goto -%s-> %d kernel items, %d items", X, kernel.Size(), C.Size())
	return C
}
