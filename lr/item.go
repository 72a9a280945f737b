package lr

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/cnf/structhash"
	"github.com/emirpasic/gods/sets/treeset"
	"github.com/emirpasic/gods/utils"
	"github.com/npillmayer/parsetab/grammar"
)

// Item is an LR(1) item [A → α·β, a]: a production, a dot position within
// the production's right hand side, and a lookahead terminal.
// Items are values; two items are equal if all of their components are equal.
type Item struct {
	prod *grammar.Production
	dot  int
	la   *grammar.Symbol
}

// StartItem returns the item [S' → ·S, $] for a grammar.
func StartItem(g *grammar.Grammar) Item {
	return Item{prod: g.Production(grammar.AugmentedProduction), dot: 0, la: grammar.EOF}
}

// Production returns the production of an item.
func (i Item) Production() *grammar.Production {
	return i.prod
}

// Dot returns the dot position, 0 ≤ dot ≤ |RHS|.
func (i Item) Dot() int {
	return i.dot
}

// Lookahead returns the lookahead terminal of an item.
func (i Item) Lookahead() *grammar.Symbol {
	return i.la
}

// PeekSymbol returns the symbol after the dot, or nil for completed items.
func (i Item) PeekSymbol() *grammar.Symbol {
	if i.dot >= i.prod.Len() {
		return nil
	}
	return i.prod.RHS()[i.dot]
}

// IsComplete is true if the dot is behind the right hand side.
func (i Item) IsComplete() bool {
	return i.dot >= i.prod.Len()
}

// Advance returns a copy of i with the dot moved one symbol to the right.
func (i Item) Advance() Item {
	if i.IsComplete() {
		return i
	}
	return Item{prod: i.prod, dot: i.dot + 1, la: i.la}
}

// rest returns the symbols after the symbol following the dot.
func (i Item) rest() []*grammar.Symbol {
	if i.dot+1 >= i.prod.Len() {
		return nil
	}
	return i.prod.RHS()[i.dot+1:]
}

func (i Item) String() string {
	var b bytes.Buffer
	b.WriteString(i.prod.LHS.Name)
	b.WriteString(" ->")
	for k, X := range i.prod.RHS() {
		if k == i.dot {
			b.WriteString(" .")
		}
		b.WriteString(" ")
		b.WriteString(X.Name)
	}
	if i.IsComplete() {
		b.WriteString(" .")
	}
	b.WriteString(" , ")
	b.WriteString(i.la.Name)
	return b.String()
}

// Items are sorted by production ID, then by dot position, then by lookahead name.
func itemComparator(i1, i2 interface{}) int {
	x, y := i1.(Item), i2.(Item)
	if c := utils.IntComparator(int(x.prod.ID), int(y.prod.ID)); c != 0 {
		return c
	}
	if c := utils.IntComparator(x.dot, y.dot); c != 0 {
		return c
	}
	return utils.StringComparator(x.la.Name, y.la.Name)
}

// --- Item sets -------------------------------------------------------------

// ItemSet is a set of LR(1) items, iterated in sorted order.
type ItemSet struct {
	set *treeset.Set
}

func newItemSet(items ...Item) *ItemSet {
	S := &ItemSet{set: treeset.NewWith(itemComparator)}
	for _, i := range items {
		S.set.Add(i)
	}
	return S
}

// Add adds an item to S. It returns false if the item has already been a member.
func (S *ItemSet) Add(i Item) bool {
	if S.set.Contains(i) {
		return false
	}
	S.set.Add(i)
	return true
}

// Contains is true if i is a member of S.
func (S *ItemSet) Contains(i Item) bool {
	return S.set.Contains(i)
}

// Size returns the number of items in S.
func (S *ItemSet) Size() int {
	return S.set.Size()
}

// Empty is true for an empty item set.
func (S *ItemSet) Empty() bool {
	return S.set.Empty()
}

// Items returns the items of S in sorted order.
func (S *ItemSet) Items() []Item {
	items := make([]Item, 0, S.set.Size())
	for _, x := range S.set.Values() {
		items = append(items, x.(Item))
	}
	return items
}

// Equals is true if S and other contain the same items.
func (S *ItemSet) Equals(other *ItemSet) bool {
	if S.Size() != other.Size() {
		return false
	}
	it := S.set.Iterator()
	for it.Next() {
		if !other.set.Contains(it.Value()) {
			return false
		}
	}
	return true
}

// symbolsAfterDot returns all the symbols directly following a dot, ordered by name.
func (S *ItemSet) symbolsAfterDot() grammar.SymbolSet {
	syms := grammar.NewSymbolSet()
	for _, i := range S.Items() {
		if X := i.PeekSymbol(); X != nil {
			syms.Add(X)
		}
	}
	return syms
}

// itemSetDigest is the content of an item set subjected to hashing.
type itemSetDigest struct {
	Items []string
}

// Hash returns a content hash for S. Equal item sets have equal hashes.
func (S *ItemSet) Hash() string {
	d := itemSetDigest{Items: make([]string, 0, S.Size())}
	for _, i := range S.Items() {
		d.Items = append(d.Items, fmt.Sprintf("%d.%d.%d", i.prod.ID, i.dot, i.la.ID))
	}
	h, err := structhash.Hash(d, 1)
	if err != nil {
		tracer().Errorf("cannot hash item set: %v", err)
		return ""
	}
	return h
}

func (S *ItemSet) String() string {
	items := S.Items()
	s := make([]string, len(items))
	for k, i := range items {
		s[k] = "[" + i.String() + "]"
	}
	return "{ " + strings.Join(s, ", ") + " }"
}
