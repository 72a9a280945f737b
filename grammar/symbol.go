package grammar

import (
	"bytes"

	"github.com/emirpasic/gods/sets/treeset"
	"github.com/emirpasic/gods/utils"
)

// Names of the reserved symbols.
const (
	EpsilonName  = "ε" // empty-string marker
	EOFName      = "$" // end-of-input marker
	EpsilonInput = "e" // spelling of ε in textual grammars
)

// Symbol is a grammar symbol, either a terminal or a non-terminal.
// Symbols are created by a grammar builder and are unique per grammar,
// therefore clients may compare them by identity.
type Symbol struct {
	Name     string // the symbol's name, unique within a grammar
	ID       int    // serial number, unique within a grammar
	terminal bool
}

// Reserved symbols, shared by all grammars. Both are terminals.
var (
	Epsilon = &Symbol{Name: EpsilonName, ID: 0, terminal: true}
	EOF     = &Symbol{Name: EOFName, ID: 1, terminal: true}
)

// IsTerminal returns true for terminal symbols, including ε and $.
func (A *Symbol) IsTerminal() bool {
	return A.terminal
}

// IsEpsilon returns true if A is the reserved symbol ε.
func (A *Symbol) IsEpsilon() bool {
	return A == Epsilon
}

func (A *Symbol) String() string {
	if A == nil {
		return "<nil>"
	}
	return A.Name
}

// symbolComparator sorts symbols by name.
func symbolComparator(s1, s2 interface{}) int {
	return utils.StringComparator(s1.(*Symbol).Name, s2.(*Symbol).Name)
}

// --- Symbol sets -----------------------------------------------------------

// SymbolSet is a set of grammar symbols, iterated in order of symbol names.
// The zero value is not usable, create sets with NewSymbolSet.
type SymbolSet struct {
	set *treeset.Set
}

// NewSymbolSet creates a set containing syms.
func NewSymbolSet(syms ...*Symbol) SymbolSet {
	s := SymbolSet{set: treeset.NewWith(symbolComparator)}
	for _, A := range syms {
		s.set.Add(A)
	}
	return s
}

// Add adds A to the set. It returns true if the set has changed.
func (s SymbolSet) Add(A *Symbol) bool {
	if s.set.Contains(A) {
		return false
	}
	s.set.Add(A)
	return true
}

// Union adds all symbols of other to s, except for symbol `except`, which may be nil.
// It returns true if s has changed.
func (s SymbolSet) Union(other SymbolSet, except *Symbol) bool {
	changed := false
	for _, x := range other.set.Values() {
		A := x.(*Symbol)
		if A != except && s.Add(A) {
			changed = true
		}
	}
	return changed
}

// Contains checks if A is a member of s.
func (s SymbolSet) Contains(A *Symbol) bool {
	return s.set != nil && s.set.Contains(A)
}

// Size returns the number of symbols in s.
func (s SymbolSet) Size() int {
	if s.set == nil {
		return 0
	}
	return s.set.Size()
}

// Empty is true for a set without members.
func (s SymbolSet) Empty() bool {
	return s.Size() == 0
}

// Symbols returns the members of s, sorted by name.
func (s SymbolSet) Symbols() []*Symbol {
	if s.set == nil {
		return nil
	}
	syms := make([]*Symbol, 0, s.set.Size())
	for _, x := range s.set.Values() {
		syms = append(syms, x.(*Symbol))
	}
	return syms
}

// Names returns the names of the members of s, sorted.
func (s SymbolSet) Names() []string {
	syms := s.Symbols()
	names := make([]string, len(syms))
	for i, A := range syms {
		names[i] = A.Name
	}
	return names
}

// Equals is true if s and other contain the same symbols.
func (s SymbolSet) Equals(other SymbolSet) bool {
	if s.Size() != other.Size() {
		return false
	}
	for _, A := range s.Symbols() {
		if !other.Contains(A) {
			return false
		}
	}
	return true
}

// Copy returns an independent copy of s.
func (s SymbolSet) Copy() SymbolSet {
	return NewSymbolSet(s.Symbols()...)
}

func (s SymbolSet) String() string {
	var b bytes.Buffer
	b.WriteString("{")
	for _, A := range s.Symbols() {
		b.WriteString(" ")
		b.WriteString(A.Name)
	}
	b.WriteString(" }")
	return b.String()
}
