package lr

import (
	"fmt"
	"io"
	"strings"

	"github.com/npillmayer/parsetab/grammar"
	"github.com/npillmayer/parsetab/lr/sparse"
)

// === Parser Actions ========================================================

// ActionKind is the type of an entry of the ACTION table.
type ActionKind int

// Kinds of parser actions. NoAction denotes an empty table cell, i.e. a syntax error.
const (
	NoAction ActionKind = iota
	ShiftAction
	ReduceAction
	AcceptAction
)

// Action is an entry of the ACTION table. For shift actions, State is the
// state to push. For reduce actions, Production is the production to reduce by.
type Action struct {
	Kind       ActionKind
	State      int
	Production grammar.ProductionID
}

// Shift creates a shift action to state j.
func Shift(j int) Action {
	return Action{Kind: ShiftAction, State: j}
}

// Reduce creates a reduce action by production p.
func Reduce(p grammar.ProductionID) Action {
	return Action{Kind: ReduceAction, Production: p}
}

// Accept creates an accept action.
func Accept() Action {
	return Action{Kind: AcceptAction}
}

// IsNone is true for empty table cells.
func (a Action) IsNone() bool {
	return a.Kind == NoAction
}

func (a Action) String() string {
	switch a.Kind {
	case ShiftAction:
		return fmt.Sprintf("shift %d", a.State)
	case ReduceAction:
		return fmt.Sprintf("reduce %d", a.Production)
	case AcceptAction:
		return "accept"
	}
	return "error"
}

// Short returns a compact representation of an action: "s3", "r2", "acc" or "".
func (a Action) Short() string {
	switch a.Kind {
	case ShiftAction:
		return fmt.Sprintf("s%d", a.State)
	case ReduceAction:
		return fmt.Sprintf("r%d", a.Production)
	case AcceptAction:
		return "acc"
	}
	return ""
}

// Actions are stored in a sparse integer matrix:
//
//    shift j   →  j
//    accept    → -1
//    reduce p  → -1-p   (p ≥ 1)
//
func encodeAction(a Action) int32 {
	switch a.Kind {
	case ShiftAction:
		return int32(a.State)
	case AcceptAction:
		return -1
	case ReduceAction:
		return int32(-1 - int(a.Production))
	}
	return sparse.DefaultNullValue
}

func decodeAction(v int32) Action {
	switch {
	case v == sparse.DefaultNullValue:
		return Action{}
	case v >= 0:
		return Shift(int(v))
	case v == -1:
		return Accept()
	}
	return Reduce(grammar.ProductionID(-1 - int(v)))
}

// === Tables ================================================================

// ActionTable maps (state, terminal) to a parser action.
type ActionTable struct {
	g      *grammar.Grammar
	matrix *sparse.IntMatrix
}

func newActionTable(g *grammar.Grammar, states int) *ActionTable {
	return &ActionTable{
		g:      g,
		matrix: sparse.NewIntMatrix(states, g.SymbolCount(), sparse.DefaultNullValue),
	}
}

// Action returns ACTION[state, a]. For empty cells, states out of range or
// symbols foreign to the grammar, the result is an action of kind NoAction.
func (t *ActionTable) Action(state int, a *grammar.Symbol) Action {
	if a == nil || state < 0 || state >= t.matrix.M() || a.ID < 0 || a.ID >= t.matrix.N() {
		return Action{}
	}
	return decodeAction(t.matrix.Value(state, a.ID))
}

// set writes an action to a cell and returns the previous entry.
func (t *ActionTable) set(state int, a *grammar.Symbol, action Action) Action {
	return decodeAction(t.matrix.Set(state, a.ID, encodeAction(action)))
}

// Size returns the number of non-empty cells.
func (t *ActionTable) Size() int {
	return t.matrix.ValueCount()
}

// States returns the number of rows of the table.
func (t *ActionTable) States() int {
	return t.matrix.M()
}

// Each calls f for every non-empty cell, ordered by state, then by symbol ID.
func (t *ActionTable) Each(f func(state int, a *grammar.Symbol, action Action)) {
	t.matrix.Each(func(i, j int, v int32) {
		f(i, t.g.SymbolByID(j), decodeAction(v))
	})
}

// GotoTable maps (state, non-terminal) to a state.
type GotoTable struct {
	g      *grammar.Grammar
	matrix *sparse.IntMatrix
}

func newGotoTable(g *grammar.Grammar, states int) *GotoTable {
	return &GotoTable{
		g:      g,
		matrix: sparse.NewIntMatrix(states, g.SymbolCount(), sparse.DefaultNullValue),
	}
}

// Goto returns GOTO[state, A]. If the cell is empty, Goto returns false.
func (t *GotoTable) Goto(state int, A *grammar.Symbol) (int, bool) {
	if A == nil || state < 0 || state >= t.matrix.M() || A.ID < 0 || A.ID >= t.matrix.N() {
		return 0, false
	}
	v := t.matrix.Value(state, A.ID)
	if v == t.matrix.NullValue() {
		return 0, false
	}
	return int(v), true
}

// Size returns the number of non-empty cells.
func (t *GotoTable) Size() int {
	return t.matrix.ValueCount()
}

// Each calls f for every non-empty cell, ordered by state, then by symbol ID.
func (t *GotoTable) Each(f func(state int, A *grammar.Symbol, to int)) {
	t.matrix.Each(func(i, j int, v int32) {
		f(i, t.g.SymbolByID(j), int(v))
	})
}

// === Conflicts =============================================================

// Conflict records two different actions competing for the same cell of the
// ACTION table.
type Conflict struct {
	State       int
	Symbol      *grammar.Symbol
	Existing    Action
	Conflicting Action
}

// IsShiftReduce is true if one of the actions is a shift.
func (c Conflict) IsShiftReduce() bool {
	return c.Existing.Kind == ShiftAction || c.Conflicting.Kind == ShiftAction
}

func (c Conflict) String() string {
	kind := "reduce/reduce"
	if c.IsShiftReduce() {
		kind = "shift/reduce"
	} else if c.Existing.Kind == AcceptAction || c.Conflicting.Kind == AcceptAction {
		kind = "accept/reduce"
	}
	return fmt.Sprintf("%s conflict in state %d on %s: %s vs. %s",
		kind, c.State, c.Symbol, c.Existing, c.Conflicting)
}

// ConflictError is returned by CreateTables if a grammar is not LR(1).
type ConflictError struct {
	Conflicts []Conflict
}

func (e *ConflictError) Error() string {
	if len(e.Conflicts) == 1 {
		return "grammar is not LR(1): " + e.Conflicts[0].String()
	}
	msgs := make([]string, len(e.Conflicts))
	for k, c := range e.Conflicts {
		msgs[k] = c.String()
	}
	return fmt.Sprintf("grammar is not LR(1), %d conflicts: %s",
		len(e.Conflicts), strings.Join(msgs, "; "))
}

// === Table Generator =======================================================

// Option configures a TableGenerator.
type Option func(lrgen *TableGenerator)

// LastWriteWins lets a conflicting action replace the one already present in a
// table cell. Conflicts are still recorded, but CreateTables will not report
// an error.
func LastWriteWins(b bool) Option {
	return func(lrgen *TableGenerator) {
		lrgen.lastWriteWins = b
	}
}

// HashStates enables hashing of item sets for finding existing states
// during CFSM construction.
func HashStates(b bool) Option {
	return func(lrgen *TableGenerator) {
		lrgen.hashStates = b
	}
}

// TableGenerator is a generator object to construct LR(1) parser tables.
// Clients usually create a grammar G, then a GrammarAnalysis for G,
// and then a table generator. TableGenerator.CreateTables() constructs
// the CFSM and parser tables for an LR(1)-parser recognizing grammar G.
type TableGenerator struct {
	g             *grammar.Grammar
	ga            *grammar.GrammarAnalysis
	dfa           *CFSM
	gototable     *GotoTable
	actiontable   *ActionTable
	conflicts     []Conflict
	lastWriteWins bool
	hashStates    bool
}

// NewTableGenerator creates a new TableGenerator for a (previously analysed) grammar.
func NewTableGenerator(ga *grammar.GrammarAnalysis, opts ...Option) *TableGenerator {
	lrgen := &TableGenerator{}
	lrgen.g = ga.Grammar()
	lrgen.ga = ga
	for _, opt := range opts {
		opt(lrgen)
	}
	return lrgen
}

// Grammar returns the grammar the tables are generated for.
func (lrgen *TableGenerator) Grammar() *grammar.Grammar {
	return lrgen.g
}

// CFSM returns the characteristic finite state machine (CFSM) for a grammar.
// Usually clients call lrgen.CreateTables() beforehand, but it is possible
// to call lrgen.CFSM() directly. The CFSM will be created, if it has not
// been constructed previously.
func (lrgen *TableGenerator) CFSM() *CFSM {
	if lrgen.dfa == nil {
		lrgen.dfa = buildCFSM(lrgen.ga, lrgen.hashStates)
	}
	return lrgen.dfa
}

// GotoTable returns the GOTO table for LR-parsing a grammar. The tables have to be
// built by calling CreateTables() previously.
func (lrgen *TableGenerator) GotoTable() *GotoTable {
	if lrgen.gototable == nil {
		tracer().Errorf("tables not yet initialized")
	}
	return lrgen.gototable
}

// ActionTable returns the ACTION table for LR-parsing a grammar. The tables have to be
// built by calling CreateTables() previously.
func (lrgen *TableGenerator) ActionTable() *ActionTable {
	if lrgen.actiontable == nil {
		tracer().Errorf("tables not yet initialized")
	}
	return lrgen.actiontable
}

// Conflicts returns all the conflicts found by CreateTables.
func (lrgen *TableGenerator) Conflicts() []Conflict {
	return lrgen.conflicts
}

// CreateTables creates the CFSM, the GOTO table and the ACTION table.
// If the grammar is not LR(1), a *ConflictError is returned, unless option
// LastWriteWins is set. The tables are available in either case.
func (lrgen *TableGenerator) CreateTables() error {
	dfa := lrgen.CFSM()
	lrgen.gototable = lrgen.buildGotoTable(dfa)
	lrgen.actiontable, lrgen.conflicts = lrgen.buildActionTable(dfa)
	tracer().Infof("ACTION table has %d entries, GOTO table has %d entries",
		lrgen.actiontable.Size(), lrgen.gototable.Size())
	if len(lrgen.conflicts) > 0 {
		tracer().Infof("grammar %q has %d conflicts", lrgen.g.Name, len(lrgen.conflicts))
		if !lrgen.lastWriteWins {
			return &ConflictError{Conflicts: lrgen.conflicts}
		}
	}
	return nil
}

// The GOTO table is a copy of the CFSM transitions on non-terminals.
func (lrgen *TableGenerator) buildGotoTable(dfa *CFSM) *GotoTable {
	gototable := newGotoTable(lrgen.g, dfa.Size())
	dfa.EachEdge(func(from, to int, X *grammar.Symbol) {
		if !X.IsTerminal() {
			gototable.matrix.Set(from, X.ID, int32(to))
		}
	})
	return gototable
}

// For building an ACTION table we iterate over all the states of the CFSM.
// An inner loop iterates over all the items within a CFSM-state, in sorted order.
// If an item has a terminal immediately after the dot, we produce a shift
// entry. If an item's dot is behind the right hand side of a production,
// we produce a reduce entry for the item's lookahead, or an accept entry
// for [S' → S·, $].
func (lrgen *TableGenerator) buildActionTable(dfa *CFSM) (*ActionTable, []Conflict) {
	actions := newActionTable(lrgen.g, dfa.Size())
	var conflicts []Conflict
	for _, state := range dfa.States() {
		tracer().Debugf("--- state %d --------------------------------", state.ID)
		for _, i := range state.Items() {
			var a *grammar.Symbol
			var action Action
			if X := i.PeekSymbol(); X != nil {
				if !X.IsTerminal() {
					continue
				}
				to, ok := dfa.Transition(state.ID, X)
				if !ok {
					panic(fmt.Sprintf("CFSM has no transition from state %d on %s", state.ID, X))
				}
				a, action = X, Shift(to)
			} else if i.prod.ID == grammar.AugmentedProduction {
				if i.la != grammar.EOF {
					continue
				}
				a, action = grammar.EOF, Accept()
			} else {
				a, action = i.la, Reduce(i.prod.ID)
			}
			existing := actions.Action(state.ID, a)
			if existing == action {
				continue
			}
			if !existing.IsNone() {
				c := Conflict{State: state.ID, Symbol: a, Existing: existing, Conflicting: action}
				tracer().Infof("%s", c)
				conflicts = append(conflicts, c)
				if !lrgen.lastWriteWins {
					continue
				}
			}
			tracer().Debugf("    ACTION[%d,%s] = %s", state.ID, a, action)
			actions.set(state.ID, a, action)
		}
	}
	return actions, conflicts
}

// ===========================================================================

// GotoTableAsHTML exports a GOTO-table in HTML-format.
func GotoTableAsHTML(lrgen *TableGenerator, w io.Writer) {
	if lrgen.gototable == nil {
		tracer().Errorf("GOTO table not yet created, cannot export to HTML")
		return
	}
	parserTableAsHTML(lrgen, "GOTO", lrgen.gototable.Size(), lrgen.g.NonTerminals(), w,
		func(state int, A *grammar.Symbol) string {
			if to, ok := lrgen.gototable.Goto(state, A); ok {
				return fmt.Sprintf("%d", to)
			}
			return ""
		})
}

// ActionTableAsHTML exports the LR(1) ACTION-table in HTML-format.
func ActionTableAsHTML(lrgen *TableGenerator, w io.Writer) {
	if lrgen.actiontable == nil {
		tracer().Errorf("ACTION table not yet created, cannot export to HTML")
		return
	}
	columns := append(append([]*grammar.Symbol{}, lrgen.g.Terminals()...), grammar.EOF)
	parserTableAsHTML(lrgen, "ACTION", lrgen.actiontable.Size(), columns, w,
		func(state int, a *grammar.Symbol) string {
			return lrgen.actiontable.Action(state, a).Short()
		})
}

func parserTableAsHTML(lrgen *TableGenerator, tname string, size int, columns []*grammar.Symbol,
	w io.Writer, cell func(int, *grammar.Symbol) string) {
	//
	io.WriteString(w, "<html><body>\n")
	io.WriteString(w, fmt.Sprintf("%s table of size = %d<p>", tname, size))
	io.WriteString(w, "<table border=1 cellspacing=0 cellpadding=5>\n")
	io.WriteString(w, "<tr bgcolor=#cccccc><td></td>\n")
	for _, A := range columns {
		io.WriteString(w, fmt.Sprintf("<td>%s</td>", htmlEscaper.Replace(A.Name)))
	}
	io.WriteString(w, "</tr>\n")
	var td string // table cell
	for _, state := range lrgen.dfa.States() {
		io.WriteString(w, fmt.Sprintf("<tr><td>state %d</td>\n", state.ID))
		for _, A := range columns {
			if td = cell(state.ID, A); td == "" {
				td = "&nbsp;"
			}
			io.WriteString(w, "<td>")
			io.WriteString(w, td)
			io.WriteString(w, "</td>\n")
		}
		io.WriteString(w, "</tr>\n")
	}
	io.WriteString(w, "</table></body></html>\n")
}

var htmlEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")
