package lr

import (
	"bytes"
	"fmt"
	"sort"
	"strings"
	"testing"

	"github.com/npillmayer/parsetab/grammar"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
)

// E -> E + T | T;  T -> T * F | F;  F -> ( E ) | id
func makeExpressionGrammar(t *testing.T) *grammar.Grammar {
	b := grammar.NewGrammarBuilder("expressions")
	b.LHS("E").N("E").T("+").N("T").End()
	b.LHS("E").N("T").End()
	b.LHS("T").N("T").T("*").N("F").End()
	b.LHS("T").N("F").End()
	b.LHS("F").T("(").N("E").T(")").End()
	b.LHS("F").T("id").End()
	g, err := b.Grammar()
	if err != nil {
		t.Fatal(err)
	}
	return g
}

// S -> C C;  C -> c C | d
func makeDragonGrammar(t *testing.T) *grammar.Grammar {
	b := grammar.NewGrammarBuilder("dragon 4.45")
	b.LHS("S").N("C").N("C").End()
	b.LHS("C").T("c").N("C").End()
	b.LHS("C").T("d").End()
	g, err := b.Grammar()
	if err != nil {
		t.Fatal(err)
	}
	return g
}

func actionsOf(lrgen *TableGenerator) []string {
	var entries []string
	lrgen.ActionTable().Each(func(state int, a *grammar.Symbol, action Action) {
		entries = append(entries, fmt.Sprintf("%d:%s %s", state, a, action.Short()))
	})
	sort.Strings(entries)
	return entries
}

func gotosOf(lrgen *TableGenerator) []string {
	var entries []string
	lrgen.GotoTable().Each(func(state int, A *grammar.Symbol, to int) {
		entries = append(entries, fmt.Sprintf("(%d,%s)%d", state, A, to))
	})
	sort.Strings(entries)
	return entries
}

func TestItem(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "parsetab.lr")
	defer teardown()
	//
	g := makeDragonGrammar(t)
	i := StartItem(g)
	assert.Equal(t, "S' -> . S , $", i.String())
	assert.Equal(t, g.Symbol("S"), i.PeekSymbol())
	i = i.Advance()
	assert.True(t, i.IsComplete())
	assert.Equal(t, "S' -> S . , $", i.String())
	assert.Nil(t, i.PeekSymbol())
	assert.Equal(t, i, i.Advance(), "advancing a complete item is a no-op")
}

func TestClosure(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "parsetab.lr")
	defer teardown()
	//
	g := makeDragonGrammar(t)
	ga := grammar.Analysis(g)
	C := closure(ga, newItemSet(StartItem(g)))
	assert.Equal(t, 6, C.Size())
	c, d := g.Symbol("c"), g.Symbol("d")
	assert.True(t, C.Contains(Item{prod: g.Production(2), dot: 0, la: c}))
	assert.True(t, C.Contains(Item{prod: g.Production(3), dot: 0, la: d}))
	assert.False(t, C.Contains(Item{prod: g.Production(3), dot: 0, la: grammar.EOF}))
	//
	G := gotoSet(ga, C, g.Symbol("C"))
	assert.Equal(t, 3, G.Size())
	for _, i := range G.Items() {
		assert.Equal(t, grammar.EOF, i.Lookahead(), "item %s", i)
	}
	assert.True(t, gotoSet(ga, C, grammar.EOF).Empty())
}

func TestItemSetEquality(t *testing.T) {
	g := makeDragonGrammar(t)
	ga := grammar.Analysis(g)
	S1 := closure(ga, newItemSet(StartItem(g)))
	S2 := closure(ga, newItemSet(StartItem(g)))
	assert.True(t, S1.Equals(S2))
	assert.Equal(t, S1.Hash(), S2.Hash())
	S3 := gotoSet(ga, S1, g.Symbol("c"))
	assert.False(t, S1.Equals(S3))
	assert.NotEqual(t, S1.Hash(), S3.Hash())
}

func TestDragonTables(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "parsetab.lr")
	defer teardown()
	//
	g := makeDragonGrammar(t)
	lrgen := NewTableGenerator(grammar.Analysis(g))
	if err := lrgen.CreateTables(); err != nil {
		t.Fatal(err)
	}
	assert.Equal(t, 10, lrgen.CFSM().Size())
	assert.Equal(t, []string{
		"0:c s3", "0:d s4", "1:c s6", "1:d s7", "2:$ acc", "3:c s3", "3:d s4",
		"4:c r3", "4:d r3", "5:$ r1", "6:c s6", "6:d s7", "7:$ r3", "8:c r2",
		"8:d r2", "9:$ r2",
	}, actionsOf(lrgen))
	assert.Equal(t, []string{
		"(0,C)1", "(0,S)2", "(1,C)5", "(3,C)8", "(6,C)9",
	}, gotosOf(lrgen))
	assert.True(t, lrgen.CFSM().State(2).Accept)
	assert.False(t, lrgen.CFSM().State(0).Accept)
	assert.Empty(t, lrgen.Conflicts())
}

func TestExpressionTables(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "parsetab.lr")
	defer teardown()
	//
	g := makeExpressionGrammar(t)
	lrgen := NewTableGenerator(grammar.Analysis(g))
	if err := lrgen.CreateTables(); err != nil {
		t.Fatal(err)
	}
	assert := assert.New(t)
	assert.Equal(22, lrgen.CFSM().Size())
	assert.Equal(56, lrgen.ActionTable().Size())
	assert.Equal(15, lrgen.GotoTable().Size())
	for _, x := range []struct {
		A  string
		to int
	}{{"E", 2}, {"F", 3}, {"T", 4}} {
		to, ok := lrgen.GotoTable().Goto(0, g.Symbol(x.A))
		assert.True(ok)
		assert.Equal(x.to, to, "GOTO[0,%s]", x.A)
	}
	assert.Equal(Shift(1), lrgen.ActionTable().Action(0, g.Symbol("(")))
	assert.Equal(Shift(5), lrgen.ActionTable().Action(0, g.Symbol("id")))
	assert.True(lrgen.ActionTable().Action(0, g.Symbol("+")).IsNone())
	assert.True(lrgen.ActionTable().Action(99, g.Symbol("+")).IsNone())
	assert.True(lrgen.ActionTable().Action(0, nil).IsNone())
	_, ok := lrgen.GotoTable().Goto(1, g.Symbol("id"))
	assert.False(ok)
}

func TestEpsilonTables(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "parsetab.lr")
	defer teardown()
	//
	b := grammar.NewGrammarBuilder("S -> A; A -> a | ε")
	b.LHS("S").N("A").End()
	b.LHS("A").T("a").End()
	b.LHS("A").Epsilon()
	g, err := b.Grammar()
	if err != nil {
		t.Fatal(err)
	}
	lrgen := NewTableGenerator(grammar.Analysis(g))
	if err := lrgen.CreateTables(); err != nil {
		t.Fatal(err)
	}
	assert.Equal(t, 4, lrgen.CFSM().Size())
	assert.Equal(t, []string{"0:$ r3", "0:a s3", "1:$ r1", "2:$ acc", "3:$ r2"}, actionsOf(lrgen))
	assert.Equal(t, []string{"(0,A)1", "(0,S)2"}, gotosOf(lrgen))
}

func TestSingleTerminalGrammar(t *testing.T) {
	b := grammar.NewGrammarBuilder("S -> a")
	b.LHS("S").T("a").End()
	g, err := b.Grammar()
	if err != nil {
		t.Fatal(err)
	}
	lrgen := NewTableGenerator(grammar.Analysis(g))
	assert.NoError(t, lrgen.CreateTables())
	assert.Equal(t, 3, lrgen.CFSM().Size())
}

func TestReduceReduceConflict(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "parsetab.lr")
	defer teardown()
	//
	b := grammar.NewGrammarBuilder("S -> a | a")
	b.LHS("S").T("a").End()
	b.LHS("S").T("a").End()
	g, err := b.Grammar()
	if err != nil {
		t.Fatal(err)
	}
	lrgen := NewTableGenerator(grammar.Analysis(g))
	err = lrgen.CreateTables()
	if assert.Error(t, err) {
		cerr, ok := err.(*ConflictError)
		if assert.True(t, ok, "error should be a *ConflictError") {
			assert.Len(t, cerr.Conflicts, 1)
			c := cerr.Conflicts[0]
			assert.Equal(t, 2, c.State)
			assert.Equal(t, grammar.EOF, c.Symbol)
			assert.Equal(t, Reduce(1), c.Existing)
			assert.Equal(t, Reduce(2), c.Conflicting)
			assert.False(t, c.IsShiftReduce())
			assert.Contains(t, err.Error(), "reduce/reduce conflict in state 2 on $")
		}
	}
	assert.Equal(t, 3, lrgen.CFSM().Size())
	assert.Equal(t, Reduce(1), lrgen.ActionTable().Action(2, grammar.EOF), "first write is kept")
}

func TestShiftReduceConflict(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "parsetab.lr")
	defer teardown()
	//
	b := grammar.NewGrammarBuilder("ambiguous sums")
	b.LHS("E").N("E").T("+").N("E").End()
	b.LHS("E").T("id").End()
	g, err := b.Grammar()
	if err != nil {
		t.Fatal(err)
	}
	lrgen := NewTableGenerator(grammar.Analysis(g))
	err = lrgen.CreateTables()
	assert.Error(t, err)
	assert.Equal(t, 5, lrgen.CFSM().Size())
	if assert.Len(t, lrgen.Conflicts(), 1) {
		c := lrgen.Conflicts()[0]
		assert.Equal(t, 4, c.State)
		assert.Equal(t, "+", c.Symbol.Name)
		assert.True(t, c.IsShiftReduce())
		actions := []string{c.Existing.String(), c.Conflicting.String()}
		sort.Strings(actions)
		assert.Equal(t, []string{"reduce 1", "shift 3"}, actions)
	}
}

func TestLastWriteWins(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "parsetab.lr")
	defer teardown()
	//
	b := grammar.NewGrammarBuilder("S -> a | a")
	b.LHS("S").T("a").End()
	b.LHS("S").T("a").End()
	g, err := b.Grammar()
	if err != nil {
		t.Fatal(err)
	}
	lrgen := NewTableGenerator(grammar.Analysis(g), LastWriteWins(true))
	assert.NoError(t, lrgen.CreateTables())
	assert.Len(t, lrgen.Conflicts(), 1)
	assert.Equal(t, Reduce(2), lrgen.ActionTable().Action(2, grammar.EOF))
}

func TestHashedStatesAreIdentical(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "parsetab.lr")
	defer teardown()
	//
	for _, g := range []*grammar.Grammar{makeExpressionGrammar(t), makeDragonGrammar(t)} {
		plain := NewTableGenerator(grammar.Analysis(g))
		hashed := NewTableGenerator(grammar.Analysis(g), HashStates(true))
		assert.NoError(t, plain.CreateTables())
		assert.NoError(t, hashed.CreateTables())
		assert.Equal(t, plain.CFSM().Size(), hashed.CFSM().Size(), g.Name)
		assert.Equal(t, actionsOf(plain), actionsOf(hashed), g.Name)
		assert.Equal(t, gotosOf(plain), gotosOf(hashed), g.Name)
	}
}

func TestActionEncoding(t *testing.T) {
	for _, a := range []Action{Shift(0), Shift(17), Accept(), Reduce(1), Reduce(42), {}} {
		assert.Equal(t, a, decodeAction(encodeAction(a)), a.String())
	}
	assert.Equal(t, int32(-1), encodeAction(Accept()))
	assert.Equal(t, int32(-3), encodeAction(Reduce(2)))
	assert.Equal(t, "", Action{}.Short())
	assert.Equal(t, "error", Action{}.String())
}

func TestCFSMExport(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "parsetab.lr")
	defer teardown()
	//
	g := makeDragonGrammar(t)
	lrgen := NewTableGenerator(grammar.Analysis(g))
	if err := lrgen.CreateTables(); err != nil {
		t.Fatal(err)
	}
	var b bytes.Buffer
	lrgen.CFSM().Dump(&b)
	lines := strings.Split(b.String(), "\n")
	assert.Equal(t, "C0:", lines[0])
	assert.Equal(t, "    [S' -> . S , $]", lines[1])
	b.Reset()
	lrgen.CFSM().CFSM2GraphViz(&b)
	assert.True(t, strings.HasPrefix(b.String(), "digraph {"))
	assert.Contains(t, b.String(), "s000 -> s001 [label=\"C\"]")
	b.Reset()
	ActionTableAsHTML(lrgen, &b)
	assert.Contains(t, b.String(), "ACTION table of size = 16")
	assert.Contains(t, b.String(), "<td>acc</td>")
	b.Reset()
	GotoTableAsHTML(lrgen, &b)
	assert.Contains(t, b.String(), "GOTO table of size = 5")
}

func TestClosureIsIdempotent(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "parsetab.lr")
	defer teardown()
	//
	for _, g := range []*grammar.Grammar{makeDragonGrammar(t), makeExpressionGrammar(t)} {
		ga := grammar.Analysis(g)
		C := closure(ga, newItemSet(StartItem(g)))
		assert.True(t, C.Equals(closure(ga, C)), "closure of start item set for %s", g.Name)
		lrgen := NewTableGenerator(ga)
		for _, state := range lrgen.CFSM().States() {
			iset := newItemSet(state.Items()...)
			assert.True(t, iset.Equals(closure(ga, iset)), "closure of state %d of %s", state.ID, g.Name)
		}
	}
}

func TestReduceIDsAreUserProductions(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "parsetab.lr")
	defer teardown()
	//
	for _, g := range []*grammar.Grammar{makeDragonGrammar(t), makeExpressionGrammar(t)} {
		lrgen := NewTableGenerator(grammar.Analysis(g))
		if err := lrgen.CreateTables(); err != nil {
			t.Fatal(err)
		}
		reductions := 0
		lrgen.ActionTable().Each(func(state int, a *grammar.Symbol, action Action) {
			if action.Kind == ReduceAction {
				reductions++
				assert.True(t, g.IsUserProduction(action.Production),
					"ACTION[%d,%s] = %s in %s", state, a, action, g.Name)
			}
		})
		assert.NotZero(t, reductions)
	}
}

func TestAcceptReduceConflict(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "parsetab.lr")
	defer teardown()
	//
	b := grammar.NewGrammarBuilder("S -> S | a")
	b.LHS("S").N("S").End()
	b.LHS("S").T("a").End()
	g, err := b.Grammar()
	if err != nil {
		t.Fatal(err)
	}
	lrgen := NewTableGenerator(grammar.Analysis(g))
	err = lrgen.CreateTables()
	if assert.Error(t, err) && assert.Len(t, lrgen.Conflicts(), 1) {
		c := lrgen.Conflicts()[0]
		assert.False(t, c.IsShiftReduce())
		assert.Equal(t, grammar.EOF, c.Symbol)
		assert.Contains(t, c.String(), "accept/reduce conflict in state")
		assert.Contains(t, c.String(), "accept vs. reduce 1")
	}
}
