package main

import (
	"errors"
	"testing"

	"github.com/npillmayer/parsetab/grammar"
	"github.com/npillmayer/parsetab/ll1"
	"github.com/npillmayer/parsetab/lr"
	"github.com/npillmayer/parsetab/scanner"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
)

func load(t *testing.T, path string) (*grammar.GrammarAnalysis, string) {
	g, input, err := loadGrammar([]string{path})
	if err != nil {
		t.Fatal(err)
	}
	return grammar.Analysis(g), input
}

func TestLoadGrammar(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "parsetab.cli")
	defer teardown()
	//
	ga, input := load(t, "testdata/expr.txt")
	assert.Equal(t, "expr.txt", ga.Grammar().Name)
	assert.Equal(t, "id + id * id", input)
	g, input, err := loadGrammar([]string{"testdata/optional.txt", "a a"})
	assert.NoError(t, err)
	assert.Equal(t, "a a", input)
	assert.Equal(t, 3, g.Size())
	//
	_, _, err = loadGrammar([]string{"testdata/broken.txt"})
	var xerr *exitError
	if assert.True(t, errors.As(err, &xerr)) {
		assert.Equal(t, exitGrammar, xerr.code)
		var ferr *grammar.FormatError
		assert.True(t, errors.As(err, &ferr))
	}
	_, _, err = loadGrammar([]string{"testdata/does-not-exist.txt"})
	assert.Error(t, err)
}

func TestPredictiveRun(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "parsetab.cli")
	defer teardown()
	//
	ga, input := load(t, "testdata/optional.txt")
	table, result, err := predictiveParse(ga, input, scanner.Auto)
	assert.NoError(t, err)
	assert.True(t, result.Accepted)
	data := ll1TableData(table)
	assert.Equal(t, []string{"", "a", "$"}, data[0])
	assert.Equal(t, []string{"S", "1", "1"}, data[1])
	assert.Equal(t, []string{"A", "2", "3"}, data[2])
	trace := ll1TraceData(result)
	assert.Equal(t, []string{"stack", "input", "action"}, trace[0])
	assert.Equal(t, []string{"$ S", "a $", "Use production 1: S -> A"}, trace[1])
	assert.Equal(t, "accept", trace[len(trace)-1][2])
	//
	ga, _ = load(t, "testdata/ambiguous.txt")
	table, _, err = predictiveParse(ga, "a", scanner.Auto)
	assert.Nil(t, table)
	var cerr *ll1.ConflictError
	assert.True(t, errors.As(err, &cerr))
}

func TestShiftReduceRun(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "parsetab.cli")
	defer teardown()
	//
	ga, input := load(t, "testdata/expr.txt")
	lrgen, err := lrTables(ga)
	if err != nil {
		t.Fatal(err)
	}
	result, err := shiftReduceParse(lrgen, input, scanner.Auto)
	assert.NoError(t, err)
	assert.True(t, result.Accepted)
	actions := actionTableData(lrgen)
	assert.Equal(t, []string{"state", "+", "*", "(", ")", "id", "$"}, actions[0])
	assert.Equal(t, []string{"0", "", "", "s1", "", "s5", ""}, actions[1])
	assert.Len(t, actions, 23)
	gotos := gotoTableData(lrgen)
	assert.Equal(t, []string{"state", "E", "T", "F"}, gotos[0])
	assert.Equal(t, []string{"0", "2", "4", "3"}, gotos[1])
	trace := lrTraceData(result)
	assert.Equal(t, []string{"0", "id + id * id $", "shift 5"}, trace[1])
	assert.Equal(t, []string{"0 5", "+ id * id $", "reduce 6: F -> id"}, trace[2])
	//
	result, err = shiftReduceParse(lrgen, "id +", scanner.Auto)
	assert.Error(t, err)
	assert.False(t, result.Accepted)
	xerr, ok := verdict(result.Accepted, err).(*exitError)
	if assert.True(t, ok) {
		assert.Equal(t, exitRejected, xerr.code)
	}
	assert.NoError(t, verdict(true, nil))
}

func TestConflictingGrammar(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "parsetab.cli")
	defer teardown()
	//
	ga, _ := load(t, "testdata/ambiguous.txt")
	lrgen, err := lrTables(ga)
	var xerr *exitError
	if assert.True(t, errors.As(err, &xerr)) {
		assert.Equal(t, exitGrammar, xerr.code)
	}
	var cerr *lr.ConflictError
	assert.True(t, errors.As(err, &cerr))
	data := conflictData(lrgen.Conflicts())
	assert.Equal(t, []string{"2", "$", "reduce 1", "reduce 2"}, data[1])
	//
	_, err = lrTables(ga, lr.LastWriteWins(true))
	assert.NoError(t, err)
	_, err = newIntp(ga, scanner.Auto)
	assert.Error(t, err)
}

func TestInterpreter(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "parsetab.cli")
	defer teardown()
	//
	ga, _ := load(t, "testdata/expr.txt")
	intp, err := newIntp(ga, scanner.Fields, lr.HashStates(true))
	if err != nil {
		t.Fatal(err)
	}
	assert.Nil(t, intp.ll1table, "left recursive grammar is not LL(1)")
	assert.False(t, intp.useLL1)
	intp.showTrace = false
	accepted, err := intp.Parse("( id + id ) * id")
	assert.NoError(t, err)
	assert.True(t, accepted)
	assert.False(t, intp.Eval(":ll1"))
	assert.False(t, intp.useLL1)
	assert.False(t, intp.Eval(":trace"))
	assert.True(t, intp.showTrace)
	assert.True(t, intp.Eval(":quit"))
	//
	ga, _ = load(t, "testdata/optional.txt")
	intp, err = newIntp(ga, scanner.Auto)
	if err != nil {
		t.Fatal(err)
	}
	assert.False(t, intp.Eval(":ll1"))
	assert.True(t, intp.useLL1)
	accepted, err = intp.Parse("a")
	assert.NoError(t, err)
	assert.True(t, accepted)
	accepted, err = intp.Parse("b")
	assert.Error(t, err)
	assert.False(t, accepted)
}

func TestFirstFollowData(t *testing.T) {
	ga, _ := load(t, "testdata/optional.txt")
	data := firstFollowData(ga)
	assert.Equal(t, []string{"symbol", "FIRST", "FOLLOW"}, data[0])
	assert.Equal(t, []string{"A", "{ a ε }", "{ $ }"}, data[1])
	assert.Equal(t, []string{"S", "{ a ε }", "{ $ }"}, data[2])
	assert.Equal(t, []string{"#", "production"}, grammarData(ga.Grammar())[0])
	assert.Equal(t, []string{"3", "A -> ε"}, grammarData(ga.Grammar())[3])
}

func TestStrictGrammar(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "parsetab.cli")
	defer teardown()
	//
	_, _, err := loadGrammar([]string{"testdata/unreachable.txt"})
	assert.NoError(t, err)
	*rootFlags.strict = true
	defer func() { *rootFlags.strict = false }()
	_, _, err = loadGrammar([]string{"testdata/unreachable.txt"})
	var xerr *exitError
	if assert.True(t, errors.As(err, &xerr)) {
		assert.Equal(t, exitGrammar, xerr.code)
	}
}
