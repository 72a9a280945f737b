package grammar

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

const expressionGrammar = `E
E T F
+ * ( ) id
3
E -> E + T | T
T -> T * F | F
F -> ( E ) | id
id + id * id
`

func TestLoad(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "parsetab.grammar")
	defer teardown()
	//
	g, input, err := Load("expr", strings.NewReader(expressionGrammar))
	if err != nil {
		t.Fatal(err)
	}
	if input != "id + id * id" {
		t.Errorf("expected input 'id + id * id', have %q", input)
	}
	if g.Size() != 6 {
		t.Errorf("expected 6 productions, have %d", g.Size())
	}
	if p := g.Production(5); p.String() != "F -> ( E )" {
		t.Errorf("expected production 5 to be F -> ( E ), is %v", p)
	}
	if len(g.Terminals()) != 5 || len(g.NonTerminals()) != 3 {
		t.Errorf("expected 5 terminals and 3 non-terminals, have %v and %v",
			g.Terminals(), g.NonTerminals())
	}
}

func TestLoadEpsilon(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "parsetab.grammar")
	defer teardown()
	//
	src := "S\nS A\na\n2\nS -> A\nA -> a | e\n"
	g, input, err := Load("eps", strings.NewReader(src))
	if err != nil {
		t.Fatal(err)
	}
	if input != "" {
		t.Errorf("expected empty input, have %q", input)
	}
	var buf bytes.Buffer
	g.Dump(&buf)
	if buf.String() != "0: S' -> S\n1: S -> A\n2: A -> a\n3: A -> ε\n" {
		t.Errorf("unexpected grammar:\n%s", buf.String())
	}
	if g.Symbol("e") != nil {
		t.Errorf("expected 'e' not to be a grammar symbol")
	}
}

func TestLoadFormatErrors(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "parsetab.grammar")
	defer teardown()
	//
	testCases := []struct {
		src  string
		line int
	}{
		{"S\nS\na\n1\nS a\n", 5},        // missing arrow
		{"S\nS\na\n1\nS -> a | \n", 5},  // empty alternative
		{"S\nS\na\n1\nS -> b\n", 5},     // undeclared symbol
		{"S\nS\na\n1\nT -> a\n", 5},     // LHS not a non-terminal
		{"S\nS\na\nmany\nS -> a\n", 4},  // bad count
		{"S\nS\na\n2\nS -> a\n", 5},     // missing production line
		{"S\nA\na\n1\nA -> a\n", 1},     // start symbol not declared
		{"S\nS a\na\n1\nS -> a\n", 3},   // symbol in both sets
		{"S\nS\n", 2},                   // truncated header
		{"S T\nS T\na\n1\nS -> a\n", 1}, // two start symbols
	}
	for _, tc := range testCases {
		_, _, err := Load("bad", strings.NewReader(tc.src))
		var ferr *FormatError
		if !errors.As(err, &ferr) {
			t.Errorf("expected format error for %q, got %v", tc.src, err)
			continue
		}
		if ferr.Line != tc.line {
			t.Errorf("expected format error at line %d for %q, got %v", tc.line, tc.src, ferr)
		}
	}
}

func TestSplitAlternatives(t *testing.T) {
	alts, err := splitAlternatives(" ( E ) |id|  e ")
	if err != nil {
		t.Fatal(err)
	}
	if len(alts) != 3 || len(alts[0]) != 3 || alts[1][0] != "id" || alts[2][0] != "e" {
		t.Errorf("unexpected alternatives %v", alts)
	}
}
