package grammar

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"

	"github.com/npillmayer/parsetab/scanner"
	"github.com/npillmayer/parsetab/scanner/lexmach"
	"github.com/timtadh/lexmachine"
)

// FormatError is returned by Load for malformed grammar descriptions.
type FormatError struct {
	Line   int    // line number, starting at 1
	Text   string // offending line
	Reason string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("invalid grammar format at line %d: %s: %q", e.Line, e.Reason, e.Text)
}

// Load reads a textual grammar description and returns the grammar together
// with the input string following the productions. The format is line-based:
//
//    E                             // start symbol
//    E T F                         // non-terminals
//    + * ( ) id                    // terminals; 'e' denotes ε and is always present
//    3                             // number of production lines
//    E -> E + T | T                // productions, alternatives separated by '|'
//    T -> T * F | F
//    F -> ( E ) | id
//    id + id * id                  // input string
//
// Alternatives are sequences of symbols separated by whitespace. An alternative
// consisting of just 'e' is an ε-production. Productions are numbered from 1,
// every alternative receiving its own number.
//
// The input line is optional. Every violation of the format results in a *FormatError.
func Load(name string, r io.Reader) (*Grammar, string, error) {
	ld := &loader{
		lines:        bufio.NewScanner(r),
		b:            NewGrammarBuilder(name),
		terminals:    make(map[string]bool),
		nonterminals: make(map[string]bool),
	}
	if err := ld.header(); err != nil {
		return nil, "", err
	}
	count, err := ld.count()
	if err != nil {
		return nil, "", err
	}
	for i := 0; i < count; i++ {
		line, ok := ld.next()
		if !ok {
			return nil, "", ld.formatError("", fmt.Sprintf("expected %d production lines, found %d", count, i))
		}
		if err := ld.production(line); err != nil {
			return nil, "", err
		}
	}
	if err := ld.lines.Err(); err != nil {
		return nil, "", err
	}
	g, err := ld.b.Grammar()
	if err != nil {
		return nil, "", ld.formatError("", err.Error())
	}
	var input string
	for {
		line, ok := ld.next()
		if !ok {
			break
		}
		if input = strings.TrimSpace(line); input != "" {
			break
		}
	}
	tracer().Infof("loaded %s, input = %q", g, input)
	return g, input, nil
}

type loader struct {
	lines        *bufio.Scanner
	lineno       int
	b            *GrammarBuilder
	terminals    map[string]bool
	nonterminals map[string]bool
}

func (ld *loader) next() (string, bool) {
	if !ld.lines.Scan() {
		return "", false
	}
	ld.lineno++
	return ld.lines.Text(), true
}

func (ld *loader) formatError(text string, reason string) error {
	err := &FormatError{Line: ld.lineno, Text: strings.TrimSpace(text), Reason: reason}
	tracer().Errorf(err.Error())
	return err
}

// header reads the start symbol, the non-terminals and the terminals.
func (ld *loader) header() error {
	var lines [3]string
	for i := range lines {
		line, ok := ld.next()
		if !ok {
			return ld.formatError("", "unexpected end of grammar header")
		}
		lines[i] = line
	}
	start := strings.Fields(lines[0])
	if len(start) != 1 {
		ld.lineno = 1
		return ld.formatError(lines[0], "expected a single start symbol")
	}
	for _, A := range strings.Fields(lines[1]) {
		if A == EpsilonInput {
			ld.lineno = 2
			return ld.formatError(lines[1], "'e' is reserved for ε")
		}
		ld.nonterminals[A] = true
		ld.b.NonTerminals(A)
	}
	if !ld.nonterminals[start[0]] {
		ld.lineno = 1
		return ld.formatError(lines[0], fmt.Sprintf("start symbol %q is not a non-terminal", start[0]))
	}
	ld.b.Start(start[0])
	for _, a := range strings.Fields(lines[2]) {
		if a == EpsilonInput {
			continue
		}
		ld.terminals[a] = true
		ld.b.Terminals(a)
	}
	if ld.b.err != nil {
		ld.lineno = 3
		return ld.formatError(lines[2], ld.b.err.Error())
	}
	return nil
}

func (ld *loader) count() (int, error) {
	line, ok := ld.next()
	if !ok {
		return 0, ld.formatError("", "missing production count")
	}
	n, err := strconv.Atoi(strings.TrimSpace(line))
	if err != nil || n < 0 {
		return 0, ld.formatError(line, "invalid production count")
	}
	return n, nil
}

// production reads a line 'A -> α1 | α2 | …'.
func (ld *loader) production(line string) error {
	arrow := strings.Index(line, "->")
	if arrow < 0 {
		return ld.formatError(line, `missing "->"`)
	}
	lhs := strings.Fields(line[:arrow])
	if len(lhs) != 1 {
		return ld.formatError(line, "left hand side must be a single non-terminal")
	}
	A := lhs[0]
	if !ld.nonterminals[A] {
		return ld.formatError(line, fmt.Sprintf("%q is not a non-terminal", A))
	}
	alts, err := splitAlternatives(line[arrow+2:])
	if err != nil {
		return ld.formatError(line, err.Error())
	}
	for _, alt := range alts {
		if len(alt) == 0 {
			return ld.formatError(line, "empty alternative")
		}
		rb := ld.b.LHS(A)
		for _, X := range alt {
			switch {
			case X == EpsilonInput: // ε is neutral within a sequence
			case ld.nonterminals[X]:
				rb.N(X)
			case ld.terminals[X]:
				rb.T(X)
			default:
				return ld.formatError(line, fmt.Sprintf("undeclared symbol %q", X))
			}
		}
		rb.End()
	}
	return nil
}

// --- Tokenizing productions ------------------------------------------------

const (
	tokSymbol = iota + 1
	tokBar
)

var productionLexer struct {
	once    sync.Once
	adapter *lexmach.LMAdapter
	err     error
}

// lexer returns the lexmachine adapter for right hand sides of productions,
// creating it on first use.
func lexer() (*lexmach.LMAdapter, error) {
	productionLexer.once.Do(func() {
		tokenIds := map[string]int{"SYMBOL": tokSymbol, "|": tokBar}
		init := func(lexer *lexmachine.Lexer) {
			lexer.Add([]byte(`[^ \t\r\n\|]+`), lexmach.MakeToken("SYMBOL", tokSymbol))
			lexer.Add([]byte(`( |\t|\r|\n)+`), lexmach.Skip)
		}
		productionLexer.adapter, productionLexer.err = lexmach.NewLMAdapter(init,
			[]string{"|"}, nil, tokenIds)
	})
	return productionLexer.adapter, productionLexer.err
}

// splitAlternatives tokenizes 'α1 | α2 | …' into lists of symbol names.
func splitAlternatives(rhs string) ([][]string, error) {
	lm, err := lexer()
	if err != nil {
		return nil, err
	}
	scan, err := lm.Scanner(rhs)
	if err != nil {
		return nil, err
	}
	handler, firstError := lexmach.ErrorCollector()
	scan.SetErrorHandler(handler)
	alts := [][]string{nil}
	for tok := scan.NextToken(); tok.TokType() != scanner.EOF; tok = scan.NextToken() {
		if tok.TokType() == tokBar {
			alts = append(alts, nil)
			continue
		}
		last := len(alts) - 1
		alts[last] = append(alts[last], tok.Lexeme())
	}
	return alts, firstError()
}
