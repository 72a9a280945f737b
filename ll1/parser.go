package ll1

import (
	"fmt"
	"strings"

	"github.com/emirpasic/gods/stacks/arraystack"
	"github.com/npillmayer/parsetab"
	"github.com/npillmayer/parsetab/grammar"
	"github.com/npillmayer/parsetab/scanner"
)

// ActionKind is the kind of a step of the predictive parser.
type ActionKind int

// Parser actions.
const (
	Expand ActionKind = iota // replace a non-terminal by the right hand side of a production
	Match                    // pop a terminal matching the lookahead
	Accept
	Error
)

func (k ActionKind) String() string {
	switch k {
	case Expand:
		return "expand"
	case Match:
		return "match"
	case Accept:
		return "accept"
	}
	return "error"
}

// Step is a single step in the trace of a parse.
type Step struct {
	Stack      []string            // parse stack, bottom first
	Input      []string            // remaining input, ending with $
	Action     ActionKind          // action taken
	Production *grammar.Production // production used by an Expand action
}

// ActionString formats the action of a step.
func (s Step) ActionString() string {
	if s.Action == Expand && s.Production != nil {
		return fmt.Sprintf("Use production %d: %s", s.Production.ID, s.Production)
	}
	return s.Action.String()
}

func (s Step) String() string {
	return fmt.Sprintf("%-30s%-30s%s", strings.Join(s.Stack, " "), strings.Join(s.Input, " "),
		s.ActionString())
}

// Result is the outcome of a parse: a verdict and a trace of parser steps.
type Result struct {
	Accepted bool
	Steps    []Step
}

// ParseError is returned by Parse if the parser finds no way to continue.
type ParseError struct {
	Top       string        // symbol on top of the stack
	Lookahead string        // lexeme of the lookahead token
	Span      parsetab.Span // position of the lookahead token
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("syntax error at %s: unexpected %q with %s on top of stack",
		e.Span, e.Lookahead, e.Top)
}

// Parser is a predictive parser. Create and initialize one with ll1.NewParser(...)
type Parser struct {
	g     *grammar.Grammar
	table *Table
	stack *arraystack.Stack // of *grammar.Symbol
}

// NewParser creates a predictive parser for a parse table.
func NewParser(table *Table) *Parser {
	return &Parser{
		g:     table.Grammar(),
		table: table,
		stack: arraystack.New(),
	}
}

// Parse starts a new parse on the tokens of scan.
//
// The parser returns a result containing the verdict and the trace of all
// parser steps. If the input is rejected, it additionally returns a *ParseError.
func (p *Parser) Parse(scan scanner.Tokenizer) (*Result, error) {
	tracer().Debugf("~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~")
	tokens := append(scanner.Drain(scan), scanner.MakeDefaultToken(scanner.EOF, grammar.EOFName, parsetab.Span{}))
	p.stack.Clear()
	p.stack.Push(grammar.EOF)
	p.stack.Push(p.g.Start())
	result := &Result{}
	ip := 0
	for !p.stack.Empty() {
		step := Step{Stack: p.stackSnapshot(), Input: remaining(tokens[ip:])}
		top, _ := p.stack.Peek()
		X := top.(*grammar.Symbol)
		a := p.g.TerminalFor(tokens[ip])
		tracer().Debugf("X = %s, a = %v", X, a)
		if X == grammar.EOF && a == grammar.EOF {
			step.Action = Accept
			result.Steps = append(result.Steps, step)
			result.Accepted = true
			return result, nil
		}
		if X.IsTerminal() {
			if X != a {
				return p.fail(result, step, X, tokens[ip])
			}
			step.Action = Match
			result.Steps = append(result.Steps, step)
			p.stack.Pop()
			ip++
			continue
		}
		id, ok := p.table.Lookup(X, a)
		if !ok || !p.g.IsUserProduction(id) {
			return p.fail(result, step, X, tokens[ip])
		}
		prod := p.g.Production(id)
		step.Action, step.Production = Expand, prod
		result.Steps = append(result.Steps, step)
		p.stack.Pop()
		rhs := prod.RHS()
		for i := len(rhs) - 1; i >= 0; i-- {
			p.stack.Push(rhs[i])
		}
	}
	return result, nil
}

func (p *Parser) fail(result *Result, step Step, X *grammar.Symbol, tok parsetab.Token) (*Result, error) {
	step.Action = Error
	result.Steps = append(result.Steps, step)
	lexeme := tok.Lexeme()
	if tok.TokType() == scanner.EOF {
		lexeme = grammar.EOFName
	}
	err := &ParseError{Top: X.Name, Lookahead: lexeme, Span: tok.Span()}
	tracer().Infof(err.Error())
	return result, err
}

// stackSnapshot returns the stack contents, bottom first.
func (p *Parser) stackSnapshot() []string {
	values := p.stack.Values() // top first
	snap := make([]string, len(values))
	for i, x := range values {
		snap[len(values)-1-i] = x.(*grammar.Symbol).Name
	}
	return snap
}

func remaining(tokens []parsetab.Token) []string {
	input := make([]string, len(tokens))
	for i, tok := range tokens {
		input[i] = tok.Lexeme()
	}
	return input
}
