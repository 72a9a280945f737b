package clr

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/emirpasic/gods/stacks/arraystack"
	"github.com/npillmayer/parsetab"
	"github.com/npillmayer/parsetab/grammar"
	"github.com/npillmayer/parsetab/lr"
	"github.com/npillmayer/parsetab/scanner"
)

// Step is a single step in the trace of a parse.
type Step struct {
	Stack      []int               // state stack, bottom first
	Input      []string            // remaining input, ending with $
	Action     lr.Action           // action taken; NoAction for an error step
	Production *grammar.Production // production of a reduce action
}

// ActionString formats the action of a step.
func (s Step) ActionString() string {
	if s.Action.Kind == lr.ReduceAction && s.Production != nil {
		return fmt.Sprintf("reduce %d: %s", s.Production.ID, s.Production)
	}
	return s.Action.String()
}

func (s Step) String() string {
	states := make([]string, len(s.Stack))
	for i, id := range s.Stack {
		states[i] = strconv.Itoa(id)
	}
	return fmt.Sprintf("%-30s%-30s%s", strings.Join(states, " "), strings.Join(s.Input, " "),
		s.ActionString())
}

// Result is the outcome of a parse: a verdict and a trace of parser steps.
type Result struct {
	Accepted bool
	Steps    []Step
	Span     parsetab.Span // input span covered by the start symbol, if accepted
}

// Actions returns the short forms of the actions of all steps, e.g. "s5", "r6", "acc".
// Error steps are represented as "error".
func (r *Result) Actions() []string {
	actions := make([]string, len(r.Steps))
	for i, step := range r.Steps {
		if actions[i] = step.Action.Short(); actions[i] == "" {
			actions[i] = "error"
		}
	}
	return actions
}

// ParseError is returned by Parse if the ACTION table holds no entry for the
// current state and lookahead.
type ParseError struct {
	State     int           // state on top of the stack
	Lookahead string        // lexeme of the lookahead token
	Span      parsetab.Span // position of the lookahead token
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("syntax error at %s: unexpected %q in state %d", e.Span, e.Lookahead, e.State)
}

// StackUnderflowError is returned by Parse if a reduce action pops more states
// than there are on the stack. This indicates a corrupt parse table.
type StackUnderflowError struct {
	Production *grammar.Production
	Depth      int // number of states on the stack before the reduce
}

func (e *StackUnderflowError) Error() string {
	return fmt.Sprintf("stack underflow reducing %d: %s with %d states on the stack",
		e.Production.ID, e.Production, e.Depth)
}

// GotoError is returned by Parse if the GOTO table holds no entry after a reduce.
// This indicates a corrupt parse table.
type GotoError struct {
	State int
	LHS   *grammar.Symbol
}

func (e *GotoError) Error() string {
	return fmt.Sprintf("no GOTO entry for state %d and %s", e.State, e.LHS)
}

// LoopError is returned by Parse if the parser keeps reducing without
// consuming input. Tables built with lr.LastWriteWins may contain cycles
// of reductions.
type LoopError struct {
	State     int           // state on top of the stack after the last reduce
	Lookahead string        // lexeme of the lookahead token
	Span      parsetab.Span // position of the lookahead token
}

func (e *LoopError) Error() string {
	return fmt.Sprintf("parser loops at %s: no progress on %q in state %d", e.Span, e.Lookahead, e.State)
}

// Parser is an LR(1)-parser type. Create and initialize one with clr.NewParser(...)
type Parser struct {
	G       *grammar.Grammar
	stack   *arraystack.Stack // parser stack of stackitems
	gotoT   *lr.GotoTable     // GOTO table
	actionT *lr.ActionTable   // ACTION table
}

// We store pairs of state-IDs and input spans on the parse stack.
type stackitem struct {
	stateID int
	span    parsetab.Span // input span over which the state's symbol reaches
}

// NewParser creates an LR(1) parser.
func NewParser(g *grammar.Grammar, gotoTable *lr.GotoTable, actionTable *lr.ActionTable) *Parser {
	return &Parser{
		G:       g,
		stack:   arraystack.New(),
		gotoT:   gotoTable,
		actionT: actionTable,
	}
}

// Parse starts a new parse on the tokens of scan, starting in state 0.
//
// The parser returns a result containing the verdict and the trace of all
// parser steps. If the input is rejected, it additionally returns an error,
// which is a *ParseError for syntax errors. Corrupt tables are reported
// as *StackUnderflowError or *GotoError, reduce cycles as *LoopError.
func (p *Parser) Parse(scan scanner.Tokenizer) (*Result, error) {
	tracer().Debugf("~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~")
	if p.G == nil || p.gotoT == nil || p.actionT == nil {
		tracer().Errorf("LR(1)-parser not initialized")
		return nil, fmt.Errorf("LR(1)-parser not initialized")
	}
	tokens := scanner.Drain(scan)
	end := uint64(0)
	if len(tokens) > 0 {
		end = tokens[len(tokens)-1].Span().To()
	}
	tokens = append(tokens, scanner.MakeDefaultToken(scanner.EOF, grammar.EOFName, parsetab.Span{end, end}))
	p.stack.Clear()
	p.stack.Push(stackitem{stateID: 0})
	result := &Result{}
	ip := 0
	// stack configurations reached by reductions since the last shift
	seen := make(map[string]bool)
	shiftHeight := p.stack.Size()
	for {
		step := Step{Stack: p.stackSnapshot(), Input: remaining(tokens[ip:])}
		tos := p.top()
		token := tokens[ip]
		a := p.G.TerminalFor(token)
		action := p.actionT.Action(tos.stateID, a)
		tracer().Debugf("action(%d,%v) = %s", tos.stateID, a, action)
		step.Action = action
		switch action.Kind {
		case lr.AcceptAction:
			result.Steps = append(result.Steps, step)
			result.Accepted = true
			result.Span = tos.span
			return result, nil
		case lr.ShiftAction:
			result.Steps = append(result.Steps, step)
			tracer().Debugf("shifting, next state = %d", action.State)
			p.stack.Push(stackitem{stateID: action.State, span: token.Span()})
			ip++
			seen = make(map[string]bool)
			shiftHeight = p.stack.Size()
		case lr.ReduceAction:
			if !p.G.IsUserProduction(action.Production) {
				result.Steps = append(result.Steps, step)
				return result, fmt.Errorf("ACTION[%d,%v] refers to unknown production %d",
					tos.stateID, a, action.Production)
			}
			prod := p.G.Production(action.Production)
			step.Production = prod
			result.Steps = append(result.Steps, step)
			nextstate, handlespan, err := p.reduce(prod)
			if err != nil {
				tracer().Errorf(err.Error())
				return result, err
			}
			if handlespan.IsNull() { // resulted from an epsilon production
				pos := token.Span().From() // epsilon was just before lookahead
				handlespan = parsetab.Span{pos, pos}
			}
			tracer().Debugf("reduced to next state = %d", nextstate)
			p.stack.Push(stackitem{stateID: nextstate, span: handlespan})
			// Without a shift in between, a repeated stack or a stack grown by more
			// states than the table has will repeat forever.
			config := fmt.Sprint(p.stackSnapshot())
			if seen[config] || p.stack.Size() > shiftHeight+p.actionT.States() {
				err := &LoopError{State: nextstate, Lookahead: lexemeOf(token), Span: token.Span()}
				tracer().Errorf(err.Error())
				return result, err
			}
			seen[config] = true
		default: // no action found
			result.Steps = append(result.Steps, step)
			err := &ParseError{State: tos.stateID, Lookahead: lexemeOf(token), Span: token.Span()}
			tracer().Infof(err.Error())
			return result, err
		}
	}
}

// reduce performs a reduce action for a production
//
//    LHS --> X1 ... Xn   (with X being terminals or non-terminals)
//
// Symbols X1 to Xn should be represented on the stack as states
//
//    [TOS]  Sn(span_n) ... S1(span1)  ...
//
// reduce pops n states and returns GOTO[TOS, LHS].
func (p *Parser) reduce(prod *grammar.Production) (int, parsetab.Span, error) {
	tracer().Infof("reduce %v", prod)
	if p.stack.Size() <= prod.Len() {
		return 0, parsetab.Span{}, &StackUnderflowError{Production: prod, Depth: p.stack.Size()}
	}
	var handlespan parsetab.Span
	for i := 0; i < prod.Len(); i++ {
		x, _ := p.stack.Pop()
		handlespan = handlespan.Extend(x.(stackitem).span)
	}
	tos := p.top()
	nextstate, ok := p.gotoT.Goto(tos.stateID, prod.LHS)
	if !ok {
		return 0, handlespan, &GotoError{State: tos.stateID, LHS: prod.LHS}
	}
	return nextstate, handlespan, nil
}

// --- Helpers ----------------------------------------------------------

func (p *Parser) top() stackitem {
	x, _ := p.stack.Peek()
	return x.(stackitem)
}

// stackSnapshot returns the states on the stack, bottom first.
func (p *Parser) stackSnapshot() []int {
	values := p.stack.Values() // top first
	snap := make([]int, len(values))
	for i, x := range values {
		snap[len(values)-1-i] = x.(stackitem).stateID
	}
	return snap
}

func lexemeOf(token parsetab.Token) string {
	if token.TokType() == scanner.EOF {
		return grammar.EOFName
	}
	return token.Lexeme()
}

func remaining(tokens []parsetab.Token) []string {
	input := make([]string, len(tokens))
	for i, tok := range tokens {
		input[i] = tok.Lexeme()
	}
	return input
}
