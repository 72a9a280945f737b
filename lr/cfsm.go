package lr

import (
	"fmt"
	"io"
	"strings"

	"github.com/emirpasic/gods/lists/arraylist"
	"github.com/emirpasic/gods/sets/treeset"
	"github.com/emirpasic/gods/utils"
	"github.com/npillmayer/parsetab/grammar"
)

// === CFSM Construction =====================================================

// CFSMState is a state within the CFSM for a grammar.
type CFSMState struct {
	ID     int      // serial ID of this state
	items  *ItemSet // LR(1) items within this state
	Accept bool     // does this state contain [S' → S·, $] ?
	hash   string
}

// Items returns the items of a state in sorted order.
func (s *CFSMState) Items() []Item {
	return s.items.Items()
}

func (s *CFSMState) String() string {
	return fmt.Sprintf("(state %d | [%d])", s.ID, s.items.Size())
}

func (s *CFSMState) containsCompletedStartItem() bool {
	for _, i := range s.items.Items() {
		if i.prod.ID == grammar.AugmentedProduction && i.IsComplete() && i.la == grammar.EOF {
			return true
		}
	}
	return false
}

// CFSM edge between 2 states, directed and labeled with a grammar symbol.
type cfsmEdge struct {
	from  *CFSMState
	to    *CFSMState
	label *grammar.Symbol
}

// We need this for the worklist of states. It sorts states by serial ID.
func stateComparator(s1, s2 interface{}) int {
	c1 := s1.(*CFSMState)
	c2 := s2.(*CFSMState)
	return utils.IntComparator(c1.ID, c2.ID)
}

// CFSM is the characteristic finite state machine for an LR(1) grammar, i.e. the
// canonical collection of LR(1) item sets together with their goto transitions.
// Will be constructed by a TableGenerator.
type CFSM struct {
	g      *grammar.Grammar        // this CFSM is for grammar g
	states *arraylist.List         // all the states, index = state ID
	edges  *arraylist.List         // all the edges between states, in order of creation
	delta  map[transition]int      // (state, symbol) → state
	byHash map[string][]*CFSMState // state buckets, if hashing is enabled
	S0     *CFSMState              // start state
}

type transition struct {
	from int
	sym  *grammar.Symbol
}

// create an empty (initial) CFSM automaton.
func emptyCFSM(g *grammar.Grammar, hashing bool) *CFSM {
	c := &CFSM{g: g}
	c.states = arraylist.New()
	c.edges = arraylist.New()
	c.delta = make(map[transition]int)
	if hashing {
		c.byHash = make(map[string][]*CFSMState)
	}
	return c
}

// Add a state to the CFSM. Returns the state and true if the state is new.
func (c *CFSM) addState(iset *ItemSet) (*CFSMState, bool) {
	var h string
	if c.byHash != nil {
		h = iset.Hash()
	}
	if s := c.findStateByItems(iset, h); s != nil {
		return s, false
	}
	s := &CFSMState{ID: c.states.Size(), items: iset, hash: h}
	s.Accept = s.containsCompletedStartItem()
	c.states.Add(s)
	if c.byHash != nil {
		c.byHash[s.hash] = append(c.byHash[s.hash], s)
	}
	return s, true
}

// Find a CFSM state by the contained item set. If hashing is enabled, h is
// the hash of iset.
func (c *CFSM) findStateByItems(iset *ItemSet, h string) *CFSMState {
	if c.byHash != nil {
		for _, s := range c.byHash[h] {
			if s.items.Equals(iset) {
				return s
			}
		}
		return nil
	}
	it := c.states.Iterator()
	for it.Next() {
		s := it.Value().(*CFSMState)
		if s.items.Equals(iset) {
			return s
		}
	}
	return nil
}

func (c *CFSM) addEdge(s0, s1 *CFSMState, sym *grammar.Symbol) *cfsmEdge {
	e := &cfsmEdge{from: s0, to: s1, label: sym}
	c.edges.Add(e)
	c.delta[transition{s0.ID, sym}] = s1.ID
	return e
}

// Grammar returns the grammar this CFSM has been built for.
func (c *CFSM) Grammar() *grammar.Grammar {
	return c.g
}

// Size returns the number of states.
func (c *CFSM) Size() int {
	return c.states.Size()
}

// State returns the state with a given ID, or nil.
func (c *CFSM) State(id int) *CFSMState {
	if s, ok := c.states.Get(id); ok {
		return s.(*CFSMState)
	}
	return nil
}

// States returns all states, in order of their IDs.
func (c *CFSM) States() []*CFSMState {
	states := make([]*CFSMState, 0, c.states.Size())
	it := c.states.Iterator()
	for it.Next() {
		states = append(states, it.Value().(*CFSMState))
	}
	return states
}

// Transition returns goto(s, X) as a state ID. If there is no transition,
// Transition returns false.
func (c *CFSM) Transition(s int, X *grammar.Symbol) (int, bool) {
	to, ok := c.delta[transition{s, X}]
	return to, ok
}

// EachEdge calls f for every transition of the CFSM, in order of creation.
func (c *CFSM) EachEdge(f func(from, to int, X *grammar.Symbol)) {
	it := c.edges.Iterator()
	for it.Next() {
		e := it.Value().(*cfsmEdge)
		f(e.from.ID, e.to.ID, e.label)
	}
}

// Construct the characteristic finite state machine CFSM for a grammar.
// States are explored breadth first, lowest ID first. Transitions out of a state
// are created for the symbols after a dot, in order of symbol names.
func buildCFSM(ga *grammar.GrammarAnalysis, hashing bool) *CFSM {
	tracer().Debugf("=== build CFSM ==================================================")
	G := ga.Grammar()
	cfsm := emptyCFSM(G, hashing)
	closure0 := closure(ga, newItemSet(StartItem(G)))
	cfsm.S0, _ = cfsm.addState(closure0)
	S := treeset.NewWith(stateComparator)
	S.Add(cfsm.S0)
	for S.Size() > 0 {
		s := S.Values()[0].(*CFSMState)
		S.Remove(s)
		syms := s.items.symbolsAfterDot()
		for _, X := range syms.Symbols() {
			gotoset := gotoSet(ga, s.items, X)
			snew, isNew := cfsm.addState(gotoset)
			if isNew {
				S.Add(snew)
			}
			cfsm.addEdge(s, snew, X)
			tracer().Debugf("%s --%s--> %s", s, X, snew)
		}
	}
	tracer().Infof("CFSM for grammar %q has %d states", G.Name, cfsm.Size())
	return cfsm
}

// Dump writes the states and their items to w.
func (c *CFSM) Dump(w io.Writer) {
	for _, s := range c.States() {
		fmt.Fprintf(w, "C%d:\n", s.ID)
		for _, i := range s.Items() {
			fmt.Fprintf(w, "    [%s]\n", i)
		}
	}
}

// CFSM2GraphViz exports a CFSM to the Graphviz Dot format.
func (c *CFSM) CFSM2GraphViz(w io.Writer) {
	io.WriteString(w, `digraph {
graph [splines=true, fontname=Helvetica, fontsize=10];
node [shape=Mrecord, style=filled, fontname=Helvetica, fontsize=10];
edge [fontname=Helvetica, fontsize=10];

`)
	for _, s := range c.States() {
		fmt.Fprintf(w, "s%03d [fillcolor=%s label=\"{%03d | %s}\"]\n",
			s.ID, nodecolor(s), s.ID, forGraphviz(s.items))
	}
	c.EachEdge(func(from, to int, X *grammar.Symbol) {
		fmt.Fprintf(w, "s%03d -> s%03d [label=\"%s\"]\n", from, to, escapeGraphviz(X.Name))
	})
	io.WriteString(w, "}\n")
}

func nodecolor(state *CFSMState) string {
	if state.Accept {
		return "lightgray"
	}
	return "white"
}

func forGraphviz(S *ItemSet) string {
	items := S.Items()
	lines := make([]string, len(items))
	for k, i := range items {
		lines[k] = escapeGraphviz(i.String())
	}
	return strings.Join(lines, "\\l") + "\\l"
}

var graphvizEscaper = strings.NewReplacer(
	`"`, `\"`, "{", `\{`, "}", `\}`, "|", `\|`, "<", `\<`, ">", `\>`,
)

func escapeGraphviz(s string) string {
	return graphvizEscaper.Replace(s)
}
