package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/npillmayer/parsetab/grammar"
	"github.com/npillmayer/parsetab/ll1"
	"github.com/npillmayer/parsetab/lr"
	"github.com/npillmayer/parsetab/lr/clr"
	"github.com/pterm/pterm"
)

// Tables are assembled as pterm.TableData with a header row and rendered
// by pterm's table printer.

func render(data pterm.TableData) {
	pterm.DefaultTable.WithHasHeader().WithData(data).Render()
}

func showGrammar(ga *grammar.GrammarAnalysis) {
	pterm.DefaultSection.Println("Grammar " + ga.Grammar().Name)
	render(grammarData(ga.Grammar()))
	pterm.DefaultSection.Println("FIRST and FOLLOW sets")
	render(firstFollowData(ga))
}

func grammarData(g *grammar.Grammar) pterm.TableData {
	data := pterm.TableData{{"#", "production"}}
	for _, p := range g.Productions() {
		data = append(data, []string{strconv.Itoa(int(p.ID)), p.String()})
	}
	return data
}

// firstFollowData lists FIRST and FOLLOW for all non-terminals, ordered by name.
func firstFollowData(ga *grammar.GrammarAnalysis) pterm.TableData {
	data := pterm.TableData{{"symbol", "FIRST", "FOLLOW"}}
	N := grammar.NewSymbolSet(ga.Grammar().NonTerminals()...)
	for _, A := range N.Symbols() {
		data = append(data, []string{A.Name, ga.First(A).String(), ga.Follow(A).String()})
	}
	return data
}

// ll1TableData lists M[A,a] with a row per non-terminal, in order of declaration.
func ll1TableData(table *ll1.Table) pterm.TableData {
	cols := table.Columns()
	header := []string{""}
	for _, a := range cols {
		header = append(header, a.Name)
	}
	data := pterm.TableData{header}
	for _, A := range table.Grammar().NonTerminals() {
		row := []string{A.Name}
		for _, a := range cols {
			cell := ""
			if id, ok := table.Lookup(A, a); ok {
				cell = strconv.Itoa(int(id))
			}
			row = append(row, cell)
		}
		data = append(data, row)
	}
	return data
}

// actionTableData lists ACTION[s,a] with a row per state. Columns are the
// terminals in order of declaration, followed by $.
func actionTableData(lrgen *lr.TableGenerator) pterm.TableData {
	cols := append(append([]*grammar.Symbol{}, lrgen.Grammar().Terminals()...), grammar.EOF)
	header := []string{"state"}
	for _, a := range cols {
		header = append(header, a.Name)
	}
	data := pterm.TableData{header}
	for s := 0; s < lrgen.ActionTable().States(); s++ {
		row := []string{strconv.Itoa(s)}
		for _, a := range cols {
			row = append(row, lrgen.ActionTable().Action(s, a).Short())
		}
		data = append(data, row)
	}
	return data
}

// gotoTableData lists GOTO[s,A] with a row per state.
func gotoTableData(lrgen *lr.TableGenerator) pterm.TableData {
	cols := lrgen.Grammar().NonTerminals()
	header := []string{"state"}
	for _, A := range cols {
		header = append(header, A.Name)
	}
	data := pterm.TableData{header}
	for s := 0; s < lrgen.ActionTable().States(); s++ {
		row := []string{strconv.Itoa(s)}
		for _, A := range cols {
			cell := ""
			if to, ok := lrgen.GotoTable().Goto(s, A); ok {
				cell = strconv.Itoa(to)
			}
			row = append(row, cell)
		}
		data = append(data, row)
	}
	return data
}

func conflictData(conflicts []lr.Conflict) pterm.TableData {
	data := pterm.TableData{{"state", "symbol", "existing", "conflicting"}}
	for _, c := range conflicts {
		data = append(data, []string{strconv.Itoa(c.State), c.Symbol.Name,
			c.Existing.String(), c.Conflicting.String()})
	}
	return data
}

func ll1TraceData(result *ll1.Result) pterm.TableData {
	data := pterm.TableData{{"stack", "input", "action"}}
	for _, step := range result.Steps {
		data = append(data, []string{strings.Join(step.Stack, " "),
			strings.Join(step.Input, " "), step.ActionString()})
	}
	return data
}

func lrTraceData(result *clr.Result) pterm.TableData {
	data := pterm.TableData{{"stack", "input", "action"}}
	for _, step := range result.Steps {
		data = append(data, []string{strings.Trim(fmt.Sprint(step.Stack), "[]"),
			strings.Join(step.Input, " "), step.ActionString()})
	}
	return data
}
