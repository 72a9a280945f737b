/*
Package ll1 provides predictive parsing for LL(1) grammars.

Clients construct a grammar, usually by using a grammar builder, and subject it
to grammar analysis. The predictive parse table is built from the FIRST and
FOLLOW sets:

	ga := grammar.Analysis(g)
	table, err := ll1.BuildTable(ga)
	if err != nil { ... }  // grammar is not LL(1)

Table construction fails with a *ConflictError as soon as a cell of the table
would receive two different productions. Productions are processed in order of
declaration, therefore the conflict reported is always the first one.

Finally parse some input:

	p := ll1.NewParser(table)
	result, err := p.Parse(scanner.Tokenize(scanner.Fields, "id + id"))

The result contains the verdict and a trace of all the steps the parser took.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package ll1

import "github.com/npillmayer/schuko/tracing"

// tracer traces with key 'parsetab.ll1'.
func tracer() tracing.Trace {
	return tracing.Select("parsetab.ll1")
}
