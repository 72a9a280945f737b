/*
Package clr provides a canonical LR(1) parser. Clients have to use the tools
of package lr to prepare the necessary parse tables. The parser utilizes these
tables to create a right derivation for a given input, provided through a
tokenizer interface.

The main focus for this implementation is adaptability and on-the-fly usage.
Clients are able to construct the parse tables from a grammar and use the
parser directly, without a code-generation or compile step.

Usage

Clients construct a grammar, usually by using a grammar builder:

	b := grammar.NewGrammarBuilder("Signed Variables Grammar")
	b.LHS("Var").N("Sign").T("a").End()  // Var  --> Sign a
	b.LHS("Sign").T("+").End()           // Sign --> +
	b.LHS("Sign").T("-").End()           // Sign --> -
	b.LHS("Sign").Epsilon()              // Sign -->
	g, err := b.Grammar()

This grammar is subjected to grammar analysis and table generation.

	ga := grammar.Analysis(g)
	lrgen := lr.NewTableGenerator(ga)
	if err := lrgen.CreateTables(); err != nil { ... }  // not an LR(1) grammar

Finally parse some input:

	p := clr.NewParser(g, lrgen.GotoTable(), lrgen.ActionTable())
	result, err := p.Parse(scanner.Tokenize(scanner.Chars, "+a"))

The result holds the verdict and a trace of all the parser actions.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package clr

import "github.com/npillmayer/schuko/tracing"

// tracer traces with key 'parsetab.lr'.
func tracer() tracing.Trace {
	return tracing.Select("parsetab.lr")
}
