/*
Package grammar holds context-free grammars and their static analysis.

Building a Grammar

Grammars are specified using a grammar builder object. Clients add
rules, consisting of non-terminal symbols and terminals. Grammars may
contain epsilon-productions.

Example:

    b := grammar.NewGrammarBuilder("G")
    b.LHS("S").N("A").End()            // S  ->  A
    b.LHS("A").T("a").End()            // A  ->  a
    b.LHS("A").Epsilon()               // A  ->  ε
    g, err := b.Grammar()

Productions are numbered in the order they are declared, starting with 1.
Every grammar carries an additional production with id 0, the augmented
start production S' -> S, which is used by LR table construction:

   g.Dump(os.Stdout)

   0: S' -> S
   1: S -> A
   2: A -> a
   3: A -> ε

Grammars may also be loaded from a textual description, see Load.

Static Grammar Analysis

After the grammar is complete, it has to be analysed. For this end, the
grammar is subjected to an Analysis object, which computes FIRST and
FOLLOW sets for the grammar's symbols.

    ga := grammar.Analysis(g)
    for _, A := range g.NonTerminals() {
        fmt.Printf("FIRST(%s) = %v\n", A, ga.First(A))
    }

    // Output:
    FIRST(S) = { a ε }
    FIRST(A) = { a ε }

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package grammar

import "github.com/npillmayer/schuko/tracing"

// tracer traces with key 'parsetab.grammar'.
func tracer() tracing.Trace {
	return tracing.Select("parsetab.grammar")
}
