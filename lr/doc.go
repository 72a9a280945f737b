/*
Package lr implements the construction of canonical LR(1) parser tables.

Parser Construction

Using grammar analysis as input, a bottom-up parser can be constructed.
First the canonical collection of LR(1) item sets is built from the grammar.
Every item set is a state of the characteristic finite state machine (CFSM)
of the grammar. The CFSM is then transformed into an ACTION table and a
GOTO table.

    ga := grammar.Analysis(g)
    lrgen := lr.NewTableGenerator(ga)
    if err := lrgen.CreateTables(); err != nil {
        ...  // grammar is not LR(1)
    }

The ACTION table is a mapping (state, terminal) → shift/reduce/accept,
the GOTO table is a mapping (state, non-terminal) → state.

Conflicts

A grammar is LR(1) if no cell of the ACTION table receives more than one
action. CreateTables collects all conflicts and returns them as a *ConflictError.
Option LastWriteWins lets a later action silently replace an earlier one;
conflicts will still be recorded, but CreateTables will not fail.

States

The canonical collection is built breadth-first from state 0, the closure of
the item [S' → ·S, $]. For every state, transitions are computed for all
symbols following a dot, in order of symbol names. Target states are identified
by comparing item sets. Option HashStates accelerates this comparison by
pre-selecting candidates with a content hash; state numbering is not affected.

Sub-package clr contains a shift-reduce parser driven by the tables of this
package.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package lr

import "github.com/npillmayer/schuko/tracing"

// tracer traces with key 'parsetab.lr'.
func tracer() tracing.Trace {
	return tracing.Select("parsetab.lr")
}
