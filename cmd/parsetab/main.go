/*
Command parsetab reads a textual grammar description, constructs LL(1) or
canonical LR(1) parse tables for it and runs the corresponding parser on an
input string.

    parsetab ll1 grammar.txt                 // parse the input line of grammar.txt
    parsetab lr1 grammar.txt "id + id * id"  // parse an explicit input
    parsetab repl grammar.txt                // parse lines interactively

The output lists the productions, the FIRST and FOLLOW sets, the parse tables
and a trace of parser actions, ending with "Parsing accepted." or
"Parsing failed.".

Exit status is 1 for malformed grammars and table conflicts, and 2 if the input
has been rejected.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'parsetab.cli'.
func tracer() tracing.Trace {
	return tracing.Select("parsetab.cli")
}

func main() {
	err := Execute()
	if err != nil {
		var xerr *exitError
		if errors.As(err, &xerr) {
			os.Exit(xerr.code)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Exit status codes.
const (
	exitGrammar  = 1 // malformed grammar or table conflict
	exitRejected = 2 // input not accepted
)

// exitError carries an exit status to main.
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string {
	return e.err.Error()
}

func (e *exitError) Unwrap() error {
	return e.err
}
