package grammar

import (
	"fmt"
	"io"
	"strings"

	"golang.org/x/exp/ebnf"
)

// Non-terminal names are prefixed to keep them non-lexical in EBNF terms,
// regardless of capitalization.
const ebnfPrefix = "N_"

func ebnfName(A *Symbol) string {
	return ebnfPrefix + A.Name
}

// EBNF converts g into an EBNF grammar. Terminals become tokens, every
// non-terminal becomes a production with its alternatives. The augmented
// start production is not included.
func (g *Grammar) EBNF() ebnf.Grammar {
	eg := make(ebnf.Grammar, len(g.nonterminals))
	for _, A := range g.nonterminals {
		prods := g.ProductionsFor(A)
		if len(prods) == 0 {
			continue
		}
		alt := make(ebnf.Alternative, 0, len(prods))
		for _, p := range prods {
			seq := make(ebnf.Sequence, 0, p.Len())
			for _, X := range p.rhs {
				if X.IsTerminal() {
					seq = append(seq, &ebnf.Token{String: X.Name})
				} else {
					seq = append(seq, &ebnf.Name{String: ebnfName(X)})
				}
			}
			alt = append(alt, seq)
		}
		name := ebnfName(A)
		var expr ebnf.Expression = alt
		if len(alt) == 1 {
			expr = alt[0]
		}
		eg[name] = &ebnf.Production{Name: &ebnf.Name{String: name}, Expr: expr}
	}
	return eg
}

// Verify checks that every non-terminal has at least one production and is
// reachable from the start symbol.
func Verify(g *Grammar) error {
	for _, A := range g.nonterminals {
		if len(g.ProductionsFor(A)) == 0 {
			return fmt.Errorf("grammar %q does not verify: no productions for %s", g.Name, A)
		}
	}
	if err := ebnf.Verify(g.EBNF(), ebnfName(g.start)); err != nil {
		return fmt.Errorf("grammar %q does not verify: %w", g.Name, err)
	}
	return nil
}

// WriteEBNF writes g in EBNF notation to w, non-terminals in order of declaration.
func WriteEBNF(w io.Writer, g *Grammar) {
	eg := g.EBNF()
	for _, A := range g.nonterminals {
		p, ok := eg[ebnfName(A)]
		if !ok {
			continue
		}
		fmt.Fprintf(w, "%s = ", A.Name)
		writeEBNFExpression(w, p.Expr)
		fmt.Fprintf(w, " .\n")
	}
}

func writeEBNFExpression(w io.Writer, e ebnf.Expression) {
	switch x := e.(type) {
	case ebnf.Sequence:
		if len(x) == 0 {
			fmt.Fprintf(w, "%q", "")
		}
		for i, v := range x {
			if i != 0 {
				fmt.Fprintf(w, " ")
			}
			writeEBNFExpression(w, v)
		}
	case ebnf.Alternative:
		for i, v := range x {
			if i != 0 {
				fmt.Fprintf(w, " | ")
			}
			writeEBNFExpression(w, v)
		}
	case *ebnf.Name:
		fmt.Fprintf(w, "%s", strings.TrimPrefix(x.String, ebnfPrefix))
	case *ebnf.Token:
		fmt.Fprintf(w, "%q", x.String)
	case nil:
		// ok
	}
}
