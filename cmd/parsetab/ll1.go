package main

import (
	"errors"

	"github.com/npillmayer/parsetab/grammar"
	"github.com/npillmayer/parsetab/ll1"
	"github.com/npillmayer/parsetab/scanner"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:     "ll1 <grammar file> [input]",
		Short:   "Construct an LL(1) table and run the predictive parser",
		Example: `  parsetab ll1 testdata/optional.txt "a"`,
		Args:    cobra.RangeArgs(1, 2),
		RunE:    runLL1,
	}
	rootCmd.AddCommand(cmd)
}

func runLL1(cmd *cobra.Command, args []string) error {
	g, input, err := loadGrammar(args)
	if err != nil {
		return err
	}
	ga := grammar.Analysis(g)
	if !*rootFlags.quiet {
		showGrammar(ga)
	}
	table, result, err := predictiveParse(ga, input, tokenizeMode())
	if table == nil {
		return err
	}
	if !*rootFlags.quiet {
		pterm.DefaultSection.Println("LL(1) table")
		render(ll1TableData(table))
		pterm.DefaultSection.Println("Trace")
		render(ll1TraceData(result))
	}
	return verdict(result.Accepted, err)
}

// predictiveParse builds the LL(1) table for a grammar and parses an input.
// If table construction fails, the table is nil and the error is an *exitError.
func predictiveParse(ga *grammar.GrammarAnalysis, input string, mode scanner.Mode) (*ll1.Table, *ll1.Result, error) {
	table, err := ll1.BuildTable(ga)
	if err != nil {
		return nil, nil, &exitError{code: exitGrammar, err: err}
	}
	p := ll1.NewParser(table)
	result, err := p.Parse(scanner.Tokenize(mode, input))
	return table, result, err
}

// verdict prints the outcome of a parse and maps rejected input to exit status 2.
func verdict(accepted bool, err error) error {
	if accepted {
		pterm.Success.Println("Parsing accepted.")
		return nil
	}
	pterm.Error.Println("Parsing failed.")
	if err == nil {
		err = errors.New("input rejected")
	}
	return &exitError{code: exitRejected, err: err}
}
