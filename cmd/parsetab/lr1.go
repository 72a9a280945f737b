package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/npillmayer/parsetab/grammar"
	"github.com/npillmayer/parsetab/lr"
	"github.com/npillmayer/parsetab/lr/clr"
	"github.com/npillmayer/parsetab/scanner"
	"github.com/npillmayer/schuko/gconf"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

var lr1Flags = struct {
	lastWriteWins *bool
	hashStates    *bool
	states        *bool
	export        *string
}{}

func init() {
	cmd := &cobra.Command{
		Use:     "lr1 <grammar file> [input]",
		Short:   "Construct canonical LR(1) tables and run the shift-reduce parser",
		Example: `  parsetab lr1 testdata/expr.txt "id + id * id"`,
		Args:    cobra.RangeArgs(1, 2),
		RunE:    runLR1,
	}
	lr1Flags.lastWriteWins = cmd.Flags().Bool("last-write-wins", false,
		"let conflicting actions overwrite table entries instead of failing")
	lr1Flags.hashStates = cmd.Flags().Bool("hash-states", false,
		"use content hashes to find existing states")
	lr1Flags.states = cmd.Flags().Bool("states", false, "list the canonical collection")
	lr1Flags.export = cmd.Flags().StringP("export", "x", "",
		"directory to export the CFSM (Graphviz) and the tables (HTML) to")
	rootCmd.AddCommand(cmd)
}

// lrOptions collects table generator options from flags. Configuration keys
// "last-write-wins" and "hash-states" switch on the corresponding options as well.
func lrOptions() []lr.Option {
	return []lr.Option{
		lr.LastWriteWins(*lr1Flags.lastWriteWins || gconf.GetBool("last-write-wins")),
		lr.HashStates(*lr1Flags.hashStates || gconf.GetBool("hash-states")),
	}
}

func runLR1(cmd *cobra.Command, args []string) error {
	g, input, err := loadGrammar(args)
	if err != nil {
		return err
	}
	ga := grammar.Analysis(g)
	if !*rootFlags.quiet {
		showGrammar(ga)
	}
	lrgen, err := lrTables(ga, lrOptions()...)
	if len(lrgen.Conflicts()) > 0 {
		render(conflictData(lrgen.Conflicts()))
	}
	if err != nil {
		return err
	}
	if !*rootFlags.quiet {
		if *lr1Flags.states {
			pterm.DefaultSection.Println("Canonical LR(1) collection")
			lrgen.CFSM().Dump(os.Stdout)
		}
		pterm.DefaultSection.Println("ACTION table")
		render(actionTableData(lrgen))
		pterm.DefaultSection.Println("GOTO table")
		render(gotoTableData(lrgen))
	}
	if *lr1Flags.export != "" {
		if err := export(lrgen, *lr1Flags.export); err != nil {
			return err
		}
	}
	result, err := shiftReduceParse(lrgen, input, tokenizeMode())
	if !*rootFlags.quiet {
		pterm.DefaultSection.Println("Trace")
		render(lrTraceData(result))
	}
	return verdict(result.Accepted, err)
}

// lrTables creates the LR(1) tables for a grammar. Conflicts are reported as *exitError.
func lrTables(ga *grammar.GrammarAnalysis, opts ...lr.Option) (*lr.TableGenerator, error) {
	lrgen := lr.NewTableGenerator(ga, opts...)
	if err := lrgen.CreateTables(); err != nil {
		return lrgen, &exitError{code: exitGrammar, err: err}
	}
	return lrgen, nil
}

func shiftReduceParse(lrgen *lr.TableGenerator, input string, mode scanner.Mode) (*clr.Result, error) {
	p := clr.NewParser(lrgen.Grammar(), lrgen.GotoTable(), lrgen.ActionTable())
	return p.Parse(scanner.Tokenize(mode, input))
}

// export writes <grammar>_cfsm.dot, <grammar>_action.html and <grammar>_goto.html to dir.
func export(lrgen *lr.TableGenerator, dir string) error {
	base := filepath.Join(dir, lrgen.Grammar().Name)
	files := []struct {
		suffix string
		write  func(f *os.File)
	}{
		{"_cfsm.dot", func(f *os.File) { lrgen.CFSM().CFSM2GraphViz(f) }},
		{"_action.html", func(f *os.File) { lr.ActionTableAsHTML(lrgen, f) }},
		{"_goto.html", func(f *os.File) { lr.GotoTableAsHTML(lrgen, f) }},
	}
	for _, x := range files {
		f, err := os.Create(base + x.suffix)
		if err != nil {
			return fmt.Errorf("cannot export tables: %w", err)
		}
		x.write(f)
		if err := f.Close(); err != nil {
			return err
		}
		pterm.Info.Println("wrote " + base + x.suffix)
	}
	return nil
}
