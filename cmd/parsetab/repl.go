package main

import (
	"fmt"
	"strings"

	"github.com/chzyer/readline"
	"github.com/npillmayer/parsetab/grammar"
	"github.com/npillmayer/parsetab/ll1"
	"github.com/npillmayer/parsetab/lr"
	"github.com/npillmayer/parsetab/scanner"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "repl <grammar file>",
		Short: "Parse input lines interactively",
		Long: `repl constructs the parse tables for a grammar and parses every line
entered. Lines starting with ':' are commands:

    :ll1     switch to the predictive parser
    :lr1     switch to the shift-reduce parser (default)
    :trace   toggle display of parser traces
    :quit    leave the REPL`,
		Args: cobra.ExactArgs(1),
		RunE: runREPL,
	}
	rootCmd.AddCommand(cmd)
}

// Intp is our interpreter object.
type Intp struct {
	GA        *grammar.GrammarAnalysis
	ll1table  *ll1.Table
	lrgen     *lr.TableGenerator
	useLL1    bool
	showTrace bool
	mode      scanner.Mode
	repl      *readline.Instance
}

func runREPL(cmd *cobra.Command, args []string) error {
	g, _, err := loadGrammar(args)
	if err != nil {
		return err
	}
	intp, err := newIntp(grammar.Analysis(g), tokenizeMode(), lrOptions()...)
	if err != nil {
		return err
	}
	intp.repl, err = readline.New("parsetab> ")
	if err != nil {
		return err
	}
	defer intp.repl.Close()
	pterm.Info.Println("Welcome to parsetab") // colored welcome message
	tracer().Infof("Quit with <ctrl>D")       // inform user how to stop the CLI
	intp.REPL()
	return nil
}

// newIntp creates the parse tables for a grammar. A grammar needs to be
// either LL(1) or LR(1).
func newIntp(ga *grammar.GrammarAnalysis, mode scanner.Mode, opts ...lr.Option) (*Intp, error) {
	intp := &Intp{GA: ga, mode: mode, showTrace: true}
	var llerr error
	intp.ll1table, llerr = ll1.BuildTable(ga)
	if llerr != nil {
		pterm.Info.Println("grammar is not LL(1): " + llerr.Error())
	}
	lrgen, lrerr := lrTables(ga, opts...)
	if lrerr != nil {
		pterm.Info.Println(lrerr.Error())
	} else {
		intp.lrgen = lrgen
	}
	if intp.ll1table == nil && intp.lrgen == nil {
		return nil, &exitError{code: exitGrammar, err: fmt.Errorf("grammar is neither LL(1) nor LR(1)")}
	}
	intp.useLL1 = intp.lrgen == nil
	return intp, nil
}

// REPL starts interactive mode.
func (intp *Intp) REPL() {
	for {
		line, err := intp.repl.Readline()
		if err != nil { // io.EOF
			break
		}
		if line = strings.TrimSpace(line); line == "" {
			continue
		}
		if intp.Eval(line) {
			break
		}
	}
	println("Good bye!")
}

// Eval executes a command or parses a line of input. It returns true if the
// user requested to quit.
func (intp *Intp) Eval(line string) bool {
	switch line {
	case ":quit", ":q":
		return true
	case ":ll1":
		if intp.ll1table == nil {
			pterm.Error.Println("grammar is not LL(1)")
		} else {
			intp.useLL1 = true
		}
		return false
	case ":lr1":
		if intp.lrgen == nil {
			pterm.Error.Println("grammar is not LR(1)")
		} else {
			intp.useLL1 = false
		}
		return false
	case ":trace":
		intp.showTrace = !intp.showTrace
		return false
	}
	if strings.HasPrefix(line, ":") {
		pterm.Error.Println("unknown command " + line)
		return false
	}
	accepted, err := intp.Parse(line)
	verdict(accepted, err)
	if err != nil {
		pterm.Error.Println(err.Error())
	}
	return false
}

// Parse parses a line of input with the selected parser.
func (intp *Intp) Parse(line string) (bool, error) {
	if intp.useLL1 {
		result, err := ll1.NewParser(intp.ll1table).Parse(scanner.Tokenize(intp.mode, line))
		if intp.showTrace {
			render(ll1TraceData(result))
		}
		return result.Accepted, err
	}
	result, err := shiftReduceParse(intp.lrgen, line, intp.mode)
	if intp.showTrace {
		render(lrTraceData(result))
	}
	return result.Accepted, err
}
