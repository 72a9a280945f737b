package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/npillmayer/parsetab/grammar"
	"github.com/npillmayer/parsetab/scanner"
	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gologadapter"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "parsetab",
	Short: "Construct LL(1) and LR(1) parse tables and trace parser runs",
	Long: `parsetab reads a grammar description, computes FIRST and FOLLOW sets,
constructs LL(1) or canonical LR(1) parse tables and runs the corresponding
parser on an input string.`,
	SilenceErrors:     true,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

var rootFlags = struct {
	trace    *string
	tokenize *string
	quiet    *bool
	strict   *bool
}{}

// Trace keys of the parsetab packages.
var traceKeys = []string{
	"parsetab.cli", "parsetab.grammar", "parsetab.scanner", "parsetab.ll1", "parsetab.lr",
}

func init() {
	rootFlags.trace = rootCmd.PersistentFlags().StringP("trace", "t", "Error",
		"trace level [Debug|Info|Error]")
	rootFlags.tokenize = rootCmd.PersistentFlags().String("tokenize", "auto",
		"tokenizing of input [auto|fields|chars|go]")
	rootFlags.quiet = rootCmd.PersistentFlags().BoolP("quiet", "q", false,
		"print the verdict only")
	rootFlags.strict = rootCmd.PersistentFlags().Bool("strict", false,
		"reject grammars with unreachable or undefined non-terminals")
}

// Execute runs the command line interface.
func Execute() error {
	err := rootCmd.Execute()
	if err != nil {
		pterm.Error.Println(err.Error())
	}
	return err
}

func setup(cmd *cobra.Command, args []string) error {
	initDisplay()
	gtrace.SyntaxTracer = gologadapter.New()
	level := tracing.TraceLevelFromString(*rootFlags.trace)
	for _, key := range traceKeys {
		tracing.Select(key).SetTraceLevel(level)
	}
	if _, err := scanner.ParseMode(*rootFlags.tokenize); err != nil {
		return err
	}
	tracer().Infof("trace level is %s", *rootFlags.trace)
	return nil
}

// We use pterm for moderately fancy output.
func initDisplay() {
	pterm.Info.Prefix = pterm.Prefix{
		Text:  "  >>",
		Style: pterm.NewStyle(pterm.BgCyan, pterm.FgBlack),
	}
	pterm.Error.Prefix = pterm.Prefix{
		Text:  "  Error",
		Style: pterm.NewStyle(pterm.BgRed, pterm.FgBlack),
	}
}

// tokenizeMode returns the tokenizing mode selected by flag --tokenize.
func tokenizeMode() scanner.Mode {
	mode, err := scanner.ParseMode(*rootFlags.tokenize)
	if err != nil {
		tracer().Errorf("%v, using auto mode", err)
		return scanner.Auto
	}
	return mode
}

// loadGrammar reads a grammar file. An input given on the command line
// replaces the input line of the grammar file.
func loadGrammar(args []string) (*grammar.Grammar, string, error) {
	f, err := os.Open(args[0])
	if err != nil {
		return nil, "", fmt.Errorf("cannot open grammar file: %w", err)
	}
	defer f.Close()
	g, input, err := grammar.Load(filepath.Base(args[0]), f)
	if err != nil {
		return nil, "", &exitError{code: exitGrammar, err: err}
	}
	if err := grammar.Verify(g); err != nil {
		if *rootFlags.strict {
			return nil, "", &exitError{code: exitGrammar, err: err}
		}
		pterm.Warning.Println(err.Error())
	}
	if len(args) > 1 {
		input = args[1]
	}
	return g, input, nil
}
