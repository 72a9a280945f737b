package main

import (
	"os"

	"github.com/npillmayer/parsetab/grammar"
	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "ebnf <grammar file>",
		Short: "Print a grammar in EBNF notation",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			g, _, err := loadGrammar(args)
			if err != nil {
				return err
			}
			grammar.WriteEBNF(os.Stdout, g)
			return nil
		},
	}
	rootCmd.AddCommand(cmd)
}
