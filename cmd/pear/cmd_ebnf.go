package main

import (
	"fmt"
	"io"

	"github.com/dhamidi/pear/grammar"
	"github.com/spf13/cobra"
)

func newEbnfCmd() *cobra.Command {
	var start string

	check := &cobra.Command{
		Use:   "check <grammar>",
		Short: "Parse and verify an EBNF grammar file",
		Long: "Parse and verify an EBNF grammar file. With --start, every production\n" +
			"must be reachable from it; without, only undefined references are reported.",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return checkGrammar(cmd.OutOrStdout(), cmd.ErrOrStderr(), args[0], start)
		},
	}
	check.Flags().StringVar(&start, "start", "", "production every other production must be reachable from")

	ebnfCmd := &cobra.Command{
		Use:   "ebnf",
		Short: "EBNF grammar tools",
	}
	ebnfCmd.AddCommand(check)
	return ebnfCmd
}

// checkGrammar loads and verifies the grammar at path, listing problems on
// errw and a summary of its productions on w.
func checkGrammar(w, errw io.Writer, path, start string) error {
	g, err := grammar.Load(path)
	if err == nil {
		err = grammar.Verify(g, start)
	}
	if err != nil {
		printErrors(errw, err)
		return fmt.Errorf("invalid grammar %s", path)
	}

	lexical := 0
	for name := range g {
		if grammar.IsLexical(name) {
			lexical++
		}
	}
	fmt.Fprintf(w, "%s: %d productions (%d lexical)\n", path, len(g), lexical)
	return nil
}

func printErrors(w io.Writer, err error) {
	for _, e := range grammar.Errors(err) {
		fmt.Fprintln(w, e)
	}
}
