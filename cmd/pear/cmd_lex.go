package main

import (
	"fmt"
	"os"

	"github.com/dhamidi/pear/grammar"
	"github.com/spf13/cobra"
)

func newLexCmd() *cobra.Command {
	var flags grammarFlags

	cmd := &cobra.Command{
		Use:          "lex <file>",
		Short:        "Split a file into tokens using the lexical productions of a grammar",
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := flags.load()
			if err != nil {
				printErrors(cmd.ErrOrStderr(), err)
				return fmt.Errorf("invalid grammar %s", flags.path)
			}

			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("read input: %w", err)
			}

			tokens, err := grammar.NewLexer(g, string(data), flags.options()...).Tokenize()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			errorCount := 0
			for _, tok := range tokens {
				if tok.Kind == "ERROR" {
					errorCount++
				}
				fmt.Fprintln(out, tok)
			}
			if errorCount > 0 {
				return fmt.Errorf("%s: %d unrecognized characters", args[0], errorCount)
			}
			return nil
		},
	}

	flags.register(cmd, false)

	return cmd
}
