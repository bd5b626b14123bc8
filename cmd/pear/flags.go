package main

import (
	"fmt"

	"github.com/dhamidi/pear/grammar"
	"github.com/spf13/cobra"
	"golang.org/x/exp/ebnf"
)

// grammarFlags are the flags shared by commands that match input against a
// grammar.
type grammarFlags struct {
	path      string
	start     string
	skipSpace bool
	cuts      []string
}

func (f *grammarFlags) register(cmd *cobra.Command, needStart bool) {
	cmd.Flags().StringVarP(&f.path, "grammar", "g", "", "EBNF grammar file")
	cmd.Flags().BoolVar(&f.skipSpace, "skip-space", false, "skip white space between the elements of non-terminal productions")
	cmd.MarkFlagRequired("grammar")
	if needStart {
		cmd.Flags().StringVarP(&f.start, "start", "s", "", "start production")
		cmd.Flags().StringSliceVar(&f.cuts, "cut", nil, "productions that commit after their first element matched")
		cmd.MarkFlagRequired("start")
	}
}

func (f *grammarFlags) options() []grammar.Option {
	var opts []grammar.Option
	if f.skipSpace {
		opts = append(opts, grammar.WithSkipSpace())
	}
	if len(f.cuts) > 0 {
		opts = append(opts, grammar.WithCut(f.cuts...))
	}
	return opts
}

// load reads and verifies the grammar.
func (f *grammarFlags) load() (ebnf.Grammar, error) {
	g, err := grammar.Load(f.path)
	if err != nil {
		return nil, err
	}
	if err := grammar.Verify(g, f.start); err != nil {
		return nil, fmt.Errorf("verify grammar: %w", err)
	}
	return g, nil
}
