package main

import (
	"github.com/dhamidi/pear/lsp"
	"github.com/spf13/cobra"
)

func newLSPCmd() *cobra.Command {
	var flags grammarFlags

	cmd := &cobra.Command{
		Use:   "lsp",
		Short: "Serve parse diagnostics for a grammar over the Language Server Protocol",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := flags.load()
			if err != nil {
				return err
			}
			server := lsp.NewServer(g, flags.start, version, lsp.WithMatcherOptions(flags.options()...))
			return server.RunStdio()
		},
	}

	flags.register(cmd, true)

	return cmd
}
