package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/dhamidi/pear/grammar"
	"github.com/dhamidi/pear/input"
	"github.com/dhamidi/pear/parse"
	"github.com/spf13/cobra"
	"golang.org/x/exp/ebnf"
)

type checkOptions struct {
	grammarFlags
	format    string
	positions bool
	nfc       bool
	watch     bool
}

func newCheckCmd() *cobra.Command {
	var opts checkOptions

	cmd := &cobra.Command{
		Use:          "check <file>",
		Short:        "Parse a file with an EBNF grammar and print its syntax tree",
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.format != "tree" && opts.format != "json" {
				return fmt.Errorf("unknown format: %s", opts.format)
			}

			g, err := opts.load()
			if err != nil {
				printErrors(cmd.ErrOrStderr(), err)
				return fmt.Errorf("invalid grammar %s", opts.path)
			}

			if !opts.watch {
				return runCheck(cmd.OutOrStdout(), g, args[0], opts)
			}
			return watchFile(cmd.Context(), args[0], func() {
				if err := runCheck(cmd.OutOrStdout(), g, args[0], opts); err != nil {
					fmt.Fprintln(cmd.ErrOrStderr(), err)
				}
			})
		},
	}

	opts.register(cmd, true)
	cmd.Flags().StringVarP(&opts.format, "format", "f", "tree", "output format (tree, json)")
	cmd.Flags().BoolVar(&opts.positions, "positions", false, "include spans in tree output")
	cmd.Flags().BoolVar(&opts.nfc, "nfc", false, "normalize the input to NFC before parsing")
	cmd.Flags().BoolVarP(&opts.watch, "watch", "w", false, "parse again whenever the file changes")

	return cmd
}

func runCheck(w io.Writer, g ebnf.Grammar, filename string, opts checkOptions) error {
	data, err := os.ReadFile(filename)
	if err != nil {
		return fmt.Errorf("read input: %w", err)
	}

	var textOpts []input.TextOption
	if opts.nfc {
		textOpts = append(textOpts, input.WithNormalization())
	}
	text := input.NewText(string(data), textOpts...)

	node, err := grammar.NewMatcher(g, opts.options()...).Match(text, opts.start)
	if err != nil {
		var pe *parse.Error
		if errors.As(err, &pe) {
			return fmt.Errorf("%s:%s: %w", filename, text.Position(pe.Marker), err)
		}
		return fmt.Errorf("%s: %w", filename, err)
	}

	switch opts.format {
	case "json":
		if err := grammar.WriteJSON(w, node); err != nil {
			return fmt.Errorf("encode json: %w", err)
		}
	default:
		if opts.positions {
			fmt.Fprint(w, node.StringWithPositions())
		} else {
			fmt.Fprint(w, node.String())
		}
	}
	return nil
}
