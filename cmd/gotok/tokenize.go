package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

func newTokenizeCmd() *cobra.Command {
	var text string

	cmd := &cobra.Command{
		Use:   "tokenize",
		Short: "Segment text into token pieces without special tokens",
		RunE: func(_ *cobra.Command, _ []string) error {
			cfg, err := requireConfig()
			if err != nil {
				return err
			}

			inputText, err := readInputText(text, os.Stdin)
			if err != nil {
				return err
			}

			tok, err := newTokenizerFromConfig(cfg)
			if err != nil {
				return err
			}

			pieces, err := tok.Tokenize(inputText)
			if err != nil {
				return err
			}

			_, err = fmt.Fprintln(os.Stdout, strings.Join(pieces, " "))
			return err
		},
	}

	cmd.Flags().StringVar(&text, "text", "", "Text to tokenize (if empty, read from stdin)")

	return cmd
}
