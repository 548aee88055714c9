package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
)

func newDecodeCmd() *cobra.Command {
	var (
		ids          string
		keepSpecials bool
		noCleanUp    bool
	)

	cmd := &cobra.Command{
		Use:   "decode",
		Short: "Decode token IDs back into text",
		RunE: func(_ *cobra.Command, _ []string) error {
			cfg, err := requireConfig()
			if err != nil {
				return err
			}

			rawIDs, err := readInputText(ids, os.Stdin)
			if err != nil {
				return err
			}
			parsed, err := parseIDList(rawIDs)
			if err != nil {
				return err
			}

			tok, err := newTokenizerFromConfig(cfg)
			if err != nil {
				return err
			}

			decoded := tok.Decode(parsed, !keepSpecials, !noCleanUp)
			_, err = fmt.Fprintln(os.Stdout, decoded)
			return err
		},
	}

	cmd.Flags().StringVar(&ids, "ids", "", "Token IDs, comma or whitespace separated (if empty, read from stdin)")
	cmd.Flags().BoolVar(&keepSpecials, "keep-special-tokens", false, "Keep special tokens in the decoded text")
	cmd.Flags().BoolVar(&noCleanUp, "no-clean-up", false, "Disable tokenization-artifact cleanup")

	return cmd
}

// parseIDList parses token IDs from a string, accepting commas, spaces and
// newlines as separators.
func parseIDList(raw string) ([]int64, error) {
	fields := strings.FieldsFunc(raw, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t' || r == '\n' || r == '\r'
	})
	if len(fields) == 0 {
		return nil, fmt.Errorf("no token IDs given")
	}

	out := make([]int64, 0, len(fields))
	for _, f := range fields {
		id, err := strconv.ParseInt(f, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid token ID %q", f)
		}
		out = append(out, id)
	}
	return out, nil
}
