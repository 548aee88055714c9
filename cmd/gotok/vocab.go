package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/guillaume-be/gotokenizers/internal/config"
	"github.com/guillaume-be/gotokenizers/internal/encode"
	"github.com/spf13/cobra"
)

func newVocabCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "vocab",
		Short: "Vocabulary inspection commands",
	}

	cmd.AddCommand(newVocabInfoCmd())
	return cmd
}

func newVocabInfoCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "info",
		Short: "Show vocabulary size, special tokens and layout",
		RunE: func(_ *cobra.Command, _ []string) error {
			cfg, err := requireConfig()
			if err != nil {
				return err
			}

			info, err := collectVocabInfo(cfg)
			if err != nil {
				return err
			}

			renderVocabInfo(os.Stdout, info)
			return nil
		},
	}

	return cmd
}

type vocabInfo struct {
	Family         string
	VocabPath      string
	Size           int
	Unknown        string
	UnknownID      int64
	Specials       []string
	ReservedSingle int
	ReservedPair   int
}

func collectVocabInfo(cfg config.Config) (vocabInfo, error) {
	family, err := config.NormalizeFamily(cfg.Tokenizer.Family)
	if err != nil {
		return vocabInfo{}, err
	}

	// Inspect the family's intrinsic shape: padding and special-token
	// suppression are per-run encode options, not vocabulary properties.
	probeCfg := cfg
	probeCfg.Encode.NoSpecialTokens = false
	probeCfg.Encode.PadToMaxLength = false

	tok, err := newTokenizerFromConfig(probeCfg)
	if err != nil {
		return vocabInfo{}, err
	}

	v := tok.Vocab()
	info := vocabInfo{
		Family:    family,
		VocabPath: cfg.Paths.VocabPath,
		Size:      v.Len(),
		Unknown:   v.UnknownToken(),
		UnknownID: v.UnknownID(),
		Specials:  v.Specials(),
	}

	single, err := tok.Encode("", 512, encode.LongestFirst, 0)
	if err != nil {
		return vocabInfo{}, fmt.Errorf("probe single layout: %w", err)
	}
	info.ReservedSingle = len(single.TokenIDs)

	pair, err := tok.EncodePair("", "", 512, encode.LongestFirst, 0)
	if err != nil {
		return vocabInfo{}, fmt.Errorf("probe pair layout: %w", err)
	}
	info.ReservedPair = len(pair.TokenIDs)

	return info, nil
}

func renderVocabInfo(w io.Writer, info vocabInfo) {
	fmt.Fprintf(w, "family:          %s\n", info.Family)
	fmt.Fprintf(w, "vocab:           %s\n", info.VocabPath)
	fmt.Fprintf(w, "size:            %d\n", info.Size)
	fmt.Fprintf(w, "unknown:         %s (id %d)\n", info.Unknown, info.UnknownID)
	fmt.Fprintf(w, "special tokens:  %s\n", strings.Join(info.Specials, " "))
	fmt.Fprintf(w, "reserved slots:  %d single, %d pair\n", info.ReservedSingle, info.ReservedPair)
}
