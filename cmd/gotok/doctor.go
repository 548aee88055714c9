package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/guillaume-be/gotokenizers/internal/config"
	"github.com/guillaume-be/gotokenizers/internal/doctor"
	"github.com/guillaume-be/gotokenizers/internal/encode"
)

func newDoctorCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "doctor",
		Short: "Check that the configured tokenizer is usable",
		Long: `Doctor verifies the active configuration end to end: the tokenizer
family and truncation strategy parse, the vocabulary and model files exist,
and the tokenizer can actually be constructed from them.`,
		RunE: func(_ *cobra.Command, _ []string) error {
			cfg, err := requireConfig()
			if err != nil {
				return err
			}

			dcfg := doctor.Config{
				Family: func() (string, error) {
					return config.NormalizeFamily(cfg.Tokenizer.Family)
				},
				Strategy: func() (string, error) {
					s, err := encode.ParseStrategy(cfg.Encode.Strategy)
					return string(s), err
				},
				Tokenizer: func() (string, error) {
					tok, err := newTokenizerFromConfig(cfg)
					if err != nil {
						return "", err
					}
					return fmt.Sprintf("%d entries", tok.Vocab().Len()), nil
				},
				VocabPath:     cfg.Paths.VocabPath,
				SpecialTokens: cfg.Paths.SpecialTokens,
				CacheDir:      cfg.Paths.CacheDir,
			}

			// Only SentencePiece-backed families carry a model file.
			if fam, err := config.NormalizeFamily(cfg.Tokenizer.Family); err == nil && fam == config.FamilyMarian {
				dcfg.ModelPath = cfg.Paths.ModelPath
			}

			result := doctor.Run(dcfg, os.Stdout)

			if result.Failed() {
				for _, f := range result.Failures() {
					fmt.Fprintf(os.Stderr, "FAIL: %s\n", f)
				}
				return errors.New("doctor checks failed")
			}

			fmt.Fprintln(os.Stdout, "doctor checks passed")
			return nil
		},
	}

	return cmd
}
