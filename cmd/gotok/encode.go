package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/guillaume-be/gotokenizers/internal/config"
	"github.com/guillaume-be/gotokenizers/internal/dataset"
	"github.com/guillaume-be/gotokenizers/internal/encode"
	textpkg "github.com/guillaume-be/gotokenizers/internal/text"
	"github.com/guillaume-be/gotokenizers/internal/tokenizer"
	"github.com/spf13/cobra"
)

func newEncodeCmd() *cobra.Command {
	var (
		text     string
		textPair string
		input    string
		format   string
		out      string
	)

	cmd := &cobra.Command{
		Use:   "encode",
		Short: "Encode text into token IDs",
		RunE: func(_ *cobra.Command, _ []string) error {
			cfg, err := requireConfig()
			if err != nil {
				return err
			}
			if format != "json" && format != "ids" {
				return fmt.Errorf("--format must be 'json' or 'ids'")
			}

			strategy, err := encode.ParseStrategy(cfg.Encode.Strategy)
			if err != nil {
				return err
			}

			tok, err := newTokenizerFromConfig(cfg)
			if err != nil {
				return err
			}

			var encs []encode.Encoding
			switch {
			case input != "":
				examples, err := dataset.ReadSST2(input, '\t')
				if err != nil {
					return err
				}
				encs, err = encodeExamples(tok, examples, cfg.Encode.MaxLength, strategy, cfg.Encode.Stride)
				if err != nil {
					return err
				}
			case textPair != "":
				inputText, err := readInputText(text, os.Stdin)
				if err != nil {
					return err
				}
				enc, err := tok.EncodePair(inputText, textPair, cfg.Encode.MaxLength, strategy, cfg.Encode.Stride)
				if err != nil {
					return err
				}
				encs = []encode.Encoding{enc}
			default:
				inputText, err := readInputText(text, os.Stdin)
				if err != nil {
					return err
				}
				enc, err := tok.Encode(inputText, cfg.Encode.MaxLength, strategy, cfg.Encode.Stride)
				if err != nil {
					return err
				}
				encs = []encode.Encoding{enc}
			}

			return writeEncodings(out, encs, format, os.Stdout)
		},
	}

	cmd.Flags().StringVar(&text, "text", "", "Text to encode (if empty, read from stdin)")
	cmd.Flags().StringVar(&textPair, "text-pair", "", "Second sentence for pair encoding")
	cmd.Flags().StringVar(&input, "input", "", "TSV dataset to batch-encode (sentence<TAB>label with header row)")
	cmd.Flags().StringVar(&format, "format", "json", "Output format: json|ids")
	cmd.Flags().StringVar(&out, "out", "-", "Output path ('-' for stdout)")

	return cmd
}

// newTokenizerFromConfig constructs the configured tokenizer family from the
// loaded configuration.
func newTokenizerFromConfig(cfg config.Config) (*tokenizer.Tokenizer, error) {
	family, err := config.NormalizeFamily(cfg.Tokenizer.Family)
	if err != nil {
		return nil, err
	}

	opts := tokenizer.Options{
		Lowercase:       cfg.Tokenizer.Lowercase,
		StripAccents:    cfg.Tokenizer.StripAccents,
		AddPrefixSpace:  cfg.Tokenizer.AddPrefixSpace,
		NoSpecialTokens: cfg.Encode.NoSpecialTokens,
		PadToMaxLength:  cfg.Encode.PadToMaxLength,
		SpecialTokens:   cfg.Paths.SpecialTokens,
		Workers:         cfg.Runtime.Workers,
	}

	switch family {
	case config.FamilyBasic:
		return tokenizer.NewBasic(cfg.Paths.VocabPath, opts)
	case config.FamilyBert:
		return tokenizer.NewBert(cfg.Paths.VocabPath, opts)
	case config.FamilyMarian:
		return tokenizer.NewMarian(cfg.Paths.VocabPath, cfg.Paths.ModelPath, opts)
	default:
		return nil, fmt.Errorf("unsupported tokenizer family %q", family)
	}
}

func readInputText(text string, stdin io.Reader) (string, error) {
	if strings.TrimSpace(text) != "" {
		return text, nil
	}

	b, err := io.ReadAll(stdin)
	if err != nil {
		return "", fmt.Errorf("read stdin: %w", err)
	}
	input, err := textpkg.Normalize(string(b))
	if err != nil {
		return "", fmt.Errorf("either provide --text or pipe text on stdin")
	}
	return input, nil
}

// encodeExamples batch-encodes a dataset, as pairs when the examples carry a
// second sentence.
func encodeExamples(tok *tokenizer.Tokenizer, examples []dataset.Example, maxLen int, strategy encode.Strategy, stride int) ([]encode.Encoding, error) {
	texts, pairs, paired := examplesToInputs(examples)
	if paired {
		return tok.EncodePairList(pairs, maxLen, strategy, stride)
	}
	return tok.EncodeList(texts, maxLen, strategy, stride)
}

// examplesToInputs splits dataset examples into batch inputs. The dataset is
// treated as paired when its first example has a second sentence.
func examplesToInputs(examples []dataset.Example) ([]string, []tokenizer.Pair, bool) {
	if len(examples) > 0 && examples[0].SentenceB != "" {
		pairs := make([]tokenizer.Pair, len(examples))
		for i, ex := range examples {
			pairs[i] = tokenizer.Pair{A: ex.SentenceA, B: ex.SentenceB}
		}
		return nil, pairs, true
	}

	texts := make([]string, len(examples))
	for i, ex := range examples {
		texts[i] = ex.SentenceA
	}
	return texts, nil, false
}

// encodingJSON mirrors encode.Encoding with wire-friendly field names.
type encodingJSON struct {
	TokenIDs          []int64 `json:"token_ids"`
	SegmentIDs        []int64 `json:"segment_ids"`
	SpecialTokensMask []int64 `json:"special_tokens_mask"`
	OverflowingTokens []int64 `json:"overflowing_tokens,omitempty"`
	NumTruncated      int     `json:"num_truncated,omitempty"`
	AttentionMask     []int64 `json:"attention_mask,omitempty"`
}

func writeEncodings(outPath string, encs []encode.Encoding, format string, stdout io.Writer) error {
	var w io.Writer = stdout
	if outPath != "" && outPath != "-" {
		f, err := os.Create(outPath)
		if err != nil {
			return fmt.Errorf("create output file: %w", err)
		}
		defer f.Close()
		w = f
	}
	return renderEncodings(w, encs, format)
}

func renderEncodings(w io.Writer, encs []encode.Encoding, format string) error {
	if format == "ids" {
		for _, enc := range encs {
			parts := make([]string, len(enc.TokenIDs))
			for i, id := range enc.TokenIDs {
				parts[i] = fmt.Sprintf("%d", id)
			}
			if _, err := fmt.Fprintln(w, strings.Join(parts, " ")); err != nil {
				return err
			}
		}
		return nil
	}

	out := make([]encodingJSON, len(encs))
	for i, enc := range encs {
		out[i] = encodingJSON{
			TokenIDs:          enc.TokenIDs,
			SegmentIDs:        enc.SegmentIDs,
			SpecialTokensMask: enc.SpecialTokensMask,
			OverflowingTokens: enc.OverflowingTokens,
			NumTruncated:      enc.NumTruncated,
			AttentionMask:     enc.AttentionMask,
		}
	}

	jenc := json.NewEncoder(w)
	jenc.SetIndent("", "  ")
	return jenc.Encode(out)
}
