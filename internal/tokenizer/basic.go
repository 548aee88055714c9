package tokenizer

import (
	"fmt"
	"strings"

	"github.com/guillaume-be/gotokenizers/internal/encode"
	"github.com/guillaume-be/gotokenizers/internal/text"
	"github.com/guillaume-be/gotokenizers/internal/vocab"
)

// basicAdapter segments on whitespace and punctuation boundaries with no
// subword model. It is the baseline family: a flat vocabulary, the bare
// layout, and deterministic rune-level splitting.
type basicAdapter struct {
	vocab        *vocab.Vocabulary
	specials     vocab.SpecialTokenMap
	specialList  []string
	lowercase    bool
	stripAccents bool
}

// NewBasic builds a whitespace/punctuation tokenizer from a flat vocabulary
// file. Special tokens written verbatim in the input (for example "[MASK]")
// are kept whole. The family inserts no special tokens of its own, so its
// layout is bare.
func NewBasic(vocabPath string, opts Options) (*Tokenizer, error) {
	if vocabPath == "" {
		return nil, ErrEmptyPath
	}

	specials := vocab.SpecialTokenMap{Unknown: "[UNK]"}
	if opts.SpecialTokens != "" {
		loaded, err := vocab.LoadSpecialTokenMap(opts.SpecialTokens)
		if err != nil {
			return nil, err
		}
		specials = loaded
	}

	v, err := vocab.FromFlatFile(vocabPath, specials.Unknown)
	if err != nil {
		return nil, err
	}
	if err := specials.RegisterOn(v); err != nil {
		return nil, fmt.Errorf("vocabulary %q: %w", vocabPath, err)
	}

	return New(&basicAdapter{
		vocab:        v,
		specials:     specials,
		specialList:  specials.Tokens(),
		lowercase:    opts.Lowercase,
		stripAccents: opts.StripAccents,
	}, opts)
}

func (a *basicAdapter) Segment(input string) ([]int64, error) {
	out := make([]int64, 0, len(input)/4)
	for _, span := range text.SplitSpecials(input, a.specialList) {
		if span.Special {
			out = append(out, a.vocab.ToID(span.Text))
			continue
		}

		chunk := text.PadCJK(text.Clean(span.Text))
		if a.lowercase {
			chunk = strings.ToLower(chunk)
		}
		if a.stripAccents {
			chunk = text.StripAccents(chunk)
		}

		for _, word := range strings.Fields(chunk) {
			for _, piece := range text.SplitPunctuation(word) {
				out = append(out, a.vocab.ToID(piece))
			}
		}
	}
	return out, nil
}

func (a *basicAdapter) Vocab() *vocab.Vocabulary {
	return a.vocab
}

func (a *basicAdapter) Layout() encode.Layout {
	return encode.Layout{}
}

func (a *basicAdapter) Specials() vocab.SpecialTokenMap {
	return a.specials
}

func (a *basicAdapter) Join(pieces []string) string {
	return strings.Join(pieces, " ")
}
