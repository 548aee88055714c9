package tokenizer

import (
	"fmt"
	"strings"

	gosp "github.com/vikesh-raj/go-sentencepiece-encoder/sentencepiece"

	"github.com/guillaume-be/gotokenizers/internal/encode"
	"github.com/guillaume-be/gotokenizers/internal/vocab"
)

// marianAdapter segments text with a UNIGRAM SentencePiece model and maps
// the resulting surface pieces through the checkpoint's JSON vocabulary.
// Marian checkpoints ship the vocabulary separately from the .spm model and
// the two do not agree on IDs, so the piece text is the only reliable key.
type marianAdapter struct {
	proc        gosp.Sentencepiece
	vocab       *vocab.Vocabulary
	specials    vocab.SpecialTokenMap
	layout      encode.Layout
	prefixSpace bool
}

func defaultMarianSpecials() vocab.SpecialTokenMap {
	return vocab.SpecialTokenMap{
		Unknown: "<unk>",
		Padding: "<pad>",
		EOS:     "</s>",
	}
}

// NewMarian builds a SentencePiece tokenizer from a JSON vocabulary and a
// .spm model file. Marian sequences carry no prefix markers; the only
// special token is a closing </s>, shared by both halves of a pair.
func NewMarian(vocabPath, modelPath string, opts Options) (*Tokenizer, error) {
	if vocabPath == "" || modelPath == "" {
		return nil, ErrEmptyPath
	}

	specials := defaultMarianSpecials()
	if opts.SpecialTokens != "" {
		loaded, err := vocab.LoadSpecialTokenMap(opts.SpecialTokens)
		if err != nil {
			return nil, err
		}
		specials = loaded
	}
	if specials.EOS == "" {
		return nil, fmt.Errorf("%w: the Marian layout needs an end-of-sequence token", ErrInvalidOptions)
	}

	v, err := vocab.FromJSONFile(vocabPath, specials.Unknown)
	if err != nil {
		return nil, err
	}
	if err := specials.RegisterOn(v); err != nil {
		return nil, fmt.Errorf("vocabulary %q: %w", vocabPath, err)
	}

	proc, err := gosp.NewSentencepieceFromFile(modelPath, opts.Lowercase)
	if err != nil {
		return nil, fmt.Errorf("load sentencepiece model %q: %w", modelPath, err)
	}

	return New(&marianAdapter{
		proc:        proc,
		vocab:       v,
		specials:    specials,
		layout:      encode.Layout{Suffix: []int64{v.ToID(specials.EOS)}},
		prefixSpace: opts.AddPrefixSpace,
	}, opts)
}

func (a *marianAdapter) Segment(input string) ([]int64, error) {
	if strings.TrimSpace(input) == "" {
		return []int64{}, nil
	}

	text := input
	if a.prefixSpace && !strings.HasPrefix(text, " ") {
		text = " " + text
	}

	pieces := a.proc.Tokenize(text)
	ids := make([]int64, 0, len(pieces))
	for _, piece := range pieces {
		ids = append(ids, a.vocab.ToID(piece.Text))
	}
	return ids, nil
}

func (a *marianAdapter) Vocab() *vocab.Vocabulary {
	return a.vocab
}

func (a *marianAdapter) Layout() encode.Layout {
	return a.layout
}

func (a *marianAdapter) Specials() vocab.SpecialTokenMap {
	return a.specials
}

// Join concatenates SentencePiece surface pieces and turns the word-boundary
// marker back into spaces.
func (a *marianAdapter) Join(pieces []string) string {
	return strings.TrimSpace(strings.ReplaceAll(strings.Join(pieces, ""), "▁", " "))
}
