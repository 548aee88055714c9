package tokenizer

import (
	"fmt"
	"strings"

	sugar "github.com/sugarme/tokenizer"
	"github.com/sugarme/tokenizer/model/wordpiece"
	"github.com/sugarme/tokenizer/normalizer"
	"github.com/sugarme/tokenizer/pretokenizer"

	"github.com/guillaume-be/gotokenizers/internal/encode"
	"github.com/guillaume-be/gotokenizers/internal/vocab"
)

// bertAdapter segments text with a WordPiece subword model behind the BERT
// normalizer and pre-tokenizer. Special-token insertion stays with the
// generic assembler, so the wrapped tokenizer runs without a post-processor,
// truncation, or padding of its own.
type bertAdapter struct {
	wp       *sugar.Tokenizer
	vocab    *vocab.Vocabulary
	specials vocab.SpecialTokenMap
	layout   encode.Layout
}

func defaultBertSpecials() vocab.SpecialTokenMap {
	return vocab.SpecialTokenMap{
		Unknown:   "[UNK]",
		Padding:   "[PAD]",
		Separator: "[SEP]",
		Class:     "[CLS]",
		Mask:      "[MASK]",
	}
}

// NewBert builds a WordPiece tokenizer from a flat vocabulary file using the
// classic layout [CLS] A [SEP] for single sentences and
// [CLS] A [SEP] B [SEP] for pairs. The vocabulary must contain every BERT
// special token.
func NewBert(vocabPath string, opts Options) (*Tokenizer, error) {
	if vocabPath == "" {
		return nil, ErrEmptyPath
	}

	specials := defaultBertSpecials()
	if opts.SpecialTokens != "" {
		loaded, err := vocab.LoadSpecialTokenMap(opts.SpecialTokens)
		if err != nil {
			return nil, err
		}
		specials = loaded
	}
	if specials.Class == "" || specials.Separator == "" {
		return nil, fmt.Errorf("%w: the BERT layout needs class and separator tokens", ErrInvalidOptions)
	}

	v, err := vocab.FromFlatFile(vocabPath, specials.Unknown)
	if err != nil {
		return nil, err
	}
	if err := specials.RegisterOn(v); err != nil {
		return nil, fmt.Errorf("vocabulary %q: %w", vocabPath, err)
	}

	model, err := wordpiece.NewWordPieceFromFile(vocabPath, specials.Unknown)
	if err != nil {
		return nil, fmt.Errorf("load wordpiece model %q: %w", vocabPath, err)
	}

	wp := sugar.NewTokenizer(model)
	wp.WithNormalizer(normalizer.NewBertNormalizer(true, opts.Lowercase, true, opts.StripAccents))
	wp.WithPreTokenizer(pretokenizer.NewBertPreTokenizer())

	sep := v.ToID(specials.Separator)
	return New(&bertAdapter{
		wp:       wp,
		vocab:    v,
		specials: specials,
		layout: encode.Layout{
			Prefix: []int64{v.ToID(specials.Class)},
			AfterA: []int64{sep},
			AfterB: []int64{sep},
		},
	}, opts)
}

func (a *bertAdapter) Segment(input string) ([]int64, error) {
	if strings.TrimSpace(input) == "" {
		return []int64{}, nil
	}

	en, err := a.wp.Encode(sugar.NewSingleEncodeInput(sugar.NewInputSequence(input)), false)
	if err != nil {
		return nil, fmt.Errorf("wordpiece segmentation: %w", err)
	}

	raw := en.GetIds()
	ids := make([]int64, len(raw))
	for i, id := range raw {
		ids[i] = int64(id)
	}
	return ids, nil
}

func (a *bertAdapter) Vocab() *vocab.Vocabulary {
	return a.vocab
}

func (a *bertAdapter) Layout() encode.Layout {
	return a.layout
}

func (a *bertAdapter) Specials() vocab.SpecialTokenMap {
	return a.specials
}

// Join renders WordPiece output back to text by gluing continuation pieces
// onto their head word.
func (a *bertAdapter) Join(pieces []string) string {
	return strings.ReplaceAll(strings.Join(pieces, " "), " ##", "")
}
