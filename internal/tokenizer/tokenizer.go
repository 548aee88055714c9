// Package tokenizer provides the encoding front end shared by every
// tokenizer family. A family contributes segmentation, a vocabulary, and a
// special-token layout through the Adapter interface; the generic Tokenizer
// built on top of it handles truncation, special-token assembly, padding,
// and order-preserving batch encoding.
package tokenizer

import (
	"errors"
	"fmt"

	"github.com/guillaume-be/gotokenizers/internal/encode"
	"github.com/guillaume-be/gotokenizers/internal/vocab"
)

// ErrEmptyPath is returned when a tokenizer is constructed with an empty
// vocabulary or model path.
var ErrEmptyPath = errors.New("tokenizer file path must not be empty")

// ErrInvalidOptions is returned when tokenizer options are inconsistent with
// the selected family.
var ErrInvalidOptions = errors.New("invalid tokenizer options")

// Adapter is the capability a tokenizer family plugs into the generic
// pipeline: segmenting raw text into vocabulary IDs, exposing the vocabulary
// and special tokens backing those IDs, describing where special tokens go,
// and joining decoded pieces back into text.
type Adapter interface {
	// Segment converts raw text into content token IDs, without special
	// tokens. Empty or whitespace-only text yields an empty, non-nil slice.
	Segment(text string) ([]int64, error)
	// Vocab returns the immutable vocabulary backing the IDs.
	Vocab() *vocab.Vocabulary
	// Layout describes the family's special-token positions.
	Layout() encode.Layout
	// Specials names the family's special tokens.
	Specials() vocab.SpecialTokenMap
	// Join renders decoded token pieces back into a plain string.
	Join(pieces []string) string
}

// Options configures a tokenizer instance. Options a family does not support
// are ignored rather than rejected, so one configuration can drive several
// families.
type Options struct {
	// Lowercase lowercases input text before segmentation.
	Lowercase bool
	// StripAccents removes combining accents before segmentation.
	StripAccents bool
	// AddPrefixSpace prepends a space to the input when it does not start
	// with one, for families whose segmentation is prefix-space sensitive.
	AddPrefixSpace bool
	// NoSpecialTokens disables special-token insertion: nothing is reserved
	// and the special-tokens mask is all zero.
	NoSpecialTokens bool
	// PadToMaxLength right-pads every encoding to the call's maximum length
	// and emits an attention mask. Requires a family with a padding token.
	PadToMaxLength bool
	// SpecialTokens optionally points at a special_tokens_map.json file
	// overriding the family's default special token strings.
	SpecialTokens string
	// Workers bounds the goroutine pool used by batch calls. Zero selects
	// one worker per CPU; one disables parallelism.
	Workers int
}

// Pair is a two-sentence input for the pair encoding calls.
type Pair struct {
	A string
	B string
}

// Tokenizer is the generic encoding pipeline over a family Adapter. All
// methods are safe for concurrent use; the adapter state is read-only after
// construction.
type Tokenizer struct {
	adapter Adapter
	opts    Options
	padID   int64
}

// New wraps a family adapter in the generic pipeline and validates the
// options against the family's capabilities.
func New(adapter Adapter, opts Options) (*Tokenizer, error) {
	if adapter == nil {
		return nil, fmt.Errorf("%w: nil adapter", ErrInvalidOptions)
	}

	t := &Tokenizer{adapter: adapter, opts: opts}
	if opts.PadToMaxLength {
		padding := adapter.Specials().Padding
		if padding == "" {
			return nil, fmt.Errorf("%w: padding requested but the family defines no padding token", ErrInvalidOptions)
		}
		t.padID = adapter.Vocab().ToID(padding)
	}
	return t, nil
}

// Vocab returns the tokenizer's vocabulary.
func (t *Tokenizer) Vocab() *vocab.Vocabulary {
	return t.adapter.Vocab()
}

// Encode encodes a single sentence.
func (t *Tokenizer) Encode(text string, maxLen int, strategy encode.Strategy, stride int) (encode.Encoding, error) {
	return t.encodeOne(text, "", false, maxLen, strategy, stride)
}

// EncodePair encodes a sentence pair with the family's pair layout.
func (t *Tokenizer) EncodePair(a, b string, maxLen int, strategy encode.Strategy, stride int) (encode.Encoding, error) {
	return t.encodeOne(a, b, true, maxLen, strategy, stride)
}

// EncodeList encodes a batch of sentences. Results preserve input order and
// are element-for-element identical to calling Encode sequentially, whatever
// the worker bound. Per-element failures are joined into the returned error,
// each wrapped with its input index; the remaining elements still encode.
func (t *Tokenizer) EncodeList(texts []string, maxLen int, strategy encode.Strategy, stride int) ([]encode.Encoding, error) {
	results := make([]encode.Encoding, len(texts))
	errs := make([]error, len(texts))

	encode.ForEach(len(texts), t.opts.Workers, func(i int) {
		enc, err := t.encodeOne(texts[i], "", false, maxLen, strategy, stride)
		if err != nil {
			errs[i] = fmt.Errorf("input %d: %w", i, err)
			return
		}
		results[i] = enc
	})

	return results, errors.Join(errs...)
}

// EncodePairList encodes a batch of sentence pairs with the same ordering and
// failure semantics as EncodeList.
func (t *Tokenizer) EncodePairList(pairs []Pair, maxLen int, strategy encode.Strategy, stride int) ([]encode.Encoding, error) {
	results := make([]encode.Encoding, len(pairs))
	errs := make([]error, len(pairs))

	encode.ForEach(len(pairs), t.opts.Workers, func(i int) {
		enc, err := t.encodeOne(pairs[i].A, pairs[i].B, true, maxLen, strategy, stride)
		if err != nil {
			errs[i] = fmt.Errorf("input %d: %w", i, err)
			return
		}
		results[i] = enc
	})

	return results, errors.Join(errs...)
}

// Tokenize segments text into token piece strings, without special tokens.
func (t *Tokenizer) Tokenize(text string) ([]string, error) {
	ids, err := t.adapter.Segment(text)
	if err != nil {
		return nil, fmt.Errorf("segment text: %w", err)
	}

	v := t.adapter.Vocab()
	pieces := make([]string, len(ids))
	for i, id := range ids {
		pieces[i] = v.ToToken(id)
	}
	return pieces, nil
}

// TokenizeList segments a batch of texts, preserving input order.
func (t *Tokenizer) TokenizeList(texts []string) ([][]string, error) {
	results := make([][]string, len(texts))
	errs := make([]error, len(texts))

	encode.ForEach(len(texts), t.opts.Workers, func(i int) {
		pieces, err := t.Tokenize(texts[i])
		if err != nil {
			errs[i] = fmt.Errorf("input %d: %w", i, err)
			return
		}
		results[i] = pieces
	})

	return results, errors.Join(errs...)
}

func (t *Tokenizer) encodeOne(textA, textB string, pair bool, maxLen int, strategy encode.Strategy, stride int) (encode.Encoding, error) {
	if maxLen < 1 {
		return encode.Encoding{}, fmt.Errorf("max length must be positive, got %d", maxLen)
	}
	if stride < 0 {
		return encode.Encoding{}, fmt.Errorf("stride must be non-negative, got %d", stride)
	}

	idsA, err := t.adapter.Segment(textA)
	if err != nil {
		return encode.Encoding{}, fmt.Errorf("segment first sequence: %w", err)
	}

	var idsB []int64
	if pair {
		idsB, err = t.adapter.Segment(textB)
		if err != nil {
			return encode.Encoding{}, fmt.Errorf("segment second sequence: %w", err)
		}
		if idsB == nil {
			idsB = []int64{}
		}
	}

	var layout encode.Layout
	if !t.opts.NoSpecialTokens {
		layout = t.adapter.Layout()
	}

	reserved := layout.Reserved(pair)
	if reserved > maxLen {
		return encode.Encoding{}, fmt.Errorf("%d special-token slots do not fit max length %d: %w",
			reserved, maxLen, encode.ErrSequenceTooLong)
	}

	total := len(idsA) + len(idsB)
	a, b, overflow, err := encode.Truncate(idsA, idsB, maxLen-reserved, strategy, stride)
	if err != nil {
		return encode.Encoding{}, err
	}

	enc := encode.Assemble(a, b, layout)
	enc.OverflowingTokens = overflow
	enc.NumTruncated = total - len(a) - len(b)

	if t.opts.PadToMaxLength {
		enc.PadTo(maxLen, t.padID)
	}
	return enc, nil
}
