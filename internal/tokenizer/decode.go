package tokenizer

import (
	"strings"

	"github.com/guillaume-be/gotokenizers/internal/encode"
)

// Decode maps token IDs back to text. Registered special tokens are dropped
// when skipSpecialTokens is set; cleanUp removes the whitespace artifacts
// segmentation introduces around punctuation and English contractions.
func (t *Tokenizer) Decode(ids []int64, skipSpecialTokens, cleanUp bool) string {
	v := t.adapter.Vocab()

	pieces := make([]string, 0, len(ids))
	for _, id := range ids {
		if skipSpecialTokens && v.IsSpecialID(id) {
			continue
		}
		pieces = append(pieces, v.ToToken(id))
	}

	out := t.adapter.Join(pieces)
	if cleanUp {
		out = cleanUpTokenization(out)
	}
	return out
}

// DecodeList decodes a batch of ID sequences, preserving input order.
func (t *Tokenizer) DecodeList(batches [][]int64, skipSpecialTokens, cleanUp bool) []string {
	results := make([]string, len(batches))
	encode.ForEach(len(batches), t.opts.Workers, func(i int) {
		results[i] = t.Decode(batches[i], skipSpecialTokens, cleanUp)
	})
	return results
}

// cleanUpTokenization reverses the spacing that piece-wise joining puts
// around punctuation and contractions.
func cleanUpTokenization(s string) string {
	s = strings.ReplaceAll(s, " .", ".")
	s = strings.ReplaceAll(s, " !", "!")
	s = strings.ReplaceAll(s, " ?", "?")
	s = strings.ReplaceAll(s, " ,", ",")
	s = strings.ReplaceAll(s, " ' ", "'")
	s = strings.ReplaceAll(s, " n't", "n't")
	s = strings.ReplaceAll(s, " 'm", "'m")
	s = strings.ReplaceAll(s, " 's", "'s")
	s = strings.ReplaceAll(s, " 've", "'ve")
	s = strings.ReplaceAll(s, " 're", "'re")
	return s
}
