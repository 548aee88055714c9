package encode

// Encoding is the result of encoding one input (a sentence or a sentence
// pair): the assembled token IDs with aligned segment IDs and special-tokens
// mask, plus truncation accounting. Results are created once per input and
// never mutated afterwards; the int64 element type keeps every field directly
// convertible to dense numeric arrays for model feeding.
type Encoding struct {
	// TokenIDs is the final sequence including special tokens.
	TokenIDs []int64
	// SegmentIDs tags each position with the input segment (0 or 1) it
	// belongs to. Same length as TokenIDs.
	SegmentIDs []int64
	// SpecialTokensMask is 1 at inserted special-token positions and 0 at
	// content positions. Same length as TokenIDs.
	SpecialTokensMask []int64
	// OverflowingTokens holds content removed by truncation, most recently
	// removed first, capped at the configured stride.
	OverflowingTokens []int64
	// NumTruncated counts all content tokens removed by truncation,
	// independent of the stride cap on OverflowingTokens.
	NumTruncated int
	// AttentionMask is 1 at real positions and 0 at padding. It is populated
	// only when padding is enabled and is nil otherwise.
	AttentionMask []int64
}

// PadTo right-pads the encoding to maxLen positions using padID and fills in
// the attention mask. Padded positions carry segment 0 and count as special
// tokens. Encodings already at maxLen only gain the attention mask.
func (e *Encoding) PadTo(maxLen int, padID int64) {
	n := len(e.TokenIDs)
	if maxLen < n {
		maxLen = n
	}

	attention := make([]int64, maxLen)
	for i := 0; i < n; i++ {
		attention[i] = 1
	}
	e.AttentionMask = attention

	for i := n; i < maxLen; i++ {
		e.TokenIDs = append(e.TokenIDs, padID)
		e.SegmentIDs = append(e.SegmentIDs, 0)
		e.SpecialTokensMask = append(e.SpecialTokensMask, 1)
	}
}
