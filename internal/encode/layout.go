package encode

// Layout describes where a tokenizer family inserts special tokens around one
// or two content sequences. Rendering order is
//
//	Prefix A AfterA Suffix                        (single sequence)
//	Prefix A AfterA BeforeB B AfterB Suffix       (sequence pair)
//
// BeforeB and AfterB only appear for pairs. The zero Layout is the bare
// layout: no special tokens at all.
//
// Known families expressed in this form:
//
//	BERT     Prefix=[CLS] AfterA=[SEP] AfterB=[SEP]
//	RoBERTa  Prefix=<s> AfterA=</s> BeforeB=</s> AfterB=</s>
//	Marian   Suffix=</s>
type Layout struct {
	Prefix  []int64
	AfterA  []int64
	BeforeB []int64
	AfterB  []int64
	Suffix  []int64
}

// Reserved returns the number of special-token slots the layout inserts for a
// single sequence or a pair. Callers subtract this from the caller-facing
// maximum length to obtain the content budget before truncating.
func (l Layout) Reserved(pair bool) int {
	n := len(l.Prefix) + len(l.AfterA) + len(l.Suffix)
	if pair {
		n += len(l.BeforeB) + len(l.AfterB)
	}
	return n
}

// Assemble inserts the layout's special tokens around the content sequences
// and derives the aligned segment IDs and special-tokens mask. Segment 0
// covers the first sequence and its surrounding specials, segment 1 the
// second sequence and its closing specials; the suffix belongs to the last
// segment present. Pass a nil b for single-sequence input; an empty non-nil b
// renders the pair layout around zero second-segment content.
func Assemble(a, b []int64, l Layout) Encoding {
	pair := b != nil

	size := len(a) + len(b) + l.Reserved(pair)
	ids := make([]int64, 0, size)
	segments := make([]int64, 0, size)
	mask := make([]int64, 0, size)

	emit := func(tokens []int64, segment int64, special int64) {
		for _, id := range tokens {
			ids = append(ids, id)
			segments = append(segments, segment)
			mask = append(mask, special)
		}
	}

	emit(l.Prefix, 0, 1)
	emit(a, 0, 0)
	emit(l.AfterA, 0, 1)

	suffixSegment := int64(0)
	if pair {
		emit(l.BeforeB, 0, 1)
		emit(b, 1, 0)
		emit(l.AfterB, 1, 1)
		suffixSegment = 1
	}
	emit(l.Suffix, suffixSegment, 1)

	return Encoding{
		TokenIDs:          ids,
		SegmentIDs:        segments,
		SpecialTokensMask: mask,
	}
}
