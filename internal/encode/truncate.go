package encode

import (
	"errors"
	"fmt"
)

// ErrSequenceTooLong is returned when content exceeds the length budget and
// the strategy forbids removing the excess.
var ErrSequenceTooLong = errors.New("sequence too long")

// ErrFirstTooShort is returned by OnlyFirst truncation when the first
// sequence alone cannot absorb the required removal.
var ErrFirstTooShort = errors.New("first sequence too short for only_first truncation")

// ErrSecondTooShort is returned by OnlySecond truncation when there is no
// second sequence or it cannot absorb the required removal.
var ErrSecondTooShort = errors.New("second sequence too short for only_second truncation")

// Truncate trims a and the optional second sequence b (nil for single-input
// calls) until their combined length fits maxLen, which budgets content
// tokens only; special-token slots are reserved by the caller beforehand.
//
// The returned overflow holds the removed tokens ordered most recently
// removed first and is capped at stride entries, with the oldest excess
// discarded. A maxLen of zero or less empties the content entirely. When
// nothing needs removing the inputs are returned unchanged with a nil
// overflow, whatever the strategy.
func Truncate(a, b []int64, maxLen int, strategy Strategy, stride int) ([]int64, []int64, []int64, error) {
	if maxLen < 0 {
		maxLen = 0
	}
	if stride < 0 {
		stride = 0
	}

	excess := len(a) + len(b) - maxLen
	if excess <= 0 {
		return a, b, nil, nil
	}

	switch strategy {
	case LongestFirst:
		if b == nil {
			return truncateTail(a, excess, stride)
		}
		return truncatePair(a, b, excess, stride)

	case OnlyFirst:
		if len(a) < excess {
			return nil, nil, nil, fmt.Errorf("%w: %d tokens, %d to remove", ErrFirstTooShort, len(a), excess)
		}
		ta, _, overflow, err := truncateTail(a, excess, stride)
		return ta, b, overflow, err

	case OnlySecond:
		if len(b) < excess {
			return nil, nil, nil, fmt.Errorf("%w: %d tokens, %d to remove", ErrSecondTooShort, len(b), excess)
		}
		tb, _, overflow, err := truncateTail(b, excess, stride)
		return a, tb, overflow, err

	case DoNotTruncate:
		return nil, nil, nil, fmt.Errorf("%w: %d content tokens exceed budget %d and truncation is disabled",
			ErrSequenceTooLong, len(a)+len(b), maxLen)

	default:
		return nil, nil, nil, fmt.Errorf("%w: %q", ErrInvalidStrategy, strategy)
	}
}

// truncateTail removes n tokens from the end of seq. Removal walks backwards
// one token at a time, so the overflow in most-recent-first order is simply
// the cut tail in its original order.
func truncateTail(seq []int64, n, stride int) ([]int64, []int64, []int64, error) {
	cut := len(seq) - n
	keep := n
	if stride < keep {
		keep = stride
	}

	var overflow []int64
	if keep > 0 {
		overflow = make([]int64, keep)
		copy(overflow, seq[cut:cut+keep])
	}
	return seq[:cut], nil, overflow, nil
}

// truncatePair removes n tokens alternating between the tails of a and b,
// always shrinking the currently longer sequence and preferring a on ties.
func truncatePair(a, b []int64, n, stride int) ([]int64, []int64, []int64, error) {
	removed := make([]int64, 0, n)
	for i := 0; i < n; i++ {
		if len(a) >= len(b) {
			removed = append(removed, a[len(a)-1])
			a = a[:len(a)-1]
		} else {
			removed = append(removed, b[len(b)-1])
			b = b[:len(b)-1]
		}
	}

	// Most recently removed first.
	for i, j := 0, len(removed)-1; i < j; i, j = i+1, j-1 {
		removed[i], removed[j] = removed[j], removed[i]
	}
	if stride < len(removed) {
		removed = removed[:stride]
	}
	if len(removed) == 0 {
		removed = nil
	}
	return a, b, removed, nil
}
