// Package encode implements the model-independent encoding pipeline: length
// truncation with overflow, special-token sequence assembly, padding, and the
// bounded parallel map used by batch encoding. Everything here operates on
// token IDs; producing IDs from text is the tokenizer adapter's job.
package encode

import (
	"errors"
	"fmt"
	"strings"
)

// Strategy selects how content tokens are removed when a sequence or sequence
// pair exceeds its length budget.
type Strategy string

const (
	// LongestFirst removes tokens one at a time from the end of whichever
	// sequence is currently longer, preferring the first sequence on ties.
	LongestFirst Strategy = "longest_first"
	// OnlyFirst removes tokens from the end of the first sequence only.
	OnlyFirst Strategy = "only_first"
	// OnlySecond removes tokens from the end of the second sequence only.
	OnlySecond Strategy = "only_second"
	// DoNotTruncate performs no removal and reports over-length input as an
	// error instead.
	DoNotTruncate Strategy = "do_not_truncate"
)

// ErrInvalidStrategy is returned when a truncation strategy name is not
// recognized.
var ErrInvalidStrategy = errors.New("invalid truncation strategy")

// ParseStrategy normalizes a raw strategy name. Hyphens are accepted in place
// of underscores and the empty string selects LongestFirst.
func ParseStrategy(raw string) (Strategy, error) {
	s := strings.ToLower(strings.TrimSpace(raw))
	s = strings.ReplaceAll(s, "-", "_")
	if s == "" {
		return LongestFirst, nil
	}
	switch Strategy(s) {
	case LongestFirst, OnlyFirst, OnlySecond, DoNotTruncate:
		return Strategy(s), nil
	default:
		return "", fmt.Errorf(
			"%w: %q (expected %s|%s|%s|%s)",
			ErrInvalidStrategy,
			raw,
			LongestFirst,
			OnlyFirst,
			OnlySecond,
			DoNotTruncate,
		)
	}
}
