package text

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Clean maps every whitespace rune to a plain space and drops control
// characters, NUL bytes, and the Unicode replacement character.
func Clean(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch {
		case unicode.IsSpace(r):
			b.WriteRune(' ')
		case r == 0 || r == '�' || unicode.IsControl(r):
			// dropped
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

// StripAccents removes combining diacritical marks: decompose, drop the
// nonspacing marks, recompose. The transformer chain carries state, so a
// fresh one is built per call to stay safe under concurrent encoding.
func StripAccents(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}

// PadCJK surrounds every CJK ideograph with spaces so that downstream
// whitespace splitting treats each ideograph as its own token.
func PadCJK(s string) string {
	var b strings.Builder
	b.Grow(len(s) + len(s)/2)
	for _, r := range s {
		if isCJK(r) {
			b.WriteRune(' ')
			b.WriteRune(r)
			b.WriteRune(' ')
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// SplitPunctuation splits a token at punctuation boundaries, isolating each
// punctuation rune as its own piece. "can't." becomes ["can", "'", "t", "."].
func SplitPunctuation(token string) []string {
	var pieces []string
	var current strings.Builder
	for _, r := range token {
		if IsPunctuation(r) {
			if current.Len() > 0 {
				pieces = append(pieces, current.String())
				current.Reset()
			}
			pieces = append(pieces, string(r))
			continue
		}
		current.WriteRune(r)
	}
	if current.Len() > 0 {
		pieces = append(pieces, current.String())
	}
	return pieces
}

// IsPunctuation reports whether r counts as punctuation for token splitting.
// Beyond the Unicode punctuation categories this includes the ASCII symbol
// ranges ($, +, <, =, >, ^, `, |, ~) that BERT-style tokenizers treat as
// punctuation.
func IsPunctuation(r rune) bool {
	if (r >= 33 && r <= 47) || (r >= 58 && r <= 64) || (r >= 91 && r <= 96) || (r >= 123 && r <= 126) {
		return true
	}
	return unicode.IsPunct(r)
}

func isCJK(r rune) bool {
	switch {
	case r >= 0x4E00 && r <= 0x9FFF,
		r >= 0x3400 && r <= 0x4DBF,
		r >= 0x20000 && r <= 0x2A6DF,
		r >= 0x2A700 && r <= 0x2B73F,
		r >= 0x2B740 && r <= 0x2B81F,
		r >= 0x2B820 && r <= 0x2CEAF,
		r >= 0xF900 && r <= 0xFAFF,
		r >= 0x2F800 && r <= 0x2FA1F:
		return true
	}
	return false
}
