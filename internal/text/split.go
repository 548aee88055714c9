package text

import "strings"

// Span is a slice of input text tagged with whether it matched a special
// token string verbatim.
type Span struct {
	Text    string
	Special bool
}

// SplitSpecials splits text into spans at every occurrence of the given
// special token strings, so "[MASK]" written in running text survives later
// punctuation splitting as a single piece. Matches are found left to right;
// when several special tokens match at the same position the longest wins.
// Empty ordinary spans are dropped; with no specials the whole text is one
// ordinary span.
func SplitSpecials(text string, specials []string) []Span {
	var spans []Span
	start := 0

	for start < len(text) {
		pos, match := nextSpecial(text[start:], specials)
		if match == "" {
			break
		}

		if pos > 0 {
			spans = append(spans, Span{Text: text[start : start+pos]})
		}
		spans = append(spans, Span{Text: match, Special: true})
		start += pos + len(match)
	}

	if start < len(text) {
		spans = append(spans, Span{Text: text[start:]})
	}
	return spans
}

// nextSpecial finds the earliest occurrence of any special token in s and
// returns its byte offset and the matched token. Ties at the same offset go
// to the longest token.
func nextSpecial(s string, specials []string) (int, string) {
	best := -1
	match := ""
	for _, special := range specials {
		if special == "" {
			continue
		}
		pos := strings.Index(s, special)
		if pos < 0 {
			continue
		}
		if best < 0 || pos < best || (pos == best && len(special) > len(match)) {
			best = pos
			match = special
		}
	}
	if best < 0 {
		return 0, ""
	}
	return best, match
}
