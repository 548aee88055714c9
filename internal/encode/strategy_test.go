package encode

import (
	"errors"
	"testing"
)

func TestParseStrategy(t *testing.T) {
	cases := []struct {
		raw  string
		want Strategy
	}{
		{"longest_first", LongestFirst},
		{"only_first", OnlyFirst},
		{"only_second", OnlySecond},
		{"do_not_truncate", DoNotTruncate},
		{"Longest_First", LongestFirst},
		{"longest-first", LongestFirst},
		{"  do-not-truncate  ", DoNotTruncate},
		{"", LongestFirst},
	}

	for _, c := range cases {
		got, err := ParseStrategy(c.raw)
		if err != nil {
			t.Errorf("ParseStrategy(%q): unexpected error: %v", c.raw, err)
			continue
		}
		if got != c.want {
			t.Errorf("ParseStrategy(%q) = %q, want %q", c.raw, got, c.want)
		}
	}
}

func TestParseStrategyInvalid(t *testing.T) {
	for _, raw := range []string{"shortest_first", "truncate", "longestfirst"} {
		_, err := ParseStrategy(raw)
		if !errors.Is(err, ErrInvalidStrategy) {
			t.Errorf("ParseStrategy(%q): expected ErrInvalidStrategy, got %v", raw, err)
		}
	}
}
