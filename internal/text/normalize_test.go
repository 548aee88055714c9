package text

import (
	"errors"
	"testing"
)

func TestNormalize(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Hello world", "Hello world"},
		{"  Hello world  ", "Hello world"},
		{"\t\n Hello \n\t", "Hello"},
		{"line one\r\nline two", "line one\nline two"},
		{"line one\rline two", "line one\nline two"},
		{"a\r\nb\rc\nd", "a\nb\nc\nd"},
		{"  Héllo wörld  ", "Héllo wörld"},
		{"  hello   world  ", "hello   world"},
	}
	for _, c := range cases {
		got, err := Normalize(c.in)
		if err != nil {
			t.Errorf("Normalize(%q) returned error: %v", c.in, err)
			continue
		}
		if got != c.want {
			t.Errorf("Normalize(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestNormalizeRejectsEmptyInput(t *testing.T) {
	for _, in := range []string{"", "   \t\n  "} {
		_, err := Normalize(in)
		if !errors.Is(err, ErrEmptyText) {
			t.Errorf("Normalize(%q): expected ErrEmptyText, got %v", in, err)
		}
	}
}
