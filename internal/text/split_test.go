package text

import (
	"reflect"
	"testing"
)

func TestSplitSpecials(t *testing.T) {
	specials := []string{"[MASK]", "[SEP]"}

	cases := []struct {
		name string
		in   string
		want []Span
	}{
		{
			name: "special inside text",
			in:   "the [MASK] barks",
			want: []Span{
				{Text: "the "},
				{Text: "[MASK]", Special: true},
				{Text: " barks"},
			},
		},
		{
			name: "leading and trailing specials",
			in:   "[SEP]middle[MASK]",
			want: []Span{
				{Text: "[SEP]", Special: true},
				{Text: "middle"},
				{Text: "[MASK]", Special: true},
			},
		},
		{
			name: "adjacent specials",
			in:   "[MASK][MASK]",
			want: []Span{
				{Text: "[MASK]", Special: true},
				{Text: "[MASK]", Special: true},
			},
		},
		{
			name: "no specials present",
			in:   "plain text",
			want: []Span{{Text: "plain text"}},
		},
		{
			name: "empty input",
			in:   "",
			want: nil,
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := SplitSpecials(c.in, specials); !reflect.DeepEqual(got, c.want) {
				t.Errorf("SplitSpecials(%q) = %v, want %v", c.in, got, c.want)
			}
		})
	}
}

func TestSplitSpecialsLongestMatchWins(t *testing.T) {
	got := SplitSpecials("a<unk>b", []string{"<unk", "<unk>"})
	want := []Span{
		{Text: "a"},
		{Text: "<unk>", Special: true},
		{Text: "b"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("SplitSpecials = %v, want %v", got, want)
	}
}

func TestSplitSpecialsNoList(t *testing.T) {
	got := SplitSpecials("anything", nil)
	want := []Span{{Text: "anything"}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("SplitSpecials = %v, want %v", got, want)
	}
}
