package main

import "testing"

func TestParseIDList_Commas(t *testing.T) {
	got, err := parseIDList("101,2003,102")
	if err != nil {
		t.Fatalf("parseIDList: %v", err)
	}
	want := []int64{101, 2003, 102}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v, want %v", got, want)
		}
	}
}

func TestParseIDList_WhitespaceAndNewlines(t *testing.T) {
	got, err := parseIDList("101 2003\n102,\t5")
	if err != nil {
		t.Fatalf("parseIDList: %v", err)
	}
	if len(got) != 4 || got[3] != 5 {
		t.Fatalf("got %v, want four IDs ending in 5", got)
	}
}

func TestParseIDList_Invalid(t *testing.T) {
	_, err := parseIDList("101,banana")
	if err == nil {
		t.Fatal("expected error for non-numeric ID")
	}
}

func TestParseIDList_Empty(t *testing.T) {
	_, err := parseIDList(" , ,\n")
	if err == nil {
		t.Fatal("expected error for input with no IDs")
	}
}
