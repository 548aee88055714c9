package encode

import (
	"errors"
	"reflect"
	"testing"
)

func ids(v ...int64) []int64 { return v }

// ---------------------------------------------------------------------------
// No-op paths
// ---------------------------------------------------------------------------

func TestTruncateNoRemovalNeeded(t *testing.T) {
	for _, strategy := range []Strategy{LongestFirst, OnlyFirst, OnlySecond, DoNotTruncate} {
		a, b, overflow, err := Truncate(ids(1, 2, 3), ids(4, 5), 5, strategy, 2)
		if err != nil {
			t.Fatalf("%s: unexpected error: %v", strategy, err)
		}
		if !reflect.DeepEqual(a, ids(1, 2, 3)) || !reflect.DeepEqual(b, ids(4, 5)) {
			t.Errorf("%s: sequences changed: a=%v b=%v", strategy, a, b)
		}
		if len(overflow) != 0 {
			t.Errorf("%s: overflow = %v, want empty", strategy, overflow)
		}
	}
}

func TestTruncateExactFit(t *testing.T) {
	a, b, overflow, err := Truncate(ids(1, 2), ids(3, 4), 4, LongestFirst, 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(a) != 2 || len(b) != 2 || overflow != nil {
		t.Errorf("exact fit modified input: a=%v b=%v overflow=%v", a, b, overflow)
	}
}

// ---------------------------------------------------------------------------
// Single sequence
// ---------------------------------------------------------------------------

func TestTruncateSingleLongestFirst(t *testing.T) {
	// Five content tokens into a budget of two: keep the first two, overflow
	// holds the trimmed tail capped at stride.
	a, b, overflow, err := Truncate(ids(2, 3, 2, 3, 2), nil, 2, LongestFirst, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(a, ids(2, 3)) {
		t.Errorf("a = %v, want [2 3]", a)
	}
	if b != nil {
		t.Errorf("b = %v, want nil", b)
	}
	if !reflect.DeepEqual(overflow, ids(2, 3)) {
		t.Errorf("overflow = %v, want [2 3]", overflow)
	}
}

func TestTruncateSingleOverflowOrder(t *testing.T) {
	// Removal pops from the tail one token at a time, so the most recently
	// removed token is the one closest to the cut.
	a, _, overflow, err := Truncate(ids(10, 11, 12, 13, 14), nil, 2, LongestFirst, 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(a, ids(10, 11)) {
		t.Errorf("a = %v, want [10 11]", a)
	}
	if !reflect.DeepEqual(overflow, ids(12, 13, 14)) {
		t.Errorf("overflow = %v, want [12 13 14]", overflow)
	}
}

func TestTruncateSingleStrideZero(t *testing.T) {
	_, _, overflow, err := Truncate(ids(1, 2, 3, 4), nil, 2, LongestFirst, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(overflow) != 0 {
		t.Errorf("overflow = %v, want empty with stride 0", overflow)
	}
}

func TestTruncateZeroBudget(t *testing.T) {
	a, _, overflow, err := Truncate(ids(1, 2, 3), nil, 0, LongestFirst, 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(a) != 0 {
		t.Errorf("a = %v, want empty", a)
	}
	if !reflect.DeepEqual(overflow, ids(1, 2, 3)) {
		t.Errorf("overflow = %v, want all content", overflow)
	}
}

func TestTruncateNegativeBudgetClamped(t *testing.T) {
	a, _, _, err := Truncate(ids(1, 2), nil, -3, LongestFirst, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(a) != 0 {
		t.Errorf("a = %v, want empty", a)
	}
}

// ---------------------------------------------------------------------------
// Pairs
// ---------------------------------------------------------------------------

func TestTruncatePairLongestFirst(t *testing.T) {
	cases := []struct {
		name         string
		a, b         []int64
		maxLen       int
		stride       int
		wantA, wantB []int64
		wantOverflow []int64
	}{
		{
			name: "longer first sequence shrinks first",
			a:    ids(1, 2, 3, 4, 5), b: ids(6, 7),
			maxLen: 4, stride: 10,
			wantA: ids(1, 2), wantB: ids(6, 7),
			// Pops 5, then 4, then 3; most recent first.
			wantOverflow: ids(3, 4, 5),
		},
		{
			name: "alternates once lengths equalize",
			a:    ids(1, 2, 3), b: ids(6, 7, 8),
			maxLen: 2, stride: 10,
			wantA: ids(1), wantB: ids(6),
			// Equal lengths pop a first: 3, 8, 2, 7; most recent first.
			wantOverflow: ids(7, 2, 8, 3),
		},
		{
			name: "tie break prefers first sequence",
			a:    ids(1, 2), b: ids(6, 7),
			maxLen: 3, stride: 5,
			wantA: ids(1), wantB: ids(6, 7),
			wantOverflow: ids(2),
		},
		{
			name: "stride caps overflow keeping most recent",
			a:    ids(1, 2, 3), b: ids(6, 7, 8),
			maxLen: 2, stride: 2,
			wantA: ids(1), wantB: ids(6),
			wantOverflow: ids(7, 2),
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			a, b, overflow, err := Truncate(c.a, c.b, c.maxLen, LongestFirst, c.stride)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !reflect.DeepEqual(a, c.wantA) {
				t.Errorf("a = %v, want %v", a, c.wantA)
			}
			if !reflect.DeepEqual(b, c.wantB) {
				t.Errorf("b = %v, want %v", b, c.wantB)
			}
			if !reflect.DeepEqual(overflow, c.wantOverflow) {
				t.Errorf("overflow = %v, want %v", overflow, c.wantOverflow)
			}
		})
	}
}

func TestTruncatePairConvergence(t *testing.T) {
	// Whenever content exceeds the budget, the trimmed pair lands exactly on
	// the budget; otherwise nothing changes.
	for la := 0; la <= 6; la++ {
		for lb := 0; lb <= 6; lb++ {
			for maxLen := 0; maxLen <= 8; maxLen++ {
				a := make([]int64, la)
				b := make([]int64, lb)
				ta, tb, _, err := Truncate(a, b, maxLen, LongestFirst, 0)
				if err != nil {
					t.Fatalf("la=%d lb=%d maxLen=%d: %v", la, lb, maxLen, err)
				}
				got := len(ta) + len(tb)
				want := la + lb
				if want > maxLen {
					want = maxLen
				}
				if got != want {
					t.Fatalf("la=%d lb=%d maxLen=%d: combined %d, want %d", la, lb, maxLen, got, want)
				}
			}
		}
	}
}

// ---------------------------------------------------------------------------
// Single-side strategies and refusal
// ---------------------------------------------------------------------------

func TestTruncateOnlyFirst(t *testing.T) {
	a, b, overflow, err := Truncate(ids(1, 2, 3, 4), ids(6, 7), 3, OnlyFirst, 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(a, ids(1)) {
		t.Errorf("a = %v, want [1]", a)
	}
	if !reflect.DeepEqual(b, ids(6, 7)) {
		t.Errorf("b = %v, want untouched [6 7]", b)
	}
	if !reflect.DeepEqual(overflow, ids(2, 3, 4)) {
		t.Errorf("overflow = %v, want [2 3 4]", overflow)
	}
}

func TestTruncateOnlyFirstTooShort(t *testing.T) {
	_, _, _, err := Truncate(ids(1), ids(6, 7, 8, 9), 2, OnlyFirst, 0)
	if !errors.Is(err, ErrFirstTooShort) {
		t.Fatalf("expected ErrFirstTooShort, got %v", err)
	}
}

func TestTruncateOnlySecond(t *testing.T) {
	a, b, overflow, err := Truncate(ids(1, 2), ids(6, 7, 8, 9), 3, OnlySecond, 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(a, ids(1, 2)) {
		t.Errorf("a = %v, want untouched [1 2]", a)
	}
	if !reflect.DeepEqual(b, ids(6)) {
		t.Errorf("b = %v, want [6]", b)
	}
	if !reflect.DeepEqual(overflow, ids(7, 8, 9)) {
		t.Errorf("overflow = %v, want [7 8 9]", overflow)
	}
}

func TestTruncateOnlySecondWithoutSecond(t *testing.T) {
	_, _, _, err := Truncate(ids(1, 2, 3), nil, 1, OnlySecond, 0)
	if !errors.Is(err, ErrSecondTooShort) {
		t.Fatalf("expected ErrSecondTooShort, got %v", err)
	}
}

func TestTruncateDoNotTruncateOverBudget(t *testing.T) {
	_, _, _, err := Truncate(ids(1, 2, 3), ids(4, 5), 4, DoNotTruncate, 0)
	if !errors.Is(err, ErrSequenceTooLong) {
		t.Fatalf("expected ErrSequenceTooLong, got %v", err)
	}
}

func TestTruncateUnknownStrategy(t *testing.T) {
	_, _, _, err := Truncate(ids(1, 2, 3), nil, 1, Strategy("nonsense"), 0)
	if !errors.Is(err, ErrInvalidStrategy) {
		t.Fatalf("expected ErrInvalidStrategy, got %v", err)
	}
}
