package timeutil

import (
	"testing"
	"time"
)

func TestSecsToMinsAndSecs(t *testing.T) {
	cases := []struct {
		in         float64
		mins, secs int
	}{
		{in: 0, mins: 0, secs: 0},
		{in: 59.6, mins: 1, secs: 0},
		{in: 90, mins: 1, secs: 30},
		{in: 3599, mins: 59, secs: 59},
		{in: -3, mins: 0, secs: 0},
	}

	for _, tc := range cases {
		m, s := SecsToMinsAndSecs(tc.in)
		if m != tc.mins || s != tc.secs {
			t.Errorf(
				"SecsToMinsAndSecs(%v) = %d:%d, want %d:%d",
				tc.in, m, s, tc.mins, tc.secs,
			)
		}
	}
}

func TestRoundToStart(t *testing.T) {
	in := time.Date(2025, 4, 12, 17, 45, 3, 9, time.UTC)
	want := time.Date(2025, 4, 12, 0, 0, 0, 0, time.UTC)

	if got := RoundToStart(in); !got.Equal(want) {
		t.Errorf("RoundToStart() = %v, want %v", got, want)
	}
}

func TestToKeyOrdering(t *testing.T) {
	a := time.Date(2025, 4, 12, 17, 45, 3, 0, time.UTC)
	b := a.Add(time.Second)

	if string(ToKey(a)) >= string(ToKey(b)) {
		t.Errorf("expected keys to sort chronologically")
	}
}
