package model

import (
	"testing"
	"time"
)

func day(s string) time.Time {
	t, err := time.ParseInLocation(DateLayout, s, time.UTC)
	if err != nil {
		panic(err)
	}
	return t
}

func mustInterval(t *testing.T, start, end string) Interval {
	t.Helper()
	iv, err := ParseInterval(start, end)
	if err != nil {
		t.Fatalf("ParseInterval(%s, %s): %v", start, end, err)
	}
	return iv
}

func TestNewInterval_RejectsInvertedAndEmpty(t *testing.T) {
	cases := [][2]string{
		{"2024-01-10", "2024-01-10"},
		{"2024-01-10", "2024-01-01"},
		{"2024-03-01", "2024-02-01"},
	}
	for _, c := range cases {
		if _, err := NewInterval(day(c[0]), day(c[1])); err != ErrInvalidRange {
			t.Errorf("NewInterval(%s, %s) err = %v; want ErrInvalidRange", c[0], c[1], err)
		}
	}
}

func TestParseInterval_BadDate(t *testing.T) {
	for _, c := range [][2]string{
		{"2024-1-1", "2024-01-10"},
		{"not-a-date", "2024-01-10"},
		{"2024-01-01", "10-01-2024"},
		{"", "2024-01-10"},
	} {
		if _, err := ParseInterval(c[0], c[1]); err != ErrInvalidRange {
			t.Errorf("ParseInterval(%q, %q) err = %v; want ErrInvalidRange", c[0], c[1], err)
		}
	}
}

func TestOverlaps(t *testing.T) {
	base := mustInterval(t, "2024-01-01", "2024-01-10")

	tests := []struct {
		name       string
		start, end string
		want       bool
	}{
		{"contained", "2024-01-05", "2024-01-08", true},
		{"identical", "2024-01-01", "2024-01-10", true},
		{"straddles start", "2023-12-28", "2024-01-02", true},
		{"straddles end", "2024-01-09", "2024-01-20", true},
		{"covers", "2023-12-01", "2024-02-01", true},
		{"adjacent after", "2024-01-10", "2024-01-15", false},
		{"adjacent before", "2023-12-20", "2024-01-01", false},
		{"disjoint after", "2024-02-01", "2024-02-10", false},
		{"disjoint before", "2023-11-01", "2023-11-10", false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			other := mustInterval(t, tc.start, tc.end)
			if got := base.Overlaps(other); got != tc.want {
				t.Errorf("Overlaps = %v; want %v", got, tc.want)
			}
			// the predicate is symmetric
			if got := other.Overlaps(base); got != tc.want {
				t.Errorf("Overlaps (reversed) = %v; want %v", got, tc.want)
			}
		})
	}
}

func TestOverlaps_TranslationInvariant(t *testing.T) {
	a := mustInterval(t, "2024-01-01", "2024-01-10")
	b := mustInterval(t, "2024-01-08", "2024-01-12")
	c := mustInterval(t, "2024-01-10", "2024-01-20")

	for _, days := range []int{-365, -30, -1, 1, 30, 365} {
		shift := time.Duration(days) * 24 * time.Hour
		move := func(iv Interval) Interval {
			return Interval{Start: iv.Start.Add(shift), End: iv.End.Add(shift)}
		}
		if got := move(a).Overlaps(move(b)); got != a.Overlaps(b) {
			t.Errorf("shift %d days changed overlapping verdict", days)
		}
		if got := move(a).Overlaps(move(c)); got != a.Overlaps(c) {
			t.Errorf("shift %d days changed adjacent verdict", days)
		}
	}
}

func TestDays(t *testing.T) {
	if got := mustInterval(t, "2024-01-01", "2024-01-10").Days(); got != 9 {
		t.Errorf("Days = %d; want 9", got)
	}
	if got := mustInterval(t, "2024-02-28", "2024-03-01").Days(); got != 2 {
		t.Errorf("Days across leap day = %d; want 2", got)
	}
}
