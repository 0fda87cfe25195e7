package engine

import (
	"math"
	"testing"
	"time"
)

func TestSafeRound(t *testing.T) {
	cases := []struct {
		in   float64
		want float64
	}{
		{0, 0},
		{1.005, 1.01},
		{35.5555555, 35.56},
		{114.444, 114.44},
		{-2.005, -2.01},
		{0.1 + 0.2, 0.3},
		{19.999999999999996, 20},
	}
	for _, tc := range cases {
		if got := SafeRound(tc.in); got != tc.want {
			t.Errorf("SafeRound(%v) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestSafeRoundRepeatedAdditions(t *testing.T) {
	var total float64
	for i := 0; i < 10; i++ {
		total = SafeRound(total + 0.1)
	}
	if total != 1.0 {
		t.Fatalf("ten additions of 0.1 = %v, want 1.0", total)
	}
}

func TestSafeRoundPassesThroughNaN(t *testing.T) {
	if got := SafeRound(math.NaN()); !math.IsNaN(got) {
		t.Fatalf("SafeRound(NaN) = %v, want NaN", got)
	}
}

func TestSameCalendarDay(t *testing.T) {
	ref := time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)
	cases := []struct {
		name string
		t    time.Time
		want bool
	}{
		{"same morning", time.Date(2024, 3, 15, 0, 0, 1, 0, time.UTC), true},
		{"same last second", time.Date(2024, 3, 15, 23, 59, 59, 0, time.UTC), true},
		{"day before", time.Date(2024, 3, 14, 23, 59, 59, 0, time.UTC), false},
		{"day after", time.Date(2024, 3, 16, 0, 0, 0, 0, time.UTC), false},
	}
	for _, tc := range cases {
		if got := SameCalendarDay(tc.t, ref); got != tc.want {
			t.Errorf("%s: SameCalendarDay = %v, want %v", tc.name, got, tc.want)
		}
	}
}

func TestSameCalendarDayConvertsLocation(t *testing.T) {
	loc := time.FixedZone("UTC+5", 5*3600)
	ref := time.Date(2024, 3, 15, 2, 0, 0, 0, loc)
	// 23:00 UTC on the 14th is 04:00 on the 15th in UTC+5.
	utc := time.Date(2024, 3, 14, 23, 0, 0, 0, time.UTC)
	if !SameCalendarDay(utc, ref) {
		t.Fatal("timestamp should convert into ref's location before comparing")
	}
}
