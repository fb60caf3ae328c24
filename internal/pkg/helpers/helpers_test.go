package helpers

import (
	"testing"
	"time"
)

func TestCalculateOffsetLimit(t *testing.T) {
	cases := []struct {
		page, limit    int
		offset, capped uint64
	}{
		{1, 10, 0, 10},
		{3, 10, 20, 10},
		{0, 10, 0, 10},
		{-5, 25, 0, 25},
		{2, 0, 0, 0},
		{2, -1, 0, 0},
	}
	for _, tc := range cases {
		offset, capped := CalculateOffsetLimit(tc.page, tc.limit)
		if offset != tc.offset || capped != tc.capped {
			t.Errorf("CalculateOffsetLimit(%d, %d) = (%d, %d), want (%d, %d)",
				tc.page, tc.limit, offset, capped, tc.offset, tc.capped)
		}
	}
}

func TestEndOfDay(t *testing.T) {
	start := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	end := EndOfDay(start)

	want := time.Date(2025, 3, 10, 23, 59, 59, int(999*time.Millisecond), time.UTC)
	if !end.Equal(want) {
		t.Errorf("EndOfDay = %v, want %v", end, want)
	}
}

func TestEpochMillis(t *testing.T) {
	ts := EpochMillis(1700000000000)
	if ts.UnixMilli() != 1700000000000 {
		t.Errorf("EpochMillis round trip = %d", ts.UnixMilli())
	}
}
