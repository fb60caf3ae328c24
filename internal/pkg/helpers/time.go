package helpers

import "time"

// EpochMillis converts epoch milliseconds to a time.Time.
func EpochMillis(ms int64) time.Time {
	return time.UnixMilli(ms)
}

// EndOfDay returns the last representable instant of the day that starts
// at t, matching the inclusive upper bound of date-range filters.
func EndOfDay(t time.Time) time.Time {
	return t.Add(24*time.Hour - time.Millisecond)
}
