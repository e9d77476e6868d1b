package common

import "time"

type Clock func() time.Time

func SystemClock() time.Time {
	return time.Now().UTC()
}

// WindowStart returns the oldest instant included in a trailing window of daysBack days.
func WindowStart(now time.Time, daysBack int) time.Time {
	if daysBack < 0 {
		daysBack = 0
	}

	return now.Add(-time.Duration(daysBack) * 24 * time.Hour)
}
