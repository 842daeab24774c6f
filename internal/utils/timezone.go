package utils

import (
	"time"
	_ "time/tzdata"
)

// InTimezone moves t into the named zone; unknown zones fall back to UTC.
func InTimezone(t time.Time, tz string) time.Time {
	loc, err := time.LoadLocation(tz)
	if err != nil {
		loc = time.UTC
	}
	return t.In(loc)
}
