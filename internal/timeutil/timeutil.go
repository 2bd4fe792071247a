// Package timeutil provides utility functions and types for working with
// time-related operations.
package timeutil

import (
	"math"
	"strings"
	"time"

	dps "github.com/markusmobius/go-dateparser"
)

const secondsInAMinute = 60

// Round rounds a time value in seconds, minutes, or hours to the nearest integer.
func Round(t float64) int {
	return int(math.Round(t))
}

// SecsToMinsAndSecs expresses a seconds value in minutes and seconds.
func SecsToMinsAndSecs(val float64) (mins, secs int) {
	total := Round(val)
	if total < 0 {
		total = 0
	}

	mins = total / secondsInAMinute
	secs = total % secondsInAMinute

	return
}

// RoundToStart resets the given time to the start of the day.
func RoundToStart(t time.Time) time.Time {
	return time.Date(
		t.Year(),
		t.Month(),
		t.Day(),
		0,
		0,
		0,
		0,
		t.Location(),
	)
}

// FromStr parses a human readable date such as "2 days ago" or
// "2025-03-01 06:30 PM" relative to now.
func FromStr(s string, now time.Time) (time.Time, error) {
	cfg := &dps.Configuration{
		CurrentTime: now,
	}

	dt, err := dps.Parse(cfg, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, err
	}

	return dt.Time, nil
}

// ToKey converts a time value to a database key for Bolt.
func ToKey(t time.Time) []byte {
	return []byte(t.Format(time.RFC3339Nano))
}
