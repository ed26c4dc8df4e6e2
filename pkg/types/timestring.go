package types

import (
	"fmt"
	"time"
)

const timeLayout = "15:04"

// TimeString represents a wall-clock time of day in "HH:MM" format.
// The zero value is the empty string, not "00:00".
type TimeString string

// NewTimeString creates a TimeString from the wall-clock part of t.
func NewTimeString(t time.Time) TimeString {
	return TimeString(t.Format(timeLayout))
}

// NewTimeStringFromString parses and validates an "HH:MM" string.
func NewTimeStringFromString(s string) (TimeString, error) {
	ts := TimeString(s)
	if err := ts.Validate(); err != nil {
		return "", err
	}
	return ts, nil
}

// Validate checks that the value is a well-formed "HH:MM" time.
func (t TimeString) Validate() error {
	if _, err := time.Parse(timeLayout, string(t)); err != nil {
		return fmt.Errorf("invalid time %q, expected HH:MM: %v", string(t), err)
	}
	return nil
}

// IsZero reports whether the value is empty.
func (t TimeString) IsZero() bool {
	return t == ""
}

// Minutes returns the value as minutes from midnight.
func (t TimeString) Minutes() (int, error) {
	parsed, err := time.Parse(timeLayout, string(t))
	if err != nil {
		return 0, fmt.Errorf("invalid time %q, expected HH:MM: %v", string(t), err)
	}
	return parsed.Hour()*60 + parsed.Minute(), nil
}

// AddMinutes returns the time shifted forward by d minutes.
// Returns an error if the result crosses midnight.
func (t TimeString) AddMinutes(d int) (TimeString, error) {
	m, err := t.Minutes()
	if err != nil {
		return "", err
	}
	m += d
	if m < 0 || m > 24*60 {
		return "", fmt.Errorf("time %q + %d minutes is outside the day", string(t), d)
	}
	if m == 24*60 {
		return "24:00", nil
	}
	return TimeString(fmt.Sprintf("%02d:%02d", m/60, m%60)), nil
}

// IsBefore reports whether t is strictly earlier than other.
// Zero-padded HH:MM strings compare correctly lexicographically.
func (t TimeString) IsBefore(other TimeString) bool {
	return string(t) < string(other)
}

// IsAfter reports whether t is strictly later than other.
func (t TimeString) IsAfter(other TimeString) bool {
	return string(t) > string(other)
}

func (t TimeString) String() string {
	return string(t)
}
