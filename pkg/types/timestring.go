package types

import (
	"database/sql/driver"
	"errors"
	"fmt"
	"strings"
	"time"
)

const (
	minutesPerHour = 60
	// MinutesPerDay is the upper bound of a TimeString ("24:00").
	MinutesPerDay = 24 * minutesPerHour

	layout24   = "15:04"
	layoutSecs = "15:04:05"
	layout12   = "03:04 PM"
	endOfDay   = "24:00"
)

var (
	// ErrInvalidFormat is returned when a string is not a valid time of day
	ErrInvalidFormat = errors.New("invalid time string format")

	// ErrOutOfRange is returned when arithmetic leaves the [00:00, 24:00] interval
	ErrOutOfRange = errors.New("time string out of range")
)

// TimeString is a time of day in "HH:MM" form.
// "24:00" is accepted and denotes the end of the day.
type TimeString string

// NewTimeString returns the time of day of t truncated to minutes
func NewTimeString(t time.Time) TimeString {
	return TimeString(t.Format(layout24))
}

// NewTimeStringFromString parses "HH:MM", "HH:MM:SS" or "HH:MM AM/PM"
func NewTimeStringFromString(s string) (TimeString, error) {
	s = strings.TrimSpace(s)
	if s == endOfDay || s == endOfDay+":00" {
		return TimeString(endOfDay), nil
	}

	for _, layout := range []string{layout24, layoutSecs, layout12} {
		if t, err := time.Parse(layout, strings.ToUpper(s)); err == nil {
			return NewTimeString(t), nil
		}
	}

	return "", fmt.Errorf("%w: %q", ErrInvalidFormat, s)
}

// NewTimeStringFromMinutes builds a TimeString from minutes since midnight
func NewTimeStringFromMinutes(minutes int) (TimeString, error) {
	if minutes < 0 || minutes > MinutesPerDay {
		return "", fmt.Errorf("%w: %d minutes", ErrOutOfRange, minutes)
	}
	return TimeString(fmt.Sprintf("%02d:%02d", minutes/minutesPerHour, minutes%minutesPerHour)), nil
}

// MustTimeString parses s and panics on error. Intended for constants and tests.
func MustTimeString(s string) TimeString {
	ts, err := NewTimeStringFromString(s)
	if err != nil {
		panic(err)
	}
	return ts
}

// Validate checks that the value is a canonical "HH:MM" time of day
func (t TimeString) Validate() error {
	_, err := t.parseMinutes()
	return err
}

// IsZero reports whether the value is empty
func (t TimeString) IsZero() bool {
	return t == ""
}

// Minutes returns minutes since midnight, or -1 for an invalid value
func (t TimeString) Minutes() int {
	m, err := t.parseMinutes()
	if err != nil {
		return -1
	}
	return m
}

// AddMinutes shifts the time by n minutes (n may be negative)
func (t TimeString) AddMinutes(n int) (TimeString, error) {
	m, err := t.parseMinutes()
	if err != nil {
		return "", err
	}
	return NewTimeStringFromMinutes(m + n)
}

// IsBefore reports whether t is strictly earlier than other
func (t TimeString) IsBefore(other TimeString) bool {
	return t.Minutes() < other.Minutes()
}

// IsAfter reports whether t is strictly later than other
func (t TimeString) IsAfter(other TimeString) bool {
	return t.Minutes() > other.Minutes()
}

// Equal compares two times by value
func (t TimeString) Equal(other TimeString) bool {
	return t.Minutes() == other.Minutes()
}

// String returns the "HH:MM" form
func (t TimeString) String() string {
	return string(t)
}

// Label returns the 12-hour form, e.g. "09:00 AM"
func (t TimeString) Label() string {
	m, err := t.parseMinutes()
	if err != nil {
		return string(t)
	}
	if m == MinutesPerDay {
		return "12:00 AM"
	}
	clock := time.Date(0, 1, 1, m/minutesPerHour, m%minutesPerHour, 0, 0, time.UTC)
	return clock.Format(layout12)
}

// OnDate combines the time of day with the calendar date of d
func (t TimeString) OnDate(d time.Time) time.Time {
	y, mo, day := d.Date()
	return time.Date(y, mo, day, 0, 0, 0, 0, d.Location()).Add(time.Duration(t.Minutes()) * time.Minute)
}

// Scan implements sql.Scanner. PostgreSQL TIME columns arrive as "HH:MM:SS".
func (t *TimeString) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		*t = ""
		return nil
	case string:
		return t.scanString(v)
	case []byte:
		return t.scanString(string(v))
	case time.Time:
		*t = NewTimeString(v)
		return nil
	default:
		return fmt.Errorf("%w: cannot scan %T", ErrInvalidFormat, src)
	}
}

// Value implements driver.Valuer
func (t TimeString) Value() (driver.Value, error) {
	if t.IsZero() {
		return nil, nil
	}
	if err := t.Validate(); err != nil {
		return nil, err
	}
	return string(t), nil
}

func (t *TimeString) scanString(s string) error {
	parsed, err := NewTimeStringFromString(s)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

func (t TimeString) parseMinutes() (int, error) {
	s := string(t)
	if s == endOfDay {
		return MinutesPerDay, nil
	}
	parsed, err := time.Parse(layout24, s)
	if err != nil || len(s) != len(layout24) {
		return 0, fmt.Errorf("%w: %q", ErrInvalidFormat, s)
	}
	return parsed.Hour()*minutesPerHour + parsed.Minute(), nil
}
