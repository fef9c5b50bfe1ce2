package domain

import (
	"time"

	"github.com/m04kA/SMC-ArtistScheduling/pkg/types"
)

// BlockedRange is stored for days marked unavailable
var BlockedRange = TimeRange{Start: "00:00", End: "00:00"}

// Standard working hours applied by the bulk operation
const (
	StandardOpenTime  types.TimeString = "09:00"
	StandardCloseTime types.TimeString = "17:00"
)

// DaysInWeek is the span of bulk availability operations
const DaysInWeek = 7

// AvailabilityWindow is an artist's open hours on one calendar date.
// At most one window exists per (ArtistID, Date); writes replace it.
type AvailabilityWindow struct {
	ID          int64
	ArtistID    int64
	Date        time.Time
	Range       TimeRange
	IsAvailable bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// IsOpen returns true if the window can host bookings
func (w *AvailabilityWindow) IsOpen() bool {
	return w.IsAvailable && !w.Range.IsEmpty()
}

// NewOpenWindow builds an available window after validating the range
func NewOpenWindow(artistID int64, date time.Time, r TimeRange) (*AvailabilityWindow, error) {
	if err := r.Validate(); err != nil {
		return nil, err
	}
	return &AvailabilityWindow{
		ArtistID:    artistID,
		Date:        DateOnly(date),
		Range:       r,
		IsAvailable: true,
	}, nil
}

// NewBlockedWindow builds an unavailable window with the sentinel range
func NewBlockedWindow(artistID int64, date time.Time) *AvailabilityWindow {
	return &AvailabilityWindow{
		ArtistID:    artistID,
		Date:        DateOnly(date),
		Range:       BlockedRange,
		IsAvailable: false,
	}
}

// DateOnly drops the time of day, keeping the location
func DateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// SameDay reports whether both instants fall on the same calendar date
func SameDay(a, b time.Time) bool {
	y1, m1, d1 := a.Date()
	y2, m2, d2 := b.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

// WeekDates returns n consecutive dates starting at from
func WeekDates(from time.Time, n int) []time.Time {
	start := DateOnly(from)
	dates := make([]time.Time, n)
	for i := range dates {
		dates[i] = start.AddDate(0, 0, i)
	}
	return dates
}
