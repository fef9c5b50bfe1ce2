package domain

import "github.com/m04kA/SMC-ArtistScheduling/pkg/types"

// AvailableSlot is a bookable start time of a fixed duration
type AvailableSlot struct {
	StartTime types.TimeString
	EndTime   types.TimeString
}

// Label returns the 12-hour form of the start, e.g. "09:00 AM"
func (s AvailableSlot) Label() string {
	return s.StartTime.Label()
}

// Range returns the interval the slot would occupy
func (s AvailableSlot) Range() TimeRange {
	return TimeRange{Start: s.StartTime, End: s.EndTime}
}
