package domain

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-ArtistScheduling/pkg/types"
)

// ErrInvalidRange is returned when a range is malformed or its start is not before its end
var ErrInvalidRange = errors.New("domain: invalid time range")

// TimeRange is a half-open interval [Start, End) within one day
type TimeRange struct {
	Start types.TimeString
	End   types.TimeString
}

// NewTimeRange validates and builds a range
func NewTimeRange(start, end types.TimeString) (TimeRange, error) {
	r := TimeRange{Start: start, End: end}
	if err := r.Validate(); err != nil {
		return TimeRange{}, err
	}
	return r, nil
}

// Validate checks both bounds and that Start < End
func (r TimeRange) Validate() error {
	if err := r.Start.Validate(); err != nil {
		return fmt.Errorf("%w: start: %v", ErrInvalidRange, err)
	}
	if err := r.End.Validate(); err != nil {
		return fmt.Errorf("%w: end: %v", ErrInvalidRange, err)
	}
	if r.Start.Minutes() >= r.End.Minutes() {
		return fmt.Errorf("%w: start %s must be before end %s", ErrInvalidRange, r.Start, r.End)
	}
	return nil
}

// IsEmpty reports a zero-length or inverted range
func (r TimeRange) IsEmpty() bool {
	return r.Start.Minutes() >= r.End.Minutes()
}

// DurationMinutes returns End - Start in minutes
func (r TimeRange) DurationMinutes() int {
	return r.End.Minutes() - r.Start.Minutes()
}

// Overlaps reports whether the ranges share at least one minute.
// Touching ranges (a.End == b.Start) do not overlap.
func (r TimeRange) Overlaps(other TimeRange) bool {
	return r.Start.Minutes() < other.End.Minutes() && other.Start.Minutes() < r.End.Minutes()
}

// Contains reports whether other lies entirely within r
func (r TimeRange) Contains(other TimeRange) bool {
	return r.Start.Minutes() <= other.Start.Minutes() && other.End.Minutes() <= r.End.Minutes()
}

// Subtract removes other from r.
// The result has 0 ranges (r fully covered), 1 (edge overlap or no overlap) or 2 (other strictly inside r).
func (r TimeRange) Subtract(other TimeRange) []TimeRange {
	if !r.Overlaps(other) {
		if r.IsEmpty() {
			return nil
		}
		return []TimeRange{r}
	}

	rs, re := r.Start.Minutes(), r.End.Minutes()
	bs, be := other.Start.Minutes(), other.End.Minutes()

	result := make([]TimeRange, 0, 2)
	if rs < bs {
		result = append(result, rangeFromMinutes(rs, bs))
	}
	if be < re {
		result = append(result, rangeFromMinutes(be, re))
	}
	return result
}

// Widen extends the range by minutes on both sides, clamped to the day
func (r TimeRange) Widen(minutes int) TimeRange {
	if minutes <= 0 {
		return r
	}
	start := r.Start.Minutes() - minutes
	if start < 0 {
		start = 0
	}
	end := r.End.Minutes() + minutes
	if end > types.MinutesPerDay {
		end = types.MinutesPerDay
	}
	return rangeFromMinutes(start, end)
}

func (r TimeRange) String() string {
	return fmt.Sprintf("%s-%s", r.Start, r.End)
}

// SubtractAll folds every occupied range out of the free list.
// Output is ordered by start as long as free is.
func SubtractAll(free []TimeRange, occupied []TimeRange) []TimeRange {
	current := free
	for _, occ := range occupied {
		next := make([]TimeRange, 0, len(current)+1)
		for _, f := range current {
			next = append(next, f.Subtract(occ)...)
		}
		current = next
	}
	return current
}

// rangeFromMinutes expects 0 <= start, end <= MinutesPerDay
func rangeFromMinutes(start, end int) TimeRange {
	s, _ := types.NewTimeStringFromMinutes(start)
	e, _ := types.NewTimeStringFromMinutes(end)
	return TimeRange{Start: s, End: e}
}
