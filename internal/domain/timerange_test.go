package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ArtistScheduling/pkg/types"
)

func tr(start, end string) TimeRange {
	return TimeRange{Start: types.TimeString(start), End: types.TimeString(end)}
}

func TestNewTimeRange(t *testing.T) {
	tests := []struct {
		name    string
		start   string
		end     string
		wantErr bool
	}{
		{name: "valid", start: "09:00", end: "17:00"},
		{name: "until end of day", start: "22:00", end: "24:00"},
		{name: "equal bounds", start: "10:00", end: "10:00", wantErr: true},
		{name: "inverted", start: "12:00", end: "11:00", wantErr: true},
		{name: "malformed start", start: "9am", end: "11:00", wantErr: true},
		{name: "malformed end", start: "09:00", end: "25:00", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := NewTimeRange(types.TimeString(tt.start), types.TimeString(tt.end))
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidRange)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tr(tt.start, tt.end), r)
		})
	}
}

func TestTimeRange_Overlaps(t *testing.T) {
	tests := []struct {
		name string
		a, b TimeRange
		want bool
	}{
		{name: "disjoint", a: tr("09:00", "10:00"), b: tr("11:00", "12:00"), want: false},
		{name: "touching", a: tr("09:00", "10:00"), b: tr("10:00", "11:00"), want: false},
		{name: "partial", a: tr("09:00", "10:30"), b: tr("10:00", "11:00"), want: true},
		{name: "inside", a: tr("09:00", "17:00"), b: tr("11:00", "12:00"), want: true},
		{name: "identical", a: tr("09:00", "10:00"), b: tr("09:00", "10:00"), want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.a.Overlaps(tt.b))
			assert.Equal(t, tt.want, tt.b.Overlaps(tt.a))
		})
	}
}

func TestTimeRange_Subtract(t *testing.T) {
	tests := []struct {
		name string
		a, b TimeRange
		want []TimeRange
	}{
		{name: "no overlap", a: tr("09:00", "12:00"), b: tr("13:00", "14:00"), want: []TimeRange{tr("09:00", "12:00")}},
		{name: "full cover", a: tr("10:00", "11:00"), b: tr("09:00", "12:00"), want: []TimeRange{}},
		{name: "left edge", a: tr("09:00", "12:00"), b: tr("08:00", "10:00"), want: []TimeRange{tr("10:00", "12:00")}},
		{name: "right edge", a: tr("09:00", "12:00"), b: tr("11:00", "13:00"), want: []TimeRange{tr("09:00", "11:00")}},
		{name: "strictly inside", a: tr("09:00", "17:00"), b: tr("11:00", "12:00"), want: []TimeRange{tr("09:00", "11:00"), tr("12:00", "17:00")}},
		{name: "same start", a: tr("09:00", "17:00"), b: tr("09:00", "12:00"), want: []TimeRange{tr("12:00", "17:00")}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.a.Subtract(tt.b))
		})
	}
}

// Every subtraction result is non-empty, and result ∪ (a ∩ b) covers exactly a.
func TestTimeRange_SubtractReconstructs(t *testing.T) {
	const step = 30
	var ranges []TimeRange
	for s := 8 * 60; s < 14*60; s += step {
		for e := s + step; e <= 14*60; e += step {
			ranges = append(ranges, rangeFromMinutes(s, e))
		}
	}

	for _, a := range ranges {
		for _, b := range ranges {
			parts := a.Subtract(b)

			covered := make(map[int]int)
			for _, p := range parts {
				require.Less(t, p.Start.Minutes(), p.End.Minutes(), "%s - %s produced %s", a, b, p)
				require.True(t, a.Contains(p))
				require.False(t, p.Overlaps(b))
				for m := p.Start.Minutes(); m < p.End.Minutes(); m++ {
					covered[m]++
				}
			}
			for m := a.Start.Minutes(); m < a.End.Minutes(); m++ {
				if m >= b.Start.Minutes() && m < b.End.Minutes() {
					covered[m]++
				}
			}

			require.Len(t, covered, a.DurationMinutes(), "%s - %s", a, b)
			for m, n := range covered {
				require.Equal(t, 1, n, "minute %d of %s - %s covered %d times", m, a, b, n)
			}
		}
	}
}

func TestSubtractAll(t *testing.T) {
	free := []TimeRange{tr("09:00", "17:00")}
	occupied := []TimeRange{tr("11:00", "12:00"), tr("14:00", "15:30"), tr("16:30", "18:00")}

	got := SubtractAll(free, occupied)

	assert.Equal(t, []TimeRange{
		tr("09:00", "11:00"),
		tr("12:00", "14:00"),
		tr("15:30", "16:30"),
	}, got)
}

func TestTimeRange_Widen(t *testing.T) {
	assert.Equal(t, tr("10:45", "12:15"), tr("11:00", "12:00").Widen(15))
	assert.Equal(t, tr("00:00", "01:30"), tr("00:10", "01:00").Widen(30))
	assert.Equal(t, tr("23:00", "24:00"), tr("23:30", "23:50").Widen(30))
	assert.Equal(t, tr("11:00", "12:00"), tr("11:00", "12:00").Widen(0))
}
