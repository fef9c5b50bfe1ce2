package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBookingPeriod_Bounds(t *testing.T) {
	// Thursday
	now := time.Date(2024, 3, 14, 15, 30, 0, 0, time.UTC)
	day := func(m time.Month, d int) time.Time { return time.Date(2024, m, d, 0, 0, 0, 0, time.UTC) }

	tests := []struct {
		period   BookingPeriod
		wantFrom *time.Time
		wantTo   *time.Time
	}{
		{PeriodAll, nil, nil},
		{PeriodToday, ptrTime(day(3, 14)), ptrTime(day(3, 14))},
		{PeriodThisWeek, ptrTime(day(3, 11)), nil},
		{PeriodThisMonth, ptrTime(day(3, 1)), ptrTime(day(3, 31))},
		{PeriodLast30Days, ptrTime(day(2, 13)), nil},
	}

	for _, tt := range tests {
		t.Run(string(tt.period), func(t *testing.T) {
			from, to := tt.period.Bounds(now)
			assert.Equal(t, tt.wantFrom, from)
			assert.Equal(t, tt.wantTo, to)
		})
	}
}

func TestBookingPeriod_ThisWeekOnSunday(t *testing.T) {
	sunday := time.Date(2024, 3, 17, 9, 0, 0, 0, time.UTC)
	from, _ := PeriodThisWeek.Bounds(sunday)
	require.NotNil(t, from)
	assert.Equal(t, time.Monday, from.Weekday())
	assert.Equal(t, 11, from.Day())
}

func TestParseBookingPeriodAndSort(t *testing.T) {
	p, err := ParseBookingPeriod("")
	require.NoError(t, err)
	assert.Equal(t, PeriodAll, p)

	_, err = ParseBookingPeriod("yesterday")
	assert.Error(t, err)

	s, err := ParseBookingSort("")
	require.NoError(t, err)
	assert.Equal(t, SortDateDesc, s)

	s, err = ParseBookingSort("amount_desc")
	require.NoError(t, err)
	assert.Equal(t, SortAmountDesc, s)
}

func TestArtistBookingsFilter_IsSingleDate(t *testing.T) {
	d := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	assert.True(t, ArtistBookingsFilter{Date: &d}.IsSingleDate())
	assert.True(t, ArtistBookingsFilter{From: &d, To: &d}.IsSingleDate())
	assert.False(t, ArtistBookingsFilter{From: &d}.IsSingleDate())
}

func ptrTime(t time.Time) *time.Time { return &t }
