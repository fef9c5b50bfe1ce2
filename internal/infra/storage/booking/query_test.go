package booking

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ArtistScheduling/internal/domain"
)

func TestBuildArtistBookingsQuery_SingleDateWithLock(t *testing.T) {
	date := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	filter := domain.ArtistBookingsFilter{ArtistID: 5, Date: &date}

	query, args, err := buildArtistBookingsQuery(filter, true).ToSql()
	require.NoError(t, err)

	assert.Contains(t, query, "FROM bookings b LEFT JOIN users u ON u.id = b.customer_id")
	assert.Contains(t, query, "WHERE b.artist_id = $1 AND b.appointment_date = $2 AND b.status <> $3")
	assert.Contains(t, query, "ORDER BY b.start_time ASC")
	assert.True(t, strings.HasSuffix(query, "FOR UPDATE OF b"), query)
	assert.Equal(t, []interface{}{int64(5), date, "cancelled"}, args)
}

func TestBuildArtistBookingsQuery_StatusAndPeriod(t *testing.T) {
	now := time.Date(2024, 3, 14, 10, 0, 0, 0, time.UTC)
	status := domain.StatusPending
	filter := domain.ArtistBookingsFilter{ArtistID: 5, Status: &status, Sort: domain.SortAmountDesc}
	filter.ApplyPeriod(domain.PeriodThisMonth, now)

	query, args, err := buildArtistBookingsQuery(filter, false).ToSql()
	require.NoError(t, err)

	assert.Contains(t, query, "b.appointment_date >= $2")
	assert.Contains(t, query, "b.appointment_date <= $3")
	assert.Contains(t, query, "b.status = $4")
	assert.Contains(t, query, "ORDER BY b.amount DESC")
	assert.NotContains(t, query, "FOR UPDATE")
	assert.Equal(t, []interface{}{
		int64(5),
		time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC),
		"pending",
	}, args)
}

func TestBuildArtistBookingsQuery_Sorts(t *testing.T) {
	tests := []struct {
		sort domain.BookingSort
		want string
	}{
		{domain.SortDateDesc, "ORDER BY b.appointment_date DESC, b.start_time DESC"},
		{domain.SortDateAsc, "ORDER BY b.appointment_date ASC, b.start_time ASC"},
		{domain.SortCustomerName, "ORDER BY u.username ASC"},
		{domain.SortAmountDesc, "ORDER BY b.amount DESC"},
	}

	for _, tt := range tests {
		t.Run(string(tt.sort), func(t *testing.T) {
			filter := domain.ArtistBookingsFilter{ArtistID: 1, IncludeCancelled: true, Sort: tt.sort}
			query, args, err := buildArtistBookingsQuery(filter, false).ToSql()
			require.NoError(t, err)
			assert.Contains(t, query, tt.want)
			assert.NotContains(t, query, "b.status")
			assert.Equal(t, []interface{}{int64(1)}, args)
		})
	}
}

func TestBuildCountQuery(t *testing.T) {
	query, args, err := buildCountQuery(domain.ArtistBookingsFilter{ArtistID: 9}).ToSql()
	require.NoError(t, err)

	assert.Contains(t, query, "SELECT COUNT(*) FROM bookings b")
	assert.NotContains(t, query, "ORDER BY")
	assert.Equal(t, []interface{}{int64(9), "cancelled"}, args)
}

func TestBuildStatsQuery(t *testing.T) {
	since := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)

	query, args, err := buildStatsQuery(3, &since, nil).ToSql()
	require.NoError(t, err)

	assert.Contains(t, query, "FILTER (WHERE status = 'completed')")
	assert.Contains(t, query, "WHERE artist_id = $1 AND appointment_date >= $2")
	assert.NotContains(t, query, "appointment_date <=")
	assert.Equal(t, []interface{}{int64(3), since}, args)
}

func TestBuildStatsQuery_BoundedPeriod(t *testing.T) {
	first := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)
	last := time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC)

	query, args, err := buildStatsQuery(3, &first, &last).ToSql()
	require.NoError(t, err)

	assert.Contains(t, query, "WHERE artist_id = $1 AND appointment_date >= $2 AND appointment_date <= $3")
	assert.Equal(t, []interface{}{int64(3), first, last}, args)

	query, args, err = buildStatsQuery(3, nil, nil).ToSql()
	require.NoError(t, err)
	assert.NotContains(t, query, "appointment_date")
	assert.Equal(t, []interface{}{int64(3)}, args)
}
