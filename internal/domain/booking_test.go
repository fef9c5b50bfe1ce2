package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNextStatus_AllowedTransitions(t *testing.T) {
	tests := []struct {
		from  BookingStatus
		event BookingEvent
		want  BookingStatus
	}{
		{StatusPending, EventAccept, StatusConfirmed},
		{StatusPending, EventReject, StatusCancelled},
		{StatusPending, EventCancel, StatusCancelled},
		{StatusConfirmed, EventComplete, StatusCompleted},
		{StatusConfirmed, EventCancel, StatusCancelled},
	}

	for _, tt := range tests {
		t.Run(string(tt.from)+"/"+string(tt.event), func(t *testing.T) {
			got, err := NextStatus(tt.from, tt.event)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.True(t, CanTransition(tt.from, tt.want))
		})
	}
}

func TestNextStatus_RejectsEverythingElse(t *testing.T) {
	allowed := map[BookingStatus]map[BookingEvent]bool{
		StatusPending:   {EventAccept: true, EventReject: true, EventCancel: true},
		StatusConfirmed: {EventComplete: true, EventCancel: true},
	}

	for _, from := range AllBookingStatuses {
		for _, event := range AllBookingEvents {
			if allowed[from][event] {
				continue
			}
			got, err := NextStatus(from, event)
			assert.ErrorIs(t, err, ErrInvalidTransition, "%s on %s", event, from)
			assert.Equal(t, from, got, "status must stay unchanged")
		}
	}
}

func TestCanTransition_TerminalStates(t *testing.T) {
	for _, from := range []BookingStatus{StatusCompleted, StatusCancelled} {
		assert.True(t, from.IsTerminal())
		for _, to := range AllBookingStatuses {
			assert.False(t, CanTransition(from, to), "%s -> %s", from, to)
		}
	}
	assert.False(t, CanTransition(StatusPending, StatusCompleted))
	assert.False(t, CanTransition(StatusConfirmed, StatusPending))
}

func TestBookingEvent_AllowedFor(t *testing.T) {
	assert.True(t, EventAccept.AllowedFor(RoleArtist))
	assert.False(t, EventAccept.AllowedFor(RoleCustomer))
	assert.False(t, EventReject.AllowedFor(RoleCustomer))
	assert.False(t, EventComplete.AllowedFor(RoleCustomer))
	assert.True(t, EventCancel.AllowedFor(RoleCustomer))
	assert.True(t, EventCancel.AllowedFor(RoleArtist))
}

func TestBooking_RoleOf(t *testing.T) {
	b := &Booking{CustomerID: 7, ArtistID: 3}

	role, ok := b.RoleOf(7, 42)
	require.True(t, ok)
	assert.Equal(t, RoleCustomer, role)

	role, ok = b.RoleOf(42, 42)
	require.True(t, ok)
	assert.Equal(t, RoleArtist, role)

	_, ok = b.RoleOf(99, 42)
	assert.False(t, ok)
}

func TestParseBookingEvent(t *testing.T) {
	e, err := ParseBookingEvent("complete")
	require.NoError(t, err)
	assert.Equal(t, EventComplete, e)

	_, err = ParseBookingEvent("approve")
	assert.Error(t, err)
}

func TestArtist_MinPrice(t *testing.T) {
	price := func(s string) *string { return &s }

	assert.Equal(t, 500.0, (&Artist{PriceRange: price("₹500-1500")}).MinPrice())
	assert.Equal(t, 1200.0, (&Artist{PriceRange: price("1200 - 2000")}).MinPrice())
	assert.Equal(t, 0.0, (&Artist{PriceRange: price("on request")}).MinPrice())
	assert.Equal(t, 0.0, (&Artist{}).MinPrice())
}
