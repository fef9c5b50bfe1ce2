package domain

import (
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-ArtistScheduling/pkg/types"
)

// BookingStatus represents the lifecycle state of a booking
type BookingStatus string

const (
	StatusPending   BookingStatus = "pending"
	StatusConfirmed BookingStatus = "confirmed"
	StatusCompleted BookingStatus = "completed"
	StatusCancelled BookingStatus = "cancelled"
)

// BookingEvent is an action that moves a booking between statuses
type BookingEvent string

const (
	EventAccept   BookingEvent = "accept"
	EventReject   BookingEvent = "reject"
	EventComplete BookingEvent = "complete"
	EventCancel   BookingEvent = "cancel"
)

// ActorRole is the relation of the caller to a booking
type ActorRole string

const (
	RoleCustomer ActorRole = "customer"
	RoleArtist   ActorRole = "artist"
)

// ErrInvalidTransition is returned for a (status, event) pair outside the state machine
var ErrInvalidTransition = errors.New("domain: invalid booking status transition")

// transitions is the complete booking state machine.
// completed and cancelled have no outgoing edges.
var transitions = map[BookingStatus]map[BookingEvent]BookingStatus{
	StatusPending: {
		EventAccept: StatusConfirmed,
		EventReject: StatusCancelled,
		EventCancel: StatusCancelled,
	},
	StatusConfirmed: {
		EventComplete: StatusCompleted,
		EventCancel:   StatusCancelled,
	},
}

// eventActors lists who may trigger each event
var eventActors = map[BookingEvent][]ActorRole{
	EventAccept:   {RoleArtist},
	EventReject:   {RoleArtist},
	EventComplete: {RoleArtist},
	EventCancel:   {RoleCustomer, RoleArtist},
}

// AllBookingStatuses in lifecycle order
var AllBookingStatuses = []BookingStatus{StatusPending, StatusConfirmed, StatusCompleted, StatusCancelled}

// AllBookingEvents known to the state machine
var AllBookingEvents = []BookingEvent{EventAccept, EventReject, EventComplete, EventCancel}

// Booking represents a reservation of an artist's time by a customer
type Booking struct {
	ID              int64
	CustomerID      int64
	ArtistID        int64
	AppointmentDate time.Time
	StartTime       types.TimeString
	EndTime         types.TimeString
	Status          BookingStatus
	Amount          float64
	Notes           *string

	// Filled by list queries that join users
	CustomerName string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// TimeRange returns the occupied interval of the booking
func (b *Booking) TimeRange() TimeRange {
	return TimeRange{Start: b.StartTime, End: b.EndTime}
}

// IsActive returns true if the booking still occupies the artist's calendar
func (b *Booking) IsActive() bool {
	return b.Status != StatusCancelled
}

// IsTerminal returns true if no further transitions are possible
func (b *Booking) IsTerminal() bool {
	return b.Status.IsTerminal()
}

// RoleOf reports how userID relates to the booking.
// artistUserID is the user account behind the booking's artist.
func (b *Booking) RoleOf(userID, artistUserID int64) (ActorRole, bool) {
	switch userID {
	case artistUserID:
		return RoleArtist, true
	case b.CustomerID:
		return RoleCustomer, true
	default:
		return "", false
	}
}

func (s BookingStatus) IsValid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

func (s BookingStatus) IsTerminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

// ParseBookingStatus converts user input into a status
func ParseBookingStatus(s string) (BookingStatus, error) {
	status := BookingStatus(s)
	if !status.IsValid() {
		return "", fmt.Errorf("unknown booking status %q", s)
	}
	return status, nil
}

func (e BookingEvent) IsValid() bool {
	_, ok := eventActors[e]
	return ok
}

// ParseBookingEvent converts user input into an event
func ParseBookingEvent(s string) (BookingEvent, error) {
	event := BookingEvent(s)
	if !event.IsValid() {
		return "", fmt.Errorf("unknown booking event %q", s)
	}
	return event, nil
}

// AllowedFor reports whether the role may trigger the event
func (e BookingEvent) AllowedFor(role ActorRole) bool {
	for _, r := range eventActors[e] {
		if r == role {
			return true
		}
	}
	return false
}

// NextStatus applies event to from
func NextStatus(from BookingStatus, event BookingEvent) (BookingStatus, error) {
	to, ok := transitions[from][event]
	if !ok {
		return from, fmt.Errorf("%w: %s on %s", ErrInvalidTransition, event, from)
	}
	return to, nil
}

// CanTransition reports whether some event moves from into to
func CanTransition(from, to BookingStatus) bool {
	for _, target := range transitions[from] {
		if target == to {
			return true
		}
	}
	return false
}
