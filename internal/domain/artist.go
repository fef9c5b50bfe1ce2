package domain

import (
	"regexp"
	"strconv"
	"time"
)

// ArtistStatus is the moderation state of an artist profile
type ArtistStatus string

const (
	ArtistStatusPending   ArtistStatus = "pending"
	ArtistStatusApproved  ArtistStatus = "approved"
	ArtistStatusRejected  ArtistStatus = "rejected"
	ArtistStatusSuspended ArtistStatus = "suspended"
)

// Artist is the profile behind a user account that offers bookings
type Artist struct {
	ID         int64
	UserID     int64
	Name       string
	PriceRange *string
	Status     ArtistStatus
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// IsBookable returns true if customers may book this artist
func (a *Artist) IsBookable() bool {
	return a.Status == ArtistStatusApproved
}

var priceNumber = regexp.MustCompile(`\d+(\.\d+)?`)

// MinPrice extracts the lower bound of a price range like "₹500-1500".
// Returns 0 if the range is missing or has no number.
func (a *Artist) MinPrice() float64 {
	if a.PriceRange == nil {
		return 0
	}
	match := priceNumber.FindString(*a.PriceRange)
	if match == "" {
		return 0
	}
	v, err := strconv.ParseFloat(match, 64)
	if err != nil {
		return 0
	}
	return v
}

// NotificationPreferences are the artist's notification toggles
type NotificationPreferences struct {
	NewBookings bool
	NewMessages bool
	NewReviews  bool
	Email       bool
	SMS         bool
	Reminders   bool
}

// ArtistSettings are the scheduling rules of one artist
type ArtistSettings struct {
	ArtistID                int64
	SlotGranularityMinutes  int
	DefaultDurationMinutes  int
	BufferMinutes           int
	AdvanceBookingDays      int // 0 = unlimited
	MinBookingNoticeMinutes int
	AutoAcceptBookings      bool
	RequireDeposit          bool
	Notifications           NotificationPreferences
	CreatedAt               time.Time
	UpdatedAt               time.Time
}

// DefaultArtistSettings returns settings used when the artist saved none
func DefaultArtistSettings(artistID int64) *ArtistSettings {
	return &ArtistSettings{
		ArtistID:                artistID,
		SlotGranularityMinutes:  DefaultSlotGranularityMinutes,
		DefaultDurationMinutes:  DefaultDurationMinutes,
		BufferMinutes:           DefaultBufferMinutes,
		AdvanceBookingDays:      DefaultAdvanceBookingDays,
		MinBookingNoticeMinutes: DefaultMinBookingNoticeMinutes,
		Notifications: NotificationPreferences{
			NewBookings: true,
			NewMessages: true,
			NewReviews:  true,
			Email:       true,
			SMS:         false,
			Reminders:   true,
		},
	}
}

// HasAdvanceBookingLimit returns true if bookings are limited to a horizon
func (s *ArtistSettings) HasAdvanceBookingLimit() bool {
	return s.AdvanceBookingDays > 0
}
