package domain

import (
	"fmt"
	"time"
)

// BookingPeriod is a relative date window for artist booking lists
type BookingPeriod string

const (
	PeriodAll        BookingPeriod = "all"
	PeriodToday      BookingPeriod = "today"
	PeriodThisWeek   BookingPeriod = "this_week"
	PeriodThisMonth  BookingPeriod = "this_month"
	PeriodLast30Days BookingPeriod = "last_30_days"
)

// BookingSort is the order of artist booking lists
type BookingSort string

const (
	SortDateDesc     BookingSort = "date_desc"
	SortDateAsc      BookingSort = "date_asc"
	SortCustomerName BookingSort = "customer_name"
	SortAmountDesc   BookingSort = "amount_desc"
)

// ParseBookingPeriod accepts an empty string as PeriodAll
func ParseBookingPeriod(s string) (BookingPeriod, error) {
	switch p := BookingPeriod(s); p {
	case "":
		return PeriodAll, nil
	case PeriodAll, PeriodToday, PeriodThisWeek, PeriodThisMonth, PeriodLast30Days:
		return p, nil
	}
	return "", fmt.Errorf("unknown period %q", s)
}

// ParseBookingSort accepts an empty string as SortDateDesc
func ParseBookingSort(s string) (BookingSort, error) {
	switch o := BookingSort(s); o {
	case "":
		return SortDateDesc, nil
	case SortDateDesc, SortDateAsc, SortCustomerName, SortAmountDesc:
		return o, nil
	}
	return "", fmt.Errorf("unknown sort %q", s)
}

// Bounds converts the period into an inclusive date range relative to now.
// A nil bound means unlimited.
func (p BookingPeriod) Bounds(now time.Time) (from, to *time.Time) {
	today := DateOnly(now)
	switch p {
	case PeriodToday:
		return &today, &today
	case PeriodThisWeek:
		// Weeks start on Monday
		offset := (int(today.Weekday()) + 6) % 7
		monday := today.AddDate(0, 0, -offset)
		return &monday, nil
	case PeriodThisMonth:
		first := time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, today.Location())
		last := first.AddDate(0, 1, -1)
		return &first, &last
	case PeriodLast30Days:
		start := today.AddDate(0, 0, -30)
		return &start, nil
	default:
		return nil, nil
	}
}

// ArtistBookingsFilter selects bookings of one artist
type ArtistBookingsFilter struct {
	ArtistID int64          // Обязательный параметр
	Status   *BookingStatus // nil = все статусы
	// Either Date or From/To; Date wins when both are set
	Date             *time.Time
	From             *time.Time
	To               *time.Time
	IncludeCancelled bool
	Sort             BookingSort
}

// IsSingleDate returns true if the filter targets exactly one date
func (f ArtistBookingsFilter) IsSingleDate() bool {
	if f.Date != nil {
		return true
	}
	return f.From != nil && f.To != nil && SameDay(*f.From, *f.To)
}

// ApplyPeriod fills From/To from a relative period
func (f *ArtistBookingsFilter) ApplyPeriod(p BookingPeriod, now time.Time) {
	f.From, f.To = p.Bounds(now)
}
