package domain

// ArtistStats are booking aggregates for one artist
type ArtistStats struct {
	Total     int
	Pending   int
	Confirmed int
	Completed int
	Cancelled int
	// Sum of amounts of completed bookings
	CompletedRevenue float64
	// Mean amount over bookings with a positive amount
	AverageAmount float64
}

// CompletionRate returns completed/total*100, or 0 when there are no bookings
func (s *ArtistStats) CompletionRate() float64 {
	if s.Total == 0 {
		return 0
	}
	return float64(s.Completed) / float64(s.Total) * 100
}

// TopCustomer is the customer with the most bookings
type TopCustomer struct {
	CustomerID    int64
	Name          string
	BookingsCount int
}

// CustomerInsights describe the artist's customer base
type CustomerInsights struct {
	RepeatCustomers int
	NewCustomers    int
	TopCustomer     *TopCustomer
}
