package bookings

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ArtistScheduling/internal/domain"
	artistRepo "github.com/m04kA/SMC-ArtistScheduling/internal/infra/storage/artist"
	bookingRepo "github.com/m04kA/SMC-ArtistScheduling/internal/infra/storage/booking"
	"github.com/m04kA/SMC-ArtistScheduling/internal/service/bookings/models"
	"github.com/m04kA/SMC-ArtistScheduling/pkg/dbmetrics"
	"github.com/m04kA/SMC-ArtistScheduling/pkg/logger"
	"github.com/m04kA/SMC-ArtistScheduling/pkg/txmanager"
	"github.com/m04kA/SMC-ArtistScheduling/pkg/types"
)

const (
	testArtistID     int64 = 10
	testArtistUserID int64 = 100
	testCustomerID   int64 = 200
	testStrangerID   int64 = 300
)

type fakeBookingRepo struct {
	bookings  map[int64]*domain.Booking
	updateErr error
	filters   []domain.ArtistBookingsFilter
}

func (r *fakeBookingRepo) get(id int64) (*domain.Booking, error) {
	b, ok := r.bookings[id]
	if !ok {
		return nil, bookingRepo.ErrBookingNotFound
	}
	cp := *b
	return &cp, nil
}

func (r *fakeBookingRepo) GetByID(_ context.Context, id int64) (*domain.Booking, error) {
	return r.get(id)
}

func (r *fakeBookingRepo) GetByIDForUpdate(_ context.Context, id int64) (*domain.Booking, error) {
	return r.get(id)
}

func (r *fakeBookingRepo) GetByCustomerID(_ context.Context, customerID int64, status *domain.BookingStatus) ([]*domain.Booking, error) {
	var out []*domain.Booking
	for _, b := range r.bookings {
		if b.CustomerID != customerID {
			continue
		}
		if status != nil && b.Status != *status {
			continue
		}
		out = append(out, b)
	}
	return out, nil
}

func (r *fakeBookingRepo) GetByArtistWithFilter(_ context.Context, filter domain.ArtistBookingsFilter) ([]*domain.Booking, error) {
	r.filters = append(r.filters, filter)
	var out []*domain.Booking
	for _, b := range r.bookings {
		if b.ArtistID == filter.ArtistID {
			out = append(out, b)
		}
	}
	return out, nil
}

func (r *fakeBookingRepo) CountByArtist(_ context.Context, filter domain.ArtistBookingsFilter) (int, error) {
	count := 0
	for _, b := range r.bookings {
		if b.ArtistID != filter.ArtistID {
			continue
		}
		if filter.Status != nil && b.Status != *filter.Status {
			continue
		}
		count++
	}
	return count, nil
}

func (r *fakeBookingRepo) GetArtistStats(_ context.Context, artistID int64, from, to *time.Time) (*domain.ArtistStats, error) {
	stats := &domain.ArtistStats{}
	for _, b := range r.bookings {
		if b.ArtistID != artistID {
			continue
		}
		if from != nil && b.AppointmentDate.Before(*from) {
			continue
		}
		if to != nil && b.AppointmentDate.After(*to) {
			continue
		}
		stats.Total++
		switch b.Status {
		case domain.StatusPending:
			stats.Pending++
		case domain.StatusConfirmed:
			stats.Confirmed++
		case domain.StatusCompleted:
			stats.Completed++
			stats.CompletedRevenue += b.Amount
		case domain.StatusCancelled:
			stats.Cancelled++
		}
	}
	return stats, nil
}

func (r *fakeBookingRepo) GetCustomerInsights(context.Context, int64, time.Time) (*domain.CustomerInsights, error) {
	return &domain.CustomerInsights{
		RepeatCustomers: 1,
		NewCustomers:    2,
		TopCustomer:     &domain.TopCustomer{CustomerID: testCustomerID, Name: "asha", BookingsCount: 3},
	}, nil
}

func (r *fakeBookingRepo) UpdateStatus(_ context.Context, id int64, from, to domain.BookingStatus) error {
	if r.updateErr != nil {
		return r.updateErr
	}
	b, ok := r.bookings[id]
	if !ok {
		return bookingRepo.ErrBookingNotFound
	}
	if b.Status != from {
		return bookingRepo.ErrStatusChanged
	}
	b.Status = to
	return nil
}

type fakeArtistRepo struct {
	artists map[int64]*domain.Artist
}

func (r *fakeArtistRepo) GetByID(_ context.Context, id int64) (*domain.Artist, error) {
	a, ok := r.artists[id]
	if !ok {
		return nil, artistRepo.ErrArtistNotFound
	}
	return a, nil
}

type fakeCache struct {
	invalidated []time.Time
}

func (c *fakeCache) Invalidate(_ context.Context, _ int64, dates ...time.Time) error {
	c.invalidated = append(c.invalidated, dates...)
	return nil
}

type inlineTx struct{}

func (inlineTx) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type unreachableDB struct {
	err error
}

func (d unreachableDB) BeginTx(context.Context, *sql.TxOptions) (dbmetrics.TxExecutor, error) {
	return nil, d.err
}

type brokenCommitTx struct {
	dbmetrics.DBExecutor
	err error
}

func (t brokenCommitTx) Commit() error   { return t.err }
func (t brokenCommitTx) Rollback() error { return nil }

type brokenCommitDB struct {
	err error
}

func (d brokenCommitDB) BeginTx(context.Context, *sql.TxOptions) (dbmetrics.TxExecutor, error) {
	return brokenCommitTx{err: d.err}, nil
}

type fakeMetrics struct {
	transitions []string
}

func (m *fakeMetrics) RecordBookingTransition(from, to string) {
	m.transitions = append(m.transitions, from+"->"+to)
}

type fixedTime struct{ now time.Time }

func (f fixedTime) Now() time.Time { return f.now }

type fixture struct {
	svc      *Service
	bookings *fakeBookingRepo
	cache    *fakeCache
	metrics  *fakeMetrics
}

func newFixture(bookings ...*domain.Booking) *fixture {
	repo := &fakeBookingRepo{bookings: map[int64]*domain.Booking{}}
	for _, b := range bookings {
		repo.bookings[b.ID] = b
	}
	artists := &fakeArtistRepo{artists: map[int64]*domain.Artist{
		testArtistID: {ID: testArtistID, UserID: testArtistUserID, Status: domain.ArtistStatusApproved},
	}}
	cache := &fakeCache{}
	m := &fakeMetrics{}

	svc := NewService(repo, artists, cache, inlineTx{}, m, logger.Nop()).
		WithTimeProvider(fixedTime{now: time.Date(2024, 3, 14, 12, 0, 0, 0, time.UTC)})

	return &fixture{svc: svc, bookings: repo, cache: cache, metrics: m}
}

func pendingBooking(id int64) *domain.Booking {
	return &domain.Booking{
		ID:              id,
		CustomerID:      testCustomerID,
		ArtistID:        testArtistID,
		AppointmentDate: time.Date(2024, 3, 20, 0, 0, 0, 0, time.UTC),
		StartTime:       types.MustTimeString("11:00"),
		EndTime:         types.MustTimeString("13:00"),
		Status:          domain.StatusPending,
		Amount:          500,
	}
}

func TestChangeStatus_Lifecycle(t *testing.T) {
	f := newFixture(pendingBooking(1))
	ctx := context.Background()

	resp, err := f.svc.ChangeStatus(ctx, &models.ChangeStatusRequest{BookingID: 1, UserID: testArtistUserID, Event: "accept"})
	require.NoError(t, err)
	assert.Equal(t, "confirmed", resp.Status)

	resp, err = f.svc.ChangeStatus(ctx, &models.ChangeStatusRequest{BookingID: 1, UserID: testArtistUserID, Event: "complete"})
	require.NoError(t, err)
	assert.Equal(t, "completed", resp.Status)

	_, err = f.svc.ChangeStatus(ctx, &models.ChangeStatusRequest{BookingID: 1, UserID: testArtistUserID, Event: "accept"})
	require.ErrorIs(t, err, ErrInvalidTransition)
	assert.Equal(t, domain.StatusCompleted, f.bookings.bookings[1].Status)

	assert.Equal(t, []string{"pending->confirmed", "confirmed->completed"}, f.metrics.transitions)
	assert.Empty(t, f.cache.invalidated)
}

func TestChangeStatus_CancelInvalidatesSlotCache(t *testing.T) {
	booking := pendingBooking(1)
	f := newFixture(booking)

	resp, err := f.svc.ChangeStatus(context.Background(), &models.ChangeStatusRequest{BookingID: 1, UserID: testCustomerID, Event: "cancel"})
	require.NoError(t, err)
	assert.Equal(t, "cancelled", resp.Status)
	require.Len(t, f.cache.invalidated, 1)
	assert.True(t, domain.SameDay(booking.AppointmentDate, f.cache.invalidated[0]))
}

func TestChangeStatus_CustomerCannotAccept(t *testing.T) {
	f := newFixture(pendingBooking(1))

	_, err := f.svc.ChangeStatus(context.Background(), &models.ChangeStatusRequest{BookingID: 1, UserID: testCustomerID, Event: "accept"})
	require.ErrorIs(t, err, ErrAccessDenied)
	assert.Equal(t, domain.StatusPending, f.bookings.bookings[1].Status)
}

func TestChangeStatus_StrangerDenied(t *testing.T) {
	f := newFixture(pendingBooking(1))

	_, err := f.svc.ChangeStatus(context.Background(), &models.ChangeStatusRequest{BookingID: 1, UserID: testStrangerID, Event: "cancel"})
	require.ErrorIs(t, err, ErrAccessDenied)
}

func TestChangeStatus_Errors(t *testing.T) {
	tests := []struct {
		name    string
		req     models.ChangeStatusRequest
		wantErr error
	}{
		{"unknown event", models.ChangeStatusRequest{BookingID: 1, UserID: testArtistUserID, Event: "archive"}, ErrInvalidInput},
		{"missing booking", models.ChangeStatusRequest{BookingID: 99, UserID: testArtistUserID, Event: "accept"}, ErrBookingNotFound},
		{"complete from pending", models.ChangeStatusRequest{BookingID: 1, UserID: testArtistUserID, Event: "complete"}, ErrInvalidTransition},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(pendingBooking(1))
			_, err := f.svc.ChangeStatus(context.Background(), &tt.req)
			require.ErrorIs(t, err, tt.wantErr)
			assert.Equal(t, domain.StatusPending, f.bookings.bookings[1].Status)
		})
	}
}

func TestChangeStatus_ConcurrentChangeIsInvalidTransition(t *testing.T) {
	f := newFixture(pendingBooking(1))
	f.bookings.updateErr = bookingRepo.ErrStatusChanged

	_, err := f.svc.ChangeStatus(context.Background(), &models.ChangeStatusRequest{BookingID: 1, UserID: testArtistUserID, Event: "accept"})
	require.ErrorIs(t, err, ErrInvalidTransition)
}

func TestChangeStatus_StorageErrors(t *testing.T) {
	f := newFixture(pendingBooking(1))
	f.bookings.updateErr = errors.New("connection reset")

	_, err := f.svc.ChangeStatus(context.Background(), &models.ChangeStatusRequest{BookingID: 1, UserID: testArtistUserID, Event: "accept"})
	require.ErrorIs(t, err, ErrStorageUnavailable)

	f.bookings.updateErr = context.DeadlineExceeded
	_, err = f.svc.ChangeStatus(context.Background(), &models.ChangeStatusRequest{BookingID: 1, UserID: testArtistUserID, Event: "accept"})
	require.ErrorIs(t, err, ErrStorageTimeout)
}

func TestChangeStatus_TransactionFailures(t *testing.T) {
	tests := []struct {
		name    string
		db      dbmetrics.TxBeginner
		wantErr error
	}{
		{"begin refused", unreachableDB{err: errors.New("dial tcp: connection refused")}, ErrStorageUnavailable},
		{"begin timed out", unreachableDB{err: context.DeadlineExceeded}, ErrStorageTimeout},
		{"commit failed", brokenCommitDB{err: errors.New("driver: bad connection")}, ErrStorageUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			withTx := func() *fixture {
				f := newFixture(pendingBooking(1))
				f.svc.txManager = txmanager.New(tt.db, logger.Nop())
				return f
			}

			f := withTx()
			_, err := f.svc.ChangeStatus(context.Background(), &models.ChangeStatusRequest{BookingID: 1, UserID: testCustomerID, Event: "cancel"})
			require.ErrorIs(t, err, tt.wantErr)
			assert.Empty(t, f.metrics.transitions)
			assert.Empty(t, f.cache.invalidated)

			f = withTx()
			err = f.svc.SetStatus(context.Background(), 1, domain.StatusConfirmed)
			require.ErrorIs(t, err, tt.wantErr)
			assert.Empty(t, f.metrics.transitions)
		})
	}
}

func TestSetStatus(t *testing.T) {
	f := newFixture(pendingBooking(1))
	ctx := context.Background()

	require.NoError(t, f.svc.SetStatus(ctx, 1, domain.StatusConfirmed))
	assert.Equal(t, domain.StatusConfirmed, f.bookings.bookings[1].Status)

	err := f.svc.SetStatus(ctx, 1, domain.StatusPending)
	require.ErrorIs(t, err, ErrInvalidTransition)
	assert.Equal(t, domain.StatusConfirmed, f.bookings.bookings[1].Status)

	require.ErrorIs(t, f.svc.SetStatus(ctx, 42, domain.StatusCancelled), ErrBookingNotFound)
}

func TestGetByID_Access(t *testing.T) {
	f := newFixture(pendingBooking(1))
	ctx := context.Background()

	resp, err := f.svc.GetByID(ctx, 1, testCustomerID)
	require.NoError(t, err)
	assert.Equal(t, "2024-03-20", resp.AppointmentDate)
	assert.Equal(t, "11:00", resp.StartTime)

	_, err = f.svc.GetByID(ctx, 1, testArtistUserID)
	require.NoError(t, err)

	_, err = f.svc.GetByID(ctx, 1, testStrangerID)
	require.ErrorIs(t, err, ErrAccessDenied)

	_, err = f.svc.GetByID(ctx, 2, testCustomerID)
	require.ErrorIs(t, err, ErrBookingNotFound)
}

func TestGetCustomerBookings(t *testing.T) {
	f := newFixture(pendingBooking(1), pendingBooking(2))
	ctx := context.Background()

	resp, err := f.svc.GetCustomerBookings(ctx, &models.GetCustomerBookingsRequest{UserID: testCustomerID, CustomerID: testCustomerID})
	require.NoError(t, err)
	assert.Equal(t, 2, resp.Total)

	_, err = f.svc.GetCustomerBookings(ctx, &models.GetCustomerBookingsRequest{UserID: testStrangerID, CustomerID: testCustomerID})
	require.ErrorIs(t, err, ErrAccessDenied)

	bad := "archived"
	_, err = f.svc.GetCustomerBookings(ctx, &models.GetCustomerBookingsRequest{UserID: testCustomerID, CustomerID: testCustomerID, Status: &bad})
	require.ErrorIs(t, err, ErrInvalidInput)
}

func TestGetArtistBookings_AppliesPeriod(t *testing.T) {
	f := newFixture(pendingBooking(1))

	resp, err := f.svc.GetArtistBookings(context.Background(), &models.GetArtistBookingsRequest{
		UserID:   testArtistUserID,
		ArtistID: testArtistID,
		Period:   "today",
	})
	require.NoError(t, err)
	assert.Equal(t, 1, resp.Total)

	require.Len(t, f.bookings.filters, 1)
	filter := f.bookings.filters[0]
	require.NotNil(t, filter.From)
	require.NotNil(t, filter.To)
	assert.Equal(t, "2024-03-14", filter.From.Format(domain.DateFormat))
	assert.True(t, filter.IsSingleDate())
	assert.Equal(t, domain.SortDateDesc, filter.Sort)
}

func TestGetArtistBookings_OwnerOnly(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	_, err := f.svc.GetArtistBookings(ctx, &models.GetArtistBookingsRequest{UserID: testCustomerID, ArtistID: testArtistID})
	require.ErrorIs(t, err, ErrAccessDenied)

	_, err = f.svc.GetArtistBookings(ctx, &models.GetArtistBookingsRequest{UserID: testArtistUserID, ArtistID: 999})
	require.ErrorIs(t, err, ErrArtistNotFound)

	_, err = f.svc.GetArtistBookings(ctx, &models.GetArtistBookingsRequest{UserID: testArtistUserID, ArtistID: testArtistID, Sort: "random"})
	require.ErrorIs(t, err, ErrInvalidInput)
}

func TestGetArtistStats(t *testing.T) {
	completed := pendingBooking(2)
	completed.Status = domain.StatusCompleted
	completed.Amount = 1500

	f := newFixture(pendingBooking(1), completed)

	resp, err := f.svc.GetArtistStats(context.Background(), &models.GetArtistStatsRequest{UserID: testArtistUserID, ArtistID: testArtistID})
	require.NoError(t, err)

	assert.Equal(t, "all", resp.Period)
	assert.Equal(t, 2, resp.Total)
	assert.Equal(t, 1, resp.Pending)
	assert.Equal(t, 1, resp.Completed)
	assert.InDelta(t, 50.0, resp.CompletionRate, 0.001)
	assert.InDelta(t, 1500.0, resp.CompletedRevenue, 0.001)
	assert.Equal(t, 1, resp.PendingRequests)
	assert.Equal(t, 2, resp.NewCustomers)
	require.NotNil(t, resp.TopCustomer)
	assert.Equal(t, testCustomerID, resp.TopCustomer.CustomerID)
}

func TestGetArtistStats_PeriodBounds(t *testing.T) {
	inMonth := pendingBooking(1)
	inMonth.Status = domain.StatusCompleted
	inMonth.Amount = 800

	nextMonth := pendingBooking(2)
	nextMonth.AppointmentDate = time.Date(2024, 4, 2, 0, 0, 0, 0, time.UTC)

	lastMonth := pendingBooking(3)
	lastMonth.AppointmentDate = time.Date(2024, 2, 28, 0, 0, 0, 0, time.UTC)

	today := pendingBooking(4)
	today.AppointmentDate = time.Date(2024, 3, 14, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		period        string
		wantTotal     int
		wantCompleted int
		wantRate      float64
	}{
		{"this_month", 2, 1, 50},
		{"today", 1, 0, 0},
		{"all", 4, 1, 25},
	}

	for _, tt := range tests {
		t.Run(tt.period, func(t *testing.T) {
			f := newFixture(inMonth, nextMonth, lastMonth, today)

			resp, err := f.svc.GetArtistStats(context.Background(), &models.GetArtistStatsRequest{
				UserID:   testArtistUserID,
				ArtistID: testArtistID,
				Period:   tt.period,
			})
			require.NoError(t, err)

			assert.Equal(t, tt.wantTotal, resp.Total)
			assert.Equal(t, tt.wantCompleted, resp.Completed)
			assert.InDelta(t, tt.wantRate, resp.CompletionRate, 0.001)
		})
	}
}

func TestGetArtistBookings_AllStatuses(t *testing.T) {
	cancelled := pendingBooking(2)
	cancelled.Status = domain.StatusCancelled
	f := newFixture(pendingBooking(1), cancelled)

	all := models.StatusFilterAll
	_, err := f.svc.GetArtistBookings(context.Background(), &models.GetArtistBookingsRequest{
		UserID:           testArtistUserID,
		ArtistID:         testArtistID,
		Status:           &all,
		IncludeCancelled: true,
	})
	require.NoError(t, err)

	require.Len(t, f.bookings.filters, 1)
	assert.Nil(t, f.bookings.filters[0].Status)
	assert.True(t, f.bookings.filters[0].IncludeCancelled)
}
