package bookings

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-ArtistScheduling/internal/domain"
	artistRepo "github.com/m04kA/SMC-ArtistScheduling/internal/infra/storage/artist"
	bookingRepo "github.com/m04kA/SMC-ArtistScheduling/internal/infra/storage/booking"
	"github.com/m04kA/SMC-ArtistScheduling/internal/service/bookings/models"
)

// newCustomersWindowDays окно, за которое клиент считается новым
const newCustomersWindowDays = 30

// Service сервис для работы с бронированиями: чтение, статистика и переходы статусов
type Service struct {
	bookingRepo  BookingRepository
	artistRepo   ArtistRepository
	slotCache    SlotCache
	txManager    TransactionManager
	metrics      Metrics
	timeProvider TimeProvider
	logger       Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	bookingRepo BookingRepository,
	artistRepo ArtistRepository,
	slotCache SlotCache,
	txManager TransactionManager,
	metrics Metrics,
	logger Logger,
) *Service {
	return &Service{
		bookingRepo:  bookingRepo,
		artistRepo:   artistRepo,
		slotCache:    slotCache,
		txManager:    txManager,
		metrics:      metrics,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// WithTimeProvider подменяет часы (для тестов)
func (s *Service) WithTimeProvider(tp TimeProvider) *Service {
	s.timeProvider = tp
	return s
}

// GetByID получает бронирование по ID.
// Видеть бронирование может только клиент или артист, к которому оно относится.
func (s *Service) GetByID(ctx context.Context, id int64, userID int64) (*models.BookingResponse, error) {
	s.logger.Info("GetByID: fetching booking id=%d for user=%d", id, userID)

	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("GetByID: booking id=%d not found", id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("GetByID: repository error for booking id=%d: %v", id, err)
		return nil, storageError("GetByID", err)
	}

	if _, err := s.resolveRole(ctx, booking, userID); err != nil {
		s.logger.Warn("GetByID: access denied for user=%d to booking id=%d", userID, id)
		return nil, err
	}

	return models.FromDomainBooking(booking), nil
}

// GetCustomerBookings получает историю бронирований клиента (новые сверху).
// Клиент видит только свои бронирования.
func (s *Service) GetCustomerBookings(ctx context.Context, req *models.GetCustomerBookingsRequest) (*models.BookingListResponse, error) {
	s.logger.Info("GetCustomerBookings: customer=%d, user=%d, status=%v", req.CustomerID, req.UserID, req.Status)

	if req.UserID != req.CustomerID {
		s.logger.Warn("GetCustomerBookings: user=%d tried to read bookings of customer=%d", req.UserID, req.CustomerID)
		return nil, ErrAccessDenied
	}

	var domainStatus *domain.BookingStatus
	if req.Status != nil {
		status, err := models.ToDomainBookingStatus(*req.Status)
		if err != nil {
			s.logger.Warn("GetCustomerBookings: invalid status=%s for customer=%d", *req.Status, req.CustomerID)
			return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
		}
		domainStatus = &status
	}

	bookings, err := s.bookingRepo.GetByCustomerID(ctx, req.CustomerID, domainStatus)
	if err != nil {
		s.logger.Error("GetCustomerBookings: repository error for customer=%d: %v", req.CustomerID, err)
		return nil, storageError("GetCustomerBookings", err)
	}

	s.logger.Info("GetCustomerBookings: fetched %d bookings for customer=%d", len(bookings), req.CustomerID)
	return models.FromDomainBookingList(bookings), nil
}

// GetArtistBookings получает бронирования артиста с фильтрацией и сортировкой.
// Доступно только самому артисту.
//
// Примеры использования:
// - Сегодняшние записи: Period = "today"
// - Ожидающие подтверждения: Status = "pending"
// - Все за месяц, по сумме: Period = "this_month", Sort = "amount_desc", IncludeCancelled = true
func (s *Service) GetArtistBookings(ctx context.Context, req *models.GetArtistBookingsRequest) (*models.BookingListResponse, error) {
	s.logger.Info("GetArtistBookings: artist=%d, user=%d, period=%q, sort=%q", req.ArtistID, req.UserID, req.Period, req.Sort)

	if err := s.checkArtistOwner(ctx, req.ArtistID, req.UserID); err != nil {
		return nil, err
	}

	filter, err := req.ToDomainFilter(s.timeProvider.Now())
	if err != nil {
		s.logger.Warn("GetArtistBookings: invalid filter for artist=%d: %v", req.ArtistID, err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	bookings, err := s.bookingRepo.GetByArtistWithFilter(ctx, filter)
	if err != nil {
		s.logger.Error("GetArtistBookings: repository error for artist=%d: %v", req.ArtistID, err)
		return nil, storageError("GetArtistBookings", err)
	}

	s.logger.Info("GetArtistBookings: fetched %d bookings for artist=%d", len(bookings), req.ArtistID)
	return models.FromDomainBookingList(bookings), nil
}

// GetArtistStats считает агрегаты по бронированиям артиста за период
func (s *Service) GetArtistStats(ctx context.Context, req *models.GetArtistStatsRequest) (*models.ArtistStatsResponse, error) {
	s.logger.Info("GetArtistStats: artist=%d, user=%d, period=%q", req.ArtistID, req.UserID, req.Period)

	if err := s.checkArtistOwner(ctx, req.ArtistID, req.UserID); err != nil {
		return nil, err
	}

	period, err := domain.ParseBookingPeriod(req.Period)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	now := s.timeProvider.Now()
	from, to := period.Bounds(now)

	stats, err := s.bookingRepo.GetArtistStats(ctx, req.ArtistID, from, to)
	if err != nil {
		s.logger.Error("GetArtistStats: stats query failed for artist=%d: %v", req.ArtistID, err)
		return nil, storageError("GetArtistStats", err)
	}

	todayFilter := domain.ArtistBookingsFilter{ArtistID: req.ArtistID}
	todayFilter.ApplyPeriod(domain.PeriodToday, now)
	today, err := s.bookingRepo.CountByArtist(ctx, todayFilter)
	if err != nil {
		s.logger.Error("GetArtistStats: today count failed for artist=%d: %v", req.ArtistID, err)
		return nil, storageError("GetArtistStats", err)
	}

	pendingStatus := domain.StatusPending
	pending, err := s.bookingRepo.CountByArtist(ctx, domain.ArtistBookingsFilter{ArtistID: req.ArtistID, Status: &pendingStatus})
	if err != nil {
		s.logger.Error("GetArtistStats: pending count failed for artist=%d: %v", req.ArtistID, err)
		return nil, storageError("GetArtistStats", err)
	}

	insights, err := s.bookingRepo.GetCustomerInsights(ctx, req.ArtistID, domain.DateOnly(now).AddDate(0, 0, -newCustomersWindowDays))
	if err != nil {
		s.logger.Error("GetArtistStats: customer insights failed for artist=%d: %v", req.ArtistID, err)
		return nil, storageError("GetArtistStats", err)
	}

	resp := &models.ArtistStatsResponse{
		ArtistID:         req.ArtistID,
		Period:           string(period),
		Total:            stats.Total,
		Pending:          stats.Pending,
		Confirmed:        stats.Confirmed,
		Completed:        stats.Completed,
		Cancelled:        stats.Cancelled,
		CompletionRate:   stats.CompletionRate(),
		CompletedRevenue: stats.CompletedRevenue,
		AverageAmount:    stats.AverageAmount,
		TodayBookings:    today,
		PendingRequests:  pending,
		RepeatCustomers:  insights.RepeatCustomers,
		NewCustomers:     insights.NewCustomers,
	}
	if insights.TopCustomer != nil {
		resp.TopCustomer = &models.TopCustomerResponse{
			CustomerID:    insights.TopCustomer.CustomerID,
			Name:          insights.TopCustomer.Name,
			BookingsCount: insights.TopCustomer.BookingsCount,
		}
	}

	return resp, nil
}

// ChangeStatus применяет событие жизненного цикла от имени пользователя.
// accept, reject и complete может выполнить только артист; cancel - клиент или артист.
// Строка бронирования блокируется на время проверки и обновления.
func (s *Service) ChangeStatus(ctx context.Context, req *models.ChangeStatusRequest) (*models.BookingResponse, error) {
	s.logger.Info("ChangeStatus: booking id=%d, event=%s, user=%d", req.BookingID, req.Event, req.UserID)

	event, err := domain.ParseBookingEvent(req.Event)
	if err != nil {
		s.logger.Warn("ChangeStatus: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	var (
		result *domain.Booking
		from   domain.BookingStatus
	)

	err = s.txManager.Do(ctx, func(txCtx context.Context) error {
		booking, err := s.bookingRepo.GetByIDForUpdate(txCtx, req.BookingID)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				return ErrBookingNotFound
			}
			return storageError("ChangeStatus", err)
		}

		role, err := s.resolveRole(txCtx, booking, req.UserID)
		if err != nil {
			return err
		}
		if !event.AllowedFor(role) {
			return fmt.Errorf("%w: %s may not %s a booking", ErrAccessDenied, role, event)
		}

		to, err := domain.NextStatus(booking.Status, event)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidTransition, err)
		}

		if err := s.applyStatus(txCtx, booking, to); err != nil {
			return err
		}

		from = booking.Status
		booking.Status = to
		result = booking
		return nil
	})
	if err != nil {
		err = txError("ChangeStatus", err)
		s.logChangeError("ChangeStatus", req.BookingID, err)
		return nil, err
	}

	s.afterTransition(ctx, result, from)

	s.logger.Info("ChangeStatus: booking id=%d %s -> %s", result.ID, from, result.Status)
	return models.FromDomainBooking(result), nil
}

// SetStatus переводит бронирование в статус to без проверки прав.
// Переходы вне конечного автомата отклоняются с ErrInvalidTransition, статус не меняется.
func (s *Service) SetStatus(ctx context.Context, bookingID int64, to domain.BookingStatus) error {
	s.logger.Info("SetStatus: booking id=%d -> %s", bookingID, to)

	var (
		booking *domain.Booking
		from    domain.BookingStatus
	)

	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		b, err := s.bookingRepo.GetByIDForUpdate(txCtx, bookingID)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				return ErrBookingNotFound
			}
			return storageError("SetStatus", err)
		}

		if !domain.CanTransition(b.Status, to) {
			return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, b.Status, to)
		}

		if err := s.applyStatus(txCtx, b, to); err != nil {
			return err
		}

		from = b.Status
		b.Status = to
		booking = b
		return nil
	})
	if err != nil {
		err = txError("SetStatus", err)
		s.logChangeError("SetStatus", bookingID, err)
		return err
	}

	s.afterTransition(ctx, booking, from)
	return nil
}

// applyStatus сохраняет переход compare-and-set по текущему статусу
func (s *Service) applyStatus(ctx context.Context, booking *domain.Booking, to domain.BookingStatus) error {
	err := s.bookingRepo.UpdateStatus(ctx, booking.ID, booking.Status, to)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, bookingRepo.ErrBookingNotFound):
		return ErrBookingNotFound
	case errors.Is(err, bookingRepo.ErrStatusChanged):
		return fmt.Errorf("%w: status of booking id=%d changed concurrently", ErrInvalidTransition, booking.ID)
	default:
		return storageError("UpdateStatus", err)
	}
}

// afterTransition обновляет метрики и сбрасывает кэш слотов, если слот освободился
func (s *Service) afterTransition(ctx context.Context, booking *domain.Booking, from domain.BookingStatus) {
	s.metrics.RecordBookingTransition(string(from), string(booking.Status))

	if booking.Status != domain.StatusCancelled {
		return
	}
	if err := s.slotCache.Invalidate(ctx, booking.ArtistID, booking.AppointmentDate); err != nil {
		s.logger.Warn("slot cache invalidation failed for artist=%d date=%s: %v",
			booking.ArtistID, booking.AppointmentDate.Format(domain.DateFormat), err)
	}
}

func (s *Service) logChangeError(op string, bookingID int64, err error) {
	switch {
	case errors.Is(err, ErrStorageUnavailable), errors.Is(err, ErrStorageTimeout):
		s.logger.Error("%s: booking id=%d: %v", op, bookingID, err)
	default:
		s.logger.Warn("%s: booking id=%d rejected: %v", op, bookingID, err)
	}
}

// resolveRole определяет роль пользователя относительно бронирования
func (s *Service) resolveRole(ctx context.Context, booking *domain.Booking, userID int64) (domain.ActorRole, error) {
	artist, err := s.artistRepo.GetByID(ctx, booking.ArtistID)
	if err != nil {
		if errors.Is(err, artistRepo.ErrArtistNotFound) {
			return "", ErrArtistNotFound
		}
		return "", storageError("resolveRole", err)
	}

	role, ok := booking.RoleOf(userID, artist.UserID)
	if !ok {
		return "", ErrAccessDenied
	}
	return role, nil
}

// checkArtistOwner проверяет, что пользователь - владелец профиля артиста
func (s *Service) checkArtistOwner(ctx context.Context, artistID, userID int64) error {
	artist, err := s.artistRepo.GetByID(ctx, artistID)
	if err != nil {
		if errors.Is(err, artistRepo.ErrArtistNotFound) {
			s.logger.Warn("artist id=%d not found", artistID)
			return ErrArtistNotFound
		}
		s.logger.Error("failed to get artist id=%d: %v", artistID, err)
		return storageError("checkArtistOwner", err)
	}

	if artist.UserID != userID {
		s.logger.Warn("access denied: user=%d is not the owner of artist id=%d", userID, artistID)
		return ErrAccessDenied
	}
	return nil
}
