package create_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-ArtistScheduling/internal/domain"
	artistRepo "github.com/m04kA/SMC-ArtistScheduling/internal/infra/storage/artist"
	availabilityRepo "github.com/m04kA/SMC-ArtistScheduling/internal/infra/storage/availability"
	bookingRepo "github.com/m04kA/SMC-ArtistScheduling/internal/infra/storage/booking"
	"github.com/m04kA/SMC-ArtistScheduling/pkg/txmanager"
)

// Причины конфликтов для метрик
const (
	conflictOutsideWindow = "outside_window"
	conflictOverlap       = "overlap"
	conflictUnique        = "unique"
	conflictSerialization = "serialization"
)

// UseCase use case для создания бронирования
type UseCase struct {
	artistRepo       ArtistRepository
	settings         SettingsProvider
	availabilityRepo AvailabilityRepository
	bookingRepo      BookingRepository
	cache            SlotCache
	txManager        TransactionManager
	metrics          Metrics
	timeProvider     TimeProvider
	logger           Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	artistRepo ArtistRepository,
	settings SettingsProvider,
	availabilityRepo AvailabilityRepository,
	bookingRepo BookingRepository,
	cache SlotCache,
	txManager TransactionManager,
	metrics Metrics,
	logger Logger,
) *UseCase {
	return &UseCase{
		artistRepo:       artistRepo,
		settings:         settings,
		availabilityRepo: availabilityRepo,
		bookingRepo:      bookingRepo,
		cache:            cache,
		txManager:        txManager,
		metrics:          metrics,
		timeProvider:     &RealTimeProvider{},
		logger:           logger,
	}
}

// WithTimeProvider подменяет часы (для тестов)
func (uc *UseCase) WithTimeProvider(tp TimeProvider) *UseCase {
	uc.timeProvider = tp
	return uc
}

// Execute выполняет use case создания бронирования.
// Проверка окна, поиск пересечений и вставка идут в одной сериализуемой транзакции.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: customer=%d, artist=%d, date=%s, start=%s",
		req.CustomerID, req.ArtistID, req.Date.Format(domain.DateFormat), req.StartTime)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время
	now := uc.timeProvider.Now()

	// 3. Проверяем артиста
	artist, err := uc.artistRepo.GetByID(ctx, req.ArtistID)
	if err != nil {
		if errors.Is(err, artistRepo.ErrArtistNotFound) {
			uc.logger.Warn("CreateBooking: artist id=%d not found", req.ArtistID)
			return nil, ErrArtistNotFound
		}
		uc.logger.Error("CreateBooking: failed to get artist id=%d: %v", req.ArtistID, err)
		return nil, storageError("GetArtist", err)
	}
	if !artist.IsBookable() {
		uc.logger.Warn("CreateBooking: artist id=%d has status %s", req.ArtistID, artist.Status)
		return nil, ErrArtistNotBookable
	}

	// 4. Настройки артиста
	settings, err := uc.settings.Effective(ctx, req.ArtistID)
	if err != nil {
		uc.logger.Error("CreateBooking: failed to get settings for artist=%d: %v", req.ArtistID, err)
		return nil, storageError("GetSettings", err)
	}

	// 5. Интервал, дата и минимальное время до записи
	timeRange, err := resolveRange(req, settings.DefaultDurationMinutes)
	if err != nil {
		uc.logger.Warn("CreateBooking: invalid range: %v", err)
		return nil, err
	}

	if err := validateDate(req.Date, now, settings.AdvanceBookingDays); err != nil {
		uc.logger.Warn("CreateBooking: date validation failed: %v", err)
		return nil, err
	}

	if err := validateBookingTime(req.Date, req.StartTime, now, settings.MinBookingNoticeMinutes); err != nil {
		uc.logger.Warn("CreateBooking: booking time validation failed: %v", err)
		return nil, err
	}

	date := domain.DateOnly(req.Date)

	amount := artist.MinPrice()
	if req.Amount != nil {
		amount = *req.Amount
	}

	var result *domain.Booking

	// 6. Выполняем операции с БД в сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 6.1. Интервал должен лежать внутри открытого окна на эту дату
		window, err := uc.availabilityRepo.GetByDate(txCtx, req.ArtistID, date)
		if err != nil && !errors.Is(err, availabilityRepo.ErrWindowNotFound) {
			uc.logger.Error("CreateBooking: failed to get window: %v", err)
			return storageError("GetWindow", err)
		}
		if window == nil || !window.IsOpen() || !window.Range.Contains(timeRange) {
			uc.logger.Warn("CreateBooking: %s on %s is outside availability of artist=%d",
				timeRange, date.Format(domain.DateFormat), req.ArtistID)
			uc.metrics.RecordSlotConflict(conflictOutsideWindow)
			return fmt.Errorf("%w: outside availability window", ErrSlotNotAvailable)
		}

		// 6.2. Все неотмененные бронирования на дату с блокировкой (FOR UPDATE)
		bookings, err := uc.bookingRepo.GetByArtistWithFilter(txCtx, domain.ArtistBookingsFilter{
			ArtistID: req.ArtistID,
			Date:     &date,
		})
		if err != nil {
			uc.logger.Error("CreateBooking: failed to get bookings: %v", err)
			return storageError("GetBookings", err)
		}

		// 6.3. Проверяем пересечения с учетом буфера
		if conflict := findConflict(timeRange, bookings, settings.BufferMinutes); conflict != nil {
			uc.logger.Warn("CreateBooking: %s overlaps booking id=%d (%s)", timeRange, conflict.ID, conflict.TimeRange())
			uc.metrics.RecordSlotConflict(conflictOverlap)
			return fmt.Errorf("%w: overlaps booking id=%d", ErrSlotNotAvailable, conflict.ID)
		}

		// 6.4. Создаем бронирование в статусе pending
		created, err := uc.bookingRepo.Create(txCtx, &domain.Booking{
			CustomerID:      req.CustomerID,
			ArtistID:        req.ArtistID,
			AppointmentDate: date,
			StartTime:       timeRange.Start,
			EndTime:         timeRange.End,
			Amount:          amount,
			Notes:           req.Notes,
		})
		if err != nil {
			return uc.mapCreateError(err)
		}

		// 6.5. Автоподтверждение в той же транзакции
		if settings.AutoAcceptBookings {
			next, err := domain.NextStatus(created.Status, domain.EventAccept)
			if err != nil {
				return err
			}
			if err := uc.bookingRepo.UpdateStatus(txCtx, created.ID, created.Status, next); err != nil {
				uc.logger.Error("CreateBooking: failed to auto-accept booking id=%d: %v", created.ID, err)
				return storageError("AutoAccept", err)
			}
			created.Status = next
		}

		result = created
		return nil
	})

	if err != nil {
		if errors.Is(err, txmanager.ErrSerialization) {
			uc.logger.Warn("CreateBooking: concurrent booking for artist=%d on %s: %v",
				req.ArtistID, date.Format(domain.DateFormat), err)
			uc.metrics.RecordSlotConflict(conflictSerialization)
			return nil, fmt.Errorf("%w: concurrent booking", ErrSlotNotAvailable)
		}
		if errors.Is(err, txmanager.ErrBeginTx) || errors.Is(err, txmanager.ErrCommitTx) {
			return nil, storageError("Transaction", err)
		}
		return nil, err
	}

	uc.metrics.RecordBookingCreated(string(result.Status))

	// 7. Сбрасываем кэш слотов на дату
	if err := uc.cache.Invalidate(ctx, req.ArtistID, date); err != nil {
		uc.logger.Warn("CreateBooking: failed to invalidate slot cache for artist=%d: %v", req.ArtistID, err)
	}

	uc.logger.Info("CreateBooking: successfully created booking id=%d, status=%s", result.ID, result.Status)

	return toResponse(result), nil
}

// mapCreateError переводит ошибки вставки в ошибки use case
func (uc *UseCase) mapCreateError(err error) error {
	switch {
	case errors.Is(err, bookingRepo.ErrSlotTaken):
		uc.logger.Warn("CreateBooking: slot already taken: %v", err)
		uc.metrics.RecordSlotConflict(conflictUnique)
		return fmt.Errorf("%w: %v", ErrSlotNotAvailable, err)
	case errors.Is(err, bookingRepo.ErrReferenceNotFound):
		uc.logger.Warn("CreateBooking: reference not found: %v", err)
		return ErrCustomerNotFound
	case errors.Is(err, bookingRepo.ErrInvalidData):
		uc.logger.Warn("CreateBooking: rejected by constraint: %v", err)
		return fmt.Errorf("%w: %v", ErrInvalidRange, err)
	}
	uc.logger.Error("CreateBooking: failed to create booking: %v", err)
	return storageError("Create", err)
}

func toResponse(b *domain.Booking) *Response {
	return &Response{
		ID:              b.ID,
		CustomerID:      b.CustomerID,
		ArtistID:        b.ArtistID,
		AppointmentDate: b.AppointmentDate,
		StartTime:       b.StartTime,
		EndTime:         b.EndTime,
		DurationMinutes: b.TimeRange().DurationMinutes(),
		Status:          string(b.Status),
		Amount:          b.Amount,
		Notes:           b.Notes,
		CreatedAt:       b.CreatedAt,
		UpdatedAt:       b.UpdatedAt,
	}
}
