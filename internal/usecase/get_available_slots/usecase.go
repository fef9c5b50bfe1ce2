package get_available_slots

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-ArtistScheduling/internal/domain"
	"github.com/m04kA/SMC-ArtistScheduling/internal/infra/cache/slots"
	artistRepo "github.com/m04kA/SMC-ArtistScheduling/internal/infra/storage/artist"
	availabilityRepo "github.com/m04kA/SMC-ArtistScheduling/internal/infra/storage/availability"
)

const (
	cacheHit   = "hit"
	cacheMiss  = "miss"
	cacheError = "error"
	cacheStale = "stale"
)

// UseCase use case для получения доступных слотов для бронирования
type UseCase struct {
	artistRepo       ArtistRepository
	settings         SettingsProvider
	availabilityRepo AvailabilityRepository
	bookingRepo      BookingRepository
	cache            SlotCache
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
	metrics Metrics,
	logger Logger,
) *UseCase {
	return &UseCase{
		artistRepo:       artistRepo,
		settings:         settings,
		availabilityRepo: availabilityRepo,
		bookingRepo:      bookingRepo,
		cache:            cache,
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

// Execute выполняет use case получения доступных слотов
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableSlots: artist=%d, date=%s, duration=%d",
		req.ArtistID, req.Date.Format(domain.DateFormat), req.DurationMinutes)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	now := uc.timeProvider.Now()

	// 2. Проверяем артиста
	artist, err := uc.artistRepo.GetByID(ctx, req.ArtistID)
	if err != nil {
		if errors.Is(err, artistRepo.ErrArtistNotFound) {
			uc.logger.Warn("GetAvailableSlots: artist id=%d not found", req.ArtistID)
			return nil, ErrArtistNotFound
		}
		uc.logger.Error("GetAvailableSlots: failed to get artist id=%d: %v", req.ArtistID, err)
		return nil, storageError("GetArtist", err)
	}
	if !artist.IsBookable() {
		uc.logger.Warn("GetAvailableSlots: artist id=%d has status %s", req.ArtistID, artist.Status)
		return nil, ErrArtistNotBookable
	}

	// 3. Настройки артиста (значения по умолчанию, если не сохранены)
	settings, err := uc.settings.Effective(ctx, req.ArtistID)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get settings for artist=%d: %v", req.ArtistID, err)
		return nil, storageError("GetSettings", err)
	}

	duration := req.DurationMinutes
	if duration == 0 {
		duration = settings.DefaultDurationMinutes
	}

	// 4. Валидация даты с учетом настроек
	if err := validateDate(req.Date, now, settings.AdvanceBookingDays); err != nil {
		uc.logger.Warn("GetAvailableSlots: date validation failed: %v", err)
		return nil, err
	}

	date := domain.DateOnly(req.Date)
	params := slots.Params{
		DurationMinutes:    duration,
		GranularityMinutes: settings.SlotGranularityMinutes,
		BufferMinutes:      settings.BufferMinutes,
	}

	// 5. Слоты без учета текущего времени: из кэша или расчетом
	daySlots, err := uc.daySlots(ctx, req.ArtistID, date, params)
	if err != nil {
		return nil, err
	}

	// 6. Для сегодняшней даты убираем слоты ближе минимального времени до записи
	available := filterByNotice(daySlots, date, now, settings.MinBookingNoticeMinutes)

	uc.logger.Info("GetAvailableSlots: %d slots for artist=%d, date=%s, duration=%d",
		len(available), req.ArtistID, date.Format(domain.DateFormat), duration)

	return &Response{
		ArtistID:        req.ArtistID,
		Date:            date,
		DurationMinutes: duration,
		Slots:           toSlots(available),
	}, nil
}

// daySlots читает результат из кэша, при промахе рассчитывает и сохраняет.
// Поколение даты читается до обращения к БД: если бронирование или окно изменились
// во время расчета, результат не попадет в кэш. Ошибки кэша не прерывают запрос.
func (uc *UseCase) daySlots(ctx context.Context, artistID int64, date time.Time, p slots.Params) ([]domain.AvailableSlot, error) {
	cached, found, err := uc.cache.Get(ctx, artistID, date, p)
	switch {
	case err != nil:
		uc.metrics.RecordSlotCache(cacheError)
		uc.logger.Warn("GetAvailableSlots: cache read failed for artist=%d: %v", artistID, err)
	case found:
		uc.metrics.RecordSlotCache(cacheHit)
		return cached, nil
	default:
		uc.metrics.RecordSlotCache(cacheMiss)
	}

	generation, genErr := uc.cache.Generation(ctx, artistID, date)
	if genErr != nil {
		uc.logger.Warn("GetAvailableSlots: cache generation read failed for artist=%d: %v", artistID, genErr)
	}

	computed, err := uc.compute(ctx, artistID, date, p)
	if err != nil {
		return nil, err
	}

	if genErr != nil {
		return computed, nil
	}

	err = uc.cache.Set(ctx, artistID, date, p, generation, computed)
	switch {
	case errors.Is(err, slots.ErrGenerationChanged):
		uc.metrics.RecordSlotCache(cacheStale)
		uc.logger.Info("GetAvailableSlots: slots for artist=%d on %s changed during calculation, not cached",
			artistID, date.Format(domain.DateFormat))
	case err != nil:
		uc.logger.Warn("GetAvailableSlots: cache write failed for artist=%d: %v", artistID, err)
	}

	return computed, nil
}

// compute загружает окно и бронирования на дату и рассчитывает слоты.
// Учитывается только окно на конкретную дату; нет окна - нет слотов.
func (uc *UseCase) compute(ctx context.Context, artistID int64, date time.Time, p slots.Params) ([]domain.AvailableSlot, error) {
	window, err := uc.availabilityRepo.GetByDate(ctx, artistID, date)
	if err != nil {
		if errors.Is(err, availabilityRepo.ErrWindowNotFound) {
			uc.logger.Info("GetAvailableSlots: no window for artist=%d on %s", artistID, date.Format(domain.DateFormat))
			return []domain.AvailableSlot{}, nil
		}
		uc.logger.Error("GetAvailableSlots: failed to get window: %v", err)
		return nil, storageError("GetWindow", err)
	}
	if !window.IsOpen() {
		return []domain.AvailableSlot{}, nil
	}

	bookings, err := uc.bookingRepo.GetByArtistWithFilter(ctx, domain.ArtistBookingsFilter{
		ArtistID: artistID,
		Date:     &date,
	})
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get bookings: %v", err)
		return nil, storageError("GetBookings", err)
	}

	result, err := resolveSlots(window, bookings, p.DurationMinutes, p.GranularityMinutes, p.BufferMinutes)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to resolve slots: %v", err)
		return nil, fmt.Errorf("GetAvailableSlots: %w", err)
	}
	return result, nil
}

func toSlots(available []domain.AvailableSlot) []Slot {
	result := make([]Slot, 0, len(available))
	for _, s := range available {
		result = append(result, Slot{
			StartTime: s.StartTime,
			EndTime:   s.EndTime,
			Label:     s.Label(),
		})
	}
	return result
}
