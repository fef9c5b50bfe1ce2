package availability

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-ArtistScheduling/internal/domain"
	artistRepo "github.com/m04kA/SMC-ArtistScheduling/internal/infra/storage/artist"
	availabilityRepo "github.com/m04kA/SMC-ArtistScheduling/internal/infra/storage/availability"
	"github.com/m04kA/SMC-ArtistScheduling/internal/service/availability/models"
	"github.com/m04kA/SMC-ArtistScheduling/pkg/types"
)

// MaxRangeDays ограничение на длину диапазона чтения и массовых операций
const MaxRangeDays = 92

// Service сервис для управления окнами доступности артиста.
// Ключ окна - конкретная календарная дата; на дату хранится не больше одного окна.
type Service struct {
	availabilityRepo AvailabilityRepository
	artistRepo       ArtistRepository
	slotCache        SlotCache
	txManager        TransactionManager
	timeProvider     TimeProvider
	logger           Logger
}

// NewService создает новый экземпляр сервиса доступности
func NewService(
	availabilityRepo AvailabilityRepository,
	artistRepo ArtistRepository,
	slotCache SlotCache,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		availabilityRepo: availabilityRepo,
		artistRepo:       artistRepo,
		slotCache:        slotCache,
		txManager:        txManager,
		timeProvider:     &RealTimeProvider{},
		logger:           logger,
	}
}

// WithTimeProvider подменяет часы (для тестов)
func (s *Service) WithTimeProvider(tp TimeProvider) *Service {
	s.timeProvider = tp
	return s
}

// SetWindow создает или заменяет окно на дату.
// Закрытый день хранится с диапазоном 00:00-00:00 и is_available = false.
func (s *Service) SetWindow(ctx context.Context, req *models.SetWindowRequest) (*models.WindowResponse, error) {
	s.logger.Info("SetWindow: artist=%d, date=%s, %s-%s, available=%t by user=%d",
		req.ArtistID, req.Date.Format(domain.DateFormat), req.StartTime, req.EndTime, req.IsAvailable, req.UserID)

	if err := s.checkArtistOwner(ctx, req.ArtistID, req.UserID); err != nil {
		return nil, err
	}

	var window *domain.AvailabilityWindow
	if req.IsAvailable {
		r, err := parseRange(req.StartTime, req.EndTime)
		if err != nil {
			s.logger.Warn("SetWindow: invalid range %s-%s: %v", req.StartTime, req.EndTime, err)
			return nil, err
		}
		window, err = domain.NewOpenWindow(req.ArtistID, req.Date, r)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidRange, err)
		}
	} else {
		window = domain.NewBlockedWindow(req.ArtistID, req.Date)
	}

	saved, err := s.availabilityRepo.Upsert(ctx, window)
	if err != nil {
		return nil, s.mapRepoError("SetWindow", req.ArtistID, err)
	}

	s.invalidate(ctx, req.ArtistID, saved.Date)

	s.logger.Info("SetWindow: saved window id=%d for artist=%d", saved.ID, req.ArtistID)
	return models.FromDomainWindow(saved), nil
}

// GetWindows возвращает окна артиста за диапазон дат по возрастанию даты.
// Публичный метод.
func (s *Service) GetWindows(ctx context.Context, req *models.GetWindowsRequest) (*models.WindowListResponse, error) {
	s.logger.Info("GetWindows: artist=%d, %s..%s",
		req.ArtistID, req.From.Format(domain.DateFormat), req.To.Format(domain.DateFormat))

	from, to := domain.DateOnly(req.From), domain.DateOnly(req.To)
	if to.Before(from) {
		return nil, fmt.Errorf("%w: 'from' must not be after 'to'", ErrInvalidInput)
	}
	if days := int(to.Sub(from).Hours()/24) + 1; days > MaxRangeDays {
		return nil, fmt.Errorf("%w: range must not exceed %d days", ErrInvalidInput, MaxRangeDays)
	}

	if _, err := s.getArtist(ctx, req.ArtistID); err != nil {
		return nil, err
	}

	windows, err := s.availabilityRepo.GetByDateRange(ctx, req.ArtistID, from, to)
	if err != nil {
		return nil, s.mapRepoError("GetWindows", req.ArtistID, err)
	}

	return models.FromDomainWindows(req.ArtistID, from, to, windows), nil
}

// CopyWeekForward копирует окна 7 дней начиная с SourceWeekStart на неделю вперед.
// Дни без окна пропускаются. Возвращает даты, на которые окна были записаны.
func (s *Service) CopyWeekForward(ctx context.Context, req *models.CopyWeekRequest) (*models.BulkResponse, error) {
	source := s.startDate(req.SourceWeekStart)
	s.logger.Info("CopyWeekForward: artist=%d, source week %s by user=%d",
		req.ArtistID, source.Format(domain.DateFormat), req.UserID)

	if err := s.checkArtistOwner(ctx, req.ArtistID, req.UserID); err != nil {
		return nil, err
	}

	var targets []time.Time
	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		existing, err := s.availabilityRepo.GetByDateRange(txCtx, req.ArtistID, source, source.AddDate(0, 0, domain.DaysInWeek-1))
		if err != nil {
			return err
		}

		copies := make([]*domain.AvailabilityWindow, 0, len(existing))
		for _, w := range existing {
			copies = append(copies, &domain.AvailabilityWindow{
				ArtistID:    w.ArtistID,
				Date:        w.Date.AddDate(0, 0, domain.DaysInWeek),
				Range:       w.Range,
				IsAvailable: w.IsAvailable,
			})
			targets = append(targets, w.Date.AddDate(0, 0, domain.DaysInWeek))
		}

		return s.availabilityRepo.UpsertMany(txCtx, copies)
	})
	if err != nil {
		return nil, s.mapRepoError("CopyWeekForward", req.ArtistID, err)
	}

	s.invalidate(ctx, req.ArtistID, targets...)

	s.logger.Info("CopyWeekForward: copied %d days for artist=%d", len(targets), req.ArtistID)
	return models.NewBulkResponse(req.ArtistID, targets), nil
}

// ApplyStandardHours перезаписывает окна на Days дней начиная с From стандартным графиком.
// Повторный вызов дает тот же результат.
func (s *Service) ApplyStandardHours(ctx context.Context, req *models.StandardHoursRequest) (*models.BulkResponse, error) {
	from := s.startDate(req.From)
	s.logger.Info("ApplyStandardHours: artist=%d, from=%s, days=%d, %s-%s by user=%d",
		req.ArtistID, from.Format(domain.DateFormat), req.Days, req.OpenTime, req.CloseTime, req.UserID)

	days, err := bulkDays(req.Days)
	if err != nil {
		return nil, err
	}

	open, closing := string(domain.StandardOpenTime), string(domain.StandardCloseTime)
	if req.OpenTime != "" {
		open = req.OpenTime
	}
	if req.CloseTime != "" {
		closing = req.CloseTime
	}
	r, err := parseRange(open, closing)
	if err != nil {
		s.logger.Warn("ApplyStandardHours: invalid range %s-%s: %v", open, closing, err)
		return nil, err
	}

	if err := s.checkArtistOwner(ctx, req.ArtistID, req.UserID); err != nil {
		return nil, err
	}

	dates := domain.WeekDates(from, days)
	windows := make([]*domain.AvailabilityWindow, 0, len(dates))
	for _, d := range dates {
		w, err := domain.NewOpenWindow(req.ArtistID, d, r)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidRange, err)
		}
		windows = append(windows, w)
	}

	if err := s.upsertAll(ctx, windows); err != nil {
		return nil, s.mapRepoError("ApplyStandardHours", req.ArtistID, err)
	}

	s.invalidate(ctx, req.ArtistID, dates...)

	s.logger.Info("ApplyStandardHours: applied %s to %d days for artist=%d", r, len(dates), req.ArtistID)
	return models.NewBulkResponse(req.ArtistID, dates), nil
}

// BlockAll закрывает Days дней начиная с From
func (s *Service) BlockAll(ctx context.Context, req *models.BlockAllRequest) (*models.BulkResponse, error) {
	from := s.startDate(req.From)
	s.logger.Info("BlockAll: artist=%d, from=%s, days=%d by user=%d",
		req.ArtistID, from.Format(domain.DateFormat), req.Days, req.UserID)

	days, err := bulkDays(req.Days)
	if err != nil {
		return nil, err
	}

	if err := s.checkArtistOwner(ctx, req.ArtistID, req.UserID); err != nil {
		return nil, err
	}

	dates := domain.WeekDates(from, days)
	windows := make([]*domain.AvailabilityWindow, 0, len(dates))
	for _, d := range dates {
		windows = append(windows, domain.NewBlockedWindow(req.ArtistID, d))
	}

	if err := s.upsertAll(ctx, windows); err != nil {
		return nil, s.mapRepoError("BlockAll", req.ArtistID, err)
	}

	s.invalidate(ctx, req.ArtistID, dates...)

	s.logger.Info("BlockAll: blocked %d days for artist=%d", len(dates), req.ArtistID)
	return models.NewBulkResponse(req.ArtistID, dates), nil
}

// Вспомогательные методы

func (s *Service) upsertAll(ctx context.Context, windows []*domain.AvailabilityWindow) error {
	return s.txManager.Do(ctx, func(txCtx context.Context) error {
		return s.availabilityRepo.UpsertMany(txCtx, windows)
	})
}

// startDate возвращает дату начала операции, по умолчанию сегодня
func (s *Service) startDate(from *time.Time) time.Time {
	if from != nil {
		return domain.DateOnly(*from)
	}
	return domain.DateOnly(s.timeProvider.Now())
}

// invalidate сбрасывает кэш слотов; ошибка кэша не отменяет уже сохраненную запись
func (s *Service) invalidate(ctx context.Context, artistID int64, dates ...time.Time) {
	if len(dates) == 0 {
		return
	}
	if err := s.slotCache.Invalidate(ctx, artistID, dates...); err != nil {
		s.logger.Warn("slot cache invalidation failed for artist=%d (%d dates): %v", artistID, len(dates), err)
	}
}

func (s *Service) getArtist(ctx context.Context, artistID int64) (*domain.Artist, error) {
	artist, err := s.artistRepo.GetByID(ctx, artistID)
	if err != nil {
		if errors.Is(err, artistRepo.ErrArtistNotFound) {
			s.logger.Warn("artist id=%d not found", artistID)
			return nil, ErrArtistNotFound
		}
		s.logger.Error("failed to get artist id=%d: %v", artistID, err)
		return nil, storageError("GetArtist", err)
	}
	return artist, nil
}

// checkArtistOwner проверяет, что пользователь - владелец профиля артиста
func (s *Service) checkArtistOwner(ctx context.Context, artistID, userID int64) error {
	artist, err := s.getArtist(ctx, artistID)
	if err != nil {
		return err
	}
	if artist.UserID != userID {
		s.logger.Warn("access denied: user=%d is not the owner of artist id=%d", userID, artistID)
		return ErrAccessDenied
	}
	return nil
}

func (s *Service) mapRepoError(op string, artistID int64, err error) error {
	if errors.Is(err, availabilityRepo.ErrArtistNotFound) {
		s.logger.Warn("%s: artist id=%d not found", op, artistID)
		return ErrArtistNotFound
	}
	s.logger.Error("%s: repository error for artist=%d: %v", op, artistID, err)
	return storageError(op, err)
}

func parseRange(start, end string) (domain.TimeRange, error) {
	st, err := types.NewTimeStringFromString(start)
	if err != nil {
		return domain.TimeRange{}, fmt.Errorf("%w: start: %v", ErrInvalidRange, err)
	}
	et, err := types.NewTimeStringFromString(end)
	if err != nil {
		return domain.TimeRange{}, fmt.Errorf("%w: end: %v", ErrInvalidRange, err)
	}
	r, err := domain.NewTimeRange(st, et)
	if err != nil {
		return domain.TimeRange{}, fmt.Errorf("%w: %v", ErrInvalidRange, err)
	}
	return r, nil
}

func bulkDays(days int) (int, error) {
	if days == 0 {
		return domain.DaysInWeek, nil
	}
	if days < 0 || days > MaxRangeDays {
		return 0, fmt.Errorf("%w: days must be between 1 and %d", ErrInvalidInput, MaxRangeDays)
	}
	return days, nil
}
