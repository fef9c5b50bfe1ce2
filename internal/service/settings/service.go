package settings

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/m04kA/SMC-ArtistScheduling/internal/domain"
	artistRepo "github.com/m04kA/SMC-ArtistScheduling/internal/infra/storage/artist"
	"github.com/m04kA/SMC-ArtistScheduling/internal/service/settings/models"
)

// Defaults значения для артистов, которые еще не сохраняли настройки
type Defaults struct {
	SlotGranularityMinutes  int
	DefaultDurationMinutes  int
	BufferMinutes           int
	AdvanceBookingDays      int
	MinBookingNoticeMinutes int
}

// DomainDefaults значения по умолчанию из domain
func DomainDefaults() Defaults {
	return Defaults{
		SlotGranularityMinutes:  domain.DefaultSlotGranularityMinutes,
		DefaultDurationMinutes:  domain.DefaultDurationMinutes,
		BufferMinutes:           domain.DefaultBufferMinutes,
		AdvanceBookingDays:      domain.DefaultAdvanceBookingDays,
		MinBookingNoticeMinutes: domain.DefaultMinBookingNoticeMinutes,
	}
}

func (d Defaults) forArtist(artistID int64) *domain.ArtistSettings {
	s := domain.DefaultArtistSettings(artistID)
	s.SlotGranularityMinutes = d.SlotGranularityMinutes
	s.DefaultDurationMinutes = d.DefaultDurationMinutes
	s.BufferMinutes = d.BufferMinutes
	s.AdvanceBookingDays = d.AdvanceBookingDays
	s.MinBookingNoticeMinutes = d.MinBookingNoticeMinutes
	return s
}

// Service сервис настроек артиста
type Service struct {
	artistRepo ArtistRepository
	defaults   Defaults
	logger     Logger
}

// NewService создает новый экземпляр сервиса настроек
func NewService(artistRepo ArtistRepository, defaults Defaults, logger Logger) *Service {
	return &Service{
		artistRepo: artistRepo,
		defaults:   defaults,
		logger:     logger,
	}
}

// Get получает настройки артиста.
// Публичный метод - если настройки не сохранены, возвращаются значения по умолчанию.
func (s *Service) Get(ctx context.Context, artistID int64) (*models.SettingsResponse, error) {
	s.logger.Info("Get: fetching settings for artist=%d", artistID)

	if _, err := s.getArtist(ctx, artistID); err != nil {
		return nil, err
	}

	settings, isDefault, err := s.load(ctx, artistID)
	if err != nil {
		return nil, err
	}

	return models.FromDomainSettings(settings, isDefault), nil
}

// Effective возвращает действующие настройки артиста для расчета слотов и создания бронирований.
// Существование артиста не проверяет.
func (s *Service) Effective(ctx context.Context, artistID int64) (*domain.ArtistSettings, error) {
	settings, _, err := s.load(ctx, artistID)
	return settings, err
}

// Update частично обновляет настройки артиста.
// Доступно только владельцу профиля.
func (s *Service) Update(ctx context.Context, req *models.UpdateSettingsRequest) (*models.SettingsResponse, error) {
	s.logger.Info("Update: updating settings for artist=%d by user=%d", req.ArtistID, req.UserID)

	// 1. Проверяем права доступа
	artist, err := s.getArtist(ctx, req.ArtistID)
	if err != nil {
		return nil, err
	}
	if artist.UserID != req.UserID {
		s.logger.Warn("Update: user=%d is not the owner of artist=%d", req.UserID, req.ArtistID)
		return nil, ErrAccessDenied
	}

	// 2. Берем текущие настройки (или значения по умолчанию)
	current, _, err := s.load(ctx, req.ArtistID)
	if err != nil {
		return nil, err
	}

	// 3. Применяем изменения к копии и валидируем
	updated := *current
	req.ApplyToSettings(&updated)
	if err := Validate(&updated); err != nil {
		s.logger.Warn("Update: validation failed for artist=%d: %v", req.ArtistID, err)
		return nil, err
	}

	// 4. Сохраняем
	saved, err := s.artistRepo.UpsertSettings(ctx, &updated)
	if err != nil {
		if errors.Is(err, artistRepo.ErrArtistNotFound) {
			return nil, ErrArtistNotFound
		}
		s.logger.Error("Update: repository error for artist=%d: %v", req.ArtistID, err)
		return nil, storageError("Update", err)
	}

	s.logger.Info("Update: successfully updated settings for artist=%d", req.ArtistID)
	return models.FromDomainSettings(saved, false), nil
}

// Validate проверяет значения настроек
func Validate(st *domain.ArtistSettings) error {
	if st.SlotGranularityMinutes < domain.MinSlotGranularityMinutes || st.SlotGranularityMinutes > domain.MaxSlotGranularityMinutes {
		return fmt.Errorf("%w: slotGranularityMinutes must be between %d and %d",
			ErrInvalidInput, domain.MinSlotGranularityMinutes, domain.MaxSlotGranularityMinutes)
	}
	if st.DefaultDurationMinutes < domain.MinDurationMinutes || st.DefaultDurationMinutes > domain.MaxDurationMinutes {
		return fmt.Errorf("%w: defaultDurationMinutes must be between %d and %d",
			ErrInvalidInput, domain.MinDurationMinutes, domain.MaxDurationMinutes)
	}
	if !slices.Contains(domain.AllowedBufferMinutes, st.BufferMinutes) {
		return fmt.Errorf("%w: bufferMinutes must be one of %v", ErrInvalidInput, domain.AllowedBufferMinutes)
	}
	// 0 - без ограничения горизонта
	if st.AdvanceBookingDays != 0 &&
		(st.AdvanceBookingDays < domain.MinAdvanceBookingDays || st.AdvanceBookingDays > domain.MaxAdvanceBookingDays) {
		return fmt.Errorf("%w: advanceBookingDays must be 0 or between %d and %d",
			ErrInvalidInput, domain.MinAdvanceBookingDays, domain.MaxAdvanceBookingDays)
	}
	if st.MinBookingNoticeMinutes < 0 || st.MinBookingNoticeMinutes > domain.MaxBookingNoticeMinutes {
		return fmt.Errorf("%w: minBookingNoticeMinutes must be between 0 and %d",
			ErrInvalidInput, domain.MaxBookingNoticeMinutes)
	}
	return nil
}

// load возвращает сохраненные настройки или значения по умолчанию (isDefault = true)
func (s *Service) load(ctx context.Context, artistID int64) (*domain.ArtistSettings, bool, error) {
	settings, err := s.artistRepo.GetSettings(ctx, artistID)
	if err == nil {
		return settings, false, nil
	}
	if errors.Is(err, artistRepo.ErrSettingsNotFound) {
		return s.defaults.forArtist(artistID), true, nil
	}
	s.logger.Error("failed to load settings for artist=%d: %v", artistID, err)
	return nil, false, storageError("GetSettings", err)
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
