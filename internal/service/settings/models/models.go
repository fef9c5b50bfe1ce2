package models

import (
	"time"

	"github.com/m04kA/SMC-ArtistScheduling/internal/domain"
)

// Request модели

// UpdateSettingsRequest запрос на обновление настроек артиста.
// Все поля опциональны - обновляются только переданные значения.
type UpdateSettingsRequest struct {
	UserID                  int64
	ArtistID                int64
	SlotGranularityMinutes  *int
	DefaultDurationMinutes  *int
	BufferMinutes           *int
	AdvanceBookingDays      *int
	MinBookingNoticeMinutes *int
	AutoAcceptBookings      *bool
	RequireDeposit          *bool
	Notifications           *NotificationsUpdate
}

// NotificationsUpdate частичное обновление флагов уведомлений
type NotificationsUpdate struct {
	NewBookings *bool
	NewMessages *bool
	NewReviews  *bool
	Email       *bool
	SMS         *bool
	Reminders   *bool
}

// ApplyToSettings применяет обновления к существующим настройкам.
// Обновляются только непустые (not nil) поля из request.
func (r *UpdateSettingsRequest) ApplyToSettings(s *domain.ArtistSettings) {
	if r.SlotGranularityMinutes != nil {
		s.SlotGranularityMinutes = *r.SlotGranularityMinutes
	}
	if r.DefaultDurationMinutes != nil {
		s.DefaultDurationMinutes = *r.DefaultDurationMinutes
	}
	if r.BufferMinutes != nil {
		s.BufferMinutes = *r.BufferMinutes
	}
	if r.AdvanceBookingDays != nil {
		s.AdvanceBookingDays = *r.AdvanceBookingDays
	}
	if r.MinBookingNoticeMinutes != nil {
		s.MinBookingNoticeMinutes = *r.MinBookingNoticeMinutes
	}
	if r.AutoAcceptBookings != nil {
		s.AutoAcceptBookings = *r.AutoAcceptBookings
	}
	if r.RequireDeposit != nil {
		s.RequireDeposit = *r.RequireDeposit
	}
	if n := r.Notifications; n != nil {
		setIfPresent(&s.Notifications.NewBookings, n.NewBookings)
		setIfPresent(&s.Notifications.NewMessages, n.NewMessages)
		setIfPresent(&s.Notifications.NewReviews, n.NewReviews)
		setIfPresent(&s.Notifications.Email, n.Email)
		setIfPresent(&s.Notifications.SMS, n.SMS)
		setIfPresent(&s.Notifications.Reminders, n.Reminders)
	}
}

func setIfPresent(dst *bool, v *bool) {
	if v != nil {
		*dst = *v
	}
}

// Response модели

// NotificationsResponse флаги уведомлений
type NotificationsResponse struct {
	NewBookings bool `json:"newBookings"`
	NewMessages bool `json:"newMessages"`
	NewReviews  bool `json:"newReviews"`
	Email       bool `json:"email"`
	SMS         bool `json:"sms"`
	Reminders   bool `json:"reminders"`
}

// SettingsResponse настройки артиста
type SettingsResponse struct {
	ArtistID                int64                 `json:"artistId"`
	SlotGranularityMinutes  int                   `json:"slotGranularityMinutes"`
	DefaultDurationMinutes  int                   `json:"defaultDurationMinutes"`
	BufferMinutes           int                   `json:"bufferMinutes"`
	AdvanceBookingDays      int                   `json:"advanceBookingDays"` // 0 = без ограничений
	MinBookingNoticeMinutes int                   `json:"minBookingNoticeMinutes"`
	AutoAcceptBookings      bool                  `json:"autoAcceptBookings"`
	RequireDeposit          bool                  `json:"requireDeposit"`
	Notifications           NotificationsResponse `json:"notifications"`
	IsDefault               bool                  `json:"isDefault"` // артист еще не сохранял настройки
	UpdatedAt               *time.Time            `json:"updatedAt,omitempty"`
}

// FromDomainSettings конвертирует domain модель в DTO
func FromDomainSettings(s *domain.ArtistSettings, isDefault bool) *SettingsResponse {
	if s == nil {
		return nil
	}

	resp := &SettingsResponse{
		ArtistID:                s.ArtistID,
		SlotGranularityMinutes:  s.SlotGranularityMinutes,
		DefaultDurationMinutes:  s.DefaultDurationMinutes,
		BufferMinutes:           s.BufferMinutes,
		AdvanceBookingDays:      s.AdvanceBookingDays,
		MinBookingNoticeMinutes: s.MinBookingNoticeMinutes,
		AutoAcceptBookings:      s.AutoAcceptBookings,
		RequireDeposit:          s.RequireDeposit,
		Notifications: NotificationsResponse{
			NewBookings: s.Notifications.NewBookings,
			NewMessages: s.Notifications.NewMessages,
			NewReviews:  s.Notifications.NewReviews,
			Email:       s.Notifications.Email,
			SMS:         s.Notifications.SMS,
			Reminders:   s.Notifications.Reminders,
		},
		IsDefault: isDefault,
	}
	if !s.UpdatedAt.IsZero() {
		updated := s.UpdatedAt
		resp.UpdatedAt = &updated
	}
	return resp
}
