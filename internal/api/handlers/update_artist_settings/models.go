package update_artist_settings

import (
	"github.com/m04kA/SMC-ArtistScheduling/internal/service/settings/models"
)

// UpdateSettingsRequest HTTP request model. Передаются только изменяемые поля.
// Диапазоны допустимых значений проверяет сервис.
type UpdateSettingsRequest struct {
	SlotGranularityMinutes  *int                 `json:"slotGranularityMinutes,omitempty" validate:"omitempty,gt=0"`
	DefaultDurationMinutes  *int                 `json:"defaultDurationMinutes,omitempty" validate:"omitempty,gt=0"`
	BufferMinutes           *int                 `json:"bufferMinutes,omitempty" validate:"omitempty,gte=0"`
	AdvanceBookingDays      *int                 `json:"advanceBookingDays,omitempty" validate:"omitempty,gte=0"`
	MinBookingNoticeMinutes *int                 `json:"minBookingNoticeMinutes,omitempty" validate:"omitempty,gte=0"`
	AutoAcceptBookings      *bool                `json:"autoAcceptBookings,omitempty"`
	RequireDeposit          *bool                `json:"requireDeposit,omitempty"`
	Notifications           *NotificationsUpdate `json:"notifications,omitempty"`
}

// NotificationsUpdate флаги уведомлений
type NotificationsUpdate struct {
	NewBookings *bool `json:"newBookings,omitempty"`
	NewMessages *bool `json:"newMessages,omitempty"`
	NewReviews  *bool `json:"newReviews,omitempty"`
	Email       *bool `json:"email,omitempty"`
	SMS         *bool `json:"sms,omitempty"`
	Reminders   *bool `json:"reminders,omitempty"`
}

// ToServiceRequest конвертирует HTTP request в модель сервиса
func (r *UpdateSettingsRequest) ToServiceRequest(artistID, userID int64) *models.UpdateSettingsRequest {
	req := &models.UpdateSettingsRequest{
		UserID:                  userID,
		ArtistID:                artistID,
		SlotGranularityMinutes:  r.SlotGranularityMinutes,
		DefaultDurationMinutes:  r.DefaultDurationMinutes,
		BufferMinutes:           r.BufferMinutes,
		AdvanceBookingDays:      r.AdvanceBookingDays,
		MinBookingNoticeMinutes: r.MinBookingNoticeMinutes,
		AutoAcceptBookings:      r.AutoAcceptBookings,
		RequireDeposit:          r.RequireDeposit,
	}
	if n := r.Notifications; n != nil {
		req.Notifications = &models.NotificationsUpdate{
			NewBookings: n.NewBookings,
			NewMessages: n.NewMessages,
			NewReviews:  n.NewReviews,
			Email:       n.Email,
			SMS:         n.SMS,
			Reminders:   n.Reminders,
		}
	}
	return req
}
