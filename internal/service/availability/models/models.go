package models

import (
	"time"

	"github.com/m04kA/SMC-ArtistScheduling/internal/domain"
)

// Request модели

// SetWindowRequest запрос на установку окна доступности на дату
type SetWindowRequest struct {
	UserID      int64
	ArtistID    int64
	Date        time.Time
	StartTime   string // "09:00", игнорируется для закрытого дня
	EndTime     string // "17:00", игнорируется для закрытого дня
	IsAvailable bool
}

// GetWindowsRequest запрос окон доступности за диапазон дат (включительно)
type GetWindowsRequest struct {
	ArtistID int64
	From     time.Time
	To       time.Time
}

// CopyWeekRequest запрос на копирование недели вперед
type CopyWeekRequest struct {
	UserID          int64
	ArtistID        int64
	SourceWeekStart *time.Time // nil = сегодня
}

// StandardHoursRequest запрос на применение стандартного графика
type StandardHoursRequest struct {
	UserID    int64
	ArtistID  int64
	From      *time.Time // nil = сегодня
	Days      int        // 0 = неделя
	OpenTime  string     // "" = 09:00
	CloseTime string     // "" = 17:00
}

// BlockAllRequest запрос на закрытие дней
type BlockAllRequest struct {
	UserID   int64
	ArtistID int64
	From     *time.Time // nil = сегодня
	Days     int        // 0 = неделя
}

// Response модели

// WindowResponse окно доступности артиста
type WindowResponse struct {
	ID          int64     `json:"id"`
	ArtistID    int64     `json:"artistId"`
	Date        string    `json:"date"`      // "2025-10-15"
	StartTime   string    `json:"startTime"` // "09:00"
	EndTime     string    `json:"endTime"`   // "17:00"
	IsAvailable bool      `json:"isAvailable"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// WindowListResponse список окон
type WindowListResponse struct {
	ArtistID int64            `json:"artistId"`
	From     string           `json:"from"`
	To       string           `json:"to"`
	Windows  []WindowResponse `json:"windows"`
}

// BulkResponse результат массовой операции над окнами
type BulkResponse struct {
	ArtistID     int64    `json:"artistId"`
	AffectedDays int      `json:"affectedDays"`
	Dates        []string `json:"dates"`
}

// Методы конвертации

// FromDomainWindow конвертирует domain модель в DTO
func FromDomainWindow(w *domain.AvailabilityWindow) *WindowResponse {
	if w == nil {
		return nil
	}

	return &WindowResponse{
		ID:          w.ID,
		ArtistID:    w.ArtistID,
		Date:        w.Date.Format(domain.DateFormat),
		StartTime:   w.Range.Start.String(),
		EndTime:     w.Range.End.String(),
		IsAvailable: w.IsAvailable,
		CreatedAt:   w.CreatedAt,
		UpdatedAt:   w.UpdatedAt,
	}
}

// FromDomainWindows конвертирует список окон в DTO
func FromDomainWindows(artistID int64, from, to time.Time, windows []*domain.AvailabilityWindow) *WindowListResponse {
	resp := &WindowListResponse{
		ArtistID: artistID,
		From:     from.Format(domain.DateFormat),
		To:       to.Format(domain.DateFormat),
		Windows:  make([]WindowResponse, 0, len(windows)),
	}
	for _, w := range windows {
		resp.Windows = append(resp.Windows, *FromDomainWindow(w))
	}
	return resp
}

// NewBulkResponse собирает ответ массовой операции по списку затронутых дат
func NewBulkResponse(artistID int64, dates []time.Time) *BulkResponse {
	resp := &BulkResponse{
		ArtistID:     artistID,
		AffectedDays: len(dates),
		Dates:        make([]string, 0, len(dates)),
	}
	for _, d := range dates {
		resp.Dates = append(resp.Dates, d.Format(domain.DateFormat))
	}
	return resp
}
