package models

import (
	"errors"
	"time"

	"github.com/m04kA/SMC-ArtistScheduling/internal/domain"
)

var (
	// ErrInvalidStatus возвращается при некорректном статусе
	ErrInvalidStatus = errors.New("invalid booking status")
)

// Request модели

// ChangeStatusRequest запрос на изменение статуса бронирования событием (accept, reject, complete, cancel)
type ChangeStatusRequest struct {
	BookingID int64
	UserID    int64
	Event     string
}

// GetCustomerBookingsRequest запрос на получение бронирований клиента
type GetCustomerBookingsRequest struct {
	UserID     int64
	CustomerID int64
	Status     *string
}

// StatusFilterAll значение status, отключающее фильтр по статусу
const StatusFilterAll = "all"

// GetArtistBookingsRequest запрос на получение бронирований артиста
type GetArtistBookingsRequest struct {
	UserID           int64
	ArtistID         int64
	Status           *string    // nil или "all" - все статусы
	Period           string     // all, today, this_week, this_month, last_30_days
	Date             *time.Time // конкретная дата, имеет приоритет над периодом
	IncludeCancelled bool
	Sort             string // date_desc, date_asc, customer_name, amount_desc
}

// ToDomainFilter конвертирует request в domain фильтр относительно now
func (r *GetArtistBookingsRequest) ToDomainFilter(now time.Time) (domain.ArtistBookingsFilter, error) {
	filter := domain.ArtistBookingsFilter{
		ArtistID:         r.ArtistID,
		Date:             r.Date,
		IncludeCancelled: r.IncludeCancelled,
	}

	if r.Status != nil && *r.Status != StatusFilterAll {
		status, err := ToDomainBookingStatus(*r.Status)
		if err != nil {
			return filter, err
		}
		filter.Status = &status
	}

	if r.Date == nil {
		period, err := domain.ParseBookingPeriod(r.Period)
		if err != nil {
			return filter, err
		}
		filter.ApplyPeriod(period, now)
	}

	sort, err := domain.ParseBookingSort(r.Sort)
	if err != nil {
		return filter, err
	}
	filter.Sort = sort

	return filter, nil
}

// GetArtistStatsRequest запрос статистики артиста
type GetArtistStatsRequest struct {
	UserID   int64
	ArtistID int64
	Period   string // период для агрегатов, по умолчанию за все время
}

// Response модели

// BookingResponse ответ с данными бронирования
type BookingResponse struct {
	ID              int64     `json:"id"`
	CustomerID      int64     `json:"customerId"`
	CustomerName    string    `json:"customerName,omitempty"`
	ArtistID        int64     `json:"artistId"`
	AppointmentDate string    `json:"appointmentDate"` // "2025-10-15"
	StartTime       string    `json:"startTime"`       // "10:00"
	EndTime         string    `json:"endTime"`         // "12:00"
	Status          string    `json:"status"`
	Amount          float64   `json:"amount"`
	Notes           *string   `json:"notes,omitempty"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

// BookingListResponse ответ со списком бронирований
type BookingListResponse struct {
	Bookings []BookingResponse `json:"bookings"`
	Total    int               `json:"total"`
}

// TopCustomerResponse самый частый клиент артиста
type TopCustomerResponse struct {
	CustomerID    int64  `json:"customerId"`
	Name          string `json:"name"`
	BookingsCount int    `json:"bookingsCount"`
}

// ArtistStatsResponse агрегаты по бронированиям артиста
type ArtistStatsResponse struct {
	ArtistID         int64                `json:"artistId"`
	Period           string               `json:"period"`
	Total            int                  `json:"total"`
	Pending          int                  `json:"pending"`
	Confirmed        int                  `json:"confirmed"`
	Completed        int                  `json:"completed"`
	Cancelled        int                  `json:"cancelled"`
	CompletionRate   float64              `json:"completionRate"`
	CompletedRevenue float64              `json:"completedRevenue"`
	AverageAmount    float64              `json:"averageAmount"`
	TodayBookings    int                  `json:"todayBookings"`
	PendingRequests  int                  `json:"pendingRequests"`
	RepeatCustomers  int                  `json:"repeatCustomers"`
	NewCustomers     int                  `json:"newCustomers"` // за последние 30 дней
	TopCustomer      *TopCustomerResponse `json:"topCustomer,omitempty"`
}

// Методы конвертации

// FromDomainBooking конвертирует domain модель в DTO
func FromDomainBooking(b *domain.Booking) *BookingResponse {
	if b == nil {
		return nil
	}

	return &BookingResponse{
		ID:              b.ID,
		CustomerID:      b.CustomerID,
		CustomerName:    b.CustomerName,
		ArtistID:        b.ArtistID,
		AppointmentDate: b.AppointmentDate.Format(domain.DateFormat),
		StartTime:       b.StartTime.String(),
		EndTime:         b.EndTime.String(),
		Status:          string(b.Status),
		Amount:          b.Amount,
		Notes:           b.Notes,
		CreatedAt:       b.CreatedAt,
		UpdatedAt:       b.UpdatedAt,
	}
}

// FromDomainBookingList конвертирует список domain моделей в DTO
func FromDomainBookingList(bookings []*domain.Booking) *BookingListResponse {
	resp := &BookingListResponse{
		Bookings: make([]BookingResponse, 0, len(bookings)),
		Total:    len(bookings),
	}

	for _, booking := range bookings {
		if bookingResp := FromDomainBooking(booking); bookingResp != nil {
			resp.Bookings = append(resp.Bookings, *bookingResp)
		}
	}

	return resp
}

// ToDomainBookingStatus конвертирует строку в domain.BookingStatus с валидацией
func ToDomainBookingStatus(status string) (domain.BookingStatus, error) {
	s, err := domain.ParseBookingStatus(status)
	if err != nil {
		return "", ErrInvalidStatus
	}
	return s, nil
}
