package create_booking

import (
	"time"

	"github.com/m04kA/SMC-ArtistScheduling/internal/api/handlers"
	"github.com/m04kA/SMC-ArtistScheduling/internal/domain"
	createBooking "github.com/m04kA/SMC-ArtistScheduling/internal/usecase/create_booking"
	"github.com/m04kA/SMC-ArtistScheduling/pkg/types"
)

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	ArtistID        int64    `json:"artistId" validate:"required,gt=0"`
	AppointmentDate string   `json:"appointmentDate" validate:"required,isodate"` // "2025-10-15"
	StartTime       string   `json:"startTime" validate:"required,timeofday"`     // "10:00"
	EndTime         *string  `json:"endTime,omitempty" validate:"omitempty,timeofday"`
	DurationMinutes int      `json:"durationMinutes,omitempty" validate:"omitempty,min=15,max=720"`
	Amount          *float64 `json:"amount,omitempty" validate:"omitempty,gte=0"`
	Notes           *string  `json:"notes,omitempty" validate:"omitempty,max=500"`
}

// BookingResponse HTTP response model
type BookingResponse struct {
	ID              int64   `json:"id"`
	CustomerID      int64   `json:"customerId"`
	ArtistID        int64   `json:"artistId"`
	AppointmentDate string  `json:"appointmentDate"`
	StartTime       string  `json:"startTime"`
	EndTime         string  `json:"endTime"`
	DurationMinutes int     `json:"durationMinutes"`
	Status          string  `json:"status"`
	Amount          float64 `json:"amount"`
	Notes           *string `json:"notes,omitempty"`
	CreatedAt       string  `json:"createdAt"`
	UpdatedAt       string  `json:"updatedAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case.
// Формат полей уже проверен валидатором.
func (r *CreateBookingRequest) ToUseCaseRequest(customerID int64) (*createBooking.Request, error) {
	date, err := handlers.ParseDate(r.AppointmentDate)
	if err != nil {
		return nil, err
	}

	startTime, err := types.NewTimeStringFromString(r.StartTime)
	if err != nil {
		return nil, err
	}

	req := &createBooking.Request{
		CustomerID:      customerID,
		ArtistID:        r.ArtistID,
		Date:            date,
		StartTime:       startTime,
		DurationMinutes: r.DurationMinutes,
		Amount:          r.Amount,
		Notes:           r.Notes,
	}

	if r.EndTime != nil {
		endTime, err := types.NewTimeStringFromString(*r.EndTime)
		if err != nil {
			return nil, err
		}
		req.EndTime = &endTime
	}

	return req, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createBooking.Response) *BookingResponse {
	return &BookingResponse{
		ID:              resp.ID,
		CustomerID:      resp.CustomerID,
		ArtistID:        resp.ArtistID,
		AppointmentDate: resp.AppointmentDate.Format(domain.DateFormat),
		StartTime:       resp.StartTime.String(),
		EndTime:         resp.EndTime.String(),
		DurationMinutes: resp.DurationMinutes,
		Status:          resp.Status,
		Amount:          resp.Amount,
		Notes:           resp.Notes,
		CreatedAt:       resp.CreatedAt.Format(time.RFC3339),
		UpdatedAt:       resp.UpdatedAt.Format(time.RFC3339),
	}
}
