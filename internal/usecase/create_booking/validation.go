package create_booking

import (
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/m04kA/SMC-ArtistScheduling/internal/domain"
	"github.com/m04kA/SMC-ArtistScheduling/pkg/types"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.CustomerID <= 0 {
		return fmt.Errorf("%w: customerID must be positive", ErrInvalidInput)
	}

	if req.ArtistID <= 0 {
		return fmt.Errorf("%w: artistID must be positive", ErrInvalidInput)
	}

	// Проверяем, что дата не является нулевой
	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	// Проверяем, что время начала указано
	if req.StartTime.IsZero() {
		return fmt.Errorf("%w: startTime is required", ErrInvalidInput)
	}

	if err := req.StartTime.Validate(); err != nil {
		return fmt.Errorf("%w: invalid startTime format: %v", ErrInvalidInput, err)
	}

	if req.EndTime != nil {
		if err := req.EndTime.Validate(); err != nil {
			return fmt.Errorf("%w: invalid endTime format: %v", ErrInvalidInput, err)
		}
	}

	if req.DurationMinutes != 0 &&
		(req.DurationMinutes < domain.MinDurationMinutes || req.DurationMinutes > domain.MaxDurationMinutes) {
		return fmt.Errorf("%w: duration must be between %d and %d minutes",
			ErrInvalidInput, domain.MinDurationMinutes, domain.MaxDurationMinutes)
	}

	if req.Amount != nil && *req.Amount < 0 {
		return fmt.Errorf("%w: amount must not be negative", ErrInvalidInput)
	}

	if req.Notes != nil && utf8.RuneCountInString(*req.Notes) > domain.MaxNotesLength {
		return fmt.Errorf("%w: notes must be at most %d characters", ErrInvalidInput, domain.MaxNotesLength)
	}

	return nil
}

// resolveRange вычисляет интервал бронирования:
// явное окончание, иначе начало + запрошенная длительность, иначе начало + длительность из настроек
func resolveRange(req *Request, defaultDuration int) (domain.TimeRange, error) {
	var end types.TimeString

	switch {
	case req.EndTime != nil:
		end = *req.EndTime
	default:
		duration := req.DurationMinutes
		if duration == 0 {
			duration = defaultDuration
		}
		e, err := req.StartTime.AddMinutes(duration)
		if err != nil {
			return domain.TimeRange{}, fmt.Errorf("%w: %s + %d minutes crosses midnight", ErrInvalidRange, req.StartTime, duration)
		}
		end = e
	}

	r, err := domain.NewTimeRange(req.StartTime, end)
	if err != nil {
		return domain.TimeRange{}, fmt.Errorf("%w: %v", ErrInvalidRange, err)
	}
	return r, nil
}

// validateDate проверяет, что дата подходит для бронирования
func validateDate(requestDate time.Time, now time.Time, advanceBookingDays int) error {
	today := domain.DateOnly(now)
	y, m, d := requestDate.Date()
	date := time.Date(y, m, d, 0, 0, 0, 0, now.Location())

	if date.Before(today) {
		return ErrInvalidDate
	}

	// Если advanceBookingDays = 0, нет ограничений на дату
	if advanceBookingDays == 0 {
		return nil
	}

	if date.After(today.AddDate(0, 0, advanceBookingDays)) {
		return fmt.Errorf("%w: can only book %d days in advance", ErrDateTooFarInFuture, advanceBookingDays)
	}

	return nil
}

// validateBookingTime проверяет, что бронирование не нарушает minBookingNoticeMinutes
func validateBookingTime(date time.Time, startTime types.TimeString, now time.Time, minBookingNoticeMinutes int) error {
	// Если дата бронирования не сегодня, проверка не нужна
	if !domain.SameDay(date, now) {
		return nil
	}

	earliest := now.Hour()*60 + now.Minute() + minBookingNoticeMinutes
	if startTime.Minutes() < earliest {
		return fmt.Errorf("%w: must book at least %d minutes in advance", ErrTooLateToBook, minBookingNoticeMinutes)
	}

	return nil
}

// findConflict возвращает первое неотмененное бронирование, пересекающееся с интервалом.
// Бронирования расширяются на buffer с обеих сторон.
func findConflict(r domain.TimeRange, bookings []*domain.Booking, bufferMinutes int) *domain.Booking {
	for _, b := range bookings {
		if !b.IsActive() {
			continue
		}
		if b.TimeRange().Widen(bufferMinutes).Overlaps(r) {
			return b
		}
	}
	return nil
}
