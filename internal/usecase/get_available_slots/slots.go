package get_available_slots

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-ArtistScheduling/internal/domain"
	"github.com/m04kA/SMC-ArtistScheduling/pkg/types"
)

// resolveSlots рассчитывает свободные слоты на день. Чистая функция, без обращения к хранилищу.
//
// 1. Закрытый день или отсутствие окна - пустой список
// 2. Из окна вычитаются все неотмененные бронирования, расширенные на buffer с обеих сторон
// 3. Сетка начал строится от начала окна с шагом granularity
// 4. Начало попадает в результат, если [start, start+duration) целиком лежит в одном свободном интервале
//
// Пример (окно 09:00-17:00, бронирование 11:00-12:00, duration 60, granularity 60):
// 09:00, 10:00, 12:00, 13:00, 14:00, 15:00, 16:00
func resolveSlots(
	window *domain.AvailabilityWindow,
	bookings []*domain.Booking,
	durationMinutes int,
	granularityMinutes int,
	bufferMinutes int,
) ([]domain.AvailableSlot, error) {
	if durationMinutes <= 0 {
		return nil, fmt.Errorf("%w: duration must be positive, got %d", ErrInvalidRange, durationMinutes)
	}
	if granularityMinutes <= 0 {
		return nil, fmt.Errorf("%w: granularity must be positive, got %d", ErrInvalidRange, granularityMinutes)
	}

	result := make([]domain.AvailableSlot, 0)

	if window == nil || !window.IsOpen() {
		return result, nil
	}
	if err := window.Range.Validate(); err != nil {
		return nil, fmt.Errorf("%w: window %s: %v", ErrInvalidRange, window.Range, err)
	}

	occupied := make([]domain.TimeRange, 0, len(bookings))
	for _, b := range bookings {
		if !b.IsActive() {
			continue
		}
		occupied = append(occupied, b.TimeRange().Widen(bufferMinutes))
	}

	free := domain.SubtractAll([]domain.TimeRange{window.Range}, occupied)
	if len(free) == 0 {
		return result, nil
	}

	windowStart, windowEnd := window.Range.Start.Minutes(), window.Range.End.Minutes()
	for start := windowStart; start+durationMinutes <= windowEnd; start += granularityMinutes {
		st, err := types.NewTimeStringFromMinutes(start)
		if err != nil {
			return nil, err
		}
		et, err := types.NewTimeStringFromMinutes(start + durationMinutes)
		if err != nil {
			return nil, err
		}

		candidate := domain.TimeRange{Start: st, End: et}
		for _, f := range free {
			if f.Contains(candidate) {
				result = append(result, domain.AvailableSlot{StartTime: st, EndTime: et})
				break
			}
		}
	}

	return result, nil
}

// filterByNotice убирает слоты, до начала которых осталось меньше minNoticeMinutes.
// Применяется только к сегодняшней дате.
func filterByNotice(slots []domain.AvailableSlot, date, now time.Time, minNoticeMinutes int) []domain.AvailableSlot {
	if !domain.SameDay(date, now) {
		return slots
	}

	earliest := now.Hour()*60 + now.Minute() + minNoticeMinutes

	result := make([]domain.AvailableSlot, 0, len(slots))
	for _, s := range slots {
		if s.StartTime.Minutes() >= earliest {
			result = append(result, s)
		}
	}
	return result
}
