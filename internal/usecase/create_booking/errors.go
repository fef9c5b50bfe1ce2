package create_booking

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-ArtistScheduling/pkg/pgerrors"
)

var (
	// ErrArtistNotFound возвращается, когда артист не найден
	ErrArtistNotFound = errors.New("create_booking: artist not found")

	// ErrArtistNotBookable возвращается, когда артист не принимает бронирования
	ErrArtistNotBookable = errors.New("create_booking: artist is not accepting bookings")

	// ErrCustomerNotFound возвращается, когда клиент не найден
	ErrCustomerNotFound = errors.New("create_booking: customer not found")

	// ErrInvalidDate возвращается при некорректной дате бронирования
	ErrInvalidDate = errors.New("create_booking: invalid booking date")

	// ErrDateTooFarInFuture возвращается, когда дата превышает ограничение advanceBookingDays
	ErrDateTooFarInFuture = errors.New("create_booking: date is too far in the future")

	// ErrTooLateToBook возвращается, когда попытка забронировать слот нарушает minBookingNoticeMinutes
	ErrTooLateToBook = errors.New("create_booking: too late to book this slot")

	// ErrSlotNotAvailable возвращается, когда интервал вне окна доступности или пересекается с другим бронированием
	ErrSlotNotAvailable = errors.New("create_booking: slot is not available")

	// ErrInvalidRange возвращается, когда время окончания не позже времени начала
	ErrInvalidRange = errors.New("create_booking: invalid time range")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_booking: invalid input data")

	// ErrStorageTimeout возвращается, когда запрос к хранилищу не уложился в таймаут
	ErrStorageTimeout = errors.New("create_booking: storage timeout")

	// ErrStorageUnavailable возвращается при любых других ошибках хранилища
	ErrStorageUnavailable = errors.New("create_booking: storage unavailable")
)

// storageError классифицирует ошибку репозитория, не теряя исходную
func storageError(op string, err error) error {
	if pgerrors.IsTimeout(err) {
		return fmt.Errorf("%w: %s: %w", ErrStorageTimeout, op, err)
	}
	return fmt.Errorf("%w: %s: %w", ErrStorageUnavailable, op, err)
}
