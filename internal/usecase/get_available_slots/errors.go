package get_available_slots

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-ArtistScheduling/pkg/pgerrors"
)

var (
	// ErrArtistNotFound возвращается, когда артист не найден
	ErrArtistNotFound = errors.New("artist not found")

	// ErrArtistNotBookable возвращается, когда профиль артиста не одобрен
	ErrArtistNotBookable = errors.New("artist is not accepting bookings")

	// ErrInvalidDate возвращается при дате в прошлом
	ErrInvalidDate = errors.New("invalid booking date")

	// ErrDateTooFarInFuture возвращается, когда дата превышает ограничение advanceBookingDays
	ErrDateTooFarInFuture = errors.New("date is too far in the future")

	// ErrInvalidRange возвращается, когда окно или длительность не образуют корректный интервал
	ErrInvalidRange = errors.New("invalid time range")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrStorageTimeout возвращается, когда запрос к хранилищу не уложился в таймаут
	ErrStorageTimeout = errors.New("storage timeout")

	// ErrStorageUnavailable возвращается при любых других ошибках хранилища
	ErrStorageUnavailable = errors.New("storage unavailable")
)

func storageError(op string, err error) error {
	if pgerrors.IsTimeout(err) {
		return fmt.Errorf("%w: %s: %w", ErrStorageTimeout, op, err)
	}
	return fmt.Errorf("%w: %s: %w", ErrStorageUnavailable, op, err)
}
