package bookings

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-ArtistScheduling/pkg/pgerrors"
	"github.com/m04kA/SMC-ArtistScheduling/pkg/txmanager"
)

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("booking not found")

	// ErrArtistNotFound возвращается, когда артист не найден
	ErrArtistNotFound = errors.New("artist not found")

	// ErrAccessDenied возвращается, когда у пользователя нет прав доступа
	ErrAccessDenied = errors.New("access denied")

	// ErrInvalidTransition возвращается, когда переход статуса не разрешен
	ErrInvalidTransition = errors.New("invalid booking status transition")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrStorageTimeout возвращается, когда запрос к хранилищу не уложился в таймаут
	ErrStorageTimeout = errors.New("storage timeout")

	// ErrStorageUnavailable возвращается при любых других ошибках хранилища
	ErrStorageUnavailable = errors.New("storage unavailable")
)

// storageError классифицирует ошибку репозитория, не теряя исходную
func storageError(op string, err error) error {
	if pgerrors.IsTimeout(err) {
		return fmt.Errorf("%w: %s: %w", ErrStorageTimeout, op, err)
	}
	return fmt.Errorf("%w: %s: %w", ErrStorageUnavailable, op, err)
}

// txError переводит сбои самой транзакции (begin, commit, конфликт) в ошибки хранилища.
// Ошибки, возвращенные из тела транзакции, уже классифицированы.
func txError(op string, err error) error {
	if errors.Is(err, txmanager.ErrBeginTx) ||
		errors.Is(err, txmanager.ErrCommitTx) ||
		errors.Is(err, txmanager.ErrSerialization) {
		return storageError(op, err)
	}
	return err
}
