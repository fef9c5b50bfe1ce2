package availability

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-ArtistScheduling/pkg/pgerrors"
)

var (
	// ErrArtistNotFound возвращается, когда артист не найден
	ErrArtistNotFound = errors.New("artist not found")

	// ErrAccessDenied возвращается, когда пользователь не владелец профиля артиста
	ErrAccessDenied = errors.New("access denied")

	// ErrInvalidRange возвращается, когда начало окна не раньше конца
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
