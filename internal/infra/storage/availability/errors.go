package availability

import "errors"

var (
	// ErrWindowNotFound возвращается, когда на дату нет окна доступности
	ErrWindowNotFound = errors.New("availability.repository: window not found")

	// ErrArtistNotFound возвращается при нарушении внешнего ключа на artists
	ErrArtistNotFound = errors.New("availability.repository: artist not found")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("availability.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("availability.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("availability.repository: failed to scan row")
)
