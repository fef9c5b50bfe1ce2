package artist

import "errors"

var (
	// ErrArtistNotFound возвращается, когда профиль артиста не найден
	ErrArtistNotFound = errors.New("artist.repository: artist not found")

	// ErrSettingsNotFound возвращается, когда артист еще не сохранял настройки
	ErrSettingsNotFound = errors.New("artist.repository: settings not found")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("artist.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("artist.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("artist.repository: failed to scan row")
)
