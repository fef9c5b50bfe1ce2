package booking

import "errors"

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("booking.repository: booking not found")

	// ErrSlotTaken возвращается, когда на это время уже есть неотмененное бронирование (уникальный индекс)
	ErrSlotTaken = errors.New("booking.repository: slot already taken")

	// ErrReferenceNotFound возвращается при нарушении внешнего ключа (нет клиента или артиста)
	ErrReferenceNotFound = errors.New("booking.repository: referenced customer or artist not found")

	// ErrInvalidData возвращается при нарушении CHECK ограничений таблицы
	ErrInvalidData = errors.New("booking.repository: invalid booking data")

	// ErrStatusChanged возвращается, если статус бронирования изменился до обновления
	ErrStatusChanged = errors.New("booking.repository: booking status changed concurrently")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("booking.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("booking.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("booking.repository: failed to scan row")
)
