package booking

import "errors"

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("booking.repository: booking not found")

	// ErrSlotNotAvailable возвращается, когда вместимость слота исчерпана
	ErrSlotNotAvailable = errors.New("booking.repository: slot not available")

	// ErrConflict возвращается при конфликте сериализации или нарушении уникальности
	ErrConflict = errors.New("booking.repository: concurrent modification")

	// ErrTransaction возвращается, когда операция требует активной транзакции
	ErrTransaction = errors.New("booking.repository: transaction required")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("booking.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("booking.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("booking.repository: failed to scan row")
)
