package create_booking

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_booking: invalid input data")

	// ErrSlotNoLongerAvailable возвращается, когда слот заняли параллельно и повторная попытка не удалась
	ErrSlotNoLongerAvailable = errors.New("create_booking: slot no longer available")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_booking: internal error")
)
