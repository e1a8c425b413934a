package blockedslots

import "errors"

var (
	// ErrBlockedSlotNotFound возвращается, когда блокировка не найдена
	ErrBlockedSlotNotFound = errors.New("blocked slot not found")

	// ErrAlreadyBlocked возвращается, когда слот уже заблокирован
	ErrAlreadyBlocked = errors.New("slot already blocked")

	// ErrTimeNotOffered возвращается, когда время не входит в расписание дня
	ErrTimeNotOffered = errors.New("time is not an opening-hours slot")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInvalidTimeRange возвращается при некорректном периоде
	ErrInvalidTimeRange = errors.New("invalid time range")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
