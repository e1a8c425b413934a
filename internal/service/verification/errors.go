package verification

import "errors"

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("verification: booking not found")

	// ErrInvalidCode возвращается, когда код не совпадает с последним выданным
	ErrInvalidCode = errors.New("verification: invalid code")

	// ErrCodeExpired возвращается, когда срок действия кода истёк
	ErrCodeExpired = errors.New("verification: code expired")

	// ErrAlreadyConfirmed возвращается для уже подтверждённого бронирования
	ErrAlreadyConfirmed = errors.New("verification: booking already confirmed")

	// ErrBookingNotPending возвращается для отменённого или завершённого бронирования
	ErrBookingNotPending = errors.New("verification: booking is not awaiting verification")

	// ErrInvalidChannel возвращается для неизвестного канала
	ErrInvalidChannel = errors.New("verification: invalid channel")

	// ErrResendTooSoon возвращается, если повторная отправка запрошена слишком рано
	ErrResendTooSoon = errors.New("verification: resend requested too soon")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("verification: internal error")
)

// errTxConflict конфликт параллельных транзакций, после которого транзакция повторяется
var errTxConflict = errors.New("verification: concurrent update")
