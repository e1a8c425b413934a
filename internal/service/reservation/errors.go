package reservation

import "errors"

// RejectionError ожидаемый отказ в бронировании с причиной для пользователя
type RejectionError struct {
	Reason string
}

func (e *RejectionError) Error() string {
	return e.Reason
}

var (
	// ErrSlotInPast дата и время не строго позже текущего момента
	ErrSlotInPast = &RejectionError{Reason: "cannot book in the past"}

	// ErrClosedDay день недели - выходной
	ErrClosedDay = &RejectionError{Reason: "closed on Sunday"}

	// ErrTimeNotOffered время не входит в расписание дня
	ErrTimeNotOffered = &RejectionError{Reason: "time not offered"}

	// ErrSlotBlocked слот заблокирован администратором
	ErrSlotBlocked = &RejectionError{Reason: "slot currently unavailable"}

	// ErrSlotFull все места в слоте заняты
	ErrSlotFull = &RejectionError{Reason: "slot full"}

	// ErrInternal возвращается при ошибках хранилища
	ErrInternal = errors.New("reservation: internal error")
)

// IsRejection возвращает true, если err - ожидаемый отказ валидатора
func IsRejection(err error) bool {
	var rejection *RejectionError
	return errors.As(err, &rejection)
}

// RejectionReason возвращает причину отказа или пустую строку
func RejectionReason(err error) string {
	var rejection *RejectionError
	if errors.As(err, &rejection) {
		return rejection.Reason
	}
	return ""
}
