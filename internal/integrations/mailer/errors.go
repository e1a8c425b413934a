package mailer

import "errors"

var (
	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("mailer client: internal error")

	// ErrRejected возвращается, когда почтовый сервис отклонил письмо (4xx)
	ErrRejected = errors.New("mailer client: message rejected")

	// ErrInvalidResponse возвращается при некорректном ответе от сервиса
	ErrInvalidResponse = errors.New("mailer client: invalid response")
)
