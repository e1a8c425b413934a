package sms

import "errors"

var (
	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("sms client: internal error")

	// ErrRejected возвращается, когда шлюз отклонил сообщение (4xx)
	ErrRejected = errors.New("sms client: message rejected")

	// ErrInvalidResponse возвращается при некорректном ответе от шлюза
	ErrInvalidResponse = errors.New("sms client: invalid response")
)
