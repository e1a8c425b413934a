package booking

import (
	"errors"

	"github.com/lib/pq"
)

const (
	pgUniqueViolation      = "23505"
	pgSerializationFailure = "40001"
	pgDeadlockDetected     = "40P01"
)

// IsConflictError проверяет, что ошибка Postgres означает гонку параллельных транзакций
func IsConflictError(err error) bool {
	if errors.Is(err, ErrConflict) {
		return true
	}
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return false
	}
	switch pqErr.Code {
	case pgUniqueViolation, pgSerializationFailure, pgDeadlockDetected:
		return true
	default:
		return false
	}
}
