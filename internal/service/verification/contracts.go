package verification

import (
	"context"
	"time"

	"github.com/m04kA/SMC-InspectionBooking/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	// GetByID внутри транзакции блокирует строку (FOR UPDATE)
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	UpdateVerification(ctx context.Context, id int64, status domain.BookingStatus, v domain.Verification, confirmedAt *time.Time) error
}

// EmailNotifier отправка писем по шаблону
type EmailNotifier interface {
	Send(ctx context.Context, to string, templateID string, data map[string]interface{}) error
}

// SMSNotifier отправка SMS
type SMSNotifier interface {
	Send(ctx context.Context, phone string, text string) error
}

// AdminNotifier внутреннее уведомление администрации о подтверждённой записи
type AdminNotifier interface {
	NotifyBookingConfirmed(ctx context.Context, booking *domain.Booking) error
}

// CodeGenerator генератор одноразовых кодов
type CodeGenerator interface {
	Generate() (string, error)
}

// CodeHasher хэширование кодов перед сохранением
type CodeHasher interface {
	Hash(code string) (string, error)
	Matches(hash, code string) bool
}

// ResendCooldown ограничение частоты повторной отправки кода
type ResendCooldown interface {
	// Acquire возвращает false, если повторная отправка для бронирования ещё на паузе
	Acquire(ctx context.Context, bookingID int64, ttl time.Duration) (bool, error)
	// Release снимает паузу досрочно
	Release(ctx context.Context, bookingID int64) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Metrics счётчики верификации и уведомлений
type Metrics interface {
	IncVerification(channel, result string)
	IncNotificationFailed(channel string)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
