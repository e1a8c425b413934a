package create_booking

import (
	"context"
	"time"

	"github.com/m04kA/SMC-InspectionBooking/internal/domain"
	"github.com/m04kA/SMC-InspectionBooking/internal/service/verification"
	"github.com/m04kA/SMC-InspectionBooking/pkg/types"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	// CreateIfAvailable вставляет бронирование, если в слоте осталось место (вызывается в транзакции)
	CreateIfAvailable(ctx context.Context, booking *domain.Booking, capacity int) (*domain.Booking, error)
}

// CustomerRepository интерфейс хранилища клиентов и автомобилей
type CustomerRepository interface {
	FindOrCreateCustomer(ctx context.Context, customer *domain.Customer) (*domain.Customer, error)
	FindOrCreateVehicle(ctx context.Context, vehicle *domain.Vehicle) (*domain.Vehicle, error)
}

// ReservationValidator интерфейс проверки слота
type ReservationValidator interface {
	Validate(ctx context.Context, date time.Time, startTime types.TimeString) error
}

// VerificationCoordinator интерфейс выдачи кода подтверждения
type VerificationCoordinator interface {
	Initiate(ctx context.Context, bookingID int64) (*verification.Issued, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// Metrics бизнес-метрики бронирований
type Metrics interface {
	IncBookingCreated()
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
