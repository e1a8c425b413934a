package create_booking

import (
	"time"

	"github.com/m04kA/SMC-InspectionBooking/pkg/types"
)

// Request модель запроса на создание бронирования
type Request struct {
	// Клиент
	Name  string
	Email string
	Phone string

	// Автомобиль
	Registration string
	VehicleType  string
	Brand        *string
	Model        *string

	Date      time.Time        // Дата осмотра (без времени)
	StartTime types.TimeString // Время начала слота (например, "10:00")
	Notes     *string          // Дополнительные заметки (опционально)
}

// Response модель ответа с созданным бронированием
type Response struct {
	ID                  int64
	BookingDate         time.Time
	StartTime           types.TimeString
	DurationMinutes     int
	Status              string
	Price               float64
	VehicleRegistration string
	VehicleType         string

	// Срок действия выданного кода; nil, если код выдать не удалось (доступна повторная отправка)
	VerificationExpiresAt *time.Time

	CreatedAt time.Time
}
