package get_week_slots

import (
	"time"

	"github.com/m04kA/SMC-InspectionBooking/internal/domain"
)

// Request модель запроса сетки слотов на неделю
type Request struct {
	Date       time.Time // Любая дата недели; нулевое значение - сегодня
	WeekOffset int       // Сдвиг в неделях относительно недели Date
}

// Response модель ответа с сеткой слотов
type Response struct {
	WeekStart time.Time         // Понедельник
	WeekEnd   time.Time         // Воскресенье
	Days      []domain.DaySlots // Ровно 7 дней
}
