package get_week_slots

import (
	"strconv"
	"time"

	"github.com/m04kA/SMC-InspectionBooking/internal/domain"
	getWeekSlots "github.com/m04kA/SMC-InspectionBooking/internal/usecase/get_week_slots"
)

// TimeSlotResponse HTTP модель слота
type TimeSlotResponse struct {
	Time      string `json:"time"` // "10:00"
	Available bool   `json:"available"`
	Reserved  bool   `json:"reserved"`
}

// DaySlotsResponse HTTP модель дня
type DaySlotsResponse struct {
	Date    string             `json:"date"` // "2026-10-20"
	DayName string             `json:"dayName"`
	IsToday bool               `json:"isToday"`
	IsPast  bool               `json:"isPast"`
	Slots   []TimeSlotResponse `json:"slots"`
}

// WeekSlotsResponse HTTP модель ответа
type WeekSlotsResponse struct {
	WeekStart string             `json:"weekStart"`
	WeekEnd   string             `json:"weekEnd"`
	Days      []DaySlotsResponse `json:"days"`
}

// ToUseCaseRequest конвертирует query параметры в модель use case.
// Пустые значения допустимы: текущая неделя без сдвига.
func ToUseCaseRequest(dateStr, offsetStr string) (*getWeekSlots.Request, error) {
	req := &getWeekSlots.Request{}

	if dateStr != "" {
		date, err := time.Parse(domain.DateFormat, dateStr)
		if err != nil {
			return nil, errInvalidDate
		}
		req.Date = date
	}

	if offsetStr != "" {
		offset, err := strconv.Atoi(offsetStr)
		if err != nil {
			return nil, errInvalidOffset
		}
		req.WeekOffset = offset
	}

	return req, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getWeekSlots.Response) *WeekSlotsResponse {
	out := &WeekSlotsResponse{
		WeekStart: resp.WeekStart.Format(domain.DateFormat),
		WeekEnd:   resp.WeekEnd.Format(domain.DateFormat),
		Days:      make([]DaySlotsResponse, 0, len(resp.Days)),
	}

	for _, day := range resp.Days {
		slots := make([]TimeSlotResponse, 0, len(day.Slots))
		for _, s := range day.Slots {
			slots = append(slots, TimeSlotResponse{
				Time:      s.Time.String(),
				Available: s.Available,
				Reserved:  s.Reserved,
			})
		}
		out.Days = append(out.Days, DaySlotsResponse{
			Date:    day.Date.Format(domain.DateFormat),
			DayName: day.DayName,
			IsToday: day.IsToday,
			IsPast:  day.IsPast,
			Slots:   slots,
		})
	}

	return out
}
