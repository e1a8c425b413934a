package models

import (
	"time"

	"github.com/m04kA/SMC-InspectionBooking/internal/domain"
	"github.com/m04kA/SMC-InspectionBooking/pkg/types"
)

// MaxListRangeDays максимальная длина периода в выборке
const MaxListRangeDays = 366

// BlockSlotRequest запрос на блокировку слота
type BlockSlotRequest struct {
	Date   time.Time
	Time   types.TimeString
	Reason string
}

// BlockedSlotResponse данные блокировки
type BlockedSlotResponse struct {
	ID        int64     `json:"id"`
	Date      string    `json:"date"` // "2026-10-20"
	Time      string    `json:"time"` // "10:00"
	Reason    string    `json:"reason,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// BlockedSlotListResponse ответ со списком блокировок
type BlockedSlotListResponse struct {
	BlockedSlots []BlockedSlotResponse `json:"blockedSlots"`
}

// FromDomainBlockedSlot конвертирует domain модель в DTO
func FromDomainBlockedSlot(s *domain.BlockedSlot) *BlockedSlotResponse {
	if s == nil {
		return nil
	}
	return &BlockedSlotResponse{
		ID:        s.ID,
		Date:      s.Date.Format(domain.DateFormat),
		Time:      s.Time.String(),
		Reason:    s.Reason,
		CreatedAt: s.CreatedAt,
	}
}

// FromDomainBlockedSlotList конвертирует список domain моделей в DTO
func FromDomainBlockedSlotList(slots []*domain.BlockedSlot) *BlockedSlotListResponse {
	resp := &BlockedSlotListResponse{
		BlockedSlots: make([]BlockedSlotResponse, 0, len(slots)),
	}
	for _, s := range slots {
		resp.BlockedSlots = append(resp.BlockedSlots, *FromDomainBlockedSlot(s))
	}
	return resp
}
