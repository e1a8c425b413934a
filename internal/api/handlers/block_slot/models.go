package block_slot

import (
	"time"

	"github.com/m04kA/SMC-InspectionBooking/internal/domain"
	"github.com/m04kA/SMC-InspectionBooking/internal/service/blockedslots/models"
	"github.com/m04kA/SMC-InspectionBooking/pkg/types"
)

// BlockSlotRequest HTTP request model
type BlockSlotRequest struct {
	Date   string `json:"date"` // "2026-10-20"
	Time   string `json:"time"` // "10:00"
	Reason string `json:"reason,omitempty"`
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса
func (r *BlockSlotRequest) ToServiceRequest() (*models.BlockSlotRequest, error) {
	date, err := time.Parse(domain.DateFormat, r.Date)
	if err != nil {
		return nil, err
	}

	slotTime, err := types.NewTimeStringFromString(r.Time)
	if err != nil {
		return nil, err
	}

	return &models.BlockSlotRequest{
		Date:   date,
		Time:   slotTime,
		Reason: r.Reason,
	}, nil
}
