package list_bookings

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/m04kA/SMC-InspectionBooking/internal/domain"
	"github.com/m04kA/SMC-InspectionBooking/internal/service/bookings/models"
)

var errMissingRange = errors.New("from and to are required")

// ToServiceRequest формирует запрос к сервису из query параметров
func ToServiceRequest(
	fromStr string,
	toStr string,
	statusStr string,
	includeCancelledStr string,
	includeDeletedStr string,
) (*models.ListBookingsRequest, error) {
	if fromStr == "" || toStr == "" {
		return nil, errMissingRange
	}

	from, err := time.Parse(domain.DateFormat, fromStr)
	if err != nil {
		return nil, fmt.Errorf("invalid from: %w", err)
	}
	to, err := time.Parse(domain.DateFormat, toStr)
	if err != nil {
		return nil, fmt.Errorf("invalid to: %w", err)
	}

	req := &models.ListBookingsRequest{From: from, To: to}

	if statusStr != "" {
		req.Status = &statusStr
	}

	if includeCancelledStr != "" {
		if req.IncludeCancelled, err = strconv.ParseBool(includeCancelledStr); err != nil {
			return nil, fmt.Errorf("invalid includeCancelled value: %w", err)
		}
	}

	if includeDeletedStr != "" {
		if req.IncludeDeleted, err = strconv.ParseBool(includeDeletedStr); err != nil {
			return nil, fmt.Errorf("invalid includeDeleted value: %w", err)
		}
	}

	return req, nil
}
