package get_week_slots

import "fmt"

// maxWeekOffset ограничение на сдвиг недели в обе стороны
const maxWeekOffset = 52

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req == nil {
		return fmt.Errorf("%w: request is required", ErrInvalidInput)
	}

	if req.WeekOffset > maxWeekOffset || req.WeekOffset < -maxWeekOffset {
		return fmt.Errorf("%w: weekOffset must be within ±%d", ErrInvalidInput, maxWeekOffset)
	}

	return nil
}
