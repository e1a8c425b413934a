package create_booking

import (
	"fmt"
	"net/mail"
	"strings"

	"github.com/m04kA/SMC-InspectionBooking/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if strings.TrimSpace(req.Name) == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidInput)
	}

	if _, err := mail.ParseAddress(req.Email); err != nil {
		return fmt.Errorf("%w: invalid email: %v", ErrInvalidInput, err)
	}

	if !isPhone(req.Phone) {
		return fmt.Errorf("%w: invalid phone", ErrInvalidInput)
	}

	registration := normalizeRegistration(req.Registration)
	if registration == "" || len(registration) > domain.MaxRegistrationLength {
		return fmt.Errorf("%w: registration must be 1-%d characters", ErrInvalidInput, domain.MaxRegistrationLength)
	}

	// Проверяем, что дата не является нулевой
	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	// Проверяем, что время начала указано
	if req.StartTime.IsZero() {
		return fmt.Errorf("%w: startTime is required", ErrInvalidInput)
	}

	// Валидируем формат времени
	if err := req.StartTime.Validate(); err != nil {
		return fmt.Errorf("%w: invalid startTime format: %v", ErrInvalidInput, err)
	}

	if req.Notes != nil && len(*req.Notes) > domain.MaxNotesLength {
		return fmt.Errorf("%w: notes must not exceed %d characters", ErrInvalidInput, domain.MaxNotesLength)
	}

	return nil
}

// isPhone допускает международный формат: необязательный "+", 9-15 цифр, пробелы и дефисы
func isPhone(phone string) bool {
	digits := 0
	for i, r := range strings.TrimSpace(phone) {
		switch {
		case r >= '0' && r <= '9':
			digits++
		case r == '+' && i == 0:
		case r == ' ' || r == '-':
		default:
			return false
		}
	}
	return digits >= 9 && digits <= 15
}

// normalizeRegistration приводит номер к виду без пробелов в верхнем регистре
func normalizeRegistration(registration string) string {
	return strings.ToUpper(strings.Join(strings.Fields(registration), ""))
}
