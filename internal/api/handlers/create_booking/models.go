package create_booking

import (
	"time"

	"github.com/m04kA/SMC-InspectionBooking/internal/domain"
	createBooking "github.com/m04kA/SMC-InspectionBooking/internal/usecase/create_booking"
	"github.com/m04kA/SMC-InspectionBooking/pkg/ptr"
	"github.com/m04kA/SMC-InspectionBooking/pkg/types"
)

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	Name         string  `json:"name"`
	Email        string  `json:"email"`
	Phone        string  `json:"phone"`
	Registration string  `json:"registration"`
	VehicleType  string  `json:"vehicleType"`
	Brand        *string `json:"brand,omitempty"`
	Model        *string `json:"model,omitempty"`
	BookingDate  string  `json:"bookingDate"` // "2026-10-20"
	StartTime    string  `json:"startTime"`   // "10:00"
	Notes        *string `json:"notes,omitempty"`
}

// BookingResponse HTTP response model
type BookingResponse struct {
	ID                    int64   `json:"id"`
	BookingDate           string  `json:"bookingDate"`
	StartTime             string  `json:"startTime"`
	DurationMinutes       int     `json:"durationMinutes"`
	Status                string  `json:"status"`
	Price                 float64 `json:"price"`
	VehicleRegistration   string  `json:"vehicleRegistration"`
	VehicleType           string  `json:"vehicleType"`
	VerificationExpiresAt *string `json:"verificationExpiresAt,omitempty"`
	CreatedAt             string  `json:"createdAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateBookingRequest) ToUseCaseRequest() (*createBooking.Request, error) {
	bookingDate, err := time.Parse(domain.DateFormat, r.BookingDate)
	if err != nil {
		return nil, errInvalidDate
	}

	startTime, err := types.NewTimeStringFromString(r.StartTime)
	if err != nil {
		return nil, errInvalidTime
	}

	return &createBooking.Request{
		Name:         r.Name,
		Email:        r.Email,
		Phone:        r.Phone,
		Registration: r.Registration,
		VehicleType:  r.VehicleType,
		Brand:        r.Brand,
		Model:        r.Model,
		Date:         bookingDate,
		StartTime:    startTime,
		Notes:        r.Notes,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createBooking.Response) *BookingResponse {
	out := &BookingResponse{
		ID:                  resp.ID,
		BookingDate:         resp.BookingDate.Format(domain.DateFormat),
		StartTime:           resp.StartTime.String(),
		DurationMinutes:     resp.DurationMinutes,
		Status:              resp.Status,
		Price:               resp.Price,
		VehicleRegistration: resp.VehicleRegistration,
		VehicleType:         resp.VehicleType,
		CreatedAt:           resp.CreatedAt.Format(time.RFC3339),
	}
	if resp.VerificationExpiresAt != nil {
		out.VerificationExpiresAt = ptr.Ptr(resp.VerificationExpiresAt.Format(time.RFC3339))
	}
	return out
}
