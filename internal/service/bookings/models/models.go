package models

import (
	"errors"
	"time"

	"github.com/m04kA/SMC-InspectionBooking/internal/domain"
	"github.com/m04kA/SMC-InspectionBooking/pkg/ptr"
)

var (
	// ErrInvalidStatus возвращается при некорректном статусе
	ErrInvalidStatus = errors.New("invalid booking status")
)

// MaxListRangeDays максимальная длина периода в выборке администратора
const MaxListRangeDays = 92

// Request модели

// UpdateStatusRequest запрос на обновление статуса бронирования
type UpdateStatusRequest struct {
	Status string `json:"status"`
}

// ListBookingsRequest запрос администратора на выборку бронирований за период
type ListBookingsRequest struct {
	From             time.Time
	To               time.Time
	Status           *string
	IncludeCancelled bool
	IncludeDeleted   bool
}

// ToDomainFilter конвертирует request в domain фильтр
func (r *ListBookingsRequest) ToDomainFilter() (domain.BookingsFilter, error) {
	filter := domain.BookingsFilter{
		StartDate:        r.From,
		EndDate:          r.To,
		IncludeCancelled: r.IncludeCancelled,
		IncludeDeleted:   r.IncludeDeleted,
	}

	if r.Status != nil {
		status, err := ToDomainBookingStatus(*r.Status)
		if err != nil {
			return filter, err
		}
		filter.Status = &status
	}

	return filter, nil
}

// Response модели

// BookingStatusResponse публичное состояние бронирования (без персональных данных)
type BookingStatusResponse struct {
	ID              int64    `json:"id"`
	BookingDate     string   `json:"bookingDate"` // "2026-10-20"
	StartTime       string   `json:"startTime"`   // "10:00"
	Status          string   `json:"status"`
	EmailVerified   bool     `json:"emailVerified"`
	PhoneVerified   bool     `json:"phoneVerified"`
	PendingChannels []string `json:"pendingChannels"`
	ConfirmedAt     *string  `json:"confirmedAt,omitempty"` // ISO 8601
}

// BookingResponse полные данные бронирования для администратора
type BookingResponse struct {
	ID                  int64   `json:"id"`
	CustomerID          int64   `json:"customerId"`
	VehicleID           int64   `json:"vehicleId"`
	BookingDate         string  `json:"bookingDate"`
	StartTime           string  `json:"startTime"`
	DurationMinutes     int     `json:"durationMinutes"`
	Status              string  `json:"status"`
	Price               float64 `json:"price"`
	CustomerName        string  `json:"customerName"`
	CustomerEmail       string  `json:"customerEmail"`
	CustomerPhone       string  `json:"customerPhone"`
	VehicleRegistration string  `json:"vehicleRegistration"`
	VehicleType         string  `json:"vehicleType"`
	Notes               *string `json:"notes,omitempty"`
	EmailVerified       bool    `json:"emailVerified"`
	PhoneVerified       bool    `json:"phoneVerified"`

	ConfirmedAt *string `json:"confirmedAt,omitempty"`
	DeletedAt   *string `json:"deletedAt,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// BookingListResponse ответ со списком бронирований
type BookingListResponse struct {
	Bookings []BookingResponse `json:"bookings"`
}

// Методы конвертации

// FromDomainBookingStatus конвертирует domain модель в публичный DTO
func FromDomainBookingStatus(b *domain.Booking) *BookingStatusResponse {
	if b == nil {
		return nil
	}

	resp := &BookingStatusResponse{
		ID:              b.ID,
		BookingDate:     b.BookingDate.Format(domain.DateFormat),
		StartTime:       b.StartTime.String(),
		Status:          string(b.Status),
		EmailVerified:   b.Verification.EmailVerified,
		PhoneVerified:   b.Verification.PhoneVerified,
		PendingChannels: []string{},
		ConfirmedAt:     formatTime(b.ConfirmedAt),
	}

	if b.Status == domain.StatusPendingVerification {
		switch state := b.VerificationState().(type) {
		case domain.Unverified:
			resp.PendingChannels = []string{string(domain.ChannelEmail), string(domain.ChannelPhone)}
		case domain.PartiallyVerified:
			resp.PendingChannels = []string{string(state.Pending)}
		}
	}

	return resp
}

// FromDomainBooking конвертирует domain модель в DTO
func FromDomainBooking(b *domain.Booking) *BookingResponse {
	if b == nil {
		return nil
	}

	return &BookingResponse{
		ID:                  b.ID,
		CustomerID:          b.CustomerID,
		VehicleID:           b.VehicleID,
		BookingDate:         b.BookingDate.Format(domain.DateFormat),
		StartTime:           b.StartTime.String(),
		DurationMinutes:     b.DurationMinutes,
		Status:              string(b.Status),
		Price:               b.Price,
		CustomerName:        b.CustomerName,
		CustomerEmail:       b.CustomerEmail,
		CustomerPhone:       b.CustomerPhone,
		VehicleRegistration: b.VehicleRegistration,
		VehicleType:         string(b.VehicleType),
		Notes:               b.Notes,
		EmailVerified:       b.Verification.EmailVerified,
		PhoneVerified:       b.Verification.PhoneVerified,
		ConfirmedAt:         formatTime(b.ConfirmedAt),
		DeletedAt:           formatTime(b.DeletedAt),
		CreatedAt:           b.CreatedAt,
		UpdatedAt:           b.UpdatedAt,
	}
}

// FromDomainBookingList конвертирует список domain моделей в DTO
func FromDomainBookingList(bookings []*domain.Booking) *BookingListResponse {
	resp := &BookingListResponse{
		Bookings: make([]BookingResponse, 0, len(bookings)),
	}

	for _, b := range bookings {
		resp.Bookings = append(resp.Bookings, *FromDomainBooking(b))
	}

	return resp
}

// ToDomainBookingStatus конвертирует строку в domain.BookingStatus
func ToDomainBookingStatus(status string) (domain.BookingStatus, error) {
	s, ok := domain.ParseBookingStatus(status)
	if !ok {
		return "", ErrInvalidStatus
	}
	return s, nil
}

func formatTime(t *time.Time) *string {
	if t == nil {
		return nil
	}
	return ptr.Ptr(t.Format(time.RFC3339))
}
