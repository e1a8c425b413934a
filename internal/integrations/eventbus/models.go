package eventbus

import "time"

// EventBookingConfirmed тип события о подтверждённом бронировании
const EventBookingConfirmed = "booking.confirmed"

// BookingConfirmed событие для административных потребителей
type BookingConfirmed struct {
	Event         string    `json:"event"`
	BookingID     int64     `json:"booking_id"`
	Date          string    `json:"date"`
	Time          string    `json:"time"`
	CustomerName  string    `json:"customer_name"`
	CustomerEmail string    `json:"customer_email"`
	CustomerPhone string    `json:"customer_phone"`
	Registration  string    `json:"registration"`
	VehicleType   string    `json:"vehicle_type"`
	Price         float64   `json:"price"`
	ConfirmedAt   time.Time `json:"confirmed_at"`
}
