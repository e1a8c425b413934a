package mailer

import (
	"context"

	"github.com/m04kA/SMC-InspectionBooking/internal/domain"
)

// TemplateAdminBookingConfirmed шаблон письма администрации о подтверждённой записи
const TemplateAdminBookingConfirmed = "admin_booking_confirmed"

// AdminNotifier уведомляет администрацию письмом, когда брокер сообщений отключён
type AdminNotifier struct {
	client     *Client
	adminEmail string
}

// NewAdminNotifier создает уведомитель администрации по email
func NewAdminNotifier(client *Client, adminEmail string) *AdminNotifier {
	return &AdminNotifier{client: client, adminEmail: adminEmail}
}

// NotifyBookingConfirmed отправляет администрации письмо о подтверждённом бронировании
func (n *AdminNotifier) NotifyBookingConfirmed(ctx context.Context, b *domain.Booking) error {
	if n.adminEmail == "" {
		return nil
	}
	return n.client.Send(ctx, n.adminEmail, TemplateAdminBookingConfirmed, map[string]interface{}{
		"bookingId":     b.ID,
		"customerName":  b.CustomerName,
		"customerEmail": b.CustomerEmail,
		"customerPhone": b.CustomerPhone,
		"date":          b.BookingDate.Format(domain.DateFormat),
		"time":          b.StartTime.String(),
		"registration":  b.VehicleRegistration,
		"vehicleType":   string(b.VehicleType),
		"price":         b.Price,
	})
}
