package verification

import (
	"context"
	"fmt"
	"sync"

	"github.com/m04kA/SMC-InspectionBooking/internal/domain"
)

// dispatchCode отправляет один и тот же код по email и SMS параллельно.
// Отправки независимы; ошибки логируются и не влияют на бронирование.
func (s *Service) dispatchCode(ctx context.Context, b *domain.Booking, code string) {
	minutes := int(s.cfg.CodeTTL.Minutes())

	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		err := s.email.Send(ctx, b.CustomerEmail, TemplateVerificationCode, map[string]interface{}{
			"code":             code,
			"bookingId":        b.ID,
			"date":             b.BookingDate.Format(domain.DateFormat),
			"time":             b.StartTime.String(),
			"registration":     b.VehicleRegistration,
			"expiresInMinutes": minutes,
		})
		s.reportFailure("email", b.ID, err)
	}()

	go func() {
		defer wg.Done()
		text := fmt.Sprintf("Inspection %s %s: your verification code is %s (valid %d min).",
			b.BookingDate.Format(domain.DateFormat), b.StartTime, code, minutes)
		err := s.sms.Send(ctx, b.CustomerPhone, text)
		s.reportFailure("sms", b.ID, err)
	}()

	wg.Wait()
}

// dispatchConfirmation отправляет клиенту подтверждение и уведомляет администрацию
func (s *Service) dispatchConfirmation(ctx context.Context, b *domain.Booking) {
	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		err := s.email.Send(ctx, b.CustomerEmail, TemplateBookingConfirmed, map[string]interface{}{
			"bookingId":    b.ID,
			"customerName": b.CustomerName,
			"date":         b.BookingDate.Format(domain.DateFormat),
			"time":         b.StartTime.String(),
			"registration": b.VehicleRegistration,
			"vehicleType":  string(b.VehicleType),
			"price":        b.Price,
		})
		s.reportFailure("email", b.ID, err)
	}()

	go func() {
		defer wg.Done()
		s.reportFailure("admin", b.ID, s.admin.NotifyBookingConfirmed(ctx, b))
	}()

	wg.Wait()
}

func (s *Service) reportFailure(channel string, bookingID int64, err error) {
	if err == nil {
		return
	}
	s.metrics.IncNotificationFailed(channel)
	s.logger.Warn("notify: %s delivery failed for booking id=%d: %v", channel, bookingID, err)
}
