package bookings

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-InspectionBooking/internal/domain"
	bookingRepo "github.com/m04kA/SMC-InspectionBooking/internal/infra/storage/booking"
	"github.com/m04kA/SMC-InspectionBooking/internal/service/bookings/models"
)

// Service сервис для работы с бронированиями
type Service struct {
	bookingRepo BookingRepository
	txManager   TransactionManager
	logger      Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	bookingRepo BookingRepository,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		bookingRepo: bookingRepo,
		txManager:   txManager,
		logger:      logger,
	}
}

// GetByID возвращает публичное состояние бронирования.
// Удалённые бронирования не видны.
func (s *Service) GetByID(ctx context.Context, id int64) (*models.BookingStatusResponse, error) {
	s.logger.Info("GetByID: fetching booking id=%d", id)

	booking, err := s.get(ctx, "GetByID", id)
	if err != nil {
		return nil, err
	}

	return models.FromDomainBookingStatus(booking), nil
}

// List возвращает бронирования за период для администратора
func (s *Service) List(ctx context.Context, req *models.ListBookingsRequest) (*models.BookingListResponse, error) {
	s.logger.Info("List: fetching bookings from %s to %s, includeCancelled=%t, includeDeleted=%t",
		req.From.Format(domain.DateFormat), req.To.Format(domain.DateFormat), req.IncludeCancelled, req.IncludeDeleted)

	if req.From.IsZero() || req.To.IsZero() || req.To.Before(req.From) {
		return nil, fmt.Errorf("%w: from must not be after to", ErrInvalidTimeRange)
	}
	if req.To.Sub(req.From).Hours()/24 > models.MaxListRangeDays {
		return nil, fmt.Errorf("%w: period must not exceed %d days", ErrInvalidTimeRange, models.MaxListRangeDays)
	}

	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("List: invalid filter: %v", err)
		return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
	}

	bookings, err := s.bookingRepo.ListByDateRange(ctx, filter)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("List: successfully fetched %d bookings", len(bookings))
	return models.FromDomainBookingList(bookings), nil
}

// UpdateStatus административная смена статуса.
// Допускаются только cancelled и completed и только из нетерминального статуса.
func (s *Service) UpdateStatus(ctx context.Context, bookingID int64, req *models.UpdateStatusRequest) error {
	s.logger.Info("UpdateStatus: updating booking id=%d to status=%s", bookingID, req.Status)

	newStatus, err := models.ToDomainBookingStatus(req.Status)
	if err != nil {
		s.logger.Warn("UpdateStatus: invalid status=%s for booking id=%d", req.Status, bookingID)
		return fmt.Errorf("%w: invalid status", ErrInvalidInput)
	}

	err = s.txManager.Do(ctx, func(txCtx context.Context) error {
		booking, err := s.get(txCtx, "UpdateStatus", bookingID)
		if err != nil {
			return err
		}

		if !booking.CanTransitionTo(newStatus) {
			s.logger.Warn("UpdateStatus: booking id=%d cannot move from %s to %s", bookingID, booking.Status, newStatus)
			return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, booking.Status, newStatus)
		}

		if err := s.bookingRepo.UpdateStatus(txCtx, bookingID, newStatus); err != nil {
			return s.mapRepoError("UpdateStatus", bookingID, err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.logger.Info("UpdateStatus: successfully updated booking id=%d to status=%s", bookingID, newStatus)
	return nil
}

// Delete мягко удаляет бронирование; слот освобождается, запись остаётся для аудита
func (s *Service) Delete(ctx context.Context, bookingID int64) error {
	s.logger.Info("Delete: soft deleting booking id=%d", bookingID)

	if err := s.bookingRepo.SoftDelete(ctx, bookingID); err != nil {
		return s.mapRepoError("Delete", bookingID, err)
	}

	s.logger.Info("Delete: successfully deleted booking id=%d", bookingID)
	return nil
}

// Вспомогательные методы

func (s *Service) get(ctx context.Context, op string, id int64) (*domain.Booking, error) {
	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		return nil, s.mapRepoError(op, id, err)
	}
	if booking.IsDeleted() {
		s.logger.Warn("%s: booking id=%d is deleted", op, id)
		return nil, ErrBookingNotFound
	}
	return booking, nil
}

func (s *Service) mapRepoError(op string, id int64, err error) error {
	if errors.Is(err, bookingRepo.ErrBookingNotFound) {
		s.logger.Warn("%s: booking id=%d not found", op, id)
		return ErrBookingNotFound
	}
	s.logger.Error("%s: repository error for booking id=%d: %v", op, id, err)
	return fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
}
