package create_booking

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/SMC-InspectionBooking/internal/domain"
	bookingRepo "github.com/m04kA/SMC-InspectionBooking/internal/infra/storage/booking"
	"github.com/m04kA/SMC-InspectionBooking/internal/service/reservation"
)

// maxAttempts первая попытка и один повтор после конфликта вставки
const maxAttempts = 2

// UseCase use case для создания бронирования
type UseCase struct {
	bookingRepo  BookingRepository
	customerRepo CustomerRepository
	validator    ReservationValidator
	verifier     VerificationCoordinator
	txManager    TransactionManager
	rules        domain.CalendarRules
	metrics      Metrics
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	customerRepo CustomerRepository,
	validator ReservationValidator,
	verifier VerificationCoordinator,
	txManager TransactionManager,
	rules domain.CalendarRules,
	metrics Metrics,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		customerRepo: customerRepo,
		validator:    validator,
		verifier:     verifier,
		txManager:    txManager,
		rules:        rules,
		metrics:      metrics,
		logger:       logger,
	}
}

// Execute выполняет use case создания бронирования:
// клиент и автомобиль -> проверка слота -> цена -> вставка -> выдача кода.
// Отказ валидатора возвращается как *reservation.RejectionError.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: email=%s, registration=%s, date=%s, time=%s",
		req.Email, req.Registration, req.Date.Format(domain.DateFormat), req.StartTime)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	y, m, d := req.Date.Date()
	date := time.Date(y, m, d, 0, 0, 0, 0, uc.rules.Location)

	// 2. Клиент (по email или телефону)
	customer, err := uc.customerRepo.FindOrCreateCustomer(ctx, &domain.Customer{
		Name:  strings.TrimSpace(req.Name),
		Email: strings.ToLower(strings.TrimSpace(req.Email)),
		Phone: strings.TrimSpace(req.Phone),
	})
	if err != nil {
		uc.logger.Error("CreateBooking: failed to resolve customer email=%s: %v", req.Email, err)
		return nil, fmt.Errorf("%w: failed to resolve customer: %v", ErrInternal, err)
	}

	// 3. Автомобиль (по регистрационному номеру)
	vehicleType := domain.VehicleType(strings.ToLower(strings.TrimSpace(req.VehicleType)))
	price, known := domain.InspectionPrice(vehicleType)
	if !known {
		uc.logger.Warn("CreateBooking: unknown vehicle type %q, using %s price", req.VehicleType, domain.DefaultVehicleType)
		vehicleType = domain.DefaultVehicleType
	}

	vehicle, err := uc.customerRepo.FindOrCreateVehicle(ctx, &domain.Vehicle{
		CustomerID:   customer.ID,
		Registration: normalizeRegistration(req.Registration),
		Type:         vehicleType,
		Brand:        req.Brand,
		Model:        req.Model,
	})
	if err != nil {
		uc.logger.Error("CreateBooking: failed to resolve vehicle registration=%s: %v", req.Registration, err)
		return nil, fmt.Errorf("%w: failed to resolve vehicle: %v", ErrInternal, err)
	}

	booking := &domain.Booking{
		CustomerID:          customer.ID,
		VehicleID:           vehicle.ID,
		BookingDate:         date,
		StartTime:           req.StartTime,
		DurationMinutes:     uc.rules.SlotDurationMinutes,
		Status:              domain.StatusPendingVerification,
		Price:               price,
		CustomerName:        customer.Name,
		CustomerEmail:       customer.Email,
		CustomerPhone:       customer.Phone,
		VehicleRegistration: vehicle.Registration,
		VehicleType:         vehicle.Type,
		Notes:               req.Notes,
	}

	// 4. Проверка и вставка; при гонке - одна повторная попытка
	created, err := uc.reserve(ctx, booking)
	if err != nil {
		return nil, err
	}

	uc.metrics.IncBookingCreated()
	uc.logger.Info("CreateBooking: created booking id=%d", created.ID)

	response := toResponse(created)

	// 5. Выдача кода. Бронирование уже сохранено, при ошибке клиент может запросить повторную отправку.
	issued, err := uc.verifier.Initiate(ctx, created.ID)
	if err != nil {
		uc.logger.Error("CreateBooking: failed to initiate verification for booking id=%d: %v", created.ID, err)
		return response, nil
	}
	response.VerificationExpiresAt = &issued.ExpiresAt

	return response, nil
}

// reserve проверяет слот и вставляет бронирование в сериализуемой транзакции.
// Конфликт при вставке повторяется один раз с повторной проверкой.
func (uc *UseCase) reserve(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		if err := uc.validator.Validate(ctx, booking.BookingDate, booking.StartTime); err != nil {
			if attempt > 1 && errors.Is(err, reservation.ErrSlotFull) {
				return nil, fmt.Errorf("%w: %w", ErrSlotNoLongerAvailable, err)
			}
			if reservation.IsRejection(err) {
				return nil, err
			}
			return nil, fmt.Errorf("%w: %v", ErrInternal, err)
		}

		var created *domain.Booking
		err := uc.txManager.Do(ctx, func(txCtx context.Context) error {
			var err error
			created, err = uc.bookingRepo.CreateIfAvailable(txCtx, booking, uc.rules.CapacityPerSlot)
			return err
		})
		if err == nil {
			return created, nil
		}

		if !errors.Is(err, bookingRepo.ErrSlotNotAvailable) && !bookingRepo.IsConflictError(err) {
			uc.logger.Error("CreateBooking: failed to insert booking: %v", err)
			return nil, fmt.Errorf("%w: failed to create booking: %v", ErrInternal, err)
		}

		uc.logger.Warn("CreateBooking: insert conflict on %s %s (attempt %d/%d): %v",
			booking.BookingDate.Format(domain.DateFormat), booking.StartTime, attempt, maxAttempts, err)
	}

	return nil, fmt.Errorf("%w: %w", ErrSlotNoLongerAvailable, reservation.ErrSlotFull)
}

func toResponse(b *domain.Booking) *Response {
	return &Response{
		ID:                  b.ID,
		BookingDate:         b.BookingDate,
		StartTime:           b.StartTime,
		DurationMinutes:     b.DurationMinutes,
		Status:              string(b.Status),
		Price:               b.Price,
		VehicleRegistration: b.VehicleRegistration,
		VehicleType:         string(b.VehicleType),
		CreatedAt:           b.CreatedAt,
	}
}
