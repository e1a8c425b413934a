package reservation

import (
	"context"
	"fmt"
	"time"

	"github.com/m04kA/SMC-InspectionBooking/internal/domain"
	"github.com/m04kA/SMC-InspectionBooking/pkg/types"
)

// Validator проверяет, можно ли забронировать слот (date, time).
// Только чтение: запись и финальная проверка ёмкости выполняются хранилищем при вставке.
type Validator struct {
	bookingRepo  BookingRepository
	blockedRepo  BlockedSlotRepository
	rules        domain.CalendarRules
	timeProvider TimeProvider
	metrics      Metrics
	logger       Logger
}

// NewValidator создает валидатор
func NewValidator(
	bookingRepo BookingRepository,
	blockedRepo BlockedSlotRepository,
	rules domain.CalendarRules,
	metrics Metrics,
	logger Logger,
) *Validator {
	return &Validator{
		bookingRepo:  bookingRepo,
		blockedRepo:  blockedRepo,
		rules:        rules,
		timeProvider: &RealTimeProvider{},
		metrics:      metrics,
		logger:       logger,
	}
}

// WithTimeProvider подменяет источник времени (для тестов)
func (v *Validator) WithTimeProvider(tp TimeProvider) *Validator {
	v.timeProvider = tp
	return v
}

// Validate проверяет слот. Порядок проверок фиксирован, первая неудачная возвращает свой отказ:
// 1. слот строго в будущем
// 2. день не выходной
// 3. время есть в расписании дня
// 4. слот не заблокирован
// 5. активных бронирований меньше capacity
//
// Возвращает nil, *RejectionError или ErrInternal.
func (v *Validator) Validate(ctx context.Context, date time.Time, startTime types.TimeString) error {
	y, m, d := date.Date()
	day := time.Date(y, m, d, 0, 0, 0, 0, v.rules.Location)

	// 1. Не в прошлом
	slotStart, err := startTime.On(day)
	if err != nil {
		return v.reject(day, startTime, ErrTimeNotOffered)
	}
	if !slotStart.After(v.timeProvider.Now()) {
		return v.reject(day, startTime, ErrSlotInPast)
	}

	// 2. Выходной
	if v.rules.IsClosed(day.Weekday()) {
		return v.reject(day, startTime, ErrClosedDay)
	}

	// 3. Время в расписании
	if !v.rules.IsOffered(day.Weekday(), startTime) {
		return v.reject(day, startTime, ErrTimeNotOffered)
	}

	// 4. Блокировка
	blocked, err := v.blockedRepo.Exists(ctx, day, startTime)
	if err != nil {
		v.logger.Error("Validate: failed to check blocked slot %s %s: %v", day.Format(domain.DateFormat), startTime, err)
		return fmt.Errorf("%w: failed to check blocked slot: %v", ErrInternal, err)
	}
	if blocked {
		return v.reject(day, startTime, ErrSlotBlocked)
	}

	// 5. Ёмкость
	count, err := v.bookingRepo.CountActive(ctx, day, startTime)
	if err != nil {
		v.logger.Error("Validate: failed to count bookings %s %s: %v", day.Format(domain.DateFormat), startTime, err)
		return fmt.Errorf("%w: failed to count bookings: %v", ErrInternal, err)
	}
	if count >= v.rules.CapacityPerSlot {
		return v.reject(day, startTime, ErrSlotFull)
	}

	return nil
}

func (v *Validator) reject(day time.Time, startTime types.TimeString, rejection *RejectionError) error {
	v.logger.Warn("Validate: slot %s %s rejected: %s", day.Format(domain.DateFormat), startTime, rejection.Reason)
	v.metrics.IncBookingRejected(rejection.Reason)
	return rejection
}
