package get_week_slots

import (
	"context"
	"fmt"

	"github.com/m04kA/SMC-InspectionBooking/internal/domain"
)

// UseCase use case для получения сетки слотов на неделю
type UseCase struct {
	bookingRepo  BookingRepository
	blockedRepo  BlockedSlotRepository
	rules        domain.CalendarRules
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	blockedRepo BlockedSlotRepository,
	rules domain.CalendarRules,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		blockedRepo:  blockedRepo,
		rules:        rules,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// WithTimeProvider подменяет источник времени (для тестов)
func (uc *UseCase) WithTimeProvider(tp TimeProvider) *UseCase {
	uc.timeProvider = tp
	return uc
}

// Execute выполняет use case получения сетки слотов.
// Сетка пересчитывается на каждый запрос и не кэшируется: бронирования меняются конкурентно.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetWeekSlots: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время и нормализуем неделю
	now := uc.timeProvider.Now()
	anchor := req.Date
	if anchor.IsZero() {
		anchor = now.In(uc.rules.Location)
	}
	weekStart := domain.StartOfWeek(anchor, req.WeekOffset)
	weekEnd := weekStart.AddDate(0, 0, daysInWeek-1)

	uc.logger.Info("GetWeekSlots: week=%s..%s, offset=%d",
		weekStart.Format(domain.DateFormat), weekEnd.Format(domain.DateFormat), req.WeekOffset)

	// 3. Получаем активные бронирования недели
	bookings, err := uc.bookingRepo.ListByDateRange(ctx, domain.BookingsFilter{
		StartDate:        weekStart,
		EndDate:          weekEnd,
		IncludeCancelled: false,
		IncludeDeleted:   false,
	})
	if err != nil {
		uc.logger.Error("GetWeekSlots: failed to list bookings: %v", err)
		return nil, fmt.Errorf("%w: failed to list bookings: %v", ErrInternal, err)
	}

	// 4. Получаем заблокированные слоты недели
	blocked, err := uc.blockedRepo.ListByDateRange(ctx, weekStart, weekEnd)
	if err != nil {
		uc.logger.Error("GetWeekSlots: failed to list blocked slots: %v", err)
		return nil, fmt.Errorf("%w: failed to list blocked slots: %v", ErrInternal, err)
	}

	// 5. Строим сетку
	days := BuildWeek(weekStart, now, bookings, blocked, uc.rules)

	uc.logger.Info("GetWeekSlots: built grid with %d bookings, %d blocked slots", len(bookings), len(blocked))

	return &Response{
		WeekStart: days[0].Date,
		WeekEnd:   days[len(days)-1].Date,
		Days:      days,
	}, nil
}
