package blockedslots

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/SMC-InspectionBooking/internal/domain"
	blockedRepo "github.com/m04kA/SMC-InspectionBooking/internal/infra/storage/blockedslot"
	"github.com/m04kA/SMC-InspectionBooking/internal/service/blockedslots/models"
)

// Service сервис блокировки слотов администратором
type Service struct {
	repo   BlockedSlotRepository
	rules  domain.CalendarRules
	logger Logger
}

// NewService создает новый экземпляр сервиса блокировок
func NewService(repo BlockedSlotRepository, rules domain.CalendarRules, logger Logger) *Service {
	return &Service{
		repo:   repo,
		rules:  rules,
		logger: logger,
	}
}

// Block блокирует слот. Время должно входить в расписание дня; повторная блокировка запрещена.
// Существующие бронирования не затрагиваются.
func (s *Service) Block(ctx context.Context, req *models.BlockSlotRequest) (*models.BlockedSlotResponse, error) {
	s.logger.Info("Block: blocking slot %s %s", req.Date.Format(domain.DateFormat), req.Time)

	if req.Date.IsZero() {
		return nil, fmt.Errorf("%w: date is required", ErrInvalidInput)
	}
	if err := req.Time.Validate(); err != nil {
		return nil, fmt.Errorf("%w: invalid time: %v", ErrInvalidInput, err)
	}
	reason := strings.TrimSpace(req.Reason)
	if len(reason) > domain.MaxBlockReasonLength {
		return nil, fmt.Errorf("%w: reason must not exceed %d characters", ErrInvalidInput, domain.MaxBlockReasonLength)
	}

	y, m, d := req.Date.Date()
	date := time.Date(y, m, d, 0, 0, 0, 0, s.rules.Location)

	if !s.rules.IsOffered(date.Weekday(), req.Time) {
		s.logger.Warn("Block: %s is not offered on %s", req.Time, date.Weekday())
		return nil, ErrTimeNotOffered
	}

	created, err := s.repo.Create(ctx, &domain.BlockedSlot{
		Date:   date,
		Time:   req.Time,
		Reason: reason,
	})
	if err != nil {
		if errors.Is(err, blockedRepo.ErrAlreadyBlocked) {
			s.logger.Warn("Block: slot %s %s already blocked", date.Format(domain.DateFormat), req.Time)
			return nil, ErrAlreadyBlocked
		}
		s.logger.Error("Block: repository error: %v", err)
		return nil, fmt.Errorf("%w: Block - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Block: created blocked slot id=%d", created.ID)
	return models.FromDomainBlockedSlot(created), nil
}

// Unblock снимает блокировку
func (s *Service) Unblock(ctx context.Context, id int64) error {
	s.logger.Info("Unblock: removing blocked slot id=%d", id)

	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, blockedRepo.ErrBlockedSlotNotFound) {
			s.logger.Warn("Unblock: blocked slot id=%d not found", id)
			return ErrBlockedSlotNotFound
		}
		s.logger.Error("Unblock: repository error for id=%d: %v", id, err)
		return fmt.Errorf("%w: Unblock - repository error: %v", ErrInternal, err)
	}

	return nil
}

// List возвращает блокировки за период [from, to]
func (s *Service) List(ctx context.Context, from, to time.Time) (*models.BlockedSlotListResponse, error) {
	s.logger.Info("List: fetching blocked slots from %s to %s", from.Format(domain.DateFormat), to.Format(domain.DateFormat))

	if from.IsZero() || to.IsZero() || to.Before(from) {
		return nil, fmt.Errorf("%w: from must not be after to", ErrInvalidTimeRange)
	}
	if to.Sub(from).Hours()/24 > models.MaxListRangeDays {
		return nil, fmt.Errorf("%w: period must not exceed %d days", ErrInvalidTimeRange, models.MaxListRangeDays)
	}

	slots, err := s.repo.ListByDateRange(ctx, from, to)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainBlockedSlotList(slots), nil
}
