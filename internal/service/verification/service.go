package verification

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-InspectionBooking/internal/domain"
	bookingRepo "github.com/m04kA/SMC-InspectionBooking/internal/infra/storage/booking"
)

// maxTxAttempts первая попытка и один повтор при конфликте
const maxTxAttempts = 2

// Config параметры верификации
type Config struct {
	CodeTTL        time.Duration
	ResendCooldown time.Duration // 0 - без ограничения
}

// Service координатор двухканальной (email + SMS) верификации бронирования
type Service struct {
	bookingRepo  BookingRepository
	txManager    TransactionManager
	email        EmailNotifier
	sms          SMSNotifier
	admin        AdminNotifier
	codes        CodeGenerator
	hasher       CodeHasher
	cooldown     ResendCooldown
	cfg          Config
	timeProvider TimeProvider
	metrics      Metrics
	logger       Logger
}

// NewService создает координатор верификации. cooldown может быть nil.
func NewService(
	bookingRepo BookingRepository,
	txManager TransactionManager,
	email EmailNotifier,
	sms SMSNotifier,
	admin AdminNotifier,
	codes CodeGenerator,
	hasher CodeHasher,
	cooldown ResendCooldown,
	cfg Config,
	metrics Metrics,
	logger Logger,
) *Service {
	if cfg.CodeTTL <= 0 {
		cfg.CodeTTL = domain.DefaultCodeTTL
	}
	return &Service{
		bookingRepo:  bookingRepo,
		txManager:    txManager,
		email:        email,
		sms:          sms,
		admin:        admin,
		codes:        codes,
		hasher:       hasher,
		cooldown:     cooldown,
		cfg:          cfg,
		timeProvider: &RealTimeProvider{},
		metrics:      metrics,
		logger:       logger,
	}
}

// WithTimeProvider подменяет источник времени (для тестов)
func (s *Service) WithTimeProvider(tp TimeProvider) *Service {
	s.timeProvider = tp
	return s
}

// Initiate выдаёт новый код бронированию: сбрасывает оба флага, ставит срок действия,
// переводит статус в pending_verification и рассылает код по email и SMS.
// Ошибки отправки только логируются: код уже сохранён, а повторная отправка доступна.
func (s *Service) Initiate(ctx context.Context, bookingID int64) (*Issued, error) {
	s.logger.Info("Initiate: issuing verification code for booking id=%d", bookingID)

	var (
		booking *domain.Booking
		code    string
		expires time.Time
	)

	err := s.inTx(ctx, "Initiate", bookingID, func(txCtx context.Context) error {
		var err error
		booking, err = s.loadPending(txCtx, "Initiate", bookingID)
		if err != nil {
			return err
		}

		code, err = s.codes.Generate()
		if err != nil {
			s.logger.Error("Initiate: failed to generate code for booking id=%d: %v", bookingID, err)
			return fmt.Errorf("%w: %v", ErrInternal, err)
		}

		hash, err := s.hasher.Hash(code)
		if err != nil {
			s.logger.Error("Initiate: failed to hash code for booking id=%d: %v", bookingID, err)
			return fmt.Errorf("%w: %v", ErrInternal, err)
		}

		expires = s.timeProvider.Now().Add(s.cfg.CodeTTL)
		booking.Status = domain.StatusPendingVerification
		booking.Verification = domain.Verification{
			CodeHash:      hash,
			ExpiresAt:     &expires,
			EmailVerified: false,
			PhoneVerified: false,
		}

		if err := s.bookingRepo.UpdateVerification(txCtx, bookingID, booking.Status, booking.Verification, nil); err != nil {
			return s.mapRepoError("Initiate", bookingID, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.dispatchCode(ctx, booking, code)

	s.logger.Info("Initiate: code issued for booking id=%d, expires at %s", bookingID, expires.Format(time.RFC3339))
	return &Issued{BookingID: bookingID, ExpiresAt: expires}, nil
}

// VerifyCode проверяет код по одному каналу. Истёкший код отклоняется независимо от правильности.
// Повторная проверка уже подтверждённого канала идемпотентна.
// Когда подтверждены оба канала, бронирование становится confirmed, код стирается.
func (s *Service) VerifyCode(ctx context.Context, bookingID int64, code string, channel domain.Channel) (*Result, error) {
	if _, ok := domain.ParseChannel(string(channel)); !ok {
		return nil, ErrInvalidChannel
	}

	s.logger.Info("VerifyCode: booking id=%d, channel=%s", bookingID, channel)

	var (
		booking       *domain.Booking
		justConfirmed bool
	)

	err := s.inTx(ctx, "VerifyCode", bookingID, func(txCtx context.Context) error {
		justConfirmed = false

		var err error
		booking, err = s.loadPending(txCtx, "VerifyCode", bookingID)
		if err != nil {
			return err
		}

		now := s.timeProvider.Now()
		v := booking.Verification

		if v.CodeHash == "" {
			s.logger.Warn("VerifyCode: booking id=%d has no active code", bookingID)
			return ErrInvalidCode
		}
		if v.IsExpired(now) {
			s.logger.Warn("VerifyCode: code expired for booking id=%d", bookingID)
			return ErrCodeExpired
		}
		if !s.hasher.Matches(v.CodeHash, code) {
			s.logger.Warn("VerifyCode: invalid code for booking id=%d, channel=%s", bookingID, channel)
			return ErrInvalidCode
		}

		if v.IsVerified(channel) {
			s.logger.Info("VerifyCode: channel %s already verified for booking id=%d", channel, bookingID)
			return nil
		}

		v = v.WithVerified(channel)
		status := booking.Status
		var confirmedAt *time.Time

		if v.BothVerified() {
			status = domain.StatusConfirmed
			v.CodeHash = ""
			v.ExpiresAt = nil
			confirmedAt = &now
			justConfirmed = true
		}

		if err := s.bookingRepo.UpdateVerification(txCtx, bookingID, status, v, confirmedAt); err != nil {
			return s.mapRepoError("VerifyCode", bookingID, err)
		}

		booking.Status = status
		booking.Verification = v
		booking.ConfirmedAt = confirmedAt
		return nil
	})
	if err != nil {
		s.metrics.IncVerification(string(channel), resultLabel(err))
		return nil, err
	}
	s.metrics.IncVerification(string(channel), "ok")

	if justConfirmed {
		s.logger.Info("VerifyCode: booking id=%d confirmed", bookingID)
		s.dispatchConfirmation(ctx, booking)
	}

	return buildResult(booking), nil
}

// Resend выдаёт новый код взамен предыдущего. Старый код перестаёт действовать.
func (s *Service) Resend(ctx context.Context, bookingID int64) (*Issued, error) {
	s.logger.Info("Resend: booking id=%d", bookingID)

	if _, err := s.loadPending(ctx, "Resend", bookingID); err != nil {
		return nil, err
	}

	acquired := false
	if s.cooldown != nil && s.cfg.ResendCooldown > 0 {
		ok, err := s.cooldown.Acquire(ctx, bookingID, s.cfg.ResendCooldown)
		if err != nil {
			// Недоступность хранилища паузы не должна блокировать повторную отправку
			s.logger.Warn("Resend: cooldown check failed for booking id=%d: %v", bookingID, err)
		} else if !ok {
			s.logger.Warn("Resend: too soon for booking id=%d", bookingID)
			return nil, ErrResendTooSoon
		}
		acquired = ok
	}

	issued, err := s.Initiate(ctx, bookingID)
	if err != nil {
		if acquired {
			// код не выдан, пауза снимается
			if releaseErr := s.cooldown.Release(ctx, bookingID); releaseErr != nil {
				s.logger.Warn("Resend: failed to release cooldown for booking id=%d: %v", bookingID, releaseErr)
			}
		}
		return nil, err
	}

	return issued, nil
}

// inTx выполняет fn в SERIALIZABLE транзакции и один раз повторяет её при конфликте параллельных запросов
func (s *Service) inTx(ctx context.Context, op string, bookingID int64, fn func(ctx context.Context) error) error {
	var err error
	for attempt := 1; attempt <= maxTxAttempts; attempt++ {
		err = s.txManager.DoSerializable(ctx, fn)
		if !errors.Is(err, errTxConflict) && !bookingRepo.IsConflictError(err) {
			return err
		}
		s.logger.Warn("%s: concurrent update of booking id=%d (attempt %d/%d): %v", op, bookingID, attempt, maxTxAttempts, err)
	}

	s.logger.Error("%s: booking id=%d still in conflict after %d attempts", op, bookingID, maxTxAttempts)
	return fmt.Errorf("%w: %s - concurrent update: %v", ErrInternal, op, err)
}

// loadPending загружает бронирование и проверяет, что оно ожидает подтверждения
func (s *Service) loadPending(ctx context.Context, op string, bookingID int64) (*domain.Booking, error) {
	booking, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, s.mapRepoError(op, bookingID, err)
	}

	switch {
	case booking.Status == domain.StatusConfirmed:
		s.logger.Warn("%s: booking id=%d already confirmed", op, bookingID)
		return nil, ErrAlreadyConfirmed
	case booking.Status.IsTerminal() || booking.IsDeleted():
		s.logger.Warn("%s: booking id=%d is %s", op, bookingID, booking.Status)
		return nil, ErrBookingNotPending
	}

	return booking, nil
}

func (s *Service) mapRepoError(op string, bookingID int64, err error) error {
	if errors.Is(err, bookingRepo.ErrBookingNotFound) {
		s.logger.Warn("%s: booking id=%d not found", op, bookingID)
		return ErrBookingNotFound
	}
	if bookingRepo.IsConflictError(err) {
		return fmt.Errorf("%w: %s: %v", errTxConflict, op, err)
	}
	s.logger.Error("%s: repository error for booking id=%d: %v", op, bookingID, err)
	return fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
}

func resultLabel(err error) string {
	switch {
	case errors.Is(err, ErrInvalidCode):
		return "invalid_code"
	case errors.Is(err, ErrCodeExpired):
		return "expired"
	case errors.Is(err, ErrAlreadyConfirmed):
		return "already_confirmed"
	case errors.Is(err, ErrBookingNotFound):
		return "not_found"
	case errors.Is(err, ErrBookingNotPending):
		return "not_pending"
	default:
		return "error"
	}
}

func buildResult(b *domain.Booking) *Result {
	result := &Result{BookingID: b.ID, Status: b.Status}

	switch state := b.VerificationState().(type) {
	case domain.Confirmed:
		result.Confirmed = true
		result.Message = "booking confirmed"
	case domain.PartiallyVerified:
		pending := state.Pending
		result.PendingChannel = &pending
		result.Message = fmt.Sprintf("%s verified, %s verification pending", state.Verified, state.Pending)
	case domain.Unverified:
		result.Message = "email and phone verification pending"
	}

	return result
}
