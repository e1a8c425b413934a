package blockedslot

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m04kA/SMC-InspectionBooking/internal/domain"
	"github.com/m04kA/SMC-InspectionBooking/pkg/dbmetrics"
	"github.com/m04kA/SMC-InspectionBooking/pkg/psqlbuilder"
	"github.com/m04kA/SMC-InspectionBooking/pkg/types"
)

const pgUniqueViolation = "23505"

// Repository репозиторий заблокированных администратором слотов
type Repository struct {
	db  dbmetrics.DBExecutor
	loc *time.Location
}

// NewRepository создает новый экземпляр репозитория блокировок
func NewRepository(db dbmetrics.DBExecutor, loc *time.Location) *Repository {
	if loc == nil {
		loc = time.UTC
	}
	return &Repository{db: db, loc: loc}
}

// Create блокирует слот (дата, время)
func (r *Repository) Create(ctx context.Context, slot *domain.BlockedSlot) (*domain.BlockedSlot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("blocked_slots").
		Columns("slot_date", "slot_time", "reason").
		Values(slot.Date.Format(domain.DateFormat), slot.Time, slot.Reason).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	err = executor.QueryRowContext(ctx, query, args...).Scan(&slot.ID, &slot.CreatedAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == pgUniqueViolation {
			return nil, ErrAlreadyBlocked
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	return slot, nil
}

// Delete снимает блокировку по ID
func (r *Repository) Delete(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("blocked_slots").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Delete - execute delete: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Delete - get rows affected: %v", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrBlockedSlotNotFound
	}

	return nil
}

// Exists проверяет, заблокирован ли слот
func (r *Repository) Exists(ctx context.Context, date time.Time, startTime types.TimeString) (bool, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("1").
		Prefix("SELECT EXISTS (").
		From("blocked_slots").
		Where(squirrel.Eq{
			"slot_date": date.Format(domain.DateFormat),
			"slot_time": startTime,
		}).
		Suffix(")").
		ToSql()
	if err != nil {
		return false, fmt.Errorf("%w: Exists - build select query: %v", ErrBuildQuery, err)
	}

	var exists bool
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&exists); err != nil {
		return false, fmt.Errorf("%w: Exists - scan: %v", ErrScanRow, err)
	}

	return exists, nil
}

// ListByDateRange возвращает блокировки за период [start, end]
func (r *Repository) ListByDateRange(ctx context.Context, start, end time.Time) ([]*domain.BlockedSlot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "slot_date", "slot_time", "reason", "created_at").
		From("blocked_slots").
		Where(squirrel.GtOrEq{"slot_date": start.Format(domain.DateFormat)}).
		Where(squirrel.LtOrEq{"slot_date": end.Format(domain.DateFormat)}).
		OrderBy("slot_date ASC", "slot_time ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListByDateRange - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListByDateRange - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	slots := make([]*domain.BlockedSlot, 0)
	for rows.Next() {
		var (
			slot      domain.BlockedSlot
			slotDate  time.Time
			reason    sql.NullString
			createdAt sql.NullTime
		)
		if err := rows.Scan(&slot.ID, &slotDate, &slot.Time, &reason, &createdAt); err != nil {
			return nil, fmt.Errorf("%w: ListByDateRange - scan row: %v", ErrScanRow, err)
		}
		y, m, d := slotDate.Date()
		slot.Date = time.Date(y, m, d, 0, 0, 0, 0, r.loc)
		slot.Reason = reason.String
		slot.CreatedAt = createdAt.Time
		slots = append(slots, &slot)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListByDateRange - rows error: %v", ErrScanRow, err)
	}

	return slots, nil
}
