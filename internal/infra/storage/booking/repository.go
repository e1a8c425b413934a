package booking

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-InspectionBooking/internal/domain"
	"github.com/m04kA/SMC-InspectionBooking/pkg/dbmetrics"
	"github.com/m04kA/SMC-InspectionBooking/pkg/psqlbuilder"
	"github.com/m04kA/SMC-InspectionBooking/pkg/types"
)

var bookingColumns = []string{
	"id",
	"customer_id",
	"vehicle_id",
	"booking_date",
	"start_time",
	"duration_minutes",
	"status",
	"price",
	"customer_name",
	"customer_email",
	"customer_phone",
	"vehicle_registration",
	"vehicle_type",
	"notes",
	"verification_code_hash",
	"verification_expires_at",
	"email_verified",
	"phone_verified",
	"confirmed_at",
	"deleted_at",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с бронированиями
type Repository struct {
	db  DBExecutor
	loc *time.Location
}

// NewRepository создает новый экземпляр репозитория бронирований.
// loc - часовой пояс станции, в нём возвращаются даты бронирований.
func NewRepository(db DBExecutor, loc *time.Location) *Repository {
	if loc == nil {
		loc = time.UTC
	}
	return &Repository{db: db, loc: loc}
}

// CreateIfAvailable создает бронирование, если в слоте осталось место.
// Должен вызываться внутри транзакции: слот (дата, время) блокируется advisory-локом
// до конца транзакции, после чего считаются активные бронирования.
// Транзакция должна быть READ COMMITTED, чтобы подсчёт после лока видел зафиксированные вставки конкурентов.
func (r *Repository) CreateIfAvailable(ctx context.Context, booking *domain.Booking, capacity int) (*domain.Booking, error) {
	if !dbmetrics.IsInTransaction(ctx) {
		return nil, fmt.Errorf("%w: CreateIfAvailable", ErrTransaction)
	}
	executor := dbmetrics.GetExecutor(ctx, r.db)

	lockKey := slotKey(booking.BookingDate, booking.StartTime)
	if _, err := executor.ExecContext(ctx, "SELECT pg_advisory_xact_lock(hashtext($1))", lockKey); err != nil {
		return nil, r.execError("CreateIfAvailable - lock slot", err)
	}

	count, err := r.CountActive(ctx, booking.BookingDate, booking.StartTime)
	if err != nil {
		return nil, err
	}
	if count >= capacity {
		return nil, ErrSlotNotAvailable
	}

	return r.create(ctx, executor, booking)
}

func (r *Repository) create(ctx context.Context, executor DBExecutor, booking *domain.Booking) (*domain.Booking, error) {
	v := booking.Verification

	query, args, err := psqlbuilder.Insert("bookings").
		Columns(
			"customer_id",
			"vehicle_id",
			"booking_date",
			"start_time",
			"duration_minutes",
			"status",
			"price",
			"customer_name",
			"customer_email",
			"customer_phone",
			"vehicle_registration",
			"vehicle_type",
			"notes",
			"verification_code_hash",
			"verification_expires_at",
			"email_verified",
			"phone_verified",
		).
		Values(
			booking.CustomerID,
			booking.VehicleID,
			dateArg(booking.BookingDate),
			booking.StartTime,
			booking.DurationMinutes,
			booking.Status,
			booking.Price,
			booking.CustomerName,
			booking.CustomerEmail,
			booking.CustomerPhone,
			booking.VehicleRegistration,
			booking.VehicleType,
			booking.Notes,
			nullString(v.CodeHash),
			v.ExpiresAt,
			v.EmailVerified,
			v.PhoneVerified,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&booking.ID,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, r.execError("Create - execute insert", err)
	}

	booking.CreatedAt = createdAt.Time
	booking.UpdatedAt = updatedAt.Time

	return booking, nil
}

// GetByID получает бронирование по ID (включая удалённые).
// Внутри транзакции строка блокируется (FOR UPDATE).
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"id": id})

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	booking, err := r.scanBooking(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, r.scanError("GetByID - scan booking", err)
	}

	return booking, nil
}

// ListByDateRange получает бронирования за период [StartDate, EndDate].
// По умолчанию отменённые и удалённые бронирования исключаются.
func (r *Repository) ListByDateRange(ctx context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.GtOrEq{"booking_date": dateArg(filter.StartDate)}).
		Where(squirrel.LtOrEq{"booking_date": dateArg(filter.EndDate)})

	if filter.StartTime != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"start_time": *filter.StartTime})
	}

	if filter.Status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": *filter.Status})
	} else if !filter.IncludeCancelled {
		selectBuilder = selectBuilder.Where(squirrel.NotEq{"status": statusStrings(domain.InactiveStatuses)})
	}

	if !filter.IncludeDeleted {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"deleted_at": nil})
	}

	query, args, err := selectBuilder.
		OrderBy("booking_date ASC", "start_time ASC", "id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListByDateRange - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListByDateRange - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanBookings(rows)
}

// CountActive считает бронирования, занимающие слот (не отменённые и не удалённые)
func (r *Repository) CountActive(ctx context.Context, date time.Time, startTime types.TimeString) (int, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("COUNT(*)").
		From("bookings").
		Where(squirrel.Eq{
			"booking_date": dateArg(date),
			"start_time":   startTime,
			"deleted_at":   nil,
		}).
		Where(squirrel.NotEq{"status": statusStrings(domain.InactiveStatuses)}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: CountActive - build select query: %v", ErrBuildQuery, err)
	}

	var count int
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, r.execError("CountActive - scan count", err)
	}

	return count, nil
}

// UpdateVerification сохраняет состояние верификации и статус.
// confirmedAt записывается только если передан.
func (r *Repository) UpdateVerification(
	ctx context.Context,
	id int64,
	status domain.BookingStatus,
	v domain.Verification,
	confirmedAt *time.Time,
) error {
	updateBuilder := psqlbuilder.Update("bookings").
		Set("status", status).
		Set("verification_code_hash", nullString(v.CodeHash)).
		Set("verification_expires_at", v.ExpiresAt).
		Set("email_verified", v.EmailVerified).
		Set("phone_verified", v.PhoneVerified).
		Set("updated_at", squirrel.Expr("NOW()"))

	if confirmedAt != nil {
		updateBuilder = updateBuilder.Set("confirmed_at", *confirmedAt)
	}

	return r.execUpdate(ctx, "UpdateVerification", updateBuilder.Where(squirrel.Eq{"id": id}))
}

// UpdateStatus обновляет статус бронирования
func (r *Repository) UpdateStatus(ctx context.Context, id int64, status domain.BookingStatus) error {
	updateBuilder := psqlbuilder.Update("bookings").
		Set("status", status).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id})

	return r.execUpdate(ctx, "UpdateStatus", updateBuilder)
}

// SoftDelete помечает бронирование удалённым; слот освобождается
func (r *Repository) SoftDelete(ctx context.Context, id int64) error {
	updateBuilder := psqlbuilder.Update("bookings").
		Set("deleted_at", squirrel.Expr("NOW()")).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id, "deleted_at": nil})

	return r.execUpdate(ctx, "SoftDelete", updateBuilder)
}

func (r *Repository) execUpdate(ctx context.Context, op string, builder squirrel.UpdateBuilder) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := builder.ToSql()
	if err != nil {
		return fmt.Errorf("%w: %s - build update query: %v", ErrBuildQuery, op, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return r.execError(op+" - execute update", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %s - get rows affected: %v", ErrExecQuery, op, err)
	}

	if rowsAffected == 0 {
		return ErrBookingNotFound
	}

	return nil
}

// execError отделяет конфликты параллельных транзакций от прочих ошибок
func (r *Repository) execError(op string, err error) error {
	if IsConflictError(err) {
		return fmt.Errorf("%w: %s: %v", ErrConflict, op, err)
	}
	return fmt.Errorf("%w: %s: %v", ErrExecQuery, op, err)
}

// scanError отделяет конфликты параллельных транзакций от ошибок сканирования
func (r *Repository) scanError(op string, err error) error {
	if IsConflictError(err) {
		return fmt.Errorf("%w: %s: %v", ErrConflict, op, err)
	}
	return fmt.Errorf("%w: %s: %v", ErrScanRow, op, err)
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func (r *Repository) scanBooking(row rowScanner) (*domain.Booking, error) {
	var (
		booking              domain.Booking
		bookingDate          time.Time
		codeHash             sql.NullString
		expiresAt            sql.NullTime
		confirmedAt          sql.NullTime
		deletedAt            sql.NullTime
		createdAt, updatedAt sql.NullTime
	)

	err := row.Scan(
		&booking.ID,
		&booking.CustomerID,
		&booking.VehicleID,
		&bookingDate,
		&booking.StartTime,
		&booking.DurationMinutes,
		&booking.Status,
		&booking.Price,
		&booking.CustomerName,
		&booking.CustomerEmail,
		&booking.CustomerPhone,
		&booking.VehicleRegistration,
		&booking.VehicleType,
		&booking.Notes,
		&codeHash,
		&expiresAt,
		&booking.Verification.EmailVerified,
		&booking.Verification.PhoneVerified,
		&confirmedAt,
		&deletedAt,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	y, m, d := bookingDate.Date()
	booking.BookingDate = time.Date(y, m, d, 0, 0, 0, 0, r.loc)
	booking.Verification.CodeHash = codeHash.String
	booking.Verification.ExpiresAt = nullTimePtr(expiresAt)
	booking.ConfirmedAt = nullTimePtr(confirmedAt)
	booking.DeletedAt = nullTimePtr(deletedAt)
	booking.CreatedAt = createdAt.Time
	booking.UpdatedAt = updatedAt.Time

	return &booking, nil
}

// scanBookings сканирует результаты запроса в слайс бронирований
func (r *Repository) scanBookings(rows *sql.Rows) ([]*domain.Booking, error) {
	bookings := make([]*domain.Booking, 0)

	for rows.Next() {
		booking, err := r.scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanBookings - scan row: %v", ErrScanRow, err)
		}
		bookings = append(bookings, booking)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanBookings - rows error: %v", ErrScanRow, err)
	}

	return bookings, nil
}

// dateArg передаёт дату строкой, чтобы часовой пояс соединения не сдвигал её
func dateArg(t time.Time) string {
	return t.Format(domain.DateFormat)
}

func slotKey(date time.Time, startTime types.TimeString) string {
	return "booking-slot:" + dateArg(date) + "|" + startTime.String()
}

func statusStrings(statuses []domain.BookingStatus) []string {
	result := make([]string, len(statuses))
	for i, s := range statuses {
		result[i] = string(s)
	}
	return result
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func nullTimePtr(t sql.NullTime) *time.Time {
	if !t.Valid {
		return nil
	}
	v := t.Time
	return &v
}
