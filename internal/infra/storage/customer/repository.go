package customer

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-InspectionBooking/internal/domain"
	"github.com/m04kA/SMC-InspectionBooking/pkg/dbmetrics"
	"github.com/m04kA/SMC-InspectionBooking/pkg/psqlbuilder"
)

// Repository репозиторий клиентов и их автомобилей
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория клиентов
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// FindOrCreateCustomer ищет клиента по email или телефону.
// Найденному клиенту обновляются контактные данные, иначе создаётся новый.
func (r *Repository) FindOrCreateCustomer(ctx context.Context, c *domain.Customer) (*domain.Customer, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := matchCustomerQuery(c.Email, c.Phone, dbmetrics.IsInTransaction(ctx))
	if err != nil {
		return nil, fmt.Errorf("%w: FindOrCreateCustomer - build select query: %v", ErrBuildQuery, err)
	}

	var id int64
	err = executor.QueryRowContext(ctx, query, args...).Scan(&id)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return r.insertCustomer(ctx, executor, c)
	case err != nil:
		return nil, fmt.Errorf("%w: FindOrCreateCustomer - scan id: %v", ErrScanRow, err)
	}

	query, args, err = psqlbuilder.Update("customers").
		Set("name", c.Name).
		Set("email", c.Email).
		Set("phone", c.Phone).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: FindOrCreateCustomer - build update query: %v", ErrBuildQuery, err)
	}

	if err := executor.QueryRowContext(ctx, query, args...).Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt); err != nil {
		return nil, fmt.Errorf("%w: FindOrCreateCustomer - execute update: %v", ErrExecQuery, err)
	}

	return c, nil
}

func (r *Repository) insertCustomer(ctx context.Context, executor dbmetrics.DBExecutor, c *domain.Customer) (*domain.Customer, error) {
	query, args, err := psqlbuilder.Insert("customers").
		Columns("name", "email", "phone").
		Values(c.Name, c.Email, c.Phone).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: insertCustomer - build insert query: %v", ErrBuildQuery, err)
	}

	if err := executor.QueryRowContext(ctx, query, args...).Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt); err != nil {
		return nil, fmt.Errorf("%w: insertCustomer - execute insert: %v", ErrExecQuery, err)
	}

	return c, nil
}

// FindOrCreateVehicle ищет автомобиль по регистрационному номеру и привязывает его к клиенту
func (r *Repository) FindOrCreateVehicle(ctx context.Context, v *domain.Vehicle) (*domain.Vehicle, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("vehicles").
		Columns("customer_id", "registration", "vehicle_type", "brand", "model").
		Values(v.CustomerID, v.Registration, v.Type, v.Brand, v.Model).
		Suffix(`ON CONFLICT (registration) DO UPDATE SET
			customer_id = EXCLUDED.customer_id,
			vehicle_type = EXCLUDED.vehicle_type,
			brand = COALESCE(EXCLUDED.brand, vehicles.brand),
			model = COALESCE(EXCLUDED.model, vehicles.model),
			updated_at = NOW()
		RETURNING id, created_at, updated_at`).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: FindOrCreateVehicle - build upsert query: %v", ErrBuildQuery, err)
	}

	if err := executor.QueryRowContext(ctx, query, args...).Scan(&v.ID, &v.CreatedAt, &v.UpdatedAt); err != nil {
		return nil, fmt.Errorf("%w: FindOrCreateVehicle - execute upsert: %v", ErrExecQuery, err)
	}

	return v, nil
}

// matchCustomerQuery ищет клиента с совпадающим email или телефоном.
// Если email и телефон принадлежат разным клиентам, выбирается клиент с совпавшим email.
func matchCustomerQuery(email, phone string, forUpdate bool) (string, []interface{}, error) {
	selectBuilder := psqlbuilder.Select("id").
		From("customers").
		Where(squirrel.Or{
			squirrel.Eq{"email": email},
			squirrel.Eq{"phone": phone},
		}).
		OrderByClause("(email = ?) DESC", email).
		OrderBy("id ASC").
		Limit(1)

	if forUpdate {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	return selectBuilder.ToSql()
}
