package confirmed

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m04kA/PBR-SchedulingService/internal/domain"
	"github.com/m04kA/PBR-SchedulingService/pkg/dbmetrics"
	"github.com/m04kA/PBR-SchedulingService/pkg/psqlbuilder"
	"github.com/m04kA/PBR-SchedulingService/pkg/types"
)

// pgUniqueViolation код ошибки postgres для нарушения уникального ограничения
const pgUniqueViolation = "23505"

// Repository репозиторий подтверждённых бронирований
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория подтверждённых бронирований
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает подтверждённое бронирование для принятой заявки
// Уникальное ограничение на request_id гарантирует ровно одно подтверждение
// на заявку; повторная попытка возвращает ErrAlreadyConfirmed
func (r *Repository) Create(ctx context.Context, booking *domain.ConfirmedBooking) (*domain.ConfirmedBooking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("confirmed_bookings").
		Columns(
			"request_id",
			"status",
			"event_end_time",
			"extension_hours",
		).
		Values(
			booking.RequestID,
			booking.Status,
			booking.EventEndTime,
			booking.ExtensionHours,
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
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == pgUniqueViolation {
			return nil, ErrAlreadyConfirmed
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	booking.CreatedAt = createdAt.Time
	booking.UpdatedAt = updatedAt.Time

	return booking, nil
}

// GetByID получает подтверждённое бронирование по ID
// Внутри транзакции строка блокируется (FOR UPDATE), это нужно координатору продления
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.ConfirmedBooking, error) {
	return r.getOne(ctx, squirrel.Eq{"id": id})
}

// GetByRequestID получает подтверждённое бронирование по ID заявки
func (r *Repository) GetByRequestID(ctx context.Context, requestID int64) (*domain.ConfirmedBooking, error) {
	return r.getOne(ctx, squirrel.Eq{"request_id": requestID})
}

func (r *Repository) getOne(ctx context.Context, where squirrel.Eq) (*domain.ConfirmedBooking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(
		"id",
		"request_id",
		"status",
		"event_end_time",
		"extension_hours",
		"created_at",
		"updated_at",
	).
		From("confirmed_bookings").
		Where(where)

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: getOne - build select query: %v", ErrBuildQuery, err)
	}

	var booking domain.ConfirmedBooking
	var endTime sql.Null[types.TimeString]
	var createdAt, updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&booking.ID,
		&booking.RequestID,
		&booking.Status,
		&endTime,
		&booking.ExtensionHours,
		&createdAt,
		&updatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: getOne - scan booking: %v", ErrScanRow, err)
	}

	if endTime.Valid {
		booking.EventEndTime = &endTime.V
	}
	booking.CreatedAt = createdAt.Time
	booking.UpdatedAt = updatedAt.Time

	return &booking, nil
}

// ExistsByRequestID проверяет, существует ли подтверждение для заявки
// Используется защитной проверкой перед отклонением заявки
func (r *Repository) ExistsByRequestID(ctx context.Context, requestID int64) (bool, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("1").
		From("confirmed_bookings").
		Where(squirrel.Eq{"request_id": requestID}).
		Limit(1).
		ToSql()

	if err != nil {
		return false, fmt.Errorf("%w: ExistsByRequestID - build select query: %v", ErrBuildQuery, err)
	}

	var one int
	err = executor.QueryRowContext(ctx, query, args...).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("%w: ExistsByRequestID - scan: %v", ErrScanRow, err)
	}

	return true, nil
}

// UpdateExtension записывает новое время окончания и часы продления бронирования
// Вызывается координатором продления вместе с обновлением заявки в одной транзакции
func (r *Repository) UpdateExtension(ctx context.Context, id int64, endTime types.TimeString, hours int) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("confirmed_bookings").
		Set("event_end_time", endTime).
		Set("extension_hours", hours).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: UpdateExtension - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: UpdateExtension - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdateExtension - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrBookingNotFound
	}

	return nil
}
