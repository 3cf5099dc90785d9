package request

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/PBR-SchedulingService/internal/domain"
	"github.com/m04kA/PBR-SchedulingService/pkg/dbmetrics"
	"github.com/m04kA/PBR-SchedulingService/pkg/psqlbuilder"
	"github.com/m04kA/PBR-SchedulingService/pkg/types"
)

// Repository репозиторий заявок на бронирование
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория заявок
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

var requestColumns = []string{
	"id",
	"package_id",
	"customer_id",
	"event_date",
	"start_time",
	"end_time",
	"extension_hours",
	"status",
	"rejection_note",
	"created_at",
	"updated_at",
}

// Create создает новую заявку на бронирование
func (r *Repository) Create(ctx context.Context, req *domain.BookingRequest) (*domain.BookingRequest, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("booking_requests").
		Columns(
			"package_id",
			"customer_id",
			"event_date",
			"start_time",
			"end_time",
			"extension_hours",
			"status",
		).
		Values(
			req.PackageID,
			req.CustomerID,
			req.EventDate,
			req.StartTime,
			req.EndTime,
			req.ExtensionHours,
			req.Status,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&req.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	req.CreatedAt = createdAt.Time
	req.UpdatedAt = updatedAt.Time

	return req, nil
}

// GetByID получает заявку по ID
// Внутри транзакции строка блокируется (FOR UPDATE), это нужно координатору принятия
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.BookingRequest, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(requestColumns...).
		From("booking_requests").
		Where(squirrel.Eq{"id": id})

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	row := executor.QueryRowContext(ctx, query, args...)
	req, err := scanRequest(row)
	if err == sql.ErrNoRows {
		return nil, ErrRequestNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan request: %v", ErrScanRow, err)
	}

	return req, nil
}

// ListByPackage получает заявки пакета с фильтрацией по периоду и статусу
func (r *Repository) ListByPackage(ctx context.Context, filter domain.RequestFilter) ([]*domain.BookingRequest, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(requestColumns...).
		From("booking_requests").
		Where(squirrel.Eq{"package_id": filter.PackageID})

	if filter.StartDate != nil {
		selectBuilder = selectBuilder.Where(squirrel.GtOrEq{"event_date": *filter.StartDate})
	}
	if filter.EndDate != nil {
		selectBuilder = selectBuilder.Where(squirrel.LtOrEq{"event_date": *filter.EndDate})
	}
	if filter.Status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": *filter.Status})
	}

	selectBuilder = selectBuilder.OrderBy("event_date ASC, start_time ASC")

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListByPackage - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListByPackage - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanRequests(rows)
}

// AcceptIfFree переводит заявку pending → accepted одним условным UPDATE
// Обновление проходит, только если заявка всё ещё pending И ни одна другая заявка
// не принята на тот же слот (пакет, дата, время начала)
// Одна неделимая операция закрывает гонку двух конкурирующих принятий;
// проигравший получает ErrNoRowsUpdated и перечитывает состояние для точной ошибки
func (r *Repository) AcceptIfFree(ctx context.Context, id int64, slot domain.SlotKey) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("booking_requests").
		Set("status", domain.RequestAccepted).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id, "status": domain.RequestPending}).
		Where(squirrel.Expr(
			`NOT EXISTS (
				SELECT 1 FROM booking_requests br
				WHERE br.package_id = ?
				  AND br.event_date = ?
				  AND br.start_time = ?
				  AND br.status = ?
				  AND br.id <> ?
			)`,
			slot.PackageID, slot.EventDate, slot.StartTime, domain.RequestAccepted, id,
		)).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: AcceptIfFree - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: AcceptIfFree - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: AcceptIfFree - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrNoRowsUpdated
	}

	return nil
}

// CountAcceptedAtSlot возвращает количество принятых заявок на слот, исключая excludeID
// Используется для диагностики после неуспешного AcceptIfFree
func (r *Repository) CountAcceptedAtSlot(ctx context.Context, slot domain.SlotKey, excludeID int64) (int, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("COUNT(*)").
		From("booking_requests").
		Where(squirrel.Eq{
			"package_id": slot.PackageID,
			"event_date": slot.EventDate,
			"start_time": slot.StartTime,
			"status":     domain.RequestAccepted,
		}).
		Where(squirrel.NotEq{"id": excludeID}).
		ToSql()

	if err != nil {
		return 0, fmt.Errorf("%w: CountAcceptedAtSlot - build select query: %v", ErrBuildQuery, err)
	}

	var count int
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("%w: CountAcceptedAtSlot - scan count: %v", ErrScanRow, err)
	}

	return count, nil
}

// RejectIfPending переводит заявку pending → rejected одним условным UPDATE
func (r *Repository) RejectIfPending(ctx context.Context, id int64, note string) error {
	return r.resolveIfPending(ctx, id, domain.RequestRejected, &note)
}

// CancelIfPending переводит заявку pending → cancelled одним условным UPDATE
func (r *Repository) CancelIfPending(ctx context.Context, id int64) error {
	return r.resolveIfPending(ctx, id, domain.RequestCancelled, nil)
}

func (r *Repository) resolveIfPending(ctx context.Context, id int64, status domain.RequestStatus, note *string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	updateBuilder := psqlbuilder.Update("booking_requests").
		Set("status", status).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id, "status": domain.RequestPending})

	if note != nil {
		updateBuilder = updateBuilder.Set("rejection_note", *note)
	}

	query, args, err := updateBuilder.ToSql()
	if err != nil {
		return fmt.Errorf("%w: resolveIfPending - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: resolveIfPending - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: resolveIfPending - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrNoRowsUpdated
	}

	return nil
}

// RejectCompetitors каскадно отклоняет все остальные pending-заявки на тот же слот
// Возвращает отклонённые заявки (для уведомления клиентов)
func (r *Repository) RejectCompetitors(ctx context.Context, slot domain.SlotKey, excludeID int64, note string) ([]*domain.BookingRequest, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("booking_requests").
		Set("status", domain.RequestRejected).
		Set("rejection_note", note).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{
			"package_id": slot.PackageID,
			"event_date": slot.EventDate,
			"start_time": slot.StartTime,
			"status":     domain.RequestPending,
		}).
		Where(squirrel.NotEq{"id": excludeID}).
		Suffix("RETURNING " + strings.Join(requestColumns, ", ")).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: RejectCompetitors - build update query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: RejectCompetitors - execute update: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanRequests(rows)
}

// UpdateExtension записывает новое время окончания и часы продления заявки
// Вызывается только координатором продления вместе с обновлением подтверждённого
// бронирования в одной транзакции, копии полей не должны расходиться
func (r *Repository) UpdateExtension(ctx context.Context, id int64, endTime types.TimeString, hours int) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("booking_requests").
		Set("end_time", endTime).
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
		return ErrRequestNotFound
	}

	return nil
}

// ListAcceptedByDate получает все принятые бронирования на дату,
// объединяя заявку с переопределениями подтверждённого бронирования (LEFT JOIN)
// Отменённые подтверждённые бронирования слот не занимают и исключаются
// Опционально фильтрует по пакету; внутри транзакции строки заявок блокируются
func (r *Repository) ListAcceptedByDate(ctx context.Context, date time.Time, packageID *int64) ([]*domain.DayBooking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(
		"r.id",
		"r.package_id",
		"r.customer_id",
		"r.event_date",
		"r.start_time",
		"r.end_time",
		"r.extension_hours",
		"cb.id",
		"cb.event_end_time",
		"cb.extension_hours",
	).
		From("booking_requests r").
		LeftJoin("confirmed_bookings cb ON cb.request_id = r.id").
		Where(squirrel.Eq{"r.status": domain.RequestAccepted, "r.event_date": date}).
		Where(squirrel.Or{
			squirrel.Eq{"cb.id": nil},
			squirrel.NotEq{"cb.status": domain.BookingCancelled},
		})

	if packageID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"r.package_id": *packageID})
	}

	selectBuilder = selectBuilder.OrderBy("r.package_id ASC, r.start_time ASC")

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE OF r")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListAcceptedByDate - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListAcceptedByDate - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	bookings := make([]*domain.DayBooking, 0)
	for rows.Next() {
		var b domain.DayBooking
		var endTime, endOverride sql.Null[types.TimeString]
		var confirmedID, extOverride sql.NullInt64

		err := rows.Scan(
			&b.RequestID,
			&b.PackageID,
			&b.CustomerID,
			&b.EventDate,
			&b.StartTime,
			&endTime,
			&b.ExtensionHours,
			&confirmedID,
			&endOverride,
			&extOverride,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: ListAcceptedByDate - scan row: %v", ErrScanRow, err)
		}

		if endTime.Valid {
			b.EndTime = &endTime.V
		}
		if confirmedID.Valid {
			b.ConfirmedID = &confirmedID.Int64
		}
		if endOverride.Valid {
			b.EndOverride = &endOverride.V
		}
		if extOverride.Valid {
			ext := int(extOverride.Int64)
			b.ExtOverride = &ext
		}

		bookings = append(bookings, &b)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListAcceptedByDate - rows error: %v", ErrScanRow, err)
	}

	return bookings, nil
}

// rowScanner общий интерфейс *sql.Row и *sql.Rows
type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanRequest(row rowScanner) (*domain.BookingRequest, error) {
	var req domain.BookingRequest
	var endTime sql.Null[types.TimeString]
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&req.ID,
		&req.PackageID,
		&req.CustomerID,
		&req.EventDate,
		&req.StartTime,
		&endTime,
		&req.ExtensionHours,
		&req.Status,
		&req.RejectionNote,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	if endTime.Valid {
		req.EndTime = &endTime.V
	}
	req.CreatedAt = createdAt.Time
	req.UpdatedAt = updatedAt.Time

	return &req, nil
}

func scanRequests(rows *sql.Rows) ([]*domain.BookingRequest, error) {
	requests := make([]*domain.BookingRequest, 0)

	for rows.Next() {
		req, err := scanRequest(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanRequests - scan row: %v", ErrScanRow, err)
		}
		requests = append(requests, req)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanRequests - rows error: %v", ErrScanRow, err)
	}

	return requests, nil
}
