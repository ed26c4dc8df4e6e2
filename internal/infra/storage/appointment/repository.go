package appointment

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-StudioBookingService/internal/domain"
	"github.com/m04kA/SMC-StudioBookingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-StudioBookingService/pkg/psqlbuilder"
)

var appointmentColumns = []string{
	"id",
	"public_id",
	"client_id",
	"studio_id",
	"location_id",
	"staff_id",
	"service_id",
	"scheduled_start",
	"duration_minutes",
	"group_size",
	"status",
	"service_name",
	"service_price",
	"notes",
	"cancellation_reason",
	"cancelled_at",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с бронированиями
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает бронирование.
// Если в контексте передана активная транзакция, использует её —
// создание всегда выполняется в сериализуемой транзакции вместе
// с повторной проверкой занятости слота.
func (r *Repository) Create(ctx context.Context, a *domain.Appointment) (*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("appointments").
		Columns(
			"public_id",
			"client_id",
			"studio_id",
			"location_id",
			"staff_id",
			"service_id",
			"scheduled_start",
			"duration_minutes",
			"group_size",
			"status",
			"service_name",
			"service_price",
			"notes",
		).
		Values(
			a.PublicID,
			a.ClientID,
			a.StudioID,
			a.LocationID,
			a.StaffID,
			a.ServiceID,
			a.ScheduledStart,
			a.DurationMinutes,
			a.GroupSize,
			a.Status,
			a.ServiceName,
			a.ServicePrice,
			a.Notes,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&a.ID, &createdAt, &updatedAt); err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	a.CreatedAt = createdAt.Time
	a.UpdatedAt = updatedAt.Time
	return a, nil
}

// GetByID получает бронирование по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(appointmentColumns...).
		From("appointments").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	a, err := scanAppointment(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrAppointmentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan appointment: %v", ErrScanRow, err)
	}
	return a, nil
}

// GetByStaffWithFilter получает бронирования мастера с фильтрацией
// по периоду. Используется для проверки занятости слота и построения
// сетки доступности.
func (r *Repository) GetByStaffWithFilter(ctx context.Context, filter domain.StaffAppointmentsFilter) ([]*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	builder := psqlbuilder.Select(appointmentColumns...).
		From("appointments").
		Where(squirrel.Eq{"staff_id": filter.StaffID}).
		OrderBy("scheduled_start ASC")

	if filter.From != nil {
		builder = builder.Where(squirrel.GtOrEq{"scheduled_start": *filter.From})
	}
	if filter.To != nil {
		builder = builder.Where(squirrel.Lt{"scheduled_start": *filter.To})
	}
	if filter.ExcludeID != nil {
		builder = builder.Where(squirrel.NotEq{"id": *filter.ExcludeID})
	}
	if !filter.IncludeInactive {
		builder = builder.Where(squirrel.Eq{"status": domain.StatusConfirmed})
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByStaffWithFilter - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByStaffWithFilter - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	appointments := make([]*domain.Appointment, 0)
	for rows.Next() {
		a, err := scanAppointmentRows(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: GetByStaffWithFilter - scan row: %v", ErrScanRow, err)
		}
		appointments = append(appointments, a)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetByStaffWithFilter - rows error: %v", ErrScanRow, err)
	}
	return appointments, nil
}

// UpdateSchedule переносит бронирование на новое время
func (r *Repository) UpdateSchedule(ctx context.Context, id int64, newStart time.Time) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("appointments").
		Set("scheduled_start", newStart).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: UpdateSchedule - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: UpdateSchedule - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdateSchedule - get rows affected: %v", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrAppointmentNotFound
	}
	return nil
}

// Cancel отменяет бронирование с указанием статуса и причины
func (r *Repository) Cancel(ctx context.Context, id int64, status domain.AppointmentStatus, reason string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	builder := psqlbuilder.Update("appointments").
		Set("status", status).
		Set("cancelled_at", squirrel.Expr("now()")).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": id})

	if reason != "" {
		builder = builder.Set("cancellation_reason", reason)
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return fmt.Errorf("%w: Cancel - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Cancel - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Cancel - get rows affected: %v", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrAppointmentNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanAppointment(row *sql.Row) (*domain.Appointment, error) {
	return scanInto(row)
}

func scanAppointmentRows(rows *sql.Rows) (*domain.Appointment, error) {
	return scanInto(rows)
}

func scanInto(s rowScanner) (*domain.Appointment, error) {
	var a domain.Appointment
	var cancelledAt sql.NullTime
	var createdAt, updatedAt sql.NullTime

	err := s.Scan(
		&a.ID,
		&a.PublicID,
		&a.ClientID,
		&a.StudioID,
		&a.LocationID,
		&a.StaffID,
		&a.ServiceID,
		&a.ScheduledStart,
		&a.DurationMinutes,
		&a.GroupSize,
		&a.Status,
		&a.ServiceName,
		&a.ServicePrice,
		&a.Notes,
		&a.CancellationReason,
		&cancelledAt,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	if cancelledAt.Valid {
		a.CancelledAt = &cancelledAt.Time
	}
	a.CreatedAt = createdAt.Time
	a.UpdatedAt = updatedAt.Time
	return &a, nil
}
