package shift

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

var intervalColumns = []string{
	"id",
	"studio_id",
	"staff_id",
	"location_id",
	"date",
	"start_time",
	"end_time",
	"status",
	"created_at",
	"updated_at",
}

// Repository репозиторий реестра смен: датированные интервалы
// и недельные шаблоны регулярного расписания
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория смен
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// CreateInterval создает датированный интервал смены.
// Проверка пересечений выполняется на уровне сервиса до вставки.
func (r *Repository) CreateInterval(ctx context.Context, iv *domain.ShiftInterval) (*domain.ShiftInterval, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("shift_intervals").
		Columns("studio_id", "staff_id", "location_id", "date", "start_time", "end_time", "status").
		Values(iv.StudioID, iv.StaffID, iv.LocationID, iv.Date, iv.StartTime, iv.EndTime, iv.Status).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: CreateInterval - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&iv.ID, &createdAt, &updatedAt); err != nil {
		return nil, fmt.Errorf("%w: CreateInterval - execute insert: %v", ErrExecQuery, err)
	}

	iv.CreatedAt = createdAt.Time
	iv.UpdatedAt = updatedAt.Time
	return iv, nil
}

// GetIntervalByID получает интервал смены по ID
func (r *Repository) GetIntervalByID(ctx context.Context, id int64) (*domain.ShiftInterval, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(intervalColumns...).
		From("shift_intervals").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetIntervalByID - build select query: %v", ErrBuildQuery, err)
	}

	var iv domain.ShiftInterval
	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&iv.ID, &iv.StudioID, &iv.StaffID, &iv.LocationID,
		&iv.Date, &iv.StartTime, &iv.EndTime, &iv.Status,
		&createdAt, &updatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, ErrShiftNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetIntervalByID - scan interval: %v", ErrScanRow, err)
	}

	iv.CreatedAt = createdAt.Time
	iv.UpdatedAt = updatedAt.Time
	return &iv, nil
}

// GetIntervals получает интервалы мастера за период [from, to]
// включительно. При locationID == nil возвращаются все локации,
// при includeCancelled == false — только scheduled-смены.
func (r *Repository) GetIntervals(
	ctx context.Context,
	staffID int64,
	from, to time.Time,
	locationID *int64,
	includeCancelled bool,
) ([]domain.ShiftInterval, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	builder := psqlbuilder.Select(intervalColumns...).
		From("shift_intervals").
		Where(squirrel.Eq{"staff_id": staffID}).
		Where(squirrel.GtOrEq{"date": from}).
		Where(squirrel.LtOrEq{"date": to}).
		OrderBy("date ASC, start_time ASC")

	if locationID != nil {
		builder = builder.Where(squirrel.Eq{"location_id": *locationID})
	}
	if !includeCancelled {
		builder = builder.Where(squirrel.Eq{"status": domain.ShiftScheduled})
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetIntervals - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetIntervals - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	intervals := make([]domain.ShiftInterval, 0)
	for rows.Next() {
		var iv domain.ShiftInterval
		var createdAt, updatedAt sql.NullTime

		err := rows.Scan(
			&iv.ID, &iv.StudioID, &iv.StaffID, &iv.LocationID,
			&iv.Date, &iv.StartTime, &iv.EndTime, &iv.Status,
			&createdAt, &updatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: GetIntervals - scan row: %v", ErrScanRow, err)
		}

		iv.CreatedAt = createdAt.Time
		iv.UpdatedAt = updatedAt.Time
		intervals = append(intervals, iv)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetIntervals - rows error: %v", ErrScanRow, err)
	}
	return intervals, nil
}

// DeleteInterval удаляет датированный интервал.
// Шаблон, из которого он был материализован, не затрагивается.
func (r *Repository) DeleteInterval(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("shift_intervals").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: DeleteInterval - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: DeleteInterval - execute delete: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: DeleteInterval - get rows affected: %v", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrShiftNotFound
	}
	return nil
}

// GetTemplates получает недельный шаблон мастера
func (r *Repository) GetTemplates(ctx context.Context, staffID int64) ([]domain.ShiftTemplate, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id", "studio_id", "staff_id", "location_id", "weekday",
		"start_time", "end_time", "created_at", "updated_at",
	).
		From("shift_templates").
		Where(squirrel.Eq{"staff_id": staffID}).
		OrderBy("weekday ASC, start_time ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetTemplates - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetTemplates - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	templates := make([]domain.ShiftTemplate, 0)
	for rows.Next() {
		var tpl domain.ShiftTemplate
		var weekday int
		var createdAt, updatedAt sql.NullTime

		err := rows.Scan(
			&tpl.ID, &tpl.StudioID, &tpl.StaffID, &tpl.LocationID, &weekday,
			&tpl.StartTime, &tpl.EndTime, &createdAt, &updatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: GetTemplates - scan row: %v", ErrScanRow, err)
		}

		tpl.Weekday = time.Weekday(weekday)
		tpl.CreatedAt = createdAt.Time
		tpl.UpdatedAt = updatedAt.Time
		templates = append(templates, tpl)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetTemplates - rows error: %v", ErrScanRow, err)
	}
	return templates, nil
}

// ReplaceTemplates заменяет недельный шаблон мастера целиком.
// Вызывается внутри транзакции (см. service/shifts), чтобы удаление
// и вставка были атомарны.
func (r *Repository) ReplaceTemplates(ctx context.Context, studioID, staffID int64, entries []domain.ShiftTemplate) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("shift_templates").
		Where(squirrel.Eq{"staff_id": staffID, "studio_id": studioID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: ReplaceTemplates - build delete query: %v", ErrBuildQuery, err)
	}
	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: ReplaceTemplates - execute delete: %v", ErrExecQuery, err)
	}

	if len(entries) == 0 {
		return nil
	}

	builder := psqlbuilder.Insert("shift_templates").
		Columns("studio_id", "staff_id", "location_id", "weekday", "start_time", "end_time")
	for _, e := range entries {
		builder = builder.Values(studioID, staffID, e.LocationID, int(e.Weekday), e.StartTime, e.EndTime)
	}

	query, args, err = builder.ToSql()
	if err != nil {
		return fmt.Errorf("%w: ReplaceTemplates - build insert query: %v", ErrBuildQuery, err)
	}
	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: ReplaceTemplates - execute insert: %v", ErrExecQuery, err)
	}
	return nil
}
