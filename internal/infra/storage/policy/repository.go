package policy

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m04kA/SMC-StudioBookingService/internal/domain"
	"github.com/m04kA/SMC-StudioBookingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-StudioBookingService/pkg/psqlbuilder"
)

const uniqueViolationCode = "23505"

var policyColumns = []string{
	"id",
	"studio_id",
	"online_booking_enabled",
	"immediate_booking_allowed",
	"immediate_booking_buffer_minutes",
	"future_booking_limit_months",
	"allow_team_member_selection",
	"allow_group_appointments",
	"max_group_size",
	"cancellation_allowed",
	"cancellation_buffer_hours",
	"rescheduling_allowed",
	"rescheduling_buffer_hours",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с политиками бронирования студий
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория политик
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByStudioID получает политику студии
// Если в контексте передана активная транзакция, использует её
func (r *Repository) GetByStudioID(ctx context.Context, studioID int64) (*domain.BookingPolicy, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(policyColumns...).
		From("booking_policies").
		Where(squirrel.Eq{"studio_id": studioID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByStudioID - build select query: %v", ErrBuildQuery, err)
	}

	row := executor.QueryRowContext(ctx, query, args...)
	p, err := scanPolicy(row)
	if err == sql.ErrNoRows {
		return nil, ErrPolicyNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByStudioID - scan policy: %v", ErrScanRow, err)
	}
	return p, nil
}

// Create создает политику студии
func (r *Repository) Create(ctx context.Context, p *domain.BookingPolicy) (*domain.BookingPolicy, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("booking_policies").
		Columns(
			"studio_id",
			"online_booking_enabled",
			"immediate_booking_allowed",
			"immediate_booking_buffer_minutes",
			"future_booking_limit_months",
			"allow_team_member_selection",
			"allow_group_appointments",
			"max_group_size",
			"cancellation_allowed",
			"cancellation_buffer_hours",
			"rescheduling_allowed",
			"rescheduling_buffer_hours",
		).
		Values(
			p.StudioID,
			p.OnlineBookingEnabled,
			p.ImmediateBookingAllowed,
			p.ImmediateBookingBufferMinutes,
			p.FutureBookingLimitMonths,
			p.AllowTeamMemberSelection,
			p.AllowGroupAppointments,
			p.MaxGroupSize,
			p.CancellationAllowed,
			p.CancellationBufferHours,
			p.ReschedulingAllowed,
			p.ReschedulingBufferHours,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&p.ID, &createdAt, &updatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrDuplicatePolicy
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	p.CreatedAt = createdAt.Time
	p.UpdatedAt = updatedAt.Time
	return p, nil
}

// Update полностью перезаписывает значения политики студии.
// Слияние частичных обновлений (сохранение буферов при выключенных
// тумблерах) выполняется на уровне сервиса.
func (r *Repository) Update(ctx context.Context, studioID int64, p *domain.BookingPolicy) (*domain.BookingPolicy, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("booking_policies").
		Set("online_booking_enabled", p.OnlineBookingEnabled).
		Set("immediate_booking_allowed", p.ImmediateBookingAllowed).
		Set("immediate_booking_buffer_minutes", p.ImmediateBookingBufferMinutes).
		Set("future_booking_limit_months", p.FutureBookingLimitMonths).
		Set("allow_team_member_selection", p.AllowTeamMemberSelection).
		Set("allow_group_appointments", p.AllowGroupAppointments).
		Set("max_group_size", p.MaxGroupSize).
		Set("cancellation_allowed", p.CancellationAllowed).
		Set("cancellation_buffer_hours", p.CancellationBufferHours).
		Set("rescheduling_allowed", p.ReschedulingAllowed).
		Set("rescheduling_buffer_hours", p.ReschedulingBufferHours).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"studio_id": studioID}).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Update - build update query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&p.ID, &createdAt, &updatedAt)
	if err == sql.ErrNoRows {
		return nil, ErrPolicyNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Update - execute update: %v", ErrExecQuery, err)
	}

	p.StudioID = studioID
	p.CreatedAt = createdAt.Time
	p.UpdatedAt = updatedAt.Time
	return p, nil
}

func scanPolicy(row *sql.Row) (*domain.BookingPolicy, error) {
	var p domain.BookingPolicy
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&p.ID,
		&p.StudioID,
		&p.OnlineBookingEnabled,
		&p.ImmediateBookingAllowed,
		&p.ImmediateBookingBufferMinutes,
		&p.FutureBookingLimitMonths,
		&p.AllowTeamMemberSelection,
		&p.AllowGroupAppointments,
		&p.MaxGroupSize,
		&p.CancellationAllowed,
		&p.CancellationBufferHours,
		&p.ReschedulingAllowed,
		&p.ReschedulingBufferHours,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	p.CreatedAt = createdAt.Time
	p.UpdatedAt = updatedAt.Time
	return &p, nil
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code) == uniqueViolationCode
	}
	return false
}
