package reschedule_appointment

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-StudioBookingService/internal/availability"
	"github.com/m04kA/SMC-StudioBookingService/internal/domain"
	appointmentRepo "github.com/m04kA/SMC-StudioBookingService/internal/infra/storage/appointment"
	studioClient "github.com/m04kA/SMC-StudioBookingService/internal/integrations/studioservice"
	"github.com/m04kA/SMC-StudioBookingService/internal/policy"
	"github.com/m04kA/SMC-StudioBookingService/pkg/ptr"
)

// UseCase use case для переноса бронирования
type UseCase struct {
	appointmentRepo AppointmentRepository
	shiftRepo       ShiftRepository
	policyProvider  PolicyProvider
	studioClient    StudioServiceClient
	txManager       TransactionManager
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	appointmentRepo AppointmentRepository,
	shiftRepo ShiftRepository,
	policyProvider PolicyProvider,
	studioClient StudioServiceClient,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		appointmentRepo: appointmentRepo,
		shiftRepo:       shiftRepo,
		policyProvider:  policyProvider,
		studioClient:    studioClient,
		txManager:       txManager,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Execute выполняет use case переноса бронирования.
// Для клиента действуют два правила политики: дедлайн переноса
// относительно текущего начала и правила создания для нового времени
// (перенос не обходит буферы и горизонт бронирования). Менеджер
// студии переносит без проверок политики. Занятость целевого слота
// проверяется в сериализуемой транзакции.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("RescheduleAppointment: appointment=%d, user=%d, newStart=%s",
		req.AppointmentID, req.UserID, req.NewStart.Format(time.RFC3339))

	// 1. Валидация входных данных
	if req.AppointmentID <= 0 {
		return nil, fmt.Errorf("%w: appointmentID must be positive", ErrInvalidInput)
	}
	if req.UserID <= 0 {
		return nil, fmt.Errorf("%w: userID must be positive", ErrInvalidInput)
	}
	if req.NewStart.IsZero() {
		return nil, fmt.Errorf("%w: newStart is required", ErrInvalidInput)
	}

	// 2. Получаем текущее время
	now := uc.timeProvider.Now()

	// 3. Получаем бронирование
	a, err := uc.appointmentRepo.GetByID(ctx, req.AppointmentID)
	if err != nil {
		if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			uc.logger.Warn("RescheduleAppointment: appointment id=%d not found", req.AppointmentID)
			return nil, ErrAppointmentNotFound
		}
		uc.logger.Error("RescheduleAppointment: repository error for id=%d: %v", req.AppointmentID, err)
		return nil, fmt.Errorf("%w: repository error: %v", ErrInternal, err)
	}

	// 4. Получаем студию и её часовой пояс
	studio, err := uc.studioClient.GetStudio(ctx, a.StudioID)
	if err != nil {
		if errors.Is(err, studioClient.ErrStudioNotFound) {
			uc.logger.Warn("RescheduleAppointment: studio id=%d not found", a.StudioID)
			return nil, ErrStudioNotFound
		}
		uc.logger.Error("RescheduleAppointment: failed to get studio id=%d: %v", a.StudioID, err)
		return nil, fmt.Errorf("%w: failed to get studio: %v", ErrInternal, err)
	}

	loc, err := time.LoadLocation(studio.Timezone)
	if err != nil {
		uc.logger.Error("RescheduleAppointment: studio id=%d has invalid timezone %q: %v",
			a.StudioID, studio.Timezone, err)
		return nil, fmt.Errorf("%w: %q", ErrInvalidTimezone, studio.Timezone)
	}

	// 5. Определяем роль инициатора: владелец или менеджер студии
	byClient := a.ClientID == req.UserID
	if !byClient && !studio.IsManager(req.UserID) {
		uc.logger.Warn("RescheduleAppointment: user=%d has no access to appointment id=%d",
			req.UserID, req.AppointmentID)
		return nil, ErrAccessDenied
	}

	if !a.CanBeRescheduled() {
		uc.logger.Warn("RescheduleAppointment: appointment id=%d has status %s and cannot be rescheduled",
			req.AppointmentID, a.Status)
		return nil, ErrNotReschedulable
	}

	// 6. Правила политики действуют только для клиента: дедлайн
	// переноса по текущему началу плюс правила создания для нового
	if byClient {
		p, err := uc.policyProvider.GetDomain(ctx, a.StudioID)
		if err != nil {
			uc.logger.Error("RescheduleAppointment: failed to get policy for studio=%d: %v", a.StudioID, err)
			return nil, fmt.Errorf("%w: failed to get policy: %v", ErrInternal, err)
		}

		if err := policy.CheckReschedule(p, a.ScheduledStart, now); err != nil {
			return nil, uc.policyResult("reschedule deadline", err)
		}
		if err := policy.CheckBookNow(p, req.NewStart, now, loc); err != nil {
			return nil, uc.policyResult("target slot", err)
		}
	}

	// 7. Проверяем занятость целевого слота и переносим в
	// сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		day := startOfDay(req.NewStart.In(loc))
		intervals, err := uc.shiftRepo.GetIntervals(txCtx, a.StaffID, day, day, nil, false)
		if err != nil {
			uc.logger.Error("RescheduleAppointment: failed to get shifts: %v", err)
			return fmt.Errorf("%w: failed to get shifts: %v", ErrInternal, err)
		}

		covered, err := availability.Covers(intervals, req.NewStart, a.DurationMinutes, loc)
		if err != nil {
			uc.logger.Error("RescheduleAppointment: failed to check shift coverage: %v", err)
			return fmt.Errorf("%w: failed to check shift coverage: %v", ErrInternal, err)
		}
		if !covered {
			uc.logger.Warn("RescheduleAppointment: slot %s is outside staff=%d shifts",
				req.NewStart.Format(time.RFC3339), a.StaffID)
			return ErrSlotNoLongerAvailable
		}

		from := req.NewStart.Add(-24 * time.Hour)
		to := req.NewStart.Add(24 * time.Hour)
		existing, err := uc.appointmentRepo.GetByStaffWithFilter(txCtx, domain.StaffAppointmentsFilter{
			StaffID:   a.StaffID,
			From:      &from,
			To:        &to,
			ExcludeID: ptr.Ptr(a.ID), // своё прежнее время конфликтом не считается
		})
		if err != nil {
			uc.logger.Error("RescheduleAppointment: failed to get existing appointments: %v", err)
			return fmt.Errorf("%w: failed to get existing appointments: %v", ErrInternal, err)
		}

		for _, other := range existing {
			if other.Overlaps(req.NewStart, a.DurationMinutes) {
				uc.logger.Warn("RescheduleAppointment: slot %s overlaps appointment id=%d",
					req.NewStart.Format(time.RFC3339), other.ID)
				return ErrSlotNoLongerAvailable
			}
		}

		if err := uc.appointmentRepo.UpdateSchedule(txCtx, a.ID, req.NewStart); err != nil {
			uc.logger.Error("RescheduleAppointment: failed to update schedule: %v", err)
			return fmt.Errorf("%w: failed to update schedule: %v", ErrInternal, err)
		}
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("RescheduleAppointment: successfully rescheduled appointment id=%d to %s",
		a.ID, req.NewStart.Format(time.RFC3339))

	return &Response{
		ID:              a.ID,
		PublicID:        a.PublicID,
		ClientID:        a.ClientID,
		StudioID:        a.StudioID,
		LocationID:      a.LocationID,
		StaffID:         a.StaffID,
		ServiceID:       a.ServiceID,
		ScheduledStart:  req.NewStart,
		DurationMinutes: a.DurationMinutes,
		Status:          string(a.Status),
		UpdatedAt:       now,
	}, nil
}

// policyResult логирует результат проверки политики.
// Нарушение - ожидаемый исход, логируется как warning
func (uc *UseCase) policyResult(check string, err error) error {
	if v, ok := policy.AsViolation(err); ok {
		uc.logger.Warn("RescheduleAppointment: %s denied by policy: %s", check, v)
		return v
	}
	uc.logger.Error("RescheduleAppointment: %s check failed: %v", check, err)
	return err
}

// startOfDay обнуляет время, сохраняя часовой пояс
func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
