package get_bookable_slots

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-StudioBookingService/internal/availability"
	"github.com/m04kA/SMC-StudioBookingService/internal/domain"
	studioClient "github.com/m04kA/SMC-StudioBookingService/internal/integrations/studioservice"
	"github.com/m04kA/SMC-StudioBookingService/internal/policy"
	"github.com/m04kA/SMC-StudioBookingService/pkg/ptr"
)

// UseCase use case для получения доступных слотов
type UseCase struct {
	appointmentRepo AppointmentRepository
	shiftRepo       ShiftRepository
	policyProvider  PolicyProvider
	studioClient    StudioServiceClient
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	appointmentRepo AppointmentRepository,
	shiftRepo ShiftRepository,
	policyProvider PolicyProvider,
	studioClient StudioServiceClient,
	logger Logger,
) *UseCase {
	return &UseCase{
		appointmentRepo: appointmentRepo,
		shiftRepo:       shiftRepo,
		policyProvider:  policyProvider,
		studioClient:    studioClient,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Execute выполняет use case получения доступных слотов.
// Итоговый слот - пересечение трёх независимых фильтров: физическое
// покрытие сменами мастера, отсутствие пересечений с активными
// бронированиями и разрешение политики студии на данный момент начала
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetBookableSlots: studio=%d, location=%d, service=%d, staff=%d, date=%s",
		req.StudioID, req.LocationID, req.ServiceID, req.StaffID, req.Date.Format(domain.DateFormat))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetBookableSlots: validation failed: %v", err)
		return nil, err
	}

	granularity := req.GranularityMinutes
	if granularity == 0 {
		granularity = domain.DefaultSlotGranularityMinutes
	}

	// 2. Получаем текущее время
	now := uc.timeProvider.Now()

	// 3. Получаем студию и её часовой пояс
	studio, err := uc.studioClient.GetStudio(ctx, req.StudioID)
	if err != nil {
		if errors.Is(err, studioClient.ErrStudioNotFound) {
			uc.logger.Warn("GetBookableSlots: studio id=%d not found", req.StudioID)
			return nil, ErrStudioNotFound
		}
		uc.logger.Error("GetBookableSlots: failed to get studio id=%d: %v", req.StudioID, err)
		return nil, fmt.Errorf("%w: failed to get studio: %v", ErrInternal, err)
	}

	loc, err := time.LoadLocation(studio.Timezone)
	if err != nil {
		uc.logger.Error("GetBookableSlots: studio id=%d has invalid timezone %q: %v",
			req.StudioID, studio.Timezone, err)
		return nil, fmt.Errorf("%w: %q", ErrInvalidTimezone, studio.Timezone)
	}

	if !studio.HasLocation(req.LocationID) {
		uc.logger.Warn("GetBookableSlots: location id=%d not found in studio id=%d",
			req.LocationID, req.StudioID)
		return nil, ErrLocationNotFound
	}

	// 4. Получаем услугу и мастера
	service, err := uc.studioClient.GetService(ctx, req.StudioID, req.ServiceID)
	if err != nil {
		if errors.Is(err, studioClient.ErrServiceNotFound) {
			uc.logger.Warn("GetBookableSlots: service id=%d not found", req.ServiceID)
			return nil, ErrServiceNotFound
		}
		uc.logger.Error("GetBookableSlots: failed to get service id=%d: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}
	if !service.AvailableAt(req.LocationID) {
		return nil, ErrServiceNotAvailableAtLocation
	}

	staff, err := uc.studioClient.GetStaffMember(ctx, req.StudioID, req.StaffID)
	if err != nil {
		if errors.Is(err, studioClient.ErrStaffNotFound) {
			uc.logger.Warn("GetBookableSlots: staff id=%d not found", req.StaffID)
			return nil, ErrStaffNotFound
		}
		uc.logger.Error("GetBookableSlots: failed to get staff id=%d: %v", req.StaffID, err)
		return nil, fmt.Errorf("%w: failed to get staff member: %v", ErrInternal, err)
	}
	if !staff.WorksAt(req.LocationID) {
		return nil, ErrStaffNotAtLocation
	}

	// 5. Получаем политику студии
	p, err := uc.policyProvider.GetDomain(ctx, req.StudioID)
	if err != nil {
		uc.logger.Error("GetBookableSlots: failed to get policy for studio=%d: %v", req.StudioID, err)
		return nil, fmt.Errorf("%w: failed to get policy: %v", ErrInternal, err)
	}

	// 6. Смены мастера на эту дату и локацию
	intervals, err := uc.shiftRepo.GetIntervals(ctx, req.StaffID, req.Date, req.Date,
		ptr.Ptr(req.LocationID), false)
	if err != nil {
		uc.logger.Error("GetBookableSlots: failed to get shifts: %v", err)
		return nil, fmt.Errorf("%w: failed to get shifts: %v", ErrInternal, err)
	}

	candidates, err := availability.BookableSlots(intervals, req.Date, loc,
		service.DurationMinutes, granularity)
	if err != nil {
		uc.logger.Error("GetBookableSlots: failed to build slot grid: %v", err)
		return nil, fmt.Errorf("%w: failed to build slot grid: %v", ErrInternal, err)
	}

	// 7. Активные бронирования мастера за день
	dayStart := time.Date(req.Date.Year(), req.Date.Month(), req.Date.Day(), 0, 0, 0, 0, loc)
	dayEnd := dayStart.AddDate(0, 0, 1)
	existing, err := uc.appointmentRepo.GetByStaffWithFilter(ctx, domain.StaffAppointmentsFilter{
		StaffID: req.StaffID,
		From:    &dayStart,
		To:      &dayEnd,
	})
	if err != nil {
		uc.logger.Error("GetBookableSlots: failed to get appointments: %v", err)
		return nil, fmt.Errorf("%w: failed to get appointments: %v", ErrInternal, err)
	}

	// 8. Фильтруем сетку: политика и занятость
	slots := make([]time.Time, 0)
	for candidate := range candidates {
		ok, err := policy.CanBookNow(p, candidate, now, loc)
		if err != nil {
			// Повреждённая конфигурация - ошибка запроса целиком,
			// а не пустая сетка
			uc.logger.Error("GetBookableSlots: policy evaluation failed: %v", err)
			return nil, err
		}
		if !ok {
			continue
		}

		if overlapsAny(existing, candidate, service.DurationMinutes) {
			continue
		}

		slots = append(slots, candidate)
	}

	uc.logger.Info("GetBookableSlots: %d slots available for staff=%d on %s",
		len(slots), req.StaffID, req.Date.Format(domain.DateFormat))

	return &Response{
		Date:               req.Date.Format(domain.DateFormat),
		StaffID:            req.StaffID,
		ServiceID:          req.ServiceID,
		DurationMinutes:    service.DurationMinutes,
		GranularityMinutes: granularity,
		Slots:              slots,
	}, nil
}

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.StudioID <= 0 {
		return fmt.Errorf("%w: studioID must be positive", ErrInvalidInput)
	}
	if req.LocationID <= 0 {
		return fmt.Errorf("%w: locationID must be positive", ErrInvalidInput)
	}
	if req.ServiceID <= 0 {
		return fmt.Errorf("%w: serviceID must be positive", ErrInvalidInput)
	}
	if req.StaffID <= 0 {
		return fmt.Errorf("%w: staffID must be positive", ErrInvalidInput)
	}
	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}
	if req.GranularityMinutes < 0 {
		return fmt.Errorf("%w: granularity must not be negative", ErrInvalidInput)
	}
	return nil
}

// overlapsAny проверяет пересечение кандидата с активными бронированиями
func overlapsAny(existing []*domain.Appointment, start time.Time, durationMinutes int) bool {
	for _, a := range existing {
		if a.Overlaps(start, durationMinutes) {
			return true
		}
	}
	return false
}
