package create_appointment

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-StudioBookingService/internal/availability"
	"github.com/m04kA/SMC-StudioBookingService/internal/domain"
	studioClient "github.com/m04kA/SMC-StudioBookingService/internal/integrations/studioservice"
	"github.com/m04kA/SMC-StudioBookingService/internal/policy"
)

// UseCase use case для создания бронирования
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

// Execute выполняет use case создания бронирования.
// Правила политики проверяются дважды: быстрый отказ до транзакции
// и повторная проверка занятости слота внутри сериализуемой
// транзакции. Гонка двух клиентов за один слот разрешается на
// уровне изоляции БД: проигравшая транзакция повторяется и видит
// занятый слот.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateAppointment: client=%d, studio=%d, location=%d, service=%d, staff=%d, start=%s",
		req.ClientID, req.StudioID, req.LocationID, req.ServiceID, req.StaffID,
		req.ScheduledStart.Format(time.RFC3339))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateAppointment: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время
	now := uc.timeProvider.Now()

	// 3. Получаем студию и её часовой пояс
	studio, err := uc.studioClient.GetStudio(ctx, req.StudioID)
	if err != nil {
		if errors.Is(err, studioClient.ErrStudioNotFound) {
			uc.logger.Warn("CreateAppointment: studio id=%d not found", req.StudioID)
			return nil, ErrStudioNotFound
		}
		uc.logger.Error("CreateAppointment: failed to get studio id=%d: %v", req.StudioID, err)
		return nil, fmt.Errorf("%w: failed to get studio: %v", ErrInternal, err)
	}

	loc, err := time.LoadLocation(studio.Timezone)
	if err != nil {
		uc.logger.Error("CreateAppointment: studio id=%d has invalid timezone %q: %v",
			req.StudioID, studio.Timezone, err)
		return nil, fmt.Errorf("%w: %q", ErrInvalidTimezone, studio.Timezone)
	}

	// 4. Проверяем локацию
	if !studio.HasLocation(req.LocationID) {
		uc.logger.Warn("CreateAppointment: location id=%d not found in studio id=%d",
			req.LocationID, req.StudioID)
		return nil, ErrLocationNotFound
	}

	// 5. Получаем услугу и проверяем её доступность на локации
	service, err := uc.studioClient.GetService(ctx, req.StudioID, req.ServiceID)
	if err != nil {
		if errors.Is(err, studioClient.ErrServiceNotFound) {
			uc.logger.Warn("CreateAppointment: service id=%d not found", req.ServiceID)
			return nil, ErrServiceNotFound
		}
		uc.logger.Error("CreateAppointment: failed to get service id=%d: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}
	if !service.AvailableAt(req.LocationID) {
		uc.logger.Warn("CreateAppointment: service id=%d not available at location id=%d",
			req.ServiceID, req.LocationID)
		return nil, ErrServiceNotAvailableAtLocation
	}

	// 6. Получаем мастера и проверяем привязку к локации
	staff, err := uc.studioClient.GetStaffMember(ctx, req.StudioID, req.StaffID)
	if err != nil {
		if errors.Is(err, studioClient.ErrStaffNotFound) {
			uc.logger.Warn("CreateAppointment: staff id=%d not found", req.StaffID)
			return nil, ErrStaffNotFound
		}
		uc.logger.Error("CreateAppointment: failed to get staff id=%d: %v", req.StaffID, err)
		return nil, fmt.Errorf("%w: failed to get staff member: %v", ErrInternal, err)
	}
	if !staff.WorksAt(req.LocationID) {
		uc.logger.Warn("CreateAppointment: staff id=%d does not work at location id=%d",
			req.StaffID, req.LocationID)
		return nil, ErrStaffNotAtLocation
	}

	// 7. Проверяем правила политики (быстрый отказ до транзакции)
	p, err := uc.policyProvider.GetDomain(ctx, req.StudioID)
	if err != nil {
		uc.logger.Error("CreateAppointment: failed to get policy for studio=%d: %v", req.StudioID, err)
		return nil, fmt.Errorf("%w: failed to get policy: %v", ErrInternal, err)
	}

	if err := uc.checkPolicy(p, req, now, loc); err != nil {
		return nil, err
	}

	// Переменная для хранения результата
	var result *domain.Appointment

	// 8. Выполняем операции с БД в сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 8.1. Слот должен целиком лежать внутри scheduled-смен мастера
		// в календарный день студии
		day := startOfDay(req.ScheduledStart.In(loc))
		intervals, err := uc.shiftRepo.GetIntervals(txCtx, req.StaffID, day, day, nil, false)
		if err != nil {
			uc.logger.Error("CreateAppointment: failed to get shifts: %v", err)
			return fmt.Errorf("%w: failed to get shifts: %v", ErrInternal, err)
		}

		covered, err := availability.Covers(intervals, req.ScheduledStart, service.DurationMinutes, loc)
		if err != nil {
			uc.logger.Error("CreateAppointment: failed to check shift coverage: %v", err)
			return fmt.Errorf("%w: failed to check shift coverage: %v", ErrInternal, err)
		}
		if !covered {
			uc.logger.Warn("CreateAppointment: slot %s is outside staff=%d shifts",
				req.ScheduledStart.Format(time.RFC3339), req.StaffID)
			return ErrSlotNoLongerAvailable
		}

		// 8.2. Слот не должен пересекаться с активными бронированиями
		from := req.ScheduledStart.Add(-24 * time.Hour)
		to := req.ScheduledStart.Add(24 * time.Hour)
		existing, err := uc.appointmentRepo.GetByStaffWithFilter(txCtx, domain.StaffAppointmentsFilter{
			StaffID: req.StaffID,
			From:    &from,
			To:      &to,
		})
		if err != nil {
			uc.logger.Error("CreateAppointment: failed to get existing appointments: %v", err)
			return fmt.Errorf("%w: failed to get existing appointments: %v", ErrInternal, err)
		}

		for _, a := range existing {
			if a.Overlaps(req.ScheduledStart, service.DurationMinutes) {
				uc.logger.Warn("CreateAppointment: slot %s overlaps appointment id=%d",
					req.ScheduledStart.Format(time.RFC3339), a.ID)
				return ErrSlotNoLongerAvailable
			}
		}

		// 8.3. Создаем бронирование с денормализацией данных услуги
		appointment := &domain.Appointment{
			PublicID:        uuid.New(),
			ClientID:        req.ClientID,
			StudioID:        req.StudioID,
			LocationID:      req.LocationID,
			StaffID:         req.StaffID,
			ServiceID:       req.ServiceID,
			ScheduledStart:  req.ScheduledStart,
			DurationMinutes: service.DurationMinutes,
			GroupSize:       req.GroupSize,
			Status:          domain.StatusConfirmed,
			ServiceName:     service.Name,
			ServicePrice:    getServicePrice(service),
			Notes:           req.Notes,
		}

		created, err := uc.appointmentRepo.Create(txCtx, appointment)
		if err != nil {
			uc.logger.Error("CreateAppointment: failed to create appointment: %v", err)
			return fmt.Errorf("%w: failed to create appointment: %v", ErrInternal, err)
		}

		result = created
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("CreateAppointment: successfully created appointment id=%d (public=%s)",
		result.ID, result.PublicID)

	// Конвертируем в response
	return &Response{
		ID:              result.ID,
		PublicID:        result.PublicID,
		ClientID:        result.ClientID,
		StudioID:        result.StudioID,
		LocationID:      result.LocationID,
		StaffID:         result.StaffID,
		ServiceID:       result.ServiceID,
		ScheduledStart:  result.ScheduledStart,
		DurationMinutes: result.DurationMinutes,
		GroupSize:       result.GroupSize,
		Status:          string(result.Status),
		ServiceName:     result.ServiceName,
		ServicePrice:    result.ServicePrice,
		Notes:           result.Notes,
		CreatedAt:       result.CreatedAt,
		UpdatedAt:       result.UpdatedAt,
	}, nil
}

// checkPolicy выполняет все проверки политики для запроса.
// Нарушение политики возвращается как *policy.Violation
func (uc *UseCase) checkPolicy(p *domain.BookingPolicy, req *Request, now time.Time, loc *time.Location) error {
	if err := policy.CheckBookNow(p, req.ScheduledStart, now, loc); err != nil {
		return uc.policyResult("booking window", err)
	}
	if err := policy.CheckStaffSelection(p, req.StaffSelected); err != nil {
		return uc.policyResult("staff selection", err)
	}
	if err := policy.ValidateGroupSize(p, req.GroupSize); err != nil {
		return uc.policyResult("group size", err)
	}
	return nil
}

// policyResult логирует результат проверки политики.
// Нарушение - ожидаемый исход, логируется как warning
func (uc *UseCase) policyResult(check string, err error) error {
	if v, ok := policy.AsViolation(err); ok {
		uc.logger.Warn("CreateAppointment: %s denied by policy: %s", check, v)
		return v
	}
	uc.logger.Error("CreateAppointment: %s check failed: %v", check, err)
	return err
}

// getServicePrice извлекает цену из услуги
// Если цена не указана (nil), возвращает 0
func getServicePrice(service *studioClient.Service) decimal.Decimal {
	if service.Price == nil {
		return decimal.Zero
	}
	return decimal.NewFromFloat(*service.Price)
}

// startOfDay обнуляет время, сохраняя часовой пояс
func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
