package materialize_shifts

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-StudioBookingService/internal/availability"
	"github.com/m04kA/SMC-StudioBookingService/internal/domain"
	studioClient "github.com/m04kA/SMC-StudioBookingService/internal/integrations/studioservice"
	"github.com/m04kA/SMC-StudioBookingService/pkg/types"
)

// Максимальный горизонт одной материализации
const maxHorizonDays = 92

// UseCase use case материализации недельного шаблона в датированные смены
type UseCase struct {
	shiftRepo    ShiftRepository
	studioClient StudioServiceClient
	txManager    TransactionManager
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	shiftRepo ShiftRepository,
	studioClient StudioServiceClient,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		shiftRepo:    shiftRepo,
		studioClient: studioClient,
		txManager:    txManager,
		logger:       logger,
	}
}

// Execute выполняет материализацию шаблона на горизонт [From, To].
// Для каждой даты берутся записи шаблона соответствующего дня недели;
// сотрудник без шаблона получает дефолтный рабочий день 09:00-17:00
// на основной локации. Запись, пересекающаяся с уже существующей
// сменой, не создаётся и попадает в список rejected - частичный
// успех с полным отчётом вместо молчаливого пропуска.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("MaterializeShifts: staff=%d, studio=%d, from=%s, to=%s by user=%d",
		req.StaffID, req.StudioID, req.From.Format(domain.DateFormat),
		req.To.Format(domain.DateFormat), req.UserID)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("MaterializeShifts: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем студию для проверки прав доступа
	studio, err := uc.studioClient.GetStudio(ctx, req.StudioID)
	if err != nil {
		if errors.Is(err, studioClient.ErrStudioNotFound) {
			uc.logger.Warn("MaterializeShifts: studio id=%d not found", req.StudioID)
			return nil, ErrStudioNotFound
		}
		uc.logger.Error("MaterializeShifts: failed to get studio id=%d: %v", req.StudioID, err)
		return nil, fmt.Errorf("%w: failed to get studio: %v", ErrInternal, err)
	}

	// 3. Проверяем права доступа (только менеджер студии)
	if !studio.IsManager(req.UserID) {
		uc.logger.Warn("MaterializeShifts: user=%d is not a manager of studio=%d", req.UserID, req.StudioID)
		return nil, ErrAccessDenied
	}

	// 4. Получаем сотрудника (нужна основная локация для дефолтного шаблона)
	staff, err := uc.studioClient.GetStaffMember(ctx, req.StudioID, req.StaffID)
	if err != nil {
		if errors.Is(err, studioClient.ErrStaffNotFound) {
			uc.logger.Warn("MaterializeShifts: staff id=%d not found", req.StaffID)
			return nil, ErrStaffNotFound
		}
		uc.logger.Error("MaterializeShifts: failed to get staff id=%d: %v", req.StaffID, err)
		return nil, fmt.Errorf("%w: failed to get staff member: %v", ErrInternal, err)
	}

	// 5. Получаем шаблон; при его отсутствии строим дефолтный
	templates, err := uc.shiftRepo.GetTemplates(ctx, req.StaffID)
	if err != nil {
		uc.logger.Error("MaterializeShifts: failed to get templates: %v", err)
		return nil, fmt.Errorf("%w: failed to get templates: %v", ErrInternal, err)
	}

	byWeekday, err := uc.templateByWeekday(templates, req, staff)
	if err != nil {
		return nil, err
	}

	resp := &Response{Rejected: make([]RejectedDay, 0)}

	// 6. Материализуем в транзакции: либо все принятые дни записаны,
	// либо ни одного
	err = uc.txManager.Do(ctx, func(txCtx context.Context) error {
		existing, err := uc.shiftRepo.GetIntervals(txCtx, req.StaffID, req.From, req.To, nil, false)
		if err != nil {
			uc.logger.Error("MaterializeShifts: failed to get existing shifts: %v", err)
			return fmt.Errorf("%w: failed to get existing shifts: %v", ErrInternal, err)
		}

		for date := req.From; !date.After(req.To); date = date.AddDate(0, 0, 1) {
			for _, entry := range byWeekday[date.Weekday()] {
				candidate := domain.ShiftInterval{
					StudioID:   req.StudioID,
					StaffID:    req.StaffID,
					LocationID: entry.LocationID,
					Date:       date,
					StartTime:  entry.StartTime,
					EndTime:    entry.EndTime,
					Status:     domain.ShiftScheduled,
				}

				if availability.HasConflict(existing, candidate) {
					resp.Rejected = append(resp.Rejected, RejectedDay{
						Date: date.Format(domain.DateFormat),
						Reason: fmt.Sprintf("%s-%s overlaps an existing shift",
							entry.StartTime, entry.EndTime),
					})
					continue
				}

				created, err := uc.shiftRepo.CreateInterval(txCtx, &candidate)
				if err != nil {
					uc.logger.Error("MaterializeShifts: failed to create shift on %s: %v",
						date.Format(domain.DateFormat), err)
					return fmt.Errorf("%w: failed to create shift: %v", ErrInternal, err)
				}

				// Созданная запись сама участвует в проверке следующих
				existing = append(existing, *created)
				resp.CreatedCount++
			}
		}
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("MaterializeShifts: created %d shifts for staff=%d (%d rejected)",
		resp.CreatedCount, req.StaffID, len(resp.Rejected))
	return resp, nil
}

// templateByWeekday группирует записи шаблона по дням недели.
// Сотрудник без шаблона получает дефолтный рабочий день на каждый
// день горизонта
func (uc *UseCase) templateByWeekday(
	templates []domain.ShiftTemplate,
	req *Request,
	staff *studioClient.StaffMember,
) (map[time.Weekday][]domain.ShiftTemplate, error) {
	byWeekday := make(map[time.Weekday][]domain.ShiftTemplate)

	if len(templates) == 0 {
		if len(staff.LocationIDs) == 0 {
			uc.logger.Warn("MaterializeShifts: staff id=%d has no template and no location", req.StaffID)
			return nil, ErrStaffHasNoLocation
		}

		uc.logger.Info("MaterializeShifts: staff id=%d has no template, using default working day %s-%s",
			req.StaffID, domain.DefaultShiftStart, domain.DefaultShiftEnd)

		for wd := time.Sunday; wd <= time.Saturday; wd++ {
			byWeekday[wd] = []domain.ShiftTemplate{{
				StudioID:   req.StudioID,
				StaffID:    req.StaffID,
				LocationID: staff.LocationIDs[0],
				Weekday:    wd,
				StartTime:  types.TimeString(domain.DefaultShiftStart),
				EndTime:    types.TimeString(domain.DefaultShiftEnd),
			}}
		}
		return byWeekday, nil
	}

	for _, t := range templates {
		byWeekday[t.Weekday] = append(byWeekday[t.Weekday], t)
	}
	return byWeekday, nil
}

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.UserID <= 0 {
		return fmt.Errorf("%w: userID must be positive", ErrInvalidInput)
	}
	if req.StudioID <= 0 {
		return fmt.Errorf("%w: studioID must be positive", ErrInvalidInput)
	}
	if req.StaffID <= 0 {
		return fmt.Errorf("%w: staffID must be positive", ErrInvalidInput)
	}
	if req.From.IsZero() || req.To.IsZero() {
		return fmt.Errorf("%w: from and to dates are required", ErrInvalidInput)
	}
	if req.To.Before(req.From) {
		return fmt.Errorf("%w: 'to' date must not be before 'from' date", ErrInvalidInput)
	}
	if req.To.Sub(req.From) > maxHorizonDays*24*time.Hour {
		return fmt.Errorf("%w: horizon must not exceed %d days", ErrInvalidInput, maxHorizonDays)
	}
	return nil
}
