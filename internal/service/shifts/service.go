package shifts

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-StudioBookingService/internal/availability"
	"github.com/m04kA/SMC-StudioBookingService/internal/domain"
	shiftRepo "github.com/m04kA/SMC-StudioBookingService/internal/infra/storage/shift"
	studioClient "github.com/m04kA/SMC-StudioBookingService/internal/integrations/studioservice"
	"github.com/m04kA/SMC-StudioBookingService/internal/service/shifts/models"
	"github.com/m04kA/SMC-StudioBookingService/pkg/types"
)

// Service сервис для работы со сменами сотрудников
type Service struct {
	shiftRepo    ShiftRepository
	studioClient StudioServiceClient
	txManager    TransactionManager
	logger       Logger
}

// NewService создает новый экземпляр сервиса смен
func NewService(
	shiftRepo ShiftRepository,
	studioClient StudioServiceClient,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		shiftRepo:    shiftRepo,
		studioClient: studioClient,
		txManager:    txManager,
		logger:       logger,
	}
}

// GetStaffShifts возвращает смены сотрудника за период
// Публичный метод - используется клиентами для построения календаря
// Возвращаются только scheduled-интервалы
func (s *Service) GetStaffShifts(ctx context.Context, req *models.GetStaffShiftsRequest) (*models.ShiftListResponse, error) {
	s.logger.Info("GetStaffShifts: staff=%d, from=%s, to=%s",
		req.StaffID, req.From.Format(domain.DateFormat), req.To.Format(domain.DateFormat))

	if req.To.Before(req.From) {
		return nil, fmt.Errorf("%w: 'to' date must not be before 'from' date", ErrInvalidInput)
	}

	intervals, err := s.shiftRepo.GetIntervals(ctx, req.StaffID, req.From, req.To, req.LocationID, false)
	if err != nil {
		s.logger.Error("GetStaffShifts: repository error for staff=%d: %v", req.StaffID, err)
		return nil, fmt.Errorf("%w: GetStaffShifts - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainShiftList(intervals), nil
}

// Create создает разовую смену сотрудника на конкретную дату
// Доступно только менеджерам студии
// Пересечение с существующей сменой того же сотрудника отклоняется,
// смежные интервалы (конец одного равен началу другого) допустимы
func (s *Service) Create(ctx context.Context, req *models.CreateShiftRequest) (*models.ShiftResponse, error) {
	s.logger.Info("Create: shift for staff=%d at location=%d on %s %s-%s by user=%d",
		req.StaffID, req.LocationID, req.Date.Format(domain.DateFormat),
		req.StartTime, req.EndTime, req.UserID)

	// 1. Валидируем интервал
	if err := validateShiftTimes(req.StartTime.String(), req.EndTime.String()); err != nil {
		s.logger.Warn("Create: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем студию для проверки прав доступа и локации
	studio, err := s.getStudio(ctx, req.StudioID)
	if err != nil {
		return nil, err
	}

	// 3. Проверяем права доступа (только менеджер студии)
	if !studio.IsManager(req.UserID) {
		s.logger.Warn("Create: user=%d is not a manager of studio=%d", req.UserID, req.StudioID)
		return nil, ErrAccessDenied
	}

	// 4. Проверяем локацию и привязку сотрудника к ней
	if !studio.HasLocation(req.LocationID) {
		s.logger.Warn("Create: location id=%d not found in studio=%d", req.LocationID, req.StudioID)
		return nil, ErrLocationNotFound
	}

	staff, err := s.studioClient.GetStaffMember(ctx, req.StudioID, req.StaffID)
	if err != nil {
		if errors.Is(err, studioClient.ErrStaffNotFound) {
			s.logger.Warn("Create: staff id=%d not found in studio=%d", req.StaffID, req.StudioID)
			return nil, ErrStaffNotFound
		}
		s.logger.Error("Create: failed to get staff id=%d: %v", req.StaffID, err)
		return nil, fmt.Errorf("%w: failed to get staff member: %v", ErrInternal, err)
	}
	if !staff.WorksAt(req.LocationID) {
		s.logger.Warn("Create: staff id=%d does not work at location id=%d", req.StaffID, req.LocationID)
		return nil, fmt.Errorf("%w: staff member does not work at this location", ErrInvalidInput)
	}

	// 5. Проверяем пересечение с существующими сменами этого дня
	existing, err := s.shiftRepo.GetIntervals(ctx, req.StaffID, req.Date, req.Date, nil, false)
	if err != nil {
		s.logger.Error("Create: failed to get existing shifts: %v", err)
		return nil, fmt.Errorf("%w: Create - failed to get existing shifts: %v", ErrInternal, err)
	}

	candidate := req.ToDomainInterval()
	if availability.HasConflict(existing, *candidate) {
		s.logger.Warn("Create: shift %s-%s conflicts with an existing shift of staff=%d on %s",
			req.StartTime, req.EndTime, req.StaffID, req.Date.Format(domain.DateFormat))
		return nil, ErrShiftConflict
	}

	// 6. Создаем смену
	created, err := s.shiftRepo.CreateInterval(ctx, candidate)
	if err != nil {
		s.logger.Error("Create: repository error: %v", err)
		return nil, fmt.Errorf("%w: Create - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Create: successfully created shift id=%d", created.ID)
	return models.FromDomainShift(created), nil
}

// Delete удаляет смену по ID
// Доступно только менеджерам студии
func (s *Service) Delete(ctx context.Context, id int64, userID int64) error {
	s.logger.Info("Delete: deleting shift id=%d by user=%d", id, userID)

	// 1. Получаем смену для проверки прав доступа
	iv, err := s.shiftRepo.GetIntervalByID(ctx, id)
	if err != nil {
		if errors.Is(err, shiftRepo.ErrShiftNotFound) {
			s.logger.Warn("Delete: shift id=%d not found", id)
			return ErrShiftNotFound
		}
		s.logger.Error("Delete: repository error for shift id=%d: %v", id, err)
		return fmt.Errorf("%w: Delete - repository error: %v", ErrInternal, err)
	}

	// 2. Получаем студию для проверки прав доступа
	studio, err := s.getStudio(ctx, iv.StudioID)
	if err != nil {
		return err
	}

	// 3. Проверяем права доступа (только менеджер студии)
	if !studio.IsManager(userID) {
		s.logger.Warn("Delete: user=%d is not a manager of studio=%d", userID, iv.StudioID)
		return ErrAccessDenied
	}

	// 4. Удаляем смену
	if err := s.shiftRepo.DeleteInterval(ctx, id); err != nil {
		if errors.Is(err, shiftRepo.ErrShiftNotFound) {
			s.logger.Warn("Delete: shift id=%d not found during deletion", id)
			return ErrShiftNotFound
		}
		s.logger.Error("Delete: repository error for shift id=%d: %v", id, err)
		return fmt.Errorf("%w: Delete - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Delete: successfully deleted shift id=%d", id)
	return nil
}

// PutTemplate полностью заменяет недельный шаблон сотрудника
// Доступно только менеджерам студии
// Замена выполняется атомарно: старые записи удаляются и новые
// вставляются в одной транзакции. Уже материализованные смены
// шаблон не трогает.
func (s *Service) PutTemplate(ctx context.Context, req *models.PutTemplateRequest) (*models.TemplateResponse, error) {
	s.logger.Info("PutTemplate: replacing template for staff=%d in studio=%d by user=%d (%d entries)",
		req.StaffID, req.StudioID, req.UserID, len(req.Entries))

	// 1. Получаем студию для проверки прав доступа и локаций
	studio, err := s.getStudio(ctx, req.StudioID)
	if err != nil {
		return nil, err
	}

	// 2. Проверяем права доступа (только менеджер студии)
	if !studio.IsManager(req.UserID) {
		s.logger.Warn("PutTemplate: user=%d is not a manager of studio=%d", req.UserID, req.StudioID)
		return nil, ErrAccessDenied
	}

	// 3. Проверяем существование сотрудника
	if _, err := s.studioClient.GetStaffMember(ctx, req.StudioID, req.StaffID); err != nil {
		if errors.Is(err, studioClient.ErrStaffNotFound) {
			s.logger.Warn("PutTemplate: staff id=%d not found in studio=%d", req.StaffID, req.StudioID)
			return nil, ErrStaffNotFound
		}
		s.logger.Error("PutTemplate: failed to get staff id=%d: %v", req.StaffID, err)
		return nil, fmt.Errorf("%w: failed to get staff member: %v", ErrInternal, err)
	}

	// 4. Валидируем записи шаблона
	if err := s.validateTemplateEntries(studio, req.Entries); err != nil {
		s.logger.Warn("PutTemplate: validation failed: %v", err)
		return nil, err
	}

	// 5. Заменяем шаблон атомарно
	entries := req.ToDomainTemplates()
	err = s.txManager.Do(ctx, func(txCtx context.Context) error {
		return s.shiftRepo.ReplaceTemplates(txCtx, req.StudioID, req.StaffID, entries)
	})
	if err != nil {
		s.logger.Error("PutTemplate: failed to replace template: %v", err)
		return nil, fmt.Errorf("%w: PutTemplate - failed to replace template: %v", ErrInternal, err)
	}

	s.logger.Info("PutTemplate: successfully replaced template for staff=%d", req.StaffID)
	return models.FromDomainTemplates(req.StudioID, req.StaffID, entries), nil
}

// Вспомогательные методы

func (s *Service) getStudio(ctx context.Context, studioID int64) (*studioClient.Studio, error) {
	studio, err := s.studioClient.GetStudio(ctx, studioID)
	if err != nil {
		if errors.Is(err, studioClient.ErrStudioNotFound) {
			s.logger.Warn("studio id=%d not found", studioID)
			return nil, ErrStudioNotFound
		}
		s.logger.Error("failed to get studio id=%d: %v", studioID, err)
		return nil, fmt.Errorf("%w: failed to get studio: %v", ErrInternal, err)
	}
	return studio, nil
}

// validateTemplateEntries валидирует записи недельного шаблона.
// Записи одного дня недели не должны пересекаться между собой.
func (s *Service) validateTemplateEntries(studio *studioClient.Studio, entries []models.TemplateEntry) error {
	for i, e := range entries {
		if e.Weekday < 0 || e.Weekday > 6 {
			return fmt.Errorf("%w: entry %d: weekday must be between 0 and 6", ErrInvalidInput, i)
		}
		if !studio.HasLocation(e.LocationID) {
			return fmt.Errorf("%w: entry %d: location id=%d not found in studio", ErrInvalidInput, i, e.LocationID)
		}
		if err := validateShiftTimes(e.StartTime.String(), e.EndTime.String()); err != nil {
			return fmt.Errorf("%w: entry %d: %v", ErrInvalidInput, i, err)
		}

		for j := 0; j < i; j++ {
			prev := entries[j]
			if prev.Weekday != e.Weekday {
				continue
			}
			if e.StartTime.IsBefore(prev.EndTime) && e.EndTime.IsAfter(prev.StartTime) {
				return fmt.Errorf("%w: entry %d overlaps entry %d", ErrInvalidInput, i, j)
			}
		}
	}
	return nil
}

// validateShiftTimes проверяет формат и порядок границ интервала
func validateShiftTimes(start, end string) error {
	startTS, err := types.NewTimeStringFromString(start)
	if err != nil {
		return fmt.Errorf("%w: invalid startTime: %v", ErrInvalidInput, err)
	}
	endTS, err := types.NewTimeStringFromString(end)
	if err != nil {
		return fmt.Errorf("%w: invalid endTime: %v", ErrInvalidInput, err)
	}
	if !startTS.IsBefore(endTS) {
		return fmt.Errorf("%w: startTime must be before endTime", ErrInvalidInput)
	}
	return nil
}
