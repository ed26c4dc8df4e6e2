package policyconfig

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-StudioBookingService/internal/domain"
	policyRepo "github.com/m04kA/SMC-StudioBookingService/internal/infra/storage/policy"
	studioClient "github.com/m04kA/SMC-StudioBookingService/internal/integrations/studioservice"
	"github.com/m04kA/SMC-StudioBookingService/internal/service/policyconfig/models"
)

// Service сервис для работы с политикой бронирования студии
type Service struct {
	policyRepo   PolicyRepository
	studioClient StudioServiceClient
	logger       Logger
}

// NewService создает новый экземпляр сервиса политик
func NewService(
	policyRepo PolicyRepository,
	studioClient StudioServiceClient,
	logger Logger,
) *Service {
	return &Service{
		policyRepo:   policyRepo,
		studioClient: studioClient,
		logger:       logger,
	}
}

// Get возвращает политику бронирования студии
// Публичный метод - доступен всем
// Если студия еще не настраивала политику, возвращаются значения по умолчанию
func (s *Service) Get(ctx context.Context, studioID int64) (*models.PolicyResponse, error) {
	s.logger.Info("Get: fetching policy for studio=%d", studioID)

	p, err := s.policyRepo.GetByStudioID(ctx, studioID)
	if err != nil {
		if errors.Is(err, policyRepo.ErrPolicyNotFound) {
			s.logger.Info("Get: no stored policy for studio=%d, returning defaults", studioID)
			return models.FromDomainPolicy(domain.DefaultBookingPolicy(studioID), true), nil
		}
		s.logger.Error("Get: repository error for studio=%d: %v", studioID, err)
		return nil, fmt.Errorf("%w: Get - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainPolicy(p, false), nil
}

// GetDomain возвращает доменную политику студии для вычислений евалюатора.
// Отличается от Get отсутствием DTO-конвертации: usecase-слою нужна
// именно domain-модель.
func (s *Service) GetDomain(ctx context.Context, studioID int64) (*domain.BookingPolicy, error) {
	p, err := s.policyRepo.GetByStudioID(ctx, studioID)
	if err != nil {
		if errors.Is(err, policyRepo.ErrPolicyNotFound) {
			return domain.DefaultBookingPolicy(studioID), nil
		}
		s.logger.Error("GetDomain: repository error for studio=%d: %v", studioID, err)
		return nil, fmt.Errorf("%w: GetDomain - repository error: %v", ErrInternal, err)
	}
	return p, nil
}

// Update обновляет политику бронирования студии
// Доступно только менеджерам студии
// Поддерживает частичное обновление - обновляются только указанные поля.
// Буферы правил, выключенных тумблером, не стираются - повторное
// включение возвращает прежние значения.
func (s *Service) Update(ctx context.Context, studioID int64, req *models.UpdatePolicyRequest) (*models.PolicyResponse, error) {
	s.logger.Info("Update: updating policy for studio=%d by user=%d", studioID, req.UserID)

	// 1. Получаем студию для проверки прав доступа
	studio, err := s.studioClient.GetStudio(ctx, studioID)
	if err != nil {
		if errors.Is(err, studioClient.ErrStudioNotFound) {
			s.logger.Warn("Update: studio id=%d not found", studioID)
			return nil, ErrStudioNotFound
		}
		s.logger.Error("Update: failed to get studio id=%d: %v", studioID, err)
		return nil, fmt.Errorf("%w: failed to get studio: %v", ErrInternal, err)
	}

	// 2. Проверяем права доступа (только менеджер студии)
	if !studio.IsManager(req.UserID) {
		s.logger.Warn("Update: user=%d is not a manager of studio=%d", req.UserID, studioID)
		return nil, ErrAccessDenied
	}

	// 3. Получаем текущую политику; отсутствие записи не ошибка -
	// частичное обновление применяется поверх значений по умолчанию
	existing := true
	p, err := s.policyRepo.GetByStudioID(ctx, studioID)
	if err != nil {
		if !errors.Is(err, policyRepo.ErrPolicyNotFound) {
			s.logger.Error("Update: repository error for studio=%d: %v", studioID, err)
			return nil, fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
		}
		existing = false
		p = domain.DefaultBookingPolicy(studioID)
	}

	// 4. Применяем обновления и валидируем результат целиком
	req.ApplyToPolicy(p)
	if err := s.validatePolicy(p); err != nil {
		s.logger.Warn("Update: validation failed for studio=%d: %v", studioID, err)
		return nil, err
	}

	// 5. Сохраняем
	var saved *domain.BookingPolicy
	if existing {
		saved, err = s.policyRepo.Update(ctx, studioID, p)
	} else {
		saved, err = s.policyRepo.Create(ctx, p)
		if errors.Is(err, policyRepo.ErrDuplicatePolicy) {
			// Конкурентное создание - обновляем существующую запись
			saved, err = s.policyRepo.Update(ctx, studioID, p)
		}
	}
	if err != nil {
		s.logger.Error("Update: failed to save policy for studio=%d: %v", studioID, err)
		return nil, fmt.Errorf("%w: Update - failed to save policy: %v", ErrInternal, err)
	}

	s.logger.Info("Update: successfully updated policy for studio=%d", studioID)
	return models.FromDomainPolicy(saved, false), nil
}

// validatePolicy валидирует параметры политики
func (s *Service) validatePolicy(p *domain.BookingPolicy) error {
	if p.ImmediateBookingBufferMinutes < 0 {
		return fmt.Errorf("%w: immediateBookingBufferMinutes must be >= 0", ErrInvalidInput)
	}

	if p.FutureBookingLimitMonths < domain.MinFutureBookingLimitMonths ||
		p.FutureBookingLimitMonths > domain.MaxFutureBookingLimitMonths {
		return fmt.Errorf("%w: futureBookingLimitMonths must be between %d and %d",
			ErrInvalidInput, domain.MinFutureBookingLimitMonths, domain.MaxFutureBookingLimitMonths)
	}

	if p.MaxGroupSize < domain.MinGroupSize || p.MaxGroupSize > domain.MaxGroupSize {
		return fmt.Errorf("%w: maxGroupSize must be between %d and %d",
			ErrInvalidInput, domain.MinGroupSize, domain.MaxGroupSize)
	}

	if p.CancellationBufferHours < 0 {
		return fmt.Errorf("%w: cancellationBufferHours must be >= 0", ErrInvalidInput)
	}

	if p.ReschedulingBufferHours < 0 {
		return fmt.Errorf("%w: reschedulingBufferHours must be >= 0", ErrInvalidInput)
	}

	return nil
}
