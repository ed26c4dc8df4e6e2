package appointments

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-StudioBookingService/internal/domain"
	appointmentRepo "github.com/m04kA/SMC-StudioBookingService/internal/infra/storage/appointment"
	studioClient "github.com/m04kA/SMC-StudioBookingService/internal/integrations/studioservice"
	"github.com/m04kA/SMC-StudioBookingService/internal/policy"
	"github.com/m04kA/SMC-StudioBookingService/internal/service/appointments/models"
)

// Service сервис для работы с бронированиями
type Service struct {
	appointmentRepo AppointmentRepository
	policyProvider  PolicyProvider
	studioClient    StudioServiceClient
	timeProvider    TimeProvider
	logger          Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	appointmentRepo AppointmentRepository,
	policyProvider PolicyProvider,
	studioClient StudioServiceClient,
	logger Logger,
) *Service {
	return &Service{
		appointmentRepo: appointmentRepo,
		policyProvider:  policyProvider,
		studioClient:    studioClient,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// GetByID получает бронирование по ID
// Доступно владельцу бронирования и менеджерам студии
func (s *Service) GetByID(ctx context.Context, id int64, userID int64) (*models.AppointmentResponse, error) {
	s.logger.Info("GetByID: fetching appointment id=%d by user=%d", id, userID)

	a, err := s.getAppointment(ctx, id)
	if err != nil {
		return nil, err
	}

	if a.ClientID != userID {
		isManager, err := s.isStudioManager(ctx, a.StudioID, userID)
		if err != nil {
			return nil, err
		}
		if !isManager {
			s.logger.Warn("GetByID: user=%d has no access to appointment id=%d", userID, id)
			return nil, ErrAccessDenied
		}
	}

	return models.FromDomainAppointment(a), nil
}

// Cancel отменяет бронирование
// Владелец отменяет с проверкой дедлайна политики отмены,
// менеджер студии - без ограничений по времени.
// Нарушение политики не ошибка: наружу возвращается *policy.Violation
func (s *Service) Cancel(ctx context.Context, id int64, req *models.CancelAppointmentRequest) (*models.AppointmentResponse, error) {
	s.logger.Info("Cancel: cancelling appointment id=%d by user=%d", id, req.UserID)

	if req.Reason != nil && len(*req.Reason) > domain.MaxCancellationReasonLength {
		return nil, fmt.Errorf("%w: reason must not exceed %d characters",
			ErrInvalidInput, domain.MaxCancellationReasonLength)
	}

	a, err := s.getAppointment(ctx, id)
	if err != nil {
		return nil, err
	}

	// Определяем роль инициатора: владелец или менеджер студии
	byClient := a.ClientID == req.UserID
	if !byClient {
		isManager, err := s.isStudioManager(ctx, a.StudioID, req.UserID)
		if err != nil {
			return nil, err
		}
		if !isManager {
			s.logger.Warn("Cancel: user=%d has no access to appointment id=%d", req.UserID, id)
			return nil, ErrAccessDenied
		}
	}

	if !a.CanBeCancelled() {
		s.logger.Warn("Cancel: appointment id=%d has status %s and cannot be cancelled", id, a.Status)
		return nil, ErrNotCancellable
	}

	status := domain.StatusCancelledByStudio
	if byClient {
		status = domain.StatusCancelledByClient

		// Дедлайн политики отмены действует только для клиента
		p, err := s.policyProvider.GetDomain(ctx, a.StudioID)
		if err != nil {
			s.logger.Error("Cancel: failed to get policy for studio=%d: %v", a.StudioID, err)
			return nil, fmt.Errorf("%w: failed to get policy: %v", ErrInternal, err)
		}

		if err := policy.CheckCancel(p, a.ScheduledStart, s.timeProvider.Now()); err != nil {
			if v, ok := policy.AsViolation(err); ok {
				s.logger.Warn("Cancel: policy violation for appointment id=%d: %s", id, v.Reason)
				return nil, v
			}
			s.logger.Error("Cancel: policy evaluation failed for appointment id=%d: %v", id, err)
			return nil, err
		}
	}

	reason := ""
	if req.Reason != nil {
		reason = *req.Reason
	}

	if err := s.appointmentRepo.Cancel(ctx, id, status, reason); err != nil {
		if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			return nil, ErrAppointmentNotFound
		}
		s.logger.Error("Cancel: repository error for appointment id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
	}

	// Перечитываем запись, чтобы вернуть клиенту проставленные
	// cancelled_at и статус
	cancelled, err := s.getAppointment(ctx, id)
	if err != nil {
		return nil, err
	}

	s.logger.Info("Cancel: successfully cancelled appointment id=%d (status=%s)", id, status)
	return models.FromDomainAppointment(cancelled), nil
}

// Вспомогательные методы

func (s *Service) getAppointment(ctx context.Context, id int64) (*domain.Appointment, error) {
	a, err := s.appointmentRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			s.logger.Warn("appointment id=%d not found", id)
			return nil, ErrAppointmentNotFound
		}
		s.logger.Error("repository error for appointment id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: repository error: %v", ErrInternal, err)
	}
	return a, nil
}

func (s *Service) isStudioManager(ctx context.Context, studioID, userID int64) (bool, error) {
	studio, err := s.studioClient.GetStudio(ctx, studioID)
	if err != nil {
		if errors.Is(err, studioClient.ErrStudioNotFound) {
			s.logger.Warn("studio id=%d not found", studioID)
			return false, ErrStudioNotFound
		}
		s.logger.Error("failed to get studio id=%d: %v", studioID, err)
		return false, fmt.Errorf("%w: failed to get studio: %v", ErrInternal, err)
	}
	return studio.IsManager(userID), nil
}
