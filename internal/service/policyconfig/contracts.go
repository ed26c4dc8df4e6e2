package policyconfig

import (
	"context"

	"github.com/m04kA/SMC-StudioBookingService/internal/domain"
	"github.com/m04kA/SMC-StudioBookingService/internal/integrations/studioservice"
)

// PolicyRepository интерфейс репозитория политик бронирования
type PolicyRepository interface {
	GetByStudioID(ctx context.Context, studioID int64) (*domain.BookingPolicy, error)
	Create(ctx context.Context, p *domain.BookingPolicy) (*domain.BookingPolicy, error)
	Update(ctx context.Context, studioID int64, p *domain.BookingPolicy) (*domain.BookingPolicy, error)
}

// StudioServiceClient интерфейс клиента для StudioService
type StudioServiceClient interface {
	GetStudio(ctx context.Context, studioID int64) (*studioservice.Studio, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
