package materialize_shifts

import (
	"context"
	"time"

	"github.com/m04kA/SMC-StudioBookingService/internal/domain"
	"github.com/m04kA/SMC-StudioBookingService/internal/integrations/studioservice"
)

// ShiftRepository интерфейс репозитория смен
type ShiftRepository interface {
	CreateInterval(ctx context.Context, iv *domain.ShiftInterval) (*domain.ShiftInterval, error)
	GetIntervals(ctx context.Context, staffID int64, from, to time.Time, locationID *int64, includeCancelled bool) ([]domain.ShiftInterval, error)
	GetTemplates(ctx context.Context, staffID int64) ([]domain.ShiftTemplate, error)
}

// StudioServiceClient интерфейс клиента для StudioService
type StudioServiceClient interface {
	GetStudio(ctx context.Context, studioID int64) (*studioservice.Studio, error)
	GetStaffMember(ctx context.Context, studioID, staffID int64) (*studioservice.StaffMember, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
