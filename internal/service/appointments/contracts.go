package appointments

import (
	"context"
	"time"

	"github.com/m04kA/SMC-StudioBookingService/internal/domain"
	"github.com/m04kA/SMC-StudioBookingService/internal/integrations/studioservice"
)

// AppointmentRepository интерфейс репозитория бронирований
type AppointmentRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Appointment, error)
	Cancel(ctx context.Context, id int64, status domain.AppointmentStatus, reason string) error
}

// PolicyProvider предоставляет действующую политику студии
// (сохранённую или дефолтную)
type PolicyProvider interface {
	GetDomain(ctx context.Context, studioID int64) (*domain.BookingPolicy, error)
}

// StudioServiceClient интерфейс клиента для StudioService
type StudioServiceClient interface {
	GetStudio(ctx context.Context, studioID int64) (*studioservice.Studio, error)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
