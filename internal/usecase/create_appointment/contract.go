package create_appointment

import (
	"context"
	"time"

	"github.com/m04kA/SMC-StudioBookingService/internal/domain"
	"github.com/m04kA/SMC-StudioBookingService/internal/integrations/studioservice"
)

// AppointmentRepository интерфейс репозитория бронирований
type AppointmentRepository interface {
	Create(ctx context.Context, a *domain.Appointment) (*domain.Appointment, error)
	GetByStaffWithFilter(ctx context.Context, filter domain.StaffAppointmentsFilter) ([]*domain.Appointment, error)
}

// ShiftRepository интерфейс репозитория смен
type ShiftRepository interface {
	GetIntervals(ctx context.Context, staffID int64, from, to time.Time, locationID *int64, includeCancelled bool) ([]domain.ShiftInterval, error)
}

// PolicyProvider предоставляет действующую политику студии
// (сохранённую или дефолтную)
type PolicyProvider interface {
	GetDomain(ctx context.Context, studioID int64) (*domain.BookingPolicy, error)
}

// StudioServiceClient интерфейс клиента для StudioService
type StudioServiceClient interface {
	GetStudio(ctx context.Context, studioID int64) (*studioservice.Studio, error)
	GetService(ctx context.Context, studioID, serviceID int64) (*studioservice.Service, error)
	GetStaffMember(ctx context.Context, studioID, staffID int64) (*studioservice.StaffMember, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
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
