package create_shift

import (
	"context"

	"github.com/m04kA/SMC-StudioBookingService/internal/service/shifts/models"
)

// ShiftService интерфейс сервиса смен
type ShiftService interface {
	Create(ctx context.Context, req *models.CreateShiftRequest) (*models.ShiftResponse, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
