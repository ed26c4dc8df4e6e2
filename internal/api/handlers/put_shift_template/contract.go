package put_shift_template

import (
	"context"

	"github.com/m04kA/SMC-StudioBookingService/internal/service/shifts/models"
)

// ShiftService интерфейс сервиса смен
type ShiftService interface {
	PutTemplate(ctx context.Context, req *models.PutTemplateRequest) (*models.TemplateResponse, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
