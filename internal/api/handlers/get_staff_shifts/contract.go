package get_staff_shifts

import (
	"context"

	"github.com/m04kA/SMC-StudioBookingService/internal/service/shifts/models"
)

// ShiftService интерфейс сервиса смен
type ShiftService interface {
	GetStaffShifts(ctx context.Context, req *models.GetStaffShiftsRequest) (*models.ShiftListResponse, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
