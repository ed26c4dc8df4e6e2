package materialize_shifts

import (
	"context"

	materializeShifts "github.com/m04kA/SMC-StudioBookingService/internal/usecase/materialize_shifts"
)

// MaterializeShiftsUseCase интерфейс usecase материализации шаблона
type MaterializeShiftsUseCase interface {
	Execute(ctx context.Context, req *materializeShifts.Request) (*materializeShifts.Response, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
