package delete_shift

import "context"

// ShiftService интерфейс сервиса смен
type ShiftService interface {
	Delete(ctx context.Context, id int64, userID int64) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
