package appointments

import "errors"

var (
	// ErrAppointmentNotFound возвращается, когда бронирование не найдено
	ErrAppointmentNotFound = errors.New("appointment not found")

	// ErrStudioNotFound возвращается, когда студия не найдена
	ErrStudioNotFound = errors.New("studio not found")

	// ErrAccessDenied возвращается, когда у пользователя нет прав доступа
	ErrAccessDenied = errors.New("access denied")

	// ErrNotCancellable возвращается при попытке отменить завершённое
	// или уже отменённое бронирование
	ErrNotCancellable = errors.New("appointment cannot be cancelled")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
