package reschedule_appointment

import "errors"

var (
	// ErrAppointmentNotFound возвращается, когда бронирование не найдено
	ErrAppointmentNotFound = errors.New("reschedule_appointment: appointment not found")

	// ErrStudioNotFound возвращается, когда студия не найдена
	ErrStudioNotFound = errors.New("reschedule_appointment: studio not found")

	// ErrAccessDenied возвращается, когда у пользователя нет прав доступа
	ErrAccessDenied = errors.New("reschedule_appointment: access denied")

	// ErrNotReschedulable возвращается при попытке перенести завершённое
	// или отменённое бронирование
	ErrNotReschedulable = errors.New("reschedule_appointment: appointment cannot be rescheduled")

	// ErrSlotNoLongerAvailable возвращается, когда целевой слот занят
	// или вне смены мастера
	ErrSlotNoLongerAvailable = errors.New("reschedule_appointment: slot is no longer available")

	// ErrInvalidTimezone возвращается при некорректном часовом поясе студии
	ErrInvalidTimezone = errors.New("reschedule_appointment: invalid studio timezone")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("reschedule_appointment: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("reschedule_appointment: internal error")
)
