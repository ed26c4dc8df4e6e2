package get_bookable_slots

import "errors"

var (
	// ErrStudioNotFound возвращается, когда студия не найдена
	ErrStudioNotFound = errors.New("get_bookable_slots: studio not found")

	// ErrLocationNotFound возвращается, когда локация не найдена в студии
	ErrLocationNotFound = errors.New("get_bookable_slots: location not found")

	// ErrServiceNotFound возвращается, когда услуга не найдена
	ErrServiceNotFound = errors.New("get_bookable_slots: service not found")

	// ErrServiceNotAvailableAtLocation возвращается, когда услуга недоступна на указанной локации
	ErrServiceNotAvailableAtLocation = errors.New("get_bookable_slots: service is not available at this location")

	// ErrStaffNotFound возвращается, когда мастер не найден
	ErrStaffNotFound = errors.New("get_bookable_slots: staff member not found")

	// ErrStaffNotAtLocation возвращается, когда мастер не работает на указанной локации
	ErrStaffNotAtLocation = errors.New("get_bookable_slots: staff member does not work at this location")

	// ErrInvalidTimezone возвращается при некорректном часовом поясе студии
	ErrInvalidTimezone = errors.New("get_bookable_slots: invalid studio timezone")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("get_bookable_slots: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("get_bookable_slots: internal error")
)
