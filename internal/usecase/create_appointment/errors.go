package create_appointment

import "errors"

var (
	// ErrStudioNotFound возвращается, когда студия не найдена
	ErrStudioNotFound = errors.New("create_appointment: studio not found")

	// ErrLocationNotFound возвращается, когда локация не найдена в студии
	ErrLocationNotFound = errors.New("create_appointment: location not found")

	// ErrServiceNotFound возвращается, когда услуга не найдена
	ErrServiceNotFound = errors.New("create_appointment: service not found")

	// ErrServiceNotAvailableAtLocation возвращается, когда услуга недоступна на указанной локации
	ErrServiceNotAvailableAtLocation = errors.New("create_appointment: service is not available at this location")

	// ErrStaffNotFound возвращается, когда мастер не найден
	ErrStaffNotFound = errors.New("create_appointment: staff member not found")

	// ErrStaffNotAtLocation возвращается, когда мастер не работает на указанной локации
	ErrStaffNotAtLocation = errors.New("create_appointment: staff member does not work at this location")

	// ErrSlotNoLongerAvailable возвращается, когда запрошенный слот занят
	// или вне смены мастера. Клиенту предлагается обновить сетку слотов
	// и повторить попытку
	ErrSlotNoLongerAvailable = errors.New("create_appointment: slot is no longer available")

	// ErrInvalidTimezone возвращается при некорректном часовом поясе студии
	ErrInvalidTimezone = errors.New("create_appointment: invalid studio timezone")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_appointment: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_appointment: internal error")
)
