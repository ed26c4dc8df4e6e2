package studioservice

import "errors"

var (
	// ErrStudioNotFound возвращается, когда студия не найдена
	ErrStudioNotFound = errors.New("studioservice: studio not found")

	// ErrServiceNotFound возвращается, когда услуга не найдена
	ErrServiceNotFound = errors.New("studioservice: service not found")

	// ErrStaffNotFound возвращается, когда сотрудник не найден
	ErrStaffNotFound = errors.New("studioservice: staff member not found")

	// ErrInvalidResponse возвращается при некорректном ответе StudioService
	ErrInvalidResponse = errors.New("studioservice: invalid response")

	// ErrInternal возвращается при сетевых и прочих внутренних ошибках
	ErrInternal = errors.New("studioservice: internal error")
)
