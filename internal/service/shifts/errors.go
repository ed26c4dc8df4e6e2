package shifts

import "errors"

var (
	// ErrStudioNotFound возвращается, когда студия не найдена
	ErrStudioNotFound = errors.New("studio not found")

	// ErrStaffNotFound возвращается, когда сотрудник не найден
	ErrStaffNotFound = errors.New("staff member not found")

	// ErrLocationNotFound возвращается, когда локация не найдена в студии
	ErrLocationNotFound = errors.New("location not found")

	// ErrShiftNotFound возвращается, когда смена не найдена
	ErrShiftNotFound = errors.New("shift not found")

	// ErrShiftConflict возвращается, когда новая смена пересекается с существующей
	ErrShiftConflict = errors.New("shift overlaps an existing shift")

	// ErrAccessDenied возвращается, когда у пользователя нет прав доступа
	ErrAccessDenied = errors.New("access denied")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
