package materialize_shifts

import "errors"

var (
	// ErrStudioNotFound возвращается, когда студия не найдена
	ErrStudioNotFound = errors.New("materialize_shifts: studio not found")

	// ErrStaffNotFound возвращается, когда сотрудник не найден
	ErrStaffNotFound = errors.New("materialize_shifts: staff member not found")

	// ErrStaffHasNoLocation возвращается, когда у сотрудника без шаблона
	// нет ни одной локации для дефолтной смены
	ErrStaffHasNoLocation = errors.New("materialize_shifts: staff member has no location")

	// ErrAccessDenied возвращается, когда у пользователя нет прав доступа
	ErrAccessDenied = errors.New("materialize_shifts: access denied")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("materialize_shifts: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("materialize_shifts: internal error")
)
