package policy

import "errors"

var (
	// ErrInvalidConfiguration возвращается, когда конфигурация политики
	// повреждена (лимиты вне допустимых диапазонов). Такая конфигурация
	// никогда не трактуется как "всё разрешено".
	ErrInvalidConfiguration = errors.New("policy: invalid configuration")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("policy: invalid input")
)

// AsViolation распаковывает policy violation из цепочки ошибок
func AsViolation(err error) (*Violation, bool) {
	var v *Violation
	if errors.As(err, &v) {
		return v, true
	}
	return nil, false
}
