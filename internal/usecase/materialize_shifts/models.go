package materialize_shifts

import "time"

// Request модель запроса на материализацию шаблона
type Request struct {
	UserID   int64     // ID инициатора (из заголовка авторизации)
	StudioID int64     // ID студии
	StaffID  int64     // ID сотрудника
	From     time.Time // Первая дата горизонта (включительно)
	To       time.Time // Последняя дата горизонта (включительно)
}

// RejectedDay день, для которого запись из шаблона не была создана
type RejectedDay struct {
	Date   string `json:"date"` // YYYY-MM-DD
	Reason string `json:"reason"`
}

// Response модель ответа материализации.
// Ничего не пропадает молча: каждый отклонённый день явно перечислен
type Response struct {
	CreatedCount int           `json:"createdCount"`
	Rejected     []RejectedDay `json:"rejected"`
}
