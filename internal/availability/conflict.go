package availability

import "github.com/m04kA/SMC-StudioBookingService/internal/domain"

// HasConflict проверяет, пересекается ли кандидат с существующими
// scheduled-сменами того же мастера в тот же день. Граничащие смены
// (конец одной равен началу другой) пересечением не считаются.
// При конфликте вызывающая сторона обязана отклонить кандидата целиком:
// существующие смены никогда не усекаются и не разрезаются неявно.
func HasConflict(existing []domain.ShiftInterval, candidate domain.ShiftInterval) bool {
	for i := range existing {
		if overlaps(&existing[i], &candidate) {
			return true
		}
	}
	return false
}

// overlaps строгое пересечение интервалов; отношение симметрично
func overlaps(a, b *domain.ShiftInterval) bool {
	if a.StaffID != b.StaffID {
		return false
	}
	if !sameDate(a, b) {
		return false
	}
	if !a.IsScheduled() || !b.IsScheduled() {
		return false
	}
	// Не сравниваем ID: кандидат обычно ещё не сохранён.
	return a.StartTime.IsBefore(b.EndTime) && a.EndTime.IsAfter(b.StartTime)
}

func sameDate(a, b *domain.ShiftInterval) bool {
	y1, m1, d1 := a.Date.Date()
	y2, m2, d2 := b.Date.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}
