// Package policy реализует чистый вычислитель правил бронирования.
// Все функции детерминированы относительно (политика, моменты времени,
// now): текущее время и часовой пояс студии передаются явно, пакет
// никогда не читает системные часы и не хранит состояния. Благодаря
// этому повторная проверка тех же правил в момент записи (см. usecase
// создания бронирования) сводится к повторному вызову той же функции.
package policy

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-StudioBookingService/internal/domain"
)

// CheckBookNow проверяет, разрешает ли политика создать бронирование
// на requestedStart в момент now. Возвращает nil, *Violation с причиной
// отказа либо ErrInvalidConfiguration / ErrInvalidInput.
// loc — часовой пояс студии, используется для сравнения календарных дней.
func CheckBookNow(p *domain.BookingPolicy, requestedStart, now time.Time, loc *time.Location) error {
	if err := validateConfiguration(p); err != nil {
		return err
	}
	if loc == nil {
		return fmt.Errorf("%w: studio location is required", ErrInvalidInput)
	}
	if requestedStart.IsZero() {
		return fmt.Errorf("%w: requested start is required", ErrInvalidInput)
	}

	if !p.OnlineBookingEnabled {
		return violation(ReasonOnlineBookingDisabled, "studio %d does not take online bookings", p.StudioID)
	}

	if p.ImmediateBookingAllowed {
		// Граница включительна: start == now + buffer разрешено.
		lead := requestedStart.Sub(now)
		buffer := time.Duration(p.ImmediateBookingBufferMinutes) * time.Minute
		if lead < buffer {
			return violation(ReasonOutsideImmediateWindow,
				"requires at least %d minutes notice", p.ImmediateBookingBufferMinutes)
		}
	} else {
		// Бронирование в текущий календарный день студии запрещено,
		// допускается только со следующего дня.
		if requestedStart.Before(startOfNextLocalDay(now, loc)) {
			return violation(ReasonOutsideImmediateWindow, "same-day booking is disabled")
		}
	}

	// Календарная арифметика: ровно now + N месяцев разрешено,
	// день переполнения месяца прижимается к его последнему дню.
	horizon := addMonthsClamped(now.In(loc), p.FutureBookingLimitMonths)
	if requestedStart.After(horizon) {
		return violation(ReasonBeyondFutureHorizon,
			"bookings accepted at most %d months ahead", p.FutureBookingLimitMonths)
	}

	return nil
}

// CanBookNow булевая форма CheckBookNow
func CanBookNow(p *domain.BookingPolicy, requestedStart, now time.Time, loc *time.Location) (bool, error) {
	return asBool(CheckBookNow(p, requestedStart, now, loc))
}

// CheckCancel проверяет, разрешает ли политика отменить бронирование
// с началом scheduledStart в момент now.
func CheckCancel(p *domain.BookingPolicy, scheduledStart, now time.Time) error {
	if err := validateConfiguration(p); err != nil {
		return err
	}

	if !p.CancellationAllowed {
		return violation(ReasonCancellationDisabled, "studio %d does not allow cancellation", p.StudioID)
	}

	if err := checkDeadline(scheduledStart, now, p.CancellationBufferHours); err != nil {
		return violation(ReasonPastCancellationDeadline,
			"cancellation closes %d hours before start", p.CancellationBufferHours)
	}
	return nil
}

// CanCancel булевая форма CheckCancel
func CanCancel(p *domain.BookingPolicy, scheduledStart, now time.Time) (bool, error) {
	return asBool(CheckCancel(p, scheduledStart, now))
}

// CheckReschedule проверяет, разрешает ли политика перенести
// бронирование с началом scheduledStart в момент now.
// Форма идентична CheckCancel с собственным тумблером и буфером.
func CheckReschedule(p *domain.BookingPolicy, scheduledStart, now time.Time) error {
	if err := validateConfiguration(p); err != nil {
		return err
	}

	if !p.ReschedulingAllowed {
		return violation(ReasonReschedulingDisabled, "studio %d does not allow rescheduling", p.StudioID)
	}

	if err := checkDeadline(scheduledStart, now, p.ReschedulingBufferHours); err != nil {
		return violation(ReasonPastRescheduleDeadline,
			"rescheduling closes %d hours before start", p.ReschedulingBufferHours)
	}
	return nil
}

// CanReschedule булевая форма CheckReschedule
func CanReschedule(p *domain.BookingPolicy, scheduledStart, now time.Time) (bool, error) {
	return asBool(CheckReschedule(p, scheduledStart, now))
}

// CheckStaffSelection проверяет, разрешает ли политика клиенту
// самостоятельно выбрать мастера. staffSelected == false (мастер
// назначен системой или менеджером) допустимо всегда.
func CheckStaffSelection(p *domain.BookingPolicy, staffSelected bool) error {
	if err := validateConfiguration(p); err != nil {
		return err
	}

	if staffSelected && !p.AllowTeamMemberSelection {
		return violation(ReasonStaffSelectionDisabled, "studio %d does not allow choosing a team member", p.StudioID)
	}
	return nil
}

// ValidateGroupSize проверяет допустимость размера группы
func ValidateGroupSize(p *domain.BookingPolicy, requestedSize int) error {
	if err := validateConfiguration(p); err != nil {
		return err
	}

	if requestedSize < domain.MinGroupSize {
		return fmt.Errorf("%w: group size must be at least %d", ErrInvalidInput, domain.MinGroupSize)
	}
	if requestedSize > 1 && !p.AllowGroupAppointments {
		return violation(ReasonGroupBookingDisabled, "studio %d does not take group appointments", p.StudioID)
	}
	if requestedSize > p.MaxGroupSize {
		return violation(ReasonGroupSizeExceeded, "at most %d participants allowed", p.MaxGroupSize)
	}
	return nil
}

// checkDeadline общая проверка дедлайна для отмены и переноса.
// Граница включительна: разница ровно в buffer часов разрешена.
// При buffer == 0 действие допустимо строго до момента начала;
// прошедшие бронирования не отменяются и не переносятся никогда.
func checkDeadline(scheduledStart, now time.Time, bufferHours int) error {
	if bufferHours == 0 {
		if !scheduledStart.After(now) {
			return fmt.Errorf("deadline passed")
		}
		return nil
	}
	if scheduledStart.Sub(now) < time.Duration(bufferHours)*time.Hour {
		return fmt.Errorf("deadline passed")
	}
	return nil
}

// validateConfiguration отличает легитимный запрет от повреждённой
// конфигурации: повреждённая политика всегда ошибка, никогда "разрешено"
func validateConfiguration(p *domain.BookingPolicy) error {
	if p == nil {
		return fmt.Errorf("%w: policy is nil", ErrInvalidConfiguration)
	}
	if p.FutureBookingLimitMonths < domain.MinFutureBookingLimitMonths ||
		p.FutureBookingLimitMonths > domain.MaxFutureBookingLimitMonths {
		return fmt.Errorf("%w: futureBookingLimitMonths=%d outside [%d,%d]",
			ErrInvalidConfiguration, p.FutureBookingLimitMonths,
			domain.MinFutureBookingLimitMonths, domain.MaxFutureBookingLimitMonths)
	}
	if p.MaxGroupSize < domain.MinGroupSize || p.MaxGroupSize > domain.MaxGroupSize {
		return fmt.Errorf("%w: maxGroupSize=%d outside [%d,%d]",
			ErrInvalidConfiguration, p.MaxGroupSize, domain.MinGroupSize, domain.MaxGroupSize)
	}
	if p.ImmediateBookingBufferMinutes < 0 {
		return fmt.Errorf("%w: immediateBookingBufferMinutes=%d is negative",
			ErrInvalidConfiguration, p.ImmediateBookingBufferMinutes)
	}
	if p.CancellationBufferHours < 0 {
		return fmt.Errorf("%w: cancellationBufferHours=%d is negative",
			ErrInvalidConfiguration, p.CancellationBufferHours)
	}
	if p.ReschedulingBufferHours < 0 {
		return fmt.Errorf("%w: reschedulingBufferHours=%d is negative",
			ErrInvalidConfiguration, p.ReschedulingBufferHours)
	}
	return nil
}

// asBool конвертирует результат Check* в (bool, error):
// policy violation — обычное false, а не ошибка
func asBool(err error) (bool, error) {
	if err == nil {
		return true, nil
	}
	if _, ok := AsViolation(err); ok {
		return false, nil
	}
	return false, err
}

// startOfNextLocalDay возвращает полночь следующего календарного дня
// в часовом поясе студии
func startOfNextLocalDay(now time.Time, loc *time.Location) time.Time {
	local := now.In(loc)
	y, m, d := local.Date()
	return time.Date(y, m, d+1, 0, 0, 0, 0, loc)
}

// addMonthsClamped прибавляет months календарных месяцев к t.
// В отличие от time.AddDate, переполнение дня месяца прижимается
// к последнему дню целевого месяца: 31 янв + 1 мес = 28/29 фев.
func addMonthsClamped(t time.Time, months int) time.Time {
	y, m, d := t.Date()

	// День 0 следующего месяца — последний день целевого месяца.
	lastDay := time.Date(y, m+time.Month(months)+1, 0, 0, 0, 0, 0, t.Location()).Day()
	if d > lastDay {
		d = lastDay
	}

	return time.Date(y, m+time.Month(months), d,
		t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
}
