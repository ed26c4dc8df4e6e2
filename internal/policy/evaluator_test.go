package policy

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-StudioBookingService/internal/domain"
)

func permissivePolicy() *domain.BookingPolicy {
	return &domain.BookingPolicy{
		StudioID:                 1,
		OnlineBookingEnabled:     true,
		ImmediateBookingAllowed:  true,
		FutureBookingLimitMonths: 12,
		AllowGroupAppointments:   true,
		MaxGroupSize:             4,
		CancellationAllowed:      true,
		ReschedulingAllowed:      true,
	}
}

func TestCheckBookNow_OnlineBookingDisabled(t *testing.T) {
	p := permissivePolicy()
	p.OnlineBookingEnabled = false

	now := time.Date(2024, 1, 10, 10, 0, 0, 0, time.UTC)
	err := CheckBookNow(p, now.Add(48*time.Hour), now, time.UTC)

	v, ok := AsViolation(err)
	require.True(t, ok)
	assert.Equal(t, ReasonOnlineBookingDisabled, v.Reason)
}

func TestCheckBookNow_BufferBoundary(t *testing.T) {
	p := permissivePolicy()
	p.ImmediateBookingBufferMinutes = 60

	now := time.Date(2024, 1, 10, 10, 0, 0, 0, time.UTC)

	// Буфер 60 минут: запрос на 10:45 отклоняется,
	// на 11:00 (ровно на границе) принимается.
	err := CheckBookNow(p, time.Date(2024, 1, 10, 10, 45, 0, 0, time.UTC), now, time.UTC)
	v, ok := AsViolation(err)
	require.True(t, ok)
	assert.Equal(t, ReasonOutsideImmediateWindow, v.Reason)

	assert.NoError(t, CheckBookNow(p, time.Date(2024, 1, 10, 11, 0, 0, 0, time.UTC), now, time.UTC))

	// Минута внутри буфера — отказ.
	err = CheckBookNow(p, time.Date(2024, 1, 10, 10, 59, 0, 0, time.UTC), now, time.UTC)
	_, ok = AsViolation(err)
	assert.True(t, ok)
}

func TestCheckBookNow_ZeroBufferAllowsSecondsAway(t *testing.T) {
	p := permissivePolicy()

	now := time.Date(2024, 1, 10, 10, 0, 0, 0, time.UTC)
	assert.NoError(t, CheckBookNow(p, now.Add(time.Second), now, time.UTC))

	// Прошедший момент отклоняется даже при нулевом буфере.
	err := CheckBookNow(p, now.Add(-time.Second), now, time.UTC)
	_, ok := AsViolation(err)
	assert.True(t, ok)
}

func TestCheckBookNow_ImmediateDisabledRejectsSameLocalDay(t *testing.T) {
	p := permissivePolicy()
	p.ImmediateBookingAllowed = false

	loc, err := time.LoadLocation("Europe/Moscow")
	require.NoError(t, err)

	// 23:00 UTC = 02:00 следующего дня в Москве: "тот же день"
	// определяется по часовому поясу студии.
	now := time.Date(2024, 1, 10, 23, 0, 0, 0, time.UTC)

	sameMoscowDay := time.Date(2024, 1, 11, 12, 0, 0, 0, loc)
	verr := CheckBookNow(p, sameMoscowDay, now, loc)
	v, ok := AsViolation(verr)
	require.True(t, ok)
	assert.Equal(t, ReasonOutsideImmediateWindow, v.Reason)

	nextMoscowDay := time.Date(2024, 1, 12, 0, 0, 0, 0, loc)
	assert.NoError(t, CheckBookNow(p, nextMoscowDay, now, loc))
}

func TestCheckBookNow_FutureHorizonBoundary(t *testing.T) {
	p := permissivePolicy()
	p.FutureBookingLimitMonths = 2

	now := time.Date(2024, 3, 15, 10, 0, 0, 0, time.UTC)

	// Ровно now + 2 месяца — разрешено.
	assert.NoError(t, CheckBookNow(p, time.Date(2024, 5, 15, 10, 0, 0, 0, time.UTC), now, time.UTC))

	// Днём позже — отказ.
	err := CheckBookNow(p, time.Date(2024, 5, 16, 10, 0, 0, 0, time.UTC), now, time.UTC)
	v, ok := AsViolation(err)
	require.True(t, ok)
	assert.Equal(t, ReasonBeyondFutureHorizon, v.Reason)
}

func TestCheckBookNow_HorizonClampsMonthOverflow(t *testing.T) {
	p := permissivePolicy()
	p.FutureBookingLimitMonths = 1

	// 31 января + 1 месяц = 29 февраля (2024 високосный), а не 2 марта.
	now := time.Date(2024, 1, 31, 10, 0, 0, 0, time.UTC)

	assert.NoError(t, CheckBookNow(p, time.Date(2024, 2, 29, 10, 0, 0, 0, time.UTC), now, time.UTC))

	err := CheckBookNow(p, time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC), now, time.UTC)
	v, ok := AsViolation(err)
	require.True(t, ok)
	assert.Equal(t, ReasonBeyondFutureHorizon, v.Reason)
}

func TestCheckBookNow_InvalidConfiguration(t *testing.T) {
	for name, mutate := range map[string]func(*domain.BookingPolicy){
		"horizon zero":     func(p *domain.BookingPolicy) { p.FutureBookingLimitMonths = 0 },
		"horizon too far":  func(p *domain.BookingPolicy) { p.FutureBookingLimitMonths = 13 },
		"negative buffer":  func(p *domain.BookingPolicy) { p.ImmediateBookingBufferMinutes = -1 },
		"group size zero":  func(p *domain.BookingPolicy) { p.MaxGroupSize = 0 },
		"group size large": func(p *domain.BookingPolicy) { p.MaxGroupSize = 21 },
	} {
		t.Run(name, func(t *testing.T) {
			p := permissivePolicy()
			mutate(p)

			now := time.Date(2024, 1, 10, 10, 0, 0, 0, time.UTC)
			err := CheckBookNow(p, now.Add(24*time.Hour), now, time.UTC)

			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidConfiguration)
			_, ok := AsViolation(err)
			assert.False(t, ok, "повреждённая конфигурация не должна считаться policy violation")
		})
	}
}

func TestCheckCancel_DeadlineBoundary(t *testing.T) {
	p := permissivePolicy()
	p.CancellationBufferHours = 24

	start := time.Date(2024, 1, 12, 9, 0, 0, 0, time.UTC)

	// Ровно за 24 часа — можно, минутой позже — нельзя.
	ok, err := CanCancel(p, start, time.Date(2024, 1, 11, 9, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = CanCancel(p, start, time.Date(2024, 1, 11, 9, 1, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.False(t, ok)

	// За 25 часов — тем более можно.
	ok, err = CanCancel(p, start, time.Date(2024, 1, 11, 8, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestCheckCancel_ZeroBufferExcludesStartInstant(t *testing.T) {
	p := permissivePolicy()

	start := time.Date(2024, 1, 12, 9, 0, 0, 0, time.UTC)

	ok, err := CanCancel(p, start, start.Add(-time.Second))
	require.NoError(t, err)
	assert.True(t, ok)

	// В момент начала и после него отмена невозможна.
	ok, err = CanCancel(p, start, start)
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = CanCancel(p, start, start.Add(time.Hour))
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestCheckCancel_Disabled(t *testing.T) {
	p := permissivePolicy()
	p.CancellationAllowed = false
	// Буфер сохраняется при выключенном тумблере и не влияет на результат.
	p.CancellationBufferHours = 24

	start := time.Date(2024, 1, 12, 9, 0, 0, 0, time.UTC)
	err := CheckCancel(p, start, start.Add(-72*time.Hour))

	v, ok := AsViolation(err)
	require.True(t, ok)
	assert.Equal(t, ReasonCancellationDisabled, v.Reason)
}

func TestCheckReschedule_MirrorsCancelShape(t *testing.T) {
	p := permissivePolicy()
	p.ReschedulingBufferHours = 12

	start := time.Date(2024, 1, 12, 9, 0, 0, 0, time.UTC)

	assert.NoError(t, CheckReschedule(p, start, start.Add(-12*time.Hour)))

	err := CheckReschedule(p, start, start.Add(-11*time.Hour))
	v, ok := AsViolation(err)
	require.True(t, ok)
	assert.Equal(t, ReasonPastRescheduleDeadline, v.Reason)
}

func TestValidateGroupSize(t *testing.T) {
	p := permissivePolicy() // группы разрешены, максимум 4

	assert.NoError(t, ValidateGroupSize(p, 1))
	assert.NoError(t, ValidateGroupSize(p, 4))

	err := ValidateGroupSize(p, 5)
	v, ok := AsViolation(err)
	require.True(t, ok)
	assert.Equal(t, ReasonGroupSizeExceeded, v.Reason)

	err = ValidateGroupSize(p, 0)
	assert.ErrorIs(t, err, ErrInvalidInput)

	p.AllowGroupAppointments = false
	err = ValidateGroupSize(p, 2)
	v, ok = AsViolation(err)
	require.True(t, ok)
	assert.Equal(t, ReasonGroupBookingDisabled, v.Reason)

	// Одиночная запись не зависит от группового тумблера.
	assert.NoError(t, ValidateGroupSize(p, 1))
}

func TestCheckStaffSelection(t *testing.T) {
	p := permissivePolicy()
	p.AllowTeamMemberSelection = true

	assert.NoError(t, CheckStaffSelection(p, true))
	assert.NoError(t, CheckStaffSelection(p, false))

	p.AllowTeamMemberSelection = false

	// Назначенный студией мастер проходит при выключенном тумблере.
	assert.NoError(t, CheckStaffSelection(p, false))

	err := CheckStaffSelection(p, true)
	v, ok := AsViolation(err)
	require.True(t, ok)
	assert.Equal(t, ReasonStaffSelectionDisabled, v.Reason)
}

func TestEvaluationIsIdempotent(t *testing.T) {
	p := permissivePolicy()
	p.ImmediateBookingBufferMinutes = 30

	now := time.Date(2024, 1, 10, 10, 0, 0, 0, time.UTC)
	start := now.Add(45 * time.Minute)

	first := CheckBookNow(p, start, now, time.UTC)
	second := CheckBookNow(p, start, now, time.UTC)

	assert.True(t, errors.Is(first, second) || (first == nil && second == nil) ||
		first.Error() == second.Error())
}
