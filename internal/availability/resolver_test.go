package availability

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-StudioBookingService/internal/domain"
	"github.com/m04kA/SMC-StudioBookingService/pkg/types"
)

var testDate = time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)

func shift(start, end string, status domain.ShiftStatus) domain.ShiftInterval {
	return domain.ShiftInterval{
		StaffID:    7,
		LocationID: 3,
		Date:       testDate,
		StartTime:  types.TimeString(start),
		EndTime:    types.TimeString(end),
		Status:     status,
	}
}

func collect(t *testing.T, intervals []domain.ShiftInterval, duration, granularity int) []string {
	t.Helper()

	seq, err := BookableSlots(intervals, testDate, time.UTC, duration, granularity)
	require.NoError(t, err)

	var got []string
	for slot := range seq {
		got = append(got, slot.Format("15:04"))
	}
	return got
}

func TestBookableSlots_FullDayGrid(t *testing.T) {
	intervals := []domain.ShiftInterval{shift("09:00", "17:00", domain.ShiftScheduled)}

	// Смена 09:00–17:00, услуга 60 минут, шаг 30: последний слот 16:00
	// (заканчивается ровно в 17:00), 16:30 не входит.
	got := collect(t, intervals, 60, 30)

	require.NotEmpty(t, got)
	assert.Equal(t, "09:00", got[0])
	assert.Equal(t, "16:00", got[len(got)-1])
	assert.NotContains(t, got, "16:30")
	assert.Len(t, got, 15)
}

func TestBookableSlots_AscendingAndRestartable(t *testing.T) {
	intervals := []domain.ShiftInterval{
		shift("13:00", "15:00", domain.ShiftScheduled),
		shift("09:00", "11:00", domain.ShiftScheduled),
	}

	seq, err := BookableSlots(intervals, testDate, time.UTC, 60, 60)
	require.NoError(t, err)

	var first []time.Time
	for s := range seq {
		first = append(first, s)
	}
	for i := 1; i < len(first); i++ {
		assert.True(t, first[i].After(first[i-1]), "слоты должны идти по возрастанию")
	}

	// Повторный обход той же последовательности даёт тот же результат.
	var second []time.Time
	for s := range seq {
		second = append(second, s)
	}
	assert.Equal(t, first, second)
}

func TestBookableSlots_SkipsCancelledShifts(t *testing.T) {
	intervals := []domain.ShiftInterval{
		shift("09:00", "12:00", domain.ShiftCancelled),
		shift("14:00", "16:00", domain.ShiftScheduled),
	}

	got := collect(t, intervals, 60, 60)
	assert.Equal(t, []string{"14:00", "15:00"}, got)
}

func TestBookableSlots_MergesOverlappingAndAdjacent(t *testing.T) {
	// Пересечение и смежность от ошибок материализации выше:
	// резолвер обязан слить их в один интервал 09:00–13:00.
	intervals := []domain.ShiftInterval{
		shift("09:00", "11:00", domain.ShiftScheduled),
		shift("10:30", "12:00", domain.ShiftScheduled),
		shift("12:00", "13:00", domain.ShiftScheduled),
	}

	got := collect(t, intervals, 120, 60)
	assert.Equal(t, []string{"09:00", "10:00", "11:00"}, got)
}

func TestBookableSlots_EmptyWhenNothingFits(t *testing.T) {
	intervals := []domain.ShiftInterval{shift("09:00", "09:45", domain.ShiftScheduled)}

	got := collect(t, intervals, 60, 15)
	assert.Empty(t, got)
}

func TestBookableSlots_NeverExceedsIntervalBound(t *testing.T) {
	intervals := []domain.ShiftInterval{
		shift("09:00", "10:30", domain.ShiftScheduled),
		shift("12:00", "13:45", domain.ShiftScheduled),
	}

	seq, err := BookableSlots(intervals, testDate, time.UTC, 45, 15)
	require.NoError(t, err)

	bounds := [][2]time.Time{
		{testDate.Add(9 * time.Hour), testDate.Add(10*time.Hour + 30*time.Minute)},
		{testDate.Add(12 * time.Hour), testDate.Add(13*time.Hour + 45*time.Minute)},
	}

	for slot := range seq {
		end := slot.Add(45 * time.Minute)
		inSome := false
		for _, b := range bounds {
			if !slot.Before(b[0]) && !end.After(b[1]) {
				inSome = true
			}
		}
		assert.True(t, inSome, "слот %s выходит за границы смен", slot.Format("15:04"))
	}
}

func TestBookableSlots_InvalidArguments(t *testing.T) {
	intervals := []domain.ShiftInterval{shift("09:00", "17:00", domain.ShiftScheduled)}

	_, err := BookableSlots(intervals, testDate, time.UTC, 0, 15)
	assert.ErrorIs(t, err, ErrInvalidDuration)

	_, err = BookableSlots(intervals, testDate, time.UTC, 60, 0)
	assert.ErrorIs(t, err, ErrInvalidGranularity)
}

func TestBookableSlots_CorruptIntervalIsAnError(t *testing.T) {
	// start >= end — нарушение инварианта реестра смен, не пустой день.
	intervals := []domain.ShiftInterval{shift("17:00", "09:00", domain.ShiftScheduled)}

	_, err := BookableSlots(intervals, testDate, time.UTC, 60, 30)
	assert.ErrorIs(t, err, ErrInvalidInterval)
}

func TestCovers(t *testing.T) {
	intervals := []domain.ShiftInterval{
		shift("09:00", "12:00", domain.ShiftScheduled),
		shift("14:00", "17:00", domain.ShiftScheduled),
	}

	ok, err := Covers(intervals, testDate.Add(10*time.Hour), 60, time.UTC)
	require.NoError(t, err)
	assert.True(t, ok)

	// Заканчивается ровно на границе — помещается.
	ok, err = Covers(intervals, testDate.Add(11*time.Hour), 60, time.UTC)
	require.NoError(t, err)
	assert.True(t, ok)

	// Вылезает за конец интервала.
	ok, err = Covers(intervals, testDate.Add(11*time.Hour+30*time.Minute), 60, time.UTC)
	require.NoError(t, err)
	assert.False(t, ok)

	// Попадает в перерыв между сменами.
	ok, err = Covers(intervals, testDate.Add(12*time.Hour+30*time.Minute), 60, time.UTC)
	require.NoError(t, err)
	assert.False(t, ok)
}
