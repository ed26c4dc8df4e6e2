package availability

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/m04kA/SMC-StudioBookingService/internal/domain"
	"github.com/m04kA/SMC-StudioBookingService/pkg/types"
)

func conflictShift(staffID int64, date time.Time, start, end string, status domain.ShiftStatus) domain.ShiftInterval {
	return domain.ShiftInterval{
		StaffID:   staffID,
		Date:      date,
		StartTime: types.TimeString(start),
		EndTime:   types.TimeString(end),
		Status:    status,
	}
}

func TestHasConflict(t *testing.T) {
	date := time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)
	existing := []domain.ShiftInterval{
		conflictShift(7, date, "09:00", "12:00", domain.ShiftScheduled),
	}

	t.Run("overlap detected", func(t *testing.T) {
		assert.True(t, HasConflict(existing, conflictShift(7, date, "11:00", "14:00", domain.ShiftScheduled)))
	})

	t.Run("contained interval conflicts", func(t *testing.T) {
		assert.True(t, HasConflict(existing, conflictShift(7, date, "10:00", "11:00", domain.ShiftScheduled)))
	})

	t.Run("touching boundaries do not conflict", func(t *testing.T) {
		assert.False(t, HasConflict(existing, conflictShift(7, date, "12:00", "15:00", domain.ShiftScheduled)))
		assert.False(t, HasConflict(existing, conflictShift(7, date, "08:00", "09:00", domain.ShiftScheduled)))
	})

	t.Run("other staff member never conflicts", func(t *testing.T) {
		assert.False(t, HasConflict(existing, conflictShift(8, date, "09:00", "12:00", domain.ShiftScheduled)))
	})

	t.Run("other date never conflicts", func(t *testing.T) {
		assert.False(t, HasConflict(existing, conflictShift(7, date.AddDate(0, 0, 1), "09:00", "12:00", domain.ShiftScheduled)))
	})

	t.Run("cancelled shifts do not conflict", func(t *testing.T) {
		cancelled := []domain.ShiftInterval{conflictShift(7, date, "09:00", "12:00", domain.ShiftCancelled)}
		assert.False(t, HasConflict(cancelled, conflictShift(7, date, "10:00", "11:00", domain.ShiftScheduled)))
	})

	t.Run("symmetry", func(t *testing.T) {
		a := conflictShift(7, date, "09:00", "12:00", domain.ShiftScheduled)
		b := conflictShift(7, date, "11:30", "13:00", domain.ShiftScheduled)

		assert.Equal(t,
			HasConflict([]domain.ShiftInterval{a}, b),
			HasConflict([]domain.ShiftInterval{b}, a))
	})
}
