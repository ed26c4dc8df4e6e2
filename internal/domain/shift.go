package domain

import (
	"time"

	"github.com/m04kA/SMC-StudioBookingService/pkg/types"
)

// ShiftStatus represents the status of a shift interval
type ShiftStatus string

const (
	ShiftScheduled ShiftStatus = "scheduled"
	ShiftCancelled ShiftStatus = "cancelled"
)

// ShiftInterval is a contiguous block of time a staff member works
// at a location on a concrete date.
// Invariant: intervals of one (staffId, date) never overlap and
// StartTime < EndTime. The invariant is enforced on every write.
type ShiftInterval struct {
	ID         int64
	StudioID   int64
	StaffID    int64
	LocationID int64
	Date       time.Time // date only, time part is ignored
	StartTime  types.TimeString
	EndTime    types.TimeString
	Status     ShiftStatus

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsScheduled returns true if the interval counts towards availability.
func (s *ShiftInterval) IsScheduled() bool {
	return s.Status == ShiftScheduled
}

// ShiftTemplate is one weekly recurring entry of a staff member's
// regular schedule. Materialization turns templates into dated
// ShiftInterval rows; editing a dated row never touches the template.
type ShiftTemplate struct {
	ID         int64
	StudioID   int64
	StaffID    int64
	LocationID int64
	Weekday    time.Weekday
	StartTime  types.TimeString
	EndTime    types.TimeString

	CreatedAt time.Time
	UpdatedAt time.Time
}
