package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// AppointmentStatus represents the status of an appointment
type AppointmentStatus string

const (
	StatusConfirmed         AppointmentStatus = "confirmed"
	StatusCompleted         AppointmentStatus = "completed"
	StatusCancelledByClient AppointmentStatus = "cancelled_by_client"
	StatusCancelledByStudio AppointmentStatus = "cancelled_by_studio"
	StatusNoShow            AppointmentStatus = "no_show"
)

// Appointment represents a booked service appointment
type Appointment struct {
	ID       int64
	PublicID uuid.UUID // reference exposed to clients instead of the row id

	ClientID   int64
	StudioID   int64
	LocationID int64
	StaffID    int64
	ServiceID  int64

	ScheduledStart  time.Time
	DurationMinutes int
	GroupSize       int
	Status          AppointmentStatus

	// Denormalized data for history
	ServiceName  string
	ServicePrice decimal.Decimal
	Notes        *string

	CancellationReason *string
	CancelledAt        *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// ScheduledEnd returns the instant the appointment ends.
func (a *Appointment) ScheduledEnd() time.Time {
	return a.ScheduledStart.Add(time.Duration(a.DurationMinutes) * time.Minute)
}

// IsActive returns true if the appointment still occupies its slot.
func (a *Appointment) IsActive() bool {
	return a.Status == StatusConfirmed
}

// IsCancelled returns true if the appointment has been cancelled.
func (a *Appointment) IsCancelled() bool {
	return a.Status == StatusCancelledByClient || a.Status == StatusCancelledByStudio
}

// CanBeCancelled returns true if the status admits cancellation.
// Policy deadlines are checked separately by the evaluator.
func (a *Appointment) CanBeCancelled() bool {
	return a.Status == StatusConfirmed
}

// CanBeRescheduled returns true if the status admits rescheduling.
func (a *Appointment) CanBeRescheduled() bool {
	return a.Status == StatusConfirmed
}

// Overlaps reports whether [start, start+duration) intersects this
// appointment. Touching boundaries do not count as overlap.
func (a *Appointment) Overlaps(start time.Time, durationMinutes int) bool {
	end := start.Add(time.Duration(durationMinutes) * time.Minute)
	return a.ScheduledStart.Before(end) && a.ScheduledEnd().After(start)
}

// StaffAppointmentsFilter фильтр для выборки бронирований мастера
type StaffAppointmentsFilter struct {
	StaffID         int64
	From            *time.Time // начало периода (включительно)
	To              *time.Time // конец периода (исключительно)
	ExcludeID       *int64     // исключить бронирование (при переносе)
	IncludeInactive bool
}
