package domain

// Default policy values
const (
	DefaultImmediateBufferMinutes   = 0
	DefaultFutureBookingLimitMonths = 6
	DefaultCancellationBufferHours  = 0
	DefaultReschedulingBufferHours  = 0
	DefaultSlotGranularityMinutes   = 15
)

// Business validation constants
const (
	MinFutureBookingLimitMonths = 1
	MaxFutureBookingLimitMonths = 12
	MinGroupSize                = 1
	MaxGroupSize                = 20
	MaxNotesLength              = 500
	MaxCancellationReasonLength = 500
)

// Default working day used when a staff member has no shift template.
// Materialization writes these bounds out as explicit intervals, the
// resolver never falls back implicitly.
const (
	DefaultShiftStart = "09:00"
	DefaultShiftEnd   = "17:00"
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// InactiveStatuses статусы бронирований, не занимающие слот
var InactiveStatuses = []AppointmentStatus{
	StatusCancelledByClient,
	StatusCancelledByStudio,
	StatusNoShow,
}
