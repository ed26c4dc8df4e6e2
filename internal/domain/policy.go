package domain

import "time"

// BookingPolicy represents the online-booking rules of a studio.
// A single record per studio governs booking, cancellation and
// rescheduling for all of its locations.
type BookingPolicy struct {
	ID       int64
	StudioID int64

	OnlineBookingEnabled bool

	// Immediate (same-day / short-notice) booking.
	// When the toggle is off only future-dated bookings are accepted.
	ImmediateBookingAllowed       bool
	ImmediateBookingBufferMinutes int // 0 = bookable right up to the start instant

	// Latest month offset from "now" a new booking may target.
	FutureBookingLimitMonths int

	AllowTeamMemberSelection bool

	AllowGroupAppointments bool
	MaxGroupSize           int

	CancellationAllowed     bool
	CancellationBufferHours int // 0 = up to the start instant

	ReschedulingAllowed     bool
	ReschedulingBufferHours int

	CreatedAt time.Time
	UpdatedAt time.Time
}

// HasImmediateBuffer returns true if short-notice bookings require lead time.
func (p *BookingPolicy) HasImmediateBuffer() bool {
	return p.ImmediateBookingAllowed && p.ImmediateBookingBufferMinutes > 0
}

// SupportsGroups returns true if the studio takes group appointments.
func (p *BookingPolicy) SupportsGroups() bool {
	return p.AllowGroupAppointments && p.MaxGroupSize > 1
}

// DefaultBookingPolicy returns the policy applied to studios that have
// not configured one yet. Deliberately permissive except for groups.
func DefaultBookingPolicy(studioID int64) *BookingPolicy {
	return &BookingPolicy{
		StudioID:                      studioID,
		OnlineBookingEnabled:          true,
		ImmediateBookingAllowed:       true,
		ImmediateBookingBufferMinutes: DefaultImmediateBufferMinutes,
		FutureBookingLimitMonths:      DefaultFutureBookingLimitMonths,
		AllowTeamMemberSelection:      true,
		AllowGroupAppointments:        false,
		MaxGroupSize:                  1,
		CancellationAllowed:           true,
		CancellationBufferHours:       DefaultCancellationBufferHours,
		ReschedulingAllowed:           true,
		ReschedulingBufferHours:       DefaultReschedulingBufferHours,
	}
}
