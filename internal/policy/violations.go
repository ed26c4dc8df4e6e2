package policy

import "fmt"

// Reason identifies the rule that denied a requested action.
type Reason string

const (
	ReasonOnlineBookingDisabled    Reason = "online_booking_disabled"
	ReasonOutsideImmediateWindow   Reason = "outside_immediate_window"
	ReasonBeyondFutureHorizon      Reason = "beyond_future_horizon"
	ReasonCancellationDisabled     Reason = "cancellation_disabled"
	ReasonPastCancellationDeadline Reason = "past_cancellation_deadline"
	ReasonReschedulingDisabled     Reason = "rescheduling_disabled"
	ReasonPastRescheduleDeadline   Reason = "past_reschedule_deadline"
	ReasonGroupBookingDisabled     Reason = "group_booking_disabled"
	ReasonGroupSizeExceeded        Reason = "group_size_exceeded"
	ReasonStaffSelectionDisabled   Reason = "staff_selection_disabled"
)

// Violation is a policy "no": the studio configuration denies the
// requested action. It is an expected outcome, not a system error,
// and is never logged at error level.
type Violation struct {
	Reason Reason
	Detail string
}

func (v *Violation) Error() string {
	if v.Detail == "" {
		return string(v.Reason)
	}
	return fmt.Sprintf("%s: %s", v.Reason, v.Detail)
}

func violation(reason Reason, format string, args ...interface{}) *Violation {
	return &Violation{Reason: reason, Detail: fmt.Sprintf(format, args...)}
}
