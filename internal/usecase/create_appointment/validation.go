package create_appointment

import (
	"fmt"

	"github.com/m04kA/SMC-StudioBookingService/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.ClientID <= 0 {
		return fmt.Errorf("%w: clientID must be positive", ErrInvalidInput)
	}

	if req.StudioID <= 0 {
		return fmt.Errorf("%w: studioID must be positive", ErrInvalidInput)
	}

	if req.LocationID <= 0 {
		return fmt.Errorf("%w: locationID must be positive", ErrInvalidInput)
	}

	if req.ServiceID <= 0 {
		return fmt.Errorf("%w: serviceID must be positive", ErrInvalidInput)
	}

	if req.StaffID <= 0 {
		return fmt.Errorf("%w: staffID must be positive", ErrInvalidInput)
	}

	if req.ScheduledStart.IsZero() {
		return fmt.Errorf("%w: scheduledStart is required", ErrInvalidInput)
	}

	if req.GroupSize < domain.MinGroupSize {
		return fmt.Errorf("%w: groupSize must be at least %d", ErrInvalidInput, domain.MinGroupSize)
	}

	if req.Notes != nil && len(*req.Notes) > domain.MaxNotesLength {
		return fmt.Errorf("%w: notes must not exceed %d characters", ErrInvalidInput, domain.MaxNotesLength)
	}

	return nil
}
