package materialize_shifts

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-StudioBookingService/internal/domain"
	materializeShifts "github.com/m04kA/SMC-StudioBookingService/internal/usecase/materialize_shifts"
)

// MaterializeShiftsRequest тело запроса на материализацию шаблона
type MaterializeShiftsRequest struct {
	From string `json:"from"` // YYYY-MM-DD, включительно
	To   string `json:"to"`   // YYYY-MM-DD, включительно
}

// ToUseCaseRequest конвертирует тело запроса в модель usecase
func (r *MaterializeShiftsRequest) ToUseCaseRequest(userID, studioID, staffID int64) (*materializeShifts.Request, error) {
	from, err := time.Parse(domain.DateFormat, r.From)
	if err != nil {
		return nil, fmt.Errorf("invalid from %q, expected YYYY-MM-DD", r.From)
	}
	to, err := time.Parse(domain.DateFormat, r.To)
	if err != nil {
		return nil, fmt.Errorf("invalid to %q, expected YYYY-MM-DD", r.To)
	}

	return &materializeShifts.Request{
		UserID:   userID,
		StudioID: studioID,
		StaffID:  staffID,
		From:     from,
		To:       to,
	}, nil
}
