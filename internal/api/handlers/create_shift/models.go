package create_shift

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-StudioBookingService/internal/domain"
	"github.com/m04kA/SMC-StudioBookingService/internal/service/shifts/models"
	"github.com/m04kA/SMC-StudioBookingService/pkg/types"
)

// CreateShiftRequest тело запроса на создание разовой смены
type CreateShiftRequest struct {
	StaffID    int64  `json:"staffId"`
	LocationID int64  `json:"locationId"`
	Date       string `json:"date"`      // YYYY-MM-DD
	StartTime  string `json:"startTime"` // HH:MM
	EndTime    string `json:"endTime"`   // HH:MM
}

// ToServiceRequest конвертирует тело запроса в модель сервисного слоя
func (r *CreateShiftRequest) ToServiceRequest(userID, studioID int64) (*models.CreateShiftRequest, error) {
	if r.StaffID <= 0 {
		return nil, fmt.Errorf("staffId is required")
	}
	if r.LocationID <= 0 {
		return nil, fmt.Errorf("locationId is required")
	}

	date, err := time.Parse(domain.DateFormat, r.Date)
	if err != nil {
		return nil, fmt.Errorf("invalid date %q, expected YYYY-MM-DD", r.Date)
	}
	startTime, err := types.NewTimeStringFromString(r.StartTime)
	if err != nil {
		return nil, err
	}
	endTime, err := types.NewTimeStringFromString(r.EndTime)
	if err != nil {
		return nil, err
	}

	return &models.CreateShiftRequest{
		UserID:     userID,
		StudioID:   studioID,
		StaffID:    r.StaffID,
		LocationID: r.LocationID,
		Date:       date,
		StartTime:  startTime,
		EndTime:    endTime,
	}, nil
}
