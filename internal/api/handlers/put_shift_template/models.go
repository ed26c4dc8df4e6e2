package put_shift_template

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-StudioBookingService/internal/service/shifts/models"
	"github.com/m04kA/SMC-StudioBookingService/pkg/types"
)

// TemplateEntryRequest одна запись недельного шаблона в теле запроса
type TemplateEntryRequest struct {
	Weekday    int    `json:"weekday"` // 0 = Sunday ... 6 = Saturday
	LocationID int64  `json:"locationId"`
	StartTime  string `json:"startTime"` // HH:MM
	EndTime    string `json:"endTime"`   // HH:MM
}

// PutTemplateRequest тело запроса на полную замену недельного шаблона
type PutTemplateRequest struct {
	Entries []TemplateEntryRequest `json:"entries"`
}

// ToServiceRequest конвертирует тело запроса в модель сервисного слоя
func (r *PutTemplateRequest) ToServiceRequest(userID, studioID, staffID int64) (*models.PutTemplateRequest, error) {
	entries := make([]models.TemplateEntry, 0, len(r.Entries))
	for i, e := range r.Entries {
		if e.Weekday < 0 || e.Weekday > 6 {
			return nil, fmt.Errorf("entries[%d]: weekday must be between 0 and 6", i)
		}
		if e.LocationID <= 0 {
			return nil, fmt.Errorf("entries[%d]: locationId is required", i)
		}
		startTime, err := types.NewTimeStringFromString(e.StartTime)
		if err != nil {
			return nil, fmt.Errorf("entries[%d]: %v", i, err)
		}
		endTime, err := types.NewTimeStringFromString(e.EndTime)
		if err != nil {
			return nil, fmt.Errorf("entries[%d]: %v", i, err)
		}

		entries = append(entries, models.TemplateEntry{
			Weekday:    time.Weekday(e.Weekday),
			LocationID: e.LocationID,
			StartTime:  startTime,
			EndTime:    endTime,
		})
	}

	return &models.PutTemplateRequest{
		UserID:   userID,
		StudioID: studioID,
		StaffID:  staffID,
		Entries:  entries,
	}, nil
}
