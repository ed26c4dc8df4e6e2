package get_bookable_slots

import (
	"time"

	getBookableSlots "github.com/m04kA/SMC-StudioBookingService/internal/usecase/get_bookable_slots"
)

// SlotsResponse HTTP response model
type SlotsResponse struct {
	Date               string   `json:"date"`
	StaffID            int64    `json:"staffId"`
	ServiceID          int64    `json:"serviceId"`
	DurationMinutes    int      `json:"durationMinutes"`
	GranularityMinutes int      `json:"granularityMinutes"`
	Slots              []string `json:"slots"` // RFC 3339, по возрастанию
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getBookableSlots.Response) *SlotsResponse {
	slots := make([]string, 0, len(resp.Slots))
	for _, s := range resp.Slots {
		slots = append(slots, s.Format(time.RFC3339))
	}

	return &SlotsResponse{
		Date:               resp.Date,
		StaffID:            resp.StaffID,
		ServiceID:          resp.ServiceID,
		DurationMinutes:    resp.DurationMinutes,
		GranularityMinutes: resp.GranularityMinutes,
		Slots:              slots,
	}
}
