package reschedule_appointment

import (
	"time"

	rescheduleAppointment "github.com/m04kA/SMC-StudioBookingService/internal/usecase/reschedule_appointment"
)

// RescheduleAppointmentRequest HTTP request model
type RescheduleAppointmentRequest struct {
	NewStart string `json:"newStart"` // RFC 3339
}

// AppointmentResponse HTTP response model
type AppointmentResponse struct {
	ID              int64  `json:"id"`
	PublicID        string `json:"publicId"`
	ClientID        int64  `json:"clientId"`
	StudioID        int64  `json:"studioId"`
	LocationID      int64  `json:"locationId"`
	StaffID         int64  `json:"staffId"`
	ServiceID       int64  `json:"serviceId"`
	ScheduledStart  string `json:"scheduledStart"`
	DurationMinutes int    `json:"durationMinutes"`
	Status          string `json:"status"`
	UpdatedAt       string `json:"updatedAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *RescheduleAppointmentRequest) ToUseCaseRequest(appointmentID, userID int64) (*rescheduleAppointment.Request, error) {
	newStart, err := time.Parse(time.RFC3339, r.NewStart)
	if err != nil {
		return nil, err
	}

	return &rescheduleAppointment.Request{
		AppointmentID: appointmentID,
		UserID:        userID,
		NewStart:      newStart,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *rescheduleAppointment.Response) *AppointmentResponse {
	return &AppointmentResponse{
		ID:              resp.ID,
		PublicID:        resp.PublicID.String(),
		ClientID:        resp.ClientID,
		StudioID:        resp.StudioID,
		LocationID:      resp.LocationID,
		StaffID:         resp.StaffID,
		ServiceID:       resp.ServiceID,
		ScheduledStart:  resp.ScheduledStart.Format(time.RFC3339),
		DurationMinutes: resp.DurationMinutes,
		Status:          resp.Status,
		UpdatedAt:       resp.UpdatedAt.Format(time.RFC3339),
	}
}
