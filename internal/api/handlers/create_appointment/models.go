package create_appointment

import (
	"time"

	createAppointment "github.com/m04kA/SMC-StudioBookingService/internal/usecase/create_appointment"
)

// CreateAppointmentRequest HTTP request model
type CreateAppointmentRequest struct {
	StudioID       int64   `json:"studioId"`
	LocationID     int64   `json:"locationId"`
	ServiceID      int64   `json:"serviceId"`
	StaffID        int64   `json:"staffId"`
	StaffSelected  bool    `json:"staffSelected"`  // мастер выбран клиентом явно
	ScheduledStart string  `json:"scheduledStart"` // RFC 3339
	GroupSize      int     `json:"groupSize"`      // 0 трактуется как 1
	Notes          *string `json:"notes,omitempty"`
}

// AppointmentResponse HTTP response model
type AppointmentResponse struct {
	ID              int64   `json:"id"`
	PublicID        string  `json:"publicId"`
	ClientID        int64   `json:"clientId"`
	StudioID        int64   `json:"studioId"`
	LocationID      int64   `json:"locationId"`
	StaffID         int64   `json:"staffId"`
	ServiceID       int64   `json:"serviceId"`
	ScheduledStart  string  `json:"scheduledStart"`
	DurationMinutes int     `json:"durationMinutes"`
	GroupSize       int     `json:"groupSize"`
	Status          string  `json:"status"`
	ServiceName     string  `json:"serviceName"`
	ServicePrice    string  `json:"servicePrice"`
	Notes           *string `json:"notes,omitempty"`
	CreatedAt       string  `json:"createdAt"`
	UpdatedAt       string  `json:"updatedAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateAppointmentRequest) ToUseCaseRequest(clientID int64) (*createAppointment.Request, error) {
	scheduledStart, err := time.Parse(time.RFC3339, r.ScheduledStart)
	if err != nil {
		return nil, err
	}

	groupSize := r.GroupSize
	if groupSize == 0 {
		groupSize = 1
	}

	return &createAppointment.Request{
		ClientID:       clientID,
		StudioID:       r.StudioID,
		LocationID:     r.LocationID,
		ServiceID:      r.ServiceID,
		StaffID:        r.StaffID,
		StaffSelected:  r.StaffSelected,
		ScheduledStart: scheduledStart,
		GroupSize:      groupSize,
		Notes:          r.Notes,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createAppointment.Response) *AppointmentResponse {
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
		GroupSize:       resp.GroupSize,
		Status:          resp.Status,
		ServiceName:     resp.ServiceName,
		ServicePrice:    resp.ServicePrice.String(),
		Notes:           resp.Notes,
		CreatedAt:       resp.CreatedAt.Format(time.RFC3339),
		UpdatedAt:       resp.UpdatedAt.Format(time.RFC3339),
	}
}
