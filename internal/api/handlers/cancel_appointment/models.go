package cancel_appointment

import "github.com/m04kA/SMC-StudioBookingService/internal/service/appointments/models"

// CancelAppointmentRequest HTTP request model
type CancelAppointmentRequest struct {
	Reason *string `json:"reason,omitempty"`
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса
func (r *CancelAppointmentRequest) ToServiceRequest(userID int64) *models.CancelAppointmentRequest {
	return &models.CancelAppointmentRequest{
		UserID: userID,
		Reason: r.Reason,
	}
}
