package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-StudioBookingService/internal/domain"
)

// Request модели

// CancelAppointmentRequest запрос на отмену бронирования
type CancelAppointmentRequest struct {
	UserID int64   `json:"-"`
	Reason *string `json:"reason,omitempty"`
}

// Response модели

// AppointmentResponse ответ с данными бронирования
type AppointmentResponse struct {
	ID                 int64           `json:"id"`
	PublicID           uuid.UUID       `json:"publicId"`
	ClientID           int64           `json:"clientId"`
	StudioID           int64           `json:"studioId"`
	LocationID         int64           `json:"locationId"`
	StaffID            int64           `json:"staffId"`
	ServiceID          int64           `json:"serviceId"`
	ScheduledStart     time.Time       `json:"scheduledStart"`
	DurationMinutes    int             `json:"durationMinutes"`
	GroupSize          int             `json:"groupSize"`
	Status             string          `json:"status"`
	ServiceName        string          `json:"serviceName"`
	ServicePrice       decimal.Decimal `json:"servicePrice"`
	Notes              *string         `json:"notes,omitempty"`
	CancellationReason *string         `json:"cancellationReason,omitempty"`
	CancelledAt        *time.Time      `json:"cancelledAt,omitempty"`
	CreatedAt          time.Time       `json:"createdAt"`
	UpdatedAt          time.Time       `json:"updatedAt"`
}

// Методы конвертации

// FromDomainAppointment конвертирует domain модель в DTO
func FromDomainAppointment(a *domain.Appointment) *AppointmentResponse {
	if a == nil {
		return nil
	}

	return &AppointmentResponse{
		ID:                 a.ID,
		PublicID:           a.PublicID,
		ClientID:           a.ClientID,
		StudioID:           a.StudioID,
		LocationID:         a.LocationID,
		StaffID:            a.StaffID,
		ServiceID:          a.ServiceID,
		ScheduledStart:     a.ScheduledStart,
		DurationMinutes:    a.DurationMinutes,
		GroupSize:          a.GroupSize,
		Status:             string(a.Status),
		ServiceName:        a.ServiceName,
		ServicePrice:       a.ServicePrice,
		Notes:              a.Notes,
		CancellationReason: a.CancellationReason,
		CancelledAt:        a.CancelledAt,
		CreatedAt:          a.CreatedAt,
		UpdatedAt:          a.UpdatedAt,
	}
}
