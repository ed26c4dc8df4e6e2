package models

import (
	"time"

	"github.com/m04kA/SMC-StudioBookingService/internal/domain"
)

// Request модели

// UpdatePolicyRequest запрос на обновление политики бронирования
// Все поля опциональны - обновляются только переданные значения.
// Буферы выключенных правил сохраняются как есть: выключение отмены
// не стирает ранее настроенный cancellationBufferHours.
type UpdatePolicyRequest struct {
	UserID int64 `json:"-"`

	OnlineBookingEnabled          *bool `json:"onlineBookingEnabled,omitempty"`
	ImmediateBookingAllowed       *bool `json:"immediateBookingAllowed,omitempty"`
	ImmediateBookingBufferMinutes *int  `json:"immediateBookingBufferMinutes,omitempty"`
	FutureBookingLimitMonths      *int  `json:"futureBookingLimitMonths,omitempty"`
	AllowTeamMemberSelection      *bool `json:"allowTeamMemberSelection,omitempty"`
	AllowGroupAppointments        *bool `json:"allowGroupAppointments,omitempty"`
	MaxGroupSize                  *int  `json:"maxGroupSize,omitempty"`
	CancellationAllowed           *bool `json:"cancellationAllowed,omitempty"`
	CancellationBufferHours       *int  `json:"cancellationBufferHours,omitempty"`
	ReschedulingAllowed           *bool `json:"reschedulingAllowed,omitempty"`
	ReschedulingBufferHours       *int  `json:"reschedulingBufferHours,omitempty"`
}

// Response модели

// PolicyResponse ответ с данными политики бронирования
type PolicyResponse struct {
	StudioID                      int64     `json:"studioId"`
	OnlineBookingEnabled          bool      `json:"onlineBookingEnabled"`
	ImmediateBookingAllowed       bool      `json:"immediateBookingAllowed"`
	ImmediateBookingBufferMinutes int       `json:"immediateBookingBufferMinutes"`
	FutureBookingLimitMonths      int       `json:"futureBookingLimitMonths"`
	AllowTeamMemberSelection      bool      `json:"allowTeamMemberSelection"`
	AllowGroupAppointments        bool      `json:"allowGroupAppointments"`
	MaxGroupSize                  int       `json:"maxGroupSize"`
	CancellationAllowed           bool      `json:"cancellationAllowed"`
	CancellationBufferHours       int       `json:"cancellationBufferHours"`
	ReschedulingAllowed           bool      `json:"reschedulingAllowed"`
	ReschedulingBufferHours       int       `json:"reschedulingBufferHours"`
	IsDefault                     bool      `json:"isDefault"`
	UpdatedAt                     time.Time `json:"updatedAt,omitempty"`
}

// Методы конвертации

// FromDomainPolicy конвертирует domain модель в DTO.
// isDefault == true означает, что студия ещё не сохраняла политику
// и клиенту возвращены значения по умолчанию.
func FromDomainPolicy(p *domain.BookingPolicy, isDefault bool) *PolicyResponse {
	if p == nil {
		return nil
	}

	return &PolicyResponse{
		StudioID:                      p.StudioID,
		OnlineBookingEnabled:          p.OnlineBookingEnabled,
		ImmediateBookingAllowed:       p.ImmediateBookingAllowed,
		ImmediateBookingBufferMinutes: p.ImmediateBookingBufferMinutes,
		FutureBookingLimitMonths:      p.FutureBookingLimitMonths,
		AllowTeamMemberSelection:      p.AllowTeamMemberSelection,
		AllowGroupAppointments:        p.AllowGroupAppointments,
		MaxGroupSize:                  p.MaxGroupSize,
		CancellationAllowed:           p.CancellationAllowed,
		CancellationBufferHours:       p.CancellationBufferHours,
		ReschedulingAllowed:           p.ReschedulingAllowed,
		ReschedulingBufferHours:       p.ReschedulingBufferHours,
		IsDefault:                     isDefault,
		UpdatedAt:                     p.UpdatedAt,
	}
}

// ApplyToPolicy применяет обновления к существующей политике
// Обновляются только непустые (not nil) поля из request
func (r *UpdatePolicyRequest) ApplyToPolicy(p *domain.BookingPolicy) {
	if r.OnlineBookingEnabled != nil {
		p.OnlineBookingEnabled = *r.OnlineBookingEnabled
	}
	if r.ImmediateBookingAllowed != nil {
		p.ImmediateBookingAllowed = *r.ImmediateBookingAllowed
	}
	if r.ImmediateBookingBufferMinutes != nil {
		p.ImmediateBookingBufferMinutes = *r.ImmediateBookingBufferMinutes
	}
	if r.FutureBookingLimitMonths != nil {
		p.FutureBookingLimitMonths = *r.FutureBookingLimitMonths
	}
	if r.AllowTeamMemberSelection != nil {
		p.AllowTeamMemberSelection = *r.AllowTeamMemberSelection
	}
	if r.AllowGroupAppointments != nil {
		p.AllowGroupAppointments = *r.AllowGroupAppointments
	}
	if r.MaxGroupSize != nil {
		p.MaxGroupSize = *r.MaxGroupSize
	}
	if r.CancellationAllowed != nil {
		p.CancellationAllowed = *r.CancellationAllowed
	}
	if r.CancellationBufferHours != nil {
		p.CancellationBufferHours = *r.CancellationBufferHours
	}
	if r.ReschedulingAllowed != nil {
		p.ReschedulingAllowed = *r.ReschedulingAllowed
	}
	if r.ReschedulingBufferHours != nil {
		p.ReschedulingBufferHours = *r.ReschedulingBufferHours
	}
}
