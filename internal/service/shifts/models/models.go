package models

import (
	"time"

	"github.com/m04kA/SMC-StudioBookingService/internal/domain"
	"github.com/m04kA/SMC-StudioBookingService/pkg/types"
)

// Request модели

// GetStaffShiftsRequest запрос на получение смен сотрудника за период
type GetStaffShiftsRequest struct {
	StudioID   int64
	StaffID    int64
	From       time.Time
	To         time.Time
	LocationID *int64 // nil = все локации
}

// CreateShiftRequest запрос на создание разовой смены
type CreateShiftRequest struct {
	UserID     int64
	StudioID   int64
	StaffID    int64
	LocationID int64
	Date       time.Time
	StartTime  types.TimeString
	EndTime    types.TimeString
}

// TemplateEntry одна запись недельного шаблона
type TemplateEntry struct {
	Weekday    time.Weekday     `json:"weekday"` // 0 = Sunday ... 6 = Saturday
	LocationID int64            `json:"locationId"`
	StartTime  types.TimeString `json:"startTime"`
	EndTime    types.TimeString `json:"endTime"`
}

// PutTemplateRequest запрос на полную замену недельного шаблона сотрудника
type PutTemplateRequest struct {
	UserID   int64
	StudioID int64
	StaffID  int64
	Entries  []TemplateEntry `json:"entries"`
}

// Response модели

// ShiftResponse ответ с данными смены
type ShiftResponse struct {
	ID         int64  `json:"id"`
	StudioID   int64  `json:"studioId"`
	StaffID    int64  `json:"staffId"`
	LocationID int64  `json:"locationId"`
	Date       string `json:"date"`      // YYYY-MM-DD
	StartTime  string `json:"startTime"` // HH:MM
	EndTime    string `json:"endTime"`   // HH:MM
	Status     string `json:"status"`
}

// ShiftListResponse ответ со списком смен
type ShiftListResponse struct {
	Shifts []ShiftResponse `json:"shifts"`
}

// TemplateResponse ответ с данными недельного шаблона
type TemplateResponse struct {
	StudioID int64           `json:"studioId"`
	StaffID  int64           `json:"staffId"`
	Entries  []TemplateEntry `json:"entries"`
}

// Методы конвертации

// FromDomainShift конвертирует domain модель в DTO
func FromDomainShift(iv *domain.ShiftInterval) *ShiftResponse {
	if iv == nil {
		return nil
	}

	return &ShiftResponse{
		ID:         iv.ID,
		StudioID:   iv.StudioID,
		StaffID:    iv.StaffID,
		LocationID: iv.LocationID,
		Date:       iv.Date.Format(domain.DateFormat),
		StartTime:  iv.StartTime.String(),
		EndTime:    iv.EndTime.String(),
		Status:     string(iv.Status),
	}
}

// FromDomainShiftList конвертирует список domain моделей в DTO
func FromDomainShiftList(intervals []domain.ShiftInterval) *ShiftListResponse {
	resp := &ShiftListResponse{
		Shifts: make([]ShiftResponse, 0, len(intervals)),
	}

	for i := range intervals {
		if shiftResp := FromDomainShift(&intervals[i]); shiftResp != nil {
			resp.Shifts = append(resp.Shifts, *shiftResp)
		}
	}

	return resp
}

// ToDomainInterval конвертирует CreateShiftRequest в domain модель
func (r *CreateShiftRequest) ToDomainInterval() *domain.ShiftInterval {
	return &domain.ShiftInterval{
		StudioID:   r.StudioID,
		StaffID:    r.StaffID,
		LocationID: r.LocationID,
		Date:       r.Date,
		StartTime:  r.StartTime,
		EndTime:    r.EndTime,
		Status:     domain.ShiftScheduled,
	}
}

// ToDomainTemplates конвертирует записи шаблона в domain модели
func (r *PutTemplateRequest) ToDomainTemplates() []domain.ShiftTemplate {
	entries := make([]domain.ShiftTemplate, 0, len(r.Entries))
	for _, e := range r.Entries {
		entries = append(entries, domain.ShiftTemplate{
			StudioID:   r.StudioID,
			StaffID:    r.StaffID,
			LocationID: e.LocationID,
			Weekday:    e.Weekday,
			StartTime:  e.StartTime,
			EndTime:    e.EndTime,
		})
	}
	return entries
}

// FromDomainTemplates конвертирует domain шаблоны в DTO
func FromDomainTemplates(studioID, staffID int64, templates []domain.ShiftTemplate) *TemplateResponse {
	resp := &TemplateResponse{
		StudioID: studioID,
		StaffID:  staffID,
		Entries:  make([]TemplateEntry, 0, len(templates)),
	}

	for _, t := range templates {
		resp.Entries = append(resp.Entries, TemplateEntry{
			Weekday:    t.Weekday,
			LocationID: t.LocationID,
			StartTime:  t.StartTime,
			EndTime:    t.EndTime,
		})
	}

	return resp
}
