package reschedule_appointment

import (
	"time"

	"github.com/google/uuid"
)

// Request модель запроса на перенос бронирования
type Request struct {
	AppointmentID int64     // ID бронирования
	UserID        int64     // ID инициатора (из заголовка авторизации)
	NewStart      time.Time // Новый момент начала (RFC 3339, с часовым поясом)
}

// Response модель ответа с перенесённым бронированием
type Response struct {
	ID              int64     // Внутренний ID бронирования
	PublicID        uuid.UUID // Публичный идентификатор
	ClientID        int64     // ID клиента
	StudioID        int64     // ID студии
	LocationID      int64     // ID локации
	StaffID         int64     // ID мастера
	ServiceID       int64     // ID услуги
	ScheduledStart  time.Time // Новый момент начала
	DurationMinutes int       // Длительность в минутах
	Status          string    // Статус бронирования

	UpdatedAt time.Time // Время обновления
}
