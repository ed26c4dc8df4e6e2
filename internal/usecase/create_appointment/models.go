package create_appointment

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Request модель запроса на создание бронирования
type Request struct {
	ClientID   int64     // ID клиента (из заголовка авторизации)
	StudioID   int64     // ID студии
	LocationID int64     // ID локации студии
	ServiceID  int64     // ID услуги
	StaffID    int64     // ID мастера
	// StaffSelected — мастер выбран клиентом явно. false означает,
	// что мастера назначила студия, и тумблер allowTeamMemberSelection
	// на запрос не влияет.
	StaffSelected  bool
	ScheduledStart time.Time // Момент начала (RFC 3339, с часовым поясом)
	GroupSize      int       // Количество участников, минимум 1
	Notes          *string   // Дополнительные заметки (опционально)
}

// Response модель ответа с созданным бронированием
type Response struct {
	ID              int64     // Внутренний ID бронирования
	PublicID        uuid.UUID // Публичный идентификатор для клиента
	ClientID        int64     // ID клиента
	StudioID        int64     // ID студии
	LocationID      int64     // ID локации
	StaffID         int64     // ID мастера
	ServiceID       int64     // ID услуги
	ScheduledStart  time.Time // Момент начала
	DurationMinutes int       // Длительность в минутах
	GroupSize       int       // Количество участников
	Status          string    // Статус бронирования

	// Денормализованные данные услуги
	ServiceName  string          // Название услуги
	ServicePrice decimal.Decimal // Цена услуги на момент бронирования
	Notes        *string         // Заметки

	CreatedAt time.Time // Время создания
	UpdatedAt time.Time // Время обновления
}
