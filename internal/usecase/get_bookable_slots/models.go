package get_bookable_slots

import "time"

// Request модель запроса на получение доступных слотов
type Request struct {
	StudioID           int64     // ID студии
	LocationID         int64     // ID локации студии
	ServiceID          int64     // ID услуги
	StaffID            int64     // ID мастера
	Date               time.Time // Дата (без времени)
	GranularityMinutes int       // Шаг сетки слотов, 0 = значение по умолчанию
}

// Response модель ответа со списком доступных слотов
type Response struct {
	Date               string      `json:"date"` // YYYY-MM-DD
	StaffID            int64       `json:"staffId"`
	ServiceID          int64       `json:"serviceId"`
	DurationMinutes    int         `json:"durationMinutes"`
	GranularityMinutes int         `json:"granularityMinutes"`
	Slots              []time.Time `json:"slots"` // Времена начала по возрастанию
}
