package studioservice

// Studio профиль студии из StudioService
type Studio struct {
	ID         int64      `json:"id"`
	Name       string     `json:"name"`
	Timezone   string     `json:"timezone"` // IANA, например "Europe/Moscow"
	ManagerIDs []int64    `json:"managerIds"`
	Locations  []Location `json:"locations"`
}

// Location точка обслуживания студии
type Location struct {
	ID      int64  `json:"id"`
	Name    string `json:"name"`
	Address string `json:"address"`
}

// Service услуга из каталога студии
type Service struct {
	ID              int64    `json:"id"`
	Name            string   `json:"name"`
	DurationMinutes int      `json:"durationMinutes"`
	Price           *float64 `json:"price,omitempty"`
	LocationIDs     []int64  `json:"locationIds"`
}

// StaffMember сотрудник студии
type StaffMember struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	LocationIDs []int64 `json:"locationIds"`
	ServiceIDs  []int64 `json:"serviceIds"`
}

// HasLocation проверяет, что студия содержит локацию
func (s *Studio) HasLocation(locationID int64) bool {
	for _, loc := range s.Locations {
		if loc.ID == locationID {
			return true
		}
	}
	return false
}

// IsManager проверяет, что пользователь является менеджером студии
func (s *Studio) IsManager(userID int64) bool {
	for _, id := range s.ManagerIDs {
		if id == userID {
			return true
		}
	}
	return false
}

// WorksAt проверяет, что сотрудник работает на локации
func (m *StaffMember) WorksAt(locationID int64) bool {
	for _, id := range m.LocationIDs {
		if id == locationID {
			return true
		}
	}
	return false
}

// AvailableAt проверяет, что услуга доступна на локации
func (s *Service) AvailableAt(locationID int64) bool {
	for _, id := range s.LocationIDs {
		if id == locationID {
			return true
		}
	}
	return false
}
