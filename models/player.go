package models

// DroppedStatus — отметка о выбытии игрока из турнира.
type DroppedStatus struct {
	Status    string `json:"status"`
	Round     int    `json:"round"`
	Timestamp string `json:"timestamp"`
}

// Player представляет игрока из секции <players> файла TDF.
// UserID уникален в пределах одного документа.
type Player struct {
	UserID           string         `json:"user_id"` // 7-значный числовой идентификатор
	FirstName        string         `json:"first_name"`
	LastName         string         `json:"last_name"`
	Birthdate        string         `json:"birthdate"` // формат MM/DD/YYYY
	CreationDate     string         `json:"creation_date"`
	LastModifiedDate string         `json:"last_modified_date"`
	Starter          bool           `json:"starter,omitempty"`
	Order            *int           `json:"order,omitempty"`
	Seed             *int           `json:"seed,omitempty"`
	Dropped          *DroppedStatus `json:"dropped,omitempty"`
}

// Participant — запись участника из внешней системы регистрации.
// Поля, кроме DisplayName, могут отсутствовать; генератор подставляет
// документированные значения по умолчанию.
type Participant struct {
	DisplayName  string  `json:"display_name"`
	UserID       *string `json:"user_id,omitempty"`
	Birthdate    *string `json:"birthdate,omitempty"` // формат MM/DD/YYYY
	RegisteredAt string  `json:"registered_at,omitempty"`
}
