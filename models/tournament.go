package models

// TournamentCategory представляет внутреннюю категорию турнира,
// соответствующую паре (gametype, mode) в файле TDF.
type TournamentCategory string

const (
	CategoryLeagueChallenge TournamentCategory = "league_challenge"
	CategoryLeagueCup       TournamentCategory = "league_cup"
	CategoryTCGPremier      TournamentCategory = "tcg_premier"
	CategoryVGCPremier      TournamentCategory = "vgc_premier"
	CategoryGOPremier       TournamentCategory = "go_premier"
)

// Organizer — организатор турнира из элемента <organizer>.
type Organizer struct {
	PopID string `json:"popid"`
	Name  string `json:"name"`
}

// TournamentMetadata представляет данные уровня турнира: секцию <data>
// и атрибуты корневого элемента.
type TournamentMetadata struct {
	OfficialID         string    `json:"official_id"`
	Name               string    `json:"name"`
	City               string    `json:"city"`
	State              *string   `json:"state,omitempty"`
	Country            string    `json:"country"`
	StartDate          string    `json:"start_date"` // формат MM/DD/YYYY
	Organizer          Organizer `json:"organizer"`
	RoundTime          int       `json:"round_time"`
	FinalsRoundTime    int       `json:"finals_round_time"`
	LessSwiss          bool      `json:"less_swiss"`
	AutoTableNumber    bool      `json:"auto_table_number"`
	OverflowTableStart int       `json:"overflow_table_start"`
	Type               string    `json:"type"`
	Stage              string    `json:"stage"`
	Version            string    `json:"version"`
	GameType           string    `json:"gametype"`
	Mode               string    `json:"mode"`
}

// Summary — облегчённое представление турнира для предпросмотра загрузки.
type Summary struct {
	Name        string `json:"name"`
	OfficialID  string `json:"official_id"`
	Category    string `json:"category"`
	Location    string `json:"location"`
	Date        string `json:"date"`
	PlayerCount int    `json:"player_count"`
	IsEmpty     bool   `json:"is_empty"`
}

// ValidationResult — результат структурной проверки документа.
// Errors фатальны; документ с ними не допускается к извлечению.
// Warnings не блокируют обработку.
type ValidationResult struct {
	Valid    bool     `json:"valid"`
	Errors   []string `json:"errors,omitempty"`
	Warnings []string `json:"warnings,omitempty"`
}

// ParsedDocument — агрегат одного разбора: метаданные, упорядоченный
// список игроков и результат валидации. Не мутируется после создания.
type ParsedDocument struct {
	Metadata    TournamentMetadata `json:"metadata"`
	Players     []Player           `json:"players"`
	PlayerCount int                `json:"player_count"`
	HasPlayers  bool               `json:"has_players"`
	Validation  ValidationResult   `json:"validation"`
}
