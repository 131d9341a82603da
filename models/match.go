package models

// StoredTournament — уже сохранённый турнир, кандидат на обновление.
// Набор кандидатов передаётся вызывающей стороной; движок его не хранит.
type StoredTournament struct {
	ID         int    `json:"id"`
	OfficialID string `json:"official_id"`
	Name       string `json:"name"`
	City       string `json:"city"`
	Country    string `json:"country"`
	StartDate  string `json:"start_date"` // формат MM/DD/YYYY
}

// MatchCandidate — оценка одного кандидата: итоговый балл в [0,1],
// вклад каждого сигнала в Reasons.
type MatchCandidate struct {
	TournamentID    int      `json:"tournament_id"`
	Score           float64  `json:"score"`
	Reasons         []string `json:"reasons"`
	RecommendUpdate bool     `json:"recommend_update"`
	UploadedIsNewer bool     `json:"uploaded_is_newer"`
}

// MatchResult — итог сопоставления загруженного документа с кандидатами.
// Отсутствие подходящего кандидата — валидный результат, не ошибка.
type MatchResult struct {
	Matches         []MatchCandidate `json:"matches"`
	BestMatch       *MatchCandidate  `json:"best_match,omitempty"`
	ShouldCreateNew bool             `json:"should_create_new"`
	Recommendations []string         `json:"recommendations"`
}
