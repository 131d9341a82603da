package matcher

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/Dosada05/tdf-engine/models"
	"github.com/Dosada05/tdf-engine/tdf"
)

// Weights — веса сигналов сопоставления. Значения по умолчанию —
// эмпирическая настройка, перенесённая без изменений; это
// конфигурационные константы, а не выведенные инварианты.
type Weights struct {
	IDExact          float64 // точное совпадение официального ID
	NameMax          float64 // максимальный вклад близости названий
	NameFloor        float64 // порог близости, ниже которого название не учитывается
	CityCountry      float64 // совпали и город, и страна
	CityOnly         float64 // совпал только город
	DateExact        float64 // даты начала идентичны
	DateNear         float64 // даты начала в пределах одного дня
	UpdateThreshold  float64 // минимальный балл для рекомендации обновления
	CautionThreshold float64 // балл, с которого кандидат упоминается как похожий
}

// DefaultWeights возвращает исторические значения весов.
func DefaultWeights() Weights {
	return Weights{
		IDExact:          0.50,
		NameMax:          0.30,
		NameFloor:        0.6,
		CityCountry:      0.15,
		CityOnly:         0.10,
		DateExact:        0.05,
		DateNear:         0.03,
		UpdateThreshold:  0.70,
		CautionThreshold: 0.30,
	}
}

// Matcher решает, обновляет ли загруженный файл существующий турнир или
// заводит новый. Сопоставление читает только переданный набор кандидатов
// и ничего не сохраняет.
type Matcher struct {
	weights Weights
}

// New создаёт Matcher с переданными весами.
func New(weights Weights) *Matcher {
	return &Matcher{weights: weights}
}

// Match оценивает каждого кандидата взвешенной суммой сигналов,
// ограниченной 1.0, и сортирует по убыванию. Отсутствие подходящего
// кандидата — валидный результат: ShouldCreateNew = true, не ошибка.
func (m *Matcher) Match(doc *models.ParsedDocument, candidates []models.StoredTournament) models.MatchResult {
	matches := make([]models.MatchCandidate, 0, len(candidates))
	byID := make(map[int]models.StoredTournament, len(candidates))
	for _, cand := range candidates {
		matches = append(matches, m.scoreCandidate(doc.Metadata, cand))
		byID[cand.ID] = cand
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Score > matches[j].Score
	})

	result := models.MatchResult{
		Matches:         matches,
		ShouldCreateNew: true,
	}
	if len(matches) > 0 {
		result.BestMatch = &matches[0]
		if matches[0].Score >= m.weights.UpdateThreshold {
			result.ShouldCreateNew = false
		}
	}

	result.Recommendations = m.buildRecommendations(doc.Metadata, result, byID)
	return result
}

func (m *Matcher) scoreCandidate(meta models.TournamentMetadata, cand models.StoredTournament) models.MatchCandidate {
	w := m.weights
	score := 0.0
	var reasons []string

	// Совпадение официального ID — бинарный сигнал, всё или ничего.
	if meta.OfficialID != "" && meta.OfficialID == cand.OfficialID {
		score += w.IDExact
		reasons = append(reasons, "official tournament ID matches exactly")
	}

	sim := similarity(strings.ToLower(meta.Name), strings.ToLower(cand.Name))
	if sim > w.NameFloor {
		score += w.NameMax * sim
		reasons = append(reasons, fmt.Sprintf("tournament name is %.0f%% similar", sim*100))
	}

	cityMatch := meta.City != "" && strings.EqualFold(meta.City, cand.City)
	countryMatch := meta.Country != "" && strings.EqualFold(meta.Country, cand.Country)
	if cityMatch && countryMatch {
		score += w.CityCountry
		reasons = append(reasons, "city and country match")
	} else if cityMatch {
		score += w.CityOnly
		reasons = append(reasons, "city matches")
	}

	uploadedNewer := false
	uploadedDate, upErr := tdf.ParseDate(meta.StartDate)
	storedDate, stErr := tdf.ParseDate(cand.StartDate)
	if upErr == nil && stErr == nil {
		diff := uploadedDate.Sub(storedDate)
		if diff < 0 {
			diff = -diff
		}
		switch {
		case diff == 0:
			score += w.DateExact
			reasons = append(reasons, "start dates are identical")
		case diff <= 24*time.Hour:
			score += w.DateNear
			reasons = append(reasons, "start dates are within one day")
		}
		uploadedNewer = uploadedDate.After(storedDate)
	} else if meta.StartDate != "" && meta.StartDate == cand.StartDate {
		score += w.DateExact
		reasons = append(reasons, "start dates are identical")
	}

	if score > 1.0 {
		score = 1.0
	}

	return models.MatchCandidate{
		TournamentID:    cand.ID,
		Score:           score,
		Reasons:         reasons,
		RecommendUpdate: score >= w.UpdateThreshold,
		UploadedIsNewer: uploadedNewer,
	}
}

// buildRecommendations формирует человекочитаемые подсказки для
// оператора загрузки.
func (m *Matcher) buildRecommendations(meta models.TournamentMetadata, result models.MatchResult, byID map[int]models.StoredTournament) []string {
	var recs []string

	if result.ShouldCreateNew {
		recs = append(recs, fmt.Sprintf("create a new tournament record for %q", meta.Name))
		for _, match := range result.Matches {
			if match.Score <= m.weights.CautionThreshold {
				continue
			}
			cand, ok := byID[match.TournamentID]
			if !ok {
				continue
			}
			recs = append(recs, fmt.Sprintf(
				"caution: existing tournament %q (id %d) is moderately similar (score %.2f), verify before creating a duplicate",
				cand.Name, cand.ID, match.Score))
		}
		return recs
	}

	best := result.BestMatch
	cand := byID[best.TournamentID]
	recs = append(recs, fmt.Sprintf("update existing tournament %q (id %d), confidence %.2f",
		cand.Name, cand.ID, best.Score))
	recs = append(recs, best.Reasons...)

	// Более старый файл не блокирует обновление, но требует внимания
	// человека: вероятна загрузка устаревшей копии.
	uploadedDate, upErr := tdf.ParseDate(meta.StartDate)
	storedDate, stErr := tdf.ParseDate(cand.StartDate)
	if upErr == nil && stErr == nil && uploadedDate.Before(storedDate) {
		recs = append(recs, fmt.Sprintf(
			"warning: uploaded file start date %s is older than the stored tournament date %s, possible stale upload",
			meta.StartDate, cand.StartDate))
	}

	return recs
}
