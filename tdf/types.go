package tdf

import (
	"fmt"

	"github.com/Dosada05/tdf-engine/models"
)

type typeKey struct {
	gameType string
	mode     string
}

// Закрытая таблица поддерживаемых пар (gametype, mode). Пары вне таблицы
// не ошибка разбора: Validate лишь предупреждает, а MapType отказывает.
var typeTable = map[typeKey]models.TournamentCategory{
	{"TRADING_CARD_GAME", "TCGLeagueChallenge"}: models.CategoryLeagueChallenge,
	{"TRADING_CARD_GAME", "TCGLeagueCup"}:       models.CategoryLeagueCup,
	{"TRADING_CARD_GAME", "TCGPremier"}:         models.CategoryTCGPremier,
	{"VIDEO_GAME", "VGPremier"}:                 models.CategoryVGCPremier,
	{"GO", "GOPremier"}:                         models.CategoryGOPremier,
}

var typeLabels = map[models.TournamentCategory]string{
	models.CategoryLeagueChallenge: "League Challenge",
	models.CategoryLeagueCup:       "League Cup",
	models.CategoryTCGPremier:      "TCG Premier Event",
	models.CategoryVGCPremier:      "VGC Premier Event",
	models.CategoryGOPremier:       "GO Premier Event",
}

// MapType возвращает категорию турнира для пары (gametype, mode).
// Для пары вне таблицы возвращает ошибку, оборачивающую ErrUnsupportedType.
func MapType(gameType, mode string) (models.TournamentCategory, error) {
	cat, ok := typeTable[typeKey{gameType, mode}]
	if !ok {
		return "", fmt.Errorf("%w: gametype=%q mode=%q", ErrUnsupportedType, gameType, mode)
	}
	return cat, nil
}

// UnmapType — обратное преобразование для генерации. Таблица не обязана
// быть полной биекцией, поэтому обратный ход задаётся явно.
func UnmapType(cat models.TournamentCategory) (gameType, mode string, err error) {
	for key, c := range typeTable {
		if c == cat {
			return key.gameType, key.mode, nil
		}
	}
	return "", "", fmt.Errorf("%w: no gametype/mode pair for category %q", ErrUnsupportedType, cat)
}

// KnownType сообщает, входит ли пара в таблицу поддерживаемых.
func KnownType(gameType, mode string) bool {
	_, ok := typeTable[typeKey{gameType, mode}]
	return ok
}

// CategoryLabel возвращает человекочитаемое название категории
// или "Unknown" для нераспознанной.
func CategoryLabel(cat models.TournamentCategory) string {
	if label, ok := typeLabels[cat]; ok {
		return label
	}
	return "Unknown"
}
