package tdf

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/beevik/etree"

	"github.com/Dosada05/tdf-engine/models"
)

// Parse валидирует документ и извлекает агрегат целиком.
// При фатальных структурных ошибках возвращает *ValidationError
// с полным списком проблем.
func Parse(raw string) (*models.ParsedDocument, error) {
	validation := Validate(raw)
	if !validation.Valid {
		return nil, &ValidationError{Errors: validation.Errors}
	}

	metadata, err := ExtractMetadata(raw)
	if err != nil {
		return nil, fmt.Errorf("extract metadata: %w", err)
	}
	players, err := ExtractPlayers(raw)
	if err != nil {
		return nil, fmt.Errorf("extract players: %w", err)
	}

	return &models.ParsedDocument{
		Metadata:    *metadata,
		Players:     players,
		PlayerCount: len(players),
		HasPlayers:  len(players) > 0,
		Validation:  validation,
	}, nil
}

// ExtractMetadata читает поля уровня турнира из валидированного текста.
// Извлечение само перепроверяет наличие элементов, которые читает,
// и отказывает на тексте, который не прошёл бы Validate.
func ExtractMetadata(raw string) (*models.TournamentMetadata, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromString(raw); err != nil {
		return nil, fmt.Errorf("parse document: %w", err)
	}

	root := doc.SelectElement("tournament")
	if root == nil {
		return nil, ErrMissingRoot
	}
	data := root.SelectElement("data")
	if data == nil {
		return nil, ErrMissingData
	}

	meta := &models.TournamentMetadata{
		Name:               childText(data, "name"),
		OfficialID:         childText(data, "id"),
		City:               childText(data, "city"),
		Country:            childText(data, "country"),
		StartDate:          childText(data, "startdate"),
		RoundTime:          childInt(data, "roundtime"),
		FinalsRoundTime:    childInt(data, "finalsroundtime"),
		LessSwiss:          childText(data, "lessswiss") == "true",
		AutoTableNumber:    childText(data, "autotablenumber") == "true",
		OverflowTableStart: childInt(data, "overflowtablestart"),
		Type:               root.SelectAttrValue("type", ""),
		Stage:              root.SelectAttrValue("stage", ""),
		Version:            root.SelectAttrValue("version", ""),
		GameType:           root.SelectAttrValue("gametype", ""),
		Mode:               root.SelectAttrValue("mode", ""),
	}

	if state := childText(data, "state"); state != "" {
		meta.State = &state
	}

	organizer := data.SelectElement("organizer")
	if organizer == nil {
		return nil, fmt.Errorf("%w: missing <organizer> element", ErrValidationFailed)
	}
	meta.Organizer = models.Organizer{
		PopID: organizer.SelectAttrValue("popid", ""),
		Name:  organizer.SelectAttrValue("name", ""),
	}

	return meta, nil
}

// ExtractPlayers читает упорядоченный список игроков из валидированного
// текста. Порядок элементов <player> сохраняется.
func ExtractPlayers(raw string) ([]models.Player, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromString(raw); err != nil {
		return nil, fmt.Errorf("parse document: %w", err)
	}

	root := doc.SelectElement("tournament")
	if root == nil {
		return nil, ErrMissingRoot
	}
	playersEl := root.SelectElement("players")
	if playersEl == nil {
		return nil, ErrMissingPlayers
	}

	players := make([]models.Player, 0, len(playersEl.SelectElements("player")))
	for _, el := range playersEl.SelectElements("player") {
		p := models.Player{
			UserID:           el.SelectAttrValue("userid", ""),
			FirstName:        childText(el, "firstname"),
			LastName:         childText(el, "lastname"),
			Birthdate:        childText(el, "birthdate"),
			CreationDate:     childText(el, "creationdate"),
			LastModifiedDate: childText(el, "lastmodifieddate"),
			Starter:          childText(el, "starter") == "true",
		}

		if order := el.SelectElement("order"); order != nil {
			if v, err := strconv.Atoi(strings.TrimSpace(order.Text())); err == nil {
				p.Order = &v
			}
		}
		if seed := el.SelectElement("seed"); seed != nil {
			if v, err := strconv.Atoi(strings.TrimSpace(seed.Text())); err == nil {
				p.Seed = &v
			}
		}
		if dropped := el.SelectElement("dropped"); dropped != nil {
			round, _ := strconv.Atoi(dropped.SelectAttrValue("round", "0"))
			p.Dropped = &models.DroppedStatus{
				Status:    dropped.SelectAttrValue("status", ""),
				Round:     round,
				Timestamp: dropped.SelectAttrValue("timestamp", ""),
			}
		}

		players = append(players, p)
	}

	return players, nil
}

// ExtractSummary — облегчённый предпросмотр для слоя загрузки.
// Документ с фатальными ошибками отклоняется так же, как в Parse.
func ExtractSummary(raw string) (*models.Summary, error) {
	validation := Validate(raw)
	if !validation.Valid {
		return nil, &ValidationError{Errors: validation.Errors}
	}

	meta, err := ExtractMetadata(raw)
	if err != nil {
		return nil, err
	}
	players, err := ExtractPlayers(raw)
	if err != nil {
		return nil, err
	}

	category := "Unknown"
	if cat, err := MapType(meta.GameType, meta.Mode); err == nil {
		category = CategoryLabel(cat)
	}

	location := meta.City
	if meta.State != nil {
		location += ", " + *meta.State
	}
	if meta.Country != "" {
		location += ", " + meta.Country
	}

	return &models.Summary{
		Name:        meta.Name,
		OfficialID:  meta.OfficialID,
		Category:    category,
		Location:    location,
		Date:        meta.StartDate,
		PlayerCount: len(players),
		IsEmpty:     len(players) == 0,
	}, nil
}

func childText(parent *etree.Element, name string) string {
	el := parent.SelectElement(name)
	if el == nil {
		return ""
	}
	return strings.TrimSpace(el.Text())
}

// childInt возвращает 0 для отсутствующего или нечислового поля:
// незначительные расхождения производителей файла не считаются ошибкой.
func childInt(parent *etree.Element, name string) int {
	v, err := strconv.Atoi(childText(parent, name))
	if err != nil {
		return 0
	}
	return v
}
