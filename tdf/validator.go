package tdf

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/beevik/etree"

	"github.com/Dosada05/tdf-engine/models"
)

// OfficialIDPattern — формат официального идентификатора турнира: YY-MM-XXXXXX.
var OfficialIDPattern = regexp.MustCompile(`^\d{2}-\d{2}-\d{6}$`)

var requiredRootAttrs = []string{"type", "stage", "version", "gametype", "mode"}

var requiredDataFields = []string{"name", "id", "city", "country", "startdate"}

var requiredSections = []string{"players", "pods", "finalsoptions"}

// Validate проверяет сырой текст на соответствие грамматике TDF.
// Ошибки фатальны и блокируют извлечение; предупреждения — нет.
// Все проблемы собираются в один проход, чтобы вызывающая сторона
// видела полный список сразу.
func Validate(raw string) models.ValidationResult {
	var result models.ValidationResult

	doc := etree.NewDocument()
	if err := doc.ReadFromString(raw); err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("XML is not well-formed: %v", err))
		return result
	}

	root := doc.SelectElement("tournament")
	if root == nil {
		result.Errors = append(result.Errors, "missing root <tournament> element")
		return result
	}

	for _, attr := range requiredRootAttrs {
		if root.SelectAttr(attr) == nil {
			result.Errors = append(result.Errors, fmt.Sprintf("missing required root attribute %q", attr))
		}
	}

	data := root.SelectElement("data")
	if data == nil {
		result.Errors = append(result.Errors, "missing required <data> section")
	} else {
		for _, field := range requiredDataFields {
			el := data.SelectElement(field)
			if el == nil || strings.TrimSpace(el.Text()) == "" {
				result.Errors = append(result.Errors, fmt.Sprintf("missing or empty required field <%s>", field))
			}
		}

		organizer := data.SelectElement("organizer")
		if organizer == nil {
			result.Errors = append(result.Errors, "missing or empty required field <organizer>")
		} else {
			if organizer.SelectAttr("popid") == nil {
				result.Errors = append(result.Errors, `<organizer> element lacks required "popid" attribute`)
			}
			if organizer.SelectAttr("name") == nil {
				result.Errors = append(result.Errors, `<organizer> element lacks required "name" attribute`)
			}
		}

		if id := data.SelectElement("id"); id != nil && strings.TrimSpace(id.Text()) != "" {
			if !OfficialIDPattern.MatchString(strings.TrimSpace(id.Text())) {
				result.Warnings = append(result.Warnings,
					fmt.Sprintf("tournament id %q does not match expected pattern YY-MM-XXXXXX", strings.TrimSpace(id.Text())))
			}
		}
		if sd := data.SelectElement("startdate"); sd != nil && strings.TrimSpace(sd.Text()) != "" {
			if !ValidDate(strings.TrimSpace(sd.Text())) {
				result.Warnings = append(result.Warnings,
					fmt.Sprintf("start date %q does not match expected format MM/DD/YYYY", strings.TrimSpace(sd.Text())))
			}
		}
	}

	// Секции обязаны присутствовать даже пустыми.
	for _, section := range requiredSections {
		if root.SelectElement(section) == nil {
			result.Errors = append(result.Errors, fmt.Sprintf("missing required section <%s>", section))
		}
	}

	gameType := root.SelectAttrValue("gametype", "")
	mode := root.SelectAttrValue("mode", "")
	if gameType != "" && mode != "" && !KnownType(gameType, mode) {
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("unrecognized gametype/mode pair (%q, %q)", gameType, mode))
	}

	result.Valid = len(result.Errors) == 0
	return result
}
