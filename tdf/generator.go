package tdf

import (
	"fmt"
	"hash/fnv"
	"log/slog"
	"strings"
	"time"

	"github.com/Dosada05/tdf-engine/models"
)

// Значения по умолчанию при генерации документа с нуля.
const (
	defaultRoundTime = 50
	defaultType      = "2"
	defaultVersion   = "1.80"
	minOverflowStart = 16
	placeholderBirth = "02/27/2000"
	xmlDeclaration   = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>`
)

// CoreFields — минимальный набор полей для генерации документа с нуля.
// Остальные метаданные синтезируются по документированным умолчаниям.
type CoreFields struct {
	Name           string
	OfficialID     string
	City           string
	State          *string
	Country        string
	StartDate      string // формат MM/DD/YYYY
	OrganizerPopID string
	OrganizerName  string
	Category       models.TournamentCategory
}

// Generator собирает схемно-корректные документы TDF из метаданных и
// списка игроков. Компонент чистый и синхронный: текст на входе,
// текст на выходе, без собственного ввода-вывода.
type Generator struct {
	log *slog.Logger
	now func() time.Time
}

// NewGenerator создаёт генератор с переданным логгером.
func NewGenerator(logger *slog.Logger) *Generator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Generator{log: logger, now: time.Now}
}

// Generate собирает полный документ из метаданных и списка игроков.
// Перед возвратом выполняет структурную самопроверку: некорректный
// результат — внутренний дефект, он поднимается как SelfCheckError.
func (g *Generator) Generate(meta models.TournamentMetadata, players []models.Player) (string, error) {
	var b strings.Builder

	b.WriteString(xmlDeclaration)
	b.WriteString("\n")
	fmt.Fprintf(&b, `<tournament type="%s" stage="%s" version="%s" gametype="%s" mode="%s">`+"\n",
		EscapeText(meta.Type), EscapeText(meta.Stage), EscapeText(meta.Version),
		EscapeText(meta.GameType), EscapeText(meta.Mode))

	g.writeData(&b, meta)
	b.WriteString("\t<timeelapsed>0</timeelapsed>\n")
	g.writePlayers(&b, players)
	b.WriteString("\t<pods/>\n")
	g.writeFinalsOptions(&b, len(players))

	b.WriteString("</tournament>\n")

	out := b.String()
	if err := g.validateGenerated(out); err != nil {
		return "", err
	}
	return out, nil
}

// GenerateFromScratch синтезирует документ по базовым полям:
// время раунда 50 минут в обеих фазах, стадия отражает наличие игроков,
// старт переполнения столов — max(16, ceil(n/4)).
func (g *Generator) GenerateFromScratch(core CoreFields, participants []models.Participant) (string, error) {
	gameType, mode, err := UnmapType(core.Category)
	if err != nil {
		return "", fmt.Errorf("resolve category: %w", err)
	}

	players := g.convertParticipants(participants)

	stage := "0"
	if len(players) > 0 {
		stage = "1"
	}

	overflow := (len(players) + 3) / 4
	if overflow < minOverflowStart {
		overflow = minOverflowStart
	}

	meta := models.TournamentMetadata{
		Name:               core.Name,
		OfficialID:         core.OfficialID,
		City:               core.City,
		State:              core.State,
		Country:            core.Country,
		StartDate:          core.StartDate,
		Organizer:          models.Organizer{PopID: core.OrganizerPopID, Name: core.OrganizerName},
		RoundTime:          defaultRoundTime,
		FinalsRoundTime:    defaultRoundTime,
		OverflowTableStart: overflow,
		Type:               defaultType,
		Stage:              stage,
		Version:            defaultVersion,
		GameType:           gameType,
		Mode:               mode,
	}

	return g.Generate(meta, players)
}

// RegenerateFromExisting перечитывает метаданные из исходного документа и
// подставляет новый список игроков. Это путь обновления существующего
// турнира; сериализацию конкурентных обновлений одного турнира
// обеспечивает вызывающая сторона.
func (g *Generator) RegenerateFromExisting(original string, participants []models.Participant) (string, error) {
	doc, err := Parse(original)
	if err != nil {
		return "", fmt.Errorf("parse original document: %w", err)
	}

	players := g.convertParticipants(participants)

	meta := doc.Metadata
	if len(players) > 0 && meta.Stage == "0" {
		meta.Stage = "1"
	}

	return g.Generate(meta, players)
}

// validateGenerated перепроверяет собственный вывод генератора.
func (g *Generator) validateGenerated(out string) error {
	result := Validate(out)
	if !result.Valid {
		return &SelfCheckError{Errors: result.Errors}
	}
	return nil
}

func (g *Generator) writeData(b *strings.Builder, meta models.TournamentMetadata) {
	b.WriteString("\t<data>\n")
	fmt.Fprintf(b, "\t\t<name>%s</name>\n", EscapeText(meta.Name))
	fmt.Fprintf(b, "\t\t<id>%s</id>\n", EscapeText(meta.OfficialID))
	fmt.Fprintf(b, "\t\t<city>%s</city>\n", EscapeText(meta.City))
	if meta.State != nil {
		fmt.Fprintf(b, "\t\t<state>%s</state>\n", EscapeText(*meta.State))
	}
	fmt.Fprintf(b, "\t\t<country>%s</country>\n", EscapeText(meta.Country))
	fmt.Fprintf(b, "\t\t<roundtime>%d</roundtime>\n", meta.RoundTime)
	fmt.Fprintf(b, "\t\t<finalsroundtime>%d</finalsroundtime>\n", meta.FinalsRoundTime)
	fmt.Fprintf(b, "\t\t"+`<organizer popid="%s" name="%s"/>`+"\n",
		EscapeText(meta.Organizer.PopID), EscapeText(meta.Organizer.Name))
	fmt.Fprintf(b, "\t\t<startdate>%s</startdate>\n", EscapeText(meta.StartDate))
	fmt.Fprintf(b, "\t\t<lessswiss>%t</lessswiss>\n", meta.LessSwiss)
	fmt.Fprintf(b, "\t\t<autotablenumber>%t</autotablenumber>\n", meta.AutoTableNumber)
	fmt.Fprintf(b, "\t\t<overflowtablestart>%d</overflowtablestart>\n", meta.OverflowTableStart)
	b.WriteString("\t</data>\n")
}

func (g *Generator) writePlayers(b *strings.Builder, players []models.Player) {
	if len(players) == 0 {
		b.WriteString("\t<players/>\n")
		return
	}

	b.WriteString("\t<players>\n")
	for _, p := range players {
		fmt.Fprintf(b, "\t\t"+`<player userid="%s">`+"\n", EscapeText(p.UserID))
		fmt.Fprintf(b, "\t\t\t<firstname>%s</firstname>\n", EscapeText(p.FirstName))
		fmt.Fprintf(b, "\t\t\t<lastname>%s</lastname>\n", EscapeText(p.LastName))
		fmt.Fprintf(b, "\t\t\t<birthdate>%s</birthdate>\n", EscapeText(p.Birthdate))
		if p.Starter {
			b.WriteString("\t\t\t<starter>true</starter>\n")
		}
		if p.Dropped != nil {
			fmt.Fprintf(b, "\t\t\t"+`<dropped status="%s" round="%d" timestamp="%s"/>`+"\n",
				EscapeText(p.Dropped.Status), p.Dropped.Round, EscapeText(p.Dropped.Timestamp))
		}
		if p.Order != nil {
			fmt.Fprintf(b, "\t\t\t<order>%d</order>\n", *p.Order)
		}
		if p.Seed != nil {
			fmt.Fprintf(b, "\t\t\t<seed>%d</seed>\n", *p.Seed)
		}
		fmt.Fprintf(b, "\t\t\t<creationdate>%s</creationdate>\n", EscapeText(p.CreationDate))
		fmt.Fprintf(b, "\t\t\t<lastmodifieddate>%s</lastmodifieddate>\n", EscapeText(p.LastModifiedDate))
		b.WriteString("\t\t</player>\n")
	}
	b.WriteString("\t</players>\n")
}

// writeFinalsOptions выпускает секцию размера топ-ката одиночного
// вылета. Секция обязательна по грамматике даже без единой записи.
func (g *Generator) writeFinalsOptions(b *strings.Builder, playerCount int) {
	cut := finalsCutFor(playerCount)
	if cut == nil {
		b.WriteString("\t<finalsoptions/>\n")
		return
	}

	b.WriteString("\t<finalsoptions>\n")
	b.WriteString("\t\t<categorycut category=\"0\">\n")
	fmt.Fprintf(b, "\t\t\t<options>%s</options>\n", cut.options)
	fmt.Fprintf(b, "\t\t\t<cutsize>%d</cutsize>\n", cut.cutSize)
	fmt.Fprintf(b, "\t\t\t<playercount>%d</playercount>\n", playerCount)
	b.WriteString("\t\t\t<paired3rd4th>false</paired3rd4th>\n")
	b.WriteString("\t\t</categorycut>\n")
	b.WriteString("\t</finalsoptions>\n")
}

type finalsCut struct {
	options string
	cutSize int
}

// finalsCutFor возвращает запись топ-ката для размера состава.
// Нулевой состав — секция без записей.
func finalsCutFor(playerCount int) *finalsCut {
	switch {
	case playerCount == 0:
		return nil
	case playerCount <= 3:
		return &finalsCut{options: "0", cutSize: 0}
	case playerCount <= 7:
		return &finalsCut{options: "0,2,4", cutSize: 4}
	default:
		size := playerCount / 4
		if size > 8 {
			size = 8
		}
		return &finalsCut{options: "0,2,4,8", cutSize: size}
	}
}

func (g *Generator) convertParticipants(participants []models.Participant) []models.Player {
	players := make([]models.Player, 0, len(participants))
	for _, p := range participants {
		players = append(players, g.convertParticipant(p))
	}
	return players
}

// convertParticipant приводит запись регистрации к формату игрока TDF.
// Неразборчивые даты не отклоняют запись: подстановки документированы
// и логируются для последующего аудита качества данных.
func (g *Generator) convertParticipant(p models.Participant) models.Player {
	first, last := splitName(p.DisplayName)

	birthdate := placeholderBirth
	if p.Birthdate != nil && ValidDate(*p.Birthdate) {
		birthdate = *p.Birthdate
	} else {
		g.log.Warn("substituting placeholder birthdate",
			slog.String("participant", p.DisplayName),
			slog.String("placeholder", placeholderBirth))
	}

	userID := ""
	if p.UserID != nil {
		userID = strings.TrimSpace(*p.UserID)
	}
	if userID == "" {
		userID = synthesizeUserID(first, last, birthdate)
	}

	registered := g.parseRegistration(p)

	stamp := FormatTimestamp(registered)
	return models.Player{
		UserID:           userID,
		FirstName:        first,
		LastName:         last,
		Birthdate:        birthdate,
		CreationDate:     stamp,
		LastModifiedDate: stamp,
	}
}

func (g *Generator) parseRegistration(p models.Participant) time.Time {
	raw := strings.TrimSpace(p.RegisteredAt)
	if raw != "" {
		for _, layout := range []string{TimestampLayout, DateLayout, time.RFC3339} {
			if t, err := time.Parse(layout, raw); err == nil {
				return t
			}
		}
	}
	g.log.Warn("unparseable registration date, stamping with current time",
		slog.String("participant", p.DisplayName),
		slog.String("registered_at", raw))
	return g.now()
}

// splitName делит отображаемое имя: первый токен — имя, остаток — фамилия.
func splitName(display string) (first, last string) {
	fields := strings.Fields(display)
	if len(fields) == 0 {
		return "", ""
	}
	return fields[0], strings.Join(fields[1:], " ")
}

// synthesizeUserID детерминированно порождает 7-значный числовой
// идентификатор для участника без собственного: одинаковый состав
// даёт одинаковый документ при повторной генерации.
func synthesizeUserID(first, last, birthdate string) string {
	h := fnv.New32a()
	h.Write([]byte(first + "|" + last + "|" + birthdate))
	return fmt.Sprintf("%07d", 1000000+h.Sum32()%9000000)
}
