package tdf

import (
	"fmt"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Dosada05/tdf-engine/models"
)

func testGenerator() *Generator {
	g := NewGenerator(slog.New(slog.NewTextHandler(io.Discard, nil)))
	g.now = func() time.Time {
		return time.Date(2025, 3, 20, 12, 0, 0, 0, time.UTC)
	}
	return g
}

func testMetadata() models.TournamentMetadata {
	state := "ZH"
	return models.TournamentMetadata{
		OfficialID:         "25-02-000001",
		Name:               "Spring League Challenge",
		City:               "Rotterdam",
		State:              &state,
		Country:            "Netherlands",
		StartDate:          "03/15/2025",
		Organizer:          models.Organizer{PopID: "123456", Name: "Mila van Dijk"},
		RoundTime:          50,
		FinalsRoundTime:    50,
		AutoTableNumber:    true,
		OverflowTableStart: 16,
		Type:               "2",
		Stage:              "1",
		Version:            "1.80",
		GameType:           "TRADING_CARD_GAME",
		Mode:               "TCGLeagueChallenge",
	}
}

func testPlayers(n int) []models.Player {
	players := make([]models.Player, 0, n)
	for i := 0; i < n; i++ {
		players = append(players, models.Player{
			UserID:           string(rune('1'+i%9)) + "234567",
			FirstName:        "Player",
			LastName:         "Number",
			Birthdate:        "05/12/1998",
			CreationDate:     "03/01/2025 10:00:00",
			LastModifiedDate: "03/01/2025 10:00:00",
		})
	}
	return players
}

func TestGenerateRoundTrip(t *testing.T) {
	g := testGenerator()
	meta := testMetadata()
	order := 2
	seed := 1
	players := []models.Player{
		{
			UserID:           "1234567",
			FirstName:        "Anna",
			LastName:         "Smit",
			Birthdate:        "05/12/1998",
			CreationDate:     "03/01/2025 10:00:00",
			LastModifiedDate: "03/01/2025 10:00:00",
		},
		{
			UserID:           "7654321",
			FirstName:        "Tom",
			LastName:         "de Vries",
			Birthdate:        "11/30/2001",
			CreationDate:     "03/02/2025 09:30:00",
			LastModifiedDate: "03/15/2025 13:45:00",
			Starter:          true,
			Order:            &order,
			Seed:             &seed,
			Dropped:          &models.DroppedStatus{Status: "drop", Round: 2, Timestamp: "03/15/2025 13:45:00"},
		},
	}

	out, err := g.Generate(meta, players)
	require.NoError(t, err)

	doc, err := Parse(out)
	require.NoError(t, err)
	assert.Equal(t, meta, doc.Metadata)
	assert.Equal(t, players, doc.Players)
	assert.Empty(t, doc.Validation.Warnings)
}

func TestGenerateEscapesFreeText(t *testing.T) {
	g := testGenerator()
	meta := testMetadata()
	meta.Name = `Cups & Cards "Spring" <Open>`
	meta.Organizer.Name = `O'Brien & Sons`
	players := []models.Player{{
		UserID:           "1234567",
		FirstName:        "O'Brien",
		LastName:         "& Sons <Test>",
		Birthdate:        "05/12/1998",
		CreationDate:     "03/01/2025 10:00:00",
		LastModifiedDate: "03/01/2025 10:00:00",
	}}

	out, err := g.Generate(meta, players)
	require.NoError(t, err)

	doc, err := Parse(out)
	require.NoError(t, err)
	assert.Equal(t, `Cups & Cards "Spring" <Open>`, doc.Metadata.Name)
	assert.Equal(t, `O'Brien & Sons`, doc.Metadata.Organizer.Name)
	assert.Equal(t, "O'Brien", doc.Players[0].FirstName)
	assert.Equal(t, "& Sons <Test>", doc.Players[0].LastName)
}

func TestGenerateZeroPlayers(t *testing.T) {
	g := testGenerator()

	out, err := g.Generate(testMetadata(), nil)
	require.NoError(t, err)

	// Все обязательные секции присутствуют даже пустыми.
	assert.Contains(t, out, "<players/>")
	assert.Contains(t, out, "<pods/>")
	assert.Contains(t, out, "<finalsoptions/>")
	assert.Contains(t, out, "<timeelapsed>0</timeelapsed>")
	assert.True(t, Validate(out).Valid)
}

func TestFinalsCutTiers(t *testing.T) {
	tests := []struct {
		players int
		options string
		cutSize int
	}{
		{1, "0", 0},
		{3, "0", 0},
		{4, "0,2,4", 4},
		{7, "0,2,4", 4},
		{8, "0,2,4,8", 2},
		{20, "0,2,4,8", 5},
		{32, "0,2,4,8", 8},
		{100, "0,2,4,8", 8},
	}
	for _, tt := range tests {
		cut := finalsCutFor(tt.players)
		require.NotNil(t, cut, "players=%d", tt.players)
		assert.Equal(t, tt.options, cut.options, "players=%d", tt.players)
		assert.Equal(t, tt.cutSize, cut.cutSize, "players=%d", tt.players)
	}

	assert.Nil(t, finalsCutFor(0))
}

func TestGenerateFinalsOptionsSection(t *testing.T) {
	g := testGenerator()

	out, err := g.Generate(testMetadata(), testPlayers(5))
	require.NoError(t, err)

	assert.Contains(t, out, "<options>0,2,4</options>")
	assert.Contains(t, out, "<cutsize>4</cutsize>")
	assert.Contains(t, out, "<playercount>5</playercount>")
	assert.Contains(t, out, "<paired3rd4th>false</paired3rd4th>")
}

func TestGenerateFromScratchDefaults(t *testing.T) {
	g := testGenerator()
	core := CoreFields{
		Name:           "City League Cup",
		OfficialID:     "25-03-000042",
		City:           "Utrecht",
		Country:        "Netherlands",
		StartDate:      "04/05/2025",
		OrganizerPopID: "654321",
		OrganizerName:  "Jan Bakker",
		Category:       models.CategoryLeagueCup,
	}
	participants := []models.Participant{
		{DisplayName: "Anna Smit", RegisteredAt: "03/01/2025 10:00:00"},
		{DisplayName: "Tom de Vries", RegisteredAt: "03/02/2025 09:30:00"},
	}

	out, err := g.GenerateFromScratch(core, participants)
	require.NoError(t, err)

	doc, err := Parse(out)
	require.NoError(t, err)
	assert.Equal(t, 50, doc.Metadata.RoundTime)
	assert.Equal(t, 50, doc.Metadata.FinalsRoundTime)
	assert.Equal(t, "1", doc.Metadata.Stage)
	assert.Equal(t, 16, doc.Metadata.OverflowTableStart)
	assert.Equal(t, "TRADING_CARD_GAME", doc.Metadata.GameType)
	assert.Equal(t, "TCGLeagueCup", doc.Metadata.Mode)
	assert.Equal(t, 2, doc.PlayerCount)

	// Имя делится по первому токену, остаток — фамилия.
	assert.Equal(t, "Tom", doc.Players[1].FirstName)
	assert.Equal(t, "de Vries", doc.Players[1].LastName)
}

func TestGenerateFromScratchEmptyRoster(t *testing.T) {
	g := testGenerator()
	core := CoreFields{
		Name:           "Empty Cup",
		OfficialID:     "25-03-000043",
		City:           "Utrecht",
		Country:        "Netherlands",
		StartDate:      "04/05/2025",
		OrganizerPopID: "654321",
		OrganizerName:  "Jan Bakker",
		Category:       models.CategoryGOPremier,
	}

	out, err := g.GenerateFromScratch(core, nil)
	require.NoError(t, err)

	doc, err := Parse(out)
	require.NoError(t, err)
	assert.Equal(t, "0", doc.Metadata.Stage)
	assert.False(t, doc.HasPlayers)
	assert.Contains(t, out, "<finalsoptions/>")
}

func TestGenerateFromScratchOverflowTables(t *testing.T) {
	g := testGenerator()
	core := CoreFields{
		Name:           "Big Regional",
		OfficialID:     "25-03-000044",
		City:           "Utrecht",
		Country:        "Netherlands",
		StartDate:      "04/05/2025",
		OrganizerPopID: "654321",
		OrganizerName:  "Jan Bakker",
		Category:       models.CategoryVGCPremier,
	}
	participants := make([]models.Participant, 100)
	for i := range participants {
		participants[i] = models.Participant{
			DisplayName:  fmt.Sprintf("Speler Nummer%d", i),
			RegisteredAt: "03/01/2025 10:00:00",
		}
	}

	out, err := g.GenerateFromScratch(core, participants)
	require.NoError(t, err)

	doc, err := Parse(out)
	require.NoError(t, err)
	assert.Equal(t, 25, doc.Metadata.OverflowTableStart)
	assert.Contains(t, out, "<cutsize>8</cutsize>")
}

func TestGenerateFromScratchUnsupportedCategory(t *testing.T) {
	g := testGenerator()

	_, err := g.GenerateFromScratch(CoreFields{Category: "nonsense"}, nil)
	assert.ErrorIs(t, err, ErrUnsupportedType)
}

func TestConvertParticipantDefaults(t *testing.T) {
	g := testGenerator()

	p := g.convertParticipant(models.Participant{
		DisplayName:  "Anna Smit",
		RegisteredAt: "not a date",
	})

	// Идентификатор синтезируется детерминированно: 7 цифр.
	assert.Regexp(t, `^\d{7}$`, p.UserID)
	again := g.convertParticipant(models.Participant{
		DisplayName:  "Anna Smit",
		RegisteredAt: "not a date",
	})
	assert.Equal(t, p.UserID, again.UserID)

	// Неизвестная дата рождения подменяется фиксированной заглушкой.
	assert.Equal(t, "02/27/2000", p.Birthdate)

	// Неразборчивая дата регистрации даёт метку "сейчас".
	assert.Equal(t, "03/20/2025 12:00:00", p.CreationDate)
	assert.Equal(t, p.CreationDate, p.LastModifiedDate)
}

func TestConvertParticipantKeepsProvidedFields(t *testing.T) {
	g := testGenerator()
	userID := "9999999"
	birthdate := "05/12/1998"

	p := g.convertParticipant(models.Participant{
		DisplayName:  "Anna Smit",
		UserID:       &userID,
		Birthdate:    &birthdate,
		RegisteredAt: "03/01/2025 10:00:00",
	})

	assert.Equal(t, "9999999", p.UserID)
	assert.Equal(t, "05/12/1998", p.Birthdate)
	assert.Equal(t, "03/01/2025 10:00:00", p.CreationDate)
}

func TestRegenerateFromExisting(t *testing.T) {
	g := testGenerator()
	participants := []models.Participant{
		{DisplayName: "Nieuwe Speler", RegisteredAt: "03/10/2025 11:00:00"},
	}

	out, err := g.RegenerateFromExisting(sampleDoc, participants)
	require.NoError(t, err)

	doc, err := Parse(out)
	require.NoError(t, err)

	// Метаданные сохранены из исходного документа.
	assert.Equal(t, "Spring League Challenge", doc.Metadata.Name)
	assert.Equal(t, "25-02-000001", doc.Metadata.OfficialID)

	// Состав заменён целиком.
	require.Len(t, doc.Players, 1)
	assert.Equal(t, "Nieuwe", doc.Players[0].FirstName)
	assert.Equal(t, "Speler", doc.Players[0].LastName)
}

func TestRegenerateFromExistingRejectsInvalidOriginal(t *testing.T) {
	g := testGenerator()

	_, err := g.RegenerateFromExisting("<event/>", nil)
	assert.ErrorIs(t, err, ErrValidationFailed)
}

func TestValidateGenerated(t *testing.T) {
	g := testGenerator()

	err := g.validateGenerated("<event/>")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrGenerationSelfCheck)

	var scErr *SelfCheckError
	require.ErrorAs(t, err, &scErr)
	assert.NotEmpty(t, scErr.Errors)
}
