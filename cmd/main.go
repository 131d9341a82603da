package main

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/Dosada05/tdf-engine/config"
	"github.com/Dosada05/tdf-engine/matcher"
	"github.com/Dosada05/tdf-engine/models"
	"github.com/Dosada05/tdf-engine/tdf"
)

const usage = `usage: tdfcheck <command> [arguments]

commands:
  validate <file...>            validate tournament files, report errors and warnings
  summary <file>                print a preview summary of a tournament file
  regenerate <file>             re-parse a file and emit a normalized document to stdout
  match <file> <candidates>     score a file against a JSON list of stored tournaments`

func main() {
	// Настройка логгера
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))

	// Загрузка конфигурации
	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load configuration", slog.Any("error", err))
		os.Exit(1)
	}
	logger = slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.LogLevel}))

	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, usage)
		os.Exit(2)
	}

	switch os.Args[1] {
	case "validate":
		runValidate(logger, os.Args[2:])
	case "summary":
		runSummary(logger, os.Args[2:])
	case "regenerate":
		runRegenerate(logger, os.Args[2:])
	case "match":
		runMatch(logger, cfg, os.Args[2:])
	default:
		fmt.Fprintf(os.Stderr, "unknown command %q\n\n%s\n", os.Args[1], usage)
		os.Exit(2)
	}
}

type fileValidation struct {
	path   string
	result models.ValidationResult
	err    error
}

// runValidate проверяет файлы параллельно. Сам движок синхронный;
// конкурентность живёт только здесь, на интеграционном слое.
func runValidate(logger *slog.Logger, paths []string) {
	if len(paths) == 0 {
		fmt.Fprintln(os.Stderr, "validate: at least one file is required")
		os.Exit(2)
	}

	results := make([]fileValidation, len(paths))

	var g errgroup.Group
	g.SetLimit(4)
	for i, path := range paths {
		i, path := i, path
		g.Go(func() error {
			raw, err := os.ReadFile(path)
			if err != nil {
				results[i] = fileValidation{path: path, err: err}
				return nil
			}
			results[i] = fileValidation{path: path, result: tdf.Validate(string(raw))}
			return nil
		})
	}
	_ = g.Wait()

	failed := 0
	for _, fv := range results {
		switch {
		case fv.err != nil:
			logger.Error("failed to read file", slog.String("file", fv.path), slog.Any("error", fv.err))
			failed++
		case !fv.result.Valid:
			logger.Error("file failed validation",
				slog.String("file", fv.path),
				slog.String("errors", strings.Join(fv.result.Errors, "; ")))
			failed++
		default:
			logger.Info("file is valid",
				slog.String("file", fv.path),
				slog.Int("warnings", len(fv.result.Warnings)))
			for _, w := range fv.result.Warnings {
				logger.Warn("validation warning", slog.String("file", fv.path), slog.String("warning", w))
			}
		}
	}

	if failed > 0 {
		os.Exit(1)
	}
}

func runSummary(logger *slog.Logger, args []string) {
	if len(args) != 1 {
		fmt.Fprintln(os.Stderr, "summary: exactly one file is required")
		os.Exit(2)
	}

	raw, err := os.ReadFile(args[0])
	if err != nil {
		logger.Error("failed to read file", slog.String("file", args[0]), slog.Any("error", err))
		os.Exit(1)
	}

	summary, err := tdf.ExtractSummary(string(raw))
	if err != nil {
		logger.Error("failed to extract summary", slog.String("file", args[0]), slog.Any("error", err))
		os.Exit(1)
	}

	printJSON(logger, summary)
}

func runRegenerate(logger *slog.Logger, args []string) {
	if len(args) != 1 {
		fmt.Fprintln(os.Stderr, "regenerate: exactly one file is required")
		os.Exit(2)
	}

	raw, err := os.ReadFile(args[0])
	if err != nil {
		logger.Error("failed to read file", slog.String("file", args[0]), slog.Any("error", err))
		os.Exit(1)
	}

	doc, err := tdf.Parse(string(raw))
	if err != nil {
		logger.Error("failed to parse file", slog.String("file", args[0]), slog.Any("error", err))
		os.Exit(1)
	}

	gen := tdf.NewGenerator(logger)
	out, err := gen.RegenerateFromExisting(string(raw), participantsFromPlayers(doc.Players))
	if err != nil {
		logger.Error("failed to regenerate document", slog.String("file", args[0]), slog.Any("error", err))
		os.Exit(1)
	}

	fmt.Print(out)
}

func runMatch(logger *slog.Logger, cfg *config.Config, args []string) {
	if len(args) != 2 {
		fmt.Fprintln(os.Stderr, "match: a tournament file and a candidates JSON file are required")
		os.Exit(2)
	}

	raw, err := os.ReadFile(args[0])
	if err != nil {
		logger.Error("failed to read file", slog.String("file", args[0]), slog.Any("error", err))
		os.Exit(1)
	}
	doc, err := tdf.Parse(string(raw))
	if err != nil {
		logger.Error("failed to parse file", slog.String("file", args[0]), slog.Any("error", err))
		os.Exit(1)
	}

	candidatesRaw, err := os.ReadFile(args[1])
	if err != nil {
		logger.Error("failed to read candidates", slog.String("file", args[1]), slog.Any("error", err))
		os.Exit(1)
	}
	var candidates []models.StoredTournament
	if err := json.Unmarshal(candidatesRaw, &candidates); err != nil {
		logger.Error("failed to decode candidates", slog.String("file", args[1]), slog.Any("error", err))
		os.Exit(1)
	}

	m := matcher.New(weightsFromConfig(cfg))
	printJSON(logger, m.Match(doc, candidates))
}

func weightsFromConfig(cfg *config.Config) matcher.Weights {
	return matcher.Weights{
		IDExact:          cfg.MatchWeightID,
		NameMax:          cfg.MatchWeightName,
		NameFloor:        cfg.MatchNameFloor,
		CityCountry:      cfg.MatchWeightCityCountry,
		CityOnly:         cfg.MatchWeightCity,
		DateExact:        cfg.MatchWeightDate,
		DateNear:         cfg.MatchWeightDateNear,
		UpdateThreshold:  cfg.MatchUpdateThreshold,
		CautionThreshold: cfg.MatchCautionThreshold,
	}
}

// participantsFromPlayers превращает игроков документа обратно в записи
// участников для пути регенерации.
func participantsFromPlayers(players []models.Player) []models.Participant {
	participants := make([]models.Participant, 0, len(players))
	for _, p := range players {
		userID := p.UserID
		birthdate := p.Birthdate
		participants = append(participants, models.Participant{
			DisplayName:  strings.TrimSpace(p.FirstName + " " + p.LastName),
			UserID:       &userID,
			Birthdate:    &birthdate,
			RegisteredAt: p.CreationDate,
		})
	}
	return participants
}

func printJSON(logger *slog.Logger, v any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		logger.Error("failed to encode output", slog.Any("error", err))
		os.Exit(1)
	}
}
