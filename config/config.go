package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config хранит все конфигурационные параметры приложения.
// Веса сопоставления турниров — эмпирические константы; значения по
// умолчанию должны совпадать с историческими, переопределение через
// окружение предусмотрено для настройки.
type Config struct {
	LogLevel slog.Level

	MatchWeightID          float64
	MatchWeightName        float64
	MatchNameFloor         float64
	MatchWeightCityCountry float64
	MatchWeightCity        float64
	MatchWeightDate        float64
	MatchWeightDateNear    float64
	MatchUpdateThreshold   float64
	MatchCautionThreshold  float64
}

// Load загружает конфигурацию из переменных окружения.
// Опционально подгружает .env файл (полезно для локальной разработки).
func Load() (*Config, error) {
	// Загружаем .env файл, если он есть. Ошибку не считаем фатальной.
	_ = godotenv.Load()

	cfg := &Config{
		LogLevel:               slog.LevelInfo,
		MatchWeightID:          0.50,
		MatchWeightName:        0.30,
		MatchNameFloor:         0.6,
		MatchWeightCityCountry: 0.15,
		MatchWeightCity:        0.10,
		MatchWeightDate:        0.05,
		MatchWeightDateNear:    0.03,
		MatchUpdateThreshold:   0.70,
		MatchCautionThreshold:  0.30,
	}

	switch os.Getenv("LOG_LEVEL") {
	case "", "info":
		cfg.LogLevel = slog.LevelInfo
	case "debug":
		cfg.LogLevel = slog.LevelDebug
	case "warn":
		cfg.LogLevel = slog.LevelWarn
	case "error":
		cfg.LogLevel = slog.LevelError
	default:
		return nil, fmt.Errorf("invalid LOG_LEVEL environment variable: %q", os.Getenv("LOG_LEVEL"))
	}

	var err error
	if cfg.MatchWeightID, err = envFloat("MATCH_WEIGHT_ID", cfg.MatchWeightID); err != nil {
		return nil, err
	}
	if cfg.MatchWeightName, err = envFloat("MATCH_WEIGHT_NAME", cfg.MatchWeightName); err != nil {
		return nil, err
	}
	if cfg.MatchNameFloor, err = envFloat("MATCH_NAME_FLOOR", cfg.MatchNameFloor); err != nil {
		return nil, err
	}
	if cfg.MatchWeightCityCountry, err = envFloat("MATCH_WEIGHT_CITY_COUNTRY", cfg.MatchWeightCityCountry); err != nil {
		return nil, err
	}
	if cfg.MatchWeightCity, err = envFloat("MATCH_WEIGHT_CITY", cfg.MatchWeightCity); err != nil {
		return nil, err
	}
	if cfg.MatchWeightDate, err = envFloat("MATCH_WEIGHT_DATE", cfg.MatchWeightDate); err != nil {
		return nil, err
	}
	if cfg.MatchWeightDateNear, err = envFloat("MATCH_WEIGHT_DATE_NEAR", cfg.MatchWeightDateNear); err != nil {
		return nil, err
	}
	if cfg.MatchUpdateThreshold, err = envFloat("MATCH_UPDATE_THRESHOLD", cfg.MatchUpdateThreshold); err != nil {
		return nil, err
	}
	if cfg.MatchCautionThreshold, err = envFloat("MATCH_CAUTION_THRESHOLD", cfg.MatchCautionThreshold); err != nil {
		return nil, err
	}

	if cfg.MatchUpdateThreshold <= 0 || cfg.MatchUpdateThreshold > 1 {
		return nil, fmt.Errorf("MATCH_UPDATE_THRESHOLD must be in (0, 1], got %v", cfg.MatchUpdateThreshold)
	}
	if cfg.MatchNameFloor < 0 || cfg.MatchNameFloor >= 1 {
		return nil, fmt.Errorf("MATCH_NAME_FLOOR must be in [0, 1), got %v", cfg.MatchNameFloor)
	}

	return cfg, nil
}

func envFloat(key string, fallback float64) (float64, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s environment variable: %w", key, err)
	}
	return v, nil
}
