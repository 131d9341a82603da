package tdf

import (
	"errors"
	"fmt"
	"strings"
)

// Общие ошибки движка TDF, используемые для errors.Is в вызывающем коде.
var (
	// Структурные ошибки документа
	ErrValidationFailed = errors.New("document failed structural validation")
	ErrMissingRoot      = errors.New("missing root <tournament> element")
	ErrMissingData      = errors.New("missing required <data> section")
	ErrMissingPlayers   = errors.New("missing required <players> section")

	// Ошибки типизации
	ErrUnsupportedType = errors.New("unsupported gametype/mode pair")

	// Ошибки генерации
	ErrGenerationSelfCheck = errors.New("generated document failed structural self-check")
)

// ValidationError агрегирует все фатальные ошибки одного документа, чтобы
// вызывающая сторона видела полный список, а не первую попавшуюся.
type ValidationError struct {
	Errors []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("structural validation failed: %s", strings.Join(e.Errors, "; "))
}

func (e *ValidationError) Unwrap() error { return ErrValidationFailed }

// SelfCheckError означает, что генератор выпустил документ, не прошедший
// его собственную структурную проверку. Это внутренний дефект: ошибка
// всегда поднимается наверх и никогда не гасится.
type SelfCheckError struct {
	Errors []string
}

func (e *SelfCheckError) Error() string {
	return fmt.Sprintf("generation self-check failed: %s", strings.Join(e.Errors, "; "))
}

func (e *SelfCheckError) Unwrap() error { return ErrGenerationSelfCheck }
