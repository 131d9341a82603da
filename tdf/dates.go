package tdf

import (
	"fmt"
	"regexp"
	"time"
)

// Форматы дат, используемые файлом TDF.
const (
	// DateLayout — формат дат TDF: MM/DD/YYYY.
	DateLayout = "01/02/2006"
	// TimestampLayout — формат меток времени TDF: MM/DD/YYYY HH:MM:SS.
	TimestampLayout = "01/02/2006 15:04:05"
	// isoLayout — дата ISO-8601.
	isoLayout = "2006-01-02"
)

var datePattern = regexp.MustCompile(`^\d{2}/\d{2}/\d{4}$`)

// ValidDate сообщает, является ли s датой формата MM/DD/YYYY,
// существующей в календаре (02/30/2025 не проходит).
func ValidDate(s string) bool {
	if !datePattern.MatchString(s) {
		return false
	}
	_, err := time.Parse(DateLayout, s)
	return err == nil
}

// ParseDate разбирает дату формата TDF.
func ParseDate(s string) (time.Time, error) {
	if !datePattern.MatchString(s) {
		return time.Time{}, fmt.Errorf("date %q does not match MM/DD/YYYY", s)
	}
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse tdf date %q: %w", s, err)
	}
	return t, nil
}

// FormatDate форматирует время в дату формата TDF.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// ParseTimestamp разбирает метку времени формата TDF.
func ParseTimestamp(s string) (time.Time, error) {
	t, err := time.Parse(TimestampLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse tdf timestamp %q: %w", s, err)
	}
	return t, nil
}

// FormatTimestamp форматирует время в метку времени формата TDF.
func FormatTimestamp(t time.Time) string {
	return t.Format(TimestampLayout)
}

// ToISO переводит дату TDF в ISO-8601 (YYYY-MM-DD).
func ToISO(s string) (string, error) {
	t, err := ParseDate(s)
	if err != nil {
		return "", err
	}
	return t.Format(isoLayout), nil
}

// FromISO переводит дату ISO-8601 в формат TDF.
func FromISO(s string) (string, error) {
	t, err := time.Parse(isoLayout, s)
	if err != nil {
		return "", fmt.Errorf("parse iso date %q: %w", s, err)
	}
	return t.Format(DateLayout), nil
}
