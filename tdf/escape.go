package tdf

import "strings"

// Экранирование пяти зарезервированных символов XML для свободного текста
// (имена игроков, названия, организаторы). Генератор собирает документ
// текстом, поэтому экранирование выполняется явно.

var xmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&apos;",
)

var xmlUnescaper = strings.NewReplacer(
	"&amp;", "&",
	"&lt;", "<",
	"&gt;", ">",
	"&quot;", `"`,
	"&apos;", "'",
)

// EscapeText экранирует зарезервированные символы XML в s.
func EscapeText(s string) string {
	return xmlEscaper.Replace(s)
}

// UnescapeText выполняет обратную замену пяти стандартных сущностей.
// Replacer делает один проход слева направо, поэтому "&amp;lt;"
// корректно превращается в "&lt;".
func UnescapeText(s string) string {
	return xmlUnescaper.Replace(s)
}
