package project

import "strings"

var xmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	"'", "&apos;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
)

// Escape replaces the five XML special characters with entities.
func Escape(s string) string {
	return xmlEscaper.Replace(s)
}
