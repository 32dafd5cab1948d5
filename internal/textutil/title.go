package textutil

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// TitleCase trims value, collapses runs of whitespace and capitalizes each
// word ("jane  DOE " becomes "Jane Doe").
func TitleCase(value string) string {
	fields := strings.Fields(value)
	if len(fields) == 0 {
		return ""
	}
	caser := cases.Title(language.Und)
	for i, f := range fields {
		fields[i] = caser.String(f)
	}
	return strings.Join(fields, " ")
}
