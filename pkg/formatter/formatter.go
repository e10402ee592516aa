package formatter

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"
)

var spanishMonths = [...]string{
	"enero", "febrero", "marzo", "abril", "mayo", "junio",
	"julio", "agosto", "septiembre", "octubre", "noviembre", "diciembre",
}

// VenezuelaTime is UTC-4, used when the tz database is unavailable.
var VenezuelaTime = time.FixedZone("VET", -4*60*60)

// LoadLocation resolves the named time zone. On failure it returns
// VenezuelaTime together with the error.
func LoadLocation(name string) (*time.Location, error) {
	loc, err := time.LoadLocation(name)
	if err != nil {
		return VenezuelaTime, err
	}
	return loc, nil
}

// LongDateES formats t as a long Spanish date in loc.
// Example: 2025-03-04 -> "4 de marzo de 2025"
func LongDateES(t time.Time, loc *time.Location) string {
	if loc != nil {
		t = t.In(loc)
	}
	return fmt.Sprintf("%d de %s de %d", t.Day(), spanishMonths[t.Month()-1], t.Year())
}

// Truncate returns s unchanged when it has at most max runes, otherwise its
// first max runes followed by marker.
func Truncate(s string, max int, marker string) string {
	if utf8.RuneCountInString(s) <= max {
		return s
	}
	n := 0
	for i := range s {
		if n == max {
			return s[:i] + marker
		}
		n++
	}
	return s
}

// EscapeMarkdownV2 escapes special characters in Telegram Markdown V2 format
func EscapeMarkdownV2(s string) string {
	var sb strings.Builder
	for _, r := range s {
		switch r {
		case '_', '*', '[', ']', '(', ')', '~', '`', '>', '#', '+', '-', '=', '|', '{', '}', '.', '!', '\\':
			sb.WriteRune('\\')
			sb.WriteRune(r)
		default:
			sb.WriteRune(r)
		}
	}
	return sb.String()
}
