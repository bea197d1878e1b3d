// Package locale holds the pt-BR text helpers shared by the intent matchers
// and the reply formatters.
package locale

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"
)

var tag = language.BrazilianPortuguese

// Fold normalizes user input for matching: NFC composition (so a typed
// "amanhã" with a combining tilde still matches) and pt-BR lower case.
func Fold(s string) string {
	return cases.Lower(tag).String(norm.NFC.String(s))
}

// Capitalize upper-cases the first letter and lower-cases the rest.
func Capitalize(s string) string {
	if s == "" {
		return s
	}
	_, size := utf8.DecodeRuneInString(s)
	return cases.Upper(tag).String(s[:size]) + cases.Lower(tag).String(s[size:])
}

// Title upper-cases the first letter of every word ("são paulo" -> "São Paulo").
func Title(s string) string {
	return cases.Title(tag).String(s)
}

var months = [...]string{
	"janeiro", "fevereiro", "março", "abril", "maio", "junho",
	"julho", "agosto", "setembro", "outubro", "novembro", "dezembro",
}

// Weekdays lists weekday names indexed by time.Weekday.
var Weekdays = [...]string{
	"domingo", "segunda-feira", "terça-feira", "quarta-feira",
	"quinta-feira", "sexta-feira", "sábado",
}

// WeekdayByName resolves a weekday name; the "-feira" suffix is optional.
func WeekdayByName(name string) (time.Weekday, bool) {
	name = strings.TrimSpace(Fold(name))
	for i, w := range Weekdays {
		if name == w || name == strings.TrimSuffix(w, "-feira") {
			return time.Weekday(i), true
		}
	}
	return 0, false
}

// LongDate formats t as "15 de outubro de 2026".
func LongDate(t time.Time) string {
	return fmt.Sprintf("%d de %s de %d", t.Day(), months[t.Month()-1], t.Year())
}

// ShortDate formats t as DD/MM/YYYY.
func ShortDate(t time.Time) string { return t.Format("02/01/2006") }

// Clock formats t as HH:MM.
func Clock(t time.Time) string { return t.Format("15:04") }
