// Package reminder turns "me lembre de X amanhã às 10h" style commands into a
// concrete date and time. Nothing is stored; callers only get a confirmation.
package reminder

import (
	"regexp"
	"strings"
)

// Request holds the raw fields captured from an utterance.
type Request struct {
	Title    string
	Day      string // amanhã, hoje, a weekday name or "dia D/M[/Y]"
	Clock    string // "8", "8h" or "8:30"
	Meridiem string // am, pm, da manhã, da tarde, da noite; may be empty
}

var pattern = regexp.MustCompile(
	`(?:me lembre de|agendar|criar lembrete para) (.+?) ` +
		`(amanhã|hoje|segunda-feira|terça-feira|quarta-feira|quinta-feira|sexta-feira|sábado|domingo|dia \d{1,2}/\d{1,2}(?:/\d{4})?)` +
		` *(?:às|as)? *(\d{1,2}(?:h|:\d{2})?) *(da manhã|da tarde|da noite|pm|am)?`)

// Parse extracts a Request from folded (lower-cased) input.
func Parse(text string) (Request, bool) {
	m := pattern.FindStringSubmatch(text)
	if m == nil {
		return Request{}, false
	}
	return Request{
		Title:    strings.TrimSpace(m[1]),
		Day:      strings.TrimSpace(m[2]),
		Clock:    m[3],
		Meridiem: m[4],
	}, true
}

// Matches reports whether text looks like a reminder command.
func Matches(text string) bool { return pattern.MatchString(text) }
