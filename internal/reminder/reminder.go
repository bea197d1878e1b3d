package reminder

import (
	"errors"
	"fmt"
	"time"

	"github.com/varsilias/crystal/internal/locale"
)

const (
	MsgInPast  = "Desculpe, não consigo criar lembretes para o passado. Por favor, especifique uma data e/ou hora futura."
	MsgInvalid = "Não entendi a data ou hora do lembrete. Por favor, especifique de forma mais clara (ex: 'amanhã às 10h', 'dia 25/12 às 14:30')."
)

// Confirm renders the simulated confirmation for a resolved reminder.
func Confirm(title string, r Resolved) string {
	suffix := ""
	if r.Meridiem != MeridiemNone {
		suffix = fmt.Sprintf(" (%s)", r.Meridiem)
	}
	return fmt.Sprintf("Lembrete criado: '%s' para %s às %s%s. (Simulado)",
		locale.Capitalize(title), locale.ShortDate(r.At), r.At.Format("15:04:05"), suffix)
}

// Reply parses text as a reminder command and answers it. ok is false when
// text is not a reminder command at all.
func Reply(now time.Time, text string) (reply string, ok bool) {
	req, ok := Parse(text)
	if !ok {
		return "", false
	}
	res, err := Resolve(now, req)
	switch {
	case errors.Is(err, ErrInPast):
		return MsgInPast, true
	case err != nil:
		return MsgInvalid, true
	}
	return Confirm(req.Title, res), true
}
