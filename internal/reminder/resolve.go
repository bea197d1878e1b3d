package reminder

import (
	"errors"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/varsilias/crystal/internal/locale"
)

var (
	ErrInPast  = errors.New("reminder: time is in the past")
	ErrInvalid = errors.New("reminder: unrecognized date or time")
)

type Meridiem int

const (
	MeridiemNone Meridiem = iota
	MeridiemAM
	MeridiemPM
)

func (m Meridiem) String() string {
	switch m {
	case MeridiemAM:
		return "AM"
	case MeridiemPM:
		return "PM"
	default:
		return ""
	}
}

func meridiemOf(marker string) Meridiem {
	switch strings.TrimSpace(marker) {
	case "am", "da manhã":
		return MeridiemAM
	case "pm", "da tarde", "da noite":
		return MeridiemPM
	default:
		return MeridiemNone
	}
}

// Resolved is a reminder pinned to a wall-clock instant in now's location.
type Resolved struct {
	At time.Time
	// Meridiem is set when the marker was explicit or the afternoon
	// heuristic kicked in.
	Meridiem Meridiem
}

var dayLiteral = regexp.MustCompile(`^dia (\d{1,2})/(\d{1,2})(?:/(\d{4}))?$`)

// Resolve pins req to a concrete instant relative to now. It never reads the
// system clock.
//
// Without an explicit marker, an hour that already passed today and is <= 12 is
// read as afternoon, so "hoje às 3h" at 14:00 means 15:00. The result is
// rejected with ErrInPast when it still precedes now.
func Resolve(now time.Time, req Request) (Resolved, error) {
	hour, minute, err := parseClock(req.Clock)
	if err != nil {
		return Resolved{}, err
	}

	mer := meridiemOf(req.Meridiem)
	switch {
	case mer == MeridiemPM && hour < 12:
		hour += 12
	case mer == MeridiemAM && hour == 12:
		hour = 0
	}

	today := midnight(now)
	date, err := resolveDay(now, today, req.Day, hour, minute)
	if err != nil {
		return Resolved{}, err
	}

	if mer == MeridiemNone && date.Equal(today) && hour < now.Hour() && hour <= 12 {
		hour += 12
		mer = MeridiemPM
	}
	if hour > 23 {
		return Resolved{}, ErrInvalid
	}

	at := time.Date(date.Year(), date.Month(), date.Day(), hour, minute, 0, 0, now.Location())
	if at.Before(now) {
		return Resolved{}, ErrInPast
	}
	return Resolved{At: at, Meridiem: mer}, nil
}

// parseClock accepts "8", "8h" and "8:30".
func parseClock(s string) (int, int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, 0, ErrInvalid
	}
	s = strings.TrimSuffix(s, "h")
	hs, ms, found := strings.Cut(s, ":")
	hour, err := strconv.Atoi(hs)
	if err != nil {
		return 0, 0, ErrInvalid
	}
	minute := 0
	if found {
		if minute, err = strconv.Atoi(ms); err != nil {
			return 0, 0, ErrInvalid
		}
	}
	if hour > 23 || minute > 59 {
		return 0, 0, ErrInvalid
	}
	return hour, minute, nil
}

func resolveDay(now, today time.Time, day string, hour, minute int) (time.Time, error) {
	switch {
	case strings.Contains(day, "amanhã"):
		return today.AddDate(0, 0, 1), nil
	case strings.Contains(day, "hoje"):
		return today, nil
	case strings.HasPrefix(day, "dia "):
		return resolveDayLiteral(today, day)
	}

	target, ok := locale.WeekdayByName(day)
	if !ok {
		return time.Time{}, ErrInvalid
	}
	diff := (int(target) - int(today.Weekday()) + 7) % 7
	if diff == 0 {
		at := time.Date(today.Year(), today.Month(), today.Day(), hour, minute, 0, 0, today.Location())
		if !at.After(now) {
			diff = 7
		}
	}
	return today.AddDate(0, 0, diff), nil
}

func resolveDayLiteral(today time.Time, day string) (time.Time, error) {
	m := dayLiteral.FindStringSubmatch(day)
	if m == nil {
		return time.Time{}, ErrInvalid
	}
	d, _ := strconv.Atoi(m[1])
	mo, _ := strconv.Atoi(m[2])
	year := today.Year()
	if m[3] != "" {
		year, _ = strconv.Atoi(m[3])
	}

	date, ok := civilDate(year, mo, d, today.Location())
	if !ok {
		return time.Time{}, ErrInvalid
	}
	// A past date, with or without a year, moves to next year.
	if date.Before(today) {
		if date, ok = civilDate(today.Year()+1, mo, d, today.Location()); !ok {
			return time.Time{}, ErrInvalid
		}
	}
	return date, nil
}

// civilDate rejects dates time.Date would silently normalize, like 31/02.
func civilDate(year, month, day int, loc *time.Location) (time.Time, bool) {
	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, loc)
	if t.Year() != year || int(t.Month()) != month || t.Day() != day {
		return time.Time{}, false
	}
	return t, true
}

func midnight(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
