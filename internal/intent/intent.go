// Package intent classifies an utterance into exactly one Kind. Rules are
// tried in order and the first match wins; anything unmatched is Chat.
package intent

import (
	"strings"

	"github.com/varsilias/crystal/internal/lists"
	"github.com/varsilias/crystal/internal/locale"
	"github.com/varsilias/crystal/internal/reminder"
)

type Kind int

const (
	Chat Kind = iota
	List
	Reminder
	News
	Weather
	Date
	Time
	Search
)

var kindNames = map[Kind]string{
	Chat:     "chat",
	List:     "list",
	Reminder: "reminder",
	News:     "news",
	Weather:  "weather",
	Date:     "date",
	Time:     "time",
	Search:   "search",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return "unknown"
}

// Intent is the tagged result of classification.
type Intent struct {
	Kind Kind
	// Text is the utterance as typed; Folded is the normalized form the
	// rules matched against.
	Text   string
	Folded string
	// Arg is the city, query or topic extracted by the rule; empty when the
	// trigger phrase came without one.
	Arg string
}

// Rule pairs a Kind with its predicate. Match receives folded text.
type Rule struct {
	Kind  Kind
	Match func(folded string) (arg string, ok bool)
}

var (
	newsTriggers   = []string{"notícias sobre", "resumo de artigo sobre", "resumir artigo"}
	searchTriggers = []string{"pesquisar por", "pesquise por", "procure por"}
)

// Rules in precedence order.
var Rules = []Rule{
	{List, whole(lists.Matches)},
	{Reminder, whole(reminder.Matches)},
	{News, stripTriggers(newsTriggers)},
	{Weather, afterLast("tempo em")},
	{Date, whole(containsAny("que dia é hoje", "data de hoje"))},
	{Time, whole(containsAny("que horas são"))},
	{Search, stripTriggers(searchTriggers)},
}

// Classify runs the rule table against text.
func Classify(text string) Intent {
	folded := locale.Fold(text)
	for _, r := range Rules {
		if arg, ok := r.Match(folded); ok {
			return Intent{Kind: r.Kind, Text: text, Folded: folded, Arg: arg}
		}
	}
	return Intent{Kind: Chat, Text: text, Folded: folded, Arg: text}
}

func whole(pred func(string) bool) func(string) (string, bool) {
	return func(s string) (string, bool) { return "", pred(s) }
}

func containsAny(subs ...string) func(string) bool {
	return func(s string) bool {
		for _, sub := range subs {
			if strings.Contains(s, sub) {
				return true
			}
		}
		return false
	}
}

// stripTriggers matches when any trigger is present and removes every
// trigger occurrence to leave the argument.
func stripTriggers(triggers []string) func(string) (string, bool) {
	has := containsAny(triggers...)
	return func(s string) (string, bool) {
		if !has(s) {
			return "", false
		}
		for _, t := range triggers {
			s = strings.ReplaceAll(s, t, "")
		}
		return cleanArg(s), true
	}
}

func afterLast(trigger string) func(string) (string, bool) {
	return func(s string) (string, bool) {
		i := strings.LastIndex(s, trigger)
		if i < 0 {
			return "", false
		}
		return cleanArg(s[i+len(trigger):]), true
	}
}

func cleanArg(s string) string {
	return strings.TrimSpace(strings.TrimRight(strings.TrimSpace(s), "?!."))
}
