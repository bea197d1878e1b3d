package intent

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	cases := []struct {
		text string
		kind Kind
		arg  string
	}{
		{"Criar lista de compras com leite e pão", List, ""},
		{"adicionar ovos à lista de compras", List, ""},
		{"Me lembre de pagar a conta amanhã às 8h", Reminder, ""},
		{"Notícias sobre inteligência artificial", News, "inteligência artificial"},
		{"resumir artigo sobre o espaço", News, "sobre o espaço"},
		{"Qual o tempo em São Paulo?", Weather, "são paulo"},
		{"tempo em", Weather, ""},
		{"Que dia é hoje?", Date, ""},
		{"qual a data de hoje", Date, ""},
		{"Que horas são?", Time, ""},
		{"Pesquisar por receita de bolo de chocolate", Search, "receita de bolo de chocolate"},
		{"procure por   ", Search, ""},
		{"Conte uma piada", Chat, "Conte uma piada"},
	}
	for _, tc := range cases {
		got := Classify(tc.text)
		assert.Equal(t, tc.kind, got.Kind, "%q classified as %s", tc.text, got.Kind)
		assert.Equal(t, tc.arg, got.Arg, "%q arg", tc.text)
		assert.Equal(t, tc.text, got.Text)
	}
}

func TestClassify_PrecedenceFirstMatchWins(t *testing.T) {
	// A list command mentioning the weather is still a list command.
	assert.Equal(t, List, Classify("criar lista de viagem com ver o tempo em lisboa e mala").Kind)
	// A reminder that mentions news stays a reminder.
	assert.Equal(t, Reminder, Classify("me lembre de ler notícias sobre go amanhã às 9h").Kind)
	// News outranks weather.
	assert.Equal(t, News, Classify("notícias sobre o tempo em recife").Kind)
	// Weather outranks date and search.
	assert.Equal(t, Weather, Classify("pesquisar por tempo em natal").Kind)
	// Date outranks time.
	assert.Equal(t, Date, Classify("que dia é hoje e que horas são").Kind)
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "weather", Weather.String())
	assert.Equal(t, "chat", Chat.String())
	assert.Equal(t, "unknown", Kind(99).String())
}

func TestRulesOrder(t *testing.T) {
	want := []Kind{List, Reminder, News, Weather, Date, Time, Search}
	got := make([]Kind, 0, len(Rules))
	for _, r := range Rules {
		got = append(got, r.Kind)
	}
	assert.Equal(t, want, got)
}
