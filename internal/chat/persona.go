package chat

import (
	"fmt"
	"time"

	"github.com/varsilias/crystal/internal/locale"
)

const Greeting = "Olá! Eu sou a Crystal, sua assistente pessoal. Estou aqui para ajudar. Como posso ser útil hoje?"

// Persona is the instruction that opens every model transcript. It pins the
// date and time the session started.
func Persona(now time.Time) string {
	return fmt.Sprintf("Você é a Crystal, uma assistente pessoal amigável, prestativa e inteligente. "+
		"Seu objetivo é ajudar o usuário com informações, pesquisas e tarefas diárias. "+
		"Responda de forma concisa e útil, mantendo um tom educado e acessível. "+
		"Quando não souber algo, admita e sugira uma busca na internet. "+
		"A data atual é %s. A hora atual é %s. Sua localização principal é o Brasil.",
		locale.LongDate(now), locale.Clock(now))
}

// Tips lists example utterances, one per capability.
var Tips = []Tip{
	{"Tempo", "Qual o tempo em São Paulo?"},
	{"Data", "Que dia é hoje?"},
	{"Hora", "Que horas são?"},
	{"Pesquisa na Internet", "Procure por receita de bolo de chocolate"},
	{"Criar Lista", "Criar lista de compras com leite e pão"},
	{"Adicionar à Lista", "Adicionar ovos à lista de compras"},
	{"Lembrete", "Me lembre de pegar o pão amanhã às 8 da manhã"},
	{"Notícias", "Notícias sobre inteligência artificial"},
	{"Perguntas Gerais", "Qualquer outra pergunta vai para o modelo de linguagem."},
}

type Tip struct {
	Topic   string `json:"topic"`
	Example string `json:"example"`
}
