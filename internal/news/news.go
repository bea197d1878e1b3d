// Package news answers "notícias sobre X" with the first article found by web
// search. Fetching and summarizing the article itself is simulated.
package news

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/varsilias/crystal/internal/search"
)

const (
	MsgMissingTopic = "Por favor, especifique sobre o que você quer notícias ou qual artigo resumir."
	MsgNoHTMLLink   = "Não consegui encontrar um link de artigo HTML válido para resumir."
)

type Searcher interface {
	Search(ctx context.Context, query string) ([]search.Item, error)
}

type Summarizer struct {
	search Searcher
	log    *slog.Logger
}

func NewSummarizer(s Searcher, log *slog.Logger) *Summarizer {
	return &Summarizer{search: s, log: log}
}

func (n *Summarizer) Summary(ctx context.Context, topic string) string {
	if topic == "" {
		return MsgMissingTopic
	}
	items, err := n.search.Search(ctx, topic)
	if err != nil {
		n.log.Warn("news search failed", "topic", topic, "err", err)
		return search.Apology(err)
	}
	if len(items) == 0 {
		return fmt.Sprintf("Não encontrei notícias ou artigos sobre '%s'. Tente um termo diferente.", topic)
	}
	article, ok := firstArticle(items)
	if !ok {
		return MsgNoHTMLLink
	}
	title := article.Title
	if title == "" {
		title = "Sem título"
	}
	return fmt.Sprintf("Encontrei notícias sobre '%s'. O primeiro resultado é: '%s' ([Link](%s)). "+
		"Se eu pudesse acessar o conteúdo, faria um resumo para você! (Simulado)", topic, title, article.Link)
}

// firstArticle picks the first result that is a web page. Custom Search only
// sets mime for non-HTML documents, so an empty mime counts as HTML.
func firstArticle(items []search.Item) (search.Item, bool) {
	for _, it := range items {
		if it.Link == "" {
			continue
		}
		if it.Mime == "" || strings.Contains(it.Mime, "text/html") {
			return it, true
		}
	}
	return search.Item{}, false
}
