package news

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/varsilias/crystal/internal/logging"
	"github.com/varsilias/crystal/internal/search"
	"github.com/varsilias/crystal/internal/upstream"
)

type fakeSearcher struct {
	items []search.Item
	err   error
	got   string
}

func (f *fakeSearcher) Search(_ context.Context, q string) ([]search.Item, error) {
	f.got = q
	return f.items, f.err
}

func TestSummary_FirstHTMLArticle(t *testing.T) {
	fs := &fakeSearcher{items: []search.Item{
		{Title: "Relatório", Link: "https://ex.com/r.pdf", Mime: "application/pdf"},
		{Title: "IA avança", Link: "https://ex.com/ia"},
	}}
	got := NewSummarizer(fs, logging.Discard()).Summary(context.Background(), "inteligência artificial")

	assert.Equal(t, "inteligência artificial", fs.got)
	assert.Equal(t, "Encontrei notícias sobre 'inteligência artificial'. O primeiro resultado é: 'IA avança' ([Link](https://ex.com/ia)). "+
		"Se eu pudesse acessar o conteúdo, faria um resumo para você! (Simulado)", got)
}

func TestSummary_NoHTML(t *testing.T) {
	fs := &fakeSearcher{items: []search.Item{{Title: "a", Link: "https://ex.com/a.pdf", Mime: "application/pdf"}, {Title: "b"}}}
	assert.Equal(t, MsgNoHTMLLink, NewSummarizer(fs, logging.Discard()).Summary(context.Background(), "x"))
}

func TestSummary_NoResults(t *testing.T) {
	got := NewSummarizer(&fakeSearcher{}, logging.Discard()).Summary(context.Background(), "marte")
	assert.Equal(t, "Não encontrei notícias ou artigos sobre 'marte'. Tente um termo diferente.", got)
}

func TestSummary_SearchErrorIsApologized(t *testing.T) {
	fs := &fakeSearcher{err: upstream.Transport(context.DeadlineExceeded)}
	assert.Equal(t, search.MsgTimeout, NewSummarizer(fs, logging.Discard()).Summary(context.Background(), "x"))
}

func TestSummary_MissingTopic(t *testing.T) {
	fs := &fakeSearcher{}
	assert.Equal(t, MsgMissingTopic, NewSummarizer(fs, logging.Discard()).Summary(context.Background(), ""))
	assert.Empty(t, fs.got)
}
