package search

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/varsilias/crystal/internal/logging"
)

func newTestClient(t *testing.T, h http.HandlerFunc, timeout time.Duration) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return NewClient(srv.URL, "key", "cx", timeout, logging.Discard())
}

func TestSearch_Items(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		assert.Equal(t, "key", q.Get("key"))
		assert.Equal(t, "cx", q.Get("cx"))
		assert.Equal(t, "receita de bolo", q.Get("q"))
		_, _ = w.Write([]byte(`{"items":[{"title":"Bolo","link":"https://ex.com/bolo","snippet":"Fácil","mime":"text/html"}]}`))
	}, time.Second)

	items, err := c.Search(context.Background(), "receita de bolo")
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, Item{Title: "Bolo", Link: "https://ex.com/bolo", Snippet: "Fácil", Mime: "text/html"}, items[0])
}

func TestAnswer(t *testing.T) {
	c := newTestClient(t, body(`{"items":[{"title":"Go","link":"https://go.dev","snippet":"The Go language"},{"title":"other"}]}`), time.Second)
	assert.Equal(t, "Encontrei: **Go** - The Go language ([Link](https://go.dev))", c.Answer(context.Background(), "golang"))

	c = newTestClient(t, body(`{"items":[{"link":"https://x.y"}]}`), time.Second)
	assert.Equal(t, "Encontrei: **Sem título** - Sem descrição ([Link](https://x.y))", c.Answer(context.Background(), "x"))

	c = newTestClient(t, body(`{"kind":"customsearch#search"}`), time.Second)
	assert.Equal(t, MsgNoResults, c.Answer(context.Background(), "nada"))

	assert.Equal(t, MsgMissingQuery, c.Answer(context.Background(), ""))
}

func TestAnswer_Failures(t *testing.T) {
	cases := []struct {
		name string
		h    http.HandlerFunc
		want string
	}{
		{"bad request", status(http.StatusBadRequest), MsgBadRequest},
		{"forbidden", status(http.StatusForbidden), MsgForbidden},
		{"server error", status(http.StatusInternalServerError), "Erro HTTP ao realizar a busca: 500 - Internal Server Error"},
		{"malformed body", body(`[not json`), MsgDecode},
		{"body forbidden", body(`{"error":{"code":403,"message":"denied"}}`), MsgForbidden},
		{"body error", body(`{"error":{"code":429,"message":"quota"}}`), "Erro da API de busca: quota (Código: 429)"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c := newTestClient(t, tc.h, time.Second)
			assert.Equal(t, tc.want, c.Answer(context.Background(), "go"))
		})
	}
}

func TestAnswer_Timeout(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}, 50*time.Millisecond)

	assert.Equal(t, MsgTimeout, c.Answer(context.Background(), "go"))
}

func TestSearch_NoCredentials(t *testing.T) {
	c := NewClient("", "key", "", time.Second, logging.Discard())
	_, err := c.Search(context.Background(), "go")
	assert.ErrorIs(t, err, ErrNoAPIKey)
	assert.Equal(t, MsgNoAPIKey, c.Answer(context.Background(), "go"))
}

func status(code int) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(code) }
}

func body(s string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) { _, _ = w.Write([]byte(s)) }
}
