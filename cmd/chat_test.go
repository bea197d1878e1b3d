package cmd

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/varsilias/crystal/internal/chat"
	"github.com/varsilias/crystal/internal/config"
	"github.com/varsilias/crystal/internal/logging"
	"github.com/varsilias/crystal/internal/session"
	"github.com/varsilias/crystal/pkg/types"
)

type canned string

func (c canned) Reply(context.Context, string, []types.Turn) string { return string(c) }
func (c canned) Report(context.Context, string) string               { return string(c) }
func (c canned) Answer(context.Context, string) string               { return string(c) }
func (c canned) Summary(context.Context, string) string              { return string(c) }

func newREPL(input string) (*repl, *bytes.Buffer, *session.MemoryStore) {
	brt := time.FixedZone("BRT", -3*3600)
	store := session.NewMemoryStore()
	ctrl := chat.NewController(chat.Deps{
		Log:      logging.Discard(),
		Store:    store,
		Engine:   canned("Sou a Crystal."),
		Weather:  canned("Ensolarado."),
		Search:   canned("Encontrei."),
		News:     canned("Notícias."),
		Location: brt,
		Clock:    func() time.Time { return time.Date(2026, time.October, 15, 21, 5, 0, 0, brt) },
	})
	var out bytes.Buffer
	return &repl{chat: ctrl, in: strings.NewReader(input), out: &out, render: plain}, &out, store
}

func TestREPL_Conversation(t *testing.T) {
	r, out, store := newREPL("que horas são\n\nquem é você?\nSAIR\nnão chega aqui\n")

	require.NoError(t, r.run(context.Background()))
	text := out.String()
	assert.Contains(t, text, chat.Greeting)
	assert.Contains(t, text, "São 21:05.")
	assert.Contains(t, text, "Sou a Crystal.")
	assert.Contains(t, text, "Até logo!")
	assert.NotContains(t, text, "Notícias.")
	assert.Zero(t, store.Len(), "session ends with the REPL")
}

func TestREPL_TipsAndEOF(t *testing.T) {
	r, out, _ := newREPL("ajuda")

	require.NoError(t, r.run(context.Background()))
	assert.Contains(t, out.String(), "Qual o tempo em São Paulo?")
}

func TestVersionCmd(t *testing.T) {
	var out bytes.Buffer
	c := newVersionCmd("1.2.3", "abc", "today")
	c.SetOut(&out)
	c.SetArgs([]string{})
	require.NoError(t, c.Execute())
	assert.Equal(t, "crystal version 1.2.3 (commit: abc, built: today)\n", out.String())
}

func TestRootCmd_FlagsReachViper(t *testing.T) {
	v := config.New()
	root, err := newRootCmd(v, "dev", "none", "unknown")
	require.NoError(t, err)

	require.NoError(t, root.PersistentFlags().Set(config.KeyTimezone, "America/Manaus"))
	assert.Equal(t, "America/Manaus", v.GetString(config.KeyTimezone))
	assert.Equal(t, "8080", v.GetString(config.KeyAddr))
}
