package session

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/varsilias/crystal/internal/logging"
	"github.com/varsilias/crystal/pkg/types"
)

var t0 = time.Date(2026, time.October, 15, 10, 0, 0, 0, time.UTC)

func fixedClock(t time.Time) func() time.Time { return func() time.Time { return t } }

func TestNew_Seeds(t *testing.T) {
	s := New("abc", "persona", "oi!", t0)

	assert.Equal(t, []types.Turn{types.UserTurn("persona"), types.ModelTurn("oi!")}, s.Model())
	require.Len(t, s.Display(), 1)
	assert.Equal(t, types.RoleAssistant, s.Display()[0].Role)
	assert.Equal(t, "oi!", s.Display()[0].Content)
}

func TestExchange_KeepsTranscriptsInLockStep(t *testing.T) {
	s := New("abc", "persona", "oi!", t0)

	var seen []types.Turn
	reply := s.Exchange("que horas são", fixedClock(t0), func(history []types.Turn) string {
		seen = history
		return "São 10:00."
	})

	assert.Equal(t, "São 10:00.", reply.Content)
	assert.Equal(t, []types.Turn{types.UserTurn("persona"), types.ModelTurn("oi!")}, seen, "history excludes the pending utterance")

	s.Exchange("obrigado", fixedClock(t0), func([]types.Turn) string { return "De nada!" })

	model := s.Model()
	display := s.Display()
	require.Len(t, model, 6)
	require.Len(t, display, 5)
	assert.Equal(t, []types.Turn{
		types.UserTurn("persona"), types.ModelTurn("oi!"),
		types.UserTurn("que horas são"), types.ModelTurn("São 10:00."),
		types.UserTurn("obrigado"), types.ModelTurn("De nada!"),
	}, model)
	for i, m := range display[1:] {
		assert.Equal(t, model[i+2].Text, m.Content)
	}
	assert.Equal(t, 2, s.Summary().Turns)
	assert.Equal(t, "que horas são", s.Summary().Title)
}

func TestExchange_SerializesTurns(t *testing.T) {
	s := New("abc", "p", "g", t0)
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.Exchange("u", time.Now, func(h []types.Turn) string { return "r" })
		}()
	}
	wg.Wait()

	model := s.Model()
	require.Len(t, model, 2+40)
	for i := 2; i < len(model); i += 2 {
		assert.Equal(t, types.RoleUser, model[i].Role)
		assert.Equal(t, types.RoleModel, model[i+1].Role)
	}
}

func TestMemoryStore_PutGetPrune(t *testing.T) {
	store := NewMemoryStore()
	require.ErrorIs(t, store.Put(&Session{}), ErrEmptyID)

	old := New("old", "p", "g", t0)
	fresh := New("fresh", "p", "g", t0.Add(time.Hour))
	require.NoError(t, store.Put(old))
	require.NoError(t, store.Put(fresh))

	got, ok := store.Get("old")
	require.True(t, ok)
	assert.Same(t, old, got)
	assert.Len(t, store.List(), 2)

	assert.Equal(t, 1, store.Prune(90*time.Minute, t0.Add(2*time.Hour)))
	_, ok = store.Get("old")
	assert.False(t, ok)
	assert.Equal(t, 1, store.Len())

	store.Delete("fresh")
	assert.Zero(t, store.Len())
}

func TestJanitor(t *testing.T) {
	store := NewMemoryStore()
	require.NoError(t, store.Put(New("stale", "p", "g", time.Now().Add(-3*time.Hour))))
	require.NoError(t, store.Put(New("live", "p", "g", time.Now())))

	j, err := NewJanitor(store, "@every 1h", 2*time.Hour, logging.Discard())
	require.NoError(t, err)
	j.Sweep()
	assert.Equal(t, 1, store.Len())

	j.Start()
	j.Stop()

	_, err = NewJanitor(store, "not a schedule", time.Hour, logging.Discard())
	assert.Error(t, err)
}

func TestClip(t *testing.T) {
	assert.Equal(t, "ação", clip("ação", 4))
	assert.Equal(t, "açã…", clip("ação!", 3))
}
