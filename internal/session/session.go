// Package session keeps the two transcripts of every conversation: the
// display transcript shown to the user and the model transcript replayed to
// the chat model.
package session

import (
	"sync"
	"time"

	"github.com/varsilias/crystal/pkg/types"
)

// Session is safe for concurrent use. Turns on one session run one at a time.
type Session struct {
	ID string

	turn sync.Mutex // held for a whole Exchange

	mu      sync.RWMutex
	display []types.Message
	model   []types.Turn
	created time.Time
	updated time.Time
}

// New seeds a session: the model transcript opens with the persona
// instruction and the greeting, the display transcript with the greeting.
func New(id, persona, greeting string, now time.Time) *Session {
	return &Session{
		ID:      id,
		display: []types.Message{{Role: types.RoleAssistant, Content: greeting, Timestamp: now}},
		model:   []types.Turn{types.UserTurn(persona), types.ModelTurn(greeting)},
		created: now,
		updated: now,
	}
}

// Exchange runs one turn. respond gets the model transcript as it stood
// before this utterance; afterwards exactly one user and one assistant entry
// are appended to each transcript.
func (s *Session) Exchange(utterance string, clock func() time.Time, respond func(history []types.Turn) string) types.Message {
	s.turn.Lock()
	defer s.turn.Unlock()

	asked := clock()
	reply := respond(s.Model())
	answered := clock()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.display = append(s.display,
		types.Message{Role: types.RoleUser, Content: utterance, Timestamp: asked},
		types.Message{Role: types.RoleAssistant, Content: reply, Timestamp: answered},
	)
	s.model = append(s.model, types.UserTurn(utterance), types.ModelTurn(reply))
	s.updated = answered
	return s.display[len(s.display)-1]
}

// Display returns a copy of the display transcript.
func (s *Session) Display() []types.Message {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]types.Message, len(s.display))
	copy(out, s.display)
	return out
}

// Model returns a copy of the model transcript.
func (s *Session) Model() []types.Turn {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]types.Turn, len(s.model))
	copy(out, s.model)
	return out
}

func (s *Session) Updated() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.updated
}

func (s *Session) Summary() Summary {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Summary{
		ID:      s.ID,
		Title:   titleFrom(s.display),
		Turns:   (len(s.display) - 1) / 2,
		Updated: s.updated,
	}
}
