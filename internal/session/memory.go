package session

import (
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/varsilias/crystal/internal/metrics"
	"github.com/varsilias/crystal/pkg/types"
)

var ErrEmptyID = errors.New("empty session id")

type Store interface {
	Get(sessionID string) (*Session, bool)
	Put(s *Session) error
	Delete(sessionID string)
	List() []Summary
}

type MemoryStore struct {
	mu   sync.RWMutex
	data map[string]*Session
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{data: make(map[string]*Session)}
}

func (s *MemoryStore) Get(sessionID string) (*Session, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sess, ok := s.data[sessionID]
	return sess, ok
}

func (s *MemoryStore) Put(sess *Session) error {
	if sess == nil || sess.ID == "" {
		return ErrEmptyID
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[sess.ID] = sess
	metrics.ActiveSessions.Set(float64(len(s.data)))
	return nil
}

func (s *MemoryStore) Delete(sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, sessionID)
	metrics.ActiveSessions.Set(float64(len(s.data)))
}

func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.data)
}

// Prune drops sessions idle for longer than maxIdle and reports how many
// went away.
func (s *MemoryStore) Prune(maxIdle time.Duration, now time.Time) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for id, sess := range s.data {
		if now.Sub(sess.Updated()) > maxIdle {
			delete(s.data, id)
			n++
		}
	}
	metrics.ActiveSessions.Set(float64(len(s.data)))
	return n
}

// Summary is a lightweight view for listings.
type Summary struct {
	ID      string    `json:"id"`
	Title   string    `json:"title"`
	Turns   int       `json:"turns"`
	Updated time.Time `json:"updated"`
}

func (s *MemoryStore) List() []Summary {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Summary, 0, len(s.data))
	for _, sess := range s.data {
		out = append(out, sess.Summary())
	}
	return out
}

func titleFrom(msgs []types.Message) string {
	for _, m := range msgs {
		if m.Role == types.RoleUser {
			return clip(words(m.Content), 24)
		}
	}
	return ""
}

func words(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return s
	}
	parts := strings.Fields(s)
	if len(parts) <= 12 {
		return strings.Join(parts, " ")
	}
	return strings.Join(parts[:12], " ")
}

func clip(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "…"
}
