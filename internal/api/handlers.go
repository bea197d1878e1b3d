package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/varsilias/crystal/internal/buildinfo"
	"github.com/varsilias/crystal/internal/chat"
	"github.com/varsilias/crystal/internal/render"
	"github.com/varsilias/crystal/pkg/types"
	"github.com/varsilias/crystal/pkg/utils"
)

const maxBody = 64 << 10

type Handlers struct {
	log  *slog.Logger
	chat *chat.Controller
	md   *render.Renderer
}

func NewHandlers(log *slog.Logger, chatCtrl *chat.Controller, md *render.Renderer) *Handlers {
	return &Handlers{log: log, chat: chatCtrl, md: md}
}

// Health is a basic liveness endpoint.
func (h *Handlers) Health(w http.ResponseWriter, r *http.Request) {
	utils.JSON(w, http.StatusOK, map[string]any{
		"status":    true,
		"message":   "crystal",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

func (h *Handlers) Version(w http.ResponseWriter, r *http.Request) {
	utils.JSON(w, http.StatusOK, map[string]any{
		"version":  buildinfo.Version,
		"commit":   buildinfo.Commit,
		"built_at": buildinfo.BuiltAt,
	})
}

// Tips GET /api/tips
func (h *Handlers) Tips(w http.ResponseWriter, r *http.Request) {
	utils.JSON(w, http.StatusOK, map[string]any{"tips": chat.Tips})
}

// NewSession POST /api/sessions
func (h *Handlers) NewSession(w http.ResponseWriter, r *http.Request) {
	sess, err := h.chat.NewSession()
	if err != nil {
		h.log.Error("new session", "err", err)
		utils.Error(w, http.StatusInternalServerError, "could not start session")
		return
	}
	utils.JSON(w, http.StatusCreated, map[string]any{
		"session_id": sess.ID,
		"greeting":   chat.Greeting,
	})
}

// ListSessions GET /api/sessions, most recently active first.
func (h *Handlers) ListSessions(w http.ResponseWriter, r *http.Request) {
	list := h.chat.Sessions()
	sort.SliceStable(list, func(i, j int) bool { return list[i].Updated.After(list[j].Updated) })
	utils.JSON(w, http.StatusOK, map[string]any{"sessions": list})
}

// EndSession DELETE /api/sessions/{sessionID}
func (h *Handlers) EndSession(w http.ResponseWriter, r *http.Request) {
	h.chat.EndSession(chi.URLParam(r, "sessionID"))
	w.WriteHeader(http.StatusNoContent)
}

// Chat POST /api/chat {session_id?, message}. A missing session_id starts a
// new session.
func (h *Handlers) Chat(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Message   string `json:"message"`
		SessionID string `json:"session_id"`
	}
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBody)).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "invalid json")
		return
	}

	if strings.TrimSpace(req.Message) == "" {
		utils.Error(w, http.StatusBadRequest, "message is required")
		return
	}

	if req.SessionID == "" {
		sess, err := h.chat.NewSession()
		if err != nil {
			h.log.Error("new session", "err", err)
			utils.Error(w, http.StatusInternalServerError, "could not start session")
			return
		}
		req.SessionID = sess.ID
	}

	reply, err := h.chat.Respond(r.Context(), req.SessionID, req.Message)
	switch {
	case errors.Is(err, chat.ErrEmptyMessage):
		utils.Error(w, http.StatusBadRequest, "message is required")
		return
	case errors.Is(err, chat.ErrSessionNotFound):
		utils.Error(w, http.StatusNotFound, "unknown session_id")
		return
	case err != nil:
		h.log.Error("chat", "session", req.SessionID, "err", err)
		utils.Error(w, http.StatusInternalServerError, "chat failed")
		return
	}

	utils.JSON(w, http.StatusOK, map[string]any{
		"session_id": reply.SessionID,
		"intent":     reply.Intent.String(),
		"response":   reply.Message.Content,
		"html":       h.md.HTML(reply.Message.Content),
		"timestamp":  reply.Message.Timestamp.UTC().Format(time.RFC3339),
		"latency_ms": reply.Latency.Milliseconds(),
	})
}

type historyEntry struct {
	Role      types.Role `json:"role"`
	Content   string     `json:"content"`
	HTML      string     `json:"html"`
	Timestamp string     `json:"timestamp"`
}

// GetHistory GET /api/history/{sessionID}
func (h *Handlers) GetHistory(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")
	history, err := h.chat.History(sessionID)
	if err != nil {
		utils.Error(w, http.StatusNotFound, "unknown session_id")
		return
	}

	out := make([]historyEntry, 0, len(history))
	for _, m := range history {
		out = append(out, historyEntry{
			Role:      m.Role,
			Content:   m.Content,
			HTML:      string(h.md.HTML(m.Content)),
			Timestamp: m.Timestamp.UTC().Format(time.RFC3339),
		})
	}
	utils.JSON(w, http.StatusOK, map[string]any{"session_id": sessionID, "history": out})
}
