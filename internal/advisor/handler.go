package advisor

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/agrimind/agri-ai-platform/internal/observability/metrics"
	"github.com/agrimind/agri-ai-platform/pkg/logging"
)

// Handler serves the chat API on top of a session registry.
type Handler struct {
	sessions *SessionManager
	metrics  *metrics.ChatMetrics
	logger   *logging.Logger
}

func NewHandler(sessions *SessionManager, m *metrics.ChatMetrics, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Default()
	}
	return &Handler{sessions: sessions, metrics: m, logger: logger}
}

type chatRequest struct {
	Message   string `json:"message"`
	SessionID string `json:"session_id"`
}

type chatEnvelope struct {
	ChatResponse
	SessionID string `json:"session_id"`
}

// Chat handles POST /api/chat.
func (h *Handler) Chat(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	// Reject blank messages before touching the registry so invalid
	// requests cannot grow it.
	if strings.TrimSpace(req.Message) == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "message cannot be empty"})
		return
	}

	eng, sessionID, created := h.sessions.Session(req.SessionID)
	if created {
		h.metrics.ObserveSession()
	}

	resp, err := eng.Chat(r.Context(), req.Message)
	if err != nil {
		if errors.Is(err, ErrEmptyMessage) {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "message cannot be empty"})
			return
		}
		h.logger.Error("chat failed", "session_id", sessionID, "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "chat failed"})
		return
	}

	h.metrics.ObserveMessage(resp.Intent)
	h.logger.Info("chat turn", "session_id", sessionID, "intent", resp.Intent)
	writeJSON(w, http.StatusOK, chatEnvelope{ChatResponse: resp, SessionID: sessionID})
}

// History handles GET /api/chat/history?session_id=.
func (h *Handler) History(w http.ResponseWriter, r *http.Request) {
	sessionID := r.URL.Query().Get("session_id")
	if sessionID == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "session_id is required"})
		return
	}

	eng, ok := h.sessions.Lookup(sessionID)
	if !ok {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "unknown session"})
		return
	}

	history := eng.History()
	writeJSON(w, http.StatusOK, map[string]any{
		"session_id": sessionID,
		"history":    history,
		"count":      len(history),
	})
}

type clearRequest struct {
	SessionID string `json:"session_id"`
}

// Clear handles POST /api/chat/clear.
func (h *Handler) Clear(w http.ResponseWriter, r *http.Request) {
	var req clearRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.SessionID == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "session_id is required"})
		return
	}

	if eng, ok := h.sessions.Lookup(req.SessionID); ok {
		eng.ClearHistory()
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Chat history cleared"})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		logging.Default().Error("failed to encode response", "error", err)
	}
}
