package advisor

import (
	"net/http"
	"strings"

	"golang.org/x/net/websocket"
)

// InboundMessage is what a live chat client sends.
type InboundMessage struct {
	Type string `json:"type"` // "message", "ping"
	Text string `json:"text"`
}

// OutboundMessage is what the server sends back.
type OutboundMessage struct {
	Type       string        `json:"type"` // "message", "session", "history", "pong", "error"
	Text       string        `json:"text,omitempty"`
	Intent     string        `json:"intent,omitempty"`
	Confidence float64       `json:"confidence,omitempty"`
	SessionID  string        `json:"session_id,omitempty"`
	Timestamp  string        `json:"timestamp,omitempty"`
	Messages   []ChatMessage `json:"messages,omitempty"`
}

// HandleWebSocket upgrades to WebSocket and runs a live advisory chat over
// the same session registry the REST endpoints use.
func (h *Handler) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	websocket.Handler(func(conn *websocket.Conn) {
		h.serveWS(conn, r)
	}).ServeHTTP(w, r)
}

func (h *Handler) serveWS(conn *websocket.Conn, r *http.Request) {
	eng, sessionID, created := h.sessions.Session(r.URL.Query().Get("session"))
	if created {
		h.metrics.ObserveSession()
	}

	_ = websocket.JSON.Send(conn, OutboundMessage{Type: "session", SessionID: sessionID})

	// Replay the transcript so a reconnecting client catches up.
	if history := eng.History(); len(history) > 0 {
		_ = websocket.JSON.Send(conn, OutboundMessage{Type: "history", Messages: history})
	}

	h.logger.Info("webchat: connection opened", "session_id", sessionID)

	for {
		var msg InboundMessage
		if err := websocket.JSON.Receive(conn, &msg); err != nil {
			h.logger.Debug("webchat: connection closed", "session_id", sessionID, "error", err)
			return
		}

		if msg.Type == "ping" {
			_ = websocket.JSON.Send(conn, OutboundMessage{Type: "pong"})
			continue
		}

		if msg.Type != "message" || strings.TrimSpace(msg.Text) == "" {
			continue
		}

		resp, err := eng.Chat(r.Context(), msg.Text)
		if err != nil {
			_ = websocket.JSON.Send(conn, OutboundMessage{
				Type: "error",
				Text: "Sorry, something went wrong. Please try again.",
			})
			continue
		}

		h.metrics.ObserveMessage(resp.Intent)
		_ = websocket.JSON.Send(conn, OutboundMessage{
			Type:       "message",
			Text:       resp.Response,
			Intent:     resp.Intent,
			Confidence: resp.Confidence,
			Timestamp:  resp.Timestamp,
		})
	}
}
