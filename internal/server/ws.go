package server

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/websocket"

	"agribot/internal/engine"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// wsRequest is the incoming WebSocket message format.
type wsRequest struct {
	UserID  string `json:"user_id"`
	Message string `json:"message"`
	Name    string `json:"user_name,omitempty"`
	Region  string `json:"region,omitempty"`
}

// wsError is the error frame sent for malformed or failed messages. The
// connection stays open afterwards.
type wsError struct {
	Type  string `json:"type"`
	Error string `json:"error"`
}

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.WithError(err).Warn("websocket upgrade failed")
		return
	}
	defer conn.Close()

	for {
		_, msg, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				s.log.WithError(err).Debug("websocket read failed")
			}
			return
		}

		var req wsRequest
		if err := json.Unmarshal(msg, &req); err != nil {
			s.sendWSError(conn, "invalid message format")
			continue
		}
		if req.UserID == "" {
			req.UserID = "anonymous"
		}

		result, err := s.engine.ProcessTurn(r.Context(), engineRequest(req))
		if err != nil {
			s.sendWSError(conn, err.Error())
			continue
		}
		if err := conn.WriteJSON(result); err != nil {
			s.log.WithError(err).Debug("websocket write failed")
			return
		}
	}
}

func engineRequest(req wsRequest) engine.TurnRequest {
	return engine.TurnRequest{
		UserID: req.UserID,
		Text:   req.Message,
		Name:   req.Name,
		Region: req.Region,
	}
}

func (s *Server) sendWSError(conn *websocket.Conn, msg string) {
	if err := conn.WriteJSON(wsError{Type: "error", Error: msg}); err != nil {
		s.log.WithError(err).Debug("websocket error frame failed")
	}
}
