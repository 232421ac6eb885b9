package engine

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
)

// HTMLRenderer converts a markdown reply to HTML. Chat responses carry
// the rendered form when the client asks for format=html.
type HTMLRenderer interface {
	HTML(markdown string) (string, error)
}

// RegisterRoutes registers the conversational API routes on an /api
// subrouter shared with the other feature packages. html may be nil to
// disable format=html rendering.
func RegisterRoutes(api chi.Router, e *Engine, html HTMLRenderer) {
	api.Post("/chat", handleChat(e, html))
	api.Post("/clear-conversation", handleClear(e))
	api.Get("/conversation-summary", handleSummary(e))
	api.Get("/learning-insights", handleInsights(e))
	api.Get("/nlp-stats", handleStats(e))
}

func handleChat(e *Engine, html HTMLRenderer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req TurnRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, `{"error":"invalid request body"}`, http.StatusBadRequest)
			return
		}
		if req.UserID == "" {
			req.UserID = "anonymous"
		}

		result, err := e.ProcessTurn(r.Context(), req)
		if errors.Is(err, ErrEmptyText) {
			http.Error(w, `{"error":"message is required"}`, http.StatusBadRequest)
			return
		}
		if err != nil {
			http.Error(w, `{"error":"`+err.Error()+`"}`, http.StatusInternalServerError)
			return
		}

		if html != nil && r.URL.Query().Get("format") == "html" {
			rendered, err := html.HTML(result.Response)
			if err == nil {
				result.ResponseHTML = rendered
			}
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(result)
	}
}

type userRequest struct {
	UserID string `json:"user_id"`
}

func handleClear(e *Engine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req userRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, `{"error":"invalid request body"}`, http.StatusBadRequest)
			return
		}
		if req.UserID == "" {
			http.Error(w, `{"error":"user_id is required"}`, http.StatusBadRequest)
			return
		}

		e.Clear(req.UserID)
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{"status": "cleared", "user_id": req.UserID})
	}
}

func handleSummary(e *Engine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := r.URL.Query().Get("user_id")
		if userID == "" {
			http.Error(w, `{"error":"user_id is required"}`, http.StatusBadRequest)
			return
		}

		summary, ok := e.Summary(userID)
		if !ok {
			http.Error(w, `{"error":"no conversation found"}`, http.StatusNotFound)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(summary)
	}
}

func handleInsights(e *Engine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := r.URL.Query().Get("user_id")
		if userID == "" {
			http.Error(w, `{"error":"user_id is required"}`, http.StatusBadRequest)
			return
		}

		insights, ok := e.Insights(userID)
		if !ok {
			http.Error(w, `{"error":"no conversation found"}`, http.StatusNotFound)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(insights)
	}
}

func handleStats(e *Engine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(e.PipelineStats())
	}
}
