package analytics

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
)

// RegisterRoutes registers the analytics API routes on an /api subrouter
// shared with the other feature packages.
func RegisterRoutes(api chi.Router, store *Store) {
	api.Post("/feedback", handleFeedback(store))
	api.Get("/analytics", handleAnalytics(store))
	api.Get("/export-data", handleExport(store))
}

type feedbackRequest struct {
	UserID  string `json:"user_id"`
	Message string `json:"message"`
	Rating  int    `json:"rating"`
	Comment string `json:"comment"`
}

func handleFeedback(store *Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req feedbackRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, `{"error":"invalid request body"}`, http.StatusBadRequest)
			return
		}
		if req.UserID == "" {
			http.Error(w, `{"error":"user_id is required"}`, http.StatusBadRequest)
			return
		}
		if req.Rating < 1 || req.Rating > 5 {
			http.Error(w, `{"error":"rating must be between 1 and 5"}`, http.StatusBadRequest)
			return
		}

		saved, err := store.SaveFeedback(r.Context(), Feedback{
			UserID:  req.UserID,
			Message: req.Message,
			Rating:  req.Rating,
			Comment: req.Comment,
		})
		if err != nil {
			http.Error(w, `{"error":"`+err.Error()+`"}`, http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(saved)
	}
}

func handleAnalytics(store *Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		overview, err := store.ComputeOverview(r.Context())
		if err != nil {
			http.Error(w, `{"error":"`+err.Error()+`"}`, http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(overview)
	}
}

func handleExport(store *Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		turns, err := store.ExportTurns(r.Context(), r.URL.Query().Get("user_id"))
		if err != nil {
			http.Error(w, `{"error":"`+err.Error()+`"}`, http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{"turns": turns, "count": len(turns)})
	}
}
