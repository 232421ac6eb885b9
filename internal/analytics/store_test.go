package analytics

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"agribot/internal/db"
	"agribot/internal/engine"
)

func newStore(t *testing.T) *Store {
	t.Helper()
	d, err := db.OpenMemory()
	if err != nil {
		t.Fatalf("OpenMemory: %v", err)
	}
	t.Cleanup(func() { d.Close() })
	return NewStore(d)
}

func record(t *testing.T, s *Store, userID, intent string, confidence float64) {
	t.Helper()
	err := s.RecordTurn(context.Background(), engine.TurnRecord{
		UserID:     userID,
		Message:    "how do i plant maize",
		Response:   "here is how",
		Intent:     intent,
		Confidence: confidence,
		Timestamp:  time.Now().UTC(),
	})
	if err != nil {
		t.Fatalf("RecordTurn: %v", err)
	}
}

func TestOverviewAggregates(t *testing.T) {
	s := newStore(t)

	record(t, s, "u1", "planting", 0.8)
	record(t, s, "u1", "disease", 1.0)
	record(t, s, "u2", "planting", 0.6)

	if _, err := s.SaveFeedback(context.Background(), Feedback{UserID: "u1", Rating: 4}); err != nil {
		t.Fatalf("SaveFeedback: %v", err)
	}
	if _, err := s.SaveFeedback(context.Background(), Feedback{UserID: "u2", Rating: 2}); err != nil {
		t.Fatalf("SaveFeedback: %v", err)
	}

	o, err := s.ComputeOverview(context.Background())
	if err != nil {
		t.Fatalf("ComputeOverview: %v", err)
	}
	if o.TotalTurns != 3 {
		t.Errorf("total turns = %d", o.TotalTurns)
	}
	if o.UniqueUsers != 2 {
		t.Errorf("unique users = %d", o.UniqueUsers)
	}
	if o.IntentCounts["planting"] != 2 || o.IntentCounts["disease"] != 1 {
		t.Errorf("intent counts = %v", o.IntentCounts)
	}
	if o.AvgConfidence < 0.79 || o.AvgConfidence > 0.81 {
		t.Errorf("avg confidence = %f", o.AvgConfidence)
	}
	if o.AvgRating != 3 {
		t.Errorf("avg rating = %f", o.AvgRating)
	}
	if o.FeedbackCount != 2 {
		t.Errorf("feedback count = %d", o.FeedbackCount)
	}
}

func TestOverviewEmpty(t *testing.T) {
	s := newStore(t)

	o, err := s.ComputeOverview(context.Background())
	if err != nil {
		t.Fatalf("ComputeOverview: %v", err)
	}
	if o.TotalTurns != 0 || o.AvgConfidence != 0 || o.AvgRating != 0 {
		t.Errorf("overview = %+v", o)
	}
}

func TestSaveFeedbackRejectsBadRating(t *testing.T) {
	s := newStore(t)

	if _, err := s.SaveFeedback(context.Background(), Feedback{UserID: "u1", Rating: 0}); err == nil {
		t.Error("rating 0 accepted")
	}
	if _, err := s.SaveFeedback(context.Background(), Feedback{UserID: "u1", Rating: 6}); err == nil {
		t.Error("rating 6 accepted")
	}
}

func TestExportTurnsFiltersByUser(t *testing.T) {
	s := newStore(t)

	record(t, s, "u1", "planting", 0.8)
	record(t, s, "u2", "disease", 0.9)

	all, err := s.ExportTurns(context.Background(), "")
	if err != nil {
		t.Fatalf("ExportTurns: %v", err)
	}
	if len(all) != 2 {
		t.Errorf("all turns = %d", len(all))
	}

	one, err := s.ExportTurns(context.Background(), "u2")
	if err != nil {
		t.Fatalf("ExportTurns(u2): %v", err)
	}
	if len(one) != 1 || one[0].Intent != "disease" {
		t.Errorf("u2 turns = %+v", one)
	}
}

func newTestServer(t *testing.T) (*Store, *httptest.Server) {
	t.Helper()
	s := newStore(t)
	r := chi.NewRouter()
	r.Route("/api", func(api chi.Router) {
		RegisterRoutes(api, s)
	})
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return s, srv
}

func TestFeedbackEndpoint(t *testing.T) {
	_, srv := newTestServer(t)

	body, _ := json.Marshal(map[string]any{"user_id": "u1", "rating": 5, "comment": "very helpful"})
	resp, err := http.Post(srv.URL+"/api/feedback", "application/json", bytes.NewReader(body))
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("status = %d", resp.StatusCode)
	}

	var saved Feedback
	if err := json.NewDecoder(resp.Body).Decode(&saved); err != nil {
		t.Fatal(err)
	}
	if saved.ID == "" || saved.Rating != 5 {
		t.Errorf("saved = %+v", saved)
	}
}

func TestFeedbackEndpointValidation(t *testing.T) {
	_, srv := newTestServer(t)

	body, _ := json.Marshal(map[string]any{"user_id": "u1", "rating": 7})
	resp, err := http.Post(srv.URL+"/api/feedback", "application/json", bytes.NewReader(body))
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", resp.StatusCode)
	}
}

func TestAnalyticsAndExportEndpoints(t *testing.T) {
	s, srv := newTestServer(t)
	record(t, s, "u1", "planting", 0.8)

	resp, err := http.Get(srv.URL + "/api/analytics")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("analytics status = %d", resp.StatusCode)
	}
	var o Overview
	if err := json.NewDecoder(resp.Body).Decode(&o); err != nil {
		t.Fatal(err)
	}
	if o.TotalTurns != 1 {
		t.Errorf("total turns = %d", o.TotalTurns)
	}

	resp2, err := http.Get(srv.URL + "/api/export-data?user_id=u1")
	if err != nil {
		t.Fatal(err)
	}
	defer resp2.Body.Close()
	if resp2.StatusCode != http.StatusOK {
		t.Fatalf("export status = %d", resp2.StatusCode)
	}
	var export struct {
		Turns []TurnExport `json:"turns"`
		Count int          `json:"count"`
	}
	if err := json.NewDecoder(resp2.Body).Decode(&export); err != nil {
		t.Fatal(err)
	}
	if export.Count != 1 || len(export.Turns) != 1 {
		t.Errorf("export = %+v", export)
	}
}
