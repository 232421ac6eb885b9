package engine

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math/rand"
	"net/http"
	"net/http/httptest"
	"reflect"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/sirupsen/logrus"

	"agribot/internal/knowledge"
	"agribot/internal/responder"
)

func newEngine(t *testing.T, rec Recorder) *Engine {
	t.Helper()
	kb, err := knowledge.New()
	if err != nil {
		t.Fatalf("knowledge.New: %v", err)
	}
	log := logrus.New()
	log.SetOutput(io.Discard)
	gen := responder.NewGenerator(kb, rand.New(rand.NewSource(1)))
	return New(gen, rec, log)
}

func mustTurn(t *testing.T, e *Engine, userID, text string) TurnResult {
	t.Helper()
	res, err := e.ProcessTurn(context.Background(), TurnRequest{UserID: userID, Text: text})
	if err != nil {
		t.Fatalf("ProcessTurn(%q): %v", text, err)
	}
	return res
}

func TestProcessTurnRejectsEmptyText(t *testing.T) {
	e := newEngine(t, nil)
	_, err := e.ProcessTurn(context.Background(), TurnRequest{UserID: "u1", Text: "   "})
	if err != ErrEmptyText {
		t.Fatalf("err = %v, want ErrEmptyText", err)
	}
	if _, ok := e.Summary("u1"); ok {
		t.Error("rejected turn should not create a context")
	}
}

func TestGreetingThenPlantingThenDiseaseFallback(t *testing.T) {
	e := newEngine(t, nil)

	res := mustTurn(t, e, "u1", "Hello")
	if res.Intent != "greeting" {
		t.Fatalf("intent = %q", res.Intent)
	}
	if res.CurrentTopic != "" {
		t.Errorf("greeting set topic %q", res.CurrentTopic)
	}

	res = mustTurn(t, e, "u1", "How do I plant maize?")
	if res.Intent != "planting" || res.ResponseType != "detailed_guidance" {
		t.Fatalf("intent = %q, type = %q", res.Intent, res.ResponseType)
	}
	if res.CurrentTopic != "planting" {
		t.Errorf("topic = %q", res.CurrentTopic)
	}
	if !reflect.DeepEqual(res.MentionedCrops, []string{"maize"}) {
		t.Errorf("crops = %v", res.MentionedCrops)
	}

	// No crop in this message; the remembered maize carries the diagnosis.
	res = mustTurn(t, e, "u1", "My plants are dying and have yellow spots")
	if res.Intent != "disease" {
		t.Fatalf("intent = %q", res.Intent)
	}
	if res.ResponseType != "diagnostic_guidance" {
		t.Errorf("type = %q", res.ResponseType)
	}
	if !strings.Contains(res.Response, "maize") {
		t.Errorf("reply should reference the remembered crop: %q", res.Response)
	}
	if res.CurrentTopic != "disease" {
		t.Errorf("topic = %q", res.CurrentTopic)
	}
}

func TestExtractionRunsOverRawText(t *testing.T) {
	e := newEngine(t, nil)

	// The misspelled crop resolves through the extractor's own variant
	// table, without relying on classifier typo normalization.
	res := mustTurn(t, e, "u1", "How do I plant maze?")
	if !reflect.DeepEqual(res.Entities.Crops, []string{"maize"}) {
		t.Errorf("crops = %v", res.Entities.Crops)
	}
	if res.Intent != "planting" {
		t.Errorf("intent = %q", res.Intent)
	}
}

func TestMentionedCropsEvictOldest(t *testing.T) {
	e := newEngine(t, nil)

	for _, crop := range []string{"maize", "cassava", "beans", "tomatoes", "pepper", "rice"} {
		mustTurn(t, e, "u1", fmt.Sprintf("Tell me about planting %s", crop))
	}

	snap, ok := e.Snapshot("u1")
	if !ok {
		t.Fatal("no context")
	}
	want := []string{"cassava", "beans", "tomatoes", "pepper", "rice"}
	if !reflect.DeepEqual(snap.MentionedCrops, want) {
		t.Errorf("crops = %v, want %v", snap.MentionedCrops, want)
	}
}

func TestDefaultsSeedOnlyFirstContact(t *testing.T) {
	e := newEngine(t, nil)

	mustTurn(t, e, "u1", "Hello")
	if _, err := e.ProcessTurn(context.Background(), TurnRequest{UserID: "u1", Text: "Hello again", Name: "Marie"}); err != nil {
		t.Fatal(err)
	}

	summary, ok := e.Summary("u1")
	if !ok {
		t.Fatal("no summary")
	}
	if summary.UserInfo.Name != "Friend" {
		t.Errorf("name = %q, want the first-contact default", summary.UserInfo.Name)
	}
	if summary.Stats.TotalMessages != 2 {
		t.Errorf("total messages = %d", summary.Stats.TotalMessages)
	}
}

func TestClearDropsContext(t *testing.T) {
	e := newEngine(t, nil)
	mustTurn(t, e, "u1", "Hello")
	e.Clear("u1")
	if _, ok := e.Summary("u1"); ok {
		t.Error("summary after clear")
	}
	e.Clear("u1") // clearing again is a no-op
}

type captureRecorder struct {
	records []TurnRecord
}

func (c *captureRecorder) RecordTurn(_ context.Context, rec TurnRecord) error {
	c.records = append(c.records, rec)
	return nil
}

func TestRecorderReceivesTurns(t *testing.T) {
	rec := &captureRecorder{}
	e := newEngine(t, rec)

	mustTurn(t, e, "u1", "How do I plant maize?")
	if len(rec.records) != 1 {
		t.Fatalf("records = %d", len(rec.records))
	}
	r := rec.records[0]
	if r.UserID != "u1" || r.Intent != "planting" || r.Response == "" {
		t.Errorf("record = %+v", r)
	}
}

func TestInsightsFlagLowConfidenceTurns(t *testing.T) {
	e := newEngine(t, nil)

	mustTurn(t, e, "u1", "xyzzy qwerty")
	in, ok := e.Insights("u1")
	if !ok {
		t.Fatal("no insights")
	}
	if len(in.KnowledgeGaps) != 1 || !strings.Contains(in.KnowledgeGaps[0], "xyzzy qwerty") {
		t.Errorf("gaps = %v", in.KnowledgeGaps)
	}
}

func TestPipelineStats(t *testing.T) {
	e := newEngine(t, nil)
	mustTurn(t, e, "u1", "Hello")
	mustTurn(t, e, "u2", "Hello")

	stats := e.PipelineStats()
	if stats.ActiveSessions != 2 {
		t.Errorf("sessions = %d", stats.ActiveSessions)
	}
	if len(stats.Intents) != 14 {
		t.Errorf("intents = %d", len(stats.Intents))
	}
	if len(stats.EntityCategories) != 6 {
		t.Errorf("entity categories = %d", len(stats.EntityCategories))
	}
}

func newTestServer(t *testing.T) (*Engine, *httptest.Server) {
	t.Helper()
	e := newEngine(t, nil)
	r := chi.NewRouter()
	r.Route("/api", func(api chi.Router) {
		RegisterRoutes(api, e, nil)
	})
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return e, srv
}

func postJSON(t *testing.T, url string, body any) *http.Response {
	t.Helper()
	raw, err := json.Marshal(body)
	if err != nil {
		t.Fatal(err)
	}
	resp, err := http.Post(url, "application/json", bytes.NewReader(raw))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func TestChatEndpoint(t *testing.T) {
	_, srv := newTestServer(t)

	resp := postJSON(t, srv.URL+"/api/chat", map[string]string{"user_id": "u1", "message": "Hello"})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}

	var result TurnResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		t.Fatal(err)
	}
	if result.Intent != "greeting" || result.Response == "" {
		t.Errorf("result = %+v", result)
	}
	if result.Entities.Crops == nil {
		t.Error("entities should marshal with empty arrays, not null")
	}
}

func TestChatEndpointRejectsBlankMessage(t *testing.T) {
	_, srv := newTestServer(t)

	resp := postJSON(t, srv.URL+"/api/chat", map[string]string{"user_id": "u1", "message": "  "})
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", resp.StatusCode)
	}
}

func TestSummaryEndpointUnknownUser(t *testing.T) {
	_, srv := newTestServer(t)

	resp, err := http.Get(srv.URL + "/api/conversation-summary?user_id=nobody")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("status = %d, want 404", resp.StatusCode)
	}
}

func TestClearEndpoint(t *testing.T) {
	e, srv := newTestServer(t)

	postJSON(t, srv.URL+"/api/chat", map[string]string{"user_id": "u1", "message": "Hello"})
	resp := postJSON(t, srv.URL+"/api/clear-conversation", map[string]string{"user_id": "u1"})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	if _, ok := e.Summary("u1"); ok {
		t.Error("context survived clear")
	}
}

func TestNLPStatsEndpoint(t *testing.T) {
	_, srv := newTestServer(t)

	resp, err := http.Get(srv.URL + "/api/nlp-stats")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	var stats Stats
	if err := json.NewDecoder(resp.Body).Decode(&stats); err != nil {
		t.Fatal(err)
	}
	if len(stats.Intents) == 0 {
		t.Error("no intents reported")
	}
}
