// Package engine wires the NLP stages into the per-turn pipeline: it
// classifies the incoming message, extracts entities, generates a reply
// against the user's conversation context, and records the exchange.
package engine

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"agribot/internal/conversation"
	"agribot/internal/nlp"
	"agribot/internal/responder"
)

// ErrEmptyText is returned when a turn carries no message after trimming.
var ErrEmptyText = errors.New("engine: empty message text")

// TurnRecord is the flattened view of one completed exchange handed to
// the Recorder.
type TurnRecord struct {
	UserID     string
	Message    string
	Response   string
	Intent     string
	Confidence float64
	Compound   float64
	Timestamp  time.Time
}

// Recorder persists completed turns. The engine treats recording as
// best-effort: a failing Recorder is logged, never surfaced to the user.
type Recorder interface {
	RecordTurn(ctx context.Context, rec TurnRecord) error
}

// TurnRequest is one incoming chat message. Name and Region seed the
// user's context on first contact and are ignored afterwards.
type TurnRequest struct {
	UserID string `json:"user_id"`
	Text   string `json:"message"`
	Name   string `json:"user_name,omitempty"`
	Region string `json:"region,omitempty"`
}

// TurnResult is the full pipeline output for one turn.
type TurnResult struct {
	Response       string        `json:"response"`
	ResponseHTML   string        `json:"response_html,omitempty"`
	ResponseType   string        `json:"response_type"`
	CurrentTopic   string        `json:"current_topic"`
	MentionedCrops []string      `json:"mentioned_crops"`
	Intent         string        `json:"intent"`
	Confidence     float64       `json:"confidence"`
	Sentiment      nlp.Sentiment `json:"sentiment"`
	Entities       nlp.EntitySet `json:"entities"`
	FollowUps      []string      `json:"follow_up_suggestions"`
}

// Engine runs the conversational pipeline. All exported methods are safe
// for concurrent use; turns for the same user id are serialized by the
// conversation store.
type Engine struct {
	classifier *nlp.Classifier
	extractor  *nlp.Extractor
	generator  *responder.Generator
	store      *conversation.Store
	recorder   Recorder
	log        *logrus.Logger
}

// New builds an Engine. recorder may be nil to disable persistence.
func New(generator *responder.Generator, recorder Recorder, log *logrus.Logger) *Engine {
	if log == nil {
		log = logrus.New()
	}
	return &Engine{
		classifier: nlp.NewClassifier(),
		extractor:  nlp.NewExtractor(),
		generator:  generator,
		store:      conversation.NewStore(),
		recorder:   recorder,
		log:        log,
	}
}

// ProcessTurn runs one message through the full pipeline and returns the
// reply together with the analysis that produced it.
func (e *Engine) ProcessTurn(ctx context.Context, req TurnRequest) (TurnResult, error) {
	text := strings.TrimSpace(req.Text)
	if text == "" {
		return TurnResult{}, ErrEmptyText
	}

	c, release := e.store.Acquire(req.UserID, conversation.Defaults{Name: req.Name, Region: req.Region})

	// Classification normalizes internally; extraction runs over the raw
	// text, whose crop variant tables already cover common misspellings.
	intent := e.classifier.Classify(text)
	entities := e.extractor.ExtractAll(text)

	c.AppendUserTurn(text)
	reply := e.generator.Generate(intent, entities, c)
	c.AppendBotTurn(reply.Text, intent.Intent, intent.Confidence, entities)
	c.RecordCrops(entities.Crops)

	result := TurnResult{
		Response:       reply.Text,
		ResponseType:   reply.Type,
		CurrentTopic:   c.CurrentTopic,
		MentionedCrops: append([]string{}, c.MentionedCrops...),
		Intent:         intent.Intent,
		Confidence:     intent.Confidence,
		Sentiment:      intent.Sentiment,
		Entities:       entities,
		FollowUps:      reply.FollowUps,
	}
	release()

	e.log.WithFields(logrus.Fields{
		"user_id":    req.UserID,
		"intent":     intent.Intent,
		"confidence": intent.Confidence,
		"topic":      result.CurrentTopic,
	}).Debug("processed turn")

	if e.recorder != nil {
		rec := TurnRecord{
			UserID:     req.UserID,
			Message:    text,
			Response:   reply.Text,
			Intent:     intent.Intent,
			Confidence: intent.Confidence,
			Compound:   intent.Sentiment.Compound,
			Timestamp:  time.Now().UTC(),
		}
		if err := e.recorder.RecordTurn(ctx, rec); err != nil {
			e.log.WithError(err).WithField("user_id", req.UserID).Warn("recording turn failed")
		}
	}
	return result, nil
}

// Summary computes the conversation summary for a user. The second
// return value is false when the user has no context.
func (e *Engine) Summary(userID string) (conversation.Summary, bool) {
	c, release, ok := e.store.Peek(userID)
	if !ok {
		return conversation.Summary{}, false
	}
	defer release()
	return conversation.Summarize(c, time.Now().UTC()), true
}

// Insights derives learning insights for a user.
func (e *Engine) Insights(userID string) (conversation.Insights, bool) {
	c, release, ok := e.store.Peek(userID)
	if !ok {
		return conversation.Insights{}, false
	}
	defer release()
	return conversation.AnalyzeInsights(c), true
}

// Snapshot returns a deep copy of a user's context, suitable for export
// outside the store's locking discipline.
func (e *Engine) Snapshot(userID string) (conversation.Context, bool) {
	c, release, ok := e.store.Peek(userID)
	if !ok {
		return conversation.Context{}, false
	}
	defer release()

	snap := *c
	snap.MentionedCrops = append([]string{}, c.MentionedCrops...)
	snap.History = append([]conversation.Turn{}, c.History...)
	return snap, true
}

// Clear drops a user's conversation context. Clearing an unknown user is
// a no-op.
func (e *Engine) Clear(userID string) {
	e.store.Clear(userID)
	e.log.WithField("user_id", userID).Info("conversation cleared")
}

// ActiveUsers lists the ids of users with a live context.
func (e *Engine) ActiveUsers() []string {
	return e.store.UserIDs()
}

// Stats describes the loaded NLP pipeline.
type Stats struct {
	ActiveSessions   int      `json:"active_sessions"`
	Intents          []string `json:"supported_intents"`
	EntityCategories []string `json:"entity_categories"`
}

// PipelineStats reports the pipeline's static capabilities plus the
// current session count.
func (e *Engine) PipelineStats() Stats {
	return Stats{
		ActiveSessions: e.store.Len(),
		Intents: []string{
			nlp.IntentGreeting, nlp.IntentThanks, nlp.IntentPraise,
			nlp.IntentAcknowledgment, nlp.IntentClarification,
			nlp.IntentWeather, nlp.IntentDisease, nlp.IntentFertilizer,
			nlp.IntentPlanting, nlp.IntentPest, nlp.IntentHarvest,
			nlp.IntentYield, nlp.IntentMarket, nlp.IntentGeneral,
		},
		EntityCategories: []string{"crops", "regions", "diseases", "pests", "quantities", "time_references"},
	}
}
