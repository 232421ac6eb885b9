// Package analytics persists completed chat turns and user feedback and
// computes usage aggregates over them.
package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"agribot/internal/db"
	"agribot/internal/engine"
)

// Store manages persistence of turns and feedback.
type Store struct {
	db *db.DB
}

// NewStore creates an analytics store.
func NewStore(database *db.DB) *Store {
	return &Store{db: database}
}

// RecordTurn persists one completed exchange. It satisfies the engine's
// Recorder interface.
func (s *Store) RecordTurn(ctx context.Context, rec engine.TurnRecord) error {
	ts := rec.Timestamp
	if ts.IsZero() {
		ts = time.Now().UTC()
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO turns (id, user_id, message, response, intent, confidence, sentiment, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		uuid.New().String(), rec.UserID, rec.Message, rec.Response, rec.Intent, rec.Confidence, rec.Compound, ts,
	)
	if err != nil {
		return fmt.Errorf("inserting turn: %w", err)
	}
	return nil
}

// Feedback is one user rating of a bot reply.
type Feedback struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Message   string    `json:"message"`
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment"`
	CreatedAt time.Time `json:"created_at"`
}

// SaveFeedback stores a rating. Ratings run 1 to 5.
func (s *Store) SaveFeedback(ctx context.Context, f Feedback) (*Feedback, error) {
	if f.Rating < 1 || f.Rating > 5 {
		return nil, fmt.Errorf("rating %d out of range 1..5", f.Rating)
	}
	if f.ID == "" {
		f.ID = uuid.New().String()
	}
	f.CreatedAt = time.Now().UTC()

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO feedback (id, user_id, message, rating, comment, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		f.ID, f.UserID, f.Message, f.Rating, f.Comment, f.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("inserting feedback: %w", err)
	}
	return &f, nil
}

// Overview aggregates recorded usage.
type Overview struct {
	TotalTurns    int            `json:"total_turns"`
	UniqueUsers   int            `json:"unique_users"`
	IntentCounts  map[string]int `json:"intent_counts"`
	AvgConfidence float64        `json:"avg_confidence"`
	AvgRating     float64        `json:"avg_rating"`
	FeedbackCount int            `json:"feedback_count"`
}

// ComputeOverview builds usage aggregates over all recorded turns and
// feedback.
func (s *Store) ComputeOverview(ctx context.Context) (*Overview, error) {
	o := &Overview{IntentCounts: map[string]int{}}

	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*), COUNT(DISTINCT user_id), COALESCE(AVG(confidence), 0) FROM turns`,
	).Scan(&o.TotalTurns, &o.UniqueUsers, &o.AvgConfidence)
	if err != nil {
		return nil, fmt.Errorf("aggregating turns: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, `SELECT intent, COUNT(*) FROM turns GROUP BY intent`)
	if err != nil {
		return nil, fmt.Errorf("counting intents: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var intent string
		var count int
		if err := rows.Scan(&intent, &count); err != nil {
			return nil, fmt.Errorf("scanning intent count: %w", err)
		}
		o.IntentCounts[intent] = count
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("reading intent counts: %w", err)
	}

	err = s.db.QueryRowContext(ctx,
		`SELECT COUNT(*), COALESCE(AVG(rating), 0) FROM feedback`,
	).Scan(&o.FeedbackCount, &o.AvgRating)
	if err != nil {
		return nil, fmt.Errorf("aggregating feedback: %w", err)
	}

	return o, nil
}

// TurnExport is one turn as written to an export.
type TurnExport struct {
	UserID     string    `json:"user_id"`
	Message    string    `json:"message"`
	Response   string    `json:"response"`
	Intent     string    `json:"intent"`
	Confidence float64   `json:"confidence"`
	Sentiment  float64   `json:"sentiment"`
	CreatedAt  time.Time `json:"created_at"`
}

// ExportTurns returns every recorded turn for a user in chronological
// order. An empty userID exports all users.
func (s *Store) ExportTurns(ctx context.Context, userID string) ([]TurnExport, error) {
	query := `SELECT user_id, message, response, intent, confidence, sentiment, created_at
	          FROM turns ORDER BY created_at, id`
	args := []any{}
	if userID != "" {
		query = `SELECT user_id, message, response, intent, confidence, sentiment, created_at
		         FROM turns WHERE user_id = ? ORDER BY created_at, id`
		args = append(args, userID)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying turns: %w", err)
	}
	defer rows.Close()

	out := []TurnExport{}
	for rows.Next() {
		var t TurnExport
		if err := rows.Scan(&t.UserID, &t.Message, &t.Response, &t.Intent, &t.Confidence, &t.Sentiment, &t.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning turn: %w", err)
		}
		out = append(out, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("reading turns: %w", err)
	}
	return out, nil
}
