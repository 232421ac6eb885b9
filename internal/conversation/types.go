package conversation

import (
	"time"

	"agribot/internal/nlp"
)

// Turn directions.
const (
	DirectionUser = "user"
	DirectionBot  = "bot"
)

// maxMentionedCrops bounds the crop-mention memory per user. Eviction is
// FIFO on first mention, not LRU.
const maxMentionedCrops = 5

// Turn is one history record. Turns are append-only: once added to a
// context's history they are never rewritten. Intent, Confidence, and
// Entities are set on bot turns only.
type Turn struct {
	Timestamp  time.Time      `json:"timestamp"`
	Direction  string         `json:"direction"`
	Text       string         `json:"text"`
	Intent     string         `json:"intent,omitempty"`
	Confidence float64        `json:"confidence,omitempty"`
	Entities   *nlp.EntitySet `json:"entities,omitempty"`
}

// Context is the accumulated conversational state for one user. It is
// owned by the Store and must only be touched while holding the user's
// entry lock (see Store.Acquire).
type Context struct {
	UserID         string    `json:"user_id"`
	Name           string    `json:"user_name"`
	Region         string    `json:"user_region"`
	CurrentTopic   string    `json:"current_topic"`
	MentionedCrops []string  `json:"mentioned_crops"`
	History        []Turn    `json:"history"`
	SessionStart   time.Time `json:"session_start"`
}

// AppendUserTurn records an incoming message.
func (c *Context) AppendUserTurn(text string) {
	c.History = append(c.History, Turn{
		Timestamp: time.Now().UTC(),
		Direction: DirectionUser,
		Text:      text,
	})
}

// AppendBotTurn records the generated reply along with its analysis.
func (c *Context) AppendBotTurn(text, intent string, confidence float64, entities nlp.EntitySet) {
	c.History = append(c.History, Turn{
		Timestamp:  time.Now().UTC(),
		Direction:  DirectionBot,
		Text:       text,
		Intent:     intent,
		Confidence: confidence,
		Entities:   &entities,
	})
}

// RecordCrops appends newly mentioned crops. A crop already present keeps
// its position; when the list exceeds capacity the oldest entries drop.
func (c *Context) RecordCrops(crops []string) {
	for _, crop := range crops {
		if !containsCrop(c.MentionedCrops, crop) {
			c.MentionedCrops = append(c.MentionedCrops, crop)
		}
	}
	if n := len(c.MentionedCrops); n > maxMentionedCrops {
		c.MentionedCrops = c.MentionedCrops[n-maxMentionedCrops:]
	}
}

// LastCrop returns the newest entry in the mention list, if any. A
// re-mentioned crop keeps its original slot, so this follows
// first-mention order, not latest-utterance order.
func (c *Context) LastCrop() (string, bool) {
	if len(c.MentionedCrops) == 0 {
		return "", false
	}
	return c.MentionedCrops[len(c.MentionedCrops)-1], true
}

func containsCrop(crops []string, crop string) bool {
	for _, c := range crops {
		if c == crop {
			return true
		}
	}
	return false
}
