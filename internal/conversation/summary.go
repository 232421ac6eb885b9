package conversation

import (
	"fmt"
	"time"
)

// Summary is a read-only projection over one user's context and history.
type Summary struct {
	UserInfo   UserInfo          `json:"user_info"`
	Stats      ConversationStats `json:"conversation_stats"`
	Engagement EngagementMetrics `json:"engagement_metrics"`
}

type UserInfo struct {
	Name            string `json:"name"`
	Region          string `json:"region"`
	SessionDuration string `json:"session_duration"`
}

type ConversationStats struct {
	TotalMessages   int            `json:"total_messages"`
	TopicsDiscussed map[string]int `json:"topics_discussed"`
	CurrentTopic    string         `json:"current_topic"`
	MentionedCrops  []string       `json:"mentioned_crops"`
}

type EngagementMetrics struct {
	AvgResponseLength float64 `json:"avg_response_length"`
	TopicDiversity    int     `json:"topic_diversity"`
	CropDiversity     int     `json:"crop_diversity"`
}

// Summarize computes the conversation summary for a context at the given
// instant. The context must be held via Acquire or Peek.
func Summarize(c *Context, now time.Time) Summary {
	topics := map[string]int{}
	var userMessages, botMessages, responseLength int
	for _, t := range c.History {
		switch t.Direction {
		case DirectionUser:
			userMessages++
		case DirectionBot:
			botMessages++
			responseLength += len(t.Text)
			if t.Intent != "" {
				topics[t.Intent]++
			}
		}
	}

	var avgLen float64
	if botMessages > 0 {
		avgLen = float64(responseLength) / float64(botMessages)
	}

	return Summary{
		UserInfo: UserInfo{
			Name:            c.Name,
			Region:          c.Region,
			SessionDuration: now.Sub(c.SessionStart).String(),
		},
		Stats: ConversationStats{
			TotalMessages:   userMessages,
			TopicsDiscussed: topics,
			CurrentTopic:    c.CurrentTopic,
			MentionedCrops:  append([]string{}, c.MentionedCrops...),
		},
		Engagement: EngagementMetrics{
			AvgResponseLength: avgLen,
			TopicDiversity:    len(topics),
			CropDiversity:     len(c.MentionedCrops),
		},
	}
}

// Insights surfaces interaction patterns useful for improving responses.
type Insights struct {
	PreferredCrops   map[string]int `json:"preferred_crops"`
	CommonTopics     map[string]int `json:"common_topics"`
	KnowledgeGaps    []string       `json:"knowledge_gaps"`
	AvgConfidence    float64        `json:"avg_confidence"`
	TopicTransitions []string       `json:"topic_transitions"`
}

// lowConfidenceThreshold marks answered turns worth flagging as gaps.
const lowConfidenceThreshold = 0.5

// AnalyzeInsights derives learning insights from a context's history. A
// bot turn below the confidence threshold flags the user message it
// answered as a knowledge gap.
func AnalyzeInsights(c *Context) Insights {
	in := Insights{
		PreferredCrops: map[string]int{},
		CommonTopics:   map[string]int{},
		KnowledgeGaps:  []string{},
	}

	var confidenceSum float64
	var botTurns int
	var lastUserText string
	var topics []string

	for _, t := range c.History {
		if t.Direction == DirectionUser {
			lastUserText = t.Text
			continue
		}

		botTurns++
		confidenceSum += t.Confidence
		if t.Confidence < lowConfidenceThreshold {
			in.KnowledgeGaps = append(in.KnowledgeGaps, fmt.Sprintf("Low confidence handling: %s", lastUserText))
		}
		if t.Intent != "" {
			in.CommonTopics[t.Intent]++
			topics = append(topics, t.Intent)
		}
		if t.Entities != nil {
			for _, crop := range t.Entities.Crops {
				in.PreferredCrops[crop]++
			}
		}
	}

	if botTurns > 0 {
		in.AvgConfidence = confidenceSum / float64(botTurns)
	}
	for i := 1; i < len(topics); i++ {
		if topics[i] != topics[i-1] {
			in.TopicTransitions = append(in.TopicTransitions, fmt.Sprintf("%s -> %s", topics[i-1], topics[i]))
		}
	}
	return in
}
