package conversation

import (
	"fmt"
	"reflect"
	"sync"
	"testing"
	"time"

	"agribot/internal/nlp"
)

func TestAcquireCreatesAndReuses(t *testing.T) {
	s := NewStore()

	c1, release := s.Acquire("u1", Defaults{Name: "Ama", Region: "west"})
	if c1.Name != "Ama" || c1.Region != "west" {
		t.Errorf("seeded context = %+v", c1)
	}
	release()

	// Second acquire returns the same context and ignores new defaults.
	c2, release := s.Acquire("u1", Defaults{Name: "Other", Region: "east"})
	defer release()
	if c1 != c2 {
		t.Error("expected same context instance")
	}
	if c2.Name != "Ama" || c2.Region != "west" {
		t.Errorf("defaults overwrote existing context: %+v", c2)
	}
}

func TestAcquireDefaults(t *testing.T) {
	s := NewStore()
	c, release := s.Acquire("u1", Defaults{})
	defer release()
	if c.Name != "Friend" || c.Region != "centre" {
		t.Errorf("context = %+v, want Friend/centre", c)
	}
	if c.MentionedCrops == nil || c.History == nil {
		t.Error("slices must be initialized")
	}
}

func TestClear(t *testing.T) {
	s := NewStore()
	_, release := s.Acquire("u1", Defaults{})
	release()

	s.Clear("u1")
	if _, _, ok := s.Peek("u1"); ok {
		t.Error("context should be gone after Clear")
	}
	// Clearing an absent user is fine.
	s.Clear("nobody")
}

func TestRecordCropsFIFO(t *testing.T) {
	c := &Context{MentionedCrops: []string{}}

	for i := 1; i <= 6; i++ {
		c.RecordCrops([]string{fmt.Sprintf("crop%d", i)})
	}
	want := []string{"crop2", "crop3", "crop4", "crop5", "crop6"}
	if !reflect.DeepEqual(c.MentionedCrops, want) {
		t.Errorf("MentionedCrops = %v, want %v", c.MentionedCrops, want)
	}

	// Re-mention keeps position, no duplicate.
	c.RecordCrops([]string{"crop3"})
	if !reflect.DeepEqual(c.MentionedCrops, want) {
		t.Errorf("after re-mention = %v, want %v", c.MentionedCrops, want)
	}

	last, ok := c.LastCrop()
	if !ok || last != "crop6" {
		t.Errorf("LastCrop = %q/%v", last, ok)
	}
}

func TestPerUserSerialization(t *testing.T) {
	s := NewStore()
	const turns = 50

	var wg sync.WaitGroup
	for i := 0; i < turns; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			c, release := s.Acquire("u1", Defaults{})
			defer release()
			c.AppendUserTurn(fmt.Sprintf("message %d", n))
			c.AppendBotTurn("reply", nlp.IntentGeneral, 0.1, nlp.NewEntitySet())
		}(i)
	}
	wg.Wait()

	c, release, ok := s.Peek("u1")
	if !ok {
		t.Fatal("context missing")
	}
	defer release()
	if len(c.History) != 2*turns {
		t.Errorf("history length = %d, want %d", len(c.History), 2*turns)
	}
	// Serialization keeps each user/bot pair adjacent.
	for i := 0; i < len(c.History); i += 2 {
		if c.History[i].Direction != DirectionUser || c.History[i+1].Direction != DirectionBot {
			t.Fatalf("interleaved turns at %d", i)
		}
	}
}

func TestSummarize(t *testing.T) {
	c := &Context{
		UserID:         "u1",
		Name:           "Ama",
		Region:         "west",
		CurrentTopic:   "disease",
		MentionedCrops: []string{"maize", "beans"},
		SessionStart:   time.Now().Add(-time.Minute),
	}
	c.AppendUserTurn("my maize is sick")
	c.AppendBotTurn("try fungicide", "disease", 0.9, nlp.NewEntitySet())
	c.AppendUserTurn("and the beans?")
	c.AppendBotTurn("check for rust", "disease", 0.8, nlp.NewEntitySet())

	sum := Summarize(c, time.Now())
	if sum.Stats.TotalMessages != 2 {
		t.Errorf("TotalMessages = %d, want 2", sum.Stats.TotalMessages)
	}
	if sum.Stats.TopicsDiscussed["disease"] != 2 {
		t.Errorf("TopicsDiscussed = %v", sum.Stats.TopicsDiscussed)
	}
	if sum.Engagement.TopicDiversity != 1 || sum.Engagement.CropDiversity != 2 {
		t.Errorf("engagement = %+v", sum.Engagement)
	}
	if sum.Engagement.AvgResponseLength <= 0 {
		t.Error("expected positive avg response length")
	}
}

func TestAnalyzeInsights(t *testing.T) {
	c := &Context{MentionedCrops: []string{}}

	ents := nlp.NewEntitySet()
	ents.Crops = []string{"maize"}
	c.AppendUserTurn("how do I plant maize")
	c.AppendBotTurn("guide...", "planting", 0.9, ents)
	c.AppendUserTurn("blah mystery question")
	c.AppendBotTurn("could you clarify", "general", 0.1, nlp.NewEntitySet())

	in := AnalyzeInsights(c)
	if in.PreferredCrops["maize"] != 1 {
		t.Errorf("PreferredCrops = %v", in.PreferredCrops)
	}
	if len(in.KnowledgeGaps) != 1 {
		t.Fatalf("KnowledgeGaps = %v", in.KnowledgeGaps)
	}
	if in.KnowledgeGaps[0] != "Low confidence handling: blah mystery question" {
		t.Errorf("gap = %q", in.KnowledgeGaps[0])
	}
	if len(in.TopicTransitions) != 1 || in.TopicTransitions[0] != "planting -> general" {
		t.Errorf("transitions = %v", in.TopicTransitions)
	}
	if !closeTo(in.AvgConfidence, 0.5) {
		t.Errorf("AvgConfidence = %v", in.AvgConfidence)
	}
}

func closeTo(a, b float64) bool {
	d := a - b
	return d < 1e-9 && d > -1e-9
}
