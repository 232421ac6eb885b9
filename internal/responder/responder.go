// Package responder turns a classified, entity-tagged message into a
// reply. Routing is a single dispatch on the winning intent; the only
// cross-turn state it consults is the user's current topic and the
// crop-mention history.
package responder

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	"agribot/internal/conversation"
	"agribot/internal/knowledge"
	"agribot/internal/nlp"
)

// Response type tags, a closed set.
const (
	TypeGreeting           = "greeting"
	TypeAcknowledgment     = "acknowledgment"
	TypeClarification      = "clarification_request"
	TypeDiagnosticInquiry  = "diagnostic_inquiry"
	TypeDiagnosticGuidance = "diagnostic_guidance"
	TypeDetailedGuidance   = "detailed_guidance"
	TypeTopicIntroduction  = "topic_introduction"
	TypeGeneralHelp        = "general_help"
	TypeContinuation       = "continuation_prompt"
	TypeWeatherInquiry     = "weather_inquiry"
)

// lowConfidence routes everything below it to a clarification request,
// whatever the matched intent.
const lowConfidence = 0.3

// maxGuideSteps bounds how many bullet items each rendered subsection
// carries so replies stay readable in chat.
const maxGuideSteps = 3

// maxGuideSections bounds how many subsections a guidance reply renders.
const maxGuideSections = 2

// maxListedDiseases bounds the disease list in a diagnostic reply.
const maxListedDiseases = 3

// KnowledgeBase is the slice of the knowledge base the responder renders
// from. All methods must succeed for any crop, returning zero-value
// structures for unknown ones.
type KnowledgeBase interface {
	PlantingGuide(crop string) knowledge.PlantingGuide
	DiseaseInfo(crop string) knowledge.DiseaseInfo
	FertilizerProgram(crop string) knowledge.FertilizerProgram
}

// Result is one generated reply.
type Result struct {
	Text      string   `json:"response"`
	Type      string   `json:"response_type"`
	FollowUps []string `json:"follow_up_suggestions"`
}

// Generator produces replies. Safe for sequential use only: the random
// source is not synchronized, and the per-user lock held during a turn
// already serializes calls.
type Generator struct {
	kb  KnowledgeBase
	rng *rand.Rand
}

// NewGenerator builds a Generator. A nil rng gets a time-seeded source;
// tests pass a fixed-seed rand to pin template selection.
func NewGenerator(kb KnowledgeBase, rng *rand.Rand) *Generator {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Generator{kb: kb, rng: rng}
}

// topicalIntents are the intents that move the conversation topic.
// Conversational intents (greeting, thanks, praise, acknowledgment,
// clarification) and the general fallback never do.
var topicalIntents = map[string]bool{
	nlp.IntentWeather:    true,
	nlp.IntentDisease:    true,
	nlp.IntentFertilizer: true,
	nlp.IntentPlanting:   true,
	nlp.IntentPest:       true,
	nlp.IntentHarvest:    true,
	nlp.IntentYield:      true,
	nlp.IntentMarket:     true,
}

// Generate routes the classified message to a reply. As a side effect it
// updates c.CurrentTopic when a topical intent is confidently matched.
// It never fails; every path has a templated fallback.
func (g *Generator) Generate(intent nlp.IntentResult, entities nlp.EntitySet, c *conversation.Context) Result {
	if intent.Confidence < lowConfidence {
		return Result{Text: clarificationText, Type: TypeClarification, FollowUps: clarificationFollowUps}
	}

	if topicalIntents[intent.Intent] {
		c.CurrentTopic = intent.Intent
	}

	switch intent.Intent {
	case nlp.IntentGreeting:
		return Result{
			Text:      fmt.Sprintf(g.pick(greetingTemplates), c.Name),
			Type:      TypeGreeting,
			FollowUps: greetingFollowUps,
		}
	case nlp.IntentThanks:
		return Result{Text: fmt.Sprintf(g.pick(thanksTemplates), c.Name), Type: TypeAcknowledgment}
	case nlp.IntentPraise:
		return Result{Text: fmt.Sprintf(g.pick(praiseTemplates), c.Name), Type: TypeAcknowledgment}
	case nlp.IntentAcknowledgment:
		return Result{Text: g.pick(acknowledgmentTemplates), Type: TypeContinuation}
	case nlp.IntentClarification:
		return Result{Text: clarificationText, Type: TypeClarification, FollowUps: clarificationFollowUps}
	case nlp.IntentPlanting:
		return g.planting(entities, c)
	case nlp.IntentDisease:
		return g.disease(entities, c)
	case nlp.IntentFertilizer:
		return g.fertilizer(entities, c)
	case nlp.IntentWeather:
		return g.weather(c)
	default:
		return g.general(entities)
	}
}

// resolveCrop picks the turn's crop: extracted entity first, then the
// most recently mentioned crop from context.
func resolveCrop(entities nlp.EntitySet, c *conversation.Context) (string, bool) {
	if len(entities.Crops) > 0 {
		return entities.Crops[0], true
	}
	return c.LastCrop()
}

func (g *Generator) planting(entities nlp.EntitySet, c *conversation.Context) Result {
	crop, ok := resolveCrop(entities, c)
	if !ok {
		return Result{Text: plantingCropPrompt, Type: TypeClarification, FollowUps: plantingPromptFollowUps}
	}

	guide := g.kb.PlantingGuide(crop)

	var b strings.Builder
	fmt.Fprintf(&b, g.pick(plantingIntros), crop)
	b.WriteString("\n\n")

	sections := guide.Sections
	if len(sections) > maxGuideSections {
		sections = sections[:maxGuideSections]
	}
	for _, sec := range sections {
		fmt.Fprintf(&b, "**%s:**\n", sec.Title)
		for _, step := range firstN(sec.Steps, maxGuideSteps) {
			fmt.Fprintf(&b, "• %s\n", step)
		}
		b.WriteString("\n")
	}
	if !guide.Found {
		for _, step := range firstN(guide.GeneralAdvice, maxGuideSteps) {
			fmt.Fprintf(&b, "• %s\n", step)
		}
		b.WriteString("\n")
	}
	fmt.Fprintf(&b, "This should get you started with %s! Would you like more details about fertilizing, pest control, or caring for the plants after planting?", crop)

	return Result{
		Text: b.String(),
		Type: TypeDetailedGuidance,
		FollowUps: []string{
			fmt.Sprintf("Fertilizer for %s", crop),
			fmt.Sprintf("Common diseases in %s", crop),
			fmt.Sprintf("When to harvest %s", crop),
			"Soil preparation tips",
		},
	}
}

func (g *Generator) disease(entities nlp.EntitySet, c *conversation.Context) Result {
	crop, ok := resolveCrop(entities, c)
	if !ok {
		return Result{Text: diseaseCropPrompt, Type: TypeDiagnosticInquiry, FollowUps: diseasePromptFollowUps}
	}

	info := g.kb.DiseaseInfo(crop)

	var b strings.Builder
	fmt.Fprintf(&b, "Let me help diagnose the issue with your %s.\n\n", crop)
	if len(info.Diseases) > 0 {
		fmt.Fprintf(&b, "Common diseases affecting %s include:\n\n", crop)
		for i, d := range info.Diseases {
			if i == maxListedDiseases {
				break
			}
			fmt.Fprintf(&b, "%d. %s\n", i+1, displayName(d.Name))
		}
		b.WriteString("\nTo give you more specific help, could you describe what you're seeing? Look for:\n")
		b.WriteString("• Changes in leaf color (yellow, brown, spotted)\n")
		b.WriteString("• Plant behavior (wilting, stunted growth)\n")
		b.WriteString("• Any visible damage or unusual marks")
	} else {
		b.WriteString("Could you describe the symptoms you're seeing? Changes in leaf color, wilting, spots, or unusual marks all help narrow down the cause.")
	}

	return Result{
		Text: b.String(),
		Type: TypeDiagnosticGuidance,
		FollowUps: []string{
			fmt.Sprintf("Prevention tips for %s", crop),
			fmt.Sprintf("Organic treatments for %s", crop),
			"How to apply fungicide",
			"Signs of plant recovery",
		},
	}
}

func (g *Generator) fertilizer(entities nlp.EntitySet, c *conversation.Context) Result {
	crop, ok := resolveCrop(entities, c)
	if !ok {
		return Result{Text: fertilizerCropPrompt, Type: TypeClarification}
	}

	program := g.kb.FertilizerProgram(crop)

	var b strings.Builder
	fmt.Fprintf(&b, "Here are the fertilizer recommendations for %s:\n\n", crop)
	if basal := program.Stage("basal_fertilizer"); basal != nil {
		fmt.Fprintf(&b, "**At Planting:** Use %s fertilizer at %s\n\n",
			orDefault(basal.NPK, "NPK"), orDefault(basal.Rate, "recommended rate"))
	}
	if top := program.Stage("top_dressing"); top != nil {
		fmt.Fprintf(&b, "**Top Dressing:** Apply %s at %s around %s\n\n",
			orDefault(top.Fertilizer, "Urea"), orDefault(top.Rate, "recommended rate"),
			orDefault(top.Timing, "4-6 weeks after planting"))
	}
	if !program.Found && program.Note != "" {
		b.WriteString(program.Note + "\n\n")
	}
	b.WriteString("Remember to consider your soil type and crop variety when applying fertilizers. Would you like specific application instructions or information about organic alternatives?")

	return Result{
		Text: b.String(),
		Type: TypeDetailedGuidance,
		FollowUps: []string{
			fmt.Sprintf("Organic fertilizer for %s", crop),
			"Soil testing advice",
			"Fertilizer application timing",
			"Signs of nutrient deficiency",
		},
	}
}

func (g *Generator) weather(c *conversation.Context) Result {
	text := fmt.Sprintf("I can help you understand how weather affects farming in %s region. ", c.Region) +
		"What specific weather information do you need? Current conditions, seasonal planning, or weather-related farming advice?"
	return Result{Text: text, Type: TypeWeatherInquiry, FollowUps: weatherFollowUps}
}

func (g *Generator) general(entities nlp.EntitySet) Result {
	if len(entities.Crops) > 0 {
		crop := entities.Crops[0]
		return Result{
			Text: fmt.Sprintf("I can help you with %s farming! What specifically would you like to know? "+
				"I can provide information about planting, diseases, fertilizers, pest control, and harvesting.", crop),
			Type: TypeTopicIntroduction,
			FollowUps: []string{
				fmt.Sprintf("How to plant %s", crop),
				fmt.Sprintf("Common diseases in %s", crop),
				fmt.Sprintf("Fertilizer for %s", crop),
				fmt.Sprintf("When to harvest %s", crop),
			},
		}
	}
	return Result{Text: generalHelpText, Type: TypeGeneralHelp, FollowUps: generalHelpFollowUps}
}

func (g *Generator) pick(pool []string) string {
	return pool[g.rng.Intn(len(pool))]
}

func firstN(items []string, n int) []string {
	if len(items) > n {
		return items[:n]
	}
	return items
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}

// displayName renders a stored key like "maize_streak_virus" for chat.
func displayName(key string) string {
	words := strings.Split(strings.ReplaceAll(key, "_", " "), " ")
	for i, w := range words {
		if w != "" {
			words[i] = strings.ToUpper(w[:1]) + w[1:]
		}
	}
	return strings.Join(words, " ")
}
