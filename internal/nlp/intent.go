package nlp

import (
	"regexp"
	"strings"
)

// intentSpec couples an intent label with its keyword list and regex
// patterns. Keywords score 1.0 per substring hit, patterns 1.5 per match.
type intentSpec struct {
	name     string
	keywords []string
	patterns []*regexp.Regexp
}

// typoCorrection is a plain substring substitution applied during
// normalization, in order.
type typoCorrection struct {
	wrong, right string
}

var typoCorrections = []typoCorrection{
	{"tomatoe", "tomato"},
	{"tomatos", "tomatoes"},
	{"casava", "cassava"},
	{"maze", "maize"},
	{"coffe", "coffee"},
	{"pineaple", "pineapple"},
	{"procedues", "procedures"},
	{"tommatoes", "tomatoes"},
	{"tommatoe", "tomato"},
}

// shortAcknowledgments and shortThanks drive the short-text override: a
// normalized message of at most two tokens equal to one of these phrases
// has its score forced to 3.0 (full confidence).
var (
	shortAcknowledgments = map[string]bool{"ok": true, "okay": true, "yes": true, "yeah": true, "sure": true}
	shortThanks          = map[string]bool{"thanks": true, "thank you": true}
)

func compileAll(exprs ...string) []*regexp.Regexp {
	out := make([]*regexp.Regexp, len(exprs))
	for i, e := range exprs {
		out[i] = regexp.MustCompile(e)
	}
	return out
}

// intentCatalogue is ordered. Selection scans it front to back and a later
// intent must score strictly higher to displace an earlier one, so ties
// resolve to the earliest entry. Keep the order stable.
var intentCatalogue = []intentSpec{
	{
		name:     IntentGreeting,
		keywords: []string{"hello", "hi", "hey", "good morning", "good afternoon", "good evening", "greetings", "howdy"},
		patterns: compileAll(`\b(hello|hi|hey)\b`, `good\s+(morning|afternoon|evening)`, `\bgreetings?\b`),
	},
	{
		name:     IntentThanks,
		keywords: []string{"thank you", "thanks", "thank u", "thx", "appreciate", "grateful", "much obliged"},
		patterns: compileAll(`\bthank\s*you\b`, `\bthanks?\b`, `\bappreciate\b`, `\bgrateful\b`),
	},
	{
		name:     IntentPraise,
		keywords: []string{"good job", "well done", "excellent", "great", "awesome", "nice", "perfect", "helpful", "amazing", "wonderful", "fantastic"},
		patterns: compileAll(`\bgood\s+job\b`, `\bwell\s+done\b`, `\bexcellent\b`, `\bgreat\b`, `\bawesome\b`, `\bamazing\b`),
	},
	{
		name:     IntentAcknowledgment,
		keywords: []string{"okay", "ok", "alright", "yes", "yeah", "sure", "i see", "understood", "got it", "right"},
		patterns: compileAll(`\bokay?\b`, `\balright\b`, `\byes\b`, `\byeah\b`, `\bsure\b`, `\bgot\s+it\b`),
	},
	{
		name:     IntentClarification,
		keywords: []string{"what do you mean", "explain", "clarify", "i dont understand", "what about", "tell me more", "can you elaborate"},
		patterns: compileAll(`what\s+do\s+you\s+mean`, `\bexplain\b`, `\bclarify\b`, `dont?\s+understand`, `tell\s+me\s+more`),
	},
	{
		name:     IntentWeather,
		keywords: []string{"weather", "temperature", "rain", "rainfall", "climate", "forecast", "hot", "cold", "sunny", "cloudy", "humid", "dry", "wet"},
		patterns: compileAll(`\bweather\b`, `\btemperature\b`, `\brain\w*\b`, `\bclimate\b`, `\bforecast\b`),
	},
	{
		name:     IntentDisease,
		keywords: []string{"disease", "sick", "dying", "yellow", "spots", "blight", "virus", "fungus", "infection", "rot", "wilt", "brown", "problem", "issue"},
		patterns: compileAll(`\bdisease\b`, `\bsick\b`, `\bdying\b`, `\byellow\w*\b`, `\bspots?\b`, `\bblight\b`, `\bwilt\w*\b`),
	},
	{
		name:     IntentFertilizer,
		keywords: []string{"fertilizer", "fertiliser", "manure", "compost", "npk", "nutrients", "feed", "nutrition", "organic", "urea"},
		patterns: compileAll(`\bfertiliz\w*\b`, `\bmanure\b`, `\bcompost\b`, `\bnpk\b`, `\bnutrients?\b`, `\burea\b`),
	},
	{
		name:     IntentPlanting,
		keywords: []string{"plant", "planting", "sow", "sowing", "seed", "grow", "cultivation", "cultivate", "procedures", "how to plant", "when to plant"},
		patterns: compileAll(`\bplant\w*\b`, `\bsow\w*\b`, `\bgrow\w*\b`, `\bcultivat\w*\b`, `how\s+to\s+\w*plant\b`, `procedures?\b`),
	},
	{
		name:     IntentPest,
		keywords: []string{"pest", "insects", "caterpillar", "worm", "aphid", "control", "bug", "termite", "locust", "damage", "armyworm"},
		patterns: compileAll(`\bpests?\b`, `\binsects?\b`, `\bcaterpillars?\b`, `\bworms?\b`, `\baphids?\b`, `\bbugs?\b`, `\barmyworms?\b`),
	},
	{
		name:     IntentHarvest,
		keywords: []string{"harvest", "harvesting", "when to harvest", "maturity", "ready", "picking", "collection", "ripe"},
		patterns: compileAll(`\bharvest\w*\b`, `\bmaturity\b`, `\bready\b`, `\bpicking\b`, `\bripe\b`, `when\s+to\s+harvest`),
	},
	{
		name:     IntentYield,
		keywords: []string{"yield", "production", "maximize", "increase", "improve", "boost", "more", "better", "higher", "productivity"},
		patterns: compileAll(`\byield\b`, `\bproduction\b`, `\bmaximize\b`, `\bincrease\b`, `\bimprove\b`, `\bboost\b`),
	},
	{
		name:     IntentMarket,
		keywords: []string{"price", "market", "sell", "cost", "profit", "money", "buy", "trade", "business", "income"},
		patterns: compileAll(`\bprice\b`, `\bmarket\b`, `\bsell\w*\b`, `\bcost\b`, `\bprofit\b`, `\bmoney\b`, `\bbusiness\b`),
	},
}

var collapseSpaces = regexp.MustCompile(`\s+`)

// Classifier scores messages against the fixed intent catalogue.
type Classifier struct{}

func NewClassifier() *Classifier {
	return &Classifier{}
}

// Normalize lowercases, collapses whitespace, and applies the typo table.
func (c *Classifier) Normalize(text string) string {
	text = strings.ToLower(text)
	text = strings.TrimSpace(collapseSpaces.ReplaceAllString(text, " "))
	for _, tc := range typoCorrections {
		text = strings.ReplaceAll(text, tc.wrong, tc.right)
	}
	return text
}

// Classify scores the message against every intent and returns the best
// label with a confidence in [0,1]. It never fails: a message matching
// nothing comes back as IntentGeneral with confidence 0.1.
func (c *Classifier) Classify(text string) IntentResult {
	text = c.Normalize(text)
	sentiment := scoreSentiment(text)

	scores := make(map[string]float64, len(intentCatalogue))
	for _, spec := range intentCatalogue {
		var score float64
		for _, kw := range spec.keywords {
			if strings.Contains(text, kw) {
				score += 1.0
			}
		}
		for _, p := range spec.patterns {
			if p.MatchString(text) {
				score += 1.5
			}
		}
		if score > 0 {
			scores[spec.name] = score
		}
	}

	// Short replies like "ok" or "thanks" carry little lexical signal, so
	// force the score instead of accumulating it.
	if len(strings.Fields(text)) <= 2 {
		if shortAcknowledgments[text] {
			scores[IntentAcknowledgment] = 3.0
		} else if shortThanks[text] {
			scores[IntentThanks] = 3.0
		}
	}

	best := IntentGeneral
	confidence := 0.1
	if len(scores) > 0 {
		var bestScore float64
		// Catalogue order, not map order: ties go to the earliest intent.
		for _, spec := range intentCatalogue {
			if s, ok := scores[spec.name]; ok && s > bestScore {
				best = spec.name
				bestScore = s
			}
		}
		confidence = bestScore / 3.0
		if confidence > 1.0 {
			confidence = 1.0
		}
	}

	return IntentResult{
		Intent:     best,
		Confidence: confidence,
		Sentiment:  sentiment,
		Scores:     scores,
	}
}
