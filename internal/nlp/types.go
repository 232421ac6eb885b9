package nlp

// Intent labels form a closed catalogue. Classification always returns one
// of these or IntentGeneral; there is no error path.
const (
	IntentGreeting       = "greeting"
	IntentThanks         = "thanks"
	IntentPraise         = "praise"
	IntentAcknowledgment = "acknowledgment"
	IntentClarification  = "clarification"
	IntentWeather        = "weather"
	IntentDisease        = "disease"
	IntentFertilizer     = "fertilizer"
	IntentPlanting       = "planting"
	IntentPest           = "pest"
	IntentHarvest        = "harvest"
	IntentYield          = "yield"
	IntentMarket         = "market"
	IntentGeneral        = "general"
)

// Sentiment holds derived ratio scores in [0,1]. Compound is
// positive minus negative and may be negative.
type Sentiment struct {
	Positive float64 `json:"positive"`
	Negative float64 `json:"negative"`
	Neutral  float64 `json:"neutral"`
	Compound float64 `json:"compound"`
}

// IntentResult is the outcome of classifying one message.
type IntentResult struct {
	Intent     string             `json:"intent"`
	Confidence float64            `json:"confidence"`
	Sentiment  Sentiment          `json:"sentiment"`
	Scores     map[string]float64 `json:"all_scores"`
}

// EntitySet groups every entity category extracted from one message.
// All slices are non-nil; an absent category is an empty slice.
type EntitySet struct {
	Crops          []string `json:"crops"`
	Regions        []string `json:"regions"`
	Diseases       []string `json:"diseases"`
	Pests          []string `json:"pests"`
	Quantities     []string `json:"quantities"`
	TimeReferences []string `json:"time_references"`
}

// NewEntitySet returns an EntitySet with every category initialized to an
// empty slice so JSON encoding never emits null.
func NewEntitySet() EntitySet {
	return EntitySet{
		Crops:          []string{},
		Regions:        []string{},
		Diseases:       []string{},
		Pests:          []string{},
		Quantities:     []string{},
		TimeReferences: []string{},
	}
}
