package knowledge

// Disease describes one crop disease with its field signs and handling.
type Disease struct {
	Name       string   `yaml:"name" json:"name"`
	Symptoms   []string `yaml:"symptoms" json:"symptoms"`
	Causes     []string `yaml:"causes" json:"causes"`
	Treatment  []string `yaml:"treatment" json:"treatment"`
	Prevention []string `yaml:"prevention" json:"prevention"`
}

// DiseaseInfo lists the known diseases for one crop. Diseases is empty,
// never nil, for crops without records.
type DiseaseInfo struct {
	Crop     string    `json:"crop"`
	Diseases []Disease `json:"diseases"`
}

// FertilizerStage is one application step in a crop's fertilizer program.
type FertilizerStage struct {
	Name        string `yaml:"name" json:"name"`
	Fertilizer  string `yaml:"fertilizer,omitempty" json:"fertilizer,omitempty"`
	NPK         string `yaml:"npk,omitempty" json:"npk,omitempty"`
	Rate        string `yaml:"rate,omitempty" json:"rate,omitempty"`
	Timing      string `yaml:"timing,omitempty" json:"timing,omitempty"`
	Application string `yaml:"application,omitempty" json:"application,omitempty"`
}

// FertilizerProgram is the full recommendation for one crop. When Found is
// false the program carries only the generic Note.
type FertilizerProgram struct {
	Crop    string            `json:"crop"`
	Found   bool              `json:"found"`
	Stages  []FertilizerStage `json:"stages"`
	Organic map[string]string `json:"organic,omitempty"`
	Note    string            `json:"note,omitempty"`
}

// GuideSection is one named step list within a planting guide.
type GuideSection struct {
	Title string   `yaml:"title" json:"title"`
	Steps []string `yaml:"steps" json:"steps"`
}

// TimelineStage marks a growth milestone and its expected duration.
type TimelineStage struct {
	Stage    string `yaml:"stage" json:"stage"`
	Duration string `yaml:"duration" json:"duration"`
}

// PlantingGuide is the complete planting procedure for one crop. For
// unknown crops Found is false and GeneralAdvice carries baseline steps.
type PlantingGuide struct {
	Crop          string          `json:"crop"`
	Found         bool            `json:"found"`
	Sections      []GuideSection  `json:"sections"`
	Timeline      []TimelineStage `json:"timeline,omitempty"`
	GeneralAdvice []string        `json:"general_advice,omitempty"`
}

// Pest describes one crop pest.
type Pest struct {
	Name           string   `yaml:"name" json:"name"`
	Identification string   `yaml:"identification" json:"identification"`
	Damage         string   `yaml:"damage" json:"damage"`
	Control        []string `yaml:"control" json:"control"`
	Prevention     []string `yaml:"prevention" json:"prevention"`
}

// PestInfo lists the known pests for one crop.
type PestInfo struct {
	Crop  string `json:"crop"`
	Pests []Pest `json:"pests"`
}

// CalendarEntry holds the care tasks for one period of the crop cycle.
type CalendarEntry struct {
	Period string   `yaml:"period" json:"period"`
	Tasks  []string `yaml:"tasks" json:"tasks"`
}

// CareCalendar is the periodized care plan for one crop.
type CareCalendar struct {
	Crop    string          `json:"crop"`
	Found   bool            `json:"found"`
	Entries []CalendarEntry `json:"entries"`
}

// YieldTips carries yield-maximization advice for one crop; for unknown
// crops Tips holds general guidance and Found is false.
type YieldTips struct {
	Crop  string   `json:"crop"`
	Found bool     `json:"found"`
	Tips  []string `json:"tips"`
}
