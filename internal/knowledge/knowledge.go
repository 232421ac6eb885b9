// Package knowledge holds the agricultural reference data the responder
// renders from: per-crop disease records, fertilizer programs, planting
// procedures, pest records, care calendars, and yield tips. The data ships
// as embedded YAML so the binary is self-contained.
//
// Every getter succeeds for every input. Unknown crops produce a
// zero-value result with Found == false and, where the data has one, a
// general-advice fallback.
package knowledge

import (
	"embed"
	"fmt"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed data/*.yaml
var dataFS embed.FS

type cropFertilizer struct {
	Stages  []FertilizerStage `yaml:"stages"`
	Organic map[string]string `yaml:"organic"`
}

type cropPlanting struct {
	Sections []GuideSection  `yaml:"sections"`
	Timeline []TimelineStage `yaml:"timeline"`
}

// Base is the loaded knowledge base. Construct with New; all lookups are
// read-only and safe for concurrent use.
type Base struct {
	diseases    map[string][]Disease
	fertilizers map[string]cropFertilizer
	planting    map[string]cropPlanting
	pests       map[string][]Pest
	calendar    map[string][]CalendarEntry
	yieldTips   map[string][]string
}

// New parses the embedded data files into a Base.
func New() (*Base, error) {
	b := &Base{}
	if err := loadFile("data/diseases.yaml", &b.diseases); err != nil {
		return nil, err
	}
	if err := loadFile("data/fertilizers.yaml", &b.fertilizers); err != nil {
		return nil, err
	}
	if err := loadFile("data/planting.yaml", &b.planting); err != nil {
		return nil, err
	}
	if err := loadFile("data/pests.yaml", &b.pests); err != nil {
		return nil, err
	}
	if err := loadFile("data/calendar.yaml", &b.calendar); err != nil {
		return nil, err
	}
	if err := loadFile("data/yield_tips.yaml", &b.yieldTips); err != nil {
		return nil, err
	}
	return b, nil
}

func loadFile(name string, out any) error {
	raw, err := dataFS.ReadFile(name)
	if err != nil {
		return fmt.Errorf("reading %s: %w", name, err)
	}
	if err := yaml.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("parsing %s: %w", name, err)
	}
	return nil
}

// DiseaseInfo returns the disease records for a crop. The list is empty
// for crops without records.
func (b *Base) DiseaseInfo(crop string) DiseaseInfo {
	diseases := b.diseases[normalizeCrop(crop)]
	if diseases == nil {
		diseases = []Disease{}
	}
	return DiseaseInfo{Crop: crop, Diseases: diseases}
}

// FertilizerProgram returns the fertilizer program for a crop, or a
// generic balanced-NPK note when no program exists.
func (b *Base) FertilizerProgram(crop string) FertilizerProgram {
	cf, ok := b.fertilizers[normalizeCrop(crop)]
	if !ok {
		return FertilizerProgram{
			Crop:   crop,
			Stages: []FertilizerStage{},
			Note:   "General recommendation: Use balanced NPK 20-10-20 at 300kg/ha",
		}
	}
	return FertilizerProgram{Crop: crop, Found: true, Stages: cf.Stages, Organic: cf.Organic}
}

// Stage finds a named stage within a program; nil when absent.
func (p FertilizerProgram) Stage(name string) *FertilizerStage {
	for i := range p.Stages {
		if p.Stages[i].Name == name {
			return &p.Stages[i]
		}
	}
	return nil
}

// PlantingGuide returns the full planting procedure for a crop. Unknown
// crops get baseline general advice instead of sections.
func (b *Base) PlantingGuide(crop string) PlantingGuide {
	cp, ok := b.planting[normalizeCrop(crop)]
	if !ok {
		return PlantingGuide{
			Crop:     crop,
			Sections: []GuideSection{},
			GeneralAdvice: []string{
				"Prepare land by clearing and tilling",
				"Use certified seeds",
				"Plant at recommended spacing",
				"Apply fertilizer as needed",
				"Maintain proper weeding and watering",
			},
		}
	}
	return PlantingGuide{Crop: crop, Found: true, Sections: cp.Sections, Timeline: cp.Timeline}
}

// PestInfo returns the pest records for a crop.
func (b *Base) PestInfo(crop string) PestInfo {
	pests := b.pests[normalizeCrop(crop)]
	if pests == nil {
		pests = []Pest{}
	}
	return PestInfo{Crop: crop, Pests: pests}
}

// CareCalendar returns the periodized care plan for a crop, with a
// three-entry generic plan for unknown crops.
func (b *Base) CareCalendar(crop string) CareCalendar {
	entries, ok := b.calendar[normalizeCrop(crop)]
	if !ok {
		return CareCalendar{
			Crop: crop,
			Entries: []CalendarEntry{
				{Period: "planting", Tasks: []string{"Start of rainy season"}},
				{Period: "maintenance", Tasks: []string{"Regular weeding and fertilizing"}},
				{Period: "harvest", Tasks: []string{"When crop reaches maturity"}},
			},
		}
	}
	return CareCalendar{Crop: crop, Found: true, Entries: entries}
}

// YieldTips returns yield-maximization tips for a crop, falling back to
// general tips for unknown crops.
func (b *Base) YieldTips(crop string) YieldTips {
	tips, ok := b.yieldTips[normalizeCrop(crop)]
	if !ok {
		return YieldTips{
			Crop: crop,
			Tips: []string{
				"Use quality planting materials",
				"Apply appropriate fertilizers",
				"Control pests and diseases",
				"Maintain proper plant spacing",
				"Harvest at correct time",
			},
		}
	}
	return YieldTips{Crop: crop, Found: true, Tips: tips}
}

// Crops lists every crop that appears in at least one data file, sorted.
func (b *Base) Crops() []string {
	set := map[string]bool{}
	for c := range b.diseases {
		set[c] = true
	}
	for c := range b.fertilizers {
		set[c] = true
	}
	for c := range b.planting {
		set[c] = true
	}
	for c := range b.pests {
		set[c] = true
	}
	for c := range b.calendar {
		set[c] = true
	}
	for c := range b.yieldTips {
		set[c] = true
	}
	crops := make([]string, 0, len(set))
	for c := range set {
		crops = append(crops, c)
	}
	sort.Strings(crops)
	return crops
}

func normalizeCrop(crop string) string {
	return strings.ToLower(strings.TrimSpace(crop))
}
