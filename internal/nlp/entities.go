package nlp

import (
	"regexp"
	"strings"
)

// cropEntry maps a canonical crop name to its surface-form variants,
// including common misspellings. Order is significant: the first matching
// crop in this table becomes the resolved crop for single-crop responses.
type cropEntry struct {
	canonical string
	variants  []string
}

var cropTable = []cropEntry{
	{"maize", []string{"maize", "corn", "maze", "sweet corn"}},
	{"tomatoes", []string{"tomato", "tomatos", "tomatoe", "tomatoes"}},
	{"pepper", []string{"pepper", "peppers", "chili", "chilies", "bell pepper", "hot pepper"}},
	{"beans", []string{"bean", "beans", "legume", "legumes", "black beans", "kidney beans"}},
	{"cassava", []string{"cassava", "casava", "manioc", "yuca", "tapioca"}},
	{"plantain", []string{"plantain", "plantains", "cooking banana"}},
	{"rice", []string{"rice", "paddy", "paddy rice"}},
	{"yam", []string{"yam", "yams"}},
	{"cocoa", []string{"cocoa", "cacao", "chocolate tree"}},
	{"coffee", []string{"coffee", "coffe", "arabica", "robusta"}},
	{"oil_palm", []string{"oil palm", "palm oil", "palm tree", "elaeis"}},
	{"pineapple", []string{"pineapple", "pineaple", "ananas"}},
	{"banana", []string{"banana", "bananas"}},
	{"sweet_potato", []string{"sweet potato", "sweet potatoes", "yam potato"}},
	{"irish_potato", []string{"irish potato", "potato", "potatoes", "white potato"}},
	{"groundnuts", []string{"groundnut", "groundnuts", "peanut", "peanuts"}},
	{"cotton", []string{"cotton"}},
	{"millet", []string{"millet", "pearl millet"}},
	{"sorghum", []string{"sorghum", "guinea corn"}},
	{"okra", []string{"okra", "lady finger"}},
	{"onion", []string{"onion", "onions"}},
	{"garlic", []string{"garlic"}},
	{"cabbage", []string{"cabbage"}},
	{"carrot", []string{"carrot", "carrots"}},
	{"cucumber", []string{"cucumber", "cucumbers"}},
	{"eggplant", []string{"eggplant", "aubergine", "garden egg"}},
	{"spinach", []string{"spinach"}},
}

type regionEntry struct {
	canonical string
	variants  []string
}

// regionTable covers the ten Cameroon regions with capital-city and
// abbreviation variants.
var regionTable = []regionEntry{
	{"centre", []string{"centre", "central", "center", "yaounde", "yaoundé"}},
	{"littoral", []string{"littoral", "douala", "coastal"}},
	{"west", []string{"west", "western", "bafoussam"}},
	{"northwest", []string{"northwest", "north west", "bamenda", "nw"}},
	{"southwest", []string{"southwest", "south west", "buea", "sw"}},
	{"east", []string{"east", "eastern", "bertoua"}},
	{"north", []string{"north", "northern", "garoua"}},
	{"far_north", []string{"far north", "extreme north", "maroua", "far-north"}},
	{"adamawa", []string{"adamawa", "adamaoua", "ngaoundere", "ngaoundéré"}},
	{"south", []string{"south", "southern", "ebolowa"}},
}

var diseaseVocabulary = []string{
	"blight", "mosaic", "streak", "rot", "wilt", "spot", "virus",
	"fungus", "mildew", "rust", "canker", "bacterial", "yellowing",
}

var pestVocabulary = []string{
	"armyworm", "fall armyworm", "aphid", "whitefly", "caterpillar",
	"termite", "locust", "weevil", "bollworm", "stem borer", "cutworm",
}

var quantityPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(\d+(?:\.\d+)?)\s*(kg|kilogram|gram|g|ton|tonne|bag|sack|hectare|ha|liter|litre|l)`),
	regexp.MustCompile(`(\d+(?:\.\d+)?)\s*(percent|%)`),
	regexp.MustCompile(`(\d+)\s*(times?|x)`),
}

var timePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(\d+)\s*(day|week|month|year)s?`),
	regexp.MustCompile(`(today|tomorrow|yesterday)`),
	regexp.MustCompile(`(this|next|last)\s+(week|month|year|season)`),
	regexp.MustCompile(`(rainy|dry)\s+season`),
	regexp.MustCompile(`(morning|afternoon|evening|night)`),
	regexp.MustCompile(`(january|february|march|april|may|june|july|august|september|october|november|december)`),
}

// Extractor performs dictionary and pattern matching over raw text.
//
// Crop, region, disease, and pest matching is substring containment over
// the lowercased input, not tokenized matching: a variant embedded inside
// another word still matches. That imprecision is intentional and kept for
// compatibility with existing conversation behavior.
type Extractor struct{}

func NewExtractor() *Extractor {
	return &Extractor{}
}

// ExtractAll runs every extraction pass over the same lowercased text.
// It never fails; absent categories come back as empty slices.
func (e *Extractor) ExtractAll(text string) EntitySet {
	lower := strings.ToLower(text)
	return EntitySet{
		Crops:          e.Crops(lower),
		Regions:        e.Regions(lower),
		Diseases:       matchVocabulary(lower, diseaseVocabulary),
		Pests:          matchVocabulary(lower, pestVocabulary),
		Quantities:     matchPairs(lower, quantityPatterns),
		TimeReferences: matchPairs(lower, timePatterns),
	}
}

// Crops returns canonical crop names whose variants appear in the text,
// in crop-table order, each at most once.
func (e *Extractor) Crops(text string) []string {
	lower := strings.ToLower(text)
	found := []string{}
	for _, entry := range cropTable {
		for _, v := range entry.variants {
			if strings.Contains(lower, v) {
				found = append(found, entry.canonical)
				break
			}
		}
	}
	return found
}

// Regions returns canonical region names whose variants appear in the text.
func (e *Extractor) Regions(text string) []string {
	lower := strings.ToLower(text)
	found := []string{}
	for _, entry := range regionTable {
		for _, v := range entry.variants {
			if strings.Contains(lower, v) {
				found = append(found, entry.canonical)
				break
			}
		}
	}
	return found
}

func matchVocabulary(lower string, vocab []string) []string {
	found := []string{}
	for _, term := range vocab {
		if strings.Contains(lower, term) {
			found = append(found, term)
		}
	}
	return found
}

// matchPairs applies each pattern and joins the captured groups of every
// match with a single space, deduplicating while preserving order.
func matchPairs(lower string, patterns []*regexp.Regexp) []string {
	found := []string{}
	seen := map[string]bool{}
	for _, p := range patterns {
		for _, m := range p.FindAllStringSubmatch(lower, -1) {
			parts := make([]string, 0, len(m)-1)
			for _, g := range m[1:] {
				if g != "" {
					parts = append(parts, g)
				}
			}
			joined := strings.Join(parts, " ")
			if joined != "" && !seen[joined] {
				seen[joined] = true
				found = append(found, joined)
			}
		}
	}
	return found
}
