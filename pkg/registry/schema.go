// pkg/registry/schema.go
package registry

// Ruleset is the versioned classification and normalization data the
// dispatch engine loads once at process start. It is data, not code:
// taxonomy changes ship as a new ruleset file, the engine stays fixed.
type Ruleset struct {
	Version     string `json:"version"`
	LastUpdated string `json:"lastUpdated"`

	// FieldLabels maps lowercased human form labels to canonical field keys.
	FieldLabels map[string]string `json:"fieldLabels"`

	// FormSources maps a form-source identifier to a primary category
	// (tier 1, confidence 0.90).
	FormSources map[string]string `json:"formSources"`

	// ServicePhrases maps exact lowercased "service requested" text to a
	// primary category (tier 2, confidence 0.85).
	ServicePhrases map[string]string `json:"servicePhrases"`

	// Keywords is scanned in order; the first keyword found as a substring
	// of the lead's free text decides the category (tier 3, confidence
	// 0.70). Order is significant and preserved from the data file.
	Keywords []KeywordRule `json:"keywords"`

	// CategoryServices lists each category's specific-service vocabulary.
	CategoryServices map[string][]string `json:"categoryServices"`

	UrgencyKeywords  []string `json:"urgencyKeywords"`
	UrgentCategories []string `json:"urgentCategories"`

	ShortDurationCategories []string `json:"shortDurationCategories"`
	LongDurationCategories  []string `json:"longDurationCategories"`

	DefaultCategory string `json:"defaultCategory"`

	// PostalAreas is the offline postal-code dataset used by the
	// geography resolver.
	PostalAreas map[string]PostalArea `json:"postalAreas"`
}

// KeywordRule binds one keyword to a primary category.
type KeywordRule struct {
	Keyword  string `json:"keyword"`
	Category string `json:"category"`
}

// PostalArea is one postal code's resolved geography.
type PostalArea struct {
	City   string `json:"city"`
	State  string `json:"state"`
	County string `json:"county"`
}

// Categories returns the set of primary categories the ruleset knows.
func (r *Ruleset) Categories() []string {
	out := make([]string, 0, len(r.CategoryServices))
	for c := range r.CategoryServices {
		out = append(out, c)
	}
	return out
}
