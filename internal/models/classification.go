// internal/models/classification.go
package models

const (
	PriorityNormal = "normal"
	PriorityHigh   = "high"
)

const (
	ComplexitySimple   = "simple"
	ComplexityModerate = "moderate"
	ComplexityComplex  = "complex"
)

const (
	DurationShort  = "short"
	DurationMedium = "medium"
	DurationLong   = "long"
)

// Classification tier confidences. Confidence signals which rule tier
// produced the match, not a learned probability.
const (
	ConfidenceFormSource = 0.90
	ConfidenceExactMatch = 0.85
	ConfidenceKeyword    = 0.70
	ConfidenceDefault    = 0.30
)

// Area holds the resolved geography for a lead. All fields empty means
// geography could not be resolved; matching then degrades to national
// coverage only.
type Area struct {
	PostalCode string `json:"postalCode"`
	City       string `json:"city"`
	State      string `json:"state"`
	County     string `json:"county"`
}

// IsZero reports whether no geography was resolved.
func (a Area) IsZero() bool {
	return a.PostalCode == "" && a.City == "" && a.State == "" && a.County == ""
}

// ClassificationResult is the structured classification of one lead.
type ClassificationResult struct {
	PrimaryCategory   string   `json:"primaryCategory"`
	SpecificServices  []string `json:"specificServices"`
	Confidence        float64  `json:"confidence"`
	Reasoning         string   `json:"reasoning"`
	Priority          string   `json:"priority"`
	Complexity        string   `json:"complexity"`
	EstimatedDuration string   `json:"estimatedDuration"`
	CoverageArea      Area     `json:"coverageArea"`
}
