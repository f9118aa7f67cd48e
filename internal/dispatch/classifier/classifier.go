// internal/dispatch/classifier/classifier.go
package classifier

import (
	"fmt"
	"strings"

	"lead-dispatch-workers/internal/models"
	"lead-dispatch-workers/pkg/registry"
)

// Tier labels reported alongside a classification, used for metrics
// and the human-readable reasoning string.
const (
	TierFormSource = "form_source"
	TierExactMatch = "exact_match"
	TierKeyword    = "keyword"
	TierDefault    = "default"
)

// Classifier turns normalized request text into a structured service
// classification. It is a pure function of its input and the loaded
// ruleset: no I/O, no mutable state, safe for concurrent use.
type Classifier struct {
	rules *registry.Ruleset
}

func New(rules *registry.Ruleset) *Classifier {
	return &Classifier{rules: rules}
}

// Classify resolves the primary category through three rule tiers
// evaluated in strict order, first match wins:
//
//  1. form-source identifier lookup (confidence 0.90)
//  2. exact "service requested" phrase lookup (confidence 0.85)
//  3. ordered keyword scan over the combined free text (confidence 0.70)
//
// When no tier matches, the ruleset's default category applies with
// confidence 0.30. The coverage area is left zero; geography is
// resolved separately.
func (c *Classifier) Classify(req models.NormalizedRequest) (models.ClassificationResult, string) {
	text := strings.ToLower(req.FreeText())

	category, confidence, tier, reasoning := c.resolveCategory(req, text)

	services := c.specificServices(category, text)
	if len(services) == 0 {
		services = []string{category}
	}

	return models.ClassificationResult{
		PrimaryCategory:   category,
		SpecificServices:  services,
		Confidence:        confidence,
		Reasoning:         reasoning,
		Priority:          c.priority(category, text),
		Complexity:        complexityFor(len(services)),
		EstimatedDuration: c.duration(category),
	}, tier
}

func (c *Classifier) resolveCategory(req models.NormalizedRequest, text string) (string, float64, string, string) {
	source := strings.ToLower(req.Get(models.FieldFormSource))
	if source != "" {
		if category, ok := c.rules.FormSources[source]; ok {
			return category, models.ConfidenceFormSource, TierFormSource,
				fmt.Sprintf("form source %q is a %s form", source, category)
		}
	}

	phrase := strings.ToLower(req.Get(models.FieldServiceRequested))
	if phrase != "" {
		if category, ok := c.rules.ServicePhrases[phrase]; ok {
			return category, models.ConfidenceExactMatch, TierExactMatch,
				fmt.Sprintf("requested service %q matched exactly", phrase)
		}
	}

	if text != "" {
		for _, rule := range c.rules.Keywords {
			if strings.Contains(text, rule.Keyword) {
				return rule.Category, models.ConfidenceKeyword, TierKeyword,
					fmt.Sprintf("keyword %q found in request text", rule.Keyword)
			}
		}
	}

	return c.rules.DefaultCategory, models.ConfidenceDefault, TierDefault,
		"no classification rule matched, defaulting"
}

// specificServices scans the category's vocabulary for services the
// request text mentions, preserving vocabulary order. A service
// matches on full-phrase substring or on sharing a significant word
// with the text.
func (c *Classifier) specificServices(category, text string) []string {
	if text == "" {
		return nil
	}

	words := wordSet(text)

	var matched []string
	for _, service := range c.rules.CategoryServices[category] {
		lowered := strings.ToLower(service)
		if strings.Contains(text, lowered) || sharesWord(lowered, words) {
			matched = append(matched, service)
		}
	}
	return matched
}

func (c *Classifier) priority(category, text string) string {
	for _, urgent := range c.rules.UrgentCategories {
		if urgent == category {
			return models.PriorityHigh
		}
	}
	for _, keyword := range c.rules.UrgencyKeywords {
		if strings.Contains(text, keyword) {
			return models.PriorityHigh
		}
	}
	return models.PriorityNormal
}

func (c *Classifier) duration(category string) string {
	for _, short := range c.rules.ShortDurationCategories {
		if short == category {
			return models.DurationShort
		}
	}
	for _, long := range c.rules.LongDurationCategories {
		if long == category {
			return models.DurationLong
		}
	}
	return models.DurationMedium
}

func complexityFor(serviceCount int) string {
	switch {
	case serviceCount <= 1:
		return models.ComplexitySimple
	case serviceCount <= 3:
		return models.ComplexityModerate
	default:
		return models.ComplexityComplex
	}
}

// sharesWord reports whether any significant word of the service name
// appears as a whole word in the request text. Short words ("of",
// "and") are skipped to avoid spurious overlap.
func sharesWord(service string, textWords map[string]struct{}) bool {
	for _, w := range strings.Fields(service) {
		if len(w) <= 3 {
			continue
		}
		if _, ok := textWords[w]; ok {
			return true
		}
	}
	return false
}

func wordSet(text string) map[string]struct{} {
	fields := strings.FieldsFunc(text, func(r rune) bool {
		return !('a' <= r && r <= 'z') && !('0' <= r && r <= '9')
	})
	set := make(map[string]struct{}, len(fields))
	for _, f := range fields {
		set[f] = struct{}{}
	}
	return set
}
