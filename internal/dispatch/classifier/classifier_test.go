// internal/dispatch/classifier/classifier_test.go
package classifier

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"lead-dispatch-workers/internal/models"
	"lead-dispatch-workers/pkg/registry"
)

func TestClassify_Tiers(t *testing.T) {
	c := New(registry.DefaultRuleset())

	tests := []struct {
		name             string
		req              models.NormalizedRequest
		expectedCategory string
		expectedConf     float64
		expectedTier     string
	}{
		{
			name: "tier 1 form source match",
			req: models.NormalizedRequest{
				models.FieldFormSource: "emergency_tow_request",
			},
			expectedCategory: "Boat Towing",
			expectedConf:     models.ConfidenceFormSource,
			expectedTier:     TierFormSource,
		},
		{
			name: "tier 1 wins over keywords elsewhere in the payload",
			req: models.NormalizedRequest{
				models.FieldFormSource: "engine_service_form",
				models.FieldNotes:      "also want a full detail, wax and polish",
			},
			expectedCategory: "Engine Repair",
			expectedConf:     models.ConfidenceFormSource,
			expectedTier:     TierFormSource,
		},
		{
			name: "tier 2 exact phrase match is case-insensitive",
			req: models.NormalizedRequest{
				models.FieldServiceRequested: "Bottom Painting",
			},
			expectedCategory: "Bottom Painting",
			expectedConf:     models.ConfidenceExactMatch,
			expectedTier:     TierExactMatch,
		},
		{
			name: "tier 3 keyword scan over free text",
			req: models.NormalizedRequest{
				models.FieldNotes: "there are barnacles all over the hull",
			},
			expectedCategory: "Hull Cleaning",
			expectedConf:     models.ConfidenceKeyword,
			expectedTier:     TierKeyword,
		},
		{
			name: "tier 3 first keyword in table order decides",
			req: models.NormalizedRequest{
				// "tow" precedes "engine" in the keyword table.
				models.FieldNotes: "engine died, need a tow back to the marina",
			},
			expectedCategory: "Boat Towing",
			expectedConf:     models.ConfidenceKeyword,
			expectedTier:     TierKeyword,
		},
		{
			name: "unknown form source falls through to later tiers",
			req: models.NormalizedRequest{
				models.FieldFormSource: "mystery_form_v9",
				models.FieldNotes:      "gelcoat is cracking near the transom",
			},
			expectedCategory: "Fiberglass Repair",
			expectedConf:     models.ConfidenceKeyword,
			expectedTier:     TierKeyword,
		},
		{
			name: "no rule matches falls back to the default category",
			req: models.NormalizedRequest{
				models.FieldNotes: "just looking around",
			},
			expectedCategory: "General Maintenance",
			expectedConf:     models.ConfidenceDefault,
			expectedTier:     TierDefault,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, tier := c.Classify(tt.req)
			assert.Equal(t, tt.expectedCategory, result.PrimaryCategory)
			assert.Equal(t, tt.expectedConf, result.Confidence)
			assert.Equal(t, tt.expectedTier, tier)
			assert.NotEmpty(t, result.Reasoning)
			assert.NotEmpty(t, result.SpecificServices)
		})
	}
}

func TestClassify_SpecificServices(t *testing.T) {
	c := New(registry.DefaultRuleset())

	t.Run("phrase and word overlap", func(t *testing.T) {
		result, _ := c.Classify(models.NormalizedRequest{
			models.FieldFormSource: "engine_service_form",
			models.FieldNotes:      "needs an impeller replacement and an oil change",
		})
		assert.Equal(t, []string{"impeller replacement", "oil change"}, result.SpecificServices)
		assert.Equal(t, models.ComplexityModerate, result.Complexity)
	})

	t.Run("word overlap without the full phrase", func(t *testing.T) {
		result, _ := c.Classify(models.NormalizedRequest{
			models.FieldFormSource: "engine_service_form",
			models.FieldNotes:      "the impeller is shot",
		})
		assert.Equal(t, []string{"impeller replacement"}, result.SpecificServices)
		assert.Equal(t, models.ComplexitySimple, result.Complexity)
	})

	t.Run("no vocabulary match falls back to the category", func(t *testing.T) {
		result, _ := c.Classify(models.NormalizedRequest{
			models.FieldFormSource: "engine_service_form",
		})
		assert.Equal(t, []string{"Engine Repair"}, result.SpecificServices)
		assert.Equal(t, models.ComplexitySimple, result.Complexity)
	})
}

func TestClassify_Priority(t *testing.T) {
	c := New(registry.DefaultRuleset())

	tests := []struct {
		name     string
		req      models.NormalizedRequest
		expected string
	}{
		{
			name: "towing is inherently urgent",
			req: models.NormalizedRequest{
				models.FieldFormSource: "towing_quote_form",
			},
			expected: models.PriorityHigh,
		},
		{
			name: "urgency keyword in free text",
			req: models.NormalizedRequest{
				models.FieldFormSource: "detailing_quote_form",
				models.FieldNotes:      "need this done asap before the weekend",
			},
			expected: models.PriorityHigh,
		},
		{
			name: "routine request is normal",
			req: models.NormalizedRequest{
				models.FieldFormSource: "detailing_quote_form",
				models.FieldNotes:      "whenever you have availability",
			},
			expected: models.PriorityNormal,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, _ := c.Classify(tt.req)
			assert.Equal(t, tt.expected, result.Priority)
		})
	}
}

func TestClassify_Duration(t *testing.T) {
	c := New(registry.DefaultRuleset())

	tests := []struct {
		source   string
		expected string
	}{
		{"towing_quote_form", models.DurationShort},
		{"bottom_paint_form", models.DurationLong},
		{"engine_service_form", models.DurationMedium},
	}

	for _, tt := range tests {
		result, _ := c.Classify(models.NormalizedRequest{
			models.FieldFormSource: tt.source,
		})
		assert.Equal(t, tt.expected, result.EstimatedDuration, "form source %s", tt.source)
	}
}
