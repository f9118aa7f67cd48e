// internal/dispatch/engine/engine_test.go
package engine

import (
	"encoding/json"
	"fmt"
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lead-dispatch-workers/internal/common/config"
	"lead-dispatch-workers/internal/common/errors"
	"lead-dispatch-workers/internal/common/logger"
	"lead-dispatch-workers/internal/models"
	"lead-dispatch-workers/pkg/registry"
)

var fixedNow = time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)

func testEngine(t *testing.T, seed int64) *Engine {
	t.Helper()

	ids := 0
	return New(
		registry.DefaultRuleset(),
		config.DispatchConfig{
			RecencyBoostAfter:    24 * time.Hour,
			RecencyPenaltyWithin: 2 * time.Hour,
			RecencyBoost:         1.2,
			RecencyPenalty:       0.8,
			LoadThreshold:        10,
			LoadPenalty:          0.5,
		},
		logger.NewTestLogger(t),
		Options{
			Rand: rand.New(rand.NewSource(seed)),
			Now:  func() time.Time { return fixedNow },
			NewID: func() string {
				ids++
				return fmt.Sprintf("dispatch-%04d", ids)
			},
		},
	)
}

func hoursAgo(h float64) *time.Time {
	ts := fixedNow.Add(-time.Duration(h * float64(time.Hour)))
	return &ts
}

func emergencyTowLead() map[string]string {
	return map[string]string{
		"form_source":       "emergency_tow_request",
		"service_requested": "",
		"notes":             "Engine overheating, need immediate tow",
		"postal_code":       "33149",
		"email":             "skipper@example.com",
	}
}

func towVendors() []models.VendorRecord {
	return []models.VendorRecord{
		{
			ID:                "V1",
			CompanyName:       "Miami Rapid Tow",
			Status:            models.VendorStatusActive,
			TakingNewWork:     true,
			ServiceCategories: []string{"Boat Towing"},
			CoverageType:      models.CoverageCounty,
			CoverageValues:    []string{"Miami-Dade, FL"},
			PerformanceScore:  0.9,
			LastAssignedAt:    hoursAgo(30),
		},
		{
			ID:                "V2",
			CompanyName:       "Nationwide Marine Assist",
			Status:            models.VendorStatusActive,
			TakingNewWork:     true,
			ServiceCategories: []string{"Boat Towing"},
			CoverageType:      models.CoverageNational,
			PerformanceScore:  0.5,
			LastAssignedAt:    hoursAgo(1),
		},
	}
}

// The worked emergency-tow scenario: a high-priority towing lead in
// Miami-Dade with two eligible vendors. V1 weighs 0.9*1.2 = 1.08, V2
// weighs 0.5*0.8 = 0.4, so V1 wins deterministically.
func TestDispatch_EmergencyTowScenario(t *testing.T) {
	e := testEngine(t, 1)

	result, err := e.Dispatch("tenant-1", emergencyTowLead(), towVendors())
	require.NoError(t, err)

	assert.Equal(t, "Boat Towing", result.Classification.PrimaryCategory)
	assert.Equal(t, models.ConfidenceFormSource, result.Classification.Confidence)
	assert.Equal(t, models.PriorityHigh, result.Classification.Priority)
	assert.Equal(t, "Miami-Dade", result.Classification.CoverageArea.County)
	assert.Equal(t, 2, result.CandidateCount)
	assert.Equal(t, "V1", result.SelectedVendorID)
	assert.True(t, result.Selected())
	assert.Equal(t, fixedNow, result.Timestamp)
}

func TestDispatch_Deterministic(t *testing.T) {
	lead := emergencyTowLead()
	vendors := towVendors()

	run := func(seed int64) []byte {
		result, err := testEngine(t, seed).Dispatch("tenant-1", lead, vendors)
		require.NoError(t, err)
		data, err := json.Marshal(result)
		require.NoError(t, err)
		return data
	}

	first := run(7)
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, run(7))
	}
}

// High priority ignores the random source entirely.
func TestDispatch_HighPrioritySeedIndependent(t *testing.T) {
	lead := emergencyTowLead()
	vendors := towVendors()

	for seed := int64(0); seed < 10; seed++ {
		result, err := testEngine(t, seed).Dispatch("tenant-1", lead, vendors)
		require.NoError(t, err)
		assert.Equal(t, "V1", result.SelectedVendorID, "seed %d", seed)
	}
}

func TestDispatch_UnresolvedPostalCodeKeepsNationalEligible(t *testing.T) {
	e := testEngine(t, 1)

	lead := emergencyTowLead()
	lead["postal_code"] = "not-a-zip"

	result, err := e.Dispatch("tenant-1", lead, towVendors())
	require.NoError(t, err)

	// V1's county coverage cannot match an unresolved area; only the
	// national vendor remains.
	assert.True(t, result.Classification.CoverageArea.IsZero())
	assert.Equal(t, 1, result.CandidateCount)
	assert.Equal(t, "V2", result.SelectedVendorID)
}

func TestDispatch_NoEligibleVendorIsAValidOutcome(t *testing.T) {
	e := testEngine(t, 1)

	tests := []struct {
		name     string
		vendors  []models.VendorRecord
		contains string
	}{
		{
			name:     "empty pool",
			vendors:  nil,
			contains: "empty",
		},
		{
			name: "nobody taking new work",
			vendors: func() []models.VendorRecord {
				vs := towVendors()
				for i := range vs {
					vs[i].TakingNewWork = false
				}
				return vs
			}(),
			contains: "active",
		},
		{
			name: "wrong category",
			vendors: func() []models.VendorRecord {
				vs := towVendors()
				for i := range vs {
					vs[i].ServiceCategories = []string{"Boat Detailing"}
				}
				return vs
			}(),
			contains: "Boat Towing",
		},
		{
			name: "out of area",
			vendors: []models.VendorRecord{
				{
					ID:                "V3",
					Status:            models.VendorStatusActive,
					TakingNewWork:     true,
					ServiceCategories: []string{"Boat Towing"},
					CoverageType:      models.CoverageState,
					CoverageValues:    []string{"WA"},
					PerformanceScore:  0.9,
				},
			},
			contains: "request area",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := e.Dispatch("tenant-1", emergencyTowLead(), tt.vendors)
			require.NoError(t, err)
			assert.False(t, result.Selected())
			assert.Empty(t, result.SelectedVendorID)
			assert.Equal(t, 0, result.CandidateCount)
			assert.Contains(t, result.SelectionReason, tt.contains)
		})
	}
}

func TestDispatch_LeadWithoutContactIsRejected(t *testing.T) {
	e := testEngine(t, 1)

	lead := emergencyTowLead()
	delete(lead, "email")

	result, err := e.Dispatch("tenant-1", lead, towVendors())
	assert.Nil(t, result)
	require.Error(t, err)

	stdErr, ok := err.(*errors.StandardError)
	require.True(t, ok)
	assert.Equal(t, errors.ErrCodeInvalidLead, stdErr.Code)
}

func TestDispatch_InvalidVendorRecordIsRejected(t *testing.T) {
	e := testEngine(t, 1)

	vendors := towVendors()
	vendors[1].CoverageType = "galaxy"

	result, err := e.Dispatch("tenant-1", emergencyTowLead(), vendors)
	assert.Nil(t, result)
	require.Error(t, err)

	stdErr, ok := err.(*errors.StandardError)
	require.True(t, ok)
	assert.Equal(t, errors.ErrCodeInvalidVendorRecord, stdErr.Code)
	assert.Contains(t, stdErr.Details, "V2")
}

func TestDispatch_UnmappedLabelsAreDroppedNotFatal(t *testing.T) {
	e := testEngine(t, 1)

	lead := emergencyTowLead()
	lead["utm_campaign"] = "spring-blast"
	lead["Favorite Color"] = "teal"

	result, err := e.Dispatch("tenant-1", lead, towVendors())
	require.NoError(t, err)
	assert.Equal(t, "V1", result.SelectedVendorID)
}
