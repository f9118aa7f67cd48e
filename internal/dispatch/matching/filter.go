// internal/dispatch/matching/filter.go
package matching

import (
	"fmt"

	"lead-dispatch-workers/internal/dispatch/geo"
	"lead-dispatch-workers/internal/models"
)

// Filter stages, in evaluation order. Each vendor is counted against
// the first stage that eliminates it.
const (
	StageAvailability = "availability"
	StageCategory     = "category"
	StageGeography    = "geography"
)

// FilterStats counts eliminations per stage so an empty candidate set
// can name the stage that emptied it.
type FilterStats struct {
	Availability int
	Category     int
	Geography    int
}

// ExhaustionReason describes why no candidate survived, identifying
// the last stage any vendor reached.
func (s FilterStats) ExhaustionReason(category string) string {
	switch {
	case s.Geography > 0:
		return fmt.Sprintf("no vendor covering the request area offers %s", category)
	case s.Category > 0:
		return fmt.Sprintf("no available vendor offers %s", category)
	case s.Availability > 0:
		return "no vendors are active and taking new work"
	default:
		return "vendor pool is empty"
	}
}

// Filter applies the hard eligibility constraints: active and taking
// new work, category capability, and geographic coverage. Vendors are
// returned in input order; the filter never reorders.
func Filter(vendors []models.VendorRecord, category string, area models.Area) ([]models.VendorRecord, FilterStats) {
	var stats FilterStats
	candidates := make([]models.VendorRecord, 0, len(vendors))

	for _, v := range vendors {
		if v.Status != models.VendorStatusActive || !v.TakingNewWork {
			stats.Availability++
			continue
		}
		if !v.HasCategory(category) {
			stats.Category++
			continue
		}
		if !geo.Covers(v.CoverageType, v.CoverageValues, area) {
			stats.Geography++
			continue
		}
		candidates = append(candidates, v)
	}

	return candidates, stats
}
