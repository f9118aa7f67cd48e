// internal/dispatch/geo/coverage.go
package geo

import (
	"strings"

	"lead-dispatch-workers/internal/models"
)

// Covers reports whether a vendor's declared coverage includes the
// request area. National coverage always matches; the narrower types
// require the corresponding area field to have resolved, so an
// unresolved postal code degrades zip/county/state vendors to "no
// match" while national vendors stay eligible.
func Covers(coverageType string, coverageValues []string, area models.Area) bool {
	switch coverageType {
	case models.CoverageNational:
		return true
	case models.CoverageState:
		return area.State != "" && containsFold(coverageValues, area.State)
	case models.CoverageCounty:
		if area.County == "" || area.State == "" {
			return false
		}
		return containsFold(coverageValues, area.County+", "+area.State)
	case models.CoverageZip:
		return area.PostalCode != "" && containsFold(coverageValues, area.PostalCode)
	default:
		return false
	}
}

func containsFold(values []string, target string) bool {
	for _, v := range values {
		if strings.EqualFold(strings.TrimSpace(v), target) {
			return true
		}
	}
	return false
}
