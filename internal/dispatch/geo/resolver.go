// internal/dispatch/geo/resolver.go
package geo

import (
	"lead-dispatch-workers/internal/models"
	"lead-dispatch-workers/pkg/registry"
)

// Resolver converts a postal code into local geography. A resolver may
// legitimately return a zero Area for codes it does not know; callers
// treat that as "no geographic match", never as a failure.
type Resolver interface {
	Resolve(postalCode string) models.Area
}

// DatasetResolver resolves against the ruleset's offline postal-code
// dataset. Lookups are read-only and safe for concurrent use.
type DatasetResolver struct {
	areas map[string]registry.PostalArea
}

func NewDatasetResolver(rules *registry.Ruleset) *DatasetResolver {
	return &DatasetResolver{areas: rules.PostalAreas}
}

// Resolve returns the full Area for a known five-digit code. Malformed
// input or a dataset miss yields a zero Area.
func (r *DatasetResolver) Resolve(postalCode string) models.Area {
	if !validPostalCode(postalCode) {
		return models.Area{}
	}
	pa, ok := r.areas[postalCode]
	if !ok {
		return models.Area{}
	}
	return models.Area{
		PostalCode: postalCode,
		City:       pa.City,
		State:      pa.State,
		County:     pa.County,
	}
}

func validPostalCode(code string) bool {
	if len(code) != 5 {
		return false
	}
	for _, r := range code {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
