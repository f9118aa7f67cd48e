// internal/dispatch/matching/selector.go
package matching

import (
	"fmt"

	"lead-dispatch-workers/internal/models"
)

// Rand is the injectable random source behind the weighted draw.
// *math/rand.Rand satisfies it; tests supply a seeded or fixed source.
type Rand interface {
	Float64() float64
}

// Selector picks one candidate according to the lead's priority.
type Selector struct {
	rand Rand
}

func NewSelector(r Rand) *Selector {
	return &Selector{rand: r}
}

// Select returns the chosen vendor, whether one was chosen, and a
// human-readable reason for the audit record.
//
// High priority picks the highest-weight candidate deterministically,
// ignoring the random source. Normal priority draws proportionally to
// weight; an all-zero-weight pool falls back to the deterministic pick
// so a vendor is still chosen.
func (s *Selector) Select(priority string, candidates []Scored) (models.VendorRecord, bool, string) {
	if len(candidates) == 0 {
		return models.VendorRecord{}, false, "no eligible candidates"
	}

	if priority == models.PriorityHigh {
		best := bestCandidate(candidates)
		return best.Vendor, true,
			fmt.Sprintf("high priority: highest weighted of %d candidates (weight %.3f)", len(candidates), best.Weight)
	}

	total := 0.0
	for _, c := range candidates {
		total += c.Weight
	}
	if total <= 0 {
		best := bestCandidate(candidates)
		return best.Vendor, true,
			fmt.Sprintf("zero total weight: deterministic pick of %d candidates", len(candidates))
	}

	draw := s.rand.Float64() * total
	cumulative := 0.0
	for _, c := range candidates {
		cumulative += c.Weight
		if draw < cumulative {
			return c.Vendor, true,
				fmt.Sprintf("weighted random draw across %d candidates (weight %.3f of %.3f)", len(candidates), c.Weight, total)
		}
	}

	// Float64 returns values in [0,1), so the loop always terminates
	// above except for rounding at the very top of the range.
	last := candidates[len(candidates)-1]
	return last.Vendor, true,
		fmt.Sprintf("weighted random draw across %d candidates (weight %.3f of %.3f)", len(candidates), last.Weight, total)
}

// bestCandidate is the deterministic pick: strictly highest weight,
// ties broken by lowest open assignments, then by vendor id.
func bestCandidate(candidates []Scored) Scored {
	best := candidates[0]
	for _, c := range candidates[1:] {
		if betterThan(c, best) {
			best = c
		}
	}
	return best
}

func betterThan(a, b Scored) bool {
	if a.Weight != b.Weight {
		return a.Weight > b.Weight
	}
	if a.Vendor.OpenAssignments != b.Vendor.OpenAssignments {
		return a.Vendor.OpenAssignments < b.Vendor.OpenAssignments
	}
	return a.Vendor.ID < b.Vendor.ID
}
