// internal/dispatch/matching/scorer.go
package matching

import (
	"time"

	"lead-dispatch-workers/internal/common/config"
	"lead-dispatch-workers/internal/models"
)

// Scored pairs a candidate with its final selection weight.
type Scored struct {
	Vendor models.VendorRecord
	Weight float64
}

// Scorer computes a candidate's selection weight from performance,
// assignment recency, and current load. The clock is injected so
// scoring stays deterministic under test.
type Scorer struct {
	recencyBoostAfter    time.Duration
	recencyPenaltyWithin time.Duration
	recencyBoost         float64
	recencyPenalty       float64
	loadThreshold        int
	loadPenalty          float64
	now                  func() time.Time
}

func NewScorer(cfg config.DispatchConfig, now func() time.Time) *Scorer {
	if now == nil {
		now = time.Now
	}
	return &Scorer{
		recencyBoostAfter:    cfg.RecencyBoostAfter,
		recencyPenaltyWithin: cfg.RecencyPenaltyWithin,
		recencyBoost:         cfg.RecencyBoost,
		recencyPenalty:       cfg.RecencyPenalty,
		loadThreshold:        cfg.LoadThreshold,
		loadPenalty:          cfg.LoadPenalty,
		now:                  now,
	}
}

// Score starts from the vendor's performance score, boosts vendors not
// assigned recently, penalizes ones assigned moments ago, and halves
// anyone carrying more open assignments than the load threshold.
func (s *Scorer) Score(v models.VendorRecord) float64 {
	weight := v.PerformanceScore

	if v.LastAssignedAt == nil {
		weight *= s.recencyBoost
	} else {
		since := s.now().Sub(*v.LastAssignedAt)
		if since > s.recencyBoostAfter {
			weight *= s.recencyBoost
		} else if since < s.recencyPenaltyWithin {
			weight *= s.recencyPenalty
		}
	}

	if v.OpenAssignments > s.loadThreshold {
		weight *= s.loadPenalty
	}

	return weight
}

// ScoreAll scores every candidate, preserving input order.
func (s *Scorer) ScoreAll(candidates []models.VendorRecord) []Scored {
	scored := make([]Scored, len(candidates))
	for i, v := range candidates {
		scored[i] = Scored{Vendor: v, Weight: s.Score(v)}
	}
	return scored
}
