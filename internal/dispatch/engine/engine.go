// internal/dispatch/engine/engine.go
package engine

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"

	"lead-dispatch-workers/internal/common/config"
	"lead-dispatch-workers/internal/common/errors"
	"lead-dispatch-workers/internal/common/logger"
	"lead-dispatch-workers/internal/common/metrics"
	"lead-dispatch-workers/internal/dispatch/classifier"
	"lead-dispatch-workers/internal/dispatch/geo"
	"lead-dispatch-workers/internal/dispatch/matching"
	"lead-dispatch-workers/internal/dispatch/normalizer"
	"lead-dispatch-workers/internal/models"
	"lead-dispatch-workers/pkg/registry"
)

// Engine runs the full dispatch pipeline: normalize, classify, resolve
// geography, filter, score, select, and assemble the decision. Each
// call is a pure function of its inputs and the injected seams (clock,
// id source, random source), so calls may run fully in parallel; all
// I/O lives in the callers.
type Engine struct {
	normalizer *normalizer.Normalizer
	classifier *classifier.Classifier
	resolver   geo.Resolver
	scorer     *matching.Scorer
	selector   *matching.Selector
	logger     logger.Logger
	now        func() time.Time
	newID      func() string
}

// Options are the injectable seams. Zero-value fields fall back to
// production defaults: the ruleset's offline postal dataset, ambient
// wall clock, random UUIDs, and a time-seeded random source.
type Options struct {
	Resolver geo.Resolver
	Rand     matching.Rand
	Now      func() time.Time
	NewID    func() string
}

func New(rules *registry.Ruleset, cfg config.DispatchConfig, log logger.Logger, opts Options) *Engine {
	if opts.Resolver == nil {
		opts.Resolver = geo.NewDatasetResolver(rules)
	}
	if opts.Rand == nil {
		opts.Rand = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.NewID == nil {
		opts.NewID = uuid.NewString
	}

	return &Engine{
		normalizer: normalizer.New(rules),
		classifier: classifier.New(rules),
		resolver:   opts.Resolver,
		scorer:     matching.NewScorer(cfg, opts.Now),
		selector:   matching.NewSelector(opts.Rand),
		logger:     log,
		now:        opts.Now,
		newID:      opts.NewID,
	}
}

// Dispatch decides one lead against the tenant's vendor snapshot.
// "No vendor selected" is a valid business outcome carried in the
// result; an error is returned only for structurally invalid input
// (a lead with no contact key, or a malformed vendor record).
func (e *Engine) Dispatch(tenantID string, raw map[string]string, vendors []models.VendorRecord) (*models.DispatchResult, error) {
	started := time.Now()
	defer func() {
		metrics.DispatchDuration.Observe(time.Since(started).Seconds())
	}()

	req, unmapped := e.normalizer.Normalize(raw)
	if len(unmapped) > 0 {
		metrics.UnmappedFieldLabels.Add(float64(len(unmapped)))
		e.logger.Warn("dropped unmapped form labels", map[string]interface{}{
			"tenantId": tenantID,
			"labels":   unmapped,
		})
	}

	if !req.HasContact() {
		return nil, errors.NewInvalidLeadError("lead has no email or phone contact field")
	}

	for _, v := range vendors {
		if err := v.Validate(); err != nil {
			return nil, errors.NewInvalidVendorRecordError(
				fmt.Sprintf("vendor %s: %v", v.ID, err))
		}
	}

	classification, tier := e.classifier.Classify(req)
	metrics.ClassificationTierHits.WithLabelValues(tier).Inc()

	area := e.resolver.Resolve(req.Get(models.FieldPostalCode))
	if area.IsZero() && req.Get(models.FieldPostalCode) != "" {
		e.logger.Info("postal code did not resolve, only national vendors remain eligible", map[string]interface{}{
			"tenantId":   tenantID,
			"postalCode": req.Get(models.FieldPostalCode),
		})
	}
	classification.CoverageArea = area

	candidates, stats := matching.Filter(vendors, classification.PrimaryCategory, area)
	metrics.VendorsEliminated.WithLabelValues(matching.StageAvailability).Add(float64(stats.Availability))
	metrics.VendorsEliminated.WithLabelValues(matching.StageCategory).Add(float64(stats.Category))
	metrics.VendorsEliminated.WithLabelValues(matching.StageGeography).Add(float64(stats.Geography))

	scored := e.scorer.ScoreAll(candidates)
	selected, ok, reason := e.selector.Select(classification.Priority, scored)

	result := &models.DispatchResult{
		ID:             e.newID(),
		TenantID:       tenantID,
		CandidateCount: len(candidates),
		Classification: classification,
		Timestamp:      e.now(),
	}

	if ok {
		result.SelectedVendorID = selected.ID
		result.SelectionReason = reason
		metrics.LeadsDispatched.WithLabelValues("selected").Inc()
	} else {
		result.SelectionReason = stats.ExhaustionReason(classification.PrimaryCategory)
		metrics.LeadsDispatched.WithLabelValues("no_vendor").Inc()
		e.logger.Info("no eligible vendor for lead", map[string]interface{}{
			"tenantId": tenantID,
			"category": classification.PrimaryCategory,
			"reason":   result.SelectionReason,
		})
	}

	e.logger.Debug("dispatch decision", map[string]interface{}{
		"tenantId":       tenantID,
		"dispatchId":     result.ID,
		"category":       classification.PrimaryCategory,
		"priority":       classification.Priority,
		"candidateCount": result.CandidateCount,
		"selectedVendor": result.SelectedVendorID,
	})

	return result, nil
}
