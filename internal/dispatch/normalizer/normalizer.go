// internal/dispatch/normalizer/normalizer.go
package normalizer

import (
	"sort"
	"strings"

	"lead-dispatch-workers/internal/models"
	"lead-dispatch-workers/pkg/registry"
)

// Normalizer maps heterogeneous human-authored form labels onto the
// canonical field vocabulary. Labels come from many distinct form
// variants, so matching is case-insensitive and whitespace-tolerant.
type Normalizer struct {
	labels    map[string]string
	canonical map[string]struct{}
}

func New(rules *registry.Ruleset) *Normalizer {
	labels := make(map[string]string, len(rules.FieldLabels))
	for label, key := range rules.FieldLabels {
		labels[strings.ToLower(strings.TrimSpace(label))] = key
	}

	canonical := make(map[string]struct{}, len(models.CanonicalFields))
	for _, key := range models.CanonicalFields {
		canonical[key] = struct{}{}
	}

	return &Normalizer{labels: labels, canonical: canonical}
}

// Normalize resolves each inbound label to a canonical key. Resolution
// order: exact table match, then canonical pass-through; anything else
// is dropped and reported in the unmapped list. Unknown labels are
// never an error. Labels are processed in sorted order and the
// unmapped list is sorted, so identical input yields identical output
// even when distinct labels collide on one canonical key.
func (n *Normalizer) Normalize(raw map[string]string) (models.NormalizedRequest, []string) {
	labels := make([]string, 0, len(raw))
	for label := range raw {
		labels = append(labels, label)
	}
	sort.Strings(labels)

	req := make(models.NormalizedRequest, len(raw))
	var unmapped []string

	for _, label := range labels {
		value := raw[label]
		key, ok := n.resolve(label)
		if !ok {
			unmapped = append(unmapped, label)
			continue
		}
		// Later duplicates of the same canonical key win only when
		// they carry a value; a blank variant never clobbers data.
		if existing, dup := req[key]; dup && existing != "" && strings.TrimSpace(value) == "" {
			continue
		}
		req[key] = strings.TrimSpace(value)
	}

	return req, unmapped
}

func (n *Normalizer) resolve(label string) (string, bool) {
	cleaned := strings.ToLower(strings.TrimSpace(label))

	if key, ok := n.labels[cleaned]; ok {
		return key, true
	}
	if _, ok := n.canonical[cleaned]; ok {
		return cleaned, true
	}
	return "", false
}
