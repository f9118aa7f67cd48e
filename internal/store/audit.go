// internal/store/audit.go
package store

import (
	"bytes"
	"context"
	"encoding/json"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"

	"lead-dispatch-workers/internal/common/errors"
	"lead-dispatch-workers/internal/common/logger"
	"lead-dispatch-workers/internal/models"
)

// AuditIndexer mirrors every dispatch decision into Elasticsearch so
// operators can search decisions by category, vendor, or reasoning
// text. Postgres stays the system of record; this index is derived
// and rebuildable.
type AuditIndexer struct {
	client *elasticsearch.Client
	index  string
	logger logger.Logger
}

func NewAuditIndexer(client *elasticsearch.Client, index string, log logger.Logger) *AuditIndexer {
	return &AuditIndexer{
		client: client,
		index:  index,
		logger: log.WithFields(map[string]interface{}{"component": "audit-indexer"}),
	}
}

// auditDocument flattens the decision for searchability.
type auditDocument struct {
	DispatchID       string   `json:"dispatchId"`
	TenantID         string   `json:"tenantId"`
	SelectedVendorID string   `json:"selectedVendorId,omitempty"`
	CandidateCount   int      `json:"candidateCount"`
	SelectionReason  string   `json:"selectionReason"`
	PrimaryCategory  string   `json:"primaryCategory"`
	SpecificServices []string `json:"specificServices"`
	Confidence       float64  `json:"confidence"`
	Reasoning        string   `json:"reasoning"`
	Priority         string   `json:"priority"`
	PostalCode       string   `json:"postalCode,omitempty"`
	State            string   `json:"state,omitempty"`
	County           string   `json:"county,omitempty"`
	Timestamp        string   `json:"timestamp"`
}

// Index writes one decision document, keyed by dispatch id so retries
// overwrite rather than duplicate.
func (a *AuditIndexer) Index(ctx context.Context, result *models.DispatchResult) error {
	doc := auditDocument{
		DispatchID:       result.ID,
		TenantID:         result.TenantID,
		SelectedVendorID: result.SelectedVendorID,
		CandidateCount:   result.CandidateCount,
		SelectionReason:  result.SelectionReason,
		PrimaryCategory:  result.Classification.PrimaryCategory,
		SpecificServices: result.Classification.SpecificServices,
		Confidence:       result.Classification.Confidence,
		Reasoning:        result.Classification.Reasoning,
		Priority:         result.Classification.Priority,
		PostalCode:       result.Classification.CoverageArea.PostalCode,
		State:            result.Classification.CoverageArea.State,
		County:           result.Classification.CoverageArea.County,
		Timestamp:        result.Timestamp.UTC().Format("2006-01-02T15:04:05.000Z07:00"),
	}

	body, err := json.Marshal(doc)
	if err != nil {
		return errors.NewAuditIndexFailedError(err)
	}

	req := esapi.IndexRequest{
		Index:      a.index,
		DocumentID: result.ID,
		Body:       bytes.NewReader(body),
	}

	res, err := req.Do(ctx, a.client)
	if err != nil {
		return errors.NewAuditIndexFailedError(err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return errors.NewAuditIndexFailedError(
			&esStatusError{status: res.Status()})
	}

	a.logger.Debug("dispatch indexed for audit", map[string]interface{}{
		"dispatchId": result.ID,
		"index":      a.index,
	})
	return nil
}

type esStatusError struct {
	status string
}

func (e *esStatusError) Error() string {
	return "elasticsearch returned " + e.status
}
