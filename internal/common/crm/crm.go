// internal/common/crm/crm.go
package crm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	commonhttp "lead-dispatch-workers/internal/common/http"
)

// Client talks to the CRM's contact API. The engine itself never calls
// this; the sync-crm-contact worker does, after a dispatch decision.
type Client struct {
	baseURL    string
	oauthToken string
	httpClient *commonhttp.Client
}

// Contact is the CRM-side representation of a lead's identity.
type Contact struct {
	ID         string `json:"id,omitempty"`
	Email      string `json:"Email"`
	FirstName  string `json:"First_Name"`
	LastName   string `json:"Last_Name"`
	Phone      string `json:"Phone,omitempty"`
	LeadSource string `json:"Lead_Source,omitempty"`
}

type upsertResponse struct {
	Data []struct {
		Code    string `json:"code"`
		Details struct {
			ID string `json:"id"`
		} `json:"details"`
		Message string `json:"message"`
		Status  string `json:"status"`
	} `json:"data"`
}

func NewClient(baseURL, oauthToken string, timeout time.Duration) *Client {
	return &Client{
		baseURL:    baseURL,
		oauthToken: oauthToken,
		httpClient: commonhttp.NewClient(timeout),
	}
}

// UpsertContact creates or updates the contact and returns its CRM id.
func (c *Client) UpsertContact(ctx context.Context, contact *Contact) (string, error) {
	url := fmt.Sprintf("%s/Contacts/upsert", c.baseURL)

	payload := map[string]interface{}{
		"data":                   []Contact{*contact},
		"duplicate_check_fields": []string{"Email"},
	}

	jsonData, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("failed to marshal contact: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(jsonData))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Zoho-oauthtoken "+c.oauthToken)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode != http.StatusCreated && resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("failed to upsert contact (status %d): %s", resp.StatusCode, string(body))
	}

	var upsertResp upsertResponse
	if err := json.Unmarshal(body, &upsertResp); err != nil {
		return "", fmt.Errorf("failed to unmarshal response: %w", err)
	}

	if len(upsertResp.Data) == 0 {
		return "", fmt.Errorf("empty response from CRM")
	}
	if upsertResp.Data[0].Status != "success" {
		return "", fmt.Errorf("CRM rejected contact: %s", upsertResp.Data[0].Message)
	}

	return upsertResp.Data[0].Details.ID, nil
}
