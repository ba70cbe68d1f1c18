package genai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/hadirhq/hadir-backend-go/internal/config"
)

// Client calls an external generative endpoint to turn computed payroll
// records into a short plain-language summary for administrators. Amounts in
// the records are final before this client is ever invoked.
type Client struct {
	baseURL    string
	apiKey     string
	model      string
	httpClient *http.Client
}

func NewClient(cfg config.NarrativeConfig) *Client {
	return &Client{
		baseURL: cfg.BaseURL,
		apiKey:  cfg.APIKey,
		model:   cfg.Model,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// Enabled reports whether the client has an endpoint to talk to. With no
// base URL configured, payroll simply ships without a narrative.
func (c *Client) Enabled() bool {
	return c.baseURL != ""
}

type narrativeRequest struct {
	Model           string          `json:"model"`
	PeriodLabel     string          `json:"period_label"`
	EmployeeRecords json.RawMessage `json:"employee_records"`
}

type narrativeResponse struct {
	Narrative string `json:"narrative"`
}

// PayrollNarrative submits the period label and the serialized records and
// returns the generated summary text.
func (c *Client) PayrollNarrative(ctx context.Context, periodLabel string, records any) (string, error) {
	recordsJSON, err := json.Marshal(records)
	if err != nil {
		return "", fmt.Errorf("failed to marshal payroll records: %w", err)
	}

	body, err := json.Marshal(narrativeRequest{
		Model:           c.model,
		PeriodLabel:     periodLabel,
		EmployeeRecords: recordsJSON,
	})
	if err != nil {
		return "", fmt.Errorf("failed to marshal narrative request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/payroll-narrative", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to build narrative request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("narrative request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("narrative service returned status %d", resp.StatusCode)
	}

	var result narrativeResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", fmt.Errorf("failed to decode narrative response: %w", err)
	}

	return result.Narrative, nil
}
