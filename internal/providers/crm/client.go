package crm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/carrierdesk/carrierdesk/internal/config"
	"github.com/carrierdesk/carrierdesk/internal/crmpush/domain"
)

var errNotConfigured = errors.New("crm base url not configured")

// Client pushes account batches to the configured CRM platform's integration
// endpoint.
type Client struct {
	baseURL    string
	apiKey     string
	platform   string
	objectType string
	client     *http.Client
}

func NewClient(cfg config.Config) *Client {
	return &Client{
		baseURL:    strings.TrimSpace(cfg.CRMBaseURL),
		apiKey:     cfg.CRMAPIKey,
		platform:   cfg.CRMPlatform,
		objectType: cfg.CRMObjectType,
		client:     &http.Client{Timeout: 30 * time.Second},
	}
}

type pushRequest struct {
	Platform   string                  `json:"platform"`
	ObjectType string                  `json:"object_type"`
	Accounts   []domain.AccountPayload `json:"accounts"`
}

type pushResponse struct {
	Results []domain.PushResult `json:"results"`
}

func (c *Client) PushAccounts(ctx context.Context, payloads []domain.AccountPayload) ([]domain.PushResult, error) {
	if c.baseURL == "" {
		return nil, errNotConfigured
	}

	body, err := json.Marshal(pushRequest{
		Platform:   c.platform,
		ObjectType: c.objectType,
		Accounts:   payloads,
	})
	if err != nil {
		return nil, err
	}

	endpoint := c.baseURL + "/accounts/push"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	res, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(io.LimitReader(res.Body, 2048))
		return nil, fmt.Errorf("crm push: status %d: %s", res.StatusCode, strings.TrimSpace(string(raw)))
	}

	var payload pushResponse
	if err := json.NewDecoder(res.Body).Decode(&payload); err != nil {
		return nil, err
	}
	return payload.Results, nil
}

var _ domain.CRMClient = (*Client)(nil)
