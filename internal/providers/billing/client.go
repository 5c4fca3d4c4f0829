package billing

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/carrierdesk/carrierdesk/internal/config"
	"github.com/carrierdesk/carrierdesk/internal/subscription/domain"
)

var errNotConfigured = errors.New("billing base url not configured")

// Client is the billing processor integration. All subscription and usage
// state lives on the processor side; this client never caches.
type Client struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

func NewClient(cfg config.Config) *Client {
	return &Client{
		baseURL: strings.TrimSpace(cfg.BillingBaseURL),
		apiKey:  cfg.BillingAPIKey,
		client:  &http.Client{Timeout: 12 * time.Second},
	}
}

func (c *Client) FindActiveSubscription(ctx context.Context, customerEmail string) (*domain.ExternalSubscription, error) {
	values := url.Values{}
	values.Set("email", customerEmail)
	values.Set("status", "active")

	var payload struct {
		Subscriptions []domain.ExternalSubscription `json:"subscriptions"`
	}
	if err := c.doJSON(ctx, http.MethodGet, "/v1/subscriptions?"+values.Encode(), nil, &payload); err != nil {
		return nil, err
	}
	for i := range payload.Subscriptions {
		if payload.Subscriptions[i].Active {
			return &payload.Subscriptions[i], nil
		}
	}
	return nil, nil
}

func (c *Client) GetSubscription(ctx context.Context, subscriptionID string) (*domain.ExternalSubscription, error) {
	var sub domain.ExternalSubscription
	err := c.doJSON(ctx, http.MethodGet, "/v1/subscriptions/"+url.PathEscape(subscriptionID), nil, &sub)
	if err != nil {
		return nil, err
	}
	return &sub, nil
}

func (c *Client) CreateSubscription(ctx context.Context, customerEmail, planID string) (*domain.ExternalSubscription, error) {
	body := map[string]string{
		"customer_email": customerEmail,
		"plan_id":        planID,
	}
	var sub domain.ExternalSubscription
	if err := c.doJSON(ctx, http.MethodPost, "/v1/subscriptions", body, &sub); err != nil {
		return nil, err
	}
	return &sub, nil
}

func (c *Client) CancelSubscription(ctx context.Context, subscriptionID string) error {
	return c.doJSON(ctx, http.MethodDelete, "/v1/subscriptions/"+url.PathEscape(subscriptionID), nil, nil)
}

func (c *Client) ReportUsage(ctx context.Context, subscriptionID, metricName string, quantity float64) error {
	body := map[string]interface{}{
		"metric_name": metricName,
		"quantity":    quantity,
	}
	path := "/v1/subscriptions/" + url.PathEscape(subscriptionID) + "/usage"
	return c.doJSON(ctx, http.MethodPost, path, body, nil)
}

func (c *Client) GetUsage(ctx context.Context, subscriptionID string) (*domain.UsageSummary, error) {
	var usage domain.UsageSummary
	path := "/v1/subscriptions/" + url.PathEscape(subscriptionID) + "/usage"
	if err := c.doJSON(ctx, http.MethodGet, path, nil, &usage); err != nil {
		return nil, err
	}
	return &usage, nil
}

func (c *Client) doJSON(ctx context.Context, method, path string, body interface{}, out interface{}) error {
	if c.baseURL == "" {
		return errNotConfigured
	}

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	res, err := c.client.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode > 299 {
		raw, _ := io.ReadAll(io.LimitReader(res.Body, 2048))
		return fmt.Errorf("billing processor: status %d: %s", res.StatusCode, strings.TrimSpace(string(raw)))
	}
	if out == nil {
		return nil
	}
	return json.NewDecoder(res.Body).Decode(out)
}

var _ domain.BillingProcessor = (*Client)(nil)
