package registry

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"
	"time"

	carrierdomain "github.com/carrierdesk/carrierdesk/internal/carrier/domain"
	"github.com/carrierdesk/carrierdesk/internal/config"
	ingestdomain "github.com/carrierdesk/carrierdesk/internal/ingest/domain"
)

var errNotConfigured = errors.New("registry base url not configured")

// Client talks to the carrier registry lookup API. It implements both
// RegistryLookup and DocumentOCR; the registry service hosts the document
// extraction endpoint as well.
type Client struct {
	baseURL    string
	ocrBaseURL string
	client     *http.Client
}

func NewClient(cfg config.Config) *Client {
	ocrBase := strings.TrimSpace(cfg.OCRBaseURL)
	if ocrBase == "" {
		ocrBase = strings.TrimSpace(cfg.RegistryBaseURL)
	}
	return &Client{
		baseURL:    strings.TrimSpace(cfg.RegistryBaseURL),
		ocrBaseURL: ocrBase,
		client:     &http.Client{Timeout: 15 * time.Second},
	}
}

type lookupResponse struct {
	Success bool                        `json:"success"`
	Carrier carrierdomain.CarrierRecord `json:"carrier"`
}

func (c *Client) Lookup(ctx context.Context, usdot string) (carrierdomain.Lookup, error) {
	if c.baseURL == "" {
		return carrierdomain.Lookup{}, errNotConfigured
	}

	endpoint := c.baseURL + "/carriers/" + url.PathEscape(usdot)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return carrierdomain.Lookup{}, err
	}
	req.Header.Set("Accept", "application/json")

	res, err := c.client.Do(req)
	if err != nil {
		return carrierdomain.Lookup{}, err
	}
	defer res.Body.Close()

	if res.StatusCode == http.StatusNotFound {
		return carrierdomain.Lookup{Success: false}, nil
	}
	if res.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(res.Body, 2048))
		return carrierdomain.Lookup{}, fmt.Errorf("registry lookup: status %d: %s", res.StatusCode, strings.TrimSpace(string(body)))
	}

	var payload lookupResponse
	if err := json.NewDecoder(res.Body).Decode(&payload); err != nil {
		return carrierdomain.Lookup{}, err
	}

	// The registry echoes the queried usdot; trust the request value when
	// it does not.
	if payload.Carrier.USDOT == "" {
		payload.Carrier.USDOT = usdot
	}
	return carrierdomain.Lookup{Record: payload.Carrier, Success: payload.Success}, nil
}

type extractResponse struct {
	USDOTs []string `json:"usdots"`
}

func (c *Client) ExtractUSDOTs(ctx context.Context, filename string, content []byte) ([]string, error) {
	if c.ocrBaseURL == "" {
		return nil, errNotConfigured
	}

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile("document", filename)
	if err != nil {
		return nil, err
	}
	if _, err := part.Write(content); err != nil {
		return nil, err
	}
	if err := writer.Close(); err != nil {
		return nil, err
	}

	endpoint := c.ocrBaseURL + "/documents/extract"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, &buf)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	res, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(res.Body, 2048))
		return nil, fmt.Errorf("document extract: status %d: %s", res.StatusCode, strings.TrimSpace(string(body)))
	}

	var payload extractResponse
	if err := json.NewDecoder(res.Body).Decode(&payload); err != nil {
		return nil, err
	}
	return payload.USDOTs, nil
}

var (
	_ ingestdomain.RegistryLookup = (*Client)(nil)
	_ ingestdomain.DocumentOCR    = (*Client)(nil)
)
