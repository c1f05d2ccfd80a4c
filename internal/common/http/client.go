// internal/common/http/client.go
package http

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	apperrors "canon-builder/internal/common/errors"
	"canon-builder/internal/models"
)

// Client calls a running builder service.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

func (c *Client) Do(req *http.Request) (*http.Response, error) {
	return c.httpClient.Do(req)
}

func (c *Client) DoWithContext(ctx context.Context, req *http.Request) (*http.Response, error) {
	req = req.WithContext(ctx)
	return c.httpClient.Do(req)
}

// Health returns the service name reported by GET /health.
func (c *Client) Health(ctx context.Context) (string, error) {
	req, err := http.NewRequest(http.MethodGet, c.baseURL+"/health", nil)
	if err != nil {
		return "", err
	}
	var body struct {
		Status  string `json:"status"`
		Service string `json:"service"`
	}
	if err := c.doJSON(ctx, req, &body); err != nil {
		return "", err
	}
	if body.Status != "healthy" {
		return "", fmt.Errorf("service %s reported status %q", body.Service, body.Status)
	}
	return body.Service, nil
}

// Generate calls POST /generate/<kind>. Error responses are returned as
// *errors.StandardError.
func (c *Client) Generate(ctx context.Context, kind models.EntityType, in *models.GenerationRequest) (*models.GeneratedEntity, error) {
	if in == nil {
		in = &models.GenerationRequest{}
	}
	payload, err := json.Marshal(in)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequest(http.MethodPost, c.baseURL+"/generate/"+kind.Slug(), bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	var entity models.GeneratedEntity
	if err := c.doJSON(ctx, req, &entity); err != nil {
		return nil, err
	}
	return &entity, nil
}

func (c *Client) doJSON(ctx context.Context, req *http.Request, out interface{}) error {
	resp, err := c.DoWithContext(ctx, req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		var envelope apperrors.ErrorResponse
		if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil || envelope.Error == nil {
			return fmt.Errorf("%s %s: unexpected status %d", req.Method, req.URL.Path, resp.StatusCode)
		}
		return envelope.Error
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
