package feeds

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/premiereye/salesops/pkg/auth"
	"github.com/premiereye/salesops/pkg/domain"
	"github.com/premiereye/salesops/pkg/vocab"
)

// Client talks to the upstream clinic CRM API. It only reads the three lead
// feeds and writes pipeline-stage changes and appointments; everything else
// about the upstream is out of scope here.
type Client struct {
	baseURL       string
	httpClient    *http.Client
	tokenProvider auth.TokenProvider
}

// ClientOptions configures a Client
type ClientOptions struct {
	BaseURL       string
	TokenProvider auth.TokenProvider
	HTTPClient    *http.Client
}

// NewClient creates an upstream API client
func NewClient(opts ClientOptions) *Client {
	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 20 * time.Second}
	}
	return &Client{
		baseURL:       strings.TrimRight(opts.BaseURL, "/"),
		httpClient:    httpClient,
		tokenProvider: opts.TokenProvider,
	}
}

// get performs an authenticated GET and decodes the JSON body into out
func (c *Client) get(ctx context.Context, path string, query url.Values, out any) error {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return err
	}
	return c.do(req, out)
}

// send performs an authenticated request with a JSON body
func (c *Client) send(ctx context.Context, method, path string, payload any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(req, nil)
}

func (c *Client) do(req *http.Request, out any) error {
	token, err := c.tokenProvider(req.Context())
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		return domain.NewUnauthorizedError()
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("upstream returned %d: %s", resp.StatusCode, strings.TrimSpace(string(snippet)))
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed decoding upstream response: %w", err)
	}
	return nil
}

// UpdatePipelineStage persists a lead's pipeline stage upstream. The lead id
// must be numeric on the wire.
func (c *Client) UpdatePipelineStage(ctx context.Context, id string, stage vocab.PipelineStage) error {
	numericID, err := strconv.Atoi(id)
	if err != nil {
		return domain.NewValidationError(fmt.Sprintf("lead id %q is not numeric", id))
	}

	payload := map[string]any{"pipeline_stage": stage}
	return c.send(ctx, http.MethodPatch, fmt.Sprintf("/user/sales-pipeline/%d/stage", numericID), payload)
}

// CreateAppointment creates or updates appointment data for a lead
func (c *Client) CreateAppointment(ctx context.Context, req AppointmentRequest) error {
	return c.send(ctx, http.MethodPost, "/user/appointments", req)
}
