// Package ai wraps the external model-invocation service behind a narrow
// capability: send a prompt with a response schema, get structured JSON back.
// The service is treated as an opaque, potentially slow, potentially failing
// dependency; calls carry an explicit timeout and are never retried here.
package ai

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
)

var (
	// ErrServiceUnavailable indicates a transport failure or a 5xx from the
	// model service.
	ErrServiceUnavailable = errors.New("model service unavailable")

	// ErrSchemaViolation indicates the model response did not satisfy the
	// requested response schema.
	ErrSchemaViolation = errors.New("model response violates schema")
)

// Schema is a JSON-schema response contract sent alongside the prompt.
type Schema struct {
	Type       string                 `json:"type"`
	Properties map[string]interface{} `json:"properties,omitempty"`
	Required   []string               `json:"required,omitempty"`
}

// Invoker is the capability domain services depend on.
type Invoker interface {
	Invoke(ctx context.Context, prompt string, schema Schema) (map[string]interface{}, error)
}

// Client calls the hosted model-invocation endpoint.
type Client struct {
	http *resty.Client
}

// Config holds the model service connection settings.
type Config struct {
	BaseURL string
	APIKey  string
	Timeout time.Duration
}

func NewClient(cfg Config) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	http := resty.New().
		SetBaseURL(cfg.BaseURL).
		SetTimeout(timeout).
		SetHeader("Content-Type", "application/json")
	if cfg.APIKey != "" {
		http.SetAuthToken(cfg.APIKey)
	}

	return &Client{http: http}
}

type invokeRequest struct {
	Prompt             string `json:"prompt"`
	ResponseJSONSchema Schema `json:"response_json_schema"`
}

// Invoke sends the prompt and returns the structured response. The response
// is checked against the schema's required top-level properties; a response
// that is not a JSON object or is missing a required property fails with
// ErrSchemaViolation.
func (c *Client) Invoke(ctx context.Context, prompt string, schema Schema) (map[string]interface{}, error) {
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(invokeRequest{Prompt: prompt, ResponseJSONSchema: schema}).
		Post("/v1/invoke")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrServiceUnavailable, err)
	}

	if resp.StatusCode() >= 500 {
		return nil, fmt.Errorf("%w: status %d", ErrServiceUnavailable, resp.StatusCode())
	}
	if resp.IsError() {
		return nil, fmt.Errorf("model service rejected request: status %d", resp.StatusCode())
	}

	var result map[string]interface{}
	if err := json.Unmarshal(resp.Body(), &result); err != nil {
		return nil, fmt.Errorf("%w: not a JSON object", ErrSchemaViolation)
	}

	if err := checkRequired(result, schema); err != nil {
		return nil, err
	}

	return result, nil
}

func checkRequired(result map[string]interface{}, schema Schema) error {
	for _, key := range schema.Required {
		if _, ok := result[key]; !ok {
			return fmt.Errorf("%w: missing required property %q", ErrSchemaViolation, key)
		}
	}
	return nil
}
