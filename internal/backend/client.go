package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/kounITV/misouk-express-wapp-sub000/internal/config"
	apperrors "github.com/kounITV/misouk-express-wapp-sub000/pkg/errors"
)

// TokenSource supplies the bearer credential for each call. The client treats
// it as an opaque string and never inspects or stores it.
type TokenSource func() string

// Client talks to the order backend's JSON REST API.
type Client struct {
	baseURL    string
	token      TokenSource
	httpClient *http.Client
	logger     *zap.Logger
}

// NewClient creates an order backend client.
func NewClient(cfg config.BackendConfig, token TokenSource, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		baseURL:    strings.TrimSuffix(cfg.BaseURL, "/"),
		token:      token,
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger,
	}
}

// envelope is the backend's uniform response shape.
type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data,omitempty"`
	Message string          `json:"message,omitempty"`
}

// do executes one request and normalizes the response into the error
// taxonomy. A nil error means the envelope reported success; data is the raw
// payload for the caller to decode.
func (c *Client) do(ctx context.Context, method, path string, body interface{}) (json.RawMessage, error) {
	var reqBody io.Reader
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request: %w", err)
		}
		reqBody = bytes.NewBuffer(jsonData)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if tok := c.token(); tok != "" {
		req.Header.Set("Authorization", "Bearer "+tok)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &apperrors.ErrTransport{Err: err}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &apperrors.ErrTransport{Err: err}
	}

	var env envelope
	if err := json.Unmarshal(respBody, &env); err != nil {
		if resp.StatusCode < 200 || resp.StatusCode > 299 {
			// Non-JSON error body, fall back to the status code.
			return nil, &apperrors.ErrBackend{StatusCode: resp.StatusCode}
		}
		return nil, &apperrors.ErrTransport{Err: fmt.Errorf("malformed response: %w", err)}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 || !env.Success {
		c.logger.Warn("backend rejected request",
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("status", resp.StatusCode),
			zap.String("message", env.Message),
		)
		return nil, &apperrors.ErrBackend{StatusCode: resp.StatusCode, Message: env.Message}
	}

	return env.Data, nil
}
