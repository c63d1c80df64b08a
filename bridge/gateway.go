// Package bridge connects the orchestrator to external code generation
// services over JSON HTTP. Bridges are auxiliary capability: every failure
// here degrades the caller's result instead of failing the collaboration.
package bridge

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

	"github.com/google/uuid"

	"github.com/asshat1981ar/autonomous-sdlc-agent-sub001/core"
)

// DefaultTimeout bounds a single gateway call when the caller passes none.
const DefaultTimeout = 10 * time.Second

// HTTPError reports a non-2xx bridge response.
type HTTPError struct {
	StatusCode int
	Message    string
}

func (e *HTTPError) Error() string {
	return e.Message
}

// HTTPGateway talks to one bridge service. It implements the core.Gateway
// interface.
type HTTPGateway struct {
	client  *http.Client
	baseURL string
}

// NewHTTPGateway creates a gateway for baseURL. A nil client falls back to
// one bounded by DefaultTimeout.
func NewHTTPGateway(baseURL string, client *http.Client) (*HTTPGateway, error) {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		return nil, errors.New("base URL is required")
	}
	if client == nil {
		client = &http.Client{Timeout: DefaultTimeout}
	}
	return &HTTPGateway{client: client, baseURL: baseURL}, nil
}

// Call implements the core.Gateway interface. A nil payload issues a GET,
// anything else a JSON POST. Each request carries a fresh X-Request-ID.
func (g *HTTPGateway) Call(ctx context.Context, endpoint string, payload any, timeout time.Duration) (*core.GatewayResponse, error) {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	method := http.MethodGet
	var body io.Reader
	if payload != nil {
		encoded, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("encode bridge request: %w", err)
		}
		method = http.MethodPost
		body = bytes.NewReader(encoded)
	}

	if !strings.HasPrefix(endpoint, "/") {
		endpoint = "/" + endpoint
	}
	request, err := http.NewRequestWithContext(ctx, method, g.baseURL+endpoint, body)
	if err != nil {
		return nil, fmt.Errorf("build bridge request: %w", err)
	}
	if payload != nil {
		request.Header.Set("Content-Type", "application/json")
	}
	request.Header.Set("X-Request-ID", uuid.New().String())

	response, err := g.client.Do(request)
	if err != nil {
		return nil, fmt.Errorf("bridge request failed: %w", err)
	}
	defer response.Body.Close()

	if response.StatusCode < http.StatusOK || response.StatusCode >= http.StatusMultipleChoices {
		return nil, &HTTPError{StatusCode: response.StatusCode, Message: readErrorMessage(response)}
	}

	out := &core.GatewayResponse{Status: response.StatusCode}
	if err := json.NewDecoder(response.Body).Decode(&out.Body); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("decode bridge response: %w", err)
	}
	return out, nil
}

func readErrorMessage(response *http.Response) string {
	body, _ := io.ReadAll(response.Body)
	text := strings.TrimSpace(string(body))
	if text == "" {
		return response.Status
	}
	var payload struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(body, &payload); err == nil && strings.TrimSpace(payload.Error) != "" {
		return payload.Error
	}
	return text
}
