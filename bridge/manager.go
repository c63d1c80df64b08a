package bridge

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/asshat1981ar/autonomous-sdlc-agent-sub001/code"
	"github.com/asshat1981ar/autonomous-sdlc-agent-sub001/core"
	"github.com/asshat1981ar/autonomous-sdlc-agent-sub001/logging"
)

// Endpoint declares one named bridge service.
type Endpoint struct {
	Name    string
	BaseURL string
	// Timeout bounds each call to this endpoint; zero uses the manager
	// default.
	Timeout time.Duration
}

// Options configures the Manager.
type Options struct {
	// Client is shared by every constructed gateway. Nil uses a client
	// bounded by DefaultTimeout.
	Client *http.Client
	// Timeout applies to endpoints that declare none.
	Timeout time.Duration
	// Logger receives bridge call diagnostics.
	Logger *logging.CollabLogger
}

type entry struct {
	name    string
	timeout time.Duration
	gateway core.Gateway
	healthy bool
}

// Manager drives the configured bridges: a one-shot health probe, code
// generation and result augmentation. It implements core.BridgeManager.
//
// Initialization is idempotent: the first Initialize probes every endpoint
// and records the outcome, later calls return the recorded status unchanged.
type Manager struct {
	mu          sync.Mutex
	entries     []*entry
	logger      *logging.CollabLogger
	initialized bool
	status      core.BridgeStatus
}

// NewManager builds a manager over the given endpoints.
func NewManager(endpoints []Endpoint, optFns ...func(o *Options)) (*Manager, error) {
	opts := Options{
		Timeout: DefaultTimeout,
		Logger:  logging.NewNopLogger(),
	}
	for _, fn := range optFns {
		fn(&opts)
	}
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}

	m := &Manager{logger: opts.Logger.WithComponent("bridge")}
	for _, ep := range endpoints {
		if ep.Name == "" {
			return nil, errors.New("bridge endpoint requires a name")
		}
		gw, err := NewHTTPGateway(ep.BaseURL, opts.Client)
		if err != nil {
			return nil, fmt.Errorf("bridge %s: %w", ep.Name, err)
		}
		timeout := ep.Timeout
		if timeout <= 0 {
			timeout = opts.Timeout
		}
		m.entries = append(m.entries, &entry{name: ep.Name, timeout: timeout, gateway: gw})
	}
	return m, nil
}

// Initialize implements the core.BridgeManager interface.
func (m *Manager) Initialize(ctx context.Context) core.BridgeStatus {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.initialized {
		return m.statusLocked()
	}

	status := core.BridgeStatus{Endpoints: []string{}}
	if len(m.entries) == 0 {
		status.Error = "no bridges configured"
	} else {
		for _, e := range m.entries {
			start := time.Now()
			resp, err := e.gateway.Call(ctx, "/health", nil, e.timeout)
			m.logger.LogBridgeCall(e.name+"/health", responseStatus(resp), time.Since(start), err)
			if err != nil {
				continue
			}
			e.healthy = true
			status.Endpoints = append(status.Endpoints, e.name)
		}
		if len(status.Endpoints) == 0 {
			status.Error = "no healthy bridges"
		} else {
			status.Success = true
		}
	}

	m.initialized = true
	m.status = status
	return m.statusLocked()
}

// GenerateCode implements the core.BridgeManager interface. It never returns
// an error; any failure comes back as a degraded CodeResult.
func (m *Manager) GenerateCode(ctx context.Context, prompt, language string, paradigm core.Paradigm) core.CodeResult {
	result := core.CodeResult{Language: language}

	if status := m.Initialize(ctx); !status.Success {
		result.Error = status.Error
		return result
	}
	e := m.firstHealthy()
	if e == nil {
		result.Error = "no healthy bridges"
		return result
	}

	payload := map[string]any{
		"prompt":   prompt,
		"language": language,
		"paradigm": paradigm.String(),
	}
	start := time.Now()
	resp, err := e.gateway.Call(ctx, "/api/v1/generate", payload, e.timeout)
	m.logger.LogBridgeCall(e.name+"/api/v1/generate", responseStatus(resp), time.Since(start), err)
	if err != nil {
		result.Error = err.Error()
		return result
	}

	block, ok := extractCode(resp.Body, language)
	if !ok {
		result.Error = "bridge returned no code"
		return result
	}
	result.Success = true
	result.BridgeAvailable = true
	result.Code = block.Code
	result.Language = block.Language
	return result
}

// Augment implements the core.BridgeManager interface. It posts a summary of
// the collaboration so the bridge can enrich it; callers treat an error as
// losing augmentation, nothing more.
func (m *Manager) Augment(ctx context.Context, result *core.Result) error {
	if status := m.Initialize(ctx); !status.Success {
		return core.NewError(core.KindBridgeUnavailable, "", errors.New(status.Error))
	}
	e := m.firstHealthy()
	if e == nil {
		return core.NewError(core.KindBridgeUnavailable, "", errors.New("no healthy bridges"))
	}

	payload := map[string]any{
		"paradigm": result.Paradigm.String(),
		"task":     result.Task,
		"agents":   result.Agents,
	}
	start := time.Now()
	resp, err := e.gateway.Call(ctx, "/api/v1/augment", payload, e.timeout)
	m.logger.LogBridgeCall(e.name+"/api/v1/augment", responseStatus(resp), time.Since(start), err)
	if err != nil {
		return core.NewError(core.KindBridgeUnavailable, "", err)
	}
	return nil
}

// Healthy implements the core.BridgeManager interface.
func (m *Manager) Healthy() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, e := range m.entries {
		if e.healthy {
			return true
		}
	}
	return false
}

// Endpoints returns the configured endpoint names in declaration order.
func (m *Manager) Endpoints() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	names := make([]string, 0, len(m.entries))
	for _, e := range m.entries {
		names = append(names, e.name)
	}
	return names
}

func (m *Manager) statusLocked() core.BridgeStatus {
	out := m.status
	out.Endpoints = append([]string(nil), m.status.Endpoints...)
	return out
}

func (m *Manager) firstHealthy() *entry {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, e := range m.entries {
		if e.healthy {
			return e
		}
	}
	return nil
}

func responseStatus(resp *core.GatewayResponse) int {
	if resp == nil {
		return 0
	}
	return resp.Status
}

// extractCode pulls generated code out of a bridge response body: a "code"
// field wins, otherwise the first fenced block inside "text".
func extractCode(body map[string]any, language string) (code.Block, bool) {
	if snippet, ok := body["code"].(string); ok && strings.TrimSpace(snippet) != "" {
		lang := language
		if l, ok := body["language"].(string); ok && l != "" {
			lang = l
		}
		return code.Block{Language: lang, Code: snippet}, true
	}
	if text, ok := body["text"].(string); ok {
		if snippet, lang, ok := code.Extract(text); ok {
			if lang == "" {
				lang = language
			}
			return code.Block{Language: lang, Code: snippet}, true
		}
	}
	return code.Block{}, false
}
