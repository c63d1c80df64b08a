// Package config loads the orchestrator's declarative configuration: the
// agent roster, paradigm policy, bridge endpoints and runtime knobs. Files
// are YAML with environment variable expansion, decoded over defaults and
// validated before use.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/asshat1981ar/autonomous-sdlc-agent-sub001/evaluation"
	"github.com/asshat1981ar/autonomous-sdlc-agent-sub001/paradigm"
)

// Config is the root configuration document.
type Config struct {
	Agents   []AgentConfig  `yaml:"agents"`
	Paradigm ParadigmConfig `yaml:"paradigm"`
	Bridges  []BridgeConfig `yaml:"bridges"`
	Session  SessionConfig  `yaml:"session"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// AgentConfig declares one agent handle. Backend selects the provider
// implementation; Responses only applies to the static backend.
type AgentConfig struct {
	ID          string            `yaml:"id"`
	Backend     string            `yaml:"backend"`
	Model       string            `yaml:"model"`
	APIKey      string            `yaml:"api_key"`
	System      string            `yaml:"system"`
	Temperature float64           `yaml:"temperature"`
	MaxTokens   int64             `yaml:"max_tokens"`
	Responses   map[string]string `yaml:"responses"`
}

// ParadigmConfig tunes the collaboration strategies.
type ParadigmConfig struct {
	MeshRounds           int             `yaml:"mesh_rounds"`
	EcosystemGenerations int             `yaml:"ecosystem_generations"`
	Retention            RetentionConfig `yaml:"retention"`
}

// RetentionConfig selects the scoring heuristic used by the ecosystem
// paradigm to decide which outputs survive a generation.
type RetentionConfig struct {
	Heuristic string   `yaml:"heuristic"`
	MinLength int      `yaml:"min_length"`
	Keywords  []string `yaml:"keywords"`
}

// BridgeConfig declares one external bridge service endpoint.
type BridgeConfig struct {
	Name    string   `yaml:"name"`
	BaseURL string   `yaml:"base_url"`
	Timeout Duration `yaml:"timeout"`
}

// SessionConfig tunes the session manager. MaxSessions zero keeps every
// terminal session.
type SessionConfig struct {
	MaxSessions int `yaml:"max_sessions"`
}

// LoggingConfig tunes the default logger.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Duration is a time.Duration that unmarshals from YAML strings such as
// "10s" or "1m30s".
type Duration time.Duration

// UnmarshalYAML implements the yaml.Unmarshaler interface.
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("parse duration %q: %w", s, err)
	}
	*d = Duration(parsed)
	return nil
}

// Std returns the wrapped time.Duration.
func (d Duration) Std() time.Duration { return time.Duration(d) }

// Default returns the configuration used when a file sets nothing.
func Default() *Config {
	return &Config{
		Paradigm: ParadigmConfig{
			MeshRounds:           paradigm.DefaultMeshRounds,
			EcosystemGenerations: paradigm.DefaultEcosystemGenerations,
			Retention: RetentionConfig{
				Heuristic: "length",
				MinLength: evaluation.DefaultMinLength,
			},
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
	}
}

// Load reads and parses the configuration file at path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Parse expands environment variables in data, decodes it over the defaults
// and validates the result. Unknown fields are rejected.
func Parse(data []byte) (*Config, error) {
	cfg := Default()

	dec := yaml.NewDecoder(strings.NewReader(os.ExpandEnv(string(data))))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

var (
	knownBackends   = map[string]bool{"": true, "anthropic": true, "openai": true, "static": true}
	knownHeuristics = map[string]bool{"": true, "length": true, "keywords": true}
	knownLevels     = map[string]bool{"": true, "debug": true, "info": true, "warn": true, "error": true}
	knownFormats    = map[string]bool{"": true, "json": true, "text": true}
)

// Validate checks structural invariants: unique non-empty agent ids, known
// backend and heuristic names, positive paradigm counters.
func (c *Config) Validate() error {
	seen := make(map[string]struct{}, len(c.Agents))
	for i, a := range c.Agents {
		if a.ID == "" {
			return fmt.Errorf("agents[%d]: id is required", i)
		}
		if _, dup := seen[a.ID]; dup {
			return fmt.Errorf("agents[%d]: duplicate id %q", i, a.ID)
		}
		seen[a.ID] = struct{}{}
		if !knownBackends[a.Backend] {
			return fmt.Errorf("agent %q: unknown backend %q", a.ID, a.Backend)
		}
	}

	if c.Paradigm.MeshRounds < 1 {
		return fmt.Errorf("paradigm.mesh_rounds must be positive, got %d", c.Paradigm.MeshRounds)
	}
	if c.Paradigm.EcosystemGenerations < 1 {
		return fmt.Errorf("paradigm.ecosystem_generations must be positive, got %d", c.Paradigm.EcosystemGenerations)
	}
	if !knownHeuristics[c.Paradigm.Retention.Heuristic] {
		return fmt.Errorf("paradigm.retention: unknown heuristic %q", c.Paradigm.Retention.Heuristic)
	}
	if c.Paradigm.Retention.MinLength < 0 {
		return fmt.Errorf("paradigm.retention.min_length must not be negative, got %d", c.Paradigm.Retention.MinLength)
	}

	for i, b := range c.Bridges {
		if b.Name == "" {
			return fmt.Errorf("bridges[%d]: name is required", i)
		}
		if b.BaseURL == "" {
			return fmt.Errorf("bridge %q: base_url is required", b.Name)
		}
		if b.Timeout < 0 {
			return fmt.Errorf("bridge %q: timeout must not be negative", b.Name)
		}
	}

	if c.Session.MaxSessions < 0 {
		return fmt.Errorf("session.max_sessions must not be negative, got %d", c.Session.MaxSessions)
	}

	if !knownLevels[c.Logging.Level] {
		return fmt.Errorf("logging: unknown level %q", c.Logging.Level)
	}
	if !knownFormats[c.Logging.Format] {
		return fmt.Errorf("logging: unknown format %q", c.Logging.Format)
	}
	return nil
}
