package core

// Payload represents a paradigm-shaped collaboration outcome. Concrete payload
// types implement the unexported isPayload marker enabling a closed set that
// mirrors the closed paradigm enum.
type Payload interface{ isPayload() }

// Contribution is one agent's textual output.
type Contribution struct {
	AgentID string `json:"agent_id"`
	Content string `json:"content"`
}

// OrchestraPayload is produced by the orchestra paradigm: the conductor's
// guidance plus the ordered contributions of the remaining agents.
type OrchestraPayload struct {
	ConductorID       string         `json:"conductor_id"`
	ConductorGuidance string         `json:"conductor_guidance"`
	Contributions     []Contribution `json:"contributions"`
}

// isPayload implements the Payload interface for OrchestraPayload.
func (OrchestraPayload) isPayload() {}

// MeshTurn is a single utterance within a mesh conversation.
type MeshTurn struct {
	AgentID  string `json:"agent_id"`
	Round    int    `json:"round"`
	Response string `json:"response"`
}

// MeshPayload is produced by the mesh paradigm: the full ordered conversation
// transcript across all rounds.
type MeshPayload struct {
	Rounds        int        `json:"rounds"`
	Conversations []MeshTurn `json:"conversations"`
}

// isPayload implements the Payload interface for MeshPayload.
func (MeshPayload) isPayload() {}

// SwarmPayload is produced by the swarm paradigm: every agent's independent
// response plus the themes that emerged across at least two of them.
type SwarmPayload struct {
	Responses        []Contribution `json:"responses"`
	EmergentPatterns []string       `json:"emergent_patterns"`
}

// isPayload implements the Payload interface for SwarmPayload.
func (SwarmPayload) isPayload() {}

// WeaverPayload is produced by the weaver paradigm: the aggregate context
// analysis woven from the first pass and the refined second-pass responses.
type WeaverPayload struct {
	ContextAnalysis  string         `json:"context_analysis"`
	RefinedResponses []Contribution `json:"refined_responses"`
}

// isPayload implements the Payload interface for WeaverPayload.
func (WeaverPayload) isPayload() {}

// GenerationRecord tracks which outputs of one ecosystem generation were
// retained as seed context for the next and which were discarded.
type GenerationRecord struct {
	Generation   int            `json:"generation"`
	Retained     []Contribution `json:"retained"`
	DiscardedIDs []string       `json:"discarded_ids"`
}

// EcosystemPayload is produced by the ecosystem paradigm: the synthesis of the
// final generation plus the per-generation retention lineage.
type EcosystemPayload struct {
	Generations       int                `json:"generations"`
	EmergentSynthesis string             `json:"emergent_synthesis"`
	Lineage           []GenerationRecord `json:"lineage"`
}

// isPayload implements the Payload interface for EcosystemPayload.
func (EcosystemPayload) isPayload() {}

// Result is the immutable outcome of one collaboration run. Paradigm, Task
// and Agents echo the originating request exactly; Payload carries the
// paradigm-specific shape.
type Result struct {
	Paradigm Paradigm `json:"paradigm"`
	Task     string   `json:"task"`
	Agents   []string `json:"agents"`
	Payload  Payload  `json:"payload"`

	// BridgeAvailable reports whether bridge augmentation was applied to this
	// result. It is false both when augmentation was never requested and when
	// the gateway was unreachable; bridge failures never fail the run.
	BridgeAvailable bool `json:"bridge_available"`
}

// Clone returns a deep copy of the result. The payload variants hold value
// slices only, so a per-variant copy is sufficient.
func (r *Result) Clone() *Result {
	if r == nil {
		return nil
	}
	out := &Result{
		Paradigm:        r.Paradigm,
		Task:            r.Task,
		Agents:          append([]string(nil), r.Agents...),
		BridgeAvailable: r.BridgeAvailable,
	}
	switch p := r.Payload.(type) {
	case OrchestraPayload:
		p.Contributions = append([]Contribution(nil), p.Contributions...)
		out.Payload = p
	case MeshPayload:
		p.Conversations = append([]MeshTurn(nil), p.Conversations...)
		out.Payload = p
	case SwarmPayload:
		p.Responses = append([]Contribution(nil), p.Responses...)
		p.EmergentPatterns = append([]string(nil), p.EmergentPatterns...)
		out.Payload = p
	case WeaverPayload:
		p.RefinedResponses = append([]Contribution(nil), p.RefinedResponses...)
		out.Payload = p
	case EcosystemPayload:
		lineage := make([]GenerationRecord, len(p.Lineage))
		for i, g := range p.Lineage {
			g.Retained = append([]Contribution(nil), g.Retained...)
			g.DiscardedIDs = append([]string(nil), g.DiscardedIDs...)
			lineage[i] = g
		}
		p.Lineage = lineage
		out.Payload = p
	default:
		out.Payload = r.Payload
	}
	return out
}

// BridgeStatus is the outcome of a bridge initialization attempt.
type BridgeStatus struct {
	Success   bool     `json:"success"`
	Error     string   `json:"error,omitempty"`
	Endpoints []string `json:"endpoints,omitempty"`
}

// CodeResult is the outcome of a bridge-augmented code generation call. The
// operation never surfaces a Go error; failures are reported through Success
// and Error so callers can always inspect a well-formed value.
type CodeResult struct {
	Success         bool   `json:"success"`
	Code            string `json:"code,omitempty"`
	Language        string `json:"language,omitempty"`
	Error           string `json:"error,omitempty"`
	BridgeAvailable bool   `json:"bridge_available"`
}
