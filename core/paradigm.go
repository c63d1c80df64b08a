package core

import "fmt"

// Paradigm names one of the closed set of coordination strategies governing
// how multiple agents jointly address a task.
type Paradigm string

const (
	// ParadigmOrchestra elects the first agent as conductor; its guidance is
	// fed to every remaining agent as added context.
	ParadigmOrchestra Paradigm = "orchestra"

	// ParadigmMesh runs agents in a fixed ring order for a configured number
	// of rounds, accumulating a shared transcript.
	ParadigmMesh Paradigm = "mesh"

	// ParadigmSwarm invokes all agents concurrently with no shared context and
	// mines the outputs for overlapping themes.
	ParadigmSwarm Paradigm = "swarm"

	// ParadigmWeaver runs an independent first pass, aggregates it into a
	// context analysis, then re-invokes each agent with the aggregate.
	ParadigmWeaver Paradigm = "weaver"

	// ParadigmEcosystem iterates generations where each generation's retained
	// outputs seed the next.
	ParadigmEcosystem Paradigm = "ecosystem"
)

// AllParadigms returns the closed paradigm set in a stable order.
func AllParadigms() []Paradigm {
	return []Paradigm{
		ParadigmOrchestra,
		ParadigmMesh,
		ParadigmSwarm,
		ParadigmWeaver,
		ParadigmEcosystem,
	}
}

// String returns the wire name of the paradigm.
func (p Paradigm) String() string { return string(p) }

// Valid reports whether p is one of the known paradigms.
func (p Paradigm) Valid() bool {
	switch p {
	case ParadigmOrchestra, ParadigmMesh, ParadigmSwarm, ParadigmWeaver, ParadigmEcosystem:
		return true
	}
	return false
}

// ParseParadigm converts a wire name into a Paradigm. Unrecognized names fail
// with KindUnknownParadigm so callers can reject requests before any side
// effect occurs.
func ParseParadigm(s string) (Paradigm, error) {
	p := Paradigm(s)
	if !p.Valid() {
		return "", NewError(KindUnknownParadigm, "", fmt.Errorf("paradigm %q is not one of %v", s, AllParadigms()))
	}
	return p, nil
}
